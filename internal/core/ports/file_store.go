package ports

import "context"

// FileStore persists uploaded scan images. Save returns the stored path,
// which is what gets recorded on the scan document and removed again if the
// record-store write fails.
type FileStore interface {
	Save(ctx context.Context, patientID, ext string, data []byte) (string, error)
	Remove(ctx context.Context, path string) error
}
