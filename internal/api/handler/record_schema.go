package handler

// savePrediction is the prediction payload echoed back by the client on
// save-record, as a JSON string inside the multipart form.
type savePrediction struct {
	PredictedClass string             `json:"predicted_class" validate:"required,oneof=Benign Malignant Normal"`
	Confidence     float64            `json:"confidence"      validate:"gte=0,lte=1"`
	Probabilities  map[string]float64 `json:"probabilities"`
	// Optional context captured at scan time.
	MedicalHistory string `json:"medicalHistory"`
	DoctorNotes    string `json:"doctorNotes"`
}

type saveRecordResponse struct {
	Success  bool   `json:"success"`
	Message  string `json:"message"`
	RecordID string `json:"recordId"`
}
