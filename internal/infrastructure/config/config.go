package config

import (
	"context"
	"fmt"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,      default=5000"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`
	Debug    bool   `env:"DEBUG,     default=false"`

	// JWTSecret signs session tokens. The fallback matches legacy
	// deployments that never set it; override it anywhere real.
	JWTSecret string `env:"SECRET_KEY, default=your-secret-key-for-jwt"`

	// DisableAuth injects a fixed development identity instead of
	// validating tokens. Never enable in a production posture.
	DisableAuth bool `env:"DISABLE_AUTH, default=false"`

	// AllowStartWithoutDB lets the process come up degraded when MongoDB
	// is unreachable at startup; data endpoints then return 503.
	AllowStartWithoutDB bool `env:"ALLOW_START_WITHOUT_DB, default=false"`

	ModelPath string `env:"MODEL_PATH, default=model/lung_model.onnx"`
	UploadDir string `env:"UPLOAD_DIR, default=uploads"`

	Mongo MongoConfig
	Redis RedisConfig
}

type MongoConfig struct {
	URI      string `env:"MONGODB_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,    default=lung_cancer_db"`
}

type RedisConfig struct {
	// Addr is optional; when empty the stats cache is disabled.
	Addr string `env:"REDIS_ADDR"`
	DB   int    `env:"REDIS_DB, default=0"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}
