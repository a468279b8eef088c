package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	DEFAULT_PORT            = 8000
	DEFAULT_ARTIFACT_DIR    = "./model"
	DEFAULT_EMBEDDER_MODEL  = "sentence-transformers/LaBSE"
	DEFAULT_EMBEDDER_DIR    = "./models"
	DEFAULT_STORE_DRIVER    = "postgres"
	DEFAULT_SQLITE_PATH     = "./trending.db"
	DEFAULT_SHUTDOWN_WAIT   = 5 * time.Second
	DEFAULT_SERVER_TIMEOUTS = 60 * time.Second

	// LaBSE's sentence embedding is the tanh-projected CLS token, L2-normalised. The plain
	// export carries it as pooler_output; the first output is token-level.
	DEFAULT_EMBEDDER_ONNX_FILE = "onnx/model.onnx"
	DEFAULT_EMBEDDER_OUTPUT    = "pooler_output"
)

// EmbedderSettings locate the sentence encoder. OnnxFilename is a path inside the hub
// repo; OutputName picks the model output holding the sentence embedding.
type EmbedderSettings struct {
	ModelName    string
	ModelDir     string
	OnnxFilename string
	OutputName   string
	Normalize    bool
}

type StoreSettings struct {
	Driver      string
	DatabaseURL string
	SQLitePath  string
}

// Settings is the process configuration read once at startup.
type Settings struct {
	Env            string
	Port           int
	LogLevel       string
	ArtifactDir    string
	AllowedOrigins []string
	ServerTimeout  time.Duration
	ShutdownWait   time.Duration
	Embedder       EmbedderSettings
	Store          StoreSettings
}

func getEnv(key, defaultValue string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return defaultValue
	}
	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return defaultValue
	}
	return v
}

func getEnvBool(key string, defaultValue bool) bool {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return defaultValue
	}
	v, err := strconv.ParseBool(strings.TrimSpace(raw))
	if err != nil {
		return defaultValue
	}
	return v
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return defaultValue
	}
	v, err := time.ParseDuration(strings.TrimSpace(raw))
	if err != nil || v <= 0 {
		return defaultValue
	}
	return v
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// AppEnv returns APP_ENV, defaulting to "dev".
func AppEnv() string {
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "dev"
	}
	return env
}

// GetSettings reads Settings from the environment.
func GetSettings() Settings {
	origins := splitList(getEnv("CORS_ALLOWED_ORIGINS", "*"))
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	return Settings{
		Env:            AppEnv(),
		Port:           getEnvInt("PORT", DEFAULT_PORT),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		ArtifactDir:    getEnv("ARTIFACT_DIR", DEFAULT_ARTIFACT_DIR),
		AllowedOrigins: origins,
		ServerTimeout:  getEnvDuration("SERVER_TIMEOUT", DEFAULT_SERVER_TIMEOUTS),
		ShutdownWait:   getEnvDuration("SHUTDOWN_WAIT", DEFAULT_SHUTDOWN_WAIT),
		Embedder: EmbedderSettings{
			ModelName:    getEnv("EMBEDDER_MODEL", DEFAULT_EMBEDDER_MODEL),
			ModelDir:     getEnv("EMBEDDER_MODEL_DIR", DEFAULT_EMBEDDER_DIR),
			OnnxFilename: getEnv("EMBEDDER_ONNX_FILE", DEFAULT_EMBEDDER_ONNX_FILE),
			OutputName:   getEnv("EMBEDDER_OUTPUT_NAME", DEFAULT_EMBEDDER_OUTPUT),
			Normalize:    getEnvBool("EMBEDDER_NORMALIZE", true),
		},
		Store: StoreSettings{
			Driver:      strings.ToLower(getEnv("STORE_DRIVER", DEFAULT_STORE_DRIVER)),
			DatabaseURL: getEnv("DATABASE_URL", ""),
			SQLitePath:  getEnv("SQLITE_PATH", DEFAULT_SQLITE_PATH),
		},
	}
}
