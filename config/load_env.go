package config

import (
	"log/slog"

	"github.com/subosito/gotenv"
)

const ENV_DIR = "config/envs/"

// LoadEnv loads config/envs/.env.<env> into the process environment. Variables that are
// already set win over the file.
func LoadEnv(env string) {
	envFile := ENV_DIR + ".env." + env
	if err := gotenv.Load(envFile); err != nil {
		slog.Warn("[Config] No .env file found, using OS environment",
			slog.String("file", envFile))
	}
}
