// Package config loads the application environment and the two YAML files
// that drive the engine: the stage target table and the engine parameters.
package config

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// AppConfig holds process-level settings resolved from the environment.
type AppConfig struct {
	DataPath string
	OutDir   string
	LogDir   string
}

// Load reads .env files and environment variables. The binary's directory
// takes priority over the working directory, which matters when the tool is
// launched by a scheduler rather than a shell.
func Load() (*AppConfig, error) {
	exePath, err := os.Executable()
	exeDir := ""
	if err == nil {
		exeDir = filepath.Dir(exePath)
		envPath := filepath.Join(exeDir, ".env")
		if err := godotenv.Load(envPath); err == nil {
			log.Debug().Str("path", envPath).Msg("Loaded configuration from binary directory")
		}
	}
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file found in working directory, relying on environment variables or binary-relative .env")
	}

	dataPath := os.Getenv("DATA_PATH")
	if dataPath == "" {
		dataPath = "."
	}

	cfg := &AppConfig{
		DataPath: dataPath,
		OutDir:   filepath.Join(dataPath, "out"),
		LogDir:   filepath.Join(dataPath, "logs"),
	}
	return cfg, nil
}
