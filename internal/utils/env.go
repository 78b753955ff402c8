package utils

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// FindProjectRoot walks upward from the working directory until it finds a
// go.mod, which marks the project root during development.
func FindProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", os.ErrNotExist
}

// LoadEnv loads a .env file from the project root when running from source,
// falling back to the working directory for packaged binaries.
func LoadEnv() error {
	if root, err := FindProjectRoot(); err == nil {
		return godotenv.Load(filepath.Join(root, ".env"))
	}
	return godotenv.Load()
}
