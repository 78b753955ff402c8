//go:build prod

package database

import (
	"log"
	"os"
	"path/filepath"
)

// GetDefaultDBPath returns the session store path for production mode,
// under the user's config directory.
func GetDefaultDBPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		log.Printf("Warning: Failed to get user config dir: %v. Using fallback.", err)
		return "readmegen.db"
	}

	appDir := filepath.Join(configDir, "readmegen")

	if err := os.MkdirAll(appDir, 0755); err != nil {
		log.Printf("Warning: Failed to create app config dir: %v. Using fallback.", err)
		return "readmegen.db"
	}

	return filepath.Join(appDir, "readmegen.db")
}

func IsDevelopment() bool {
	return false
}
