//go:build !prod

package database

// GetDefaultDBPath returns the session store path for development mode.
// In dev mode, the database sits in the project root for easy inspection.
func GetDefaultDBPath() string {
	return "readmegen.db"
}

func IsDevelopment() bool {
	return true
}
