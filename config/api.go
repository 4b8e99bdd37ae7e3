package config

// GetAuthSkipperPaths returns a list of paths to skip authentication for
func GetAuthSkipperPaths() []string {
	// Public paths (cached catalog search is read-only, no auth)
	return []string{"/api/search", "/"}
}
