package errors

import (
	"strings"
	"unicode"
)

// ValidatePackageName validates a package name for safety.
// It rejects names that could be used for path traversal once joined onto
// a site-packages directory.
//
//   - No empty names
//   - No control characters
//   - No path traversal sequences (.., /, \)
//   - Maximum length of 256 characters
func ValidatePackageName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidPackage, "package name cannot be empty")
	}

	if len(name) > 256 {
		return New(ErrCodeInvalidPackage, "package name too long (max 256 characters)")
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidPackage, "package name contains invalid control characters")
		}
	}

	dangerousPatterns := []string{
		"..",   // Parent directory
		"/",    // Path separator
		"\x00", // Null byte
		"\\",   // Backslash (Windows path)
	}

	for _, pattern := range dangerousPatterns {
		if strings.Contains(name, pattern) {
			return New(ErrCodeInvalidPackage, "package name contains invalid characters: %q", pattern)
		}
	}

	return nil
}

// ValidateRepoName validates the project prefix used to build logical
// repository names such as "myproject/deps/requests".
// Slashes are allowed ("org/project") but empty segments and ".." are not.
func ValidateRepoName(name string) error {
	if strings.TrimSpace(name) == "" {
		return New(ErrCodeInvalidName, "project name cannot be empty")
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidName, "project name contains control characters")
		}
	}

	if strings.Contains(name, "\\") {
		return New(ErrCodeInvalidName, "project name cannot contain backslashes")
	}

	for _, seg := range strings.Split(name, "/") {
		switch seg {
		case "":
			return New(ErrCodeInvalidName, "project name cannot contain empty path segments: %q", name)
		case ".", "..":
			return New(ErrCodeInvalidName, "project name cannot contain %q segments", seg)
		}
	}

	return nil
}
