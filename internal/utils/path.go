// Package utils provides internal utility functions used throughout the
// logger package.
//
// This package contains helper functions for path handling used before file
// operations, including validation that rejects directory traversal in
// user-supplied log file paths.
package utils

import (
	"path/filepath"
	"strings"

	"github.com/hyp3rd/ewrap"
)

// ValidateLogPath normalizes a log file path and rejects any path containing
// a parent-directory traversal segment. Both relative and absolute paths are
// accepted; the check runs on the cleaned path so encoded traversal like
// "a/../../etc" is caught after normalization.
func ValidateLogPath(path string) (string, error) {
	if path == "" {
		return "", ewrap.New("log file path cannot be empty")
	}

	cleanPath := filepath.Clean(path)

	for _, segment := range strings.Split(cleanPath, string(filepath.Separator)) {
		if segment == ".." {
			return "", ewrap.New("invalid path contains directory traversal segment").
				WithMetadata("path", path)
		}
	}

	return cleanPath, nil
}
