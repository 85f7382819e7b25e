package util

import (
	"fmt"
	"os"
	"path/filepath"
)

// GetAbsolutePath resolves relativePath against the working directory.
// Absolute paths are returned cleaned but otherwise untouched.
func GetAbsolutePath(relativePath string) (string, error) {
	if filepath.IsAbs(relativePath) {
		return filepath.Clean(relativePath), nil
	}

	root, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get working directory: %w", err)
	}

	return filepath.Join(root, relativePath), nil
}

func StringPtr(s string) *string {
	return &s
}

func IntPtr(i int) *int {
	return &i
}

func Float64Ptr(f float64) *float64 {
	return &f
}

func BoolPtr(b bool) *bool {
	return &b
}
