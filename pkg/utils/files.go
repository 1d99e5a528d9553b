package utils

import (
	"os"
	"path/filepath"
	"strings"
)

// AssemblyExt is the extension given to translator output.
const AssemblyExt = ".tral"

func GetPathInfo(relPath string) (fullPath string, parentDir string, err error) {
	// Convert to absolute path (resolves ../../ and cleans the path)
	fullPath, err = filepath.Abs(relPath)
	if err != nil {
		return "", "", err
	}

	// Get the directory containing the file
	parentDir = filepath.Dir(fullPath)

	return fullPath, parentDir, nil
}

// DefaultOutputPath swaps the extension of inPath for ext.
func DefaultOutputPath(inPath, ext string) string {
	cur := filepath.Ext(inPath)
	if cur == "" {
		return inPath + ext
	}
	return strings.TrimSuffix(inPath, cur) + ext
}

// IsAssembly reports whether path names TrAL text rather than TruPL source.
func IsAssembly(path string) bool {
	return strings.EqualFold(filepath.Ext(path), AssemblyExt)
}

// ReadSource reads a file and returns its absolute path with its contents.
func ReadSource(path string) (fullPath, src string, err error) {
	fullPath, _, err = GetPathInfo(path)
	if err != nil {
		return "", "", err
	}
	data, err := os.ReadFile(fullPath)
	if err != nil {
		return "", "", err
	}
	return fullPath, string(data), nil
}

// WriteOutput writes data to path, creating the parent directory if needed.
func WriteOutput(path string, data []byte) error {
	_, dir, err := GetPathInfo(path)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
