package fileops

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// FileOps provides a unified interface for common file operations
// combining path validation, error handling, and caching
type FileOps struct {
	pathValidator *PathValidator
	errorWrapper  *ErrorWrapper
	cacheManager  *CacheManager
}

// NewFileOps creates a new FileOps instance with all components
func NewFileOps() *FileOps {
	return &FileOps{
		pathValidator: NewPathValidator(),
		errorWrapper:  NewErrorWrapper(),
		cacheManager:  NewCacheManager(),
	}
}

// NewFileOpsWithCache creates a FileOps instance with a shared cache manager
func NewFileOpsWithCache(cacheManager *CacheManager) *FileOps {
	return &FileOps{
		pathValidator: NewPathValidator(),
		errorWrapper:  NewErrorWrapper(),
		cacheManager:  cacheManager,
	}
}

// PathValidator returns the path validator instance
func (fo *FileOps) PathValidator() *PathValidator {
	return fo.pathValidator
}

// CacheManager returns the cache manager instance
func (fo *FileOps) CacheManager() *CacheManager {
	return fo.cacheManager
}

// ReadFile reads a file and returns its contents as a string with caching
func (fo *FileOps) ReadFile(filePath string) (string, error) {
	cleanPath, err := fo.pathValidator.ValidateAndClean(filePath)
	if err != nil {
		return "", err
	}

	// Check cache first
	if cached, exists := fo.cacheManager.GetContent(cleanPath); exists {
		return cached, nil
	}

	content, err := os.ReadFile(cleanPath)
	if err != nil {
		return "", fo.errorWrapper.WrapFileReadError(cleanPath, err)
	}

	contentStr := string(content)

	// Cache the result
	fo.cacheManager.SetContent(cleanPath, contentStr)

	return contentStr, nil
}

// WriteFile writes content to a file with path validation and error handling
func (fo *FileOps) WriteFile(filePath string, content []byte, perm os.FileMode) error {
	cleanPath, err := fo.pathValidator.ValidateAndCleanOptional(filePath)
	if err != nil {
		return err
	}

	err = os.WriteFile(cleanPath, content, perm)
	if err != nil {
		return fo.errorWrapper.WrapFileWriteError(cleanPath, err)
	}

	// Invalidate cache for this file since we modified it
	fo.cacheManager.InvalidateFile(cleanPath)

	return nil
}

// WriteFileAtomic writes content through a uniquely named temp file in the
// target directory and renames it into place, so readers never observe a
// partially written file
func (fo *FileOps) WriteFileAtomic(filePath string, content []byte, perm os.FileMode) error {
	cleanPath, err := fo.pathValidator.ValidateAndCleanOptional(filePath)
	if err != nil {
		return err
	}

	dir := filepath.Dir(cleanPath)
	tmpPath := filepath.Join(dir, fmt.Sprintf(".%s.%s.tmp", filepath.Base(cleanPath), uuid.NewString()))

	if err := os.WriteFile(tmpPath, content, perm); err != nil {
		return fo.errorWrapper.WrapFileWriteError(tmpPath, err)
	}

	if err := os.Rename(tmpPath, cleanPath); err != nil {
		os.Remove(tmpPath)
		return fo.errorWrapper.WrapFileWriteError(cleanPath, err)
	}

	fo.cacheManager.InvalidateFile(cleanPath)

	return nil
}

// RemoveFile removes a file with path validation and error handling
func (fo *FileOps) RemoveFile(filePath string) error {
	cleanPath, err := fo.pathValidator.ValidateAndClean(filePath)
	if err != nil {
		return err
	}

	err = os.Remove(cleanPath)
	if err != nil {
		return fo.errorWrapper.WrapFileRemovalError(cleanPath, err)
	}

	// Invalidate cache for this file since we removed it
	fo.cacheManager.InvalidateFile(cleanPath)

	return nil
}

// ReadDir reads a directory with path validation and error handling
func (fo *FileOps) ReadDir(dirPath string) ([]os.DirEntry, error) {
	cleanPath, err := fo.pathValidator.ValidateAndClean(dirPath)
	if err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(cleanPath)
	if err != nil {
		return nil, fo.errorWrapper.WrapDirectoryReadError(cleanPath, err)
	}

	return entries, nil
}

// Exists checks if a path exists using the path validator
func (fo *FileOps) Exists(path string) bool {
	return fo.pathValidator.Exists(path)
}

// IsDir checks if a path is a directory using the path validator
func (fo *FileOps) IsDir(path string) bool {
	return fo.pathValidator.IsDir(path)
}

// IsFile checks if a path is a regular file using the path validator
func (fo *FileOps) IsFile(path string) bool {
	return fo.pathValidator.IsFile(path)
}
