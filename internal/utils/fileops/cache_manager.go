package fileops

import (
	"github.com/toyz/sumgen/internal/schema"
	"github.com/toyz/sumgen/internal/utils"
)

// CacheManager provides centralized caching for file operations. Parsed
// declarations and raw file content are cached per path and invalidated
// when the backing file changes on disk.
type CacheManager struct {
	declCache    *utils.Cache[string, *schema.SourceFile]
	contentCache *utils.Cache[string, string]
}

// NewCacheManager creates a new CacheManager instance
func NewCacheManager() *CacheManager {
	return &CacheManager{
		declCache:    utils.NewCache[string, *schema.SourceFile](),
		contentCache: utils.NewCache[string, string](),
	}
}

// GetDecl retrieves a cached parsed declaration file or returns false if not found
func (cm *CacheManager) GetDecl(filePath string) (*schema.SourceFile, bool) {
	return cm.declCache.GetWithFileValidation(filePath, filePath)
}

// SetDecl caches a parsed declaration file with file validation
func (cm *CacheManager) SetDecl(filePath string, file *schema.SourceFile) {
	// Without stat metadata the entry could never be invalidated, so a
	// failed stat means the file simply is not cached
	if err := cm.declCache.SetWithFileInfo(filePath, file, filePath); err != nil {
		cm.declCache.Delete(filePath)
	}
}

// GetContent retrieves cached file content or returns false if not found
func (cm *CacheManager) GetContent(filePath string) (string, bool) {
	return cm.contentCache.GetWithFileValidation(filePath, filePath)
}

// SetContent caches file content with file validation
func (cm *CacheManager) SetContent(filePath string, content string) {
	if err := cm.contentCache.SetWithFileInfo(filePath, content, filePath); err != nil {
		cm.contentCache.Delete(filePath)
	}
}

// ClearAll clears all cached data
func (cm *CacheManager) ClearAll() {
	cm.declCache.Clear()
	cm.contentCache.Clear()
}

// InvalidateFile removes a specific file from all caches
func (cm *CacheManager) InvalidateFile(filePath string) {
	cm.declCache.Delete(filePath)
	cm.contentCache.Delete(filePath)
}

// GetCacheStats returns statistics about cached items
func (cm *CacheManager) GetCacheStats() (declFiles, contentFiles int) {
	return cm.declCache.Size(), cm.contentCache.Size()
}

// HasDecl checks if a parsed declaration is cached for the given file
func (cm *CacheManager) HasDecl(filePath string) bool {
	_, exists := cm.declCache.GetWithFileValidation(filePath, filePath)
	return exists
}

// HasContent checks if content is cached for the given file
func (cm *CacheManager) HasContent(filePath string) bool {
	_, exists := cm.contentCache.GetWithFileValidation(filePath, filePath)
	return exists
}
