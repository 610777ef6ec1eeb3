package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/toyz/sumgen/internal/errors"
	"github.com/toyz/sumgen/internal/utils"
)

// DirectoryScanner locates the directories that hold declaration files
type DirectoryScanner struct {
	fileProcessor *utils.FileProcessor
}

// NewDirectoryScanner creates a new directory scanner
func NewDirectoryScanner() *DirectoryScanner {
	return &DirectoryScanner{
		fileProcessor: utils.NewFileProcessor(),
	}
}

// ScanDirectories resolves the configured roots into the directories that
// contain declaration files. A root ending in "/..." is walked recursively;
// a plain root contributes only itself. Parent directories come before
// their subdirectories, and duplicates are removed.
func (s *DirectoryScanner) ScanDirectories(config *Config) ([]string, error) {
	fileFilter := utils.DeclFileFilter(config.Extensions, config.OutputSuffix)
	dirFilter := utils.DefaultDirectoryFilter(config.Exclude...)

	var dirs []string
	seen := make(map[string]bool)

	for _, root := range config.Roots {
		if strings.HasSuffix(root, "/...") {
			baseDir := strings.TrimSuffix(root, "/...")
			if baseDir == "" {
				baseDir = "."
			}

			cleanPath, err := filepath.Abs(baseDir)
			if err != nil {
				return nil, errors.WrapWithOperation("process", fmt.Sprintf("path resolution %s", baseDir), err)
			}

			found, err := s.fileProcessor.ScanTree(cleanPath, fileFilter, dirFilter)
			if err != nil {
				return nil, err
			}
			for _, dir := range found {
				if !seen[dir] {
					seen[dir] = true
					dirs = append(dirs, dir)
				}
			}
			continue
		}

		cleanPath, err := filepath.Abs(root)
		if err != nil {
			return nil, errors.WrapWithOperation("process", fmt.Sprintf("path resolution %s", root), err)
		}

		if seen[cleanPath] {
			continue
		}

		has, err := s.fileProcessor.HasMatchingFiles(cleanPath, fileFilter)
		if err != nil {
			return nil, errors.WrapWithOperation("scan", fmt.Sprintf("directory %s", root), err)
		}
		if !has {
			continue
		}
		seen[cleanPath] = true
		dirs = append(dirs, cleanPath)
	}

	return dirs, nil
}

// ListDeclFiles returns the declaration files directly inside dir, sorted by
// name. Generated files are never included, whatever their extension.
func (s *DirectoryScanner) ListDeclFiles(dir string, config *Config) ([]string, error) {
	fileFilter := utils.DeclFileFilter(config.Extensions, config.OutputSuffix)
	return s.fileProcessor.ListMatchingFiles(dir, fileFilter)
}
