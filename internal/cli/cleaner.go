package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/toyz/sumgen/internal/utils"
)

// Cleaner removes previously generated files
type Cleaner struct {
	fileProcessor *utils.FileProcessor
}

// NewCleaner creates a new cleaner
func NewCleaner() *Cleaner {
	return &Cleaner{
		fileProcessor: utils.NewFileProcessor(),
	}
}

// CleanGeneratedFiles removes every generated file under the configured
// roots and returns the paths it removed. Recursive roots honor the same
// directory exclusions as scanning; a plain root is cleaned without
// descending.
func (c *Cleaner) CleanGeneratedFiles(config *Config) ([]string, error) {
	fileFilter := utils.GeneratedFileFilter(config.Extensions, config.OutputSuffix)
	dirFilter := utils.DefaultDirectoryFilter(config.Exclude...)

	var removed []string

	for _, root := range config.Roots {
		if strings.HasSuffix(root, "/...") {
			baseDir := strings.TrimSuffix(root, "/...")
			if baseDir == "" {
				baseDir = "."
			}

			files, err := c.fileProcessor.CleanTree(baseDir, fileFilter, dirFilter)
			if err != nil {
				return removed, err
			}
			removed = append(removed, files...)
			continue
		}

		if _, err := os.Stat(root); os.IsNotExist(err) {
			continue
		}

		files, err := c.fileProcessor.ListMatchingFiles(root, fileFilter)
		if err != nil {
			return removed, err
		}
		for _, file := range files {
			if err := os.Remove(file); err != nil {
				return removed, fmt.Errorf("failed to remove file %s: %w", file, err)
			}
			removed = append(removed, file)
		}
	}

	return removed, nil
}
