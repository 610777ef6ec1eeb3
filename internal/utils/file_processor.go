package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/toyz/sumgen/internal/errors"
)

// FileProcessor provides utilities for declaration file discovery and cleanup
type FileProcessor struct{}

// NewFileProcessor creates a new file processor
func NewFileProcessor() *FileProcessor {
	return &FileProcessor{}
}

// FileFilter defines a function that determines whether a file should be processed
type FileFilter func(path string, info os.DirEntry) bool

// DirectoryFilter defines a function that determines whether a directory should be processed
type DirectoryFilter func(path string, info os.DirEntry) bool

// FileWalkOptions configures file walking behavior
type FileWalkOptions struct {
	FileFilter      FileFilter
	DirectoryFilter DirectoryFilter
	SkipErrors      bool
}

// IsDeclName reports whether a file name looks like a declaration source.
// Generated output names are never declaration sources, so regeneration can
// never feed on its own artifacts
func IsDeclName(name string, extensions []string, outputSuffix string) bool {
	for _, ext := range extensions {
		if !strings.HasSuffix(name, ext) {
			continue
		}
		base := strings.TrimSuffix(name, ext)
		if outputSuffix != "" && strings.HasSuffix(base, outputSuffix) {
			return false
		}
		return true
	}
	return false
}

// DeclFileFilter filters for declaration files, excluding previously
// generated output
func DeclFileFilter(extensions []string, outputSuffix string) FileFilter {
	return func(path string, info os.DirEntry) bool {
		if info.IsDir() {
			return false
		}
		return IsDeclName(info.Name(), extensions, outputSuffix)
	}
}

// GeneratedFileFilter filters for files produced by a previous run
func GeneratedFileFilter(extensions []string, outputSuffix string) FileFilter {
	return func(path string, info os.DirEntry) bool {
		if info.IsDir() || outputSuffix == "" {
			return false
		}

		name := info.Name()
		for _, ext := range extensions {
			if strings.HasSuffix(name, outputSuffix+ext) {
				return true
			}
		}
		return false
	}
}

// DefaultDirectoryFilter skips directories that never hold declaration
// sources, plus any configured extras
func DefaultDirectoryFilter(exclude ...string) DirectoryFilter {
	skipDirs := map[string]bool{
		"vendor":       true,
		"node_modules": true,
		".git":         true,
		".svn":         true,
		".hg":          true,
		"testdata":     true,
		"build":        true,
		"dist":         true,
		"target":       true,
	}
	for _, name := range exclude {
		skipDirs[name] = true
	}

	return func(path string, info os.DirEntry) bool {
		if !info.IsDir() {
			return true
		}

		name := info.Name()

		// Skip hidden directories
		if strings.HasPrefix(name, ".") && name != "." && name != ".." {
			return false
		}

		return !skipDirs[name]
	}
}

// fileInfoDirEntry adapts os.FileInfo to the os.DirEntry shape filters expect
type fileInfoDirEntry struct {
	info os.FileInfo
}

func (f fileInfoDirEntry) Name() string               { return f.info.Name() }
func (f fileInfoDirEntry) IsDir() bool                { return f.info.IsDir() }
func (f fileInfoDirEntry) Type() os.FileMode          { return f.info.Mode().Type() }
func (f fileInfoDirEntry) Info() (os.FileInfo, error) { return f.info, nil }

// WalkFiles walks through files in a directory tree with filtering
func (fp *FileProcessor) WalkFiles(rootDir string, options FileWalkOptions) ([]string, error) {
	var matchedFiles []string

	err := filepath.Walk(rootDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			if options.SkipErrors {
				return nil
			}
			return err
		}

		dirEntry := fileInfoDirEntry{info: info}

		// Apply directory filter, but never to the walk root itself
		if info.IsDir() {
			if path != rootDir && options.DirectoryFilter != nil && !options.DirectoryFilter(path, dirEntry) {
				return filepath.SkipDir
			}
			return nil
		}

		if options.FileFilter != nil && options.FileFilter(path, dirEntry) {
			matchedFiles = append(matchedFiles, path)
		}

		return nil
	})

	return matchedFiles, err
}

// ScanTree recursively scans a directory tree and returns every directory
// directly containing at least one file accepted by the filter. A directory
// comes before its subdirectories, and the root itself is exempt from the
// directory filter.
func (fp *FileProcessor) ScanTree(rootDir string, fileFilter FileFilter, dirFilter DirectoryFilter) ([]string, error) {
	visited := make(map[string]bool)
	return fp.scanTree(rootDir, fileFilter, dirFilter, visited)
}

func (fp *FileProcessor) scanTree(dir string, fileFilter FileFilter, dirFilter DirectoryFilter, visited map[string]bool) ([]string, error) {
	// Resolve the absolute path so symlinked duplicates are only seen once
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, errors.WrapWithOperation("process", fmt.Sprintf("path resolution %s", dir), err)
	}
	if visited[absDir] {
		return nil, nil
	}
	visited[absDir] = true

	has, err := fp.HasMatchingFiles(dir, fileFilter)
	if err != nil {
		return nil, errors.WrapWithOperation("scan", fmt.Sprintf("directory %s", dir), err)
	}

	var dirs []string
	if has {
		dirs = append(dirs, dir)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.WrapWithOperation("read", fmt.Sprintf("directory %s", dir), err)
	}
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		sub := filepath.Join(dir, entry.Name())
		if dirFilter != nil && !dirFilter(sub, entry) {
			continue
		}
		subDirs, err := fp.scanTree(sub, fileFilter, dirFilter, visited)
		if err != nil {
			return nil, err
		}
		dirs = append(dirs, subDirs...)
	}

	return dirs, nil
}

// HasMatchingFiles reports whether dir directly contains a file accepted by the filter
func (fp *FileProcessor) HasMatchingFiles(dir string, fileFilter FileFilter) (bool, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return false, err
	}

	for _, entry := range entries {
		if fileFilter(filepath.Join(dir, entry.Name()), entry) {
			return true, nil
		}
	}

	return false, nil
}

// ListMatchingFiles returns the files directly inside dir accepted by the
// filter, in name order
func (fp *FileProcessor) ListMatchingFiles(dir string, fileFilter FileFilter) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.WrapWithOperation("read", fmt.Sprintf("directory %s", dir), err)
	}

	var files []string
	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())
		if fileFilter(path, entry) {
			files = append(files, path)
		}
	}

	return files, nil
}

// CleanTree walks a directory tree removing every file accepted by the
// filter and returns the removed paths
func (fp *FileProcessor) CleanTree(rootDir string, fileFilter FileFilter, dirFilter DirectoryFilter) ([]string, error) {
	var removed []string

	err := filepath.Walk(rootDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			// Unreadable entries are skipped, not fatal
			return nil
		}

		dirEntry := fileInfoDirEntry{info: info}

		if info.IsDir() {
			if path != rootDir && dirFilter != nil && !dirFilter(path, dirEntry) {
				return filepath.SkipDir
			}
			return nil
		}

		if fileFilter != nil && fileFilter(path, dirEntry) {
			if err := os.Remove(path); err != nil {
				return errors.WrapWithOperation("remove", fmt.Sprintf("generated file %s", path), err)
			}
			removed = append(removed, path)
		}

		return nil
	})

	return removed, err
}
