package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleaner_CleanGeneratedFiles(t *testing.T) {
	// Test structure:
	// tempDir/
	//   decls/
	//     shapes.sum          (declaration, survives)
	//     shapes_gen.sum      (generated, removed)
	//     nested/
	//       events_gen.sum    (generated, removed)
	//   fixtures/
	//     sample_gen.sum      (excluded directory, survives)
	//   notes_gen.txt         (wrong extension, survives)
	tempDir := t.TempDir()

	writeTree(t, tempDir, map[string]string{
		"decls/shapes.sum":            "interface Shape {}",
		"decls/shapes_gen.sum":        "// generated",
		"decls/nested/events_gen.sum": "// generated",
		"fixtures/sample_gen.sum":     "// generated",
		"notes_gen.txt":               "notes",
	})

	config := DefaultConfig()
	config.Roots = []string{tempDir + "/..."}
	config.Exclude = []string{"fixtures"}

	cleaner := NewCleaner()
	removed, err := cleaner.CleanGeneratedFiles(&config)
	require.NoError(t, err)

	assert.Equal(t, []string{
		filepath.Join(tempDir, "decls", "nested", "events_gen.sum"),
		filepath.Join(tempDir, "decls", "shapes_gen.sum"),
	}, removed)

	assert.FileExists(t, filepath.Join(tempDir, "decls", "shapes.sum"))
	assert.FileExists(t, filepath.Join(tempDir, "fixtures", "sample_gen.sum"))
	assert.FileExists(t, filepath.Join(tempDir, "notes_gen.txt"))
	assert.NoFileExists(t, filepath.Join(tempDir, "decls", "shapes_gen.sum"))

	// A second pass finds nothing left to remove
	removed, err = cleaner.CleanGeneratedFiles(&config)
	require.NoError(t, err)
	assert.Empty(t, removed)
}

func TestCleaner_PlainRootDoesNotDescend(t *testing.T) {
	tempDir := t.TempDir()

	writeTree(t, tempDir, map[string]string{
		"top_gen.sum":      "// generated",
		"sub/deep_gen.sum": "// generated",
	})

	config := DefaultConfig()
	config.Roots = []string{tempDir}

	cleaner := NewCleaner()
	removed, err := cleaner.CleanGeneratedFiles(&config)
	require.NoError(t, err)

	assert.Equal(t, []string{filepath.Join(tempDir, "top_gen.sum")}, removed)
	assert.FileExists(t, filepath.Join(tempDir, "sub", "deep_gen.sum"))
}

func TestCleaner_MissingPlainRootIsSkipped(t *testing.T) {
	config := DefaultConfig()
	config.Roots = []string{filepath.Join(t.TempDir(), "does-not-exist")}

	cleaner := NewCleaner()
	removed, err := cleaner.CleanGeneratedFiles(&config)
	require.NoError(t, err)
	assert.Empty(t, removed)
}

func TestCleaner_CustomOutputSuffix(t *testing.T) {
	tempDir := t.TempDir()

	writeTree(t, tempDir, map[string]string{
		"wire_expanded.sum": "// generated",
		"wire_gen.sum":      "not ours with this suffix",
	})

	config := DefaultConfig()
	config.Roots = []string{tempDir + "/..."}
	config.OutputSuffix = "_expanded"

	cleaner := NewCleaner()
	removed, err := cleaner.CleanGeneratedFiles(&config)
	require.NoError(t, err)

	assert.Equal(t, []string{filepath.Join(tempDir, "wire_expanded.sum")}, removed)
	assert.FileExists(t, filepath.Join(tempDir, "wire_gen.sum"))

	entries, err := os.ReadDir(tempDir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}
