package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeTree creates files under root from slash-relative paths, making parent
// directories as needed
func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
}

func TestDirectoryScanner_ScanDirectories(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "sumgen_scanner_test")
	require.NoError(t, err)
	defer os.RemoveAll(tempDir)

	// Create test directory structure
	// tempDir/
	//   ├── shapes/
	//   │   ├── shapes.sum
	//   │   └── shapes_gen.sum   (generated, never counts)
	//   ├── protocol/
	//   │   ├── messages.sum
	//   │   └── nested/
	//   │       └── events.sum
	//   ├── vendor/
	//   │   └── dep.sum          (always skipped)
	//   ├── fixtures/
	//   │   └── sample.sum       (skipped via exclude)
	//   └── docs/
	//       └── readme.md        (no declaration files)

	writeTree(t, tempDir, map[string]string{
		"shapes/shapes.sum":          "interface Shape {}",
		"shapes/shapes_gen.sum":      "// generated",
		"protocol/messages.sum":      "interface Message {}",
		"protocol/nested/events.sum": "interface Event {}",
		"vendor/dep.sum":             "interface Dep {}",
		"fixtures/sample.sum":        "interface Sample {}",
		"docs/readme.md":             "# docs",
	})

	shapesDir := filepath.Join(tempDir, "shapes")
	protocolDir := filepath.Join(tempDir, "protocol")
	nestedDir := filepath.Join(protocolDir, "nested")
	docsDir := filepath.Join(tempDir, "docs")

	scanner := NewDirectoryScanner()

	newConfig := func(roots ...string) *Config {
		config := DefaultConfig()
		config.Roots = roots
		config.Exclude = []string{"fixtures"}
		return &config
	}

	t.Run("recursive root", func(t *testing.T) {
		dirs, err := scanner.ScanDirectories(newConfig(tempDir + "/..."))
		require.NoError(t, err)

		assert.Equal(t, []string{protocolDir, nestedDir, shapesDir}, dirs)
	})

	t.Run("plain root does not descend", func(t *testing.T) {
		dirs, err := scanner.ScanDirectories(newConfig(protocolDir))
		require.NoError(t, err)

		assert.Equal(t, []string{protocolDir}, dirs)
	})

	t.Run("plain root without declaration files", func(t *testing.T) {
		dirs, err := scanner.ScanDirectories(newConfig(docsDir))
		require.NoError(t, err)
		assert.Empty(t, dirs)
	})

	t.Run("duplicate roots are collapsed", func(t *testing.T) {
		dirs, err := scanner.ScanDirectories(newConfig(shapesDir, shapesDir, tempDir+"/..."))
		require.NoError(t, err)

		assert.Equal(t, []string{shapesDir, protocolDir, nestedDir}, dirs)
	})

	t.Run("recursive pattern from the working directory", func(t *testing.T) {
		originalDir, err := os.Getwd()
		require.NoError(t, err)
		defer os.Chdir(originalDir)
		require.NoError(t, os.Chdir(tempDir))

		dirs, err := scanner.ScanDirectories(newConfig("./..."))
		require.NoError(t, err)

		assert.Len(t, dirs, 3)
		for _, dir := range dirs {
			relDir, err := filepath.Rel(tempDir, dir)
			require.NoError(t, err)

			switch relDir {
			case "shapes", "protocol", filepath.Join("protocol", "nested"):
				// Expected directories
			default:
				t.Errorf("Unexpected directory found: %s", relDir)
			}
		}
	})

	t.Run("nonexistent plain root", func(t *testing.T) {
		_, err := scanner.ScanDirectories(newConfig(filepath.Join(tempDir, "missing")))
		assert.Error(t, err)
	})

	t.Run("nonexistent recursive root", func(t *testing.T) {
		_, err := scanner.ScanDirectories(newConfig(filepath.Join(tempDir, "missing") + "/..."))
		assert.Error(t, err)
	})
}

func TestDirectoryScanner_ListDeclFiles(t *testing.T) {
	tempDir := t.TempDir()

	writeTree(t, tempDir, map[string]string{
		"zoo.sum":      "interface Zoo {}",
		"apple.sum":    "interface Apple {}",
		"zoo_gen.sum":  "// generated",
		"notes.txt":    "not a declaration",
		"sub/deep.sum": "interface Deep {}",
	})

	scanner := NewDirectoryScanner()
	config := DefaultConfig()

	files, err := scanner.ListDeclFiles(tempDir, &config)
	require.NoError(t, err)

	assert.Equal(t, []string{
		filepath.Join(tempDir, "apple.sum"),
		filepath.Join(tempDir, "zoo.sum"),
	}, files)
}
