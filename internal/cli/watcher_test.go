package cli

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatcher_IsDeclEvent(t *testing.T) {
	config := DefaultConfig()
	watcher := NewWatcher(newQuietGenerator(), config)

	testCases := []struct {
		name     string
		event    fsnotify.Event
		expected bool
	}{
		{
			name:     "declaration write",
			event:    fsnotify.Event{Name: "decls/shapes.sum", Op: fsnotify.Write},
			expected: true,
		},
		{
			name:     "declaration create",
			event:    fsnotify.Event{Name: "decls/new.sum", Op: fsnotify.Create},
			expected: true,
		},
		{
			name:     "declaration remove",
			event:    fsnotify.Event{Name: "decls/old.sum", Op: fsnotify.Remove},
			expected: true,
		},
		{
			name:     "declaration rename",
			event:    fsnotify.Event{Name: "decls/moved.sum", Op: fsnotify.Rename},
			expected: true,
		},
		{
			name:     "generated output is ignored",
			event:    fsnotify.Event{Name: "decls/shapes_gen.sum", Op: fsnotify.Write},
			expected: false,
		},
		{
			name:     "chmod is ignored",
			event:    fsnotify.Event{Name: "decls/shapes.sum", Op: fsnotify.Chmod},
			expected: false,
		},
		{
			name:     "unrelated extension is ignored",
			event:    fsnotify.Event{Name: "decls/notes.txt", Op: fsnotify.Write},
			expected: false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, watcher.isDeclEvent(tc.event))
		})
	}
}

func TestWatcher_RunGeneratesBeforeWatching(t *testing.T) {
	tempDir := t.TempDir()

	writeTree(t, tempDir, map[string]string{
		"shapes.sum": `interface Shape {
    fn area(&self) -> f64;
}

pub enum AnyShape {
    Rect(Rect),
}
`,
	})

	config := DefaultConfig()
	config.Roots = []string{tempDir + "/..."}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	watcher := NewWatcher(newQuietGenerator(), config)
	require.NoError(t, watcher.Run(ctx))

	// The initial generation ran before the canceled context was observed
	assert.FileExists(t, filepath.Join(tempDir, "shapes_gen.sum"))
}

func TestWatcher_RunSurvivesGenerationFailure(t *testing.T) {
	config := DefaultConfig()
	config.Roots = []string{t.TempDir() + "/..."}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	watcher := NewWatcher(newQuietGenerator(), config)

	var runErr error
	output := captureStderr(func() {
		runErr = watcher.Run(ctx)
	})

	// The failed initial generation is reported, not fatal
	require.NoError(t, runErr)
	assert.Contains(t, output, "no declaration files found")
}
