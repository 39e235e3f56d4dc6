package watcher

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type changes struct {
	mu    sync.Mutex
	files []string
}

func (c *changes) record(file string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.files = append(c.files, file)
}

func (c *changes) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.files)
}

func newWatcher(t *testing.T, debounce time.Duration) *FileWatcher {
	t.Helper()
	log, _ := test.NewNullLogger()
	fw, err := NewFileWatcher(debounce, log)
	require.NoError(t, err)
	t.Cleanup(func() { fw.Close() })
	return fw
}

func TestWatchReportsWrites(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "flyview.toml")
	require.NoError(t, os.WriteFile(file, []byte("a"), 0o644))

	fw := newWatcher(t, 20*time.Millisecond)
	var got changes
	require.NoError(t, fw.Watch([]string{file}, got.record))
	fw.Start()

	require.NoError(t, os.WriteFile(file, []byte("b"), 0o644))

	require.Eventually(t, func() bool { return got.count() >= 1 }, 2*time.Second, 10*time.Millisecond)
	got.mu.Lock()
	assert.Equal(t, file, got.files[0])
	got.mu.Unlock()
}

func TestWatchDebouncesBursts(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "model.obj")
	require.NoError(t, os.WriteFile(file, nil, 0o644))

	fw := newWatcher(t, 200*time.Millisecond)
	var got changes
	require.NoError(t, fw.Watch([]string{file}, got.record))
	fw.Start()

	for i := 0; i < 5; i++ {
		require.NoError(t, os.WriteFile(file, []byte{byte(i)}, 0o644))
	}

	require.Eventually(t, func() bool { return got.count() >= 1 }, 3*time.Second, 10*time.Millisecond)
	time.Sleep(400 * time.Millisecond)
	assert.Equal(t, 1, got.count())
}

func TestWatchIgnoresSiblings(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "watched")
	other := filepath.Join(dir, "other")
	require.NoError(t, os.WriteFile(file, nil, 0o644))

	fw := newWatcher(t, 10*time.Millisecond)
	var got changes
	require.NoError(t, fw.Watch([]string{file}, got.record))
	fw.Start()

	require.NoError(t, os.WriteFile(other, []byte("x"), 0o644))
	time.Sleep(200 * time.Millisecond)
	assert.Zero(t, got.count())
}

func TestWatchSurvivesRenameReplace(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "scene.toml")
	require.NoError(t, os.WriteFile(file, []byte("old"), 0o644))

	fw := newWatcher(t, 20*time.Millisecond)
	var got changes
	require.NoError(t, fw.Watch([]string{file}, got.record))
	fw.Start()

	tmp := filepath.Join(dir, "scene.toml.tmp")
	require.NoError(t, os.WriteFile(tmp, []byte("new"), 0o644))
	require.NoError(t, os.Rename(tmp, file))

	require.Eventually(t, func() bool { return got.count() >= 1 }, 2*time.Second, 10*time.Millisecond)
}

func TestWatchMissingDirectory(t *testing.T) {
	fw := newWatcher(t, time.Millisecond)

	err := fw.Watch([]string{filepath.Join(t.TempDir(), "nope", "file")}, func(string) {})
	assert.Error(t, err)
}

func TestRemoveAll(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "f")
	require.NoError(t, os.WriteFile(file, nil, 0o644))

	fw := newWatcher(t, 10*time.Millisecond)
	var got changes
	require.NoError(t, fw.Watch([]string{file}, got.record))
	fw.Start()
	require.NoError(t, fw.RemoveAll())

	require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))
	time.Sleep(200 * time.Millisecond)
	assert.Zero(t, got.count())
}

func TestCloseWithoutStart(t *testing.T) {
	log, _ := test.NewNullLogger()
	fw, err := NewFileWatcher(time.Millisecond, log)
	require.NoError(t, err)

	assert.NoError(t, fw.Close())
}
