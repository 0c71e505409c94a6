package watcher

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/nguyentantai21042004/qa-video/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsCSVFile(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"data/input/quiz.csv", true},
		{"QUIZ.CSV", true},
		{"quiz.csv.tmp", false},
		{"quiz.txt", false},
		{".~lock.quiz.csv", false},
		{"csv", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, isCSVFile(tt.path), tt.path)
	}
}

func TestNewMissingDir(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "missing"), nil, logger.New("error"), 1)
	assert.Error(t, err)
}

func TestStartHandlesNewCSV(t *testing.T) {
	dir := t.TempDir()

	var (
		mu   sync.Mutex
		seen []string
	)
	got := make(chan struct{}, 4)
	handler := func(ctx context.Context, path string) error {
		mu.Lock()
		seen = append(seen, filepath.Base(path))
		mu.Unlock()
		got <- struct{}{}
		return nil
	}

	w, err := New(dir, handler, logger.New("error"), 1)
	require.NoError(t, err)
	defer w.Stop()
	w.(*implWatcher).settle = 0

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Start(ctx) }()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "quiz.csv"), []byte("q,a\n"), 0644))

	select {
	case <-got:
	case <-time.After(5 * time.Second):
		t.Fatal("handler was not called")
	}

	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not stop")
	}

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{"quiz.csv"}, seen)
}
