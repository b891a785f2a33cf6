package xrotate

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestNewLumberjack_Validation(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "app.log")

	tests := []struct {
		name     string
		filename string
		opts     []Option
		wantErr  error
	}{
		{"empty filename", "", nil, ErrEmptyFilename},
		{"zero max size", path, []Option{WithMaxSizeMB(0)}, ErrInvalidMaxSize},
		{"oversized max size", path, []Option{WithMaxSizeMB(20000)}, ErrInvalidMaxSize},
		{"negative backups", path, []Option{WithMaxBackups(-1)}, ErrInvalidMaxBackups},
		{"sub-second interval", path, []Option{WithInterval(10 * time.Millisecond)}, ErrInvalidInterval},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewLumberjack(tt.filename, tt.opts...)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("NewLumberjack() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestLumberjack_WriteAndClose(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "app.log")

	r, err := NewLumberjack(path, WithMaxSizeMB(1), WithMaxBackups(2))
	if err != nil {
		t.Fatalf("NewLumberjack() error: %v", err)
	}

	if _, err := r.Write([]byte("hello\n")); err != nil {
		t.Fatalf("Write() error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if string(data) != "hello\n" {
		t.Errorf("file content = %q, want %q", data, "hello\n")
	}

	if err := r.Close(); err != nil {
		t.Fatalf("Close() error: %v", err)
	}

	// 关闭后的契约
	if _, err := r.Write([]byte("late\n")); !errors.Is(err, ErrClosed) {
		t.Errorf("Write() after Close error = %v, want ErrClosed", err)
	}
	if err := r.Rotate(); !errors.Is(err, ErrClosed) {
		t.Errorf("Rotate() after Close error = %v, want ErrClosed", err)
	}
	if err := r.Close(); !errors.Is(err, ErrClosed) {
		t.Errorf("second Close() error = %v, want ErrClosed", err)
	}
}

func TestLumberjack_ManualRotate(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "app.log")

	r, err := NewLumberjack(path, WithMaxSizeMB(1), WithMaxBackups(3))
	if err != nil {
		t.Fatalf("NewLumberjack() error: %v", err)
	}
	defer r.Close() //nolint:errcheck

	if _, err := r.Write([]byte("before rotate\n")); err != nil {
		t.Fatalf("Write() error: %v", err)
	}
	if err := r.Rotate(); err != nil {
		t.Fatalf("Rotate() error: %v", err)
	}
	if _, err := r.Write([]byte("after rotate\n")); err != nil {
		t.Fatalf("Write() after Rotate error: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	if len(entries) < 2 {
		t.Errorf("expected backup file after rotate, found %d entries", len(entries))
	}
}

func TestLumberjack_IntervalScheduleLifecycle(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")

	// 调度器随 Close 停止（goleak 的 TestMain 会捕获泄漏的 cron goroutine）
	r, err := NewLumberjack(path, WithInterval(time.Hour))
	if err != nil {
		t.Fatalf("NewLumberjack() error: %v", err)
	}
	if _, err := r.Write([]byte("scheduled\n")); err != nil {
		t.Fatalf("Write() error: %v", err)
	}
	if err := r.Close(); err != nil {
		t.Fatalf("Close() error: %v", err)
	}
}

func TestWithMaxSizeBytes(t *testing.T) {
	tests := []struct {
		bytes int64
		want  int
	}{
		{1, 1},
		{1024 * 1024, 1},
		{1024*1024 + 1, 2},
		{10_000_000, 10},
		{50_000_000, 48},
	}
	for _, tt := range tests {
		var cfg lumberjackConfig
		WithMaxSizeBytes(tt.bytes)(&cfg)
		if cfg.MaxSizeMB != tt.want {
			t.Errorf("WithMaxSizeBytes(%d) -> MaxSizeMB = %d, want %d", tt.bytes, cfg.MaxSizeMB, tt.want)
		}
	}
}
