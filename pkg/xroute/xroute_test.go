package xroute_test

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/omeyang/logkit/pkg/xconf"
	"github.com/omeyang/logkit/pkg/xlevel"
	"github.com/omeyang/logkit/pkg/xroute"
	"github.com/omeyang/logkit/pkg/xsink"
)

// testCleanup 测试辅助函数，在测试结束时执行 cleanup
func testCleanup(t *testing.T, cleanup func() error) {
	t.Helper()
	t.Cleanup(func() {
		if err := cleanup(); err != nil {
			t.Errorf("cleanup error: %v", err)
		}
	})
}

func boolPtr(b bool) *bool    { return &b }
func strPtr(s string) *string { return &s }

// readJSONLines 读取 JSON Lines 文件并解码每行
func readJSONLines(t *testing.T, path string) []map[string]any {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile(%s): %v", path, err)
	}
	var out []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(string(data)), "\n") {
		if line == "" {
			continue
		}
		var m map[string]any
		if err := json.Unmarshal([]byte(line), &m); err != nil {
			t.Fatalf("bad JSON line %q: %v", line, err)
		}
		out = append(out, m)
	}
	return out
}

// =============================================================================
// 端到端：配置 → sink 计划 → 路由 → 落盘
// =============================================================================

func TestNew_EndToEnd(t *testing.T) {
	dir := t.TempDir()
	cfg := xconf.Config{
		Level:       "debug",
		PrettyPrint: boolPtr(false),
		Destination: strPtr(filepath.Join(dir, "app.log")),
	}

	r, cleanup, err := xroute.New(cfg)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	r.Debug("debug event")
	r.Info("info event", xroute.Fields{"k": "v"})
	r.Error("error event")

	if err := cleanup(); err != nil {
		t.Fatalf("cleanup error: %v", err)
	}

	// 主输出按阈值接收全部三条
	primary := readJSONLines(t, filepath.Join(dir, "app.log"))
	if len(primary) != 3 {
		t.Fatalf("primary lines = %d, want 3", len(primary))
	}
	if primary[1]["msg"] != "info event" || primary[1]["k"] != "v" {
		t.Errorf("primary[1] = %v", primary[1])
	}

	// error.log 默认启用，精确匹配：只有 error 事件
	errLines := readJSONLines(t, filepath.Join(dir, "error.log"))
	if len(errLines) != 1 {
		t.Fatalf("error.log lines = %d, want 1", len(errLines))
	}
	if errLines[0]["level"] != "error" || errLines[0]["msg"] != "error event" {
		t.Errorf("error.log[0] = %v", errLines[0])
	}
}

// 同一事件落入且仅落入自己级别的专属文件
func TestNew_PerLevelExclusivity(t *testing.T) {
	dir := t.TempDir()
	cfg := xconf.Config{
		Level:       "trace",
		PrettyPrint: boolPtr(false),
		Destination: strPtr(""),
		LevelFiles: map[string]xconf.LevelFile{
			"fatal": {Enabled: boolPtr(false)},
			"warn":  {Enabled: boolPtr(true), Destination: filepath.Join(dir, "warn.log")},
			"error": {Enabled: boolPtr(true), Destination: filepath.Join(dir, "error.log")},
		},
	}

	r, cleanup, err := xroute.New(cfg)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	r.Warn("warn only")
	r.Error("error only")

	if err := cleanup(); err != nil {
		t.Fatalf("cleanup error: %v", err)
	}

	warnLines := readJSONLines(t, filepath.Join(dir, "warn.log"))
	if len(warnLines) != 1 || warnLines[0]["msg"] != "warn only" {
		t.Errorf("warn.log = %v", warnLines)
	}
	errLines := readJSONLines(t, filepath.Join(dir, "error.log"))
	if len(errLines) != 1 || errLines[0]["msg"] != "error only" {
		t.Errorf("error.log = %v", errLines)
	}
}

func TestNew_InvalidConfig(t *testing.T) {
	r, cleanup, err := xroute.New(xconf.Config{Level: "verbose"})
	if err == nil {
		t.Fatal("New() with invalid level should fail")
	}
	if !errors.Is(err, xconf.ErrInvalidLevel) {
		t.Errorf("err = %v, want ErrInvalidLevel", err)
	}
	if r != nil || cleanup != nil {
		t.Error("invalid config must not construct a router")
	}
}

// sink 构造部分失败：已构造的 sink 保留并可用，错误同时返回
func TestNew_PartialSinkFailure(t *testing.T) {
	dir := t.TempDir()
	// 用一个普通文件占住 error sink 的目标目录，迫使建目录失败
	blocked := filepath.Join(dir, "blocked")
	if err := os.WriteFile(blocked, []byte("x"), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	cfg := xconf.Config{
		PrettyPrint: boolPtr(false),
		Destination: strPtr(filepath.Join(dir, "app.log")),
		LevelFiles: map[string]xconf.LevelFile{
			"error": {Enabled: boolPtr(true), Destination: filepath.Join(blocked, "error.log")},
		},
	}

	r, cleanup, err := xroute.New(cfg)
	if err == nil {
		t.Fatal("New() should report sink construction failure")
	}
	if !errors.Is(err, xsink.ErrSinkConstruction) {
		t.Errorf("err = %v, want ErrSinkConstruction", err)
	}
	if r == nil {
		t.Fatal("partial router must still be returned")
	}
	testCleanup(t, cleanup)

	// 已构造的主 sink 继续工作
	r.Info("degraded but alive")
	if !r.Enabled(xlevel.LevelInfo) {
		t.Error("primary sink should still accept events")
	}

	lines := readJSONLines(t, filepath.Join(dir, "app.log"))
	if len(lines) != 1 || lines[0]["msg"] != "degraded but alive" {
		t.Errorf("app.log = %v", lines)
	}
}

func TestRouter_CleanupIdempotent(t *testing.T) {
	dir := t.TempDir()
	_, cleanup, err := xroute.New(xconf.Config{
		PrettyPrint: boolPtr(false),
		Destination: strPtr(filepath.Join(dir, "app.log")),
	})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	if err := cleanup(); err != nil {
		t.Fatalf("first cleanup: %v", err)
	}
	if err := cleanup(); err != nil {
		t.Fatalf("second cleanup: %v", err)
	}
}
