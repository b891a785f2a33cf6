package xconf_test

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omeyang/logkit/pkg/xconf"
	"github.com/omeyang/logkit/pkg/xlevel"
)

func boolPtr(b bool) *bool    { return &b }
func strPtr(s string) *string { return &s }
func intPtr(n int) *int       { return &n }

func TestResolve_AllDefaults(t *testing.T) {
	t.Setenv(xconf.EnvRuntime, "")

	resolved, err := xconf.Resolve(xconf.Config{})
	require.NoError(t, err)

	assert.Equal(t, xlevel.LevelInfo, resolved.Level)
	assert.True(t, resolved.PrettyPrint)
	assert.Equal(t, xconf.DefaultDestination(), resolved.Destination)

	assert.Equal(t, 24*time.Hour, resolved.Rotation.Interval)
	assert.Equal(t, int64(10_000_000), resolved.Rotation.SizeBytes)
	assert.Equal(t, 5, resolved.Rotation.MaxFiles)

	require.Len(t, resolved.LevelFiles, 6)
	dir := filepath.Dir(xconf.DefaultDestination())
	for _, lf := range resolved.LevelFiles {
		wantEnabled := lf.Level == xlevel.LevelFatal || lf.Level == xlevel.LevelError
		assert.Equal(t, wantEnabled, lf.Enabled, "level %s", lf.Level)
		assert.Equal(t, filepath.Join(dir, lf.Level.String()+".log"), lf.Destination)
		assert.Equal(t, resolved.Rotation, lf.Rotation)
	}

	assert.Nil(t, resolved.Redaction)
}

func TestResolve_LevelFilesOrder(t *testing.T) {
	resolved, err := xconf.Resolve(xconf.Config{})
	require.NoError(t, err)

	want := xlevel.Levels()
	for i, lf := range resolved.LevelFiles {
		assert.Equal(t, want[i], lf.Level)
	}
}

func TestResolve_PrettyPrintProduction(t *testing.T) {
	t.Setenv(xconf.EnvRuntime, "production")

	resolved, err := xconf.Resolve(xconf.Config{})
	require.NoError(t, err)
	assert.False(t, resolved.PrettyPrint)

	// 显式设置优先于环境推断
	resolved, err = xconf.Resolve(xconf.Config{PrettyPrint: boolPtr(true)})
	require.NoError(t, err)
	assert.True(t, resolved.PrettyPrint)
}

func TestResolve_RotationSubkeyMerge(t *testing.T) {
	// 只给出 size，interval 和 maxFiles 保留默认值
	resolved, err := xconf.Resolve(xconf.Config{
		Rotation: xconf.Rotation{Size: "50M"},
	})
	require.NoError(t, err)

	assert.Equal(t, 24*time.Hour, resolved.Rotation.Interval)
	assert.Equal(t, int64(50_000_000), resolved.Rotation.SizeBytes)
	assert.Equal(t, 5, resolved.Rotation.MaxFiles)
}

func TestResolve_RotationInterval(t *testing.T) {
	tests := []struct {
		in   string
		want time.Duration
	}{
		{"12h", 12 * time.Hour},
		{"1d", 24 * time.Hour},
		{"2w", 14 * 24 * time.Hour},
		{"90m", 90 * time.Minute},
	}
	for _, tt := range tests {
		resolved, err := xconf.Resolve(xconf.Config{
			Rotation: xconf.Rotation{Interval: tt.in},
		})
		require.NoError(t, err, "interval %q", tt.in)
		assert.Equal(t, tt.want, resolved.Rotation.Interval, "interval %q", tt.in)
	}
}

func TestResolve_LevelFilesSubkeyMerge(t *testing.T) {
	resolved, err := xconf.Resolve(xconf.Config{
		Destination: strPtr("/srv/logs/app.log"),
		LevelFiles: map[string]xconf.LevelFile{
			"warn": {Enabled: boolPtr(true)},
			"fatal": {
				Destination: "/srv/alerts/fatal.log",
			},
			"error": {
				Rotation: &xconf.Rotation{MaxFiles: intPtr(20)},
			},
		},
	})
	require.NoError(t, err)

	byLevel := make(map[xlevel.Level]xconf.ResolvedLevelFile)
	for _, lf := range resolved.LevelFiles {
		byLevel[lf.Level] = lf
	}

	// warn: 启用且派生路径来自主目标目录
	assert.True(t, byLevel[xlevel.LevelWarn].Enabled)
	assert.Equal(t, "/srv/logs/warn.log", byLevel[xlevel.LevelWarn].Destination)

	// fatal: 只给出 destination，enabled 保留默认 true
	assert.True(t, byLevel[xlevel.LevelFatal].Enabled)
	assert.Equal(t, "/srv/alerts/fatal.log", byLevel[xlevel.LevelFatal].Destination)

	// error: 覆盖 maxFiles，其余轮转子键沿用全局策略
	assert.Equal(t, 20, byLevel[xlevel.LevelError].Rotation.MaxFiles)
	assert.Equal(t, resolved.Rotation.Interval, byLevel[xlevel.LevelError].Rotation.Interval)
	assert.Equal(t, resolved.Rotation.SizeBytes, byLevel[xlevel.LevelError].Rotation.SizeBytes)

	// 未提及的级别保持默认禁用
	assert.False(t, byLevel[xlevel.LevelInfo].Enabled)
}

func TestResolve_LevelFileWithoutPrimaryDestination(t *testing.T) {
	// 主目标被显式禁用时，级别文件仍从默认目标目录派生路径
	resolved, err := xconf.Resolve(xconf.Config{
		Destination: strPtr(""),
		LevelFiles: map[string]xconf.LevelFile{
			"warn": {Enabled: boolPtr(true)},
		},
	})
	require.NoError(t, err)

	assert.Empty(t, resolved.Destination)

	dir := filepath.Dir(xconf.DefaultDestination())
	for _, lf := range resolved.LevelFiles {
		if lf.Level == xlevel.LevelWarn {
			assert.True(t, lf.Enabled)
			assert.Equal(t, filepath.Join(dir, "warn.log"), lf.Destination)
		}
	}
}

func TestResolve_Redaction(t *testing.T) {
	resolved, err := xconf.Resolve(xconf.Config{
		Redaction: &xconf.Redaction{Paths: []string{"password", "req.token"}},
	})
	require.NoError(t, err)
	require.NotNil(t, resolved.Redaction)
	assert.Equal(t, xconf.DefaultCensor, resolved.Redaction.Censor)
	assert.Equal(t, []string{"password", "req.token"}, resolved.Redaction.Paths)

	resolved, err = xconf.Resolve(xconf.Config{
		Redaction: &xconf.Redaction{Paths: []string{"password"}, Censor: "***"},
	})
	require.NoError(t, err)
	assert.Equal(t, "***", resolved.Redaction.Censor)
}

func TestResolve_ValidationErrors(t *testing.T) {
	tests := []struct {
		name    string
		cfg     xconf.Config
		wantErr error
	}{
		{
			"unknown level",
			xconf.Config{Level: "verbose"},
			xconf.ErrInvalidLevel,
		},
		{
			"zero maxFiles",
			xconf.Config{Rotation: xconf.Rotation{MaxFiles: intPtr(0)}},
			xconf.ErrInvalidMaxFiles,
		},
		{
			"negative maxFiles",
			xconf.Config{Rotation: xconf.Rotation{MaxFiles: intPtr(-3)}},
			xconf.ErrInvalidMaxFiles,
		},
		{
			"empty redaction paths",
			xconf.Config{Redaction: &xconf.Redaction{}},
			xconf.ErrEmptyRedactPaths,
		},
		{
			"bad interval",
			xconf.Config{Rotation: xconf.Rotation{Interval: "soon"}},
			xconf.ErrInvalidInterval,
		},
		{
			"bad size",
			xconf.Config{Rotation: xconf.Rotation{Size: "huge"}},
			xconf.ErrInvalidSize,
		},
		{
			"unknown levelFiles key",
			xconf.Config{LevelFiles: map[string]xconf.LevelFile{"verbose": {}}},
			xconf.ErrInvalidLevel,
		},
		{
			"traversal destination",
			xconf.Config{Destination: strPtr("../../etc/app.log")},
			xconf.ErrInvalidDestination,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := xconf.Resolve(tt.cfg)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestResolve_BaseContextCopied(t *testing.T) {
	base := map[string]any{"service": "api"}
	resolved, err := xconf.Resolve(xconf.Config{BaseContext: base})
	require.NoError(t, err)

	base["service"] = "mutated"
	assert.Equal(t, "api", resolved.BaseContext["service"])
}
