package xlevel_test

import (
	"errors"
	"testing"

	"github.com/omeyang/logkit/pkg/xlevel"
)

func TestLevel_Ordering(t *testing.T) {
	// fatal > error > warn > info > debug > trace，固定不可变
	ordered := xlevel.Levels()
	want := []xlevel.Level{
		xlevel.LevelFatal,
		xlevel.LevelError,
		xlevel.LevelWarn,
		xlevel.LevelInfo,
		xlevel.LevelDebug,
		xlevel.LevelTrace,
	}
	if len(ordered) != len(want) {
		t.Fatalf("Levels() returned %d levels, want %d", len(ordered), len(want))
	}
	for i, l := range want {
		if ordered[i] != l {
			t.Errorf("Levels()[%d] = %v, want %v", i, ordered[i], l)
		}
	}
}

func TestLevel_AtLeast(t *testing.T) {
	tests := []struct {
		l, other xlevel.Level
		want     bool
	}{
		{xlevel.LevelFatal, xlevel.LevelTrace, true},
		{xlevel.LevelFatal, xlevel.LevelFatal, true},
		{xlevel.LevelError, xlevel.LevelWarn, true},
		{xlevel.LevelWarn, xlevel.LevelWarn, true},
		{xlevel.LevelWarn, xlevel.LevelError, false},
		{xlevel.LevelTrace, xlevel.LevelDebug, false},
		{xlevel.LevelInfo, xlevel.LevelInfo, true},
		{xlevel.LevelDebug, xlevel.LevelInfo, false},
	}
	for _, tt := range tests {
		if got := tt.l.AtLeast(tt.other); got != tt.want {
			t.Errorf("%v.AtLeast(%v) = %v, want %v", tt.l, tt.other, got, tt.want)
		}
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    xlevel.Level
		wantErr bool
	}{
		{"fatal", xlevel.LevelFatal, false},
		{"ERROR", xlevel.LevelError, false},
		{" warn ", xlevel.LevelWarn, false},
		{"warning", xlevel.LevelWarn, false},
		{"Info", xlevel.LevelInfo, false},
		{"debug", xlevel.LevelDebug, false},
		{"trace", xlevel.LevelTrace, false},
		{"verbose", 0, true},
		{"", 0, true},
	}
	for _, tt := range tests {
		got, err := xlevel.ParseLevel(tt.in)
		if tt.wantErr {
			if !errors.Is(err, xlevel.ErrUnknownLevel) {
				t.Errorf("ParseLevel(%q) error = %v, want ErrUnknownLevel", tt.in, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseLevel(%q) unexpected error: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestLevel_TextRoundTrip(t *testing.T) {
	for _, l := range xlevel.Levels() {
		data, err := l.MarshalText()
		if err != nil {
			t.Fatalf("MarshalText(%v) error: %v", l, err)
		}
		var back xlevel.Level
		if err := back.UnmarshalText(data); err != nil {
			t.Fatalf("UnmarshalText(%q) error: %v", data, err)
		}
		if back != l {
			t.Errorf("round trip %v -> %q -> %v", l, data, back)
		}
	}
}
