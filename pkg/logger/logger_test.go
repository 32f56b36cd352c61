package logger

import (
	"bytes"
	"log"
	"strings"
	"testing"
)

func TestStandardLoggerPrefixes(t *testing.T) {
	cases := []struct {
		name   string
		call   func(Logger)
		prefix string
		want   string
	}{
		{"info", func(l Logger) { l.Info("fetched timetable for %s", "2026-03-10") }, "[INFO]", "fetched timetable for 2026-03-10"},
		{"warning", func(l Logger) { l.Warning("fetch failed, serving cached") }, "[WARNING]", "fetch failed, serving cached"},
		{"error", func(l Logger) { l.Error("playback failed: %v", "refused") }, "[ERROR]", "playback failed: refused"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			l := NewStandardLogger(log.New(buf, "", 0))
			tc.call(l)
			out := buf.String()
			if !strings.Contains(out, tc.prefix) {
				t.Errorf("expected %s prefix, got: %s", tc.prefix, out)
			}
			if !strings.Contains(out, tc.want) {
				t.Errorf("expected message content, got: %s", out)
			}
		})
	}
}

func TestStandardLoggerClose(t *testing.T) {
	l := NewStandardLogger(log.New(&bytes.Buffer{}, "", 0))
	if err := l.Close(); err != nil {
		t.Errorf("expected nil error, got: %v", err)
	}
}

func TestNopLogger(t *testing.T) {
	l := NewNopLogger()
	l.Info("test")
	l.Warning("test")
	l.Error("test")
	if err := l.Close(); err != nil {
		t.Errorf("expected nil error, got: %v", err)
	}
}

func TestMockLoggerRecordsCalls(t *testing.T) {
	l := NewMockLogger()
	l.Info("info %d", 1)
	l.Warning("warn %s", "x")
	l.Error("err %v", "fail")

	if len(l.InfoCalls) != 1 || l.InfoCalls[0] != "info 1" {
		t.Errorf("info calls = %v", l.InfoCalls)
	}
	if len(l.WarningCalls) != 1 || l.WarningCalls[0] != "warn x" {
		t.Errorf("warning calls = %v", l.WarningCalls)
	}
	if len(l.ErrorCalls) != 1 || l.ErrorCalls[0] != "err fail" {
		t.Errorf("error calls = %v", l.ErrorCalls)
	}
	if l.CloseCalled {
		t.Error("CloseCalled should be false before Close")
	}
	if err := l.Close(); err != nil {
		t.Errorf("Close: %v", err)
	}
	if !l.CloseCalled {
		t.Error("CloseCalled should be true after Close")
	}
}

func TestMultiLoggerBroadcastsToAll(t *testing.T) {
	m1, m2 := NewMockLogger(), NewMockLogger()
	multi := NewMultiLogger(m1, m2)

	multi.Info("info msg")
	multi.Warning("warn msg")
	multi.Error("error msg")

	for i, m := range []*MockLogger{m1, m2} {
		if len(m.InfoCalls) != 1 || m.InfoCalls[0] != "info msg" {
			t.Errorf("logger %d missed info", i)
		}
		if len(m.WarningCalls) != 1 || m.WarningCalls[0] != "warn msg" {
			t.Errorf("logger %d missed warning", i)
		}
		if len(m.ErrorCalls) != 1 || m.ErrorCalls[0] != "error msg" {
			t.Errorf("logger %d missed error", i)
		}
	}

	if err := multi.Close(); err != nil {
		t.Errorf("Close: %v", err)
	}
	if !m1.CloseCalled || !m2.CloseCalled {
		t.Error("multi close should close all loggers")
	}
}

func TestMultiLoggerEmpty(t *testing.T) {
	multi := NewMultiLogger()
	multi.Info("test")
	if err := multi.Close(); err != nil {
		t.Errorf("Close: %v", err)
	}
}

func TestToStdLoggerForwardsAtInfoLevel(t *testing.T) {
	mock := NewMockLogger()
	std := ToStdLogger(mock)

	std.Println("accepted connection")

	if len(mock.InfoCalls) != 1 {
		t.Fatalf("info calls = %d, want 1", len(mock.InfoCalls))
	}
	if mock.InfoCalls[0] != "accepted connection" {
		t.Errorf("forwarded line = %q", mock.InfoCalls[0])
	}
}
