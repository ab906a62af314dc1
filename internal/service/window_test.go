package service

import (
	"testing"
	"time"
)

func TestFeedWindow(t *testing.T) {
	lastPublished := time.Date(2025, 6, 3, 15, 30, 0, 0, time.Local)
	w := newFeedWindow(lastPublished, 2)

	want := time.Date(2025, 6, 1, 0, 0, 0, 0, time.Local)
	if !w.Until().Equal(want) {
		t.Fatalf("Until() = %v, want %v", w.Until(), want)
	}

	tests := []struct {
		name string
		at   time.Time
		want bool
	}{
		{"after bound", time.Date(2025, 6, 2, 9, 0, 0, 0, time.Local), true},
		{"exactly at bound", want, true},
		{"before bound", time.Date(2025, 5, 31, 23, 59, 59, 0, time.Local), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := w.Includes(tt.at); got != tt.want {
				t.Errorf("Includes(%v) = %v, want %v", tt.at, got, tt.want)
			}
		})
	}
}

func TestFeedWindowNoHistory(t *testing.T) {
	// 无存量数据时以当前时刻为基准
	w := newFeedWindow(time.Time{}, 2)
	wantMax := time.Now()
	if w.Until().After(wantMax) {
		t.Errorf("Until() = %v, should not be in the future", w.Until())
	}
	if w.Until().Before(wantMax.AddDate(0, 0, -3)) {
		t.Errorf("Until() = %v, lookback too deep", w.Until())
	}
}

func TestRunClock(t *testing.T) {
	clock := runClock{limit: time.Second}

	if _, over := clock.exceeded(time.Now()); over {
		t.Error("fresh start should not exceed the limit")
	}
	elapsed, over := clock.exceeded(time.Now().Add(-2 * time.Second))
	if !over {
		t.Error("2s elapsed should exceed a 1s limit")
	}
	if elapsed < 2*time.Second {
		t.Errorf("elapsed = %v, want >= 2s", elapsed)
	}
}
