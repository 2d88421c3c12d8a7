package game

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestTickerSchedulerStops(t *testing.T) {
	var ticks atomic.Int32
	fired := make(chan struct{}, 16)
	stop := TickerScheduler{}.Every(2*time.Millisecond, func() {
		ticks.Add(1)
		fired <- struct{}{}
	})

	for i := 0; i < 2; i++ {
		select {
		case <-fired:
		case <-time.After(time.Second):
			t.Fatal("ticker never fired")
		}
	}
	stop()
	stop()

	// allow a tick that was already running when stop was called
	time.Sleep(10 * time.Millisecond)
	after := ticks.Load()
	time.Sleep(20 * time.Millisecond)
	if ticks.Load() != after {
		t.Fatalf("ticker kept firing after stop: %d -> %d", after, ticks.Load())
	}
}

func TestNewRandom(t *testing.T) {
	r, err := NewRandom()
	if err != nil {
		t.Fatalf("random: %v", err)
	}
	for i := 0; i < 100; i++ {
		if v := r.IntN(3); v < 0 || v >= 3 {
			t.Fatalf("IntN(3) out of range: %d", v)
		}
	}
}
