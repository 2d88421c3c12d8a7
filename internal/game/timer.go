package game

import (
	"math/rand/v2"
	"sync"
	"time"

	"github.com/rdhelms/deck-the-pockets/internal/random"
)

// Scheduler runs fn every d until the returned stop func is called. stop must
// be safe to call more than once and must not block on fn.
type Scheduler interface {
	Every(d time.Duration, fn func()) (stop func())
}

// Random is the source for ornament ids and hunt targets.
type Random interface {
	IntN(n int) int
}

// TickerScheduler is the wall-clock Scheduler backed by time.Ticker.
type TickerScheduler struct{}

func (TickerScheduler) Every(d time.Duration, fn func()) func() {
	t := time.NewTicker(d)
	done := make(chan struct{})
	go func() {
		defer t.Stop()
		for {
			select {
			case <-done:
				return
			case <-t.C:
				fn()
			}
		}
	}()
	var once sync.Once
	return func() { once.Do(func() { close(done) }) }
}

// NewRandom returns a PCG source seeded from crypto/rand.
func NewRandom() (Random, error) {
	seed, err := random.NewSeed()
	if err != nil {
		return nil, err
	}
	return rand.New(rand.NewPCG(uint64(seed), uint64(seed>>32)^0x9e3779b97f4a7c15)), nil
}

// huntTimer is the live countdown for one round. The engine compares its
// current timer against the one a tick belongs to, so a tick that was
// already waiting on the engine lock when the timer got cancelled is dropped.
type huntTimer struct {
	session *Session
	stop    func()
}

func (t *huntTimer) cancel() {
	if t != nil && t.stop != nil {
		t.stop()
	}
}
