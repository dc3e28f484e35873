package inflight

import (
	"sync"
	"sync/atomic"
	"testing"

	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestTryAcquire_RejectsDuplicate(t *testing.T) {
	g := New()
	key := Key("sess-1", "slhd", "finalize")

	release, ok := g.TryAcquire(key)
	if !ok {
		t.Fatal("first acquire should succeed")
	}
	if _, ok := g.TryAcquire(key); ok {
		t.Fatal("second acquire while busy should fail")
	}
	if !g.Busy(key) {
		t.Error("key should be busy")
	}

	release()
	release()
	if g.Busy(key) {
		t.Error("key should be free after release")
	}
	if _, ok := g.TryAcquire(key); !ok {
		t.Error("acquire after release should succeed")
	}
}

func TestTryAcquire_IndependentKeys(t *testing.T) {
	var g Guard
	if _, ok := g.TryAcquire(Key("a", "upload")); !ok {
		t.Fatal("acquire a")
	}
	if _, ok := g.TryAcquire(Key("b", "upload")); !ok {
		t.Error("another session must not be blocked")
	}
	if _, ok := g.TryAcquire(Key("a", "finalize")); !ok {
		t.Error("another control must not be blocked")
	}
}

func TestTryAcquire_ConcurrentSingleWinner(t *testing.T) {
	g := New()
	var wins atomic.Int32
	var wg sync.WaitGroup
	start := make(chan struct{})
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			if _, ok := g.TryAcquire("same"); ok {
				wins.Add(1)
			}
		}()
	}
	close(start)
	wg.Wait()
	if wins.Load() != 1 {
		t.Errorf("winners = %d, want 1", wins.Load())
	}
}
