package resilience

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestSingleFlight_CollapsesConcurrentCallers(t *testing.T) {
	var g SingleFlight
	var executions int32

	const callers = 16
	release := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(callers)

	for i := 0; i < callers; i++ {
		go func() {
			defer wg.Done()
			<-release
			val, err, _ := g.Do("points-feed", func() (any, error) {
				atomic.AddInt32(&executions, 1)
				time.Sleep(20 * time.Millisecond)
				return "rows", nil
			})
			if err != nil {
				t.Errorf("singleflight call failed: %v", err)
			}
			if val != "rows" {
				t.Errorf("unexpected shared value: %v", val)
			}
		}()
	}

	close(release)
	wg.Wait()

	if got := atomic.LoadInt32(&executions); got != 1 {
		t.Fatalf("expected one execution, got %d", got)
	}
}

func TestSingleFlight_DistinctKeysRunIndependently(t *testing.T) {
	var g SingleFlight

	a, _, shared := g.Do("key-a", func() (any, error) { return 1, nil })
	if shared {
		t.Fatalf("sole caller must not be marked shared")
	}
	b, _, _ := g.Do("key-b", func() (any, error) { return 2, nil })
	if a == b {
		t.Fatalf("distinct keys must not share results")
	}
}
