package resilience

import "sync"

// SingleFlight collapses concurrent calls for the same key into one
// execution. Followers block until the leader finishes and receive the
// leader's result.
type SingleFlight struct {
	mu       sync.Mutex
	inflight map[string]*flight
}

type flight struct {
	done sync.WaitGroup
	val  any
	err  error
}

// Do runs fn once per key at a time. The third return value reports
// whether the result was shared from another caller's execution.
func (g *SingleFlight) Do(key string, fn func() (any, error)) (any, error, bool) {
	g.mu.Lock()
	if g.inflight == nil {
		g.inflight = make(map[string]*flight)
	}
	if leader, ok := g.inflight[key]; ok {
		g.mu.Unlock()
		leader.done.Wait()
		return leader.val, leader.err, true
	}

	f := &flight{}
	f.done.Add(1)
	g.inflight[key] = f
	g.mu.Unlock()

	f.val, f.err = fn()
	f.done.Done()

	g.mu.Lock()
	delete(g.inflight, key)
	g.mu.Unlock()

	return f.val, f.err, false
}
