package resilience

import (
	"errors"
	"sync"
	"time"
)

var ErrCircuitOpen = errors.New("circuit breaker is open")

type CircuitState string

const (
	CircuitStateClosed   CircuitState = "closed"
	CircuitStateOpen     CircuitState = "open"
	CircuitStateHalfOpen CircuitState = "half_open"
)

// CircuitBreaker guards an outbound dependency. Closed counts
// consecutive failures, open rejects until the timeout elapses, half
// open admits a bounded probe window and closes again only after every
// probe succeeded.
type CircuitBreaker struct {
	mu sync.Mutex

	failureThreshold int
	openTimeout      time.Duration
	halfOpenMaxReq   int

	state         CircuitState
	failureStreak int
	openedAt      time.Time
	probesInUse   int
	probesPassed  int
	now           func() time.Time
}

func NewCircuitBreaker(failureThreshold int, openTimeout time.Duration, halfOpenMaxReq int) *CircuitBreaker {
	if failureThreshold < 1 {
		failureThreshold = 1
	}
	if openTimeout <= 0 {
		openTimeout = 15 * time.Second
	}
	if halfOpenMaxReq < 1 {
		halfOpenMaxReq = 1
	}

	return &CircuitBreaker{
		failureThreshold: failureThreshold,
		openTimeout:      openTimeout,
		halfOpenMaxReq:   halfOpenMaxReq,
		state:            CircuitStateClosed,
		now:              time.Now,
	}
}

// Allow reports whether a call may proceed, reserving a probe slot
// when the breaker is half open.
func (b *CircuitBreaker) Allow() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.state == CircuitStateOpen {
		if b.now().Sub(b.openedAt) < b.openTimeout {
			return ErrCircuitOpen
		}
		b.enterHalfOpen()
	}

	if b.state == CircuitStateHalfOpen {
		if b.probesInUse >= b.halfOpenMaxReq {
			return ErrCircuitOpen
		}
		b.probesInUse++
	}

	return nil
}

func (b *CircuitBreaker) RecordSuccess() {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.state {
	case CircuitStateClosed:
		b.failureStreak = 0
	case CircuitStateHalfOpen:
		if b.probesInUse > 0 {
			b.probesInUse--
		}
		b.probesPassed++
		if b.probesPassed >= b.halfOpenMaxReq && b.probesInUse == 0 {
			b.enterClosed()
		}
	}
}

func (b *CircuitBreaker) RecordFailure() {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.state {
	case CircuitStateClosed:
		b.failureStreak++
		if b.failureStreak >= b.failureThreshold {
			b.enterOpen()
		}
	case CircuitStateHalfOpen:
		// One failed probe reopens the breaker immediately.
		if b.probesInUse > 0 {
			b.probesInUse--
		}
		b.enterOpen()
	case CircuitStateOpen:
		b.openedAt = b.now()
	}
}

// State reports the effective state, surfacing half open once the open
// timeout has elapsed even before the next Allow call.
func (b *CircuitBreaker) State() CircuitState {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.state == CircuitStateOpen && b.now().Sub(b.openedAt) >= b.openTimeout {
		return CircuitStateHalfOpen
	}

	return b.state
}

func (b *CircuitBreaker) enterClosed() {
	b.state = CircuitStateClosed
	b.failureStreak = 0
	b.probesInUse = 0
	b.probesPassed = 0
	b.openedAt = time.Time{}
}

func (b *CircuitBreaker) enterOpen() {
	b.state = CircuitStateOpen
	b.openedAt = b.now()
	b.probesInUse = 0
	b.probesPassed = 0
}

func (b *CircuitBreaker) enterHalfOpen() {
	b.state = CircuitStateHalfOpen
	b.probesInUse = 0
	b.probesPassed = 0
}
