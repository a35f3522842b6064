package watch

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"
)

// ErrRunning is returned by Start when the poller is already running.
var ErrRunning = errors.New("poller already running")

// State is the connection state seen by a poller.
type State int

const (
	StateUnknown State = iota
	StateOnline
	StateOffline
)

func (s State) String() string {
	switch s {
	case StateOnline:
		return "online"
	case StateOffline:
		return "offline"
	default:
		return "unknown"
	}
}

// Guarantee tells a listener whether a snapshot honours the source ordering.
type Guarantee int

const (
	GuaranteeOrdered Guarantee = iota
	GuaranteeUnordered
)

func (g Guarantee) String() string {
	if g == GuaranteeOrdered {
		return "ordered"
	}
	return "unordered"
}

// Source loads full snapshots of a collection.
type Source[T any] interface {
	// FetchOrdered returns the snapshot in its canonical order.
	FetchOrdered(ctx context.Context) (T, error)
	// FetchUnordered returns the snapshot without ordering.
	FetchUnordered(ctx context.Context) (T, error)
}

// Listener receives snapshots and connection state changes.
// Calls are made from the poller goroutine, one at a time.
type Listener[T any] interface {
	OnSnapshot(snapshot T, guarantee Guarantee)
	OnStateChange(current, previous State)
}

// Funcs adapts plain functions to a Listener. Nil fields are skipped.
type Funcs[T any] struct {
	Snapshot    func(snapshot T, guarantee Guarantee)
	StateChange func(current, previous State)
}

func (f Funcs[T]) OnSnapshot(snapshot T, guarantee Guarantee) {
	if f.Snapshot != nil {
		f.Snapshot(snapshot, guarantee)
	}
}

func (f Funcs[T]) OnStateChange(current, previous State) {
	if f.StateChange != nil {
		f.StateChange(current, previous)
	}
}

// Poller refetches a source on a fixed interval and pushes every snapshot to
// its listener. Snapshots are full replacements; no diff is computed.
type Poller[T any] struct {
	source   Source[T]
	listener Listener[T]
	interval time.Duration
	logger   *zap.Logger

	mu     sync.Mutex
	state  State
	cancel context.CancelFunc
	done   chan struct{}
}

// NewPoller creates a stopped poller.
func NewPoller[T any](source Source[T], listener Listener[T], cfg Config, logger *zap.Logger) *Poller[T] {
	interval := cfg.Interval
	if interval <= 0 {
		interval = DefaultInterval
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Poller[T]{
		source:   source,
		listener: listener,
		interval: interval,
		logger:   logger,
	}
}

// Start performs the initial fetch and then polls in the background until
// Stop is called or ctx is cancelled. If the initial fetch fails the listener
// receives an empty snapshot.
func (p *Poller[T]) Start(ctx context.Context) error {
	p.mu.Lock()
	if p.cancel != nil {
		p.mu.Unlock()
		return ErrRunning
	}
	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	p.cancel, p.done = cancel, done
	p.mu.Unlock()

	if !p.poll(ctx) {
		var empty T
		p.listener.OnSnapshot(empty, GuaranteeUnordered)
	}

	go p.run(ctx, done)
	return nil
}

// Stop ends polling and waits for the background goroutine to exit.
// It is safe to call on a stopped poller.
func (p *Poller[T]) Stop() {
	p.mu.Lock()
	cancel, done := p.cancel, p.done
	p.cancel, p.done = nil, nil
	p.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}

// State returns the last observed connection state.
func (p *Poller[T]) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

func (p *Poller[T]) run(ctx context.Context, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.poll(ctx)
		}
	}
}

// poll fetches once and reports whether a snapshot was delivered.
func (p *Poller[T]) poll(ctx context.Context) bool {
	snapshot, err := p.source.FetchOrdered(ctx)
	if err == nil {
		p.setState(StateOnline)
		p.listener.OnSnapshot(snapshot, GuaranteeOrdered)
		return true
	}
	if ctx.Err() != nil {
		return false
	}
	p.logger.Warn("Ordered fetch failed, retrying unordered", zap.Error(err))

	snapshot, err = p.source.FetchUnordered(ctx)
	if err == nil {
		p.setState(StateOnline)
		p.listener.OnSnapshot(snapshot, GuaranteeUnordered)
		return true
	}
	if ctx.Err() != nil {
		return false
	}
	p.logger.Error("Snapshot fetch failed", zap.Error(err))
	p.setState(StateOffline)
	return false
}

func (p *Poller[T]) setState(next State) {
	p.mu.Lock()
	prev := p.state
	p.state = next
	p.mu.Unlock()

	if prev != next {
		p.logger.Info("Connection state changed", zap.Stringer("state", next), zap.Stringer("previous", prev))
		p.listener.OnStateChange(next, prev)
	}
}
