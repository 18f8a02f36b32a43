package transcript

import (
	"context"
	"fmt"
	"log/slog"
)

// Strategy is one acquisition method. Run returns the segments it could
// obtain; an error or an empty slice both mean "nothing from here".
type Strategy struct {
	Name string
	Run  func(ctx context.Context) ([]Segment, error)
}

// State is the position of a Chain in its lifecycle.
type State int

const (
	StateNotStarted State = iota
	StateTrying
	StateSucceeded
	StateExhausted
)

func (s State) String() string {
	switch s {
	case StateNotStarted:
		return "not_started"
	case StateTrying:
		return "trying"
	case StateSucceeded:
		return "succeeded"
	case StateExhausted:
		return "exhausted"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// Outcome is the result of a successful Chain run.
type Outcome struct {
	Segments []Segment
	Strategy string
}

// Chain tries strategies strictly in order and stops at the first one
// that yields segments. Per-strategy failures are logged and absorbed.
// A Chain is single-use.
type Chain struct {
	strategies []Strategy
	logger     *slog.Logger

	// Observe, when set, is called after every attempt.
	Observe func(strategy string, ok bool)

	state State
	index int
}

// NewChain builds a chain over strategies in priority order.
func NewChain(logger *slog.Logger, strategies ...Strategy) *Chain {
	if logger == nil {
		logger = slog.Default()
	}
	return &Chain{strategies: strategies, logger: logger}
}

// State reports the chain's current state.
func (c *Chain) State() State { return c.state }

// Index is the position of the strategy being (or last) tried.
func (c *Chain) Index() int { return c.index }

// Run drives the chain to Succeeded or Exhausted. It returns
// ErrTranscriptUnavailable when every strategy came back empty, and the
// context error if ctx ends between strategies.
func (c *Chain) Run(ctx context.Context) (Outcome, error) {
	if c.state != StateNotStarted {
		return Outcome{}, fmt.Errorf("chain already run (state %s)", c.state)
	}
	for i, s := range c.strategies {
		if err := ctx.Err(); err != nil {
			c.state = StateExhausted
			return Outcome{}, err
		}
		c.state, c.index = StateTrying, i

		segs, err := c.attempt(ctx, s)
		ok := err == nil && len(segs) > 0
		if c.Observe != nil {
			c.Observe(s.Name, ok)
		}
		if ok {
			c.state = StateSucceeded
			c.logger.Debug("transcript: strategy succeeded",
				slog.String("strategy", s.Name), slog.Int("segments", len(segs)))
			return Outcome{Segments: segs, Strategy: s.Name}, nil
		}
		if err != nil {
			c.logger.Debug("transcript: strategy failed",
				slog.String("strategy", s.Name), slog.Any("err", err))
		} else {
			c.logger.Debug("transcript: strategy returned nothing", slog.String("strategy", s.Name))
		}
	}
	c.state = StateExhausted
	c.logger.Info("transcript: all strategies exhausted", slog.Int("strategies", len(c.strategies)))
	return Outcome{}, ErrTranscriptUnavailable
}

// attempt runs one strategy, converting a panic into an error so that a
// misbehaving scraper cannot abort the chain.
func (c *Chain) attempt(ctx context.Context, s Strategy) (segs []Segment, err error) {
	if s.Run == nil {
		return nil, fmt.Errorf("strategy %q has no Run func", s.Name)
	}
	defer func() {
		if r := recover(); r != nil {
			segs, err = nil, fmt.Errorf("strategy %q panicked: %v", s.Name, r)
		}
	}()
	return s.Run(ctx)
}
