package snake

import (
	"context"
	"io"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
)

// DefaultInterval is the tick interval used when none is configured.
const DefaultInterval = 150 * time.Millisecond

// Frame is published after every tick and after every reset.
type Frame struct {
	Snapshot Snapshot
	GameOver bool // Set on the frame that ends a game
}

// LoopConfig configures a Loop.
type LoopConfig struct {
	Interval time.Duration // Time between ticks
	Player   string        // Recorded with each game
	Logger   *log.Logger   // Optional

	// OnGameOver receives the recording of every finished game. It runs on
	// the loop goroutine.
	OnGameOver func(Recording)
}

// Loop drives a Board at a fixed interval. Heading changes and reset
// requests may arrive from any goroutine; they are applied at the start of
// the next iteration. Rendering happens elsewhere: the loop publishes
// frames on a channel and never waits for them to be consumed.
type Loop struct {
	board  *Board
	cfg    LoopConfig
	logger *log.Logger

	heading atomic.Int32 // pending Direction+1, 0 when none
	over    atomic.Bool
	resetCh chan struct{}
	frames  chan Frame

	rec Recording
}

// NewLoop wraps board. The loop becomes the board's Redrawer.
func NewLoop(board *Board, cfg LoopConfig) *Loop {
	if cfg.Interval <= 0 {
		cfg.Interval = DefaultInterval
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	l := &Loop{
		board:   board,
		cfg:     cfg,
		logger:  logger,
		resetCh: make(chan struct{}, 1),
		frames:  make(chan Frame, 1),
	}
	board.SetRedrawer(l)
	l.over.Store(!board.Playing())
	l.begin()
	return l
}

// Frames returns the channel of published frames. Only the most recent
// unread frame is kept.
func (l *Loop) Frames() <-chan Frame {
	return l.frames
}

// Interval returns the tick interval.
func (l *Loop) Interval() time.Duration {
	return l.cfg.Interval
}

// SetHeading queues a heading change for the next tick. Later calls
// before that tick replace earlier ones.
func (l *Loop) SetHeading(d Direction) {
	if !d.Valid() {
		return
	}
	l.heading.Store(int32(d) + 1)
}

// RequestReset asks the loop to start a new game. It is ignored while a
// game is still running and reports whether the request was accepted.
func (l *Loop) RequestReset() bool {
	if !l.over.Load() {
		return false
	}
	select {
	case l.resetCh <- struct{}{}:
	default:
	}
	return true
}

// GameOver reports whether the loop is waiting for a reset.
func (l *Loop) GameOver() bool {
	return l.over.Load()
}

// Run ticks the board until ctx is done. While a game is over it blocks
// until RequestReset is called instead of ticking. Cancellation is a normal
// stop and returns nil.
func (l *Loop) Run(ctx context.Context) error {
	ticker := time.NewTicker(l.cfg.Interval)
	defer ticker.Stop()

	l.publish(l.over.Load())

	for {
		if l.over.Load() {
			select {
			case <-ctx.Done():
				return nil
			case <-l.resetCh:
			}
			l.restart()
			ticker.Reset(l.cfg.Interval)
			continue
		}

		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
		l.Step()
	}
}

// Step applies any pending heading and performs a single tick. Run calls
// it on every timer fire; it is exported for deterministic drivers.
func (l *Loop) Step() {
	if l.over.Load() {
		return
	}

	if v := l.heading.Swap(0); v != 0 {
		d := Direction(v - 1)
		l.rec.Inputs = append(l.rec.Inputs, Input{Tick: l.board.Tick(), Dir: d})
		l.board.SetHeading(d)
	}

	l.board.Update()

	if !l.board.Playing() {
		l.finish()
	}
}

// RequestRedraw implements Redrawer.
func (l *Loop) RequestRedraw() {
	l.publish(false)
}

func (l *Loop) restart() {
	l.heading.Store(0)
	l.board.Reset()
	l.begin()
	l.over.Store(false)
	l.logger.Debug("game reset", "seed", l.board.Seed())
}

func (l *Loop) begin() {
	l.rec = Recording{
		Player:    l.cfg.Player,
		Rows:      l.board.Rows(),
		Columns:   l.board.Columns(),
		Interval:  l.cfg.Interval,
		Seed:      l.board.Seed(),
		StartedAt: time.Now(),
	}
}

func (l *Loop) finish() {
	// Drop resets queued during the previous game over before accepting
	// new ones.
	select {
	case <-l.resetCh:
	default:
	}
	l.over.Store(true)

	l.rec.Ticks = l.board.Tick()
	l.rec.Score = l.board.Score()
	l.rec.Reason = l.board.Reason()
	l.rec.EndedAt = time.Now()

	l.logger.Info("game over",
		"player", l.rec.Player,
		"score", l.rec.Score,
		"ticks", l.rec.Ticks,
		"reason", l.rec.Reason,
	)

	l.publish(true)

	if l.cfg.OnGameOver != nil {
		l.cfg.OnGameOver(l.rec.clone())
	}
}

// publish hands the latest frame to the renderer, replacing an unread one.
func (l *Loop) publish(gameOver bool) {
	f := Frame{Snapshot: l.board.Snapshot(), GameOver: gameOver}
	for {
		select {
		case l.frames <- f:
			return
		default:
		}
		select {
		case <-l.frames:
		default:
		}
	}
}
