package combatlog

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/udisondev/dicecrawl/internal/model"
)

// DefaultQueueSize is the report buffer of a Writer.
const DefaultQueueSize = 256

// ErrQueueFull is returned by Enqueue when the writer cannot keep up.
var ErrQueueFull = errors.New("battle log queue full")

// Store persists battle reports (*db.BattleRepository).
type Store interface {
	SaveBattle(ctx context.Context, report *model.BattleReport) error
}

// Writer saves reports asynchronously in a dedicated goroutine so that
// sinks never block combat on the database.
type Writer struct {
	store       Store
	queue       chan *model.BattleReport
	saveTimeout time.Duration

	saved   atomic.Int64
	failed  atomic.Int64
	dropped atomic.Int64
}

// NewWriter creates a Writer. queueSize <= 0 means DefaultQueueSize.
func NewWriter(store Store, queueSize int) *Writer {
	if queueSize <= 0 {
		queueSize = DefaultQueueSize
	}
	return &Writer{
		store:       store,
		queue:       make(chan *model.BattleReport, queueSize),
		saveTimeout: 5 * time.Second,
	}
}

// Enqueue queues report for saving.
// Non-blocking: returns ErrQueueFull and drops the report if the queue is full.
func (w *Writer) Enqueue(report *model.BattleReport) error {
	select {
	case w.queue <- report:
		return nil
	default:
		w.dropped.Add(1)
		slog.Warn("battle log queue full, report dropped", "battle", report.ID)
		return ErrQueueFull
	}
}

// Record adapts Enqueue for Recorder's onFinish callback.
func (w *Writer) Record(report *model.BattleReport) {
	_ = w.Enqueue(report)
}

// Run saves queued reports until Close is called and the queue is drained.
// Cancelling ctx stops waiting for new reports but still drains what is
// already queued.
func (w *Writer) Run(ctx context.Context) {
	for {
		select {
		case report, ok := <-w.queue:
			if !ok {
				return // channel closed = graceful shutdown
			}
			w.save(ctx, report)
		case <-ctx.Done():
			w.drain()
			return
		}
	}
}

// Close stops accepting reports; Run returns once the queue is drained.
// Enqueue must not be called after Close.
func (w *Writer) Close() {
	close(w.queue)
}

// Stats returns saved, failed and dropped report counters.
func (w *Writer) Stats() (saved, failed, dropped int64) {
	return w.saved.Load(), w.failed.Load(), w.dropped.Load()
}

func (w *Writer) drain() {
	for {
		select {
		case report, ok := <-w.queue:
			if !ok {
				return
			}
			w.save(context.Background(), report)
		default:
			return
		}
	}
}

func (w *Writer) save(ctx context.Context, report *model.BattleReport) {
	if ctx.Err() != nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithTimeout(ctx, w.saveTimeout)
	defer cancel()

	if err := w.store.SaveBattle(ctx, report); err != nil {
		w.failed.Add(1)
		slog.Error("saving battle report", "battle", report.ID, "error", err)
		return
	}
	w.saved.Add(1)
	slog.Debug("battle report saved",
		"battle", report.ID,
		"defender", report.DefenderID,
		"outcome", report.Outcome)
}
