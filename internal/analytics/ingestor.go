package analytics

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/nulzo/summary-gateway/internal/store"
	"github.com/nulzo/summary-gateway/internal/store/model"
	"go.uber.org/zap"
)

// Ingestor handles the asynchronous persistence of attempt logs.
// Log never blocks the request path.
type Ingestor interface {
	Log(attempt *model.AttemptLog)
	Start(ctx context.Context)
	Stop()
}

type ingestor struct {
	logger    *zap.Logger
	repo      store.Repository
	logChan   chan *model.AttemptLog
	batchSize int
	flushTime time.Duration
	quit      chan struct{}
	done      chan struct{}
	started   atomic.Bool
	stopOnce  sync.Once
}

func NewIngestor(logger *zap.Logger, repo store.Repository) Ingestor {
	return newIngestor(logger, repo, 10000, 50, 5*time.Second)
}

func newIngestor(logger *zap.Logger, repo store.Repository, buffer, batchSize int, flushTime time.Duration) *ingestor {
	return &ingestor{
		logger:    logger,
		repo:      repo,
		logChan:   make(chan *model.AttemptLog, buffer),
		batchSize: batchSize,
		flushTime: flushTime,
		quit:      make(chan struct{}),
		done:      make(chan struct{}),
	}
}

// Log is safe to call after Stop; late attempts are dropped.
func (i *ingestor) Log(attempt *model.AttemptLog) {
	select {
	case <-i.quit:
		i.logger.Debug("Analytics stopped, dropping attempt",
			zap.String("request_id", attempt.RequestID),
			zap.String("provider", attempt.Provider))
		return
	default:
	}

	select {
	case i.logChan <- attempt:
	default:
		i.logger.Warn("Analytics buffer full, dropping attempt",
			zap.String("request_id", attempt.RequestID),
			zap.String("provider", attempt.Provider))
	}
}

func (i *ingestor) Start(ctx context.Context) {
	if i.started.CompareAndSwap(false, true) {
		go i.worker(ctx)
	}
}

// Stop drains the buffer and waits for the final flush. logChan stays open
// so producers racing with shutdown never send on a closed channel.
func (i *ingestor) Stop() {
	i.stopOnce.Do(func() {
		close(i.quit)
		if i.started.Load() {
			<-i.done
		}
	})
}

func (i *ingestor) worker(ctx context.Context) {
	defer close(i.done)

	batch := make([]*model.AttemptLog, 0, i.batchSize)
	ticker := time.NewTicker(i.flushTime)
	defer ticker.Stop()

	flush := func() {
		if len(batch) == 0 {
			return
		}

		// one transaction per batch keeps sqlite from syncing every row
		err := i.repo.WithTx(context.Background(), func(tx store.Repository) error {
			for _, attempt := range batch {
				if err := tx.Attempts().Log(context.Background(), attempt); err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			i.logger.Error("Failed to persist attempt logs", zap.Int("count", len(batch)), zap.Error(err))
		}
		batch = batch[:0]
	}

	drain := func() {
		for {
			select {
			case attempt := <-i.logChan:
				batch = append(batch, attempt)
				if len(batch) >= i.batchSize {
					flush()
				}
			default:
				flush()
				return
			}
		}
	}

	for {
		select {
		case attempt := <-i.logChan:
			batch = append(batch, attempt)
			if len(batch) >= i.batchSize {
				flush()
			}
		case <-ticker.C:
			flush()
		case <-i.quit:
			drain()
			return
		case <-ctx.Done():
			drain()
			return
		}
	}
}

type nopIngestor struct{}

// NewNopIngestor discards every attempt. Used when persistence is disabled.
func NewNopIngestor() Ingestor { return nopIngestor{} }

func (nopIngestor) Log(*model.AttemptLog) {}
func (nopIngestor) Start(context.Context) {}
func (nopIngestor) Stop()                 {}
