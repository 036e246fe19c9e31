package platforms

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/polyquery/research-aggregator/pkg/merge"
)

// Dispatcher fans one question out to every configured platform and
// collects the answers as source documents for merging.
type Dispatcher struct {
	Platforms   []Platform
	Timeout     time.Duration
	Concurrency int
	Logger      *slog.Logger
}

// NewDispatcher creates a dispatcher with a per-platform timeout.
func NewDispatcher(platforms []Platform, timeout time.Duration) *Dispatcher {
	if timeout <= 0 {
		timeout = 2 * time.Minute
	}
	return &Dispatcher{
		Platforms:   platforms,
		Timeout:     timeout,
		Concurrency: 3,
		Logger:      slog.Default(),
	}
}

// Dispatch queries all platforms concurrently and returns one document
// per platform, in configured platform order. Ordering is stable so
// the merger's first-seen-wins tie-break is deterministic. A platform
// error or timeout yields a document with Failed set and empty text;
// attribution still records it.
func (d *Dispatcher) Dispatch(ctx context.Context, question string) []merge.SourceDocument {
	documents := make([]merge.SourceDocument, len(d.Platforms))

	var wg sync.WaitGroup
	semaphore := make(chan struct{}, d.Concurrency)

	for i, platform := range d.Platforms {
		wg.Add(1)
		go func(i int, platform Platform) {
			defer wg.Done()
			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			askCtx, cancel := context.WithTimeout(ctx, d.Timeout)
			defer cancel()

			d.Logger.Info("Querying platform", "platform", platform.Name())
			text, err := platform.Ask(askCtx, question)
			documents[i] = merge.SourceDocument{
				OriginID:   platform.Name(),
				Text:       text,
				ProducedAt: time.Now(),
				Failed:     err != nil,
			}
			if err != nil {
				documents[i].Text = ""
				d.Logger.Error("Platform query failed", "platform", platform.Name(), "error", err)
				return
			}
			d.Logger.Info("Platform answered", "platform", platform.Name(), "length", len(text))
		}(i, platform)
	}
	wg.Wait()

	return documents
}
