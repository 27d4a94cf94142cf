package widget

import (
	"context"
	"sync"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"

	"synapse/synapse/services/debounce"
	"synapse/synapse/utils/logging"
	"synapse/synapse/utils/types"
)

type Searcher interface {
	Search(ctx context.Context, query string) ([]types.SearchResult, error)
}

type Renderer interface {
	Render(p Panel)
}

type Options struct {
	MinQueryLength int
	Debounce       time.Duration
	// StaleGuard drops a response when a newer search has already been
	// rendered. Off, the last response to arrive wins.
	StaleGuard bool
}

func DefaultOptions() Options {
	return Options{MinQueryLength: 2, Debounce: 300 * time.Millisecond}
}

// Bar is the intention bar: it turns input changes into debounced searches
// and keeps the results panel in sync.
type Bar struct {
	searcher  Searcher
	renderer  Renderer
	opts      Options
	debouncer *debounce.Debouncer
	log       *zap.Logger

	ctx    context.Context
	cancel context.CancelFunc

	mu      sync.Mutex
	panel   Panel
	issued  uint64
	applied uint64
}

// NewBar returns a Bar whose searches live as long as ctx.
func NewBar(ctx context.Context, searcher Searcher, renderer Renderer, opts Options) *Bar {
	if opts.MinQueryLength <= 0 {
		opts.MinQueryLength = DefaultOptions().MinQueryLength
	}
	ctx, cancel := context.WithCancel(ctx)
	return &Bar{
		searcher:  searcher,
		renderer:  renderer,
		opts:      opts,
		debouncer: debounce.New(opts.Debounce),
		log:       logging.AppLogger,
		ctx:       ctx,
		cancel:    cancel,
	}
}

// WithLogger tags the bar's log lines, e.g. with a session id.
func (b *Bar) WithLogger(l *zap.Logger) *Bar {
	b.log = l
	return b
}

// Input handles a change of the text control's value.
func (b *Bar) Input(query string) {
	b.debouncer.Cancel()

	b.mu.Lock()
	defer b.mu.Unlock()
	if utf8.RuneCountInString(query) < b.opts.MinQueryLength {
		if b.opts.StaleGuard {
			b.applied = b.issued
		}
		b.setLocked(Hidden())
		return
	}

	// numbered at schedule time so a later hide covers it
	seq := b.nextSeqLocked()
	// The timer fires on its own goroutine, so the request never blocks input.
	b.debouncer.Schedule(func() { b.search(query, seq) })
}

func (b *Bar) nextSeqLocked() uint64 {
	b.issued++
	return b.issued
}

// ClickOutside hides the panel. Pending and in-flight searches carry on.
func (b *Bar) ClickOutside() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.setLocked(Hidden())
}

func (b *Bar) Panel() Panel {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.panel
}

// Settle blocks until no search is pending or in flight, or ctx ends.
func (b *Bar) Settle(ctx context.Context) error {
	tick := time.NewTicker(10 * time.Millisecond)
	defer tick.Stop()
	for b.debouncer.Busy() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-tick.C:
		}
	}
	return nil
}

// Close drops the pending search and cancels in-flight ones.
func (b *Bar) Close() {
	b.debouncer.Cancel()
	b.cancel()
}

func (b *Bar) search(query string, seq uint64) {
	b.log.Info("searching", zap.String("query", query), zap.Uint64("seq", seq))
	results, err := b.searcher.Search(b.ctx, query)

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.ctx.Err() != nil {
		return
	}
	if b.opts.StaleGuard {
		if seq <= b.applied {
			b.log.Info("dropping stale search response", zap.String("query", query), zap.Uint64("seq", seq))
			return
		}
		b.applied = seq
	}
	if err != nil {
		logging.ErrorLogger.Error("search failed", zap.String("query", query), zap.Error(err))
		b.setLocked(Hidden())
		return
	}
	b.log.Info("search results", zap.String("query", query), zap.Int("count", len(results)))
	b.setLocked(PanelFor(results))
}

func (b *Bar) setLocked(p Panel) {
	b.panel = p
	if b.renderer != nil {
		b.renderer.Render(p)
	}
}
