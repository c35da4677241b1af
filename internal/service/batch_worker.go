package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"freightdocs/internal/domain"
	"freightdocs/internal/port"
)

// BatchConfig holds settings for the batch worker.
type BatchConfig struct {
	Concurrency int
	// Timeout bounds loading and parsing of a single document. Zero means no
	// limit beyond the run context.
	Timeout time.Duration
}

// BatchWorker loads and parses a set of documents of one type with bounded
// concurrency.
type BatchWorker struct {
	source     port.DocumentSource
	dispatcher port.DocumentDispatcher
	cfg        BatchConfig
	log        *slog.Logger
}

// NewBatchWorker creates a new BatchWorker.
func NewBatchWorker(source port.DocumentSource, dispatcher port.DocumentDispatcher, cfg BatchConfig, logger *slog.Logger) *BatchWorker {
	if cfg.Concurrency < 1 {
		cfg.Concurrency = 1
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &BatchWorker{
		source:     source,
		dispatcher: dispatcher,
		cfg:        cfg,
		log:        logger,
	}
}

// Run processes every location and returns one item per location, in input
// order. It blocks until all in-flight documents have finished. Documents not
// yet started when ctx is canceled are reported with the context error.
func (w *BatchWorker) Run(ctx context.Context, t domain.DocumentType, locations []string) []domain.BatchItem {
	items := make([]domain.BatchItem, len(locations))
	sem := make(chan struct{}, w.cfg.Concurrency)
	var wg sync.WaitGroup

	w.log.Info("batchWorker: started",
		"document_type", t,
		"documents", len(locations),
		"concurrency", w.cfg.Concurrency,
		"timeout", w.cfg.Timeout)

	for i, loc := range locations {
		items[i] = domain.BatchItem{ID: uuid.New(), Source: loc, Type: t}
		if err := ctx.Err(); err != nil {
			items[i].Error = err.Error()
			continue
		}

		select {
		case <-ctx.Done():
			items[i].Error = ctx.Err().Error()
			continue
		case sem <- struct{}{}: // acquire
		}

		wg.Add(1)
		go func(item *domain.BatchItem) {
			defer wg.Done()
			defer func() { <-sem }() // release
			w.process(ctx, item)
		}(&items[i])
	}
	wg.Wait()

	failed := 0
	for _, it := range items {
		if it.Failed() {
			failed++
		}
	}
	w.log.Info("batchWorker: finished", "documents", len(items), "failed", failed)
	return items
}

type parseOutcome struct {
	res *domain.ParsingResult
	err error
}

func (w *BatchWorker) process(ctx context.Context, item *domain.BatchItem) {
	start := time.Now()
	defer func() { item.Duration = time.Since(start) }()

	if w.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, w.cfg.Timeout)
		defer cancel()
	}

	w.log.Debug("batchWorker: processing document", "id", item.ID, "source", item.Source)

	ocr, err := w.source.Load(ctx, item.Source)
	if err != nil {
		item.Error = fmt.Sprintf("loading document: %v", err)
		w.log.Warn("batchWorker: load failed", "id", item.ID, "source", item.Source, "error", err)
		return
	}

	done := make(chan parseOutcome, 1)
	go func() {
		res, err := w.dispatcher.ParseOCRResult(item.Type, ocr)
		done <- parseOutcome{res: res, err: err}
	}()

	select {
	case <-ctx.Done():
		item.Error = fmt.Sprintf("parsing document: %v", ctx.Err())
		w.log.Warn("batchWorker: parse abandoned", "id", item.ID, "source", item.Source, "error", ctx.Err())
	case out := <-done:
		if out.err != nil {
			item.Error = fmt.Sprintf("parsing document: %v", out.err)
			w.log.Warn("batchWorker: parse failed", "id", item.ID, "source", item.Source, "error", out.err)
			return
		}
		item.Result = out.res
		w.log.Debug("batchWorker: document parsed",
			"id", item.ID,
			"confidence", out.res.Confidence,
			"verified", out.res.Verified)
	}
}
