package service_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"freightdocs/internal/domain"
	"freightdocs/internal/parser"
	"freightdocs/internal/service"
	"freightdocs/mocks"
)

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func podDispatcher(res *domain.ParsingResult) (*parser.Dispatcher, *mocks.MockDocumentParser) {
	p := new(mocks.MockDocumentParser)
	p.On("Type").Return(domain.DocumentTypePOD)
	p.On("ParseOCRResult", mock.Anything).Return(res)
	return parser.NewDispatcher(p), p
}

func TestBatchWorker_ParsesInInputOrder(t *testing.T) {
	src := new(mocks.MockDocumentSource)
	for _, loc := range []string{"a.txt", "b.txt", "c.txt"} {
		src.On("Load", mock.Anything, loc).Return(domain.OCRResult{FullText: "text of " + loc}, nil)
	}
	want := &domain.ParsingResult{Type: domain.DocumentTypePOD, Confidence: 0.9, Verified: true}
	d, p := podDispatcher(want)

	w := service.NewBatchWorker(src, d, service.BatchConfig{Concurrency: 2}, discard())
	items := w.Run(context.Background(), domain.DocumentTypePOD, []string{"a.txt", "b.txt", "c.txt"})

	require.Len(t, items, 3)
	seen := map[uuid.UUID]bool{}
	for i, loc := range []string{"a.txt", "b.txt", "c.txt"} {
		assert.Equal(t, loc, items[i].Source)
		assert.Equal(t, domain.DocumentTypePOD, items[i].Type)
		assert.False(t, items[i].Failed())
		assert.Same(t, want, items[i].Result)
		assert.NotEqual(t, uuid.Nil, items[i].ID)
		seen[items[i].ID] = true
	}
	assert.Len(t, seen, 3)
	p.AssertCalled(t, "ParseOCRResult", domain.OCRResult{FullText: "text of b.txt"})
	src.AssertExpectations(t)
}

func TestBatchWorker_BoundsConcurrency(t *testing.T) {
	var inFlight, peak atomic.Int32
	src := new(mocks.MockDocumentSource)
	src.On("Load", mock.Anything, mock.Anything).
		Run(func(mock.Arguments) {
			n := inFlight.Add(1)
			for {
				old := peak.Load()
				if n <= old || peak.CompareAndSwap(old, n) {
					break
				}
			}
			time.Sleep(10 * time.Millisecond)
			inFlight.Add(-1)
		}).
		Return(domain.OCRResult{FullText: "x"}, nil)
	d, _ := podDispatcher(&domain.ParsingResult{Type: domain.DocumentTypePOD})

	w := service.NewBatchWorker(src, d, service.BatchConfig{Concurrency: 2}, discard())
	items := w.Run(context.Background(), domain.DocumentTypePOD, []string{"1", "2", "3", "4", "5", "6"})

	require.Len(t, items, 6)
	assert.LessOrEqual(t, peak.Load(), int32(2))
	assert.GreaterOrEqual(t, peak.Load(), int32(1))
}

func TestBatchWorker_LoadErrorIsolatedToItem(t *testing.T) {
	src := new(mocks.MockDocumentSource)
	src.On("Load", mock.Anything, "good.txt").Return(domain.OCRResult{FullText: "ok"}, nil)
	src.On("Load", mock.Anything, "bad.pdf").Return(domain.OCRResult{}, errors.New("no such file"))
	d, _ := podDispatcher(&domain.ParsingResult{Type: domain.DocumentTypePOD})

	w := service.NewBatchWorker(src, d, service.BatchConfig{Concurrency: 4}, discard())
	items := w.Run(context.Background(), domain.DocumentTypePOD, []string{"good.txt", "bad.pdf"})

	require.Len(t, items, 2)
	assert.False(t, items[0].Failed())
	assert.True(t, items[1].Failed())
	assert.Contains(t, items[1].Error, "loading document: no such file")
	assert.Nil(t, items[1].Result)
}

func TestBatchWorker_UnknownType(t *testing.T) {
	src := new(mocks.MockDocumentSource)
	src.On("Load", mock.Anything, mock.Anything).Return(domain.OCRResult{FullText: "ok"}, nil)

	w := service.NewBatchWorker(src, parser.NewDispatcher(), service.BatchConfig{Concurrency: 1}, discard())
	items := w.Run(context.Background(), domain.DocumentTypeCDL, []string{"a.txt"})

	require.Len(t, items, 1)
	assert.Contains(t, items[0].Error, domain.ErrUnknownDocumentType.Error())
}

func TestBatchWorker_PerDocumentTimeout(t *testing.T) {
	src := new(mocks.MockDocumentSource)
	src.On("Load", mock.Anything, "slow.pdf").
		Run(func(args mock.Arguments) {
			<-args.Get(0).(context.Context).Done()
		}).
		Return(domain.OCRResult{}, context.DeadlineExceeded)
	d, _ := podDispatcher(&domain.ParsingResult{Type: domain.DocumentTypePOD})

	w := service.NewBatchWorker(src, d, service.BatchConfig{Concurrency: 1, Timeout: 20 * time.Millisecond}, discard())
	items := w.Run(context.Background(), domain.DocumentTypePOD, []string{"slow.pdf"})

	require.Len(t, items, 1)
	assert.Contains(t, items[0].Error, "deadline exceeded")
	assert.Greater(t, int64(items[0].Duration), int64(0))
}

func TestBatchWorker_CanceledContextSkipsDocuments(t *testing.T) {
	src := new(mocks.MockDocumentSource)
	d, _ := podDispatcher(&domain.ParsingResult{Type: domain.DocumentTypePOD})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	w := service.NewBatchWorker(src, d, service.BatchConfig{Concurrency: 2}, discard())
	items := w.Run(ctx, domain.DocumentTypePOD, []string{"a.txt", "b.txt"})

	require.Len(t, items, 2)
	for _, it := range items {
		assert.Equal(t, context.Canceled.Error(), it.Error)
	}
	src.AssertNotCalled(t, "Load", mock.Anything, mock.Anything)
}

func TestNewBatchWorker_ClampsConcurrency(t *testing.T) {
	src := new(mocks.MockDocumentSource)
	src.On("Load", mock.Anything, mock.Anything).Return(domain.OCRResult{FullText: "ok"}, nil)
	d, _ := podDispatcher(&domain.ParsingResult{Type: domain.DocumentTypePOD})

	w := service.NewBatchWorker(src, d, service.BatchConfig{}, nil)
	items := w.Run(context.Background(), domain.DocumentTypePOD, []string{"a.txt"})

	require.Len(t, items, 1)
	assert.False(t, items[0].Failed())
}
