package processor

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/hako/durafmt"
	"github.com/remeh/sizedwaitgroup"

	"codeberg.org/snonux/vaani/internal/batch"
	"codeberg.org/snonux/vaani/internal/lexicon"
)

// ItemResult is the outcome of one batch line
type ItemResult struct {
	Item   batch.Item
	Result *Result
	Err    error
}

// BatchSummary collects the outcome of ProcessBatch in input order
type BatchSummary struct {
	Items   []ItemResult
	Elapsed time.Duration
}

// Processed returns the number of lines translated
func (s *BatchSummary) Processed() int {
	n := 0
	for _, it := range s.Items {
		if it.Err == nil && it.Result != nil {
			n++
		}
	}
	return n
}

// Failed returns the number of lines that could not be translated
func (s *BatchSummary) Failed() int {
	n := 0
	for _, it := range s.Items {
		if it.Err != nil {
			n++
		}
	}
	return n
}

// WithAudio returns the number of lines that produced audio
func (s *BatchSummary) WithAudio() int {
	n := 0
	for _, it := range s.Items {
		if it.Result != nil && it.Result.HasAudio() {
			n++
		}
	}
	return n
}

// ElapsedString formats the elapsed time like "1 second 250 milliseconds"
func (s *BatchSummary) ElapsedString() string {
	return durafmt.Parse(s.Elapsed.Round(time.Millisecond)).LimitFirstN(2).String()
}

// ProcessBatch translates every line of a batch file. Lines without a
// language prefix use def. Up to Options.Concurrency lines are processed
// at the same time; a failing line does not stop the others.
func (p *Processor) ProcessBatch(ctx context.Context, path string, def lexicon.Direction) (*BatchSummary, error) {
	items, err := batch.ReadBatchFile(path)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("no text found in batch file: %s", path)
	}

	start := time.Now()
	results := make([]ItemResult, len(items))
	dirs := batch.Directions(items, def)

	swg := sizedwaitgroup.New(p.options.Concurrency)
	for i, item := range items {
		results[i].Item = item
		if err := ctx.Err(); err != nil {
			results[i].Err = err
			continue
		}

		swg.Add()
		go func(i int, dir lexicon.Direction) {
			defer swg.Done()
			res, err := p.ProcessText(ctx, items[i].Text, dir)
			if err != nil {
				slog.Error("batch line failed", "line", items[i].Line, "error", err)
			}
			results[i].Result = res
			results[i].Err = err
		}(i, dirs[i])
	}
	swg.Wait()

	return &BatchSummary{Items: results, Elapsed: time.Since(start)}, nil
}
