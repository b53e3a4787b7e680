package runner

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/yaklabco/mdhighlight/pkg/fsutil"
	"github.com/yaklabco/mdhighlight/pkg/highlight"
	"github.com/yaklabco/mdhighlight/pkg/styled"
)

// Runner highlights discovered files with a shared Highlighter.
// Every file gets its own styled.Text, so workers never share a buffer.
type Runner struct {
	Highlighter *highlight.Highlighter
}

// New creates a new Runner with the given highlighter.
func New(h *highlight.Highlighter) *Runner {
	return &Runner{Highlighter: h}
}

// Run discovers files under opts.Paths and processes them concurrently.
// It returns a deterministic collection of FileOutcome values and aggregate stats.
//
// The runner:
//   - Discovers files matching the options criteria
//   - Processes files concurrently using a worker pool
//   - Aggregates results into a single Result with statistics
//   - Respects context cancellation
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	files, err := Discover(ctx, opts)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Files: make([]FileOutcome, 0, len(files)),
		Stats: newStats(),
	}
	result.Stats.FilesDiscovered = len(files)

	if len(files) == 0 {
		return result, nil
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	jobs = min(jobs, len(files))

	workCh := make(chan string)
	outCh := make(chan FileOutcome)

	var wg sync.WaitGroup

	for range jobs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.worker(ctx, workCh, outCh)
		}()
	}

	go func() {
		defer close(workCh)
		for _, path := range files {
			select {
			case <-ctx.Done():
				return
			case workCh <- path:
			}
		}
	}()

	go func() {
		wg.Wait()
		close(outCh)
	}()

	// Workers may complete out of order.
	outcomes := make(map[string]FileOutcome, len(files))
	for outcome := range outCh {
		outcomes[outcome.Path] = outcome
	}

	for _, path := range files {
		if outcome, ok := outcomes[path]; ok {
			result.accumulate(outcome)
		}
	}

	if ctx.Err() != nil {
		return result, fmt.Errorf("run cancelled: %w", ctx.Err())
	}

	return result, nil
}

// ProcessFile reads and highlights a single file.
func (r *Runner) ProcessFile(ctx context.Context, path string) FileOutcome {
	content, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		return FileOutcome{Path: path, Error: err}
	}
	return r.ProcessText(ctx, path, string(content))
}

// ProcessText highlights content that has already been read.
// path only labels the outcome.
func (r *Runner) ProcessText(ctx context.Context, path, content string) FileOutcome {
	outcome := FileOutcome{Path: path}
	ctx = log.WithContext(ctx, r.Highlighter.Logger(ctx).With("path", path))

	text := styled.NewText(content)
	blocks, err := r.Highlighter.Highlight(ctx, text)
	if err != nil {
		outcome.Error = fmt.Errorf("highlight %s: %w", path, err)
		return outcome
	}

	outcome.Text = text
	outcome.CodeBlocks = blocks
	return outcome
}

// worker processes files from workCh and sends outcomes to outCh.
func (r *Runner) worker(ctx context.Context, workCh <-chan string, outCh chan<- FileOutcome) {
	for path := range workCh {
		select {
		case <-ctx.Done():
			return
		default:
		}

		outcome := r.ProcessFile(ctx, path)

		select {
		case <-ctx.Done():
			return
		case outCh <- outcome:
		}
	}
}
