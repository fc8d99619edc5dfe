// processor.go - Game file processing and report output
package main

import (
	"github.com/lgbarn/infinite-chess-go/internal/config"
	"github.com/lgbarn/infinite-chess-go/internal/hashing"
	"github.com/lgbarn/infinite-chess-go/internal/output"
	"github.com/lgbarn/infinite-chess-go/internal/worker"
)

// runStats counts what happened to the game files of one run.
type runStats struct {
	total      int
	reported   int
	duplicates int
	illegal    int
	failed     int
}

// ok reports whether every game was loaded and every move was legal.
func (s runStats) ok() bool {
	return s.illegal == 0 && s.failed == 0
}

// ProcessingContext holds all processing state
type ProcessingContext struct {
	cfg      *config.Config
	detector *hashing.ThreadSafeDuplicateDetector
	reports  output.ReportWriter
	dups     output.ReportWriter // nil without a duplicate file
}

func newProcessingContext(cfg *config.Config, detector *hashing.ThreadSafeDuplicateDetector) *ProcessingContext {
	ctx := &ProcessingContext{
		cfg:      cfg,
		detector: detector,
		reports:  output.NewReportWriter(cfg.OutputFile, cfg),
	}
	if cfg.Duplicate.DuplicateFile != nil {
		ctx.dups = output.NewTextWriter(cfg.Duplicate.DuplicateFile, cfg)
	}
	return ctx
}

// processFiles validates every file on the worker pool and writes the
// reports in input order. With a stop-after limit the pool is stopped once
// enough games are reported; games still queued are skipped.
func processFiles(paths []string, ctx *ProcessingContext) (runStats, error) {
	cfg := ctx.cfg
	replayer := worker.NewReplayer(cfg, ctx.detector)

	bufferSize := len(paths)
	if bufferSize > 100 {
		bufferSize = 100
	}
	pool := worker.NewPool(replayer.Process, worker.WithWorkers(cfg.Workers), worker.WithBufferSize(bufferSize))
	cfg.Logf(2, "Validating %d file(s) on %d worker(s).\n", len(paths), pool.Workers())
	pool.Start()

	go func() {
		for i, path := range paths {
			if !pool.Submit(worker.WorkItem{Path: path, Index: i}) {
				break
			}
		}
		pool.Close()
	}()

	var stats runStats
	var firstErr error
	stopped, skipped := false, 0
	seq := worker.NewSequencer()
	for result := range pool.Results() {
		for _, res := range seq.Add(result) {
			if stopped {
				skipped++
				continue
			}
			if err := handleResult(res, ctx, &stats); err != nil && firstErr == nil {
				firstErr = err
			}
			if cfg.StopAfter > 0 && stats.reported >= cfg.StopAfter {
				stopped = true
				pool.Stop()
			}
		}
	}
	if stopped {
		cfg.Logf(1, "Stopped after %d reported game(s), %d finished game(s) not reported.\n",
			stats.reported, skipped+seq.Waiting())
	}

	if err := ctx.reports.Close(); err != nil && firstErr == nil {
		firstErr = err
	}
	if ctx.dups != nil {
		if err := ctx.dups.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return stats, firstErr
}

// handleResult counts one result and writes its report where it belongs.
func handleResult(res worker.ProcessResult, ctx *ProcessingContext, stats *runStats) error {
	stats.total++
	rep := res.Report
	switch {
	case rep.Err != nil:
		stats.failed++
		ctx.cfg.Logf(1, "%s: %v\n", rep.File, rep.Err)
	case rep.Illegal != nil:
		stats.illegal++
		fallthrough
	default:
		ctx.cfg.Logf(2, "%s: %s\n", rep.File, output.Summary(rep))
	}

	if res.ShouldOutput {
		stats.reported++
		return ctx.reports.WriteReport(rep)
	}
	if res.Matched {
		stats.duplicates++
	}
	if res.OutputToDup && ctx.dups != nil {
		return ctx.dups.WriteReport(rep)
	}
	return nil
}
