// Package batch drives sequential verification over the unprocessed records
// in the store.
package batch

import (
	"context"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/Up-Bizz/ContactVerifier/internal/model"
	"github.com/Up-Bizz/ContactVerifier/internal/store"
)

// Verifier checks one record against its source page.
type Verifier interface {
	Verify(ctx context.Context, rec model.Record) model.VerificationResult
}

// Summary reports what a batch run accomplished.
type Summary struct {
	Processed  int `json:"processed"`
	Errors     int `json:"errors"`
	NamesFound int `json:"names_found"`
}

// Runner pulls unprocessed records one at a time, verifies each against a
// single shared browser session, and durably persists the result before
// pulling the next. There is no worker pool: the page handle cannot be
// shared, and a crash mid-run must lose at most the in-flight record.
type Runner struct {
	store    store.Store
	verifier Verifier
}

// New creates a Runner.
func New(st store.Store, v Verifier) *Runner {
	return &Runner{store: st, verifier: v}
}

// maxConsecutivePulls bounds how often the same record may come back from
// the queue before the run aborts. A record normally leaves the queue the
// moment it is marked processing; seeing it again means the store itself is
// failing.
const maxConsecutivePulls = 3

// Run processes records until the store has none left or ctx is cancelled.
// Per-record failures are recorded and skipped; only store-level failures
// end the run early.
func (r *Runner) Run(ctx context.Context) (Summary, error) {
	var sum Summary

	reclaimed, err := r.store.ResetProcessing(ctx)
	if err != nil {
		return sum, eris.Wrap(err, "batch: reset orphaned records")
	}
	if reclaimed > 0 {
		zap.L().Info("batch: reclaimed records from interrupted run", zap.Int("count", reclaimed))
	}

	lastID := ""
	pulls := 0
	for {
		if err := ctx.Err(); err != nil {
			return sum, eris.Wrap(err, "batch: cancelled")
		}

		rec, err := r.store.NextUnprocessed(ctx)
		if err != nil {
			return sum, eris.Wrap(err, "batch: next record")
		}
		if rec == nil {
			break
		}

		if rec.ID == lastID {
			pulls++
			if pulls >= maxConsecutivePulls {
				return sum, eris.Errorf("batch: record %s keeps returning to the queue, aborting", rec.ID)
			}
		} else {
			lastID = rec.ID
			pulls = 1
		}

		r.processOne(ctx, *rec, &sum)
	}

	zap.L().Info("batch: run complete",
		zap.Int("processed", sum.Processed),
		zap.Int("errors", sum.Errors),
		zap.Int("names_found", sum.NamesFound),
	)
	return sum, nil
}

func (r *Runner) processOne(ctx context.Context, rec model.Record, sum *Summary) {
	log := zap.L().With(zap.String("record", rec.ID), zap.String("name", rec.FullName()))
	log.Info("batch: processing record", zap.String("url", rec.SourceURL))

	if err := r.store.SetStatus(ctx, rec.ID, model.StatusProcessing); err != nil {
		log.Error("batch: mark processing", zap.Error(err))
		sum.Errors++
		return
	}

	result := r.verifier.Verify(ctx, rec)

	if result.Error != "" {
		if err := r.store.SetError(ctx, rec.ID, result.Error); err != nil {
			log.Error("batch: persist error result", zap.Error(err))
		}
		sum.Errors++
		return
	}

	if err := r.store.SaveResult(ctx, rec.ID, &result); err != nil {
		log.Error("batch: persist result", zap.Error(err))
		// Release the row so a later run can retry it.
		if resetErr := r.store.SetStatus(ctx, rec.ID, model.StatusNotProcessed); resetErr != nil {
			log.Error("batch: release record", zap.Error(resetErr))
		}
		sum.Errors++
		return
	}

	sum.Processed++
	if result.NamePresent {
		sum.NamesFound++
	}
}
