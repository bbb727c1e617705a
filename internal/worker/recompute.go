package worker

import (
	"context"
	"log/slog"
	"time"

	"github.com/farabin/finratio/internal/recompute"
	"github.com/farabin/finratio/internal/report"
)

// BatchRecomputer recomputes ratios for every stored company.
type BatchRecomputer interface {
	RecomputeAll(ctx context.Context, onSuccess func(context.Context, report.Report)) (recompute.Summary, error)
}

// AfterRecomputeHook is called after each successful company recompute.
type AfterRecomputeHook interface {
	Export(ctx context.Context, r report.Report) error
}

// RecomputeWorker periodically recomputes ratios for all companies.
type RecomputeWorker struct {
	recomputer BatchRecomputer
	interval   time.Duration
	hook       AfterRecomputeHook // optional
}

// NewRecomputeWorker creates a new RecomputeWorker with an optional post-recompute hook.
func NewRecomputeWorker(recomputer BatchRecomputer, interval time.Duration, hook AfterRecomputeHook) *RecomputeWorker {
	return &RecomputeWorker{
		recomputer: recomputer,
		interval:   interval,
		hook:       hook,
	}
}

// runHook calls the post-recompute hook if one is configured.
func (w *RecomputeWorker) runHook(ctx context.Context, r report.Report) {
	if w.hook == nil {
		return
	}
	if err := w.hook.Export(ctx, r); err != nil {
		slog.Error("RecomputeWorker: export hook failed", "company", r.Company, "error", err)
	} else {
		slog.Info("RecomputeWorker: export hook completed", "company", r.Company)
	}
}

func (w *RecomputeWorker) runOnce(ctx context.Context, phase string) {
	summary, err := w.recomputer.RecomputeAll(ctx, w.runHook)
	if err != nil {
		slog.Error("RecomputeWorker: "+phase+" recompute failed", "error", err)
		return
	}
	slog.Info("RecomputeWorker: "+phase+" recompute completed",
		"total", summary.Total, "succeeded", summary.Succeeded, "failed", summary.Failed)
}

// Run starts the recompute worker loop. It blocks until the context is cancelled.
func (w *RecomputeWorker) Run(ctx context.Context) {
	slog.Info("RecomputeWorker: starting", "interval", w.interval)

	// Recompute immediately on startup
	w.runOnce(ctx, "initial")

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("RecomputeWorker: shutting down")
			return
		case <-ticker.C:
			w.runOnce(ctx, "scheduled")
		}
	}
}
