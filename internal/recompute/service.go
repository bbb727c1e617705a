package recompute

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/farabin/finratio/internal/domain"
	"github.com/farabin/finratio/internal/ratio"
	"github.com/farabin/finratio/internal/report"
	"github.com/farabin/finratio/internal/store"
)

// ErrComputationFailed indicates the engine returned a failed result. The run is still recorded.
var ErrComputationFailed = errors.New("ratio computation failed")

// Computer runs the ratio engine over an ordered period sequence.
type Computer interface {
	Compute(periods []domain.Period) (ratio.Result, error)
}

// Summary counts the outcome of a batch recompute.
type Summary struct {
	Total     int
	Succeeded int
	Failed    int
}

// Service recomputes and stores ratios for stored companies.
type Service struct {
	repo        store.Repository
	engine      Computer
	taxOnly     bool
	concurrency int
}

// NewService creates a new recompute Service. Concurrency below 1 is treated as 1.
func NewService(repo store.Repository, engine Computer, taxOnly bool, concurrency int) *Service {
	if concurrency < 1 {
		concurrency = 1
	}
	return &Service{repo: repo, engine: engine, taxOnly: taxOnly, concurrency: concurrency}
}

// Recompute loads a company's periods, runs the engine and records the run.
// A failed computation is recorded and returned as ErrComputationFailed.
func (s *Service) Recompute(ctx context.Context, slug string) (report.Report, error) {
	company, err := s.repo.GetCompany(ctx, slug)
	if err != nil {
		return report.Report{}, fmt.Errorf("getting company: %w", err)
	}
	return s.recompute(ctx, *company)
}

func (s *Service) recompute(ctx context.Context, company store.Company) (report.Report, error) {
	periods, err := s.repo.LoadPeriods(ctx, company.ID, s.taxOnly)
	if err != nil {
		return report.Report{}, fmt.Errorf("loading periods for %s: %w", company.Slug, err)
	}
	if len(periods) == 0 {
		slog.Warn("no periods to recompute", "company", company.Slug, "tax_records_only", s.taxOnly)
	}

	result, runErr := s.engine.Compute(periods)
	if runErr != nil {
		slog.Error("ratio computation failed", "company", company.Slug, "periods", len(periods), "error", runErr)
	}

	runID, err := s.repo.SaveRun(ctx, company.ID, periods, result, runErr)
	if err != nil {
		return report.Report{}, fmt.Errorf("saving run for %s: %w", company.Slug, err)
	}

	if runErr != nil {
		return report.Report{}, fmt.Errorf("%w for %s: %w", ErrComputationFailed, company.Slug, runErr)
	}

	slog.Info("recomputed ratios", "company", company.Slug, "periods", len(periods), "run", runID)
	return report.New(company.Slug, company.Name, periods, result), nil
}

// RecomputeAll recomputes every company with bounded concurrency.
// Failures are logged and counted; they do not stop the other companies.
// onSuccess, when set, is called for each successful report, one call at a time.
func (s *Service) RecomputeAll(ctx context.Context, onSuccess func(context.Context, report.Report)) (Summary, error) {
	companies, err := s.repo.ListCompanies(ctx)
	if err != nil {
		return Summary{}, fmt.Errorf("listing companies: %w", err)
	}

	var (
		succeeded atomic.Int64
		failed    atomic.Int64
		hookMu    sync.Mutex
		g         errgroup.Group
	)
	g.SetLimit(s.concurrency)

	for _, company := range companies {
		g.Go(func() error {
			if ctx.Err() != nil {
				failed.Add(1)
				return nil
			}
			rep, err := s.recompute(ctx, company)
			if err != nil {
				failed.Add(1)
				slog.Error("recompute failed", "company", company.Slug, "error", err)
				return nil
			}
			succeeded.Add(1)
			if onSuccess != nil {
				hookMu.Lock()
				defer hookMu.Unlock()
				onSuccess(ctx, rep)
			}
			return nil
		})
	}
	_ = g.Wait()

	summary := Summary{
		Total:     len(companies),
		Succeeded: int(succeeded.Load()),
		Failed:    int(failed.Load()),
	}
	slog.Info("recompute batch finished", "total", summary.Total, "succeeded", summary.Succeeded, "failed", summary.Failed)

	if err := ctx.Err(); err != nil {
		return summary, fmt.Errorf("recompute batch interrupted: %w", err)
	}
	return summary, nil
}
