package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/farabin/finratio/internal/domain"
	"github.com/farabin/finratio/internal/ratio"
)

// ErrNotFound indicates that the requested company or run was not found.
var ErrNotFound = errors.New("not found")

// Company is a reporting entity whose periods are stored.
type Company struct {
	ID        int64     `json:"id"`
	Slug      string    `json:"slug"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

// Run is one recorded engine invocation for a company.
type Run struct {
	ID          uuid.UUID `json:"id"`
	CompanyID   int64     `json:"companyId"`
	Status      string    `json:"status"`
	Error       string    `json:"error,omitempty"`
	PeriodCount int       `json:"periodCount"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Repository defines persistent storage for periods and ratio results.
type Repository interface {
	ListCompanies(ctx context.Context) ([]Company, error)
	GetCompany(ctx context.Context, slug string) (*Company, error)
	EnsureCompany(ctx context.Context, slug, name string) (int64, error)
	LoadPeriods(ctx context.Context, companyID int64, taxOnly bool) ([]domain.Period, error)
	SavePeriods(ctx context.Context, companyID int64, periods []domain.Period) error
	SaveRun(ctx context.Context, companyID int64, periods []domain.Period, result ratio.Result, runErr error) (uuid.UUID, error)
	LatestRun(ctx context.Context, companyID int64) (*Run, error)
}

// PgRepository implements Repository with PostgreSQL.
type PgRepository struct {
	pool *pgxpool.Pool
}

// NewPgRepository creates a new PostgreSQL repository.
func NewPgRepository(pool *pgxpool.Pool) *PgRepository {
	return &PgRepository{pool: pool}
}

func (r *PgRepository) ListCompanies(ctx context.Context) ([]Company, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, slug, name, created_at FROM companies ORDER BY slug`)
	if err != nil {
		return nil, fmt.Errorf("listing companies: %w", err)
	}
	defer rows.Close()

	var companies []Company
	for rows.Next() {
		var c Company
		if err := rows.Scan(&c.ID, &c.Slug, &c.Name, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning company: %w", err)
		}
		companies = append(companies, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating companies: %w", err)
	}
	return companies, nil
}

func (r *PgRepository) GetCompany(ctx context.Context, slug string) (*Company, error) {
	var c Company
	err := r.pool.QueryRow(ctx,
		`SELECT id, slug, name, created_at FROM companies WHERE slug = $1`, slug).
		Scan(&c.ID, &c.Slug, &c.Name, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("getting company %s: %w", slug, err)
	}
	return &c, nil
}

func (r *PgRepository) EnsureCompany(ctx context.Context, slug, name string) (int64, error) {
	var id int64
	err := r.pool.QueryRow(ctx,
		`INSERT INTO companies (slug, name)
		 VALUES ($1, $2)
		 ON CONFLICT (slug) DO UPDATE SET name = EXCLUDED.name
		 RETURNING id`, slug, name).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("ensuring company %s: %w", slug, err)
	}
	return id, nil
}

// LoadPeriods returns the company's periods in year/month order, each with the
// first matching record of every statement table or nil.
func (r *PgRepository) LoadPeriods(ctx context.Context, companyID int64, taxOnly bool) ([]domain.Period, error) {
	rows, err := r.pool.Query(ctx, loadPeriodsQuery(), companyID, taxOnly)
	if err != nil {
		return nil, fmt.Errorf("loading periods: %w", err)
	}
	defer rows.Close()

	var periods []domain.Period
	for rows.Next() {
		var p domain.Period
		ids := make([]*int64, len(recordTables))
		values := make([][]*string, len(recordTables))

		dest := []any{&p.AssetID, &p.Year, &p.Month, &p.IsTaxRecord}
		for i, t := range recordTables {
			dest = append(dest, &ids[i])
			values[i] = make([]*string, len(t.columns))
			for j := range values[i] {
				dest = append(dest, &values[i][j])
			}
		}

		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("scanning period: %w", err)
		}

		if ids[0] != nil {
			p.BalanceReport = &domain.BalanceReport{}
			fill(balanceFields(p.BalanceReport), values[0])
		}
		if ids[1] != nil {
			p.ProfitLossStatement = &domain.ProfitLossStatement{}
			fill(profitLossFields(p.ProfitLossStatement), values[1])
		}
		if ids[2] != nil {
			p.SoldProductFee = &domain.SoldProductFee{}
			fill(soldProductFields(p.SoldProductFee), values[2])
		}
		if ids[3] != nil {
			p.AccountTurnOver = &domain.AccountTurnOver{}
			fill(turnoverFields(p.AccountTurnOver), values[3])
		}

		periods = append(periods, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating periods: %w", err)
	}

	domain.SortPeriods(periods)
	return periods, nil
}

// SavePeriods upserts the financial assets of a company and replaces their statement records.
func (r *PgRepository) SavePeriods(ctx context.Context, companyID int64, periods []domain.Period) error {
	return pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		for _, p := range periods {
			var assetID int64
			err := tx.QueryRow(ctx,
				`INSERT INTO financial_assets (company_id, year, month, is_tax_record)
				 VALUES ($1, $2, $3, $4)
				 ON CONFLICT (company_id, year, month, is_tax_record) DO UPDATE SET year = EXCLUDED.year
				 RETURNING id`,
				companyID, p.Year, p.Month, p.IsTaxRecord).Scan(&assetID)
			if err != nil {
				return fmt.Errorf("saving financial asset %s: %w", p.Label(), err)
			}

			batch := &pgx.Batch{}
			for _, t := range recordTables {
				batch.Queue(fmt.Sprintf("DELETE FROM %s WHERE financial_asset_id = $1", t.table), assetID)
			}
			if p.BalanceReport != nil {
				batch.Queue(insertRecordQuery(balanceTable), recordArgs(assetID, balanceFields(p.BalanceReport))...)
			}
			if p.ProfitLossStatement != nil {
				batch.Queue(insertRecordQuery(profitLossTable), recordArgs(assetID, profitLossFields(p.ProfitLossStatement))...)
			}
			if p.SoldProductFee != nil {
				batch.Queue(insertRecordQuery(soldProductTable), recordArgs(assetID, soldProductFields(p.SoldProductFee))...)
			}
			if p.AccountTurnOver != nil {
				batch.Queue(insertRecordQuery(turnoverTable), recordArgs(assetID, turnoverFields(p.AccountTurnOver))...)
			}

			if err := tx.SendBatch(ctx, batch).Close(); err != nil {
				return fmt.Errorf("saving records for %s: %w", p.Label(), err)
			}
		}
		return nil
	})
}

// SaveRun records an engine run. On success it also upserts one financial_data
// row per period. Nothing is written to financial_data for a failed run.
func (r *PgRepository) SaveRun(ctx context.Context, companyID int64, periods []domain.Period, result ratio.Result, runErr error) (uuid.UUID, error) {
	runID := uuid.New()

	rows, err := periodRows(periods, result)
	if err != nil {
		return uuid.Nil, err
	}

	var errText *string
	if runErr != nil {
		msg := runErr.Error()
		errText = &msg
	}

	err = pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx,
			`INSERT INTO ratio_runs (id, company_id, status, error, period_count)
			 VALUES ($1, $2, $3, $4, $5)`,
			runID, companyID, result.Status, errText, len(periods)); err != nil {
			return fmt.Errorf("inserting run: %w", err)
		}

		for _, row := range rows {
			if _, err := tx.Exec(ctx,
				`INSERT INTO financial_data (financial_asset_id, run_id, metrics, updated_at)
				 VALUES ($1, $2, $3::jsonb, NOW())
				 ON CONFLICT (financial_asset_id)
				 DO UPDATE SET run_id = EXCLUDED.run_id, metrics = EXCLUDED.metrics, updated_at = NOW()`,
				row.assetID, runID, string(row.metrics)); err != nil {
				return fmt.Errorf("saving financial data for asset %d: %w", row.assetID, err)
			}
		}
		return nil
	})
	if err != nil {
		return uuid.Nil, fmt.Errorf("saving run: %w", err)
	}
	return runID, nil
}

func (r *PgRepository) LatestRun(ctx context.Context, companyID int64) (*Run, error) {
	var run Run
	var errText *string
	err := r.pool.QueryRow(ctx,
		`SELECT id, company_id, status, error, period_count, created_at
		 FROM ratio_runs
		 WHERE company_id = $1
		 ORDER BY created_at DESC
		 LIMIT 1`, companyID).
		Scan(&run.ID, &run.CompanyID, &run.Status, &errText, &run.PeriodCount, &run.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("getting latest run: %w", err)
	}
	if errText != nil {
		run.Error = *errText
	}
	return &run, nil
}

type periodRow struct {
	assetID int64
	metrics json.RawMessage
}

// periodRows splits a successful result into one JSON document per period.
// A failed result yields no rows.
func periodRows(periods []domain.Period, result ratio.Result) ([]periodRow, error) {
	if !result.Succeeded() {
		return nil, nil
	}
	if n := result.Periods(); n != len(periods) && len(result.Data) > 0 {
		return nil, fmt.Errorf("result covers %d periods, have %d", n, len(periods))
	}

	rows := make([]periodRow, 0, len(periods))
	for i, p := range periods {
		if p.AssetID == 0 {
			return nil, fmt.Errorf("period %s has no financial asset id", p.Label())
		}
		metrics, err := MetricsJSON(result, i)
		if err != nil {
			return nil, err
		}
		rows = append(rows, periodRow{assetID: p.AssetID, metrics: metrics})
	}
	return rows, nil
}

// MetricsJSON encodes every metric of period i as a JSON object of numbers
// rounded to the storage precision.
func MetricsJSON(result ratio.Result, i int) (json.RawMessage, error) {
	values := result.At(i)
	out := make(map[string]json.Number, len(values))
	for name, v := range values {
		out[name] = json.Number(domain.FormatAmount(v, domain.StoragePrecision))
	}
	b, err := json.Marshal(out)
	if err != nil {
		return nil, fmt.Errorf("encoding metrics for period %d: %w", i, err)
	}
	return b, nil
}
