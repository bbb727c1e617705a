package ratio

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/farabin/finratio/internal/domain"
)

// ErrInvalidPeriod is returned when a period cannot be accumulated.
var ErrInvalidPeriod = errors.New("invalid period")

// Column is one named metric sequence.
type Column struct {
	Name   string
	Values []decimal.Decimal
}

// Series holds named per-period sequences. Every sequence has exactly Len() values.
type Series struct {
	n        int
	columns  map[string][]decimal.Decimal
	reported []bool // nil when every period carries a balance report
}

// NewSeries creates an empty series for n periods.
func NewSeries(n int) *Series {
	return &Series{n: n, columns: make(map[string][]decimal.Decimal)}
}

// Len returns the number of periods.
func (s *Series) Len() int { return s.n }

// Reported reports whether period i carried a balance report.
func (s *Series) Reported(i int) bool {
	if s.reported == nil {
		return true
	}
	return s.reported[i]
}

// Has reports whether the named sequence is populated.
func (s *Series) Has(name string) bool {
	_, ok := s.columns[name]
	return ok
}

// Column returns the named sequence, or nil when it is absent.
func (s *Series) Column(name string) []decimal.Decimal {
	return s.columns[name]
}

// Names returns the populated sequence names in sorted order.
func (s *Series) Names() []string {
	names := make([]string, 0, len(s.columns))
	for name := range s.columns {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Set stores a sequence. It fails when the length does not match the period count
// or the name is already populated.
func (s *Series) Set(name string, values []decimal.Decimal) error {
	if len(values) != s.n {
		return fmt.Errorf("metric %s has %d values, want %d", name, len(values), s.n)
	}
	if s.Has(name) {
		return fmt.Errorf("metric %s already populated", name)
	}
	s.columns[name] = values
	return nil
}

// Map returns a copy of every sequence keyed by name.
func (s *Series) Map() map[string][]decimal.Decimal {
	out := make(map[string][]decimal.Decimal, len(s.columns))
	for name, values := range s.columns {
		out[name] = append([]decimal.Decimal(nil), values...)
	}
	return out
}

// rawColumns lists the accumulated metrics in the order they are filled.
var rawColumns = []string{
	CurrentAsset, NonCurrentAsset, TotalAsset,
	CurrentDebt, NonCurrentDebt, TotalDebt,
	TotalEquity, Inventory, NetSale, NetProfit, AccumulatedProfit,
	TradePayable, Advance, Reserves, LongTermPayable, EmployeeTerminationBenefitReserve,
	OperationalProfit, GrossProfit, ProceedProfit, SalaryFee, OperationalIncomeExpense, MarketingFee,
	ConsumingMaterial, ConstructionOverhead, ProductionTotalPrice, ProductionFee, SoldProductTotalFee,
}

// Accumulate copies the raw fields of every period into a fresh series.
// Missing records contribute zero for every field they would supply.
func Accumulate(periods []domain.Period) (*Series, error) {
	n := len(periods)
	cols := make(map[string][]decimal.Decimal, len(rawColumns))
	reported := make([]bool, n)
	for _, name := range rawColumns {
		cols[name] = make([]decimal.Decimal, n)
	}

	for i, p := range periods {
		if p.Month < 0 || p.Month > 12 {
			return nil, fmt.Errorf("period %d (year %d): month %d: %w", i, p.Year, p.Month, ErrInvalidPeriod)
		}
		if p.BalanceReport == nil || p.ProfitLossStatement == nil || p.SoldProductFee == nil {
			slog.Warn("missing financial records",
				"index", i,
				"period", p.Label(),
				"balance_report", p.BalanceReport != nil,
				"profit_loss_statement", p.ProfitLossStatement != nil,
				"sold_product_fee", p.SoldProductFee != nil)
		}

		var br domain.BalanceReport
		if p.BalanceReport != nil {
			br = *p.BalanceReport
			reported[i] = true
		}
		var pl domain.ProfitLossStatement
		if p.ProfitLossStatement != nil {
			pl = *p.ProfitLossStatement
		}
		var spf domain.SoldProductFee
		if p.SoldProductFee != nil {
			spf = *p.SoldProductFee
		}

		cols[CurrentAsset][i] = br.TotalCurrentAsset
		cols[NonCurrentAsset][i] = br.TotalNonCurrentAsset
		cols[TotalAsset][i] = br.TotalCurrentAsset.Add(br.TotalNonCurrentAsset)
		cols[CurrentDebt][i] = br.TotalCurrentDebt
		cols[NonCurrentDebt][i] = br.TotalNonCurrentDebt
		cols[TotalDebt][i] = br.TotalCurrentDebt.Add(br.TotalNonCurrentDebt)
		cols[TotalEquity][i] = br.OwnershipRightTotal
		cols[Inventory][i] = domain.Half(br.FirstPeriodInventory, br.EndPeriodInventory)
		cols[NetSale][i] = br.NetSale
		cols[NetProfit][i] = br.NetProfit
		cols[AccumulatedProfit][i] = br.AccumulatedProfitLoss
		cols[TradePayable][i] = br.TradePayable
		cols[Advance][i] = br.Advance
		cols[Reserves][i] = br.Reserves
		cols[LongTermPayable][i] = br.LongTermPayable
		cols[EmployeeTerminationBenefitReserve][i] = br.EmployeeTerminationBenefitReserve

		cols[OperationalProfit][i] = pl.OperationalProfit
		cols[GrossProfit][i] = pl.GrossProfit
		cols[ProceedProfit][i] = pl.ProceedProfit
		cols[SalaryFee][i] = pl.SalaryFee
		cols[OperationalIncomeExpense][i] = pl.OperationalIncomeExpense
		cols[MarketingFee][i] = pl.MarketingFee

		cols[ConsumingMaterial][i] = spf.ConsumingMaterial
		cols[ConstructionOverhead][i] = spf.ConstructionOverhead
		cols[ProductionTotalPrice][i] = spf.ProductionTotalPrice
		cols[ProductionFee][i] = spf.DirectWage
		cols[SoldProductTotalFee][i] = spf.SoldProductTotalPrice
	}

	s := NewSeries(n)
	s.reported = reported
	for _, name := range rawColumns {
		if err := s.Set(name, cols[name]); err != nil {
			return nil, err
		}
	}
	return s, nil
}
