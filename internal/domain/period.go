package domain

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/shopspring/decimal"
)

// BalanceReport holds the balance sheet lines the ratio engine reads.
type BalanceReport struct {
	TotalCurrentAsset                 decimal.Decimal `json:"total_current_asset"`
	TotalNonCurrentAsset              decimal.Decimal `json:"total_non_current_asset"`
	TotalCurrentDebt                  decimal.Decimal `json:"total_current_debt"`
	TotalNonCurrentDebt               decimal.Decimal `json:"total_non_current_debt"`
	OwnershipRightTotal               decimal.Decimal `json:"ownership_right_total"`
	FirstPeriodInventory              decimal.Decimal `json:"first_period_inventory"`
	EndPeriodInventory                decimal.Decimal `json:"end_period_inventory"`
	NetSale                           decimal.Decimal `json:"net_sale"`
	NetProfit                         decimal.Decimal `json:"net_profit"`
	AccumulatedProfitLoss             decimal.Decimal `json:"accumulated_profit_loss"`
	TradePayable                      decimal.Decimal `json:"trade_payable"`
	Advance                           decimal.Decimal `json:"advance"`
	Reserves                          decimal.Decimal `json:"reserves"`
	LongTermPayable                   decimal.Decimal `json:"long_term_payable"`
	EmployeeTerminationBenefitReserve decimal.Decimal `json:"employee_termination_benefit_reserve"`
}

// ProfitLossStatement holds the income statement lines the ratio engine reads.
type ProfitLossStatement struct {
	OperationalProfit        decimal.Decimal `json:"operational_profit"`
	GrossProfit              decimal.Decimal `json:"gross_profit"`
	ProceedProfit            decimal.Decimal `json:"proceed_profit"`
	SalaryFee                decimal.Decimal `json:"salary_fee"`
	OperationalIncomeExpense decimal.Decimal `json:"operational_income_expense"`
	MarketingFee             decimal.Decimal `json:"marketing_fee"`
}

// SoldProductFee holds the cost-of-goods-sold lines.
type SoldProductFee struct {
	ConsumingMaterial     decimal.Decimal `json:"consuming_material"`
	ConstructionOverhead  decimal.Decimal `json:"construction_overhead"`
	ProductionTotalPrice  decimal.Decimal `json:"production_total_price"`
	DirectWage            decimal.Decimal `json:"direct_wage"`
	SoldProductTotalPrice decimal.Decimal `json:"sold_product_total_price"`
}

// AccountTurnOver is carried alongside a period for downstream consumers.
// No ratio reads it.
type AccountTurnOver struct {
	ProfitAfterTax             decimal.Decimal `json:"profit_after_tax"`
	FirstYearAccumulatedProfit decimal.Decimal `json:"first_year_accumulated_profit"`
	EndYearAccumulatedProfit   decimal.Decimal `json:"end_year_accumulated_profit"`
	AllocableProfit            decimal.Decimal `json:"allocable_profit"`
	ShareProfit                decimal.Decimal `json:"share_profit"`
}

// Period is one reporting interval of a company. Month is 0 for yearly records.
// Any of the four records may be nil.
type Period struct {
	AssetID             int64                `json:"asset_id,omitempty"`
	Year                int                  `json:"year"`
	Month               int                  `json:"month"`
	IsTaxRecord         bool                 `json:"is_tax_record"`
	BalanceReport       *BalanceReport       `json:"balance_report,omitempty"`
	ProfitLossStatement *ProfitLossStatement `json:"profit_loss_statement,omitempty"`
	SoldProductFee      *SoldProductFee      `json:"sold_product_fee,omitempty"`
	AccountTurnOver     *AccountTurnOver     `json:"account_turnover,omitempty"`
}

// Label renders the period as "1402" for yearly records or "1402-03" for monthly ones.
func (p Period) Label() string {
	if p.Month == 0 {
		return fmt.Sprintf("%d", p.Year)
	}
	return fmt.Sprintf("%d-%02d", p.Year, p.Month)
}

// SortPeriods orders periods by year, then month, keeping the relative order of equal keys.
func SortPeriods(periods []Period) {
	sort.SliceStable(periods, func(i, j int) bool {
		if periods[i].Year != periods[j].Year {
			return periods[i].Year < periods[j].Year
		}
		return periods[i].Month < periods[j].Month
	})
}

// DecodePeriods reads a JSON array of periods and returns them in year/month order.
func DecodePeriods(r io.Reader) ([]Period, error) {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()

	var periods []Period
	if err := dec.Decode(&periods); err != nil {
		return nil, fmt.Errorf("decoding periods: %w", err)
	}
	SortPeriods(periods)
	return periods, nil
}
