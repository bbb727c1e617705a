package store

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"github.com/farabin/finratio/internal/domain"
)

// recordTable maps one statement table onto the decimal fields of its record.
type recordTable struct {
	table   string
	alias   string
	columns []string
}

var (
	balanceTable = recordTable{
		table: "balance_reports",
		alias: "br",
		columns: []string{
			"total_current_asset", "total_non_current_asset",
			"total_current_debt", "total_non_current_debt",
			"ownership_right_total", "first_period_inventory", "end_period_inventory",
			"net_sale", "net_profit", "accumulated_profit_loss",
			"trade_payable", "advance", "reserves", "long_term_payable",
			"employee_termination_benefit_reserve",
		},
	}
	profitLossTable = recordTable{
		table: "profit_loss_statements",
		alias: "pl",
		columns: []string{
			"operational_profit", "gross_profit", "proceed_profit",
			"salary_fee", "operational_income_expense", "marketing_fee",
		},
	}
	soldProductTable = recordTable{
		table: "sold_product_fees",
		alias: "spf",
		columns: []string{
			"consuming_material", "construction_overhead", "production_total_price",
			"direct_wage", "sold_product_total_price",
		},
	}
	turnoverTable = recordTable{
		table: "account_turnovers",
		alias: "at",
		columns: []string{
			"profit_after_tax", "first_year_accumulated_profit", "end_year_accumulated_profit",
			"allocable_profit", "share_profit",
		},
	}
	recordTables = []recordTable{balanceTable, profitLossTable, soldProductTable, turnoverTable}
)

// Field order matches the column lists above.

func balanceFields(r *domain.BalanceReport) []*decimal.Decimal {
	return []*decimal.Decimal{
		&r.TotalCurrentAsset, &r.TotalNonCurrentAsset,
		&r.TotalCurrentDebt, &r.TotalNonCurrentDebt,
		&r.OwnershipRightTotal, &r.FirstPeriodInventory, &r.EndPeriodInventory,
		&r.NetSale, &r.NetProfit, &r.AccumulatedProfitLoss,
		&r.TradePayable, &r.Advance, &r.Reserves, &r.LongTermPayable,
		&r.EmployeeTerminationBenefitReserve,
	}
}

func profitLossFields(r *domain.ProfitLossStatement) []*decimal.Decimal {
	return []*decimal.Decimal{
		&r.OperationalProfit, &r.GrossProfit, &r.ProceedProfit,
		&r.SalaryFee, &r.OperationalIncomeExpense, &r.MarketingFee,
	}
}

func soldProductFields(r *domain.SoldProductFee) []*decimal.Decimal {
	return []*decimal.Decimal{
		&r.ConsumingMaterial, &r.ConstructionOverhead, &r.ProductionTotalPrice,
		&r.DirectWage, &r.SoldProductTotalPrice,
	}
}

func turnoverFields(r *domain.AccountTurnOver) []*decimal.Decimal {
	return []*decimal.Decimal{
		&r.ProfitAfterTax, &r.FirstYearAccumulatedProfit, &r.EndYearAccumulatedProfit,
		&r.AllocableProfit, &r.ShareProfit,
	}
}

// fill parses scanned text values into the record fields. NULL becomes zero.
func fill(fields []*decimal.Decimal, values []*string) {
	for i, f := range fields {
		*f = domain.SafeParse(lo.FromPtr(values[i]))
	}
}

// loadPeriodsQuery selects every financial asset of a company joined with the
// first record (lowest id) of each statement table.
func loadPeriodsQuery() string {
	var b strings.Builder
	b.WriteString("SELECT fa.id, fa.year, fa.month, fa.is_tax_record")
	for _, t := range recordTables {
		fmt.Fprintf(&b, ", %s.id", t.alias)
		for _, col := range t.columns {
			fmt.Fprintf(&b, ", %s.%s::text", t.alias, col)
		}
	}
	b.WriteString("\n FROM financial_assets fa")
	for _, t := range recordTables {
		fmt.Fprintf(&b,
			"\n LEFT JOIN LATERAL (SELECT * FROM %s x WHERE x.financial_asset_id = fa.id ORDER BY x.id LIMIT 1) %s ON TRUE",
			t.table, t.alias)
	}
	b.WriteString("\n WHERE fa.company_id = $1 AND ($2 = FALSE OR fa.is_tax_record)")
	b.WriteString("\n ORDER BY fa.year, fa.month, fa.id")
	return b.String()
}

// insertRecordQuery builds the INSERT for one statement table.
// Amounts are bound as text and cast to numeric.
func insertRecordQuery(t recordTable) string {
	placeholders := lo.Map(t.columns, func(_ string, i int) string {
		return fmt.Sprintf("$%d::numeric", i+2)
	})
	return fmt.Sprintf("INSERT INTO %s (financial_asset_id, %s) VALUES ($1, %s)",
		t.table, strings.Join(t.columns, ", "), strings.Join(placeholders, ", "))
}

// recordArgs returns the insert arguments for a record.
func recordArgs(assetID int64, fields []*decimal.Decimal) []any {
	args := make([]any, 0, len(fields)+1)
	args = append(args, assetID)
	for _, f := range fields {
		args = append(args, f.String())
	}
	return args
}
