package ratio

import "github.com/samber/lo"

// Chart groups metrics that are reported together.
type Chart struct {
	Name    string
	Metrics []string
}

var charts = []Chart{
	{"sale", []string{NetSale, GrossProfit, OperationalIncomeExpense, MarketingFee}},
	{"debt", []string{TradePayable, Advance, Reserves, LongTermPayable, EmployeeTerminationBenefitReserve}},
	{"asset", []string{Inventory, CurrentAsset, NonCurrentAsset, TotalAsset}},
	{"profit", []string{GrossProfit, OperationalProfit, ProceedProfit, NetProfit}},
	{"cost", []string{ConsumingMaterial, ProductionFee, ConstructionOverhead, ProductionTotalPrice, SalaryFee, SalaryProductionFee}},
	{"equity", []string{TotalDebt, TotalEquity, TotalSumEquityDebt}},
	{"bankrupsy", []string{AltmanBankruptcyRatio}},
	{"profitability", []string{Efficiency, ROA, ROAB, ROE, GrossProfitMargin, ProfitMarginRatio}},
	{"salary", []string{ConstructionOverhead, ProductionTotalPrice, SalaryFee, SalaryProductionFee}},
	{"inventory", []string{Inventory}},
	{"agility", []string{InstantRatio, StockTurnover}},
	{"liquidity", []string{InstantRatio, CurrentRatio}},
	{"leverage", []string{DebtRatio, CapitalRatio, ProprietaryRatio, EquityPerTotalDebtRatio, EquityPerTotalNonCurrentAssetRatio}},
	{"growth", []string{SaleGrowthRatio, NetProfitGrowthRatio, OperationalProfitMargin}},
}

// Charts returns every chart grouping in display order.
func Charts() []Chart {
	return lo.Map(charts, func(c Chart, _ int) Chart {
		return Chart{Name: c.Name, Metrics: append([]string(nil), c.Metrics...)}
	})
}

// FindChart returns the chart with the given name.
func FindChart(name string) (Chart, bool) {
	return lo.Find(Charts(), func(c Chart) bool { return c.Name == name })
}
