package ratio

// Raw metrics copied or combined from the source records.
const (
	CurrentAsset                      = "current_asset"
	NonCurrentAsset                   = "non_current_asset"
	TotalAsset                        = "total_asset"
	CurrentDebt                       = "current_debt"
	NonCurrentDebt                    = "non_current_debt"
	TotalDebt                         = "total_debt"
	TotalEquity                       = "total_equity"
	Inventory                         = "inventory"
	NetSale                           = "net_sale"
	NetProfit                         = "net_profit"
	AccumulatedProfit                 = "accumulated_profit"
	TradePayable                      = "trade_payable"
	Advance                           = "advance"
	Reserves                          = "reserves"
	LongTermPayable                   = "long_term_payable"
	EmployeeTerminationBenefitReserve = "employee_termination_benefit_reserve"
	OperationalProfit                 = "operational_profit"
	GrossProfit                       = "gross_profit"
	ProceedProfit                     = "proceed_profit"
	SalaryFee                         = "salary_fee"
	OperationalIncomeExpense          = "operational_income_expense"
	MarketingFee                      = "marketing_fee"
	ConsumingMaterial                 = "consuming_material"
	ConstructionOverhead              = "construction_overhead"
	ProductionTotalPrice              = "production_total_price"
	ProductionFee                     = "production_fee"
	SoldProductTotalFee               = "sold_product_total_fee"
)

// Derived metrics.
const (
	Usability                          = "usability"
	Efficiency                         = "efficiency"
	ROA                                = "roa"
	ROAB                               = "roab"
	ROE                                = "roe"
	GrossProfitMargin                  = "gross_profit_margin"
	ProfitMarginRatio                  = "profit_margin_ratio"
	OperationalProfitMargin            = "operational_profit_margin"
	DebtRatio                          = "debt_ratio"
	CapitalRatio                       = "capital_ratio"
	ProprietaryRatio                   = "proprietary_ratio"
	EquityPerTotalDebtRatio            = "equity_per_total_debt_ratio"
	EquityPerTotalNonCurrentAssetRatio = "equity_per_total_non_current_asset_ratio"
	EquityToDebtRatio                  = "equity_to_debt_ratio"
	TotalDebtToProceedProfitRatio      = "total_debt_to_proceed_profit_ratio"
	CurrentDebtToProceedProfitRatio    = "current_debt_to_proceed_profit_ratio"
	CurrentRatio                       = "current_ratio"
	InstantRatio                       = "instant_ratio"
	TotalSumEquityDebt                 = "total_sum_equity_debt"
	SalaryProductionFee                = "salary_production_fee"
	CapitalToAssetRatio                = "capital_to_asset_ratio"
	AccumulatedProfitToAssetRatio      = "accumulated_profit_to_asset_ratio"
	BeforeTaxProfitToAssetRatio        = "before_tax_profit_to_asset_ratio"
	SaleToAssetRatio                   = "sale_to_asset_ratio"
	StockTurnover                      = "stock_turnover"
	TotalAssetTurnoverRatio            = "total_asset_turnover_ratio"
	AltmanBankruptcyRatio              = "altman_bankrupsy_ratio"
	SaleGrowthRatio                    = "sale_growth_ratio"
	NetProfitGrowthRatio               = "net_profit_growth_ratio"
)

// Units of a metric.
const (
	UnitAmount = "amount"
	UnitRatio  = "ratio"
)

// MetricMeta holds the display title and unit of a metric.
type MetricMeta struct {
	Name  string
	Title string
	Unit  string
}

// metricCatalogue lists every metric the engine emits, in display order.
var metricCatalogue = []MetricMeta{
	{CurrentAsset, "Current Asset", UnitAmount},
	{NonCurrentAsset, "Non-Current Asset", UnitAmount},
	{TotalAsset, "Total Asset", UnitAmount},
	{CurrentDebt, "Current Debt", UnitAmount},
	{NonCurrentDebt, "Non-Current Debt", UnitAmount},
	{TotalDebt, "Total Debt", UnitAmount},
	{TotalEquity, "Total Equity", UnitAmount},
	{TotalSumEquityDebt, "Total Sum of Equity and Debt", UnitAmount},
	{Inventory, "Inventory Average", UnitAmount},
	{NetSale, "Net Sale", UnitAmount},
	{NetProfit, "Net Profit", UnitAmount},
	{AccumulatedProfit, "Accumulated Profit", UnitAmount},
	{TradePayable, "Trade Payable", UnitAmount},
	{Advance, "Advance", UnitAmount},
	{Reserves, "Reserves", UnitAmount},
	{LongTermPayable, "Long Term Payable", UnitAmount},
	{EmployeeTerminationBenefitReserve, "Employee Termination Benefit Reserve", UnitAmount},
	{OperationalProfit, "Operational Profit", UnitAmount},
	{GrossProfit, "Gross Profit", UnitAmount},
	{ProceedProfit, "Proceed Profit", UnitAmount},
	{SalaryFee, "Salary Fee", UnitAmount},
	{OperationalIncomeExpense, "Operational Income Expense", UnitAmount},
	{MarketingFee, "Marketing Fee", UnitAmount},
	{ConsumingMaterial, "Consuming Material", UnitAmount},
	{ConstructionOverhead, "Construction Overhead", UnitAmount},
	{ProductionTotalPrice, "Production Total Price", UnitAmount},
	{ProductionFee, "Production Fee", UnitAmount},
	{SoldProductTotalFee, "Sold Product Total Fee", UnitAmount},
	{SalaryProductionFee, "Salary Production Fee", UnitAmount},
	{Usability, "Usability", UnitRatio},
	{Efficiency, "Efficiency", UnitRatio},
	{ROA, "Return on Assets", UnitRatio},
	{ROAB, "Return on Assets (DuPont)", UnitRatio},
	{ROE, "Return on Equity", UnitRatio},
	{GrossProfitMargin, "Gross Profit Margin", UnitRatio},
	{ProfitMarginRatio, "Net Profit Margin", UnitRatio},
	{OperationalProfitMargin, "Operational Profit Margin", UnitRatio},
	{DebtRatio, "Debt Ratio", UnitRatio},
	{CapitalRatio, "Capital Ratio", UnitRatio},
	{ProprietaryRatio, "Proprietary Ratio", UnitRatio},
	{EquityPerTotalDebtRatio, "Equity to Total Debt Ratio", UnitRatio},
	{EquityPerTotalNonCurrentAssetRatio, "Equity to Non-Current Asset Ratio", UnitRatio},
	{EquityToDebtRatio, "Equity to Debt Ratio", UnitRatio},
	{TotalDebtToProceedProfitRatio, "Total Debt to Proceed Profit Ratio", UnitRatio},
	{CurrentDebtToProceedProfitRatio, "Current Debt to Proceed Profit Ratio", UnitRatio},
	{CurrentRatio, "Current Ratio", UnitRatio},
	{InstantRatio, "Instant Ratio", UnitRatio},
	{CapitalToAssetRatio, "Working Capital to Asset Ratio", UnitRatio},
	{AccumulatedProfitToAssetRatio, "Accumulated Profit to Asset Ratio", UnitRatio},
	{BeforeTaxProfitToAssetRatio, "Before Tax Profit to Asset Ratio", UnitRatio},
	{SaleToAssetRatio, "Sale to Asset Ratio", UnitRatio},
	{StockTurnover, "Stock Turnover", UnitRatio},
	{TotalAssetTurnoverRatio, "Total Asset Turnover Ratio", UnitRatio},
	{AltmanBankruptcyRatio, "Altman Bankruptcy Ratio", UnitRatio},
	{SaleGrowthRatio, "Sale Growth Ratio", UnitRatio},
	{NetProfitGrowthRatio, "Net Profit Growth Ratio", UnitRatio},
}

var metricsByName = func() map[string]MetricMeta {
	m := make(map[string]MetricMeta, len(metricCatalogue))
	for _, meta := range metricCatalogue {
		m[meta.Name] = meta
	}
	return m
}()

// Catalogue returns metadata for every metric in display order.
func Catalogue() []MetricMeta {
	out := make([]MetricMeta, len(metricCatalogue))
	copy(out, metricCatalogue)
	return out
}

// Lookup returns the metadata for a metric name.
// Unknown names fall back to the name itself as title.
func Lookup(name string) MetricMeta {
	if meta, ok := metricsByName[name]; ok {
		return meta
	}
	return MetricMeta{Name: name, Title: name, Unit: UnitRatio}
}
