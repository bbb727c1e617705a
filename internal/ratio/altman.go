package ratio

import "github.com/shopspring/decimal"

// Altman weights. The sales weight is 0.999 rather than the textbook 1.0.
var (
	altmanWorkingCapitalWeight    = decimal.RequireFromString("1.2")
	altmanAccumulatedProfitWeight = decimal.RequireFromString("1.4")
	altmanBeforeTaxProfitWeight   = decimal.RequireFromString("3.3")
	altmanEquityWeight            = decimal.RequireFromString("0.6")
	altmanSaleWeight              = decimal.RequireFromString("0.999")
)

// AltmanInputsCalculator computes the asset-relative terms of the Altman score.
type AltmanInputsCalculator struct{}

func (c *AltmanInputsCalculator) Names() []string {
	return []string{
		CapitalToAssetRatio, AccumulatedProfitToAssetRatio,
		BeforeTaxProfitToAssetRatio, SaleToAssetRatio,
	}
}

func (c *AltmanInputsCalculator) Dependencies() []string {
	return []string{CurrentAsset, CurrentDebt, AccumulatedProfit, ProceedProfit, NetSale, TotalAsset}
}

func (c *AltmanInputsCalculator) Calculate(s *Series) ([]Column, error) {
	totalAsset := s.Column(TotalAsset)
	workingCapital := sub(s.Column(CurrentAsset), s.Column(CurrentDebt))

	return []Column{
		{CapitalToAssetRatio, divide(workingCapital, totalAsset)},
		{AccumulatedProfitToAssetRatio, divide(s.Column(AccumulatedProfit), totalAsset)},
		{BeforeTaxProfitToAssetRatio, divide(s.Column(ProceedProfit), totalAsset)},
		{SaleToAssetRatio, divide(s.Column(NetSale), totalAsset)},
	}, nil
}

// AltmanCalculator computes the weighted Altman bankruptcy score.
type AltmanCalculator struct{}

func (c *AltmanCalculator) Names() []string { return []string{AltmanBankruptcyRatio} }

func (c *AltmanCalculator) Dependencies() []string {
	return []string{
		CapitalToAssetRatio, AccumulatedProfitToAssetRatio, BeforeTaxProfitToAssetRatio,
		EquityPerTotalDebtRatio, SaleToAssetRatio,
	}
}

func (c *AltmanCalculator) Calculate(s *Series) ([]Column, error) {
	score := scale(s.Column(CapitalToAssetRatio), altmanWorkingCapitalWeight)
	score = add(score, scale(s.Column(AccumulatedProfitToAssetRatio), altmanAccumulatedProfitWeight))
	score = add(score, scale(s.Column(BeforeTaxProfitToAssetRatio), altmanBeforeTaxProfitWeight))
	score = add(score, scale(s.Column(EquityPerTotalDebtRatio), altmanEquityWeight))
	score = add(score, scale(s.Column(SaleToAssetRatio), altmanSaleWeight))

	return []Column{{AltmanBankruptcyRatio, score}}, nil
}
