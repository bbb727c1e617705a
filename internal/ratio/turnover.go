package ratio

// TurnoverCalculator computes turnover ratios against whole-series means.
// Each mean is taken once over all periods and shared by every period.
type TurnoverCalculator struct{}

func (c *TurnoverCalculator) Names() []string {
	return []string{StockTurnover, TotalAssetTurnoverRatio}
}

func (c *TurnoverCalculator) Dependencies() []string {
	return []string{SoldProductTotalFee, Inventory, NetSale, TotalAsset}
}

func (c *TurnoverCalculator) Calculate(s *Series) ([]Column, error) {
	inventoryMean := Mean(s.Column(Inventory))
	assetMean := Mean(s.Column(TotalAsset))

	return []Column{
		{StockTurnover, divideBy(s.Column(SoldProductTotalFee), inventoryMean)},
		{TotalAssetTurnoverRatio, divideBy(s.Column(NetSale), assetMean)},
	}, nil
}

// CostCalculator combines wage lines from the cost and income statements.
type CostCalculator struct{}

func (c *CostCalculator) Names() []string        { return []string{SalaryProductionFee} }
func (c *CostCalculator) Dependencies() []string { return []string{ProductionFee, SalaryFee} }

func (c *CostCalculator) Calculate(s *Series) ([]Column, error) {
	return []Column{
		{SalaryProductionFee, add(s.Column(ProductionFee), s.Column(SalaryFee))},
	}, nil
}
