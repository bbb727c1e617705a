package ratio

// LeverageCalculator computes debt and equity structure ratios.
type LeverageCalculator struct{}

func (c *LeverageCalculator) Names() []string {
	return []string{
		DebtRatio, ProprietaryRatio,
		EquityPerTotalDebtRatio, EquityPerTotalNonCurrentAssetRatio, EquityToDebtRatio,
		TotalDebtToProceedProfitRatio, CurrentDebtToProceedProfitRatio,
		TotalSumEquityDebt,
	}
}

func (c *LeverageCalculator) Dependencies() []string {
	return []string{TotalDebt, CurrentDebt, TotalAsset, NonCurrentAsset, TotalEquity, ProceedProfit}
}

func (c *LeverageCalculator) Calculate(s *Series) ([]Column, error) {
	totalDebt := s.Column(TotalDebt)
	totalAsset := s.Column(TotalAsset)
	equity := s.Column(TotalEquity)
	proceedProfit := s.Column(ProceedProfit)

	return []Column{
		{DebtRatio, divide(totalDebt, totalAsset)},
		{ProprietaryRatio, divide(proceedProfit, totalAsset)},
		// Named equity per debt, but computed as debt per equity.
		{EquityPerTotalDebtRatio, divide(totalDebt, equity)},
		{EquityPerTotalNonCurrentAssetRatio, divide(equity, s.Column(NonCurrentAsset))},
		{EquityToDebtRatio, divide(equity, totalDebt)},
		{TotalDebtToProceedProfitRatio, divide(totalDebt, proceedProfit)},
		{CurrentDebtToProceedProfitRatio, divide(s.Column(CurrentDebt), proceedProfit)},
		{TotalSumEquityDebt, add(equity, totalDebt)},
	}, nil
}

// LiquidityCalculator computes short-term solvency ratios.
type LiquidityCalculator struct{}

func (c *LiquidityCalculator) Names() []string { return []string{CurrentRatio, InstantRatio} }
func (c *LiquidityCalculator) Dependencies() []string {
	return []string{CurrentAsset, CurrentDebt, Inventory}
}

func (c *LiquidityCalculator) Calculate(s *Series) ([]Column, error) {
	currentAsset := s.Column(CurrentAsset)
	currentDebt := s.Column(CurrentDebt)

	return []Column{
		{CurrentRatio, divide(currentAsset, currentDebt)},
		{InstantRatio, divide(sub(currentAsset, s.Column(Inventory)), currentDebt)},
	}, nil
}
