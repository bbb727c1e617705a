package ratio

// ProfitabilityCalculator computes margin and return ratios from raw metrics.
type ProfitabilityCalculator struct{}

func (c *ProfitabilityCalculator) Names() []string {
	return []string{
		Usability, Efficiency, ROA, ROE,
		GrossProfitMargin, ProfitMarginRatio, CapitalRatio, OperationalProfitMargin,
	}
}

func (c *ProfitabilityCalculator) Dependencies() []string {
	return []string{NetProfit, NetSale, TotalAsset, TotalEquity, GrossProfit, OperationalProfit}
}

func (c *ProfitabilityCalculator) Calculate(s *Series) ([]Column, error) {
	netProfit := s.Column(NetProfit)
	netSale := s.Column(NetSale)
	totalAsset := s.Column(TotalAsset)
	equity := s.Column(TotalEquity)

	return []Column{
		{Usability, divide(netProfit, netSale)},
		{Efficiency, divide(netSale, totalAsset)},
		{ROA, divide(netProfit, totalAsset)},
		{ROE, divide(netProfit, equity)},
		{GrossProfitMargin, divide(s.Column(GrossProfit), netSale)},
		{ProfitMarginRatio, divide(netProfit, netSale)},
		// capital_ratio shares roe's formula.
		{CapitalRatio, divide(netProfit, equity)},
		{OperationalProfitMargin, divide(s.Column(OperationalProfit), netSale)},
	}, nil
}

// DuPontCalculator computes roab from the usability and efficiency ratios.
type DuPontCalculator struct{}

func (c *DuPontCalculator) Names() []string        { return []string{ROAB} }
func (c *DuPontCalculator) Dependencies() []string { return []string{Usability, Efficiency} }

func (c *DuPontCalculator) Calculate(s *Series) ([]Column, error) {
	return []Column{
		{ROAB, mul(s.Column(Usability), s.Column(Efficiency))},
	}, nil
}
