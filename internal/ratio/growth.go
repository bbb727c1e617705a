package ratio

// GrowthCalculator computes period-over-period growth of sales and net profit.
// A period without a balance report has zero growth.
type GrowthCalculator struct{}

func (c *GrowthCalculator) Names() []string        { return []string{SaleGrowthRatio, NetProfitGrowthRatio} }
func (c *GrowthCalculator) Dependencies() []string { return []string{NetSale, NetProfit} }

func (c *GrowthCalculator) Calculate(s *Series) ([]Column, error) {
	return []Column{
		{SaleGrowthRatio, growth(s.Column(NetSale), s.Reported)},
		{NetProfitGrowthRatio, growth(s.Column(NetProfit), s.Reported)},
	}, nil
}
