package ratio

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/farabin/finratio/internal/domain"
)

func TestAccumulateMapsRecordFields(t *testing.T) {
	p := fullPeriod(1402)
	p.SoldProductFee.ConstructionOverhead = d("33")
	p.BalanceReport.EmployeeTerminationBenefitReserve = d("12")

	s, err := Accumulate([]domain.Period{p})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tests := []struct {
		name string
		want string
	}{
		{CurrentAsset, "600"},
		{NonCurrentAsset, "400"},
		{TotalAsset, "1000"},
		{CurrentDebt, "300"},
		{NonCurrentDebt, "200"},
		{TotalDebt, "500"},
		{TotalEquity, "500"},
		{Inventory, "100"},
		{AccumulatedProfit, "150"},
		{TradePayable, "90"},
		{EmployeeTerminationBenefitReserve, "12"},
		{GrossProfit, "800"},
		{ConstructionOverhead, "33"},
		{ProductionFee, "40"},
		{SoldProductTotalFee, "1200"},
	}

	for _, tt := range tests {
		col := s.Column(tt.name)
		if len(col) != 1 {
			t.Fatalf("%s has %d values, want 1", tt.name, len(col))
		}
		if !col[0].Equal(d(tt.want)) {
			t.Errorf("%s = %s, want %s", tt.name, col[0], tt.want)
		}
	}

	if got := len(s.Names()); got != len(rawColumns) {
		t.Errorf("accumulated %d metrics, want %d", got, len(rawColumns))
	}
}

func TestAccumulateMonthBounds(t *testing.T) {
	tests := []struct {
		month   int
		wantErr bool
	}{
		{0, false},
		{1, false},
		{12, false},
		{13, true},
		{-1, true},
	}

	for _, tt := range tests {
		_, err := Accumulate([]domain.Period{{Year: 1402, Month: tt.month}})
		if (err != nil) != tt.wantErr {
			t.Errorf("month %d: err = %v, wantErr %v", tt.month, err, tt.wantErr)
		}
	}
}

func TestAccumulateTracksReportedPeriods(t *testing.T) {
	partial := domain.Period{Year: 1401, ProfitLossStatement: &domain.ProfitLossStatement{GrossProfit: d("10")}}
	s, err := Accumulate([]domain.Period{fullPeriod(1400), partial, fullPeriod(1402)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []bool{true, false, true}
	for i, w := range want {
		if got := s.Reported(i); got != w {
			t.Errorf("Reported(%d) = %v, want %v", i, got, w)
		}
	}

	if !NewSeries(2).Reported(1) {
		t.Error("a fresh series should treat every period as reported")
	}
}

func TestSeriesSet(t *testing.T) {
	s := NewSeries(2)

	if err := s.Set("a", []decimal.Decimal{decimal.Zero}); err == nil {
		t.Error("expected length error")
	}
	if err := s.Set("a", []decimal.Decimal{decimal.Zero, decimal.NewFromInt(1)}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.Set("a", []decimal.Decimal{decimal.Zero, decimal.Zero}); err == nil {
		t.Error("expected error when overwriting a metric")
	}

	m := s.Map()
	m["a"][1] = decimal.NewFromInt(99)
	if !s.Column("a")[1].Equal(decimal.NewFromInt(1)) {
		t.Error("Map should return a copy")
	}
}

func TestMean(t *testing.T) {
	tests := []struct {
		name   string
		values []string
		want   string
	}{
		{"empty", nil, "0"},
		{"single", []string{"7"}, "7"},
		{"two", []string{"100", "300"}, "200"},
		{"with negatives", []string{"-10", "10", "30"}, "10"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values := make([]decimal.Decimal, len(tt.values))
			for i, v := range tt.values {
				values[i] = d(v)
			}
			if got := Mean(values); !got.Equal(d(tt.want)) {
				t.Errorf("Mean = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestChartsReferenceCatalogue(t *testing.T) {
	for _, chart := range Charts() {
		if len(chart.Metrics) == 0 {
			t.Errorf("chart %s has no metrics", chart.Name)
		}
		for _, name := range chart.Metrics {
			if _, ok := metricsByName[name]; !ok {
				t.Errorf("chart %s references unknown metric %s", chart.Name, name)
			}
		}
	}

	if _, ok := FindChart("bankrupsy"); !ok {
		t.Error("bankrupsy chart not found")
	}
	if _, ok := FindChart("nope"); ok {
		t.Error("unexpected chart found")
	}
}

func TestLookupFallsBackToName(t *testing.T) {
	if got := Lookup(ROA); got.Title != "Return on Assets" || got.Unit != UnitRatio {
		t.Errorf("Lookup(roa) = %+v", got)
	}
	if got := Lookup("custom"); got.Title != "custom" {
		t.Errorf("Lookup(custom).Title = %q, want custom", got.Title)
	}
}
