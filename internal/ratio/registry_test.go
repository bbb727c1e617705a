package ratio

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/farabin/finratio/internal/domain"
)

// stubCalculator emits constant sequences of the given length.
type stubCalculator struct {
	names  []string
	deps   []string
	length int
	emit   []string
}

func (c *stubCalculator) Names() []string        { return c.names }
func (c *stubCalculator) Dependencies() []string { return c.deps }

func (c *stubCalculator) Calculate(s *Series) ([]Column, error) {
	n := s.Len()
	if c.length >= 0 {
		n = c.length
	}
	emit := c.emit
	if emit == nil {
		emit = c.names
	}
	var cols []Column
	for _, name := range emit {
		cols = append(cols, Column{Name: name, Values: make([]decimal.Decimal, n)})
	}
	return cols, nil
}

func stub(names, deps []string) *stubCalculator {
	return &stubCalculator{names: names, deps: deps, length: -1}
}

func TestRegistryExecutionOrder(t *testing.T) {
	registry := NewRegistry()

	// Register in reverse order; Derive must still honour dependencies.
	registry.Register(&AltmanCalculator{})
	registry.Register(&DuPontCalculator{})
	registry.Register(&AltmanInputsCalculator{})
	registry.Register(&LeverageCalculator{})
	registry.Register(&ProfitabilityCalculator{})

	s, err := Accumulate([]domain.Period{fullPeriod(1402)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := registry.Derive(s); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !s.Has(ROAB) {
		t.Error("roab not computed")
	}
	if got := s.Column(AltmanBankruptcyRatio)[0]; !got.Equal(d("4.224")) {
		t.Errorf("altman = %s, want 4.224", got)
	}
}

func TestRegistryDuplicatePanics(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Error("expected panic for duplicate metric")
		}
	}()

	registry := NewRegistry()
	registry.Register(&ProfitabilityCalculator{})
	registry.Register(stub([]string{ROE}, nil))
}

func TestRegistryErrors(t *testing.T) {
	tests := []struct {
		name        string
		calculators []Calculator
		wantErr     string
	}{
		{
			name: "dependency cycle",
			calculators: []Calculator{
				stub([]string{"a"}, []string{"b"}),
				stub([]string{"b"}, []string{"a"}),
			},
			wantErr: "dependency cycle",
		},
		{
			name:        "missing dependency",
			calculators: []Calculator{stub([]string{"a"}, []string{"shareholder_payables"})},
			wantErr:     "not yet computed",
		},
		{
			name:        "wrong length",
			calculators: []Calculator{&stubCalculator{names: []string{"a"}, length: 5}},
			wantErr:     "has 5 values, want 2",
		},
		{
			name:        "undeclared metric",
			calculators: []Calculator{&stubCalculator{names: []string{"a"}, length: -1, emit: []string{"z"}}},
			wantErr:     "undeclared metric z",
		},
		{
			name:        "overwrites raw metric",
			calculators: []Calculator{stub([]string{NetSale}, nil)},
			wantErr:     "already populated",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			registry := NewRegistry()
			for _, c := range tt.calculators {
				registry.Register(c)
			}

			s, err := Accumulate([]domain.Period{fullPeriod(1401), fullPeriod(1402)})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			err = registry.Derive(s)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %q, want it to contain %q", err, tt.wantErr)
			}
		})
	}
}

func TestEngineFailsOnRegistryCycle(t *testing.T) {
	registry := NewRegistry()
	registry.Register(stub([]string{"a"}, []string{"b"}))
	registry.Register(stub([]string{"b"}, []string{"a"}))

	result, err := NewEngineWithRegistry(registry).Compute([]domain.Period{fullPeriod(1402)})
	if err == nil {
		t.Fatal("expected error")
	}
	if result.Succeeded() {
		t.Error("result should not succeed")
	}
	if len(result.Data) != 0 {
		t.Errorf("failed result has %d metrics, want 0", len(result.Data))
	}
}
