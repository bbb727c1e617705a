package ratio

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/farabin/finratio/internal/domain"
)

// Result status values.
const (
	StatusSuccess = "success"
	StatusFailed  = "failed"
)

// Result is the outcome of one engine run. Data is empty when Status is failed.
type Result struct {
	Status string                       `json:"status"`
	Data   map[string][]decimal.Decimal `json:"data"`
}

// Succeeded reports whether the run produced data.
func (r Result) Succeeded() bool { return r.Status == StatusSuccess }

// Periods returns the number of periods covered by the result.
func (r Result) Periods() int {
	for _, values := range r.Data {
		return len(values)
	}
	return 0
}

// At returns every metric value of period i.
func (r Result) At(i int) map[string]decimal.Decimal {
	out := make(map[string]decimal.Decimal, len(r.Data))
	for name, values := range r.Data {
		if i < len(values) {
			out[name] = values[i]
		}
	}
	return out
}

// MarshalJSON keeps data as an object even when it is nil.
func (r Result) MarshalJSON() ([]byte, error) {
	type plain Result
	if r.Data == nil {
		r.Data = map[string][]decimal.Decimal{}
	}
	return json.Marshal(plain(r))
}

func failed() Result {
	return Result{Status: StatusFailed, Data: map[string][]decimal.Decimal{}}
}

// DefaultRegistry returns a registry holding every ratio calculator.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(&ProfitabilityCalculator{})
	r.Register(&DuPontCalculator{})
	r.Register(&LeverageCalculator{})
	r.Register(&LiquidityCalculator{})
	r.Register(&CostCalculator{})
	r.Register(&TurnoverCalculator{})
	r.Register(&AltmanInputsCalculator{})
	r.Register(&AltmanCalculator{})
	r.Register(&GrowthCalculator{})
	return r
}

// Engine turns an ordered sequence of periods into metric sequences.
// It holds no per-run state and is safe for concurrent use.
type Engine struct {
	registry *Registry
}

// NewEngine creates an engine with the default ratio registry.
func NewEngine() *Engine {
	return &Engine{registry: DefaultRegistry()}
}

// NewEngineWithRegistry creates an engine that derives ratios with r.
func NewEngineWithRegistry(r *Registry) *Engine {
	return &Engine{registry: r}
}

// Compute accumulates the periods and derives every ratio.
// The returned Result is always well-formed; err is non-nil exactly when it failed.
// Periods must already be in year/month order.
func (e *Engine) Compute(periods []domain.Period) (result Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("ratio computation panicked", "panic", r)
			result = failed()
			err = fmt.Errorf("computing ratios: panic: %v", r)
		}
	}()

	s, err := Accumulate(periods)
	if err != nil {
		return failed(), fmt.Errorf("accumulating periods: %w", err)
	}

	if err := e.registry.Derive(s); err != nil {
		return failed(), fmt.Errorf("deriving ratios: %w", err)
	}

	return Result{Status: StatusSuccess, Data: s.Map()}, nil
}
