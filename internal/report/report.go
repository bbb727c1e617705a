package report

import (
	"sort"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"github.com/farabin/finratio/internal/domain"
	"github.com/farabin/finratio/internal/ratio"
)

// Report is a computed result labelled with its company and periods.
type Report struct {
	Company string       `json:"company"`
	Name    string       `json:"name"`
	Labels  []string     `json:"labels"`
	Result  ratio.Result `json:"result"`
}

// New labels a result with the periods it was computed from.
func New(company, name string, periods []domain.Period, result ratio.Result) Report {
	return Report{
		Company: company,
		Name:    name,
		Labels:  lo.Map(periods, func(p domain.Period, _ int) string { return p.Label() }),
		Result:  result,
	}
}

// Latest returns the index of the most recent period, or -1 when there is none.
func (r Report) Latest() int {
	return len(r.Labels) - 1
}

// Value returns metric value i, or zero when it is absent.
func (r Report) Value(metric string, i int) decimal.Decimal {
	values := r.Result.Data[metric]
	if i < 0 || i >= len(values) {
		return decimal.Zero
	}
	return values[i]
}

// Metrics returns the metrics present in the result: catalogue metrics in
// display order, then any others sorted by name.
func (r Report) Metrics() []string {
	var names []string
	known := make(map[string]bool)
	for _, meta := range ratio.Catalogue() {
		known[meta.Name] = true
		if _, ok := r.Result.Data[meta.Name]; ok {
			names = append(names, meta.Name)
		}
	}

	var extra []string
	for name := range r.Result.Data {
		if !known[name] {
			extra = append(extra, name)
		}
	}
	sort.Strings(extra)
	return append(names, extra...)
}
