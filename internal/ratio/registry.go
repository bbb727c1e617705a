package ratio

import (
	"fmt"
	"log/slog"

	"github.com/samber/lo"
)

// Calculator derives one or more metrics from already populated sequences.
type Calculator interface {
	Names() []string
	Dependencies() []string
	Calculate(s *Series) ([]Column, error)
}

// Registry manages the execution of calculators in dependency order.
type Registry struct {
	calculators     []Calculator
	registeredNames map[string]bool
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{registeredNames: make(map[string]bool)}
}

// Register adds a calculator to the registry.
// Panics if any metric name is already registered (programming error).
func (r *Registry) Register(calc Calculator) {
	for _, name := range calc.Names() {
		if r.registeredNames[name] {
			panic(fmt.Sprintf("duplicate metric %q registered", name))
		}
		r.registeredNames[name] = true
	}
	r.calculators = append(r.calculators, calc)
}

// Derive runs all registered calculators in dependency order and stores
// their output in s.
func (r *Registry) Derive(s *Series) error {
	ordered, err := r.topologicalSort()
	if err != nil {
		return fmt.Errorf("sorting calculators: %w", err)
	}

	for _, calc := range ordered {
		for _, dep := range calc.Dependencies() {
			if !s.Has(dep) {
				return fmt.Errorf("metrics %v depend on %s which is not yet computed", calc.Names(), dep)
			}
		}

		slog.Debug("calculating metrics", "metrics", calc.Names())
		columns, err := calc.Calculate(s)
		if err != nil {
			return fmt.Errorf("calculating metrics %v: %w", calc.Names(), err)
		}

		for _, col := range columns {
			if !lo.Contains(calc.Names(), col.Name) {
				return fmt.Errorf("calculator for %v produced undeclared metric %s", calc.Names(), col.Name)
			}
			if err := s.Set(col.Name, col.Values); err != nil {
				return fmt.Errorf("storing metric: %w", err)
			}
		}
	}

	return nil
}

// topologicalSort orders calculators so dependencies come first.
// Returns an error if a dependency cycle is detected.
func (r *Registry) topologicalSort() ([]Calculator, error) {
	calcByName := make(map[string]Calculator)
	for _, calc := range r.calculators {
		for _, name := range calc.Names() {
			calcByName[name] = calc
		}
	}

	visited := make(map[Calculator]bool)
	inProgress := make(map[Calculator]bool)
	var ordered []Calculator

	var visit func(calc Calculator) error
	visit = func(calc Calculator) error {
		if visited[calc] {
			return nil
		}
		if inProgress[calc] {
			return fmt.Errorf("dependency cycle detected involving metrics %v", calc.Names())
		}
		inProgress[calc] = true

		for _, dep := range calc.Dependencies() {
			if depCalc, ok := calcByName[dep]; ok {
				if err := visit(depCalc); err != nil {
					return err
				}
			}
		}

		delete(inProgress, calc)
		visited[calc] = true
		ordered = append(ordered, calc)
		return nil
	}

	for _, calc := range r.calculators {
		if err := visit(calc); err != nil {
			return nil, err
		}
	}

	return ordered, nil
}
