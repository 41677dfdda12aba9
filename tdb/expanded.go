package tdb

import (
	"fmt"
	"math"

	"github.com/subtlepseudonym/astrotime/julian"
	"github.com/subtlepseudonym/astrotime/sentinel"
)

// Term is one periodic component: Amplitude * sin(Argument(angles)).
type Term struct {
	Amplitude float64 // seconds
	Argument  func(a Angles) float64
}

// SimpleTerms reproduce Simple exactly.
var SimpleTerms = []Term{
	{0.001657, func(a Angles) float64 { return a.G }},
	{0.000022, func(a Angles) float64 { return 2 * a.G }},
}

// DefaultTerms extends SimpleTerms with microsecond-level harmonics.
var DefaultTerms = append(append([]Term(nil), SimpleTerms...),
	Term{0.000001, func(a Angles) float64 { return 3 * a.G }},
	Term{0.000001, func(a Angles) float64 { return a.G - 2*a.Venus }},
)

// Expanded sums an ordered, open-ended list of terms.
type Expanded struct {
	terms []Term
}

// NewExpanded builds a provider over terms, evaluated in order.
func NewExpanded(terms []Term) (*Expanded, error) {
	if len(terms) == 0 {
		return nil, fmt.Errorf("expanded tdb provider needs at least one term: %w", sentinel.ErrInvalidConfiguration)
	}

	out := make([]Term, len(terms))
	for i, term := range terms {
		if term.Argument == nil {
			return nil, fmt.Errorf("term %d has no argument function: %w", i, sentinel.ErrInvalidConfiguration)
		}
		out[i] = term
	}
	return &Expanded{terms: out}, nil
}

var defaultExpanded = &Expanded{terms: DefaultTerms}

// DefaultExpanded returns the provider over DefaultTerms.
func DefaultExpanded() *Expanded {
	return defaultExpanded
}

func (e *Expanded) CorrectionSeconds(tt julian.Day) float64 {
	a := AnglesAt(tt)

	var sum float64
	for _, term := range e.terms {
		sum += term.Amplitude * math.Sin(term.Argument(a))
	}
	return sum
}

// Len returns the number of terms.
func (e *Expanded) Len() int {
	return len(e.terms)
}
