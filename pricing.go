package inkcost

import (
	"fmt"
	"math"
)

// DefaultPaperPrice is the per-sheet paper price in whole currency units.
const DefaultPaperPrice = 1

// DefaultCurrency is the label printed next to prices.
const DefaultCurrency = "PHP"

// maxCoverage caps coverage before tier lookup.
const maxCoverage = 100.0

// Tier is a coverage bracket. MaxCoverage is the inclusive upper bound;
// the lower bound is the previous tier's MaxCoverage (exclusive), or 0.
type Tier struct {
	Name        string
	MaxCoverage float64 // math.Inf(1) for the last tier
	BWInk       int
	ColorInk    int
}

// Unbounded reports whether the tier has no upper bound.
func (t Tier) Unbounded() bool {
	return math.IsInf(t.MaxCoverage, 1)
}

// PriceList maps coverage percentages to prices.
type PriceList struct {
	PaperPrice int
	Tiers      []Tier
}

// DefaultPriceList returns the four-tier price list.
func DefaultPriceList() PriceList {
	return PriceList{
		PaperPrice: DefaultPaperPrice,
		Tiers: []Tier{
			{Name: "Tier 1: Light (0-25%)", MaxCoverage: 25, BWInk: 1, ColorInk: 2},
			{Name: "Tier 2: Medium (26-50%)", MaxCoverage: 50, BWInk: 2, ColorInk: 4},
			{Name: "Tier 3: Heavy (51-75%)", MaxCoverage: 75, BWInk: 3, ColorInk: 6},
			{Name: "Tier 4: Dense/Full (76-100%)", MaxCoverage: math.Inf(1), BWInk: 4, ColorInk: 9},
		},
	}
}

// Validate checks that the tiers partition [0, +Inf) without gaps or
// overlaps and that no price is negative.
func (p PriceList) Validate() error {
	if p.PaperPrice < 0 {
		return fmt.Errorf("%w: negative paper price %d", ErrInvalidPriceList, p.PaperPrice)
	}
	if len(p.Tiers) == 0 {
		return fmt.Errorf("%w: no tiers", ErrInvalidPriceList)
	}

	prev := math.Inf(-1)
	for i, t := range p.Tiers {
		if t.Name == "" {
			return fmt.Errorf("%w: tier %d has no name", ErrInvalidPriceList, i+1)
		}
		if math.IsNaN(t.MaxCoverage) || t.MaxCoverage < 0 {
			return fmt.Errorf("%w: tier %q has invalid bound %v", ErrInvalidPriceList, t.Name, t.MaxCoverage)
		}
		if t.MaxCoverage <= prev {
			return fmt.Errorf("%w: tier %q bound %v does not exceed previous bound %v",
				ErrInvalidPriceList, t.Name, t.MaxCoverage, prev)
		}
		if t.BWInk < 0 || t.ColorInk < 0 {
			return fmt.Errorf("%w: tier %q has negative ink price", ErrInvalidPriceList, t.Name)
		}
		last := i == len(p.Tiers)-1
		if last != t.Unbounded() {
			if last {
				return fmt.Errorf("%w: last tier %q must be unbounded", ErrInvalidPriceList, t.Name)
			}
			return fmt.Errorf("%w: only the last tier may be unbounded (%q)", ErrInvalidPriceList, t.Name)
		}
		prev = t.MaxCoverage
	}
	return nil
}

// Tier returns the tier for a coverage percentage. Boundaries belong to the
// lower tier. Negative and NaN coverage is rejected; values above 100 are
// treated as 100.
func (p PriceList) Tier(coverage float64) (Tier, error) {
	if math.IsNaN(coverage) || coverage < 0 {
		return Tier{}, fmt.Errorf("%w: %v", ErrCoverageOutOfRange, coverage)
	}
	coverage = math.Min(coverage, maxCoverage)

	for _, t := range p.Tiers {
		if coverage <= t.MaxCoverage {
			return t, nil
		}
	}
	return Tier{}, fmt.Errorf("%w: no tier covers %.2f%%", ErrInvalidPriceList, coverage)
}

// Price computes the pricing breakdown for a coverage percentage.
func (p PriceList) Price(coverage float64) (PricingBreakdown, error) {
	t, err := p.Tier(coverage)
	if err != nil {
		return PricingBreakdown{}, err
	}
	return PricingBreakdown{
		TierName:        t.Name,
		PaperPrice:      p.PaperPrice,
		BWInkPrice:      t.BWInk,
		ColorInkPrice:   t.ColorInk,
		FinalBWPrice:    p.PaperPrice + t.BWInk,
		FinalColorPrice: p.PaperPrice + t.ColorInk,
	}, nil
}
