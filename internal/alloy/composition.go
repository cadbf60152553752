package alloy

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidComposition reports a composition whose fractions are negative
// or do not sum to one within tolerance.
var ErrInvalidComposition = errors.New("invalid composition")

// sumTolerance is the allowed deviation of the fraction sum from 1.
const sumTolerance = 1e-6

// Element identifies one of the three alloy constituents. The numeric
// value doubles as the zero-based atom-type index in the structure file.
type Element int

const (
	Al Element = iota
	Fe
	Ni
)

// Elements lists the constituents in their canonical (atom-type) order.
var Elements = [3]Element{Al, Fe, Ni}

// String returns the chemical symbol.
func (e Element) String() string {
	switch e {
	case Al:
		return "Al"
	case Fe:
		return "Fe"
	case Ni:
		return "Ni"
	}
	return fmt.Sprintf("Element(%d)", int(e))
}

// ParseElement resolves a chemical symbol to its Element.
func ParseElement(s string) (Element, error) {
	for _, e := range Elements {
		if e.String() == s {
			return e, nil
		}
	}
	return 0, fmt.Errorf("unknown element %q, want Al, Fe or Ni", s)
}

// Composition is an immutable triple of atomic fractions summing to one.
type Composition struct {
	Al float64
	Fe float64
	Ni float64
}

// NewComposition validates the fractions and returns the composition.
func NewComposition(al, fe, ni float64) (Composition, error) {
	c := Composition{Al: al, Fe: fe, Ni: ni}
	if err := c.Validate(); err != nil {
		return Composition{}, err
	}
	return c, nil
}

// Fraction returns the atomic fraction of the given element.
func (c Composition) Fraction(e Element) float64 {
	switch e {
	case Al:
		return c.Al
	case Fe:
		return c.Fe
	case Ni:
		return c.Ni
	}
	return 0
}

// Validate checks that all fractions are non-negative and sum to one
// within tolerance. It returns a wrapped ErrInvalidComposition otherwise.
func (c Composition) Validate() error {
	for _, e := range Elements {
		if x := c.Fraction(e); x < 0 {
			return fmt.Errorf("%w: %s fraction %v is negative", ErrInvalidComposition, e, x)
		}
	}
	sum := c.Al + c.Fe + c.Ni
	if math.Abs(sum-1) > sumTolerance {
		return fmt.Errorf("%w: fractions sum to %v, want 1", ErrInvalidComposition, sum)
	}
	return nil
}

// Label renders the composition in the Al50_Fe25_Ni25 directory-name form
// used throughout the output tree, with fractions as whole percentages.
func (c Composition) Label() string {
	return fmt.Sprintf("Al%02d_Fe%02d_Ni%02d", percent(c.Al), percent(c.Fe), percent(c.Ni))
}

// String renders the composition in the compact AlXXFeYYNiZZ form.
func (c Composition) String() string {
	return fmt.Sprintf("Al%02dFe%02dNi%02d", percent(c.Al), percent(c.Fe), percent(c.Ni))
}

func percent(x float64) int {
	return int(math.Round(x * 100))
}
