// Package lattice maps alloy compositions to lattice parameters for the
// three crystal-structure variants via Vegard's-law interpolation of the
// pure-element reference constants.
package lattice

import (
	"fmt"
	"math"

	"github.com/vk/sfegridgo/internal/alloy"
)

// Variant tags one of the three close-packed stacking variants.
type Variant int

const (
	FCC Variant = iota
	HCP
	DHCP
)

// Variants lists the variants in their canonical order.
var Variants = [3]Variant{FCC, HCP, DHCP}

// String returns the conventional structure name.
func (v Variant) String() string {
	switch v {
	case FCC:
		return "FCC"
	case HCP:
		return "HCP"
	case DHCP:
		return "DHCP"
	}
	return fmt.Sprintf("Variant(%d)", int(v))
}

// ParseVariant resolves a structure name (FCC, HCP, DHCP) to its Variant.
func ParseVariant(s string) (Variant, error) {
	for _, v := range Variants {
		if v.String() == s {
			return v, nil
		}
	}
	return 0, fmt.Errorf("unknown variant %q, want FCC, HCP or DHCP", s)
}

// Hexagonal reports whether the variant uses the hexagonal (a, c) setting
// rather than the single cubic constant.
func (v Variant) Hexagonal() bool {
	return v == HCP || v == DHCP
}

// StackingPeriod returns the number of layers in the variant's stacking
// repeat along the c axis: 2 for AB (HCP), 4 for ABAC (DHCP). FCC in its
// cubic setting has no layer count constraint and reports 1.
func (v Variant) StackingPeriod() int {
	switch v {
	case HCP:
		return 2
	case DHCP:
		return 4
	}
	return 1
}

// IdealCA is the ideal close-packing c/a ratio, sqrt(8/3). It preserves
// the FCC per-atom volume across the hexagonal variants.
var IdealCA = math.Sqrt(8.0 / 3.0)

// Spec holds the lattice parameters for one (composition, variant) pair.
// A is the cubic constant for FCC or the in-plane hexagonal constant for
// HCP/DHCP; C is the hexagonal c constant (two layer spacings) and zero
// for FCC. All lengths are in angstroms.
type Spec struct {
	Variant Variant
	A       float64
	C       float64
}

// LayerSpacing returns the close-packed interlayer distance c/2 for the
// hexagonal variants and zero for FCC.
func (s Spec) LayerSpacing() float64 {
	if !s.Variant.Hexagonal() {
		return 0
	}
	return s.C / 2
}

// Constants carries the pure-element FCC reference lattice constants and
// the per-variant c/a ratios the model interpolates from.
type Constants struct {
	// FCCA maps each element to its FCC reference lattice constant (Å).
	FCCA map[alloy.Element]float64
	// CARatio maps each hexagonal variant to its c/a ratio.
	CARatio map[Variant]float64
}

// DefaultConstants returns the built-in reference table: Al 4.0465,
// Fe 3.5155 (the close-packed gamma phase), Ni 3.5240, ideal c/a for both
// hexagonal variants.
func DefaultConstants() Constants {
	return Constants{
		FCCA: map[alloy.Element]float64{
			alloy.Al: 4.0465,
			alloy.Fe: 3.5155,
			alloy.Ni: 3.5240,
		},
		CARatio: map[Variant]float64{
			HCP:  IdealCA,
			DHCP: IdealCA,
		},
	}
}

// Model computes composition-dependent lattice parameters from a fixed
// reference table. The zero value is unusable; construct with NewModel.
type Model struct {
	constants Constants
}

// NewModel returns a Model over the given reference constants.
func NewModel(constants Constants) *Model {
	return &Model{constants: constants}
}

// For returns the lattice spec for the given composition and variant.
// The FCC constant is the fraction-weighted average of the pure-element
// references (Vegard's law); the hexagonal variants derive a = a_fcc/sqrt(2)
// (the close-packed nearest-neighbour distance) and c = c/a ratio times a.
// It fails with alloy.ErrInvalidComposition on malformed fractions.
func (m *Model) For(comp alloy.Composition, variant Variant) (Spec, error) {
	if err := comp.Validate(); err != nil {
		return Spec{}, err
	}

	var a float64
	for _, e := range alloy.Elements {
		a += comp.Fraction(e) * m.constants.FCCA[e]
	}

	if !variant.Hexagonal() {
		return Spec{Variant: variant, A: a}, nil
	}

	aHex := a / math.Sqrt2
	return Spec{
		Variant: variant,
		A:       aHex,
		C:       m.constants.CARatio[variant] * aHex,
	}, nil
}
