// Package lensmodel provides simple analytic lens mass models whose ray
// shooting can be used with [lenseq.Solver].
//
// A [Model] is the superposition of its components: the deflection at a
// position is the sum of the components' deflections.
package lensmodel

import (
	"errors"
	"fmt"
	"math"

	"honnef.co/go/lenseq"
)

var (
	ErrUnknownKind    = errors.New("unknown lens component kind")
	ErrLengthMismatch = errors.New("coordinate slices differ in length")
)

// Component kinds.
const (
	// KindSIS is a singular isothermal sphere. Its deflection has constant
	// magnitude ThetaE and points away from the center.
	KindSIS = "sis"
	// KindPointMass is a point mass with Einstein radius ThetaE.
	KindPointMass = "point_mass"
	// KindShear is an external shear (Gamma1, Gamma2) about the origin.
	KindShear = "shear"
	// KindConvergence is a uniform mass sheet of convergence Kappa.
	KindConvergence = "convergence"
)

// Component is a single mass component. Which fields are used depends on Kind.
type Component struct {
	Kind    string  `json:"kind"`
	ThetaE  float64 `json:"theta_e,omitempty"`
	CenterX float64 `json:"center_x,omitempty"`
	CenterY float64 `json:"center_y,omitempty"`
	Gamma1  float64 `json:"gamma1,omitempty"`
	Gamma2  float64 `json:"gamma2,omitempty"`
	Kappa   float64 `json:"kappa,omitempty"`
}

// SIS returns a singular isothermal sphere centered on center.
func SIS(thetaE float64, center lenseq.Point) Component {
	return Component{Kind: KindSIS, ThetaE: thetaE, CenterX: center.X, CenterY: center.Y}
}

// PointMass returns a point mass centered on center.
func PointMass(thetaE float64, center lenseq.Point) Component {
	return Component{Kind: KindPointMass, ThetaE: thetaE, CenterX: center.X, CenterY: center.Y}
}

// Shear returns an external shear.
func Shear(gamma1, gamma2 float64) Component {
	return Component{Kind: KindShear, Gamma1: gamma1, Gamma2: gamma2}
}

// Convergence returns a uniform mass sheet.
func Convergence(kappa float64) Component {
	return Component{Kind: KindConvergence, Kappa: kappa}
}

func (c Component) center() lenseq.Point {
	return lenseq.Pt(c.CenterX, c.CenterY)
}

// Linear returns the deflection of a shear or convergence component as an
// affine transform, α(θ) = A·θ. ok is false for other kinds.
func (c Component) Linear() (aff lenseq.Affine, ok bool) {
	switch c.Kind {
	case KindShear:
		return lenseq.Affine{N0: c.Gamma1, N1: c.Gamma2, N2: c.Gamma2, N3: -c.Gamma1}, true
	case KindConvergence:
		return lenseq.Scale(c.Kappa, c.Kappa), true
	default:
		return lenseq.Affine{}, false
	}
}

// Deflection returns the component's deflection angle at pt. The radial
// profiles have no defined deflection at their exact center, where it is taken
// to be zero.
func (c Component) Deflection(pt lenseq.Point) (lenseq.Vec2, error) {
	switch c.Kind {
	case KindSIS:
		d := pt.Sub(c.center())
		r := d.Hypot()
		if r == 0 {
			return lenseq.Vec2{}, nil
		}
		return d.Mul(c.ThetaE / r), nil
	case KindPointMass:
		d := pt.Sub(c.center())
		r2 := d.Hypot2()
		if r2 == 0 {
			return lenseq.Vec2{}, nil
		}
		return d.Mul(c.ThetaE * c.ThetaE / r2), nil
	case KindShear, KindConvergence:
		aff, _ := c.Linear()
		return lenseq.Vec2(pt.Transform(aff)), nil
	default:
		return lenseq.Vec2{}, fmt.Errorf("%w %q", ErrUnknownKind, c.Kind)
	}
}

// Validate checks that the component's kind is known and its parameters are
// finite, with a non-negative Einstein radius.
func (c Component) Validate() error {
	switch c.Kind {
	case KindSIS, KindPointMass:
		if !(c.ThetaE >= 0) || math.IsInf(c.ThetaE, 0) {
			return fmt.Errorf("%s: theta_e must be non-negative and finite, got %g", c.Kind, c.ThetaE)
		}
		if c.center().IsNaN() || c.center().IsInf() {
			return fmt.Errorf("%s: center must be finite, got %s", c.Kind, c.center())
		}
	case KindShear, KindConvergence:
		aff, _ := c.Linear()
		if aff.IsNaN() {
			return fmt.Errorf("%s: parameters must not be NaN", c.Kind)
		}
	default:
		return fmt.Errorf("%w %q", ErrUnknownKind, c.Kind)
	}
	return nil
}

// Model is a lens made of any number of mass components.
type Model struct {
	Components []Component `json:"components"`
}

// Validate validates every component.
func (m Model) Validate() error {
	for i, c := range m.Components {
		if err := c.Validate(); err != nil {
			return fmt.Errorf("component %d: %w", i, err)
		}
	}
	return nil
}

// Deflection returns the total deflection at pt.
func (m Model) Deflection(pt lenseq.Point) (lenseq.Vec2, error) {
	var alpha lenseq.Vec2
	for _, c := range m.Components {
		a, err := c.Deflection(pt)
		if err != nil {
			return lenseq.Vec2{}, err
		}
		alpha = alpha.Add(a)
	}
	return alpha, nil
}

// Source maps the image-plane position theta to the source plane,
// β = θ − α(θ).
func (m Model) Source(theta lenseq.Point) (lenseq.Point, error) {
	alpha, err := m.Deflection(theta)
	if err != nil {
		return lenseq.Point{}, err
	}
	return theta.Translate(alpha.Negate()), nil
}

// ShootRays maps the image-plane positions (x[i], y[i]) to the source plane.
// It has the signature of a [lenseq.RayShootingFunc] for models.
func ShootRays(x, y []float64, m Model) ([]float64, []float64, error) {
	if len(x) != len(y) {
		return nil, nil, fmt.Errorf("%w: %d and %d", ErrLengthMismatch, len(x), len(y))
	}
	if err := m.Validate(); err != nil {
		return nil, nil, err
	}
	bx := make([]float64, len(x))
	by := make([]float64, len(y))
	for i := range x {
		beta, err := m.Source(lenseq.Pt(x[i], y[i]))
		if err != nil {
			return nil, nil, err
		}
		bx[i], by[i] = beta.Splat()
	}
	return bx, by, nil
}

var _ lenseq.RayShootingFunc[Model] = ShootRays
