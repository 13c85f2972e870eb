// seehuhn.de/go/gamma - transfer function lookup tables
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package gamma

import "math"

// Curve describes a gamma transfer function, the non-linear mapping between
// physically linear light values and the encoded values stored per pixel
// channel.
//
// A Curve is immutable after construction and safe for concurrent use.
// Two kinds of curve are supported:
//
//   - pure power curves, created with [NewPowerCurve]
//   - piecewise linear+power curves, created with [NewPiecewiseCurve],
//     as used by sRGB, Rec. 709/2020 and ProPhoto RGB
//
// Inputs must be finite and non-negative. Behaviour on negative or NaN
// input is unspecified; callers are expected to clamp first.
type Curve struct {
	kind curveKind

	// linearSlope is the slope S of the linear segment of a piecewise
	// curve. Zero for power curves.
	linearSlope float64

	// alpha preserves continuity between the linear and power segments
	// of a piecewise curve. It is 1 for power curves.
	alpha float64

	// beta is the linear input value where the linear segment ends and
	// the power segment begins. It is 0 for power curves.
	beta float64

	// gamma is the exponent of the power segment.
	gamma float64
}

type curveKind int

const (
	powerCurve curveKind = iota
	piecewiseCurve
)

// NewPowerCurve returns the transfer function
//
//	linear  = encoded^gamma
//	encoded = linear^(1/gamma)
//
// for a simple power curve with exponent gamma.
func NewPowerCurve(gamma float64) *Curve {
	return &Curve{
		kind:  powerCurve,
		alpha: 1.0,
		gamma: gamma,
	}
}

// NewPiecewiseCurve returns a piecewise transfer function with a linear
// segment near zero and a power segment above it. In the encode
// direction (linear x to non-linear x'):
//
//	S = linearSlope
//	L = linearEnd
//	G = gamma
//
//	x' = S  * x                 x <= L
//	     k1 * x^(1/G) + k2      x >  L
//
// The constants k1 and k2 are solved so that the two segments meet with
// matching value at x = L. A discontinuity at the breakpoint would be a
// correctness bug in everything built on top of the curve.
func NewPiecewiseCurve(linearSlope, linearEnd, gamma float64) *Curve {
	alpha := (linearSlope*linearEnd - 1) / (math.Pow(linearEnd, 1/gamma) - 1)
	return &Curve{
		kind:        piecewiseCurve,
		linearSlope: linearSlope,
		alpha:       alpha,
		beta:        linearEnd,
		gamma:       gamma,
	}
}

// EncodedToLinear evaluates the curve in the decode direction, from a
// gamma encoded value in [0, 1] to a linear light value.
func (c *Curve) EncodedToLinear(encoded float64) float64 {
	switch c.kind {
	case piecewiseCurve:
		if encoded <= c.linearSlope*c.beta {
			return encoded / c.linearSlope
		}
		return math.Pow((encoded+c.alpha-1)/c.alpha, c.gamma)
	default:
		return math.Pow(encoded, c.gamma)
	}
}

// LinearToEncoded evaluates the curve in the encode direction, from a
// linear light value in [0, 1] to a gamma encoded value. This is the
// exact inverse of [Curve.EncodedToLinear], evaluated at full floating
// point precision.
//
// This is the slow path. For per-pixel conversion to integer values use
// [Lut8] or [Lut16] instead.
func (c *Curve) LinearToEncoded(linear float64) float64 {
	switch c.kind {
	case piecewiseCurve:
		if linear <= c.beta {
			return c.linearSlope * linear
		}
		return c.alpha*math.Pow(linear, 1/c.gamma) + 1 - c.alpha
	default:
		return math.Pow(linear, 1/c.gamma)
	}
}
