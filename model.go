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

import (
	"fmt"
	"math"
)

// linearModel is a least squares fit
//
//	encoded(x) ~ bias + scale*t
//
// of the encode direction of a transfer function over one bucket of
// float32 bit patterns, where t in [0, 2^tWidth) is the position of x
// within the bucket, taken from the top mantissa bits below the index
// bits.
//
// The fit uses simple linear regression with the discrete sums replaced
// by integrals. Transfer functions are made of linear and power
// segments, both with known anti-derivatives, so the integrals can be
// evaluated in closed form instead of sampling every representable
// float in the bucket.
type linearModel struct {
	scale float64
	bias  float64
}

// newLinearModel fits c over the bucket of bit patterns [start, end).
// The bucket must lie within the normal, positive float32 range.
// manIndexWidth is the number of mantissa bits used for table indexing,
// tWidth the number of bits in t (the output bit width).
func newLinearModel(c *Curve, start, end uint32, manIndexWidth, tWidth uint32) linearModel {
	betaBits := math.Float32bits(float32(c.beta))

	// expScale relates the two differentials: dx = expScale * dt.
	expScale := float64(math.Float32frombits(((start >> 23) - manIndexWidth - tWidth) << 23))
	startX := float64(math.Float32frombits(start))
	endX := float64(math.Float32frombits(end))

	// A bucket inside the linear segment needs no regression at all.
	if c.kind == piecewiseCurve && end <= betaBits {
		return linearModel{
			scale: c.linearSlope * expScale,
			bias:  c.linearSlope * startX,
		}
	}

	maxT := math.Ldexp(1, int(tWidth))

	var integralY, integralTY float64
	if c.kind == piecewiseCurve && start < betaBits {
		// The bucket straddles the breakpoint. The split point has to
		// be the same in both coordinates: the t*y anti-derivative
		// combines x and t scaled by 1/expScale, so an x split that
		// disagrees with the t split by even one float32 rounding step
		// ruins the fit. Both are therefore derived from betaBits, the
		// float32 rounding of beta. The shift in betaT keeps only the
		// mantissa bits below the index bits.
		betaX := float64(math.Float32frombits(betaBits))
		betaT := float64(betaBits<<(9+manIndexWidth)) * math.Ldexp(1, int(tWidth)-32)
		linY, linTY := integrateLinear(startX, betaX, 0, betaT, c.linearSlope, expScale)
		powY, powTY := integratePower(betaX, endX, betaT, maxT, c.alpha, c.gamma, expScale)
		integralY = linY + powY
		integralTY = linTY + powTY
	} else {
		integralY, integralTY = integratePower(startX, endX, 0, maxT, c.alpha, c.gamma, expScale)
	}

	maxT2 := maxT * maxT
	integralT := maxT2 * 0.5
	integralT2 := maxT2 * maxT / 3

	scale := (maxT*integralTY - integralT*integralY) /
		(maxT*integralT2 - integralT*integralT)
	return linearModel{
		scale: scale,
		bias:  (integralY - scale*integralT) / maxT,
	}
}

// integrateLinear returns the integrals of y and t*y over the part of a
// bucket covered by the linear segment y = linearSlope*x, with x running
// from startX to endX and t from startT to endT.
func integrateLinear(startX, endX, startT, endT, linearSlope, expScale float64) (y, ty float64) {
	antiderivY := func(x float64) float64 {
		return 0.5 * linearSlope * x * x / expScale
	}
	antiderivTY := func(x, t float64) float64 {
		return 0.5 * linearSlope * x * x * (t - x/(3*expScale)) / expScale
	}

	y = antiderivY(endX) - antiderivY(startX)
	ty = antiderivTY(endX, endT) - antiderivTY(startX, startT)
	return y, ty
}

// integratePower returns the integrals of y and t*y over the part of a
// bucket covered by the power segment y = alpha*x^(1/gamma) + 1 - alpha.
func integratePower(startX, endX, startT, endT, alpha, gamma, expScale float64) (y, ty float64) {
	onePlusGammaInv := 1 + 1/gamma
	antiderivY := func(x, t float64) float64 {
		return alpha*gamma*math.Pow(x, onePlusGammaInv)/(expScale*(1+gamma)) +
			(1-alpha)*t
	}
	antiderivTY := func(x, t float64) float64 {
		return alpha*gamma*math.Pow(x, onePlusGammaInv)*
			(t-gamma*x/(expScale*(1+2*gamma)))/(expScale*(1+gamma)) +
			0.5*(1-alpha)*t*t
	}

	y = antiderivY(endX, endT) - antiderivY(startX, startT)
	ty = antiderivTY(endX, endT) - antiderivTY(startX, startT)
	return y, ty
}

// lookupU8 packs the model into a table entry for 8-bit output: the bias
// in the high bits, shifted so that one output unit is 2^16, and the
// scale in the low 16 bits. Both are rounded to nearest.
func (m linearModel) lookupU8() uint32 {
	scale := 255*m.scale*65536 + 0.5
	bias := (255*m.bias+0.5)*128 + 0.5
	// A fit of a monotone curve over [0, 1] keeps both values inside
	// their fields. Go does not define the conversion of an
	// out-of-range float to an integer, so the bound is checked rather
	// than assumed.
	if !(scale >= 0 && scale < 1<<16 && bias >= 0 && bias < 1<<16) {
		panic(fmt.Sprintf("gamma: model out of range (bias=%g, scale=%g)", m.bias, m.scale))
	}
	return uint32(bias)<<16 | uint32(scale)
}

// lookupU16 packs the model into a table entry for 16-bit output, with
// one output unit equal to 2^32.
func (m linearModel) lookupU16() uint64 {
	scale := 65535*m.scale*4294967296 + 0.5
	bias := (65535*m.bias+0.5)*32768 + 0.5
	if !(scale >= 0 && scale < 1<<32 && bias >= 0 && bias < 1<<32) {
		panic(fmt.Sprintf("gamma: model out of range (bias=%g, scale=%g)", m.bias, m.scale))
	}
	return uint64(bias)<<32 | uint64(scale)
}
