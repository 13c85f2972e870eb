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
	"math"
	"testing"
)

// modelError samples the fitted model over one bucket and returns the
// largest deviation from the exact encode formula, in normalised
// output units.
func modelError(c *Curve, start uint32, manIndexWidth, tWidth uint32) float64 {
	end := start + 1<<(mantissaBits-manIndexWidth)
	m := newLinearModel(c, start, end, manIndexWidth, tWidth)

	expScale := float64(math.Float32frombits(((start >> 23) - manIndexWidth - tWidth) << 23))
	startX := float64(math.Float32frombits(start))
	maxT := math.Ldexp(1, int(tWidth))

	var worst float64
	for i := 0; i <= 256; i++ {
		t := maxT * float64(i) / 256
		x := startX + expScale*t
		got := m.bias + m.scale*t
		want := c.LinearToEncoded(x)
		if d := math.Abs(got - want); d > worst {
			worst = d
		}
	}
	return worst
}

func TestModelLinearBucketExact(t *testing.T) {
	c := SRGB()

	// a bucket that lies entirely inside the linear segment
	start := math.Float32bits(0.001) &^ uint32(1<<(mantissaBits-u16ManIndexWidth)-1)
	if err := modelError(c, start, u16ManIndexWidth, 16); err > 1e-12 {
		t.Errorf("fit error %g in the linear segment, want an exact fit", err)
	}
}

func TestModelPowerBucketAccuracy(t *testing.T) {
	for _, tt := range testCurves {
		c := tt.curve
		t.Run(tt.name, func(t *testing.T) {
			// buckets spread over the power segment
			for _, x := range []float32{0.01, 0.05, 0.25, 0.5, 0.99} {
				if float64(x) <= c.beta {
					continue
				}
				start := math.Float32bits(x) &^ uint32(1<<(mantissaBits-u16ManIndexWidth)-1)
				err := modelError(c, start, u16ManIndexWidth, 16)
				// half of one 16-bit output step
				if err > 0.5/65535 {
					t.Errorf("fit error %g at %g exceeds half an output step", err, x)
				}
			}
		})
	}
}

func TestModelBreakpointBucket(t *testing.T) {
	for _, tt := range testCurves {
		c := tt.curve
		if c.kind != piecewiseCurve {
			continue
		}
		t.Run(tt.name, func(t *testing.T) {
			// the bucket containing the linear/power breakpoint uses
			// split integration; it must stay as accurate as the rest
			start := math.Float32bits(float32(c.beta)) &^ uint32(1<<(mantissaBits-u16ManIndexWidth)-1)
			if err := modelError(c, start, u16ManIndexWidth, 16); err > 1.0/65535 {
				t.Errorf("fit error %g in the breakpoint bucket", err)
			}
		})
	}
}

// TestModelStraddleFit checks the split integration over a bucket that
// contains the breakpoint strictly in its interior against a
// brute-force discrete regression over dense samples of the exact
// curve. The closed-form integrals are extremely sensitive to the
// placement of the split point, so any inconsistency between its x and
// t coordinates shows up here as a gross mismatch.
func TestModelStraddleFit(t *testing.T) {
	for _, tt := range testCurves {
		c := tt.curve
		if c.kind != piecewiseCurve {
			continue
		}
		betaBits := math.Float32bits(float32(c.beta))
		start := betaBits &^ uint32(1<<(mantissaBits-u16ManIndexWidth)-1)
		if start == betaBits {
			// breakpoint sits on a bucket boundary, nothing to straddle
			continue
		}
		t.Run(tt.name, func(t *testing.T) {
			end := start + 1<<(mantissaBits-u16ManIndexWidth)
			m := newLinearModel(c, start, end, u16ManIndexWidth, 16)

			expScale := float64(math.Float32frombits(((start >> 23) - u16ManIndexWidth - 16) << 23))
			startX := float64(math.Float32frombits(start))
			maxT := math.Ldexp(1, 16)

			const n = 1 << 16
			dt := maxT / n
			var sumY, sumTY float64
			for i := 0; i < n; i++ {
				tPos := (float64(i) + 0.5) * dt
				y := c.LinearToEncoded(startX + expScale*tPos)
				sumY += y
				sumTY += tPos * y
			}
			integralY := sumY * dt
			integralTY := sumTY * dt
			integralT := maxT * maxT / 2
			integralT2 := maxT * maxT * maxT / 3
			scale := (maxT*integralTY - integralT*integralY) /
				(maxT*integralT2 - integralT*integralT)
			bias := (integralY - scale*integralT) / maxT

			// agreement within half a 16-bit output step over the bucket
			if d := math.Abs(m.scale-scale) * maxT; d > 0.5/65535 {
				t.Errorf("fitted slope off by %g output units over the bucket", d*65535)
			}
			if d := math.Abs(m.bias - bias); d > 0.5/65535 {
				t.Errorf("fitted bias off by %g output units", d*65535)
			}
		})
	}
}

func TestModelPackRange(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("packing an out-of-range model did not panic")
		}
	}()
	linearModel{scale: 300, bias: 0}.lookupU8()
}
