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

// The lookup algorithm implemented by [Lut8] and [Lut16] is based on
// the bit-bucket regression technique described by Fabian "ryg" Giesen
// in https://gist.github.com/rygorous/2203834: the float32 domain of a
// transfer function is partitioned into buckets of bit patterns sharing
// their exponent and top mantissa bits, and each bucket stores a
// fixed-point linear approximation of the encode direction. A lookup is
// then one table load and a handful of integer operations, instead of a
// pow call per pixel.

const (
	mantissaBits = 23

	// maxFloatBits is the bit pattern of the largest float32 below 1.0.
	// Inputs are clamped here so that 1.0 and above hit the top bucket.
	maxFloatBits = 0x3f7fffff

	// The number of mantissa bits used to index into the lookup table.
	// More index bits mean smaller buckets and a more accurate fit.
	// These values are matched to the output width and must never be
	// mixed across widths.
	u8ManIndexWidth  = 3
	u16ManIndexWidth = 7
)

// tableLen returns the number of buckets between minFloatBits and
// maxFloatBits: one per exponent value, times 2^manIndexWidth.
//
// Both constructors and [Lut8.Lookup]/[Lut16.Lookup] rely on this
// relation exactly: lookup derives the bucket index from the clamped
// input's bit pattern and indexes the table without further checks.
func tableLen(minFloatBits, manIndexWidth uint32) int {
	return int((((maxFloatBits - minFloatBits) >> mantissaBits) + 1) << manIndexWidth)
}

// checkParts validates the construction-time invariants shared by the
// FromParts constructors. Violations are programming errors, not
// runtime conditions, so they abort immediately.
func checkParts(minFloatBits uint32, gotLen int, manIndexWidth uint32) {
	if minFloatBits&0x007fffff != 0 || minFloatBits > maxFloatBits {
		panic(fmt.Sprintf("gamma: invalid minFloatBits %#08x", minFloatBits))
	}
	if want := tableLen(minFloatBits, manIndexWidth); gotLen != want {
		panic(fmt.Sprintf("gamma: table has %d entries, want %d", gotLen, want))
	}
}

// ----------------------------------------------------------------------------
// Lut8 - linear float32 to 8-bit encoded values
// ----------------------------------------------------------------------------

// Lut8 converts linear light values to 8-bit gamma encoded values in
// constant time, without allocating. The zero value is not usable; use
// [NewLut8] or [Lut8FromParts].
//
// A Lut8 is never modified after construction, so any number of
// goroutines may share one and call [Lut8.Lookup] concurrently.
type Lut8 struct {
	table []uint32

	// minFloatBits is the bit pattern of the smallest input the table
	// covers; every input at or below it encodes to 0. The table length
	// is fully determined by this value, see tableLen.
	minFloatBits uint32

	// linearSlope is the slope of the curve's linear segment in 8-bit
	// output units. It is carried for symmetry with [Lut16] and for
	// code generation, but the 8-bit lookup never needs it: the whole
	// linear segment already encodes to 0.
	linearSlope float32
}

// NewLut8 builds the 8-bit encode table for c.
//
// Construction evaluates the closed-form bucket fit once per table
// entry and is the only expensive operation; build the table once and
// reuse it.
func NewLut8(c *Curve) *Lut8 {
	// The largest power-of-two aligned float that still encodes to 0:
	// evaluate the decode direction just below half an output step and
	// round the bit pattern down to an exponent boundary.
	minFloatBits := (math.Float32bits(float32(c.EncodedToLinear(0.5/255))) - 1) & 0xff800000

	// Inputs at or below minFloat must map to 0, but rounding in the
	// bias packing can push the first entry to one output unit when the
	// curve encodes minFloat to almost exactly half an output step
	// (ProPhoto RGB's steep linear segment does this). Widen the table
	// by one exponent row until the table origin maps to 0.
	for lut8Origin(c, minFloatBits) != 0 {
		minFloatBits -= 1 << mantissaBits
	}

	const bucketIndexWidth = mantissaBits - u8ManIndexWidth
	n := tableLen(minFloatBits, u8ManIndexWidth)
	table := make([]uint32, n)
	for i := range table {
		start := minFloatBits + uint32(i)<<bucketIndexWidth
		end := start + 1<<bucketIndexWidth
		table[i] = newLinearModel(c, start, end, u8ManIndexWidth, 8).lookupU8()
	}

	return &Lut8{
		table:        table,
		minFloatBits: minFloatBits,
		linearSlope:  255 * float32(c.linearSlope),
	}
}

// lut8Origin returns the value that [Lut8.Lookup] would produce for the
// input with bit pattern minFloatBits, that is the first table entry
// evaluated at t = 0.
func lut8Origin(c *Curve, minFloatBits uint32) uint32 {
	const bucketIndexWidth = mantissaBits - u8ManIndexWidth
	entry := newLinearModel(c, minFloatBits, minFloatBits+1<<bucketIndexWidth, u8ManIndexWidth, 8).lookupU8()
	return ((entry >> 16) << 9) >> 16
}

// Lut8FromParts assembles a lookup table from precomputed values, for
// use with generated code. The three values must have been produced
// together by [NewLut8] (via the Table, MinFloatBits and LinearSlope
// accessors, or by the gammagen tool). The table slice is not copied.
//
// Mismatched parts are a programming error; the sizing invariant is
// checked once here and the function panics on violation.
func Lut8FromParts(minFloatBits uint32, linearSlope float32, table []uint32) *Lut8 {
	checkParts(minFloatBits, len(table), u8ManIndexWidth)
	return &Lut8{
		table:        table,
		minFloatBits: minFloatBits,
		linearSlope:  linearSlope,
	}
}

// Lookup returns the 8-bit gamma encoded value for a linear input.
// Inputs outside [0, 1] are clamped; NaN maps to 0.
func (l *Lut8) Lookup(linear float32) uint8 {
	minFloat := math.Float32frombits(l.minFloatBits)
	maxFloat := math.Float32frombits(maxFloatBits)

	input := linear
	if !(input > minFloat) { // negated to catch NaN
		input = minFloat
	} else if input > maxFloat {
		input = maxFloat
	}

	bits := math.Float32bits(input)

	// The clamp above and the sizing invariant from tableLen guarantee
	// i < len(l.table).
	i := (bits - l.minFloatBits) >> (mantissaBits - u8ManIndexWidth)
	entry := l.table[i]

	bias := (entry >> 16) << 9
	scale := entry & 0xffff
	t := (bits >> (mantissaBits - u8ManIndexWidth - 8)) & 0xff
	return uint8((bias + scale*t) >> 16)
}

// LookupSlice converts a slice of linear values, storing the encoded
// results in dst. The two slices must have the same length. dst and src
// may be backed by the same pixel buffer.
func (l *Lut8) LookupSlice(dst []uint8, src []float32) {
	if len(dst) != len(src) {
		panic("gamma: dst and src have different lengths")
	}
	for i, v := range src {
		dst[i] = l.Lookup(v)
	}
}

// Table returns the packed table entries. The slice is shared with the
// lookup table and must not be modified.
func (l *Lut8) Table() []uint32 { return l.table }

// MinFloatBits returns the bit pattern of the smallest float32 covered
// by the table.
func (l *Lut8) MinFloatBits() uint32 { return l.minFloatBits }

// LinearSlope returns the slope of the curve's linear segment in output
// units, or 0 for power curves.
func (l *Lut8) LinearSlope() float32 { return l.linearSlope }

// ----------------------------------------------------------------------------
// Lut16 - linear float32 to 16-bit encoded values
// ----------------------------------------------------------------------------

// Lut16 converts linear light values to 16-bit gamma encoded values in
// constant time, without allocating. The zero value is not usable; use
// [NewLut16] or [Lut16FromParts].
//
// A Lut16 is never modified after construction, so any number of
// goroutines may share one and call [Lut16.Lookup] concurrently.
type Lut16 struct {
	table        []uint64
	minFloatBits uint32

	// linearSlope is the slope of the curve's linear segment in 16-bit
	// output units. Unlike the 8-bit case the linear segment spans many
	// representable outputs, and the bucket fit cannot follow the steep
	// near-zero ramp at 16-bit resolution; inputs below minFloatBits
	// bypass the table and use this slope directly.
	linearSlope float32
}

// NewLut16 builds the 16-bit encode table for c.
func NewLut16(c *Curve) *Lut16 {
	// The table starts above both the zero region and the curve's
	// purely linear segment; everything below is handled by the slope
	// bypass in Lookup.
	minFloatBits := math.Float32bits(float32(c.EncodedToLinear(0.5/65535))) - 1
	if betaBits := math.Float32bits(float32(c.beta)); betaBits > minFloatBits {
		minFloatBits = betaBits
	}
	minFloatBits &= 0xff800000

	const bucketIndexWidth = mantissaBits - u16ManIndexWidth
	n := tableLen(minFloatBits, u16ManIndexWidth)
	table := make([]uint64, n)
	for i := range table {
		start := minFloatBits + uint32(i)<<bucketIndexWidth
		end := start + 1<<bucketIndexWidth
		table[i] = newLinearModel(c, start, end, u16ManIndexWidth, 16).lookupU16()
	}

	return &Lut16{
		table:        table,
		minFloatBits: minFloatBits,
		linearSlope:  65535 * float32(c.linearSlope),
	}
}

// Lut16FromParts assembles a lookup table from precomputed values, for
// use with generated code. The three values must have been produced
// together by [NewLut16]. The table slice is not copied.
//
// Mismatched parts are a programming error; the sizing invariant is
// checked once here and the function panics on violation.
func Lut16FromParts(minFloatBits uint32, linearSlope float32, table []uint64) *Lut16 {
	checkParts(minFloatBits, len(table), u16ManIndexWidth)
	return &Lut16{
		table:        table,
		minFloatBits: minFloatBits,
		linearSlope:  linearSlope,
	}
}

// Lookup returns the 16-bit gamma encoded value for a linear input.
// Inputs outside [0, 1] are clamped; NaN maps to 0.
func (l *Lut16) Lookup(linear float32) uint16 {
	maxFloat := math.Float32frombits(maxFloatBits)

	input := linear
	if !(input > 0) { // negated to catch NaN
		input = 0
	} else if input > maxFloat {
		input = maxFloat
	}

	if input < math.Float32frombits(l.minFloatBits) {
		// Linear segment: scale directly, rounding via the float
		// mantissa. Adding 2^23 places the binary point so that the
		// low mantissa bits hold the rounded integer result.
		return uint16(math.Float32bits(l.linearSlope*input+8388608) & 0xffff)
	}

	bits := math.Float32bits(input)

	// The clamp above and the sizing invariant from tableLen guarantee
	// i < len(l.table).
	i := (bits - l.minFloatBits) >> (mantissaBits - u16ManIndexWidth)
	entry := l.table[i]

	bias := (entry >> 32) << 17
	scale := entry & 0xffffffff
	t := uint64(bits) & 0xffff // mantissaBits - u16ManIndexWidth - 16 == 0
	return uint16((bias + scale*t) >> 32)
}

// LookupSlice converts a slice of linear values, storing the encoded
// results in dst. The two slices must have the same length.
func (l *Lut16) LookupSlice(dst []uint16, src []float32) {
	if len(dst) != len(src) {
		panic("gamma: dst and src have different lengths")
	}
	for i, v := range src {
		dst[i] = l.Lookup(v)
	}
}

// Table returns the packed table entries. The slice is shared with the
// lookup table and must not be modified.
func (l *Lut16) Table() []uint64 { return l.table }

// MinFloatBits returns the bit pattern of the smallest float32 covered
// by the table.
func (l *Lut16) MinFloatBits() uint32 { return l.minFloatBits }

// LinearSlope returns the slope of the curve's linear segment in output
// units, or 0 for power curves.
func (l *Lut16) LinearSlope() float32 { return l.linearSlope }
