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

	"golang.org/x/exp/constraints"
)

// Table is a direct lookup table from encoded integer values to
// precomputed linear values, one entry per possible input. This is the
// decode direction; it needs no fitting and serves as the reference for
// validating the encode tables.
//
// A Table is read-only after construction and safe for concurrent use.
type Table[E uint8 | uint16, V constraints.Float] struct {
	entries []V
}

// NewTable creates a table from precomputed entries, for use with
// generated code. The entries must cover every value of E; any other
// length is a programming error and panics.
func NewTable[E uint8 | uint16, V constraints.Float](entries []V) Table[E, V] {
	if want := int(uint64(^E(0)) + 1); len(entries) != want {
		panic(fmt.Sprintf("gamma: table has %d entries, want %d", len(entries), want))
	}
	return Table[E, V]{entries: entries}
}

// Lookup returns the linear value for an encoded input.
func (t Table[E, V]) Lookup(encoded E) V {
	// entries covers every value of E, see NewTable.
	return t.entries[encoded]
}

// Entries returns the backing slice. It is shared with the table and
// must not be modified.
func (t Table[E, V]) Entries() []V { return t.entries }

// DecodeTable8 returns the exact decode table for 8-bit encoded values:
// entry i is EncodedToLinear(i/255). The entries are non-decreasing,
// starting at 0 and ending at 1 up to floating point rounding.
func (c *Curve) DecodeTable8() Table[uint8, float64] {
	entries := make([]float64, 256)
	for i := range entries {
		entries[i] = c.EncodedToLinear(float64(i) / 255)
	}
	return Table[uint8, float64]{entries: entries}
}

// DecodeTable8F32 is like [Curve.DecodeTable8] with the entries rounded
// to float32, for pixel pipelines that work in single precision.
func (c *Curve) DecodeTable8F32() Table[uint8, float32] {
	entries := make([]float32, 256)
	for i := range entries {
		entries[i] = float32(c.EncodedToLinear(float64(i) / 255))
	}
	return Table[uint8, float32]{entries: entries}
}

// DecodeTable16 returns the exact decode table for 16-bit encoded
// values: entry i is EncodedToLinear(i/65535).
func (c *Curve) DecodeTable16() Table[uint16, float64] {
	entries := make([]float64, 65536)
	for i := range entries {
		entries[i] = c.EncodedToLinear(float64(i) / 65535)
	}
	return Table[uint16, float64]{entries: entries}
}
