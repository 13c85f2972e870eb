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

	"github.com/google/go-cmp/cmp"
)

func TestDecodeTable8(t *testing.T) {
	for _, tt := range testCurves {
		c := tt.curve
		t.Run(tt.name, func(t *testing.T) {
			table := c.DecodeTable8()
			entries := table.Entries()
			if len(entries) != 256 {
				t.Fatalf("table has %d entries, want 256", len(entries))
			}
			if entries[0] != 0 {
				t.Errorf("first entry is %g, want 0", entries[0])
			}
			if math.Abs(entries[255]-1) > 1e-12 {
				t.Errorf("last entry is %g, want 1", entries[255])
			}
			for i := 1; i < 256; i++ {
				if entries[i] < entries[i-1] {
					t.Fatalf("entries decrease at index %d", i)
				}
			}
		})
	}
}

func TestDecodeTable16(t *testing.T) {
	c := SRGB()
	table := c.DecodeTable16()
	entries := table.Entries()
	if len(entries) != 65536 {
		t.Fatalf("table has %d entries, want 65536", len(entries))
	}
	if entries[0] != 0 {
		t.Errorf("first entry is %g, want 0", entries[0])
	}
	if math.Abs(entries[65535]-1) > 1e-12 {
		t.Errorf("last entry is %g, want 1", entries[65535])
	}
	for i := 1; i < 65536; i++ {
		if entries[i] < entries[i-1] {
			t.Fatalf("entries decrease at index %d", i)
		}
	}
}

func TestDecodeTable8MidGrey(t *testing.T) {
	table := SRGB().DecodeTable8()
	if y := table.Lookup(128); math.Abs(y-0.21586) > 1e-3 {
		t.Errorf("decode(128) = %g, want approx 0.21586", y)
	}
}

func TestDecodeTable8F32(t *testing.T) {
	c := SRGB()
	want := make([]float32, 256)
	for i, v := range c.DecodeTable8().Entries() {
		want[i] = float32(v)
	}
	got := c.DecodeTable8F32().Entries()
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("float32 table mismatch (-want +got):\n%s", diff)
	}
}

func TestNewTable(t *testing.T) {
	entries := SRGB().DecodeTable8().Entries()
	table := NewTable[uint8](entries)
	if y := table.Lookup(255); math.Abs(y-1) > 1e-12 {
		t.Errorf("Lookup(255) = %g, want 1", y)
	}

	defer func() {
		if recover() == nil {
			t.Error("NewTable accepted a table with the wrong length")
		}
	}()
	NewTable[uint8](entries[:100])
}
