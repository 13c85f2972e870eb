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

// Package gamma converts between linear light values and gamma encoded
// integers.
//
// RGB pixel data is usually stored in a non-linear form: the integer
// value per channel is related to the physical light intensity by a
// transfer function such as the sRGB gamma curve. Image processing, on
// the other hand, needs linear values. This package models transfer
// functions and compiles them into lookup tables so that the conversion
// costs a table load per channel instead of a pow call.
//
// # Transfer Functions
//
// A [Curve] describes a transfer function, either a pure power curve or
// a piecewise linear+power curve. Ready-made curves for common
// standards are provided:
//
//	c := gamma.SRGB()
//	linear := c.EncodedToLinear(0.5)
//
// # Lookup Tables
//
// For the decode direction (encoded integer to linear float) use a
// direct table:
//
//	dec := gamma.SRGB().DecodeTable8()
//	linear := dec.Lookup(128)
//
// For the encode direction (linear float to encoded integer) use a
// [Lut8] or [Lut16]:
//
//	lut := gamma.SRGBLut8()
//	encoded := lut.Lookup(0.5)
//
// All tables are immutable after construction and may be shared freely
// between goroutines.
package gamma

import "sync"

// SRGB returns the transfer function used in sRGB (IEC 61966-2-1).
func SRGB() *Curve {
	return NewPiecewiseCurve(12.92, 0.0031308, 2.4)
}

// RecOETF returns the opto-electronic transfer function shared by
// Rec. 709 and Rec. 2020.
func RecOETF() *Curve {
	return NewPiecewiseCurve(4.5, 0.018053968510807, 1/0.45)
}

// AdobeRGB returns the transfer function used in Adobe RGB (1998),
// a power curve with gamma 563/256.
func AdobeRGB() *Curve {
	return NewPowerCurve(563.0 / 256.0)
}

// DCIP3 returns the transfer function used in DCI-P3, a power curve
// with gamma 2.6.
func DCIP3() *Curve {
	return NewPowerCurve(2.6)
}

// ProPhotoRGB returns the transfer function used in ProPhoto RGB
// (ROMM RGB).
func ProPhotoRGB() *Curve {
	return NewPiecewiseCurve(16, 0.001953125, 1.8)
}

// Shared encode tables for sRGB, built on first use. Standards that a
// process never touches cost nothing.
var (
	srgbLut8  = sync.OnceValue(func() *Lut8 { return NewLut8(SRGB()) })
	srgbLut16 = sync.OnceValue(func() *Lut16 { return NewLut16(SRGB()) })
)

// SRGBLut8 returns a shared 8-bit encode table for the sRGB transfer
// function. The table is built on first call and reused afterwards.
func SRGBLut8() *Lut8 { return srgbLut8() }

// SRGBLut16 returns a shared 16-bit encode table for the sRGB transfer
// function. The table is built on first call and reused afterwards.
func SRGBLut16() *Lut16 { return srgbLut16() }
