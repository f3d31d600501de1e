/*
 * Convert bytes to hex strings.
 *
 * Copyright 2024, Richard Cornwell
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in
 * all copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 */

// Package hex renders raw bytes and guest-width words as hex digits for
// the inspection console's memory and register dumps. Adapted from the
// original's card/tape-column formatting (FormatHalf/FormatWord sized to
// S/370's 16/32-bit halfword and fullword units, FormatDisp/FormatAddr to
// its 12-bit base-displacement addressing) down to byte-level routines
// (FormatBytes, FormatByte, FormatDigit) and one word dump, FormatQuad,
// fixed at 64 bits per word.
package hex

import "strings"

var hexMap = "0123456789ABCDEF"

// FormatBytes appends data as two hex digits per byte, optionally
// space-separated, for console memory dumps.
func FormatBytes(str *strings.Builder, space bool, data []uint8) {
	for _, by := range data {
		str.WriteByte(hexMap[(by>>4)&0xf])
		str.WriteByte(hexMap[by&0xf])
		if space {
			str.WriteByte(' ')
		}
	}
}

func FormatByte(str *strings.Builder, data byte) {
	str.WriteByte(hexMap[(data>>4)&0xf])
	str.WriteByte(hexMap[data&0xf])
}

func FormatDigit(str *strings.Builder, data byte) {
	str.WriteByte(hexMap[data&0xf])
}

// FormatQuad appends each value in words as 16 hex digits (a 64-bit SPARC
// register or doubleword), space-separated, for the registers command.
func FormatQuad(str *strings.Builder, words []uint64) {
	for _, w := range words {
		shift := 60
		for range 16 {
			str.WriteByte(hexMap[(w>>shift)&0xf])
			shift -= 4
		}
		str.WriteByte(' ')
	}
}
