// https://github.com/usbarmory/bluepill-boot
//
// Copyright (c) WithSecure Corporation
// https://foundry.withsecure.com
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

// Package rng provides a Linear Congruential Generator as non-cryptographic
// random source, the STM32F103 has no TRNG peripheral.
//
// The generator must not be used for key material.
package rng

var GetRandomDataFn func([]byte)

// Fill copies up to 4 bytes of val in b starting from index, it returns the
// index following the last written byte.
func Fill(b []byte, index int, val uint32) int {
	shift := 0
	limit := len(b)

	for (index < limit) && (shift <= 24) {
		b[index] = byte((val >> shift) & 0xff)
		index += 1
		shift += 8
	}

	return index
}
