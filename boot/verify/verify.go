// Firmware image verification
// https://github.com/usbarmory/bluepill-boot
//
// Copyright (c) WithSecure Corporation
// https://foundry.withsecure.com
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

// Package verify implements the first stage decision procedure which
// authorizes a candidate firmware image for execution.
//
// The checks cover integrity, not authenticity: the metadata record carries
// a bare SHA-256 digest and no signature. An HMAC-SHA-256 primitive is
// available (see `crypto/hmac`, exercised by this package tests) should a
// future keyed metadata scheme require it.
package verify

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/binary"
	"hash/crc32"

	"github.com/usbarmory/bluepill-boot/boot/meta"
)

// Stack pointer plausibility check, the first image word must point within
// on-chip SRAM.
const (
	spMask  = 0x2ffe0000
	spValid = 0x20000000
)

// Failure is a typed firmware verification failure.
type Failure int

// Verification failure classes, the first failed check decides.
const (
	BadMagic Failure = iota + 1
	BadSize
	BadStackPointer
	BadCrc
	BadHash
)

// Error implements the error interface.
func (f Failure) Error() string {
	switch f {
	case BadMagic:
		return "invalid metadata magic"
	case BadSize:
		return "invalid image size"
	case BadStackPointer:
		return "implausible initial stack pointer"
	case BadCrc:
		return "CRC-32 mismatch"
	case BadHash:
		return "SHA-256 mismatch"
	}

	return "unknown failure"
}

// Image validates a candidate firmware image against its metadata record.
//
// The img argument must alias the full image region, of imgMax bytes, with
// the record covering its initial record.Size bytes. A nil return authorizes
// execution, any other outcome is a Failure.
func Image(record *meta.Record, img []byte, imgMax uint32) error {
	if record.Magic != meta.Magic {
		return BadMagic
	}

	if record.Size == 0 || record.Size > imgMax || record.Size > uint32(len(img)) {
		return BadSize
	}

	sp := binary.LittleEndian.Uint32(img[0:4])

	if sp&spMask != spValid {
		return BadStackPointer
	}

	if crc32.ChecksumIEEE(img[:record.Size]) != record.CRC32 {
		return BadCrc
	}

	sum := sha256.Sum256(img[:record.Size])

	if subtle.ConstantTimeCompare(sum[:], record.SHA256[:]) != 1 {
		return BadHash
	}

	return nil
}
