// Firmware metadata record
// https://github.com/usbarmory/bluepill-boot
//
// Copyright (c) WithSecure Corporation
// https://foundry.withsecure.com
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

// Package meta implements the fixed layout descriptor which authorizes a
// firmware image to boot.
//
// The record is persisted, by a host tool, at a fixed flash offset distinct
// from the image region. Its layout is bit-exact and position dependent:
// little-endian 32-bit words and a big-endian ordered SHA-256 byte array,
// 84 bytes in total.
package meta

import (
	"encoding/binary"
	"errors"
)

const (
	// Magic is the sentinel identifying a populated record.
	Magic = 0xdeadbeef

	// RecordSize is the serialized record length in bytes.
	RecordSize = 84
)

// Record is a firmware image descriptor.
type Record struct {
	// Magic is the record sentinel.
	Magic uint32
	// Version is an opaque monotonic image revision.
	Version uint32
	// Size is the length in bytes of the covered image.
	Size uint32
	// CRC32 is the CRC-32 checksum over the covered image.
	CRC32 uint32
	// SHA256 is the SHA-256 digest over the covered image.
	SHA256 [32]byte
	// Timestamp is an opaque build time.
	Timestamp uint32
	// reserved area, ignored on read and zero on write
	reserved [32]byte
}

// Parse deserializes a metadata record, the reserved area is retained but
// otherwise ignored.
func Parse(buf []byte) (record *Record, err error) {
	if len(buf) < RecordSize {
		return nil, errors.New("invalid metadata record length")
	}

	record = &Record{
		Magic:     binary.LittleEndian.Uint32(buf[0:]),
		Version:   binary.LittleEndian.Uint32(buf[4:]),
		Size:      binary.LittleEndian.Uint32(buf[8:]),
		CRC32:     binary.LittleEndian.Uint32(buf[12:]),
		Timestamp: binary.LittleEndian.Uint32(buf[48:]),
	}

	copy(record.SHA256[:], buf[16:48])
	copy(record.reserved[:], buf[52:84])

	return
}

// Bytes serializes a metadata record.
func (record *Record) Bytes() []byte {
	buf := make([]byte, RecordSize)

	binary.LittleEndian.PutUint32(buf[0:], record.Magic)
	binary.LittleEndian.PutUint32(buf[4:], record.Version)
	binary.LittleEndian.PutUint32(buf[8:], record.Size)
	binary.LittleEndian.PutUint32(buf[12:], record.CRC32)
	copy(buf[16:48], record.SHA256[:])
	binary.LittleEndian.PutUint32(buf[48:], record.Timestamp)

	return buf
}
