// https://github.com/usbarmory/bluepill-boot
//
// Copyright (c) WithSecure Corporation
// https://foundry.withsecure.com
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package meta

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestLayout(t *testing.T) {
	record := &Record{
		Magic:     Magic,
		Version:   0x01020304,
		Size:      16384,
		CRC32:     0xcbf43926,
		Timestamp: 0x65a0b0c0,
	}

	for i := range record.SHA256 {
		record.SHA256[i] = byte(i)
	}

	buf := record.Bytes()
	require.Len(t, buf, RecordSize)

	// little-endian 32-bit words at fixed positions
	assert.Equal(t, uint32(Magic), binary.LittleEndian.Uint32(buf[0:4]))
	assert.Equal(t, uint32(0x01020304), binary.LittleEndian.Uint32(buf[4:8]))
	assert.Equal(t, uint32(16384), binary.LittleEndian.Uint32(buf[8:12]))
	assert.Equal(t, uint32(0xcbf43926), binary.LittleEndian.Uint32(buf[12:16]))

	// digest bytes are stored as-is
	assert.Equal(t, record.SHA256[:], buf[16:48])

	assert.Equal(t, uint32(0x65a0b0c0), binary.LittleEndian.Uint32(buf[48:52]))

	// reserved area is zero on write
	for _, c := range buf[52:] {
		assert.Zero(t, c)
	}
}

func TestParseShort(t *testing.T) {
	_, err := Parse(make([]byte, RecordSize-1))
	assert.Error(t, err)
}

func TestRoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		record := &Record{
			Magic:     rapid.Uint32().Draw(t, "magic"),
			Version:   rapid.Uint32().Draw(t, "version"),
			Size:      rapid.Uint32().Draw(t, "size"),
			CRC32:     rapid.Uint32().Draw(t, "crc32"),
			Timestamp: rapid.Uint32().Draw(t, "timestamp"),
		}

		copy(record.SHA256[:], rapid.SliceOfN(rapid.Byte(), 32, 32).Draw(t, "sha256"))

		parsed, err := Parse(record.Bytes())

		assert.NoError(t, err)
		assert.Equal(t, record, parsed)
	})
}
