// https://github.com/usbarmory/bluepill-boot
//
// Copyright (c) WithSecure Corporation
// https://foundry.withsecure.com
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package verify

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"hash/crc32"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/usbarmory/bluepill-boot/boot/meta"
)

const imgMax = 0xc000

// testImage returns an image region of imgMax bytes whose initial size bytes
// are covered by a valid metadata record.
func testImage(size uint32, sp uint32) (*meta.Record, []byte) {
	img := make([]byte, imgMax)

	for i := range img {
		img[i] = byte(i)
	}

	binary.LittleEndian.PutUint32(img[0:4], sp)
	binary.LittleEndian.PutUint32(img[4:8], 0x08002101)

	record := &meta.Record{
		Magic:  meta.Magic,
		Size:   size,
		CRC32:  crc32.ChecksumIEEE(img[:size]),
		SHA256: sha256.Sum256(img[:size]),
	}

	return record, img
}

func TestValid(t *testing.T) {
	record, img := testImage(16384, 0x20004fe0)
	assert.NoError(t, Image(record, img, imgMax))
}

func TestBadMagic(t *testing.T) {
	record, img := testImage(16384, 0x20004fe0)
	record.Magic = 0xdeadbee0

	assert.Equal(t, BadMagic, Image(record, img, imgMax))
}

func TestSizeBounds(t *testing.T) {
	for _, tt := range []struct {
		size uint32
		err  error
	}{
		{0, BadSize},
		{imgMax, nil},
		{imgMax + 1, BadSize},
	} {
		record, img := testImage(16384, 0x20004fe0)
		record.Size = tt.size

		if tt.err == nil {
			record.CRC32 = crc32.ChecksumIEEE(img[:tt.size])
			record.SHA256 = sha256.Sum256(img[:tt.size])
		}

		assert.Equal(t, tt.err, Image(record, img, imgMax), "size %d", tt.size)
	}
}

func TestStackPointerPlausibility(t *testing.T) {
	for _, tt := range []struct {
		sp    uint32
		valid bool
	}{
		{0x20000000, true},
		{0x20004fff, true},
		{0x08000000, false},
		{0xffffffff, false},
	} {
		record, img := testImage(16384, tt.sp)
		err := Image(record, img, imgMax)

		if tt.valid {
			assert.NoError(t, err, "sp %#08x", tt.sp)
		} else {
			assert.Equal(t, BadStackPointer, err, "sp %#08x", tt.sp)
		}
	}
}

func TestTamper(t *testing.T) {
	record, img := testImage(16384, 0x20004fe0)

	// flipping a single image byte must fail the checksum
	img[1000] ^= 0x01

	assert.Equal(t, BadCrc, Image(record, img, imgMax))
}

func TestHashMismatch(t *testing.T) {
	record, img := testImage(16384, 0x20004fe0)

	// consistent CRC but stale digest
	record.SHA256[0] ^= 0x01

	assert.Equal(t, BadHash, Image(record, img, imgMax))
}

func TestFirstFailureDecides(t *testing.T) {
	record, img := testImage(16384, 0x08000000)

	// a corrupted record reports BadMagic over any later check
	record.Magic = 0
	record.Size = 0

	assert.Equal(t, BadMagic, Image(record, img, imgMax))

	record.Magic = meta.Magic

	// size is checked before the stack pointer
	assert.Equal(t, BadSize, Image(record, img, imgMax))
}

func TestCRC32Vector(t *testing.T) {
	// IEEE 802.3 check value
	assert.Equal(t, uint32(0xcbf43926), crc32.ChecksumIEEE([]byte("123456789")))
}

func TestSHA256Streaming(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		buf := rapid.SliceOf(rapid.Byte()).Draw(t, "buf")

		h := sha256.New()
		rest := buf

		// streaming updates over arbitrary splits
		for len(rest) > 0 {
			n := rapid.IntRange(1, len(rest)).Draw(t, "n")
			h.Write(rest[:n])
			rest = rest[n:]
		}

		one := sha256.Sum256(buf)

		assert.Equal(t, one[:], h.Sum(nil))
	})
}

func TestHMACVectors(t *testing.T) {
	// RFC 4231 test vectors
	for _, tt := range []struct {
		key  string
		data string
		mac  string
	}{
		{
			"0b0b0b0b0b0b0b0b0b0b0b0b0b0b0b0b0b0b0b0b",
			"4869205468657265",
			"b0344c61d8db38535ca8afceaf0bf12b881dc200c9833da726e9376c2e32cff7",
		},
		{
			"4a656665",
			"7768617420646f2079612077616e7420666f72206e6f7468696e673f",
			"5bdcc146bf60754e6a042426089575c75a003f089d2739839dec58b964ec3843",
		},
	} {
		key, err := hex.DecodeString(tt.key)
		require.NoError(t, err)

		data, err := hex.DecodeString(tt.data)
		require.NoError(t, err)

		mac := hmac.New(sha256.New, key)
		mac.Write(data)

		assert.Equal(t, tt.mac, hex.EncodeToString(mac.Sum(nil)))
	}
}
