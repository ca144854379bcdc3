// Host side metadata record tool for the Blue Pill secure firmware
// https://github.com/usbarmory/bluepill-boot
//
// Copyright (c) WithSecure Corporation
// https://foundry.withsecure.com
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

// mkmeta computes the metadata record authorizing a firmware image to boot,
// the record is meant to be flashed, before first boot, at the metadata
// address of the target (the device itself never writes flash).
//
// Example use:
//
//	mkmeta -i app.bin -r meta.bin -v 3    create a record
//	mkmeta -r meta.bin                    inspect an existing record
//	mkmeta -i app.bin -r meta.bin         verify (record exists)
package main

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"hash/crc32"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/usbarmory/bluepill-boot/boot/meta"
	"github.com/usbarmory/bluepill-boot/boot/verify"
)

// Layout describes the target flash partitioning, overriding the Blue Pill
// defaults.
type Layout struct {
	ImgBase uint32 `yaml:"img_base"`
	ImgMax  uint32 `yaml:"img_max"`
}

// Blue Pill defaults
var layout = Layout{
	ImgBase: 0x08002000,
	ImgMax:  0xc000,
}

func digests(record *meta.Record) string {
	return fmt.Sprintf("crc32:%08x sha256:%s",
		record.CRC32, base64.StdEncoding.EncodeToString(record.SHA256[:]))
}

func main() {
	var (
		imagePath  string
		recordPath string
		layoutPath string
		version    uint32
		timestamp  uint32
		hmacKey    string
	)

	pflag.StringVarP(&imagePath, "image", "i", "", "firmware image")
	pflag.StringVarP(&recordPath, "record", "r", "", "metadata record")
	pflag.StringVarP(&layoutPath, "layout", "l", "", "target flash layout (YAML)")
	pflag.Uint32VarP(&version, "version", "v", 0, "image revision")
	pflag.Uint32VarP(&timestamp, "timestamp", "t", uint32(time.Now().Unix()), "build time")
	pflag.StringVarP(&hmacKey, "hmac-key", "k", "", "emit a keyed image digest (not consumed by the loader)")
	pflag.Parse()

	if layoutPath != "" {
		buf, err := os.ReadFile(layoutPath)

		if err != nil {
			log.Fatal("could not read layout", "err", err)
		}

		if err = yaml.Unmarshal(buf, &layout); err != nil {
			log.Fatal("could not parse layout", "err", err)
		}
	}

	switch {
	case imagePath != "" && recordPath != "":
		if _, err := os.Stat(recordPath); err == nil {
			check(imagePath, recordPath)
			return
		}

		create(imagePath, recordPath, version, timestamp, hmacKey)
	case recordPath != "":
		inspect(recordPath)
	default:
		pflag.Usage()
		os.Exit(1)
	}
}

func create(imagePath string, recordPath string, version uint32, timestamp uint32, hmacKey string) {
	img, err := os.ReadFile(imagePath)

	if err != nil {
		log.Fatal("could not read image", "err", err)
	}

	if len(img) == 0 || uint32(len(img)) > layout.ImgMax {
		log.Fatal("image size out of bounds", "size", len(img), "max", layout.ImgMax)
	}

	record := &meta.Record{
		Magic:     meta.Magic,
		Version:   version,
		Size:      uint32(len(img)),
		CRC32:     crc32.ChecksumIEEE(img),
		SHA256:    sha256.Sum256(img),
		Timestamp: timestamp,
	}

	if err = os.WriteFile(recordPath, record.Bytes(), 0644); err != nil {
		log.Fatal("could not write record", "err", err)
	}

	log.Info("record created", "image", imagePath, "size", record.Size, "version", version)
	log.Info(digests(record))

	if hmacKey != "" {
		mac := hmac.New(sha256.New, []byte(hmacKey))
		mac.Write(img)

		// reserved for a future keyed metadata scheme
		log.Info("keyed digest", "hmac", base64.StdEncoding.EncodeToString(mac.Sum(nil)))
	}
}

func inspect(recordPath string) {
	record, err := parse(recordPath)

	if err != nil {
		log.Fatal("could not parse record", "err", err)
	}

	if record.Magic != meta.Magic {
		log.Warn("record magic mismatch", "magic", fmt.Sprintf("%08x", record.Magic))
	}

	log.Info("record",
		"version", record.Version,
		"size", record.Size,
		"timestamp", time.Unix(int64(record.Timestamp), 0).UTC().Format(time.RFC3339))
	log.Info(digests(record))
}

func check(imagePath string, recordPath string) {
	img, err := os.ReadFile(imagePath)

	if err != nil {
		log.Fatal("could not read image", "err", err)
	}

	record, err := parse(recordPath)

	if err != nil {
		log.Fatal("could not parse record", "err", err)
	}

	if err = verify.Image(record, img, layout.ImgMax); err != nil {
		log.Fatal("verification failed", "err", err)
	}

	log.Info("verification passed", "size", record.Size, "version", record.Version)
}

func parse(recordPath string) (*meta.Record, error) {
	buf, err := os.ReadFile(recordPath)

	if err != nil {
		return nil, err
	}

	return meta.Parse(buf)
}
