// Host side serial monitor for the Blue Pill secure firmware
// https://github.com/usbarmory/bluepill-boot
//
// Copyright (c) WithSecure Corporation
// https://foundry.withsecure.com
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

// pillmon attaches to the firmware serial command port, forwarding commands
// from standard input and printing replies, heartbeats included, to standard
// output.
//
// With the JSON flag bare command names are wrapped in the embedded JSON
// dialect (e.g. `STATUS` becomes `{"command":"STATUS"}`).
package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/pkg/term"
	"github.com/spf13/pflag"
)

func wrap(cmd string) string {
	name, param, found := strings.Cut(cmd, " ")

	if !found {
		return fmt.Sprintf(`{"command":"%s"}`, name)
	}

	key, val, found := strings.Cut(param, "=")

	if !found {
		return fmt.Sprintf(`{"command":"%s"}`, name)
	}

	return fmt.Sprintf(`{"command":"%s","params":{"%s":%s}}`, name, key, val)
}

func main() {
	var (
		dev  string
		baud int
		json bool
	)

	pflag.StringVarP(&dev, "device", "d", "/dev/ttyUSB0", "serial port")
	pflag.IntVarP(&baud, "baudrate", "b", 115200, "port speed")
	pflag.BoolVarP(&json, "json", "j", false, "wrap commands in the JSON dialect")
	pflag.Parse()

	port, err := term.Open(dev, term.Speed(baud), term.RawMode)

	if err != nil {
		log.Fatal("could not open port", "dev", dev, "err", err)
	}
	defer port.Close()

	log.Info("attached", "dev", dev, "baudrate", baud)

	go func() {
		if _, err := io.Copy(os.Stdout, port); err != nil {
			log.Fatal("port read error", "err", err)
		}
	}()

	stdin := bufio.NewScanner(os.Stdin)

	for stdin.Scan() {
		cmd := strings.TrimSpace(stdin.Text())

		if cmd == "" {
			continue
		}

		if json {
			cmd = wrap(cmd)
		}

		if _, err = fmt.Fprintf(port, "%s\r\n", cmd); err != nil {
			log.Fatal("port write error", "err", err)
		}
	}
}
