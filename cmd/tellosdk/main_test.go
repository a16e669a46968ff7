// main_test.go

// Copyright (C) 2018  Steve Merrony

// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.

// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.

package main

import (
	"bytes"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/edaniels/golog"
	"go.viam.com/test"
)

// serveReplies answers commands on a loopback socket from a canned table.
func serveReplies(t *testing.T, replies map[string]string) int {
	t.Helper()
	conn, err := net.ListenUDP("udp", &net.UDPAddr{IP: net.IPv4(127, 0, 0, 1)})
	test.That(t, err, test.ShouldBeNil)
	t.Cleanup(func() { conn.Close() })
	go func() {
		buff := make([]byte, 1518)
		for {
			n, addr, err := conn.ReadFromUDP(buff)
			if err != nil {
				return
			}
			if r, ok := replies[string(buff[:n])]; ok {
				conn.WriteToUDP([]byte(r), addr)
			}
		}
	}()
	return conn.LocalAddr().(*net.UDPAddr).Port
}

func runApp(t *testing.T, port int, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	app := newApp(golog.NewTestLogger(t))
	app.Writer = &out
	base := []string{
		"tellosdk",
		"--" + flagTelloIP, "127.0.0.1",
		"--" + flagTelloPort, strconv.Itoa(port),
		"--" + flagLocalIP, "127.0.0.1",
		"--" + flagEphemeral,
		"--" + flagTimeout, "200ms",
	}
	err := app.Run(append(base, args...))
	return out.String(), err
}

func TestSendAction(t *testing.T) {
	port := serveReplies(t, map[string]string{"command": "ok", "cw 90": "ok"})

	out, err := runApp(t, port, "send", "cw", "90")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, out, test.ShouldEqual, "ok\n")

	_, err = runApp(t, port, "send")
	test.That(t, err, test.ShouldNotBeNil)
}

func TestBatteryAction(t *testing.T) {
	port := serveReplies(t, map[string]string{"command": "ok", "battery?": "85"})
	out, err := runApp(t, port, "battery")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, out, test.ShouldEqual, "85%\n")

	port = serveReplies(t, map[string]string{"command": "ok", "battery?": "error"})
	_, err = runApp(t, port, "battery")
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "unexpected battery reply")
}

func TestNoSDKMode(t *testing.T) {
	port := serveReplies(t, map[string]string{"command": "error"})
	_, err := runApp(t, port, "send", "takeoff")
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "cannot enter SDK mode")
}

func TestConfigFile(t *testing.T) {
	port := serveReplies(t, map[string]string{"command": "ok", "sdk?": "20"})
	path := filepath.Join(t.TempDir(), "tello.json")
	conf := `{"tello_ip": "127.0.0.1", "tello_port": ` + strconv.Itoa(port) +
		`, "local_ip": "127.0.0.1", "ephemeral_ports": true, "command_timeout_sec": 0.2}`
	test.That(t, os.WriteFile(path, []byte(conf), 0o600), test.ShouldBeNil)

	var out bytes.Buffer
	app := newApp(golog.NewTestLogger(t))
	app.Writer = &out
	err := app.Run([]string{"tellosdk", "--" + flagConfig, path, "send", "sdk?"})
	test.That(t, err, test.ShouldBeNil)
	test.That(t, out.String(), test.ShouldEqual, "20\n")

	test.That(t, os.WriteFile(path, []byte(`{"bogus": 1}`), 0o600), test.ShouldBeNil)
	err = app.Run([]string{"tellosdk", "--" + flagConfig, path, "send", "sdk?"})
	test.That(t, err, test.ShouldNotBeNil)
}
