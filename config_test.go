// config_test.go

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

package tello

import (
	"testing"
	"time"

	"go.viam.com/test"
)

func TestDefaultConfig(t *testing.T) {
	conf := DefaultConfig()
	test.That(t, conf.TelloIP, test.ShouldEqual, "192.168.10.1")
	test.That(t, conf.TelloPort, test.ShouldEqual, 8889)
	test.That(t, conf.LocalPort, test.ShouldEqual, 8889)
	test.That(t, conf.StatePort, test.ShouldEqual, 8890)
	test.That(t, conf.StateInterval(), test.ShouldEqual, 200*time.Millisecond)
	test.That(t, conf.CommandTimeout(), test.ShouldEqual, time.Second)
	test.That(t, conf.Validate("tello"), test.ShouldBeNil)
}

func TestEphemeralPortsKeepZero(t *testing.T) {
	conf := Config{EphemeralPorts: true}.withDefaults()
	test.That(t, conf.LocalPort, test.ShouldEqual, 0)
	test.That(t, conf.StatePort, test.ShouldEqual, 0)
	test.That(t, conf.TelloPort, test.ShouldEqual, 8889)
}

func TestConfigValidate(t *testing.T) {
	for name, conf := range map[string]Config{
		"bad local ip":     {LocalIP: "not-an-ip"},
		"bad tello ip":     {TelloIP: "192.168.10"},
		"port too big":     {LocalPort: 70000},
		"negative port":    {StatePort: -1},
		"negative timeout": {CommandTimeoutSec: -1},
		"negative poll":    {StateIntervalSec: -0.5},
	} {
		t.Run(name, func(t *testing.T) {
			err := conf.Validate("tello")
			test.That(t, err, test.ShouldNotBeNil)
			test.That(t, err.Error(), test.ShouldContainSubstring, "tello")
		})
	}
}

func TestConfigFromAttributes(t *testing.T) {
	conf, err := ConfigFromAttributes(map[string]interface{}{
		"tello_ip":            "10.0.0.7",
		"local_port":          "9000",
		"command_timeout_sec": 2.5,
		"state_interval_sec":  0.1,
	})
	test.That(t, err, test.ShouldBeNil)
	test.That(t, conf.TelloIP, test.ShouldEqual, "10.0.0.7")
	test.That(t, conf.LocalPort, test.ShouldEqual, 9000)
	test.That(t, conf.CommandTimeout(), test.ShouldEqual, 2500*time.Millisecond)
	test.That(t, conf.StateInterval(), test.ShouldEqual, 100*time.Millisecond)

	_, err = ConfigFromAttributes(map[string]interface{}{"tello_addr": "10.0.0.7"})
	test.That(t, err, test.ShouldNotBeNil)
}
