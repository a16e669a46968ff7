// config.go

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
	"net"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"
	"go.viam.com/utils"
)

// Config holds the connection settings for a Tello session.
// The zero value of any field selects the default.
type Config struct {
	LocalIP           string  `json:"local_ip,omitempty"`
	LocalPort         int     `json:"local_port,omitempty"`
	StatePort         int     `json:"state_port,omitempty"`
	TelloIP           string  `json:"tello_ip,omitempty"`
	TelloPort         int     `json:"tello_port,omitempty"`
	StateIntervalSec  float64 `json:"state_interval_sec,omitempty"`
	CommandTimeoutSec float64 `json:"command_timeout_sec,omitempty"`

	// EphemeralPorts binds both local sockets to OS-chosen ports instead of the defaults.
	EphemeralPorts bool `json:"ephemeral_ports,omitempty"`
}

// DefaultConfig returns the settings for a Tello in its normal AP mode.
func DefaultConfig() Config {
	return Config{}.withDefaults()
}

// ConfigFromAttributes converts a generic attribute map, eg. one read from a JSON file, into a Config.
func ConfigFromAttributes(attrs map[string]interface{}) (Config, error) {
	var conf Config
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		Result:           &conf,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
	})
	if err != nil {
		return Config{}, err
	}
	if err := decoder.Decode(attrs); err != nil {
		return Config{}, errors.Wrap(err, "cannot decode tello config")
	}
	return conf, nil
}

// Validate ensures all parts of the config are valid.
func (conf *Config) Validate(path string) error {
	if conf.LocalIP != "" && net.ParseIP(conf.LocalIP) == nil {
		return utils.NewConfigValidationError(path, errors.Errorf("invalid local_ip %q", conf.LocalIP))
	}
	if conf.TelloIP != "" && net.ParseIP(conf.TelloIP) == nil {
		return utils.NewConfigValidationError(path, errors.Errorf("invalid tello_ip %q", conf.TelloIP))
	}
	for name, port := range map[string]int{
		"local_port": conf.LocalPort,
		"state_port": conf.StatePort,
		"tello_port": conf.TelloPort,
	} {
		if port < 0 || port > 65535 {
			return utils.NewConfigValidationError(path, errors.Errorf("%s %d out of range", name, port))
		}
	}
	if conf.StateIntervalSec < 0 {
		return utils.NewConfigValidationError(path, errors.New("state_interval_sec cannot be negative"))
	}
	if conf.CommandTimeoutSec < 0 {
		return utils.NewConfigValidationError(path, errors.New("command_timeout_sec cannot be negative"))
	}
	return nil
}

func (conf Config) withDefaults() Config {
	if conf.TelloIP == "" {
		conf.TelloIP = defaultTelloAddr
	}
	if conf.TelloPort == 0 {
		conf.TelloPort = defaultTelloControlPort
	}
	if !conf.EphemeralPorts {
		if conf.LocalPort == 0 {
			conf.LocalPort = defaultLocalControlPort
		}
		if conf.StatePort == 0 {
			conf.StatePort = defaultLocalStatePort
		}
	}
	if conf.StateIntervalSec == 0 {
		conf.StateIntervalSec = defaultStateInterval.Seconds()
	}
	if conf.CommandTimeoutSec == 0 {
		conf.CommandTimeoutSec = defaultCommandTimeout.Seconds()
	}
	return conf
}

// StateInterval is the pause the telemetry listener takes after each frame.
func (conf Config) StateInterval() time.Duration {
	return secondsToDuration(conf.StateIntervalSec)
}

// CommandTimeout is how long SendCommand waits for an acknowledgement.
func (conf Config) CommandTimeout() time.Duration {
	return secondsToDuration(conf.CommandTimeoutSec)
}

func secondsToDuration(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}
