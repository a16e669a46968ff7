// telemetry.go

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
	"strconv"
	"strings"
	"time"
)

// Telemetry is the most recent state frame received from the Tello.
// Field names and their number depend on the firmware, so nothing is enforced here;
// the typed accessors simply report ok=false when a field is missing or not numeric.
//
// The fields sent by SDK 2.0 firmware are:
//   mid, x, y, z     - Mission Pad ID and position (-1 and 0 if none detected)
//   pitch, roll, yaw - attitude in degrees
//   vgx, vgy, vgz    - speed along each axis
//   templ, temph     - lowest and highest temperature in degrees Celsius
//   tof              - time-of-flight distance in cm
//   h                - height in cm
//   bat              - battery percentage
//   baro             - barometer measurement in cm
//   time             - time the motors have been running
//   agx, agy, agz    - acceleration along each axis
type Telemetry struct {
	Fields     map[string]string
	ReceivedAt time.Time
}

// parseStateFrame splits a "key:value;key:value;...;\r\n" frame into a field map.
// Frames without any field separator are rejected.
func parseStateFrame(frame string) (map[string]string, bool) {
	if !strings.Contains(frame, stateFieldSep) {
		return nil, false
	}
	frame = strings.TrimSuffix(frame, stateFrameTerminal)
	fields := make(map[string]string)
	for _, f := range strings.Split(frame, stateFieldSep) {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		k, v, _ := strings.Cut(f, stateKeyValueSep)
		fields[k] = v
	}
	return fields, true
}

// Get returns the raw value of a field.
func (t Telemetry) Get(key string) (string, bool) {
	v, ok := t.Fields[key]
	return v, ok
}

// Int returns a field as an integer.
func (t Telemetry) Int(key string) (int, bool) {
	v, ok := t.Fields[key]
	if !ok {
		return 0, false
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return 0, false
	}
	return i, true
}

// Float returns a field as a float.
func (t Telemetry) Float(key string) (float64, bool) {
	v, ok := t.Fields[key]
	if !ok {
		return 0, false
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// ints fetches several integer fields at once, ok only if all are present.
func (t Telemetry) ints(keys ...string) ([]int, bool) {
	vals := make([]int, len(keys))
	for i, k := range keys {
		v, ok := t.Int(k)
		if !ok {
			return nil, false
		}
		vals[i] = v
	}
	return vals, true
}

// Height in cm.
func (t Telemetry) Height() (int, bool) {
	return t.Int("h")
}

// TOF is the time-of-flight sensor distance in cm.
func (t Telemetry) TOF() (int, bool) {
	return t.Int("tof")
}

// Baro is the barometer measurement in cm.
func (t Telemetry) Baro() (float64, bool) {
	return t.Float("baro")
}

// BatteryPct is the remaining battery percentage.
func (t Telemetry) BatteryPct() (int, bool) {
	return t.Int("bat")
}

// MotorTime is the time in seconds the motors have been running.
func (t Telemetry) MotorTime() (int, bool) {
	return t.Int("time")
}

// Temperature returns the lowest and highest reported temperatures in degrees Celsius.
func (t Telemetry) Temperature() (low, high int, ok bool) {
	v, ok := t.ints("templ", "temph")
	if !ok {
		return 0, 0, false
	}
	return v[0], v[1], true
}

// Attitude returns pitch, roll and yaw in degrees.
func (t Telemetry) Attitude() (pitch, roll, yaw int, ok bool) {
	v, ok := t.ints("pitch", "roll", "yaw")
	if !ok {
		return 0, 0, 0, false
	}
	return v[0], v[1], v[2], true
}

// Velocity returns the speed along the x, y and z axes.
func (t Telemetry) Velocity() (x, y, z int, ok bool) {
	v, ok := t.ints("vgx", "vgy", "vgz")
	if !ok {
		return 0, 0, 0, false
	}
	return v[0], v[1], v[2], true
}

// Acceleration returns the acceleration along the x, y and z axes.
func (t Telemetry) Acceleration() (x, y, z float64, ok bool) {
	var vals [3]float64
	for i, k := range []string{"agx", "agy", "agz"} {
		if vals[i], ok = t.Float(k); !ok {
			return 0, 0, 0, false
		}
	}
	return vals[0], vals[1], vals[2], true
}

// MissionPad returns the detected Mission Pad ID and the drone's position relative to it.
// The Tello reports an ID of -1 when no pad is in view.
func (t Telemetry) MissionPad() (id, x, y, z int, ok bool) {
	v, ok := t.ints("mid", "x", "y", "z")
	if !ok {
		return 0, 0, 0, 0, false
	}
	return v[0], v[1], v[2], v[3], true
}
