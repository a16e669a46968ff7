// main.go

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

// Package main is a small command line client for a Tello in SDK mode.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/edaniels/golog"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
	"go.uber.org/multierr"

	tello "github.com/SMerrony/tellosdk"
)

const (
	flagConfig    = "config"
	flagTelloIP   = "tello-ip"
	flagTelloPort = "tello-port"
	flagLocalIP   = "local-ip"
	flagLocalPort = "local-port"
	flagStatePort = "state-port"
	flagTimeout   = "timeout"
	flagEphemeral = "ephemeral"
	flagWait      = "wait"
)

func main() {
	logger := golog.NewDevelopmentLogger("tellosdk")
	if err := newApp(logger).Run(os.Args); err != nil {
		logger.Fatal(err)
	}
}

func newApp(logger golog.Logger) *cli.App {
	return &cli.App{
		Name:  "tellosdk",
		Usage: "send SDK commands to a Tello drone",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  flagConfig,
				Usage: "JSON file of connection settings; flags override it",
			},
			&cli.StringFlag{
				Name:  flagTelloIP,
				Usage: "address of the Tello",
			},
			&cli.IntFlag{
				Name:  flagTelloPort,
				Usage: "command port of the Tello",
			},
			&cli.StringFlag{
				Name:  flagLocalIP,
				Usage: "local address to bind",
			},
			&cli.IntFlag{
				Name:  flagLocalPort,
				Usage: "local command port",
			},
			&cli.IntFlag{
				Name:  flagStatePort,
				Usage: "local telemetry port",
			},
			&cli.DurationFlag{
				Name:  flagTimeout,
				Usage: "how long to wait for each reply",
			},
			&cli.BoolFlag{
				Name:  flagEphemeral,
				Usage: "bind OS-chosen local ports",
			},
		},
		Commands: []*cli.Command{
			{
				Name:      "send",
				Usage:     "enter SDK mode and send one command, printing the reply",
				ArgsUsage: "<command> [args...]",
				Action: func(c *cli.Context) error {
					if c.Args().Len() == 0 {
						return errors.New("send needs a command")
					}
					return withTello(c, logger, func(ctx context.Context, drone *tello.Tello) error {
						reply, err := drone.SendCommand(ctx, strings.Join(c.Args().Slice(), " "))
						if err != nil {
							return err
						}
						fmt.Fprintln(c.App.Writer, reply)
						return nil
					})
				},
			},
			{
				Name:  "battery",
				Usage: "print the remaining battery percentage",
				Action: func(c *cli.Context) error {
					return withTello(c, logger, func(ctx context.Context, drone *tello.Tello) error {
						bat, err := drone.Battery(ctx)
						if err != nil {
							return err
						}
						if !bat.Valid {
							return errors.Errorf("unexpected battery reply %q", bat.Raw)
						}
						fmt.Fprintf(c.App.Writer, "%d%%\n", bat.Value)
						return nil
					})
				},
			},
			{
				Name:  "state",
				Usage: "wait for a telemetry frame and print it",
				Flags: []cli.Flag{
					&cli.DurationFlag{
						Name:  flagWait,
						Value: 3 * time.Second,
						Usage: "how long to wait for a frame",
					},
				},
				Action: func(c *cli.Context) error {
					return withTello(c, logger, func(ctx context.Context, drone *tello.Tello) error {
						return printState(ctx, c, drone, c.Duration(flagWait))
					})
				},
			},
		},
	}
}

// withTello connects, enters SDK mode and runs f, closing the session afterwards.
func withTello(c *cli.Context, logger golog.Logger, f func(context.Context, *tello.Tello) error) (err error) {
	conf, err := configFromContext(c)
	if err != nil {
		return err
	}
	drone, err := tello.Connect(conf, logger)
	if err != nil {
		return err
	}
	defer func() {
		err = multierr.Combine(err, drone.Close())
	}()

	ctx := c.Context
	reply, err := drone.EnterSDKMode(ctx)
	if err != nil {
		return err
	}
	if err := tello.CheckOK(reply); err != nil {
		return errors.Wrap(err, "cannot enter SDK mode")
	}
	return f(ctx, drone)
}

func configFromContext(c *cli.Context) (tello.Config, error) {
	var conf tello.Config
	if path := c.String(flagConfig); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return conf, err
		}
		var attrs map[string]interface{}
		if err := json.Unmarshal(data, &attrs); err != nil {
			return conf, errors.Wrapf(err, "cannot parse %s", path)
		}
		if conf, err = tello.ConfigFromAttributes(attrs); err != nil {
			return conf, err
		}
	}
	if c.IsSet(flagTelloIP) {
		conf.TelloIP = c.String(flagTelloIP)
	}
	if c.IsSet(flagTelloPort) {
		conf.TelloPort = c.Int(flagTelloPort)
	}
	if c.IsSet(flagLocalIP) {
		conf.LocalIP = c.String(flagLocalIP)
	}
	if c.IsSet(flagLocalPort) {
		conf.LocalPort = c.Int(flagLocalPort)
	}
	if c.IsSet(flagStatePort) {
		conf.StatePort = c.Int(flagStatePort)
	}
	if c.IsSet(flagTimeout) {
		conf.CommandTimeoutSec = c.Duration(flagTimeout).Seconds()
	}
	if c.IsSet(flagEphemeral) {
		conf.EphemeralPorts = c.Bool(flagEphemeral)
	}
	return conf, conf.Validate("tellosdk")
}

func printState(ctx context.Context, c *cli.Context, drone *tello.Tello, wait time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, wait)
	defer cancel()
	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()
	for {
		snap := drone.Telemetry()
		if !snap.ReceivedAt.IsZero() {
			keys := make([]string, 0, len(snap.Fields))
			for k := range snap.Fields {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			for _, k := range keys {
				fmt.Fprintf(c.App.Writer, "%s=%s\n", k, snap.Fields[k])
			}
			return nil
		}
		select {
		case <-ctx.Done():
			return errors.New("no telemetry received")
		case <-ticker.C:
		}
	}
}
