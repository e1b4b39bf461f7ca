package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/samber/lo"
	"github.com/urfave/cli/v2"
	"golang.org/x/sync/errgroup"

	"lci-gateway/internal/application"
	"lci-gateway/internal/domain"
	"lci-gateway/pkg/lci"
)

var deviceTypes = []lci.DeviceType{
	lci.DeviceTypeGateway,
	lci.DeviceTypeTank,
	lci.DeviceTypeRgbLights,
	lci.DeviceTypeHvac,
	lci.DeviceTypeDimmer,
	lci.DeviceTypeGenerator,
	lci.DeviceTypeSwitch,
	lci.DeviceTypeUnknown,
}

func parseDeviceType(s string) (lci.DeviceType, error) {
	dt, ok := lo.Find(deviceTypes, func(dt lci.DeviceType) bool {
		return strings.EqualFold(strings.ReplaceAll(dt.String(), " ", ""), strings.ReplaceAll(s, " ", ""))
	})
	if !ok {
		names := lo.Map(deviceTypes, func(dt lci.DeviceType, _ int) string { return dt.String() })
		return 0, fmt.Errorf("unknown device type %q (want one of %s)", s, strings.Join(names, ", "))
	}
	return dt, nil
}

// open finds the Thing labelled label and wraps it with ctor.
func open[T any](ctx context.Context, e *env, label string, want lci.DeviceType, ctor func(*lci.Client, lci.Thing) (T, error)) (T, error) {
	var zero T
	if strings.TrimSpace(label) == "" {
		return zero, fmt.Errorf("a %s label is required", want)
	}

	things, err := e.client.GetThings(ctx)
	if err != nil {
		return zero, err
	}

	thing, ok := lci.FindByLabel(things, label)
	if !ok {
		candidates := lo.Map(lci.FilterByType(things, want), func(t lci.Thing, _ int) string { return t.Label })
		return zero, fmt.Errorf("no %s labelled %q (known: %s)", want, label, strings.Join(candidates, ", "))
	}
	return ctor(e.client, thing)
}

func intArg(c *cli.Context, n int, name string) (int, error) {
	raw := c.Args().Get(n)
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer, got %q", name, raw)
	}
	return v, nil
}

func thingsCommand(e *env) *cli.Command {
	return &cli.Command{
		Name:  "things",
		Usage: "list every Thing the gateway knows",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "type", Usage: "only list this device type, e.g. dimmer or hvac"},
		},
		Action: func(c *cli.Context) error {
			things, err := e.client.GetThings(c.Context)
			if err != nil {
				return err
			}

			if name := c.String("type"); name != "" {
				dt, err := parseDeviceType(name)
				if err != nil {
					return err
				}
				things = lci.FilterByType(things, dt)
			}

			w := tabwriter.NewWriter(c.App.Writer, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "LABEL\tTYPE\tUID\tSTATUS")
			for _, t := range things {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", t.Label, t.Type(), t.UID, t.StatusInfo.Status)
			}
			return w.Flush()
		},
	}
}

func statusCommand(e *env) *cli.Command {
	return &cli.Command{
		Name:  "status",
		Usage: "read every supported device once",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "json", Usage: "print snapshots as JSON"},
			&cli.IntFlag{Name: "concurrency", Usage: "devices read at once (default from config)"},
		},
		Action: func(c *cli.Context) error {
			things, err := e.client.GetThings(c.Context)
			if err != nil {
				return err
			}

			limit := e.cfg.Watch.Concurrency
			if c.IsSet("concurrency") {
				limit = c.Int("concurrency")
			}

			snaps, err := application.ReadSnapshots(c.Context, e.client, things, limit)
			if err != nil {
				return err
			}

			if c.Bool("json") {
				enc := json.NewEncoder(c.App.Writer)
				enc.SetIndent("", "  ")
				return enc.Encode(snaps)
			}
			return printSnapshots(c.App.Writer, snaps)
		},
	}
}

func printSnapshots(out io.Writer, snaps []domain.DeviceSnapshot) error {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "LABEL\tTYPE\tONLINE\tVALUES")
	for _, s := range snaps {
		keys := lo.Keys(s.Values)
		slices.Sort(keys)
		fields := lo.Map(keys, func(k string, _ int) string { return fmt.Sprintf("%s=%v", k, s.Values[k]) })
		failed := lo.Keys(s.Errors)
		slices.Sort(failed)
		for _, k := range failed {
			fields = append(fields, k+"=?")
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", s.Label, s.Type, s.Online, strings.Join(fields, " "))
	}
	return w.Flush()
}

func dimmerCommand(e *env) *cli.Command {
	openDimmer := func(c *cli.Context) (*lci.Dimmer, error) {
		return open(c.Context, e, c.Args().First(), lci.DeviceTypeDimmer, lci.NewDimmer)
	}

	return &cli.Command{
		Name:  "dimmer",
		Usage: "read or set a dimmable light",
		Subcommands: []*cli.Command{
			{
				Name:      "get",
				ArgsUsage: "LABEL",
				Action: func(c *cli.Context) error {
					d, err := openDimmer(c)
					if err != nil {
						return err
					}
					p, err := d.Brightness(c.Context)
					if err != nil {
						return err
					}
					fmt.Fprintf(c.App.Writer, "%s: %s\n", d.Label(), p)
					return nil
				},
			},
			{
				Name:      "set",
				ArgsUsage: "LABEL PERCENT",
				Action: func(c *cli.Context) error {
					n, err := intArg(c, 1, "PERCENT")
					if err != nil {
						return err
					}
					d, err := openDimmer(c)
					if err != nil {
						return err
					}
					return d.SetBrightness(c.Context, n)
				},
			},
			{
				Name:      "on",
				ArgsUsage: "LABEL",
				Action: func(c *cli.Context) error {
					d, err := openDimmer(c)
					if err != nil {
						return err
					}
					return d.On(c.Context)
				},
			},
			{
				Name:      "off",
				ArgsUsage: "LABEL",
				Action: func(c *cli.Context) error {
					d, err := openDimmer(c)
					if err != nil {
						return err
					}
					return d.Off(c.Context)
				},
			},
		},
	}
}

func switchCommand(e *env) *cli.Command {
	openSwitch := func(c *cli.Context) (*lci.Switch, error) {
		return open(c.Context, e, c.Args().First(), lci.DeviceTypeSwitch, lci.NewSwitch)
	}

	return &cli.Command{
		Name:  "switch",
		Usage: "read or flip a relay switch",
		Subcommands: []*cli.Command{
			{
				Name:      "get",
				ArgsUsage: "LABEL",
				Action: func(c *cli.Context) error {
					s, err := openSwitch(c)
					if err != nil {
						return err
					}
					state, err := s.State(c.Context)
					if err != nil {
						return err
					}
					fault, err := s.Fault(c.Context)
					if err != nil {
						return err
					}
					fmt.Fprintf(c.App.Writer, "%s: %s fault=%t\n", s.Label(), state, fault)
					return nil
				},
			},
			{
				Name:      "on",
				ArgsUsage: "LABEL",
				Action: func(c *cli.Context) error {
					s, err := openSwitch(c)
					if err != nil {
						return err
					}
					return s.On(c.Context)
				},
			},
			{
				Name:      "off",
				ArgsUsage: "LABEL",
				Action: func(c *cli.Context) error {
					s, err := openSwitch(c)
					if err != nil {
						return err
					}
					return s.Off(c.Context)
				},
			},
		},
	}
}

func tankCommand(e *env) *cli.Command {
	return &cli.Command{
		Name:      "tank",
		Usage:     "print tank levels",
		ArgsUsage: "[LABEL]",
		Action: func(c *cli.Context) error {
			things, err := e.client.GetThings(c.Context)
			if err != nil {
				return err
			}

			tanks := lci.FilterByType(things, lci.DeviceTypeTank)
			if label := c.Args().First(); label != "" {
				thing, ok := lci.FindByLabel(tanks, label)
				if !ok {
					return fmt.Errorf("no tank labelled %q", label)
				}
				tanks = []lci.Thing{thing}
			}

			levels := make([]lci.Percentage, len(tanks))
			g, ctx := errgroup.WithContext(c.Context)
			g.SetLimit(e.cfg.Watch.Concurrency)
			for i, thing := range tanks {
				g.Go(func() error {
					tank, err := lci.NewTank(e.client, thing)
					if err != nil {
						return err
					}
					levels[i], err = tank.Level(ctx)
					return err
				})
			}
			if err := g.Wait(); err != nil {
				return err
			}

			w := tabwriter.NewWriter(c.App.Writer, 0, 4, 2, ' ', 0)
			for i, thing := range tanks {
				fmt.Fprintf(w, "%s\t%s\n", thing.Label, levels[i])
			}
			return w.Flush()
		},
	}
}

func generatorCommand(e *env) *cli.Command {
	openGenerator := func(c *cli.Context) (*lci.Generator, error) {
		return open(c.Context, e, c.Args().First(), lci.DeviceTypeGenerator, lci.NewGenerator)
	}

	return &cli.Command{
		Name:  "generator",
		Usage: "read, start or stop a generator",
		Subcommands: []*cli.Command{
			{
				Name:      "get",
				ArgsUsage: "LABEL",
				Action: func(c *cli.Context) error {
					g, err := openGenerator(c)
					if err != nil {
						return err
					}
					state, err := g.State(c.Context)
					if err != nil {
						return err
					}
					fmt.Fprintf(c.App.Writer, "%s: %s\n", g.Label(), state)
					return nil
				},
			},
			{
				Name:      "on",
				ArgsUsage: "LABEL",
				Action: func(c *cli.Context) error {
					g, err := openGenerator(c)
					if err != nil {
						return err
					}
					return g.On(c.Context)
				},
			},
			{
				Name:      "off",
				ArgsUsage: "LABEL",
				Action: func(c *cli.Context) error {
					g, err := openGenerator(c)
					if err != nil {
						return err
					}
					return g.Off(c.Context)
				},
			},
		},
	}
}

func hvacCommand(e *env) *cli.Command {
	openHVAC := func(c *cli.Context) (*lci.HVAC, error) {
		return open(c.Context, e, c.Args().First(), lci.DeviceTypeHvac, lci.NewHVAC)
	}

	setTemp := func(name string, set func(*lci.HVAC, context.Context, int) error) *cli.Command {
		return &cli.Command{
			Name:      name,
			Usage:     "set the " + name + " setpoint",
			ArgsUsage: "LABEL DEGREES",
			Action: func(c *cli.Context) error {
				temp, err := intArg(c, 1, "DEGREES")
				if err != nil {
					return err
				}
				h, err := openHVAC(c)
				if err != nil {
					return err
				}
				return set(h, c.Context, temp)
			},
		}
	}

	return &cli.Command{
		Name:  "hvac",
		Usage: "read or control a climate zone",
		Subcommands: []*cli.Command{
			{
				Name:      "get",
				ArgsUsage: "LABEL",
				Action: func(c *cli.Context) error {
					h, err := openHVAC(c)
					if err != nil {
						return err
					}
					snap, err := application.ReadSnapshot(c.Context, e.client, h.Thing())
					if err != nil {
						return err
					}
					return printSnapshots(c.App.Writer, []domain.DeviceSnapshot{snap})
				},
			},
			{
				Name:      "mode",
				Usage:     "set the mode: " + strings.Join(lo.Map(lci.HvacModes(), func(m lci.HvacMode, _ int) string { return m.Value() }), ", "),
				ArgsUsage: "LABEL MODE",
				Action: func(c *cli.Context) error {
					mode, err := lci.ParseHvacMode(c.Args().Get(1))
					if err != nil {
						return err
					}
					h, err := openHVAC(c)
					if err != nil {
						return err
					}
					return h.SetMode(c.Context, mode)
				},
			},
			{
				Name:      "fan",
				Usage:     "set the fan mode: " + strings.Join(lo.Map(lci.HvacFanModes(), func(m lci.HvacFanMode, _ int) string { return m.Value() }), ", "),
				ArgsUsage: "LABEL FAN_MODE",
				Action: func(c *cli.Context) error {
					mode, err := lci.ParseHvacFanMode(c.Args().Get(1))
					if err != nil {
						return err
					}
					h, err := openHVAC(c)
					if err != nil {
						return err
					}
					return h.SetFanMode(c.Context, mode)
				},
			},
			setTemp("high", (*lci.HVAC).SetHighTemperature),
			setTemp("low", (*lci.HVAC).SetLowTemperature),
		},
	}
}
