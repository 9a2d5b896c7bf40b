// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package main

import (
	"fmt"
	"runtime"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Simulate the reset sequencer until the sys reset is released",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		b, err := opts.Resolve()
		if err != nil {
			return err
		}
		c := b.CRG
		sim, err := c.Simulate(runtime.GOMAXPROCS(-1))
		if err != nil {
			return err
		}
		defer sim.Dispose()
		n, err := sim.RunUntilReleased(c.ReleaseCycle() + 1)
		if err != nil {
			return err
		}
		if n != c.ReleaseCycle() {
			return errors.Errorf("sys reset released at cycle %d, expected %d", n, c.ReleaseCycle())
		}
		cfg := c.Config()
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s: %d bit power-on counter, %d hold cycles (%v), %v synchronizer\n",
			cfg.ClockName, cfg.CounterBits, c.HoldCycles(), c.HoldDuration(), cfg.Synchronizer)
		fmt.Fprintf(out, "sys_rst released at cycle %d, por state %v, por count %d\n", n, sim.State(), sim.Count())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(resetCmd)
}
