// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/db47h/socsim/board"
	"github.com/db47h/socsim/crg"
	"github.com/spf13/cobra"
)

var boardsCmd = &cobra.Command{
	Use:   "boards",
	Short: "List supported boards",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 8, 2, ' ', 0)
		fmt.Fprintln(w, "BOARD\tCLOCK\tSYS CLOCK\tRAM\tFLASH")
		for _, n := range board.Names() {
			b, err := board.Lookup(n)
			if err != nil {
				return err
			}
			sys := crg.FormatFreq(b.DefaultSysClkFreq())
			if b.PLL {
				sys += " (PLL)"
			}
			flash := b.Flash.Module
			switch {
			case flash == "":
				flash = "-"
			case b.FlashOptional:
				flash += " (optional)"
			}
			fmt.Fprintf(w, "%s\t%s %s\t%s\t%d KiB %v\t%s\n", b.Name, b.Clock.Name, crg.FormatFreq(b.Clock.Freq),
				sys, b.RAMSize/1024, b.Layout, flash)
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(boardsCmd)
}
