// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/db47h/socsim/config"
	"github.com/db47h/socsim/crg"
	"github.com/db47h/socsim/soc"
	"github.com/spf13/cobra"
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Print the memory map, boot address and timing constraints",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		b, err := opts.Resolve()
		if err != nil {
			return err
		}
		res, err := b.Map()
		if err != nil {
			return err
		}
		printBuild(cmd.OutOrStdout(), b, res)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(buildCmd)
	flag := buildCmd.Flags()
	flag.StringVar(&opts.BiosFlashOffset, "bios-flash-offset", "", "firmware offset in SPI flash (board default if empty)")
	flag.BoolVar(&opts.SPIFlash, "with-spi-flash", false, "map the optional SPI flash")
	flag.BoolVar(&opts.RGBLed, "with-rgb-led", false, "add the RGB led controller")
}

func printBuild(out io.Writer, b *config.Build, res *soc.Result) {
	fmt.Fprintf(out, "%s (%s, %s RAM)\n\n", b.Board.Ident, b.Board.Name, b.Board.Policy().Name())
	w := tabwriter.NewWriter(out, 0, 8, 2, ' ', 0)
	fmt.Fprintln(w, "REGION\tORIGIN\tSIZE\tMODE")
	for _, r := range res.Regions {
		mode := "io"
		if r.Linker {
			mode = "linker"
		}
		fmt.Fprintf(w, "%s\t0x%08x\t0x%x\t%s\n", r.Name, r.Origin, r.Size, mode)
	}
	w.Flush()
	fmt.Fprintf(out, "\nboot address: 0x%08x\n", res.BootAddress)
	fmt.Fprintf(out, "sys clock: %s\n", crg.FormatFreq(b.SysClkFreq))
	fmt.Fprintf(out, "period constraint: %v\n", b.CRG.PeriodConstraint())
	f := res.Flash
	if f == nil {
		return
	}
	fmt.Fprintf(out, "flash: %s, 0x%x bytes\n", b.Board.Flash.Module, f.FlashSize)
	if f.BitstreamSize != 0 {
		fmt.Fprintf(out, "  gateware at 0x%x, 0x%x bytes\n", f.GatewareOffset, f.BitstreamSize)
	}
	if f.BiosInFlash {
		fmt.Fprintf(out, "  bios at 0x%x\n", f.BiosOffset)
	}
}
