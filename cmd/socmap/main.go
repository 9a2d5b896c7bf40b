// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Command socmap computes the memory map and reset timing of a LiteX style SoC
// on one of the supported boards.
//
package main

import (
	"log"

	"github.com/db47h/socsim/config"
	"github.com/spf13/cobra"
)

var opts config.Options

var rootCmd = &cobra.Command{
	Use:           "socmap",
	Short:         "SoC memory map and reset sequencer tool",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	flag := rootCmd.PersistentFlags()
	flag.StringVar(&opts.Board, "board", config.DefaultBoard, "target board")
	flag.Float64Var(&opts.SysClkFreq, "sys-clk-freq", 0, "system clock frequency in Hz (board default if 0)")
	flag.UintVar(&opts.CounterBits, "por-bits", 0, "width of the power-on reset counter (16 if 0)")
	flag.StringVar(&opts.Synchronizer, "sync", "behavioral", "reset synchronizer: behavioral or dffs")
}

func main() {
	log.SetFlags(0)
	log.SetPrefix("socmap: ")
	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
