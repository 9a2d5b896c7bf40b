// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package board

import "github.com/db47h/socsim/soc"

// LiteX defaults for boards without dedicated memories.
const (
	integratedROMSize  = 128 * soc.KiB
	integratedSRAMSize = 8 * soc.KiB
)

func init() {
	upduino := Board{
		Name:           "upduino_v3",
		Ident:          "LiteX SoC on Upduino_v3",
		Clock:          Clock{Name: "clk12", Freq: 12e6},
		ValidatedFreqs: []float64{12e6},
		RequireFreq:    true,
		RAMSize:        128 * soc.KiB, // UP5K SPRAM
		Layout:         SingleSRAM,
		Flash:          Flash{Module: "W25Q32JV", Size: 4 * soc.MiB},
		BiosOffset:     0x20000,
		// iceprog writes the bitstream at 0x10000, up to the firmware.
		GatewareOffset: 0x10000,
		BitstreamSize:  0x10000,
	}
	register(&upduino)

	split := upduino
	split.Name = "upduino_v3_split"
	split.Layout = SplitSRAM
	register(&split)

	register(&Board{
		Name:          "sipeed_tang_primer_25k",
		Ident:         "LiteX SoC on Tang Primer 25K",
		Clock:         Clock{Name: "clk50", Freq: 50e6},
		PLL:           true,
		SysClkFreq:    50e6,
		RAMSize:       integratedSRAMSize,
		Layout:        SingleSRAM,
		ROMSize:       integratedROMSize,
		Flash:         Flash{Module: "W25Q64FV", Size: 8 * soc.MiB},
		FlashOptional: true,
	})

	// The SDRAM controller claims main_ram, the second half of the
	// integrated RAM is only used if it is left out.
	register(&Board{
		Name:       "sipeed_tang_nano_20k",
		Ident:      "LiteX SoC on Tang Nano 20K",
		Clock:      Clock{Name: "clk27", Freq: 27e6},
		PLL:        true,
		SysClkFreq: 48e6,
		RAMSize:    2 * integratedSRAMSize,
		Layout:     SplitSRAM,
		ROMSize:    integratedROMSize,
		Slaves: []soc.Region{
			{Name: soc.MainRAM, Origin: 0x40000000, Size: 8 * soc.MiB}, // M12L64322A
		},
		RGBLed: &soc.Region{Name: "rgb_led", Origin: 0x20000000, Size: 4},
	})
}
