// cx4trace drives a CX4 coprocessor against a raw PRG ROM image for a
// fixed number of master-clock cycles, printing every memory access
// the CX4 makes along the way. It exists to exercise cx4.Chip end to
// end (cache fill, DMA, register writes) without a full SNES host
// attached; no opcode decoder is wired in, so execution itself never
// advances beyond the first cache fill unless registers are poked via
// -poke.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/sneslab/cx4/clock"
	"github.com/sneslab/cx4/cx4"
	"github.com/sneslab/cx4/memory"
	"github.com/sneslab/cx4/notify"
)

var (
	romPath   = flag.String("rom", "", "path to a raw PRG ROM image")
	saveRam   = flag.Int("save_ram", 0x2000, "SaveRAM size in bytes (must be a power of two)")
	cycles    = flag.Uint64("cycles", 1_000_000, "master-clock cycles to advance")
	clockRate = flag.Float64("clock_rate", clock.Cx4Rate, "host master clock rate in Hz")
	strict    = flag.Bool("strict_board_mapping", false, "restrict PRG ROM mirroring to banks 00-3F/80-BF")
	pokes     = flag.String("poke", "", "comma-separated addr=value pairs applied before running, e.g. 0x7F49=0x00")
	quiet     = flag.Bool("quiet", false, "suppress per-access trace output")
)

func main() {
	flag.Parse()
	if *romPath == "" {
		log.Fatalf("Usage: %s -rom=<path> [-cycles=N] [-poke=addr=val,...]", os.Args[0])
	}

	data, err := os.ReadFile(*romPath)
	if err != nil {
		log.Fatalf("can't read %s: %v", *romPath, err)
	}
	rom, err := memory.NewROM(data)
	if err != nil {
		log.Fatalf("can't load ROM: %v", err)
	}
	ram, err := memory.NewSaveRAM(*saveRam)
	if err != nil {
		log.Fatalf("can't allocate SaveRAM: %v", err)
	}

	sink := notify.SinkFunc(func(addr uint32, val uint8, op notify.Operation) {
		if *quiet {
			return
		}
		fmt.Printf("%-11s addr=0x%06X val=0x%02X\n", op, addr, val)
	})

	chip, err := cx4.New(cx4.Config{
		HostMasterClockRate: *clockRate,
		StrictBoardMapping:  *strict,
		Notify:              sink,
	}, rom, ram)
	if err != nil {
		log.Fatalf("can't build CX4: %v", err)
	}

	if err := applyPokes(chip, *pokes); err != nil {
		log.Fatalf("bad -poke list: %v", err)
	}

	chip.Run(*cycles)

	if halt := chip.LastHaltReason(); halt != nil {
		fmt.Printf("halted: %v\n", halt)
	}
	fmt.Printf("final cycle count: %d  running=%v  busy=%v\n", chip.State.CycleCount, chip.IsRunning(), chip.IsBusy())
}

// applyPokes parses a comma-separated addr=value list and writes each
// pair through the chip's register window, in order.
func applyPokes(chip *cx4.Chip, spec string) error {
	if spec == "" {
		return nil
	}
	for _, pair := range strings.Split(spec, ",") {
		kv := strings.SplitN(pair, "=", 2)
		if len(kv) != 2 {
			return fmt.Errorf("malformed pair %q", pair)
		}
		addr, err := strconv.ParseUint(strings.TrimSpace(kv[0]), 0, 32)
		if err != nil {
			return fmt.Errorf("bad address %q: %w", kv[0], err)
		}
		val, err := strconv.ParseUint(strings.TrimSpace(kv[1]), 0, 8)
		if err != nil {
			return fmt.Errorf("bad value %q: %w", kv[1], err)
		}
		chip.Write(uint32(addr), uint8(val))
	}
	return nil
}
