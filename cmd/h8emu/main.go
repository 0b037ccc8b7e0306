// Command h8emu runs ROM images for the NTR-027, NTR-031 and NTR-032
// products on the emulated H8/300H-tiny core.
package main

import (
	"fmt"
	"hash/crc32"
	"os"
	"strings"

	"github.com/spf13/cobra"

	core "example.com/h8-tiny/core_engine"
	"example.com/h8-tiny/core_engine/devices"
	"example.com/h8-tiny/frontend"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "h8emu",
		Short: "H8/300H-tiny emulator for the NTR-027/031/032 products",
	}

	var systemName string
	var headless bool
	var scale int
	var frames int
	var quiet bool
	var arenaSize int
	var irListen string
	var irConnect string

	runCmd := &cobra.Command{
		Use:   "run <rom>",
		Short: "Load a ROM image and run it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rom, cleanup, err := loadROM(args[0])
			if err != nil {
				return err
			}
			defer cleanup()

			s := core.NewSystem()
			if quiet {
				s.SetLogger(devices.NopLogger)
			}
			if arenaSize > 0 {
				s.SetAllocator(core.NewArena(arenaSize))
			}

			id, err := resolveSystem(systemName, rom)
			if err != nil {
				return err
			}
			if err := s.SystemInit(id); err != nil {
				return err
			}
			if !s.Preset().MatchesROM(crc32.ChecksumIEEE(rom)) {
				fmt.Fprintf(os.Stderr, "warning: ROM checksum %08x not in the %s list\n",
					crc32.ChecksumIEEE(rom), s.Preset().Title)
			}

			s.Write(rom, 0, true)
			s.Init()
			s.SetRTCCurrent(0)

			var link *frontend.NetLink
			switch {
			case irListen != "":
				link, err = frontend.ListenIR(irListen)
			case irConnect != "":
				link, err = frontend.DialIR(irConnect)
			}
			if err != nil {
				return err
			}
			if link != nil {
				defer link.Close()
				s.SetIRLink(link)
			}

			display := frontend.New(frontend.Config{
				System:    s,
				Scale:     scale,
				MaxFrames: frames,
			}, headless)
			return display.Run()
		},
	}
	runCmd.Flags().StringVar(&systemName, "system", "", "System preset: ntr-027, ntr-031, ntr-032 (default: detect by checksum)")
	runCmd.Flags().BoolVar(&headless, "headless", false, "Run without a window")
	runCmd.Flags().IntVar(&scale, "scale", 4, "Window pixel scale")
	runCmd.Flags().IntVar(&frames, "frames", 0, "Frame limit in headless mode (0 = unlimited)")
	runCmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Silence emulator logging")
	runCmd.Flags().IntVar(&arenaSize, "arena", 0, "Allocate device buffers from a fixed arena of this many bytes")
	runCmd.Flags().StringVar(&irListen, "ir-listen", "", "Serve the infrared link on this TCP address")
	runCmd.Flags().StringVar(&irConnect, "ir-connect", "", "Connect the infrared link to this TCP address")

	infoCmd := &cobra.Command{
		Use:   "info <rom>",
		Short: "Report a ROM image's checksum and matching preset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rom, cleanup, err := loadROM(args[0])
			if err != nil {
				return err
			}
			defer cleanup()

			crc := crc32.ChecksumIEEE(rom)
			fmt.Printf("size:     %d bytes\n", len(rom))
			fmt.Printf("crc32:    %08x\n", crc)
			if len(rom) >= 2 {
				fmt.Printf("entry:    %04x\n", uint16(rom[0])<<8|uint16(rom[1]))
			}
			if p := core.PresetForROM(crc); p != nil {
				fmt.Printf("system:   %s\n", p.Title)
			} else {
				fmt.Printf("system:   unknown\n")
			}
			return nil
		},
	}

	var disasmStart uint32
	var disasmCount int

	disasmCmd := &cobra.Command{
		Use:   "disasm <rom>",
		Short: "Disassemble part of a ROM image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rom, cleanup, err := loadROM(args[0])
			if err != nil {
				return err
			}
			defer cleanup()

			s := core.NewSystem()
			s.SetLogger(devices.NopLogger)
			s.Write(rom, 0, true)

			addr := disasmStart &^ 1
			if disasmStart == 0 && len(rom) >= 2 {
				// Default to the program entry point.
				addr = uint32(rom[0])<<8 | uint32(rom[1])
			}
			for i := 0; i < disasmCount && addr < 0x10000; i++ {
				text, n := s.Disassemble(addr)
				fmt.Printf("%04x:  %s\n", addr, text)
				addr += n
			}
			return nil
		},
	}
	disasmCmd.Flags().Uint32Var(&disasmStart, "start", 0, "Start address (default: the reset vector)")
	disasmCmd.Flags().IntVar(&disasmCount, "count", 32, "Number of instructions to list")

	rootCmd.AddCommand(runCmd, infoCmd, disasmCmd)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// resolveSystem picks the preset from the flag, falling back to checksum
// detection.
func resolveSystem(name string, rom []byte) (core.SystemID, error) {
	switch strings.ToLower(name) {
	case "ntr-027", "ntr027":
		return core.SystemNTR027, nil
	case "ntr-031", "ntr031":
		return core.SystemNTR031, nil
	case "ntr-032", "ntr032":
		return core.SystemNTR032, nil
	case "":
		if p := core.PresetForROM(crc32.ChecksumIEEE(rom)); p != nil {
			return p.System, nil
		}
		return core.SystemInvalid, fmt.Errorf("cannot detect system from ROM checksum; pass --system")
	}
	return core.SystemInvalid, fmt.Errorf("unknown system %q", name)
}
