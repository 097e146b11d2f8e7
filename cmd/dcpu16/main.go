// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"context"
	"encoding/binary"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/ezrec/dcpu16/cpu"
	"github.com/ezrec/dcpu16/emulator"
	romio "github.com/ezrec/dcpu16/io"
)

// defines collects repeated -D NAME=EXPR flags.
type defines [][2]string

func (defs *defines) String() string {
	var text []string
	for _, def := range *defs {
		text = append(text, def[0]+"="+def[1])
	}
	return strings.Join(text, ",")
}

func (defs *defines) Set(value string) error {
	name, expr, ok := strings.Cut(value, "=")
	if !ok || len(name) == 0 {
		return fmt.Errorf("expected NAME=EXPR, got %q", value)
	}
	*defs = append(*defs, [2]string{name, expr})
	return nil
}

// splitPath returns a file system for the directory of path, and the name
// of path within it.
func splitPath(path string) (dir romio.DirFS, name string) {
	return romio.DirFS(filepath.Dir(path)), filepath.Base(path)
}

func main() {
	var compile string
	var binfile string
	var output string
	var bigEndian bool
	var run bool
	var steps int
	var predefine defines
	var verbose bool
	var dump bool

	flag.StringVar(&compile, "c", "", ".dasm file to assemble")
	flag.StringVar(&binfile, "b", "", ".bin image to load")
	flag.StringVar(&output, "o", "", ".bin image to save")
	flag.BoolVar(&bigEndian, "be", false, "Big-endian images")
	flag.BoolVar(&run, "r", false, "Run the program")
	flag.IntVar(&steps, "n", 0, "Run at most this many steps (0 = until halt or interrupt)")
	flag.Var(&predefine, "D", "Predefine NAME=EXPR (repeatable)")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")
	flag.BoolVar(&dump, "dump", false, "Dump registers and memory on exit")

	flag.Parse()

	if flag.NArg() != 0 {
		log.Fatalf("%v: Unknown arguments: %v", os.Args[0], flag.Args())
	}

	if (len(compile) == 0) == (len(binfile) == 0) {
		log.Fatalf("%v: exactly one of -c or -b is required", os.Args[0])
	}

	var order binary.ByteOrder = binary.LittleEndian
	if bigEndian {
		order = binary.BigEndian
	}

	var observer cpu.Observer
	if verbose {
		observer = &logObserver{}
	}

	emu := emulator.NewEmulator(observer)
	emu.Verbose = verbose
	for _, def := range predefine {
		emu.Predefine(def[0], def[1])
	}

	var words []cpu.Word

	// Assemble a new program.
	if len(compile) != 0 {
		inf, err := os.Open(compile)
		if err != nil {
			log.Fatalf("%v: %v", compile, err)
		}
		defer inf.Close()

		err = emu.Assemble(inf, compile)
		if err != nil {
			log.Fatal(err)
		}
		words = emu.Cpu.Ram()[:emu.Program.Size]
	}

	// Load a binary image.
	if len(binfile) != 0 {
		dir, name := splitPath(binfile)
		rom, err := romio.Load(dir, name, order)
		if err != nil {
			log.Fatalf("%v: %v", binfile, err)
		}
		words = rom.Data

		err = emu.Load(words)
		if err != nil {
			log.Fatalf("%v: %v", binfile, err)
		}
		err = emu.Reset()
		if err != nil {
			log.Fatal(err)
		}
	}

	if len(output) != 0 {
		dir, name := splitPath(output)
		err := romio.Save(dir, name, &romio.Rom{Order: order, Data: words})
		if err != nil {
			log.Fatalf("%v: %v", output, err)
		}
	}

	if run {
		if steps > 0 {
			for range steps {
				halted, err := emu.Step()
				if err != nil {
					log.Fatal(err)
				}
				if halted {
					break
				}
			}
		} else {
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
			err := emu.Run(ctx)
			stop()
			if err != nil && ctx.Err() == nil {
				log.Fatal(err)
			}
		}
	}

	if dump {
		fmt.Println(dumpRegisters(emu.Cpu))
		fmt.Println(dumpMemory(emu.Cpu))
	}
}
