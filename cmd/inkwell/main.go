// Command inkwell is the thin startup wiring around package editor:
// it parses flags, evaluates the user's config directory, optionally
// opens a file, and runs the draw/wait/handle loop. No real graphical
// backend ships with this module, so by default the loop runs against
// display.NullSink/NullSource — enough to smoke-test config evaluation
// without a GUI. Grounded on clarete-langlang's cmd/langlang/main.go
// (flag-based argument parsing, log for diagnostics).
package main

import (
	"flag"
	"log"
	"os"
	"path/filepath"

	"github.com/inkwell-editor/inkwell/editor"
	"github.com/inkwell-editor/inkwell/syntax/treesitter"
)

func main() {
	var (
		configDir     = flag.String("config", defaultConfigDir(), "Directory of *.lisp files to evaluate at startup")
		filePath      = flag.String("file", "", "Initial buffer to open")
		debugKeybind  = flag.Bool("debug-keybinding", false, "Enable DEBUG/KEYBINDING tracing")
		debugEvaluate = flag.Bool("debug-evaluate", false, "Enable DEBUG/EVALUATE tracing")
	)
	flag.Parse()

	e := editor.New(nil, nil)
	e.SetDebugKeybinding(*debugKeybind)
	e.SetDebugEvaluate(*debugEvaluate)

	if zig, err := treesitter.NewZigProvider(); err != nil {
		log.Printf("inkwell: zig syntax provider unavailable: %s", err)
	} else {
		e.Syntax.Register(zig)
	}

	if err := e.EvaluateConfigDir(*configDir); err != nil {
		log.Fatalf("inkwell: evaluating config %s: %s", *configDir, err)
	}

	if *filePath != "" {
		if _, err := e.OpenFile(*filePath); err != nil {
			log.Fatalf("inkwell: opening %s: %s", *filePath, err)
		}
	}

	if err := e.Run(); err != nil {
		log.Fatalf("inkwell: %s", err)
	}
}

func defaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".inkwell"
	}
	return filepath.Join(home, ".inkwell")
}
