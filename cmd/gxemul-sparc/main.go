// Command gxemul-sparc boots a single SPARC v8/v9 core over flat RAM,
// either from a textual config file or a built-in default layout, and
// drops into an interactive inspection console.
//
// Grounded on the teacher's root main.go: getopt/v2 flag parsing, a
// util/logger-backed slog.Default, and a config-file-or-default machine
// assembly, generalized from S/370's telnet/channel/device startup
// sequence to a single in-process CPU+RAM machine with no network
// front end.
package main

import (
	"log/slog"
	"os"

	getopt "github.com/pborman/getopt/v2"

	"github.com/rcornwell/dyntrans-sparc/console"
	"github.com/rcornwell/dyntrans-sparc/machine"
	logger "github.com/rcornwell/dyntrans-sparc/util/logger"
)

func main() {
	optConfig := getopt.StringLong("config", 'c', "", "Configuration file (default: built-in single-core/64KiB RAM layout)")
	optLogFile := getopt.StringLong("log", 'l', "", "Log file")
	optRAM := getopt.Uint32Long("ram", 'r', 65536, "RAM size in bytes, when --config is not given")
	optDebug := getopt.BoolLong("debug", 'd', "Enable debug-level logging to stderr")
	optHelp := getopt.BoolLong("help", 'h', "Help")
	getopt.Parse()

	if *optHelp {
		getopt.Usage()
		os.Exit(0)
	}

	var file *os.File
	if *optLogFile != "" {
		f, err := os.Create(*optLogFile)
		if err != nil {
			slog.Error("creating log file", "path", *optLogFile, "err", err)
			os.Exit(1)
		}
		file = f
	}
	programLevel := new(slog.LevelVar)
	if *optDebug {
		programLevel.Set(slog.LevelDebug)
	} else {
		programLevel.Set(slog.LevelInfo)
	}
	debug := *optDebug
	log := slog.New(logger.NewHandler(file, &slog.HandlerOptions{Level: programLevel, AddSource: false}, &debug))
	slog.SetDefault(log)

	log.Info("gxemul-sparc started")

	var m *machine.Machine
	if *optConfig != "" {
		root, err := machine.LoadConfigFile(*optConfig)
		if err != nil {
			log.Error("loading configuration", "path", *optConfig, "err", err)
			os.Exit(1)
		}
		m, err = machine.FromConfig(root)
		if err != nil {
			log.Error("assembling machine from configuration", "err", err)
			os.Exit(1)
		}
	} else {
		var err error
		m, err = machine.NewDefault(*optRAM)
		if err != nil {
			log.Error("assembling default machine", "err", err)
			os.Exit(1)
		}
	}

	log.Info("machine assembled", "root", m.Root.GeneratePath(), "ram_bytes", *optRAM)

	con := console.New(m, os.Stdout)
	if err := console.Run(con, "sparc> "); err != nil {
		log.Error("console", "err", err)
		os.Exit(1)
	}

	log.Info("gxemul-sparc exiting")
}
