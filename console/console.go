// Package console implements an interactive inspection REPL over an
// assembled machine.Machine: path/find/checksum component-tree commands
// plus step/run/stop control of the attached SPARC core.
//
// Grounded stylistically on command/parser's prefix-matched command table
// (cmdList of {name, min, process}, matched by matchCommand's minimum-length
// prefix rule) and command/reader's liner-driven read loop, generalized from
// S/370's device-address commands to the component tree's dotted-path
// addressing and the dyntrans core's step/run/stop control.
package console

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/peterh/liner"

	"github.com/rcornwell/dyntrans-sparc/bus"
	"github.com/rcornwell/dyntrans-sparc/component"
	"github.com/rcornwell/dyntrans-sparc/machine"
	"github.com/rcornwell/dyntrans-sparc/util/hex"
)

type cmd struct {
	name    string
	min     int // minimum prefix length that uniquely selects this command
	process func(con *Console, args []string) (quit bool, err error)
}

var cmdList = []cmd{
	{name: "path", min: 1, process: cmdPath},
	{name: "find", min: 1, process: cmdFind},
	{name: "checksum", min: 1, process: cmdChecksum},
	{name: "step", min: 2, process: cmdStep},
	{name: "run", min: 2, process: cmdRun},
	{name: "stop", min: 2, process: cmdStop},
	{name: "registers", min: 3, process: cmdRegisters},
	{name: "examine", min: 2, process: cmdExamine},
	{name: "quit", min: 1, process: cmdQuit},
	{name: "help", min: 1, process: cmdHelp},
}

// matchCommand reports whether name is a prefix of match.name at least
// match.min characters long, same rule as parser.matchCommand.
func matchCommand(match cmd, name string) bool {
	if len(name) > len(match.name) || len(name) < match.min {
		return false
	}
	return strings.HasPrefix(match.name, name)
}

func matchList(name string) []cmd {
	if name == "" {
		return nil
	}
	var out []cmd
	for _, c := range cmdList {
		if matchCommand(c, name) {
			out = append(out, c)
		}
	}
	return out
}

// Console is one interactive inspection session over an assembled machine.
type Console struct {
	Machine *Machine
	out     io.Writer
}

// Machine is an alias for machine.Machine, the assembled system the console
// drives.
type Machine = machine.Machine

// New returns a console bound to m, writing command output to out.
func New(m *Machine, out io.Writer) *Console {
	return &Console{Machine: m, out: out}
}

// ProcessLine executes one command line, returning quit=true for the quit
// command (the read loop should stop prompting) and any processing error.
func (con *Console) ProcessLine(line string) (bool, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false, nil
	}
	name, args := fields[0], fields[1:]

	match := matchList(name)
	switch len(match) {
	case 0:
		return false, errors.New("unknown command: " + name)
	case 1:
		return match[0].process(con, args)
	default:
		return false, errors.New("ambiguous command: " + name)
	}
}

func cmdHelp(con *Console, _ []string) (bool, error) {
	fmt.Fprintln(con.out, "commands: path, find <substr>, checksum [path], step [n], run, stop, registers, examine <addr> <count>, quit")
	return false, nil
}

func cmdQuit(_ *Console, _ []string) (bool, error) {
	return true, nil
}

// cmdPath prints the dotted path of every component in the tree, in
// traversal order — the console's equivalent of parser.show's "show all".
func cmdPath(con *Console, _ []string) (bool, error) {
	var walk func(c *component.Component)
	walk = func(c *component.Component) {
		fmt.Fprintln(con.out, c.GeneratePath())
		for _, ch := range c.Children() {
			walk(ch)
		}
	}
	walk(con.Machine.Root)
	return false, nil
}

// cmdFind reports every component path matching the given substring,
// mirroring component.Component.FindPathByPartialMatch.
func cmdFind(con *Console, args []string) (bool, error) {
	if len(args) != 1 {
		return false, errors.New("find requires exactly one substring argument")
	}
	matches := con.Machine.Root.FindPathByPartialMatch(args[0])
	sort.Strings(matches)
	for _, m := range matches {
		fmt.Fprintln(con.out, m)
	}
	return false, nil
}

// cmdChecksum prints the FNV-1a checksum of the whole tree, or of the
// component at the given path.
func cmdChecksum(con *Console, args []string) (bool, error) {
	target := con.Machine.Root
	if len(args) == 1 {
		var ok bool
		target, ok = con.Machine.Root.LookupPath(args[0])
		if !ok {
			return false, fmt.Errorf("no such component: %s", args[0])
		}
	}
	fmt.Fprintf(con.out, "%#016x\n", target.Checksum())
	return false, nil
}

// cmdStep single-steps the CPU n instructions (default 1).
func cmdStep(con *Console, args []string) (bool, error) {
	n := 1
	if len(args) == 1 {
		v, err := strconv.Atoi(args[0])
		if err != nil || v <= 0 {
			return false, errors.New("step count must be a positive integer")
		}
		n = v
	}
	con.Machine.CPU.RunInstructions(n)
	fmt.Fprintf(con.out, "pc=%#x n_translated_instrs=%d\n", con.Machine.CPU.PC, con.Machine.CPU.NTranslatedInstrs)
	return false, nil
}

// cmdRun lets the CPU free-run until a RequestStop (from a fault handler,
// or from another console invocation of the stop command on a concurrently
// driven CPU).
func cmdRun(con *Console, _ []string) (bool, error) {
	con.Machine.CPU.Run()
	fmt.Fprintf(con.out, "stopped at pc=%#x n_translated_instrs=%d\n", con.Machine.CPU.PC, con.Machine.CPU.NTranslatedInstrs)
	return false, nil
}

// cmdStop requests that a concurrently running CPU.Run stop at its next
// poll point.
func cmdStop(con *Console, _ []string) (bool, error) {
	con.Machine.CPU.RequestStop()
	return false, nil
}

// cmdRegisters dumps the visible window's integer registers and PC.
func cmdRegisters(con *Console, _ []string) (bool, error) {
	cpu := con.Machine.CPU
	fmt.Fprintf(con.out, "pc=%#x ccr=%#02x y=%#x\n", cpu.PC, cpu.CCR, cpu.Y)
	for i := 0; i < 32; i += 4 {
		var line strings.Builder
		fmt.Fprintf(&line, "r%-2d ", i)
		hex.FormatQuad(&line, cpu.R[i:i+4])
		fmt.Fprintln(con.out, line.String())
	}
	return false, nil
}

// findRAMBus locates the first component implementing bus.AddressDataBus
// in root's subtree (root included), skipping the no-op bus.Mainbus, for
// the examine command's raw memory dump — the console's own path to guest
// memory, independent of whatever bus the CPU itself was wired to by
// machine.NewDefault/FromConfig.
func findRAMBus(root *component.Component) bus.AddressDataBus {
	if impl, ok := root.Impl().(bus.AddressDataBus); ok {
		if _, noop := impl.(*bus.Mainbus); !noop {
			return impl
		}
	}
	for _, ch := range root.Children() {
		if b := findRAMBus(ch); b != nil {
			return b
		}
	}
	return nil
}

// cmdExamine dumps count bytes of guest memory starting at addr, both
// given in hex, via the component tree's own AddressDataBus rather than
// the CPU's fetch path — so it works even while the CPU is stopped at a
// fault with no further instructions to step.
func cmdExamine(con *Console, args []string) (bool, error) {
	if len(args) != 2 {
		return false, errors.New("examine requires <addr> <count>, both hex")
	}
	addr, err := strconv.ParseUint(strings.TrimPrefix(args[0], "0x"), 16, 64)
	if err != nil {
		return false, fmt.Errorf("invalid address %q: %w", args[0], err)
	}
	count, err := strconv.ParseUint(strings.TrimPrefix(args[1], "0x"), 16, 32)
	if err != nil {
		return false, fmt.Errorf("invalid count %q: %w", args[1], err)
	}

	memBus := findRAMBus(con.Machine.Root)
	if memBus == nil {
		return false, errors.New("no memory-backed component found in the tree")
	}

	data := make([]byte, 0, count)
	for i := uint64(0); i < count; i++ {
		memBus.AddressSelect(addr + i)
		b, ok := memBus.ReadData8()
		if !ok {
			return false, fmt.Errorf("read fault at %#x", addr+i)
		}
		data = append(data, b)
	}

	var out strings.Builder
	hex.FormatBytes(&out, true, data)
	fmt.Fprintf(con.out, "%#x: %s\n", addr, out.String())
	return false, nil
}

// Completer returns line completions for the given prefix, for use with
// liner.SetCompleter — matched the way command/reader.ConsoleReader wires
// parser.CompleteCmd, but reduced to top-level command-name completion
// since this console's commands take free-form arguments rather than
// device-option grammars.
func Completer(line string) []string {
	var out []string
	for _, c := range cmdList {
		if strings.HasPrefix(c.name, line) {
			out = append(out, c.name)
		}
	}
	return out
}

// Run drives an interactive liner-backed read/eval loop against con until
// the quit command is given, the user aborts with Ctrl-D, or line reads
// otherwise fail. Grounded on command/reader.ConsoleReader's
// liner.NewLiner/SetCtrlCAborts/SetCompleter/Prompt/AppendHistory loop
// shape, adapted from its core.Core target to a console.Console one.
func Run(con *Console, prompt string) error {
	line := liner.NewLiner()
	defer line.Close()

	line.SetCtrlCAborts(true)
	line.SetCompleter(func(in string) []string { return Completer(in) })

	for {
		text, err := line.Prompt(prompt)
		if err != nil {
			if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}

		trimmed := strings.TrimSpace(text)
		if trimmed != "" {
			line.AppendHistory(trimmed)
		}

		quit, procErr := con.ProcessLine(trimmed)
		if procErr != nil {
			fmt.Fprintln(con.out, "error:", procErr)
		}
		if quit {
			return nil
		}
	}
}
