package cli

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/FlyinPancake/tauri-presentation/internal/commands"
	"github.com/FlyinPancake/tauri-presentation/internal/format"
	"github.com/FlyinPancake/tauri-presentation/internal/sieve"
	"github.com/FlyinPancake/tauri-presentation/internal/ui"
)

// REPL is an interactive shell over the command registry.
type REPL struct {
	runner *Runner
	inv    Invoker
	in     io.Reader
	out    io.Writer
}

// NewREPL creates a REPL reading from stdin and writing to stdout.
func NewREPL(inv Invoker, src EventSource, opts Options) *REPL {
	return &REPL{
		runner: NewRunner(inv, src, opts, os.Stdout),
		inv:    inv,
		in:     os.Stdin,
		out:    os.Stdout,
	}
}

// SetInput sets a custom input reader (useful for testing).
func (r *REPL) SetInput(in io.Reader) {
	r.in = in
}

// SetOutput sets a custom output writer (useful for testing).
func (r *REPL) SetOutput(out io.Writer) {
	r.out = out
	r.runner.out = out
}

// Start reads and executes commands until exit, EOF or ctx cancellation.
func (r *REPL) Start(ctx context.Context) {
	r.printBanner()
	r.printHelp()
	fmt.Fprintln(r.out)

	reader := bufio.NewReader(r.in)
	for {
		if ctx.Err() != nil {
			return
		}
		fmt.Fprint(r.out, ui.ColorGreen()+"tauri> "+ui.ColorReset())

		input, err := reader.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			fmt.Fprintf(r.out, "%sRead error: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
			return
		}
		if line := strings.TrimSpace(input); line != "" {
			if !r.processCommand(ctx, line) {
				return
			}
		}
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(r.out, "\nGoodbye!")
			return
		}
	}
}

func (r *REPL) printBanner() {
	fmt.Fprintf(r.out, "\n%s╔════════════════════════════════════════════╗%s\n", ui.ColorCyan(), ui.ColorReset())
	fmt.Fprintf(r.out, "%s║%s   %sCompute backend - interactive mode%s       %s║%s\n",
		ui.ColorCyan(), ui.ColorReset(), ui.ColorBold(), ui.ColorReset(), ui.ColorCyan(), ui.ColorReset())
	fmt.Fprintf(r.out, "%s╚════════════════════════════════════════════╝%s\n\n", ui.ColorCyan(), ui.ColorReset())
}

func (r *REPL) printHelp() {
	fmt.Fprintf(r.out, "%sAvailable commands:%s\n", ui.ColorBold(), ui.ColorReset())
	for _, line := range [][2]string{
		{"pi <iterations>", "Estimate π with Monte Carlo sampling"},
		{"primes [-list] <limit>", "Count (or list) primes up to limit"},
		{"calc <a> <op> <b>", "Integer arithmetic (op: + - * / or add, subtract...)"},
		{"greet <name>", "Say hello"},
		{"sysinfo", "Show system information"},
		{"sleep <seconds>", "Run the async task"},
		{"progress", "Start a progress task and follow it"},
		{"list", "List the raw command names"},
		{"help", "Display this help"},
		{"exit", "Exit interactive mode"},
	} {
		fmt.Fprintf(r.out, "  %s%-22s%s %s\n", ui.ColorYellow(), line[0], ui.ColorReset(), ui.Paint(ui.ColorDim(), line[1]))
	}
}

// processCommand executes one input line. It returns false when the REPL
// should exit.
func (r *REPL) processCommand(ctx context.Context, input string) bool {
	parts := strings.Fields(input)
	cmd, args := strings.ToLower(parts[0]), parts[1:]

	switch cmd {
	case "pi":
		if n, ok := r.parseUint(args, "pi <iterations>", 64); ok {
			r.exec(ctx, commands.CalculatePi, commands.PiArgs{Iterations: n})
		}
	case "primes":
		r.cmdPrimes(ctx, args)
	case "calc":
		r.cmdCalc(ctx, args)
	case "greet":
		r.exec(ctx, commands.Greet, commands.GreetArgs{Name: strings.Join(args, " ")})
	case "sysinfo":
		r.exec(ctx, commands.GetSystemInfo, struct{}{})
	case "sleep":
		if n, ok := r.parseUint(args, "sleep <seconds>", 64); ok {
			r.exec(ctx, commands.AsyncTask, commands.AsyncTaskArgs{Duration: n})
		}
	case "progress":
		r.exec(ctx, commands.StartProgressTask, struct{}{})
	case "list", "ls":
		fmt.Fprintf(r.out, "%s\n", strings.Join(r.inv.Names(), "\n"))
	case "help", "h", "?":
		r.printHelp()
	case "exit", "quit", "q":
		fmt.Fprintf(r.out, "%sGoodbye!%s\n", ui.ColorGreen(), ui.ColorReset())
		return false
	default:
		fmt.Fprintf(r.out, "%sUnknown command: %s%s\n", ui.ColorRed(), cmd, ui.ColorReset())
		fmt.Fprintf(r.out, "Type %shelp%s to see available commands.\n", ui.ColorYellow(), ui.ColorReset())
	}
	return true
}

// MaxListedPrimesLimit bounds "primes -list" so the listing stays readable.
const MaxListedPrimesLimit = 100_000

func (r *REPL) cmdPrimes(ctx context.Context, args []string) {
	const usage = "primes [-list] <limit>"
	if len(args) == 0 || args[0] != "-list" {
		if n, ok := r.parseUint(args, usage, 32); ok {
			r.exec(ctx, commands.CalculatePrimes, commands.PrimesArgs{Limit: uint32(n)})
		}
		return
	}
	n, ok := r.parseUint(args[1:], usage, 32)
	if !ok {
		return
	}
	if n > MaxListedPrimesLimit {
		fmt.Fprintf(r.out, "%sLimit too large to list (max %s)%s\n",
			ui.ColorRed(), format.FormatThousands(MaxListedPrimesLimit), ui.ColorReset())
		return
	}
	primes := sieve.Primes(uint32(n))
	words := make([]string, len(primes))
	for i, p := range primes {
		words[i] = strconv.FormatUint(uint64(p), 10)
	}
	fmt.Fprintf(r.out, "%s%d primes ≤ %d:%s %s\n\n", ui.ColorBold(), len(primes), n, ui.ColorReset(), strings.Join(words, " "))
}

var operatorNames = map[string]commands.Operation{
	"+": commands.Add, "-": commands.Subtract, "*": commands.Multiply, "x": commands.Multiply, "/": commands.Divide,
}

func (r *REPL) cmdCalc(ctx context.Context, args []string) {
	if len(args) != 3 {
		fmt.Fprintf(r.out, "%sUsage: calc <a> <op> <b>%s\n", ui.ColorRed(), ui.ColorReset())
		return
	}
	a, errA := strconv.ParseInt(args[0], 10, 32)
	b, errB := strconv.ParseInt(args[2], 10, 32)
	if errA != nil || errB != nil {
		fmt.Fprintf(r.out, "%sOperands must be 32-bit integers%s\n", ui.ColorRed(), ui.ColorReset())
		return
	}
	op, ok := operatorNames[args[1]]
	if !ok {
		op = commands.Operation(strings.ToLower(args[1]))
	}
	r.exec(ctx, commands.PerformCalculation, commands.CalculationArgs{A: int32(a), B: int32(b), Operation: op})
}

func (r *REPL) parseUint(args []string, usage string, bits int) (uint64, bool) {
	if len(args) != 1 {
		fmt.Fprintf(r.out, "%sUsage: %s%s\n", ui.ColorRed(), usage, ui.ColorReset())
		return 0, false
	}
	n, err := strconv.ParseUint(strings.ReplaceAll(args[0], "_", ""), 10, bits)
	if err != nil {
		fmt.Fprintf(r.out, "%sInvalid value: %s%s\n", ui.ColorRed(), args[0], ui.ColorReset())
		return 0, false
	}
	return n, true
}

// exec runs a command; failures are printed and never end the session.
func (r *REPL) exec(ctx context.Context, name string, args any) {
	raw, err := json.Marshal(args)
	if err != nil {
		fmt.Fprintf(r.out, "%sError: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
		return
	}
	r.runner.Run(ctx, name, raw)
	fmt.Fprintln(r.out)
}
