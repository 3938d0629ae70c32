package cli

import (
	"fmt"
	"io"
	"strings"
)

// FlagCompletion describes a flag for shell completion generation.
type FlagCompletion struct {
	Name      string   // flag name without the leading dash
	Help      string   // description text
	Values    []string // suggested values (nil = boolean or free-form)
	IsCommand bool     // values come from the command registry
}

// flagRegistry lists every flag offered by the completion scripts.
var flagRegistry = []FlagCompletion{
	{Name: "cmd", Help: "Command to invoke", IsCommand: true},
	{Name: "args", Help: "JSON object with the command arguments", Values: []string{"'{}'"}},
	{Name: "repl", Help: "Start the interactive shell"},
	{Name: "tui", Help: "Start the interactive dashboard"},
	{Name: "chunk-size", Help: "Monte Carlo samples per chunk", Values: []string{"100000", "1000000", "10000000"}},
	{Name: "workers", Help: "Monte Carlo worker pool size"},
	{Name: "seed", Help: "Monte Carlo root seed"},
	{Name: "progress-steps", Help: "Number of progress events per task"},
	{Name: "progress-interval", Help: "Delay between progress events", Values: []string{"100ms", "500ms", "1s"}},
	{Name: "event-buffer", Help: "Event buffer per listener"},
	{Name: "timeout", Help: "Maximum duration of a one-shot invocation", Values: []string{"30s", "1m", "5m"}},
	{Name: "log-level", Help: "Log level", Values: []string{"debug", "info", "warn", "error"}},
	{Name: "theme", Help: "Color theme", Values: []string{"dark", "light", "none"}},
	{Name: "log-format", Help: "Log output format", Values: []string{"console", "json"}},
	{Name: "no-color", Help: "Disable colored output"},
	{Name: "quiet", Help: "Print raw JSON results only"},
	{Name: "metrics", Help: "Print Prometheus metrics on exit"},
	{Name: "trace", Help: "Export OpenTelemetry spans to stdout"},
	{Name: "completion", Help: "Generate a completion script", Values: []string{"bash", "zsh", "fish"}},
	{Name: "version", Help: "Show version information"},
	{Name: "help", Help: "Show help message"},
}

// SupportedShells lists the shells accepted by GenerateCompletion.
var SupportedShells = []string{"bash", "zsh", "fish"}

// GenerateCompletion writes a completion script for shell. commandNames
// are offered as values of -cmd.
func GenerateCompletion(out io.Writer, shell, programName string, commandNames []string) error {
	switch shell {
	case "bash":
		return generateBashCompletion(out, programName, commandNames)
	case "zsh":
		return generateZshCompletion(out, programName, commandNames)
	case "fish":
		return generateFishCompletion(out, programName, commandNames)
	}
	return fmt.Errorf("unsupported shell: %s (accepted values: %s)", shell, strings.Join(SupportedShells, ", "))
}

func flagValues(f FlagCompletion, commandNames []string) []string {
	if f.IsCommand {
		return commandNames
	}
	return f.Values
}

func funcName(programName string) string {
	return "_" + strings.NewReplacer("-", "_", ".", "_").Replace(programName)
}

func generateBashCompletion(out io.Writer, programName string, commandNames []string) error {
	var opts []string
	var cases strings.Builder
	for _, f := range flagRegistry {
		opts = append(opts, "-"+f.Name)
		if vals := flagValues(f, commandNames); len(vals) > 0 {
			fmt.Fprintf(&cases, "        -%s)\n            COMPREPLY=( $(compgen -W \"%s\" -- \"${cur}\") )\n            return 0\n            ;;\n",
				f.Name, strings.Join(vals, " "))
		}
	}

	fn := funcName(programName)
	_, err := fmt.Fprintf(out, `# Bash completion script for %[1]s
# Add this to your ~/.bashrc or ~/.bash_completion

%[2]s_completions() {
    local cur prev
    COMPREPLY=()
    cur="${COMP_WORDS[COMP_CWORD]}"
    prev="${COMP_WORDS[COMP_CWORD-1]}"

    case "${prev}" in
%[3]s    esac

    COMPREPLY=( $(compgen -W "%[4]s" -- "${cur}") )
    return 0
}

complete -F %[2]s_completions %[1]s
`, programName, fn, cases.String(), strings.Join(opts, " "))
	return err
}

func generateZshCompletion(out io.Writer, programName string, commandNames []string) error {
	var specs strings.Builder
	for _, f := range flagRegistry {
		help := strings.ReplaceAll(f.Help, "'", "")
		if vals := flagValues(f, commandNames); len(vals) > 0 {
			fmt.Fprintf(&specs, "    '-%s[%s]:%s:(%s)' \\\n", f.Name, help, f.Name, strings.Join(vals, " "))
		} else {
			fmt.Fprintf(&specs, "    '-%s[%s]' \\\n", f.Name, help)
		}
	}

	_, err := fmt.Fprintf(out, `#compdef %[1]s
# Zsh completion script for %[1]s
# Place this file in a directory of your $fpath as _%[1]s

%[2]s() {
    _arguments \
%[3]s    && return 0
}

%[2]s "$@"
`, programName, funcName(programName), specs.String())
	return err
}

func generateFishCompletion(out io.Writer, programName string, commandNames []string) error {
	var b strings.Builder
	fmt.Fprintf(&b, "# Fish completion script for %s\n\n", programName)
	for _, f := range flagRegistry {
		fmt.Fprintf(&b, "complete -c %s -o %s -d '%s'", programName, f.Name, strings.ReplaceAll(f.Help, "'", ""))
		if vals := flagValues(f, commandNames); len(vals) > 0 {
			fmt.Fprintf(&b, " -x -a '%s'", strings.ReplaceAll(strings.Join(vals, " "), "'", ""))
		}
		b.WriteByte('\n')
	}
	_, err := io.WriteString(out, b.String())
	return err
}
