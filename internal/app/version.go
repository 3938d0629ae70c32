package app

import (
	"fmt"
	"io"
	"runtime"
	"runtime/debug"
)

// Build information, overridden at link time:
//
//	go build -ldflags "-X github.com/FlyinPancake/tauri-presentation/internal/app.Version=v1.2.3"
var (
	Version   = "dev"
	Commit    = ""
	BuildDate = ""
)

// HasVersionFlag reports whether args request the version banner. It runs
// before flag parsing so that -version works alongside otherwise invalid
// flags.
func HasVersionFlag(args []string) bool {
	for _, arg := range args {
		switch arg {
		case "-version", "--version", "-V":
			return true
		}
	}
	return false
}

// PrintVersion writes the version banner to out.
func PrintVersion(out io.Writer) {
	commit := Commit
	if commit == "" {
		if info, ok := debug.ReadBuildInfo(); ok {
			for _, s := range info.Settings {
				if s.Key == "vcs.revision" {
					commit = s.Value
				}
			}
		}
	}
	fmt.Fprintf(out, "tauri-presentation %s\n", Version)
	if commit != "" {
		fmt.Fprintf(out, "  commit: %s\n", commit)
	}
	if BuildDate != "" {
		fmt.Fprintf(out, "  built:  %s\n", BuildDate)
	}
	fmt.Fprintf(out, "  go:     %s %s/%s\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)
}
