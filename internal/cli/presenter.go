package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/FlyinPancake/tauri-presentation/internal/commands"
	"github.com/FlyinPancake/tauri-presentation/internal/format"
	"github.com/FlyinPancake/tauri-presentation/internal/montecarlo"
	"github.com/FlyinPancake/tauri-presentation/internal/sieve"
	"github.com/FlyinPancake/tauri-presentation/internal/ui"
)

// Presenter prints command results. In quiet mode every result is written
// as a single line of JSON.
type Presenter struct {
	Out   io.Writer
	Quiet bool
}

// Present prints result.
func (p Presenter) Present(result any) error {
	if p.Quiet {
		return json.NewEncoder(p.Out).Encode(result)
	}

	switch r := result.(type) {
	case montecarlo.SamplingResult:
		p.presentSampling(r)
	case sieve.Result:
		p.presentSieve(r)
	case commands.SystemInfo:
		p.presentSystemInfo(r)
	case string:
		fmt.Fprintf(p.Out, "%s\n", ui.Paint(ui.ColorGreen(), r))
	case int32:
		fmt.Fprintf(p.Out, "Result: %s\n", ui.Paint(ui.ColorGreen(), fmt.Sprint(r)))
	default:
		data, err := json.MarshalIndent(r, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintf(p.Out, "%s\n", data)
	}
	return nil
}

func (p Presenter) presentSampling(r montecarlo.SamplingResult) {
	fmt.Fprintf(p.Out, "%sMonte Carlo π estimate%s\n", ui.ColorBold(), ui.ColorReset())
	fmt.Fprintf(p.Out, "  Estimate:    %s\n", ui.Paint(ui.ColorGreen(), fmt.Sprintf("%.8f", r.Estimate)))
	fmt.Fprintf(p.Out, "  Error:       %s\n", ui.Paint(ui.ColorYellow(), format.FormatScientific(r.Error)))
	fmt.Fprintf(p.Out, "  Iterations:  %s\n", format.FormatThousands(r.Iterations))
	fmt.Fprintf(p.Out, "  Elapsed:     %s (%s)\n",
		ui.Paint(ui.ColorCyan(), format.FormatMillis(r.ElapsedMs)),
		format.Throughput(r.Iterations, r.ElapsedMs))
}

func (p Presenter) presentSieve(r sieve.Result) {
	fmt.Fprintf(p.Out, "%sPrime sieve%s\n", ui.ColorBold(), ui.ColorReset())
	fmt.Fprintf(p.Out, "  Primes ≤ %s: %s\n",
		format.FormatThousands(uint64(r.Limit)),
		ui.Paint(ui.ColorGreen(), format.FormatThousands(r.Count)))
	fmt.Fprintf(p.Out, "  Elapsed:     %s (%s)\n",
		ui.Paint(ui.ColorCyan(), format.FormatMillis(r.ElapsedMs)),
		format.Throughput(uint64(r.Limit), r.ElapsedMs))
}

func (p Presenter) presentSystemInfo(r commands.SystemInfo) {
	fmt.Fprintf(p.Out, "%sSystem information%s\n", ui.ColorBold(), ui.ColorReset())
	fmt.Fprintf(p.Out, "  OS:          %s\n", r.OS)
	fmt.Fprintf(p.Out, "  Arch:        %s\n", r.Arch)
	fmt.Fprintf(p.Out, "  Hostname:    %s\n", r.Hostname)
	fmt.Fprintf(p.Out, "  Timestamp:   %d (%s)\n", r.Timestamp,
		time.Unix(int64(r.Timestamp), 0).UTC().Format(time.RFC3339))
	fmt.Fprintf(p.Out, "  CPUs:        %d\n", r.NumCPU)
	fmt.Fprintf(p.Out, "  CPU usage:   %.1f%%\n", r.CPUPercent)
	fmt.Fprintf(p.Out, "  Memory:      %.1f%%\n", r.MemPercent)
}
