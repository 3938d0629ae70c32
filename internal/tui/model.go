// Package tui implements the interactive dashboard: π estimation and prime
// counting on demand, a live view of progress tasks fed by the event bus,
// and system load sparklines.
package tui

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	barpkg "github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/FlyinPancake/tauri-presentation/internal/commands"
	apperrors "github.com/FlyinPancake/tauri-presentation/internal/errors"
	"github.com/FlyinPancake/tauri-presentation/internal/events"
	"github.com/FlyinPancake/tauri-presentation/internal/format"
	"github.com/FlyinPancake/tauri-presentation/internal/montecarlo"
	"github.com/FlyinPancake/tauri-presentation/internal/sieve"
	"github.com/FlyinPancake/tauri-presentation/internal/sysmon"
)

// Presets offered by the dashboard, cycled with the i and l keys.
var (
	IterationPresets = []uint64{10_000_000, 50_000_000, 100_000_000, 500_000_000, 1_000_000_000, 5_000_000_000}
	LimitPresets     = []uint32{1_000_000, 5_000_000, 10_000_000, 20_000_000}
)

const (
	tickInterval  = time.Second
	historyLength = 60
	maxLogLines   = 6
	minWidth      = 40
)

// Invoker executes named commands. *commands.Registry implements it.
type Invoker interface {
	Invoke(ctx context.Context, name string, args json.RawMessage) (any, error)
}

// EventSource hands out event subscriptions. *events.Bus implements it.
type EventSource interface {
	Subscribe(buffer int) *events.Subscription
}

// taskView is the displayed state of the latest progress task.
type taskView struct {
	id      string
	current uint32
	total   uint32
	message string
	done    bool
}

// Model is the root bubbletea model of the dashboard.
type Model struct {
	ctx    context.Context
	inv    Invoker
	keymap KeyMap

	iterIdx  int
	limitIdx int

	busy  map[string]bool
	pi    *montecarlo.SamplingResult
	sieve *sieve.Result
	task  *taskView
	logs  []string

	cpu *history
	mem *history
	bar barpkg.Model

	width    int
	version  string
	exitCode int
	sample   func() sysmon.Stats
}

// NewModel creates a dashboard model invoking commands on inv.
func NewModel(ctx context.Context, inv Invoker, version string) Model {
	return Model{
		ctx:      ctx,
		inv:      inv,
		keymap:   DefaultKeyMap(),
		iterIdx:  0,
		limitIdx: 2,
		busy:     make(map[string]bool),
		cpu:      newHistory(historyLength),
		mem:      newHistory(historyLength),
		bar:      barpkg.New(barpkg.WithSolidFill(progressBarColor), barpkg.WithoutPercentage(), barpkg.WithWidth(30)),
		width:    80,
		version:  version,
		exitCode: apperrors.ExitSuccess,
		sample:   sysmon.Sample,
	}
}

// Init starts periodic sampling and the cancellation watcher.
func (m Model) Init() tea.Cmd {
	return tea.Batch(tickCmd(), sampleSysStatsCmd(m.sample), watchContextCmd(m.ctx))
}

// Update handles all incoming messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = max(msg.Width, minWidth)
		m.bar.Width = max(m.width/2-10, 10)
		return m, nil

	case ResultMsg:
		m.busy[msg.Command] = false
		m.handleResult(msg)
		return m, nil

	case ProgressMsg:
		if m.task == nil || m.task.id != msg.TaskID {
			m.task = &taskView{id: msg.TaskID}
		}
		m.task.current, m.task.total, m.task.message = msg.Current, msg.Total, msg.Message
		return m, nil

	case CompletionMsg:
		if m.task == nil || m.task.id != msg.TaskID {
			m.task = &taskView{id: msg.TaskID}
		}
		m.task.done = true
		m.task.current = m.task.total
		m.task.message = msg.Message
		m.addLog(successStyle.Render(msg.Message))
		return m, nil

	case TickMsg:
		return m, tea.Batch(sampleSysStatsCmd(m.sample), tickCmd())

	case SysStatsMsg:
		m.cpu.Push(msg.CPUPercent)
		m.mem.Push(msg.MemPercent)
		return m, nil

	case ContextCancelledMsg:
		m.exitCode = apperrors.ExitErrorCanceled
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keymap.Pi):
		return m.start(commands.CalculatePi, commands.PiArgs{Iterations: IterationPresets[m.iterIdx]})

	case key.Matches(msg, m.keymap.Sieve):
		return m.start(commands.CalculatePrimes, commands.PrimesArgs{Limit: LimitPresets[m.limitIdx]})

	case key.Matches(msg, m.keymap.Progress):
		return m.start(commands.StartProgressTask, struct{}{})

	case key.Matches(msg, m.keymap.Iterations):
		m.iterIdx = (m.iterIdx + 1) % len(IterationPresets)
		return m, nil

	case key.Matches(msg, m.keymap.Limit):
		m.limitIdx = (m.limitIdx + 1) % len(LimitPresets)
		return m, nil
	}
	return m, nil
}

// start schedules an invocation unless the same command is still running.
func (m Model) start(name string, args any) (tea.Model, tea.Cmd) {
	if m.busy[name] {
		return m, nil
	}
	m.busy[name] = true
	return m, invokeCmd(m.ctx, m.inv, name, args)
}

func (m *Model) handleResult(msg ResultMsg) {
	if msg.Err != nil {
		m.addLog(errorStyle.Render(fmt.Sprintf("%s: %v", msg.Command, msg.Err)))
		return
	}
	switch r := msg.Result.(type) {
	case montecarlo.SamplingResult:
		m.pi = &r
		m.addLog(fmt.Sprintf("π ≈ %.8f from %s samples in %s",
			r.Estimate, format.FormatThousands(r.Iterations), format.FormatMillis(r.ElapsedMs)))
	case sieve.Result:
		m.sieve = &r
		m.addLog(fmt.Sprintf("%s primes ≤ %s in %s",
			format.FormatThousands(r.Count), format.FormatThousands(uint64(r.Limit)), format.FormatMillis(r.ElapsedMs)))
	case string:
		m.addLog(r)
	default:
		m.addLog(fmt.Sprintf("%s: %v", msg.Command, r))
	}
}

func (m *Model) addLog(line string) {
	stamp := dimStyle.Render(time.Now().Format("15:04:05"))
	m.logs = append(m.logs, stamp+" "+line)
	if len(m.logs) > maxLogLines {
		m.logs = m.logs[len(m.logs)-maxLogLines:]
	}
}

// View renders the dashboard.
func (m Model) View() string {
	colWidth := m.width/2 - 2

	header := titleStyle.Render("Compute dashboard") + " " + dimStyle.Render(m.version)
	left := lipgloss.JoinVertical(lipgloss.Left,
		panelStyle.Width(colWidth).Render(m.piView()),
		panelStyle.Width(colWidth).Render(m.sieveView()),
	)
	right := lipgloss.JoinVertical(lipgloss.Left,
		panelStyle.Width(colWidth).Render(m.progressView()),
		panelStyle.Width(colWidth).Render(m.systemView(colWidth-14)),
	)
	body := lipgloss.JoinHorizontal(lipgloss.Top, left, right)
	logs := panelStyle.Width(m.width - 2).Render(strings.Join(append([]string{titleStyle.Render("Activity")}, m.logs...), "\n"))

	return lipgloss.JoinVertical(lipgloss.Left, header, body, logs, m.footerView())
}

func (m Model) status(name string) string {
	if m.busy[name] {
		return busyStyle.Render(" running…")
	}
	return ""
}

func row(label, value string) string {
	return labelStyle.Render(fmt.Sprintf("%-11s", label)) + valueStyle.Render(value)
}

func (m Model) piView() string {
	lines := []string{
		titleStyle.Render("Monte Carlo π") + m.status(commands.CalculatePi),
		row("Iterations", format.FormatThousands(IterationPresets[m.iterIdx])),
	}
	if r := m.pi; r != nil {
		lines = append(lines,
			row("Estimate", fmt.Sprintf("%.8f", r.Estimate)),
			row("Error", format.FormatScientific(r.Error)),
			row("Elapsed", format.FormatMillis(r.ElapsedMs)+" ("+format.Throughput(r.Iterations, r.ElapsedMs)+")"),
		)
	}
	return strings.Join(lines, "\n")
}

func (m Model) sieveView() string {
	lines := []string{
		titleStyle.Render("Prime sieve") + m.status(commands.CalculatePrimes),
		row("Limit", format.FormatThousands(uint64(LimitPresets[m.limitIdx]))),
	}
	if r := m.sieve; r != nil {
		lines = append(lines,
			row("Primes", format.FormatThousands(r.Count)),
			row("Elapsed", format.FormatMillis(r.ElapsedMs)),
		)
	}
	return strings.Join(lines, "\n")
}

func (m Model) progressView() string {
	title := titleStyle.Render("Progress task")
	if m.task == nil {
		return title + "\n" + dimStyle.Render("press g to start a task")
	}
	t := m.task
	line := m.bar.ViewAs(format.ProgressFraction(t.current, t.total))
	msg := t.message
	if t.done {
		msg = successStyle.Render(msg)
	}
	return strings.Join([]string{title, line, fmt.Sprintf("%d/%d %s", t.current, t.total, msg)}, "\n")
}

func (m Model) systemView(width int) string {
	return strings.Join([]string{
		titleStyle.Render("System"),
		row("CPU", fmt.Sprintf("%5.1f%% ", m.cpu.Last())) + cpuSparkStyle.Render(m.cpu.Sparkline(width)),
		row("Memory", fmt.Sprintf("%5.1f%% ", m.mem.Last())) + memSparkStyle.Render(m.mem.Sparkline(width)),
	}, "\n")
}

func (m Model) footerView() string {
	parts := make([]string, 0, len(m.keymap.shortHelp()))
	for _, b := range m.keymap.shortHelp() {
		h := b.Help()
		parts = append(parts, footerKeyStyle.Render(h.Key)+" "+footerDescStyle.Render(h.Desc))
	}
	return strings.Join(parts, "  ")
}

// invokeCmd runs a command off the UI goroutine and reports a ResultMsg.
func invokeCmd(ctx context.Context, inv Invoker, name string, args any) tea.Cmd {
	return func() tea.Msg {
		raw, err := json.Marshal(args)
		if err != nil {
			return ResultMsg{Command: name, Err: err}
		}
		start := time.Now()
		result, err := inv.Invoke(ctx, name, raw)
		return ResultMsg{Command: name, Result: result, Err: err, Elapsed: time.Since(start)}
	}
}

func tickCmd() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func sampleSysStatsCmd(sample func() sysmon.Stats) tea.Cmd {
	return func() tea.Msg {
		s := sample()
		return SysStatsMsg{CPUPercent: s.CPUPercent, MemPercent: s.MemPercent}
	}
}

func watchContextCmd(ctx context.Context) tea.Cmd {
	return func() tea.Msg {
		<-ctx.Done()
		return ContextCancelledMsg{Err: ctx.Err()}
	}
}

// Run starts the dashboard and blocks until the user quits or ctx ends. It
// returns the process exit code.
func Run(ctx context.Context, inv Invoker, src EventSource, buffer int, version string) int {
	initStyles()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	model := NewModel(ctx, inv, version)
	p := tea.NewProgram(model, tea.WithAltScreen())
	ref := &programRef{}
	ref.SetProgram(p)

	sub := src.Subscribe(buffer)
	defer sub.Close()
	go forwardEvents(ctx, sub, ref)

	final, err := p.Run()
	if err != nil {
		return apperrors.ExitErrorGeneric
	}
	if m, ok := final.(Model); ok {
		return m.exitCode
	}
	return apperrors.ExitSuccess
}
