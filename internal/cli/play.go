package cli

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/pairquest/pkg/closest"
	"github.com/matzehuels/pairquest/pkg/geom"
	"github.com/matzehuels/pairquest/pkg/points"
	"github.com/matzehuels/pairquest/pkg/report"
)

const (
	plotCols     = 64
	plotRows     = 20
	playMinCount = 2
	playMaxCount = 20_000
)

var (
	plotPointStyle = lipgloss.NewStyle().Foreground(colorBlue)
	plotPairStyle  = lipgloss.NewStyle().Foreground(colorRed).Bold(true)
	plotFrameStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorDim)
	helpStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// playCommand creates the play command: an interactive quest where the
// user generates points, runs each solver and reveals the closest pair.
func (c *CLI) playCommand() *cobra.Command {
	var flags pointFlags

	cmd := &cobra.Command{
		Use:   "play",
		Short: "Interactive closest-pair quest in the terminal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			gen := c.Config.Generate
			count, seed := gen.Count, gen.Seed
			if cmd.Flags().Changed("count") {
				count = flags.count
			}
			if cmd.Flags().Changed("seed") {
				seed = flags.seed
			}

			m := newPlayModel(cmd.Context(), count, seed, c.Config.Frame.Bounds())
			p := tea.NewProgram(m,
				tea.WithContext(cmd.Context()),
				tea.WithInput(cmd.InOrStdin()),
				tea.WithOutput(cmd.OutOrStdout()),
			)
			_, err := p.Run()
			return err
		},
	}

	flags.register(cmd)
	return cmd
}

// solvedMsg carries one solver's timed result back to the model.
type solvedMsg struct {
	gen int // generation the result belongs to
	run report.Run
	err error
}

// playModel is the bubbletea model behind the play command.
type playModel struct {
	ctx    context.Context
	bounds geom.Rect
	count  int
	seed   uint64

	gen      int // bumped on every regeneration so stale results are dropped
	points   []geom.Point
	runs     map[string]report.Run
	running  string
	revealed bool
	status   string
}

func newPlayModel(ctx context.Context, count int, seed uint64, bounds geom.Rect) playModel {
	m := playModel{ctx: ctx, bounds: bounds, count: clampCount(count), seed: seed}
	return m.generate()
}

func clampCount(n int) int {
	return max(playMinCount, min(n, playMaxCount))
}

// generate draws a fresh point set and forgets earlier results.
func (m playModel) generate() playModel {
	pts, err := points.Generate(points.Options{Count: m.count, Seed: m.seed, Bounds: m.bounds, Integer: true})
	m.gen++
	m.runs = map[string]report.Run{}
	m.running = ""
	m.revealed = false
	if err != nil {
		m.points = nil
		m.status = err.Error()
		return m
	}
	m.points = pts
	m.status = fmt.Sprintf("Generated %d points (seed %d)", len(pts), m.seed)
	return m
}

// solve returns a command that runs the named solver off the UI goroutine.
func (m playModel) solve(name string) tea.Cmd {
	ctx, pts, gen := m.ctx, m.points, m.gen
	return func() tea.Msg {
		rep, err := report.Compare(ctx, pts, []string{name})
		if err != nil {
			return solvedMsg{gen: gen, err: err}
		}
		return solvedMsg{gen: gen, run: rep.Runs[0]}
	}
}

func (m playModel) Init() tea.Cmd {
	return nil
}

func (m playModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "g":
			m.seed++
			return m.generate(), nil
		case "+", "=":
			m.count = clampCount(m.count * 2)
			return m.generate(), nil
		case "-", "_":
			m.count = clampCount(m.count / 2)
			return m.generate(), nil
		case "b", "d":
			if m.running != "" {
				return m, nil
			}
			name := closest.NameBruteForce
			if msg.String() == "d" {
				name = closest.NameDivideAndConquer
			}
			m.running = name
			m.status = "Running " + closest.Label(name) + "..."
			return m, m.solve(name)
		case "s":
			if _, ok := m.pair(); !ok {
				m.status = "Run a solver first"
				return m, nil
			}
			m.revealed = !m.revealed
		}

	case solvedMsg:
		if msg.gen != m.gen {
			return m, nil
		}
		m.running = ""
		if msg.err != nil {
			m.status = msg.err.Error()
			return m, nil
		}
		m.runs[msg.run.Solver] = msg.run
		m.status = fmt.Sprintf("%s finished in %.3f ms", msg.run.Label, msg.run.ElapsedMS)
	}
	return m, nil
}

// pair returns the best pair found so far, preferring divide and conquer.
func (m playModel) pair() (geom.Pair, bool) {
	for _, name := range []string{closest.NameDivideAndConquer, closest.NameBruteForce} {
		if run, ok := m.runs[name]; ok && run.Found {
			return *run.Pair, true
		}
	}
	return geom.Pair{}, false
}

func (m playModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Closest Pair Quest"))
	b.WriteString("\n\n")
	b.WriteString(plotFrameStyle.Render(m.plot()))
	b.WriteString("\n")

	b.WriteString(styleKey.Render("Points") + " " + StyleNumber.Render(fmt.Sprint(len(m.points))) + "\n")
	for _, name := range closest.Names() {
		value := StyleDim.Render("not run")
		if run, ok := m.runs[name]; ok {
			value = StyleValue.Render(fmt.Sprintf("%.3f ms", run.ElapsedMS))
		}
		b.WriteString(styleKey.Render(closest.Label(name)) + " " + value + "\n")
	}
	if pair, ok := m.pair(); ok {
		b.WriteString(styleKey.Render("Closest Distance") + " " + StyleNumber.Render(fmt.Sprintf("%.4f", pair.Distance)) + "\n")
	}
	if x, ok := m.speedup(); ok {
		b.WriteString(styleKey.Render("Speedup") + " " + StyleSuccess.Render(fmt.Sprintf("%.1fx", x)) + "\n")
	}

	b.WriteString("\n" + StyleDim.Render(m.status) + "\n")
	b.WriteString(helpStyle.Render("g generate  b brute force  d divide & conquer  s show pair  +/- points  q quit"))
	b.WriteString("\n")
	return b.String()
}

func (m playModel) speedup() (float64, bool) {
	bf, ok1 := m.runs[closest.NameBruteForce]
	dc, ok2 := m.runs[closest.NameDivideAndConquer]
	if !ok1 || !ok2 || dc.Elapsed <= 0 {
		return 0, false
	}
	return float64(bf.Elapsed) / float64(dc.Elapsed), true
}

// plot draws the points on a character grid. Row 0 is the top of the frame,
// matching screen coordinates.
func (m playModel) plot() string {
	grid := make([][]rune, plotRows)
	for i := range grid {
		grid[i] = []rune(strings.Repeat(" ", plotCols))
	}

	cell := func(p geom.Point) (int, int) {
		col := int((p.X - m.bounds.MinX) / m.bounds.Width() * (plotCols - 1))
		row := int((p.Y - m.bounds.MinY) / m.bounds.Height() * (plotRows - 1))
		return min(max(col, 0), plotCols-1), min(max(row, 0), plotRows-1)
	}

	for _, p := range m.points {
		col, row := cell(p)
		if grid[row][col] == ' ' {
			grid[row][col] = '·'
		} else {
			grid[row][col] = '•'
		}
	}

	pair, ok := m.pair()
	marks := map[[2]int]bool{}
	if ok && m.revealed {
		for _, p := range []geom.Point{pair.A, pair.B} {
			col, row := cell(p)
			marks[[2]int{row, col}] = true
		}
	}

	lines := make([]string, plotRows)
	for r, cells := range grid {
		var line strings.Builder
		for c, ch := range cells {
			switch {
			case marks[[2]int{r, c}]:
				line.WriteString(plotPairStyle.Render("●"))
			case ch != ' ':
				line.WriteString(plotPointStyle.Render(string(ch)))
			default:
				line.WriteRune(ch)
			}
		}
		lines[r] = line.String()
	}
	return strings.Join(lines, "\n")
}
