package panel

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/massymassy/gosea/params"
)

var (
	cyan   = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	white  = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	dim    = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	dimmer = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
	red    = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
)

// Change is an edit made in the panel, or a store update shown by it.
//
// Seq numbers the panel's edits. A store update caused by applying an edit
// carries that edit's Seq; updates from elsewhere carry 0.
type Change struct {
	Name  string
	Value params.Value
	Seq   uint64
	Reset bool
}

type valueMsg Change

// row is one line of the panel. A vec2 parameter gets a row per component.
type row struct {
	def       params.Definition
	component int
}

func (r row) label() string {
	if r.def.Kind != params.KindVec2 {
		return r.def.Label
	}
	return r.def.Label + [2]string{" x", " y"}[r.component]
}

func editable(def params.Definition) bool {
	return def.Kind == params.KindColor || def.Range != nil
}

type model struct {
	rows    []row
	values  map[string]params.Value
	cursor  int
	editing bool
	editBuf string
	status  string
	submit  func(Change)
	width   int

	seq  uint64
	sent map[string]uint64 // last Seq submitted per parameter
}

func newModel(defs []params.Definition, values map[string]params.Value, submit func(Change)) model {
	m := model{values: values, submit: submit, width: 80, sent: make(map[string]uint64)}
	for _, def := range defs {
		if !editable(def) {
			continue
		}
		m.rows = append(m.rows, row{def: def})
		if def.Kind == params.KindVec2 {
			m.rows = append(m.rows, row{def: def, component: 1})
		}
	}
	return m
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.editing {
			return m.editKey(msg)
		}
		return m.navKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
	case valueMsg:
		// an echo of an edit that has since been superseded
		if msg.Seq != 0 && msg.Seq < m.sent[msg.Name] {
			return m, nil
		}
		m.values[msg.Name] = msg.Value
	}
	return m, nil
}

func (m model) navKey(msg tea.KeyMsg) (model, tea.Cmd) {
	if len(m.rows) == 0 {
		if s := msg.String(); s == "q" || s == "ctrl+c" {
			return m, tea.Quit
		}
		return m, nil
	}
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.rows)-1 {
			m.cursor++
		}
	case "left", "h":
		m.nudge(-1)
	case "right", "l":
		m.nudge(1)
	case "shift+left":
		m.nudge(-10)
	case "shift+right":
		m.nudge(10)
	case "ctrl+left":
		m.nudge(-100)
	case "ctrl+right":
		m.nudge(100)
	case "enter":
		r := m.rows[m.cursor]
		m.editing = true
		m.status = ""
		m.editBuf = m.values[r.def.Name].String()
		if r.def.Kind == params.KindVec2 {
			m.editBuf = formatFloat(m.values[r.def.Name].Vec2()[r.component])
		}
	case "r":
		def := m.rows[m.cursor].def
		m.values[def.Name] = def.Default
		m.send(Change{Name: def.Name, Value: def.Default, Reset: true})
		m.status = def.Label + " reset"
	}
	return m, nil
}

func (m model) editKey(msg tea.KeyMsg) (model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		r := m.rows[m.cursor]
		v, err := parseInput(r, m.editBuf, m.values[r.def.Name])
		if err != nil {
			m.status = err.Error()
			return m, nil
		}
		m.set(r.def.Name, v)
		m.editing = false
		m.editBuf = ""
		m.status = ""
	case tea.KeyEsc:
		m.editing = false
		m.editBuf = ""
	case tea.KeyBackspace:
		if len(m.editBuf) > 0 {
			m.editBuf = m.editBuf[:len(m.editBuf)-1]
		}
	case tea.KeyCtrlC:
		return m, tea.Quit
	case tea.KeyRunes, tea.KeySpace:
		m.editBuf += string(msg.Runes)
	}
	return m, nil
}

func (m *model) nudge(n int) {
	r := m.rows[m.cursor]
	if r.def.Range == nil {
		return
	}
	cur := m.values[r.def.Name]
	switch r.def.Kind {
	case params.KindScalar:
		m.set(r.def.Name, params.Scalar(r.def.Range.Nudge(cur.Float(), n)))
	case params.KindVec2:
		xy := cur.Vec2()
		xy[r.component] = r.def.Range.Nudge(xy[r.component], n)
		m.set(r.def.Name, params.Vec2(xy[0], xy[1]))
	}
}

// set shows v immediately and queues it for the store.
func (m *model) set(name string, v params.Value) {
	r := m.rows[m.cursor]
	if r.def.Range != nil {
		v = r.def.Range.Clamp(v)
	}
	m.values[name] = v
	m.send(Change{Name: name, Value: v})
}

func (m *model) send(c Change) {
	m.seq++
	c.Seq = m.seq
	m.sent[c.Name] = c.Seq
	if m.submit != nil {
		m.submit(c)
	}
}

func parseInput(r row, input string, cur params.Value) (params.Value, error) {
	input = strings.TrimSpace(input)
	switch r.def.Kind {
	case params.KindColor:
		if !strings.HasPrefix(input, "#") {
			input = "#" + input
		}
		return params.Hex(input)
	case params.KindVec2:
		xy := cur.Vec2()
		if x, y, ok := strings.Cut(input, ","); ok {
			fx, err := parseFloat(x)
			if err != nil {
				return params.Value{}, err
			}
			fy, err := parseFloat(y)
			if err != nil {
				return params.Value{}, err
			}
			return params.Vec2(fx, fy), nil
		}
		f, err := parseFloat(input)
		if err != nil {
			return params.Value{}, err
		}
		xy[r.component] = f
		return params.Vec2(xy[0], xy[1]), nil
	default:
		f, err := parseFloat(input)
		if err != nil {
			return params.Value{}, err
		}
		return params.Scalar(f), nil
	}
}

func parseFloat(s string) (float32, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 32)
	if err != nil {
		return 0, fmt.Errorf("not a number: %q", s)
	}
	return float32(f), nil
}

func formatFloat(f float32) string {
	return strconv.FormatFloat(float64(f), 'f', 3, 32)
}

func (m model) View() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(dimmer.Render("    ╺━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━╸") + "\n")
	b.WriteString("              " + cyan.Render("g o s e a") + "\n")
	b.WriteString(dimmer.Render("    ╺━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━╸") + "\n\n")

	for i, r := range m.rows {
		label := fmt.Sprintf("%-20s", r.label())
		value := m.renderValue(r)
		if i == m.cursor {
			if m.editing {
				value = white.Render(m.editBuf) + cyan.Render("▏")
			}
			b.WriteString("    " + cyan.Render("▸ ") + white.Render(label) + value + "\n")
		} else {
			b.WriteString("      " + dim.Render(label) + value + "\n")
		}
	}

	b.WriteString("\n")
	if m.status != "" {
		b.WriteString("    " + red.Render(m.status) + "\n")
	}
	if m.editing {
		b.WriteString(dim.Render("    enter apply   esc cancel") + "\n")
	} else {
		b.WriteString(dim.Render("    ↑↓ select   ←→ adjust (shift ×10, ctrl ×100)   enter edit   r reset   q close") + "\n")
	}
	return b.String()
}

func (m model) renderValue(r row) string {
	v := m.values[r.def.Name]
	switch r.def.Kind {
	case params.KindColor:
		swatch := lipgloss.NewStyle().Background(lipgloss.Color(v.Hex())).Render("    ")
		return swatch + " " + white.Render(v.Hex())
	case params.KindVec2:
		s := white.Render(formatFloat(v.Vec2()[r.component]))
		if rng := r.def.Range; rng != nil {
			s += dimmer.Render(fmt.Sprintf("  [%g, %g]", rng.Min, rng.Max))
		}
		return s
	default:
		s := white.Render(formatFloat(v.Float()))
		if rng := r.def.Range; rng != nil {
			s += dimmer.Render(fmt.Sprintf("  [%g, %g]", rng.Min, rng.Max))
		}
		return s
	}
}
