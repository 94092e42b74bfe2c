package panel

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/massymassy/gosea/params"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	changes []Change
}

func (r *recorder) submit(c Change) { r.changes = append(r.changes, c) }

func (r *recorder) last(t *testing.T) Change {
	t.Helper()
	require.NotEmpty(t, r.changes)
	return r.changes[len(r.changes)-1]
}

func newTestModel() (model, *recorder) {
	store := params.NewOceanStore()
	rec := &recorder{}
	return newModel(store.Definitions(), store.Snapshot(), rec.submit), rec
}

func press(m model, keys ...tea.KeyMsg) model {
	for _, k := range keys {
		next, _ := m.Update(k)
		m = next.(model)
	}
	return m
}

func typeText(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

var (
	down       = tea.KeyMsg{Type: tea.KeyDown}
	right      = tea.KeyMsg{Type: tea.KeyRight}
	left       = tea.KeyMsg{Type: tea.KeyLeft}
	shiftRight = tea.KeyMsg{Type: tea.KeyShiftRight}
	ctrlLeft   = tea.KeyMsg{Type: tea.KeyCtrlLeft}
	enter      = tea.KeyMsg{Type: tea.KeyEnter}
	backspace  = tea.KeyMsg{Type: tea.KeyBackspace}
)

func TestRowsSkipTimeAndSplitVec2(t *testing.T) {
	m, _ := newTestModel()
	var labels []string
	for _, r := range m.rows {
		assert.NotEqual(t, params.Time, r.def.Name)
		labels = append(labels, r.label())
	}
	assert.Equal(t, []string{"wave height", "wave frequency x", "wave frequency y"}, labels[:3])
	assert.Len(t, m.rows, 11)
}

func TestNudgeSteps(t *testing.T) {
	m, rec := newTestModel()

	m = press(m, right)
	assert.InDelta(t, 0.381, rec.last(t).Value.Float(), 1e-6)
	m = press(m, shiftRight)
	assert.InDelta(t, 0.391, rec.last(t).Value.Float(), 1e-6)
	m = press(m, ctrlLeft)
	assert.InDelta(t, 0.291, rec.last(t).Value.Float(), 1e-6)
	assert.Equal(t, params.BigWaveElevation, rec.last(t).Name)

	// shown before the store echoes it back
	assert.InDelta(t, 0.291, m.values[params.BigWaveElevation].Float(), 1e-6)
}

func TestNudgeClampsAtRange(t *testing.T) {
	m, rec := newTestModel()
	for i := 0; i < 20; i++ {
		m = press(m, ctrlLeft)
	}
	assert.Equal(t, float32(0), rec.last(t).Value.Float())
	m = press(m, left)
	assert.Equal(t, float32(0), m.values[params.BigWaveElevation].Float())
}

func TestNudgeVec2Component(t *testing.T) {
	m, rec := newTestModel()
	m = press(m, down, down, left)
	c := rec.last(t)
	assert.Equal(t, params.BigWaveFrequency, c.Name)
	assert.InDelta(t, 6.6, c.Value.Vec2()[0], 1e-6)
	assert.InDelta(t, 3.499, c.Value.Vec2()[1], 1e-6)
}

func TestEditColor(t *testing.T) {
	m, rec := newTestModel()
	for m.rows[m.cursor].def.Name != params.DepthColor {
		m = press(m, down)
	}
	m = press(m, enter)
	require.True(t, m.editing)
	assert.Equal(t, "#2d81ae", m.editBuf)

	for range m.editBuf {
		m = press(m, backspace)
	}
	m = press(m, typeText("ff0000"), enter)
	assert.False(t, m.editing)
	c := rec.last(t)
	assert.Equal(t, params.DepthColor, c.Name)
	assert.Equal(t, mgl32.Vec3{1, 0, 0}, c.Value.Vec3())
}

func TestEditVec2Pair(t *testing.T) {
	m, rec := newTestModel()
	m = press(m, down, enter)
	m.editBuf = ""
	m = press(m, typeText("2.5, 12"), enter)
	c := rec.last(t)
	assert.Equal(t, mgl32.Vec2{2.5, 10}, c.Value.Vec2())
}

func TestEditRejectsGarbage(t *testing.T) {
	m, rec := newTestModel()
	m = press(m, enter)
	m.editBuf = ""
	m = press(m, typeText("abc"), enter)
	assert.True(t, m.editing)
	assert.Contains(t, m.status, "not a number")
	assert.Empty(t, rec.changes)

	m = press(m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, m.editing)
}

func TestResetSelected(t *testing.T) {
	m, rec := newTestModel()
	m = press(m, right, right, typeText("r"))
	c := rec.last(t)
	assert.True(t, c.Reset)
	assert.InDelta(t, 0.38, c.Value.Float(), 1e-6)
	assert.InDelta(t, 0.38, m.values[params.BigWaveElevation].Float(), 1e-6)
	assert.Len(t, rec.changes, 3)
}

func TestQuit(t *testing.T) {
	m, _ := newTestModel()
	_, cmd := m.Update(typeText("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestValueMsgUpdatesDisplay(t *testing.T) {
	m, _ := newTestModel()
	next, _ := m.Update(valueMsg{Name: params.ColorMultiplier, Value: params.Scalar(2)})
	m = next.(model)
	assert.Equal(t, float32(2), m.values[params.ColorMultiplier].Float())
	assert.Contains(t, m.View(), "2.000")
}

func TestBindingApply(t *testing.T) {
	store := params.NewOceanStore()
	b, err := NewBinding(store)
	require.NoError(t, err)

	b.submit(Change{Name: params.BigWaveSpeed, Value: params.Scalar(2)})
	b.submit(Change{Name: "nope", Value: params.Scalar(1)})
	b.submit(Change{Name: params.DepthColor, Value: params.Scalar(1)})

	assert.Equal(t, 1, b.Apply())
	assert.Equal(t, 0, b.Apply())

	v, _ := store.Get(params.BigWaveSpeed)
	assert.Equal(t, float32(2), v.Float())
}

func TestBindingPublishesStoreChanges(t *testing.T) {
	store := params.NewOceanStore()
	b, err := NewBinding(store)
	require.NoError(t, err)

	_, err = store.Set(params.SmallWaveSpeed, params.Scalar(1))
	require.NoError(t, err)
	_, err = store.Set(params.Time, params.Scalar(5))
	require.NoError(t, err)

	require.Len(t, b.updates, 1)
	c := <-b.updates
	assert.Equal(t, params.SmallWaveSpeed, c.Name)
	assert.Equal(t, float32(1), c.Value.Float())
}

func TestBindingDropsWhenFull(t *testing.T) {
	store := params.NewOceanStore()
	b, err := NewBinding(store)
	require.NoError(t, err)

	for i := 0; i < changeBuffer+10; i++ {
		b.submit(Change{Name: params.ColorOffset, Value: params.Scalar(float32(i%2) * 0.5)})
	}
	assert.Len(t, b.changes, changeBuffer)
	b.Apply()
	assert.Empty(t, b.changes)
}

// connected wires a model to a binding the way Start does, without a terminal.
func connected(t *testing.T) (model, *Binding, *params.Store) {
	t.Helper()
	store := params.NewOceanStore()
	b, err := NewBinding(store)
	require.NoError(t, err)
	return newModel(store.Definitions(), store.Snapshot(), b.submit), b, store
}

func deliver(m model, b *Binding, n int) model {
	for i := 0; i < n || n < 0; i++ {
		select {
		case c := <-b.updates:
			next, _ := m.Update(valueMsg(c))
			m = next.(model)
		default:
			return m
		}
	}
	return m
}

func TestStaleEchoDoesNotRollBackEdits(t *testing.T) {
	m, b, store := connected(t)

	m = press(m, right, right)
	require.Equal(t, 2, b.Apply())
	m = deliver(m, b, 1)
	assert.InDelta(t, 0.382, m.values[params.BigWaveElevation].Float(), 1e-6)

	m = press(m, right)
	m = deliver(m, b, -1)
	assert.InDelta(t, 0.383, m.values[params.BigWaveElevation].Float(), 1e-6)

	require.Equal(t, 1, b.Apply())
	m = deliver(m, b, -1)

	v, _ := store.Get(params.BigWaveElevation)
	assert.InDelta(t, 0.383, v.Float(), 1e-6)
	assert.InDelta(t, 0.383, m.values[params.BigWaveElevation].Float(), 1e-6)
}

func TestExternalChangesReachPanel(t *testing.T) {
	m, b, store := connected(t)

	m = press(m, right)
	b.Apply()
	m = deliver(m, b, -1)

	store.ResetAll()
	m = deliver(m, b, -1)
	assert.InDelta(t, 0.38, m.values[params.BigWaveElevation].Float(), 1e-6)
}

func TestResetKeyUsesStoreReset(t *testing.T) {
	m, b, store := connected(t)

	m = press(m, right, right)
	b.Apply()
	m = press(m, typeText("r"))
	require.Equal(t, 1, b.Apply())
	m = deliver(m, b, -1)

	v, _ := store.Get(params.BigWaveElevation)
	assert.InDelta(t, 0.38, v.Float(), 1e-6)
	assert.InDelta(t, 0.38, m.values[params.BigWaveElevation].Float(), 1e-6)
}
