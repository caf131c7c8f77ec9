package main

import (
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/cwbudde/algo-loudness/dsp/core"
	"github.com/cwbudde/algo-loudness/dsp/effects/dynamics"
	"github.com/cwbudde/algo-loudness/measure/loudness"
)

const (
	refreshInterval = 50 * time.Millisecond
	meterWidth      = 40
	meterFloorDB    = -60.0
)

type tickMsg time.Time

// paramFileMsg reports a parameter file reload.
type paramFileMsg struct{ err error }

// liveModel is the control thread: it reads engine readouts published by
// the audio path and writes parameter changes into the store.
type liveModel struct {
	st    *stream
	store *dynamics.ParamStore
	log   *slog.Logger
	watch string

	stats  dynamics.Stats
	params dynamics.Params

	// resetBlock is the block count when the reset button was pressed; the
	// button is released once the audio path has processed a full block
	// after that.
	resetBlock uint64
	resetHeld  bool

	fileErr   error
	fileLoads int
}

func newLiveModel(st *stream, store *dynamics.ParamStore, log *slog.Logger, watch string) liveModel {
	return liveModel{
		st:     st,
		store:  store,
		log:    log,
		watch:  watch,
		stats:  st.Stats(),
		params: store.Snapshot(),
	}
}

func tick() tea.Cmd {
	return tea.Tick(refreshInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m liveModel) Init() tea.Cmd {
	return tick()
}

func (m liveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tickMsg:
		if m.resetHeld && m.st.Blocks() > m.resetBlock+1 {
			m.store.Set(dynamics.ParamReset, 0)
			m.resetHeld = false
		}

		m.stats = m.st.Stats()
		m.params = m.store.Snapshot()

		return m, tick()

	case paramFileMsg:
		m.fileErr = msg.err
		m.fileLoads++
		m.params = m.store.Snapshot()
	}

	return m, nil
}

func (m liveModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	switch key {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "up":
		m.store.Add(dynamics.ParamLimit, 1)
	case "down":
		m.store.Add(dynamics.ParamLimit, -1)
	case "right":
		m.store.Add(dynamics.ParamRelease, 100)
	case "left":
		m.store.Add(dynamics.ParamRelease, -100)
	case "+", "=":
		m.store.Add(dynamics.ParamInputGain, 1)
	case "-":
		m.store.Add(dynamics.ParamInputGain, -1)
	case "]":
		m.st.AddSourceLevel(1)
	case "[":
		m.st.AddSourceLevel(-1)
	case "s":
		m.store.Toggle(dynamics.ParamInfiniteSustain)
	case "m":
		if m.store.Get(dynamics.ParamDetectorMix) >= 0.5 {
			m.store.Set(dynamics.ParamDetectorMix, 0)
		} else {
			m.store.Set(dynamics.ParamDetectorMix, 1)
		}
	case "r":
		m.store.Set(dynamics.ParamReset, 1)
		m.resetBlock = m.st.Blocks()
		m.resetHeld = true
	default:
		return m, nil
	}

	m.params = m.store.Snapshot()
	m.log.Debug("key", "key", key, "limit", m.params.LimitDB, "release", m.params.ReleaseMs,
		"input_gain", m.params.InputGainDB, "sustain", m.params.InfiniteSustain)

	return m, nil
}

func (m liveModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("ceiling"))
	b.WriteString("  ")
	latency := m.st.lim.Latency()
	b.WriteString(subtitleStyle.Render(fmt.Sprintf("latency %d samples (%.1f ms)",
		latency, core.SamplesToMs(latency, m.st.lim.SampleRate()))))
	b.WriteString("\n\n")

	s := m.stats
	b.WriteString(meterRow("Loudness", s.Loudness, s.LoudnessReady, "LKFS"))
	if m.st.lim.Config().DualMeter {
		b.WriteString(meterRow("Power", s.Power, s.PowerReady, "dB"))
	}

	reduction := -core.LinearToDB(s.Gain)
	if !core.IsFinite(reduction) || reduction < 0 {
		reduction = 0
	}
	b.WriteString(labelStyle.Render("Reduction"))
	b.WriteString(reductionStyle.Render(bar(min(reduction, -meterFloorDB), -meterFloorDB)))
	b.WriteString(valueStyle.Render(fmt.Sprintf(" %5.1f dB", reduction)))
	b.WriteString("\n")

	status := s.State.String()
	if s.Muted {
		status += ", muted"
	}
	if s.Gated {
		status += ", gated"
	}
	b.WriteString(row("State", status))
	b.WriteString("\n")

	b.WriteString(row("Signal", fmt.Sprintf("%.1f dBFS", m.st.SourceLevel())))
	for _, id := range []dynamics.ParamID{
		dynamics.ParamLimit,
		dynamics.ParamRelease,
		dynamics.ParamInputGain,
		dynamics.ParamDetectorMix,
		dynamics.ParamInfiniteSustain,
	} {
		d, _ := dynamics.DescriptorOf(id)
		b.WriteString(row(d.Name, d.Format(m.params.Value(id))))
	}

	if m.watch != "" {
		file := fmt.Sprintf("%s (%d reloads)", m.watch, m.fileLoads)
		if m.fileErr != nil {
			file = errorStyle.Render(m.fileErr.Error())
		}
		b.WriteString(row("Watching", file))
	}

	b.WriteString(helpStyle.Render("↑/↓ limit  ←/→ release  +/- input gain  [/] signal  s sustain  m mix  r reset  q quit"))
	b.WriteString("\n")

	return b.String()
}

func meterRow(label string, reading float64, ready bool, unit string) string {
	lk := loudness.ToLKFS(reading)
	fill := 0.0
	value := "   --"
	if ready {
		fill = min(max(lk-meterFloorDB, 0), -meterFloorDB)
		value = fmt.Sprintf("%5.1f", lk)
	}

	return labelStyle.Render(label) + meterStyle.Render(bar(fill, -meterFloorDB)) +
		valueStyle.Render(fmt.Sprintf(" %s %s", value, unit)) + "\n"
}

func row(label, value string) string {
	return labelStyle.Render(label) + valueStyle.Render(value) + "\n"
}

// bar renders v out of full as a fixed-width bar.
func bar(v, full float64) string {
	n := 0
	if full > 0 && v > 0 {
		n = int(math.Round(v / full * meterWidth))
	}
	n = min(max(n, 0), meterWidth)

	return strings.Repeat("█", n) + strings.Repeat("░", meterWidth-n)
}
