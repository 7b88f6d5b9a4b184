package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"gridcombat/internal/combat"
	"gridcombat/internal/config"
)

var (
	elfStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
	goblinStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("160")).Bold(true)
	wallStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	openStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("236"))
	titleStyle  = lipgloss.NewStyle().Bold(true).Underline(true)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
)

// eventLog is shared by pointer so the emit callback survives model copies.
type eventLog struct {
	events []combat.Event
}

type model struct {
	name    string
	initial *combat.Map
	powers  combat.AttackPowers
	battle  *combat.Battle
	log     *eventLog
	last    []combat.Event
	playing bool
	delay   time.Duration
}

type TickMsg time.Time

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func initialModel(name string, m *combat.Map, powers combat.AttackPowers, delay time.Duration) model {
	md := model{name: name, initial: m, powers: powers, delay: delay, log: &eventLog{}}
	return md.reset()
}

func (m model) reset() model {
	m.log.events = nil
	m.last = nil
	m.battle = combat.NewBattle(m.initial.Clone(), m.powers, combat.WithEmit(func(ev combat.Event) {
		m.log.events = append(m.log.events, ev)
	}))
	return m
}

func (m model) step() model {
	m.log.events = m.log.events[:0]
	m.battle.ExecuteRound()
	m.last = append([]combat.Event(nil), m.log.events...)
	if !m.battle.Running() {
		m.playing = false
	}
	return m
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "n", " ":
			if m.battle.Running() {
				m = m.step()
			}
		case "p":
			if !m.battle.Running() {
				return m, nil
			}
			m.playing = !m.playing
			if m.playing {
				return m, tickCmd(m.delay)
			}
		case "r":
			m.playing = false
			m = m.reset()
		}
	case TickMsg:
		if !m.playing {
			return m, nil
		}
		m = m.step()
		if m.playing {
			return m, tickCmd(m.delay)
		}
	}
	return m, nil
}

func (m model) View() string {
	mp := m.battle.Map()
	var b strings.Builder
	b.WriteString(titleStyle.Render(m.name))
	status := "running"
	if !m.battle.Running() {
		status = "ended"
	}
	fmt.Fprintf(&b, "\nround %d  %s  elves %d/%d  goblins %d/%d  hp %d\n\n",
		mp.Rounds(), status,
		mp.FactionCount(combat.Elf), mp.InitialCount(combat.Elf),
		mp.FactionCount(combat.Goblin), mp.InitialCount(combat.Goblin),
		mp.TotalHitPoints())

	for row := 0; row < mp.Height(); row++ {
		var hps []string
		for col := 0; col < mp.Width(); col++ {
			t := mp.Tile(row*mp.Width() + col)
			sym := string(t.Symbol())
			switch {
			case t.Kind == combat.Wall:
				b.WriteString(wallStyle.Render(sym))
			case t.Kind == combat.Open:
				b.WriteString(openStyle.Render(sym))
			case t.Faction == combat.Elf:
				b.WriteString(elfStyle.Render(sym))
				hps = append(hps, fmt.Sprintf("%s(%d)", sym, t.HP))
			default:
				b.WriteString(goblinStyle.Render(sym))
				hps = append(hps, fmt.Sprintf("%s(%d)", sym, t.HP))
			}
		}
		if len(hps) > 0 {
			b.WriteString("   " + strings.Join(hps, ", "))
		}
		b.WriteByte('\n')
	}

	attacks, kills, moves := 0, 0, 0
	for _, ev := range m.last {
		switch ev.Type {
		case combat.EventAttack:
			attacks++
		case combat.EventKill:
			kills++
		case combat.EventMove:
			moves++
		}
	}
	fmt.Fprintf(&b, "\nlast round: %d moves, %d attacks, %d kills\n", moves, attacks, kills)
	if !m.battle.Running() {
		fmt.Fprintf(&b, "outcome %d\n", uint64(mp.Rounds())*uint64(mp.TotalHitPoints()))
	}
	b.WriteString(helpStyle.Render("\nn/space step  p play/pause  r reset  q quit"))
	b.WriteByte('\n')
	return b.String()
}

func main() {
	var cfgPath string
	var elfPower int
	var delay time.Duration
	flag.StringVar(&cfgPath, "config", "assets/rules.yaml", "rules file (empty for built-in defaults)")
	flag.IntVar(&elfPower, "elf-power", 0, "override the elf attack power")
	flag.DurationVar(&delay, "delay", 150*time.Millisecond, "time between rounds while playing")
	flag.Parse()
	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: combatview [flags] map.txt")
		os.Exit(2)
	}

	rules, err := config.Load(cfgPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	input, err := os.ReadFile(flag.Arg(0))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	m, err := combat.ParseMap(string(input), combat.WithHitPoints(rules.HitPoints))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	powers := combat.NewAttackPowers(rules)
	if elfPower > 0 {
		powers = powers.With(combat.Elf, elfPower)
	}

	p := tea.NewProgram(initialModel(flag.Arg(0), m, powers, delay), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
