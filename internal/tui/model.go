package tui

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"time"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/bday/internal/audio"
	"github.com/verte-zerg/bday/internal/cake"
	"github.com/verte-zerg/bday/internal/carousel"
	"github.com/verte-zerg/bday/internal/clock"
	"github.com/verte-zerg/bday/internal/deck"
	"github.com/verte-zerg/bday/internal/effects"
	"github.com/verte-zerg/bday/internal/generator"
	"github.com/verte-zerg/bday/internal/gift"
	"github.com/verte-zerg/bday/internal/model"
	"github.com/verte-zerg/bday/internal/typing"
	"github.com/verte-zerg/bday/internal/wishes"
)

const (
	sectionHero = iota
	sectionCake
	sectionMemories
	sectionMessage
	sectionWishes
	sectionGift
	sectionFooter
)

const (
	frameInterval = 50 * time.Millisecond
	cardOffset    = 1
)

var sectionNames = []string{"Hero", "Cake", "Memories", "Message", "Wishes", "Gift", "Thanks"}

var (
	activeNavStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFF0F5")).
			Bold(true).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#FF69B4"))
	inactiveNavStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#B0B0B0")).
				Padding(0, 1).
				Border(lipgloss.RoundedBorder(), true).
				BorderForeground(lipgloss.Color("#4A4A4A"))
	titleStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF69B4")).Bold(true)
	subtitleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFB6C1"))
	messageStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0"))
	mutedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	accentStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFE066")).Bold(true)
	footerStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	buttonStyle   = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#1A1A1A")).
			Background(lipgloss.Color("#FF91A4")).
			Bold(true).
			Padding(0, 2)
	disabledButtonStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#6E6E6E")).
				Background(lipgloss.Color("#2A2A2A")).
				Padding(0, 2)
	cardStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#FFB6C1"))
	quoteStyle = lipgloss.NewStyle().
			Padding(1, 3).
			Border(lipgloss.DoubleBorder(), true).
			BorderForeground(lipgloss.Color("#FF69B4"))
)

type refreshMsg struct{}

type frameMsg struct{}

type wishResultMsg struct {
	wish model.Wish
	ok   bool
}

// Model implements the Bubble Tea greeting UI.
type Model struct {
	cfg  model.Config
	deck deck.Deck

	sched  clock.Scheduler
	ctx    context.Context
	cancel context.CancelFunc

	typer    *typing.Engine
	cake     *cake.Cake
	gift     *gift.Box
	carousel *carousel.Carousel
	board    *wishes.Board
	player   *audio.Player

	field      *effects.Field
	fx         effects.Launcher
	rnd        *rand.Rand // Update goroutine only
	fireworks  clock.Handle
	placer     *generator.Generator
	placements []generator.Placement

	updates   chan struct{}
	animating bool

	active         int
	input          textinput.Model
	wishView       viewport.Model
	cursor         cursor.Model
	messageIdx     int
	messageStarted bool
	status         string

	width  int
	height int
}

// NewModel wires the greeting components. A nil scheduler uses the real
// clock and a nil player stays silent.
func NewModel(cfg model.Config, d deck.Deck, player *audio.Player, sched clock.Scheduler) (*Model, error) {
	if sched == nil {
		sched = clock.Real()
	}
	if player == nil {
		player = audio.NewPlayer()
	}
	if err := typing.Validate(cfg.Speed, cfg.Delay); err != nil {
		return nil, err
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	ctx, cancel := context.WithCancel(context.Background())
	m := &Model{
		cfg:     cfg,
		deck:    d,
		sched:   sched,
		ctx:     ctx,
		cancel:  cancel,
		player:  player,
		field:   effects.NewField(seed),
		rnd:     rand.New(rand.NewSource(seed)),
		placer:  generator.NewSeeded(seed),
		updates: make(chan struct{}, 1),
	}
	m.fx = effects.Safe(effects.LauncherFunc(func(b model.Burst) {
		m.field.Launch(b)
		m.signal()
	}))

	var err error
	m.cake, err = cake.New(cfg.Candles, sched, m.fx, m.onWishMade)
	if err != nil {
		cancel()
		return nil, err
	}
	m.board, err = wishes.NewBoard(cfg.MaxWishes,
		wishes.WithClock(sched),
		wishes.WithEffects(m.fx),
		wishes.WithOnSubmit(func(text string) {
			log.Printf("wish submitted (%d chars)", utf8.RuneCountInString(text))
		}),
	)
	if err != nil {
		cancel()
		return nil, err
	}
	m.typer = typing.New(sched)
	m.gift = gift.New(sched, m.fx)
	m.carousel = carousel.New(d.Memories, sched)
	if cfg.Autoplay {
		if err := m.carousel.StartAutoplay(carousel.AutoplayInterval); err != nil {
			cancel()
			return nil, err
		}
	}

	m.typer.OnChange(m.signal)
	m.cake.OnChange(m.signal)
	m.gift.OnChange(m.signal)
	m.carousel.OnChange(m.signal)

	m.input = textinput.New()
	m.input.Prompt = "✎ "
	m.input.Placeholder = "Write your heartfelt birthday wish here..."
	m.input.CharLimit = wishes.MaxTextLength
	m.input.Width = 48

	m.cursor = cursor.New()
	m.cursor.SetChar(" ")
	m.cursor.SetMode(cursor.CursorStatic)
	m.cursor.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF69B4"))

	m.wishView = viewport.New(0, 0)
	m.refreshWishView()
	return m, nil
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	m.fx.Launch(effects.Celebrate)
	return m.waitForUpdate()
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil
	case refreshMsg:
		return m, tea.Batch(m.waitForUpdate(), m.startAnimation())
	case frameMsg:
		m.field.Step()
		if m.field.Active() {
			return m, frameTick()
		}
		m.animating = false
		return m, nil
	case wishResultMsg:
		if msg.ok {
			m.input.Reset()
			m.status = "Wish sent! ✨"
			m.player.PlayChime()
			m.refreshWishView()
			m.wishView.GotoBottom()
		} else {
			m.status = ""
		}
		return m, m.startAnimation()
	case tea.KeyMsg:
		return m.handleKey(msg)
	default:
		if m.active == sectionWishes {
			var cmd tea.Cmd
			m.input, cmd = m.input.Update(msg)
			return m, cmd
		}
		return m, nil
	}
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	switch key {
	case "ctrl+c":
		return m, tea.Quit
	case "tab":
		return m, m.setActive(m.active + 1)
	case "shift+tab":
		return m, m.setActive(m.active - 1)
	}

	if m.active == sectionWishes {
		return m.handleWishKey(msg)
	}

	switch key {
	case "q", "esc":
		return m, tea.Quit
	case "right", "l":
		return m, m.setActive(m.active + 1)
	case "left", "h":
		return m, m.setActive(m.active - 1)
	case "m":
		m.player.ToggleMute()
		return m, nil
	case "p":
		m.player.TogglePlay()
		return m, nil
	case "f":
		m.launchFireworks()
		return m, nil
	}

	switch m.active {
	case sectionCake:
		if key == "b" || key == " " || key == "enter" {
			m.cake.Blow()
		}
	case sectionMemories:
		switch key {
		case "down", "j", "n":
			m.carousel.Next()
		case "up", "k":
			m.carousel.Prev()
		case "a":
			m.toggleAutoplay()
		}
	case sectionMessage:
		switch key {
		case "r":
			m.startMessage()
		case "n":
			if len(m.deck.Messages) > 0 {
				m.messageIdx = (m.messageIdx + 1) % len(m.deck.Messages)
			}
			m.startMessage()
		}
	case sectionGift:
		if key == "o" || key == " " || key == "enter" {
			m.gift.Toggle()
		}
	}
	return m, nil
}

func (m *Model) handleWishKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		return m, m.submitWish()
	case "esc":
		return m, tea.Quit
	case "up", "down", "pgup", "pgdown":
		var cmd tea.Cmd
		m.wishView, cmd = m.wishView.Update(msg)
		return m, cmd
	}
	m.status = ""
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m *Model) View() string {
	content := m.renderSection()
	if m.width == 0 || m.height == 0 {
		return content
	}
	nav := m.renderNav()
	help := footerStyle.Render(m.helpLine())
	bodyHeight := m.height - lipgloss.Height(nav) - 1
	if bodyHeight < 1 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
	}
	body := lipgloss.Place(m.width, bodyHeight, lipgloss.Center, lipgloss.Center, content)
	body = overlay(body, m.field.Render(m.width, bodyHeight))
	navLine := lipgloss.PlaceHorizontal(m.width, lipgloss.Center, nav)
	helpLine := lipgloss.Place(m.width, 1, lipgloss.Center, lipgloss.Center, help)
	return navLine + "\n" + body + "\n" + helpLine
}

// Close cancels every pending timer and stops audio.
func (m *Model) Close() {
	m.cancel()
	clock.Cancel(m.fireworks)
	m.typer.Close()
	m.cake.Close()
	m.gift.Close()
	m.carousel.Close()
	m.player.Close()
}

func (m *Model) setActive(idx int) tea.Cmd {
	n := len(sectionNames)
	m.active = ((idx % n) + n) % n
	m.status = ""
	if m.active == sectionMessage && !m.messageStarted {
		m.startMessage()
	}
	if m.active == sectionWishes {
		return m.input.Focus()
	}
	m.input.Blur()
	return nil
}

func (m *Model) startMessage() {
	if len(m.deck.Messages) == 0 {
		return
	}
	m.messageStarted = true
	text := m.deck.Messages[m.messageIdx].Text
	if err := m.typer.Start(text, m.cfg.Speed, m.cfg.Delay); err != nil {
		log.Printf("start typing: %v", err)
	}
}

func (m *Model) submitWish() tea.Cmd {
	raw := m.input.Value()
	if !m.board.CanSubmit(raw) {
		return nil
	}
	m.status = "Sending..."
	ctx := m.ctx
	board := m.board
	return func() tea.Msg {
		w, ok := board.Submit(ctx, raw)
		return wishResultMsg{wish: w, ok: ok}
	}
}

func (m *Model) toggleAutoplay() {
	if m.carousel.Autoplaying() {
		m.carousel.StopAutoplay()
		return
	}
	if err := m.carousel.StartAutoplay(carousel.AutoplayInterval); err != nil {
		log.Printf("start autoplay: %v", err)
	}
}

func (m *Model) launchFireworks() {
	clock.Cancel(m.fireworks)
	m.fireworks = effects.Fireworks(m.sched, m.fx, m.showRand())
}

// showRand derives a private source for one fireworks show. Show callbacks
// run on timer goroutines, so they never share m.rnd.
func (m *Model) showRand() *rand.Rand {
	return rand.New(rand.NewSource(m.rnd.Int63()))
}

func (m *Model) onWishMade() {
	log.Printf("cake wish made")
	m.player.PlayChime()
}

// signal wakes the UI without blocking the caller.
func (m *Model) signal() {
	select {
	case m.updates <- struct{}{}:
	default:
	}
}

func (m *Model) waitForUpdate() tea.Cmd {
	ctx := m.ctx
	updates := m.updates
	return func() tea.Msg {
		select {
		case <-updates:
			return refreshMsg{}
		case <-ctx.Done():
			return nil
		}
	}
}

func (m *Model) startAnimation() tea.Cmd {
	if m.animating || !m.field.Active() {
		return nil
	}
	m.animating = true
	return frameTick()
}

func frameTick() tea.Cmd {
	return tea.Tick(frameInterval, func(time.Time) tea.Msg {
		return frameMsg{}
	})
}

func (m *Model) resize() {
	inputWidth := m.width/2 - 4
	if inputWidth < 10 {
		inputWidth = 10
	}
	m.input.Width = inputWidth
	m.wishView.Width = m.width - 4
	viewHeight := m.height - 16
	if viewHeight < 3 {
		viewHeight = 3
	}
	m.wishView.Height = viewHeight
	m.refreshWishView()
}

func (m *Model) refreshWishView() {
	entries := m.board.Entries()
	for len(m.placements) < len(entries) {
		m.placements = append(m.placements, m.placer.Place(cardOffset))
	}
	m.wishView.SetContent(renderCards(entries, m.placements, m.wishView.Width))
}

func (m *Model) helpLine() string {
	base := "←/→ sections · f fireworks · p play/pause · m mute · q quit"
	switch m.active {
	case sectionCake:
		return "b blow candles · " + base
	case sectionMemories:
		return "↑/↓ photos · a autoplay · " + base
	case sectionMessage:
		return "r restart · n next message · " + base
	case sectionWishes:
		return "enter send wish · ↑/↓ scroll · tab/shift+tab sections · esc quit"
	case sectionGift:
		return "o open gift · " + base
	}
	return base
}

func (m *Model) audioStatus() string {
	if !m.player.Available() {
		return "♪ audio unavailable"
	}
	state := "♪ paused"
	if m.player.Playing() {
		state = "♪ playing"
	}
	if m.player.Muted() {
		state += " (muted)"
	}
	return state
}

func (m *Model) wishCounter() string {
	return fmt.Sprintf("%d/%d wishes collected", m.board.Len(), m.board.Cap())
}
