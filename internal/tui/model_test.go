package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/bday/internal/clock"
	"github.com/verte-zerg/bday/internal/deck"
	"github.com/verte-zerg/bday/internal/effects"
	"github.com/verte-zerg/bday/internal/model"
	"github.com/verte-zerg/bday/internal/typing"
	"github.com/verte-zerg/bday/internal/wishes"
)

func testConfig() model.Config {
	return model.Config{
		Name:      "Ana",
		Speed:     10 * time.Millisecond,
		Delay:     100 * time.Millisecond,
		MaxWishes: 3,
		Candles:   3,
		Seed:      7,
	}
}

func testDeck() deck.Deck {
	d := deck.Default()
	d.Messages = []deck.Message{
		{Text: "hi there", Signature: "Sam"},
		{Text: "second note", Signature: "Kim"},
	}
	return d
}

func newTestModel(t *testing.T) (*Model, *clock.Fake) {
	t.Helper()
	fake := clock.NewFake(time.Unix(0, 0))
	m, err := NewModel(testConfig(), testDeck(), nil, fake)
	if err != nil {
		t.Fatalf("new model: %v", err)
	}
	t.Cleanup(m.Close)
	return m, fake
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestNewModelRejectsInvalidConfig(t *testing.T) {
	cfg := testConfig()
	cfg.Speed = 0
	if _, err := NewModel(cfg, testDeck(), nil, clock.NewFake(time.Unix(0, 0))); err == nil {
		t.Fatalf("expected invalid speed error")
	}
	cfg = testConfig()
	cfg.MaxWishes = 0
	if _, err := NewModel(cfg, testDeck(), nil, clock.NewFake(time.Unix(0, 0))); err == nil {
		t.Fatalf("expected invalid capacity error")
	}
}

func TestSectionNavigationWraps(t *testing.T) {
	m, _ := newTestModel(t)
	m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	if m.active != sectionFooter {
		t.Fatalf("expected wrap to last section, got %d", m.active)
	}
	m.Update(tea.KeyMsg{Type: tea.KeyRight})
	if m.active != sectionHero {
		t.Fatalf("expected wrap to first section, got %d", m.active)
	}
	m.Update(tea.KeyMsg{Type: tea.KeyTab})
	if m.active != sectionCake {
		t.Fatalf("expected tab to advance, got %d", m.active)
	}
}

func TestMessageTypesOnFirstVisit(t *testing.T) {
	m, fake := newTestModel(t)
	if m.typer.Status() != typing.Idle {
		t.Fatalf("expected idle typer before visiting the message")
	}
	m.setActive(sectionMessage)
	if m.typer.Status() != typing.Delaying {
		t.Fatalf("expected delaying, got %s", m.typer.Status())
	}
	fake.Advance(100*time.Millisecond + 8*10*time.Millisecond)
	if m.typer.Status() != typing.Complete || m.typer.Text() != "hi there" {
		t.Fatalf("expected complete message, got %s %q", m.typer.Status(), m.typer.Text())
	}
	if !strings.Contains(m.View(), "Sam") {
		t.Fatalf("expected signature after completion")
	}

	m.setActive(sectionHero)
	m.setActive(sectionMessage)
	if m.typer.Status() != typing.Complete {
		t.Fatalf("expected revisit not to restart typing")
	}
}

func TestMessageNextAndRestart(t *testing.T) {
	m, fake := newTestModel(t)
	m.setActive(sectionMessage)
	m.Update(keyRunes("n"))
	if m.messageIdx != 1 {
		t.Fatalf("expected second message, got %d", m.messageIdx)
	}
	fake.Advance(time.Second)
	if m.typer.Text() != "second note" {
		t.Fatalf("unexpected text %q", m.typer.Text())
	}
	m.Update(keyRunes("r"))
	if m.typer.Revealed() != 0 || m.typer.Status() != typing.Delaying {
		t.Fatalf("expected restart, got %d %s", m.typer.Revealed(), m.typer.Status())
	}
}

func TestBlowCandlesKey(t *testing.T) {
	m, _ := newTestModel(t)
	m.Update(keyRunes("b"))
	if m.cake.WishMade() {
		t.Fatalf("expected blow to be ignored outside the cake section")
	}
	m.setActive(sectionCake)
	m.Update(keyRunes("b"))
	if !m.cake.WishMade() || m.cake.Lit() {
		t.Fatalf("expected candles blown")
	}
	if !m.field.Active() {
		t.Fatalf("expected confetti after blowing candles")
	}
	if !strings.Contains(m.View(), "Wish Made!") {
		t.Fatalf("expected wish made label")
	}
}

func TestGiftToggleKey(t *testing.T) {
	m, fake := newTestModel(t)
	m.setActive(sectionGift)
	m.Update(keyRunes("o"))
	if !m.gift.Open() {
		t.Fatalf("expected gift open")
	}
	if !strings.Contains(m.View(), m.deck.Surprise) {
		t.Fatalf("expected surprise text")
	}
	m.Update(keyRunes("o"))
	fake.Advance(time.Second)
	if m.gift.Open() || !m.gift.HasBeenOpened() {
		t.Fatalf("expected closed gift that has been opened")
	}
}

func TestWishSubmitFlow(t *testing.T) {
	m, fake := newTestModel(t)
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	m.setActive(sectionWishes)
	m.input.SetValue("  Happy birthday!  ")

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatalf("expected submit command")
	}
	done := make(chan tea.Msg, 1)
	go func() { done <- cmd() }()
	fake.BlockUntil(1)
	if !m.board.InFlight() || !strings.Contains(m.submitButton(), "Sending") {
		t.Fatalf("expected in-flight submission")
	}
	fake.Advance(wishes.DefaultLatency)

	var msg tea.Msg
	select {
	case msg = <-done:
	case <-time.After(time.Second):
		t.Fatalf("submit did not finish")
	}
	res, ok := msg.(wishResultMsg)
	if !ok || !res.ok || res.wish.Text != "Happy birthday!" {
		t.Fatalf("unexpected result %+v", msg)
	}
	m.Update(res)
	if m.input.Value() != "" {
		t.Fatalf("expected input cleared, got %q", m.input.Value())
	}
	if m.board.Len() != 1 || len(m.placements) != 1 {
		t.Fatalf("expected one wish and placement")
	}
	if !strings.Contains(m.wishView.View(), "Happy birthday!") {
		t.Fatalf("expected wish card in view")
	}
}

func TestRejectedSubmitClearsSendingStatus(t *testing.T) {
	m, fake := newTestModel(t)
	m.setActive(sectionWishes)
	m.input.SetValue("first")

	_, first := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	_, second := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if first == nil || second == nil {
		t.Fatalf("expected both presses to produce submit commands")
	}
	done := make(chan tea.Msg, 1)
	go func() { done <- first() }()
	fake.BlockUntil(1)

	res, ok := second().(wishResultMsg)
	if !ok || res.ok {
		t.Fatalf("expected second submit to be rejected while in flight")
	}
	m.Update(res)
	if m.status != "" {
		t.Fatalf("expected status cleared after rejection, got %q", m.status)
	}

	fake.Advance(wishes.DefaultLatency)
	select {
	case msg := <-done:
		m.Update(msg)
	case <-time.After(time.Second):
		t.Fatalf("first submit did not finish")
	}
	if m.board.Len() != 1 || !strings.Contains(m.status, "Wish sent") {
		t.Fatalf("expected one accepted wish, got %d %q", m.board.Len(), m.status)
	}
}

func TestWishSubmitIgnoresBlankInput(t *testing.T) {
	m, _ := newTestModel(t)
	m.setActive(sectionWishes)
	m.input.SetValue("   ")
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd != nil {
		t.Fatalf("expected no submit command for blank input")
	}
	if strings.Contains(m.submitButton(), "(enter)") {
		t.Fatalf("expected disabled submit button")
	}
}

func TestWishSectionKeepsLettersForInput(t *testing.T) {
	m, _ := newTestModel(t)
	m.setActive(sectionWishes)
	m.Update(keyRunes("q"))
	if m.input.Value() != "q" {
		t.Fatalf("expected q typed into input, got %q", m.input.Value())
	}
	if m.active != sectionWishes {
		t.Fatalf("expected to stay on wishes")
	}
}

func TestFireworksKey(t *testing.T) {
	m, fake := newTestModel(t)
	m.Update(keyRunes("f"))
	fake.Advance(effects.FireworksDuration)
	if m.field.Len() == 0 {
		t.Fatalf("expected fireworks particles")
	}
	if fake.Pending() != 0 {
		t.Fatalf("expected fireworks to finish, %d pending", fake.Pending())
	}
}

func TestFireworksShowsGetPrivateSources(t *testing.T) {
	a, _ := newTestModel(t)
	b, _ := newTestModel(t)
	ra := a.showRand()
	if ra == a.rnd {
		t.Fatalf("expected a show source distinct from the model source")
	}
	first := ra.Int63()
	if first != b.showRand().Int63() {
		t.Fatalf("expected show sources to follow the model seed")
	}
	if a.showRand().Int63() == first {
		t.Fatalf("expected successive shows to draw fresh seeds")
	}
}

func TestFrameTickStopsWhenFieldIdle(t *testing.T) {
	m, _ := newTestModel(t)
	if cmd := m.startAnimation(); cmd != nil {
		t.Fatalf("expected no animation for an empty field")
	}
	m.fx.Launch(effects.Celebrate)
	if cmd := m.startAnimation(); cmd == nil || !m.animating {
		t.Fatalf("expected animation to start")
	}
	if cmd := m.startAnimation(); cmd != nil {
		t.Fatalf("expected a single frame loop")
	}
	m.field.Clear()
	_, cmd := m.Update(frameMsg{})
	if cmd != nil || m.animating {
		t.Fatalf("expected animation to stop")
	}
}

func TestSignalDoesNotBlock(t *testing.T) {
	m, _ := newTestModel(t)
	for i := 0; i < 5; i++ {
		m.signal()
	}
	if len(m.updates) != 1 {
		t.Fatalf("expected coalesced signal, got %d", len(m.updates))
	}
	if msg := m.waitForUpdate()(); msg != (refreshMsg{}) {
		t.Fatalf("expected refresh message, got %v", msg)
	}
}

func TestCloseCancelsTimers(t *testing.T) {
	fake := clock.NewFake(time.Unix(0, 0))
	cfg := testConfig()
	cfg.Autoplay = true
	m, err := NewModel(cfg, testDeck(), nil, fake)
	if err != nil {
		t.Fatalf("new model: %v", err)
	}
	m.setActive(sectionMessage)
	m.setActive(sectionCake)
	m.Update(keyRunes("b"))
	m.Update(keyRunes("f"))
	if fake.Pending() == 0 {
		t.Fatalf("expected pending timers before close")
	}
	m.Close()
	if fake.Pending() != 0 {
		t.Fatalf("expected no pending timers after close, got %d", fake.Pending())
	}
	if msg := m.waitForUpdate()(); msg != nil {
		if _, ok := msg.(refreshMsg); !ok {
			t.Fatalf("unexpected message after close: %v", msg)
		}
	}
}

func TestViewLayout(t *testing.T) {
	m, _ := newTestModel(t)
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	out := m.View()
	if got := strings.Count(out, "\n") + 1; got != 30 {
		t.Fatalf("expected 30 lines, got %d", got)
	}
	if !containsAll(out, []string{"Hero", "Memories", "Happy Birthday, Ana!"}) {
		t.Fatalf("view missing expected segments")
	}
}

func TestRenderFooterSummary(t *testing.T) {
	m, _ := newTestModel(t)
	out := m.renderFooter()
	if !containsAll(out, []string{"Happy Birthday, Ana!", "0/3 wishes collected", "cake wishes: 0", "Love & Friendship"}) {
		t.Fatalf("footer missing expected segments: %s", out)
	}
}

func TestOverlayFillsBlankLinesOnly(t *testing.T) {
	body := "    \ntext\n    "
	out := overlay(body, []string{" *  ", " +  ", "    "})
	want := " *  \ntext\n    "
	if out != want {
		t.Fatalf("expected %q, got %q", want, out)
	}
}

func TestCakeArt(t *testing.T) {
	lit := cakeArt(3, true)
	if len(lit) != 6 || strings.Count(lit[0], "*") != 3 {
		t.Fatalf("expected three flames, got %q", lit[0])
	}
	out := cakeArt(3, false)
	if strings.Contains(out[0], "*") {
		t.Fatalf("expected no flames when blown out")
	}
}

func containsAll(haystack string, needles []string) bool {
	for _, needle := range needles {
		if !strings.Contains(haystack, needle) {
			return false
		}
	}
	return true
}
