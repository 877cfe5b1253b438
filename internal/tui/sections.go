package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/bday/internal/generator"
	"github.com/verte-zerg/bday/internal/model"
	"github.com/verte-zerg/bday/internal/typing"
)

const (
	cardWidth    = 28
	cardsPerRow  = 3
	messageWidth = 72
)

var (
	flameStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFA500")).Bold(true)
	cakeStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFB6C1"))
	giftStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF69B4"))
	ribbon     = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFE066"))
)

func (m *Model) renderNav() string {
	items := make([]string, 0, len(sectionNames))
	for i, name := range sectionNames {
		if i == m.active {
			items = append(items, activeNavStyle.Render(name))
			continue
		}
		items = append(items, inactiveNavStyle.Render(name))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, items...)
}

func (m *Model) renderSection() string {
	switch m.active {
	case sectionCake:
		return m.renderCake()
	case sectionMemories:
		return m.renderMemories()
	case sectionMessage:
		return m.renderMessage()
	case sectionWishes:
		return m.renderWishes()
	case sectionGift:
		return m.renderGift()
	case sectionFooter:
		return m.renderFooter()
	default:
		return m.renderHero()
	}
}

func (m *Model) renderHero() string {
	lines := []string{
		titleStyle.Render(fmt.Sprintf("🎉 %s, %s! 🎉", m.deck.Title, m.cfg.Name)),
		"",
		subtitleStyle.Render(m.deck.Subtitle),
		"",
		mutedStyle.Render(m.audioStatus()),
	}
	return lipgloss.JoinVertical(lipgloss.Center, lines...)
}

func (m *Model) renderCake() string {
	lines := []string{titleStyle.Render("Make a Wish! 🎂"), ""}
	lines = append(lines, cakeArt(m.cake.Candles(), m.cake.Lit())...)
	lines = append(lines, "")

	switch {
	case m.cake.CanBlow():
		lines = append(lines, buttonStyle.Render("Blow Out the Candles 🌟 (b)"))
	case m.cake.WishMade():
		lines = append(lines, disabledButtonStyle.Render("Wish Made! ✨"))
	default:
		lines = append(lines, disabledButtonStyle.Render("Candles Blown Out! 🎉"))
	}
	if m.cake.WishMade() {
		lines = append(lines, "", accentStyle.Render("🌟 Your wish has been sent to the universe! 🌟"))
	}
	if n := m.cake.Wishes(); n > 0 {
		lines = append(lines, mutedStyle.Render(fmt.Sprintf("wishes made: %d", n)))
	}
	return lipgloss.JoinVertical(lipgloss.Center, lines...)
}

func cakeArt(candles int, lit bool) []string {
	flames := make([]string, candles)
	wicks := make([]string, candles)
	for i := range flames {
		flames[i] = " "
		if lit {
			flames[i] = flameStyle.Render("*")
		}
		wicks[i] = "|"
	}
	width := candles*3 + 1
	return []string{
		" " + strings.Join(flames, "  "),
		" " + strings.Join(wicks, "  "),
		cakeStyle.Render(" " + strings.Repeat("_", width) + " "),
		cakeStyle.Render("|" + strings.Repeat("~", width) + "|"),
		cakeStyle.Render("|" + strings.Repeat(" ", width) + "|"),
		cakeStyle.Render("|" + strings.Repeat("_", width) + "|"),
	}
}

func (m *Model) renderMemories() string {
	lines := []string{titleStyle.Render("Beautiful Memories 📸"), ""}
	mem, ok := m.carousel.Current()
	if !ok {
		lines = append(lines, mutedStyle.Render("No memories yet."))
		return lipgloss.JoinVertical(lipgloss.Center, lines...)
	}
	lines = append(lines, renderMemoryCard(mem), "", m.renderDots())
	state := "autoplay off"
	if m.carousel.Autoplaying() {
		state = "autoplay on"
	}
	lines = append(lines, mutedStyle.Render(state))
	return lipgloss.JoinVertical(lipgloss.Center, lines...)
}

func renderMemoryCard(mem model.Memory) string {
	art := mem.Art
	if art == "" {
		art = "📷"
	}
	body := []string{art, "", accentStyle.Render(mem.Caption)}
	if mem.Date != "" {
		body = append(body, mutedStyle.Render(mem.Date))
	}
	return cardStyle.Width(cardWidth + 8).Align(lipgloss.Center).Render(strings.Join(body, "\n"))
}

func (m *Model) renderDots() string {
	dots := make([]string, m.carousel.Len())
	for i := range dots {
		dots[i] = mutedStyle.Render("○")
		if i == m.carousel.Index() {
			dots[i] = titleStyle.Render("●")
		}
	}
	return strings.Join(dots, " ")
}

func (m *Model) renderMessage() string {
	if len(m.deck.Messages) == 0 {
		return mutedStyle.Render("No message.")
	}
	msg := m.deck.Messages[m.messageIdx]
	width := messageWidth
	if m.width > 0 && int(float64(m.width)*0.7) < width {
		width = int(float64(m.width) * 0.7)
	}
	if width < 10 {
		width = 10
	}

	status := m.typer.Status()
	cursorView := ""
	if status == typing.Typing || status == typing.Delaying {
		m.cursor.Blink = !m.typer.CursorVisible()
		cursorView = m.cursor.View()
	}
	text := wrapStyledRunes(buildStyledRunes([]rune(m.typer.Text()), cursorView), width)

	lines := []string{titleStyle.Render("A Special Message 💌"), "", quoteStyle.Width(width + 6).Render(text)}
	if status == typing.Complete {
		lines = append(lines,
			"",
			titleStyle.Render("💖 💖 💖 💖 💖"),
			subtitleStyle.Italic(true).Render("— "+msg.Signature),
		)
	}
	lines = append(lines, "", mutedStyle.Render(fmt.Sprintf("message %d/%d · %s", m.messageIdx+1, len(m.deck.Messages), status)))
	return lipgloss.JoinVertical(lipgloss.Center, lines...)
}

func (m *Model) renderWishes() string {
	lines := []string{
		titleStyle.Render("Birthday Wish Wall 📝"),
		mutedStyle.Render("Leave a birthday wish. Every wish is a little star on the wall."),
		"",
		m.input.View(),
		mutedStyle.Render(fmt.Sprintf("%d/%d characters · %s", len([]rune(m.input.Value())), m.input.CharLimit, m.wishCounter())),
		"",
		m.submitButton(),
	}
	if m.status != "" {
		lines = append(lines, accentStyle.Render(m.status))
	}
	lines = append(lines, "")
	if m.board.Len() == 0 {
		lines = append(lines, mutedStyle.Render("Be the first to leave a beautiful birthday wish!"))
	} else {
		lines = append(lines, m.wishView.View())
	}
	return lipgloss.JoinVertical(lipgloss.Center, lines...)
}

// submitButton renders the send control, enabled exactly when a submit
// would be accepted.
func (m *Model) submitButton() string {
	switch {
	case m.board.InFlight():
		return disabledButtonStyle.Render("Sending...")
	case m.board.Full():
		return disabledButtonStyle.Render("Wish Wall Full ✨")
	case m.board.CanSubmit(m.input.Value()):
		return buttonStyle.Render("Send Wish 💫 (enter)")
	default:
		return disabledButtonStyle.Render("Send Wish 💫")
	}
}

func renderCards(entries []model.Wish, placements []generator.Placement, width int) string {
	if len(entries) == 0 {
		return ""
	}
	perRow := cardsPerRow
	if width > 0 {
		perRow = width / (cardWidth + 4)
	}
	if perRow < 1 {
		perRow = 1
	}
	var rows []string
	var row []string
	for i, w := range entries {
		row = append(row, renderCard(w, placements[i]))
		if len(row) == perRow {
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// renderCard draws one wish. Terminals cannot rotate text, so the tilt moves
// the pin across the top edge instead.
func renderCard(w model.Wish, p generator.Placement) string {
	pin := strings.Repeat(" ", (cardWidth-2)/2+p.Tilt) + "📌"
	body := strings.Join([]string{
		pin,
		wrapPlain("\""+w.Text+"\"", cardWidth-2),
		"",
		mutedStyle.Render(fmt.Sprintf("— %s · %s", w.Author, w.SubmittedAt.Format("Jan 2"))),
	}, "\n")
	style := cardStyle.
		Width(cardWidth).
		BorderForeground(lipgloss.Color(p.Color)).
		MarginLeft(1 + p.OffsetX + cardOffset).
		MarginTop(max(0, p.OffsetY))
	return style.Render(body)
}

func (m *Model) renderGift() string {
	lines := []string{titleStyle.Render("Special Surprise Box 🎁"), ""}
	if m.gift.Open() {
		lines = append(lines, openGiftArt()...)
		lines = append(lines, "", accentStyle.Render(m.deck.Surprise), "", disabledButtonStyle.Render("Close the box (o)"))
		return lipgloss.JoinVertical(lipgloss.Center, lines...)
	}
	lines = append(lines, closedGiftArt()...)
	prompt := "Click to open your surprise!"
	if m.gift.HasBeenOpened() {
		prompt = "Open it again? 🎀"
	}
	lines = append(lines, "", buttonStyle.Render(prompt+" (o)"))
	return lipgloss.JoinVertical(lipgloss.Center, lines...)
}

func closedGiftArt() []string {
	return []string{
		ribbon.Render("   \\  /   "),
		giftStyle.Render(" ___") + ribbon.Render("\\/") + giftStyle.Render("___ "),
		giftStyle.Render("|   ") + ribbon.Render("||") + giftStyle.Render("   |"),
		giftStyle.Render("|===") + ribbon.Render("||") + giftStyle.Render("===|"),
		giftStyle.Render("|___") + ribbon.Render("||") + giftStyle.Render("___|"),
	}
}

func openGiftArt() []string {
	return []string{
		ribbon.Render(" ✨ \\  / ✨ "),
		giftStyle.Render("  ___") + ribbon.Render("\\/") + giftStyle.Render("___  "),
		"",
		giftStyle.Render(" |   ") + ribbon.Render("||") + giftStyle.Render("   | "),
		giftStyle.Render(" |___") + ribbon.Render("||") + giftStyle.Render("___| "),
	}
}

func (m *Model) renderFooter() string {
	phrases := make([]string, 0, len(m.deck.Footer))
	for _, p := range m.deck.Footer {
		phrases = append(phrases, subtitleStyle.Render(p))
	}
	lines := []string{
		titleStyle.Render(fmt.Sprintf("Happy Birthday, %s! 💖", m.cfg.Name)),
		"",
		strings.Join(phrases, mutedStyle.Render("  ✦  ")),
		"",
		mutedStyle.Render(fmt.Sprintf("%s · cake wishes: %d", m.wishCounter(), m.cake.Wishes())),
		footerStyle.Render("Made with 💖"),
	}
	return lipgloss.JoinVertical(lipgloss.Center, lines...)
}

// overlay draws confetti on the blank lines of body.
func overlay(body string, layer []string) string {
	if len(layer) == 0 {
		return body
	}
	lines := strings.Split(body, "\n")
	for i := range lines {
		if i >= len(layer) {
			break
		}
		if strings.TrimSpace(lines[i]) == "" && strings.TrimSpace(layer[i]) != "" {
			lines[i] = layer[i]
		}
	}
	return strings.Join(lines, "\n")
}
