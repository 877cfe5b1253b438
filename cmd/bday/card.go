package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/verte-zerg/bday/internal/deck"
)

const (
	terminalWidthBackup = 80
	maxCardWidth        = 72
	minCardWidth        = 20
)

var (
	cardTitleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF69B4")).Bold(true)
	cardTextStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0"))
	cardSignStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFB6C1")).Italic(true)
	cardBoxStyle   = lipgloss.NewStyle().
			Padding(1, 3).
			Border(lipgloss.DoubleBorder(), true).
			BorderForeground(lipgloss.Color("#FF69B4"))
)

func newCardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "card",
		Short: "Print a static greeting card",
		Args:  cobra.NoArgs,
		RunE:  runCardCmd,
	}
	addGreetingFlags(cmd)
	cmd.Flags().IntVar(&cardMessage, "message", 1, "message number to print")
	return cmd
}

func runCardCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	d, err := loadDeck(cfg.DeckPath)
	if err != nil {
		return err
	}
	if cfg.Name == "" {
		cfg.Name = d.Name
	}
	card, err := renderGreetingCard(cfg.Name, d, cardMessage, terminalWidth())
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintln(cmd.OutOrStdout(), card); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func renderGreetingCard(name string, d deck.Deck, message, width int) (string, error) {
	if message < 1 || message > len(d.Messages) {
		return "", fmt.Errorf("--message must be between 1 and %d", len(d.Messages))
	}
	msg := d.Messages[message-1]

	inner := width - cardBoxStyle.GetHorizontalFrameSize()
	if inner > maxCardWidth {
		inner = maxCardWidth
	}
	if inner < minCardWidth {
		inner = minCardWidth
	}
	body := strings.Join([]string{
		cardTitleStyle.Render(fmt.Sprintf("🎉 %s, %s! 🎉", d.Title, name)),
		"",
		cardTextStyle.Width(inner).Render(msg.Text),
		"",
		cardSignStyle.Render("— " + msg.Signature),
	}, "\n")
	return cardBoxStyle.Render(body), nil
}

func terminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return terminalWidthBackup
	}
	return width
}
