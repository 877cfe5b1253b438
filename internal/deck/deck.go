// Package deck loads the greeting content shown by the sections.
package deck

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/verte-zerg/bday/internal/model"
)

// Deck is the greeting content.
type Deck struct {
	Name     string         `yaml:"name"`
	Title    string         `yaml:"title"`
	Subtitle string         `yaml:"subtitle"`
	Messages []Message      `yaml:"messages"`
	Memories []model.Memory `yaml:"memories"`
	Surprise string         `yaml:"surprise"`
	Footer   []string       `yaml:"footer"`
}

// Message is a typed message and its signature.
type Message struct {
	Text      string `yaml:"text"`
	Signature string `yaml:"signature"`
}

// Default returns the built-in deck.
func Default() Deck {
	return Deck{
		Name:     "Madam Ji",
		Title:    "Happy Birthday",
		Subtitle: "Today is all about you. Press → to explore your surprises!",
		Messages: []Message{
			{
				Text: "You're the most special person in my life. Thank you for always being there with your beautiful smile, " +
					"your endless support, and your incredible friendship. Every day with you is a gift, and I'm so grateful " +
					"to have someone as amazing as you in my life. Here's to all the wonderful memories we've made and all " +
					"the incredible adventures still to come!",
				Signature: "With all my love",
			},
			{
				Text: "Aaj ka din hai kuch khaas, dil se nikli hai ek aawaz... Har khushi ho tere kadam tale, sapne saare ho " +
					"poore bhale. Happy Birthday! Tum jiyo hazaaron saal, har saal ho khushiyon ka jashn bemisaal.",
				Signature: "Your friend",
			},
		},
		Memories: []model.Memory{
			{ID: 1, Caption: "College days"},
			{ID: 2, Caption: "Farewell day"},
			{ID: 3, Caption: "Nandi hills memories"},
			{ID: 4, Caption: "College bunk"},
			{ID: 5, Caption: "Nandi hills"},
		},
		Surprise: "Surprise! Hope this brings a smile to your face!",
		Footer:   []string{"Days of Joy Ahead", "Endless Possibilities", "Love & Friendship"},
	}
}

// Load reads a YAML deck and fills missing fields from Default.
func Load(path string) (Deck, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Deck{}, fmt.Errorf("deck not found: %s", path)
		}
		return Deck{}, fmt.Errorf("read deck: %w", err)
	}
	return Parse(raw)
}

// Parse decodes YAML deck content and fills missing fields from Default.
func Parse(raw []byte) (Deck, error) {
	var d Deck
	if err := yaml.Unmarshal(raw, &d); err != nil {
		return Deck{}, fmt.Errorf("parse deck yaml: %w", err)
	}
	d = d.withDefaults()
	if err := d.Validate(); err != nil {
		return Deck{}, err
	}
	return d, nil
}

func (d Deck) withDefaults() Deck {
	def := Default()
	if strings.TrimSpace(d.Name) == "" {
		d.Name = def.Name
	}
	if strings.TrimSpace(d.Title) == "" {
		d.Title = def.Title
	}
	if d.Subtitle == "" {
		d.Subtitle = def.Subtitle
	}
	if len(d.Messages) == 0 {
		d.Messages = def.Messages
	}
	if d.Memories == nil {
		d.Memories = def.Memories
	}
	if d.Surprise == "" {
		d.Surprise = def.Surprise
	}
	if d.Footer == nil {
		d.Footer = def.Footer
	}
	for i := range d.Memories {
		if d.Memories[i].ID == 0 {
			d.Memories[i].ID = i + 1
		}
	}
	return d
}

// Validate checks that every message has text.
func (d Deck) Validate() error {
	for i, m := range d.Messages {
		if strings.TrimSpace(m.Text) == "" {
			return fmt.Errorf("deck message %d has no text", i+1)
		}
	}
	return nil
}

// Write encodes d as YAML.
func Write(w io.Writer, d Deck) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(d); err != nil {
		return fmt.Errorf("encode deck: %w", err)
	}
	return enc.Close()
}
