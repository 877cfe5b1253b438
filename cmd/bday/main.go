// Package main provides the CLI entrypoint for bday.
package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/verte-zerg/bday/internal/audio"
	"github.com/verte-zerg/bday/internal/cake"
	"github.com/verte-zerg/bday/internal/config"
	"github.com/verte-zerg/bday/internal/deck"
	"github.com/verte-zerg/bday/internal/model"
	"github.com/verte-zerg/bday/internal/tui"
)

const (
	defaultSpeedMs   = 50
	defaultDelayMs   = 1000
	defaultMaxWishes = 15
	defaultCandles   = cake.DefaultCandles
)

var (
	greetName      string
	greetDeck      string
	greetSpeed     int
	greetDelay     int
	greetMaxWishes int
	greetCandles   int
	greetAutoplay  bool
	greetAudio     bool
	greetSeed      int64

	deckOut   string
	deckForce bool

	cardMessage int
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "bday",
		Short:         "Terminal birthday greeting",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runGreetingCmd,
	}

	addGreetingFlags(rootCmd)
	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newDeckCmd())
	rootCmd.AddCommand(newCardCmd())

	return rootCmd
}

func addGreetingFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&greetName, "name", "", "name of the birthday person (default: from deck)")
	cmd.Flags().StringVar(&greetDeck, "deck", "", "path to a YAML greeting deck")
	cmd.Flags().IntVar(&greetSpeed, "speed", defaultSpeedMs, "typing interval in milliseconds")
	cmd.Flags().IntVar(&greetDelay, "delay", defaultDelayMs, "delay before typing starts in milliseconds")
	cmd.Flags().IntVar(&greetMaxWishes, "max-wishes", defaultMaxWishes, "wish wall capacity")
	cmd.Flags().IntVar(&greetCandles, "candles", defaultCandles, "number of candles on the cake")
	cmd.Flags().BoolVar(&greetAutoplay, "autoplay", true, "advance the memories carousel automatically")
	cmd.Flags().BoolVar(&greetAudio, "audio", true, "play the birthday tune")
	cmd.Flags().Int64Var(&greetSeed, "seed", 0, "random seed for confetti and card layout (0: time based)")
}

func runGreetingCmd(cmd *cobra.Command, _ []string) error {
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

	player := audio.NewPlayer()
	if cfg.Audio {
		if err := player.Init(); err != nil {
			logErrf("audio unavailable, continuing without sound: %v\n", err)
		} else {
			player.Play()
		}
	}

	if cfg.Debug {
		logPath := config.DefaultLogPath()
		if err := config.EnsureParent(logPath); err != nil {
			return err
		}
		f, err := tea.LogToFile(logPath, "bday")
		if err != nil {
			return fmt.Errorf("failed to open debug log: %w", err)
		}
		defer func() {
			if cerr := f.Close(); cerr != nil {
				logErrf("failed to close debug log: %v\n", cerr)
			}
		}()
	} else {
		log.SetOutput(io.Discard)
	}

	m, err := tui.NewModel(cfg, d, player, nil)
	if err != nil {
		player.Close()
		return err
	}
	defer m.Close()

	program := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

// resolveConfig layers defaults, the config file, BDAY_* variables and
// explicitly set flags, in that order.
func resolveConfig(cmd *cobra.Command) (model.Config, error) {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return model.Config{}, fmt.Errorf("failed to load config: %w", err)
	}
	envCfg, err := config.LoadEnv()
	if err != nil {
		return model.Config{}, fmt.Errorf("failed to load environment: %w", err)
	}
	gc := envCfg.Merge(fileCfg.Greeting)

	applyStringConfig(cmd, "name", &greetName, gc.Name)
	applyStringConfig(cmd, "deck", &greetDeck, gc.Deck)
	applyIntConfig(cmd, "speed", &greetSpeed, gc.SpeedMs)
	applyIntConfig(cmd, "delay", &greetDelay, gc.DelayMs)
	applyIntConfig(cmd, "max-wishes", &greetMaxWishes, gc.MaxWishes)
	applyIntConfig(cmd, "candles", &greetCandles, gc.Candles)
	applyBoolConfig(cmd, "autoplay", &greetAutoplay, gc.Autoplay)
	applyBoolConfig(cmd, "audio", &greetAudio, gc.Audio)
	applyInt64Config(cmd, "seed", &greetSeed, gc.Seed)

	cfg := model.Config{
		Name:      strings.TrimSpace(greetName),
		DeckPath:  greetDeck,
		Speed:     time.Duration(greetSpeed) * time.Millisecond,
		Delay:     time.Duration(greetDelay) * time.Millisecond,
		MaxWishes: greetMaxWishes,
		Candles:   greetCandles,
		Autoplay:  greetAutoplay,
		Audio:     greetAudio,
		Seed:      greetSeed,
		Debug:     envCfg.Debug,
	}
	if err := validateConfig(cfg); err != nil {
		return model.Config{}, err
	}
	return cfg, nil
}

func loadDeck(path string) (deck.Deck, error) {
	if path != "" {
		d, err := deck.Load(path)
		if err != nil {
			return deck.Deck{}, fmt.Errorf("failed to load deck: %w", err)
		}
		return d, nil
	}
	defaultPath := config.DefaultDeckPath()
	if _, err := os.Stat(defaultPath); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return deck.Default(), nil
		}
		return deck.Deck{}, fmt.Errorf("failed to stat deck: %w", err)
	}
	d, err := deck.Load(defaultPath)
	if err != nil {
		return deck.Deck{}, fmt.Errorf("failed to load deck: %w", err)
	}
	return d, nil
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := config.EnsureParent(path); err != nil {
		return err
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func newDeckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "deck",
		Short: "Write the default greeting deck as YAML",
		Args:  cobra.NoArgs,
		RunE:  runDeckCmd,
	}
	cmd.Flags().StringVar(&deckOut, "out", "", "output path (default: stdout)")
	cmd.Flags().BoolVar(&deckForce, "force", false, "overwrite an existing file")
	return cmd
}

func runDeckCmd(cmd *cobra.Command, _ []string) error {
	d := deck.Default()
	if deckOut == "" {
		return deck.Write(cmd.OutOrStdout(), d)
	}
	if !deckForce {
		if _, err := os.Stat(deckOut); err == nil {
			return fmt.Errorf("deck already exists: %s (use --force to overwrite)", deckOut)
		} else if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat deck: %w", err)
		}
	}
	if err := writeDeckFile(deckOut, d); err != nil {
		return fmt.Errorf("failed to write %s: %w", deckOut, err)
	}
	logErrf("Wrote %s\n", deckOut)
	return nil
}

func writeDeckFile(path string, d deck.Deck) error {
	if err := config.EnsureParent(path); err != nil {
		return err
	}
	tmpFile, err := os.CreateTemp(filepath.Dir(path), "deck-*.yaml")
	if err != nil {
		return fmt.Errorf("failed to create temp deck: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath)
	}()

	if err := deck.Write(tmpFile, d); err != nil {
		return err
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close deck: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to write deck: %w", err)
	}
	return nil
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyInt64Config(cmd *cobra.Command, name string, target, value *int64) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyBoolConfig(cmd *cobra.Command, name string, target, value *bool) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# bday configuration
# Uncomment a value to enable it. BDAY_* variables override the file,
# CLI flags override both.

[greeting]
# name = "Madam Ji"       # Name shown in the greeting (default: from deck)
# deck = "%s"
# speed-ms = %d           # Typing interval in milliseconds
# delay-ms = %d         # Delay before typing starts
# max-wishes = %d         # Wish wall capacity
# candles = %d             # Candles on the cake (1-%d)
# autoplay = true         # Advance the memories carousel automatically
# audio = true            # Play the birthday tune
# seed = 0                # Random seed (0: time based)
`,
		config.DefaultDeckPath(),
		defaultSpeedMs,
		defaultDelayMs,
		defaultMaxWishes,
		defaultCandles,
		cake.MaxCandles,
	)
}

func validateConfig(cfg model.Config) error {
	if cfg.Speed < time.Millisecond {
		return fmt.Errorf("--speed must be >= 1")
	}
	if cfg.Delay < 0 {
		return fmt.Errorf("--delay must be >= 0")
	}
	if cfg.MaxWishes <= 0 {
		return fmt.Errorf("--max-wishes must be > 0")
	}
	if cfg.Candles <= 0 || cfg.Candles > cake.MaxCandles {
		return fmt.Errorf("--candles must be between 1 and %d", cake.MaxCandles)
	}
	return nil
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
