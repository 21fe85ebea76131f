// Command wordle plays, solves and serves Wordle.
//
//	wordle play -w crane          # one round against a fixed word
//	wordle play -r -d 3 -t        # seeded random rounds from day 3, with stats
//	wordle solve                  # suggest guesses for a game played elsewhere
//	wordle stats -S state.json    # summarise a state file
//	wordle config -r -s 7 my.yaml # save flags as a config file
//	wordle serve                  # HTTP API
//
// Running without a subcommand is the same as `play`.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/robalobadob/wordle/apps/solver/internal/config"
	"github.com/robalobadob/wordle/apps/solver/internal/game"
	"github.com/robalobadob/wordle/apps/solver/internal/render"
	"github.com/robalobadob/wordle/apps/solver/internal/words"
)

// app is the state shared by every subcommand.
type app struct {
	in  io.Reader
	out io.Writer

	configPath string
	logLevel   string
	flags      gameFlags
	cfg        *config.Config
}

// gameFlags are the raw flag values; only flags the user set override the config file.
type gameFlags struct {
	word          string
	random        bool
	difficult     bool
	stats         bool
	day           int
	seed          uint64
	finalSet      string
	acceptableSet string
	state         string
}

func newRootCmd(in io.Reader, out io.Writer) *cobra.Command {
	a := &app{in: in, out: out}

	root := &cobra.Command{
		Use:           "wordle",
		Short:         "Wordle game, solver and server",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runPlay(cmd.Context())
		},
	}
	root.SetIn(in)
	root.SetOut(out)

	pf := root.PersistentFlags()
	pf.StringVarP(&a.configPath, "config", "c", "", "YAML or JSON config file")
	pf.StringVar(&a.logLevel, "log-level", "", "zerolog level (overrides LOG_LEVEL)")
	pf.StringVarP(&a.flags.word, "word", "w", "", "play against this answer")
	pf.BoolVarP(&a.flags.random, "random", "r", false, "pick answers at random")
	pf.BoolVarP(&a.flags.difficult, "difficult", "D", false, "hard mode: revealed hints must be reused")
	pf.BoolVarP(&a.flags.stats, "stats", "t", false, "print statistics after each round")
	pf.IntVarP(&a.flags.day, "day", "d", 1, "first day of the seeded random sequence")
	pf.Uint64VarP(&a.flags.seed, "seed", "s", 0, "seed of the random sequence")
	pf.StringVarP(&a.flags.finalSet, "final-set", "f", "", "file of possible answers")
	pf.StringVarP(&a.flags.acceptableSet, "acceptable-set", "a", "", "file of accepted guesses")
	pf.StringVarP(&a.flags.state, "state", "S", "", "JSON file recording every round")

	root.AddCommand(
		&cobra.Command{
			Use:   "play",
			Short: "Play interactive rounds on stdin",
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.runPlay(cmd.Context())
			},
		},
		&cobra.Command{
			Use:   "solve",
			Short: "Recommend guesses for a game played elsewhere",
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.runSolve(cmd.Context())
			},
		},
		&cobra.Command{
			Use:   "stats",
			Short: "Summarise the state file (or the server database)",
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.runStats(cmd.Context())
			},
		},
		&cobra.Command{
			Use:   "config [path]",
			Short: "Write the effective settings as a config file",
			Args:  cobra.MaximumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.runConfig(args)
			},
		},
		&cobra.Command{
			Use:   "serve",
			Short: "Start the HTTP API",
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.runServe(cmd.Context())
			},
		},
	)
	return root
}

// setup loads .env and the config file, applies flags, validates and configures logging.
func (a *app) setup(cmd *cobra.Command) error {
	_ = godotenv.Load()

	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	a.applyFlags(cmd, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}
	a.cfg = cfg

	level := cfg.Logging.Level
	if a.logLevel != "" {
		level = a.logLevel
	}
	if lvl, err := zerolog.ParseLevel(level); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}
	if render.IsTerminal(os.Stderr) {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
	return nil
}

func (a *app) applyFlags(cmd *cobra.Command, cfg *config.Config) {
	changed := cmd.Flags().Changed
	if changed("word") {
		cfg.Word = a.flags.word
	}
	if changed("random") {
		cfg.Random = a.flags.random
	}
	if changed("difficult") {
		cfg.Difficult = a.flags.difficult
	}
	if changed("stats") {
		cfg.Stats = a.flags.stats
	}
	if changed("day") {
		day := a.flags.day
		cfg.Day = &day
	}
	if changed("seed") {
		seed := a.flags.seed
		cfg.Seed = &seed
	}
	if changed("final-set") {
		cfg.FinalSet = a.flags.finalSet
	}
	if changed("acceptable-set") {
		cfg.AcceptableSet = a.flags.acceptableSet
	}
	if changed("state") {
		cfg.State = a.flags.state
	}
}

func (a *app) dictionary() (*words.Dictionary, error) {
	d, err := words.Load(a.cfg.WordSources())
	if err != nil {
		return nil, fmt.Errorf("failed to load word lists: %w", err)
	}
	f, acc := d.Stats()
	log.Debug().Int("final", f).Int("acceptable", acc).Msg("word lists loaded")
	return d, nil
}

func (a *app) ranker() *game.Ranker { return game.NewRanker(a.cfg.Ranking.Workers) }

func main() {
	if err := newRootCmd(os.Stdin, os.Stdout).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
