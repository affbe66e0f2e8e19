package main

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"relife/internal/app"
	"relife/internal/bot"
	"relife/internal/content"
	"relife/internal/domain"
	"relife/internal/ports"
	"relife/internal/storage/jsonl"
	"relife/internal/storage/sqlite"
)

// defaultMaxSteps bounds a single simulated game.
const defaultMaxSteps = 20000

var errPlayerCount = errors.New("players must be between 2 and 4")

// simulator plays bot-only games and records them.
type simulator struct {
	catalog  *content.Catalog
	rules    domain.Rules
	log      ports.Logger
	actions  ports.ActionLog   // optional
	results  ports.ResultStore // optional
	maxSteps int
}

// simGame is the outcome of one simulated game.
type simGame struct {
	MatchID string
	Seed    int64
	Turns   int
	Result  domain.GameResult
}

// play runs one game to the end. The same seed and player count replay the same game.
func (s *simulator) play(ctx context.Context, seed int64, players int) (simGame, error) {
	if players < app.MinPlayersToStartGame || players > app.MaxPlayers {
		return simGame{}, errPlayerCount
	}
	if err := bot.LoadIdentities(""); err != nil {
		return simGame{}, err
	}

	rng := rand.New(rand.NewSource(seed))
	svc := app.NewService(s.catalog, s.rules, rng)

	seeds := make([]app.PlayerSeed, players)
	agents := make(map[string]*bot.Agent, players)
	for i := range seeds {
		identity := bot.GetBotIdentity(i)
		agent, err := bot.NewAgent(identity, svc.Tables(), rng)
		if err != nil {
			return simGame{}, err
		}
		seeds[i] = app.PlayerSeed{ID: identity.ID, Name: agent.Name, CharacterID: identity.CharacterID, IsAI: true}
		agents[identity.ID] = agent
	}

	st, events, err := svc.NewGame(seeds)
	if err != nil {
		return simGame{}, fmt.Errorf("new game: %w", err)
	}
	if err := s.record(events); err != nil {
		return simGame{}, err
	}

	maxSteps := s.maxSteps
	if maxSteps <= 0 {
		maxSteps = defaultMaxSteps
	}
	var recordErr error
	driver := &bot.Driver{Service: svc, Agents: agents, AutoAdvance: true}
	st, err = driver.Run(st, maxSteps, func(_ *domain.GameState, evs []app.Event) {
		if recordErr == nil {
			recordErr = s.record(evs)
		}
	})
	if err != nil {
		return simGame{}, fmt.Errorf("seed %d: %w", seed, err)
	}
	if recordErr != nil {
		return simGame{}, recordErr
	}

	res, err := svc.Result(st)
	if err != nil {
		return simGame{}, err
	}
	game := simGame{MatchID: uuid.NewString(), Seed: seed, Turns: st.Turn, Result: *res}
	if s.results != nil {
		if err := s.results.SaveResult(ctx, game.MatchID, game.Result); err != nil {
			return simGame{}, err
		}
	}
	s.log.Debug("game %s (seed %d) finished on turn %d, winner %s", game.MatchID, seed, game.Turns, res.Rankings[0].Player.Name)
	return game, nil
}

func (s *simulator) record(events []app.Event) error {
	if s.actions == nil {
		return nil
	}
	for _, ev := range events {
		if err := s.actions.Append(ev); err != nil {
			return fmt.Errorf("append action log: %w", err)
		}
	}
	return nil
}

func newSimulateCmd(c *cli) *cobra.Command {
	var (
		games    int
		players  int
		seed     int64
		maxSteps int
	)

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Play bot-only games and print the standings",
		Long: `Plays one or more games between bots. Games are seeded: --seed S replays the
same games, game i using seed S+i. Events can be appended to a JSONL action log
and final standings stored in a sqlite database.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if games < 1 {
				return errors.New("games must be at least 1")
			}
			cat, err := c.catalog()
			if err != nil {
				return err
			}
			sim := &simulator{catalog: cat, rules: c.cfg.Rules, log: c.log, maxSteps: maxSteps}

			if path := c.cfg.ActionLog; path != "" {
				store, err := jsonl.NewStore(path)
				if err != nil {
					return err
				}
				defer store.Close()
				sim.actions = store
			}
			if path := c.cfg.ResultsDB; path != "" {
				store, err := sqlite.Open(path)
				if err != nil {
					return err
				}
				defer store.Close()
				sim.results = store
			}

			if !cmd.Flags().Changed("seed") {
				seed = time.Now().UnixNano()
			}

			var bar *progressbar.ProgressBar
			if games > 1 {
				bar = progressbar.NewOptions(games,
					progressbar.OptionSetWriter(cmd.ErrOrStderr()),
					progressbar.OptionSetDescription("Simulating"),
					progressbar.OptionShowCount(),
					progressbar.OptionClearOnFinish(),
				)
			}

			out := cmd.OutOrStdout()
			played := make([]simGame, 0, games)
			for i := 0; i < games; i++ {
				game, err := sim.play(cmd.Context(), seed+int64(i), players)
				if err != nil {
					return err
				}
				played = append(played, game)
				if bar != nil {
					_ = bar.Add(1)
				}
			}

			if games == 1 {
				g := played[0]
				fmt.Fprintf(out, "%s\n", titleStyle.Render(fmt.Sprintf("Game %s", g.MatchID)))
				fmt.Fprintf(out, "%s\n", infoStyle.Render(fmt.Sprintf("seed %d, %d turns", g.Seed, g.Turns)))
				fmt.Fprintln(out, renderRankings(g.Result))
				return nil
			}
			fmt.Fprintf(out, "%s\n", titleStyle.Render(fmt.Sprintf("%d games", games)))
			fmt.Fprintf(out, "%s\n", infoStyle.Render(fmt.Sprintf("seeds %d to %d", seed, seed+int64(games)-1)))
			fmt.Fprintln(out, renderSummary(summarize(played)))
			return nil
		},
	}

	cmd.Flags().IntVarP(&games, "games", "n", 1, "number of games to play")
	cmd.Flags().IntVarP(&players, "players", "p", 3, "bots per game (2-4)")
	cmd.Flags().Int64Var(&seed, "seed", 0, "base random seed (defaults to the clock)")
	cmd.Flags().IntVar(&maxSteps, "max-steps", defaultMaxSteps, "step budget per game")
	cmd.Flags().String("log", "", "append game events to this JSONL file")
	cmd.Flags().String("db", "", "store final standings in this sqlite file")
	_ = c.v.BindPFlag("action_log", cmd.Flags().Lookup("log"))
	_ = c.v.BindPFlag("results_db", cmd.Flags().Lookup("db"))
	return cmd
}

// standing aggregates one bot's results across games.
type standing struct {
	Name  string
	Wins  int
	Games int
	Total int
}

// summarize tallies wins and total score per player name, best first.
func summarize(games []simGame) []standing {
	byName := map[string]*standing{}
	var order []string
	for _, g := range games {
		for _, r := range g.Result.Rankings {
			s, ok := byName[r.Player.Name]
			if !ok {
				s = &standing{Name: r.Player.Name}
				byName[r.Player.Name] = s
				order = append(order, r.Player.Name)
			}
			s.Games++
			s.Total += r.Score.Total
			if r.Rank == 1 {
				s.Wins++
			}
		}
	}
	out := make([]standing, 0, len(order))
	for _, name := range order {
		out = append(out, *byName[name])
	}
	sortStandings(out)
	return out
}
