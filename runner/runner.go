package runner

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/domino14/lexistack/config"
	"github.com/domino14/lexistack/game"
	"github.com/domino14/lexistack/tilemapping"
)

// GameRunner is a game played in real time: Run advances the clock and
// pushes new rows while the player works through the embedded Engine.
type GameRunner struct {
	*game.Engine

	opts     *GameOptions
	validate game.WordValidator
}

// NewGameRunner is a good entry point. validate is the word check used by
// Submit.
func NewGameRunner(cfg *config.Config, opts *GameOptions, validate game.WordValidator,
	engineOpts ...game.EngineOption) (*GameRunner, error) {

	opts.SetDefaults(cfg)
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	ld, err := tilemapping.NamedLetterDistribution(cfg, opts.LetterDistribution)
	if err != nil {
		return nil, err
	}
	rules := game.DefaultRules()
	rules.StartTime = opts.StartTime
	engineOpts = append([]game.EngineOption{game.WithRules(rules)}, engineOpts...)

	return &GameRunner{
		Engine:   game.NewEngine(ld, engineOpts...),
		opts:     opts,
		validate: validate,
	}, nil
}

func (g *GameRunner) Options() GameOptions {
	return *g.opts
}

// Submit submits the current selection, checked by the runner's validator.
func (g *GameRunner) Submit(ctx context.Context) game.SubmissionResult {
	return g.SubmitWord(ctx, g.validate)
}

// Run drives the clock until ctx is done. It keeps running after the game
// ends, since the player may start a new one.
func (g *GameRunner) Run(ctx context.Context) error {
	tick := time.NewTicker(g.opts.TickInterval)
	defer tick.Stop()
	rows := time.NewTicker(g.opts.RowInterval)
	defer rows.Stop()

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return nil
		case now := <-tick.C:
			g.UpdateTimer(now.Sub(last).Seconds())
			last = now
		case <-rows.C:
			wasOver := g.IsGameOver()
			if !g.AddNewRow() && !wasOver {
				log.Info().Int("score", g.Summary().Score).Msg("tower-overflowed")
			}
		}
	}
}
