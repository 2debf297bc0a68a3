package shell

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/domino14/lexistack/config"
)

// stateView is the part of the game state the state command prints.
type stateView struct {
	Score           int     `yaml:"score"`
	ComboMultiplier float64 `yaml:"combo"`
	BestCombo       float64 `yaml:"best_combo"`
	TimeRemaining   float64 `yaml:"time_remaining"`
	Level           int     `yaml:"level"`
	WordsPlayed     int     `yaml:"words_played"`
	LongestWord     string  `yaml:"longest_word"`
	CurrentWord     string  `yaml:"current_word"`
	PotentialScore  int     `yaml:"potential_score"`
	Tiles           int     `yaml:"tiles"`
	GameOver        bool    `yaml:"game_over"`
}

func (sc *ShellController) help(cmd *shellcmd) (*Response, error) {
	var sb strings.Builder
	if len(cmd.args) == 0 {
		usage(&sb)
	} else {
		usageTopic(&sb, cmd.args[0])
	}
	return msg(sb.String()), nil
}

func (sc *ShellController) newGame() (*Response, error) {
	sc.game.Reset()
	return sc.show()
}

func (sc *ShellController) show() (*Response, error) {
	return msg(sc.game.ToDisplayText()), nil
}

func (sc *ShellController) sel(cmd *shellcmd) (*Response, error) {
	if err := sc.game.SelectCoords(cmd.args); err != nil {
		return nil, err
	}
	return sc.show()
}

func (sc *ShellController) undo() (*Response, error) {
	res := sc.game.UndoLastSelection()
	if !res.Success {
		return nil, errors.New(res.Message)
	}
	return sc.show()
}

func (sc *ShellController) clear() (*Response, error) {
	res := sc.game.ClearSelection()
	if !res.Success {
		return nil, errors.New(res.Message)
	}
	return sc.show()
}

func (sc *ShellController) submit(ctx context.Context) (*Response, error) {
	res := sc.game.Submit(ctx)
	if !res.Success {
		return msg(res.Message), nil
	}
	return msg(res.Message + "\n" + sc.game.ToDisplayText()), nil
}

func (sc *ShellController) row() (*Response, error) {
	if sc.game.IsGameOver() {
		return nil, errors.New("game is over")
	}
	if !sc.game.AddNewRow() {
		// the game-over listener has already said so
		return nil, nil
	}
	return sc.show()
}

func (sc *ShellController) state() (*Response, error) {
	st := sc.game.State()
	out, err := yaml.Marshal(stateView{
		Score:           st.Score,
		ComboMultiplier: st.ComboMultiplier,
		BestCombo:       st.BestCombo,
		TimeRemaining:   st.TimeRemaining,
		Level:           st.Level,
		WordsPlayed:     st.WordsPlayed,
		LongestWord:     st.LongestWord,
		CurrentWord:     st.CurrentWord,
		PotentialScore:  st.PotentialScore,
		Tiles:           st.Grid.TilesOnBoard(),
		GameOver:        st.IsGameOver,
	})
	if err != nil {
		return nil, err
	}
	return msg(string(out)), nil
}

func (sc *ShellController) summary(cmd *shellcmd) (*Response, error) {
	out, err := yaml.Marshal(sc.game.Summary())
	if err != nil {
		return nil, err
	}
	fn := cmd.options["file"]
	if fn == "" {
		return msg(string(out)), nil
	}
	if err := os.WriteFile(fn, out, 0o644); err != nil {
		return nil, fmt.Errorf("writing summary: %w", err)
	}
	return msg("summary written to " + fn), nil
}

func (sc *ShellController) dictionary() (*Response, error) {
	if sc.dict == nil {
		return nil, errors.New("no dictionary configured")
	}
	sc.dict.Preload()
	var sb strings.Builder
	if sc.config != nil && sc.config.Viper != nil {
		src := sc.config.GetString(config.ConfigDictionaryPath)
		if src == "" {
			src = fmt.Sprint(sc.config.SanitizedSettings()[config.ConfigDictionaryURL])
		}
		fmt.Fprintf(&sb, "source: %s\n", src)
	}
	fmt.Fprintf(&sb, "state: %s\n", sc.dict.State())
	fmt.Fprintf(&sb, "words: %d\n", sc.dict.Size())
	fmt.Fprintf(&sb, "from cache: %v\n", sc.dict.CacheUsed())
	fmt.Fprintf(&sb, "fallback: %v", sc.dict.FallbackUsed())
	return msg(sb.String()), nil
}
