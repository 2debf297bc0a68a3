package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"syscall"

	"github.com/chzyer/readline"
	"github.com/kballard/go-shellquote"
	"github.com/rs/zerolog/log"

	"github.com/domino14/lexistack/config"
	"github.com/domino14/lexistack/dictionary"
	"github.com/domino14/lexistack/game"
	"github.com/domino14/lexistack/runner"
)

var (
	errNoData            = errors.New("no data in this line")
	errWrongOptionSyntax = errors.New("wrong format; all options need arguments")
)

type Response struct {
	message string
}

func msg(message string) *Response {
	return &Response{message: message}
}

type shellcmd struct {
	cmd     string
	args    []string
	options map[string]string
}

type ShellController struct {
	l      *readline.Instance
	config *config.Config
	game   *runner.GameRunner
	dict   *dictionary.Service
}

func filterInput(r rune) (rune, bool) {
	switch r {
	// block CtrlZ feature
	case readline.CharCtrlZ:
		return r, false
	}
	return r, true
}

func writeln(msg string, w io.Writer) {
	io.WriteString(w, msg)
	io.WriteString(w, "\n")
}

func (sc *ShellController) showMessage(msg string) {
	writeln(msg, sc.l.Stderr())
}

func (sc *ShellController) showError(err error) {
	sc.showMessage("Error: " + err.Error())
}

func NewShellController(cfg *config.Config, g *runner.GameRunner, dict *dictionary.Service) *ShellController {
	l, err := readline.NewEx(&readline.Config{
		Prompt:          "\033[32mlexistack>\033[0m ",
		HistoryFile:     "/tmp/lexistack-readline.tmp",
		EOFPrompt:       "exit",
		InterruptPrompt: "^C",

		HistorySearchFold:   true,
		FuncFilterInputRune: filterInput,
	})
	if err != nil {
		panic(err)
	}
	sc := &ShellController{l: l, config: cfg, game: g, dict: dict}
	// the clock or the tower can end the game while the player is typing
	g.AddListener(func(evt game.Event) {
		if evt.Type == game.EventGameOver {
			sc.showMessage(gameOverMessage(evt))
		}
	})
	return sc
}

func gameOverMessage(evt game.Event) string {
	var sb strings.Builder
	if evt.State.TimeRemaining <= 0 {
		sb.WriteString("Time's up! ")
	} else {
		sb.WriteString("The tower overflowed! ")
	}
	fmt.Fprintf(&sb, "Game over. Final score: %d", evt.State.Score)
	if evt.State.LongestWord != "" {
		fmt.Fprintf(&sb, ", longest word: %s", evt.State.LongestWord)
	}
	sb.WriteString(". Type `new` to play again.")
	return sb.String()
}

func extractFields(line string) (*shellcmd, error) {
	fields, err := shellquote.Split(line)
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return nil, errNoData
	}
	cmd := fields[0]
	var args []string
	options := map[string]string{}

	for i := 1; i < len(fields); i++ {
		if strings.HasPrefix(fields[i], "-") {
			if i+1 >= len(fields) {
				return nil, errWrongOptionSyntax
			}
			options[strings.TrimPrefix(fields[i], "-")] = fields[i+1]
			i++
			continue
		}
		args = append(args, fields[i])
	}
	return &shellcmd{cmd: cmd, args: args, options: options}, nil
}

// Execute runs a single command line, as if typed at the prompt.
func (sc *ShellController) Execute(ctx context.Context, line string) (*Response, error) {
	cmd, err := extractFields(line)
	if err != nil {
		return nil, err
	}
	return sc.handle(ctx, cmd)
}

func (sc *ShellController) handle(ctx context.Context, cmd *shellcmd) (*Response, error) {
	switch cmd.cmd {
	case "help", "h":
		return sc.help(cmd)
	case "new", "n":
		return sc.newGame()
	case "show", "s":
		return sc.show()
	case "sel", "select":
		return sc.sel(cmd)
	case "undo", "u":
		return sc.undo()
	case "clear", "c":
		return sc.clear()
	case "submit", "sub", "w":
		return sc.submit(ctx)
	case "row":
		return sc.row()
	case "state":
		return sc.state()
	case "summary":
		return sc.summary(cmd)
	case "dict":
		return sc.dictionary()
	default:
		msg := fmt.Sprintf("command %v not found", strconv.Quote(cmd.cmd))
		log.Info().Msg(msg)
		return nil, errors.New(msg)
	}
}

func (sc *ShellController) Loop(sig chan os.Signal) {
	defer sc.l.Close()
	ctx := context.Background()

	sc.showMessage(sc.game.ToDisplayText())
	for {
		line, err := sc.l.Readline()
		if err == readline.ErrInterrupt {
			if len(line) == 0 {
				sig <- syscall.SIGINT
				break
			} else {
				continue
			}
		} else if err == io.EOF {
			sig <- syscall.SIGINT
			break
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if line == "exit" || line == "bye" {
			sig <- syscall.SIGINT
			break
		}
		resp, err := sc.Execute(ctx, line)
		if err != nil {
			sc.showError(err)
		} else if resp != nil {
			sc.showMessage(resp.message)
		}
	}
	log.Debug().Msgf("Exiting readline loop...")
}
