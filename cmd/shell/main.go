// The shell is an interactive REPL for dealing, playing, and solving
// Klondike positions.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/chzyer/readline"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/redclover/klondike/analysis"
	"github.com/redclover/klondike/config"
	"github.com/redclover/klondike/equity"
	"github.com/redclover/klondike/eval"
	"github.com/redclover/klondike/game"
	"github.com/redclover/klondike/move"
	"github.com/redclover/klondike/movegen"
)

func filterInput(r rune) (rune, bool) {
	switch r {
	// block CtrlZ feature
	case readline.CharCtrlZ:
		return r, false
	}
	return r, true
}

func usage(w io.Writer) {
	io.WriteString(w, "commands:\n")
	io.WriteString(w, "deal [seed] - deal a new game\n")
	io.WriteString(w, "show - print the current position\n")
	io.WriteString(w, "moves - list legal moves with their rank order\n")
	io.WriteString(w, "hint - show the best single move\n")
	io.WriteString(w, "solve [maxdepth] [budget] - search for a winning line (budget like 5s)\n")
	io.WriteString(w, "play <move> - apply a move (notation from `moves`)\n")
	io.WriteString(w, "draw - draw from the stock\n")
	io.WriteString(w, "prob - print the win probability estimate and insights\n")
	io.WriteString(w, "export <file> / load <file> - save or restore a position as JSON\n")
	io.WriteString(w, "set drawmode <1|3> - set the draw mode for future deals\n")
	io.WriteString(w, "exit - quit\n")
}

type shell struct {
	cfg     *config.Config
	service *analysis.Service
	gen     *movegen.Generator
	calc    *equity.HeuristicCalculator
	game    *game.Game
}

func (sh *shell) deal(seed uint64) {
	sh.game = game.Deal(seed, sh.cfg.DrawMode)
	fmt.Printf("dealt game with seed %d (draw %d)\n", seed, sh.cfg.DrawMode)
	fmt.Print(sh.game)
}

func (sh *shell) rankedMoves() []*move.Move {
	moves := sh.gen.GenAll(sh.game)
	sh.calc.Assign(moves, sh.game)
	equity.Sort(moves)
	return moves
}

func (sh *shell) execute(line string) bool {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return true
	}
	cmd := fields[0]
	args := fields[1:]

	if cmd != "deal" && cmd != "help" && cmd != "exit" && cmd != "set" &&
		cmd != "load" && sh.game == nil {
		fmt.Println("no game; use `deal` first")
		return true
	}

	switch cmd {
	case "deal":
		seed := uint64(time.Now().UnixNano())
		if len(args) > 0 {
			if s, err := strconv.ParseUint(args[0], 10, 64); err == nil {
				seed = s
			}
		}
		sh.deal(seed)
	case "show":
		fmt.Print(sh.game)
	case "moves":
		moves := sh.rankedMoves()
		if len(moves) == 0 {
			fmt.Println("no legal moves")
		}
		for i, m := range moves {
			fmt.Printf("%2d: %s (%.0f)\n", i+1, m.ShortDescription(), m.Equity())
		}
	case "hint":
		rep, err := sh.service.AnalyzeGame(context.Background(), sh.game,
			&analysis.Request{HintOnly: true})
		if err != nil {
			fmt.Println("error:", err)
			break
		}
		if rep.Hint == nil {
			fmt.Println("no legal moves")
		} else {
			fmt.Println("best move:", rep.Hint.Notation)
		}
	case "solve":
		req := &analysis.Request{}
		if len(args) > 0 {
			if d, err := strconv.Atoi(args[0]); err == nil {
				req.MaxDepth = d
			}
		}
		if len(args) > 1 {
			if budget, err := time.ParseDuration(args[1]); err == nil {
				req.TimeBudgetMs = int(budget.Milliseconds())
			}
		}
		fmt.Println("searching...")
		rep, err := sh.service.AnalyzeGame(context.Background(), sh.game, req)
		if err != nil {
			fmt.Println("error:", err)
			break
		}
		fmt.Printf("%s (%d nodes, %dms)\n", rep.Status, rep.Nodes, rep.ElapsedMs)
		if rep.Solvable {
			fmt.Printf("winning line, %d moves:\n", rep.MoveCount)
			for i, d := range rep.Moves {
				fmt.Printf("%3d: %s\n", i+1, d.Notation)
			}
		}
	case "play":
		if len(args) == 0 {
			fmt.Println("usage: play <move>")
			break
		}
		m, err := move.Parse(strings.Join(args, " "))
		if err != nil {
			fmt.Println("error:", err)
			break
		}
		if err := sh.game.ApplyMove(m); err != nil {
			fmt.Println("error:", err)
			break
		}
		fmt.Print(sh.game)
		if sh.game.Won() {
			fmt.Println("you won!")
		}
	case "draw":
		if err := sh.game.ApplyMove(move.NewStockDraw()); err != nil {
			fmt.Println("error:", err)
			break
		}
		fmt.Print(sh.game)
	case "prob":
		fmt.Printf("win probability: %.1f\n", eval.WinProbability(sh.game))
		for _, insight := range eval.Insights(sh.game) {
			fmt.Println(" -", insight)
		}
	case "export":
		if len(args) == 0 {
			fmt.Println("usage: export <file>")
			break
		}
		data, err := sh.game.ToJSON()
		if err == nil {
			err = os.WriteFile(args[0], data, 0644)
		}
		if err != nil {
			fmt.Println("error:", err)
		}
	case "load":
		if len(args) == 0 {
			fmt.Println("usage: load <file>")
			break
		}
		data, err := os.ReadFile(args[0])
		if err != nil {
			fmt.Println("error:", err)
			break
		}
		g, err := game.FromJSON(data)
		if err == nil {
			err = g.Validate()
		}
		if err != nil {
			fmt.Println("error:", err)
			break
		}
		sh.game = g
		fmt.Print(sh.game)
	case "set":
		if len(args) == 2 && args[0] == "drawmode" {
			if n, err := strconv.Atoi(args[1]); err == nil && (n == 1 || n == 3) {
				sh.cfg.DrawMode = n
				fmt.Println("draw mode set to", n)
				break
			}
		}
		fmt.Println("usage: set drawmode <1|3>")
	case "help":
		usage(os.Stdout)
	case "exit", "quit":
		return false
	default:
		fmt.Printf("unknown command %q; try `help`\n", cmd)
	}
	return true
}

func main() {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("loading config")
	}

	l, err := readline.NewEx(&readline.Config{
		Prompt:              "klondike> ",
		HistoryFile:         "/tmp/readline-klondike.tmp",
		EOFPrompt:           "exit",
		HistorySearchFold:   true,
		FuncFilterInputRune: filterInput,
	})
	if err != nil {
		panic(err)
	}
	defer l.Close()

	sh := &shell{
		cfg:     cfg,
		service: analysis.NewService(cfg),
		gen:     movegen.NewGenerator(),
		calc:    equity.NewHeuristicCalculator(equity.WeightsByName(cfg.WeightPreset)),
	}
	usage(os.Stdout)
	for {
		line, err := l.Readline()
		if err == readline.ErrInterrupt {
			continue
		} else if err == io.EOF {
			break
		}
		if !sh.execute(strings.TrimSpace(line)) {
			break
		}
	}
}
