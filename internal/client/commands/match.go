// FILE: internal/client/commands/match.go
package commands

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/briandowns/spinner"

	"llmchess/internal/client/display"
	"llmchess/internal/client/session"
	"llmchess/internal/core"
)

func (r *Registry) registerMatchCommands() {
	r.Register(&Command{
		Name:        "new",
		ShortName:   "n",
		Description: "Create a new match between two agents",
		Usage:       "new <white> <black> [fen]   (agent: openai[:model] or script:<m1,m2,...>)",
		Handler:     newHandler,
	})
	r.Register(&Command{
		Name:        "list",
		ShortName:   "l",
		Description: "List all hosted matches",
		Usage:       "list",
		Handler:     listHandler,
	})
	r.Register(&Command{
		Name:        "use",
		ShortName:   "u",
		Description: "Focus the console on a match",
		Usage:       "use <matchId>",
		Handler:     useHandler,
	})
	r.Register(&Command{
		Name:        "state",
		ShortName:   "s",
		Description: "Show the focused match state",
		Usage:       "state",
		Handler:     stateHandler,
	})
	r.Register(&Command{
		Name:        "board",
		ShortName:   "b",
		Description: "Show the current board",
		Usage:       "board",
		Handler:     boardHandler,
	})
	r.Register(&Command{
		Name:        "start",
		ShortName:   "g",
		Description: "Begin automatic play",
		Usage:       "start",
		Handler:     lifecycleHandler("start"),
	})
	r.Register(&Command{
		Name:        "pause",
		ShortName:   "p",
		Description: "Pause automatic play",
		Usage:       "pause",
		Handler:     lifecycleHandler("pause"),
	})
	r.Register(&Command{
		Name:        "resume",
		ShortName:   "r",
		Description: "Resume automatic play",
		Usage:       "resume",
		Handler:     lifecycleHandler("resume"),
	})
	r.Register(&Command{
		Name:        "reset",
		ShortName:   "0",
		Description: "Rewind the match to its initial position",
		Usage:       "reset",
		Handler:     lifecycleHandler("reset"),
	})
	r.Register(&Command{
		Name:        "watch",
		ShortName:   "w",
		Description: "Poll the match and render each new move",
		Usage:       "watch [seconds]",
		Handler:     watchHandler,
	})
	r.Register(&Command{
		Name:        "history",
		ShortName:   "y",
		Description: "Show the persisted audit trail (moves and rejections)",
		Usage:       "history [matchId]",
		Handler:     historyHandler,
	})
	r.Register(&Command{
		Name:        "delete",
		ShortName:   "d",
		Description: "Stop and remove the focused match",
		Usage:       "delete",
		Handler:     deleteHandler,
	})
	r.Register(&Command{
		Name:        "health",
		ShortName:   ".",
		Description: "Check server health",
		Usage:       "health",
		Handler:     healthHandler,
	})
}

// parseAgentSpec turns "openai:gpt-4" or "script:e4,Nf3" into an AgentConfig.
func parseAgentSpec(spec string) (core.AgentConfig, error) {
	kind, arg, _ := strings.Cut(spec, ":")
	switch kind {
	case "openai":
		cfg := core.AgentConfig{Kind: "openai", Model: arg, APIKey: os.Getenv("OPENAI_API_KEY")}
		return cfg, nil
	case "script":
		if arg == "" {
			return core.AgentConfig{}, fmt.Errorf("script agent needs moves: script:e4,Nf3,...")
		}
		return core.AgentConfig{Kind: "script", Script: strings.Split(arg, ",")}, nil
	default:
		return core.AgentConfig{}, fmt.Errorf("unknown agent kind %q (want openai or script)", kind)
	}
}

func newHandler(s *session.Session, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: new <white> <black> [fen]")
	}

	white, err := parseAgentSpec(args[0])
	if err != nil {
		return err
	}
	black, err := parseAgentSpec(args[1])
	if err != nil {
		return err
	}

	req := &core.CreateMatchRequest{White: white, Black: black}
	if len(args) > 2 {
		req.FEN = strings.Join(args[2:], " ")
	}

	m, err := s.Client.CreateMatch(req)
	if err != nil {
		return err
	}

	s.Track(m)
	fmt.Printf("%sMatch created: %s%s\n", display.Green, m.MatchID, display.Reset)
	return nil
}

func listHandler(s *session.Session, args []string) error {
	matches, err := s.Client.ListMatches()
	if err != nil {
		return err
	}
	if len(matches) == 0 {
		fmt.Println("No matches hosted")
		return nil
	}
	for _, m := range matches {
		marker := " "
		if m.MatchID == s.CurrentMatch {
			marker = "*"
		}
		fmt.Printf("%s %s  %s  %d moves\n", marker, m.MatchID, m.Status, len(m.Moves))
	}
	return nil
}

func useHandler(s *session.Session, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: use <matchId>")
	}
	m, err := s.Client.GetMatch(args[0])
	if err != nil {
		return err
	}
	s.Track(m)
	display.PrintMatchSummary(m)
	return nil
}

func stateHandler(s *session.Session, args []string) error {
	if s.CurrentMatch == "" {
		return fmt.Errorf("no match focused (use 'new' or 'use')")
	}
	m, err := s.Client.GetMatch(s.CurrentMatch)
	if err != nil {
		return err
	}
	s.Track(m)
	display.PrintMatchSummary(m)
	return nil
}

func boardHandler(s *session.Session, args []string) error {
	if s.CurrentMatch == "" {
		return fmt.Errorf("no match focused (use 'new' or 'use')")
	}
	b, err := s.Client.GetBoard(s.CurrentMatch)
	if err != nil {
		return err
	}
	display.RenderBoard(b.Board)
	fmt.Printf("%sFEN:%s %s\n", display.Cyan, display.Reset, b.FEN)
	return nil
}

func lifecycleHandler(action string) func(*session.Session, []string) error {
	return func(s *session.Session, args []string) error {
		if s.CurrentMatch == "" {
			return fmt.Errorf("no match focused (use 'new' or 'use')")
		}
		var (
			m   *core.MatchResponse
			err error
		)
		switch action {
		case "start":
			m, err = s.Client.StartMatch(s.CurrentMatch)
		case "pause":
			m, err = s.Client.PauseMatch(s.CurrentMatch)
		case "resume":
			m, err = s.Client.ResumeMatch(s.CurrentMatch)
		case "reset":
			m, err = s.Client.ResetMatch(s.CurrentMatch)
		}
		if err != nil {
			return err
		}
		s.Track(m)
		fmt.Printf("%s%s: %s%s\n", display.Green, action, m.Status, display.Reset)
		return nil
	}
}

func watchHandler(s *session.Session, args []string) error {
	if s.CurrentMatch == "" {
		return fmt.Errorf("no match focused (use 'new' or 'use')")
	}

	interval := 2 * time.Second
	if len(args) > 0 {
		var secs int
		if _, err := fmt.Sscanf(args[0], "%d", &secs); err != nil || secs < 1 {
			return fmt.Errorf("usage: watch [seconds]")
		}
		interval = time.Duration(secs) * time.Second
	}

	fmt.Printf("Watching %s (Ctrl-C or a terminal state ends the watch)\n", s.CurrentMatch)

	sp := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	defer sp.Stop()

	seen := 0
	if s.LastState != nil {
		seen = len(s.LastState.Moves)
	}

	for {
		sp.Start()
		time.Sleep(interval)
		m, err := s.Client.GetMatch(s.CurrentMatch)
		sp.Stop()
		if err != nil {
			return err
		}
		s.Track(m)

		for _, mv := range m.Moves[min(seen, len(m.Moves)):] {
			side := display.ColorForTurn(mv.Side)
			fmt.Printf("%d. %s %s", mv.Number, side, mv.Move)
			if mv.Commentary != "" {
				fmt.Printf("  %s%s%s", display.Cyan, mv.Commentary, display.Reset)
			}
			fmt.Println()
		}
		seen = len(m.Moves)

		switch m.Status {
		case "waiting_for_director", "error", "game_over", "paused":
			display.PrintMatchSummary(m)
			return nil
		}
	}
}

func historyHandler(s *session.Session, args []string) error {
	matchID := s.CurrentMatch
	if len(args) > 0 {
		matchID = args[0]
	}
	if matchID == "" {
		return fmt.Errorf("usage: history [matchId]")
	}

	h, err := s.Client.GetHistory(matchID)
	if err != nil {
		return err
	}
	if len(h.Moves) == 0 && len(h.Rejects) == 0 {
		fmt.Println("No persisted history for this match")
		return nil
	}

	for _, mv := range h.Moves {
		marker := " "
		if mv.Forced {
			marker = "F"
		}
		fmt.Printf("%s %3d. %s %-8s %s", marker, mv.Number, display.ColorForTurn(mv.Side), mv.Move,
			mv.PlayedAt.Local().Format("15:04:05"))
		if mv.Commentary != "" {
			fmt.Printf("  %s%s%s", display.Cyan, mv.Commentary, display.Reset)
		}
		fmt.Println()
	}

	if len(h.Rejects) > 0 {
		fmt.Printf("\n%sRejected proposals:%s\n", display.Yellow, display.Reset)
		for _, rj := range h.Rejects {
			fmt.Printf("  %s attempt %d: %q (%s)\n",
				display.ColorForTurn(rj.Side), rj.Attempt, rj.RawText, rj.Reason)
		}
	}
	return nil
}

func deleteHandler(s *session.Session, args []string) error {
	if s.CurrentMatch == "" {
		return fmt.Errorf("no match focused (use 'new' or 'use')")
	}
	if err := s.Client.DeleteMatch(s.CurrentMatch); err != nil {
		return err
	}
	fmt.Printf("%sMatch %s deleted%s\n", display.Green, s.CurrentMatch, display.Reset)
	s.Forget()
	return nil
}

func healthHandler(s *session.Session, args []string) error {
	resp, err := s.Client.Health()
	if err != nil {
		return err
	}
	display.PrettyPrintJSON(resp)
	return nil
}
