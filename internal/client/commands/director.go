// FILE: internal/client/commands/director.go
package commands

import (
	"fmt"
	"strings"

	"llmchess/internal/client/display"
	"llmchess/internal/client/session"
	"llmchess/internal/core"
)

func (r *Registry) registerDirectorCommands() {
	r.Register(&Command{
		Name:        "force",
		ShortName:   "f",
		Description: "Inject a move for the side to play",
		Usage:       "force <w|b> <move>   e.g. force w Nf3",
		Handler:     forceHandler,
	})
	r.Register(&Command{
		Name:        "skip",
		ShortName:   "k",
		Description: "Pass the turn to the other side",
		Usage:       "skip",
		Handler:     skipHandler,
	})
	r.Register(&Command{
		Name:        "prompt",
		ShortName:   "t",
		Description: "Override the next prompt sent to an agent",
		Usage:       "prompt <text...>",
		Handler:     promptHandler,
	})
	r.Register(&Command{
		Name:        "position",
		ShortName:   "e",
		Description: "Replace the board with a FEN position",
		Usage:       "position <fen...>",
		Handler:     positionHandler,
	})
	r.Register(&Command{
		Name:        "adjudicate",
		ShortName:   "a",
		Description: "Declare the match result",
		Usage:       "adjudicate <white_wins|black_wins|draw>",
		Handler:     adjudicateHandler,
	})
}

func requireMatch(s *session.Session) error {
	if s.CurrentMatch == "" {
		return fmt.Errorf("no match focused (use 'new' or 'use')")
	}
	return nil
}

func forceHandler(s *session.Session, args []string) error {
	if err := requireMatch(s); err != nil {
		return err
	}
	if len(args) != 2 {
		return fmt.Errorf("usage: force <w|b> <move>")
	}

	m, err := s.Client.ForceMove(s.CurrentMatch, args[0], args[1])
	if err != nil {
		return err
	}
	s.Track(m)
	fmt.Printf("%sMove %s applied%s\n", display.Green, args[1], display.Reset)
	printAftermath(m)
	return nil
}

func skipHandler(s *session.Session, args []string) error {
	if err := requireMatch(s); err != nil {
		return err
	}

	m, err := s.Client.SkipTurn(s.CurrentMatch)
	if err != nil {
		return err
	}
	s.Track(m)
	fmt.Printf("%sTurn passed, %s to move%s\n", display.Green, display.ColorForTurn(m.Turn), display.Reset)
	return nil
}

func promptHandler(s *session.Session, args []string) error {
	if err := requireMatch(s); err != nil {
		return err
	}
	if len(args) == 0 {
		return fmt.Errorf("usage: prompt <text...>")
	}

	m, err := s.Client.OverridePrompt(s.CurrentMatch, strings.Join(args, " "))
	if err != nil {
		return err
	}
	s.Track(m)
	fmt.Printf("%sNext prompt overridden%s\n", display.Green, display.Reset)
	return nil
}

func positionHandler(s *session.Session, args []string) error {
	if err := requireMatch(s); err != nil {
		return err
	}
	if len(args) == 0 {
		return fmt.Errorf("usage: position <fen...>")
	}

	m, err := s.Client.SetPosition(s.CurrentMatch, strings.Join(args, " "))
	if err != nil {
		return err
	}
	s.Track(m)
	fmt.Printf("%sPosition set%s\n", display.Green, display.Reset)
	return nil
}

func adjudicateHandler(s *session.Session, args []string) error {
	if err := requireMatch(s); err != nil {
		return err
	}
	if len(args) != 1 {
		return fmt.Errorf("usage: adjudicate <white_wins|black_wins|draw>")
	}

	m, err := s.Client.Adjudicate(s.CurrentMatch, args[0])
	if err != nil {
		return err
	}
	s.Track(m)
	printAftermath(m)
	return nil
}

func printAftermath(m *core.MatchResponse) {
	if m.Result != nil {
		fmt.Printf("%sMatch over: %s by %s%s\n",
			display.Magenta, m.Result.Outcome, m.Result.Reason, display.Reset)
	}
}
