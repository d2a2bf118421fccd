// Package main implements the interactive director console for the arena
// server API.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/fatih/color"
	"golang.org/x/term"

	"llmchess/internal/client/api"
	"llmchess/internal/client/commands"
	"llmchess/internal/client/display"
	"llmchess/internal/client/session"
)

func main() {
	var (
		apiURL  = flag.String("api", "http://localhost:8080", "Arena server base URL")
		verbose = flag.Bool("v", false, "Verbose API output for every command")
	)
	flag.Parse()

	if !term.IsTerminal(int(os.Stdin.Fd())) {
		fmt.Fprintln(os.Stderr, "arena requires an interactive terminal")
		os.Exit(1)
	}

	s := &session.Session{
		APIBaseURL: *apiURL,
		Client:     api.New(*apiURL),
		Verbose:    *verbose,
	}

	// Initialize readline
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          display.Prompt("arena"),
		HistoryFile:     ".arena_history",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		fmt.Printf("%s%s%s\n", display.Red, err.Error(), display.Reset)
		os.Exit(1)
	}
	defer rl.Close()

	color.New(color.FgCyan, color.Bold).Println("Arena Director Console")
	color.Cyan("API: %s", s.APIBaseURL)
	fmt.Printf("Type 'help' for commands\n\n")

	registry := commands.NewRegistry(s)

	for {
		rl.SetPrompt(buildPrompt(s))

		line, err := rl.Readline()
		if err == io.EOF {
			break
		}
		if err != nil {
			continue
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if line == "exit" || line == "quit" || line == "x" {
			break
		}

		// Check for verbose flag
		if strings.HasSuffix(line, " -v") {
			s.Verbose = true
			line = strings.TrimSuffix(line, " -v")
		} else {
			s.Verbose = *verbose
		}

		registry.Execute(line)
	}
}

func buildPrompt(s *session.Session) string {
	promptStr := "arena"

	if s.CurrentMatch != "" {
		id := s.CurrentMatch
		if len(id) > 8 {
			id = id[:8]
		}
		promptStr += display.Yellow + " [" + display.Reset + display.White + id + display.Reset + display.Yellow + "]"
	}

	if s.LastState != nil {
		promptStr += fmt.Sprintf(" - %s - Turn:%s",
			s.LastState.Status, display.ColorForTurn(s.LastState.Turn))
	}

	return display.Prompt(promptStr)
}
