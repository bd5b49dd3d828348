package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Read sentences from stdin, dispatching by a leading sigil",
	Long: `Reads lines from stdin and dispatches each to tell, query or goal:

  bare text   -> tell
  ? text      -> query
  ?? text     -> goal

Empty lines are skipped; EOF ends the session.`,
	RunE: runRepl,
}

func runRepl(cmd *cobra.Command, args []string) error {
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if err := dispatchLine(line); err != nil {
			fmt.Fprintln(os.Stderr, err)
		}
	}
	return scanner.Err()
}

func dispatchLine(line string) error {
	switch {
	case strings.HasPrefix(line, "??"):
		text := strings.TrimSpace(line[2:])
		ms, err := eng.Goal(text)
		if err != nil {
			return err
		}
		printMatchings(ms)
	case strings.HasPrefix(line, "?"):
		text := strings.TrimSpace(line[1:])
		ms, err := eng.Ask(text)
		if err != nil {
			return err
		}
		printMatchings(ms)
	default:
		if err := eng.Tell(line); err != nil {
			return err
		}
		fmt.Println("ok")
	}
	return nil
}
