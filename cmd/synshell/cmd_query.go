package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/enriquepablo/syntreenet/internal/synlog"
	"github.com/enriquepablo/syntreenet/pkg/matching"
)

var queryCmd = &cobra.Command{
	Use:   "query [sentence]",
	Short: "Unify a (possibly variable-bearing) fact against everything asserted",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runQuery,
}

func runQuery(cmd *cobra.Command, args []string) error {
	text := strings.Join(args, " ")
	logger.Debug("query", synlog.Fact(textString(text)))
	ms, err := eng.Ask(text)
	if err != nil {
		logger.Warn("query failed", synlog.Fact(textString(text)))
		return err
	}
	printMatchings(ms)
	return nil
}

func printMatchings(ms []matching.Matching) {
	if len(ms) == 0 {
		fmt.Println("no")
		return
	}
	for _, m := range ms {
		if m.Len() == 0 {
			fmt.Println("yes")
			continue
		}
		var parts []string
		for _, p := range m.Pairs() {
			parts = append(parts, fmt.Sprintf("%s=%s", p.Key.Text, p.Value.Text))
		}
		fmt.Println(strings.Join(parts, " "))
	}
}
