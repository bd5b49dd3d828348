package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/enriquepablo/syntreenet/internal/synlog"
)

var goalCmd = &cobra.Command{
	Use:   "goal [sentence]",
	Short: "Chase a query backward through rule consequences when no fact unifies directly",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runGoal,
}

func runGoal(cmd *cobra.Command, args []string) error {
	text := strings.Join(args, " ")
	logger.Debug("goal", synlog.Fact(textString(text)))
	ms, err := eng.Goal(text)
	if err != nil {
		logger.Warn("goal failed", synlog.Fact(textString(text)))
		return err
	}
	printMatchings(ms)
	return nil
}
