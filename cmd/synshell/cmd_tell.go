package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/enriquepablo/syntreenet/internal/synlog"
)

var tellCmd = &cobra.Command{
	Use:   "tell [sentence]",
	Short: "Assert a fact or rule",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runTell,
}

func runTell(cmd *cobra.Command, args []string) error {
	text := strings.Join(args, " ")
	logger.Debug("tell", synlog.Fact(textString(text)))
	if err := eng.Tell(text); err != nil {
		logger.Warn("tell failed", synlog.Fact(textString(text)))
		return err
	}
	fmt.Println("ok")
	return nil
}

// textString adapts a bare string to synlog's stringer field constructors.
type textString string

func (s textString) String() string { return string(s) }
