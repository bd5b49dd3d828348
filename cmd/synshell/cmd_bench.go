package main

import (
	"bufio"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var benchCmd = &cobra.Command{
	Use:   "bench [file]",
	Short: "Tell every line of a batch file and report activations processed and wall-clock time",
	Args:  cobra.ExactArgs(1),
	RunE:  runBench,
}

func runBench(cmd *cobra.Command, args []string) error {
	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("synshell: opening batch file: %w", err)
	}
	defer f.Close()

	start := time.Now()
	scanner := bufio.NewScanner(f)
	lines := 0
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		if err := eng.Tell(line); err != nil {
			return fmt.Errorf("synshell: line %d: %w", lines+1, err)
		}
		lines++
	}
	if err := scanner.Err(); err != nil {
		return err
	}
	elapsed := time.Since(start)

	fmt.Printf("lines: %d\n", lines)
	fmt.Printf("activations: %d\n", eng.Counter())
	fmt.Printf("elapsed: %s\n", elapsed)
	return nil
}
