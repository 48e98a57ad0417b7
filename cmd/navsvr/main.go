package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "navsvr",
		Short:        "navigation mesh pathfinding server",
		SilenceUsage: true,
	}
	rootCmd.AddCommand(
		ServerCmd(),
		NatsCmd(),
		StandaloneCmd(),
		QueryCmd(),
		BakeCmd(),
	)
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
