package main

import (
	"fmt"
	"os"

	"github.com/mattjmcnaughton/rtree/internal/cmd"
)

func main() {
	rootCmd := cmd.NewRootCommand()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "rtree: %v\n", err)
		os.Exit(1)
	}
}
