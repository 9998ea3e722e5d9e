package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/avirtanen/siderovalley/cmd/cli/img"
	"github.com/avirtanen/siderovalley/cmd/cli/scenario"
)

func init() {
	// A missing .env is fine, the commands fall back to defaults.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	rootCmd.AddGroup(scenario.Group)
	rootCmd.AddCommand(scenario.Validate)
	rootCmd.AddCommand(scenario.Truth)
	rootCmd.AddGroup(img.Group)
	rootCmd.AddCommand(img.Portrait)
}

var rootCmd = &cobra.Command{
	Use:  "sidero-cli",
	Long: `Facilitator utilities for the Sidero Valley outbreak exercise https://github.com/avirtanen/siderovalley`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func main() {
	Execute()
}
