package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"tasnim.dev/ecr-mirror/cmd"
	"tasnim.dev/ecr-mirror/internal/constants"
)

func main() {
	rootCmd := &cobra.Command{
		Use:     constants.AppName,
		Short:   "Request and browse container image mirrors in ECR",
		Version: constants.Version,
	}

	rootCmd.AddCommand(cmd.NewUICmd())
	rootCmd.AddCommand(cmd.NewMirrorCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
