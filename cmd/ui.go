package cmd

import (
	"context"
	"fmt"

	tea "charm.land/bubbletea/v2"
	"github.com/spf13/cobra"

	"tasnim.dev/ecr-mirror/internal/constants"
	"tasnim.dev/ecr-mirror/internal/tui/console"
)

func NewUICmd() *cobra.Command {
	var flags sourceFlags
	var route string

	cmd := &cobra.Command{
		Use:   "ui",
		Short: "Open the mirror console (request, configuration, ECR explorer)",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()

			rt, err := flags.setup(ctx)
			if err != nil {
				return err
			}
			defer rt.closeLog()

			model := console.NewModel(ctx, console.Options{
				Source:  rt.source,
				Logger:  rt.log,
				Route:   route,
				Version: constants.Version,
			})
			final, err := tea.NewProgram(model, tea.WithContext(ctx)).Run()
			if m, ok := final.(console.Model); ok {
				m.Close()
			}
			if err != nil {
				rt.log.WithError(err).Error("console exited")
				return fmt.Errorf("running console: %w", err)
			}
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&route, "route", "/", "initial page: /, /config or /ecr")

	return cmd
}
