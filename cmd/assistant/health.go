package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/johnquangdev/meeting-assistant-client/internal/infrastructure/backend"
	"github.com/johnquangdev/meeting-assistant-client/pkg/config"
)

func newHealthCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check the backend and its integrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			health, err := backend.NewClient(&cfg.Backend, nil).Health(cmd.Context())
			if err != nil {
				return fmt.Errorf("backend %s unreachable: %w", cfg.Backend.BaseURL, err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s %s\n", okStyle.Render("backend"), health.Status)
			for _, c := range []struct {
				name string
				ok   bool
			}{
				{"openai", health.OpenAIConfigured},
				{"jira", health.JiraConfigured},
				{"teams", health.TeamsConfigured},
				{"slack", health.SlackConfigured},
			} {
				mark := errorStyle.Render("✖")
				if c.ok {
					mark = okStyle.Render("✔")
				}
				fmt.Fprintf(out, "  %s %s\n", mark, c.name)
			}
			return nil
		},
	}
}
