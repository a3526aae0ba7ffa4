package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// @title           Meeting Assistant Client API
// @version         1.0
// @description     Local control API for the headless meeting assistant: recording, uploads, action items and Q&A.

// @host      127.0.0.1:8090
// @BasePath  /v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the API token.

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	serve := newServeCommand()

	root := &cobra.Command{
		Use:   "assistant",
		Short: "Headless meeting assistant client",
		Long: `Captures meeting speech, keeps the session transcript, action items and
insights, and exposes them over a local control API.

Configuration comes from the environment and an optional .env file.`,
		SilenceUsage: true,
		RunE:         serve.RunE,
	}

	root.AddCommand(serve, newProcessCommand(), newHealthCommand())
	return root
}
