// Package main provides the consult binary: the consultation intake
// conversation at the terminal. It runs the same script as the site's
// chat surfaces and posts finished conversations to the same endpoint.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/sklowrylaw/website/cmd/consult/rest"
	"github.com/sklowrylaw/website/pkg/domain/intake/bridge"
	"github.com/sklowrylaw/website/pkg/domain/intake/localstore"
)

const defaultServer = "https://sklowrylaw.com"

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var (
		server  string
		dataDir string
	)

	cmd := &cobra.Command{
		Use:   "consult",
		Short: "Request a consultation with the Law Office of Sharon K. Lowry",
		Long: `Consult walks you through the consultation intake questions and
sends your answers to the law office.

Your answers are also kept locally, so nothing is lost if the office
site is unreachable.`,
	}

	cmd.PersistentFlags().StringVar(&server, "server", defaultServer, "Site backend to submit to")
	cmd.PersistentFlags().StringVar(&dataDir, "data-dir", defaultDataDir(), "Directory for locally saved responses")

	cmd.AddCommand(chatCmd(&server, &dataDir))
	cmd.AddCommand(responsesCmd(&dataDir))

	return cmd
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".consult"
	}
	return filepath.Join(home, ".consult")
}

func newBridge(server string, dataDir string) *bridge.Bridge {
	var submit bridge.Submitter
	if server != "" {
		submit = rest.New(server)
	}
	return bridge.New(localstore.New(dataDir), submit)
}
