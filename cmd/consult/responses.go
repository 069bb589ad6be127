package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sklowrylaw/website/pkg/domain/intake/localstore"
)

func responsesCmd(dataDir *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "responses",
		Short: "Manage locally saved responses",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List locally saved responses, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := localstore.New(*dataDir).List()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(entries) == 0 {
				fmt.Fprintln(out, "No saved responses.")
				return nil
			}
			for _, entry := range entries {
				fmt.Fprintf(
					out, "%s  %s  %s (%s)\n",
					entry.Id,
					entry.Timestamp.Format("2006-01-02 15:04"),
					entry.Data["name"],
					entry.Data["serviceType"],
				)
			}
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a locally saved response",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return localstore.New(*dataDir).Delete(args[0])
		},
	})

	return cmd
}
