package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rushteam/fleetrank/feature"
)

func newValidateCmd(a *app) *cobra.Command {
	var in string
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check an input document without scoring it",
		Long:  "Decodes the input and prepares the feature matrix. Fails with the same error and exit code that rank would, but never loads or calls a model.",
		RunE: func(_ *cobra.Command, _ []string) error {
			if _, err := a.settings(); err != nil {
				return err
			}
			records, err := readInput(a.stdin, in)
			if err != nil {
				return err
			}
			rows, err := feature.NewPreparer().Prepare(records)
			if err != nil {
				return err
			}
			fmt.Fprintf(a.stdout, "ok: %d records, %d features\n", len(rows), len(feature.Columns))
			return nil
		},
	}
	cmd.Flags().StringVarP(&in, "in", "i", "", "Path to input JSON file (default stdin)")
	return cmd
}
