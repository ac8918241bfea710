package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newCountriesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "countries",
		Short: "List the selectable countries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := buildService(cmd)
			if err != nil {
				return err
			}

			countries, err := svc.Countries(cmd.Context())
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "CODE\tNAME")
			for _, c := range countries {
				fmt.Fprintf(w, "%s\t%s\n", c.Code, c.Name)
			}
			return w.Flush()
		},
	}
}
