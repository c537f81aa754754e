package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/genomebank/taxofetch/internal/taxon"
)

var groupsCmd = &cobra.Command{
	Use:   "groups",
	Short: "List known taxonomic group aliases",
	RunE: func(cmd *cobra.Command, args []string) error {
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ALIAS\tNCBI GROUP")
		for _, pair := range taxon.Groups() {
			fmt.Fprintf(w, "%s\t%s\n", pair[0], pair[1])
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(groupsCmd)
}
