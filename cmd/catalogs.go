package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/genomebank/taxofetch/internal/catalog"
	"github.com/genomebank/taxofetch/internal/model"
	"github.com/genomebank/taxofetch/internal/taxon"
)

var catalogsCmd = &cobra.Command{
	Use:   "catalogs",
	Short: "Inspect and manage cached assembly summary files",
}

var catalogsStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "List cached catalog files",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		st, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		files, err := st.ListCatalogFiles(ctx)
		if err != nil {
			return err
		}
		if len(files) == 0 {
			fmt.Println("no catalogs cached")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "GROUP\tSOURCE\tRECORDS\tFETCHED\tPATH")
		for _, cf := range files {
			fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%s\n",
				cf.Group, cf.Source, cf.RecordCount,
				cf.FetchedAt.Format("2006-01-02 15:04"), cf.LocalPath)
		}
		return w.Flush()
	},
}

var catalogsFetchGroup string

var catalogsFetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Download (or refresh) the catalogs for a group without resolving",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		group, _ := taxon.CanonicalGroup(catalogsFetchGroup)

		f, err := newFetcher()
		if err != nil {
			return err
		}
		st, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		loader := &catalog.Loader{
			Fetcher:  f,
			Store:    st,
			CacheDir: cfg.Catalog.CacheDir,
			BaseURL:  catalogBaseURL(),
		}
		tables, err := loader.Load(ctx, group, model.ScopeBoth, false)
		if err != nil {
			return eris.Wrap(err, "fetch catalogs")
		}

		fmt.Printf("%s: refseq %d records, genbank %d records\n",
			group, tables.RefSeq.Len(), tables.GenBank.Len())
		return nil
	},
}

var catalogsCleanGroup string

var catalogsCleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Remove cached catalog files for a group (all groups when omitted)",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		st, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		files, err := st.ListCatalogFiles(ctx)
		if err != nil {
			return err
		}

		var removed int64
		for _, cf := range files {
			if catalogsCleanGroup != "" {
				group, _ := taxon.CanonicalGroup(catalogsCleanGroup)
				if cf.Group != group {
					continue
				}
			}
			if err := os.Remove(cf.LocalPath); err != nil && !os.IsNotExist(err) {
				zap.L().Warn("could not remove cached file",
					zap.String("path", cf.LocalPath),
					zap.Error(err),
				)
			}
			n, err := st.DeleteCatalogFiles(ctx, cf.Group, cf.Source)
			if err != nil {
				return err
			}
			removed += n
		}

		fmt.Printf("removed %d cached catalog(s)\n", removed)
		return nil
	},
}

func init() {
	catalogsFetchCmd.Flags().StringVarP(&catalogsFetchGroup, "group", "g", "", "taxonomic group (required)")
	_ = catalogsFetchCmd.MarkFlagRequired("group")
	catalogsCleanCmd.Flags().StringVarP(&catalogsCleanGroup, "group", "g", "", "restrict to one taxonomic group")

	catalogsCmd.AddCommand(catalogsStatusCmd, catalogsFetchCmd, catalogsCleanCmd)
	rootCmd.AddCommand(catalogsCmd)
}
