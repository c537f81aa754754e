package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/genomebank/taxofetch/internal/catalog"
	"github.com/genomebank/taxofetch/internal/model"
	"github.com/genomebank/taxofetch/internal/report"
	"github.com/genomebank/taxofetch/internal/resolver"
	"github.com/genomebank/taxofetch/internal/store"
	"github.com/genomebank/taxofetch/internal/taxon"
)

var (
	resolveInput         string
	resolveGroup         string
	resolveSource        string
	resolveOutdir        string
	resolveFormat        string
	resolveManifest      string
	resolveClean         bool
	resolvePreferQuality bool
)

var resolveCmd = &cobra.Command{
	Use:   "resolve",
	Short: "Resolve a species list to the best available assemblies",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		scope, err := model.ParseSourceScope(resolveSource)
		if err != nil {
			return err
		}

		group, known := taxon.CanonicalGroup(resolveGroup)
		if !known {
			zap.L().Warn("unrecognized group alias, passing through to NCBI",
				zap.String("group", group),
			)
		}

		targets, err := readTargets(resolveInput)
		if err != nil {
			return err
		}
		if len(targets) == 0 {
			return eris.Errorf("input file %s contains no species names", resolveInput)
		}

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

		tables, err := loader.Load(ctx, group, scope, resolveClean)
		if err != nil {
			return eris.Wrap(err, "load catalogs")
		}

		preferQuality := resolvePreferQuality || cfg.Resolve.PreferQualityFallback
		r := resolver.New(tables, resolver.Options{
			Scope:         scope,
			PreferQuality: preferQuality,
			Workers:       cfg.Resolve.Workers,
		})

		zap.L().Info("resolving targets",
			zap.Int("targets", len(targets)),
			zap.String("group", group),
			zap.String("scope", string(scope)),
		)

		results, err := r.Resolve(ctx, targets)
		if err != nil {
			return err
		}

		outdir := resolveOutdir
		if outdir == "" {
			outdir = group + "_genomes"
		}

		reportPath, err := writeReport(group, results)
		if err != nil {
			return err
		}
		scriptPath, err := writeScript(group, outdir, results)
		if err != nil {
			return err
		}

		exact, fallback, notFound := resolver.Tally(results)
		run, err := st.RecordRun(ctx, store.Run{
			Group:    group,
			Scope:    scope,
			Targets:  len(targets),
			Exact:    exact,
			Fallback: fallback,
			NotFound: notFound,
		})
		if err != nil {
			return err
		}

		if resolveManifest != "" {
			if err := writeManifest(run, tables, reportPath, scriptPath); err != nil {
				return err
			}
		}

		zap.L().Info("resolution complete",
			zap.Int("exact", exact),
			zap.Int("fallback", fallback),
			zap.Int("not_found", notFound),
			zap.String("report", reportPath),
			zap.String("script", scriptPath),
		)

		fmt.Printf("Found %d/%d. Report: %s  Script: %s\n",
			exact+fallback, len(targets), reportPath, scriptPath)
		return nil
	},
}

func writeReport(group string, results []model.MergedResult) (string, error) {
	switch resolveFormat {
	case "", "tsv":
		path := fmt.Sprintf("download_report_%s.log", group)
		f, err := os.Create(path)
		if err != nil {
			return "", eris.Wrapf(err, "create report %s", path)
		}
		defer f.Close() //nolint:errcheck
		return path, report.WriteTSV(f, results)
	case "xlsx":
		path := fmt.Sprintf("download_report_%s.xlsx", group)
		return path, report.WriteXLSX(path, results)
	default:
		return "", eris.Errorf("unknown report format %q (valid: tsv, xlsx)", resolveFormat)
	}
}

func writeScript(group, outdir string, results []model.MergedResult) (string, error) {
	path := fmt.Sprintf("run_downloads_%s.sh", group)
	f, err := os.Create(path)
	if err != nil {
		return "", eris.Wrapf(err, "create script %s", path)
	}
	defer f.Close() //nolint:errcheck
	if err := report.WriteScript(f, results, outdir); err != nil {
		return "", err
	}
	return path, os.Chmod(path, 0o755)
}

func writeManifest(run *store.Run, tables *catalog.Pair, reportPath, scriptPath string) error {
	f, err := os.Create(resolveManifest)
	if err != nil {
		return eris.Wrapf(err, "create manifest %s", resolveManifest)
	}
	defer f.Close() //nolint:errcheck
	return report.WriteManifest(f, report.Manifest{
		RunID:      run.ID,
		Group:      run.Group,
		Scope:      run.Scope,
		Targets:    run.Targets,
		Exact:      run.Exact,
		Fallback:   run.Fallback,
		NotFound:   run.NotFound,
		RefSeqSize: tables.RefSeq.Len(),
		GenBankSz:  tables.GenBank.Len(),
		ReportPath: reportPath,
		ScriptPath: scriptPath,
		CreatedAt:  run.CreatedAt,
	})
}

func init() {
	resolveCmd.Flags().StringVarP(&resolveInput, "input", "i", "", "file with species names, one per line (required)")
	resolveCmd.Flags().StringVarP(&resolveGroup, "group", "g", "", "taxonomic group: plant, weeds, insects, fungi, bacteria, mammals, ... (required)")
	resolveCmd.Flags().StringVarP(&resolveSource, "source", "s", "both", "database to search: refseq, genbank, or both (both prioritizes RefSeq)")
	resolveCmd.Flags().StringVarP(&resolveOutdir, "outdir", "o", "", "directory the download script saves genomes into (default {group}_genomes)")
	resolveCmd.Flags().StringVar(&resolveFormat, "format", "tsv", "report format: tsv or xlsx")
	resolveCmd.Flags().StringVar(&resolveManifest, "manifest", "", "write a YAML run manifest to this path")
	resolveCmd.Flags().BoolVar(&resolveClean, "clean", false, "force re-download of assembly summary files")
	resolveCmd.Flags().BoolVar(&resolvePreferQuality, "prefer-quality-fallback", false, "when both databases offer only genus fallbacks, pick the higher-quality assembly instead of preferring RefSeq")
	_ = resolveCmd.MarkFlagRequired("input")
	_ = resolveCmd.MarkFlagRequired("group")
	rootCmd.AddCommand(resolveCmd)
}
