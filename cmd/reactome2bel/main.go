package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"reactome2bel/internal/bel"
	"reactome2bel/internal/config"
	"reactome2bel/internal/crawler"
	"reactome2bel/internal/generator"
	"reactome2bel/internal/index"
	"reactome2bel/internal/pipeline"
	"reactome2bel/internal/reactome"
	"reactome2bel/internal/storage"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	rootCmd = &cobra.Command{
		Use:   "reactome2bel",
		Short: "Convert Reactome reactions into BEL scripts",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			zc := zap.NewProductionConfig()
			if verbose {
				zc.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
			}
			var err error
			logger, err = zc.Build()
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}

			cfg, err = config.LoadConfig(configPath)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			if dbPath != "" {
				cfg.Cache.Path = dbPath
			}
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if logger != nil {
				_ = logger.Sync()
			}
		},
	}

	configPath string
	dbPath     string
	verbose    bool

	cfg    *config.Config
	logger *zap.Logger
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "config.yaml", "Path to the YAML config file")
	rootCmd.PersistentFlags().StringVarP(&dbPath, "db", "d", "", "Path to the local entity cache (SQLite), overrides the config")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log conversion events at debug level")

	convertCmd.Flags().StringVarP(&belVersion, "belversion", "b", "1", "BEL version to emit (1 or 2)")
	convertCmd.Flags().StringArrayVarP(&species, "species", "s", nil, `Species to convert: "Homo sapiens", "Mus musculus", "Rattus norvegicus" or all`)
	convertCmd.Flags().StringArrayVarP(&pathways, "pathways", "p", nil, "Restrict to top-level Reactome pathways, e.g. -p Metabolism")
	convertCmd.Flags().StringVarP(&outputDir, "out", "o", "", "Directory for the BEL script and reports")

	reactionsCmd.Flags().StringArrayVarP(&species, "species", "s", nil, "Species to list reactions for (or all)")
	reactionsCmd.Flags().StringArrayVarP(&pathways, "pathways", "p", nil, "Restrict to top-level Reactome pathways")

	rootCmd.AddCommand(convertCmd)
	rootCmd.AddCommand(reactionsCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(indexCmd)
}

var (
	belVersion string
	species    []string
	pathways   []string
	outputDir  string
)

// openSource wires the REST client behind the SQLite cache.
func openSource() (reactome.Source, *storage.SQLiteStore, error) {
	store, err := storage.NewSQLiteStore(cfg.Cache.Path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	client := reactome.NewClient(reactome.ClientOptions{
		BaseURL: cfg.Reactome.BaseURL,
		Timeout: cfg.Timeout(),
	})
	src := storage.NewCachedSource(client, store, storage.CachedSourceOptions{
		Offline: cfg.Reactome.Offline,
		Logger:  logger,
	})
	return src, store, nil
}

// selection resolves species and pathways from flags, falling back to config.
func selection(cmd *cobra.Command) ([]string, []string, error) {
	sp := species
	if !cmd.Flags().Changed("species") {
		sp = cfg.Species
	}
	sp, err := pipeline.ExpandSpecies(sp)
	if err != nil {
		return nil, nil, err
	}
	pw := pathways
	if !cmd.Flags().Changed("pathways") {
		pw = cfg.Pathways
	}
	return sp, pw, nil
}

var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Convert Reactome reactions into a BEL script",
	Example: `  reactome2bel convert -b 1 -s "Homo sapiens" -s "Mus musculus" -p Metabolism
  reactome2bel convert -b 2 -s all -p "Transmembrane transport of small molecules"`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		sp, pw, err := selection(cmd)
		if err != nil {
			return err
		}

		version := bel.Version(cfg.BEL.Version)
		if cmd.Flags().Changed("belversion") {
			if version, err = bel.ParseVersion(belVersion); err != nil {
				return err
			}
		}
		out := cfg.Output.Dir
		if outputDir != "" {
			out = outputDir
		}
		cmd.SilenceUsage = true

		src, store, err := openSource()
		if err != nil {
			return err
		}
		defer store.Close()

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		fmt.Printf("🚀 Converting %v to BEL %d...\n", sp, int(version))
		start := time.Now()
		run := &pipeline.Convert{
			Source:          src,
			Species:         sp,
			Pathways:        pw,
			Version:         version,
			Memoize:         cfg.BEL.Memoize,
			OutputDir:       out,
			BadEvidenceFile: cfg.Output.BadEvidence,
			ReportFile:      cfg.Output.Report,
			BrowserURL:      cfg.Reactome.BrowserURL,
			Document: generator.DocumentInfo{
				Authors:      cfg.Document.Authors,
				ContactEmail: cfg.Document.ContactEmail,
				Version:      cfg.Document.Version,
			},
			Logger: logger,
			Out:    os.Stdout,
		}
		res, err := run.Run(ctx)
		if err != nil {
			return err
		}

		if n := len(res.Evidences.Failed); n > 0 {
			color.Yellow("⚠️  %d reactions failed; see %s", n, res.ReportPath)
		}
		color.Green("🎉 Conversion complete in %v. %d evidences in %s, %d set aside in %s",
			time.Since(start).Round(time.Millisecond),
			len(res.Evidences.Accepted), res.ScriptPath,
			len(res.Evidences.Flagged), res.BadEvidencePath)
		return nil
	},
}

var reactionsCmd = &cobra.Command{
	Use:   "reactions",
	Short: "List the reactions a conversion would process",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		sp, pw, err := selection(cmd)
		if err != nil {
			return err
		}
		cmd.SilenceUsage = true

		src, store, err := openSource()
		if err != nil {
			return err
		}
		defer store.Close()

		refs, err := reactome.CollectReactions(cmd.Context(), src, sp, pw)
		if err != nil {
			return fmt.Errorf("failed to collect reactions: %w", err)
		}
		for _, r := range refs {
			fmt.Printf("%s\t%s\n", r.ID, r.Name)
		}
		logger.Info("reactions listed", zap.Int("count", len(refs)))
		return nil
	},
}

var importCmd = &cobra.Command{
	Use:   "import <dir>",
	Short: "Load a directory of downloaded <dbId>.json records into the cache",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true
		store, err := storage.NewSQLiteStore(cfg.Cache.Path)
		if err != nil {
			return fmt.Errorf("failed to initialize database: %w", err)
		}
		defer store.Close()

		fmt.Printf("📂 Importing records from: %s\n", args[0])
		idx := index.NewIndexer(crawler.NewCrawler(logger), store, logger)
		n, err := idx.Import(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		fmt.Printf("✅ Imported %d records into %s\n", n, cfg.Cache.Path)
		return nil
	},
}

var indexCmd = &cobra.Command{
	Use:   "index [out]",
	Short: "Write the dbId/schemaClass index of the cached records",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := index.DefaultIndexFile
		if len(args) > 0 {
			out = args[0]
		}
		cmd.SilenceUsage = true

		store, err := storage.NewSQLiteStore(cfg.Cache.Path)
		if err != nil {
			return fmt.Errorf("failed to initialize database: %w", err)
		}
		defer store.Close()

		idx := index.NewIndexer(crawler.NewCrawler(logger), store, logger)
		n, err := idx.WriteIndex(cmd.Context(), out)
		if err != nil {
			return err
		}
		fmt.Printf("💾 Wrote %d entries to %s\n", n, out)
		return nil
	},
}
