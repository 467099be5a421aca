package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/aeveltstra/lammpster/internal/cache"
	"github.com/aeveltstra/lammpster/internal/common"
	"github.com/aeveltstra/lammpster/internal/pipeline"
	"github.com/aeveltstra/lammpster/internal/render"
	"github.com/aeveltstra/lammpster/internal/store"
)

var (
	cfgFile          string
	verbose          bool
	listStores       bool
	listColumnNames  bool
	listColumnValues int
	selfTest         bool
)

var rootCmd = &cobra.Command{
	Use:   "lammpster [case-id]",
	Short: "Generates posters from rows in a tabular data store",
	Long: `Lammpster is a configurable ETL mapper: it locates one record in a
tabular data store by its case identifier, projects the configured fields
into a profile, and substitutes that profile into per-channel templates to
produce poster artifacts.`,
	Args:         cobra.MaximumNArgs(1),
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}
		slog.SetDefault(common.NewCLILogger(level))
	},
	RunE: run,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "./config.toml", "configuration file to load")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.Flags().BoolVar(&listStores, "list-data-stores", false, "list all data store names in the data base")
	rootCmd.Flags().BoolVar(&listColumnNames, "list-column-names", false, "list all column names in the data store")
	rootCmd.Flags().IntVar(&listColumnValues, "list-column-values", 0, "list all values in column n of the data store (first column has index 1)")
	rootCmd.Flags().BoolVar(&selfTest, "unit-test", false, "run live configuration and data store self checks")
}

func run(cmd *cobra.Command, args []string) error {
	logger := slog.Default()

	logger.Info("retrieving configuration", "path", cfgFile)
	cfg, err := common.LoadConfig(cfgFile, logger)
	if err != nil {
		return err
	}

	db, err := store.Open(cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Warn("closing data source failed", "error", err)
		}
	}()

	if listStores || listColumnNames || listColumnValues != 0 || selfTest {
		return runOnDemand(cfg, db)
	}

	grid, err := db.Store(cfg.Entry("sheet", "page_name", ""))
	if err != nil {
		return err
	}

	if len(args) == 0 {
		return fmt.Errorf(`missing case identifier.
Specify the identity of the case/profile to print as the first argument
of the run invocation, like so:
  $ lammpster abc1234
To find out what case identifiers exist, use the command-line switch
--list-column-values i, substituting i for the column that holds the
case identifiers, like so:
  $ lammpster --list-column-values 1`)
	}
	caseID := args[0]

	profileCache := cache.New(cfg.Entry("profile", "cache", ""), logger)
	posters := &render.PosterWriter{
		OutputFolder: cfg.Entry("output", "folder", "."),
		FilePrefix:   cfg.Entry("output", "file_prefix", ""),
		Logger:       logger,
	}
	if r := render.NewExecRasterizer(cfg.Entry("render", "png_command", ""), logger); r != nil {
		posters.PNG = r
	}
	if r := render.NewExecRasterizer(cfg.Entry("render", "pdf_command", ""), logger); r != nil {
		posters.PDF = r
	}

	processor, err := pipeline.NewProcessor(cfg, grid, profileCache, posters, logger)
	if err != nil {
		return err
	}
	return processor.Run(cmd.Context(), caseID)
}

// runOnDemand handles the listing and self-check switches, which
// short-circuit poster generation.
func runOnDemand(cfg *common.Config, db store.Database) error {
	if listStores {
		names, err := db.StoreNames()
		if err != nil {
			return err
		}
		fmt.Println("All data store names in the data base:")
		for _, name := range names {
			fmt.Println(name)
		}
	}

	if !listColumnNames && listColumnValues == 0 && !selfTest {
		return nil
	}

	if listColumnValues < 0 {
		return fmt.Errorf("column index must be larger than 0; the first column has index 1")
	}

	grid, err := db.Store(cfg.Entry("sheet", "page_name", ""))
	if err != nil {
		return err
	}

	if listColumnNames {
		headerRow := cfg.EntryInt("sheet", "page_column_names_row", 1)
		fmt.Println("All column names in the data store:")
		for _, name := range grid.RowValues(headerRow) {
			fmt.Println(name)
		}
	}

	if listColumnValues > 0 {
		fmt.Printf("All column values in column %d of the data store:\n", listColumnValues)
		for _, value := range grid.ColumnValues(listColumnValues) {
			fmt.Println(value)
		}
	}

	if selfTest {
		fmt.Println("Running self checks...")
		if !runSelfChecks(cfg, db, grid) {
			return fmt.Errorf("one or more self checks failed")
		}
	}

	return nil
}
