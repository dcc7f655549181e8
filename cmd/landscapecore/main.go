// Command landscapecore drives a workshop session from the terminal: intake,
// status, spreadsheet export, report archiving, and session reset.
package main

import (
	"context"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"landscapecore/internal/blob"
	"landscapecore/internal/core"
	"landscapecore/internal/report"
	"landscapecore/internal/session"
	"landscapecore/pkg/domain"
)

var (
	verbose     bool
	contextFile string
	prometheus  bool

	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "landscapecore",
	Short: "Facilitation engine for socio-ecological landscape workshops",
	Long: `landscapecore manages the data pipeline of a landscape diagnosis
workshop: livelihood and ecosystem intake, prioritization, productive
systems, ecosystem services, threat and conflict matrices, and the final
multi-sheet spreadsheet report.

Session state persists between invocations through the storage backend
selected by LANDSCAPECORE_STORAGE_DRIVER (sqlite by default).`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config := zap.NewProductionConfig()
		if verbose {
			config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = config.Build()
		if err != nil {
			return fmt.Errorf("initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

// openService opens the configured session store and applies the workshop
// context file when one was supplied.
func openService() (*core.Service, error) {
	store, err := session.Open()
	if err != nil {
		return nil, fmt.Errorf("open session store: %w", err)
	}
	opts := []core.Option{core.WithLogger(newZapLogger(logger))}
	if prometheus {
		opts = append(opts, core.WithMetrics(core.NewPrometheusMetricsRecorder(nil)))
	} else {
		opts = append(opts, core.WithMetrics(core.NewExpvarMetricsRecorder("landscapecore")))
	}
	svc := core.NewService(store, opts...)
	if contextFile != "" {
		raw, err := os.ReadFile(contextFile)
		if err != nil {
			return nil, fmt.Errorf("read context file: %w", err)
		}
		var wc domain.WorkshopContext
		if err := yaml.Unmarshal(raw, &wc); err != nil {
			return nil, fmt.Errorf("parse context file: %w", err)
		}
		if err := svc.SetContext(wc); err != nil {
			return nil, fmt.Errorf("store context: %w", err)
		}
	}
	return svc, nil
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show how many records each store holds",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := openService()
		if err != nil {
			return err
		}
		counts := svc.StoreCounts()
		if len(counts) == 0 {
			cmd.Println("empty session")
			return nil
		}
		keys := make([]string, 0, len(counts))
		for k := range counts {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			cmd.Printf("%-32s %d\n", k, counts[k])
		}
		return nil
	},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Install the built-in livelihood and ecosystem catalogs",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := openService()
		if err != nil {
			return err
		}
		if err := svc.SeedDefaultCatalogs(); err != nil {
			return err
		}
		logger.Info("default catalogs installed")
		return nil
	},
}

var intakeCmd = &cobra.Command{
	Use:   "intake <workbook.xlsx>",
	Short: "Run an intake batch from the first sheet of a workbook",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := openService()
		if err != nil {
			return err
		}
		table, err := report.ReadIntakeTable(args[0])
		if err != nil {
			return err
		}
		res, err := svc.ImportTable(table)
		if err != nil {
			return err
		}
		cmd.Printf("imported %d livelihoods, %d ecosystems\n",
			len(res.Livelihoods), len(res.Ecosystems))
		return nil
	},
}

var exportOutput string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the multi-sheet report workbook",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := openService()
		if err != nil {
			return err
		}
		path := exportOutput
		if path == "" {
			path = report.DefaultFilename(time.Now())
		}
		if err := report.Export(svc, path); err != nil {
			return err
		}
		logger.Info("report exported", zap.String("path", path))
		cmd.Println(path)
		return nil
	},
}

var archiveCmd = &cobra.Command{
	Use:   "archive",
	Short: "Render the report and store it in the blob archive",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := openService()
		if err != nil {
			return err
		}
		store, err := blob.Open(cmd.Context())
		if err != nil {
			return fmt.Errorf("open archive: %w", err)
		}
		info, err := report.Archive(cmd.Context(), store, svc, time.Now())
		if err != nil {
			return err
		}
		logger.Info("report archived",
			zap.String("key", info.Key),
			zap.Int64("bytes", info.Size),
			zap.String("driver", string(store.Driver())))
		cmd.Println(info.Key)
		return nil
	},
}

var resetYes bool

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Clear every store of the session",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !resetYes {
			return fmt.Errorf("refusing to clear the session without --yes")
		}
		svc, err := openService()
		if err != nil {
			return err
		}
		return svc.Reset()
	},
}

func main() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&contextFile, "context", "", "YAML file with workshop date, country and group name")
	rootCmd.PersistentFlags().BoolVar(&prometheus, "prometheus", false, "record metrics in the default prometheus registry")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "output path (default: dated filename)")
	resetCmd.Flags().BoolVar(&resetYes, "yes", false, "confirm clearing all session data")
	rootCmd.AddCommand(statusCmd, seedCmd, intakeCmd, exportCmd, archiveCmd, resetCmd)

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
