package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/glesirok/uilocator/pkg/processor"
)

var (
	envFile       string
	verbose       bool
	toolkitName   string
	caseSensitive bool

	suiteFile string
	input     string
	output    string
	dryRun    bool

	snapshotFile string

	logger = zap.NewNop()
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "uilocator",
		Short: "Query Swing/SWT/RCP component snapshots with locators",
		Long: `uilocator parses CSS-like, XPath-like and prefix:value locators and
evaluates them against captured UI component trees.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := loadEnv(envFile); err != nil {
				return err
			}
			l, err := newLogger(verbose)
			if err != nil {
				return fmt.Errorf("create logger: %w", err)
			}
			logger = l
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = logger.Sync()
		},
	}

	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "Environment file with default settings")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose logging")
	rootCmd.PersistentFlags().StringVarP(&toolkitName, "toolkit", "t", "", "Toolkit: swing, swt or rcp (default swing, or $UILOCATOR_TOOLKIT)")
	rootCmd.PersistentFlags().BoolVar(&caseSensitive, "case-sensitive", false, "Case-sensitive value matching (or $UILOCATOR_CASE_SENSITIVE)")

	rootCmd.AddCommand(
		newParseCmd(),
		newFindCmd(),
		newNormalizeCmd(),
		newParamsCmd(),
		newRunCmd(),
	)
	return rootCmd
}

func newRunCmd() *cobra.Command {
	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Run a query suite against snapshot files",
		Long: `run executes every query of a YAML suite against a snapshot file or every
snapshot (.yaml, .yml, .json) under a directory, and writes one report per snapshot.`,
		Args: cobra.NoArgs,
		RunE: run,
	}

	runCmd.Flags().StringVarP(&suiteFile, "config", "c", "", "Query suite file (required)")
	runCmd.Flags().StringVarP(&input, "input", "i", "", "Snapshot file or directory (required)")
	runCmd.Flags().StringVarP(&output, "output", "o", "", "Report file/directory (optional, defaults to next to each snapshot)")
	runCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Dry-run mode: print reports without writing files")

	runCmd.MarkFlagRequired("config")
	runCmd.MarkFlagRequired("input")
	return runCmd
}

func run(cmd *cobra.Command, args []string) error {
	s, err := resolveSettings(cmd)
	if err != nil {
		return err
	}

	// 创建处理器
	proc, err := processor.NewProcessor(suiteFile,
		processor.WithToolkit(s.toolkit),
		processor.WithCaseSensitive(s.caseSensitive),
		processor.WithLogger(logger),
		processor.WithOutput(cmd.OutOrStdout()),
	)
	if err != nil {
		return fmt.Errorf("create processor: %w", err)
	}

	// 判断输入类型
	info, err := os.Stat(input)
	if err != nil {
		return fmt.Errorf("stat input: %w", err)
	}

	var reports []*processor.Report
	if info.IsDir() {
		reports, err = proc.ProcessDirectory(input, output, dryRun)
		if err != nil {
			return err
		}
	} else {
		outputFile := output
		if outputFile == "" {
			outputFile = processor.ReportPath(input)
		}
		report, err := proc.ProcessFile(input, outputFile, dryRun)
		if err != nil {
			return err
		}
		reports = append(reports, report)
		if !dryRun {
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Processed: %s → %s\n", input, outputFile)
		}
	}

	failed := 0
	for _, r := range reports {
		failed += r.Summary.Failed
	}
	if failed > 0 {
		return fmt.Errorf("%d queries failed", failed)
	}

	if !dryRun && info.IsDir() {
		fmt.Fprintf(cmd.OutOrStdout(), "✓ All %d snapshots passed\n", len(reports))
	}
	return nil
}
