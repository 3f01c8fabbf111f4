package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"sqj/internal/config"
	"sqj/internal/core"
	"sqj/internal/dump"
	"sqj/internal/logging"
	"sqj/internal/output"
	"sqj/internal/parser"
	"sqj/internal/reader"
)

func main() {
	var verbose bool
	rootCmd := &cobra.Command{
		Use:   "sqj",
		Short: "Convert SQL dumps to JSON",
	}
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	var convertConfigPath string
	var convertOut string
	var convertSplitDir string
	var convertCompact bool
	var convertSkip bool
	var convertLimit int

	convertCmd := &cobra.Command{
		Use:   "convert <dump.sql>",
		Short: "Convert a SQL dump file to JSON",
		Long: `Convert reads a SQL dump file (CREATE TABLE / INSERT INTO statements) and
writes the table schemas and row data as JSON: one combined document by
default, or one file per table plus a summary index with --split-dir.
Statements that cannot be parsed are dropped with a diagnostic, never a
failure; dumps from real export tools are messy and that is expected.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, closeLogger := logging.Setup(verbose)
			defer closeLogger()

			if convertConfigPath != "" {
				cfg, err := config.Load(convertConfigPath)
				if err != nil {
					return err
				}
				flags := cmd.Flags()
				if !flags.Changed("output") {
					convertOut = cfg.Convert.Output
				}
				if !flags.Changed("split-dir") {
					convertSplitDir = cfg.Convert.SplitDir
				}
				if !flags.Changed("compact") {
					convertCompact = cfg.Convert.Compact
				}
				if !flags.Changed("skip-unparsable") {
					convertSkip = cfg.Convert.SkipUnparsable
				}
				if !flags.Changed("limit") {
					convertLimit = cfg.Convert.StatementLimit
				}
			}

			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("failed to open dump file: %w", err)
			}
			defer f.Close()

			reg, st, err := convertStream(f, parser.Options{
				SkipUnparsable: convertSkip,
				StatementLimit: convertLimit,
				Logger:         logger,
			})
			if err != nil {
				return fmt.Errorf("failed to read dump file: %w", err)
			}

			logger.Info("conversion finished",
				zap.Int("statements", st.ProcessedStatements),
				zap.Int("tables", reg.Len()),
				zap.Int("records", reg.TotalRecords()))

			return writeRegistry(reg, convertCompact, convertOut, convertSplitDir)
		},
	}

	convertCmd.Flags().StringVarP(&convertOut, "output", "o", "", "Output file for the combined JSON document (stdout if empty)")
	convertCmd.Flags().StringVarP(&convertSplitDir, "split-dir", "s", "", "Write one JSON file per table into this directory instead")
	convertCmd.Flags().BoolVar(&convertCompact, "compact", false, "Emit compact JSON without indentation")
	convertCmd.Flags().BoolVar(&convertSkip, "skip-unparsable", false, "Suppress diagnostics for statements that fail to parse")
	convertCmd.Flags().IntVarP(&convertLimit, "limit", "l", 0, "Stop after this many statements (0 = no limit)")
	convertCmd.Flags().StringVarP(&convertConfigPath, "config", "c", "", "TOML configuration file; explicit flags take precedence")

	var inspectSkip bool
	var inspectLimit int

	inspectCmd := &cobra.Command{
		Use:   "inspect <dump.sql>",
		Short: "Parse a SQL dump and print a summary without writing JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, closeLogger := logging.Setup(verbose)
			defer closeLogger()

			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("failed to open dump file: %w", err)
			}
			defer f.Close()

			reg, _, err := convertStream(f, parser.Options{
				SkipUnparsable: inspectSkip,
				StatementLimit: inspectLimit,
				Logger:         logger,
			})
			if err != nil {
				return fmt.Errorf("failed to read dump file: %w", err)
			}

			fmt.Print(output.TextSummary(reg))
			return nil
		},
	}

	inspectCmd.Flags().BoolVar(&inspectSkip, "skip-unparsable", false, "Suppress diagnostics for statements that fail to parse")
	inspectCmd.Flags().IntVarP(&inspectLimit, "limit", "l", 0, "Stop after this many statements (0 = no limit)")

	var dumpConfigPath string
	var dumpDSN string
	var dumpTables []string
	var dumpOut string
	var dumpSplitDir string
	var dumpCompact bool
	var dumpTimeout int

	dumpCmd := &cobra.Command{
		Use:   "dump",
		Short: "Read tables from a live MySQL database and write them as JSON",
		Long: `Dump connects to a MySQL database and converts its tables directly,
without an intermediate dump file. The output is identical in shape to
what convert produces.

Examples:
  sqj dump --dsn "user:pass@tcp(localhost:3306)/mydb" -o db.json
  sqj dump --dsn "user:pass@tcp(localhost:3306)/mydb" --tables users,orders -s out/`,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, closeLogger := logging.Setup(verbose)
			defer closeLogger()

			if dumpConfigPath != "" {
				cfg, err := config.Load(dumpConfigPath)
				if err != nil {
					return err
				}
				flags := cmd.Flags()
				if !flags.Changed("dsn") {
					dumpDSN = cfg.Dump.DSN
				}
				if !flags.Changed("tables") {
					dumpTables = cfg.Dump.Tables
				}
			}
			if dumpDSN == "" {
				return fmt.Errorf("--dsn is required")
			}

			ctx, cancel := context.WithTimeout(context.Background(), time.Duration(dumpTimeout)*time.Second)
			defer cancel()

			d := dump.NewDumper(dump.Options{DSN: dumpDSN, Tables: dumpTables}, logger)
			if err := d.Connect(ctx); err != nil {
				return err
			}
			defer func() {
				if err := d.Close(); err != nil {
					logger.Warn("failed to close database connection", zap.Error(err))
				}
			}()

			reg, err := d.Dump(ctx)
			if err != nil {
				return err
			}

			return writeRegistry(reg, dumpCompact, dumpOut, dumpSplitDir)
		},
	}

	dumpCmd.Flags().StringVar(&dumpDSN, "dsn", "", "Database connection string (required)")
	dumpCmd.Flags().StringSliceVar(&dumpTables, "tables", nil, "Comma-separated list of tables to dump (default: all)")
	dumpCmd.Flags().StringVarP(&dumpOut, "output", "o", "", "Output file for the combined JSON document (stdout if empty)")
	dumpCmd.Flags().StringVarP(&dumpSplitDir, "split-dir", "s", "", "Write one JSON file per table into this directory instead")
	dumpCmd.Flags().BoolVar(&dumpCompact, "compact", false, "Emit compact JSON without indentation")
	dumpCmd.Flags().IntVar(&dumpTimeout, "timeout", 300, "Connection timeout in seconds")
	dumpCmd.Flags().StringVarP(&dumpConfigPath, "config", "c", "", "TOML configuration file; explicit flags take precedence")

	rootCmd.AddCommand(convertCmd)
	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(dumpCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// convertStream runs every statement in r through the dispatcher, stopping
// early when the parser signals the statement limit. The registry accumulated
// so far is returned either way.
func convertStream(r io.Reader, opts parser.Options) (*core.Registry, *parser.State, error) {
	p := parser.NewParser(opts)
	reg := core.NewRegistry()
	st := &parser.State{}

	sc := reader.NewStatementScanner(r)
	for sc.Scan() {
		if !p.ParseStatement(sc.Statement(), st, reg) {
			break
		}
	}
	if err := sc.Err(); err != nil {
		return nil, nil, err
	}
	return reg, st, nil
}

func writeRegistry(reg *core.Registry, compact bool, outFile, splitDir string) error {
	w := output.NewWriter(compact)
	if splitDir != "" {
		if err := w.WriteSeparate(reg, splitDir); err != nil {
			return err
		}
		fmt.Printf("Output saved to %s\n", splitDir)
		return nil
	}
	if outFile == "" {
		doc, err := w.Combined(reg)
		if err != nil {
			return err
		}
		fmt.Print(doc)
		return nil
	}
	if err := w.WriteCombined(reg, outFile); err != nil {
		return err
	}
	fmt.Printf("Output saved to %s\n", outFile)
	return nil
}
