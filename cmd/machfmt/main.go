// Command machfmt parses and reformats SQL from stdin or a file, using
// machparse's parser and formatter.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/machparse/machparse/config"
	"github.com/machparse/machparse/format"
	"github.com/machparse/machparse/internal/corelog"
	"github.com/machparse/machparse/parser"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		configPath string
		dialect    string
		inPlace    bool
	)

	cmd := &cobra.Command{
		Use:   "machfmt [file]",
		Short: "Parse and reformat a SQL query",
		Long: "machfmt reads a single SQL statement from a file (or stdin when no file " +
			"is given), parses it, and writes it back out through machparse's formatter.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			log := corelog.New()

			cfg, err := config.Load(configPath)
			if err != nil {
				log.WithError(err).Warn("could not load config, using defaults")
			}
			if dialect != "" {
				cfg.DialectName = dialect
			}

			source := "-"
			var src io.Reader = cmd.InOrStdin()
			if len(args) == 1 {
				source = args[0]
				f, err := os.Open(source)
				if err != nil {
					return err
				}
				defer f.Close()
				src = f
			}

			entry := corelog.WithSource(log, source)

			sql, err := io.ReadAll(src)
			if err != nil {
				entry.WithError(err).Error("reading input")
				return err
			}

			out, err := formatSQL(string(sql), cfg)
			if err != nil {
				entry.WithError(err).Error("formatting query")
				return err
			}

			if inPlace && source != "-" {
				return os.WriteFile(source, []byte(out+"\n"), 0o644)
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}

	cmd.Flags().StringVar(&configPath, "config", ".machfmt.yml", "path to config file")
	cmd.Flags().StringVar(&dialect, "dialect", "", "override the configured SQL dialect (postgres, mysql, sqlite, mssql)")
	cmd.Flags().BoolVarP(&inPlace, "write", "w", false, "write the formatted output back to the input file")

	return cmd
}

func formatSQL(sql string, cfg config.Config) (string, error) {
	p := parser.NewDialect(sql, cfg.Dialect())
	stmt, err := p.Parse()
	if err != nil {
		return "", err
	}

	sf := format.NewSqlFormatter(cfg.SqlFormatterOptions())
	out, _, err := sf.Format(stmt, nil)
	if err != nil {
		return "", err
	}
	return out, nil
}
