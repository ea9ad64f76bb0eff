//go:build !(js && wasm)

// seqlabel - sequential label numbering

package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/MattSimmons1/seqlabel/config"
	"github.com/MattSimmons1/seqlabel/label"
	"github.com/MattSimmons1/seqlabel/numbering"
)

var (
	verbose    bool
	isPreview  bool
	asJSON     bool
	tokenFile  string
	labelFile  string
	configPath string

	cfg    *config.Config
	logger *zap.Logger
)

var (
	kindStyles = map[string]lipgloss.Style{
		"literal":   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14")),
		"increment": lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		"lookback":  lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
		"sticky":    lipgloss.NewStyle().Foreground(lipgloss.Color("13")),
		"silent":    lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		"resume":    lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
	}
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	flagStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	rowStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Width(5).Align(lipgloss.Right)
	columnStyle = lipgloss.NewStyle().Width(12)
)

// readLines reads path one line per row; "-" is stdin.
func readLines(path string, stdin io.Reader) ([]string, error) {
	var r io.Reader = stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}
	var lines []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		lines = append(lines, strings.TrimRight(sc.Text(), "\r"))
	}
	return lines, sc.Err()
}

func tokensFrom(cmd *cobra.Command, args []string) ([]string, error) {
	if tokenFile != "" {
		return readLines(tokenFile, cmd.InOrStdin())
	}
	return args, nil
}

func initLogger() error {
	zc := zap.NewProductionConfig()
	if verbose || cfg.Verbose {
		zc.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	var err error
	logger, err = zc.Build()
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	numbering.SetLogger(logger)
	label.SetLogger(logger)
	return nil
}

// Preview shows how each token is interpreted, row by row.
func Preview(w io.Writer, tokens []string, c *numbering.Context, runErr error) {
	rendered := slices.Collect(c.Strings())
	for i, token := range tokens {
		row := rowStyle.Render(fmt.Sprint(i + 1))
		if i >= len(rendered) {
			fmt.Fprintln(w, row, errorStyle.Render(columnStyle.Render(token)), errorStyle.Render(fmt.Sprint(runErr)))
			return
		}
		style, ok := kindStyles[numbering.KindOf(token)]
		if !ok {
			style = lipgloss.NewStyle()
		}
		fmt.Fprintln(w, row, style.Render(columnStyle.Render(token)), rendered[i])
	}
}

// Convert runs the token stream and writes the labels, spliced into the
// label file when one is given.
func Convert(w io.Writer, tokens []string, labels []string) error {
	rendered, err := numbering.Render(tokens)
	if err != nil {
		return err
	}

	if labels == nil {
		if asJSON {
			return json.NewEncoder(w).Encode(rendered)
		}
		for _, s := range rendered {
			fmt.Fprintln(w, s)
		}
		return nil
	}

	splicer := &label.Splicer{Separator: cfg.Separator, KeepExisting: cfg.KeepExisting}
	if cfg.Transform != "" {
		if splicer.Transform, err = label.NewTransform(cfg.Transform); err != nil {
			return err
		}
	}
	results, err := splicer.SpliceAll(rendered, labels)
	if err != nil {
		return err
	}
	if asJSON {
		return json.NewEncoder(w).Encode(results)
	}
	for _, r := range results {
		if r.Flagged() {
			fmt.Fprintln(w, r.Text, flagStyle.Render("# "+r.Change.String()))
		} else {
			fmt.Fprintln(w, r.Text)
		}
	}
	return nil
}

func newRootCmd() (rootCmd *cobra.Command) {
	rootCmd = &cobra.Command{
		Use:   "seqlabel [tokens...]",
		Short: "seqlabel computes sequential labels from numbering tokens",
		Long: `seqlabel turns a column of numbering tokens into labels.

Tokens:
  001, PHC101a, 2a.i   fixed value, starts a series
  ~000                 silent fixed value, seeds a series without output
  ^1  ^a  ^i  ^A       increment the last number of the series
  <  <2  <2^1          look back along the series, optionally incrementing
  #LCL_301             sticky value, outside any series
  *^1  *<              resume the previous series

Example:
  seqlabel 001 ^1 ^1a "#X9" ^1`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(c *cobra.Command, args []string) error {
			var err error
			if cfg, err = config.Load(configPath); err != nil {
				return err
			}
			return initLogger()
		},
		PersistentPostRun: func(c *cobra.Command, args []string) {
			if logger != nil {
				_ = logger.Sync()
			}
		},
		RunE: func(c *cobra.Command, args []string) error {
			tokens, err := tokensFrom(c, args)
			if err != nil {
				return err
			}
			if len(tokens) == 0 {
				return c.Help()
			}
			if isPreview {
				nc := numbering.NewContext()
				runErr := nc.Run(tokens)
				Preview(c.OutOrStdout(), tokens, nc, runErr)
				return runErr
			}
			var labels []string
			if labelFile != "" {
				if labels, err = readLines(labelFile, c.InOrStdin()); err != nil {
					return err
				}
				if labels == nil {
					labels = []string{}
				}
			}
			return Convert(c.OutOrStdout(), tokens, labels)
		},
	}
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log every token at debug level")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "YAML config file")
	rootCmd.PersistentFlags().StringVarP(&tokenFile, "file", "f", "", "read tokens from a file, one per line (- for stdin)")
	rootCmd.Flags().BoolVarP(&isPreview, "preview", "p", false,
		"view the interpretation of the input without converting")
	rootCmd.Flags().BoolVar(&asJSON, "json", false, "write JSON instead of one label per line")
	rootCmd.Flags().StringVarP(&labelFile, "labels", "l", "", "splice the numbers into the lines of this file")

	rootCmd.AddCommand(func() (checkCmd *cobra.Command) {
		checkCmd = &cobra.Command{
			Use:   "check [tokens...]",
			Short: "validate a token stream and report the first bad row",
			RunE: func(c *cobra.Command, args []string) error {
				tokens, err := tokensFrom(c, args)
				if err != nil {
					return err
				}
				nc := numbering.NewContext()
				if err := nc.Run(tokens); err != nil {
					return err
				}
				fmt.Fprintf(c.OutOrStdout(), "ok: %d rows, %d series, %d sticky\n",
					len(tokens), len(nc.Series()), len(nc.Stickies()))
				return nil
			},
		}
		return
	}())
	return
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "seqlabel:", err)
		os.Exit(1)
	}
}
