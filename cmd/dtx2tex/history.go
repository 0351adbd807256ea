// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/dtx2tex/internal/history"
	"github.com/pdiddy/dtx2tex/internal/report"
	"github.com/pdiddy/dtx2tex/pkg/types"
)

var historyCmd = &cobra.Command{
	Use:   "history [NAME]",
	Short: "List recorded conversions",
	Long: `History lists conversions recorded with "convert --history" (or
history.enabled in the config file), newest first. Give NAME to show only
runs of NAME.dtx.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().Int("limit", 20, "maximum number of runs to list")
	historyCmd.Flags().String("format", "table", "output format: table, yaml, or json")

	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	limit, _ := cmd.Flags().GetInt("limit")
	format, _ := cmd.Flags().GetString("format")

	opts := history.ListOptions{Limit: limit}
	if len(args) == 1 {
		opts.Input = args[0]
		if !strings.HasSuffix(opts.Input, ".dtx") {
			opts.Input += ".dtx"
		}
	}

	store, err := history.NewStore(cfg.History, logger)
	if err != nil {
		return err
	}
	defer store.Close()

	runs, err := store.List(cmd.Context(), opts)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if format == "table" || format == "" {
		formatHistoryTable(out, runs)
		return nil
	}
	f, err := report.ParseFormat(format)
	if err != nil {
		return err
	}
	if runs == nil {
		runs = []types.Run{}
	}
	return report.Encode(out, f, runs)
}

func formatHistoryTable(w io.Writer, runs []types.Run) {
	if len(runs) == 0 {
		fmt.Fprintln(w, "No conversions recorded.")
		return
	}

	fmt.Fprintf(w, "%-4s  %-20s  %-30s  %-9s  %-6s  %s\n",
		"ID", "Started", "Input", "Status", "Blocks", "Detail")
	fmt.Fprintln(w, strings.Repeat("-", 100))

	for _, r := range runs {
		input := r.Input
		if len(input) > 30 {
			input = "..." + input[len(input)-27:]
		}
		detail := fmt.Sprintf("%d -> %d lines", r.LinesIn, r.LinesOut)
		if r.Status == types.RunFailed {
			detail = r.ErrorKind
		}
		fmt.Fprintf(w, "%-4d  %-20s  %-30s  %-9s  %-6d  %s\n",
			r.ID, r.StartedAt.Local().Format("2006-01-02 15:04:05"), input, r.Status, r.Pairs, detail)
	}

	fmt.Fprintf(w, "\n%d runs\n", len(runs))
}
