// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/pdiddy/dtx2tex/internal/dtx"
	"github.com/pdiddy/dtx2tex/internal/history"
	"github.com/pdiddy/dtx2tex/internal/report"
	"github.com/pdiddy/dtx2tex/internal/watch"
	"github.com/pdiddy/dtx2tex/pkg/types"
)

var convertCmd = &cobra.Command{
	Use:   "convert NAME [OUTPUT]",
	Short: "Convert NAME.dtx into OUTPUT.tex (OUTPUT defaults to NAME)",
	Long: `Convert locates the driver anchors of NAME.dtx (\documentclass,
\begin{document}, \DocInput, \end{document}, \endinput), pairs its
"% \iffalse" / "% \fi" blocks, and writes the documentation outside those
blocks to OUTPUT.tex. NAME and OUTPUT may be given with or without their
extension.

With --watch the conversion reruns whenever NAME.dtx is saved.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runConvert,
}

func init() {
	convertCmd.Flags().String("report", "", "write a YAML (or .json) report of anchors and blocks to this path")
	convertCmd.Flags().Bool("history", false, "record the conversion in the history database")
	convertCmd.Flags().Bool("watch", false, "reconvert whenever the input file changes")
	convertCmd.Flags().Duration("debounce", 0, "delay before reconverting in watch mode (default 300ms)")

	viper.BindPFlag("conversion.report_path", convertCmd.Flags().Lookup("report"))
	viper.BindPFlag("history.enabled", convertCmd.Flags().Lookup("history"))

	rootCmd.AddCommand(convertCmd)
}

func runConvert(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	cfg.Conversion.InputName = args[0]
	if len(args) > 1 {
		cfg.Conversion.OutputName = args[1]
	}
	if d, _ := cmd.Flags().GetDuration("debounce"); d > 0 {
		cfg.Watch.Debounce = d
	}

	var store *history.Store
	if cfg.History.Enabled {
		s, err := history.NewStore(cfg.History, logger)
		if err != nil {
			return err
		}
		defer s.Close()
		store = s
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	out := cmd.OutOrStdout()
	err := convertOnce(ctx, cfg.Conversion, store, out)

	watching, _ := cmd.Flags().GetBool("watch")
	if !watching {
		return err
	}
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
	}

	w := watch.New(dtx.WithExt(cfg.Conversion.InputName, dtx.InputExt), cfg.Watch.Debounce, logger)
	fmt.Fprintf(out, "Watching %s (Ctrl-C to stop)\n", dtx.WithExt(cfg.Conversion.InputName, dtx.InputExt))
	return w.Run(ctx, func() error {
		return convertOnce(ctx, cfg.Conversion, store, out)
	})
}

// convertOnce runs a single conversion, recording it in store when non-nil
// and writing the optional report.
func convertOnce(ctx context.Context, cfg types.ConversionConfig, store *history.Store, out io.Writer) error {
	started := time.Now()
	res, err := dtx.Convert(cfg.InputName, cfg.OutputName, dtx.Options{
		Verbose:     cfg.Verbose,
		Diagnostics: out,
	})

	if store != nil {
		if _, herr := store.Record(ctx, res.Run(started, err)); herr != nil {
			logger.Warn("history not recorded", zap.Error(herr))
		}
	}

	if err != nil {
		logger.Debug("conversion failed",
			zap.String("input", res.Input),
			zap.String("kind", dtx.Kind(err)),
			zap.Error(err))
		return fmt.Errorf("%s: %w", dtx.Kind(err), err)
	}

	if cfg.ReportPath != "" {
		if err := report.WriteFile(cfg.ReportPath, res); err != nil {
			return err
		}
	}

	logger.Debug("converted",
		zap.String("input", res.Input),
		zap.String("output", res.Output),
		zap.Int("blocks", len(res.Pairs)),
		zap.Int("lines_out", res.LinesOut),
		zap.Duration("elapsed", time.Since(started)))
	if cfg.Verbose {
		fmt.Fprintln(out, "Process completed.")
	}
	fmt.Fprintf(out, "Output file: %s\n", res.Output)
	return nil
}
