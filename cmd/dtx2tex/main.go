// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the dtx2tex CLI, which extracts the
// documentation body of a LaTeX .dtx file into a standalone .tex file.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/pdiddy/dtx2tex/internal/history"
	"github.com/pdiddy/dtx2tex/internal/watch"
	"github.com/pdiddy/dtx2tex/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// logger is replaced in PersistentPreRunE; tests keep the no-op default.
var logger = zap.NewNop()

// rootCmd is the base command for the dtx2tex CLI.
var rootCmd = &cobra.Command{
	Use:   "dtx2tex",
	Short: "Strip documentation lines from a .dtx file into a .tex file",
	Long: `dtx2tex reads a LaTeX documented source (.dtx) and writes a plain .tex
file holding its documentation: comment markers are removed, macrocode
environments become verbatim, package flag lines are dropped, and the
driver preamble and closing lines are copied unchanged.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config := zap.NewProductionConfig()
		config.Encoding = "console"
		config.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
		if viper.GetBool("conversion.verbose") {
			config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		l, err := config.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		logger = l
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./dtx2tex.yaml or ~/.config/dtx2tex/config.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "report anchor and conditional block line numbers")
	rootCmd.PersistentFlags().String("history-db", history.DefaultPath, "conversion history database")

	viper.BindPFlag("conversion.verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	viper.BindPFlag("history.path", rootCmd.PersistentFlags().Lookup("history-db"))
	viper.SetDefault("watch.debounce", watch.DefaultDebounce)
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("dtx2tex")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "dtx2tex"))
		}
	}

	viper.SetEnvPrefix("DTX2TEX")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// loadConfig assembles the effective configuration from flags, the config
// file, and DTX2TEX_* environment variables.
func loadConfig() types.Config {
	return types.Config{
		Conversion: types.ConversionConfig{
			Verbose:    viper.GetBool("conversion.verbose"),
			ReportPath: viper.GetString("conversion.report_path"),
		},
		History: types.HistoryConfig{
			Enabled: viper.GetBool("history.enabled"),
			Path:    viper.GetString("history.path"),
		},
		Watch: types.WatchConfig{
			Debounce: viper.GetDuration("watch.debounce"),
		},
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
