// Package main is the entry point for the pdfstitch CLI.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/drummonds/pdfstitch/config"
	"github.com/drummonds/pdfstitch/engine"
)

// version is set at build time via ldflags.
var version = "dev"

// serverConfig is loaded once before any subcommand runs.
var serverConfig config.ServerConfig

var rootCmd = &cobra.Command{
	Use:   "pdfstitch",
	Short: "Stitch the pages of a PDF into one image",
	Long: `pdfstitch downloads or opens a PDF, renders every page at a configurable
scale factor and stacks the pages vertically into a single combined image.

Sources starting with http:// or https:// are downloaded to a scratch file
that is removed when the run finishes; anything else is treated as a local
path and never deleted. The process exits non-zero when a run fails.`,
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		var logger *slog.Logger
		serverConfig, logger = config.SetupServer()
		injectGlobals(logger)
	},
}

// injectGlobals hands the shared logger to the packages that keep one.
func injectGlobals(logger *slog.Logger) {
	config.Logger = logger
	engine.Logger = logger
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./pdfstitch.yaml or ~/.config/pdfstitch/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("pdfstitch")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "pdfstitch"))
		}
	}

	viper.SetEnvPrefix("PDFSTITCH")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// resolveRenderer picks the rendering backend: --renderer flag, then config
// file / PDFSTITCH_RENDERER, then the RENDERER environment default.
func resolveRenderer(cmd *cobra.Command) string {
	if cmd.Flags().Changed("renderer") {
		backend, _ := cmd.Flags().GetString("renderer")
		return backend
	}
	if backend := viper.GetString("renderer"); backend != "" {
		return backend
	}
	return serverConfig.RendererBackend
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
