// Package main provides the geno-tables command-line tool.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// Version information (set at build time)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "geno-tables",
	Short: "Convert variant call streams into genotype store tables",
	Long: `geno-tables reshapes per-position/per-sample variant records into the
normalized tables of a genotype store: variants, annotations, genotype
calls, callsets and samples, written as schema-typed parquet artifacts
suitable for bulk loading into an analytical database.`,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Log per-chunk progress")
	viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))

	rootCmd.AddCommand(convertCmd)
	rootCmd.AddCommand(synthCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(versionCmd)
}

// initConfig loads ~/.geno-tables.yaml and GENO_TABLES_* env overrides.
// A missing config file is fine.
func initConfig() {
	if home, err := os.UserHomeDir(); err == nil {
		viper.AddConfigPath(home)
		viper.SetConfigName(".geno-tables")
		viper.SetConfigType("yaml")
	}
	viper.SetEnvPrefix("GENO_TABLES")
	viper.AutomaticEnv()
	_ = viper.ReadInConfig()
}

// newLogger builds the run logger. Progress reporting is best-effort and
// never blocks the transform, so logger construction failures degrade to
// a no-op logger.
func newLogger() *zap.Logger {
	if !viper.GetBool("verbose") {
		return zap.NewNop()
	}
	logger, err := zap.NewDevelopment()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("geno-tables version %s (%s) built %s\n", version, commit, date)
	},
}
