// Package commands implements the CLI commands for htmlmd.
package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/kamjin3086/html-content-processor/internal/logger"
)

var rootCmd = &cobra.Command{
	Use:   "htmlmd",
	Short: "Convert web pages to clean Markdown",
	Long: `Htmlmd turns HTML pages into readable Markdown.

Boilerplate (navigation, ads, footers, cookie banners) is scored and
stripped before serialization, and inline links can be rewritten into
numbered citations with a references block.

Examples:
  # Convert a page, filtering boilerplate
  htmlmd convert https://example.com/article

  # Convert a local file with citations
  htmlmd convert --citations --base-url https://example.com page.html

  # Read from stdin, keep everything
  cat page.html | htmlmd convert --preset lenient -

  # Classify a page before deciding how to filter it
  htmlmd detect https://example.com/docs/api`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger.Init(logger.Options{
			Debug: viper.GetBool("debug"),
			Quiet: viper.GetBool("quiet"),
		})
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().String("config", "", "config file (default $HOME/.htmlmd.yaml)")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "suppress progress output")

	_ = viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	_ = viper.BindPFlag("quiet", rootCmd.PersistentFlags().Lookup("quiet"))
}

func initConfig() {
	if cfgFile := viper.GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
		}
		viper.AddConfigPath(".")
		viper.SetConfigName(".htmlmd")
		viper.SetConfigType("yaml")
	}

	// Environment variables
	viper.SetEnvPrefix("HTMLMD")
	viper.AutomaticEnv()

	// Read config file (ignore error if not found)
	_ = viper.ReadInConfig()
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// logError prints an error message to stderr.
func logError(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
}

// logInfo prints an info message to stderr (unless quiet mode).
func logInfo(format string, args ...any) {
	if !viper.GetBool("quiet") {
		fmt.Fprintf(os.Stderr, format+"\n", args...)
	}
}
