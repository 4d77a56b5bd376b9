// Package main provides the entry point for the career document analyzer CLI and HTTP API server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "career_agent",
	Short: "Career document analyzer",
	Long: `career_agent extracts text from resumes and job postings (images, PDF, DOC, DOCX, web pages),
finds technical keywords, groups skills into professional sectors and recommends jobs.

Configuration is read from defaults, then --config, then the environment (.env is loaded first),
then command-line flags.`,
	SilenceUsage: true,
}

var (
	configPath string
	apiKey     string
	modelName  string
	offline    bool
	verbose    bool
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config.json file (values can be overridden by other flags)")
	rootCmd.PersistentFlags().StringVar(&apiKey, "api-key", "", "Gemini API Key (optional, defaults to GEMINI_API_KEY env var)")
	rootCmd.PersistentFlags().StringVar(&modelName, "model", "", "Gemini model to try before the built-in candidates")
	rootCmd.PersistentFlags().BoolVar(&offline, "offline", false, "Never call the remote model; use built-in job mappings")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Print detailed debug information")
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
