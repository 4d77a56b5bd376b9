package main

import (
	"context"
	"log"

	"github.com/spf13/cobra"

	"github.com/jonathan/career-analyzer/internal/server"
)

var (
	servePort       int
	serveUseBrowser bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes OCR, document analysis, keyword, skill and job recommendation endpoints.`,
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 8000, "Port to listen on (overrides config and PORT)")
	serveCmd.Flags().BoolVar(&serveUseBrowser, "use-browser", false, "Allow headless Chrome for /url/analyze requests that ask for it")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("port") {
		cfg.Port = servePort
		if err := cfg.Validate(); err != nil {
			return err
		}
	}

	logger := newLogger(cfg.Verbose)
	rec := newRecommender(context.Background(), cfg, logger)
	defer rec.Close() //nolint:errcheck

	if rec.RemoteAvailable() {
		log.Printf("Remote recommendations enabled (model %s)", rec.Model())
	} else {
		log.Println("Remote recommendations unavailable; using built-in job mappings")
	}

	srv := server.New(server.Config{
		Port:             cfg.Port,
		UploadDir:        cfg.UploadDir,
		MaxUploadBytes:   cfg.MaxFileSizeBytes,
		RecommendTimeout: cfg.RecommendTimeout(),
		RateLimit:        cfg.RateLimit(),
	}, newExtractor(cfg, serveUseBrowser, logger), rec, logger)

	return srv.Start()
}
