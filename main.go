package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"

	"ficha-generator/backend"
	"ficha-generator/config"
	"ficha-generator/export"
	"ficha-generator/server"
	"ficha-generator/services"
	"ficha-generator/storage"
	"ficha-generator/utils"
)

func main() {
	app := &cli.App{
		Name:  "ficha-generator",
		Usage: "turn a Portal Inmobiliario listing into a property card, WhatsApp text and PDF",
		Commands: []*cli.Command{
			serveCommand(),
			generateCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "run the HTTP API",
		Action: func(c *cli.Context) error {
			cfg := config.Load()
			logger := utils.NewLogger(cfg.LogLevel)

			if cfg.BackendURL == "" {
				return cli.Exit("BACKEND_URL is not configured", 1)
			}

			client := backend.NewClient(cfg.BackendURL, cfg.FetchTimeout, logger)
			exporter := newExporter(cfg, logger)

			var store storage.FichaStore
			if cfg.HistoryEnabled() {
				pg, err := storage.NewPostgresStore(cfg.DSN())
				if err != nil {
					logger.Warn().Err(err).Msg("history store unavailable, continuing without it")
				} else {
					store = pg
					defer pg.Close()
				}
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			srv := server.New(client, exporter, store, cfg.ExportTimeout, logger)
			return srv.Run(ctx, cfg.HTTPAddr)
		},
	}
}

func generateCommand() *cli.Command {
	return &cli.Command{
		Name:      "generate",
		Usage:     "fetch one listing, print the WhatsApp text and optionally write the PDF",
		ArgsUsage: "<listing-url>",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "pdf", Usage: "also export the A4 PDF"},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return cli.Exit("expected exactly one listing URL", 2)
			}

			cfg := config.Load()
			logger := utils.NewLogger(cfg.LogLevel)

			if cfg.BackendURL == "" {
				return cli.Exit("BACKEND_URL is not configured", 1)
			}

			ctx, cancel := context.WithTimeout(c.Context, cfg.FetchTimeout+cfg.ExportTimeout)
			defer cancel()

			client := backend.NewClient(cfg.BackendURL, cfg.FetchTimeout, logger)
			rec, err := client.Fetch(ctx, c.Args().First())
			if err != nil {
				return cli.Exit(err.Error(), 1)
			}

			view := services.BuildView(rec)
			fmt.Println(services.ComposeMessage(view))

			if !c.Bool("pdf") {
				return nil
			}

			exporter := newExporter(cfg, logger)
			res, err := exporter.Export(ctx, view)
			if err != nil {
				return cli.Exit(err.Error(), 1)
			}

			writer, err := storage.NewFileWriter(cfg.PDFOutputDir)
			if err != nil {
				return cli.Exit(err.Error(), 1)
			}
			path, err := writer.Write(res.Filename, res.PDF)
			if err != nil {
				return cli.Exit(err.Error(), 1)
			}
			logger.Info().Str("path", path).Msg("PDF written")
			return nil
		},
	}
}

func newExporter(cfg *config.Config, logger zerolog.Logger) *export.Exporter {
	capturer := export.NewChromeCapturer(cfg.ChromeBin, logger)
	images := export.NewImageResolver(cfg.ImageTimeout, cfg.MaxRetries, logger)
	return export.New(capturer, images, logger)
}
