// Command scraper runs one catalog ingestion pass and exits. It fetches the
// configured listing pages, parses the product pods and writes every record
// through the book repository, duplicates included.
package main

import (
	"context"
	"log/slog"

	"libris/config"
	logs "libris/internal/infra/log"
	"libris/internal/infra/persistence/postgres"
	"libris/internal/infra/scrape"

	"go.uber.org/fx"
)

type runParams struct {
	fx.In
	fx.Shutdowner

	Scraper *scrape.Scraper
	Logger  *slog.Logger
}

func main() {
	fx.New(
		fx.Provide(
			config.New,
			logs.New,
			context.Background,
			postgres.New,
			postgres.NewBookRepository,
			scrape.New,
		),
		fx.Invoke(
			runScrape,
		),
	).Run()
}

func runScrape(ctx context.Context, params runParams) {
	go func() {
		if err := params.Scraper.Run(ctx); err != nil {
			params.Logger.Error("Scrape failed", slog.Any("error", err))
			_ = params.Shutdown(fx.ExitCode(1))

			return
		}

		params.Logger.Info("Scrape completed")
		_ = params.Shutdown()
	}()
}
