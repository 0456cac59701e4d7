package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/amaumene/torrentfind/pkg/logger"
	"github.com/amaumene/torrentfind/pkg/torrentsearch"
	"github.com/amaumene/torrentfind/pkg/torrentsearch/models"
	"github.com/amaumene/torrentfind/pkg/torrentsearch/providers"
)

func main() {
	appLogger := logger.New()

	search := torrentsearch.New(appLogger,
		providers.NewYTSAdapter(providers.NewYTSClient("", 0, nil, appLogger), true, appLogger),
		providers.NewFreeTextAdapter(models.ProviderLeetx, providers.NewLeetxClient("", 0, nil, appLogger), appLogger),
	)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	results, err := search.Search(ctx, models.ProviderYTS, "tt0133093")
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("Found %d YTS torrents:\n", len(results))
	for _, torrent := range results {
		fmt.Printf("  - %s (Seeders: %d, Leechers: %d)\n",
			torrent.DisplayName,
			torrent.SeederCount,
			torrent.LeecherCount)
	}

	outcomes := search.SearchAll(ctx, "The Matrix 1999")
	for kind, err := range torrentsearch.GetProviderErrors(outcomes) {
		fmt.Printf("%s failed: %v\n", kind, err)
	}

	merged := search.Merge(outcomes)
	fmt.Printf("\nTop merged results:\n")
	for i, torrent := range merged {
		if i >= 5 {
			break
		}
		fmt.Printf("  - [%s] %s (Seeders: %d)\n", torrent.Source, torrent.DisplayName, torrent.SeederCount)
	}
}
