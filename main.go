package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"cryptoinsight/internal/agent"
	"cryptoinsight/internal/coingecko"
	"cryptoinsight/internal/config"
	"cryptoinsight/internal/fetcher"
	"cryptoinsight/internal/openai"
)

func main() {
	// Load configuration; a missing OPENAI_API_KEY aborts here, before
	// any network activity
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Create context with cancellation for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle interrupt signals for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		fmt.Println("\nReceived interrupt signal, shutting down...")
		cancel()
	}()

	printBanner()

	ag := agent.New(agent.Options{
		In:  os.Stdin,
		Out: os.Stdout,
		Quotes: func(assetName string) fetcher.QuoteFetcher {
			return coingecko.NewQuoteFetcher(assetName, cfg.CoinGeckoBaseURL)
		},
		Insights:   openai.NewClient(cfg.OpenAIAPIKey, cfg.OpenAIModel, cfg.OpenAIBaseURL),
		RunTimeout: cfg.RequestTimeout(),
	})

	if err := ag.Run(ctx); err != nil {
		log.Fatalf("Agent failed: %v", err)
	}
}

func printBanner() {
	banner := strings.Repeat("=", 50)
	fmt.Println()
	fmt.Println(banner)
	fmt.Println("AI Cryptocurrency Analysis Agent")
	fmt.Println(banner)
	fmt.Println()
}
