package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gaurav-prasanna/interviewdigest/core/fetch"
	"github.com/gaurav-prasanna/interviewdigest/crawl"
)

var gfgCmd = &cobra.Command{
	Use:   "gfg",
	Short: "Scrape a company's experienced-hire write-ups from the company-wise index",
	Long: `Gfg reads the company-wise index page, collects the write-ups listed under the
company, infers each role from the years of experience in its title and fetches
the write-ups over plain HTTP, spacing requests by the configured delay.

Examples:
  interviewdigest gfg --company Amazon
  interviewdigest gfg --company Adobe --limit 10 --output_dir ./out`,
	Args: cobra.NoArgs,
	RunE: runGfG,
}

func init() {
	rootCmd.AddCommand(gfgCmd)

	gfgCmd.Flags().StringVar(&flagCompany, "company", "", "Company as labelled in the index (required)")
	gfgCmd.Flags().IntVar(&flagLimit, "limit", 0, "Fetch at most this many write-ups")
	gfgCmd.Flags().IntVar(&flagWorkers, "workers", 0, "Concurrent fetches (default from config)")
	_ = gfgCmd.MarkFlagRequired("company")
}

func runGfG(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	indexURL := cfg.Scrape.IndexURL
	if indexURL == "" {
		indexURL = crawl.DefaultIndexURL
	}
	fetcher := fetch.New(fetch.Options{Delay: cfg.Scrape.FetchDelay})

	listings, err := crawl.DiscoverCompany(ctx, fetcher, indexURL, flagCompany)
	if err != nil {
		return err
	}
	if flagLimit > 0 && len(listings) > flagLimit {
		listings = listings[:flagLimit]
	}
	logger.Info("write-ups found", "company", flagCompany, "links", len(listings))
	if len(listings) == 0 {
		return nil
	}

	scraper := crawl.NewPageScraper(fetcher)
	bar := newProgress("fetching")
	results, err := crawl.Run(ctx, listings, scraper.Scrape, crawl.PoolOptions{
		Workers:    orDefault(flagWorkers, cfg.Workers),
		OnProgress: bar.update,
		Logger:     logger,
	})
	bar.stop()
	if err != nil {
		return err
	}
	items := crawl.Successful(results)
	logger.Info("fetched", "ok", len(items), "failed", len(results)-len(items))

	writer, err := newWriter()
	if err != nil {
		return err
	}
	path, err := writer.WriteBatch(flagCompany, "gfg", items)
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "✓ Written: %s\n", path)
	return nil
}
