package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gaurav-prasanna/interviewdigest/crawl"
)

var (
	flagCompany string
	flagRole    string
	flagPages   int
	flagWorkers int
	flagLimit   int
)

var scrapeCmd = &cobra.Command{
	Use:   "scrape",
	Short: "Scrape a company's interview experiences from the listing site",
	Long: `Scrape opens the listing site in headless Chrome, filters it by company and
role, collects write-up links from the first pages and scrapes each write-up
with a bounded pool of tabs. The batch is written as JSON.

Examples:
  interviewdigest scrape --company Amazon --role "SDE-1"
  interviewdigest scrape --company Google --role "SDE - 2" --pages 3 --workers 3`,
	Args: cobra.NoArgs,
	RunE: runScrape,
}

func init() {
	rootCmd.AddCommand(scrapeCmd)

	scrapeCmd.Flags().StringVar(&flagCompany, "company", "", "Company to filter on (required)")
	scrapeCmd.Flags().StringVar(&flagRole, "role", "", "Role to filter on (required)")
	scrapeCmd.Flags().IntVar(&flagPages, "pages", 0, "Listing pages to collect (default from config)")
	scrapeCmd.Flags().IntVar(&flagWorkers, "workers", 0, "Concurrent scrapes (default from config)")
	scrapeCmd.Flags().IntVar(&flagLimit, "limit", 0, "Scrape at most this many write-ups")
	_ = scrapeCmd.MarkFlagRequired("company")
	_ = scrapeCmd.MarkFlagRequired("role")
}

func runScrape(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	pages := orDefault(flagPages, cfg.Scrape.Pages)

	browser, err := crawl.NewBrowser(crawl.BrowserOptions{
		ListingURL:  cfg.Scrape.ListingURL,
		SettleDelay: cfg.Scrape.SettleDelay,
		Logger:      logger,
	})
	if err != nil {
		return err
	}
	defer browser.Close()

	logger.Info("collecting links", "company", flagCompany, "role", crawl.NormalizeRole(flagRole), "pages", pages)
	listings, err := browser.CollectLinks(ctx, flagCompany, flagRole, pages)
	if err != nil {
		if len(listings) == 0 {
			return err
		}
		logger.Warn("link collection stopped early", "err", err, "links", len(listings))
	}
	queue := crawl.NewQueue()
	for _, l := range listings {
		queue.Add(l)
	}
	if flagLimit > 0 {
		queue.Limit(flagLimit)
	}
	if queue.Len() == 0 {
		logger.Warn("no write-ups found", "company", flagCompany, "role", flagRole)
		return nil
	}

	bar := newProgress("scraping")
	results, err := crawl.Run(ctx, queue.All(), browser.Scrape, crawl.PoolOptions{
		Workers:    orDefault(flagWorkers, cfg.Workers),
		OnProgress: bar.update,
		Logger:     logger,
	})
	bar.stop()
	if err != nil {
		return err
	}
	items := crawl.Successful(results)
	logger.Info("scraped", "ok", len(items), "failed", len(results)-len(items))

	writer, err := newWriter()
	if err != nil {
		return err
	}
	path, err := writer.WriteBatch(flagCompany, crawl.NormalizeRole(flagRole), items)
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "✓ Written: %s\n", path)
	return nil
}

func orDefault(flag, fallback int) int {
	if flag > 0 {
		return flag
	}
	return fallback
}
