package cmd

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gaurav-prasanna/interviewdigest/core"
	"github.com/gaurav-prasanna/interviewdigest/core/llm"
	"github.com/gaurav-prasanna/interviewdigest/core/render"
	"github.com/gaurav-prasanna/interviewdigest/core/report"
	"github.com/gaurav-prasanna/interviewdigest/core/reshape"
)

var (
	flagXLSX    bool
	flagOffline bool
)

var reportCmd = &cobra.Command{
	Use:   "report <batch.json>",
	Short: "Build a PDF report of a batch",
	Long: `Report reshapes a batch into one journey column and one column per round,
summarizes each column with the configured model and lays the result out as a
PDF with a problem-links table per round and a coding-topic distribution.
Without an API key, or with --offline, summaries are skipped.

Examples:
  interviewdigest report amazon_sde_1.json
  interviewdigest report amazon_sde_1.json --xlsx --offline`,
	Args: cobra.ExactArgs(1),
	RunE: runReport,
}

func init() {
	rootCmd.AddCommand(reportCmd)

	reportCmd.Flags().BoolVar(&flagXLSX, "xlsx", false, "Also write the reshaped table as an Excel workbook")
	reportCmd.Flags().BoolVar(&flagOffline, "offline", false, "Skip model summaries")
	reportCmd.Flags().StringVar(&flagCompany, "company", "", "Company shown in the report (default from the batch)")
	reportCmd.Flags().StringVar(&flagRole, "role", "", "Role shown in the report (default from the batch)")
}

func runReport(cmd *cobra.Command, args []string) error {
	items, company, role, err := loadBatch(args[0], flagCompany, flagRole)
	if err != nil {
		return err
	}
	table := reshape.Reshape(reshape.FromInterviews(items))
	logger.Info("reshaped", "interviews", len(table.Records), "rounds", table.MaxRounds)

	var summarizer core.Summarizer
	switch {
	case flagOffline:
	case !cfg.HasLLM():
		logger.Warn("no API key configured, building the report without summaries")
	default:
		summarizer = newLLM()
	}

	rep, err := report.Build(cmd.Context(), table, summarizer, report.Options{
		Company: company,
		Role:    role,
		Topics:  cfg.Topics,
		Logger:  logger,
	})
	if err != nil {
		return err
	}

	pdfRenderer := render.NewPDFRenderer()
	data, err := pdfRenderer.RenderReport(rep)
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}
	writer, err := newWriter()
	if err != nil {
		return err
	}
	path, err := writer.Write(company, role, data, pdfRenderer.Extension())
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "✓ Written: %s\n", path)

	if !flagXLSX {
		return nil
	}
	var buf bytes.Buffer
	if err := reshape.WriteXLSX(table, &buf); err != nil {
		return err
	}
	path, err = writer.Write(company, role, buf.Bytes(), ".xlsx")
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "✓ Written: %s\n", path)
	return nil
}

// newLLM builds the chat client from config.
func newLLM() *llm.Client {
	return llm.New(llm.Config{
		BaseURL:     cfg.LLM.BaseURL,
		APIKey:      cfg.LLM.APIKey,
		Model:       cfg.LLM.Model,
		Temperature: cfg.LLM.Temperature,
		Timeout:     cfg.LLM.Timeout,
		MaxRetries:  cfg.LLM.MaxRetries,
	})
}
