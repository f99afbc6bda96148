package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gaurav-prasanna/interviewdigest/core/parse"
	"github.com/gaurav-prasanna/interviewdigest/core/render"
)

var flagFormat string

var digestCmd = &cobra.Command{
	Use:   "digest <batch.json>",
	Short: "Extract structured interview records from a batch",
	Long: `Digest extracts rounds, questions and the profile fields of every write-up in a
batch and renders them as flat documents (txt), structured records (json) or
Markdown (md).

Examples:
  interviewdigest digest amazon_sde_1.json
  interviewdigest digest amazon_sde_1.json --format json --output_dir ./out`,
	Args: cobra.ExactArgs(1),
	RunE: runDigest,
}

func init() {
	rootCmd.AddCommand(digestCmd)

	digestCmd.Flags().StringVar(&flagFormat, "format", "txt", "Output format: txt, json or md")
	digestCmd.Flags().StringVar(&flagCompany, "company", "", "Company used to name the output (default from the batch)")
	digestCmd.Flags().StringVar(&flagRole, "role", "", "Role used to name the output (default from the batch)")
}

func runDigest(_ *cobra.Command, args []string) error {
	renderer, err := render.ForFormat(flagFormat)
	if err != nil {
		return err
	}
	items, company, role, err := loadBatch(args[0], flagCompany, flagRole)
	if err != nil {
		return err
	}

	records := parse.ExtractBatch(items)
	logger.Info("extracted", "records", len(records))
	data, err := renderer.Render(records)
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}

	writer, err := newWriter()
	if err != nil {
		return err
	}
	path, err := writer.Write(company, role, data, renderer.Extension())
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "✓ Written: %s\n", path)
	return nil
}
