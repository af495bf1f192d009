package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/iajcodes/HireC/internal/config"
	"github.com/iajcodes/HireC/internal/ingestion"
	"github.com/iajcodes/HireC/internal/llm"
)

var (
	parseModel   string
	parseTimeout int
)

var parseCmd = &cobra.Command{
	Use:   "parse <resume-file>",
	Short: "Extract a candidate record from a resume file",
	Long: `Send a resume file (pdf, doc, docx, or txt) to the extraction service and
print the resulting candidate record as JSON. The record is not added to any
roster.`,
	Args: cobra.ExactArgs(1),
	RunE: runParse,
}

func init() {
	parseCmd.Flags().StringVar(&parseModel, "model", "", "Gemini model name (default "+llm.DefaultModel+")")
	parseCmd.Flags().IntVar(&parseTimeout, "timeout", 0, "Extraction timeout in seconds, 0 = none")
	rootCmd.AddCommand(parseCmd)
}

func runParse(cmd *cobra.Command, args []string) error {
	path := args[0]

	mediaType := ingestion.MediaTypeForExtension(filepath.Ext(path))
	if mediaType == "" {
		return fmt.Errorf("unsupported file extension %q: supported extensions are .pdf, .doc, .docx, .txt", filepath.Ext(path))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	apiKey := config.APIKeyFromEnv()
	if apiKey == "" {
		return fmt.Errorf("GEMINI_API_KEY environment variable is required")
	}

	ctx := cmd.Context()
	client, err := llm.NewClient(ctx, apiKey, parseModel)
	if err != nil {
		return err
	}
	defer client.Close()

	var opts []ingestion.Option
	if parseTimeout > 0 {
		opts = append(opts, ingestion.WithTimeout(time.Duration(parseTimeout)*time.Second))
	}
	adapter, err := ingestion.NewAdapter(client, opts...)
	if err != nil {
		return err
	}

	candidate, err := adapter.Extract(ctx, data, mediaType)
	if err != nil {
		return err
	}

	out, err := json.MarshalIndent(candidate, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode candidate: %w", err)
	}
	fmt.Println(string(out))
	return nil
}
