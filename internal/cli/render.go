package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"dq-report-service/internal/models"
	"dq-report-service/internal/services/dq"
	"dq-report-service/internal/services/email"
	"dq-report-service/internal/services/pdf"
)

type renderOptions struct {
	input   string
	output  string
	format  string
	filter  string
	product string
	appURL  string
	meta    models.UploadMeta
}

func newRenderCmd() *cobra.Command {
	opts := renderOptions{}
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a data quality report from a JSON file",
		Long: `Render a data quality report from a data quality check JSON file.

Formats:
  html   email body (HTML)
  text   email body (plain text)
  pdf    printable attachment
  json   report view model (summary, totals, failing sections)

Use --input - to read the check from stdin.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runRender(cmd, opts)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.input, "input", "i", "", "Data quality check JSON file (- for stdin)")
	f.StringVarP(&opts.output, "out", "o", "", "Output file (default stdout)")
	f.StringVar(&opts.format, "format", "html", "Output format (html|text|pdf|json)")
	f.StringVar(&opts.filter, "filter", dq.FilterFailingRows, "Failure filter (failing_rows|legacy)")
	f.StringVar(&opts.product, "product", "", "Product name shown in headers")
	f.StringVar(&opts.appURL, "app-url", "", "Public portal URL used for links")
	f.StringVar(&opts.meta.UploadID, "upload-id", "", "Upload id")
	f.StringVar(&opts.meta.Dataset, "dataset", "", "Dataset name")
	f.StringVar(&opts.meta.Country, "country", "", "Country code")
	f.StringVar(&opts.meta.UploadDate, "upload-date", "", "Upload date")
	f.StringVar(&opts.meta.CheckDate, "check-date", "", "Check completion date")
	_ = cmd.MarkFlagRequired("input")
	return cmd
}

func runRender(cmd *cobra.Command, opts renderOptions) error {
	pred, err := dq.PredicateByName(opts.filter)
	if err != nil {
		return err
	}

	result, err := readCheck(cmd.InOrStdin(), opts.input)
	if err != nil {
		return err
	}
	report := dq.BuildReport(opts.meta, result, pred)

	var out []byte
	switch opts.format {
	case "html", "text":
		composer, err := email.NewComposer(email.Options{PublicAppURL: opts.appURL, ProductName: opts.product})
		if err != nil {
			return err
		}
		rendered, err := composer.DQReport(report)
		if err != nil {
			return fmt.Errorf("render email: %w", err)
		}
		if opts.format == "html" {
			out = []byte(rendered.HTML)
		} else {
			out = []byte(rendered.Text)
		}
	case "pdf":
		out, err = pdf.NewComposer(opts.product).Render(report)
		if err != nil {
			return fmt.Errorf("render pdf: %w", err)
		}
	case "json":
		out, err = json.MarshalIndent(report, "", "  ")
		if err != nil {
			return err
		}
		out = append(out, '\n')
	default:
		return fmt.Errorf("unknown format %q (want html, text, pdf or json)", opts.format)
	}

	if opts.output == "" {
		_, err = cmd.OutOrStdout().Write(out)
		return err
	}
	if err := os.WriteFile(opts.output, out, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", opts.output, err)
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "wrote %s (%d bytes)\n", opts.output, len(out))
	return nil
}

func readCheck(stdin io.Reader, path string) (*models.DataQualityCheck, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}

	var result models.DataQualityCheck
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("decode data quality check: %w", err)
	}
	return &result, nil
}
