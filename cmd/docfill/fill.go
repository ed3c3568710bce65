package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	godocx "github.com/Navl-bm/go-docx-tables"
	"github.com/Navl-bm/go-docx-tables/internal/records"
)

func newFillCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fill",
		Short: "Fill a template table with data records",
		Long: `Fill substitutes every record of the data file into the rows of the
template table and writes the result. Placeholders default to the tokens named
by the data file: its "placeholders" list, the record keys, or the header row
of a worksheet.`,
		Example: `  docfill fill -t invoice.docx -d items.yaml -o invoice-42.docx
  docfill fill -t report.docx -d rows.xlsx --sheet Q3 -p "{{NAME}}" -p "{{TOTAL}}"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.runFill(cmd)
		},
	}

	f := cmd.Flags()
	f.StringP("template", "t", "", "template .docx file")
	f.StringP("data", "d", "", "data file: .yaml, .yml, .json or .xlsx")
	f.StringP("output", "o", "", "output .docx file (default: a new file in --output-dir)")
	f.String("output-dir", ".", "directory for generated output files")
	f.StringSliceP("placeholder", "p", nil, "placeholder token, repeatable; the first one locates the table")
	f.String("sheet", "", "worksheet of an .xlsx data file (default: the first)")
	return cmd
}

func (o *rootOptions) runFill(cmd *cobra.Command) error {
	cfg, logger, err := o.load(cmd)
	if err != nil {
		return err
	}
	if cfg.Template == "" {
		return errors.New("no template given, set --template")
	}
	if cfg.Data == "" {
		return errors.New("no data file given, set --data")
	}

	doc, err := godocx.OpenDocument(cfg.Template)
	if err != nil {
		return err
	}
	ds, err := records.Load(cfg.Data, records.Options{Sheet: cfg.Sheet})
	if err != nil {
		return err
	}

	placeholders := cfg.Placeholders
	if len(placeholders) == 0 {
		placeholders = ds.Placeholders
	}
	output := cfg.Output
	if output == "" {
		output = godocx.OutputPath(cfg.OutputDir)
	}

	logger.Debug("filling template",
		"template", cfg.Template,
		"data", cfg.Data,
		"placeholders", placeholders,
		"records", len(ds.Records))

	updater := godocx.NewUpdater(godocx.WithLogger(logger))
	if _, err := updater.Update(placeholders, ds.Records, doc, output); err != nil {
		return fmt.Errorf("fill %s: %w", cfg.Template, err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), output)
	return nil
}
