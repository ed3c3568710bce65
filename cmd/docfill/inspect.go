package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	godocx "github.com/Navl-bm/go-docx-tables"
)

func newInspectCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "List the tables of a template with their text",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.runInspect(cmd)
		},
	}

	cmd.Flags().StringP("template", "t", "", "template .docx file")
	cmd.Flags().StringSliceP("placeholder", "p", nil, "report which table the first placeholder selects")
	return cmd
}

func (o *rootOptions) runInspect(cmd *cobra.Command) error {
	cfg, _, err := o.load(cmd)
	if err != nil {
		return err
	}
	if cfg.Template == "" {
		return errors.New("no template given, set --template")
	}

	doc, err := godocx.OpenDocument(cfg.Template)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	tables := doc.Tables()
	if len(tables) == 0 {
		fmt.Fprintln(out, "no tables")
	}
	for i, table := range tables {
		rows := godocx.FindAll(table, godocx.KindRow)
		fmt.Fprintf(out, "table %d: %d rows\n", i+1, len(rows))
		for j, row := range rows {
			var texts []string
			for _, text := range godocx.FindAll(row, godocx.KindText) {
				texts = append(texts, text.Text())
			}
			fmt.Fprintf(out, "  row %d: %s\n", j+1, strings.Join(texts, " | "))
		}
	}

	if len(cfg.Placeholders) > 0 {
		reference := cfg.Placeholders[0]
		target := godocx.FindTable(tables, reference)
		for i, table := range tables {
			if table == target {
				fmt.Fprintf(out, "%s selects table %d\n", reference, i+1)
				return nil
			}
		}
		fmt.Fprintf(out, "%s matches no table\n", reference)
	}
	return nil
}
