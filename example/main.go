package main

import (
	"fmt"
	"log/slog"
	"os"

	godocx "github.com/Navl-bm/go-docx-tables"
)

// Пример использования
func main() {
	placeholders := []string{"{data1}", "{data2}", "{data3}"}
	records := []godocx.Record{
		{"{data1}": "text1", "{data2}": "text2", "{data3}": "text3"},
	}

	doc, err := godocx.OpenDocument("template.docx")
	if err != nil {
		fmt.Println("Ошибка:", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	outputPath := godocx.OutputPath(".")
	stats, err := godocx.NewUpdater(godocx.WithLogger(logger)).Update(placeholders, records, doc, outputPath)
	if err != nil {
		fmt.Println("Ошибка:", err)
		os.Exit(1)
	}
	fmt.Printf("Создан документ: %s (строк: %d, замен: %d)\n", outputPath, stats.Rows, stats.Replacements)
}
