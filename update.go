package godocx

import (
	"io"
	"log/slog"
)

// Stats - итоги заполнения.
type Stats struct {
	Records       int
	Rows          int
	Replacements  int
	TablesCreated int
}

// Updater заполняет таблицы-шаблоны записями.
type Updater struct {
	logger *slog.Logger
}

// Option настраивает Updater.
type Option func(*Updater)

// WithLogger задает логгер для хода работы и предупреждений.
func WithLogger(logger *slog.Logger) Option {
	return func(u *Updater) {
		if logger != nil {
			u.logger = logger
		}
	}
}

// NewUpdater создает Updater. Без WithLogger логи отбрасываются.
func NewUpdater(opts ...Option) *Updater {
	u := &Updater{
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

// Fill применяет записи к таблице, содержащей placeholders[0]. Каждая запись
// подставляется во все строки этой таблицы. Для записи без подходящей таблицы
// в тело добавляется новая пустая таблица, и запись фактически теряется.
func (u *Updater) Fill(doc *Document, placeholders []string, records []Record) (Stats, error) {
	var stats Stats
	if len(records) == 0 {
		return stats, nil
	}
	if len(placeholders) == 0 {
		return stats, ErrNoPlaceholders
	}

	tables := doc.Tables()
	reference := placeholders[0]

	for i, record := range records {
		target := FindTable(tables, reference)
		if IsEmptyTable(target) {
			target = NewTable()
			doc.AppendToBody(target)
			stats.TablesCreated++
			u.logger.Warn("no table holds placeholder, record skipped",
				"placeholder", reference, "record", i)
		}

		rows := FindAll(target, KindRow)
		for _, row := range rows {
			n := Substitute(row, []Record{record}, placeholders)
			stats.Replacements += n
			u.logger.Debug("row filled", "record", i, "replacements", n)
		}
		stats.Rows += len(rows)
		stats.Records++
	}

	u.logger.Info("template filled",
		"records", stats.Records,
		"rows", stats.Rows,
		"replacements", stats.Replacements,
		"tables_created", stats.TablesCreated)
	return stats, nil
}

// Update заполняет doc и сохраняет его в outputPath. При ошибке заполнения
// файл не создается.
func (u *Updater) Update(placeholders []string, records []Record, doc *Document, outputPath string) (Stats, error) {
	stats, err := u.Fill(doc, placeholders, records)
	if err != nil {
		return stats, err
	}
	if err := doc.Save(outputPath); err != nil {
		return stats, err
	}
	u.logger.Info("document saved", "path", outputPath)
	return stats, nil
}

// UpdateDocument заполняет doc записями и сохраняет в outputPath.
func UpdateDocument(placeholders []string, records []Record, doc *Document, outputPath string) error {
	_, err := NewUpdater().Update(placeholders, records, doc, outputPath)
	return err
}
