package render

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"lettergen/letters"
)

// GeneratedDocuments файлы, созданные для одной записи письма.
type GeneratedDocuments struct {
	LetterFile   string `json:"letter_file"`
	AppendixFile string `json:"appendix_file"`
	CSVFile      string `json:"csv_file"`
}

// Generator рендерит письма и приложения в каталог выгрузки.
type Generator struct {
	outputDir string
	logger    *slog.Logger
}

// NewGenerator создает генератор документов.
func NewGenerator(outputDir string, logger *slog.Logger) *Generator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Generator{outputDir: outputDir, logger: logger}
}

// IsEmpty сообщает, что для записи не удалось сгенерировать документы.
func (d GeneratedDocuments) IsEmpty() bool {
	return d.LetterFile == ""
}

// GenerateAll формирует документы по всем записям. Ошибка генерации одной
// записи логируется и не мешает остальным: агрегация уже завершена, и
// каждая запись выгружается независимо. Результат выровнен по записям:
// на месте неудавшейся записи остается пустой элемент.
func (g *Generator) GenerateAll(records []letters.LetterRecord, now time.Time) []GeneratedDocuments {
	generated := make([]GeneratedDocuments, len(records))

	success := 0
	for i, record := range records {
		docs, err := g.generateOne(i+1, record, now)
		if err != nil {
			g.logger.Error("Ошибка генерации документов по записи",
				"order_number", record.OrderNumber,
				"contractor", record.ShortName,
				"error", err)
			continue
		}
		generated[i] = docs
		success++
	}

	g.logger.Info("Генерация документов завершена",
		"records", len(records),
		"generated", success)

	return generated
}

func (g *Generator) generateOne(seq int, record letters.LetterRecord, now time.Time) (GeneratedDocuments, error) {
	base := fmt.Sprintf("%d_%s_%s", seq, safeFileName(record.ShortName), safeFileName(record.OrderNumber))

	docs := GeneratedDocuments{
		LetterFile:   "letter_" + base + ".txt",
		AppendixFile: "appendix_" + base + ".xlsx",
		CSVFile:      "appendix_" + base + ".csv",
	}

	if err := WriteLetterFile(record, now, filepath.Join(g.outputDir, docs.LetterFile)); err != nil {
		return GeneratedDocuments{}, err
	}
	if err := ExportAppendixExcel(record, filepath.Join(g.outputDir, docs.AppendixFile)); err != nil {
		return GeneratedDocuments{}, err
	}
	if err := ExportAppendixCSV(record, filepath.Join(g.outputDir, docs.CSVFile)); err != nil {
		return GeneratedDocuments{}, err
	}

	return docs, nil
}

var unsafeFileChars = regexp.MustCompile(`[^0-9A-Za-zА-Яа-яЁё._-]+`)

// safeFileName приводит фрагмент имени файла к безопасному виду.
func safeFileName(s string) string {
	s = unsafeFileChars.ReplaceAllString(strings.TrimSpace(s), "_")
	s = strings.Trim(s, "_")
	if s == "" {
		return "x"
	}
	return s
}
