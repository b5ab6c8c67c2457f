package importer

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// cellAt возвращает значение ячейки по индексу колонки или пустую строку,
// если строка короче: excelize обрезает хвостовые пустые ячейки.
func cellAt(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// isEmptyRow проверяет, является ли строка пустой
func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

var dateLayouts = []string{
	"02.01.2006",
	"2006-01-02",
	"02/01/2006",
	"2006/01/02",
	"01-02-06",
	"2006-01-02 15:04:05",
	"02.01.2006 15:04:05",
}

// parseDateCell разбирает дату из ячейки Excel: либо serial-число
// (количество дней с 30.12.1899), либо строка в одном из известных форматов.
func parseDateCell(cellValue string) (time.Time, error) {
	cellValue = strings.TrimSpace(cellValue)
	if cellValue == "" || cellValue == "########" {
		return time.Time{}, fmt.Errorf("empty date cell")
	}

	if num, err := strconv.ParseFloat(cellValue, 64); err == nil {
		excelEpoch := time.Date(1899, 12, 30, 0, 0, 0, 0, time.UTC)
		return excelEpoch.AddDate(0, 0, int(num)), nil
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, cellValue); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("unrecognized date format: %q", cellValue)
}

// parseAmountCell разбирает денежную сумму. Запятая как десятичный
// разделитель и пробелы-разряды допустимы (региональный формат).
func parseAmountCell(cellValue string) (decimal.Decimal, error) {
	cellValue = strings.TrimSpace(cellValue)
	if cellValue == "" {
		return decimal.Zero, nil
	}

	normalized := strings.NewReplacer(" ", "", " ", "", ",", ".").Replace(cellValue)
	amount, err := decimal.NewFromString(normalized)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount %q: %w", cellValue, err)
	}
	return amount, nil
}
