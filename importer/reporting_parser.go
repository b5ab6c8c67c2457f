package importer

import (
	"fmt"
	"log/slog"

	"github.com/xuri/excelize/v2"

	"lettergen/letters"
)

// ReportingSheetName лист внутригрупповой отчетности в файле выгрузки.
const ReportingSheetName = "Внутригрупповая отчетность"

// Фиксированные индексы колонок файла отчетности (контракт с выгрузкой 1С,
// заголовки не используются).
const (
	reportingColOrder      = 6  // G: номер заказа
	reportingColContractor = 9  // J: контрагент
	reportingColK          = 10 // K
	reportingColL          = 11 // L
	reportingColM          = 12 // M
	reportingColN          = 13 // N
	reportingColP          = 15 // P
	reportingColAmount     = 16 // Q: сумма
	reportingColPlanned    = 17 // R: плановая дата
	reportingColActual     = 29 // AD: фактическая дата
)

// ParseReportingFile читает файл внутригрупповой отчетности и возвращает
// типизированные строки. Строки без номера заказа, контрагента или валидной
// плановой даты пропускаются с предупреждением в лог; нечитаемый файл или
// отсутствие листа — ошибка всего вызова.
func ParseReportingFile(filePath string, logger *slog.Logger) ([]letters.ReportingRow, error) {
	if logger == nil {
		logger = slog.Default()
	}

	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open reporting file: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(ReportingSheetName)
	if err != nil {
		return nil, fmt.Errorf("sheet %q not found in reporting file: %w", ReportingSheetName, err)
	}

	var parsed []letters.ReportingRow
	skipped := 0

	// Первая строка — заголовки
	for rowIdx := 1; rowIdx < len(rows); rowIdx++ {
		row := rows[rowIdx]
		if isEmptyRow(row) {
			continue
		}

		orderNumber := cellAt(row, reportingColOrder)
		contractor := cellAt(row, reportingColContractor)
		plannedCell := cellAt(row, reportingColPlanned)

		if orderNumber == "" || contractor == "" || plannedCell == "" {
			skipped++
			logger.Warn("Строка отчетности без обязательных полей, пропущена",
				"row", rowIdx+1,
				"order_number", orderNumber)
			continue
		}

		planned, err := parseDateCell(plannedCell)
		if err != nil {
			skipped++
			logger.Warn("Строка отчетности с нечитаемой плановой датой, пропущена",
				"row", rowIdx+1,
				"order_number", orderNumber,
				"error", err)
			continue
		}

		amount, err := parseAmountCell(cellAt(row, reportingColAmount))
		if err != nil {
			skipped++
			logger.Warn("Строка отчетности с нечитаемой суммой, пропущена",
				"row", rowIdx+1,
				"order_number", orderNumber,
				"error", err)
			continue
		}

		parsedRow := letters.ReportingRow{
			OrderNumber:    orderNumber,
			ContractorName: contractor,
			Amount:         amount,
			PlannedDate:    planned,
			ColK:           cellAt(row, reportingColK),
			ColL:           cellAt(row, reportingColL),
			ColM:           cellAt(row, reportingColM),
			ColN:           cellAt(row, reportingColN),
			ColP:           cellAt(row, reportingColP),
		}

		// Фактическая дата необязательна: ее отсутствие означает,
		// что товар еще не поставлен
		if actualCell := cellAt(row, reportingColActual); actualCell != "" {
			if actual, err := parseDateCell(actualCell); err == nil {
				parsedRow.ActualDate = &actual
			} else {
				logger.Warn("Фактическая дата не распознана, строка считается непоставленной",
					"row", rowIdx+1,
					"order_number", orderNumber,
					"error", err)
			}
		}

		parsed = append(parsed, parsedRow)
	}

	logger.Info("Файл отчетности разобран",
		"path", filePath,
		"rows", len(parsed),
		"skipped", skipped)

	return parsed, nil
}
