package importer

import (
	"fmt"
	"log/slog"

	"github.com/xuri/excelize/v2"

	"lettergen/letters"
)

// Фиксированные индексы колонок журнала СЭД.
const (
	registryColBEName    = 2  // C: бизнес-единица
	registryColOrder     = 5  // F: номер заказа (ключ связки)
	registryColRegNumber = 7  // H: регистрационный номер договора
	registryColRegDate   = 15 // P: дата регистрации
)

// ParseRegistryFile читает журнал регистрации договоров из СЭД (первый лист).
// Строки без номера заказа пропускаются: связать их с отчетностью нечем.
func ParseRegistryFile(filePath string, logger *slog.Logger) ([]letters.RegistryRow, error) {
	if logger == nil {
		logger = slog.Default()
	}

	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open registry file: %w", err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return nil, fmt.Errorf("no sheets found in registry file")
	}

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to get rows: %w", err)
	}

	var parsed []letters.RegistryRow
	for rowIdx := 1; rowIdx < len(rows); rowIdx++ {
		row := rows[rowIdx]
		if isEmptyRow(row) {
			continue
		}

		orderNumber := cellAt(row, registryColOrder)
		if orderNumber == "" {
			continue
		}

		regDate := ""
		if regDateCell := cellAt(row, registryColRegDate); regDateCell != "" {
			if t, err := parseDateCell(regDateCell); err == nil {
				regDate = t.Format("02.01.2006")
			} else {
				logger.Warn("Дата регистрации не распознана",
					"row", rowIdx+1,
					"order_number", orderNumber,
					"error", err)
			}
		}

		parsed = append(parsed, letters.RegistryRow{
			OrderNumber: orderNumber,
			BEName:      cellAt(row, registryColBEName),
			RegNumber:   cellAt(row, registryColRegNumber),
			RegDate:     regDate,
		})
	}

	logger.Info("Журнал СЭД разобран", "path", filePath, "rows", len(parsed))

	return parsed, nil
}
