package letters

import (
	"log/slog"
	"time"
)

const dateLayout = "02.01.2006"

// Aggregator собирает из строк отчетности и журнала СЭД записи писем
// по просроченным поставкам.
type Aggregator struct {
	logger *slog.Logger
}

// NewAggregator создает агрегатор. При nil-логгере используется slog.Default.
func NewAggregator(logger *slog.Logger) *Aggregator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Aggregator{logger: logger}
}

// Aggregate проходит по строкам отчетности, отбирает просроченные позиции
// с положительной суммой, связывает их с журналом СЭД по номеру заказа и
// группирует в записи писем по паре (контрагент, заказ). Порядок записей —
// порядок первого появления ключа. Ошибки уровня строки (нет записи в СЭД,
// нулевая сумма) строку пропускают, не прерывая обработку.
func (a *Aggregator) Aggregate(reporting []ReportingRow, registry []RegistryRow, now time.Time) []LetterRecord {
	registryIndex := indexRegistry(registry)

	records := make(map[letterKey]*LetterRecord)
	var order []letterKey

	skippedNoMatch := 0
	for _, row := range reporting {
		classification := Classify(row.PlannedDate, row.ActualDate, now)
		if !classification.IsOverdue || !row.Amount.IsPositive() {
			continue
		}

		cleanName := CleanContractorName(row.ContractorName)

		registryRow, ok := registryIndex[row.OrderNumber]
		if !ok {
			// Просрочка без записи о регистрации договора: письмо
			// сформировать не из чего
			skippedNoMatch++
			a.logger.Warn("Строка отчетности без записи в СЭД, пропущена",
				"order_number", row.OrderNumber,
				"contractor", cleanName)
			continue
		}

		key := letterKey{Contractor: ShortName(cleanName), OrderNumber: row.OrderNumber}
		record, exists := records[key]
		if !exists {
			record = &LetterRecord{
				OrderNumber:    row.OrderNumber,
				ContractorName: cleanName,
				ShortName:      ShortName(cleanName),
				LegalForm:      FullLegalForm(cleanName),
				BEName:         registryRow.BEName,
				RegNumber:      registryRow.RegNumber,
				RegDate:        registryRow.RegDate,
				PlannedDate:    row.PlannedDate.Format(dateLayout),
				Category:       classification.Category,
			}
			records[key] = record
			order = append(order, key)
		}

		penalty := CalculatePenalty(row.Amount, classification.DaysOverdue)

		record.Positions = append(record.Positions, Position{
			ColK:        row.ColK,
			ColL:        row.ColL,
			ColM:        row.ColM,
			ColN:        row.ColN,
			ColP:        row.ColP,
			Amount:      row.Amount,
			DaysOverdue: classification.DaysOverdue,
			Penalty:     penalty,
		})
		record.TotalAmount = record.TotalAmount.Add(row.Amount)
		// Пени суммируются по позициям: у каждой позиции свой срок
		// просрочки, пересчет от общей суммы дал бы другой результат
		record.TotalPenalty = record.TotalPenalty.Add(penalty)
		record.TotalPositions++
	}

	result := make([]LetterRecord, 0, len(order))
	for _, key := range order {
		result = append(result, *records[key])
	}

	a.logger.Info("Агрегация завершена",
		"reporting_rows", len(reporting),
		"registry_rows", len(registry),
		"letters", len(result),
		"skipped_no_registry_match", skippedNoMatch)

	return result
}

// indexRegistry строит индекс журнала СЭД по номеру заказа.
// При дублях номера побеждает первая запись.
func indexRegistry(registry []RegistryRow) map[string]RegistryRow {
	index := make(map[string]RegistryRow, len(registry))
	for _, row := range registry {
		if row.OrderNumber == "" {
			continue
		}
		if _, exists := index[row.OrderNumber]; !exists {
			index[row.OrderNumber] = row
		}
	}
	return index
}
