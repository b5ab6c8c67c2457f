package render

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/charmap"

	"lettergen/letters"
)

var appendixHeaders = []string{
	"Номенклатура", "Характеристика", "Ед. изм.", "Количество",
	"Сумма", "Срок поставки", "Дни просрочки", "Пени",
}

// ExportAppendixExcel выгружает приложение к письму — таблицу просроченных
// позиций — в файл .xlsx.
func ExportAppendixExcel(record letters.LetterRecord, filename string) error {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Приложение 1"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}
	f.DeleteSheet("Sheet1")

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	// Шапка приложения
	f.SetCellValue(sheetName, "A1", fmt.Sprintf("Приложение № 1 к письму. Спецификация по заказу № %s", record.OrderNumber))
	f.SetCellValue(sheetName, "A2", fmt.Sprintf("Количество просроченных позиций: %d", record.TotalPositions))
	f.SetCellValue(sheetName, "A3", fmt.Sprintf("На сумму: %s (%s)",
		record.TotalAmount.StringFixed(2), letters.FormatAmountInWords(record.TotalAmount)))

	const headerRow = 5
	for i, header := range appendixHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, headerRow)
		f.SetCellValue(sheetName, cell, header)
		f.SetCellStyle(sheetName, cell, cell, headerStyle)
	}

	for posIdx, position := range record.Positions {
		row := headerRow + 1 + posIdx
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), position.ColK)
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), position.ColL)
		f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), position.ColM)
		f.SetCellValue(sheetName, fmt.Sprintf("D%d", row), position.ColN)
		f.SetCellValue(sheetName, fmt.Sprintf("E%d", row), position.Amount.InexactFloat64())
		f.SetCellValue(sheetName, fmt.Sprintf("F%d", row), position.ColP)
		f.SetCellValue(sheetName, fmt.Sprintf("G%d", row), position.DaysOverdue)
		f.SetCellValue(sheetName, fmt.Sprintf("H%d", row), position.Penalty.InexactFloat64())
	}

	for i := range appendixHeaders {
		col, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(sheetName, col, col, 18)
	}

	f.SetActiveSheet(index)

	if err := f.SaveAs(filename); err != nil {
		return fmt.Errorf("failed to save Excel file: %w", err)
	}

	return nil
}

// ExportAppendixCSV выгружает те же позиции в CSV в кодировке Windows-1251
// для старых версий Excel.
func ExportAppendixCSV(record letters.LetterRecord, filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(charmap.Windows1251.NewEncoder().Writer(file))
	writer.Comma = ';'
	defer writer.Flush()

	if err := writer.Write(appendixHeaders); err != nil {
		return fmt.Errorf("failed to write headers: %w", err)
	}

	for _, position := range record.Positions {
		csvRow := []string{
			position.ColK,
			position.ColL,
			position.ColM,
			position.ColN,
			position.Amount.StringFixed(2),
			position.ColP,
			fmt.Sprintf("%d", position.DaysOverdue),
			position.Penalty.StringFixed(2),
		}
		if err := writer.Write(csvRow); err != nil {
			return fmt.Errorf("failed to write record: %w", err)
		}
	}

	return nil
}
