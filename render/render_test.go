package render

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/charmap"

	"lettergen/letters"
)

func sampleRecord() letters.LetterRecord {
	return letters.LetterRecord{
		OrderNumber:    "ОРД-5",
		ContractorName: `ООО "Ромашка"`,
		ShortName:      "Ромашка",
		LegalForm:      "Обществом с ограниченной ответственностью",
		BEName:         "БЕ Центр",
		RegNumber:      "Д-17/2026",
		RegDate:        "15.01.2026",
		PlannedDate:    "01.03.2026",
		TotalAmount:    decimal.RequireFromString("3000.00"),
		TotalPenalty:   decimal.RequireFromString("45.12"),
		TotalPositions: 2,
		Category:       letters.CategoryNotDelivered,
		Positions: []letters.Position{
			{ColK: "Кабель", ColL: "м", ColM: "250", ColN: "АБВ", ColP: "01.03.2026",
				Amount: decimal.RequireFromString("1000.00"), DaysOverdue: 9,
				Penalty: decimal.RequireFromString("15.04")},
			{ColK: "Труба", ColL: "шт", ColM: "10", ColN: "ГДЕ", ColP: "01.03.2026",
				Amount: decimal.RequireFromString("2000.00"), DaysOverdue: 9,
				Penalty: decimal.RequireFromString("30.08")},
		},
	}
}

func TestRenderLetterText(t *testing.T) {
	now := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	text := RenderLetterText(sampleRecord(), now)

	assert.Contains(t, text, "Уважаемый партнер!")
	assert.Contains(t, text, `между «БЕ Центр» и Обществом с ограниченной ответственностью «ООО "Ромашка"»`)
	assert.Contains(t, text, "договор поставки № Д-17/2026 от 15.01.2026")
	assert.Contains(t, text, "Спецификация № ОРД-5")
	assert.Contains(t, text, "в срок до 01.03.2026")
	assert.Contains(t, text, "3000.00 (три тысячи рублей 00 копеек)")
	assert.Contains(t, text, "45.12 (сорок пять рублей 12 копеек)")
	assert.Contains(t, text, "По состоянию на 10.03.2026")
	assert.Contains(t, text, "товары в количестве 2 позиций")
	// Товар не поставлен вовсе
	assert.Contains(t, text, "отсутствуют")
	assert.NotContains(t, text, "поступили с просрочкой")
}

func TestRenderLetterText_DeliveredLateWording(t *testing.T) {
	record := sampleRecord()
	record.Category = letters.CategoryDeliveredLate

	text := RenderLetterText(record, time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC))

	assert.Contains(t, text, "поступили с просрочкой")
	assert.NotContains(t, text, "отсутствуют")
}

func TestWriteLetterFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "letter.txt")
	now := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	require.NoError(t, WriteLetterFile(sampleRecord(), now, path))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, RenderLetterText(sampleRecord(), now), string(content))
}

func TestExportAppendixExcel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "appendix.xlsx")
	record := sampleRecord()

	require.NoError(t, ExportAppendixExcel(record, path))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Приложение 1")
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(rows), 7)

	assert.Contains(t, rows[0][0], "заказу № ОРД-5")
	assert.Contains(t, rows[1][0], "позиций: 2")
	assert.Equal(t, appendixHeaders, rows[4][:len(appendixHeaders)])

	firstPos := rows[5]
	assert.Equal(t, "Кабель", firstPos[0])
	assert.Equal(t, "м", firstPos[1])
	assert.Equal(t, "9", firstPos[6])
}

func TestExportAppendixCSV_Windows1251(t *testing.T) {
	path := filepath.Join(t.TempDir(), "appendix.csv")
	record := sampleRecord()

	require.NoError(t, ExportAppendixCSV(record, path))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)

	// Файл в cp1251: в сыром виде кириллицы UTF-8 там быть не должно
	assert.False(t, strings.Contains(string(raw), "Номенклатура"))

	reader := csv.NewReader(charmap.Windows1251.NewDecoder().Reader(strings.NewReader(string(raw))))
	reader.Comma = ';'
	rows, err := reader.ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, appendixHeaders, rows[0])
	assert.Equal(t, []string{"Кабель", "м", "250", "АБВ", "1000.00", "01.03.2026", "9", "15.04"}, rows[1])
}

func TestGenerateAll(t *testing.T) {
	dir := t.TempDir()
	now := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	records := []letters.LetterRecord{sampleRecord()}

	generated := NewGenerator(dir, nil).GenerateAll(records, now)

	require.Len(t, generated, 1)
	docs := generated[0]
	require.False(t, docs.IsEmpty())

	assert.Equal(t, "letter_1_Ромашка_ОРД-5.txt", docs.LetterFile)
	assert.Equal(t, "appendix_1_Ромашка_ОРД-5.xlsx", docs.AppendixFile)
	assert.Equal(t, "appendix_1_Ромашка_ОРД-5.csv", docs.CSVFile)

	for _, name := range []string{docs.LetterFile, docs.AppendixFile, docs.CSVFile} {
		_, err := os.Stat(filepath.Join(dir, name))
		assert.NoErrorf(t, err, "файл %s не создан", name)
	}
}

func TestGenerateAll_FailureKeepsAlignment(t *testing.T) {
	// Несуществующий каталог выгрузки: генерация каждой записи падает,
	// но результат остается выровнен по записям
	dir := filepath.Join(t.TempDir(), "нет", "такого")
	now := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	records := []letters.LetterRecord{sampleRecord(), sampleRecord()}

	generated := NewGenerator(dir, nil).GenerateAll(records, now)

	require.Len(t, generated, 2)
	assert.True(t, generated[0].IsEmpty())
	assert.True(t, generated[1].IsEmpty())
}

func TestSafeFileName(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Ромашка", "Ромашка"},
		{`ООО "Ромашка"`, "ООО_Ромашка"},
		{"ОРД/5 №2", "ОРД_5_2"},
		{"  ", "x"},
		{"", "x"},
	}

	for _, tt := range tests {
		if got := safeFileName(tt.input); got != tt.expected {
			t.Errorf("safeFileName(%q) = %q, ожидалось %q", tt.input, got, tt.expected)
		}
	}
}

func TestArchiveDirectory(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), []byte("a"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.txt"), []byte("b"), 0644))

	zipPath := filepath.Join(t.TempDir(), "all.zip")
	require.NoError(t, ArchiveDirectory(dir, zipPath))

	info, err := os.Stat(zipPath)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestArchiveDirectory_EmptyDir(t *testing.T) {
	zipPath := filepath.Join(t.TempDir(), "all.zip")

	err := ArchiveDirectory(t.TempDir(), zipPath)
	assert.Error(t, err)
}
