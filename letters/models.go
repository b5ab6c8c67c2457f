package letters

import (
	"time"

	"github.com/shopspring/decimal"
)

// Категории просрочки. Значения совпадают с формулировками,
// которые подставляются в текст письма.
const (
	CategoryNotDelivered  = "просрочено не поставлено"
	CategoryDeliveredLate = "поставленные просрочки"
)

// ReportingRow типизированная строка файла внутригрупповой отчетности.
// Обязательные поля (номер заказа, контрагент, плановая дата) проверяются
// при парсинге: строка без них в обработку не попадает.
type ReportingRow struct {
	OrderNumber    string          // Колонка G: номер заказа
	ContractorName string          // Колонка J: контрагент (сырое название)
	Amount         decimal.Decimal // Колонка Q: сумма позиции
	PlannedDate    time.Time       // Колонка R: плановая дата поставки
	ActualDate     *time.Time      // Колонка AD: фактическая дата, nil если не поставлено

	// Описательные поля, переносятся в приложение без изменений
	ColK string
	ColL string
	ColM string
	ColN string
	ColP string
}

// RegistryRow типизированная строка файла СЭД (журнал регистрации договоров).
type RegistryRow struct {
	OrderNumber string // Колонка F: ключ связки с отчетностью
	BEName      string // Колонка C: наименование бизнес-единицы
	RegNumber   string // Колонка H: регистрационный номер договора
	RegDate     string // Колонка P: дата регистрации, дд.мм.гггг
}

// Classification результат проверки строки отчетности на просрочку.
type Classification struct {
	IsOverdue   bool
	DaysOverdue int
	Category    string
}

// Position одна просроченная позиция, сопоставленная с записью СЭД.
type Position struct {
	ColK        string          `json:"col_k"`
	ColL        string          `json:"col_l"`
	ColM        string          `json:"col_m"`
	ColN        string          `json:"col_n"`
	ColP        string          `json:"col_p"`
	Amount      decimal.Decimal `json:"amount"`
	DaysOverdue int             `json:"days_overdue"`
	Penalty     decimal.Decimal `json:"penalty"`
}

// LetterRecord агрегат по паре (контрагент, заказ): итоги и позиции
// для одного письма с приложением.
type LetterRecord struct {
	OrderNumber    string          `json:"order_number"`
	ContractorName string          `json:"contractor_name"`
	ShortName      string          `json:"contractor_short_name"`
	LegalForm      string          `json:"contractor_full_form"`
	BEName         string          `json:"be_name"`
	RegNumber      string          `json:"reg_number"`
	RegDate        string          `json:"reg_date"`
	PlannedDate    string          `json:"planned_date"`
	TotalAmount    decimal.Decimal `json:"total_amount"`
	TotalPenalty   decimal.Decimal `json:"total_penalty"`
	TotalPositions int             `json:"total_positions"`
	Category       string          `json:"category"`
	Positions      []Position      `json:"positions"`
}

// letterKey ключ группировки: канонизированный контрагент + номер заказа.
type letterKey struct {
	Contractor  string
	OrderNumber string
}
