package render

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"lettergen/letters"
)

// RenderLetterText формирует текст претензионного письма по записи.
// now используется для фраз "по состоянию на ..." и даты спецификации.
func RenderLetterText(record letters.LetterRecord, now time.Time) string {
	var b strings.Builder

	b.WriteString("№ ____________\n")
	b.WriteString("Кас.: Претензионная работа по договору поставки\n\n")
	b.WriteString("Уважаемый партнер!\n\n")

	fmt.Fprintf(&b,
		"Настоящим сообщаем, что между «%s» и %s «%s» (далее – «%s») заключен договор поставки № %s от %s (далее – Договор поставки). "+
			"В соответствии с Договором поставки сторонами подписана Спецификация № %s (далее – спецификация), "+
			"согласно которой «%s» обязуется в срок до %s поставить товары на сумму %s, "+
			"а «%s» - оплатить указанные товары в течение 30 (тридцати) календарных дней с момента их передачи "+
			"(Приложение № 1 к настоящему письму).\n\n",
		record.BEName, record.LegalForm, record.ContractorName, record.ShortName,
		record.RegNumber, record.RegDate,
		record.OrderNumber,
		record.ShortName, record.PlannedDate, amountWithWords(record.TotalAmount),
		record.BEName)

	deliveryState := "поступили с просрочкой"
	if record.Category == letters.CategoryNotDelivered {
		deliveryState = "отсутствуют"
	}

	fmt.Fprintf(&b,
		"По состоянию на %s товары в количестве %d позиций на %s в месте поставки %s, "+
			"что является нарушением п. 4.1 Договора поставки. "+
			"На основании п. 8.3. Договора поставки сумма пени на текущий момент по просроченным позициям составляет %s "+
			"и рассчитывается следующим образом:\n\n",
		now.Format("02.01.2006"), record.TotalPositions, amountWithWords(record.TotalAmount),
		deliveryState, amountWithWords(record.TotalPenalty))

	b.WriteString("0,1 (Ноль целых и одна десятая) % стоимости непоставленного в срок товара за каждый день просрочки " +
		"в течение первых двух недель, а в случае дальнейшей просрочки - в размере 0,5 (Ноль целых и пять десятых) % " +
		"стоимости такого товара за каждый день просрочки.\n\n")

	b.WriteString("Учитывая изложенное, убедительно просим Вас ускорить исполнение обязательств, принятых по Договору поставки, " +
		"в части своевременной отгрузки товаров в целях недопущения увеличения суммы пени по позициям товара " +
		"согласно Приложению № 1 к настоящему письму.\n\n")

	b.WriteString("Приложения по тексту:\n")
	fmt.Fprintf(&b, "1) Спецификация № %s от %s (в 1 экз.);\n", record.RegNumber, record.RegDate)
	fmt.Fprintf(&b, "2) Спецификация № %s от %s (на %d л. в 1 экз.)\n\n",
		record.OrderNumber, now.Format("02.01.2006"), len(record.Positions))

	b.WriteString("С уважением,\n\n")
	b.WriteString("[_____________________] [_____________]\n")
	b.WriteString("(наименование должности уполномоченного лица) (подпись, Ф.И.О.)\n")

	return b.String()
}

// WriteLetterFile сохраняет текст письма в файл.
func WriteLetterFile(record letters.LetterRecord, now time.Time, path string) error {
	if err := os.WriteFile(path, []byte(RenderLetterText(record, now)), 0644); err != nil {
		return fmt.Errorf("failed to write letter file: %w", err)
	}
	return nil
}

// amountWithWords выводит сумму цифрами и прописью в скобках.
func amountWithWords(amount decimal.Decimal) string {
	return fmt.Sprintf("%s (%s)", amount.StringFixed(2), letters.FormatAmountInWords(amount))
}
