package letters

import "github.com/shopspring/decimal"

// Ставки пени по договору поставки: 0,1% в день первые две недели,
// далее 0,5% в день. База каждого дня включает ранее начисленные пени.
var (
	firstTierRate  = decimal.RequireFromString("0.001")
	secondTierRate = decimal.RequireFromString("0.005")
)

const firstTierDays = 14

// CalculatePenalty начисляет пени на сумму позиции за daysOverdue дней
// просрочки. Расчет ведется последовательно по дням: пеня каждого дня
// считается от суммы с учетом всех ранее начисленных пеней (сложный
// процент). Возвращается только накопленная пеня, без тела долга.
func CalculatePenalty(amount decimal.Decimal, daysOverdue int) decimal.Decimal {
	if daysOverdue <= 0 {
		return decimal.Zero
	}

	penalty := decimal.Zero
	current := amount

	firstTier := daysOverdue
	if firstTier > firstTierDays {
		firstTier = firstTierDays
	}
	for day := 0; day < firstTier; day++ {
		daily := current.Mul(firstTierRate)
		penalty = penalty.Add(daily)
		current = current.Add(daily)
	}

	for day := 0; day < daysOverdue-firstTierDays; day++ {
		daily := current.Mul(secondTierRate)
		penalty = penalty.Add(daily)
		current = current.Add(daily)
	}

	return penalty
}
