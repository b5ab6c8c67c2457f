package letters

import "time"

// Classify определяет просрочку строки отчетности. Если фактической даты
// нет, сравниваем плановую с переданной датой now (товар еще не поставлен);
// иначе сравниваем фактическую с плановой. now передается параметром, а не
// берется из системных часов, чтобы расчет был воспроизводим.
func Classify(planned time.Time, actual *time.Time, now time.Time) Classification {
	if actual == nil {
		if now.After(planned) {
			return Classification{
				IsOverdue:   true,
				DaysOverdue: daysBetween(planned, now),
				Category:    CategoryNotDelivered,
			}
		}
		return Classification{}
	}

	if actual.After(planned) {
		return Classification{
			IsOverdue:   true,
			DaysOverdue: daysBetween(planned, *actual),
			Category:    CategoryDeliveredLate,
		}
	}
	return Classification{}
}

// daysBetween целое число суток от from до to, дробная часть отбрасывается.
func daysBetween(from, to time.Time) int {
	return int(to.Sub(from) / (24 * time.Hour))
}
