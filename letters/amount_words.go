package letters

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	wordOnes = []string{"", "один", "два", "три", "четыре", "пять", "шесть", "семь", "восемь", "девять",
		"десять", "одиннадцать", "двенадцать", "тринадцать", "четырнадцать", "пятнадцать",
		"шестнадцать", "семнадцать", "восемнадцать", "девятнадцать"}
	wordTens     = []string{"", "", "двадцать", "тридцать", "сорок", "пятьдесят", "шестьдесят", "семьдесят", "восемьдесят", "девяносто"}
	wordHundreds = []string{"", "сто", "двести", "триста", "четыреста", "пятьсот", "шестьсот", "семьсот", "восемьсот", "девятьсот"}
)

// NumberToWordsRussian записывает целое число словами по-русски.
// Поддерживаются значения до миллиардов не включительно.
func NumberToWordsRussian(n int64) string {
	if n == 0 {
		return "ноль"
	}

	switch {
	case n < 1000:
		return convertHundreds(n)
	case n < 1000000:
		thousands := n / 1000
		remainder := n % 1000
		result := convertHundreds(thousands) + " " + pluralForm(thousands, "тысяча", "тысячи", "тысяч")
		if remainder > 0 {
			result += " " + convertHundreds(remainder)
		}
		return result
	default:
		millions := n / 1000000
		remainder := n % 1000000
		result := convertHundreds(millions) + " " + pluralForm(millions, "миллион", "миллиона", "миллионов")
		if remainder >= 1000 {
			thousands := remainder / 1000
			hundreds := remainder % 1000
			result += " " + convertHundreds(thousands) + " " + pluralForm(thousands, "тысяча", "тысячи", "тысяч")
			if hundreds > 0 {
				result += " " + convertHundreds(hundreds)
			}
		} else if remainder > 0 {
			result += " " + convertHundreds(remainder)
		}
		return result
	}
}

func convertHundreds(n int64) string {
	var parts []string
	if n >= 100 {
		parts = append(parts, wordHundreds[n/100])
		n %= 100
	}
	if n >= 20 {
		parts = append(parts, wordTens[n/10])
		n %= 10
	}
	if n > 0 {
		parts = append(parts, wordOnes[n])
	}
	return strings.Join(parts, " ")
}

// pluralForm выбирает форму существительного по правилам склонения
// числительных: 1 рубль, 2 рубля, 5 рублей (с поправкой на 11-14).
func pluralForm(n int64, one, few, many string) string {
	if n%10 == 1 && n%100 != 11 {
		return one
	}
	if d := n % 10; d >= 2 && d <= 4 && !(n%100 >= 12 && n%100 <= 14) {
		return few
	}
	return many
}

// FormatAmountInWords выводит сумму прописью: "сто двадцать три рубля 45 копеек".
func FormatAmountInWords(amount decimal.Decimal) string {
	rubles := amount.IntPart()
	kopecks := amount.Sub(decimal.NewFromInt(rubles)).Mul(decimal.NewFromInt(100)).Round(0).IntPart()
	if kopecks == 100 {
		// Округление копеек перевалило через рубль
		rubles++
		kopecks = 0
	}

	return fmt.Sprintf("%s %s %02d %s",
		NumberToWordsRussian(rubles),
		pluralForm(rubles, "рубль", "рубля", "рублей"),
		kopecks,
		pluralForm(kopecks, "копейка", "копейки", "копеек"))
}
