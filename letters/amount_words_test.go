package letters

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestNumberToWordsRussian(t *testing.T) {
	tests := []struct {
		n        int64
		expected string
	}{
		{0, "ноль"},
		{1, "один"},
		{7, "семь"},
		{11, "одиннадцать"},
		{19, "девятнадцать"},
		{20, "двадцать"},
		{21, "двадцать один"},
		{45, "сорок пять"},
		{100, "сто"},
		{123, "сто двадцать три"},
		{900, "девятьсот"},
		{2000, "два тысячи"},
		{5000, "пять тысяч"},
		{21000, "двадцать один тысяча"},
		{234567, "двести тридцать четыре тысячи пятьсот шестьдесят семь"},
		{1000000, "один миллион"},
		{2500000, "два миллиона пятьсот тысяч"},
		{3000042, "три миллиона сорок два"},
	}

	for _, tt := range tests {
		if got := NumberToWordsRussian(tt.n); got != tt.expected {
			t.Errorf("NumberToWordsRussian(%d) = %q, ожидалось %q", tt.n, got, tt.expected)
		}
	}
}

func TestPluralForm(t *testing.T) {
	tests := []struct {
		n        int64
		expected string
	}{
		{1, "рубль"},
		{2, "рубля"},
		{4, "рубля"},
		{5, "рублей"},
		{11, "рублей"},
		{12, "рублей"},
		{14, "рублей"},
		{21, "рубль"},
		{22, "рубля"},
		{25, "рублей"},
		{100, "рублей"},
		{101, "рубль"},
		{111, "рублей"},
	}

	for _, tt := range tests {
		if got := pluralForm(tt.n, "рубль", "рубля", "рублей"); got != tt.expected {
			t.Errorf("pluralForm(%d) = %q, ожидалось %q", tt.n, got, tt.expected)
		}
	}
}

func TestFormatAmountInWords(t *testing.T) {
	tests := []struct {
		amount   string
		expected string
	}{
		{"123.45", "сто двадцать три рубля 45 копеек"},
		{"1.00", "один рубль 00 копеек"},
		{"2.01", "два рубля 01 копейка"},
		{"5.22", "пять рублей 22 копейки"},
		{"0.99", "ноль рублей 99 копеек"},
		{"1000000.00", "один миллион рублей 00 копеек"},
	}

	for _, tt := range tests {
		amount := decimal.RequireFromString(tt.amount)
		if got := FormatAmountInWords(amount); got != tt.expected {
			t.Errorf("FormatAmountInWords(%s) = %q, ожидалось %q", tt.amount, got, tt.expected)
		}
	}
}

func TestFormatAmountInWords_KopeckRounding(t *testing.T) {
	// 0.999 округляется до 100 копеек и переваливает в рубли
	got := FormatAmountInWords(decimal.RequireFromString("0.999"))
	want := "один рубль 00 копеек"
	if got != want {
		t.Errorf("FormatAmountInWords(0.999) = %q, ожидалось %q", got, want)
	}
}
