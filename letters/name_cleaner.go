package letters

import (
	"regexp"
	"strings"
)

// Контрагенты в отчетности приходят с 10-значным кодом регистрации перед
// названием: "1234567890 ООО Ромашка". Код отбрасываем.
var registrationPrefixRegex = regexp.MustCompile(`^\d{10}\s*`)

// CleanContractorName убирает 10-значный код в начале названия контрагента
// и обрезает пробелы по краям.
func CleanContractorName(name string) string {
	return strings.TrimSpace(registrationPrefixRegex.ReplaceAllString(name, ""))
}

// Шаблоны ОПФ в порядке приоритета: полная форма, затем аббревиатура.
// Кавычки вокруг названия необязательны, чтобы варианты написания одного
// контрагента ("ООО Ромашка" и ООО «Ромашка») сводились к одному имени.
var shortNamePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)Общество с ограниченной ответственностью\s*["«]?([^"«»]+)["»]?`),
	regexp.MustCompile(`(?i)ООО\s*["«]?([^"«»]+)["»]?`),
	regexp.MustCompile(`(?i)Акционерное общество\s*["«]?([^"«»]+)["»]?`),
	regexp.MustCompile(`(?i)АО\s*["«]?([^"«»]+)["»]?`),
	regexp.MustCompile(`(?i)Закрытое акционерное общество\s*["«]?([^"«»]+)["»]?`),
	regexp.MustCompile(`(?i)ЗАО\s*["«]?([^"«»]+)["»]?`),
}

// ShortName извлекает сокращенное наименование контрагента: название в
// кавычках после ОПФ. Если ни один шаблон не подошел, возвращает
// название как есть.
func ShortName(fullName string) string {
	if fullName == "" {
		return ""
	}

	for _, pattern := range shortNamePatterns {
		if matches := pattern.FindStringSubmatch(fullName); len(matches) == 2 {
			return strings.TrimSpace(matches[1])
		}
	}

	return fullName
}

// FullLegalForm возвращает полную форму организации в творительном падеже
// для подстановки в текст письма ("между X и Обществом с ограниченной
// ответственностью ..."). Порядок проверки: ООО, АО, ЗАО.
func FullLegalForm(name string) string {
	if name == "" {
		return ""
	}

	lower := strings.ToLower(name)
	switch {
	case strings.Contains(lower, "ооо"), strings.Contains(lower, "общество с ограниченной ответственностью"):
		return "Обществом с ограниченной ответственностью"
	case strings.Contains(lower, "ао"), strings.Contains(lower, "акционерное общество"):
		return "Акционерным обществом"
	case strings.Contains(lower, "зао"), strings.Contains(lower, "закрытое акционерное общество"):
		return "Закрытым акционерным обществом"
	default:
		return "организацией"
	}
}
