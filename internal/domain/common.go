package domain

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// SpanishMonths - названия месяцев в том виде, в каком их ждёт фронтенд
var SpanishMonths = [12]string{
	"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
	"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
}

// UnknownMonth - подпись для записей без даты
const UnknownMonth = "Desconocido"

// UnknownValue - подпись пустого значения в распределениях
const UnknownValue = "Desconocido"

// MonthName возвращает испанское название месяца (1..12)
func MonthName(m time.Month) string {
	if m < time.January || m > time.December {
		return UnknownMonth
	}
	return SpanishMonths[m-1]
}

// MonthByName - обратное преобразование; регистр не учитывается
func MonthByName(name string) (time.Month, bool) {
	for i, n := range SpanishMonths {
		if strings.EqualFold(n, strings.TrimSpace(name)) {
			return time.Month(i + 1), true
		}
	}
	return 0, false
}

// StringValue разыменовывает nullable строку
func StringValue(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// HasText - значение задано и не пустое
func HasText(s *string) bool {
	return s != nil && strings.TrimSpace(*s) != ""
}

// FormatNumber печатает целые без дробной части, остальные с точностью до 2 знаков
func FormatNumber(v float64) string {
	return strconv.FormatFloat(math.Round(v*100)/100, 'f', -1, 64)
}

// Round2 округляет до сотых
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func formatInt(v int) string {
	return strconv.Itoa(v)
}

func parseYear(s string) (int, bool) {
	y, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, false
	}
	return y, true
}
