package histogram

import (
	"strconv"
	"strings"
)

// ParseSamples приводит сырые строковые значения из хранилища к []float64.
// nil, пустые и нечисловые строки, а также неположительные значения пропускаются.
func ParseSamples(raw []*string) []float64 {
	out := make([]float64, 0, len(raw))
	for _, s := range raw {
		if s == nil {
			continue
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(*s), 64)
		if err != nil || !isEligible(v) {
			continue
		}
		out = append(out, v)
	}
	return out
}

// FromNullable отбрасывает NULL-значения колонки
func FromNullable(raw []*float64) []float64 {
	out := make([]float64, 0, len(raw))
	for _, v := range raw {
		if v != nil && isEligible(*v) {
			out = append(out, *v)
		}
	}
	return out
}
