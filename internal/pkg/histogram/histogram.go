// Package histogram строит частотное распределение числовых выборок
// (площади в м²) с фиксированной шириной бина и опциональным
// отсечением выбросов по 1-му и 99-му перцентилю.
package histogram

import (
	"errors"
	"math"
	"sort"
	"strconv"
)

// MinClipSamples - минимальный размер выборки, при котором применяется отсечение выбросов
const MinClipSamples = 20

// MaxBins - верхняя граница числа бинов одной гистограммы
const MaxBins = 10000

const (
	clipLowerPercentile = 1
	clipUpperPercentile = 99
)

// ErrInvalidArgument возвращается, когда ширина бина не положительна
var ErrInvalidArgument = errors.New("histogram: bin size must be positive")

// ErrTooManyBins возвращается, когда диапазон выборки требует больше MaxBins бинов
var ErrTooManyBins = errors.New("histogram: too many bins for sample range")

// Bin - полуоткрытый интервал [From, To)
type Bin struct {
	From  float64 `json:"from"`
	To    float64 `json:"to"`
	Range string  `json:"range"`
	Count int     `json:"count"`
}

// Result - бины по возрастанию From и статистика по оставшимся значениям
type Result struct {
	Bins   []Bin   `json:"bins"`
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	Count  int     `json:"count"`
}

// Build строит гистограмму. Нечисловые и неположительные значения
// отбрасываются до любых вычислений.
func Build(samples []float64, binSize float64, clipOutliers bool) (*Result, error) {
	if !(binSize > 0) || math.IsInf(binSize, 0) {
		return nil, ErrInvalidArgument
	}

	values := sanitize(samples)
	sort.Float64s(values)

	if clipOutliers && len(values) >= MinClipSamples {
		values = clip(values)
	}

	if len(values) == 0 {
		return &Result{Bins: []Bin{}}, nil
	}

	minV, maxV := values[0], values[len(values)-1]
	start := math.Floor(minV/binSize) * binSize
	end := math.Ceil(maxV/binSize) * binSize

	ratio := math.Round((end - start) / binSize)
	if math.IsNaN(ratio) || math.IsInf(ratio, 0) || ratio > MaxBins {
		return nil, ErrTooManyBins
	}
	n := int(ratio)
	if n < 1 {
		n = 1
	}

	bins := make([]Bin, n)
	for i := range bins {
		from := start + float64(i)*binSize
		to := start + float64(i+1)*binSize
		bins[i] = Bin{From: from, To: to, Range: rangeLabel(from, to)}
	}

	sum := 0.0
	for _, v := range values {
		idx := int(math.Floor((v - start) / binSize))
		// граничные значения из-за округления могут уйти за последний бин
		if idx < 0 {
			idx = 0
		}
		if idx > n-1 {
			idx = n - 1
		}
		bins[idx].Count++
		sum += v
	}

	return &Result{
		Bins:   bins,
		Mean:   sum / float64(len(values)),
		Median: percentileSorted(values, 50),
		Count:  len(values),
	}, nil
}

// Percentile - перцентиль с линейной интерполяцией между порядковыми
// статистиками (метод R-7). Пустая выборка даёт 0.
func Percentile(values []float64, p float64) float64 {
	if len(values) == 0 {
		return 0
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	return percentileSorted(sorted, p)
}

// ClosestBin возвращает бин, центр которого ближе всего к v.
// При равенстве расстояний выигрывает первый бин.
func ClosestBin(bins []Bin, v float64) (Bin, bool) {
	if len(bins) == 0 {
		return Bin{}, false
	}

	best := bins[0]
	bestD := math.Abs((best.From+best.To)/2 - v)
	for _, b := range bins[1:] {
		d := math.Abs((b.From+b.To)/2 - v)
		if d < bestD {
			best, bestD = b, d
		}
	}

	return best, true
}

func percentileSorted(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	if p < 0 {
		p = 0
	}
	if p > 100 {
		p = 100
	}

	idx := (p / 100) * float64(len(sorted)-1)
	lo := int(math.Floor(idx))
	hi := int(math.Ceil(idx))
	w := idx - float64(lo)

	// эквивалентно sorted[lo]*(1-w) + sorted[hi]*w, но точно при sorted[lo] == sorted[hi]
	return sorted[lo] + (sorted[hi]-sorted[lo])*w
}

// clip оставляет значения из замкнутого интервала [P1, P99]; вход отсортирован
func clip(sorted []float64) []float64 {
	lo := percentileSorted(sorted, clipLowerPercentile)
	hi := percentileSorted(sorted, clipUpperPercentile)

	kept := make([]float64, 0, len(sorted))
	for _, v := range sorted {
		if v >= lo && v <= hi {
			kept = append(kept, v)
		}
	}
	return kept
}

func sanitize(samples []float64) []float64 {
	out := make([]float64, 0, len(samples))
	for _, v := range samples {
		if isEligible(v) {
			out = append(out, v)
		}
	}
	return out
}

func isEligible(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v > 0
}

func rangeLabel(from, to float64) string {
	return formatBound(from) + "–" + formatBound(to)
}

func formatBound(v float64) string {
	return strconv.FormatFloat(math.Round(v*100)/100, 'f', -1, 64)
}
