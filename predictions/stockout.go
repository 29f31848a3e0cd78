package predictions

import (
	"math"
	"time"
)

// Пороги политики уверенности прогноза истощения.
// high — не менее fullWindowDays наблюдений и расход не менее чем в трех
// интервалах; medium — расход не менее чем в двух интервалах; иначе low.
const (
	fullWindowDays      = 90.0
	highConfidenceSpans = 3
	medConfidenceSpans  = 2
)

// PredictStockout оценивает срок истощения запаса медикамента.
//
// recentConsumption содержит суммы расхода по интервалам наблюдения,
// observationWindowDays — общую длину окна наблюдения в днях. Текущий момент
// передается явно, чтобы расчет оставался детерминированным в тестах.
//
// Нулевой или отрицательный расход дает «бесконечный» горизонт с низкой
// уверенностью — это штатный результат, а не ошибка.
func PredictStockout(currentStock float64, recentConsumption []float64, observationWindowDays float64, now time.Time) StockoutEstimate {
	estimate := StockoutEstimate{
		DaysUntilStockout: -1,
		Infinite:          true,
		Confidence:        ConfidenceLow,
	}

	if observationWindowDays <= 0 {
		return estimate
	}

	total := 0.0
	activeSpans := 0
	for _, consumed := range recentConsumption {
		total += consumed
		if consumed > 0 {
			activeSpans++
		}
	}

	rate := total / observationWindowDays
	if rate <= 0 {
		return estimate
	}

	days := int(math.Floor(currentStock / rate))
	if days < 0 {
		days = 0
	}

	stockoutDate := now.AddDate(0, 0, days)

	estimate.DailyRate = RoundToThousandth(rate)
	estimate.DaysUntilStockout = days
	estimate.Infinite = false
	estimate.StockoutDate = &stockoutDate
	estimate.Confidence = confidenceLevel(activeSpans, observationWindowDays)

	return estimate
}

// confidenceLevel определяет уверенность прогноза по достаточности данных
func confidenceLevel(activeSpans int, windowDays float64) Confidence {
	switch {
	case activeSpans >= highConfidenceSpans && windowDays >= fullWindowDays:
		return ConfidenceHigh
	case activeSpans >= medConfidenceSpans:
		return ConfidenceMedium
	default:
		return ConfidenceLow
	}
}
