package predictions

import (
	"math"
)

// RoundToThousandth округляет число до тысячных (3 знака после запятой)
func RoundToThousandth(value float64) float64 {
	return math.Round(value*1000) / 1000
}

// SimpleMovingAverage вычисляет простое скользящее среднее по ряду значений
// и строит прогноз на horizon периодов вперед.
//
// Для каждого индекса i >= window-1 сглаженное значение равно среднему
// последних window точек. Прогноз заполняется повторением последнего
// сглаженного значения: новых наблюдений в будущем нет, поэтому скользящее
// окно вперед не пересчитывается (плоская проекция).
func SimpleMovingAverage(values []float64, window, horizon int) SmoothingResult {
	if window < 1 {
		window = 1
	}
	if horizon < 1 {
		horizon = 1
	}

	result := SmoothingResult{
		Smoothed:  []float64{},
		Predicted: make([]float64, horizon),
	}

	// Данных меньше окна — сглаживание невозможно,
	// прогнозируем среднее всех доступных значений (0 при пустом ряде)
	if len(values) < window {
		avg := 0.0
		if len(values) > 0 {
			sum := 0.0
			for _, v := range values {
				sum += v
			}
			avg = RoundToThousandth(sum / float64(len(values)))
		}
		for i := range result.Predicted {
			result.Predicted[i] = avg
		}
		return result
	}

	for i := window - 1; i < len(values); i++ {
		sum := 0.0
		for j := i - window + 1; j <= i; j++ {
			sum += values[j]
		}
		result.Smoothed = append(result.Smoothed, RoundToThousandth(sum/float64(window)))
	}

	last := result.Smoothed[len(result.Smoothed)-1]
	for i := range result.Predicted {
		result.Predicted[i] = last
	}

	return result
}
