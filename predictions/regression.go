package predictions

import (
	"math"
)

// LinearRegression строит модель линейной регрессии методом наименьших
// квадратов по ряду значений и экстраполирует ее на horizon периодов вперед.
//
// Независимой переменной x служит позиция значения в ряду (0..n-1).
// Формулы:
//
//	m = (n*sum(x*y) - sum(x)*sum(y)) / (n*sum(x^2) - (sum(x))^2)
//	b = (sum(y) - m*sum(x)) / n
//
// Вырожденные случаи (пустой ряд, одна точка, нулевая дисперсия) дают
// нулевой наклон, сдвиг равный среднему и R² = 0 — никогда NaN.
func LinearRegression(values []float64, horizon int) RegressionResult {
	if horizon < 1 {
		horizon = 1
	}

	result := RegressionResult{
		Predicted: make([]float64, horizon),
	}

	n := len(values)
	if n == 0 {
		return result
	}

	sumY := 0.0
	for _, y := range values {
		sumY += y
	}
	mean := sumY / float64(n)

	if n < 2 {
		// Одной точки недостаточно для наклона — плоская проекция от среднего
		result.Intercept = RoundToThousandth(mean)
		for i := range result.Predicted {
			result.Predicted[i] = result.Intercept
		}
		return result
	}

	// Суммы для расчета коэффициентов МНК
	fn := float64(n)
	sumX := 0.0
	sumXY := 0.0
	sumX2 := 0.0
	for i, y := range values {
		x := float64(i)
		sumX += x
		sumXY += x * y
		sumX2 += x * x
	}

	slope := 0.0
	intercept := mean
	denominator := fn*sumX2 - sumX*sumX
	if math.Abs(denominator) > 1e-10 {
		slope = (fn*sumXY - sumX*sumY) / denominator
		intercept = (sumY - slope*sumX) / fn
	}

	// Коэффициент детерминации: r² = 1 - SS_res/SS_tot
	ssTot := 0.0
	ssRes := 0.0
	for i, y := range values {
		fitted := slope*float64(i) + intercept
		ssTot += (y - mean) * (y - mean)
		ssRes += (y - fitted) * (y - fitted)
	}

	r2 := 0.0
	if ssTot > 1e-10 {
		r2 = 1 - ssRes/ssTot
		// Защита от накопленной погрешности округления
		if r2 < 0 {
			r2 = 0
		}
		if r2 > 1 {
			r2 = 1
		}
	} else {
		// Все значения одинаковы — дисперсия нулевая, модель вырождена
		slope = 0
		intercept = mean
	}

	result.Slope = RoundToThousandth(slope)
	result.Intercept = RoundToThousandth(intercept)
	result.R2 = RoundToThousandth(r2)

	// Экстраполяция вдоль подобранной прямой: x = n, n+1, ...
	// Отрицательные прогнозы не обрезаются — интерпретация за вызывающей стороной
	for k := 0; k < horizon; k++ {
		x := float64(n + k)
		result.Predicted[k] = RoundToThousandth(slope*x + intercept)
	}

	return result
}
