package predictions

import (
	"math"
	"testing"
)

func TestLinearRegression_PerfectTrend(t *testing.T) {
	values := []float64{1, 2, 3, 4}
	result := LinearRegression(values, 2)

	if result.Slope != 1 {
		t.Errorf("наклон: получено %v, ожидалось 1", result.Slope)
	}
	if result.Intercept != 1 {
		t.Errorf("сдвиг: получено %v, ожидалось 1", result.Intercept)
	}
	if result.R2 != 1 {
		t.Errorf("R²: получено %v, ожидалось 1", result.R2)
	}

	// Первая точка прогноза продолжает прямую: x=4 -> y=5
	if result.Predicted[0] != 5 {
		t.Errorf("predicted[0]: получено %v, ожидалось 5", result.Predicted[0])
	}
	if result.Predicted[1] != 6 {
		t.Errorf("predicted[1]: получено %v, ожидалось 6", result.Predicted[1])
	}
}

func TestLinearRegression_ZeroVariance(t *testing.T) {
	values := []float64{5, 5, 5, 5}
	result := LinearRegression(values, 3)

	if result.Slope != 0 {
		t.Errorf("наклон: получено %v, ожидалось 0", result.Slope)
	}
	if result.R2 != 0 {
		t.Errorf("R²: получено %v, ожидалось 0 (вырожденный случай)", result.R2)
	}
	if math.IsNaN(result.R2) {
		t.Fatal("R² не должен быть NaN")
	}
	for i, p := range result.Predicted {
		if p != 5 {
			t.Errorf("predicted[%d]: получено %v, ожидалось 5", i, p)
		}
	}
}

func TestLinearRegression_SinglePoint(t *testing.T) {
	result := LinearRegression([]float64{42}, 2)

	if result.Slope != 0 {
		t.Errorf("наклон: получено %v, ожидалось 0", result.Slope)
	}
	if result.Intercept != 42 {
		t.Errorf("сдвиг: получено %v, ожидалось 42", result.Intercept)
	}
	if result.R2 != 0 {
		t.Errorf("R²: получено %v, ожидалось 0", result.R2)
	}
	for i, p := range result.Predicted {
		if p != 42 {
			t.Errorf("predicted[%d]: получено %v, ожидалось 42", i, p)
		}
	}
}

func TestLinearRegression_EmptyInput(t *testing.T) {
	result := LinearRegression(nil, 2)

	if result.Slope != 0 || result.Intercept != 0 || result.R2 != 0 {
		t.Errorf("пустой ряд должен давать нулевую модель, получено: %+v", result)
	}
	if len(result.Predicted) != 2 {
		t.Fatalf("длина прогноза: получено %d, ожидалось 2", len(result.Predicted))
	}
	for i, p := range result.Predicted {
		if p != 0 {
			t.Errorf("predicted[%d]: получено %v, ожидалось 0", i, p)
		}
	}
}

func TestLinearRegression_NegativeForecastNotClamped(t *testing.T) {
	// Убывающий ряд: прогноз уходит в отрицательную область и не обрезается
	values := []float64{30, 20, 10, 0}
	result := LinearRegression(values, 2)

	if result.Slope != -10 {
		t.Errorf("наклон: получено %v, ожидалось -10", result.Slope)
	}
	if result.Predicted[0] != -10 {
		t.Errorf("predicted[0]: получено %v, ожидалось -10", result.Predicted[0])
	}
}

func TestLinearRegression_R2WithinBounds(t *testing.T) {
	values := []float64{4, 7, 3, 9, 6, 2, 8}
	result := LinearRegression(values, 1)

	if result.R2 < 0 || result.R2 > 1 {
		t.Fatalf("R² вне диапазона [0,1]: %v", result.R2)
	}
}
