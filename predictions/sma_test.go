package predictions

import (
	"testing"
)

func TestSimpleMovingAverage_SmoothedLengthAndMeans(t *testing.T) {
	values := []float64{10, 20, 30, 40, 50}
	result := SimpleMovingAverage(values, 3, 2)

	// Длина сглаженного ряда: len(values) - window + 1
	if len(result.Smoothed) != 3 {
		t.Fatalf("длина сглаженного ряда: получено %d, ожидалось 3", len(result.Smoothed))
	}

	want := []float64{20, 30, 40}
	for i, w := range want {
		if result.Smoothed[i] != w {
			t.Errorf("smoothed[%d]: получено %v, ожидалось %v", i, result.Smoothed[i], w)
		}
	}
}

func TestSimpleMovingAverage_FlatProjection(t *testing.T) {
	values := []float64{10, 20, 30, 40, 50}
	result := SimpleMovingAverage(values, 3, 4)

	if len(result.Predicted) != 4 {
		t.Fatalf("длина прогноза: получено %d, ожидалось 4", len(result.Predicted))
	}

	// Каждая точка прогноза равна последнему сглаженному значению
	last := result.Smoothed[len(result.Smoothed)-1]
	for i, p := range result.Predicted {
		if p != last {
			t.Errorf("predicted[%d]: получено %v, ожидалось %v", i, p, last)
		}
	}
}

func TestSimpleMovingAverage_FewerPointsThanWindow(t *testing.T) {
	values := []float64{6, 12}
	result := SimpleMovingAverage(values, 3, 2)

	if len(result.Smoothed) != 0 {
		t.Fatalf("сглаженный ряд должен быть пустым, получено %d точек", len(result.Smoothed))
	}

	// Прогноз — среднее всех доступных значений
	for i, p := range result.Predicted {
		if p != 9 {
			t.Errorf("predicted[%d]: получено %v, ожидалось 9", i, p)
		}
	}
}

func TestSimpleMovingAverage_EmptyInput(t *testing.T) {
	result := SimpleMovingAverage(nil, 3, 2)

	if len(result.Smoothed) != 0 {
		t.Fatalf("сглаженный ряд должен быть пустым")
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

func TestSimpleMovingAverage_Idempotent(t *testing.T) {
	values := []float64{3, 1, 4, 1, 5, 9, 2, 6}

	first := SimpleMovingAverage(values, 4, 3)
	second := SimpleMovingAverage(values, 4, 3)

	for i := range first.Smoothed {
		if first.Smoothed[i] != second.Smoothed[i] {
			t.Fatalf("повторный вызов дал другое сглаженное значение на позиции %d", i)
		}
	}
	for i := range first.Predicted {
		if first.Predicted[i] != second.Predicted[i] {
			t.Fatalf("повторный вызов дал другой прогноз на позиции %d", i)
		}
	}
}
