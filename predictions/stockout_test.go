package predictions

import (
	"testing"
	"time"
)

var testNow = time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

func TestPredictStockout_BasicRate(t *testing.T) {
	estimate := PredictStockout(100, []float64{30}, 30, testNow)

	if estimate.DailyRate != 1 {
		t.Errorf("расход в день: получено %v, ожидалось 1", estimate.DailyRate)
	}
	if estimate.DaysUntilStockout != 100 {
		t.Errorf("дней до истощения: получено %d, ожидалось 100", estimate.DaysUntilStockout)
	}
	if estimate.Infinite {
		t.Error("горизонт не должен быть бесконечным")
	}
	if estimate.StockoutDate == nil {
		t.Fatal("дата истощения не должна быть nil")
	}

	wantDate := testNow.AddDate(0, 0, 100)
	if !estimate.StockoutDate.Equal(wantDate) {
		t.Errorf("дата истощения: получено %v, ожидалось %v", estimate.StockoutDate, wantDate)
	}
}

func TestPredictStockout_ZeroConsumption(t *testing.T) {
	estimate := PredictStockout(50, []float64{0, 0, 0}, 90, testNow)

	if estimate.DailyRate != 0 {
		t.Errorf("расход в день: получено %v, ожидалось 0", estimate.DailyRate)
	}
	if !estimate.Infinite {
		t.Error("нулевой расход должен давать бесконечный горизонт")
	}
	if estimate.DaysUntilStockout != -1 {
		t.Errorf("дней до истощения: получено %d, ожидалось -1", estimate.DaysUntilStockout)
	}
	if estimate.StockoutDate != nil {
		t.Error("дата истощения должна быть nil при нулевом расходе")
	}
	if estimate.Confidence != ConfidenceLow {
		t.Errorf("уверенность: получено %q, ожидалось %q", estimate.Confidence, ConfidenceLow)
	}
}

func TestPredictStockout_NeverNegativeDays(t *testing.T) {
	// Запас уже нулевой — истощение сегодня, а не в прошлом
	estimate := PredictStockout(0, []float64{60, 60, 60}, 90, testNow)

	if estimate.DaysUntilStockout != 0 {
		t.Errorf("дней до истощения: получено %d, ожидалось 0", estimate.DaysUntilStockout)
	}
}

func TestPredictStockout_ConfidencePolicy(t *testing.T) {
	tests := []struct {
		name        string
		consumption []float64
		windowDays  float64
		want        Confidence
	}{
		{"полное окно, три активных интервала", []float64{30, 25, 35}, 90, ConfidenceHigh},
		{"короткое окно, три активных интервала", []float64{10, 12, 11}, 60, ConfidenceMedium},
		{"два активных интервала", []float64{20, 0, 15}, 90, ConfidenceMedium},
		{"один активный интервал", []float64{30}, 30, ConfidenceLow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			estimate := PredictStockout(100, tt.consumption, tt.windowDays, testNow)
			if estimate.Confidence != tt.want {
				t.Errorf("уверенность: получено %q, ожидалось %q", estimate.Confidence, tt.want)
			}
		})
	}
}

func TestPredictStockout_ZeroWindow(t *testing.T) {
	estimate := PredictStockout(100, []float64{30}, 0, testNow)

	if !estimate.Infinite {
		t.Error("нулевое окно наблюдения должно давать бесконечный горизонт")
	}
}

func TestPredictStockout_Idempotent(t *testing.T) {
	first := PredictStockout(75, []float64{12, 18, 9}, 90, testNow)
	second := PredictStockout(75, []float64{12, 18, 9}, 90, testNow)

	if first.DailyRate != second.DailyRate ||
		first.DaysUntilStockout != second.DaysUntilStockout ||
		first.Confidence != second.Confidence {
		t.Fatal("повторный вызов с теми же входными данными дал другой результат")
	}
}
