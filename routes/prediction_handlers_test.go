package routes

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/LilVoxy/hospital_management/config"
	"github.com/LilVoxy/hospital_management/predictions"
)

// fakeTrendSource реализация TrendSource для тестов
type fakeTrendSource struct {
	series     []predictions.TimeSeriesPoint
	lastMonths int
}

func (f *fakeTrendSource) MonthlyAdmissions(months int) ([]predictions.TimeSeriesPoint, error) {
	f.lastMonths = months
	return f.series, nil
}

func (f *fakeTrendSource) MonthlyRevenue(months int) ([]predictions.TimeSeriesPoint, error) {
	f.lastMonths = months
	return f.series, nil
}

// fakeStockSource реализация predictions.DataSource для тестов
type fakeStockSource struct {
	items       []predictions.MedicineStockSnapshot
	consumption map[int][]float64
	windowDays  float64
}

func (f *fakeStockSource) StockSnapshots() ([]predictions.MedicineStockSnapshot, error) {
	return f.items, nil
}

func (f *fakeStockSource) ConsumptionHistory(medicineID int) ([]float64, float64, error) {
	return f.consumption[medicineID], f.windowDays, nil
}

func newTestHandlers(trends TrendSource, stocks predictions.DataSource) *PredictionHandlers {
	return NewPredictionHandlers(trends, stocks, config.DefaultPredictionConfig)
}

type trendEnvelope struct {
	Data struct {
		Labels      []string                     `json:"labels"`
		Values      []float64                    `json:"values"`
		Smoothed    []float64                    `json:"smoothed"`
		SMAForecast []float64                    `json:"sma_forecast"`
		Regression  predictions.RegressionResult `json:"regression"`
	} `json:"data"`
	Meta struct {
		Total int `json:"total"`
	} `json:"meta"`
}

func TestAdmissionsHandler_ResponseShape(t *testing.T) {
	trends := &fakeTrendSource{series: []predictions.TimeSeriesPoint{
		{Period: "2026-01", Value: 100},
		{Period: "2026-02", Value: 110},
		{Period: "2026-03", Value: 120},
		{Period: "2026-04", Value: 130},
	}}
	handlers := newTestHandlers(trends, &fakeStockSource{})

	req := httptest.NewRequest("GET", "/api/predictions/admissions?months=4&forecast=2", nil)
	rec := httptest.NewRecorder()
	handlers.Admissions(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("код ответа: получено %d, ожидалось 200", rec.Code)
	}

	var resp trendEnvelope
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("ошибка разбора ответа: %v", err)
	}

	if resp.Meta.Total != 4 {
		t.Errorf("meta.total: получено %d, ожидалось 4", resp.Meta.Total)
	}
	if len(resp.Data.Labels) != 4 || resp.Data.Labels[0] != "2026-01" {
		t.Errorf("метки периодов: получено %v", resp.Data.Labels)
	}
	if len(resp.Data.SMAForecast) != 2 {
		t.Errorf("длина SMA-прогноза: получено %d, ожидалось 2", len(resp.Data.SMAForecast))
	}
	if len(resp.Data.Regression.Predicted) != 2 {
		t.Errorf("длина регрессионного прогноза: получено %d, ожидалось 2", len(resp.Data.Regression.Predicted))
	}

	// Идеальный линейный тренд: наклон 10, R² = 1, первая точка прогноза 140
	if resp.Data.Regression.Slope != 10 {
		t.Errorf("наклон: получено %v, ожидалось 10", resp.Data.Regression.Slope)
	}
	if resp.Data.Regression.R2 != 1 {
		t.Errorf("R²: получено %v, ожидалось 1", resp.Data.Regression.R2)
	}
	if resp.Data.Regression.Predicted[0] != 140 {
		t.Errorf("прогноз[0]: получено %v, ожидалось 140", resp.Data.Regression.Predicted[0])
	}
}

func TestAdmissionsHandler_ParamsClamped(t *testing.T) {
	trends := &fakeTrendSource{}
	handlers := newTestHandlers(trends, &fakeStockSource{})

	// Значения за пределами диапазонов молча приводятся к границам
	req := httptest.NewRequest("GET", "/api/predictions/admissions?months=99&forecast=99", nil)
	rec := httptest.NewRecorder()
	handlers.Admissions(rec, req)

	if trends.lastMonths != 24 {
		t.Errorf("months должен быть приведен к 24, получено %d", trends.lastMonths)
	}

	var resp trendEnvelope
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("ошибка разбора ответа: %v", err)
	}
	if len(resp.Data.SMAForecast) != 6 {
		t.Errorf("forecast должен быть приведен к 6, получено %d", len(resp.Data.SMAForecast))
	}
}

func TestAdmissionsHandler_MalformedParamsFallBack(t *testing.T) {
	trends := &fakeTrendSource{}
	handlers := newTestHandlers(trends, &fakeStockSource{})

	req := httptest.NewRequest("GET", "/api/predictions/admissions?months=abc&forecast=", nil)
	rec := httptest.NewRecorder()
	handlers.Admissions(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("нечисловые параметры не должны приводить к отказу, код %d", rec.Code)
	}
	if trends.lastMonths != 12 {
		t.Errorf("months должен вернуться к значению по умолчанию 12, получено %d", trends.lastMonths)
	}
}

func TestStockoutsHandler_SortedAndFiltered(t *testing.T) {
	stocks := &fakeStockSource{
		items: []predictions.MedicineStockSnapshot{
			{ID: 1, Name: "Ибупрофен", Stock: 200, ReorderLevel: 30},  // 20 дней -> warning
			{ID: 2, Name: "Инсулин", Stock: 20, ReorderLevel: 10},     // 2 дня -> critical
			{ID: 3, Name: "Витамин C", Stock: 500, ReorderLevel: 50},  // без расхода -> пропускается
		},
		consumption: map[int][]float64{
			1: {300, 300, 300},
			2: {300, 300, 300},
			3: {0, 0, 0},
		},
		windowDays: 90,
	}
	handlers := newTestHandlers(&fakeTrendSource{}, stocks)

	req := httptest.NewRequest("GET", "/api/predictions/stockouts", nil)
	rec := httptest.NewRecorder()
	handlers.Stockouts(rec, req)

	var resp struct {
		Data []stockoutRow `json:"data"`
		Meta struct {
			Total int `json:"total"`
		} `json:"meta"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("ошибка разбора ответа: %v", err)
	}

	if resp.Meta.Total != 2 {
		t.Fatalf("meta.total: получено %d, ожидалось 2", resp.Meta.Total)
	}

	// Сортировка по срочности: сначала критическая позиция
	if resp.Data[0].Name != "Инсулин" || resp.Data[0].Severity != "critical" {
		t.Errorf("первая строка: получено %+v", resp.Data[0])
	}
	if resp.Data[1].Name != "Ибупрофен" || resp.Data[1].Severity != "warning" {
		t.Errorf("вторая строка: получено %+v", resp.Data[1])
	}

	// Фильтр по severity оставляет только критические позиции
	req = httptest.NewRequest("GET", "/api/predictions/stockouts?severity=critical", nil)
	rec = httptest.NewRecorder()
	handlers.Stockouts(rec, req)

	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("ошибка разбора ответа: %v", err)
	}
	if resp.Meta.Total != 1 || resp.Data[0].Name != "Инсулин" {
		t.Errorf("фильтр critical: получено %+v", resp.Data)
	}
}

func TestAlertsHandler_EmptyData(t *testing.T) {
	handlers := newTestHandlers(&fakeTrendSource{}, &fakeStockSource{})

	req := httptest.NewRequest("GET", "/api/predictions/alerts", nil)
	rec := httptest.NewRecorder()
	handlers.Alerts(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("отсутствие данных не должно приводить к отказу, код %d", rec.Code)
	}

	var resp struct {
		Data []predictions.Alert `json:"data"`
		Meta struct {
			Total int `json:"total"`
		} `json:"meta"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("ошибка разбора ответа: %v", err)
	}
	if resp.Meta.Total != 0 || len(resp.Data) != 0 {
		t.Errorf("ожидался пустой список оповещений, получено %+v", resp)
	}
}

func TestAlertsHandler_CombinesStockoutAndTrend(t *testing.T) {
	trends := &fakeTrendSource{series: []predictions.TimeSeriesPoint{
		{Period: "2026-01", Value: 90000},
		{Period: "2026-02", Value: 70000},
		{Period: "2026-03", Value: 50000},
	}}
	stocks := &fakeStockSource{
		items: []predictions.MedicineStockSnapshot{
			{ID: 1, Name: "Инсулин", Stock: 20, ReorderLevel: 10},
		},
		consumption: map[int][]float64{1: {300, 300, 300}},
		windowDays:  90,
	}
	handlers := newTestHandlers(trends, stocks)

	req := httptest.NewRequest("GET", "/api/predictions/alerts", nil)
	rec := httptest.NewRecorder()
	handlers.Alerts(rec, req)

	var resp struct {
		Data []predictions.Alert `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("ошибка разбора ответа: %v", err)
	}

	if len(resp.Data) < 2 {
		t.Fatalf("ожидались оповещения об истощении и о трендах, получено %d", len(resp.Data))
	}

	// Числовая срочность впереди, трендовые оповещения в конце
	if resp.Data[0].Kind != predictions.AlertStockout {
		t.Errorf("первым должно идти оповещение об истощении: %+v", resp.Data[0])
	}
	if resp.Data[len(resp.Data)-1].DaysUntil != -1 {
		t.Errorf("трендовые оповещения должны быть в конце: %+v", resp.Data)
	}
}
