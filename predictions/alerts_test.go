package predictions

import (
	"errors"
	"testing"
)

// fakeDataSource реализация DataSource для тестов
type fakeDataSource struct {
	items       []MedicineStockSnapshot
	consumption map[int][]float64
	windowDays  float64
	failStocks  bool
}

func (f *fakeDataSource) StockSnapshots() ([]MedicineStockSnapshot, error) {
	if f.failStocks {
		return nil, errors.New("нет соединения с базой")
	}
	return f.items, nil
}

func (f *fakeDataSource) ConsumptionHistory(medicineID int) ([]float64, float64, error) {
	return f.consumption[medicineID], f.windowDays, nil
}

func TestGeneratePredictiveAlerts_EmptyItems(t *testing.T) {
	ds := &fakeDataSource{windowDays: 90}

	alerts, err := GeneratePredictiveAlerts(ds, DefaultThresholds(), testNow)
	if err != nil {
		t.Fatalf("неожиданная ошибка: %v", err)
	}
	if len(alerts) != 0 {
		t.Fatalf("ожидался пустой список оповещений, получено %d", len(alerts))
	}
}

func TestGeneratePredictiveAlerts_SingleCritical(t *testing.T) {
	ds := &fakeDataSource{
		items: []MedicineStockSnapshot{
			{ID: 1, Name: "Амоксициллин 500мг", Stock: 30, ReorderLevel: 50},
		},
		consumption: map[int][]float64{1: {300}},
		windowDays:  30, // расход 10 ед./день -> истощение через 3 дня
	}

	alerts, err := GeneratePredictiveAlerts(ds, DefaultThresholds(), testNow)
	if err != nil {
		t.Fatalf("неожиданная ошибка: %v", err)
	}
	if len(alerts) != 1 {
		t.Fatalf("ожидалось ровно одно оповещение, получено %d", len(alerts))
	}

	alert := alerts[0]
	if alert.Kind != AlertStockout {
		t.Errorf("тип: получено %q, ожидалось %q", alert.Kind, AlertStockout)
	}
	if alert.Severity != SeverityCritical {
		t.Errorf("серьезность: получено %q, ожидалось %q", alert.Severity, SeverityCritical)
	}
	if alert.DaysUntil != 3 {
		t.Errorf("дней до истощения: получено %d, ожидалось 3", alert.DaysUntil)
	}
}

func TestGeneratePredictiveAlerts_SeverityAndSorting(t *testing.T) {
	// Три медикамента: критический (2 дня), предупреждение (20 дней)
	// и далекий от истощения (200 дней) — последний не дает оповещения
	ds := &fakeDataSource{
		items: []MedicineStockSnapshot{
			{ID: 1, Name: "Ибупрофен", Stock: 200, ReorderLevel: 30},
			{ID: 2, Name: "Инсулин", Stock: 20, ReorderLevel: 10},
			{ID: 3, Name: "Физраствор", Stock: 2000, ReorderLevel: 100},
		},
		consumption: map[int][]float64{
			1: {300, 300, 300}, // 10 ед./день -> 20 дней
			2: {300, 300, 300}, // 10 ед./день -> 2 дня
			3: {300, 300, 300}, // 10 ед./день -> 200 дней
		},
		windowDays: 90,
	}

	alerts, err := GeneratePredictiveAlerts(ds, DefaultThresholds(), testNow)
	if err != nil {
		t.Fatalf("неожиданная ошибка: %v", err)
	}
	if len(alerts) != 2 {
		t.Fatalf("ожидалось 2 оповещения, получено %d", len(alerts))
	}

	// Сортировка по возрастанию срока: сначала критическое
	if alerts[0].Subject != "Инсулин" || alerts[0].Severity != SeverityCritical {
		t.Errorf("первое оповещение: получено %+v", alerts[0])
	}
	if alerts[1].Subject != "Ибупрофен" || alerts[1].Severity != SeverityWarning {
		t.Errorf("второе оповещение: получено %+v", alerts[1])
	}
}

func TestGeneratePredictiveAlerts_ZeroConsumptionSkipped(t *testing.T) {
	ds := &fakeDataSource{
		items: []MedicineStockSnapshot{
			{ID: 1, Name: "Парацетамол", Stock: 10, ReorderLevel: 5},
		},
		consumption: map[int][]float64{1: {0, 0, 0}},
		windowDays:  90,
	}

	alerts, err := GeneratePredictiveAlerts(ds, DefaultThresholds(), testNow)
	if err != nil {
		t.Fatalf("неожиданная ошибка: %v", err)
	}
	if len(alerts) != 0 {
		t.Fatalf("медикамент без расхода не должен давать оповещений, получено %d", len(alerts))
	}
}

func TestGeneratePredictiveAlerts_DataSourceError(t *testing.T) {
	ds := &fakeDataSource{failStocks: true}

	if _, err := GeneratePredictiveAlerts(ds, DefaultThresholds(), testNow); err == nil {
		t.Fatal("ожидалась ошибка источника данных")
	}
}

func TestSortByUrgency_NonNumericLast(t *testing.T) {
	alerts := []Alert{
		{Kind: AlertRevenueDrop, DaysUntil: -1},
		{Kind: AlertStockout, DaysUntil: 15},
		{Kind: AlertStockout, DaysUntil: 4},
	}

	SortByUrgency(alerts)

	if alerts[0].DaysUntil != 4 || alerts[1].DaysUntil != 15 {
		t.Errorf("числовые оповещения должны идти первыми по возрастанию: %+v", alerts)
	}
	if alerts[2].Kind != AlertRevenueDrop {
		t.Errorf("оповещение без числовой срочности должно быть последним: %+v", alerts)
	}
}

func TestTrendAlerts_RevenueDrop(t *testing.T) {
	revenue := []TimeSeriesPoint{
		{Period: "2026-01", Value: 90000},
		{Period: "2026-02", Value: 70000},
		{Period: "2026-03", Value: 50000},
	}

	alerts := TrendAlerts(nil, revenue)
	if len(alerts) != 1 {
		t.Fatalf("ожидалось одно оповещение о падении выручки, получено %d", len(alerts))
	}
	if alerts[0].Kind != AlertRevenueDrop {
		t.Errorf("тип: получено %q, ожидалось %q", alerts[0].Kind, AlertRevenueDrop)
	}
	if alerts[0].DaysUntil != -1 {
		t.Errorf("трендовое оповещение не имеет числовой срочности: %d", alerts[0].DaysUntil)
	}
}

func TestTrendAlerts_AdmissionSpike(t *testing.T) {
	admissions := []TimeSeriesPoint{
		{Period: "2026-01", Value: 100},
		{Period: "2026-02", Value: 150},
		{Period: "2026-03", Value: 200},
	}

	alerts := TrendAlerts(admissions, nil)
	if len(alerts) != 1 {
		t.Fatalf("ожидалось одно оповещение о росте обращений, получено %d", len(alerts))
	}
	if alerts[0].Kind != AlertAdmissionSpike {
		t.Errorf("тип: получено %q, ожидалось %q", alerts[0].Kind, AlertAdmissionSpike)
	}
}

func TestTrendAlerts_ShortSeries(t *testing.T) {
	series := []TimeSeriesPoint{{Period: "2026-01", Value: 10}, {Period: "2026-02", Value: 5}}

	if alerts := TrendAlerts(series, series); len(alerts) != 0 {
		t.Fatalf("короткие ряды не должны давать трендовых оповещений, получено %d", len(alerts))
	}
}
