package predictions

import (
	"time"
)

// TimeSeriesPoint представляет точку агрегированного временного ряда
type TimeSeriesPoint struct {
	Period string  `json:"period"` // Метка месяца в формате "2006-01"
	Value  float64 `json:"value"`  // Агрегированное значение за период
}

// SmoothingResult содержит результаты сглаживания скользящим средним
type SmoothingResult struct {
	Smoothed  []float64 `json:"smoothed"`  // Сглаженные значения (первые window-1 точек отсутствуют)
	Predicted []float64 `json:"predicted"` // Прогноз на horizon периодов вперед
}

// RegressionResult содержит результаты линейной регрессии
type RegressionResult struct {
	Slope     float64   `json:"slope"`     // Коэффициент наклона
	Intercept float64   `json:"intercept"` // Сдвиг
	R2        float64   `json:"r_squared"` // Коэффициент детерминации (всегда в [0,1])
	Predicted []float64 `json:"predicted"` // Прогноз на horizon периодов вперед
}

// Confidence уровень уверенности прогноза истощения запасов
type Confidence string

const (
	ConfidenceLow    Confidence = "low"
	ConfidenceMedium Confidence = "medium"
	ConfidenceHigh   Confidence = "high"
)

// StockoutEstimate прогноз истощения запасов для одного медикамента
type StockoutEstimate struct {
	DailyRate         float64    `json:"daily_rate"`          // Средний расход в день
	DaysUntilStockout int        `json:"days_until_stockout"` // -1, если расход нулевой
	Infinite          bool       `json:"infinite"`            // Запас не истощается при текущем расходе
	StockoutDate      *time.Time `json:"stockout_date"`       // Ожидаемая дата истощения (nil при нулевом расходе)
	Confidence        Confidence `json:"confidence"`
}

// AlertKind тип предиктивного оповещения
type AlertKind string

const (
	AlertStockout       AlertKind = "stockout"
	AlertRevenueDrop    AlertKind = "revenue_drop"
	AlertAdmissionSpike AlertKind = "admission_spike"
)

// Severity серьезность оповещения
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityWarning  Severity = "warning"
	SeverityInfo     Severity = "info"
)

// Alert предиктивное оповещение для панели мониторинга
type Alert struct {
	Kind        AlertKind `json:"kind"`
	Severity    Severity  `json:"severity"`
	Subject     string    `json:"subject"`
	Message     string    `json:"message"`
	MetricValue float64   `json:"metric_value"`
	DaysUntil   int       `json:"days_until"` // -1, если числовая срочность неприменима
}

// MedicineStockSnapshot текущее состояние запаса медикамента
type MedicineStockSnapshot struct {
	ID           int     `json:"medicine_id"`
	Name         string  `json:"name"`
	Stock        float64 `json:"current_stock"`
	ReorderLevel float64 `json:"reorder_level"`
}

// Thresholds пороговые значения для формирования оповещений
type Thresholds struct {
	CriticalDays int // Истощение раньше этого срока — critical
	WarningDays  int // Истощение раньше этого срока — warning
}

// DefaultThresholds возвращает пороговые значения по умолчанию
func DefaultThresholds() Thresholds {
	return Thresholds{
		CriticalDays: 7,
		WarningDays:  30,
	}
}

// DataSource предоставляет доступ только на чтение к данным склада.
// Реализуется слоем доступа к данным; ядро прогнозирования не выполняет
// запросов к базе самостоятельно.
type DataSource interface {
	// StockSnapshots возвращает текущие запасы и пороги дозаказа всех медикаментов
	StockSnapshots() ([]MedicineStockSnapshot, error)

	// ConsumptionHistory возвращает суммы расхода по интервалам наблюдения
	// и общую длину окна наблюдения в днях
	ConsumptionHistory(medicineID int) ([]float64, float64, error)
}
