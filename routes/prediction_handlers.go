package routes

import (
	"log"
	"net/http"
	"sort"
	"time"

	"github.com/LilVoxy/hospital_management/config"
	"github.com/LilVoxy/hospital_management/predictions"
)

// TrendSource предоставляет месячные агрегаты для трендовых прогнозов
type TrendSource interface {
	MonthlyAdmissions(months int) ([]predictions.TimeSeriesPoint, error)
	MonthlyRevenue(months int) ([]predictions.TimeSeriesPoint, error)
}

// PredictionHandlers обработчики эндпоинтов прогнозной аналитики
type PredictionHandlers struct {
	trends TrendSource
	stocks predictions.DataSource
	cfg    config.PredictionConfig
}

// NewPredictionHandlers создает обработчики прогнозной аналитики
func NewPredictionHandlers(trends TrendSource, stocks predictions.DataSource, cfg config.PredictionConfig) *PredictionHandlers {
	return &PredictionHandlers{
		trends: trends,
		stocks: stocks,
		cfg:    cfg,
	}
}

// trendForecast ответ трендовых эндпоинтов: история + сглаживание + регрессия
type trendForecast struct {
	Labels      []string                     `json:"labels"`
	Values      []float64                    `json:"values"`
	Smoothed    []float64                    `json:"smoothed"`
	SMAForecast []float64                    `json:"sma_forecast"`
	Regression  predictions.RegressionResult `json:"regression"`
}

// stockoutRow строка ответа эндпоинта прогнозов истощения запасов
type stockoutRow struct {
	MedicineID        int                    `json:"medicine_id"`
	Name              string                 `json:"name"`
	CurrentStock      float64                `json:"current_stock"`
	ReorderLevel      float64                `json:"reorder_level"`
	DailyRate         float64                `json:"daily_rate"`
	DaysUntilStockout int                    `json:"days_until_stockout"`
	StockoutDate      *time.Time             `json:"stockout_date"`
	Confidence        predictions.Confidence `json:"confidence"`
	Severity          string                 `json:"severity,omitempty"`
}

// Admissions обрабатывает GET /api/predictions/admissions
func (h *PredictionHandlers) Admissions(w http.ResponseWriter, r *http.Request) {
	h.trendForecastResponse(w, r, h.trends.MonthlyAdmissions, "обращений")
}

// Revenue обрабатывает GET /api/predictions/revenue
func (h *PredictionHandlers) Revenue(w http.ResponseWriter, r *http.Request) {
	h.trendForecastResponse(w, r, h.trends.MonthlyRevenue, "выручки")
}

// trendForecastResponse строит прогноз по месячному ряду метрики
func (h *PredictionHandlers) trendForecastResponse(
	w http.ResponseWriter,
	r *http.Request,
	series func(int) ([]predictions.TimeSeriesPoint, error),
	metric string,
) {
	// Параметры молча приводятся к допустимым диапазонам
	months := clampQueryInt(r, "months", 12, h.cfg.MinMonths, h.cfg.MaxMonths)
	horizon := clampQueryInt(r, "forecast", 3, h.cfg.MinForecast, h.cfg.MaxForecast)

	points, err := series(months)
	if err != nil {
		log.Printf("❌ Ошибка при получении ряда %s: %v", metric, err)
		http.Error(w, "Ошибка при получении исторических данных", http.StatusInternalServerError)
		return
	}

	labels := make([]string, len(points))
	values := make([]float64, len(points))
	for i, p := range points {
		labels[i] = p.Period
		values[i] = p.Value
	}

	smoothing := predictions.SimpleMovingAverage(values, h.cfg.SMAWindow, horizon)
	regression := predictions.LinearRegression(values, horizon)

	response := trendForecast{
		Labels:      labels,
		Values:      values,
		Smoothed:    smoothing.Smoothed,
		SMAForecast: smoothing.Predicted,
		Regression:  regression,
	}

	writeData(w, response, len(labels))
	log.Printf("✅ Отправлен прогноз %s: %d мес. истории, горизонт %d", metric, len(labels), horizon)
}

// Stockouts обрабатывает GET /api/predictions/stockouts
func (h *PredictionHandlers) Stockouts(w http.ResponseWriter, r *http.Request) {
	severityFilter := r.URL.Query().Get("severity")

	items, err := h.stocks.StockSnapshots()
	if err != nil {
		log.Printf("❌ Ошибка при получении состояния запасов: %v", err)
		http.Error(w, "Ошибка при получении состояния запасов", http.StatusInternalServerError)
		return
	}

	now := time.Now()
	rows := []stockoutRow{}

	for _, item := range items {
		consumption, windowDays, err := h.stocks.ConsumptionHistory(item.ID)
		if err != nil {
			log.Printf("❌ Ошибка при получении истории расхода медикамента %d: %v", item.ID, err)
			continue
		}

		estimate := predictions.PredictStockout(item.Stock, consumption, windowDays, now)
		if estimate.Infinite {
			// Без расхода нет горизонта истощения — позиция не попадает в прогноз
			continue
		}

		severity := ""
		switch {
		case estimate.DaysUntilStockout <= h.cfg.CriticalDays:
			severity = string(predictions.SeverityCritical)
		case estimate.DaysUntilStockout <= h.cfg.WarningDays:
			severity = string(predictions.SeverityWarning)
		}

		if severityFilter != "" && severity != severityFilter {
			continue
		}

		rows = append(rows, stockoutRow{
			MedicineID:        item.ID,
			Name:              item.Name,
			CurrentStock:      item.Stock,
			ReorderLevel:      item.ReorderLevel,
			DailyRate:         estimate.DailyRate,
			DaysUntilStockout: estimate.DaysUntilStockout,
			StockoutDate:      estimate.StockoutDate,
			Confidence:        estimate.Confidence,
			Severity:          severity,
		})
	}

	// Сортировка по возрастанию срока до истощения
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].DaysUntilStockout < rows[j].DaysUntilStockout
	})

	writeData(w, rows, len(rows))
	log.Printf("✅ Отправлено %d прогнозов истощения запасов", len(rows))
}

// Alerts обрабатывает GET /api/predictions/alerts
func (h *PredictionHandlers) Alerts(w http.ResponseWriter, r *http.Request) {
	thresholds := predictions.Thresholds{
		CriticalDays: h.cfg.CriticalDays,
		WarningDays:  h.cfg.WarningDays,
	}

	alerts, err := predictions.GeneratePredictiveAlerts(h.stocks, thresholds, time.Now())
	if err != nil {
		log.Printf("❌ Ошибка при формировании оповещений: %v", err)
		http.Error(w, "Ошибка при формировании оповещений", http.StatusInternalServerError)
		return
	}

	// Трендовые оповещения дополняют список; их отсутствие не считается ошибкой
	admissions, err := h.trends.MonthlyAdmissions(h.cfg.MaxMonths)
	if err != nil {
		log.Printf("⚠️ Не удалось получить ряд обращений для трендовых оповещений: %v", err)
	}
	revenue, err := h.trends.MonthlyRevenue(h.cfg.MaxMonths)
	if err != nil {
		log.Printf("⚠️ Не удалось получить ряд выручки для трендовых оповещений: %v", err)
	}

	alerts = append(alerts, predictions.TrendAlerts(admissions, revenue)...)
	predictions.SortByUrgency(alerts)

	writeData(w, alerts, len(alerts))
	log.Printf("✅ Отправлено %d предиктивных оповещений", len(alerts))
}
