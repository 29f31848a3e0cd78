package predictions

import (
	"fmt"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"
)

// Предел параллелизма при обходе медикаментов
const alertWorkers = 8

// GeneratePredictiveAlerts строит список предиктивных оповещений об истощении
// запасов. Для каждого медикамента с ненулевым расходом запускается прогноз
// истощения; оповещение формируется, когда срок истощения не превышает
// предупредительный порог. Список отсортирован по возрастанию срочности.
//
// Прогнозы по медикаментам независимы, поэтому обход распараллелен.
// Отсутствие данных дает пустой список, а не ошибку.
func GeneratePredictiveAlerts(ds DataSource, thresholds Thresholds, now time.Time) ([]Alert, error) {
	items, err := ds.StockSnapshots()
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении состояния запасов: %w", err)
	}

	if len(items) == 0 {
		return []Alert{}, nil
	}

	// Слот на каждый медикамент; пустой Kind означает отсутствие оповещения
	slots := make([]Alert, len(items))

	g := new(errgroup.Group)
	g.SetLimit(alertWorkers)

	for i := range items {
		i := i
		g.Go(func() error {
			item := items[i]

			consumption, windowDays, err := ds.ConsumptionHistory(item.ID)
			if err != nil {
				return fmt.Errorf("ошибка при получении истории расхода медикамента %d: %w", item.ID, err)
			}

			estimate := PredictStockout(item.Stock, consumption, windowDays, now)
			if estimate.Infinite {
				return nil
			}

			var severity Severity
			switch {
			case estimate.DaysUntilStockout <= thresholds.CriticalDays:
				severity = SeverityCritical
			case estimate.DaysUntilStockout <= thresholds.WarningDays:
				severity = SeverityWarning
			default:
				// За пределами предупредительного порога оповещение не формируется
				return nil
			}

			slots[i] = Alert{
				Kind:     AlertStockout,
				Severity: severity,
				Subject:  item.Name,
				Message: fmt.Sprintf("Запас «%s» будет исчерпан через %d дн. при расходе %.3f ед./день",
					item.Name, estimate.DaysUntilStockout, estimate.DailyRate),
				MetricValue: estimate.DailyRate,
				DaysUntil:   estimate.DaysUntilStockout,
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	alerts := make([]Alert, 0, len(slots))
	for _, alert := range slots {
		if alert.Kind != "" {
			alerts = append(alerts, alert)
		}
	}

	SortByUrgency(alerts)
	return alerts, nil
}

// SortByUrgency сортирует оповещения по возрастанию срока до истощения.
// Оповещения без числовой срочности (DaysUntil < 0) помещаются в конец.
func SortByUrgency(alerts []Alert) {
	sort.SliceStable(alerts, func(i, j int) bool {
		di, dj := alerts[i].DaysUntil, alerts[j].DaysUntil
		if di < 0 {
			return false
		}
		if dj < 0 {
			return true
		}
		return di < dj
	})
}

// Пороги трендовых оповещений: падение выручки — отрицательный наклон,
// объясняющий заметную долю дисперсии; всплеск обращений — рост быстрее
// десятой части среднего уровня за период.
const (
	trendMinR2         = 0.30
	spikeSlopeFraction = 0.10
)

// TrendAlerts анализирует месячные ряды обращений и выручки и формирует
// трендовые оповещения на основе линейной регрессии. Ряды короче трех точек
// пропускаются: по ним тренд статистически не значим.
func TrendAlerts(admissions, revenue []TimeSeriesPoint) []Alert {
	alerts := []Alert{}

	if len(revenue) >= 3 {
		values := seriesValues(revenue)
		model := LinearRegression(values, 1)
		if model.Slope < 0 && model.R2 >= trendMinR2 {
			alerts = append(alerts, Alert{
				Kind:     AlertRevenueDrop,
				Severity: SeverityWarning,
				Subject:  "Выручка",
				Message: fmt.Sprintf("Выручка снижается на %.3f в месяц (R²=%.3f)",
					-model.Slope, model.R2),
				MetricValue: model.Slope,
				DaysUntil:   -1,
			})
		}
	}

	if len(admissions) >= 3 {
		values := seriesValues(admissions)
		mean := 0.0
		for _, v := range values {
			mean += v
		}
		mean /= float64(len(values))

		model := LinearRegression(values, 1)
		if mean > 0 && model.Slope > mean*spikeSlopeFraction && model.R2 >= trendMinR2 {
			alerts = append(alerts, Alert{
				Kind:     AlertAdmissionSpike,
				Severity: SeverityInfo,
				Subject:  "Обращения",
				Message: fmt.Sprintf("Число обращений растет на %.3f в месяц (R²=%.3f)",
					model.Slope, model.R2),
				MetricValue: model.Slope,
				DaysUntil:   -1,
			})
		}
	}

	return alerts
}

// seriesValues извлекает значения из точек временного ряда
func seriesValues(points []TimeSeriesPoint) []float64 {
	values := make([]float64, len(points))
	for i, p := range points {
		values[i] = p.Value
	}
	return values
}
