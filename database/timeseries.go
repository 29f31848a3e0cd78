package database

import (
	"database/sql"
	"fmt"
	"log"

	"github.com/LilVoxy/hospital_management/predictions"
)

// Длина интервала наблюдения расхода медикаментов (в днях)
const consumptionBucketDays = 30

// TimeSeriesAggregator строит месячные агрегаты по транзакционным данным
// больницы и отдает их ядру прогнозирования в виде упорядоченных рядов.
// Реализует predictions.DataSource.
type TimeSeriesAggregator struct {
	db           *sql.DB
	lookbackDays int
}

// NewTimeSeriesAggregator создает новый агрегатор временных рядов
func NewTimeSeriesAggregator(db *sql.DB, lookbackDays int) *TimeSeriesAggregator {
	if lookbackDays <= 0 {
		lookbackDays = 90
	}
	return &TimeSeriesAggregator{db: db, lookbackDays: lookbackDays}
}

// MonthlyAdmissions возвращает количество обращений по месяцам за указанный
// период. Месяцы без обращений в ряд не попадают (разреженный ряд).
func (a *TimeSeriesAggregator) MonthlyAdmissions(months int) ([]predictions.TimeSeriesPoint, error) {
	rows, err := a.db.Query(`
		SELECT DATE_FORMAT(scheduled_at, '%Y-%m') AS period, COUNT(*) AS total
		FROM appointments
		WHERE scheduled_at >= DATE_SUB(CURDATE(), INTERVAL ? MONTH)
		  AND status != 'cancelled'
		GROUP BY period
		ORDER BY period`, months)
	if err != nil {
		return nil, fmt.Errorf("ошибка при агрегации обращений по месяцам: %w", err)
	}
	defer rows.Close()

	return scanSeries(rows)
}

// MonthlyRevenue возвращает суммы платежей по месяцам за указанный период
func (a *TimeSeriesAggregator) MonthlyRevenue(months int) ([]predictions.TimeSeriesPoint, error) {
	rows, err := a.db.Query(`
		SELECT DATE_FORMAT(paid_at, '%Y-%m') AS period, SUM(amount) AS total
		FROM payments
		WHERE paid_at >= DATE_SUB(CURDATE(), INTERVAL ? MONTH)
		GROUP BY period
		ORDER BY period`, months)
	if err != nil {
		return nil, fmt.Errorf("ошибка при агрегации выручки по месяцам: %w", err)
	}
	defer rows.Close()

	return scanSeries(rows)
}

// scanSeries читает строки (период, значение) в упорядоченный временной ряд
func scanSeries(rows *sql.Rows) ([]predictions.TimeSeriesPoint, error) {
	var series []predictions.TimeSeriesPoint
	for rows.Next() {
		var point predictions.TimeSeriesPoint
		if err := rows.Scan(&point.Period, &point.Value); err != nil {
			log.Printf("❌ Ошибка при сканировании точки ряда: %v", err)
			continue
		}
		series = append(series, point)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ошибка при итерации по временному ряду: %w", err)
	}

	return series, nil
}

// StockSnapshots возвращает текущие запасы всех медикаментов
func (a *TimeSeriesAggregator) StockSnapshots() ([]predictions.MedicineStockSnapshot, error) {
	rows, err := a.db.Query(`
		SELECT id, name, stock, reorder_level
		FROM medicines
		ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("ошибка при запросе состояния запасов: %w", err)
	}
	defer rows.Close()

	var snapshots []predictions.MedicineStockSnapshot
	for rows.Next() {
		var s predictions.MedicineStockSnapshot
		if err := rows.Scan(&s.ID, &s.Name, &s.Stock, &s.ReorderLevel); err != nil {
			log.Printf("❌ Ошибка при сканировании запаса: %v", err)
			continue
		}
		snapshots = append(snapshots, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ошибка при итерации по запасам: %w", err)
	}

	return snapshots, nil
}

// ConsumptionHistory возвращает суммы расхода медикамента по интервалам
// наблюдения за глубину анализа. Интервалы упорядочены хронологически;
// интервалы без выдач заполняются нулями.
func (a *TimeSeriesAggregator) ConsumptionHistory(medicineID int) ([]float64, float64, error) {
	bucketCount := a.lookbackDays / consumptionBucketDays
	if bucketCount < 1 {
		bucketCount = 1
	}

	rows, err := a.db.Query(`
		SELECT FLOOR(DATEDIFF(CURDATE(), DATE(dispensed_at)) / ?) AS bucket,
		       SUM(quantity) AS total
		FROM medicine_dispenses
		WHERE medicine_id = ?
		  AND dispensed_at >= DATE_SUB(CURDATE(), INTERVAL ? DAY)
		GROUP BY bucket`, consumptionBucketDays, medicineID, a.lookbackDays)
	if err != nil {
		return nil, 0, fmt.Errorf("ошибка при агрегации расхода медикамента %d: %w", medicineID, err)
	}
	defer rows.Close()

	// bucket 0 — самый свежий интервал; ряд отдаем в хронологическом порядке
	buckets := make([]float64, bucketCount)
	for rows.Next() {
		var bucket int
		var total float64
		if err := rows.Scan(&bucket, &total); err != nil {
			log.Printf("❌ Ошибка при сканировании интервала расхода: %v", err)
			continue
		}
		if bucket >= 0 && bucket < bucketCount {
			buckets[bucketCount-1-bucket] = total
		}
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("ошибка при итерации по расходу медикамента %d: %w", medicineID, err)
	}

	return buckets, float64(a.lookbackDays), nil
}
