package database

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/LilVoxy/hospital_management/predictions"
)

// AlertSnapshotRepository хранит снимки предиктивных оповещений,
// формируемые фоновым мониторингом запасов
type AlertSnapshotRepository struct {
	db *sql.DB
}

// NewAlertSnapshotRepository создает новый репозиторий снимков оповещений
func NewAlertSnapshotRepository(db *sql.DB) *AlertSnapshotRepository {
	return &AlertSnapshotRepository{db: db}
}

// EnsureTableExists проверяет наличие таблицы и создает ее при необходимости
func (r *AlertSnapshotRepository) EnsureTableExists() error {
	query := `
	CREATE TABLE IF NOT EXISTS stockout_alert_snapshots (
		id INT AUTO_INCREMENT PRIMARY KEY,
		computed_at TIMESTAMP NOT NULL,
		kind VARCHAR(32) NOT NULL,
		severity VARCHAR(16) NOT NULL,
		subject VARCHAR(255) NOT NULL,
		message TEXT NOT NULL,
		metric_value DOUBLE NOT NULL,
		days_until INT NOT NULL,
		INDEX idx_computed_at (computed_at),
		INDEX idx_severity (severity)
	);`

	_, err := r.db.Exec(query)
	return err
}

// SaveSnapshot сохраняет набор оповещений одним снимком в транзакции
func (r *AlertSnapshotRepository) SaveSnapshot(alerts []predictions.Alert, computedAt time.Time) error {
	if len(alerts) == 0 {
		return nil
	}

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("не удалось начать транзакцию: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO stockout_alert_snapshots
			(computed_at, kind, severity, subject, message, metric_value, days_until)
		VALUES
			(?, ?, ?, ?, ?, ?, ?);`)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("не удалось подготовить запрос: %w", err)
	}
	defer stmt.Close()

	for _, alert := range alerts {
		_, err := stmt.Exec(
			computedAt,
			string(alert.Kind),
			string(alert.Severity),
			alert.Subject,
			alert.Message,
			alert.MetricValue,
			alert.DaysUntil,
		)
		if err != nil {
			tx.Rollback()
			return fmt.Errorf("не удалось сохранить оповещение: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("не удалось зафиксировать транзакцию: %w", err)
	}

	return nil
}

// DeleteOldSnapshots удаляет устаревшие снимки (старше указанной даты)
func (r *AlertSnapshotRepository) DeleteOldSnapshots(olderThan time.Time) error {
	_, err := r.db.Exec(`DELETE FROM stockout_alert_snapshots WHERE computed_at < ?`, olderThan)
	if err != nil {
		return fmt.Errorf("не удалось удалить устаревшие снимки: %w", err)
	}
	return nil
}
