package monitor

import (
	"context"
	"time"

	"github.com/LilVoxy/hospital_management/database"
	"github.com/LilVoxy/hospital_management/predictions"
	"github.com/LilVoxy/hospital_management/utils"
	"github.com/LilVoxy/hospital_management/websocket"
	"github.com/go-co-op/gocron"
)

// Глубина хранения снимков оповещений (в днях)
const snapshotRetentionDays = 90

// StockMonitor фоновый мониторинг запасов: по расписанию пересчитывает
// предиктивные оповещения, сохраняет снимок и рассылает критические
// оповещения подключенным клиентам панели
type StockMonitor struct {
	dataSource predictions.DataSource
	snapshots  *database.AlertSnapshotRepository
	hub        *websocket.Hub
	logger     *utils.HMSLogger
	thresholds predictions.Thresholds
	interval   time.Duration
}

// NewStockMonitor создает новый мониторинг запасов
func NewStockMonitor(
	dataSource predictions.DataSource,
	snapshots *database.AlertSnapshotRepository,
	hub *websocket.Hub,
	logger *utils.HMSLogger,
	thresholds predictions.Thresholds,
	interval time.Duration,
) *StockMonitor {
	return &StockMonitor{
		dataSource: dataSource,
		snapshots:  snapshots,
		hub:        hub,
		logger:     logger,
		thresholds: thresholds,
		interval:   interval,
	}
}

// RunOnce выполняет один цикл мониторинга
func (m *StockMonitor) RunOnce() error {
	startTime := time.Now()
	m.logger.Info("Запуск цикла мониторинга запасов")

	alerts, err := predictions.GeneratePredictiveAlerts(m.dataSource, m.thresholds, startTime)
	if err != nil {
		m.logger.Error("Ошибка при формировании оповещений: %v", err)
		return err
	}

	m.logger.Info("Сформировано %d предиктивных оповещений", len(alerts))

	// Сохраняем снимок для истории
	if err := m.snapshots.SaveSnapshot(alerts, startTime); err != nil {
		m.logger.Error("Ошибка при сохранении снимка оповещений: %v", err)
		// Некритичная ошибка, рассылку продолжаем
	}

	// Удаляем устаревшие снимки
	deleteOlderThan := startTime.AddDate(0, 0, -snapshotRetentionDays)
	if err := m.snapshots.DeleteOldSnapshots(deleteOlderThan); err != nil {
		m.logger.Info("Не удалось удалить устаревшие снимки: %v", err)
	}

	// Рассылаем только критические оповещения
	critical := make([]predictions.Alert, 0, len(alerts))
	for _, alert := range alerts {
		if alert.Severity == predictions.SeverityCritical {
			critical = append(critical, alert)
		}
	}
	if len(critical) > 0 {
		m.hub.BroadcastAlerts(critical)
		m.logger.Info("Разослано %d критических оповещений", len(critical))
	}

	m.logger.Info("Цикл мониторинга завершен. Длительность: %v", time.Since(startTime))
	return nil
}

// Start запускает планировщик мониторинга и блокируется до отмены контекста
func (m *StockMonitor) Start(ctx context.Context) {
	if err := m.snapshots.EnsureTableExists(); err != nil {
		m.logger.Error("Ошибка при создании таблицы снимков оповещений: %v", err)
		return
	}

	scheduler := gocron.NewScheduler(time.UTC)

	m.logger.Info("Запуск мониторинга запасов с интервалом %v", m.interval)

	_, err := scheduler.Every(m.interval).Do(func() {
		if err := m.RunOnce(); err != nil {
			m.logger.Error("Ошибка при выполнении цикла мониторинга: %v", err)
		}
	})
	if err != nil {
		m.logger.Error("Ошибка при настройке планировщика: %v", err)
		return
	}

	scheduler.StartAsync()

	// Ожидаем сигнал остановки из контекста
	<-ctx.Done()

	scheduler.Stop()
	m.logger.Info("Мониторинг запасов остановлен")
}
