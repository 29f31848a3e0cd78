// main.go
package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/LilVoxy/hospital_management/config"
	"github.com/LilVoxy/hospital_management/database"
	"github.com/LilVoxy/hospital_management/monitor"
	"github.com/LilVoxy/hospital_management/predictions"
	"github.com/LilVoxy/hospital_management/routes"
	"github.com/LilVoxy/hospital_management/utils"
	"github.com/LilVoxy/hospital_management/websocket"
	_ "github.com/go-sql-driver/mysql"
	"github.com/gorilla/mux"
)

func main() {
	fmt.Println("Запуск сервера управления больницей...")

	// Получаем конфигурацию
	cfg := config.GetConfig()
	logger := utils.NewHMSLogger(cfg.EnableDetailedLogging)

	// Инициализация базы данных
	db, err := config.ConnectDatabase(cfg.Database)
	if err != nil {
		log.Fatalf("❌ Не удалось инициализировать базу данных: %v", err)
	}
	defer config.CloseDatabase(db)

	// Создаем менеджер WebSocket-подключений панели мониторинга
	hub := websocket.NewHub()
	go hub.Run()

	// Создаем маршрутизатор и регистрируем обработчики
	router := mux.NewRouter()
	routes.SetupRoutes(router, db, hub, cfg)

	// Контекст для остановки фоновых задач
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Запускаем фоновый мониторинг запасов
	aggregator := database.NewTimeSeriesAggregator(db, cfg.Prediction.ConsumptionLookbackDays)
	stockMonitor := monitor.NewStockMonitor(
		aggregator,
		database.NewAlertSnapshotRepository(db),
		hub,
		logger,
		predictions.Thresholds{
			CriticalDays: cfg.Prediction.CriticalDays,
			WarningDays:  cfg.Prediction.WarningDays,
		},
		cfg.Prediction.MonitorInterval,
	)
	go stockMonitor.Start(ctx)

	// Настраиваем сервер
	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Запускаем сервер в отдельной горутине
	go func() {
		log.Printf("✅ Сервер запущен на http://localhost%s", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("❌ Ошибка запуска сервера: %v", err)
		}
	}()

	// Канал для сигналов завершения
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	// Ожидаем сигнал завершения
	<-stop
	log.Println("⚠️ Получен сигнал завершения, закрываем соединения...")

	// Останавливаем фоновые задачи и сервер
	cancel()
	if err := server.Shutdown(context.Background()); err != nil {
		log.Printf("❌ Ошибка при остановке сервера: %v", err)
	}

	log.Println("👋 Сервер остановлен")
}
