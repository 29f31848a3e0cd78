package routes

import (
	"database/sql"
	"net/http"

	"github.com/LilVoxy/hospital_management/config"
	"github.com/LilVoxy/hospital_management/database"
	"github.com/LilVoxy/hospital_management/middleware"
	"github.com/LilVoxy/hospital_management/websocket"
	"github.com/gorilla/mux"
)

// SetupRoutes настраивает все маршруты API и WebSocket
func SetupRoutes(router *mux.Router, db *sql.DB, hub *websocket.Hub, cfg config.AppConfig) {
	// Применяем CORS middleware
	router.Use(middleware.CORSMiddleware)

	// WebSocket-канал оповещений панели мониторинга
	router.HandleFunc("/ws/alerts", hub.HandleConnections)

	// API пациентов
	router.HandleFunc("/api/patients", ListPatientsHandler(db)).Methods("GET", "OPTIONS")
	router.HandleFunc("/api/patients", CreatePatientHandler(db)).Methods("POST")
	router.HandleFunc("/api/patients/{id}", GetPatientHandler(db)).Methods("GET", "OPTIONS")
	router.HandleFunc("/api/patients/{id}", UpdatePatientHandler(db)).Methods("PUT")

	// API приемов
	router.HandleFunc("/api/appointments", ListAppointmentsHandler(db)).Methods("GET", "OPTIONS")
	router.HandleFunc("/api/appointments", CreateAppointmentHandler(db)).Methods("POST")
	router.HandleFunc("/api/appointments/{id}/status", UpdateAppointmentStatusHandler(db)).Methods("PUT", "OPTIONS")

	// API клинических записей
	router.HandleFunc("/api/patients/{id}/vitals", ListVitalsHandler(db)).Methods("GET", "OPTIONS")
	router.HandleFunc("/api/patients/{id}/vitals", CreateVitalsHandler(db)).Methods("POST")
	router.HandleFunc("/api/patients/{id}/lab-tests", ListLabTestsHandler(db)).Methods("GET", "OPTIONS")
	router.HandleFunc("/api/patients/{id}/lab-tests", CreateLabTestHandler(db)).Methods("POST")
	router.HandleFunc("/api/lab-tests/{id}/result", CompleteLabTestHandler(db)).Methods("PUT", "OPTIONS")

	// API аптечного склада
	router.HandleFunc("/api/medicines", ListMedicinesHandler(db)).Methods("GET", "OPTIONS")
	router.HandleFunc("/api/medicines", CreateMedicineHandler(db)).Methods("POST")
	router.HandleFunc("/api/medicines/{id}/stock", UpdateMedicineStockHandler(db)).Methods("PUT", "OPTIONS")
	router.HandleFunc("/api/medicines/{id}/dispense", DispenseMedicineHandler(db)).Methods("POST", "OPTIONS")

	// API биллинга
	router.HandleFunc("/api/invoices", ListInvoicesHandler(db)).Methods("GET", "OPTIONS")
	router.HandleFunc("/api/invoices", CreateInvoiceHandler(db)).Methods("POST")
	router.HandleFunc("/api/invoices/{id}/payments", RecordPaymentHandler(db)).Methods("POST", "OPTIONS")

	// API прогнозной аналитики
	aggregator := database.NewTimeSeriesAggregator(db, cfg.Prediction.ConsumptionLookbackDays)
	ph := NewPredictionHandlers(aggregator, aggregator, cfg.Prediction)
	router.HandleFunc("/api/predictions/admissions", ph.Admissions).Methods("GET", "OPTIONS")
	router.HandleFunc("/api/predictions/revenue", ph.Revenue).Methods("GET", "OPTIONS")
	router.HandleFunc("/api/predictions/stockouts", ph.Stockouts).Methods("GET", "OPTIONS")
	router.HandleFunc("/api/predictions/alerts", ph.Alerts).Methods("GET", "OPTIONS")

	// Статические файлы
	router.PathPrefix("/").Handler(http.FileServer(http.Dir("public")))
}
