package routes

import (
	"database/sql"
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"github.com/LilVoxy/hospital_management/database"
	"github.com/gorilla/mux"
)

// ListAppointmentsHandler обрабатывает запросы списка приемов
func ListAppointmentsHandler(db *sql.DB) http.HandlerFunc {
	repo := database.NewAppointmentRepository(db)

	return func(w http.ResponseWriter, r *http.Request) {
		patientID := clampQueryInt(r, "patientId", 0, 0, 1<<31-1)
		status := r.URL.Query().Get("status")
		limit := clampQueryInt(r, "limit", 20, 1, 100)
		page := clampQueryInt(r, "page", 1, 1, 100000)

		appointments, total, err := repo.List(patientID, status, limit, (page-1)*limit)
		if err != nil {
			log.Printf("❌ Ошибка при запросе приемов: %v", err)
			http.Error(w, "Ошибка при получении списка приемов", http.StatusInternalServerError)
			return
		}

		writeData(w, appointments, total)
		log.Printf("✅ Отправлен список из %d приемов (всего %d)", len(appointments), total)
	}
}

// CreateAppointmentHandler обрабатывает создание записи на прием
func CreateAppointmentHandler(db *sql.DB) http.HandlerFunc {
	repo := database.NewAppointmentRepository(db)

	return func(w http.ResponseWriter, r *http.Request) {
		var appointment database.Appointment
		if err := json.NewDecoder(r.Body).Decode(&appointment); err != nil {
			http.Error(w, "Неверный формат данных приема", http.StatusBadRequest)
			return
		}

		if appointment.PatientID == 0 || appointment.DoctorName == "" || appointment.ScheduledAt.IsZero() {
			http.Error(w, "Отсутствуют обязательные поля (patientId, doctorName, scheduledAt)", http.StatusBadRequest)
			return
		}

		if err := repo.Create(&appointment); err != nil {
			log.Printf("❌ Ошибка при создании записи на прием: %v", err)
			http.Error(w, "Ошибка при создании записи на прием", http.StatusInternalServerError)
			return
		}

		writeDataStatus(w, http.StatusCreated, appointment, 1)
		log.Printf("✅ Создана запись на прием %d для пациента %d", appointment.ID, appointment.PatientID)
	}
}

// UpdateAppointmentStatusHandler обрабатывает смену статуса приема
func UpdateAppointmentStatusHandler(db *sql.DB) http.HandlerFunc {
	repo := database.NewAppointmentRepository(db)

	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.Atoi(mux.Vars(r)["id"])
		if err != nil {
			http.Error(w, "Неверный формат ID приема", http.StatusBadRequest)
			return
		}

		var payload struct {
			Status string `json:"status"`
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil || payload.Status == "" {
			http.Error(w, "Отсутствует обязательное поле status", http.StatusBadRequest)
			return
		}

		if err := repo.UpdateStatus(id, payload.Status); err != nil {
			log.Printf("❌ Ошибка при обновлении статуса приема %d: %v", id, err)
			http.Error(w, "Ошибка при обновлении статуса приема", http.StatusInternalServerError)
			return
		}

		writeData(w, payload, 1)
		log.Printf("✅ Прием %d переведен в статус %q", id, payload.Status)
	}
}
