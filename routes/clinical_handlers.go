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

// CreateVitalsHandler обрабатывает сохранение показателей жизнедеятельности
func CreateVitalsHandler(db *sql.DB) http.HandlerFunc {
	repo := database.NewClinicalRepository(db)

	return func(w http.ResponseWriter, r *http.Request) {
		patientID, err := strconv.Atoi(mux.Vars(r)["id"])
		if err != nil {
			http.Error(w, "Неверный формат ID пациента", http.StatusBadRequest)
			return
		}

		var vitals database.VitalRecord
		if err := json.NewDecoder(r.Body).Decode(&vitals); err != nil {
			http.Error(w, "Неверный формат данных показателей", http.StatusBadRequest)
			return
		}
		vitals.PatientID = patientID

		if err := repo.CreateVitals(&vitals); err != nil {
			log.Printf("❌ Ошибка при сохранении показателей пациента %d: %v", patientID, err)
			http.Error(w, "Ошибка при сохранении показателей", http.StatusInternalServerError)
			return
		}

		writeDataStatus(w, http.StatusCreated, vitals, 1)
		log.Printf("✅ Сохранены показатели пациента %d", patientID)
	}
}

// ListVitalsHandler обрабатывает запросы истории показателей пациента
func ListVitalsHandler(db *sql.DB) http.HandlerFunc {
	repo := database.NewClinicalRepository(db)

	return func(w http.ResponseWriter, r *http.Request) {
		patientID, err := strconv.Atoi(mux.Vars(r)["id"])
		if err != nil {
			http.Error(w, "Неверный формат ID пациента", http.StatusBadRequest)
			return
		}

		limit := clampQueryInt(r, "limit", 20, 1, 100)

		records, total, err := repo.ListVitals(patientID, limit)
		if err != nil {
			log.Printf("❌ Ошибка при запросе показателей пациента %d: %v", patientID, err)
			http.Error(w, "Ошибка при получении показателей", http.StatusInternalServerError)
			return
		}

		writeData(w, records, total)
		log.Printf("✅ Отправлено %d записей показателей пациента %d", len(records), patientID)
	}
}

// CreateLabTestHandler обрабатывает регистрацию лабораторного исследования
func CreateLabTestHandler(db *sql.DB) http.HandlerFunc {
	repo := database.NewClinicalRepository(db)

	return func(w http.ResponseWriter, r *http.Request) {
		patientID, err := strconv.Atoi(mux.Vars(r)["id"])
		if err != nil {
			http.Error(w, "Неверный формат ID пациента", http.StatusBadRequest)
			return
		}

		var test database.LabTest
		if err := json.NewDecoder(r.Body).Decode(&test); err != nil || test.TestName == "" {
			http.Error(w, "Отсутствует обязательное поле testName", http.StatusBadRequest)
			return
		}
		test.PatientID = patientID

		if err := repo.CreateLabTest(&test); err != nil {
			log.Printf("❌ Ошибка при регистрации исследования пациента %d: %v", patientID, err)
			http.Error(w, "Ошибка при регистрации исследования", http.StatusInternalServerError)
			return
		}

		writeDataStatus(w, http.StatusCreated, test, 1)
		log.Printf("✅ Зарегистрировано исследование %d (%s) пациента %d", test.ID, test.TestName, patientID)
	}
}

// ListLabTestsHandler обрабатывает запросы исследований пациента
func ListLabTestsHandler(db *sql.DB) http.HandlerFunc {
	repo := database.NewClinicalRepository(db)

	return func(w http.ResponseWriter, r *http.Request) {
		patientID, err := strconv.Atoi(mux.Vars(r)["id"])
		if err != nil {
			http.Error(w, "Неверный формат ID пациента", http.StatusBadRequest)
			return
		}

		status := r.URL.Query().Get("status")
		limit := clampQueryInt(r, "limit", 20, 1, 100)

		tests, total, err := repo.ListLabTests(patientID, status, limit)
		if err != nil {
			log.Printf("❌ Ошибка при запросе исследований пациента %d: %v", patientID, err)
			http.Error(w, "Ошибка при получении исследований", http.StatusInternalServerError)
			return
		}

		writeData(w, tests, total)
		log.Printf("✅ Отправлено %d исследований пациента %d", len(tests), patientID)
	}
}

// CompleteLabTestHandler обрабатывает фиксацию результата исследования
func CompleteLabTestHandler(db *sql.DB) http.HandlerFunc {
	repo := database.NewClinicalRepository(db)

	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.Atoi(mux.Vars(r)["id"])
		if err != nil {
			http.Error(w, "Неверный формат ID исследования", http.StatusBadRequest)
			return
		}

		var payload struct {
			Result string `json:"result"`
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil || payload.Result == "" {
			http.Error(w, "Отсутствует обязательное поле result", http.StatusBadRequest)
			return
		}

		if err := repo.CompleteLabTest(id, payload.Result); err != nil {
			log.Printf("❌ Ошибка при фиксации результата исследования %d: %v", id, err)
			http.Error(w, "Ошибка при фиксации результата исследования", http.StatusInternalServerError)
			return
		}

		writeData(w, payload, 1)
		log.Printf("✅ Зафиксирован результат исследования %d", id)
	}
}
