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

// ListPatientsHandler обрабатывает запросы списка пациентов
func ListPatientsHandler(db *sql.DB) http.HandlerFunc {
	repo := database.NewPatientRepository(db)

	return func(w http.ResponseWriter, r *http.Request) {
		name := r.URL.Query().Get("name")
		limit := clampQueryInt(r, "limit", 20, 1, 100)
		page := clampQueryInt(r, "page", 1, 1, 100000)

		patients, total, err := repo.List(name, limit, (page-1)*limit)
		if err != nil {
			log.Printf("❌ Ошибка при запросе пациентов: %v", err)
			http.Error(w, "Ошибка при получении списка пациентов", http.StatusInternalServerError)
			return
		}

		writeData(w, patients, total)
		log.Printf("✅ Отправлен список из %d пациентов (всего %d)", len(patients), total)
	}
}

// GetPatientHandler обрабатывает запрос карточки пациента
func GetPatientHandler(db *sql.DB) http.HandlerFunc {
	repo := database.NewPatientRepository(db)

	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.Atoi(mux.Vars(r)["id"])
		if err != nil {
			http.Error(w, "Неверный формат ID пациента", http.StatusBadRequest)
			return
		}

		patient, err := repo.GetByID(id)
		if err != nil {
			log.Printf("❌ Ошибка при запросе пациента %d: %v", id, err)
			http.Error(w, "Ошибка при получении данных пациента", http.StatusInternalServerError)
			return
		}
		if patient == nil {
			http.Error(w, "Пациент не найден", http.StatusNotFound)
			return
		}

		writeData(w, patient, 1)
	}
}

// CreatePatientHandler обрабатывает регистрацию пациента
func CreatePatientHandler(db *sql.DB) http.HandlerFunc {
	repo := database.NewPatientRepository(db)

	return func(w http.ResponseWriter, r *http.Request) {
		var patient database.Patient
		if err := json.NewDecoder(r.Body).Decode(&patient); err != nil {
			http.Error(w, "Неверный формат данных пациента", http.StatusBadRequest)
			return
		}

		if patient.FullName == "" {
			http.Error(w, "Отсутствует обязательное поле fullName", http.StatusBadRequest)
			return
		}

		if err := repo.Create(&patient); err != nil {
			log.Printf("❌ Ошибка при регистрации пациента: %v", err)
			http.Error(w, "Ошибка при регистрации пациента", http.StatusInternalServerError)
			return
		}

		writeDataStatus(w, http.StatusCreated, patient, 1)
		log.Printf("✅ Зарегистрирован пациент %d (%s)", patient.ID, patient.FullName)
	}
}

// UpdatePatientHandler обрабатывает обновление данных пациента
func UpdatePatientHandler(db *sql.DB) http.HandlerFunc {
	repo := database.NewPatientRepository(db)

	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.Atoi(mux.Vars(r)["id"])
		if err != nil {
			http.Error(w, "Неверный формат ID пациента", http.StatusBadRequest)
			return
		}

		var patient database.Patient
		if err := json.NewDecoder(r.Body).Decode(&patient); err != nil {
			http.Error(w, "Неверный формат данных пациента", http.StatusBadRequest)
			return
		}
		patient.ID = id

		if err := repo.Update(&patient); err != nil {
			log.Printf("❌ Ошибка при обновлении пациента %d: %v", id, err)
			http.Error(w, "Ошибка при обновлении данных пациента", http.StatusInternalServerError)
			return
		}

		writeData(w, patient, 1)
		log.Printf("✅ Обновлены данные пациента %d", id)
	}
}
