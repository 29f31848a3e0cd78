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

// ListMedicinesHandler обрабатывает запросы списка медикаментов
func ListMedicinesHandler(db *sql.DB) http.HandlerFunc {
	repo := database.NewMedicineRepository(db)

	return func(w http.ResponseWriter, r *http.Request) {
		lowStockOnly := r.URL.Query().Get("lowStock") == "true"
		limit := clampQueryInt(r, "limit", 20, 1, 100)
		page := clampQueryInt(r, "page", 1, 1, 100000)

		medicines, total, err := repo.List(lowStockOnly, limit, (page-1)*limit)
		if err != nil {
			log.Printf("❌ Ошибка при запросе медикаментов: %v", err)
			http.Error(w, "Ошибка при получении списка медикаментов", http.StatusInternalServerError)
			return
		}

		writeData(w, medicines, total)
		log.Printf("✅ Отправлен список из %d медикаментов (всего %d)", len(medicines), total)
	}
}

// CreateMedicineHandler обрабатывает добавление медикамента на склад
func CreateMedicineHandler(db *sql.DB) http.HandlerFunc {
	repo := database.NewMedicineRepository(db)

	return func(w http.ResponseWriter, r *http.Request) {
		var medicine database.Medicine
		if err := json.NewDecoder(r.Body).Decode(&medicine); err != nil {
			http.Error(w, "Неверный формат данных медикамента", http.StatusBadRequest)
			return
		}

		if medicine.Name == "" {
			http.Error(w, "Отсутствует обязательное поле name", http.StatusBadRequest)
			return
		}

		if err := repo.Create(&medicine); err != nil {
			log.Printf("❌ Ошибка при добавлении медикамента: %v", err)
			http.Error(w, "Ошибка при добавлении медикамента", http.StatusInternalServerError)
			return
		}

		writeDataStatus(w, http.StatusCreated, medicine, 1)
		log.Printf("✅ Добавлен медикамент %d (%s)", medicine.ID, medicine.Name)
	}
}

// UpdateMedicineStockHandler обрабатывает установку уровня запаса
func UpdateMedicineStockHandler(db *sql.DB) http.HandlerFunc {
	repo := database.NewMedicineRepository(db)

	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.Atoi(mux.Vars(r)["id"])
		if err != nil {
			http.Error(w, "Неверный формат ID медикамента", http.StatusBadRequest)
			return
		}

		var payload struct {
			Stock float64 `json:"stock"`
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			http.Error(w, "Неверный формат данных запаса", http.StatusBadRequest)
			return
		}

		if err := repo.UpdateStock(id, payload.Stock); err != nil {
			log.Printf("❌ Ошибка при обновлении запаса медикамента %d: %v", id, err)
			http.Error(w, "Ошибка при обновлении запаса", http.StatusInternalServerError)
			return
		}

		writeData(w, payload, 1)
		log.Printf("✅ Обновлен запас медикамента %d: %v ед.", id, payload.Stock)
	}
}

// DispenseMedicineHandler обрабатывает выдачу медикамента пациенту
func DispenseMedicineHandler(db *sql.DB) http.HandlerFunc {
	repo := database.NewMedicineRepository(db)

	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.Atoi(mux.Vars(r)["id"])
		if err != nil {
			http.Error(w, "Неверный формат ID медикамента", http.StatusBadRequest)
			return
		}

		var payload struct {
			PatientID int     `json:"patientId"`
			Quantity  float64 `json:"quantity"`
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil || payload.PatientID == 0 || payload.Quantity <= 0 {
			http.Error(w, "Отсутствуют обязательные поля (patientId, quantity)", http.StatusBadRequest)
			return
		}

		if err := repo.Dispense(id, payload.PatientID, payload.Quantity); err != nil {
			log.Printf("❌ Ошибка при выдаче медикамента %d: %v", id, err)
			http.Error(w, "Ошибка при выдаче медикамента", http.StatusInternalServerError)
			return
		}

		writeData(w, payload, 1)
		log.Printf("✅ Выдано %v ед. медикамента %d пациенту %d", payload.Quantity, id, payload.PatientID)
	}
}
