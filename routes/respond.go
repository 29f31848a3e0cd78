package routes

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
)

// Meta метаданные ответа API
type Meta struct {
	Total int `json:"total"`
}

// Envelope стандартный конверт ответа API для списочных данных
type Envelope struct {
	Data interface{} `json:"data"`
	Meta Meta        `json:"meta"`
}

// writeData кодирует данные в стандартный конверт {"data": ..., "meta": {"total": N}}
func writeData(w http.ResponseWriter, data interface{}, total int) {
	writeDataStatus(w, http.StatusOK, data, total)
}

// writeDataStatus кодирует данные в стандартный конверт с указанным кодом ответа
func writeDataStatus(w http.ResponseWriter, status int, data interface{}, total int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(Envelope{Data: data, Meta: Meta{Total: total}}); err != nil {
		log.Printf("❌ Ошибка при кодировании JSON: %v", err)
	}
}

// clampQueryInt читает числовой параметр запроса и молча приводит его к
// допустимому диапазону. Отсутствующее или нечисловое значение заменяется
// значением по умолчанию — клиент никогда не получает отказ из-за границ.
func clampQueryInt(r *http.Request, name string, def, min, max int) int {
	value := def
	if raw := r.URL.Query().Get(name); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			value = parsed
		}
	}
	if value < min {
		value = min
	}
	if value > max {
		value = max
	}
	return value
}
