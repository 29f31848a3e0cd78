package database

import (
	"database/sql"
	"fmt"
	"log"
	"time"
)

// Допустимые статусы приема
const (
	AppointmentScheduled = "scheduled"
	AppointmentCompleted = "completed"
	AppointmentCancelled = "cancelled"
)

// Appointment представляет запись на прием
type Appointment struct {
	ID          int       `json:"id"`
	PatientID   int       `json:"patientId"`
	DoctorName  string    `json:"doctorName"`
	ScheduledAt time.Time `json:"scheduledAt"`
	Status      string    `json:"status"`
	Notes       string    `json:"notes"`
	CreatedAt   time.Time `json:"createdAt"`
}

// AppointmentRepository репозиторий для работы с приемами
type AppointmentRepository struct {
	db *sql.DB
}

// NewAppointmentRepository создает новый репозиторий приемов
func NewAppointmentRepository(db *sql.DB) *AppointmentRepository {
	return &AppointmentRepository{db: db}
}

// Create создает новую запись на прием со статусом scheduled
func (r *AppointmentRepository) Create(a *Appointment) error {
	a.Status = AppointmentScheduled

	result, err := r.db.Exec(`
		INSERT INTO appointments (patient_id, doctor_name, scheduled_at, status, notes)
		VALUES (?, ?, ?, ?, ?)`,
		a.PatientID, a.DoctorName, a.ScheduledAt, a.Status, a.Notes)
	if err != nil {
		return fmt.Errorf("ошибка при создании записи на прием: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("ошибка при получении ID записи: %w", err)
	}
	a.ID = int(id)

	return nil
}

// List возвращает страницу приемов с фильтрами по пациенту и статусу.
// Нулевой patientID и пустой status отключают соответствующий фильтр.
func (r *AppointmentRepository) List(patientID int, status string, limit, offset int) ([]Appointment, int, error) {
	where := "WHERE (? = 0 OR patient_id = ?) AND (? = '' OR status = ?)"
	args := []interface{}{patientID, patientID, status, status}

	var total int
	err := r.db.QueryRow("SELECT COUNT(*) FROM appointments "+where, args...).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("ошибка при подсчете приемов: %w", err)
	}

	query := `
		SELECT id, patient_id, doctor_name, scheduled_at, status, notes, created_at
		FROM appointments ` + where + `
		ORDER BY scheduled_at DESC
		LIMIT ? OFFSET ?`

	rows, err := r.db.Query(query, append(args, limit, offset)...)
	if err != nil {
		return nil, 0, fmt.Errorf("ошибка при запросе приемов: %w", err)
	}
	defer rows.Close()

	var appointments []Appointment
	for rows.Next() {
		var a Appointment
		if err := rows.Scan(&a.ID, &a.PatientID, &a.DoctorName, &a.ScheduledAt, &a.Status, &a.Notes, &a.CreatedAt); err != nil {
			log.Printf("❌ Ошибка при сканировании приема: %v", err)
			continue
		}
		appointments = append(appointments, a)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("ошибка при итерации по приемам: %w", err)
	}

	return appointments, total, nil
}

// UpdateStatus переводит прием в новый статус
func (r *AppointmentRepository) UpdateStatus(id int, status string) error {
	if status != AppointmentCompleted && status != AppointmentCancelled && status != AppointmentScheduled {
		return fmt.Errorf("недопустимый статус приема: %q", status)
	}

	result, err := r.db.Exec(`UPDATE appointments SET status = ? WHERE id = ?`, status, id)
	if err != nil {
		return fmt.Errorf("ошибка при обновлении статуса приема %d: %w", id, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("ошибка при проверке обновления приема %d: %w", id, err)
	}
	if affected == 0 {
		return fmt.Errorf("прием %d не найден", id)
	}

	return nil
}
