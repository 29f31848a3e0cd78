package database

import (
	"database/sql"
	"fmt"
	"log"
	"time"
)

// Статусы лабораторных исследований
const (
	LabTestPending   = "pending"
	LabTestCompleted = "completed"
)

// VitalRecord запись показателей жизнедеятельности пациента
type VitalRecord struct {
	ID          int       `json:"id"`
	PatientID   int       `json:"patientId"`
	Temperature float64   `json:"temperature"`
	Pulse       int       `json:"pulse"`
	Systolic    int       `json:"systolic"`
	Diastolic   int       `json:"diastolic"`
	RecordedAt  time.Time `json:"recordedAt"`
}

// LabTest лабораторное исследование
type LabTest struct {
	ID        int       `json:"id"`
	PatientID int       `json:"patientId"`
	TestName  string    `json:"testName"`
	Result    string    `json:"result"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

// ClinicalRepository репозиторий клинических записей
type ClinicalRepository struct {
	db *sql.DB
}

// NewClinicalRepository создает новый репозиторий клинических записей
func NewClinicalRepository(db *sql.DB) *ClinicalRepository {
	return &ClinicalRepository{db: db}
}

// CreateVitals сохраняет показатели жизнедеятельности
func (r *ClinicalRepository) CreateVitals(v *VitalRecord) error {
	result, err := r.db.Exec(`
		INSERT INTO vital_records (patient_id, temperature, pulse, systolic, diastolic)
		VALUES (?, ?, ?, ?, ?)`,
		v.PatientID, v.Temperature, v.Pulse, v.Systolic, v.Diastolic)
	if err != nil {
		return fmt.Errorf("ошибка при сохранении показателей: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("ошибка при получении ID записи показателей: %w", err)
	}
	v.ID = int(id)

	return nil
}

// ListVitals возвращает показатели пациента в обратном хронологическом порядке
func (r *ClinicalRepository) ListVitals(patientID, limit int) ([]VitalRecord, int, error) {
	var total int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM vital_records WHERE patient_id = ?`, patientID).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("ошибка при подсчете записей показателей: %w", err)
	}

	rows, err := r.db.Query(`
		SELECT id, patient_id, temperature, pulse, systolic, diastolic, recorded_at
		FROM vital_records
		WHERE patient_id = ?
		ORDER BY recorded_at DESC
		LIMIT ?`, patientID, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("ошибка при запросе показателей: %w", err)
	}
	defer rows.Close()

	var records []VitalRecord
	for rows.Next() {
		var v VitalRecord
		if err := rows.Scan(&v.ID, &v.PatientID, &v.Temperature, &v.Pulse, &v.Systolic, &v.Diastolic, &v.RecordedAt); err != nil {
			log.Printf("❌ Ошибка при сканировании показателей: %v", err)
			continue
		}
		records = append(records, v)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("ошибка при итерации по показателям: %w", err)
	}

	return records, total, nil
}

// CreateLabTest регистрирует лабораторное исследование со статусом pending
func (r *ClinicalRepository) CreateLabTest(t *LabTest) error {
	t.Status = LabTestPending

	result, err := r.db.Exec(`
		INSERT INTO lab_tests (patient_id, test_name, result, status)
		VALUES (?, ?, '', ?)`,
		t.PatientID, t.TestName, t.Status)
	if err != nil {
		return fmt.Errorf("ошибка при регистрации исследования: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("ошибка при получении ID исследования: %w", err)
	}
	t.ID = int(id)

	return nil
}

// CompleteLabTest фиксирует результат исследования
func (r *ClinicalRepository) CompleteLabTest(id int, testResult string) error {
	result, err := r.db.Exec(`
		UPDATE lab_tests SET result = ?, status = ? WHERE id = ?`,
		testResult, LabTestCompleted, id)
	if err != nil {
		return fmt.Errorf("ошибка при фиксации результата исследования %d: %w", id, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("ошибка при проверке обновления исследования %d: %w", id, err)
	}
	if affected == 0 {
		return fmt.Errorf("исследование %d не найдено", id)
	}

	return nil
}

// ListLabTests возвращает исследования пациента; пустой status отключает фильтр
func (r *ClinicalRepository) ListLabTests(patientID int, status string, limit int) ([]LabTest, int, error) {
	where := "WHERE patient_id = ? AND (? = '' OR status = ?)"
	args := []interface{}{patientID, status, status}

	var total int
	err := r.db.QueryRow("SELECT COUNT(*) FROM lab_tests "+where, args...).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("ошибка при подсчете исследований: %w", err)
	}

	rows, err := r.db.Query(`
		SELECT id, patient_id, test_name, result, status, created_at
		FROM lab_tests `+where+`
		ORDER BY created_at DESC
		LIMIT ?`, append(args, limit)...)
	if err != nil {
		return nil, 0, fmt.Errorf("ошибка при запросе исследований: %w", err)
	}
	defer rows.Close()

	var tests []LabTest
	for rows.Next() {
		var t LabTest
		if err := rows.Scan(&t.ID, &t.PatientID, &t.TestName, &t.Result, &t.Status, &t.CreatedAt); err != nil {
			log.Printf("❌ Ошибка при сканировании исследования: %v", err)
			continue
		}
		tests = append(tests, t)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("ошибка при итерации по исследованиям: %w", err)
	}

	return tests, total, nil
}
