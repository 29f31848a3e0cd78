package database

import (
	"database/sql"
	"fmt"
	"log"
	"time"
)

// Patient представляет пациента больницы
type Patient struct {
	ID        int       `json:"id"`
	FullName  string    `json:"fullName"`
	BirthDate time.Time `json:"birthDate"`
	Gender    string    `json:"gender"`
	Phone     string    `json:"phone"`
	Address   string    `json:"address"`
	CreatedAt time.Time `json:"createdAt"`
}

// PatientRepository репозиторий для работы с пациентами
type PatientRepository struct {
	db *sql.DB
}

// NewPatientRepository создает новый репозиторий пациентов
func NewPatientRepository(db *sql.DB) *PatientRepository {
	return &PatientRepository{db: db}
}

// Create регистрирует нового пациента
func (r *PatientRepository) Create(p *Patient) error {
	result, err := r.db.Exec(`
		INSERT INTO patients (full_name, birth_date, gender, phone, address)
		VALUES (?, ?, ?, ?, ?)`,
		p.FullName, p.BirthDate, p.Gender, p.Phone, p.Address)
	if err != nil {
		return fmt.Errorf("ошибка при регистрации пациента: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("ошибка при получении ID пациента: %w", err)
	}
	p.ID = int(id)

	return nil
}

// GetByID возвращает пациента по идентификатору
func (r *PatientRepository) GetByID(id int) (*Patient, error) {
	var p Patient
	err := r.db.QueryRow(`
		SELECT id, full_name, birth_date, gender, phone, address, created_at
		FROM patients
		WHERE id = ?`, id).
		Scan(&p.ID, &p.FullName, &p.BirthDate, &p.Gender, &p.Phone, &p.Address, &p.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("ошибка при запросе пациента %d: %w", id, err)
	}
	return &p, nil
}

// List возвращает страницу пациентов с фильтром по имени и общее количество
func (r *PatientRepository) List(nameFilter string, limit, offset int) ([]Patient, int, error) {
	pattern := "%" + nameFilter + "%"

	var total int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM patients WHERE full_name LIKE ?`, pattern).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("ошибка при подсчете пациентов: %w", err)
	}

	rows, err := r.db.Query(`
		SELECT id, full_name, birth_date, gender, phone, address, created_at
		FROM patients
		WHERE full_name LIKE ?
		ORDER BY full_name
		LIMIT ? OFFSET ?`, pattern, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("ошибка при запросе пациентов: %w", err)
	}
	defer rows.Close()

	var patients []Patient
	for rows.Next() {
		var p Patient
		if err := rows.Scan(&p.ID, &p.FullName, &p.BirthDate, &p.Gender, &p.Phone, &p.Address, &p.CreatedAt); err != nil {
			log.Printf("❌ Ошибка при сканировании пациента: %v", err)
			continue
		}
		patients = append(patients, p)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("ошибка при итерации по пациентам: %w", err)
	}

	return patients, total, nil
}

// Update обновляет данные пациента
func (r *PatientRepository) Update(p *Patient) error {
	result, err := r.db.Exec(`
		UPDATE patients
		SET full_name = ?, birth_date = ?, gender = ?, phone = ?, address = ?
		WHERE id = ?`,
		p.FullName, p.BirthDate, p.Gender, p.Phone, p.Address, p.ID)
	if err != nil {
		return fmt.Errorf("ошибка при обновлении пациента %d: %w", p.ID, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("ошибка при проверке обновления пациента %d: %w", p.ID, err)
	}
	if affected == 0 {
		return fmt.Errorf("пациент %d не найден", p.ID)
	}

	return nil
}
