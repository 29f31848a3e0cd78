package database

import (
	"database/sql"
	"fmt"
	"log"
	"time"
)

// Medicine представляет медикамент аптечного склада
type Medicine struct {
	ID           int       `json:"id"`
	Name         string    `json:"name"`
	Category     string    `json:"category"`
	UnitPrice    float64   `json:"unitPrice"`
	Stock        float64   `json:"stock"`
	ReorderLevel float64   `json:"reorderLevel"`
	CreatedAt    time.Time `json:"createdAt"`
}

// MedicineRepository репозиторий для работы с аптечным складом
type MedicineRepository struct {
	db *sql.DB
}

// NewMedicineRepository создает новый репозиторий медикаментов
func NewMedicineRepository(db *sql.DB) *MedicineRepository {
	return &MedicineRepository{db: db}
}

// Create добавляет новый медикамент на склад
func (r *MedicineRepository) Create(m *Medicine) error {
	result, err := r.db.Exec(`
		INSERT INTO medicines (name, category, unit_price, stock, reorder_level)
		VALUES (?, ?, ?, ?, ?)`,
		m.Name, m.Category, m.UnitPrice, m.Stock, m.ReorderLevel)
	if err != nil {
		return fmt.Errorf("ошибка при добавлении медикамента: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("ошибка при получении ID медикамента: %w", err)
	}
	m.ID = int(id)

	return nil
}

// List возвращает страницу медикаментов; lowStockOnly оставляет только
// позиции с запасом не выше порога дозаказа
func (r *MedicineRepository) List(lowStockOnly bool, limit, offset int) ([]Medicine, int, error) {
	where := ""
	if lowStockOnly {
		where = "WHERE stock <= reorder_level"
	}

	var total int
	err := r.db.QueryRow("SELECT COUNT(*) FROM medicines " + where).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("ошибка при подсчете медикаментов: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT id, name, category, unit_price, stock, reorder_level, created_at
		FROM medicines %s
		ORDER BY name
		LIMIT ? OFFSET ?`, where)

	rows, err := r.db.Query(query, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("ошибка при запросе медикаментов: %w", err)
	}
	defer rows.Close()

	var medicines []Medicine
	for rows.Next() {
		var m Medicine
		if err := rows.Scan(&m.ID, &m.Name, &m.Category, &m.UnitPrice, &m.Stock, &m.ReorderLevel, &m.CreatedAt); err != nil {
			log.Printf("❌ Ошибка при сканировании медикамента: %v", err)
			continue
		}
		medicines = append(medicines, m)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("ошибка при итерации по медикаментам: %w", err)
	}

	return medicines, total, nil
}

// UpdateStock устанавливает новый уровень запаса (приемка поставки, инвентаризация)
func (r *MedicineRepository) UpdateStock(id int, stock float64) error {
	if stock < 0 {
		return fmt.Errorf("запас не может быть отрицательным: %v", stock)
	}

	result, err := r.db.Exec(`UPDATE medicines SET stock = ? WHERE id = ?`, stock, id)
	if err != nil {
		return fmt.Errorf("ошибка при обновлении запаса медикамента %d: %w", id, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("ошибка при проверке обновления медикамента %d: %w", id, err)
	}
	if affected == 0 {
		return fmt.Errorf("медикамент %d не найден", id)
	}

	return nil
}

// Dispense выдает медикамент пациенту: списывает запас и фиксирует выдачу
// в одной транзакции. Выдача сверх остатка не допускается.
func (r *MedicineRepository) Dispense(medicineID, patientID int, quantity float64) error {
	if quantity <= 0 {
		return fmt.Errorf("количество выдачи должно быть положительным: %v", quantity)
	}

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("не удалось начать транзакцию: %w", err)
	}

	var stock float64
	err = tx.QueryRow(`SELECT stock FROM medicines WHERE id = ? FOR UPDATE`, medicineID).Scan(&stock)
	if err == sql.ErrNoRows {
		tx.Rollback()
		return fmt.Errorf("медикамент %d не найден", medicineID)
	}
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("ошибка при проверке запаса медикамента %d: %w", medicineID, err)
	}

	if stock < quantity {
		tx.Rollback()
		return fmt.Errorf("недостаточный запас медикамента %d: есть %v, запрошено %v", medicineID, stock, quantity)
	}

	if _, err := tx.Exec(`UPDATE medicines SET stock = stock - ? WHERE id = ?`, quantity, medicineID); err != nil {
		tx.Rollback()
		return fmt.Errorf("ошибка при списании запаса медикамента %d: %w", medicineID, err)
	}

	if _, err := tx.Exec(`
		INSERT INTO medicine_dispenses (medicine_id, patient_id, quantity)
		VALUES (?, ?, ?)`, medicineID, patientID, quantity); err != nil {
		tx.Rollback()
		return fmt.Errorf("ошибка при фиксации выдачи медикамента %d: %w", medicineID, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("не удалось зафиксировать транзакцию выдачи: %w", err)
	}

	return nil
}
