package database

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
)

// Статусы счетов
const (
	InvoicePending   = "pending"
	InvoicePaid      = "paid"
	InvoiceCancelled = "cancelled"
)

// InvoiceItem позиция счета
type InvoiceItem struct {
	ID          int     `json:"id"`
	InvoiceID   int     `json:"invoiceId"`
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
}

// Invoice счет за оказанные услуги
type Invoice struct {
	ID            int           `json:"id"`
	InvoiceNumber string        `json:"invoiceNumber"`
	PatientID     int           `json:"patientId"`
	TotalAmount   float64       `json:"totalAmount"`
	Status        string        `json:"status"`
	Items         []InvoiceItem `json:"items,omitempty"`
	CreatedAt     time.Time     `json:"createdAt"`
}

// Payment платеж по счету
type Payment struct {
	ID        int       `json:"id"`
	InvoiceID int       `json:"invoiceId"`
	Amount    float64   `json:"amount"`
	Method    string    `json:"method"`
	PaidAt    time.Time `json:"paidAt"`
}

// BillingRepository репозиторий для работы со счетами и платежами
type BillingRepository struct {
	db *sql.DB
}

// NewBillingRepository создает новый репозиторий биллинга
func NewBillingRepository(db *sql.DB) *BillingRepository {
	return &BillingRepository{db: db}
}

// CreateInvoice выставляет счет с позициями в одной транзакции.
// Итоговая сумма рассчитывается из позиций, номер счета генерируется.
func (r *BillingRepository) CreateInvoice(inv *Invoice) error {
	if len(inv.Items) == 0 {
		return fmt.Errorf("счет должен содержать хотя бы одну позицию")
	}

	total := 0.0
	for _, item := range inv.Items {
		if item.Amount < 0 {
			return fmt.Errorf("позиция счета не может иметь отрицательную сумму: %v", item.Amount)
		}
		total += item.Amount
	}

	inv.InvoiceNumber = uuid.New().String()
	inv.TotalAmount = total
	inv.Status = InvoicePending

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("не удалось начать транзакцию: %w", err)
	}

	result, err := tx.Exec(`
		INSERT INTO invoices (invoice_number, patient_id, total_amount, status)
		VALUES (?, ?, ?, ?)`,
		inv.InvoiceNumber, inv.PatientID, inv.TotalAmount, inv.Status)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("ошибка при создании счета: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("ошибка при получении ID счета: %w", err)
	}
	inv.ID = int(id)

	stmt, err := tx.Prepare(`INSERT INTO invoice_items (invoice_id, description, amount) VALUES (?, ?, ?)`)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("не удалось подготовить запрос позиций: %w", err)
	}
	defer stmt.Close()

	for i := range inv.Items {
		inv.Items[i].InvoiceID = inv.ID
		if _, err := stmt.Exec(inv.ID, inv.Items[i].Description, inv.Items[i].Amount); err != nil {
			tx.Rollback()
			return fmt.Errorf("ошибка при добавлении позиции счета: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("не удалось зафиксировать транзакцию счета: %w", err)
	}

	return nil
}

// RecordPayment фиксирует платеж; при полном погашении счет помечается оплаченным
func (r *BillingRepository) RecordPayment(p *Payment) error {
	if p.Amount <= 0 {
		return fmt.Errorf("сумма платежа должна быть положительной: %v", p.Amount)
	}

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("не удалось начать транзакцию: %w", err)
	}

	var total float64
	var status string
	err = tx.QueryRow(`SELECT total_amount, status FROM invoices WHERE id = ? FOR UPDATE`, p.InvoiceID).
		Scan(&total, &status)
	if err == sql.ErrNoRows {
		tx.Rollback()
		return fmt.Errorf("счет %d не найден", p.InvoiceID)
	}
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("ошибка при проверке счета %d: %w", p.InvoiceID, err)
	}

	if status == InvoiceCancelled {
		tx.Rollback()
		return fmt.Errorf("счет %d отменен, платеж невозможен", p.InvoiceID)
	}

	result, err := tx.Exec(`
		INSERT INTO payments (invoice_id, amount, method)
		VALUES (?, ?, ?)`, p.InvoiceID, p.Amount, p.Method)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("ошибка при фиксации платежа: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("ошибка при получении ID платежа: %w", err)
	}
	p.ID = int(id)

	// Сумма всех платежей по счету, включая только что добавленный
	var paid float64
	err = tx.QueryRow(`SELECT IFNULL(SUM(amount), 0) FROM payments WHERE invoice_id = ?`, p.InvoiceID).Scan(&paid)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("ошибка при подсчете платежей по счету %d: %w", p.InvoiceID, err)
	}

	if paid >= total {
		if _, err := tx.Exec(`UPDATE invoices SET status = ? WHERE id = ?`, InvoicePaid, p.InvoiceID); err != nil {
			tx.Rollback()
			return fmt.Errorf("ошибка при обновлении статуса счета %d: %w", p.InvoiceID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("не удалось зафиксировать транзакцию платежа: %w", err)
	}

	return nil
}

// ListInvoices возвращает страницу счетов с фильтрами по пациенту и статусу
func (r *BillingRepository) ListInvoices(patientID int, status string, limit, offset int) ([]Invoice, int, error) {
	where := "WHERE (? = 0 OR patient_id = ?) AND (? = '' OR status = ?)"
	args := []interface{}{patientID, patientID, status, status}

	var total int
	err := r.db.QueryRow("SELECT COUNT(*) FROM invoices "+where, args...).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("ошибка при подсчете счетов: %w", err)
	}

	query := `
		SELECT id, invoice_number, patient_id, total_amount, status, created_at
		FROM invoices ` + where + `
		ORDER BY created_at DESC
		LIMIT ? OFFSET ?`

	rows, err := r.db.Query(query, append(args, limit, offset)...)
	if err != nil {
		return nil, 0, fmt.Errorf("ошибка при запросе счетов: %w", err)
	}
	defer rows.Close()

	var invoices []Invoice
	for rows.Next() {
		var inv Invoice
		if err := rows.Scan(&inv.ID, &inv.InvoiceNumber, &inv.PatientID, &inv.TotalAmount, &inv.Status, &inv.CreatedAt); err != nil {
			log.Printf("❌ Ошибка при сканировании счета: %v", err)
			continue
		}
		invoices = append(invoices, inv)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("ошибка при итерации по счетам: %w", err)
	}

	return invoices, total, nil
}
