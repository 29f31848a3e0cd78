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

// ListInvoicesHandler обрабатывает запросы списка счетов
func ListInvoicesHandler(db *sql.DB) http.HandlerFunc {
	repo := database.NewBillingRepository(db)

	return func(w http.ResponseWriter, r *http.Request) {
		patientID := clampQueryInt(r, "patientId", 0, 0, 1<<31-1)
		status := r.URL.Query().Get("status")
		limit := clampQueryInt(r, "limit", 20, 1, 100)
		page := clampQueryInt(r, "page", 1, 1, 100000)

		invoices, total, err := repo.ListInvoices(patientID, status, limit, (page-1)*limit)
		if err != nil {
			log.Printf("❌ Ошибка при запросе счетов: %v", err)
			http.Error(w, "Ошибка при получении списка счетов", http.StatusInternalServerError)
			return
		}

		writeData(w, invoices, total)
		log.Printf("✅ Отправлен список из %d счетов (всего %d)", len(invoices), total)
	}
}

// CreateInvoiceHandler обрабатывает выставление счета
func CreateInvoiceHandler(db *sql.DB) http.HandlerFunc {
	repo := database.NewBillingRepository(db)

	return func(w http.ResponseWriter, r *http.Request) {
		var invoice database.Invoice
		if err := json.NewDecoder(r.Body).Decode(&invoice); err != nil {
			http.Error(w, "Неверный формат данных счета", http.StatusBadRequest)
			return
		}

		if invoice.PatientID == 0 || len(invoice.Items) == 0 {
			http.Error(w, "Отсутствуют обязательные поля (patientId, items)", http.StatusBadRequest)
			return
		}

		if err := repo.CreateInvoice(&invoice); err != nil {
			log.Printf("❌ Ошибка при выставлении счета: %v", err)
			http.Error(w, "Ошибка при выставлении счета", http.StatusInternalServerError)
			return
		}

		writeDataStatus(w, http.StatusCreated, invoice, 1)
		log.Printf("✅ Выставлен счет %s на сумму %.2f для пациента %d",
			invoice.InvoiceNumber, invoice.TotalAmount, invoice.PatientID)
	}
}

// RecordPaymentHandler обрабатывает фиксацию платежа по счету
func RecordPaymentHandler(db *sql.DB) http.HandlerFunc {
	repo := database.NewBillingRepository(db)

	return func(w http.ResponseWriter, r *http.Request) {
		invoiceID, err := strconv.Atoi(mux.Vars(r)["id"])
		if err != nil {
			http.Error(w, "Неверный формат ID счета", http.StatusBadRequest)
			return
		}

		var payment database.Payment
		if err := json.NewDecoder(r.Body).Decode(&payment); err != nil || payment.Amount <= 0 {
			http.Error(w, "Отсутствует обязательное поле amount", http.StatusBadRequest)
			return
		}
		payment.InvoiceID = invoiceID

		if err := repo.RecordPayment(&payment); err != nil {
			log.Printf("❌ Ошибка при фиксации платежа по счету %d: %v", invoiceID, err)
			http.Error(w, "Ошибка при фиксации платежа", http.StatusInternalServerError)
			return
		}

		writeData(w, payment, 1)
		log.Printf("✅ Зафиксирован платеж %.2f по счету %d", payment.Amount, invoiceID)
	}
}
