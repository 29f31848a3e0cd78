package websocket

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/LilVoxy/hospital_management/predictions"
	"github.com/google/uuid"
)

// NewHub создает новый менеджер WebSocket-подключений
func NewHub() *Hub {
	return &Hub{
		Clients:    make(map[string]*Client),
		Broadcast:  make(chan []byte),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
	}
}

// Run запускает цикл обработки подключений и рассылки
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.Register:
			h.Clients[client.ID] = client
			log.Printf("👤 Клиент %s подключился к каналу оповещений", client.ID)

		case client := <-h.Unregister:
			if _, ok := h.Clients[client.ID]; ok {
				delete(h.Clients, client.ID)
				close(client.Send)
				log.Printf("👤 Клиент %s отключился от канала оповещений", client.ID)
			}

		case message := <-h.Broadcast:
			// Рассылаем сообщение всем подключенным клиентам
			for id, client := range h.Clients {
				select {
				case client.Send <- message:
				default:
					// Буфер клиента переполнен — отключаем его
					delete(h.Clients, id)
					close(client.Send)
					log.Printf("⚠️ Клиент %s отключен: переполнен буфер отправки", id)
				}
			}
		}
	}
}

// HandleConnections обрабатывает подключения панели мониторинга
func (h *Hub) HandleConnections(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("❌ Ошибка при установке WebSocket-соединения: %v", err)
		return
	}

	client := &Client{
		ID:     uuid.New().String(),
		Socket: conn,
		Send:   make(chan []byte, 256),
	}

	h.Register <- client

	go client.writePump()
	go client.readPump(h)
}

// BroadcastAlerts отправляет оповещения всем подключенным клиентам.
// Полезная нагрузка сжимается snappy для экономии трафика панели.
func (h *Hub) BroadcastAlerts(alerts []predictions.Alert) {
	if len(alerts) == 0 {
		return
	}

	payload, err := json.Marshal(alerts)
	if err != nil {
		log.Printf("❌ Ошибка при кодировании оповещений: %v", err)
		return
	}

	h.Broadcast <- CompressPayload(payload)
}
