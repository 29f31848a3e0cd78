package websocket

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

// Константы WebSocket-соединения
const (
	// Время ожидания записи сообщения клиенту
	writeWait = 10 * time.Second

	// Время ожидания сообщения от клиента
	pongWait = 60 * time.Second

	// Период отправки пинг-сообщений
	pingPeriod = (pongWait * 9) / 10

	// Максимальный размер входящего сообщения
	maxMessageSize = 512 * 1024 // 512KB
)

// Client подключенный клиент панели мониторинга
type Client struct {
	ID     string
	Socket *websocket.Conn
	Send   chan []byte
}

// Hub менеджер WebSocket-подключений панели мониторинга
type Hub struct {
	Clients    map[string]*Client
	Broadcast  chan []byte
	Register   chan *Client
	Unregister chan *Client
}

// Конфигурация WebSocket-соединения
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Разрешаем подключения с любого источника (для разработки)
	},
}
