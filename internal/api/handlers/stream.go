package handlers

import (
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/wonny/midas/internal/contracts"
	"github.com/wonny/midas/pkg/logger"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	sendBufferSize = 8
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	// 대시보드 오리진 검증은 리버스 프록시에 위임
	CheckOrigin: func(r *http.Request) bool { return true },
}

// streamEvent 스트림으로 내보내는 리포트 요약
type streamEvent struct {
	Type       string          `json:"type"`
	Metal      string          `json:"metal"`
	MetalName  string          `json:"metal_name"`
	Trend      contracts.Trend `json:"trend"`
	Confidence float64         `json:"confidence"`
	Predicted  float64         `json:"predicted_price"`
	ChangePct  float64         `json:"price_change_percent"`
	Timestamp  time.Time       `json:"timestamp"`
}

// Hub 리포트 스트림 허브
// 새로 생성된 리포트 요약을 연결된 모든 클라이언트에 push
// ⭐ SSOT: 웹소켓 연결 관리는 여기서만
type Hub struct {
	mu      sync.RWMutex
	clients map[*client]struct{}
	logger  *logger.Logger
}

type client struct {
	conn *websocket.Conn
	send chan streamEvent
}

// NewHub creates a new report stream hub
func NewHub(log *logger.Logger) *Hub {
	return &Hub{
		clients: make(map[*client]struct{}),
		logger:  log.WithComponent("api.stream"),
	}
}

// PublishReport 리포트 요약을 모든 구독자에게 전달
// 느린 클라이언트는 버퍼가 차면 이벤트를 건너뜀 (연결은 유지)
func (h *Hub) PublishReport(report *contracts.Report) {
	event := streamEvent{
		Type:       "report",
		Metal:      report.Metal,
		MetalName:  report.MetalName,
		Trend:      report.Prediction.Trend,
		Confidence: report.Prediction.Confidence,
		Predicted:  report.Prediction.PredictedPrice,
		ChangePct:  report.Prediction.PriceChangePercent,
		Timestamp:  report.Timestamp,
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for c := range h.clients {
		select {
		case c.send <- event:
		default:
		}
	}
}

// ClientCount 현재 연결 수
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// ServeWS upgrades the connection and subscribes it to report events
// GET /ws/reports
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.WithError(err).Warn("Websocket upgrade failed")
		return
	}

	c := &client{
		conn: conn,
		send: make(chan streamEvent, sendBufferSize),
	}

	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()

	h.logger.WithField("remote", conn.RemoteAddr().String()).Debug("Stream client connected")

	go h.writePump(c)
	go h.readPump(c)
}

func (h *Hub) removeClient(c *client) {
	h.mu.Lock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
	h.mu.Unlock()
	_ = c.conn.Close()
}

// readPump 클라이언트 수신 루프 (컨트롤 프레임 처리 전용)
func (h *Hub) readPump(c *client) {
	defer h.removeClient(c)

	c.conn.SetReadLimit(512)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

// writePump 이벤트 송신 + 주기적 ping
func (h *Hub) writePump(c *client) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case event, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteJSON(event); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
