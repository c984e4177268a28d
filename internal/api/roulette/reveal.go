package roulette

import (
	"net/http"
	"time"

	"roulette_casino/internal/converter"
	"roulette_casino/pkg/logger"

	"github.com/gorilla/websocket"
)

const (
	writeWait  = 5 * time.Second
	pingPeriod = 30 * time.Second
	frameBuf   = 64
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Reveal websocket с кадрами показа и комментариями крупье
func (h *Handler) Reveal(w http.ResponseWriter, r *http.Request) {
	// Подписываемся до рукопожатия, чтобы клиент не пропустил первые кадры
	frames, stopFrames := h.serv.Reveals(frameBuf)
	defer stopFrames()
	comments, stopComments := h.serv.Comments(4)
	defer stopComments()

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Error("reveal upgrade: %v", err)
		return
	}
	defer conn.Close()

	// Читаем только ради close/pong от клиента
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ping := time.NewTicker(pingPeriod)
	defer ping.Stop()

	for {
		var msg interface{}
		select {
		case <-closed:
			return
		case <-r.Context().Done():
			return
		case f, ok := <-frames:
			if !ok {
				return
			}
			msg = converter.ToFrameMessage(f)
		case c, ok := <-comments:
			if !ok {
				return
			}
			msg = converter.ToCommentMessage(c)
		case <-ping.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				return
			}
			continue
		}

		conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteJSON(msg); err != nil {
			logger.Debug("reveal write: %v", err)
			return
		}
	}
}
