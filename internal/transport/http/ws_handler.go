package http

import (
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/LKAC-Leander/boardReview/internal/app"
	"github.com/LKAC-Leander/boardReview/internal/domain"
)

// WSHandler streams quiz-list snapshots to builder clients so the
// saved-quiz dropdown updates without polling.
type WSHandler struct {
	catalog  *app.Catalog
	upgrader websocket.Upgrader
}

func NewWSHandler(catalog *app.Catalog) *WSHandler {
	return &WSHandler{
		catalog: catalog,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

type outboundMessage struct {
	Type    string        `json:"type"`
	Payload []quizSummary `json:"payload"`
}

// ServeWS upgrades the request and pushes a snapshot immediately, then
// again after every persisted mutation until the client disconnects.
func (h *WSHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	updates, cancel, err := h.catalog.Subscribe(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	defer cancel()

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logrus.Errorf("ws upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	// Reader exists only to notice the peer going away; inbound
	// content is ignored.
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case snapshot, ok := <-updates:
			if !ok {
				return
			}
			msg := outboundMessage{Type: "quizzes", Payload: summaries(snapshot)}
			if err := conn.WriteJSON(msg); err != nil {
				logrus.Errorf("ws write error: %v", err)
				return
			}
		case <-closed:
			return
		}
	}
}

func summaries(quizzes []domain.Quiz) []quizSummary {
	out := make([]quizSummary, len(quizzes))
	for i, quiz := range quizzes {
		out[i] = newQuizSummary(quiz)
	}
	return out
}
