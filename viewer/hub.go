package viewer

import (
	"Frustals/misc"
	"Frustals/pixel"
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/BrugadaSyndrome/bslogger"
	"github.com/coder/websocket"
)

const writeTimeout = 5 * time.Second

type subscriber struct {
	frames chan []byte
}

// Hub fans frames out to every connected websocket. Slow clients skip frames, they always
// get the latest one.
type Hub struct {
	last        []byte
	logger      bslogger.Logger
	mutex       sync.Mutex
	subscribers map[*subscriber]struct{}

	// OriginPatterns are the accepted cross origin hosts, see websocket.AcceptOptions
	OriginPatterns []string
}

func NewHub() *Hub {
	return &Hub{
		logger:      misc.NewLogger("Hub", nil),
		subscribers: make(map[*subscriber]struct{}),
	}
}

// Publish encodes the frame and queues it for every subscriber
func (h *Hub) Publish(frame *pixel.Buffer) {
	message := EncodeFrame(frame)

	h.mutex.Lock()
	defer h.mutex.Unlock()
	h.last = message
	for s := range h.subscribers {
		select {
		case s.frames <- message:
		default:
			// Replace the frame the client did not get to yet
			select {
			case <-s.frames:
			default:
			}
			s.frames <- message
		}
	}
}

func (h *Hub) Subscribers() int {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	return len(h.subscribers)
}

// subscribe registers a subscriber which immediately gets the last published frame
func (h *Hub) subscribe() *subscriber {
	s := &subscriber{frames: make(chan []byte, 1)}
	h.mutex.Lock()
	defer h.mutex.Unlock()
	h.subscribers[s] = struct{}{}
	if h.last != nil {
		s.frames <- h.last
	}
	return s
}

func (h *Hub) unsubscribe(s *subscriber) {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	delete(h.subscribers, s)
}

func (h *Hub) accept(w http.ResponseWriter, r *http.Request) (*websocket.Conn, error) {
	return websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: h.OriginPatterns,
	})
}

// stream writes frames to conn until ctx is done or a write fails
func (h *Hub) stream(ctx context.Context, conn *websocket.Conn) error {
	s := h.subscribe()
	defer h.unsubscribe(s)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case message := <-s.frames:
			writeCtx, cancel := context.WithTimeout(ctx, writeTimeout)
			err := conn.Write(writeCtx, websocket.MessageBinary, message)
			cancel()
			if err != nil {
				return err
			}
		}
	}
}

// Handler serves a read only frame stream
func (h *Hub) Handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := h.accept(w, r)
		if err != nil {
			h.logger.Warningf("Unable to accept websocket: %s", err)
			return
		}
		defer conn.CloseNow()
		h.logger.Infof("Viewer joined: %s", r.RemoteAddr)

		// Anything the client sends closes the stream
		ctx := conn.CloseRead(r.Context())
		err = h.stream(ctx, conn)
		if err != nil && !errors.Is(err, context.Canceled) && websocket.CloseStatus(err) == -1 {
			h.logger.Warningf("Viewer %s dropped: %s", r.RemoteAddr, err)
		}
		h.logger.Infof("Viewer left: %s", r.RemoteAddr)
		conn.Close(websocket.StatusNormalClosure, "")
	}
}
