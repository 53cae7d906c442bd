package server

import (
	"bytes"
	"io"
	"net/http"
	"time"
	"unicode/utf8"

	"github.com/go-chi/chi"
	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"
)

// maxCloseReason is the longest reason that fits a close frame.
const maxCloseReason = 123

// stream runs one encoder or decoder over a websocket connection. Every message is one feed, an
// empty message finishes the stream and the server answers with a normal close. Output is sent
// after every feed: encoded output as text messages (binary when it is not valid UTF-8), decoded
// output as binary messages. A failure closes the connection with `1007` and the error text.
// A message larger than the body limit closes it with `1009`. When the peer closes first the
// stream is abandoned: the final output is logged and dropped.
func (h *codecHandler) stream(w http.ResponseWriter, r *http.Request) {
	op := chi.URLParam(r, "op")
	if op != "encode" && op != "decode" {
		http.Error(w, "Unknown operation: "+op, http.StatusNotFound)
		return
	}
	e, opts, ok := h.prepare(w, r)
	if !ok {
		return
	}

	out := &bytes.Buffer{}
	var wc io.WriteCloser
	var err error
	if op == "encode" {
		wc, err = e.NewEncoder(out, opts)
	} else {
		wc, err = e.NewDecoder(out, opts)
	}
	if err != nil {
		writeError(w, err)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.WithError(err).Errorf("Socket upgrade failed: %+v", err)
		return
	}
	defer func() {
		if err := conn.Close(); err != nil {
			log.WithError(err).Tracef("Could not close websocket: %v", err)
		}
	}()
	if h.maxBody > 0 {
		conn.SetReadLimit(h.maxBody)
	}

	log.Debugf("Websocket %s %v [%v] started", op, e.Name(), opts)
	s := &wsSession{conn: conn, out: out, encode: op == "encode"}

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Debugf("Websocket closed by peer before finishing")
			} else {
				log.WithError(err).Warnf("Websocket read failed: %v", err)
			}
			s.abandon(wc)
			return
		}

		if len(data) == 0 {
			if err := wc.Close(); err != nil {
				s.fail(err)
				return
			}
			if err := s.flush(); err != nil {
				return
			}
			s.close(websocket.CloseNormalClosure, "")
			return
		}

		if _, err := wc.Write(data); err != nil {
			s.fail(err)
			return
		}
		if err := s.flush(); err != nil {
			return
		}
	}
}

type wsSession struct {
	conn   *websocket.Conn
	out    *bytes.Buffer
	encode bool
}

func (s *wsSession) flush() error {
	if s.out.Len() == 0 {
		return nil
	}
	messageType := websocket.BinaryMessage
	if s.encode && utf8.Valid(s.out.Bytes()) {
		messageType = websocket.TextMessage
	}
	err := s.conn.WriteMessage(messageType, s.out.Bytes())
	s.out.Reset()
	if err != nil {
		log.WithError(err).Warnf("Websocket write failed: %v", err)
	}
	return err
}

// abandon finishes wc after the connection is gone and reports what could not be delivered.
func (s *wsSession) abandon(wc io.WriteCloser) {
	if err := wc.Close(); err != nil {
		log.WithError(err).Infof("Websocket stream abandoned, input was incomplete: %v", err)
		return
	}
	if n := s.out.Len(); n > 0 {
		log.Infof("Websocket stream abandoned, discarding %d bytes of final output", n)
		s.out.Reset()
	}
}

func (s *wsSession) fail(err error) {
	log.WithError(err).Debugf("Websocket stream failed: %v", err)
	reason := err.Error()
	if len(reason) > maxCloseReason {
		reason = reason[:maxCloseReason]
	}
	s.close(websocket.CloseInvalidFramePayloadData, reason)
}

func (s *wsSession) close(code int, reason string) {
	msg := websocket.FormatCloseMessage(code, reason)
	if err := s.conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(time.Second)); err != nil {
		log.WithError(err).Tracef("Could not send close frame: %v", err)
	}
}
