package overlay

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/ziadkadry99/beyond-scaling/internal/content"
	"github.com/ziadkadry99/beyond-scaling/internal/logging"
	"github.com/ziadkadry99/beyond-scaling/internal/render"
)

// Renderer renders articles and the fullscreen variant of a visualization.
// A RenderFullscreen error that still produced markup (an inline error
// block) is logged, not sent.
type Renderer interface {
	RenderFullscreen(w io.Writer, typeKey string) error
	RenderArticle(articleID, text string) (render.Document, error)
}

// inbound is a client message.
type inbound struct {
	Type        string `json:"type"` // "expand", "dismiss" or "navigate"
	ArticleID   string `json:"article_id"`
	TypeKey     string `json:"type_key"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// outbound is a server message.
type outbound struct {
	Type        string `json:"type"` // "state", "article" or "error"
	SessionID   string `json:"session_id"`
	Showing     bool   `json:"showing"`
	ArticleID   string `json:"article_id,omitempty"`
	TypeKey     string `json:"type_key,omitempty"`
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	HTML        string `json:"html,omitempty"`
	Content     string `json:"content,omitempty"`
}

// Handler serves overlay sessions over websocket. Each connection owns its
// own Controller; closing the connection dismisses it. A navigate message
// naming an article also loads and renders it, latest navigation wins.
type Handler struct {
	renderer Renderer
	source   content.Source
	log      logrus.FieldLogger
	upgrader websocket.Upgrader
}

// NewHandler returns a websocket handler. source may be nil, in which case
// navigation only dismisses. checkOrigin may be nil to accept same-origin
// requests only.
func NewHandler(r Renderer, source content.Source, logger logrus.FieldLogger, checkOrigin func(*http.Request) bool) *Handler {
	return &Handler{
		renderer: r,
		source:   source,
		log:      logging.OrDiscard(logger),
		upgrader: websocket.Upgrader{CheckOrigin: checkOrigin},
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.WithError(err).Warn("overlay: websocket upgrade")
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	s := &session{
		id:       uuid.NewString(),
		ctx:      ctx,
		conn:     conn,
		ctrl:     NewController(),
		renderer: h.renderer,
	}
	if h.source != nil {
		s.loader = content.NewLoader(h.source)
	}
	s.log = h.log.WithField("session_id", s.id)
	s.log.Debug("overlay session opened")

	states, unsubscribe := s.ctrl.Subscribe()
	done := make(chan struct{})
	go func() {
		defer close(done)
		for st := range states {
			s.sendState(st)
		}
	}()

	s.readLoop()

	cancel()
	s.loads.Wait()
	s.ctrl.Dismiss()
	unsubscribe()
	<-done
	s.log.Debug("overlay session closed")
}

type session struct {
	id       string
	ctx      context.Context
	conn     *websocket.Conn
	ctrl     *Controller
	renderer Renderer
	loader   *content.Loader
	log      logrus.FieldLogger

	loads   sync.WaitGroup
	writeMu sync.Mutex
}

func (s *session) readLoop() {
	for {
		_, msg, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.log.WithError(err).Warn("overlay: websocket read")
			}
			return
		}

		var in inbound
		if err := json.Unmarshal(msg, &in); err != nil {
			s.sendError("invalid message format")
			continue
		}

		switch in.Type {
		case "expand":
			if in.TypeKey == "" {
				s.sendError("type_key is required")
				continue
			}
			s.ctrl.Expand(Request{TypeKey: in.TypeKey, Title: in.Title, Description: in.Description})
		case "dismiss":
			s.ctrl.Dismiss()
		case "navigate":
			s.ctrl.Dismiss()
			if in.ArticleID != "" {
				s.navigate(in.ArticleID)
			}
		default:
			s.sendError("unknown message type: " + in.Type)
		}
	}
}

// navigate loads id in the background. A load overtaken by a newer
// navigation sends nothing.
func (s *session) navigate(id string) {
	if s.loader == nil {
		s.sendError("navigation is not available")
		return
	}
	s.loads.Add(1)
	go func() {
		defer s.loads.Done()
		art, err := s.loader.Load(s.ctx, id)
		if errors.Is(err, content.ErrSuperseded) || s.ctx.Err() != nil {
			return
		}
		if err != nil {
			s.log.WithError(err).WithField("article", id).Warn("overlay: article load")
			s.write(outbound{Type: "error", SessionID: s.id, ArticleID: id, Content: err.Error()})
			return
		}
		doc, err := s.renderer.RenderArticle(art.ID, art.Text)
		if err != nil {
			s.write(outbound{Type: "error", SessionID: s.id, ArticleID: id, Content: err.Error()})
			return
		}
		s.write(outbound{Type: "article", SessionID: s.id, ArticleID: id, HTML: doc.HTML})
	}()
}

func (s *session) sendState(st State) {
	out := outbound{Type: "state", SessionID: s.id, Showing: st.Showing}
	if st.Showing {
		out.TypeKey = st.Request.TypeKey
		out.Title = st.Request.Title
		out.Description = st.Request.Description

		var buf bytes.Buffer
		if err := s.renderer.RenderFullscreen(&buf, st.Request.TypeKey); err != nil {
			s.log.WithError(err).WithField("type_key", st.Request.TypeKey).Warn("overlay: fullscreen render")
		}
		out.HTML = buf.String()
	}
	s.write(out)
}

func (s *session) sendError(message string) {
	s.write(outbound{Type: "error", SessionID: s.id, Content: message})
}

func (s *session) write(out outbound) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	if err := s.conn.WriteJSON(out); err != nil {
		s.log.WithError(err).Debug("overlay: websocket write")
	}
}
