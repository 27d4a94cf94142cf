// synapse/controllers/widget.go
package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"github.com/coder/websocket"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"synapse/synapse/config"
	"synapse/synapse/services/harvester"
	"synapse/synapse/services/widget"
	"synapse/synapse/utils/logging"
	"synapse/synapse/utils/types"
)

// Harvester runs the one-shot page harvest for a session.
type Harvester interface {
	Run(ctx context.Context, page harvester.Page) (types.HarvestReport, error)
}

// WidgetController drives one intention bar per websocket connection.
type WidgetController struct {
	searcher    widget.Searcher
	harvester   Harvester
	opts        widget.Options
	maxSnapshot int64
}

func NewWidgetController(searcher widget.Searcher, h Harvester, opts widget.Options) *WidgetController {
	return &WidgetController{searcher: searcher, harvester: h, opts: opts, maxSnapshot: config.DefaultMaxSnapshotBytes}
}

// WithMaxSnapshotBytes sets the largest message a session reads. Values
// below one keep the default.
func (c *WidgetController) WithMaxSnapshotBytes(n int64) *WidgetController {
	if n > 0 {
		c.maxSnapshot = n
	}
	return c
}

// Session is the server half of one loaded page.
type Session struct {
	ID          string
	bar         *widget.Bar
	harvester   Harvester
	harvestOnce sync.Once
	harvestDone chan struct{}
	log         *zap.Logger
}

// wsRenderer pushes every panel state to the browser.
type wsRenderer struct {
	ctx  context.Context
	conn *websocket.Conn
	log  *zap.Logger
}

func (r *wsRenderer) Render(p widget.Panel) {
	body, err := widget.RenderHTML(p)
	if err != nil {
		logging.ErrorLogger.Error("render panel", zap.Error(err))
		body, p.Visible = "", false
	}
	msg, _ := json.Marshal(types.PanelMessage{Type: types.MessagePanel, Visible: p.Visible, HTML: body})
	if err := r.conn.Write(r.ctx, websocket.MessageText, msg); err != nil {
		r.log.Info("panel write failed", zap.Error(err))
	}
}

// Serve runs the session until the connection closes or ctx ends.
func (c *WidgetController) Serve(ctx context.Context, conn *websocket.Conn) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	conn.SetReadLimit(c.maxSnapshot)

	s := c.NewSession(ctx, &wsRenderer{ctx: ctx, conn: conn, log: logging.AppLogger})
	defer s.Close()
	s.log.Info("widget session opened")

	// the script sizes its load message from this
	hello, _ := json.Marshal(types.HelloMessage{Type: types.MessageHello, MaxSnapshotBytes: c.maxSnapshot})
	if err := conn.Write(ctx, websocket.MessageText, hello); err != nil {
		return err
	}

	for {
		typ, data, err := conn.Read(ctx)
		if err != nil {
			if websocket.CloseStatus(err) == websocket.StatusNormalClosure || websocket.CloseStatus(err) == websocket.StatusGoingAway || errors.Is(err, context.Canceled) {
				s.log.Info("widget session closed")
				return nil
			}
			return err
		}
		if typ != websocket.MessageText {
			conn.Close(websocket.StatusUnsupportedData, "unsupported data")
			return nil
		}
		var msg types.ClientMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			s.log.Info("ignoring malformed widget message", zap.Error(err))
			continue
		}
		s.Handle(ctx, msg)
	}
}

func (c *WidgetController) NewSession(ctx context.Context, r widget.Renderer) *Session {
	id := uuid.NewString()
	log := logging.AppLogger.With(zap.String("session_id", id))
	return &Session{
		ID:          id,
		bar:         widget.NewBar(logging.WithTraceID(ctx, id), c.searcher, r, c.opts).WithLogger(log),
		harvester:   c.harvester,
		harvestDone: make(chan struct{}),
		log:         log,
	}
}

// Handle applies one client message. Only the first load harvests.
func (s *Session) Handle(ctx context.Context, msg types.ClientMessage) {
	switch msg.Type {
	case types.MessageInput:
		s.bar.Input(msg.Value)
	case types.MessageClickOutside:
		s.bar.ClickOutside()
	case types.MessageLoad:
		s.harvestOnce.Do(func() {
			page := harvester.Page{URL: msg.URL, HTML: msg.HTML}
			if page.HTML == "" {
				s.log.Info("load without snapshot, fetching page", zap.String("url", page.URL))
			}
			go func() {
				defer close(s.harvestDone)
				if s.harvester == nil {
					return
				}
				// failures are logged by the harvester
				s.harvester.Run(logging.WithTraceID(ctx, s.ID), page)
			}()
		})
	default:
		s.log.Info("unknown widget message", zap.String("type", msg.Type))
	}
}

// HarvestDone is closed once the session's harvest has finished.
func (s *Session) HarvestDone() <-chan struct{} {
	return s.harvestDone
}

func (s *Session) Bar() *widget.Bar {
	return s.bar
}

func (s *Session) Close() {
	s.bar.Close()
}
