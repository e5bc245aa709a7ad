package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"chronomap/pkg/animation"
	"chronomap/pkg/logging"
	"chronomap/pkg/model"
)

// AnimationHandler runs one animation controller per websocket connection.
// The browser scrubber reports time changes; the controller's renderer calls
// are forwarded as declarative messages the page applies verbatim.
type AnimationHandler struct {
	events   []model.TimelineEvent
	trail    orb.LineString
	records  []model.LocationRecord
	upgrader websocket.Upgrader
}

// NewAnimationHandler creates the handler over the immutable dataset.
func NewAnimationHandler(events []model.TimelineEvent, trail orb.LineString, records []model.LocationRecord) *AnimationHandler {
	return &AnimationHandler{
		events:  events,
		trail:   trail,
		records: records,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			// The page is served from the same origin.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// clientMessage is what the scrubber sends.
type clientMessage struct {
	Type string `json:"type"`
	MS   int64  `json:"ms"` // milliseconds since epoch for "time"
}

// HandleWS upgrades the connection and drives a controller until the client
// disconnects. All controller work happens synchronously on this read loop;
// there is no other writer on the connection.
// GET /api/animation/ws
func (h *AnimationHandler) HandleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Error("websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	session := newWSSession(conn)
	ctrl := animation.New(h.events, h.trail, session, session)
	ctrl.RenderStatic(h.records)
	ctrl.Start()
	if session.err != nil {
		slog.Warn("animation session ended during start", "error", session.err)
		return
	}

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				slog.Warn("animation session read error", "error", err)
			}
			return
		}

		var msg clientMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			slog.Warn("ignoring malformed client message", "error", err)
			continue
		}
		var update *model.AnimationUpdate
		switch msg.Type {
		case "time":
			session.current = time.UnixMilli(msg.MS).UTC()
			update = ctrl.OnTimeChanged(session.current)
		case "refresh":
			update = ctrl.Refresh()
		default:
			continue
		}
		if update != nil {
			logging.TraceDefault("animation frame", "id", update.ID, "label", update.TimeLabel, "trail", len(update.Trail))
		}
		if session.err != nil {
			slog.Warn("animation session write error", "error", session.err)
			return
		}
	}
}

// wsSession adapts a websocket connection to the renderer and time-control
// interfaces. Every renderer call becomes one message; the first write error
// sticks and ends the session.
type wsSession struct {
	conn    *websocket.Conn
	current time.Time
	err     error
}

func newWSSession(conn *websocket.Conn) *wsSession {
	return &wsSession{conn: conn}
}

func (s *wsSession) write(v any) {
	if s.err != nil {
		return
	}
	s.err = s.conn.WriteJSON(v)
}

// SetAvailableTimes publishes the scrubber stops as epoch milliseconds. The
// first stop becomes the initial current time.
func (s *wsSession) SetAvailableTimes(times []time.Time) {
	if len(times) > 0 {
		s.current = times[0]
	}
	ms := make([]int64, len(times))
	for i, t := range times {
		ms[i] = t.UnixMilli()
	}
	s.write(map[string]any{"type": "times", "times": ms})
}

// CurrentTime reports the scrubber position as of the last client message.
func (s *wsSession) CurrentTime() time.Time {
	return s.current
}

func (s *wsSession) ClearAnimatedLayers() {
	s.write(map[string]any{"type": "clear"})
}

// AddAnimatedMarker sends the current-event marker. Coordinates go out as
// lat/lng, the order the map library expects.
func (s *wsSession) AddAnimatedMarker(pt orb.Point, color, popup string) {
	s.write(map[string]any{
		"type":  "marker",
		"lat":   pt.Lat(),
		"lng":   pt.Lon(),
		"color": color,
		"popup": popup,
	})
}

// DrawTrailPrefix sends the revealed trail as [lat,lng] pairs.
func (s *wsSession) DrawTrailPrefix(trail orb.LineString, color string) {
	points := make([][2]float64, len(trail))
	for i, pt := range trail {
		points[i] = [2]float64{pt.Lat(), pt.Lon()}
	}
	s.write(map[string]any{
		"type":   "trail",
		"points": points,
		"color":  color,
	})
}

// AddStaticLayer sends a static feature with its geometry as GeoJSON. The
// GET /api/map/locations endpoint serves the same layers with richer
// properties for non-interactive consumers.
func (s *wsSession) AddStaticLayer(geom orb.Geometry, color, popup string) {
	s.write(map[string]any{
		"type":     "static",
		"geometry": geojson.NewGeometry(geom),
		"color":    color,
		"popup":    popup,
	})
}
