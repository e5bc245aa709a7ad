// Package animation owns the time-indexed view state of the case map: which
// timeline event is current and how much of the trail is revealed, as a pure
// function of an externally driven time value.
package animation

import (
	"math"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/paulmach/orb"

	"chronomap/pkg/model"
)

// Renderer is the rendering collaborator. The controller is its sole caller
// and clears previously emitted animated layers before drawing new ones, so
// implementations never see dangling overlays accumulate.
type Renderer interface {
	AddStaticLayer(geom orb.Geometry, color, popup string)
	AddAnimatedMarker(pt orb.Point, color, popup string)
	DrawTrailPrefix(trail orb.LineString, color string)
	ClearAnimatedLayers()
}

// TimeControl is the external time scrubber. The controller publishes the
// selectable timestamps to it and can read back the currently selected one.
type TimeControl interface {
	SetAvailableTimes(times []time.Time)
	CurrentTime() time.Time
}

// Controller recomputes derived animation state on every time-change
// notification. It has two states: uninitialized until Start, ready after.
// It is driven synchronously from a single notification goroutine and is
// not safe for concurrent use.
type Controller struct {
	events   []model.TimelineEvent // sorted by time, stable
	trail    orb.LineString
	renderer Renderer
	timeCtl  TimeControl

	ready   bool
	current int // index of the current event
}

// New builds a controller over the given event list and trail. Events are
// stable-sorted by timestamp; ties keep their insertion order.
func New(events []model.TimelineEvent, trail orb.LineString, r Renderer, tc TimeControl) *Controller {
	sorted := make([]model.TimelineEvent, len(events))
	copy(sorted, events)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Time.Before(sorted[j].Time)
	})

	return &Controller{
		events:   sorted,
		trail:    trail,
		renderer: r,
		timeCtl:  tc,
	}
}

// Start publishes the available timestamps to the time control, selects the
// first timestamp as the initial current time and renders the first frame.
// It moves the controller from uninitialized to ready.
func (c *Controller) Start() {
	if c.ready {
		return
	}

	times := make([]time.Time, len(c.events))
	for i, e := range c.events {
		times[i] = e.Time
	}
	c.timeCtl.SetAvailableTimes(times)
	c.ready = true

	if len(c.events) > 0 {
		c.OnTimeChanged(c.events[0].Time)
	}
}

// RenderStatic emits every location record as a static layer, colored by the
// name-substring palette. Called once after extraction.
func (c *Controller) RenderStatic(records []model.LocationRecord) {
	for _, rec := range records {
		popup := rec.Name
		if rec.Description != "" {
			popup += "\n" + rec.Description
		}
		c.renderer.AddStaticLayer(rec.Geometry, StaticColor(rec.Name), popup)
	}
}

// OnTimeChanged recomputes the current event and revealed trail prefix for
// the given time and re-emits the animated overlay. Calling it twice with
// the same time produces the same overlay. It returns the declarative
// update handed to the renderer, or nil when the controller is not ready
// or has no events.
func (c *Controller) OnTimeChanged(t time.Time) *model.AnimationUpdate {
	if !c.ready || len(c.events) == 0 {
		return nil
	}

	c.current = c.eventIndexAt(t)
	ev := c.events[c.current]
	prefix := c.trailPrefixAt(t)

	c.renderer.ClearAnimatedLayers()
	color := EventColor(ev.Category)
	c.renderer.AddAnimatedMarker(ev.Point(), color, ev.Label+" - "+ev.Description)
	if len(prefix) >= 2 {
		c.renderer.DrawTrailPrefix(prefix, TrailColor)
	}

	return &model.AnimationUpdate{
		ID:        uuid.NewString(),
		Event:     ev,
		Color:     color,
		TimeLabel: t.Format("3:04 PM"),
		Trail:     prefix,
	}
}

// Refresh re-renders the overlay at the scrubber's currently selected time,
// for example after the static layers were rebuilt underneath it.
func (c *Controller) Refresh() *model.AnimationUpdate {
	if !c.ready {
		return nil
	}
	return c.OnTimeChanged(c.timeCtl.CurrentTime())
}

// CurrentIndex returns the index of the current event in sorted order.
func (c *Controller) CurrentIndex() int { return c.current }

// Events returns the sorted event list.
func (c *Controller) Events() []model.TimelineEvent { return c.events }

// eventIndexAt finds the last event whose timestamp is <= t. Times before
// the first event select the first event.
func (c *Controller) eventIndexAt(t time.Time) int {
	idx := sort.Search(len(c.events), func(i int) bool {
		return c.events[i].Time.After(t)
	}) - 1
	if idx < 0 {
		return 0
	}
	return idx
}

// trailPrefixAt computes the revealed prefix of the trail at time t.
//
// Progress is intentionally NOT clamped to [0,1]: times outside the event
// range clamp the event selection but let the progress arithmetic run free,
// mirroring the reference behavior. The reveal count bottoms out at 1, and
// slicing naturally bounds the prefix at the full trail.
func (c *Controller) trailPrefixAt(t time.Time) orb.LineString {
	if len(c.trail) == 0 {
		return nil
	}

	first := c.events[0].Time
	last := c.events[len(c.events)-1].Time

	progress := 1.0
	if !last.Equal(first) {
		progress = float64(t.Sub(first)) / float64(last.Sub(first))
	}

	reveal := int(math.Floor(float64(len(c.trail)) * progress))
	if reveal < 1 {
		reveal = 1
	}
	if reveal > len(c.trail) {
		reveal = len(c.trail)
	}
	return c.trail[:reveal]
}
