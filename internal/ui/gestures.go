package ui

import (
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/mobile"
	"fyne.io/fyne/v2/widget"
)

// GestureType represents different types of gestures
type GestureType int

const (
	GestureTap GestureType = iota
	GestureSwipeLeft
	GestureSwipeRight
	GestureSwipeUp
	GestureSwipeDown
	GestureLongPress
)

// String returns the string representation of GestureType
func (g GestureType) String() string {
	switch g {
	case GestureTap:
		return "tap"
	case GestureSwipeLeft:
		return "swipe_left"
	case GestureSwipeRight:
		return "swipe_right"
	case GestureSwipeUp:
		return "swipe_up"
	case GestureSwipeDown:
		return "swipe_down"
	case GestureLongPress:
		return "long_press"
	default:
		return "unknown"
	}
}

// Gesture thresholds constants
const (
	DefaultSwipeThreshold    float32 = 50.0
	DefaultLongPressDuration         = 500 * time.Millisecond
)

// GestureHandler classifies a touch from its start and end points
type GestureHandler struct {
	onGesture func(GestureType)

	// Touch tracking
	touchStartTime time.Time
	touchStartPos  fyne.Position
	tracking       bool

	// Gesture thresholds
	swipeThreshold    float32
	longPressDuration time.Duration

	now func() time.Time
}

// NewGestureHandler creates a new gesture handler
func NewGestureHandler(onGesture func(GestureType)) *GestureHandler {
	return &GestureHandler{
		onGesture:         onGesture,
		swipeThreshold:    DefaultSwipeThreshold,
		longPressDuration: DefaultLongPressDuration,
		now:               time.Now,
	}
}

// Begin starts tracking a touch at pos
func (gh *GestureHandler) Begin(pos fyne.Position) {
	gh.touchStartTime = gh.now()
	gh.touchStartPos = pos
	gh.tracking = true
}

// End finishes the touch at pos and fires the detected gesture
func (gh *GestureHandler) End(pos fyne.Position) {
	if !gh.tracking {
		return
	}
	gh.tracking = false
	gh.triggerGesture(gh.classify(pos, gh.now().Sub(gh.touchStartTime)))
}

// Cancel drops the touch being tracked
func (gh *GestureHandler) Cancel() {
	gh.tracking = false
	gh.touchStartTime = time.Time{}
}

func (gh *GestureHandler) classify(end fyne.Position, duration time.Duration) GestureType {
	dx := end.X - gh.touchStartPos.X
	dy := end.Y - gh.touchStartPos.Y

	// Squared distance against the squared threshold
	if dx*dx+dy*dy >= gh.swipeThreshold*gh.swipeThreshold {
		return swipeDirection(dx, dy)
	}
	if duration >= gh.longPressDuration {
		return GestureLongPress
	}
	return GestureTap
}

// swipeDirection determines the direction of a swipe gesture
func swipeDirection(dx, dy float32) GestureType {
	absDx := dx
	if absDx < 0 {
		absDx = -absDx
	}
	absDy := dy
	if absDy < 0 {
		absDy = -absDy
	}

	if absDx > absDy {
		if dx > 0 {
			return GestureSwipeRight
		}
		return GestureSwipeLeft
	}
	if dy > 0 {
		return GestureSwipeDown
	}
	return GestureSwipeUp
}

// triggerGesture triggers a gesture callback
func (gh *GestureHandler) triggerGesture(gesture GestureType) {
	if gh.onGesture != nil {
		gh.onGesture(gesture)
	}
}

// SwipeArea wraps content and reports swipes made with touches on mobile
// or with mouse drags on desktop.
type SwipeArea struct {
	widget.BaseWidget

	content fyne.CanvasObject
	handler *GestureHandler

	dragStart fyne.Position
	dragLast  fyne.Position
	dragging  bool
}

var (
	_ mobile.Touchable = (*SwipeArea)(nil)
	_ fyne.Draggable   = (*SwipeArea)(nil)
)

// NewSwipeArea creates a swipe area around content
func NewSwipeArea(content fyne.CanvasObject, onGesture func(GestureType)) *SwipeArea {
	sa := &SwipeArea{
		content: content,
		handler: NewGestureHandler(onGesture),
	}
	sa.ExtendBaseWidget(sa)
	return sa
}

// TouchDown handles touch down events
func (sa *SwipeArea) TouchDown(event *mobile.TouchEvent) {
	sa.handler.Begin(event.Position)
}

// TouchUp handles touch up events
func (sa *SwipeArea) TouchUp(event *mobile.TouchEvent) {
	sa.handler.End(event.Position)
}

// TouchCancel handles touch cancel events
func (sa *SwipeArea) TouchCancel(*mobile.TouchEvent) {
	sa.handler.Cancel()
}

// Dragged tracks a mouse drag
func (sa *SwipeArea) Dragged(event *fyne.DragEvent) {
	if !sa.dragging {
		sa.dragging = true
		sa.dragStart = event.Position.Subtract(event.Dragged)
		sa.handler.Begin(sa.dragStart)
	}
	sa.dragLast = event.Position
}

// DragEnd finishes a mouse drag
func (sa *SwipeArea) DragEnd() {
	if !sa.dragging {
		return
	}
	sa.dragging = false
	sa.handler.End(sa.dragLast)
}

// CreateRenderer creates the widget renderer
func (sa *SwipeArea) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(sa.content)
}
