// Package pitch converts real-world pitch coordinates (meters) into pixel
// coordinates relative to a measured on-screen pitch rectangle. All
// functions are pure and idempotent so resize signals can re-run them
// without drift.
package pitch

// FIFA-standard pitch dimensions in meters.
const (
	WidthMeters  = 68.0  // across the pitch (x axis)
	LengthMeters = 105.0 // along the pitch (y axis)
)

// Rect is the measured on-screen pitch rectangle in pixels.
type Rect struct {
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// measured reports whether the rectangle has a usable area.
func (r Rect) measured() bool { return r.W > 0 && r.H > 0 }

// Point is a derived pixel position for a slot. X and Y are offsets of the
// marker's top-left corner inside the rectangle such that the marker center
// sits exactly on the mathematical point. Valid is false until the hosting
// container has been measured; callers must tolerate rendering at the zero
// sentinel until the next measurement arrives.
type Point struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Valid bool    `json:"valid"`
}

// ToPixel projects meter coordinates onto rect, compensating for the marker
// footprint. markerPx is the square marker's side in pixels.
func ToPixel(meterX, meterY float64, rect Rect, markerPx float64) Point {
	return ToPixelOffset(meterX, meterY, rect, markerPx, 0, 0)
}

// ToPixelOffset is ToPixel with a per-axis recentering offset in meters,
// used when a formation is drawn with asymmetric padding. The offset is a
// parameter rather than a hidden constant so the math stays testable.
func ToPixelOffset(meterX, meterY float64, rect Rect, markerPx, offsetXMeters, offsetYMeters float64) Point {
	if !rect.measured() {
		return Point{}
	}
	return Point{
		X:     axisPixel(meterX+offsetXMeters, WidthMeters, rect.W, markerPx),
		Y:     axisPixel(meterY+offsetYMeters, LengthMeters, rect.H, markerPx),
		Valid: true,
	}
}

// axisPixel normalizes meters into the unit interval, then scales by the
// usable track. Subtracting (marker/track) x distance keeps the marker
// center on the point at the track extremes instead of letting the marker
// footprint push past the edge.
func axisPixel(meters, spanMeters, trackPx, markerPx float64) float64 {
	n := clamp01(meters / spanMeters)
	distance := n * trackPx
	distance -= (markerPx / trackPx) * distance
	usable := trackPx - markerPx
	if usable < 0 {
		usable = 0
	}
	return clamp(distance, 0, usable)
}

func clamp01(v float64) float64 { return clamp(v, 0, 1) }

func clamp(v, lo, hi float64) float64 {
	switch {
	case v < lo:
		return lo
	case v > hi:
		return hi
	default:
		return v
	}
}
