package shadows

// CasterConfig holds the cone and reach used to compute a visibility fan
type CasterConfig struct {
	FOV     float32 // Half-angle of the cone in radians
	Epsilon float32 // Rotation applied to the corner disambiguation rays
	Reach   float32 // Far distance, must exceed the map diagonal
	Nudge   float32 // Apex offset along the facing direction
}

// DefaultCasterConfig returns the reference cone for a map of the given size
func DefaultCasterConfig(width, height int) CasterConfig {
	w := float32(width)
	h := float32(height)
	return CasterConfig{
		FOV:     0.5,
		Epsilon: Epsilon,
		Reach:   sqrtf(w*w + h*h),
		Nudge:   20 * 0.75,
	}
}

// Stats are per-frame diagnostics of the last Cast call
type Stats struct {
	Walls   int // Walls offered to the caster
	Visible int // Walls that survived the broad phase
	Rays    int // Points in the fan, apex included
	Steps   int // Work counter: corner tests, sort shifts and clip tests
}

// Caster computes visibility fans. It owns a ray buffer that is truncated and
// refilled on every call, so the slice returned by Cast is only valid until
// the next call. A Caster is not safe for concurrent use.
type Caster struct {
	cfg    CasterConfig
	rays   []Point
	subset []Rect
	from   Point
	to     Point
	stats  Stats
}

// NewCaster creates a caster with a small initial ray buffer
func NewCaster(cfg CasterConfig) *Caster {
	return &Caster{
		cfg:  cfg,
		rays: make([]Point, 0, 1<<5),
	}
}

// Config returns the cone configuration
func (c *Caster) Config() CasterConfig {
	return c.cfg
}

// Stats returns the diagnostics of the last Cast
func (c *Caster) Stats() Stats {
	return c.stats
}

// Apex returns the fan apex of the last Cast
func (c *Caster) Apex() Point {
	return c.from
}

// Forward returns the far point on the facing axis of the last Cast
func (c *Caster) Forward() Point {
	return c.to
}

// VisiblePolygon computes a fan for a single viewpoint without keeping a caster around.
// The returned slice is owned by the caller.
func VisiblePolygon(walls []Rect, position Point, direction float32, cfg CasterConfig) []Point {
	fan := NewCaster(cfg).Cast(walls, position, direction)
	out := make([]Point, len(fan))
	copy(out, fan)
	return out
}

func (c *Caster) withinFOV(p Point) bool {
	radians := SignedAngle(c.from, c.to, p)
	return -c.cfg.FOV < radians && radians < c.cfg.FOV
}

// Cast returns the visibility fan seen from position facing direction. The
// first point is the apex; the rest are sorted by signed angle from the facing
// axis, starting at the right cone edge and ending at the left one. Walls
// without area do not occlude.
func (c *Caster) Cast(walls []Rect, position Point, direction float32) []Point {
	fov := c.cfg.FOV
	reach := c.cfg.Reach

	c.from = Rotate(position, Point{X: position.X + c.cfg.Nudge, Y: position.Y}, direction)
	c.to = Rotate(position, Point{X: position.X + reach, Y: position.Y}, direction)

	right := Rotate(c.from, c.to, -fov)
	left := Rotate(c.from, c.to, fov)

	bounds := TriangleBounds([3]Point{c.from, left, right})

	c.stats = Stats{Walls: len(walls)}
	c.rays = c.rays[:0]
	c.subset = c.subset[:0]

	c.rays = append(c.rays, c.from, right)

	for _, wall := range walls {
		if !wall.Valid() || NoOverlap(bounds, wall) {
			continue
		}
		c.subset = append(c.subset, wall)

		for _, corner := range wall.Corners() {
			if !c.withinFOV(corner) {
				c.stats.Steps++
				continue
			}
			c.rays = append(c.rays, corner)

			// Rays grazing either side of the corner decide whether the near
			// or the far face is seen; a single ray through the corner cannot.
			if ray := Extend(c.from, Rotate(c.from, corner, -c.cfg.Epsilon), reach); c.withinFOV(ray) {
				c.rays = append(c.rays, ray)
			}
			if ray := Extend(c.from, Rotate(c.from, corner, c.cfg.Epsilon), reach); c.withinFOV(ray) {
				c.rays = append(c.rays, ray)
			}
			c.stats.Steps += 3
		}
	}

	c.sortRays()

	c.rays = append(c.rays, left)

	c.clip()

	c.stats.Visible = len(c.subset)
	c.stats.Rays = len(c.rays)
	return c.rays
}

// sortRays is a stable insertion sort on the recomputed signed angle. The
// apex at index 0 never moves.
func (c *Caster) sortRays() {
	for i := 1; i < len(c.rays); i++ {
		ray := c.rays[i]
		radians := SignedAngle(c.from, c.to, ray)

		j := i
		for ; 1 < j && radians < SignedAngle(c.from, c.to, c.rays[j-1]); j-- {
			c.rays[j] = c.rays[j-1]
			c.stats.Steps++
		}
		c.rays[j] = ray
	}
}

// clip pulls every ray inside a wall's angular span back to its nearest
// crossing with that wall. Rays only ever get shorter, so processing order
// across walls does not matter.
func (c *Caster) clip() {
	for _, wall := range c.subset {
		corners := wall.Corners()

		lo := SignedAngle(c.from, c.to, corners[0])
		hi := lo
		for _, corner := range corners[1:] {
			candidate := SignedAngle(c.from, c.to, corner)
			lo = min(lo, candidate)
			hi = max(hi, candidate)
		}

		for j := 1; j < len(c.rays); j++ {
			radians := SignedAngle(c.from, c.to, c.rays[j])
			if radians < lo {
				continue
			}
			if hi < radians {
				break
			}

			ray := &c.rays[j]
			IntersectsAt(c.from, *ray, corners[0], corners[1], ray)
			IntersectsAt(c.from, *ray, corners[1], corners[2], ray)
			IntersectsAt(c.from, *ray, corners[2], corners[3], ray)
			IntersectsAt(c.from, *ray, corners[3], corners[0], ray)

			c.stats.Steps += 4
		}
	}
}
