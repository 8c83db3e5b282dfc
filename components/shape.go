package components

import (
	"fmt"
	"math"

	"github.com/pthm-cable/rigid/geom"
)

// NewRegularPolygon builds an n-sided regular polygon of circumscribed
// radius r. Static bodies may pass any mass; it is ignored for dynamics.
func NewRegularPolygon(sides int, radius, mass float64, static bool) *RigidBody {
	if sides < 3 {
		panic(fmt.Sprintf("components: polygon needs at least 3 sides, got %d", sides))
	}
	if radius <= 0 {
		panic(fmt.Sprintf("components: polygon radius must be positive, got %v", radius))
	}
	return newBody(RegularPolygonVertices(sides, radius), radius, mass, static)
}

// NewBox builds an axis-aligned width x height rectangle centred on the origin.
func NewBox(width, height, mass float64, static bool) *RigidBody {
	if width <= 0 || height <= 0 {
		panic(fmt.Sprintf("components: box extents must be positive, got %vx%v", width, height))
	}
	radius := math.Hypot(width, height) / 2
	return newBody(BoxVertices(width, height), radius, mass, static)
}

// NewPolygon builds a body from an arbitrary convex vertex list in any
// winding. The vertices are re-centred on their centroid and rewound
// clockwise.
func NewPolygon(points []geom.Vec2, mass float64, static bool) *RigidBody {
	if len(points) < 3 {
		panic(fmt.Sprintf("components: polygon needs at least 3 vertices, got %d", len(points)))
	}
	area := SignedArea(points)
	if math.Abs(area) < 1e-12 {
		panic("components: polygon has zero area")
	}

	c := Centroid(points)
	local := make([]geom.Vec2, len(points))
	for i, p := range points {
		local[i] = p.Sub(c)
	}
	if area > 0 {
		// counter-clockwise: reverse in place
		for i, j := 0, len(local)-1; i < j; i, j = i+1, j-1 {
			local[i], local[j] = local[j], local[i]
		}
	}

	var radius float64
	for _, p := range local {
		radius = math.Max(radius, p.Length())
	}
	return newBody(local, radius, mass, static)
}

// FromLocalVertices builds a body from vertices that are already centred
// on their centroid and wound clockwise, such as those returned by
// Vertices. The slice is copied unchanged.
func FromLocalVertices(local []geom.Vec2, mass float64, static bool) *RigidBody {
	verts := append([]geom.Vec2(nil), local...)
	var radius float64
	for _, p := range verts {
		radius = math.Max(radius, p.Length())
	}
	return newBody(verts, radius, mass, static)
}

// RegularPolygonVertices returns n vertices of radius r, clockwise, with
// the first vertex pointing straight down (-y).
func RegularPolygonVertices(n int, r float64) []geom.Vec2 {
	if n < 3 {
		return nil
	}
	verts := make([]geom.Vec2, 0, n)
	dTheta := 2 * math.Pi / float64(n)
	start := -math.Pi / 2
	for i := 0; i < n; i++ {
		theta := start - float64(i)*dTheta
		verts = append(verts, geom.Vec2{X: r * math.Cos(theta), Y: r * math.Sin(theta)})
	}
	return verts
}

// BoxVertices returns the four corners of a w x h box, clockwise, starting
// top-left.
func BoxVertices(w, h float64) []geom.Vec2 {
	hw, hh := w/2, h/2
	return []geom.Vec2{
		{X: -hw, Y: hh},
		{X: hw, Y: hh},
		{X: hw, Y: -hh},
		{X: -hw, Y: -hh},
	}
}

// SignedArea returns the polygon's signed area: positive when the points
// wind counter-clockwise, negative when clockwise.
func SignedArea(points []geom.Vec2) float64 {
	var a float64
	for i := range points {
		a += points[i].Cross(points[(i+1)%len(points)])
	}
	return a / 2
}

// Centroid returns the area-weighted centre of a simple polygon.
func Centroid(points []geom.Vec2) geom.Vec2 {
	var c geom.Vec2
	var area float64
	for i := range points {
		p1, p2 := points[i], points[(i+1)%len(points)]
		cross := p1.Cross(p2)
		area += cross
		c = c.Add(p1.Add(p2).Scale(cross))
	}
	if area == 0 {
		return geom.Vec2{}
	}
	return c.Scale(1 / (3 * area))
}

// PolygonInertia returns the moment of inertia of a uniform-density
// polygon of the given mass about the origin. Vertices should be centred
// on the centroid. Either winding is accepted.
func PolygonInertia(points []geom.Vec2, mass float64) float64 {
	if mass <= 0 || len(points) < 3 {
		return 0
	}
	var num, den float64
	for i := range points {
		p1, p2 := points[i], points[(i+1)%len(points)]
		cross := p1.Cross(p2)
		num += cross * (p1.Dot(p1) + p1.Dot(p2) + p2.Dot(p2))
		den += cross
	}
	if den == 0 {
		return 0
	}
	return math.Abs(mass * num / (6 * den))
}

// InverseMass returns 1/m, or 0 for static bodies and non-positive m.
// It is also used for inertia.
func InverseMass(m float64, static bool) float64 {
	if static || m <= 0 {
		return 0
	}
	return 1 / m
}
