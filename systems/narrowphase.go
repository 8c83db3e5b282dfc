package systems

import (
	"math"

	"github.com/pthm-cable/rigid/components"
	"github.com/pthm-cable/rigid/geom"
)

// Manifold is the result of a narrow-phase test between bodies A and B.
// Normal is a unit vector pointing from A toward B.
type Manifold struct {
	A, B         components.Handle
	Normal       geom.Vec2
	Contact1     geom.Vec2
	Contact2     geom.Vec2
	ContactCount int
	Penetration  float64
	InCollision  bool
}

// Contacts returns the manifold's contact points.
func (m *Manifold) Contacts() []geom.Vec2 {
	switch m.ContactCount {
	case 0:
		return nil
	case 1:
		return []geom.Vec2{m.Contact1}
	default:
		return []geom.Vec2{m.Contact1, m.Contact2}
	}
}

// axisResult records the best (least penetration) axis found so far.
type axisResult struct {
	depth  float64
	normal geom.Vec2 // outward normal of the winning edge
	refA   bool      // winning edge belongs to A
}

// SATCollision tests two convex polygons with valid world-space caches
// using the separating axis theorem. A and B in the result are left zero;
// callers working with handles fill them in.
func SATCollision(a, b *components.RigidBody) Manifold {
	va, vb := a.WorldVertices(), b.WorldVertices()

	best := axisResult{depth: math.Inf(1)}
	if !testEdges(va, vb, true, &best) {
		return Manifold{}
	}
	if !testEdges(vb, va, false, &best) {
		return Manifold{}
	}

	m := Manifold{
		InCollision: true,
		Penetration: best.depth,
		Normal:      best.normal,
	}
	if b.Position().Sub(a.Position()).Dot(m.Normal) < 0 {
		m.Normal = m.Normal.Neg()
	}

	// The winning axis may be the face turned away from the other body when
	// opposite faces tie, so the reference face is picked by direction.
	ref, inc, dir := va, vb, m.Normal
	if !best.refA {
		ref, inc, dir = vb, va, m.Normal.Neg()
	}
	refEdge := referenceEdge(ref, dir)
	m.setContacts(ref, inc, refEdge, edgeNormal(ref, refEdge))
	return m
}

// referenceEdge returns the edge of poly whose outward normal is most
// aligned with dir.
func referenceEdge(poly []geom.Vec2, dir geom.Vec2) int {
	idx := 0
	maxDot := math.Inf(-1)
	for i := range poly {
		if d := edgeNormal(poly, i).Dot(dir); d > maxDot {
			maxDot = d
			idx = i
		}
	}
	return idx
}

// testEdges projects both polygons onto the outward normal of each edge
// of poly. It returns false as soon as a separating axis is found.
// Ties keep the first axis seen.
func testEdges(poly, other []geom.Vec2, refA bool, best *axisResult) bool {
	n := len(poly)
	for i := 0; i < n; i++ {
		axis := edgeNormal(poly, i)
		if axis.Eq(geom.Vec2{}) {
			continue
		}

		minP, maxP := project(poly, axis)
		minO, maxO := project(other, axis)
		if maxP < minO || maxO < minP {
			return false
		}

		depth := math.Min(maxP-minO, maxO-minP)
		if depth < best.depth {
			*best = axisResult{depth: depth, normal: axis, refA: refA}
		}
	}
	return true
}

// edgeNormal returns the outward unit normal of edge i (vertex i to i+1)
// of a clockwise polygon.
func edgeNormal(poly []geom.Vec2, i int) geom.Vec2 {
	e := poly[(i+1)%len(poly)].Sub(poly[i])
	return e.Perp().Normalize()
}

// project returns the interval of poly's vertices along axis.
func project(poly []geom.Vec2, axis geom.Vec2) (lo, hi float64) {
	lo = math.Inf(1)
	hi = math.Inf(-1)
	for _, v := range poly {
		d := v.Dot(axis)
		lo = math.Min(lo, d)
		hi = math.Max(hi, d)
	}
	return lo, hi
}

// setContacts clips the incident edge against the side planes of the
// reference edge and keeps the points behind the reference face. When
// clipping leaves nothing, the incident vertex deepest along refNormal is
// used as a single contact.
func (m *Manifold) setContacts(ref, inc []geom.Vec2, refEdge int, refNormal geom.Vec2) {
	v1 := ref[refEdge]
	v2 := ref[(refEdge+1)%len(ref)]

	incEdge := incidentEdge(inc, refNormal)
	seg := [2]geom.Vec2{inc[incEdge], inc[(incEdge+1)%len(inc)]}

	side := v2.Sub(v1).Normalize()
	k := clipSegment(&seg, 2, side.Neg(), -side.Dot(v1))
	k = clipSegment(&seg, k, side, side.Dot(v2))
	refC := refNormal.Dot(v1)
	for _, p := range seg[:k] {
		if refNormal.Dot(p)-refC <= 0 {
			m.addContact(p)
		}
	}

	if m.ContactCount == 0 {
		m.addContact(deepestVertex(inc, refNormal))
	}
}

func (m *Manifold) addContact(p geom.Vec2) {
	switch m.ContactCount {
	case 0:
		m.Contact1 = p
	case 1:
		m.Contact2 = p
	default:
		return
	}
	m.ContactCount++
}

// incidentEdge returns the edge of poly whose outward normal is most
// anti-parallel to n.
func incidentEdge(poly []geom.Vec2, n geom.Vec2) int {
	idx := 0
	minDot := math.Inf(1)
	for i := range poly {
		d := edgeNormal(poly, i).Dot(n)
		if d < minDot {
			minDot = d
			idx = i
		}
	}
	return idx
}

// clipSegment keeps those of the first k points of seg where n·p <= c.
// When k is 2 and the segment crosses the plane, the crossing point
// replaces the outside endpoint. It returns the number of points left,
// packed at the front of seg.
func clipSegment(seg *[2]geom.Vec2, k int, n geom.Vec2, c float64) int {
	var d [2]float64
	var out [2]geom.Vec2
	kept := 0
	for i := 0; i < k; i++ {
		d[i] = n.Dot(seg[i]) - c
		if d[i] <= 0 {
			out[kept] = seg[i]
			kept++
		}
	}
	if k == 2 && d[0]*d[1] < 0 {
		alpha := d[0] / (d[0] - d[1])
		out[kept] = seg[0].Add(seg[1].Sub(seg[0]).Scale(alpha))
		kept++
	}

	*seg = out
	return kept
}

// deepestVertex returns the vertex of poly with the smallest projection
// on n, i.e. the furthest point into the reference body.
func deepestVertex(poly []geom.Vec2, n geom.Vec2) geom.Vec2 {
	best := poly[0]
	bestD := best.Dot(n)
	for _, v := range poly[1:] {
		if d := v.Dot(n); d < bestD {
			best, bestD = v, d
		}
	}
	return best
}

// Collide runs the SAT test for one pair and tags the result with its handles.
func Collide(bodies []*components.RigidBody, p Pair) Manifold {
	m := SATCollision(bodies[p.A], bodies[p.B])
	m.A, m.B = p.A, p.B
	return m
}

// NarrowPhase tests every pair and returns the colliding manifolds in pair
// order. When pool is non-nil and there are enough pairs, the SAT tests
// run on the pool's workers; they only read body state.
func NarrowPhase(dst []Manifold, bodies []*components.RigidBody, pairs []Pair, pool *NarrowPool) []Manifold {
	dst = dst[:0]
	if len(pairs) == 0 {
		return dst
	}

	if pool != nil && len(pairs) >= pool.threshold {
		results := pool.run(bodies, pairs)
		for i := range results {
			if results[i].InCollision {
				dst = append(dst, results[i])
			}
		}
		return dst
	}

	for _, p := range pairs {
		if m := Collide(bodies, p); m.InCollision {
			dst = append(dst, m)
		}
	}
	return dst
}
