package systems

import (
	"math"

	"github.com/pthm-cable/rigid/components"
	"github.com/pthm-cable/rigid/geom"
)

// Default positional correction constants.
const (
	DefaultCorrectionPercent = 0.4
	DefaultCorrectionSlop    = 0.01
)

// ResolverOptions controls positional correction.
type ResolverOptions struct {
	// Percent is the fraction of the remaining overlap removed per step.
	Percent float64
	// Slop is the overlap left uncorrected, to avoid jitter at rest.
	Slop float64
}

// DefaultResolverOptions returns percent 0.4, slop 0.01.
func DefaultResolverOptions() ResolverOptions {
	return ResolverOptions{Percent: DefaultCorrectionPercent, Slop: DefaultCorrectionSlop}
}

// contactImpulse is an impulse computed for one contact, applied after all
// contacts of the manifold are evaluated.
type contactImpulse struct {
	impulse geom.Vec2
	rA, rB  geom.Vec2 // centre-to-contact radii
}

// ResolveCollision applies normal impulses for every contact of m.
// Contacts where the bodies already separate along the normal, or whose
// effective mass is zero, contribute nothing. It returns the number of
// contacts that received an impulse.
func ResolveCollision(bodies []*components.RigidBody, m *Manifold) int {
	if !m.InCollision || m.ContactCount == 0 {
		return 0
	}
	a, b := bodies[m.A], bodies[m.B]
	n := m.Normal
	contacts := m.Contacts()
	e := math.Min(a.Restitution, b.Restitution)

	var buf [2]contactImpulse
	impulses := buf[:0]

	for _, c := range contacts {
		radiusA := c.Sub(a.Position())
		radiusB := c.Sub(b.Position())
		rA := radiusA.Perp()
		rB := radiusB.Perp()

		velA := a.LinearVelocity.Add(rA.Scale(a.AngularVelocity))
		velB := b.LinearVelocity.Add(rB.Scale(b.AngularVelocity))
		velAlongNormal := velB.Sub(velA).Dot(n)
		if velAlongNormal > 0 {
			continue
		}

		rAn := rA.Dot(n)
		rBn := rB.Dot(n)
		denom := a.InverseMass + b.InverseMass +
			rAn*rAn*a.InverseInertia + rBn*rBn*b.InverseInertia
		if denom <= 0 {
			continue
		}

		j := -(1 + e) * velAlongNormal / denom
		j /= float64(len(contacts))
		impulses = append(impulses, contactImpulse{impulse: n.Scale(j), rA: radiusA, rB: radiusB})
	}

	for _, imp := range impulses {
		a.LinearVelocity = a.LinearVelocity.Sub(imp.impulse.Scale(a.InverseMass))
		b.LinearVelocity = b.LinearVelocity.Add(imp.impulse.Scale(b.InverseMass))
		a.AngularVelocity -= imp.rA.Cross(imp.impulse) * a.InverseInertia
		b.AngularVelocity += imp.rB.Cross(imp.impulse) * b.InverseInertia
	}
	return len(impulses)
}

// CorrectPositions pushes the bodies of m apart along the normal, in
// proportion to their inverse masses, removing Percent of the overlap
// beyond Slop. Static bodies never move.
func CorrectPositions(bodies []*components.RigidBody, m *Manifold, opts ResolverOptions) {
	a, b := bodies[m.A], bodies[m.B]
	invMassSum := a.InverseMass + b.InverseMass
	if invMassSum <= 0 {
		return
	}

	mag := math.Max(m.Penetration-opts.Slop, 0) / invMassSum * opts.Percent
	if mag == 0 {
		return
	}
	correction := m.Normal.Scale(mag)
	if !a.IsStatic {
		a.Translate(correction.Scale(-a.InverseMass))
	}
	if !b.IsStatic {
		b.Translate(correction.Scale(b.InverseMass))
	}
}

// Resolve applies impulses and then positional correction for each
// manifold in order. It returns the total number of contacts that
// received an impulse.
func Resolve(bodies []*components.RigidBody, manifolds []Manifold, opts ResolverOptions) int {
	resolved := 0
	for i := range manifolds {
		m := &manifolds[i]
		if !m.InCollision {
			continue
		}
		resolved += ResolveCollision(bodies, m)
		CorrectPositions(bodies, m, opts)
	}
	return resolved
}
