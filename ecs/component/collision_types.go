package component

import "strings"

// CollisionType is a bit set of collision tags. A shape belongs to a
// collision set when its tags contain every tag the set requires.
type CollisionType uint32

const (
	CollisionSolid CollisionType = 1 << iota
	CollisionMobile
	CollisionAttack
	CollisionVulnerable
	CollisionShield
	CollisionRegion
	CollisionProjectile
	CollisionWall
	CollisionItem
	CollisionCollector
)

var collisionTypeNames = []struct {
	t    CollisionType
	name string
}{
	{CollisionSolid, "solid"},
	{CollisionMobile, "mobile"},
	{CollisionAttack, "attack"},
	{CollisionVulnerable, "vulnerable"},
	{CollisionShield, "shield"},
	{CollisionRegion, "region"},
	{CollisionProjectile, "projectile"},
	{CollisionWall, "wall"},
	{CollisionItem, "item"},
	{CollisionCollector, "collector"},
}

// Has reports whether every tag in other is also in t.
func (t CollisionType) Has(other CollisionType) bool {
	return t&other == other
}

// Any reports whether t and other share at least one tag.
func (t CollisionType) Any(other CollisionType) bool {
	return t&other != 0
}

func (t CollisionType) String() string {
	if t == 0 {
		return "none"
	}
	var parts []string
	for _, n := range collisionTypeNames {
		if t&n.t != 0 {
			parts = append(parts, n.name)
		}
	}
	return strings.Join(parts, "|")
}
