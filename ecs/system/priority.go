package system

// Default priorities. Collision detection must run after everything that
// moves shapes and before everything that reacts to contacts.
const (
	PriorityInput              = 50
	PriorityAI                 = 100
	PriorityPlayerControl      = 150
	PriorityMovement           = 200
	PriorityPhysicsRegion      = 250
	PrioritySpatialHash        = 300
	PriorityCollisionDetection = 400
	PriorityCollisionMovement  = 500
	PriorityProjectileStop     = 510
	PriorityDamage             = 520
	PriorityPickupCollect      = 530
	PriorityTTL                = 600
	PriorityHealth             = 610
	PriorityRender             = 800
	PriorityCollisionDebug     = 900
)

// Event types pushed onto the world event queue by gameplay systems.
const (
	EventDamage         = "damage"
	EventDeath          = "death"
	EventBlocked        = "blocked"
	EventPickup         = "pickup"
	EventProjectileStop = "projectile_stop"
	EventExpired        = "expired"
	EventSwing          = "swing"
	EventShieldRaised   = "shield_raised"
)
