package ecs

import "errors"

var (
	ErrEntityNotAlive      = errors.New("ecs: entity not alive")
	ErrNilComponent        = errors.New("ecs: component is nil")
	ErrDuplicateComponent  = errors.New("ecs: component already present")
	ErrMissingComponent    = errors.New("ecs: component not present")
	ErrComponentOwned      = errors.New("ecs: component attached to another entity")
	ErrNilSystem           = errors.New("ecs: system is nil")
	ErrEmptyRequirements   = errors.New("ecs: system requires no components")
	ErrSystemRegistered    = errors.New("ecs: system already registered")
	ErrSystemNotRegistered = errors.New("ecs: system not registered")
)
