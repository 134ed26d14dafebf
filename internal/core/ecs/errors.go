package ecs

import "errors"

var (
	ErrUnknownEntity   = errors.New("entity not found in registry")
	ErrDuplicateUnique = errors.New("unique component already attached to entity")
	ErrConstruction    = errors.New("cannot construct component")
)
