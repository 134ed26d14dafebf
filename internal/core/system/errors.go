package system

import "errors"

var (
	ErrConstruction = errors.New("cannot construct system")
	ErrUnresolved   = errors.New("unresolved system dependency")
	ErrConstructor  = errors.New("invalid system constructor")
)
