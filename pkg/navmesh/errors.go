package navmesh

import (
	"errors"
	"fmt"
)

var ErrFailure = errors.New("navmesh operation failed")
var ErrInvalidParam = fmt.Errorf("%w: an input parameter was invalid", ErrFailure)
var ErrInvalidIndex = fmt.Errorf("%w: index out of range", ErrFailure)
var ErrInvalidMesh = fmt.Errorf("%w: mesh data is malformed", ErrFailure)
var ErrNonManifold = fmt.Errorf("%w: edge shared by more than two triangles", ErrInvalidMesh)

var ErrNoPath = errors.New("no path between start and goal")
var ErrExpansionLimit = fmt.Errorf("%w: search exceeded the expansion limit", ErrNoPath)
