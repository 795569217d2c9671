package room

import "errors"

// ErrLogicError is returned by ExtractConnections when a door's target is
// determined but no partner door-end can be found for it. This indicates a
// bug in whichever solver produced the room set, not a property of the
// input: a fully-determined, internally-consistent room set always yields a
// perfect matching on its 6N door-ends.
var ErrLogicError = errors.New("room: door has a determined target but no reciprocating partner")
