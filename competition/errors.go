package competition

import "errors"

// Generation failures. All validation happens before any structure is built:
// a failed call never returns a partially populated bracket or table.
var (
	ErrInsufficientTeams = errors.New("not enough teams to generate a competition (minimum 2)")
	ErrSeedMismatch      = errors.New("seed count does not match the required number of byes")
	ErrInvalidGroupCount = errors.New("group count must leave every group with at least two teams")
	ErrInvalidSettings   = errors.New("invalid scheduling settings")
)

// errSchedulingStall guards the force-advance rule in AssignCourts. The rule
// is constructed so that every sweep either places a match or raises at least
// one court frontier, so this error should never surface.
var errSchedulingStall = errors.New("scheduler stalled: no court frontier could be advanced")
