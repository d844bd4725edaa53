package models

// Direction identifies which side of the change feed a cursor tracks.
type Direction string

const (
	DirectionPull Direction = "pull"
	DirectionPush Direction = "push"
)

// DefaultCollection is the only collection the engine currently syncs.
const DefaultCollection = "notes"

// InitialPosition is the cursor position of a store that has never synced.
// Cursor positions are monotonically non-decreasing: a server-assigned feed
// sequence for pull, the local note version for push.
const InitialPosition int64 = 0
