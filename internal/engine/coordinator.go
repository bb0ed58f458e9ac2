package engine

// Coordinator is the session-scoped authority over which single set is
// currently "live" (exercising or counting down TUT) and which is "resting".
// It is an owned value with a narrow mutation API; per-set timers never write
// these fields directly. Invariant: at most one live set and at most one
// resting set at any instant, and the two IDs never name different sets at
// the same time except for the same set mid-transition from live to resting.
type Coordinator struct {
	liveSetID    string
	restingSetID string
}

// OnSetStart records setID as the live set and clears any resting set.
// The engine finalizes a previously-resting set before calling this, so the
// two updates are observed as one.
func (c *Coordinator) OnSetStart(setID string) {
	c.liveSetID = setID
	c.restingSetID = ""
}

// OnSetRest moves setID from the live role to the resting role.
func (c *Coordinator) OnSetRest(setID string) {
	c.restingSetID = setID
	if c.liveSetID == setID {
		c.liveSetID = ""
	}
}

// OnSetComplete clears both roles when they name setID.
func (c *Coordinator) OnSetComplete(setID string) {
	if c.liveSetID == setID {
		c.liveSetID = ""
	}
	if c.restingSetID == setID {
		c.restingSetID = ""
	}
}

// LiveSetID returns the ID of the set currently being performed, or "".
func (c *Coordinator) LiveSetID() string { return c.liveSetID }

// RestingSetID returns the ID of the set currently resting, or "".
func (c *Coordinator) RestingSetID() string { return c.restingSetID }

// CanStart reports whether a new set may go live right now.
func (c *Coordinator) CanStart(setID string) bool {
	return c.liveSetID == "" || c.liveSetID == setID
}
