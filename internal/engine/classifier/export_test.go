package classifier

const MaxPending = maxPending

// PendingLen reports how many submissions await an outcome.
func (c *Classifier) PendingLen() int {
	return len(c.pending)
}
