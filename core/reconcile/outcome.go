package reconcile

// Outcome describes what reconciling one record did to the store.
type Outcome string

const (
	// OutcomeInserted means no row existed for the natural key and one was created.
	OutcomeInserted Outcome = "inserted"
	// OutcomeUpdated means an existing row was overwritten.
	OutcomeUpdated Outcome = "updated"
)

// Tally counts reconciliation outcomes for one entity kind.
type Tally struct {
	// Inserted counts newly created rows.
	Inserted int `json:"inserted"`
	// Updated counts rows overwritten in place.
	Updated int `json:"updated"`
}

// Add records one outcome.
func (t *Tally) Add(o Outcome) {
	switch o {
	case OutcomeInserted:
		t.Inserted++
	case OutcomeUpdated:
		t.Updated++
	}
}

// Merge adds the counts of other to t.
func (t *Tally) Merge(other Tally) {
	t.Inserted += other.Inserted
	t.Updated += other.Updated
}

// Total returns the number of reconciled rows.
func (t Tally) Total() int {
	return t.Inserted + t.Updated
}
