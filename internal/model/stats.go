package model

// NormalizeStats summarizes one batch normalization.
type NormalizeStats struct {
	Input            int                      `json:"input"`
	Normalized       int                      `json:"normalized"`
	NamelessRejected int                      `json:"nameless_rejected"`
	Statuses         map[Field]map[Status]int `json:"statuses,omitempty"`
}

// AddStatus counts one field tag. StatusOK is not counted.
func (s *NormalizeStats) AddStatus(f Field, st Status) {
	if st == StatusOK {
		return
	}
	if s.Statuses == nil {
		s.Statuses = make(map[Field]map[Status]int)
	}
	if s.Statuses[f] == nil {
		s.Statuses[f] = make(map[Status]int)
	}
	s.Statuses[f][st]++
}

// NearDuplicate is a pair of kept names that differ by only a few edits.
type NearDuplicate struct {
	A        string `json:"a"`
	B        string `json:"b"`
	Distance int    `json:"distance"`
}

// MergeStats is the audit trail of a merge.
type MergeStats struct {
	// Inputs holds the record count of each source, in argument order.
	Inputs            []int           `json:"inputs"`
	DuplicatesSkipped int             `json:"duplicates_skipped"`
	NamelessRejected  int             `json:"nameless_rejected"`
	Merged            int             `json:"merged"`
	NearDuplicates    []NearDuplicate `json:"near_duplicates,omitempty"`
}
