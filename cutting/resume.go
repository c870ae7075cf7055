package cutting

// Checkpoint is the progress of a run: the index (starting at 1) of the
// last completed drawable element, and the number of its points processed.
// The zero value means nothing was completed.
type Checkpoint struct {
	Element int `json:"element"`
	Node    int `json:"node"`
}

// resumeIndex numbers the drawable elements and their points,
// and decides what to skip when resuming.
type resumeIndex struct {
	enabled bool
	target  Checkpoint

	element int // index of the current element
	node    int // points processed in the current element
	seed    int // points to skip in the current element

	last Checkpoint // last completed element
}

func newResumeIndex(enabled bool, target Checkpoint) resumeIndex {
	if !enabled {
		return resumeIndex{}
	}
	return resumeIndex{enabled: true, target: target, last: target}
}

// enter registers a new drawable element and returns
// true if it must be skipped entirely.
func (r *resumeIndex) enter() (skip bool) {
	r.element++
	r.node, r.seed = 0, 0
	if !r.enabled {
		return false
	}
	switch {
	case r.element < r.target.Element:
		return true
	case r.element == r.target.Element:
		r.seed = r.target.Node
	}
	return false
}

// nextPoint registers a point of the current element and returns
// true if it was already processed by the interrupted run.
func (r *resumeIndex) nextPoint() (skip bool) {
	r.node++
	return r.node <= r.seed
}

// complete records the current element as done.
func (r *resumeIndex) complete() {
	r.last = Checkpoint{Element: r.element, Node: r.node}
}
