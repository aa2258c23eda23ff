package subtree

import "errors"

// ErrEmptyGraph is returned when the graph has no root node.
var ErrEmptyGraph = errors.New("subtree: graph has no root node")

// ErrTimeLimit is returned when a search exceeds its configured time budget
// before finding any feasible tree.
var ErrTimeLimit = errors.New("subtree: time limit exceeded")

// ErrScoreMismatch is an internal consistency error: it indicates the
// incrementally accumulated tree weight disagrees with the weight
// recomputed by summing the tree's own edges, beyond floating-point
// tolerance. It should never occur and signals a bug in the search engine
// if it does.
var ErrScoreMismatch = errors.New("subtree: internal score verification failed")
