// Listing queue with URL deduplication.

package crawl

import "github.com/gaurav-prasanna/interviewdigest/core"

// Queue collects listings in discovery order, dropping repeats of a URL that
// was already seen (after NormalizeURL).
type Queue struct {
	items   []core.Listing
	visited map[string]bool
}

// NewQueue creates an empty Queue.
func NewQueue() *Queue {
	return &Queue{
		visited: make(map[string]bool),
	}
}

// Add enqueues a listing if its URL hasn't been seen before and reports
// whether it was added.
func (q *Queue) Add(l core.Listing) bool {
	key := NormalizeURL(l.URL)
	if l.URL == "" || q.visited[key] {
		return false
	}
	q.visited[key] = true
	q.items = append(q.items, l)
	return true
}

// Len returns the number of unique listings queued.
func (q *Queue) Len() int {
	return len(q.items)
}

// All returns every queued listing, in discovery order.
func (q *Queue) All() []core.Listing {
	return q.items
}

// Limit truncates the queue to at most n listings; n <= 0 keeps all.
func (q *Queue) Limit(n int) {
	if n > 0 && len(q.items) > n {
		q.items = q.items[:n]
	}
}
