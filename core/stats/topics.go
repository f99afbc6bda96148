// Package stats counts how often vocabulary topics appear across documents.
package stats

import (
	"sort"
	"strings"
)

// DefaultTopics is the coding-topic vocabulary used by the report.
var DefaultTopics = []string{
	"Array", "String", "Tree", "Graph", "DP", "Recursion", "Greedy",
	"Hashmap", "Stack", "Queue", "Linked List", "Heap", "Binary Search", "Matrix",
}

// TopicCount is one term and the number of documents mentioning it.
type TopicCount struct {
	Topic string
	Count int
}

// Counts is ordered by count descending, ties in vocabulary order.
type Counts []TopicCount

// Map returns the counts keyed by topic.
func (c Counts) Map() map[string]int {
	m := make(map[string]int, len(c))
	for _, tc := range c {
		m[tc.Topic] = tc.Count
	}
	return m
}

// Total sums all counts.
func (c Counts) Total() int {
	total := 0
	for _, tc := range c {
		total += tc.Count
	}
	return total
}

// CountTopics counts, for each vocabulary term, the documents that contain it
// at least once (case-insensitive substring). Terms found in no document are
// omitted. Duplicate vocabulary entries, compared case-insensitively, count once.
func CountTopics(documents []string, vocabulary []string) Counts {
	lowered := make([]string, len(documents))
	for i, d := range documents {
		lowered[i] = strings.ToLower(d)
	}

	var counts Counts
	seen := map[string]bool{}
	for _, term := range vocabulary {
		key := strings.ToLower(strings.TrimSpace(term))
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true

		n := 0
		for _, d := range lowered {
			if strings.Contains(d, key) {
				n++
			}
		}
		if n > 0 {
			counts = append(counts, TopicCount{Topic: term, Count: n})
		}
	}

	sort.SliceStable(counts, func(i, j int) bool {
		return counts[i].Count > counts[j].Count
	})
	return counts
}
