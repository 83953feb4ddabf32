package model

import "sort"

// FrequencyMap maps lower-cased word tokens to positive occurrence counts.
//
// A FrequencyMap is owned by exactly one crawl task at a time. A task
// builds its own map from its page's text, then merges each child's map
// into it; after the merge the child's map must not be touched again.
// Because ownership transfers on merge, no locking is needed here.
type FrequencyMap map[string]int

// Add increments the count for the given word.
func (f FrequencyMap) Add(word string) {
	f[word]++
}

// Merge folds other into f, summing counts for shared keys.
// Merging is commutative and associative, so the order in which child
// maps arrive does not affect the final totals.
func (f FrequencyMap) Merge(other FrequencyMap) {
	for word, count := range other {
		f[word] += count
	}
}

// Total returns the sum of all counts in the map.
func (f FrequencyMap) Total() int {
	total := 0
	for _, count := range f {
		total += count
	}
	return total
}

// WordCount pairs a word with its occurrence count for sorted output.
type WordCount struct {
	// Word is the lower-cased token.
	Word string `json:"word"`

	// Count is the number of occurrences across all crawled pages.
	Count int `json:"count"`
}

// Top returns up to n entries sorted by descending count.
// Ties are broken by ascending word so the output is deterministic
// regardless of map iteration order.
func (f FrequencyMap) Top(n int) []WordCount {
	entries := make([]WordCount, 0, len(f))
	for word, count := range f {
		entries = append(entries, WordCount{Word: word, Count: count})
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Count != entries[j].Count {
			return entries[i].Count > entries[j].Count
		}
		return entries[i].Word < entries[j].Word
	})

	if n >= 0 && n < len(entries) {
		entries = entries[:n]
	}
	return entries
}
