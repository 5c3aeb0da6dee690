package search

import (
	"regexp"
	"runtime"
	"unicode/utf8"

	"github.com/sahilm/fuzzy"
	"golang.org/x/sync/errgroup"
)

// Kind selects the matching strategy.
type Kind int

const (
	Fuzzy Kind = iota
	Regex
)

func (k Kind) String() string {
	switch k {
	case Fuzzy:
		return "fuzzy"
	case Regex:
		return "regex"
	default:
		return "unknown"
	}
}

// TextFunc returns the canonical serialized text of a node.
type TextFunc func(id string) string

// Query is a compiled search key. The zero value matches everything.
type Query struct {
	Kind Kind
	Key  string

	re *regexp.Regexp
}

// NewQuery prepares key for matching. An invalid regular expression yields
// a query that never matches.
func NewQuery(kind Kind, key string) Query {
	q := Query{Kind: kind, Key: key}
	if kind == Regex && key != "" {
		// a nil re makes the query match nothing
		q.re, _ = regexp.Compile(key)
	}
	return q
}

// Valid reports whether the key compiled.
func (q Query) Valid() bool {
	return q.Kind != Regex || q.Key == "" || q.re != nil
}

// Match reports whether id satisfies the query together with the rune
// positions to highlight. Fuzzy queries look at id only; regex queries look
// at the serialized node text and highlight the whole id.
func (q Query) Match(id string, text TextFunc) ([]int, bool) {
	if q.Key == "" {
		return nil, true
	}
	switch q.Kind {
	case Fuzzy:
		found := fuzzy.Find(q.Key, []string{id})
		if len(found) == 0 {
			return nil, false
		}
		return runePositions(id, found[0].MatchedIndexes), true
	case Regex:
		if q.re == nil {
			return nil, false
		}
		subject := id
		if text != nil {
			subject = text(id)
		}
		if !q.re.MatchString(subject) {
			return nil, false
		}
		highlight := make([]int, utf8.RuneCountInString(id))
		for i := range highlight {
			highlight[i] = i
		}
		return highlight, true
	}
	return nil, false
}

// runePositions converts byte offsets reported by the fuzzy matcher into
// rune positions.
func runePositions(s string, offsets []int) []int {
	if len(offsets) == 0 {
		return nil
	}
	want := make(map[int]struct{}, len(offsets))
	for _, o := range offsets {
		want[o] = struct{}{}
	}
	out := make([]int, 0, len(offsets))
	pos := 0
	for off := range s {
		if _, ok := want[off]; ok {
			out = append(out, pos)
		}
		pos++
	}
	return out
}

// Match is one matching entry of a list.
type Match struct {
	Index     int
	ID        string
	Highlight []int
}

// minChunk keeps small lists on the calling goroutine.
const minChunk = 512

// MatchAll evaluates q against every id and returns the matches in list
// order. Large lists are split into contiguous chunks evaluated in parallel.
func MatchAll(ids []string, q Query, text TextFunc) []Match {
	if len(ids) <= minChunk {
		return matchRange(ids, 0, q, text)
	}
	workers := runtime.GOMAXPROCS(0)
	size := (len(ids) + workers - 1) / workers
	if size < minChunk {
		size = minChunk
	}
	chunks := make([][]Match, (len(ids)+size-1)/size)

	var g errgroup.Group
	g.SetLimit(workers)
	for c := range chunks {
		start := c * size
		end := min(start+size, len(ids))
		g.Go(func() error {
			chunks[c] = matchRange(ids[start:end], start, q, text)
			return nil
		})
	}
	_ = g.Wait()

	total := 0
	for _, chunk := range chunks {
		total += len(chunk)
	}
	out := make([]Match, 0, total)
	for _, chunk := range chunks {
		out = append(out, chunk...)
	}
	return out
}

func matchRange(ids []string, offset int, q Query, text TextFunc) []Match {
	var out []Match
	for i, id := range ids {
		if highlight, ok := q.Match(id, text); ok {
			out = append(out, Match{Index: offset + i, ID: id, Highlight: highlight})
		}
	}
	return out
}
