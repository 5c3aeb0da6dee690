// Package command parses the command-mode vocabulary and runs side effects
// through a small command bus.
package command

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/atomicstack/dotview/internal/logging/events"
	"github.com/atomicstack/dotview/internal/search"
	"github.com/lithammer/fuzzysearch/fuzzy"
)

// Name identifies a command.
type Name string

const (
	Filter    Name = "filter"
	Neighbors Name = "neighbors"
	Subgraph  Name = "subgraph"
	Export    Name = "export"
	Xdot      Name = "xdot"
	Help      Name = "help"
)

// DefaultDepth is the neighborhood depth used when none is given.
const DefaultDepth = 1

// Command is a parsed command line.
type Command struct {
	Name Name
	// Depth is set for neighbors.
	Depth int
	// Arg is the optional export name.
	Arg string
}

type verb struct {
	name    Name
	maxArgs int
	usage   string
}

var vocabulary = []verb{
	{Filter, 0, "filter"},
	{Neighbors, 1, "neighbors [depth]"},
	{Subgraph, 0, "subgraph"},
	{Export, 1, "export [name]"},
	{Xdot, 0, "xdot"},
	{Help, 0, "help"},
}

var names = search.NewTrie(Names())

// ErrEmpty is returned for a blank command line.
var ErrEmpty = errors.New("empty command")

// UnknownError reports a command name outside the vocabulary.
type UnknownError struct {
	Name       string
	Suggestion string
}

func (e *UnknownError) Error() string {
	if e.Suggestion != "" {
		return fmt.Sprintf("unknown command %q, did you mean %q?", e.Name, e.Suggestion)
	}
	return fmt.Sprintf("unknown command %q", e.Name)
}

// ArgumentError reports malformed arguments for a known command.
type ArgumentError struct {
	Name   Name
	Usage  string
	Reason string
}

func (e *ArgumentError) Error() string {
	return fmt.Sprintf("%s: %s (usage: %s)", e.Name, e.Reason, e.Usage)
}

// Parse splits input on whitespace and validates it against the vocabulary.
func Parse(input string) (Command, error) {
	cmd, err := parse(input)
	events.Command.Parse(input, string(cmd.Name), err)
	return cmd, err
}

func parse(input string) (Command, error) {
	fields := strings.Fields(input)
	if len(fields) == 0 {
		return Command{}, ErrEmpty
	}
	s, ok := lookup(fields[0])
	if !ok {
		return Command{}, &UnknownError{Name: fields[0], Suggestion: Suggest(fields[0])}
	}
	args := fields[1:]
	if len(args) > s.maxArgs {
		return Command{}, &ArgumentError{Name: s.name, Usage: s.usage, Reason: "too many arguments"}
	}

	cmd := Command{Name: s.name}
	switch s.name {
	case Neighbors:
		cmd.Depth = DefaultDepth
		if len(args) == 1 {
			depth, err := strconv.Atoi(args[0])
			if err != nil || depth < 0 {
				return Command{}, &ArgumentError{Name: s.name, Usage: s.usage, Reason: fmt.Sprintf("invalid depth %q", args[0])}
			}
			cmd.Depth = depth
		}
	case Export:
		if len(args) == 1 {
			cmd.Arg = args[0]
		}
	}
	return cmd, nil
}

func lookup(name string) (verb, bool) {
	for _, s := range vocabulary {
		if string(s.name) == name {
			return s, true
		}
	}
	return verb{}, false
}

// Names lists the vocabulary in declaration order.
func Names() []string {
	out := make([]string, len(vocabulary))
	for i, s := range vocabulary {
		out[i] = string(s.name)
	}
	return out
}

// Usage lists the usage line of every command.
func Usage() []string {
	out := make([]string, len(vocabulary))
	for i, s := range vocabulary {
		out[i] = s.usage
	}
	return out
}

// Suggest returns the closest command name to a mistyped one, or "" when
// nothing is close.
func Suggest(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return ""
	}
	ranks := fuzzy.RankFindNormalizedFold(name, Names())
	if len(ranks) == 0 {
		return suggestByDistance(name)
	}
	sort.Sort(ranks)
	return ranks[0].Target
}

// suggestByDistance handles typos that are not subsequences, e.g. "fitler".
func suggestByDistance(name string) string {
	best, bestDist := "", -1
	for _, candidate := range Names() {
		d := fuzzy.LevenshteinDistance(name, candidate)
		if d > len(candidate)/2 {
			continue
		}
		if bestDist == -1 || d < bestDist {
			best, bestDist = candidate, d
		}
	}
	return best
}

// Autocomplete completes the command name being typed. Input that already
// contains arguments is left alone.
func Autocomplete(input string) (string, bool) {
	if strings.ContainsAny(input, " \t") {
		return "", false
	}
	completed, ok := names.Autocomplete(input)
	if !ok || completed == input {
		return "", false
	}
	return completed, true
}
