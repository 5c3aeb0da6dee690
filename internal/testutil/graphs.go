// Package testutil holds graph fixtures shared by the package tests.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/atomicstack/dotview/internal/dot"
	"github.com/atomicstack/dotview/internal/graph"
)

// Diamond is A -> B -> C with a side branch A -> D.
const Diamond = `digraph diamond {
	A -> B -> C;
	A -> D;
}
`

// Build is a small dependency graph with nested clusters and an isolated
// node.
const Build = `digraph build {
	subgraph cluster_app {
		label="application";
		main;
		cli;
	}
	subgraph cluster_lib {
		label="libraries";
		subgraph cluster_core {
			core;
			io;
		}
		util;
	}
	main -> cli -> core -> io;
	cli -> util;
	core -> util;
	orphan;
}
`

// Greek holds ids sharing prefixes for search and completion tests.
const Greek = `digraph greek {
	alpha -> beta;
	alef -> beta;
	beta -> gamma [label="g"];
}
`

// LoadGraph parses src or fails the test.
func LoadGraph(t testing.TB, src string) *graph.Graph {
	t.Helper()
	g, err := dot.Parse([]byte(src))
	if err != nil {
		t.Fatalf("parse fixture: %v", err)
	}
	return g
}

// WriteGraph stores src as a .dot file in a temporary directory and
// returns its path.
func WriteGraph(t testing.TB, src string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "graph.dot")
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}
