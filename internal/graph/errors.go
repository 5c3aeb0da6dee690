package graph

import "errors"

var (
	// ErrUnknownNode is returned when an identifier is not present in a graph.
	ErrUnknownNode = errors.New("unknown node")

	// ErrUnknownCluster is returned when a cluster identifier is not present
	// in a graph's cluster tree.
	ErrUnknownCluster = errors.New("unknown subgraph")

	// ErrEmptyResult is returned when a derivation (filter, subgraph,
	// neighborhood) would produce a graph without nodes.
	ErrEmptyResult = errors.New("empty result")

	// ErrInvalidDepth is returned for negative neighborhood depths.
	ErrInvalidDepth = errors.New("invalid depth")
)
