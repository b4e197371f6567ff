package shortestpath

import (
	"math"
	"testing"
)

func buildDiamond(t *testing.T) *Graph {
	t.Helper()
	g := NewGraph()
	edges := []struct {
		from, to string
		w        float64
	}{
		{"a", "b", 1},
		{"a", "c", 4},
		{"b", "d", 2},
		{"c", "d", 1},
	}
	for _, e := range edges {
		if err := g.AddEdge(e.from, e.to, e.w); err != nil {
			t.Fatalf("AddEdge(%s, %s, %f): %v", e.from, e.to, e.w, err)
		}
	}
	return g
}

func TestShortestPath_DiamondGraph(t *testing.T) {
	g := buildDiamond(t)
	result := ShortestPath(g, "a")

	if math.Abs(result.Distances["d"]-3.0) > Epsilon {
		t.Errorf("expected distance 3 via a->b->d, got %f", result.Distances["d"])
	}
	if result.Parent["d"] != "b" {
		t.Errorf("expected parent of d to be b, got %s", result.Parent["d"])
	}
}

func TestShortestPath_Unreachable(t *testing.T) {
	g := NewGraph()
	g.AddNode("a")
	g.AddNode("b")
	_ = g.AddEdge("a", "a", 0)

	result := ShortestPath(g, "a")
	if result.Distances["b"] != Infinity {
		t.Errorf("expected Infinity for unreachable node, got %f", result.Distances["b"])
	}
}

func TestShortestPath_SingleNode(t *testing.T) {
	g := NewGraph()
	g.AddNode("a")
	result := ShortestPath(g, "a")
	if result.Distances["a"] != 0 {
		t.Errorf("expected distance 0 to self, got %f", result.Distances["a"])
	}
}

func TestDistance_UnreachableReturnsInfinity(t *testing.T) {
	g := NewGraph()
	g.AddNode("a")
	g.AddNode("b")
	if d := Distance(g, "a", "b"); d != Infinity {
		t.Errorf("expected Infinity, got %f", d)
	}
}

func TestReconstructPath(t *testing.T) {
	g := buildDiamond(t)
	result := ShortestPath(g, "a")

	path := ReconstructPath(result, "a", "d")
	want := []string{"a", "b", "d"}
	if len(path) != len(want) {
		t.Fatalf("expected path length %d, got %d (%v)", len(want), len(path), path)
	}
	for i, id := range want {
		if path[i] != id {
			t.Errorf("path[%d] = %q, want %q", i, path[i], id)
		}
	}
}

func TestReconstructPath_SameNode(t *testing.T) {
	g := buildDiamond(t)
	result := ShortestPath(g, "a")
	path := ReconstructPath(result, "a", "a")
	if len(path) != 1 || path[0] != "a" {
		t.Errorf("expected single-element path [a], got %v", path)
	}
}

func TestReconstructPath_Unreachable(t *testing.T) {
	g := NewGraph()
	g.AddNode("a")
	g.AddNode("b")
	result := ShortestPath(g, "a")
	if path := ReconstructPath(result, "a", "b"); path != nil {
		t.Errorf("expected nil path for unreachable node, got %v", path)
	}
}

func TestAllPairs(t *testing.T) {
	g := buildDiamond(t)
	results := AllPairs(g)

	if len(results) != len(g.Nodes()) {
		t.Fatalf("expected one result per node, got %d", len(results))
	}
	if math.Abs(results["a"].Distances["d"]-3.0) > Epsilon {
		t.Errorf("expected a->d distance 3, got %f", results["a"].Distances["d"])
	}
	if results["d"].Distances["a"] != Infinity {
		t.Errorf("expected no path back from d to a, got %f", results["d"].Distances["a"])
	}
}
