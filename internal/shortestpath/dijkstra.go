package shortestpath

import "container/heap"

// Result holds the output of a single-source shortest-path search.
type Result struct {
	Distances map[string]float64
	Parent    map[string]string
}

type pqItem struct {
	node     string
	distance float64
	index    int
}

// priorityQueue is a min-heap on distance, tie-broken by node ID for
// deterministic expansion order regardless of map iteration order.
type priorityQueue []*pqItem

func (pq priorityQueue) Len() int { return len(pq) }

func (pq priorityQueue) Less(i, j int) bool {
	if pq[i].distance != pq[j].distance {
		return pq[i].distance < pq[j].distance
	}
	return pq[i].node < pq[j].node
}

func (pq priorityQueue) Swap(i, j int) {
	pq[i], pq[j] = pq[j], pq[i]
	pq[i].index = i
	pq[j].index = j
}

func (pq *priorityQueue) Push(x any) {
	item := x.(*pqItem)
	item.index = len(*pq)
	*pq = append(*pq, item)
}

func (pq *priorityQueue) Pop() any {
	old := *pq
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	item.index = -1
	*pq = old[:n-1]
	return item
}

// ShortestPath runs Dijkstra from src over g, visiting nodes in a
// deterministic order. All of g's edges are assumed non-negative:
// Graph.AddEdge already rejects negative weights at construction time.
func ShortestPath(g *Graph, src string) *Result {
	dist := make(map[string]float64, len(g.nodes))
	parent := make(map[string]string, len(g.nodes))

	for _, n := range g.nodes {
		dist[n] = Infinity
	}
	if _, ok := dist[src]; !ok {
		dist[src] = Infinity
	}
	dist[src] = 0

	pq := make(priorityQueue, 0, len(g.nodes))
	heap.Init(&pq)
	heap.Push(&pq, &pqItem{node: src, distance: 0})

	for pq.Len() > 0 {
		current := heap.Pop(&pq).(*pqItem)
		u := current.node

		if current.distance > dist[u]+Epsilon {
			continue // stale entry, a shorter path to u was already found
		}

		for _, edge := range g.adjacency[u] {
			newDist := dist[u] + edge.Weight
			if existing, ok := dist[edge.To]; !ok || newDist < existing-Epsilon {
				dist[edge.To] = newDist
				parent[edge.To] = u
				heap.Push(&pq, &pqItem{node: edge.To, distance: newDist})
			}
		}
	}

	return &Result{Distances: dist, Parent: parent}
}

// Distance returns the shortest distance from src to dst, or +Infinity
// if dst is unreachable.
func Distance(g *Graph, src, dst string) float64 {
	result := ShortestPath(g, src)
	if d, ok := result.Distances[dst]; ok {
		return d
	}
	return Infinity
}

// ReconstructPath walks result.Parent backward from dst to src and
// returns the ordered node sequence, or nil if dst is unreachable from
// src.
func ReconstructPath(result *Result, src, dst string) []string {
	if dst == src {
		return []string{src}
	}
	if _, ok := result.Parent[dst]; !ok {
		return nil
	}

	path := []string{dst}
	cur := dst
	for cur != src {
		prev, ok := result.Parent[cur]
		if !ok {
			return nil
		}
		path = append(path, prev)
		cur = prev
	}

	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

// AllPairs computes shortest-path results from every node in g,
// returning a map from source ID to its Result.
func AllPairs(g *Graph) map[string]*Result {
	results := make(map[string]*Result, len(g.nodes))
	for _, src := range g.nodes {
		results[src] = ShortestPath(g, src)
	}
	return results
}
