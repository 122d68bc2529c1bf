// Package digraph implements the fragment dependency graph used by the
// cycle detection rule. Vertices are fragment names and a directed edge
// records that one fragment spreads another.
//
// The graph is transient: built for a single validation run and dropped
// afterwards. It is not safe for concurrent use and is not meant to be;
// each run owns its own instance.
package digraph

// Graph is a directed graph over string vertices with adjacency kept in
// insertion order, so traversals are reproducible for the same input.
type Graph struct {
	order []string
	out   map[string][]string
	edges map[string]map[string]bool
}

// New returns an empty graph.
func New() *Graph {
	return &Graph{
		out:   make(map[string][]string),
		edges: make(map[string]map[string]bool),
	}
}

// AddVertex ensures a vertex with the given name exists.
func (g *Graph) AddVertex(name string) {
	if _, ok := g.out[name]; ok {
		return
	}
	g.order = append(g.order, name)
	g.out[name] = nil
}

// AddEdge adds a directed edge from one vertex to another, creating
// either endpoint if it does not exist yet. Duplicate edges are ignored.
// Self-loops are allowed.
func (g *Graph) AddEdge(from, to string) {
	g.AddVertex(from)
	g.AddVertex(to)
	if g.edges[from][to] {
		return
	}
	if g.edges[from] == nil {
		g.edges[from] = make(map[string]bool)
	}
	g.edges[from][to] = true
	g.out[from] = append(g.out[from], to)
}

// Len returns the number of vertices.
func (g *Graph) Len() int {
	return len(g.order)
}

// Vertices returns the vertex names in insertion order.
func (g *Graph) Vertices() []string {
	v := make([]string, len(g.order))
	copy(v, g.order)
	return v
}

// Neighbors returns the outgoing neighbors of a vertex in edge insertion
// order.
func (g *Graph) Neighbors(name string) []string {
	return g.out[name]
}

// CycleFrom returns the shortest cycle (by vertex count) that starts and
// ends at the given vertex, as the ordered list of vertices on the cycle
// beginning with start. The closing hop back to start is implicit. A
// self-loop yields a single-element path. It returns nil if the vertex is
// unknown or lies on no cycle through itself.
//
// The search is a breadth-first walk over insertion-ordered adjacency, so
// repeated runs on the same graph return the same path.
func (g *Graph) CycleFrom(start string) []string {
	if _, ok := g.out[start]; !ok {
		return nil
	}
	parent := make(map[string]string)
	visited := map[string]bool{start: true}
	queue := []string{start}
	for len(queue) > 0 {
		v := queue[0]
		queue = queue[1:]
		for _, w := range g.out[v] {
			if w == start {
				return g.pathTo(start, v, parent)
			}
			if !visited[w] {
				visited[w] = true
				parent[w] = v
				queue = append(queue, w)
			}
		}
	}
	return nil
}

// pathTo reconstructs the BFS path start..last from the parent links.
func (g *Graph) pathTo(start, last string, parent map[string]string) []string {
	var rev []string
	for v := last; v != start; v = parent[v] {
		rev = append(rev, v)
	}
	rev = append(rev, start)
	path := make([]string, 0, len(rev))
	for i := len(rev) - 1; i >= 0; i-- {
		path = append(path, rev[i])
	}
	return path
}
