package searcher

// Memory is the transposition table: a secondary index from canonical state
// keys to tree nodes. It is scoped to one searcher instance and only ever
// grows; statistics learned in earlier planning calls stay reachable when
// the same state recurs later in the match.
type Memory[N any] struct {
	nodes map[string]N
}

func NewMemory[N any]() *Memory[N] {
	return &Memory[N]{nodes: make(map[string]N)}
}

func (m *Memory[N]) Lookup(key string) (N, bool) {
	node, ok := m.nodes[key]
	return node, ok
}

func (m *Memory[N]) Insert(key string, node N) {
	m.nodes[key] = node
}

func (m *Memory[N]) Has(key string) bool {
	_, ok := m.nodes[key]
	return ok
}

func (m *Memory[N]) Len() int {
	return len(m.nodes)
}
