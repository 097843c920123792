package parser

const arenaChunk = 64

// Arena allocates the nodes of one parse from fixed-size chunks so a tree
// is built with a handful of allocations instead of one per node. Reset
// drops every node at once; trees built from the arena must not be used
// after Reset.
//
// The zero value is ready to use. An Arena is not safe for concurrent use.
type Arena struct {
	leaves   [][]Leaf
	unaries  [][]Unary
	binaries [][]Binary
	nodes    int
}

func NewArena() *Arena {
	return &Arena{}
}

func (a *Arena) Leaf(value int64) *Leaf {
	n := allocate(&a.leaves)
	n.Value = value
	a.nodes++
	return n
}

func (a *Arena) Unary(op Operator, operand Node) *Unary {
	n := allocate(&a.unaries)
	n.Op = op
	n.Operand = operand
	a.nodes++
	return n
}

func (a *Arena) Binary(op Operator, left, right Node) *Binary {
	n := allocate(&a.binaries)
	n.Op = op
	n.Left = left
	n.Right = right
	a.nodes++
	return n
}

// Len returns the number of nodes handed out since the last Reset.
func (a *Arena) Len() int {
	return a.nodes
}

// Reset releases all nodes. The first chunk of each kind is kept for
// reuse.
func (a *Arena) Reset() {
	a.leaves = resetChunks(a.leaves)
	a.unaries = resetChunks(a.unaries)
	a.binaries = resetChunks(a.binaries)
	a.nodes = 0
}

// allocate returns a pointer to a fresh zero element. Chunks are never
// grown in place, so earlier pointers stay valid.
func allocate[T any](chunks *[][]T) *T {
	cs := *chunks
	if len(cs) == 0 || len(cs[len(cs)-1]) == cap(cs[len(cs)-1]) {
		cs = append(cs, make([]T, 0, arenaChunk))
		*chunks = cs
	}
	last := &cs[len(cs)-1]
	var zero T
	*last = append(*last, zero)
	return &(*last)[len(*last)-1]
}

func resetChunks[T any](chunks [][]T) [][]T {
	if len(chunks) == 0 {
		return chunks
	}
	first := chunks[0][:0]
	clear(chunks[0][:cap(chunks[0])])
	clear(chunks[1:])
	return append(chunks[:0], first)
}
