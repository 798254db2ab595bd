package engine

import "fmt"

// node is a hand-built game tree. Leaves carry a material balance counted in
// pawns, positive for White.
type node struct {
	pawns    int
	children []*node
}

func leaf(pawns int) *node { return &node{pawns: pawns} }

func branch(children ...*node) *node { return &node{children: children} }

// treePos walks a node tree. Move i is encoded as a1 to square i.
type treePos struct {
	path []*node

	// panicOnPush makes Push panic once the path reaches this length.
	panicOnPush int
	panicClone  bool
}

func newTreePos(root *node) *treePos {
	return &treePos{path: []*node{root}}
}

func (t *treePos) cur() *node { return t.path[len(t.path)-1] }

func (t *treePos) Turn() Color {
	if len(t.path)%2 == 1 {
		return White
	}
	return Black
}

func (t *treePos) LegalMoves() []Move {
	moves := make([]Move, len(t.cur().children))
	for i := range moves {
		moves[i] = Move{From: 0, To: Square(i)}
	}
	return moves
}

func (t *treePos) Push(m Move) {
	if t.panicOnPush > 0 && len(t.path) >= t.panicOnPush {
		panic("tree: push refused")
	}
	kids := t.cur().children
	if int(m.To) >= len(kids) {
		panic(fmt.Sprintf("tree: illegal move %s", m))
	}
	t.path = append(t.path, kids[m.To])
}

func (t *treePos) Pop() { t.path = t.path[:len(t.path)-1] }

func (t *treePos) IsCheckmate() bool            { return false }
func (t *treePos) IsStalemate() bool            { return false }
func (t *treePos) IsInsufficientMaterial() bool { return false }
func (t *treePos) IsGameOver() bool             { return len(t.cur().children) == 0 }

func (t *treePos) PieceAt(sq Square) Piece {
	n := t.cur().pawns
	switch {
	case n > 0 && int(sq) < n:
		return Piece{Type: Pawn, Color: White}
	case n < 0 && int(sq) < -n:
		return Piece{Type: Pawn, Color: Black}
	default:
		return NoPiece
	}
}

func (t *treePos) IsCapture(m Move) bool { return false }

func (t *treePos) Clone() Position {
	if t.panicClone {
		panic("tree: clone refused")
	}
	return &treePos{path: append([]*node(nil), t.path...), panicOnPush: t.panicOnPush}
}
