package repository

import (
	"hash/fnv"
	"math"
	"sync"
)

// ScoreBoard is a treap ordered by AI score DESC, then candidate id ASC.
// In-order traversal yields the board from best to worst.
type ScoreBoard struct {
	mu     sync.RWMutex
	root   *node
	scores map[string]scoreFP
}

// scoreScale keeps two decimals of the 0-100 AI score exact.
const scoreScale = 100

type scoreFP int64

func toFixedPoint(x float64) scoreFP {
	if math.IsNaN(x) {
		return 0
	}
	return scoreFP(math.Round(x * scoreScale))
}

func toFloat(x scoreFP) float64 { return float64(x) / scoreScale }

type node struct {
	id    string
	score scoreFP
	prio  uint64
	left  *node
	right *node
	size  int
}

func nsize(n *node) int {
	if n == nil {
		return 0
	}
	return n.size
}

func fix(n *node) {
	if n != nil {
		n.size = 1 + nsize(n.left) + nsize(n.right)
	}
}

// less reports whether (aScore, aID) ranks before (bScore, bID).
func less(aScore scoreFP, aID string, bScore scoreFP, bID string) bool {
	if aScore != bScore {
		return aScore > bScore
	}
	return aID < bID
}

// priority derives a stable heap priority from the id so the tree shape
// does not depend on score order.
func priority(id string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(id))
	return h.Sum64()
}

func rotateRight(y *node) *node {
	x := y.left
	y.left = x.right
	x.right = y
	fix(y)
	fix(x)
	return x
}

func rotateLeft(x *node) *node {
	y := x.right
	x.right = y.left
	y.left = x
	fix(x)
	fix(y)
	return y
}

func insert(n *node, id string, score scoreFP) *node {
	if n == nil {
		return &node{id: id, score: score, prio: priority(id), size: 1}
	}
	if less(score, id, n.score, n.id) {
		n.left = insert(n.left, id, score)
		if n.left.prio > n.prio {
			n = rotateRight(n)
		}
	} else {
		n.right = insert(n.right, id, score)
		if n.right.prio > n.prio {
			n = rotateLeft(n)
		}
	}
	fix(n)
	return n
}

func deleteNode(n *node, id string, score scoreFP) *node {
	if n == nil {
		return nil
	}
	switch {
	case score == n.score && id == n.id:
		if n.left == nil {
			return n.right
		}
		if n.right == nil {
			return n.left
		}
		if n.left.prio > n.right.prio {
			n = rotateRight(n)
			n.right = deleteNode(n.right, id, score)
		} else {
			n = rotateLeft(n)
			n.left = deleteNode(n.left, id, score)
		}
	case less(score, id, n.score, n.id):
		n.left = deleteNode(n.left, id, score)
	default:
		n.right = deleteNode(n.right, id, score)
	}
	fix(n)
	return n
}

// walk visits nodes in rank order until visit returns false.
func walk(n *node, visit func(*node) bool) bool {
	if n == nil {
		return true
	}
	return walk(n.left, visit) && visit(n) && walk(n.right, visit)
}

// NewScoreBoard creates an empty board.
func NewScoreBoard() *ScoreBoard {
	return &ScoreBoard{scores: make(map[string]scoreFP)}
}

// Upsert sets the score for id, replacing any previous one.
func (b *ScoreBoard) Upsert(id string, score float64) {
	fp := toFixedPoint(score)
	b.mu.Lock()
	defer b.mu.Unlock()
	if old, ok := b.scores[id]; ok {
		if old == fp {
			return
		}
		b.root = deleteNode(b.root, id, old)
	}
	b.scores[id] = fp
	b.root = insert(b.root, id, fp)
}

// Len returns the number of ranked candidates.
func (b *ScoreBoard) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return nsize(b.root)
}

// TopN returns up to n entries. Equal scores share a rank and the next
// distinct score takes the following rank.
func (b *ScoreBoard) TopN(n int) ([]Entry, error) {
	if n < 1 {
		return nil, ErrInvalidLimit
	}
	b.mu.RLock()
	defer b.mu.RUnlock()

	out := make([]Entry, 0, min(n, len(b.scores)))
	rank := 0
	var prev scoreFP
	walk(b.root, func(nd *node) bool {
		if rank == 0 || nd.score != prev {
			rank++
			prev = nd.score
		}
		out = append(out, Entry{Rank: rank, CandidateID: nd.id, AIScore: toFloat(nd.score)})
		return len(out) < n
	})
	return out, nil
}

// Rank returns the dense rank of id.
func (b *ScoreBoard) Rank(id string) (Entry, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	target, ok := b.scores[id]
	if !ok {
		return Entry{}, ErrNotFound
	}
	higher := 0
	var prev scoreFP
	walk(b.root, func(nd *node) bool {
		if nd.score <= target {
			return false
		}
		if higher == 0 || nd.score != prev {
			higher++
			prev = nd.score
		}
		return true
	})
	rank := higher + 1
	return Entry{Rank: rank, CandidateID: id, AIScore: toFloat(target)}, nil
}
