package physics

import "github.com/johnxnguyen/newton/internal/geometry"

const noIndex = int32(-1)

// Subdivision stops once a node's half-width reaches this floor; bodies
// that cannot be separated beyond it share a leaf instead of recursing
// forever.
const minHalfWidth = 1e-12

// treeNode is a tagged variant stored in the tree's arena. A node with
// children is internal, a node with items is a leaf, and a node with
// neither is empty. Aggregates cover the whole subtree: mass is the total
// mass and weighted is the mass-weighted sum of positions, so the center
// of mass is weighted/mass.
type treeNode struct {
	box      geometry.Square
	children [4]int32 // NW, NE, SW, SE; noIndex when not internal
	first    int32    // head of the leaf's item list; noIndex otherwise
	mass     float64
	weighted geometry.Point
}

// treeItem links bodies that share a leaf.
type treeItem struct {
	body *Body
	next int32
}

// Tree is a Barnes-Hut quadtree over a bounding square. Nodes live in a
// per-step arena and hold non-owning references to the field's bodies;
// the whole structure is discarded when the step ends.
type Tree struct {
	nodes []treeNode
	items []treeItem
}

func NewTree(space geometry.Square) *Tree {
	t := &Tree{nodes: make([]treeNode, 0, 64)}
	t.newNode(space)
	return t
}

func (t *Tree) newNode(box geometry.Square) int32 {
	idx := int32(len(t.nodes))
	t.nodes = append(t.nodes, treeNode{
		box:      box,
		children: [4]int32{noIndex, noIndex, noIndex, noIndex},
		first:    noIndex,
	})
	return idx
}

func (t *Tree) isInternal(n int32) bool {
	return t.nodes[n].children[geometry.NW] != noIndex
}

// Insert adds the body to the tree, maintaining the aggregate mass and
// center of mass along the descent path.
func (t *Tree) Insert(b *Body) {
	idx := int32(len(t.items))
	t.items = append(t.items, treeItem{body: b, next: noIndex})
	t.insert(0, idx)
}

func (t *Tree) insert(n int32, item int32) {
	b := t.items[item].body
	t.nodes[n].mass += b.Mass
	t.nodes[n].weighted = t.nodes[n].weighted.Add(b.Position.Mul(b.Mass))

	if t.isInternal(n) {
		t.passDown(n, item)
		return
	}

	if t.nodes[n].first == noIndex {
		// empty node becomes a leaf
		t.nodes[n].first = item
		return
	}

	// occupied leaf: coalesce when the bodies cannot be separated,
	// otherwise subdivide and push everything down
	if t.nodes[n].box.Half <= minHalfWidth || t.coincident(n, b) {
		t.items[item].next = t.nodes[n].first
		t.nodes[n].first = item
		return
	}

	t.subdivide(n)
	first := t.nodes[n].first
	t.nodes[n].first = noIndex
	for i := first; i != noIndex; {
		next := t.items[i].next
		t.items[i].next = noIndex
		t.passDown(n, i)
		i = next
	}
	t.passDown(n, item)
}

// passDown routes an item into the child quadrant for its position. The
// child's aggregates are updated by the recursive insert; the current
// node's were already counted.
func (t *Tree) passDown(n int32, item int32) {
	q := t.nodes[n].box.Quadrant(t.items[item].body.Position)
	t.insert(t.nodes[n].children[q], item)
}

// coincident reports whether the body sits exactly on every body already
// in the leaf. Subdividing such a leaf would recurse without progress.
func (t *Tree) coincident(n int32, b *Body) bool {
	for i := t.nodes[n].first; i != noIndex; i = t.items[i].next {
		if t.items[i].body.Position != b.Position {
			return false
		}
	}
	return true
}

func (t *Tree) subdivide(n int32) {
	box := t.nodes[n].box
	for q := geometry.NW; q <= geometry.SE; q++ {
		child := t.newNode(box.Child(q))
		t.nodes[n].children[q] = child
	}
}

// ForceOn walks the tree and returns the net gravitational force on the
// body. Internal nodes whose side length over distance to the center of
// mass is below theta stand in for their whole subtree; theta of zero
// degenerates to exact pairwise summation. Children are visited in the
// fixed order NW, NE, SW, SE, so summation order is deterministic.
func (t *Tree) ForceOn(b *Body, gravity Gravity, theta float64) geometry.Vector {
	return t.forceOn(0, b, gravity, theta)
}

func (t *Tree) forceOn(n int32, b *Body, gravity Gravity, theta float64) geometry.Vector {
	node := &t.nodes[n]
	if node.mass == 0 {
		return geometry.Zero()
	}

	if !t.isInternal(n) {
		force := geometry.Zero()
		for i := node.first; i != noIndex; i = t.items[i].next {
			other := t.items[i].body
			if other == b {
				continue
			}
			force = force.Add(gravity.Between(b, other.Mass, other.Position))
		}
		return force
	}

	com := node.weighted.Div(node.mass)
	d := b.Position.DistanceTo(com)
	if d > 0 && node.box.Side()/d < theta {
		return gravity.Between(b, node.mass, com)
	}

	force := geometry.Zero()
	for _, child := range node.children {
		force = force.Add(t.forceOn(child, b, gravity, theta))
	}
	return force
}

// TotalMass returns the aggregate mass at the root.
func (t *Tree) TotalMass() float64 {
	return t.nodes[0].mass
}

// CenterOfMass returns the mass-weighted mean position of all bodies. The
// second return value is false for an empty tree.
func (t *Tree) CenterOfMass() (geometry.Point, bool) {
	if t.nodes[0].mass == 0 {
		return geometry.Origin(), false
	}
	return t.nodes[0].weighted.Div(t.nodes[0].mass), true
}

// Count returns the number of bodies held in leaves.
func (t *Tree) Count() int {
	return len(t.items)
}
