package game

// OrnamentSize is the client-side edge length of an ornament sprite. Client
// positions are the sprite's top-left corner.
const OrnamentSize = 25

// Tree is the triangular drop zone drawn by the client.
type Tree struct {
	Top, Bottom, Left, Right float64
}

var DefaultTree = Tree{Top: -50, Bottom: 550, Left: 420, Right: 870}

// Contains reports whether the point lies inside the triangle with its apex
// at (middle, Top) and its base along Bottom.
func (t Tree) Contains(x, y float64) bool {
	if y < t.Top || y > t.Bottom {
		return false
	}
	middle := (t.Left + t.Right) / 2
	height := t.Bottom - t.Top
	if x <= middle {
		return y >= height/(middle-t.Left)*(middle-x)+t.Top
	}
	return y >= height/(t.Right-middle)*(x-middle)+t.Top
}

// Holds reports whether an ornament's centre is on the tree.
func (t Tree) Holds(o *Ornament) bool {
	return t.Contains(o.X+OrnamentSize/2.0, o.Y+OrnamentSize/2.0)
}
