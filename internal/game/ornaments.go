package game

const (
	ornamentIDSpace  = 1_000_000_000
	ornamentOriginX  = 25
	ornamentOriginY  = 25
	ornamentRowSpace = 50
)

// NewOrnaments builds the catalog for a round: one ornament per (type, color)
// pair, stacked in one row per type so the first paint is stable.
func NewOrnaments(types, colors []string, rnd Random) []*Ornament {
	out := make([]*Ornament, 0, len(types)*len(colors))
	seen := make(map[int64]bool, cap(out))
	for ti, typ := range types {
		for _, color := range colors {
			id := int64(rnd.IntN(ornamentIDSpace))
			for seen[id] {
				id = int64(rnd.IntN(ornamentIDSpace))
			}
			seen[id] = true
			out = append(out, &Ornament{
				ID:    id,
				Type:  typ,
				Color: color,
				X:     ornamentOriginX,
				Y:     float64(ornamentOriginY + ornamentRowSpace*ti),
			})
		}
	}
	return out
}

// FindOrnament returns the ornament with the given id or ErrOrnamentNotFound.
func FindOrnament(ornaments []*Ornament, id int64) (*Ornament, error) {
	for _, o := range ornaments {
		if o.ID == id {
			return o, nil
		}
	}
	return nil, ErrOrnamentNotFound
}

func allOnTree(ornaments []*Ornament) bool {
	for _, o := range ornaments {
		if !o.IsOnTree {
			return false
		}
	}
	return true
}

func copyOrnament(o *Ornament) *Ornament {
	if o == nil {
		return nil
	}
	c := *o
	return &c
}
