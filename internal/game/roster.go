package game

// Roster tracks connected players in join order. It holds no game rules
// beyond membership and score arithmetic.
type Roster struct {
	players []*Player
}

func NewRoster() *Roster {
	return &Roster{}
}

func (r *Roster) find(id string) (int, *Player) {
	for i, p := range r.players {
		if p.ID == id {
			return i, p
		}
	}
	return -1, nil
}

// Add appends a player with score 0. A reconnect on a known id is a no-op
// and reports false.
func (r *Roster) Add(id string) (Player, bool) {
	if _, p := r.find(id); p != nil {
		return *p, false
	}
	p := &Player{ID: id}
	r.players = append(r.players, p)
	return *p, true
}

// Remove drops the player and returns it, or ErrPlayerNotFound.
func (r *Roster) Remove(id string) (Player, error) {
	i, p := r.find(id)
	if p == nil {
		return Player{}, ErrPlayerNotFound
	}
	r.players = append(r.players[:i], r.players[i+1:]...)
	return *p, nil
}

func (r *Roster) ApplyScoreDelta(id string, delta int) error {
	_, p := r.find(id)
	if p == nil {
		return ErrPlayerNotFound
	}
	p.Score += delta
	return nil
}

// Rename sets the display name. Duplicate names are allowed.
func (r *Roster) Rename(id, name string) error {
	_, p := r.find(id)
	if p == nil {
		return ErrPlayerNotFound
	}
	p.Name = name
	return nil
}

func (r *Roster) Len() int { return len(r.players) }

// Snapshot returns a copy safe to hand to the transport.
func (r *Roster) Snapshot() []Player {
	out := make([]Player, 0, len(r.players))
	for _, p := range r.players {
		out = append(out, *p)
	}
	return out
}

// Leader returns the player with the highest score; ties go to whoever
// joined first. ok is false for an empty roster.
func (r *Roster) Leader() (leader Player, ok bool) {
	for _, p := range r.players {
		if !ok || p.Score > leader.Score {
			leader, ok = *p, true
		}
	}
	return leader, ok
}

// carryOver returns a new roster with the same identities and names and all
// scores reset to zero.
func (r *Roster) carryOver() *Roster {
	next := &Roster{players: make([]*Player, 0, len(r.players))}
	for _, p := range r.players {
		next.players = append(next.players, &Player{ID: p.ID, Name: p.Name})
	}
	return next
}
