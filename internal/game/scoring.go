package game

import "math"

const styleBonusDivisor = 20

// StyleBonuses computes each player's bonus from the spread of the ornaments
// they own: the summed |dx|+|dy| distance of every owned ornament from the
// group's mean position, divided by 20 and floored. Players owning nothing
// get 0.
func StyleBonuses(players []Player, ornaments []*Ornament) map[string]int {
	bonuses := make(map[string]int, len(players))
	for _, p := range players {
		bonuses[p.ID] = styleBonus(p.ID, ornaments)
	}
	return bonuses
}

func styleBonus(playerID string, ornaments []*Ornament) int {
	var owned []*Ornament
	var sumX, sumY float64
	for _, o := range ornaments {
		if o.Owner != playerID {
			continue
		}
		owned = append(owned, o)
		sumX += o.X
		sumY += o.Y
	}
	if len(owned) == 0 {
		return 0
	}
	meanX := sumX / float64(len(owned))
	meanY := sumY / float64(len(owned))

	var spread float64
	for _, o := range owned {
		spread += math.Abs(o.X-meanX) + math.Abs(o.Y-meanY)
	}
	return int(math.Floor(spread / styleBonusDivisor))
}
