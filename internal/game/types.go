package game

// Stage values are the strings the browser client compares against.
type Stage string

const (
	StageDecorating   Stage = "decorating"
	StageStyleBonuses Stage = "style bonuses"
	StageReadyForHunt Stage = "ready for hunt"
	StageHunting      Stage = "hunting"
	StageEnd          Stage = "end"
)

var stageOrder = map[Stage]int{
	StageDecorating:   0,
	StageStyleBonuses: 1,
	StageReadyForHunt: 2,
	StageHunting:      3,
	StageEnd:          4,
}

// Next reports the stage that follows s, or s itself for the terminal stage.
func (s Stage) Next() Stage {
	switch s {
	case StageDecorating:
		return StageStyleBonuses
	case StageStyleBonuses:
		return StageReadyForHunt
	case StageReadyForHunt:
		return StageHunting
	case StageHunting:
		return StageEnd
	}
	return s
}

// Before reports whether s comes strictly earlier in a round than other.
func (s Stage) Before(other Stage) bool {
	return stageOrder[s] < stageOrder[other]
}

// Decoration catalog used for every round.
var (
	DecorationTypes = []string{
		"logo",
		"IT",
		"Nursing",
		"Nursing School",
		"EMS",
		"Finance",
		"Professional",
		"Automotive",
		"Fitness",
		"Medical",
		"Behavioral Health",
	}
	DecorationColors = []string{"red", "orange", "yellow", "green", "blue", "purple"}
)

type Player struct {
	ID    string `json:"id"`
	Name  string `json:"name,omitempty"`
	Score int    `json:"score"`
}

type Ornament struct {
	ID       int64   `json:"id"`
	Type     string  `json:"type"`
	Color    string  `json:"color"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	IsOnTree bool    `json:"isOnTree"`
	Owner    string  `json:"owner,omitempty"`
}

// Position is a placement update as sent by clients and echoed back.
type Position struct {
	ID int64   `json:"id"`
	X  float64 `json:"x"`
	Y  float64 `json:"y"`
}

type EventType string

const (
	EventOnTree      EventType = "onTree"
	EventOffTree     EventType = "offTree"
	EventTargetFound EventType = "target found"
)

type ScoreEvent struct {
	Type         EventType `json:"type"`
	DecorationID *int64    `json:"decorationId,omitempty"`
}

type ScoreUpdate struct {
	PlayerID    string     `json:"playerId"`
	ScoreChange int        `json:"scoreChange"`
	Event       ScoreEvent `json:"event"`
}

type NameChange struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type GameOver struct {
	HuntWinnerID string `json:"huntWinnerId"`
	WinnerID     string `json:"winnerId"`
}

// Session is the full state of one round. The JSON form is what clients
// receive in the "game" message.
type Session struct {
	ID            string         `json:"id"`
	Stage         Stage          `json:"stage"`
	Players       []Player       `json:"players"`
	Decorations   []*Ornament    `json:"decorations"`
	StyleBonuses  map[string]int `json:"styleBonuses,omitempty"`
	HuntCountdown *int           `json:"huntCountdown,omitempty"`
	HuntTarget    *Ornament      `json:"huntTarget,omitempty"`
	HuntWinnerID  string         `json:"huntWinnerId,omitempty"`
	WinnerID      string         `json:"winnerId,omitempty"`

	roster *Roster
}

// Outbound message names.
const (
	MsgGame          = "game"
	MsgPlayerJoined  = "player joined"
	MsgPlayerLeft    = "player left"
	MsgDecoration    = "decoration"
	MsgScoreUpdate   = "score update"
	MsgNewPlayerName = "new player name"
	MsgEndDecorating = "end decorating"
	MsgStyleBonuses  = "style bonuses"
	MsgReadyForHunt  = "ready for hunt"
	MsgHuntCountdown = "hunt countdown"
	MsgStartHunt     = "start hunt"
	MsgGameOver      = "game over"
)
