package game

import (
	"errors"
	"maps"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var (
	ErrOrnamentNotFound = errors.New("ornament not found")
	ErrPlayerNotFound   = errors.New("player not found")
	ErrUnknownEvent     = errors.New("unknown score event")
	ErrDropOffTree      = errors.New("ornament is not on the tree")
)

const (
	DefaultHuntCountdown = 15
	DefaultTickInterval  = time.Second
)

// Broadcaster is the transport side of the engine. Implementations must not
// block and must not call back into the Engine.
type Broadcaster interface {
	EmitTo(sid, event string, args ...any)
	Broadcast(event string, args ...any)
	BroadcastExcept(sid, event string, args ...any)
}

type Options struct {
	Scheduler     Scheduler
	Random        Random
	Logger        *zerolog.Logger
	HuntCountdown int
	TickInterval  time.Duration
	// VerifyDrops rejects onTree events for ornaments whose last known
	// position is off the tree. Off by default: clients are trusted.
	VerifyDrops bool
	Tree        Tree
	Types       []string
	Colors      []string
	// OnRoundEnd receives a snapshot of every round that reaches the end
	// stage. It runs after the engine lock is released.
	OnRoundEnd func(*Session)
	NewID      func() string
}

// Engine owns the single live session. Every handler and every countdown
// tick runs under mu, so mutations never interleave.
type Engine struct {
	mu      sync.Mutex
	session *Session
	timer   *huntTimer

	out   Broadcaster
	sched Scheduler
	rnd   Random
	log   zerolog.Logger
	opts  Options
}

func NewEngine(out Broadcaster, opts Options) (*Engine, error) {
	if opts.Scheduler == nil {
		opts.Scheduler = TickerScheduler{}
	}
	if opts.Random == nil {
		r, err := NewRandom()
		if err != nil {
			return nil, err
		}
		opts.Random = r
	}
	if opts.HuntCountdown <= 0 {
		opts.HuntCountdown = DefaultHuntCountdown
	}
	if opts.TickInterval <= 0 {
		opts.TickInterval = DefaultTickInterval
	}
	if opts.Tree == (Tree{}) {
		opts.Tree = DefaultTree
	}
	if opts.Types == nil {
		opts.Types = DecorationTypes
	}
	if opts.Colors == nil {
		opts.Colors = DecorationColors
	}
	if opts.NewID == nil {
		opts.NewID = uuid.NewString
	}
	logger := log.Logger
	if opts.Logger != nil {
		logger = *opts.Logger
	}
	e := &Engine{
		out:   out,
		sched: opts.Scheduler,
		rnd:   opts.Random,
		log:   logger,
		opts:  opts,
	}
	e.session = e.newSession(NewRoster())
	return e, nil
}

func (e *Engine) newSession(roster *Roster) *Session {
	return &Session{
		ID:          e.opts.NewID(),
		Stage:       StageDecorating,
		Decorations: NewOrnaments(e.opts.Types, e.opts.Colors, e.rnd),
		roster:      roster,
	}
}

// Snapshot returns a deep copy of the live session.
func (e *Engine) Snapshot() *Session {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.session.snapshot()
}

// Join adds the connection to the roster, sends it the full game and tells
// everyone else about the new player.
func (e *Engine) Join(sid string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	p, added := e.session.roster.Add(sid)
	e.out.EmitTo(sid, MsgGame, e.session.snapshot())
	if !added {
		return
	}
	e.log.Info().Str("sid", sid).Int("players", e.session.roster.Len()).Msg("player joined")
	e.out.BroadcastExcept(sid, MsgPlayerJoined, p)
}

func (e *Engine) Leave(sid string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	p, err := e.session.roster.Remove(sid)
	if err != nil {
		return err
	}
	e.log.Info().Str("sid", sid).Int("players", e.session.roster.Len()).Msg("player left")
	e.out.Broadcast(MsgPlayerLeft, p)
	return nil
}

func (e *Engine) Rename(sid, name string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.session.roster.Rename(sid, name); err != nil {
		return err
	}
	e.out.Broadcast(MsgNewPlayerName, NameChange{ID: sid, Name: name})
	return nil
}

// Place moves an ornament and echoes the position to every client. Positions
// are trusted telemetry, so no stage check applies.
func (e *Engine) Place(pos Position) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	o, err := FindOrnament(e.session.Decorations, pos.ID)
	if err != nil {
		return err
	}
	o.X, o.Y = pos.X, pos.Y
	e.out.Broadcast(MsgDecoration, pos)
	return nil
}

// Score applies a client-reported score change and runs whatever stage
// transition the event completes.
func (e *Engine) Score(playerID string, delta int, ev ScoreEvent) error {
	e.mu.Lock()
	ended, err := e.score(playerID, delta, ev)
	e.mu.Unlock()
	if ended != nil && e.opts.OnRoundEnd != nil {
		e.opts.OnRoundEnd(ended)
	}
	return err
}

func (e *Engine) score(playerID string, delta int, ev ScoreEvent) (*Session, error) {
	s := e.session

	var target *Ornament
	switch ev.Type {
	case EventOnTree, EventOffTree:
		if ev.DecorationID == nil {
			return nil, ErrOrnamentNotFound
		}
		o, err := FindOrnament(s.Decorations, *ev.DecorationID)
		if err != nil {
			return nil, err
		}
		if ev.Type == EventOnTree && e.opts.VerifyDrops && !e.opts.Tree.Holds(o) {
			return nil, ErrDropOffTree
		}
		target = o
	case EventTargetFound:
	default:
		return nil, ErrUnknownEvent
	}

	if err := s.roster.ApplyScoreDelta(playerID, delta); err != nil {
		if target == nil {
			// a departed player can't claim the hunt
			return nil, err
		}
		// the ornament still moved, so the event counts without the delta
		e.log.Debug().Str("round", s.ID).Str("player", playerID).Int64("ornament", target.ID).Msg("score delta for unknown player dropped")
	}
	if target != nil {
		target.IsOnTree = ev.Type == EventOnTree
		if target.IsOnTree {
			target.Owner = playerID
		}
	}
	e.out.Broadcast(MsgScoreUpdate, ScoreUpdate{PlayerID: playerID, ScoreChange: delta, Event: ev})

	switch {
	case s.Stage == StageDecorating && allOnTree(s.Decorations):
		e.finishDecorating(s)
	case s.Stage == StageHunting && ev.Type == EventTargetFound:
		e.finishHunt(s, playerID)
		return s.snapshot(), nil
	}
	return nil, nil
}

// Reset cancels the countdown before replacing the session so no tick from
// the old round can reach the new one.
func (e *Engine) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.stopTimer()
	old := e.session
	e.session = e.newSession(old.roster.carryOver())
	e.log.Info().Str("old", old.ID).Str("round", e.session.ID).Msg("round reset")
	e.out.Broadcast(MsgGame, e.session.snapshot())
}

// Close stops the countdown, if any.
func (e *Engine) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.stopTimer()
}

func (e *Engine) enter(s *Session, to Stage) bool {
	if s.Stage.Next() != to || !s.Stage.Before(to) {
		e.log.Error().Str("round", s.ID).Str("from", string(s.Stage)).Str("to", string(to)).Msg("illegal stage transition")
		return false
	}
	e.log.Info().Str("round", s.ID).Str("from", string(s.Stage)).Str("to", string(to)).Msg("stage transition")
	s.Stage = to
	return true
}

func (e *Engine) finishDecorating(s *Session) {
	if !e.enter(s, StageStyleBonuses) {
		return
	}
	e.out.Broadcast(MsgEndDecorating)

	bonuses := StyleBonuses(s.roster.Snapshot(), s.Decorations)
	s.StyleBonuses = bonuses
	for id, bonus := range bonuses {
		_ = s.roster.ApplyScoreDelta(id, bonus)
	}
	e.out.Broadcast(MsgStyleBonuses, maps.Clone(bonuses))

	if !e.enter(s, StageReadyForHunt) {
		return
	}
	e.out.Broadcast(MsgReadyForHunt)
	e.startHuntTimer(s)
}

func (e *Engine) startHuntTimer(s *Session) {
	e.stopTimer()
	n := e.opts.HuntCountdown
	s.HuntCountdown = &n
	e.out.Broadcast(MsgHuntCountdown, n)

	t := &huntTimer{session: s}
	t.stop = e.sched.Every(e.opts.TickInterval, func() { e.tick(t) })
	e.timer = t
}

func (e *Engine) tick(t *huntTimer) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.timer != t || e.session != t.session {
		return
	}
	s := t.session
	if s.Stage != StageReadyForHunt || s.HuntCountdown == nil {
		e.stopTimer()
		return
	}
	n := *s.HuntCountdown - 1
	s.HuntCountdown = &n
	e.out.Broadcast(MsgHuntCountdown, n)
	if n > 0 {
		return
	}
	e.stopTimer()
	e.startHunt(s)
}

func (e *Engine) stopTimer() {
	if e.timer == nil {
		return
	}
	e.timer.cancel()
	e.timer = nil
}

func (e *Engine) startHunt(s *Session) {
	if len(s.Decorations) == 0 {
		e.log.Error().Str("round", s.ID).Msg("no ornaments to hunt")
		return
	}
	if !e.enter(s, StageHunting) {
		return
	}
	s.HuntCountdown = nil
	s.HuntTarget = s.Decorations[e.rnd.IntN(len(s.Decorations))]
	e.out.Broadcast(MsgStartHunt, copyOrnament(s.HuntTarget))
}

func (e *Engine) finishHunt(s *Session, hunterID string) {
	if !e.enter(s, StageEnd) {
		return
	}
	s.HuntWinnerID = hunterID
	if leader, ok := s.roster.Leader(); ok {
		s.WinnerID = leader.ID
	}
	e.out.Broadcast(MsgGameOver, GameOver{HuntWinnerID: s.HuntWinnerID, WinnerID: s.WinnerID})
}

func (s *Session) snapshot() *Session {
	c := &Session{
		ID:           s.ID,
		Stage:        s.Stage,
		Players:      s.roster.Snapshot(),
		Decorations:  make([]*Ornament, 0, len(s.Decorations)),
		StyleBonuses: maps.Clone(s.StyleBonuses),
		HuntTarget:   copyOrnament(s.HuntTarget),
		HuntWinnerID: s.HuntWinnerID,
		WinnerID:     s.WinnerID,
	}
	for _, o := range s.Decorations {
		c.Decorations = append(c.Decorations, copyOrnament(o))
	}
	if s.HuntCountdown != nil {
		n := *s.HuntCountdown
		c.HuntCountdown = &n
	}
	return c
}
