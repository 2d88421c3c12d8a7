package ws

import (
	"github.com/gin-gonic/gin"
	socketio "github.com/googollee/go-socket.io"
	"github.com/rdhelms/deck-the-pockets/internal/game"
	"github.com/rs/zerolog/log"
)

// Engine is the session engine as seen by the transport.
type Engine interface {
	Join(sid string)
	Leave(sid string) error
	Place(pos game.Position) error
	Score(playerID string, delta int, ev game.ScoreEvent) error
	Rename(sid, name string) error
	Reset()
}

type scorePayload struct {
	PlayerID    string          `json:"playerId"`
	ScoreChange int             `json:"scoreChange"`
	Event       game.ScoreEvent `json:"event"`
}

type namePayload struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type Server struct {
	Hub    *Hub
	engine Engine
}

func New(hub *Hub) *Server {
	return &Server{Hub: hub}
}

// SetEngine wires the engine. The engine broadcasts through the hub, so the
// two are built in two steps.
func (srv *Server) SetEngine(e Engine) { srv.engine = e }

// Mount attaches the Socket.IO server with handlers to the given Gin engine.
func (srv *Server) Mount(r *gin.Engine) *socketio.Server {
	io := socketio.NewServer(nil)

	io.OnConnect("/", func(s socketio.Conn) error {
		srv.connect(s)
		return nil
	})

	io.OnEvent("/", "decoration", func(s socketio.Conn, payload game.Position) {
		srv.decoration(s.ID(), payload)
	})

	io.OnEvent("/", "score", func(s socketio.Conn, payload scorePayload) {
		srv.score(s.ID(), payload)
	})

	io.OnEvent("/", "update player name", func(s socketio.Conn, payload namePayload) {
		srv.rename(s.ID(), payload)
	})

	io.OnEvent("/", "reset", func(s socketio.Conn) {
		srv.reset(s.ID())
	})

	io.OnError("/", func(s socketio.Conn, e error) {
		if s == nil {
			log.Error().Err(e).Msg("socket error")
			return
		}
		log.Error().Str("sid", s.ID()).Err(e).Msg("socket error")
	})

	io.OnDisconnect("/", func(s socketio.Conn, reason string) {
		srv.disconnect(s.ID(), reason)
	})

	go func() {
		if err := io.Serve(); err != nil {
			log.Error().Err(err).Msg("socket.io serve")
		}
	}()

	r.GET("/socket.io/*any", gin.WrapH(io))
	r.POST("/socket.io/*any", gin.WrapH(io))

	return io
}

func (srv *Server) connect(c Conn) {
	srv.Hub.Add(c)
	log.Info().Str("sid", c.ID()).Msg("socket connected")
	srv.engine.Join(c.ID())
}

func (srv *Server) disconnect(sid, reason string) {
	srv.Hub.Remove(sid)
	log.Info().Str("sid", sid).Str("reason", reason).Msg("socket disconnected")
	if err := srv.engine.Leave(sid); err != nil {
		log.Debug().Str("sid", sid).Err(err).Msg("leave ignored")
	}
}

func (srv *Server) decoration(sid string, pos game.Position) {
	if err := srv.engine.Place(pos); err != nil {
		log.Debug().Str("sid", sid).Int64("ornament", pos.ID).Err(err).Msg("decoration ignored")
	}
}

// score credits the sending connection; the playerId in the payload is only
// checked for consistency.
func (srv *Server) score(sid string, payload scorePayload) {
	if payload.PlayerID != "" && payload.PlayerID != sid {
		log.Warn().Str("sid", sid).Str("playerId", payload.PlayerID).Msg("score for another player, crediting sender")
	}
	if err := srv.engine.Score(sid, payload.ScoreChange, payload.Event); err != nil {
		log.Debug().Str("sid", sid).Str("event", string(payload.Event.Type)).Err(err).Msg("score ignored")
	}
}

func (srv *Server) rename(sid string, payload namePayload) {
	if payload.ID != "" && payload.ID != sid {
		log.Warn().Str("sid", sid).Str("id", payload.ID).Msg("rename for another player, renaming sender")
	}
	if err := srv.engine.Rename(sid, payload.Name); err != nil {
		log.Debug().Str("sid", sid).Err(err).Msg("rename ignored")
	}
}

func (srv *Server) reset(sid string) {
	log.Info().Str("sid", sid).Msg("reset requested")
	srv.engine.Reset()
}
