// Package notify publishes game events to NATS so that other services,
// like a leaderboard, can follow games without the engine knowing about
// them.
package notify

import (
	"encoding/json"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog/log"

	"github.com/domino14/lexistack/board"
	"github.com/domino14/lexistack/game"
)

// Publisher is the part of a NATS connection the notifier needs.
type Publisher interface {
	Publish(subj string, data []byte) error
}

// WordMessage is published on <subject>.word for every cleared word.
type WordMessage struct {
	Word       string           `json:"word"`
	Points     int              `json:"points"`
	Score      int              `json:"score"`
	Combo      float64          `json:"combo"`
	Cleared    []board.Position `json:"cleared"`
	ReceivedAt time.Time        `json:"receivedAt"`
}

// GameOverMessage is published on <subject>.gameover.
type GameOverMessage struct {
	Summary game.Summary `json:"summary"`
}

type Notifier struct {
	pub     Publisher
	conn    *nats.Conn
	subject string
	now     func() time.Time
}

func New(pub Publisher, subject string) *Notifier {
	return &Notifier{pub: pub, subject: subject, now: time.Now}
}

// Dial connects to the NATS server at url.
func Dial(url, subject string) (*Notifier, error) {
	nc, err := nats.Connect(url,
		nats.Name("lexistack"),
		nats.MaxReconnects(-1),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				log.Warn().Err(err).Msg("nats-disconnected")
			}
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			log.Info().Str("url", nc.ConnectedUrlRedacted()).Msg("nats-reconnected")
		}),
	)
	if err != nil {
		return nil, err
	}
	n := New(nc, subject)
	n.conn = nc
	return n, nil
}

// Encode turns an event into the subject and payload to publish. ok is
// false for events that are not published.
func (n *Notifier) Encode(evt game.Event) (subj string, data []byte, ok bool, err error) {
	var msg any
	switch evt.Type {
	case game.EventWordCleared:
		subj = n.subject + ".word"
		msg = WordMessage{
			Word:       evt.Word,
			Points:     evt.Points,
			Score:      evt.State.Score,
			Combo:      evt.State.ComboMultiplier,
			Cleared:    evt.Cleared,
			ReceivedAt: n.now(),
		}
	case game.EventGameOver:
		if evt.Summary == nil {
			return "", nil, false, nil
		}
		subj = n.subject + ".gameover"
		msg = GameOverMessage{Summary: *evt.Summary}
	default:
		return "", nil, false, nil
	}
	data, err = json.Marshal(msg)
	if err != nil {
		return "", nil, false, err
	}
	return subj, data, true, nil
}

// Handle publishes evt if it is of interest. Failures are only logged;
// they never reach the game.
func (n *Notifier) Handle(evt game.Event) {
	subj, data, ok, err := n.Encode(evt)
	if err != nil {
		log.Err(err).Str("event", evt.Type.String()).Msg("could not encode event")
		return
	}
	if !ok {
		return
	}
	if err := n.pub.Publish(subj, data); err != nil {
		log.Warn().Err(err).Str("subject", subj).Msg("publish-failed")
		return
	}
	log.Debug().Str("subject", subj).Msg("event-published")
}

// Listener adapts the notifier for game.Engine.AddListener.
func (n *Notifier) Listener() game.Listener {
	return n.Handle
}

// Close flushes pending messages and closes the connection, if the
// notifier owns one.
func (n *Notifier) Close() error {
	if n.conn == nil {
		return nil
	}
	return n.conn.Drain()
}
