// Package events is the outbound notification seam. Delivery to clients
// (sockets, push) is not part of this service; a Publisher implementation
// owned by a delivery system plugs in here.
package events

import (
	"context"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

const (
	TypeMatchCreated   = "match.created"
	TypeMessageCreated = "message.created"
)

type Event struct {
	Type       string
	Recipients []primitive.ObjectID
	Payload    any
	At         time.Time
}

type Publisher interface {
	Publish(ctx context.Context, ev Event)
}

// LogPublisher records events in the log only.
type LogPublisher struct {
	log *zap.Logger
}

func NewLogPublisher(log *zap.Logger) *LogPublisher {
	return &LogPublisher{log: log}
}

func (p *LogPublisher) Publish(_ context.Context, ev Event) {
	recipients := make([]string, 0, len(ev.Recipients))
	for _, id := range ev.Recipients {
		recipients = append(recipients, id.Hex())
	}
	p.log.Info("event published",
		zap.String("type", ev.Type),
		zap.Strings("recipients", recipients),
		zap.Time("at", ev.At),
	)
}

// Recorder keeps published events in memory.
type Recorder struct {
	mu     sync.Mutex
	Events []Event
}

func (r *Recorder) Publish(_ context.Context, ev Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Events = append(r.Events, ev)
}
