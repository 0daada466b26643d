// services/events.go
package services

import (
	"context"
	"encoding/json"
	"time"

	appContext "github.com/alphabatem/common/context"
	log "github.com/sirupsen/logrus"
)

const eventChannel = "popmath:events"

// GameEvent is what the audio/speech layer subscribes to. Text carries the
// optional text-to-speech content.
type GameEvent struct {
	UserID    string    `json:"user_id"`
	Event     string    `json:"event"`
	Text      string    `json:"text,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// EventService fans game events out over redis pub/sub. Strictly
// fire-and-forget: failures are logged and dropped, gameplay never waits.
type EventService struct {
	appContext.DefaultService

	redisSvc *RedisService
}

const EVENT_SVC = "event_svc"

func (svc EventService) Id() string {
	return EVENT_SVC
}

func (svc *EventService) Configure(ctx *appContext.Context) error {
	return svc.DefaultService.Configure(ctx)
}

func (svc *EventService) Start() error {
	svc.redisSvc = svc.Service(REDIS_SVC).(*RedisService)
	return nil
}

func (svc *EventService) Publish(userID, event, text string) {
	if svc.redisSvc == nil || svc.redisSvc.GetClient() == nil {
		return
	}

	payload, err := json.Marshal(GameEvent{
		UserID:    userID,
		Event:     event,
		Text:      text,
		Timestamp: time.Now(),
	})
	if err != nil {
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()

		if err := svc.redisSvc.PublishJSON(ctx, eventChannel, payload); err != nil {
			log.WithError(err).WithField("event", event).Debug("Dropped game event")
		}
	}()
}
