package modules

import (
	"context"
	"strings"

	"github.com/ThreeDotsLabs/watermill/message"
	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"

	"github.com/Luismorlan/newsdash/analytics"
	"github.com/Luismorlan/newsdash/engine"
	"github.com/Luismorlan/newsdash/model"
	Logger "github.com/Luismorlan/newsdash/utils/log"
	"github.com/Luismorlan/newsdash/utils/metrics"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type ReadCounterConfig struct {
	Name string
}

// ReadCounter counts the article read events published on the event bus by
// category. The events only notify about history entries that are already
// stored, a dropped event costs a sample and never a row.
type ReadCounter struct {
	engine.Module

	Config ReadCounterConfig

	EventBus message.Subscriber
}

func NewReadCounter(config ReadCounterConfig, e message.Subscriber) *ReadCounter {
	return &ReadCounter{
		Config:   config,
		EventBus: e,
	}
}

func (r *ReadCounter) count(msg *message.Message) {
	var event model.ArticleReadEvent
	if err := json.Unmarshal(msg.Payload, &event); err != nil {
		Logger.Log.WithFields(logrus.Fields{
			"module":     r.Name(),
			"message_id": msg.UUID,
			"request_id": msg.Metadata.Get("request_id"),
		}).Errorln("fail to decode article read event: ", err)
		return
	}
	category := strings.TrimSpace(event.Entry.Category)
	if category == "" {
		category = analytics.UncategorizedArticle
	}
	metrics.ArticleReads.WithLabelValues(category).Inc()
}

func (r *ReadCounter) RunModule(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	messages, err := r.EventBus.Subscribe(ctx, model.TopicArticleRead)
	if err != nil {
		return err
	}

	for msg := range messages {
		r.count(msg)
		msg.Ack()
	}
	return nil
}

func (r *ReadCounter) Name() string {
	return r.Config.Name
}

func (r *ReadCounter) Shutdown() {}
