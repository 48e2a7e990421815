// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package events

import (
	"context"
	"encoding/json"

	"github.com/moov-io/base"
	"github.com/moov-io/ledger/pkg/client"
	"github.com/moov-io/ledger/pkg/config"
	"github.com/moov-io/ledger/pkg/stream"

	"gocloud.dev/pubsub"
)

const (
	AccountSavedEvent        = "AccountSaved"
	TransactionRecordedEvent = "TransactionRecorded"
)

// Publisher notifies downstream consumers of changes to the ledger.
type Publisher interface {
	AccountSaved(ctx context.Context, acct *client.Account) error
	TransactionRecorded(ctx context.Context, xact *client.Transaction) error
	Shutdown(ctx context.Context) error
}

// NewPublisher returns a Publisher for the configured stream. When no stream
// is configured every event is discarded.
func NewPublisher(ctx context.Context, cfg config.Events) (Publisher, error) {
	if cfg.Stream == nil {
		return NewDiscardPublisher(), nil
	}
	topic, err := stream.OpenTopic(ctx, cfg.Stream)
	if err != nil {
		return nil, err
	}
	return &streamPublisher{topic: topic}, nil
}

type AccountSaved struct {
	EventID   string          `json:"eventID"`
	EventType string          `json:"eventType"`
	Account   *client.Account `json:"account"`
}

type TransactionRecorded struct {
	EventID     string              `json:"eventID"`
	EventType   string              `json:"eventType"`
	Transaction *client.Transaction `json:"transaction"`
}

type streamPublisher struct {
	topic *pubsub.Topic
}

func (pub *streamPublisher) AccountSaved(ctx context.Context, acct *client.Account) error {
	event := &AccountSaved{
		EventID:   base.ID(),
		EventType: AccountSavedEvent,
		Account:   acct,
	}
	return pub.send(ctx, event.EventID, event.EventType, event)
}

func (pub *streamPublisher) TransactionRecorded(ctx context.Context, xact *client.Transaction) error {
	event := &TransactionRecorded{
		EventID:     base.ID(),
		EventType:   TransactionRecordedEvent,
		Transaction: xact,
	}
	return pub.send(ctx, event.EventID, event.EventType, event)
}

func (pub *streamPublisher) send(ctx context.Context, eventID, eventType string, event interface{}) error {
	msg, err := buildMessage(eventID, eventType, event)
	if err != nil {
		return err
	}
	return pub.topic.Send(ctx, msg)
}

func (pub *streamPublisher) Shutdown(ctx context.Context) error {
	if pub == nil || pub.topic == nil {
		return nil
	}
	return pub.topic.Shutdown(ctx)
}

func buildMessage(eventID, eventType string, event interface{}) (*pubsub.Message, error) {
	bs, err := json.Marshal(event)
	if err != nil {
		return nil, err
	}
	return &pubsub.Message{
		Body: bs,
		Metadata: map[string]string{
			"eventID":   eventID,
			"eventType": eventType,
		},
	}, nil
}

// NewDiscardPublisher returns a Publisher which drops every event.
func NewDiscardPublisher() Publisher {
	return &discardPublisher{}
}

type discardPublisher struct{}

func (*discardPublisher) AccountSaved(_ context.Context, _ *client.Account) error { return nil }

func (*discardPublisher) TransactionRecorded(_ context.Context, _ *client.Transaction) error {
	return nil
}

func (*discardPublisher) Shutdown(_ context.Context) error { return nil }
