// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

// Package stream exposes gocloud.dev/pubsub and side-loads various packages
// to register implementations such as kafka or in-memory. Please refer to
// specific documentation for each implementation.
//
//  - https://gocloud.dev/howto/pubsub/publish/
//  - https://gocloud.dev/howto/pubsub/subscribe/
package stream

import (
	"context"
	"errors"

	"github.com/moov-io/ledger/pkg/config"

	"github.com/Shopify/sarama"
	"gocloud.dev/pubsub"
	"gocloud.dev/pubsub/kafkapubsub"
	_ "gocloud.dev/pubsub/mempubsub"
)

// OpenTopic returns the pubsub.Topic described by cfg.
func OpenTopic(ctx context.Context, cfg *config.EventStream) (*pubsub.Topic, error) {
	if cfg == nil {
		return nil, errors.New("nil EventStream config")
	}
	if cfg.InMem != nil {
		return Topic(ctx, cfg.InMem.URL)
	}
	if cfg.Kafka != nil {
		return KafkaTopic(cfg.Kafka.Brokers, KafkaConfig(), cfg.Kafka.Topic, nil)
	}
	return nil, errors.New("unknown EventStream config")
}

func Topic(ctx context.Context, url string) (*pubsub.Topic, error) {
	return pubsub.OpenTopic(ctx, url)
}

// KafkaConfig returns the sarama.Config used for producing ledger events.
// kafkapubsub requires Producer.Return.Successes to be true.
func KafkaConfig() *sarama.Config {
	cfg := sarama.NewConfig()
	cfg.ClientID = "ledger"
	cfg.Producer.Return.Successes = true
	cfg.Producer.RequiredAcks = sarama.WaitForAll
	return cfg
}

// KafkaTopic creates a pubsub.Topic that sends to a Kafka topic. It uses a sarama.SyncProducer to send messages.
// Producer options can be configured in the Producer section of the sarama.Config: https://godoc.org/github.com/Shopify/sarama#Config.
func KafkaTopic(brokers []string, config *sarama.Config, topicName string, opts *kafkapubsub.TopicOptions) (*pubsub.Topic, error) {
	return kafkapubsub.OpenTopic(brokers, config, topicName, opts)
}
