// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package config

import (
	"errors"
	"fmt"
)

// Events configures where ledger events are published. Publishing is disabled
// when Stream is nil.
type Events struct {
	Stream *EventStream
}

func (cfg Events) Validate() error {
	if err := cfg.Stream.Validate(); err != nil {
		return fmt.Errorf("stream: %v", err)
	}
	return nil
}

type EventStream struct {
	InMem *InMemStream
	Kafka *KafkaStream
}

func (cfg *EventStream) Validate() error {
	if cfg == nil {
		return nil
	}
	if cfg.InMem == nil && cfg.Kafka == nil {
		return errors.New("missing inmem or kafka config")
	}
	if cfg.InMem != nil && cfg.InMem.URL == "" {
		return errors.New("inmem: missing stream url")
	}
	if k := cfg.Kafka; k != nil {
		if len(k.Brokers) == 0 || k.Topic == "" {
			return errors.New("kafka: missing brokers or topic")
		}
	}
	return nil
}

type InMemStream struct {
	URL string
}

type KafkaStream struct {
	Brokers []string
	Topic   string
}
