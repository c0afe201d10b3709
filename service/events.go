package service

import (
	"fmt"

	"fenrir/api/pb"
)

// EventHandler adapts the book service to the feed consumer: each Kafka
// message on the events topic is one protobuf-encoded order event.
func EventHandler(svc *BookService) func([]byte) error {
	return func(value []byte) error {
		var ev pb.OrderEvent
		if err := pb.Unmarshal(value, &ev); err != nil {
			return fmt.Errorf("service: decode order event: %w", err)
		}
		_, err := svc.Apply(&ev)
		return err
	}
}
