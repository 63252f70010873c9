package service

import (
	"context"

	"github.com/minio/minio-go/v7/pkg/notification"
	"github.com/segmentio/kafka-go"
)

// MessageIterator defines the contract for consuming bucket notifications
// from a Kafka topic. It is used by the service's Iterator to abstract away
// the details of the underlying Kafka consumer.
//
// Implementations are responsible for the lifecycle of the consumer connection.
type MessageIterator interface {
	// Messages returns a receive-only channel of Kafka messages. The channel
	// is closed by the implementation when the consumer is stopped or the
	// underlying source is exhausted.
	Messages() <-chan kafka.Message

	// CommitOffset acknowledges that a message has been handled.
	CommitOffset(ctx context.Context, msg kafka.Message) error
}

// LoaderFunc loads and decodes the object a notification refers to.
// Implementations must honor ctx for cancellation and timeouts.
type LoaderFunc[T any] func(ctx context.Context, bucket, key string) (T, error)

// KeyFilter selects which object keys are loaded at all.
type KeyFilter func(key string) bool

// FetchedObject pairs a loaded object with where it came from and the
// notification that announced it.
type FetchedObject[T any] struct {
	Data   T
	Bucket string
	// Key is the unescaped object key.
	Key   string
	Event notification.Event

	ack func(error)
}

// Done reports the outcome of handling the object. The announcing message is
// committed once all of its objects are done without error. Done must be
// called exactly once per object.
func (o *FetchedObject[T]) Done(err error) {
	if o.ack != nil {
		o.ack(err)
	}
}
