// Package service contains the application services behind the binaries:
// the Converter that turns one KML document into GPX, and the Iterator and
// Watcher that apply it to KML files announced by bucket notifications on
// Kafka.
package service

import (
	"context"
	"encoding/json"
	"net/url"
	"sync"

	"github.com/minio/minio-go/v7/pkg/notification"
	"github.com/segmentio/kafka-go"

	"kml2gpx/internal/logging"
)

// Iterator consumes messages from a MessageIterator, interprets each message
// as a MinIO/S3 notification, loads every referenced object accepted by the
// key filter and yields it on a channel.
//
// The Iterator does not manage the lifecycle of the underlying message source;
// callers should start/stop their consumer outside.
type Iterator[T any] struct {
	msgIterator MessageIterator
	loader      LoaderFunc[T]
	accept      KeyFilter
}

// NewIterator constructs an Iterator. A nil accept loads every key.
func NewIterator[T any](iterator MessageIterator, loader LoaderFunc[T], accept KeyFilter) *Iterator[T] {
	return &Iterator[T]{
		msgIterator: iterator,
		loader:      loader,
		accept:      accept,
	}
}

// Objects starts a goroutine that receives messages, loads the objects each
// notification names and emits them on the returned channel.
//
// A message is committed once every object it announced has been reported
// successful through FetchedObject.Done. Messages that announce nothing of
// interest, and undecodable ones, are committed right away. A failed load or
// a failed Done leaves the message uncommitted.
//
// The channel is closed when the message source is exhausted or ctx is done.
func (it *Iterator[T]) Objects(ctx context.Context) <-chan *FetchedObject[T] {
	out := make(chan *FetchedObject[T])
	go func() {
		defer close(out)

		for msg := range it.msgIterator.Messages() {
			if ctx.Err() != nil {
				return
			}
			var info notification.Info
			if err := json.Unmarshal(msg.Value, &info); err != nil {
				logging.Logger.Warnw("skipping undecodable notification", "offset", msg.Offset, "error", err)
				it.commit(ctx, msg)
				continue
			}

			targets := it.targets(info.Records)
			if len(targets) == 0 {
				it.commit(ctx, msg)
				continue
			}

			acks := &messageAcks{pending: len(targets), commit: func() { it.commit(ctx, msg) }}
			for _, tgt := range targets {
				data, err := it.loader(ctx, tgt.bucket, tgt.key)
				if err != nil {
					logging.Logger.Errorw("failed to load object", "bucket", tgt.bucket, "key", tgt.key, "error", err)
					acks.done(err)
					continue
				}
				obj := &FetchedObject[T]{Data: data, Bucket: tgt.bucket, Key: tgt.key, Event: tgt.event, ack: acks.done}
				select {
				case out <- obj:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out
}

type target struct {
	bucket string
	key    string
	event  notification.Event
}

// targets lists the objects of a notification that pass the key filter.
func (it *Iterator[T]) targets(events []notification.Event) []target {
	var out []target
	for _, event := range events {
		bucket := event.S3.Bucket.Name
		key, err := url.QueryUnescape(event.S3.Object.Key)
		if err != nil {
			logging.Logger.Warnw("skipping undecodable object key", "key", event.S3.Object.Key, "error", err)
			continue
		}
		if it.accept != nil && !it.accept(key) {
			logging.Logger.Debugw("ignoring object", "bucket", bucket, "key", key)
			continue
		}
		out = append(out, target{bucket: bucket, key: key, event: event})
	}
	return out
}

func (it *Iterator[T]) commit(ctx context.Context, msg kafka.Message) {
	if err := it.msgIterator.CommitOffset(ctx, msg); err != nil {
		logging.Logger.Warnw("failed to commit offset", "offset", msg.Offset, "error", err)
	}
}

// messageAcks counts the outstanding objects of one message.
type messageAcks struct {
	mu      sync.Mutex
	pending int
	failed  bool
	commit  func()
}

func (a *messageAcks) done(err error) {
	a.mu.Lock()
	if err != nil {
		a.failed = true
	}
	a.pending--
	fire := a.pending == 0 && !a.failed
	a.mu.Unlock()
	if fire {
		a.commit()
	}
}
