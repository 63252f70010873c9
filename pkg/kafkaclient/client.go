// Package kafkaclient wraps a kafka-go reader as a channel of messages with
// manual offset commits.
package kafkaclient

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// KafkaReader is the part of *kafka.Reader the consumer uses. FetchMessage
// never commits, unlike ReadMessage in a consumer group.
type KafkaReader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaConsumer fetches messages in a background goroutine and hands them
// out on Messages. Offsets are only committed through CommitOffset; a
// message that is never committed is delivered again after a restart.
type KafkaConsumer struct {
	reader      KafkaReader
	logger      *zap.SugaredLogger
	doneChan    chan struct{}
	stopOnce    sync.Once
	wg          sync.WaitGroup
	messageChan chan kafka.Message
	backoff     time.Duration
}

// NewKafkaConsumer creates a consumer for topic in group groupID.
func NewKafkaConsumer(topic, groupID, broker string, logger *zap.SugaredLogger) (*KafkaConsumer, error) {
	if topic == "" || groupID == "" || broker == "" {
		return nil, errors.New("kafka consumer needs a broker, a topic and a group id")
	}
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers: []string{broker},
		Topic:   topic,
		GroupID: groupID,
		// offsets are committed manually
		CommitInterval: 0,
		MinBytes:       1,
		MaxBytes:       10e6,
	})
	return newConsumer(reader, logger), nil
}

func newConsumer(reader KafkaReader, logger *zap.SugaredLogger) *KafkaConsumer {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &KafkaConsumer{
		reader:      reader,
		logger:      logger,
		doneChan:    make(chan struct{}),
		messageChan: make(chan kafka.Message),
		backoff:     time.Second,
	}
}

// Messages is closed once the consumer loop has stopped.
func (kc *KafkaConsumer) Messages() <-chan kafka.Message {
	return kc.messageChan
}

func (kc *KafkaConsumer) CommitOffset(ctx context.Context, msg kafka.Message) error {
	kc.logger.Debugw("committing offset", "topic", msg.Topic, "partition", msg.Partition, "offset", msg.Offset)
	if err := kc.reader.CommitMessages(ctx, msg); err != nil {
		return errors.Wrapf(err, "commit offset %d", msg.Offset)
	}
	return nil
}

// StartConsuming begins the read loop in a separate goroutine. The loop ends
// when ctx is done, Stop is called or the reader is closed.
func (kc *KafkaConsumer) StartConsuming(ctx context.Context) {
	kc.wg.Add(1)
	go func() {
		defer kc.wg.Done()
		defer close(kc.messageChan)

		kc.logger.Info("starting kafka consumer loop")
		for {
			select {
			case <-ctx.Done():
				kc.logger.Info("context canceled, stopping consumer loop")
				return
			case <-kc.doneChan:
				kc.logger.Info("shutdown requested, stopping consumer loop")
				return
			default:
			}

			msg, err := kc.reader.FetchMessage(ctx)
			if err != nil {
				if errors.Is(err, io.EOF) || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
					kc.logger.Infow("reader closed", "reason", err)
					return
				}
				kc.logger.Warnw("error reading message", "error", err)
				select {
				case <-time.After(kc.backoff):
				case <-ctx.Done():
					return
				case <-kc.doneChan:
					return
				}
				continue
			}

			select {
			case kc.messageChan <- msg:
				kc.logger.Debugw("message received", "topic", msg.Topic, "partition", msg.Partition, "offset", msg.Offset)
			case <-ctx.Done():
				return
			case <-kc.doneChan:
				return
			}
		}
	}()
}

// Stop ends the read loop, waits for it and closes the reader. It is safe to
// call more than once.
func (kc *KafkaConsumer) Stop() {
	kc.stopOnce.Do(func() {
		close(kc.doneChan)
		kc.wg.Wait()
		if err := kc.reader.Close(); err != nil {
			kc.logger.Warnw("failed to close kafka reader", "error", err)
		}
		kc.logger.Info("kafka consumer stopped")
	})
}
