package service

import (
	"bytes"
	"context"

	"github.com/cockroachdb/errors"

	"kml2gpx/internal/convert"
	"kml2gpx/internal/keys"
	"kml2gpx/internal/logging"
	"kml2gpx/internal/models"
)

// GPXStore receives converted documents.
type GPXStore interface {
	PutGPX(ctx context.Context, bucket, key string, data []byte) error
}

// WaypointArchive keeps the waypoints of every converted document.
type WaypointArchive interface {
	Replace(ctx context.Context, source string, wpts []models.Waypoint) error
}

// Watcher converts every KML object it is handed and stores the GPX result.
type Watcher struct {
	converter *Converter
	store     GPXStore
	archive   WaypointArchive
	bucket    string
	prefix    string
}

// NewWatcher stores results in bucket under prefix; an empty bucket means
// the bucket the KML came from. archive may be nil.
func NewWatcher(converter *Converter, store GPXStore, archive WaypointArchive, bucket, prefix string) *Watcher {
	return &Watcher{
		converter: converter,
		store:     store,
		archive:   archive,
		bucket:    bucket,
		prefix:    prefix,
	}
}

// Run handles objects until the channel is closed and returns how many
// documents were converted and stored. Each object is marked done once its
// GPX is stored, so its notification is only committed after that. A
// failing document is logged and does not stop the loop.
func (w *Watcher) Run(ctx context.Context, objects <-chan *FetchedObject[[]byte]) int {
	stored := 0
	for obj := range objects {
		err := w.handle(ctx, obj)
		obj.Done(err)
		if err != nil {
			logging.Logger.Errorw("conversion failed", "bucket", obj.Bucket, "key", obj.Key, "error", err)
			continue
		}
		stored++
	}
	return stored
}

func (w *Watcher) handle(ctx context.Context, obj *FetchedObject[[]byte]) error {
	var buf bytes.Buffer
	res, err := w.converter.Convert(ctx, bytes.NewReader(obj.Data), &buf)
	if err != nil && !errors.Is(err, convert.ErrNoRecords) {
		return err
	}

	bucket := w.bucket
	if bucket == "" {
		bucket = obj.Bucket
	}
	if err := w.store.PutGPX(ctx, bucket, keys.GPX(w.prefix, obj.Key), buf.Bytes()); err != nil {
		return err
	}
	if w.archive != nil {
		if err := w.archive.Replace(ctx, obj.Bucket+"/"+obj.Key, res.Waypoints); err != nil {
			return errors.Wrap(err, "archive waypoints")
		}
	}
	return nil
}
