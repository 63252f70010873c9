package main

import (
	"context"
	"os"

	"kml2gpx/internal/config"
	"kml2gpx/internal/env"
	"kml2gpx/internal/keys"
	"kml2gpx/internal/logging"
	"kml2gpx/internal/schema"
	"kml2gpx/internal/service"
	"kml2gpx/internal/storage"
	"kml2gpx/pkg/graceful"
	"kml2gpx/pkg/kafkaclient"
)

func main() {
	env.LoadEnv()

	cfg, err := config.Load(os.Getenv("KML2GPX_CONFIG"))
	if err != nil {
		logging.Logger.Fatal(err)
	}
	if err := logging.Initialize(cfg.Log.Level, cfg.Log.JSON); err != nil {
		logging.Logger.Fatal(err)
	}
	defer func() { _ = logging.Logger.Sync() }()
	log := logging.Logger

	ctx, cancel := graceful.Context(context.Background(), log)
	defer cancel()

	kafkaBroker := env.MustGetEnv("KAFKA_BROKER")
	kafkaTopic := env.MustGetEnv("KAFKA_TOPIC")
	kafkaGroupID := env.MustGetEnv("KAFKA_GROUP_ID")
	log.Infow("connecting to kafka", "broker", kafkaBroker, "topic", kafkaTopic, "group", kafkaGroupID)

	consumer, err := kafkaclient.NewKafkaConsumer(kafkaTopic, kafkaGroupID, kafkaBroker, log.Named("kafka"))
	if err != nil {
		log.Fatalw("failed to create kafka consumer", "error", err)
	}

	s3Service, err := storage.NewS3Service()
	if err != nil {
		log.Fatal(err)
	}
	outBucket := env.GetEnv("OUTPUT_BUCKET", "")
	if outBucket != "" {
		if err := s3Service.CreateBucket(ctx, outBucket, env.GetEnv("OUTPUT_BUCKET_LOCATION", "")); err != nil {
			log.Fatal(err)
		}
	}

	var archive service.WaypointArchive
	if dsn := env.GetEnv("POSTGRES_DSN", ""); dsn != "" {
		store, err := storage.NewWaypointStore(ctx, dsn)
		if err != nil {
			log.Fatal(err)
		}
		defer store.Close()
		archive = store
	}

	convCfg, discover, err := cfg.Resolve()
	if err != nil {
		log.Fatal(err)
	}
	opts := []service.ConverterOption{
		service.WithLogger(log.Named("convert")),
		service.WithFieldDiscovery(discover),
	}
	if len(cfg.Schemas) > 0 {
		v, err := schema.Load(cfg.Schemas...)
		if err != nil {
			log.Fatal(err)
		}
		opts = append(opts, service.WithSchemas(v))
	}
	converter, err := service.NewConverter(convCfg, opts...)
	if err != nil {
		log.Fatal(err)
	}

	consumer.StartConsuming(ctx)
	iterator := service.NewIterator(consumer, s3Service.GetObject, keys.IsKML)
	watcher := service.NewWatcher(converter, s3Service, archive, outBucket, env.GetEnv("OUTPUT_PREFIX", ""))

	stored := watcher.Run(ctx, iterator.Objects(ctx))

	consumer.Stop()
	log.Infow("watcher finished", "converted", stored)
}
