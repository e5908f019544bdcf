package kv

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/nikmy/userstore/pkg/errors"
	"github.com/nikmy/userstore/pkg/logger"
	"github.com/nikmy/userstore/pkg/mongotools"
)

const mongoFieldValue = "value"

type blobDocument struct {
	Key   string `bson:"_id"`
	Value string `bson:"value"`
}

func newMongo(ctx context.Context, cfg MongoConfig, log logger.Logger) (*mongoBackend, error) {
	opts := options.Client().
		ApplyURI(cfg.URL).
		SetTimeout(cfg.Timeout)

	if cfg.Auth.Username != "" {
		opts.SetAuth(options.Credential{
			Username: cfg.Auth.Username,
			Password: cfg.Auth.Password,
		})
	}
	if cfg.Pool.MinSize > 0 {
		opts.SetMinPoolSize(cfg.Pool.MinSize)
	}
	if cfg.Pool.MaxSize > 0 {
		opts.SetMaxPoolSize(cfg.Pool.MaxSize)
	}

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, errors.WrapFail(err, "connect to mongo db")
	}

	return &mongoBackend{
		coll: client.Database(cfg.Database).Collection(cfg.Collection),
		log:  log.With("mongo_backend"),
	}, nil
}

// mongoBackend keeps one document per key.
type mongoBackend struct {
	coll *mongo.Collection
	log  logger.Logger
}

func (m *mongoBackend) Read(ctx context.Context, key string) ([]byte, error) {
	r := m.coll.FindOne(ctx, mongotools.FilterByID(key))

	err := r.Err()
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrKeyNotFound
	}
	if err != nil {
		return nil, errors.WrapFailf(err, "find document %s", key)
	}

	var doc blobDocument
	err = r.Decode(&doc)
	if err != nil {
		return nil, errors.WrapFailf(err, "decode document %s", key)
	}

	return []byte(doc.Value), nil
}

func (m *mongoBackend) Write(ctx context.Context, key string, value []byte) error {
	raw := string(value)
	_, err := m.coll.UpdateOne(
		ctx,
		mongotools.FilterByID(key),
		mongotools.SetAll(mongotools.Field(mongoFieldValue, &raw)),
		options.Update().SetUpsert(true),
	)
	return errors.WrapFailf(err, "upsert document %s", key)
}

func (m *mongoBackend) Close(ctx context.Context) error {
	err := m.coll.Database().Client().Disconnect(ctx)
	return errors.WrapFail(err, "close mongo db connection")
}
