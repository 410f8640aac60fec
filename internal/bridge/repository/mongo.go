package repository

import (
	"context"
	"errors"

	"github.com/gogotex/bridges/internal/bridge"
	"github.com/gogotex/bridges/internal/bridge/pager"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// mongoItem is the single-table layout: PK groups the collection, SK orders
// items inside it and always equals the bridge ID.
type mongoItem struct {
	PK            string `bson:"PK"`
	SK            string `bson:"SK"`
	bridge.Bridge `bson:",inline"`
}

// MongoStore implements Store on a MongoDB collection.
type MongoStore struct {
	col *mongo.Collection
}

func NewMongoStore(col *mongo.Collection) *MongoStore {
	return &MongoStore{col: col}
}

// EnsureIndexes creates the unique (PK, SK) index used by point lookups and
// range scans.
func (m *MongoStore) EnsureIndexes(ctx context.Context) error {
	idx := mongo.IndexModel{
		Keys:    bson.D{{Key: "PK", Value: 1}, {Key: "SK", Value: 1}},
		Options: options.Index().SetUnique(true),
	}
	_, err := m.col.Indexes().CreateOne(ctx, idx)
	return err
}

func (m *MongoStore) Ping(ctx context.Context) error {
	return m.col.Database().Client().Ping(ctx, nil)
}

func (m *MongoStore) Get(ctx context.Context, pk, id string) (*bridge.Bridge, error) {
	var it mongoItem
	err := m.col.FindOne(ctx, keyFilter(pk, id)).Decode(&it)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &it.Bridge, nil
}

func (m *MongoStore) Put(ctx context.Context, pk string, b *bridge.Bridge) error {
	it := mongoItem{PK: pk, SK: b.ID, Bridge: *b}
	_, err := m.col.ReplaceOne(ctx, keyFilter(pk, b.ID), it, options.Replace().SetUpsert(true))
	return err
}

func (m *MongoStore) Delete(ctx context.Context, pk, id string) error {
	res, err := m.col.DeleteOne(ctx, keyFilter(pk, id))
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (m *MongoStore) Query(ctx context.Context, pk string, r pager.Range) ([]*bridge.Bridge, error) {
	cur, err := m.col.Find(ctx, rangeFilter(pk, r), rangeOptions(r))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	out := []*bridge.Bridge{}
	for cur.Next(ctx) {
		var it mongoItem
		if err := cur.Decode(&it); err != nil {
			return nil, err
		}
		b := it.Bridge
		out = append(out, &b)
	}
	return out, cur.Err()
}

func keyFilter(pk, id string) bson.D {
	return bson.D{{Key: "PK", Value: pk}, {Key: "SK", Value: id}}
}

func rangeFilter(pk string, r pager.Range) bson.D {
	filter := bson.D{{Key: "PK", Value: pk}}
	sk := bson.D{}
	if r.GT != "" {
		sk = append(sk, bson.E{Key: "$gt", Value: r.GT})
	}
	if r.LT != "" {
		sk = append(sk, bson.E{Key: "$lt", Value: r.LT})
	}
	if len(sk) > 0 {
		filter = append(filter, bson.E{Key: "SK", Value: sk})
	}
	return filter
}

func rangeOptions(r pager.Range) *options.FindOptions {
	dir := 1
	if r.Reverse {
		dir = -1
	}
	opts := options.Find().SetSort(bson.D{{Key: "SK", Value: dir}})
	if r.Limit > 0 {
		opts.SetLimit(int64(r.Limit))
	}
	return opts
}
