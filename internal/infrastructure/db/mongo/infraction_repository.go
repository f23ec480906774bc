package mongo

import (
	"context"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/speedboat/dashboard/internal/core/domain"
	"github.com/speedboat/dashboard/internal/core/ports"
)

const collectionInfractions = "infractions"

type InfractionRepository struct {
	col *mongo.Collection
}

func NewInfractionRepository(db *mongo.Database) *InfractionRepository {
	return &InfractionRepository{col: db.Collection(collectionInfractions)}
}

// List applies the already-whitelisted filters and sorts. Reason filters are
// case-insensitive substring matches; type filters arrive as type names and
// are translated to their stored numeric id.
func (r *InfractionRepository) List(ctx context.Context, guildID string, q ports.InfractionQuery) ([]ports.InfractionRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"guild_id": guildID}
	for _, f := range q.Filters {
		switch f.Field {
		case "type":
			t, ok := domain.InfractionTypeByName(f.Value)
			if !ok {
				continue
			}
			filter["type"] = t.ID
		case "reason":
			filter["reason"] = primitive.Regex{Pattern: regexp.QuoteMeta(f.Value), Options: "i"}
		case "id":
			filter["_id"] = f.Value
		default:
			filter[f.Field] = f.Value
		}
	}

	sort := bson.D{}
	for _, s := range q.Sorts {
		field := s.Field
		if field == "id" {
			field = "_id"
		}
		dir := 1
		if s.Desc {
			dir = -1
		}
		sort = append(sort, bson.E{Key: field, Value: dir})
	}
	if len(sort) == 0 {
		sort = bson.D{{Key: "_id", Value: -1}}
	}

	opts := options.Find().
		SetSort(sort).
		SetSkip(int64((q.Page - 1) * q.Limit)).
		SetLimit(int64(q.Limit))

	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var records []ports.InfractionRecord
	if err := cur.All(ctx, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// EnsureIndexes creates the indexes the listing query relies on.
func (r *InfractionRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.col.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "guild_id", Value: 1}, {Key: "user_id", Value: 1}}},
		{Keys: bson.D{{Key: "guild_id", Value: 1}, {Key: "created_at", Value: -1}}},
	})
	return err
}
