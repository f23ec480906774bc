package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/speedboat/dashboard/internal/core/domain"
	"github.com/speedboat/dashboard/internal/core/ports"
)

const (
	collectionGuilds        = "guilds"
	collectionConfigChanges = "guild_config_changes"
)

type GuildRepository struct {
	guilds  *mongo.Collection
	changes *mongo.Collection
}

func NewGuildRepository(db *mongo.Database) *GuildRepository {
	return &GuildRepository{
		guilds:  db.Collection(collectionGuilds),
		changes: db.Collection(collectionConfigChanges),
	}
}

func (r *GuildRepository) FindByID(ctx context.Context, id string) (*domain.Guild, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var g domain.Guild
	err := r.guilds.FindOne(ctx, bson.M{"_id": id}).Decode(&g)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrGuildNotFound
		}
		return nil, err
	}
	return &g, nil
}

func (r *GuildRepository) All(ctx context.Context) ([]*domain.Guild, error) {
	return r.find(ctx, bson.M{})
}

// AllForMember filters on the presence of the user's entry in the config web
// access map, mirroring how the bot grants dashboard access.
func (r *GuildRepository) AllForMember(ctx context.Context, userID string) ([]*domain.Guild, error) {
	return r.find(ctx, bson.M{"config.web." + userID: bson.M{"$exists": true}})
}

func (r *GuildRepository) find(ctx context.Context, filter bson.M) ([]*domain.Guild, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.guilds.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var guilds []*domain.Guild
	if err := cur.All(ctx, &guilds); err != nil {
		return nil, err
	}
	return guilds, nil
}

func (r *GuildRepository) UpdateConfig(ctx context.Context, id string, raw string, parsed map[string]any) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.guilds.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$set": bson.M{"config_raw": raw, "config": parsed},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrGuildNotFound
	}
	return nil
}

func (r *GuildRepository) RecordConfigChange(ctx context.Context, change ports.ConfigChangeRecord) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.changes.InsertOne(ctx, change)
	return err
}

func (r *GuildRepository) ConfigHistory(ctx context.Context, guildID string, page int, perPage int) ([]ports.ConfigChangeRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64((page - 1) * perPage)).
		SetLimit(int64(perPage))

	cur, err := r.changes.Find(ctx, bson.M{"guild_id": guildID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var records []ports.ConfigChangeRecord
	if err := cur.All(ctx, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// EnsureIndexes creates the indexes the history and membership queries rely on.
func (r *GuildRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.changes.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "guild_id", Value: 1}, {Key: "created_at", Value: -1}}},
	})
	return err
}
