package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/speedboat/dashboard/internal/core/domain"
)

const collectionMessages = "messages"

type MessageRepository struct {
	col *mongo.Collection
}

func NewMessageRepository(db *mongo.Database) *MessageRepository {
	return &MessageRepository{col: db.Collection(collectionMessages)}
}

// CountByDay aggregates message counts per UTC day over the trailing window.
// The series is densified in memory so days without traffic still appear
// with a zero count.
func (r *MessageRepository) CountByDay(ctx context.Context, guildID string, days int) ([]domain.MessageStat, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	now := time.Now().UTC()
	since := now.AddDate(0, 0, -days)

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{
			"guild_id":  guildID,
			"timestamp": bson.M{"$gte": since, "$lt": now},
		}}},
		{{Key: "$group", Value: bson.M{
			"_id": bson.M{"$dateTrunc": bson.M{
				"date": "$timestamp",
				"unit": "day",
			}},
			"count": bson.M{"$sum": 1},
		}}},
		{{Key: "$sort", Value: bson.M{"_id": 1}}},
	}

	cur, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	type bucket struct {
		Date  time.Time `bson:"_id"`
		Count int64     `bson:"count"`
	}
	var buckets []bucket
	if err := cur.All(ctx, &buckets); err != nil {
		return nil, err
	}

	counts := make(map[time.Time]int64, len(buckets))
	for _, b := range buckets {
		counts[b.Date.UTC().Truncate(24*time.Hour)] = b.Count
	}

	stats := make([]domain.MessageStat, 0, days)
	day := since.Truncate(24 * time.Hour)
	for !day.After(now) {
		stats = append(stats, domain.MessageStat{Date: day, Count: counts[day]})
		day = day.AddDate(0, 0, 1)
	}
	return stats, nil
}
