package mongo

import (
	"context"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"edquiz-service/internal/domain"
)

// ResultStore appends quiz results to the results collection, one document
// per finished quiz.
type ResultStore struct {
	col *mongo.Collection
}

func NewResultStore(db *mongo.Database) *ResultStore {
	return &ResultStore{col: db.Collection("results")}
}

func (s *ResultStore) Add(ctx context.Context, result domain.QuizResult) (string, error) {
	if result.ID == "" {
		result.ID = uuid.NewString()
	}
	if _, err := s.col.InsertOne(ctx, result); err != nil {
		return "", err
	}
	return result.ID, nil
}

func (s *ResultStore) HistoryByUser(ctx context.Context, userID string, limit int) ([]domain.QuizResult, error) {
	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: -1}})
	if limit > 0 {
		opts = opts.SetLimit(int64(limit))
	}
	cur, err := s.col.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var results []domain.QuizResult
	for cur.Next(ctx) {
		var r domain.QuizResult
		if err := cur.Decode(&r); err != nil {
			return nil, err
		}
		results = append(results, r)
	}
	return results, cur.Err()
}
