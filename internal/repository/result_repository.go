package repository

import (
	"context"

	"quizhub/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type ResultRepository struct {
	Col *mongo.Collection
}

func NewResultRepository(db *mongo.Database) *ResultRepository {
	return &ResultRepository{Col: db.Collection("results")}
}

func (r *ResultRepository) Create(ctx context.Context, result *models.Result) error {
	res, err := r.Col.InsertOne(ctx, result)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		result.ID = oid.Hex()
	}
	return nil
}

// FindByUser returns a user's results newest-first.
func (r *ResultRepository) FindByUser(ctx context.Context, userID string) ([]models.Result, error) {
	opts := options.Find().SetSort(bson.M{"completedAt": -1})
	cur, err := r.Col.Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var results []models.Result
	for cur.Next(ctx) {
		var res models.Result
		if err := cur.Decode(&res); err != nil {
			return nil, err
		}
		results = append(results, res)
	}
	return results, cur.Err()
}

// FindTopByQuiz returns the leaderboard rows for a quiz: score descending,
// faster completion breaking ties.
func (r *ResultRepository) FindTopByQuiz(ctx context.Context, quizID string, limit int) ([]models.Result, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "score", Value: -1}, {Key: "timeTaken", Value: 1}}).
		SetLimit(int64(limit))
	cur, err := r.Col.Find(ctx, bson.M{"quizId": quizID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var results []models.Result
	for cur.Next(ctx) {
		var res models.Result
		if err := cur.Decode(&res); err != nil {
			return nil, err
		}
		results = append(results, res)
	}
	return results, cur.Err()
}
