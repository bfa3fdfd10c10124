package repository

import (
	"context"

	"quizhub/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type QuizRepository struct {
	Col *mongo.Collection
}

func NewQuizRepository(db *mongo.Database) *QuizRepository {
	return &QuizRepository{Col: db.Collection("quizzes")}
}

// FindAll lists quizzes with the questions field projected out, so answer
// keys never ride along on a browse request. An empty category matches
// everything.
func (r *QuizRepository) FindAll(ctx context.Context, category string) ([]models.Quiz, error) {
	filter := bson.M{}
	if category != "" {
		filter["category"] = category
	}
	opts := options.Find().SetProjection(bson.M{"questions": 0})
	cur, err := r.Col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var quizzes []models.Quiz
	for cur.Next(ctx) {
		var q models.Quiz
		if err := cur.Decode(&q); err != nil {
			return nil, err
		}
		quizzes = append(quizzes, q)
	}
	return quizzes, cur.Err()
}

func (r *QuizRepository) FindByID(ctx context.Context, id string) (*models.Quiz, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, mongo.ErrNoDocuments
	}
	var quiz models.Quiz
	err = r.Col.FindOne(ctx, bson.M{"_id": objID}).Decode(&quiz)
	if err != nil {
		return nil, err
	}
	return &quiz, nil
}

func (r *QuizRepository) Create(ctx context.Context, quiz *models.Quiz) error {
	res, err := r.Col.InsertOne(ctx, quiz)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		quiz.ID = oid.Hex()
	}
	return nil
}

// IncrementAttempts bumps totalAttempts with $inc. Concurrent submissions
// race on this counter, so it must never be read-modify-write.
func (r *QuizRepository) IncrementAttempts(ctx context.Context, id string) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return err
	}
	_, err = r.Col.UpdateOne(ctx, bson.M{"_id": objID}, bson.M{"$inc": bson.M{"totalAttempts": 1}})
	return err
}
