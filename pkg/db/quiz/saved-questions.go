package quiz

import (
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// compound unique index so a user cannot save the same question twice
var indexesForSavedQuestionsCollection = []mongo.IndexModel{
	{
		Keys: bson.D{
			{Key: "userID", Value: 1},
			{Key: "questionID", Value: 1},
		},
		Options: options.Index().SetName("userID_questionID_1").SetUnique(true),
	},
	{
		Keys: bson.D{
			{Key: "userID", Value: 1},
			{Key: "savedAt", Value: -1},
		},
		Options: options.Index().SetName("userID_savedAt_-1"),
	},
}

func (dbService *QuizDBService) CreateDefaultIndexesForSavedQuestionsCollection() {
	ctx, cancel := dbService.getContext()
	defer cancel()

	_, err := dbService.collectionSavedQuestions().Indexes().CreateMany(ctx, indexesForSavedQuestionsCollection)
	if err != nil {
		slog.Error("Error creating index for saved questions", slog.String("error", err.Error()))
	}
}

// IsDuplicateKeyError reports whether the write failed on the unique
// (userID, questionID) constraint.
func IsDuplicateKeyError(err error) bool {
	return mongo.IsDuplicateKeyError(err)
}

func (dbService *QuizDBService) SaveQuestionForUser(userID string, questionID string) (SavedQuestion, error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	var saved SavedQuestion
	qID, err := primitive.ObjectIDFromHex(questionID)
	if err != nil {
		return saved, err
	}

	saved = SavedQuestion{
		UserID:     userID,
		QuestionID: qID,
		SavedAt:    time.Now(),
	}
	ret, err := dbService.collectionSavedQuestions().InsertOne(ctx, saved)
	if err != nil {
		return saved, err
	}
	saved.ID = ret.InsertedID.(primitive.ObjectID)
	return saved, nil
}

// GetSavedQuestionsForUser returns the user's bookmarks newest first with the
// referenced question documents resolved through a $lookup.
func (dbService *QuizDBService) GetSavedQuestionsForUser(userID string) ([]SavedQuestionWithContent, error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{"userID": userID}}},
		bson.D{{Key: "$sort", Value: bson.M{"savedAt": -1}}},
		bson.D{{Key: "$lookup", Value: bson.M{
			"from":         COLLECTION_NAME_QUESTIONS,
			"localField":   "questionID",
			"foreignField": "_id",
			"as":           "question",
		}}},
		bson.D{{Key: "$unwind", Value: bson.M{
			"path":                       "$question",
			"preserveNullAndEmptyArrays": true,
		}}},
	}

	cursor, err := dbService.collectionSavedQuestions().Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	savedQuestions := []SavedQuestionWithContent{}
	if err = cursor.All(ctx, &savedQuestions); err != nil {
		return nil, err
	}
	return savedQuestions, nil
}
