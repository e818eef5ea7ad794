package quiz

import (
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var indexesForQuestionsCollection = []mongo.IndexModel{
	{
		Keys: bson.D{
			{Key: "subject", Value: 1},
			{Key: "createdAt", Value: -1},
		},
		Options: options.Index().SetName("subject_createdAt_1"),
	},
	{
		Keys: bson.D{
			{Key: "createdAt", Value: -1},
		},
		Options: options.Index().SetName("createdAt_-1"),
	},
}

func (dbService *QuizDBService) CreateDefaultIndexesForQuestionsCollection() {
	ctx, cancel := dbService.getContext()
	defer cancel()

	_, err := dbService.collectionQuestions().Indexes().CreateMany(ctx, indexesForQuestionsCollection)
	if err != nil {
		slog.Error("Error creating index for questions", slog.String("error", err.Error()))
	}
}

func (dbService *QuizDBService) CreateQuestion(question *Question) error {
	ctx, cancel := dbService.getContext()
	defer cancel()

	if question.CreatedAt.IsZero() {
		question.CreatedAt = time.Now()
	}

	ret, err := dbService.collectionQuestions().InsertOne(ctx, question)
	if err != nil {
		return err
	}
	question.ID = ret.InsertedID.(primitive.ObjectID)
	return nil
}

// CreateQuestions inserts the questions in order; on the first failing
// document the remaining ones are not written.
func (dbService *QuizDBService) CreateQuestions(questions []Question) ([]Question, error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	docs := make([]interface{}, len(questions))
	now := time.Now()
	for i := range questions {
		if questions[i].CreatedAt.IsZero() {
			questions[i].CreatedAt = now
		}
		docs[i] = questions[i]
	}

	ret, err := dbService.collectionQuestions().InsertMany(ctx, docs, options.InsertMany().SetOrdered(true))
	if err != nil {
		return nil, err
	}
	for i, id := range ret.InsertedIDs {
		questions[i].ID = id.(primitive.ObjectID)
	}
	return questions, nil
}

func (dbService *QuizDBService) GetQuestionByID(questionID string) (Question, error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	var question Question
	_id, err := primitive.ObjectIDFromHex(questionID)
	if err != nil {
		return question, err
	}

	filter := bson.M{"_id": _id}
	err = dbService.collectionQuestions().FindOne(ctx, filter).Decode(&question)
	return question, err
}

// GetQuestions returns questions newest first, optionally filtered by
// subject, with skip/limit pagination. totalCount refers to the filtered set.
func (dbService *QuizDBService) GetQuestions(subject string, page int64, limit int64) (questions []Question, totalCount int64, err error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	filter := bson.M{}
	if subject != "" {
		filter["subject"] = subject
	}

	totalCount, err = dbService.collectionQuestions().CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip((page - 1) * limit).
		SetLimit(limit)

	cursor, err := dbService.collectionQuestions().Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	questions = []Question{}
	if err = cursor.All(ctx, &questions); err != nil {
		return nil, 0, err
	}
	return questions, totalCount, nil
}

// UpdateQuestion overwrites the content fields of an existing question and
// returns the updated document.
func (dbService *QuizDBService) UpdateQuestion(questionID string, question Question) (Question, error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	var updated Question
	_id, err := primitive.ObjectIDFromHex(questionID)
	if err != nil {
		return updated, err
	}

	filter := bson.M{"_id": _id}
	update := bson.M{
		"$set": bson.M{
			"question":      question.Question,
			"subject":       question.Subject,
			"options":       question.Options,
			"correctAnswer": question.CorrectAnswer,
		},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	err = dbService.collectionQuestions().FindOneAndUpdate(ctx, filter, update, opts).Decode(&updated)
	return updated, err
}

func (dbService *QuizDBService) DeleteQuestion(questionID string) (count int64, err error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	_id, err := primitive.ObjectIDFromHex(questionID)
	if err != nil {
		return 0, err
	}

	filter := bson.M{"_id": _id}
	res, err := dbService.collectionQuestions().DeleteOne(ctx, filter)
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
