package quiz

import (
	"context"
	"time"

	"github.com/quiz-framework/quiz-backend/pkg/db"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// collection names
const (
	COLLECTION_NAME_QUESTIONS       = "questions"
	COLLECTION_NAME_SAVED_QUESTIONS = "savedQuestions"
)

type QuizDBService struct {
	DBClient        *mongo.Client
	timeout         int
	noCursorTimeout bool
	DBNamePrefix    string
}

func NewQuizDBService(configs db.DBConfig) (*QuizDBService, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(configs.Timeout)*time.Second)
	defer cancel()

	dbClient, err := mongo.Connect(ctx,
		options.Client().ApplyURI(configs.URI),
		options.Client().SetMaxConnIdleTime(time.Duration(configs.IdleConnTimeout)*time.Second),
		options.Client().SetMaxPoolSize(configs.MaxPoolSize),
	)

	if err != nil {
		return nil, err
	}

	ctx, conCancel := context.WithTimeout(context.Background(), time.Duration(configs.Timeout)*time.Second)
	err = dbClient.Ping(ctx, nil)
	defer conCancel()

	if err != nil {
		return nil, err
	}

	qDBSc := &QuizDBService{
		DBClient:        dbClient,
		timeout:         configs.Timeout,
		noCursorTimeout: configs.NoCursorTimeout,
		DBNamePrefix:    configs.DBNamePrefix,
	}

	if configs.RunIndexCreation {
		qDBSc.CreateDefaultIndexes()
	}
	return qDBSc, nil
}

func (dbService *QuizDBService) getDBName() string {
	return dbService.DBNamePrefix + "quiz"
}

func (dbService *QuizDBService) getContext() (ctx context.Context, cancel context.CancelFunc) {
	return context.WithTimeout(context.Background(), time.Duration(dbService.timeout)*time.Second)
}

func (dbService *QuizDBService) collectionQuestions() *mongo.Collection {
	return dbService.DBClient.Database(dbService.getDBName()).Collection(COLLECTION_NAME_QUESTIONS)
}

func (dbService *QuizDBService) collectionSavedQuestions() *mongo.Collection {
	return dbService.DBClient.Database(dbService.getDBName()).Collection(COLLECTION_NAME_SAVED_QUESTIONS)
}

func (dbService *QuizDBService) CreateDefaultIndexes() {
	dbService.CreateDefaultIndexesForQuestionsCollection()
	dbService.CreateDefaultIndexesForSavedQuestionsCollection()
}
