package user

import (
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	userTypes "github.com/quiz-framework/quiz-backend/pkg/user-management/types"
)

var indexesForCredentialsCollection = []mongo.IndexModel{
	{
		Keys: bson.D{
			{Key: "phoneNumber", Value: 1},
		},
		Options: options.Index().SetName("phoneNumber_1").SetUnique(true),
	},
	{
		Keys: bson.D{
			{Key: "createdAt", Value: 1},
		},
		Options: options.Index().SetName("createdAt_1"),
	},
}

func (dbService *UserDBService) CreateDefaultIndexesForCredentialsCollection() {
	ctx, cancel := dbService.getContext()
	defer cancel()

	_, err := dbService.collectionCredentials().Indexes().CreateMany(ctx, indexesForCredentialsCollection)
	if err != nil {
		slog.Error("Error creating index for credentials", slog.String("error", err.Error()))
	}
}

func (dbService *UserDBService) FindCredentialByPhone(phoneNumber string) (userTypes.UserCredential, error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	filter := bson.M{"phoneNumber": phoneNumber}
	var credential userTypes.UserCredential
	err := dbService.collectionCredentials().FindOne(ctx, filter).Decode(&credential)
	return credential, err
}

// UpsertOTP stores a new OTP for the phone number in a single atomic
// operation. If no credential exists yet, one is created and gets its stable
// user id here; if one exists, only the OTP fields are overwritten, so a
// previously pending code is invalidated. Concurrent calls for the same
// number are serialized by the unique index on phoneNumber.
func (dbService *UserDBService) UpsertOTP(phoneNumber string, code string, expiresAt time.Time) (userTypes.UserCredential, error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	filter := bson.M{"phoneNumber": phoneNumber}
	update := bson.M{
		"$set": bson.M{
			"otp":          code,
			"otpExpiresAt": expiresAt,
		},
		"$setOnInsert": bson.M{
			"createdAt": time.Now(),
		},
	}
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var credential userTypes.UserCredential
	err := dbService.collectionCredentials().FindOneAndUpdate(ctx, filter, update, opts).Decode(&credential)
	return credential, err
}

// ClearOTP removes the OTP fields after a successful verification. The filter
// includes the code so that of two racing verify calls only one can clear;
// the loser sees cleared == false and must re-read the credential state.
func (dbService *UserDBService) ClearOTP(phoneNumber string, code string) (cleared bool, err error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	filter := bson.M{
		"phoneNumber": phoneNumber,
		"otp":         code,
	}
	update := bson.M{
		"$unset": bson.M{
			"otp":          "",
			"otpExpiresAt": "",
		},
		"$set": bson.M{
			"lastVerifiedAt": time.Now(),
		},
	}
	res, err := dbService.collectionCredentials().UpdateOne(ctx, filter, update)
	if err != nil {
		return false, err
	}
	return res.ModifiedCount > 0, nil
}
