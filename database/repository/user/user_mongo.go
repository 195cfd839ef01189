package userRepo

import (
	"context"

	"tourhub/database"
	"tourhub/models"
	"tourhub/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoUserRepo implements UserRepository using MongoDB.
type MongoUserRepo struct {
	coll *mongo.Collection
}

// NewMongoUserRepo creates a new instance of UserRepository using MongoDB.
func NewMongoUserRepo(db *mongo.Database) *MongoUserRepo {
	return &MongoUserRepo{coll: db.Collection(database.UsersCollection)}
}

// profileProjection keeps auth secrets owned by the account service out of
// this process.
var profileProjection = bson.M{
	"password_hash": 0,
	"token_hash":    0,
}

func (r *MongoUserRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	ctx, cancel := database.WithTimeout(ctx, utils.DefaultRepoTimeout)
	defer cancel()

	var user models.User
	opts := options.FindOne().SetProjection(profileProjection)
	if err := r.coll.FindOne(ctx, bson.M{"id": id}, opts).Decode(&user); err != nil {
		return nil, database.NotFoundOr("find user", "user", id, err)
	}
	return &user, nil
}
