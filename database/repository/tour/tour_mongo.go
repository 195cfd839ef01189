package tourRepo

import (
	"context"

	"tourhub/database"
	"tourhub/models"
	"tourhub/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type mongoTourRepo struct {
	coll *mongo.Collection
}

// NewMongoTourRepo returns a TourRepository backed by the custom_tours collection.
func NewMongoTourRepo(db *mongo.Database) TourRepository {
	return &mongoTourRepo{coll: db.Collection(database.ToursCollection)}
}

func (r *mongoTourRepo) GetByID(ctx context.Context, id string) (*models.CustomTour, error) {
	ctx, cancel := database.WithTimeout(ctx, utils.DefaultRepoTimeout)
	defer cancel()

	var tour models.CustomTour
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&tour); err != nil {
		return nil, database.NotFoundOr("find tour", "tour", id, err)
	}
	return &tour, nil
}

type mongoRegistrationRepo struct {
	coll *mongo.Collection
}

// NewMongoRegistrationRepo returns a RegistrationRepository backed by the
// registrations collection.
func NewMongoRegistrationRepo(db *mongo.Database) RegistrationRepository {
	return &mongoRegistrationRepo{coll: db.Collection(database.RegistrationsCollection)}
}

func (r *mongoRegistrationRepo) GetByID(ctx context.Context, id string) (*models.Registration, error) {
	ctx, cancel := database.WithTimeout(ctx, utils.DefaultRepoTimeout)
	defer cancel()

	var reg models.Registration
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&reg); err != nil {
		return nil, database.NotFoundOr("find registration", "registration", id, err)
	}
	return &reg, nil
}
