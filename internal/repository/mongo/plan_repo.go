package mongo

import (
	"context"
	"errors"
	"time"

	"liftai/coach-app/internal/domain"
	"liftai/coach-app/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const planCollectionName = "plans"

// mongoPlanRepository implements repository.PlanRepository.
type mongoPlanRepository struct {
	client     *mongo.Client
	collection *mongo.Collection
}

// NewMongoPlanRepository creates a new Plan repository. The client is kept
// alongside the collection because CreateActive runs a transaction.
func NewMongoPlanRepository(client *mongo.Client, db *mongo.Database) repository.PlanRepository {
	return &mongoPlanRepository{
		client:     client,
		collection: db.Collection(planCollectionName),
	}
}

// CreateActive inserts a new active plan and deactivates every other plan
// owned by the same user. Both writes run in one transaction so concurrent
// generations for the same user can never observe zero or two active plans.
func (r *mongoPlanRepository) CreateActive(ctx context.Context, plan *domain.Plan) (primitive.ObjectID, error) {
	if plan.UserID == "" || plan.Name == "" {
		return primitive.NilObjectID, errors.New("plan requires userId and name")
	}
	plan.ID = primitive.NewObjectID()
	plan.IsActive = true
	plan.CreatedAt = time.Now().UTC()

	session, err := r.client.StartSession()
	if err != nil {
		return primitive.NilObjectID, err
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sessCtx mongo.SessionContext) (interface{}, error) {
		deactivate := bson.M{"$set": bson.M{"isActive": false}}
		filter := bson.M{"userId": plan.UserID, "isActive": true}
		if _, err := r.collection.UpdateMany(sessCtx, filter, deactivate); err != nil {
			return nil, err
		}
		return r.collection.InsertOne(sessCtx, plan)
	})
	if err != nil {
		return primitive.NilObjectID, err
	}
	return plan.ID, nil
}

// GetByID retrieves a single plan by its ID.
func (r *mongoPlanRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Plan, error) {
	var plan domain.Plan
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&plan)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &plan, nil
}

// GetByUserID retrieves all plans for a user, newest first.
func (r *mongoPlanRepository) GetByUserID(ctx context.Context, userID string) ([]domain.Plan, error) {
	var plans []domain.Plan
	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cursor, err := r.collection.Find(ctx, bson.M{"userId": userID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &plans); err != nil {
		return nil, err
	}
	if err = cursor.Err(); err != nil {
		return nil, err
	}
	// Empty slice when the user has no plans; absence is not an error.
	return plans, nil
}

// GetActiveByUserID retrieves the user's single active plan, if any.
func (r *mongoPlanRepository) GetActiveByUserID(ctx context.Context, userID string) (*domain.Plan, error) {
	var plan domain.Plan
	filter := bson.M{"userId": userID, "isActive": true}
	err := r.collection.FindOne(ctx, filter).Decode(&plan)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &plan, nil
}

// GetAll retrieves every plan. Used only by the admin purge of malformed
// plans, which inspects documents in application code.
func (r *mongoPlanRepository) GetAll(ctx context.Context) ([]domain.Plan, error) {
	var plans []domain.Plan
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &plans); err != nil {
		return nil, err
	}
	return plans, nil
}

// ReplaceWorkoutPlan overwrites the embedded workoutPlan document.
func (r *mongoPlanRepository) ReplaceWorkoutPlan(ctx context.Context, id primitive.ObjectID, workout domain.WorkoutPlan) error {
	update := bson.M{"$set": bson.M{"workoutPlan": workout}}
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// ReplaceSwapRequests replaces the swap-request list of the given kind.
func (r *mongoPlanRepository) ReplaceSwapRequests(ctx context.Context, id primitive.ObjectID, kind domain.SwapKind, items []string) error {
	field := "newWorkoutPlan"
	if kind == domain.SwapFood {
		field = "newDietPlan"
	}
	update := bson.M{"$set": bson.M{field: items}}
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// Delete removes a single plan.
func (r *mongoPlanRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// DeleteByUserID removes every plan owned by the user and reports how many
// documents went.
func (r *mongoPlanRepository) DeleteByUserID(ctx context.Context, userID string) (int64, error) {
	result, err := r.collection.DeleteMany(ctx, bson.M{"userId": userID})
	if err != nil {
		return 0, err
	}
	return result.DeletedCount, nil
}

// EnsurePlanIndexes creates necessary indexes. Call during startup.
func EnsurePlanIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "userId", Value: 1}},
			Options: options.Index(),
		},
		{
			// Compound index for the active-plan lookup on every feedback write
			Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "isActive", Value: 1}},
			Options: options.Index(),
		},
	}
	_, err := collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		// Index creation failure is not fatal; queries still work, slower.
	}
}
