package store

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Yashgithub77/lifeeloopp/models"
)

const mongoOpTimeout = 10 * time.Second

// MongoStore persists all planner collections in a single database.
type MongoStore struct {
	db *mongo.Database
}

func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{db: db}
}

func (s *MongoStore) coll(name string) *mongo.Collection {
	return s.db.Collection(name)
}

func opCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, mongoOpTimeout)
}

// ---------- Analysis history ----------

func (s *MongoStore) AppendBehaviorPattern(ctx context.Context, p models.BehaviorPattern) error {
	ctx, cancel := opCtx(ctx)
	defer cancel()
	_, err := s.coll("behavior_patterns").InsertOne(ctx, p)
	return err
}

func (s *MongoStore) AppendDailyInsight(ctx context.Context, in models.DailyInsight) error {
	ctx, cancel := opCtx(ctx)
	defer cancel()
	_, err := s.coll("daily_insights").InsertOne(ctx, in)
	return err
}

func (s *MongoStore) AppendAgentAction(ctx context.Context, a models.AgentAction) error {
	ctx, cancel := opCtx(ctx)
	defer cancel()
	_, err := s.coll("agent_actions").InsertOne(ctx, a)
	return err
}

func (s *MongoStore) GetBehaviorPatterns(ctx context.Context, userID string, limit int64) ([]models.BehaviorPattern, error) {
	ctx, cancel := opCtx(ctx)
	defer cancel()
	opts := options.Find().SetSort(bson.D{{Key: "detected_at", Value: -1}}).SetLimit(limit)
	cursor, err := s.coll("behavior_patterns").Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)
	var out []models.BehaviorPattern
	err = cursor.All(ctx, &out)
	return out, err
}

func (s *MongoStore) GetDailyInsights(ctx context.Context, userID string, limit int64) ([]models.DailyInsight, error) {
	ctx, cancel := opCtx(ctx)
	defer cancel()
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}}).SetLimit(limit)
	cursor, err := s.coll("daily_insights").Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)
	var out []models.DailyInsight
	err = cursor.All(ctx, &out)
	return out, err
}

func (s *MongoStore) GetAgentActions(ctx context.Context, userID string, limit int64) ([]models.AgentAction, error) {
	ctx, cancel := opCtx(ctx)
	defer cancel()
	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: -1}}).SetLimit(limit)
	cursor, err := s.coll("agent_actions").Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)
	var out []models.AgentAction
	err = cursor.All(ctx, &out)
	return out, err
}

// ---------- Tasks and goals ----------

func (s *MongoStore) GetTasks(ctx context.Context, userID string) ([]models.Task, error) {
	ctx, cancel := opCtx(ctx)
	defer cancel()
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}, {Key: "start_time", Value: 1}})
	cursor, err := s.coll("tasks").Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)
	var out []models.Task
	err = cursor.All(ctx, &out)
	return out, err
}

func (s *MongoStore) GetTask(ctx context.Context, userID, taskID string) (*models.Task, error) {
	ctx, cancel := opCtx(ctx)
	defer cancel()
	var t models.Task
	err := s.coll("tasks").FindOne(ctx, bson.M{"user_id": userID, "id": taskID}).Decode(&t)
	if err == mongo.ErrNoDocuments {
		return nil, ErrTaskNotFound
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (s *MongoStore) AddTask(ctx context.Context, t models.Task) error {
	ctx, cancel := opCtx(ctx)
	defer cancel()
	_, err := s.coll("tasks").InsertOne(ctx, t)
	return err
}

func (s *MongoStore) UpdateTask(ctx context.Context, t models.Task) error {
	ctx, cancel := opCtx(ctx)
	defer cancel()
	res, err := s.coll("tasks").ReplaceOne(ctx, bson.M{"user_id": t.UserID, "id": t.ID}, t)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrTaskNotFound
	}
	return nil
}

func (s *MongoStore) GetGoals(ctx context.Context, userID string) ([]models.Goal, error) {
	ctx, cancel := opCtx(ctx)
	defer cancel()
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cursor, err := s.coll("goals").Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)
	var out []models.Goal
	err = cursor.All(ctx, &out)
	return out, err
}

func (s *MongoStore) AddGoal(ctx context.Context, g models.Goal) error {
	ctx, cancel := opCtx(ctx)
	defer cancel()
	_, err := s.coll("goals").InsertOne(ctx, g)
	return err
}

func (s *MongoStore) UpdateGoal(ctx context.Context, userID, goalID string, fields map[string]interface{}) error {
	ctx, cancel := opCtx(ctx)
	defer cancel()
	set := bson.M{}
	for k, v := range fields {
		set[goalFieldKey(k)] = v
	}
	res, err := s.coll("goals").UpdateOne(ctx,
		bson.M{"user_id": userID, "id": goalID},
		bson.M{"$set": set})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrGoalNotFound
	}
	return nil
}

// goalFieldKey maps the API-facing field names onto bson keys.
func goalFieldKey(name string) string {
	switch name {
	case "currentValue":
		return "current_value"
	case "targetValue":
		return "target_value"
	default:
		return name
	}
}

// ---------- Fitness history ----------

func (s *MongoStore) AppendFitnessData(ctx context.Context, d models.FitnessData) error {
	ctx, cancel := opCtx(ctx)
	defer cancel()
	// First write for a date wins; a day's snapshot is never rewritten.
	filter := bson.M{"user_id": d.UserID, "date": d.Date}
	update := bson.M{"$setOnInsert": d}
	opts := options.Update().SetUpsert(true)
	_, err := s.coll("fitness_data").UpdateOne(ctx, filter, update, opts)
	return err
}

func (s *MongoStore) GetFitnessHistory(ctx context.Context, userID string, days int64) ([]models.FitnessData, error) {
	ctx, cancel := opCtx(ctx)
	defer cancel()
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}}).SetLimit(days)
	cursor, err := s.coll("fitness_data").Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)
	var out []models.FitnessData
	if err := cursor.All(ctx, &out); err != nil {
		return nil, err
	}
	// Callers expect chronological order.
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out, nil
}

// ---------- Users ----------

func (s *MongoStore) SaveUser(ctx context.Context, u models.User) error {
	ctx, cancel := opCtx(ctx)
	defer cancel()
	_, err := s.coll("users").InsertOne(ctx, u)
	return err
}

func (s *MongoStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	ctx, cancel := opCtx(ctx)
	defer cancel()
	var u models.User
	err := s.coll("users").FindOne(ctx, bson.M{"email": email}).Decode(&u)
	if err == mongo.ErrNoDocuments {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *MongoStore) GetUserByID(ctx context.Context, userID string) (*models.User, error) {
	ctx, cancel := opCtx(ctx)
	defer cancel()
	var u models.User
	err := s.coll("users").FindOne(ctx, bson.M{"user_id": userID}).Decode(&u)
	if err == mongo.ErrNoDocuments {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *MongoStore) UpdateUserTokens(ctx context.Context, userID, token, refreshToken string) error {
	ctx, cancel := opCtx(ctx)
	defer cancel()
	update := bson.D{{Key: "$set", Value: bson.D{
		{Key: "token", Value: token},
		{Key: "refresh_token", Value: refreshToken},
		{Key: "updated_at", Value: time.Now()},
	}}}
	_, err := s.coll("users").UpdateOne(ctx, bson.M{"user_id": userID}, update)
	return err
}

func (s *MongoStore) CountUsersByEmail(ctx context.Context, email string) (int64, error) {
	ctx, cancel := opCtx(ctx)
	defer cancel()
	return s.coll("users").CountDocuments(ctx, bson.M{"email": email})
}
