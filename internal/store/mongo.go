package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/serenelabs/serene/internal/models"
)

const mongoOpTimeout = 10 * time.Second

// MongoStore implements Store on MongoDB collections partitioned by user_id.
type MongoStore struct {
	moodLogs    *mongo.Collection
	journal     *mongo.Collection
	mindfulness *mongo.Collection
	safetyAudit *mongo.Collection
	users       *mongo.Collection
}

// ConnectMongo dials MongoDB and verifies the connection.
func ConnectMongo(ctx context.Context, uri string) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("store: connect mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("store: mongo unreachable: %w", err)
	}
	return client, nil
}

// NewMongoStore binds a store to the named database.
func NewMongoStore(client *mongo.Client, dbName string) *MongoStore {
	db := client.Database(dbName)
	return &MongoStore{
		moodLogs:    db.Collection("mood_logs"),
		journal:     db.Collection("journal_entries"),
		mindfulness: db.Collection("mindfulness_sessions"),
		safetyAudit: db.Collection("safety_assessments"),
		users:       db.Collection("users"),
	}
}

func opCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, mongoOpTimeout)
}

func windowFilter(userID string, w Window) bson.M {
	filter := bson.M{"user_id": userID}
	ts := bson.M{}
	if !w.From.IsZero() {
		ts["$gte"] = w.From
	}
	if !w.To.IsZero() {
		ts["$lt"] = w.To
	}
	if len(ts) > 0 {
		filter["timestamp"] = ts
	}
	return filter
}

func (s *MongoStore) CreateMoodLog(ctx context.Context, log *models.MoodLog) error {
	if err := log.Validate(); err != nil {
		return err
	}
	ctx, cancel := opCtx(ctx)
	defer cancel()

	if log.SubmissionID != "" {
		filter := bson.M{"user_id": log.UserID, "submission_id": log.SubmissionID}
		opts := options.Replace().SetUpsert(true)
		if _, err := s.moodLogs.ReplaceOne(ctx, filter, log, opts); err != nil {
			return fmt.Errorf("store: upsert mood log: %w", err)
		}
		return nil
	}
	if _, err := s.moodLogs.InsertOne(ctx, log); err != nil {
		return fmt.Errorf("store: insert mood log: %w", err)
	}
	return nil
}

func (s *MongoStore) MoodLogs(ctx context.Context, userID string, w Window) ([]models.MoodLog, error) {
	ctx, cancel := opCtx(ctx)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: 1}})
	cursor, err := s.moodLogs.Find(ctx, windowFilter(userID, w), opts)
	if err != nil {
		return nil, fmt.Errorf("store: query mood logs: %w", err)
	}
	defer cursor.Close(ctx)
	var out []models.MoodLog
	if err := cursor.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("store: decode mood logs: %w", err)
	}
	return out, nil
}

func (s *MongoStore) CreateJournalEntry(ctx context.Context, entry *models.JournalEntry) error {
	if err := entry.Validate(); err != nil {
		return err
	}
	ctx, cancel := opCtx(ctx)
	defer cancel()

	if entry.SubmissionID != "" {
		filter := bson.M{"user_id": entry.UserID, "submission_id": entry.SubmissionID}
		opts := options.Replace().SetUpsert(true)
		if _, err := s.journal.ReplaceOne(ctx, filter, entry, opts); err != nil {
			return fmt.Errorf("store: upsert journal entry: %w", err)
		}
		return nil
	}
	if _, err := s.journal.InsertOne(ctx, entry); err != nil {
		return fmt.Errorf("store: insert journal entry: %w", err)
	}
	return nil
}

func (s *MongoStore) JournalEntry(ctx context.Context, userID, entryID string) (*models.JournalEntry, error) {
	ctx, cancel := opCtx(ctx)
	defer cancel()

	var entry models.JournalEntry
	err := s.journal.FindOne(ctx, bson.M{"_id": entryID, "user_id": userID}).Decode(&entry)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("store: get journal entry: %w", err)
	}
	return &entry, nil
}

func (s *MongoStore) JournalEntries(ctx context.Context, userID string, skip, limit int) ([]models.JournalEntry, error) {
	ctx, cancel := opCtx(ctx)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64(skip)).
		SetLimit(int64(limit))
	cursor, err := s.journal.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("store: query journal entries: %w", err)
	}
	defer cursor.Close(ctx)
	var out []models.JournalEntry
	if err := cursor.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("store: decode journal entries: %w", err)
	}
	return out, nil
}

func (s *MongoStore) JournalEntriesInWindow(ctx context.Context, userID string, w Window) ([]models.JournalEntry, error) {
	ctx, cancel := opCtx(ctx)
	defer cancel()

	filter := bson.M{"user_id": userID}
	created := bson.M{}
	if !w.From.IsZero() {
		created["$gte"] = w.From
	}
	if !w.To.IsZero() {
		created["$lt"] = w.To
	}
	if len(created) > 0 {
		filter["created_at"] = created
	}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cursor, err := s.journal.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("store: query journal window: %w", err)
	}
	defer cursor.Close(ctx)
	var out []models.JournalEntry
	if err := cursor.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("store: decode journal window: %w", err)
	}
	return out, nil
}

func (s *MongoStore) UpdateJournalEntry(ctx context.Context, userID, entryID string, update JournalEntryUpdate) (*models.JournalEntry, error) {
	set := bson.M{"updated_at": time.Now().UTC()}
	if update.Content != nil {
		set["content"] = *update.Content
	}
	if update.MoodIndicators != nil {
		set["mood_indicators"] = update.MoodIndicators
	}
	if update.MoodScore != nil {
		set["mood_score"] = *update.MoodScore
	}

	ctx, cancel := opCtx(ctx)
	defer cancel()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var entry models.JournalEntry
	err := s.journal.FindOneAndUpdate(ctx,
		bson.M{"_id": entryID, "user_id": userID},
		bson.M{"$set": set},
		opts,
	).Decode(&entry)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("store: update journal entry: %w", err)
	}
	return &entry, nil
}

func (s *MongoStore) DeleteJournalEntry(ctx context.Context, userID, entryID string) error {
	ctx, cancel := opCtx(ctx)
	defer cancel()

	res, err := s.journal.DeleteOne(ctx, bson.M{"_id": entryID, "user_id": userID})
	if err != nil {
		return fmt.Errorf("store: delete journal entry: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MongoStore) CreateMindfulnessSession(ctx context.Context, session *models.MindfulnessSession) error {
	if err := session.Validate(); err != nil {
		return err
	}
	ctx, cancel := opCtx(ctx)
	defer cancel()

	if _, err := s.mindfulness.InsertOne(ctx, session); err != nil {
		return fmt.Errorf("store: insert mindfulness session: %w", err)
	}
	return nil
}

func (s *MongoStore) MindfulnessSessions(ctx context.Context, userID string) ([]models.MindfulnessSession, error) {
	ctx, cancel := opCtx(ctx)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: -1}})
	cursor, err := s.mindfulness.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("store: query mindfulness sessions: %w", err)
	}
	defer cursor.Close(ctx)
	var out []models.MindfulnessSession
	if err := cursor.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("store: decode mindfulness sessions: %w", err)
	}
	return out, nil
}

func (s *MongoStore) CreateSafetyAudit(ctx context.Context, rec *models.SafetyAuditRecord) error {
	ctx, cancel := opCtx(ctx)
	defer cancel()

	if _, err := s.safetyAudit.InsertOne(ctx, rec); err != nil {
		return fmt.Errorf("store: insert safety audit: %w", err)
	}
	return nil
}

func (s *MongoStore) CreateUser(ctx context.Context, user *models.User) error {
	if err := user.Validate(); err != nil {
		return err
	}
	ctx, cancel := opCtx(ctx)
	defer cancel()

	if _, err := s.users.InsertOne(ctx, user); err != nil {
		return fmt.Errorf("store: insert user: %w", err)
	}
	return nil
}

func (s *MongoStore) UserByEmail(ctx context.Context, email string) (*models.User, error) {
	ctx, cancel := opCtx(ctx)
	defer cancel()

	var user models.User
	err := s.users.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("store: get user by email: %w", err)
	}
	return &user, nil
}

func (s *MongoStore) UserByID(ctx context.Context, id string) (*models.User, error) {
	ctx, cancel := opCtx(ctx)
	defer cancel()

	var user models.User
	err := s.users.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("store: get user: %w", err)
	}
	return &user, nil
}
