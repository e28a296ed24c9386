package mongodb

import (
	"context"
	"fmt"
	"time"

	"github.com/feedbackhq/feedback-backend/internal/store"
	"github.com/feedbackhq/feedback-backend/types"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// feedbackCollection matches the collection name used by the analytics
// service, which reads the same database.
const feedbackCollection = "feedbacks"

// Ensure mongoFeedbackStore implements store.FeedbackStore
var _ store.FeedbackStore = (*mongoFeedbackStore)(nil)

type mongoFeedbackStore struct {
	coll *mongo.Collection
}

// NewFeedbackStore creates a feedback store backed by the given database.
func NewFeedbackStore(db *mongo.Database) store.FeedbackStore {
	return &mongoFeedbackStore{coll: db.Collection(feedbackCollection)}
}

// feedbackDocument is the BSON shape of a stored record. Field names match
// the documents written by the original collection pipeline so the external
// analytics service keeps working against the same collection.
type feedbackDocument struct {
	ID               primitive.ObjectID `bson:"_id,omitempty"`
	Name             string             `bson:"name"`
	Email            string             `bson:"email"`
	FeedbackType     string             `bson:"feedbackType"`
	Service          string             `bson:"service"`
	Message          string             `bson:"message"`
	Rating           int                `bson:"rating"`
	AttachScreenshot bool               `bson:"attachScreenshot"`
	AgreeToTerms     bool               `bson:"agreeToTerms"`
	CreatedAt        time.Time          `bson:"createdAt"`
	UpdatedAt        time.Time          `bson:"updatedAt"`
}

func toDocument(fb *types.Feedback) feedbackDocument {
	return feedbackDocument{
		Name:             fb.Name,
		Email:            fb.Email,
		FeedbackType:     fb.FeedbackType,
		Service:          fb.Service,
		Message:          fb.Message,
		Rating:           fb.Rating,
		AttachScreenshot: fb.AttachScreenshot,
		AgreeToTerms:     fb.AgreeToTerms,
		CreatedAt:        fb.CreatedAt,
		UpdatedAt:        fb.UpdatedAt,
	}
}

func fromDocument(doc feedbackDocument) types.Feedback {
	return types.Feedback{
		ID:               doc.ID.Hex(),
		Name:             doc.Name,
		Email:            doc.Email,
		FeedbackType:     doc.FeedbackType,
		Service:          doc.Service,
		Message:          doc.Message,
		Rating:           doc.Rating,
		AttachScreenshot: doc.AttachScreenshot,
		AgreeToTerms:     doc.AgreeToTerms,
		CreatedAt:        doc.CreatedAt,
		UpdatedAt:        doc.UpdatedAt,
	}
}

// Save inserts a new feedback record. There is no uniqueness constraint:
// identical submissions produce distinct records.
func (s *mongoFeedbackStore) Save(ctx context.Context, fb *types.Feedback) (*types.Feedback, error) {
	now := time.Now().UTC()
	fb.CreatedAt = now
	fb.UpdatedAt = now

	res, err := s.coll.InsertOne(ctx, toDocument(fb))
	if err != nil {
		return nil, fmt.Errorf("failed to insert feedback: %w", err)
	}

	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return nil, fmt.Errorf("unexpected inserted ID type %T", res.InsertedID)
	}

	saved := *fb
	saved.ID = oid.Hex()
	return &saved, nil
}

// List returns up to limit records, newest first.
func (s *mongoFeedbackStore) List(ctx context.Context, limit int64) ([]types.Feedback, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(limit)

	cursor, err := s.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list feedback: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []feedbackDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode feedback: %w", err)
	}

	out := make([]types.Feedback, len(docs))
	for i, doc := range docs {
		out[i] = fromDocument(doc)
	}
	return out, nil
}

// CountByEmailSince counts submissions from one email address at or after
// the given instant.
func (s *mongoFeedbackStore) CountByEmailSince(ctx context.Context, email string, since time.Time) (int64, error) {
	count, err := s.coll.CountDocuments(ctx, bson.M{
		"email":     email,
		"createdAt": bson.M{"$gte": since},
	})
	if err != nil {
		return 0, fmt.Errorf("failed to count feedback: %w", err)
	}
	return count, nil
}
