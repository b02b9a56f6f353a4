package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/tsm98/social-mern/internal/profile"
)

type profileDoc struct {
	ID             string    `bson:"_id"`
	UserID         string    `bson:"user"`
	Name           string    `bson:"name"`
	Avatar         string    `bson:"avatar"`
	Company        string    `bson:"company,omitempty"`
	Website        string    `bson:"website,omitempty"`
	Location       string    `bson:"location,omitempty"`
	Status         string    `bson:"status"`
	Skills         []string  `bson:"skills"`
	Bio            string    `bson:"bio,omitempty"`
	GitHubUsername string    `bson:"githubusername,omitempty"`
	Social         socialDoc `bson:"social"`
	Date           time.Time `bson:"date"`
}

type socialDoc struct {
	YouTube   string `bson:"youtube,omitempty"`
	Twitter   string `bson:"twitter,omitempty"`
	Facebook  string `bson:"facebook,omitempty"`
	LinkedIn  string `bson:"linkedin,omitempty"`
	Instagram string `bson:"instagram,omitempty"`
}

func toProfileDoc(p profile.Profile) profileDoc {
	doc := profileDoc{
		ID:             p.ID,
		UserID:         p.UserID,
		Name:           p.Name,
		Avatar:         p.Avatar,
		Company:        p.Company,
		Website:        p.Website,
		Location:       p.Location,
		Status:         p.Status,
		Skills:         append([]string{}, p.Skills...),
		Bio:            p.Bio,
		GitHubUsername: p.GitHubUsername,
		Social:         socialDoc(p.Social),
		Date:           p.Date,
	}
	return doc
}

func fromProfileDoc(doc profileDoc) profile.Profile {
	return profile.Profile{
		ID:             doc.ID,
		UserID:         doc.UserID,
		Name:           doc.Name,
		Avatar:         doc.Avatar,
		Company:        doc.Company,
		Website:        doc.Website,
		Location:       doc.Location,
		Status:         doc.Status,
		Skills:         append([]string{}, doc.Skills...),
		Bio:            doc.Bio,
		GitHubUsername: doc.GitHubUsername,
		Social:         profile.Social(doc.Social),
		Date:           doc.Date,
	}
}

type ProfileStore struct {
	coll *mongo.Collection
}

func NewProfileStore(database *mongo.Database) *ProfileStore {
	return &ProfileStore{coll: database.Collection(profilesCollection)}
}

func (s *ProfileStore) Upsert(ctx context.Context, p profile.Profile) (profile.Profile, error) {
	filter := bson.D{{Key: "user", Value: p.UserID}}
	if _, err := s.coll.ReplaceOne(ctx, filter, toProfileDoc(p), options.Replace().SetUpsert(true)); err != nil {
		return profile.Profile{}, fmt.Errorf("upsert profile: %w", err)
	}
	return p, nil
}

func (s *ProfileStore) FindByUser(ctx context.Context, userID string) (profile.Profile, error) {
	var doc profileDoc
	err := s.coll.FindOne(ctx, bson.D{{Key: "user", Value: userID}}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return profile.Profile{}, profile.ErrProfileNotFound
	}
	if err != nil {
		return profile.Profile{}, fmt.Errorf("find profile: %w", err)
	}
	return fromProfileDoc(doc), nil
}

func (s *ProfileStore) List(ctx context.Context) ([]profile.Profile, error) {
	cursor, err := s.coll.Find(ctx, bson.D{}, options.Find().SetSort(bson.D{{Key: "date", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}
	var docs []profileDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode profiles: %w", err)
	}
	profiles := make([]profile.Profile, 0, len(docs))
	for _, doc := range docs {
		profiles = append(profiles, fromProfileDoc(doc))
	}
	return profiles, nil
}

func (s *ProfileStore) DeleteByUser(ctx context.Context, userID string) error {
	res, err := s.coll.DeleteOne(ctx, bson.D{{Key: "user", Value: userID}})
	if err != nil {
		return fmt.Errorf("delete profile: %w", err)
	}
	if res.DeletedCount == 0 {
		return profile.ErrProfileNotFound
	}
	return nil
}
