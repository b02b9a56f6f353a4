package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/tsm98/social-mern/internal/db"
	"github.com/tsm98/social-mern/internal/profile"
)

const profileColumns = `id, user_id, name, avatar, company, website, location, status, skills, bio, github_username, social, date`

type ProfileStore struct {
	db db.Querier
}

func NewProfileStore(q db.Querier) *ProfileStore {
	return &ProfileStore{db: q}
}

func (s *ProfileStore) Upsert(ctx context.Context, p profile.Profile) (profile.Profile, error) {
	skills, err := json.Marshal(p.Skills)
	if err != nil {
		return profile.Profile{}, fmt.Errorf("encode skills: %w", err)
	}
	social, err := json.Marshal(p.Social)
	if err != nil {
		return profile.Profile{}, fmt.Errorf("encode social: %w", err)
	}
	_, err = s.db.Exec(ctx, `
		INSERT INTO profiles (`+profileColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)
		ON CONFLICT (user_id) DO UPDATE SET
			name=EXCLUDED.name, avatar=EXCLUDED.avatar, company=EXCLUDED.company,
			website=EXCLUDED.website, location=EXCLUDED.location, status=EXCLUDED.status,
			skills=EXCLUDED.skills, bio=EXCLUDED.bio, github_username=EXCLUDED.github_username,
			social=EXCLUDED.social
	`, p.ID, p.UserID, p.Name, p.Avatar, p.Company, p.Website, p.Location, p.Status, skills, p.Bio, p.GitHubUsername, social, p.Date)
	if err != nil {
		return profile.Profile{}, fmt.Errorf("upsert profile: %w", err)
	}
	return p, nil
}

func (s *ProfileStore) FindByUser(ctx context.Context, userID string) (profile.Profile, error) {
	p, err := scanProfile(s.db.QueryRow(ctx, `SELECT `+profileColumns+` FROM profiles WHERE user_id = $1`, userID))
	if errors.Is(err, pgx.ErrNoRows) {
		return profile.Profile{}, profile.ErrProfileNotFound
	}
	if err != nil {
		return profile.Profile{}, fmt.Errorf("select profile: %w", err)
	}
	return p, nil
}

func (s *ProfileStore) List(ctx context.Context) ([]profile.Profile, error) {
	rows, err := s.db.Query(ctx, `SELECT `+profileColumns+` FROM profiles ORDER BY date`)
	if err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}
	defer rows.Close()

	profiles := []profile.Profile{}
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, fmt.Errorf("scan profile: %w", err)
		}
		profiles = append(profiles, p)
	}
	return profiles, rows.Err()
}

func (s *ProfileStore) DeleteByUser(ctx context.Context, userID string) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM profiles WHERE user_id = $1`, userID)
	if err != nil {
		return fmt.Errorf("delete profile: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return profile.ErrProfileNotFound
	}
	return nil
}

func scanProfile(row rowScanner) (profile.Profile, error) {
	var p profile.Profile
	var skills, social []byte
	if err := row.Scan(&p.ID, &p.UserID, &p.Name, &p.Avatar, &p.Company, &p.Website, &p.Location, &p.Status, &skills, &p.Bio, &p.GitHubUsername, &social, &p.Date); err != nil {
		return profile.Profile{}, err
	}
	p.Skills = []string{}
	if err := decodeJSON(skills, &p.Skills); err != nil {
		return profile.Profile{}, fmt.Errorf("decode skills: %w", err)
	}
	if err := decodeJSON(social, &p.Social); err != nil {
		return profile.Profile{}, fmt.Errorf("decode social: %w", err)
	}
	return p, nil
}
