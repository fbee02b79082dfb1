package redisstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"go-talent-sift-backend/internal/domain"
)

// Store keys mirror the browser-era persistent state: string keys with
// JSON-string values, created on first write, never torn down.
const (
	rankingsKey = "resumeResults"
	skillsKey   = "keySkills"
	caseIDKey   = "orgId"
)

type rankingStore struct {
	client *redis.Client
}

func NewRankingStore(client *redis.Client) domain.RankingStore {
	return &rankingStore{client: client}
}

func (s *rankingStore) ReplaceRankings(ctx context.Context, rankings []domain.CandidateRanking) error {
	data, err := json.Marshal(rankings)
	if err != nil {
		return fmt.Errorf("redisstore: encode rankings: %w", err)
	}
	// Full replacement, no merge with prior contents
	if err := s.client.Set(ctx, rankingsKey, data, 0).Err(); err != nil {
		return fmt.Errorf("redisstore: write rankings: %w", err)
	}
	return nil
}

func (s *rankingStore) Rankings(ctx context.Context) ([]domain.CandidateRanking, error) {
	data, err := s.client.Get(ctx, rankingsKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redisstore: read rankings: %w", err)
	}
	var rankings []domain.CandidateRanking
	if err := json.Unmarshal(data, &rankings); err != nil {
		return nil, fmt.Errorf("redisstore: decode rankings: %w", err)
	}
	return rankings, nil
}

func (s *rankingStore) SaveDeclaredSkills(ctx context.Context, skills []string) error {
	data, err := json.Marshal(skills)
	if err != nil {
		return fmt.Errorf("redisstore: encode skills: %w", err)
	}
	if err := s.client.Set(ctx, skillsKey, data, 0).Err(); err != nil {
		return fmt.Errorf("redisstore: write skills: %w", err)
	}
	return nil
}

func (s *rankingStore) DeclaredSkills(ctx context.Context) ([]string, error) {
	data, err := s.client.Get(ctx, skillsKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redisstore: read skills: %w", err)
	}
	var skills []string
	if err := json.Unmarshal(data, &skills); err != nil {
		return nil, fmt.Errorf("redisstore: decode skills: %w", err)
	}
	return skills, nil
}

func (s *rankingStore) SaveCaseID(ctx context.Context, caseID string) error {
	if err := s.client.Set(ctx, caseIDKey, caseID, 0).Err(); err != nil {
		return fmt.Errorf("redisstore: write case id: %w", err)
	}
	return nil
}

func (s *rankingStore) CaseID(ctx context.Context) (string, error) {
	caseID, err := s.client.Get(ctx, caseIDKey).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("redisstore: read case id: %w", err)
	}
	return caseID, nil
}
