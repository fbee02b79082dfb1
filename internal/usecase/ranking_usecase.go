package usecase

import (
	"context"
	"errors"
	"strings"

	"go-talent-sift-backend/internal/domain"
	"go-talent-sift-backend/pkg/apperror"
)

type rankingUsecase struct {
	store      domain.RankingStore
	client     domain.RankingClient
	workflowID string
}

func NewRankingUsecase(store domain.RankingStore, client domain.RankingClient, workflowID string) domain.RankingUsecase {
	return &rankingUsecase{
		store:      store,
		client:     client,
		workflowID: workflowID,
	}
}

// Project applies the filter state to the cached ranking list. The projection
// is recomputed in full on every call; output order equals input order.
func (u *rankingUsecase) Project(ctx context.Context, filter domain.FilterState) (*domain.RankingView, error) {
	rankings, err := u.store.Rankings(ctx)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	skills, err := u.store.DeclaredSkills(ctx)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	caseID, err := u.store.CaseID(ctx)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	return &domain.RankingView{
		CaseID:         caseID,
		DeclaredSkills: skills,
		Total:          len(rankings),
		Rankings:       domain.Project(rankings, filter),
	}, nil
}

// FetchCase retrieves a prior submission's rankings from the upstream by case
// id, re-normalizes them and replaces the local cache.
func (u *rankingUsecase) FetchCase(ctx context.Context, orgID string) (*domain.RankingView, error) {
	orgID = strings.TrimSpace(orgID)
	if orgID == "" {
		return nil, apperror.BadRequest("Please enter Case ID.")
	}

	result, err := u.client.FetchByCase(ctx, orgID, u.workflowID)
	if err != nil {
		if errors.Is(err, domain.ErrCaseNotFound) {
			return nil, apperror.NotFound("No resumes found for this Case ID.")
		}
		return nil, apperror.BadGateway("Error retrieving resumes.", err)
	}

	// Prefer the locally declared skills; fall back to the exe name the
	// upstream recorded with the case
	skills, err := u.store.DeclaredSkills(ctx)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if len(skills) == 0 && result.ExeName != "" {
		skills = domain.ParseSkills(result.ExeName)
		if err := u.store.SaveDeclaredSkills(ctx, skills); err != nil {
			return nil, apperror.Internal(err)
		}
	}

	rankings := domain.NormalizeRankings(result.Rankings, skills)
	if err := u.store.ReplaceRankings(ctx, rankings); err != nil {
		return nil, apperror.Internal(err)
	}
	if err := u.store.SaveCaseID(ctx, orgID); err != nil {
		return nil, apperror.Internal(err)
	}

	return &domain.RankingView{
		CaseID:         orgID,
		DeclaredSkills: skills,
		Total:          len(rankings),
		Rankings:       rankings,
	}, nil
}
