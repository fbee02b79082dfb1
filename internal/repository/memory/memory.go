// Package memory provides in-process implementations of the store
// interfaces. They back tests and the no-Redis deployment fallback.
package memory

import (
	"context"
	"sync"

	"go-talent-sift-backend/internal/domain"
)

type CreditLedger struct {
	mu       sync.Mutex
	balances map[string]int64
}

func NewCreditLedger() *CreditLedger {
	return &CreditLedger{balances: make(map[string]int64)}
}

func (l *CreditLedger) EnsureBalance(_ context.Context, emailDomain string, initial int64) (int64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	key := domain.DomainKey(emailDomain)
	if balance, ok := l.balances[key]; ok {
		return balance, nil
	}
	l.balances[key] = initial
	return initial, nil
}

func (l *CreditLedger) Deduct(_ context.Context, emailDomain string, amount int64) (int64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	key := domain.DomainKey(emailDomain)
	l.balances[key] -= amount
	return l.balances[key], nil
}

type RankingStore struct {
	mu       sync.RWMutex
	rankings []domain.CandidateRanking
	skills   []string
	caseID   string
}

func NewRankingStore() *RankingStore {
	return &RankingStore{}
}

func (s *RankingStore) ReplaceRankings(_ context.Context, rankings []domain.CandidateRanking) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rankings = append([]domain.CandidateRanking(nil), rankings...)
	return nil
}

func (s *RankingStore) Rankings(_ context.Context) ([]domain.CandidateRanking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.CandidateRanking(nil), s.rankings...), nil
}

func (s *RankingStore) SaveDeclaredSkills(_ context.Context, skills []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.skills = append([]string(nil), skills...)
	return nil
}

func (s *RankingStore) DeclaredSkills(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string(nil), s.skills...), nil
}

func (s *RankingStore) SaveCaseID(_ context.Context, caseID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.caseID = caseID
	return nil
}

func (s *RankingStore) CaseID(_ context.Context) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.caseID, nil
}

type SubmissionGuard struct {
	mu       sync.Mutex
	inflight map[string]bool
}

func NewSubmissionGuard() *SubmissionGuard {
	return &SubmissionGuard{inflight: make(map[string]bool)}
}

func (g *SubmissionGuard) Acquire(_ context.Context, emailDomain string) (bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.inflight[emailDomain] {
		return false, nil
	}
	g.inflight[emailDomain] = true
	return true, nil
}

func (g *SubmissionGuard) Release(_ context.Context, emailDomain string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.inflight, emailDomain)
	return nil
}
