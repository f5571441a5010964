package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"network-match/internal/domain"
	"network-match/internal/repository"
)

type mockMemberRepo struct {
	members    map[string]domain.Member
	lastFilter repository.MemberFilter
	listErr    error
}

func (m *mockMemberRepo) GetByID(_ context.Context, id string) (domain.Member, error) {
	member, ok := m.members[id]
	if !ok {
		return domain.Member{}, pgx.ErrNoRows
	}
	return member, nil
}

func (m *mockMemberRepo) ListExcept(_ context.Context, subjectID string, filter repository.MemberFilter) ([]domain.Member, error) {
	m.lastFilter = filter
	if m.listErr != nil {
		return nil, m.listErr
	}
	var out []domain.Member
	for _, id := range []string{"a1", "c1", "f1", "s1", "s2"} {
		member, ok := m.members[id]
		if !ok || id == subjectID {
			continue
		}
		if len(filter.Roles) > 0 && member.Role != filter.Roles[0] {
			continue
		}
		out = append(out, member)
	}
	return out, nil
}

type mockRelationshipRepo struct {
	pairs []domain.RelationshipPair
	err   error
}

func (m *mockRelationshipRepo) ListForMember(_ context.Context, _ string) ([]domain.RelationshipPair, error) {
	return m.pairs, m.err
}

type mockActivityRepo struct {
	mu     sync.Mutex
	counts map[string]domain.ActivitySignals
	errFor map[string]error
	calls  map[string]int
}

func (m *mockActivityRepo) Counts(_ context.Context, memberID string) (domain.ActivitySignals, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.calls == nil {
		m.calls = make(map[string]int)
	}
	m.calls[memberID]++
	if err := m.errFor[memberID]; err != nil {
		return domain.ActivitySignals{}, err
	}
	return m.counts[memberID], nil
}

func fixture() (*mockMemberRepo, *mockRelationshipRepo, *mockActivityRepo) {
	grad := 2020
	members := &mockMemberRepo{members: map[string]domain.Member{
		"s1": {ID: "s1", Role: domain.RoleStudent, Affiliation: "CSE", Skills: []string{"Go", "SQL"}},
		"a1": {ID: "a1", Role: domain.RoleAlumni, Affiliation: "cse", Skills: []string{"golang", "postgres"}, Headline: "Backend engineer", GraduationYear: &grad},
		"f1": {ID: "f1", Role: domain.RoleFaculty, Affiliation: "EEE"},
		"s2": {ID: "s2", Role: domain.RoleStudent, Affiliation: "CSE", Skills: []string{"sql"}, Bio: "hi"},
		"c1": {ID: "c1", Role: domain.RoleAlumni, Affiliation: "CSE", Skills: []string{"Go", "SQL"}},
	}}
	relationships := &mockRelationshipRepo{pairs: []domain.RelationshipPair{
		{MemberA: "c1", MemberB: "s1", Status: domain.RelationshipAccepted},
	}}
	activity := &mockActivityRepo{counts: map[string]domain.ActivitySignals{
		"a1": {AuthoredContentCount: 2, AcceptedRelationshipCount: 3},
		"s2": {AuthoredContentCount: 4, AcceptedRelationshipCount: 1},
	}}
	return members, relationships, activity
}

func newTestService(members *mockMemberRepo, rel *mockRelationshipRepo, act *mockActivityRepo, cache ActivityCache) *RecommendationService {
	return NewRecommendationService(zap.NewNop(), members, rel, act, cache, RecommendationConfig{
		DefaultLimit: 10,
		MaxLimit:     20,
		Concurrency:  2,
	})
}

func TestRecommendationService_Recommend(t *testing.T) {
	members, rel, act := fixture()
	svc := newTestService(members, rel, act, nil)

	res, err := svc.Recommend(context.Background(), "s1", 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Mode != ModeConnections || res.EmptyReason != domain.EmptyReasonNone {
		t.Fatalf("unexpected mode/reason: %s/%s", res.Mode, res.EmptyReason)
	}
	if res.ResultCount != 2 || res.Results[0].CandidateID != "s2" || res.Results[1].CandidateID != "a1" {
		t.Fatalf("unexpected ranking: %+v", res.Results)
	}
	if res.Results[0].Score != 67 || res.Results[1].Score != 60 {
		t.Fatalf("unexpected scores: %d, %d", res.Results[0].Score, res.Results[1].Score)
	}
	if res.Members["a1"].Headline != "Backend engineer" {
		t.Fatalf("expected recommended members to be attached, got %+v", res.Members)
	}
	if _, ok := act.calls["c1"]; ok {
		t.Fatalf("activity should not be fetched for connected candidates")
	}
}

func TestRecommendationService_RecommendMentors(t *testing.T) {
	members, rel, act := fixture()
	svc := newTestService(members, rel, act, nil)
	svc.now = func() time.Time { return time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC) }

	res, err := svc.RecommendMentors(context.Background(), "s1", 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(members.lastFilter.Roles) != 1 || members.lastFilter.Roles[0] != domain.RoleAlumni {
		t.Fatalf("expected alumni-only pool, got %+v", members.lastFilter)
	}
	if res.Mode != ModeMentors || res.ResultCount != 1 || res.Results[0].CandidateID != "a1" {
		t.Fatalf("unexpected mentor result: %+v", res.Recommendation)
	}
	// 25*0.40 + 100*0.25 + 100*0.20 + 45*0.15 = 61.75
	if res.Results[0].Score != 62 {
		t.Fatalf("expected 62, got %d", res.Results[0].Score)
	}
}

func TestRecommendationService_Errors(t *testing.T) {
	t.Run("unknown subject", func(t *testing.T) {
		members, rel, act := fixture()
		svc := newTestService(members, rel, act, nil)
		if _, err := svc.Recommend(context.Background(), "nobody", 10); !errors.Is(err, ErrMemberNotFound) {
			t.Fatalf("expected ErrMemberNotFound, got %v", err)
		}
	})

	t.Run("negative limit", func(t *testing.T) {
		members, rel, act := fixture()
		svc := newTestService(members, rel, act, nil)
		if _, err := svc.Recommend(context.Background(), "s1", -1); !errors.Is(err, ErrInvalidLimit) {
			t.Fatalf("expected ErrInvalidLimit, got %v", err)
		}
	})

	t.Run("relationship lookup failure", func(t *testing.T) {
		members, rel, act := fixture()
		boom := errors.New("db down")
		rel.err = boom
		svc := newTestService(members, rel, act, nil)
		if _, err := svc.Recommend(context.Background(), "s1", 10); !errors.Is(err, boom) {
			t.Fatalf("expected wrapped db error, got %v", err)
		}
	})

	t.Run("candidate lookup failure", func(t *testing.T) {
		members, rel, act := fixture()
		boom := errors.New("timeout")
		members.listErr = boom
		svc := newTestService(members, rel, act, nil)
		if _, err := svc.Recommend(context.Background(), "s1", 10); !errors.Is(err, boom) {
			t.Fatalf("expected wrapped list error, got %v", err)
		}
	})
}

func TestRecommendationService_ResolveLimit(t *testing.T) {
	members, rel, act := fixture()
	svc := newTestService(members, rel, act, nil)

	tests := []struct {
		in   int
		want int
	}{
		{0, 10},
		{3, 3},
		{20, 20},
		{500, 20},
	}
	for _, tt := range tests {
		got, err := svc.resolveLimit(tt.in)
		if err != nil || got != tt.want {
			t.Fatalf("resolveLimit(%d) = %d, %v; want %d", tt.in, got, err, tt.want)
		}
	}
}

func TestRecommendationService_ActivityDegradesToZero(t *testing.T) {
	members, rel, act := fixture()
	act.errFor = map[string]error{"s2": errors.New("posts table locked")}
	svc := newTestService(members, rel, act, nil)

	res, err := svc.Recommend(context.Background(), "s1", 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// s2 sin conteos: 50*0.40 + 100*0.25 + 70*0.20 + 10*0.15 (bio) = 60.5
	for _, r := range res.Results {
		if r.CandidateID == "s2" && r.Breakdown.Activity != 10 {
			t.Fatalf("expected profile-only activity, got %d", r.Breakdown.Activity)
		}
	}
}

func TestRecommendationService_UsesActivityCache(t *testing.T) {
	members, rel, act := fixture()
	cache := NewMemoryActivityCache(time.Minute)
	svc := newTestService(members, rel, act, cache)
	ctx := context.Background()

	if _, err := svc.Recommend(ctx, "s1", 10); err != nil {
		t.Fatalf("first run: %v", err)
	}
	if _, err := svc.Recommend(ctx, "s1", 10); err != nil {
		t.Fatalf("second run: %v", err)
	}
	if act.calls["a1"] != 1 {
		t.Fatalf("expected one activity fetch for a1 thanks to the cache, got %d", act.calls["a1"])
	}

	if err := svc.InvalidateActivity(ctx, "a1"); err != nil {
		t.Fatalf("invalidate: %v", err)
	}
	if _, err := svc.Recommend(ctx, "s1", 10); err != nil {
		t.Fatalf("third run: %v", err)
	}
	if act.calls["a1"] != 2 {
		t.Fatalf("expected refetch after invalidation, got %d", act.calls["a1"])
	}
}

func TestRecommendationService_AllConnected(t *testing.T) {
	members, rel, act := fixture()
	rel.pairs = []domain.RelationshipPair{
		{MemberA: "s1", MemberB: "a1", Status: domain.RelationshipPending},
		{MemberA: "s1", MemberB: "c1", Status: domain.RelationshipAccepted},
		{MemberA: "f1", MemberB: "s1", Status: domain.RelationshipRejected},
		{MemberA: "s2", MemberB: "s1", Status: domain.RelationshipAccepted},
	}
	svc := newTestService(members, rel, act, nil)

	res, err := svc.Recommend(context.Background(), "s1", 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.EmptyReason != domain.EmptyReasonAllConnected || len(res.Results) != 0 {
		t.Fatalf("expected ALL_CONNECTED, got %+v", res.Recommendation)
	}
}
