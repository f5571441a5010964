package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"network-match/internal/domain"
	"network-match/internal/matching"
	"network-match/internal/metrics"
	"network-match/internal/repository"
)

var (
	ErrMemberNotFound = errors.New("member not found")
	ErrInvalidLimit   = errors.New("invalid limit")
)

// Mode identifica el algoritmo de recomendacion.
type Mode string

const (
	ModeConnections Mode = "connection-matching"
	ModeMentors     Mode = "mentor-matching"
)

// RecommendationConfig agrupa los parametros del servicio.
type RecommendationConfig struct {
	DefaultLimit int
	MaxLimit     int
	Concurrency  int
}

// RecommendationResult es la salida del servicio: la recomendacion del core
// mas los miembros recomendados para poder renderizarlos.
type RecommendationResult struct {
	domain.Recommendation
	Mode    Mode
	Members map[string]domain.Member
}

// RecommendationService obtiene las instantaneas de datos e invoca el core de matching.
type RecommendationService struct {
	logger        *zap.Logger
	members       repository.MemberRepository
	relationships repository.RelationshipRepository
	activity      repository.ActivityRepository
	cache         ActivityCache
	cfg           RecommendationConfig
	now           func() time.Time
}

func NewRecommendationService(
	logger *zap.Logger,
	members repository.MemberRepository,
	relationships repository.RelationshipRepository,
	activity repository.ActivityRepository,
	cache ActivityCache,
	cfg RecommendationConfig,
) *RecommendationService {
	if cfg.DefaultLimit <= 0 {
		cfg.DefaultLimit = matching.DefaultLimit
	}
	if cfg.MaxLimit < cfg.DefaultLimit {
		cfg.MaxLimit = cfg.DefaultLimit
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = 8
	}
	return &RecommendationService{
		logger:        logger,
		members:       members,
		relationships: relationships,
		activity:      activity,
		cache:         cache,
		cfg:           cfg,
		now:           time.Now,
	}
}

// Recommend calcula las conexiones sugeridas para subjectID.
func (s *RecommendationService) Recommend(ctx context.Context, subjectID string, limit int) (RecommendationResult, error) {
	return s.recommend(ctx, ModeConnections, subjectID, limit)
}

// RecommendMentors calcula alumni sugeridos como mentores para subjectID.
func (s *RecommendationService) RecommendMentors(ctx context.Context, subjectID string, limit int) (RecommendationResult, error) {
	return s.recommend(ctx, ModeMentors, subjectID, limit)
}

// InvalidateActivity descarta las señales cacheadas de un miembro.
func (s *RecommendationService) InvalidateActivity(ctx context.Context, memberID string) error {
	if s.cache == nil {
		return nil
	}
	return s.cache.Invalidate(ctx, memberID)
}

func (s *RecommendationService) recommend(ctx context.Context, mode Mode, subjectID string, limit int) (RecommendationResult, error) {
	if s.members == nil || s.relationships == nil || s.activity == nil {
		return RecommendationResult{}, errors.New("recommendation service not configured")
	}
	limit, err := s.resolveLimit(limit)
	if err != nil {
		return RecommendationResult{}, err
	}
	start := time.Now()

	subject, err := s.members.GetByID(ctx, subjectID)
	if errors.Is(err, pgx.ErrNoRows) {
		return RecommendationResult{}, ErrMemberNotFound
	}
	if err != nil {
		return RecommendationResult{}, fmt.Errorf("get subject: %w", err)
	}

	filter := repository.MemberFilter{}
	if mode == ModeMentors {
		filter.Roles = []domain.Role{domain.RoleAlumni}
	}
	pool, err := s.members.ListExcept(ctx, subject.ID, filter)
	if err != nil {
		return RecommendationResult{}, fmt.Errorf("list candidates: %w", err)
	}

	pairs, err := s.relationships.ListForMember(ctx, subject.ID)
	if err != nil {
		return RecommendationResult{}, fmt.Errorf("list relationships: %w", err)
	}

	// Solo se buscan señales de quienes sobreviven al filtro de relaciones.
	available := matching.FilterConnected(subject.ID, pool, pairs)
	signals, err := s.fetchSignals(ctx, available)
	if err != nil {
		return RecommendationResult{}, err
	}

	var rec domain.Recommendation
	switch mode {
	case ModeMentors:
		rec = matching.RecommendMentors(subject, pool, pairs, signals, limit, s.now().Year())
	default:
		rec = matching.Recommend(subject, pool, pairs, signals, limit)
	}

	byID := make(map[string]domain.Member, len(available))
	for _, m := range available {
		byID[m.ID] = m
	}
	members := make(map[string]domain.Member, len(rec.Results))
	for _, r := range rec.Results {
		members[r.CandidateID] = byID[r.CandidateID]
	}

	metrics.RecommendationRuns.WithLabelValues(string(mode), string(rec.EmptyReason)).Inc()
	metrics.RecommendationDuration.WithLabelValues(string(mode)).Observe(time.Since(start).Seconds())
	metrics.RecommendationResults.WithLabelValues(string(mode)).Observe(float64(rec.ResultCount))

	s.logger.Info("recommendations computed",
		zap.String("mode", string(mode)),
		zap.String("subject_id", subject.ID),
		zap.Int("pool", len(pool)),
		zap.Int("available", len(available)),
		zap.Int("results", rec.ResultCount),
		zap.String("empty_reason", string(rec.EmptyReason)),
	)

	return RecommendationResult{Recommendation: rec, Mode: mode, Members: members}, nil
}

func (s *RecommendationService) resolveLimit(limit int) (int, error) {
	switch {
	case limit < 0:
		return 0, ErrInvalidLimit
	case limit == 0:
		return s.cfg.DefaultLimit, nil
	case limit > s.cfg.MaxLimit:
		return s.cfg.MaxLimit, nil
	}
	return limit, nil
}

// fetchSignals obtiene las señales de cada candidato en paralelo. Un error de
// lectura para un candidato no aborta la corrida: se usa actividad cero.
func (s *RecommendationService) fetchSignals(ctx context.Context, candidates []domain.Member) (map[string]domain.ActivitySignals, error) {
	var mu sync.Mutex
	signals := make(map[string]domain.ActivitySignals, len(candidates))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.Concurrency)
	for _, candidate := range candidates {
		g.Go(func() error {
			sig, err := s.signalsFor(gctx, candidate)
			if err != nil {
				return err
			}
			mu.Lock()
			signals[candidate.ID] = sig
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return signals, nil
}

func (s *RecommendationService) signalsFor(ctx context.Context, candidate domain.Member) (domain.ActivitySignals, error) {
	if s.cache != nil {
		cached, ok, err := s.cache.Get(ctx, candidate.ID)
		switch {
		case err != nil:
			metrics.ActivityCacheLookups.WithLabelValues("error").Inc()
			s.logger.Warn("activity cache get failed", zap.String("member_id", candidate.ID), zap.Error(err))
		case ok:
			metrics.ActivityCacheLookups.WithLabelValues("hit").Inc()
			return cached, nil
		default:
			metrics.ActivityCacheLookups.WithLabelValues("miss").Inc()
		}
	}

	counts, err := s.activity.Counts(ctx, candidate.ID)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return domain.ActivitySignals{}, ctxErr
		}
		s.logger.Warn("activity counts failed", zap.String("member_id", candidate.ID), zap.Error(err))
		return domain.ActivitySignals{}.WithProfile(candidate), nil
	}
	if counts.AuthoredContentCount < 0 {
		counts.AuthoredContentCount = 0
	}
	if counts.AcceptedRelationshipCount < 0 {
		counts.AcceptedRelationshipCount = 0
	}
	sig := counts.WithProfile(candidate)

	if s.cache != nil {
		if err := s.cache.Set(ctx, candidate.ID, sig); err != nil {
			s.logger.Warn("activity cache set failed", zap.String("member_id", candidate.ID), zap.Error(err))
		}
	}
	return sig, nil
}
