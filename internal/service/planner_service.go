package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"wellness-planner/internal/domain"
	"wellness-planner/internal/email"
	"wellness-planner/internal/notify"
	"wellness-planner/internal/report"
)

// ErrNoClientEmail indica que el plan no tiene a quién enviarse.
var ErrNoClientEmail = errors.New("recommendation has no client email")

// ProductCatalog es la vista del catálogo que necesita el planner.
type ProductCatalog interface {
	Version() string
	DefaultProductID() string
	Products() []domain.Product
}

// TipsGenerator produce los consejos de estilo de vida; nunca falla.
type TipsGenerator interface {
	Generate(ctx context.Context, profile domain.ClientProfile) TipsResult
}

type PlannerConfig struct {
	SessionTTL time.Duration
	Contact    domain.AdminContact
}

// PlannerService orquesta una solicitud completa del asistente: puntaje,
// consejos, aviso al webhook y la sesión con el resultado.
type PlannerService struct {
	catalog  ProductCatalog
	engine   RecommendationEngine
	tips     TipsGenerator
	store    RecommendationStore
	notifier notify.Notifier
	share    *ShareTokenService
	mailer   email.Sender
	cfg      PlannerConfig
	logger   *zap.Logger

	now   func() time.Time
	newID func() string
	bg    sync.WaitGroup
}

func NewPlannerService(
	catalog ProductCatalog,
	tips TipsGenerator,
	store RecommendationStore,
	notifier notify.Notifier,
	share *ShareTokenService,
	mailer email.Sender,
	cfg PlannerConfig,
	logger *zap.Logger,
) *PlannerService {
	if store == nil {
		store = NewMemoryRecommendationStore()
	}
	if notifier == nil {
		notifier = notify.NewDisabledNotifier()
	}
	if mailer == nil {
		mailer = email.NewDisabledSender("")
	}
	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = defaultSessionTTL
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	defaultID := ""
	if catalog != nil {
		defaultID = catalog.DefaultProductID()
	}
	return &PlannerService{
		catalog:  catalog,
		engine:   NewRecommendationEngine(defaultID),
		tips:     tips,
		store:    store,
		notifier: notifier,
		share:    share,
		mailer:   mailer,
		cfg:      cfg,
		logger:   logger,
		now:      time.Now,
		newID:    uuid.NewString,
	}
}

// CreateRecommendation corre el motor y los consejos en paralelo y guarda el
// resultado en la sesión. Solo falla si no hay catálogo o no se puede guardar.
func (s *PlannerService) CreateRecommendation(ctx context.Context, profile domain.ClientProfile) (domain.Recommendation, error) {
	profile = profile.Normalize()
	s.notifyAsync(ctx, profile)

	var products []domain.Product
	version := ""
	if s.catalog != nil {
		products = s.catalog.Products()
		version = s.catalog.Version()
	}

	var (
		ranked domain.RankedRecommendation
		tips   TipsResult
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		ranked, err = s.engine.Recommend(profile, products)
		return err
	})
	g.Go(func() error {
		if s.tips == nil {
			tips = TipsResult{Text: tipsNotConfiguredText, Fallback: true, Reason: TipsNotConfigured}
			return nil
		}
		tips = s.tips.Generate(gctx, profile)
		return nil
	})
	if err := g.Wait(); err != nil {
		return domain.Recommendation{}, err
	}

	rec := domain.Recommendation{
		ID:                    s.newID(),
		ClientName:            profile.Name,
		MainGoal:              profile.MainGoal,
		MainProduct:           ranked.MainProduct,
		ComplementaryProducts: ranked.ComplementaryProducts,
		LifestyleTips:         tips.Text,
		TipsFallback:          tips.Fallback,
		CatalogVersion:        version,
		Profile:               profile,
		CreatedAt:             s.now().UTC(),
	}
	if err := s.store.Save(ctx, rec, s.cfg.SessionTTL); err != nil {
		return domain.Recommendation{}, fmt.Errorf("save recommendation: %w", err)
	}

	s.logger.Info("recommendation created",
		zap.String("recommendation_id", rec.ID),
		zap.String("main_goal", rec.MainGoal),
		zap.String("main_product", rec.MainProduct.ID),
		zap.Int("complementary", len(rec.ComplementaryProducts)),
		zap.String("tips_reason", string(tips.Reason)),
	)
	return rec, nil
}

// notifyAsync dispara el webhook sin esperar respuesta; el resultado no afecta la recomendación.
func (s *PlannerService) notifyAsync(ctx context.Context, profile domain.ClientProfile) {
	ctx = context.WithoutCancel(ctx)
	s.bg.Add(1)
	go func() {
		defer s.bg.Done()
		if err := s.notifier.NotifySubmission(ctx, profile); err != nil {
			s.logger.Warn("submission webhook failed", zap.Error(err))
		}
	}()
}

// Wait bloquea hasta que terminen los avisos en segundo plano.
func (s *PlannerService) Wait() {
	s.bg.Wait()
}

func (s *PlannerService) Get(ctx context.Context, id string) (domain.Recommendation, error) {
	return s.store.Get(ctx, strings.TrimSpace(id))
}

// Discard elimina la sesión ("empezar de nuevo").
func (s *PlannerService) Discard(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if _, err := s.store.Get(ctx, id); err != nil {
		return err
	}
	return s.store.Delete(ctx, id)
}

func (s *PlannerService) Document(ctx context.Context, id string) (report.Document, error) {
	rec, err := s.Get(ctx, id)
	if err != nil {
		return report.Document{}, err
	}
	return report.Render(rec, s.cfg.Contact)
}

// ShareLink es un token de solo lectura para una recomendación.
type ShareLink struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Share emite un enlace y extiende la sesión para que dure lo mismo que el token.
func (s *PlannerService) Share(ctx context.Context, id string) (ShareLink, error) {
	if !s.share.Enabled() {
		return ShareLink{}, ErrShareDisabled
	}
	rec, err := s.Get(ctx, id)
	if err != nil {
		return ShareLink{}, err
	}
	token, exp, err := s.share.Issue(rec.ID)
	if err != nil {
		return ShareLink{}, err
	}
	if ttl := s.share.TTL(); ttl > s.cfg.SessionTTL {
		if err := s.store.Save(ctx, rec, ttl); err != nil {
			return ShareLink{}, fmt.Errorf("extend shared recommendation: %w", err)
		}
	}
	return ShareLink{Token: token, ExpiresAt: exp}, nil
}

func (s *PlannerService) ResolveShare(ctx context.Context, token string) (domain.Recommendation, error) {
	id, err := s.share.Parse(token)
	if err != nil {
		return domain.Recommendation{}, err
	}
	return s.Get(ctx, id)
}

// EmailPlan envía el documento del plan al email del cliente.
func (s *PlannerService) EmailPlan(ctx context.Context, id string) error {
	rec, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	to := strings.TrimSpace(rec.Profile.Email)
	if to == "" {
		return ErrNoClientEmail
	}
	doc, err := report.Render(rec, s.cfg.Contact)
	if err != nil {
		return err
	}
	if err := s.mailer.SendPlan(ctx, to, rec.ClientName, doc); err != nil {
		s.logger.Warn("send plan email failed", zap.String("recommendation_id", rec.ID), zap.Error(err))
		return fmt.Errorf("send plan: %w", err)
	}
	return nil
}

func (s *PlannerService) Contact() domain.AdminContact {
	return s.cfg.Contact
}
