package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"wellness-planner/internal/domain"
	"wellness-planner/internal/llm"
)

// TipsReason explica de dónde salió el texto de consejos.
type TipsReason string

const (
	TipsGenerated      TipsReason = "generated"
	TipsNotConfigured  TipsReason = "not_configured"
	TipsEmpty          TipsReason = "empty"
	TipsInvalidKey     TipsReason = "invalid_key"
	TipsQuotaExceeded  TipsReason = "quota_exceeded"
	TipsRateLimited    TipsReason = "rate_limited"
	TipsProductMention TipsReason = "product_mention"
	TipsFailed         TipsReason = "failed"
)

const (
	tipsNotConfiguredText = "La generación de consejos de estilo de vida no está disponible en este momento (clave API no configurada). Por favor, consulta a tu asesor de bienestar."
	tipsEmptyText         = "No se pudieron generar consejos de estilo de vida en este momento. Intenta ser más específico en tu información o consulta a tu asesor."
	tipsErrorPrefix       = "Hubo un problema al generar los consejos de estilo de vida. "
	tipsInvalidKeyText    = tipsErrorPrefix + "La clave API no es válida. Por favor, verifica la configuración."
	tipsQuotaText         = tipsErrorPrefix + "Se ha alcanzado la cuota de uso. Inténtalo más tarde."
	tipsGenericText       = tipsErrorPrefix + "Por favor, inténtalo de nuevo más tarde."
)

const defaultTipsTimeout = 20 * time.Second

// TipsResult siempre trae un texto mostrable; Fallback indica que no viene del modelo.
type TipsResult struct {
	Text     string
	Fallback bool
	Reason   TipsReason
}

type TipsService struct {
	llmClient    llm.LLMClient
	limiter      TipsRateLimiter
	timeout      time.Duration
	productNames []string
	logger       *zap.Logger
}

// NewTipsService envuelve al LLM para que nunca devuelva error. productNames son
// los nombres del catálogo que no pueden aparecer en los consejos.
func NewTipsService(client llm.LLMClient, limiter TipsRateLimiter, timeout time.Duration, productNames []string, logger *zap.Logger) *TipsService {
	if client == nil {
		client = llm.DisabledClient{}
	}
	if timeout <= 0 {
		timeout = defaultTipsTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TipsService{
		llmClient:    client,
		limiter:      limiter,
		timeout:      timeout,
		productNames: productNames,
		logger:       logger,
	}
}

// Generate pide al LLM los consejos de estilo de vida del perfil.
func (s *TipsService) Generate(ctx context.Context, profile domain.ClientProfile) TipsResult {
	if s.limiter != nil && !s.limiter.Allow(profile.ContactKey()) {
		s.logger.Warn("tips rate limited", zap.String("main_goal", profile.MainGoal))
		return TipsResult{Text: tipsQuotaText, Fallback: true, Reason: TipsRateLimited}
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	raw, err := s.llmClient.Generate(ctx, buildTipsPrompt(profile))
	if err != nil {
		return s.failure(err)
	}

	text := cleanLLMTextResponse(raw)
	if text == "" {
		s.logger.Warn("tips empty response")
		return TipsResult{Text: tipsEmptyText, Fallback: true, Reason: TipsEmpty}
	}
	if name, ok := mentionsAny(text, s.productNames); ok {
		s.logger.Warn("tips mention a catalog product, discarding", zap.String("product", name))
		return TipsResult{Text: tipsGenericText, Fallback: true, Reason: TipsProductMention}
	}
	return TipsResult{Text: text, Reason: TipsGenerated}
}

func (s *TipsService) failure(err error) TipsResult {
	switch {
	case errors.Is(err, llm.ErrNotConfigured):
		s.logger.Warn("tips llm not configured")
		return TipsResult{Text: tipsNotConfiguredText, Fallback: true, Reason: TipsNotConfigured}
	case errors.Is(err, llm.ErrEmptyResponse):
		s.logger.Warn("tips empty response")
		return TipsResult{Text: tipsEmptyText, Fallback: true, Reason: TipsEmpty}
	case llm.IsInvalidKey(err):
		s.logger.Error("tips llm rejected api key", zap.Error(err))
		return TipsResult{Text: tipsInvalidKeyText, Fallback: true, Reason: TipsInvalidKey}
	case llm.IsQuotaExceeded(err):
		s.logger.Warn("tips llm quota exceeded", zap.Error(err))
		return TipsResult{Text: tipsQuotaText, Fallback: true, Reason: TipsQuotaExceeded}
	default:
		s.logger.Warn("tips generation failed", zap.Error(err))
		return TipsResult{Text: tipsGenericText, Fallback: true, Reason: TipsFailed}
	}
}
