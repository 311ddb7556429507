// Package services – AnalysisService
//
// This file implements the external analysis collaborator: it reduces the
// request collection to an anonymized summary (type, status, date, and a
// driver-assigned flag only; never names or contacts), sends it to a text
// generation model with a fixed fleet-manager instruction template, and
// returns the model's Portuguese operational summary verbatim.
//
// Failure handling follows the collaborator contract: a missing credential
// yields a fixed "not configured" message without any network call, and a
// service or network error yields a fixed "connection error" message. Both
// are ordinary user-visible strings, never errors. The only error this
// service returns is ErrAnalysisBusy, the single-slot in-flight guard.
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"
	"google.golang.org/genai"

	"github.com/frotaops/go-fleet-backend/internal/domain"
)

// Fixed collaborator outcomes, shown to the operator as-is.
const (
	MsgNotConfigured = "Chave de API não configurada. Configure a API Key para obter insights."
	MsgConnectError  = "Erro ao conectar com a IA. Verifique sua chave de API ou tente novamente mais tarde."
	MsgEmptyAnalysis = "Não foi possível gerar a análise."
)

// analysisPrompt is the instruction template; the trimmed JSON summary is
// interpolated into it.
const analysisPrompt = `Atue como um gerente de frota experiente. Analise os seguintes dados de pedidos (em JSON) e forneça um resumo operacional breve (máximo 3 parágrafos) em Português.

Dados: %s

Foque em:
1. Volume de pendentes vs confirmados.
2. Alertas sobre falta de motoristas (se houver).
3. Sugestão de ação imediata.

Use formatação Markdown simples.`

// generator abstracts the text-generation call so tests can substitute a
// stub without a real client.
type generator interface {
	Generate(ctx context.Context, model, prompt string) (string, error)
}

// genaiGenerator adapts the Gemini client to the generator contract.
type genaiGenerator struct {
	client *genai.Client
}

func (g genaiGenerator) Generate(ctx context.Context, model, prompt string) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, model, genai.Text(prompt), nil)
	if err != nil {
		return "", err
	}
	return resp.Text(), nil
}

// AnalysisService calls the external text-generation service to summarize
// operational status. A nil generator means no credential was configured;
// Analyze then returns MsgNotConfigured synchronously.
type AnalysisService struct {
	gen     generator
	model   string
	timeout time.Duration

	inFlight atomic.Bool
}

// NewAnalysisService constructs the collaborator. An empty apiKey disables
// the external call entirely; a client construction failure is logged and
// likewise leaves the service disabled rather than failing startup.
func NewAnalysisService(ctx context.Context, apiKey, model string, timeout time.Duration) *AnalysisService {
	s := &AnalysisService{model: model, timeout: timeout}
	if apiKey == "" {
		return s
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey})
	if err != nil {
		log.Warn().Err(err).Msg("genai client unavailable, analysis disabled")
		return s
	}
	s.gen = genaiGenerator{client: client}
	return s
}

// summaryEntry is the privacy-trimmed projection of one request sent to the
// model. Field names match the persisted prompt payload shape.
type summaryEntry struct {
	Type   string `json:"type"`
	Status string `json:"status"`
	Date   string `json:"date"`
	Driver string `json:"driver"`
}

// summarize reduces records to the anonymized prompt payload.
func summarize(records []domain.Request) []summaryEntry {
	out := make([]summaryEntry, 0, len(records))
	for _, r := range records {
		driver := "Não"
		if r.AssignedDriver != "" {
			driver = "Sim"
		}
		out = append(out, summaryEntry{
			Type:   r.RequestType.Label(),
			Status: r.Status.Label(),
			Date:   r.PickupDate,
			Driver: driver,
		})
	}
	return out
}

// Analyze produces the operational summary for records.
//
// At most one analysis runs at a time: a second call while one is in flight
// returns ErrAnalysisBusy. The in-flight flag is cleared on every outcome so
// the caller can always re-trigger after completion.
func (s *AnalysisService) Analyze(ctx context.Context, records []domain.Request) (string, error) {
	if !s.inFlight.CompareAndSwap(false, true) {
		return "", ErrAnalysisBusy
	}
	defer s.inFlight.Store(false)

	if s.gen == nil {
		return MsgNotConfigured, nil
	}

	payload, err := json.Marshal(summarize(records))
	if err != nil {
		log.Error().Err(err).Msg("analysis summary marshal failed")
		return MsgConnectError, nil
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	text, err := s.gen.Generate(ctx, s.model, fmt.Sprintf(analysisPrompt, payload))
	if err != nil {
		log.Warn().Err(err).Msg("analysis generation failed")
		return MsgConnectError, nil
	}
	if text == "" {
		return MsgEmptyAnalysis, nil
	}
	return text, nil
}

// Busy reports whether an analysis is currently in flight.
func (s *AnalysisService) Busy() bool { return s.inFlight.Load() }
