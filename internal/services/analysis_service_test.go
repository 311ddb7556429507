package services

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/frotaops/go-fleet-backend/internal/domain"
)

type stubGenerator struct {
	fn func(ctx context.Context, model, prompt string) (string, error)
}

func (s stubGenerator) Generate(ctx context.Context, model, prompt string) (string, error) {
	return s.fn(ctx, model, prompt)
}

func newStubService(fn func(ctx context.Context, model, prompt string) (string, error)) *AnalysisService {
	s := NewAnalysisService(context.Background(), "", "gemini-2.0-flash", time.Second)
	s.gen = stubGenerator{fn: fn}
	return s
}

func TestAnalyze_NotConfigured(t *testing.T) {
	// No API key: the fixed message comes back synchronously, no call made.
	s := NewAnalysisService(context.Background(), "", "gemini-2.0-flash", time.Second)

	got, err := s.Analyze(context.Background(), domain.SeedRequests())
	if err != nil {
		t.Fatalf("err = %v", err)
	}
	if got != MsgNotConfigured {
		t.Fatalf("got = %q", got)
	}
	if s.Busy() {
		t.Fatal("still busy after completion")
	}
}

func TestAnalyze_Success(t *testing.T) {
	var gotModel, gotPrompt string
	s := newStubService(func(ctx context.Context, model, prompt string) (string, error) {
		gotModel, gotPrompt = model, prompt
		return "## Resumo\nTudo em ordem.", nil
	})

	text, err := s.Analyze(context.Background(), domain.SeedRequests())
	if err != nil {
		t.Fatalf("err = %v", err)
	}
	if text != "## Resumo\nTudo em ordem." {
		t.Fatalf("text = %q", text)
	}
	if gotModel != "gemini-2.0-flash" {
		t.Fatalf("model = %q", gotModel)
	}
	if !strings.Contains(gotPrompt, "gerente de frota") {
		t.Fatalf("prompt missing instruction: %q", gotPrompt)
	}
}

func TestAnalyze_PromptIsAnonymized(t *testing.T) {
	var gotPrompt string
	s := newStubService(func(ctx context.Context, model, prompt string) (string, error) {
		gotPrompt = prompt
		return "ok", nil
	})

	if _, err := s.Analyze(context.Background(), domain.SeedRequests()); err != nil {
		t.Fatalf("err = %v", err)
	}

	// Display labels and the driver flag go out; identities never do.
	for _, want := range []string{`"driver":"Sim"`, `"driver":"Não"`, "Aguarda confirmação", "Aluguer"} {
		if !strings.Contains(gotPrompt, want) {
			t.Fatalf("prompt missing %q:\n%s", want, gotPrompt)
		}
	}
	for _, leak := range []string{"Empresa ABC Lda", "Hotel Solar", "912345678", "Carlos Motorista", "REQ-001"} {
		if strings.Contains(gotPrompt, leak) {
			t.Fatalf("prompt leaked %q", leak)
		}
	}
}

func TestAnalyze_GenerationErrorBecomesFixedMessage(t *testing.T) {
	s := newStubService(func(ctx context.Context, model, prompt string) (string, error) {
		return "", errors.New("upstream 500")
	})

	got, err := s.Analyze(context.Background(), nil)
	if err != nil {
		t.Fatalf("err = %v", err)
	}
	if got != MsgConnectError {
		t.Fatalf("got = %q", got)
	}
	if s.Busy() {
		t.Fatal("busy flag stuck after error")
	}
}

func TestAnalyze_EmptyTextFallback(t *testing.T) {
	s := newStubService(func(ctx context.Context, model, prompt string) (string, error) {
		return "", nil
	})

	got, err := s.Analyze(context.Background(), nil)
	if err != nil {
		t.Fatalf("err = %v", err)
	}
	if got != MsgEmptyAnalysis {
		t.Fatalf("got = %q", got)
	}
}

func TestAnalyze_SingleFlight(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})
	var once sync.Once
	s := newStubService(func(ctx context.Context, model, prompt string) (string, error) {
		once.Do(func() { close(started) })
		<-release
		return "ok", nil
	})

	done := make(chan error, 1)
	go func() {
		_, err := s.Analyze(context.Background(), nil)
		done <- err
	}()

	<-started
	if !s.Busy() {
		t.Fatal("Busy() false while generation in flight")
	}
	if _, err := s.Analyze(context.Background(), nil); !errors.Is(err, ErrAnalysisBusy) {
		t.Fatalf("concurrent call err = %v, want ErrAnalysisBusy", err)
	}

	close(release)
	if err := <-done; err != nil {
		t.Fatalf("first call err = %v", err)
	}
	if s.Busy() {
		t.Fatal("busy flag stuck")
	}

	// The slot frees for the next trigger.
	if _, err := s.Analyze(context.Background(), nil); err != nil {
		t.Fatalf("follow-up err = %v", err)
	}
}

func TestAnalyze_RespectsTimeout(t *testing.T) {
	s := newStubService(func(ctx context.Context, model, prompt string) (string, error) {
		<-ctx.Done()
		return "", ctx.Err()
	})
	s.timeout = 10 * time.Millisecond

	got, err := s.Analyze(context.Background(), nil)
	if err != nil {
		t.Fatalf("err = %v", err)
	}
	if got != MsgConnectError {
		t.Fatalf("got = %q", got)
	}
}
