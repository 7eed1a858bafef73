package translator

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"docx-translator/internal/terms"
)

// fakeBackend records prompts and plays back canned replies or errors.
type fakeBackend struct {
	replies     []string
	errs        []error
	calls       int
	lastSystem  string
	lastUser    string
	userPrompts []string
}

func (f *fakeBackend) Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	idx := f.calls
	f.calls++
	f.lastSystem = systemPrompt
	f.lastUser = userPrompt
	f.userPrompts = append(f.userPrompts, userPrompt)
	if idx < len(f.errs) && f.errs[idx] != nil {
		return "", f.errs[idx]
	}
	if idx < len(f.replies) {
		return f.replies[idx], nil
	}
	return "translated", nil
}

func newTestEngine(backend Backend) *Engine {
	e := NewEngine(backend)
	e.baseDelay = time.Millisecond
	return e
}

func TestTranslatePassthrough(t *testing.T) {
	backend := &fakeBackend{}
	e := newTestEngine(backend)

	tests := []struct {
		name string
		text string
	}{
		{"empty", ""},
		{"whitespace only", "   "},
		{"english only", "Operating Instructions"},
		{"numbers and punctuation", "4.9 (20 pcs)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := e.Translate(context.Background(), tt.text)
			if err != nil {
				t.Fatalf("Translate(%q) error = %v", tt.text, err)
			}
			if got != tt.text {
				t.Errorf("Translate(%q) = %q, want unchanged", tt.text, got)
			}
		})
	}
	if backend.calls != 0 {
		t.Errorf("backend called %d times for non-Chinese input, want 0", backend.calls)
	}
}

func TestTranslateFixedTranslationWins(t *testing.T) {
	backend := &fakeBackend{}
	e := newTestEngine(backend)
	e.SetFixedTranslations(map[string]string{"注意事項": "Precautions"})

	d := terms.NewDictionary()
	d.Add(terms.Term{English: "precaution items", Traditional: "注意事項"})
	e.SetDictionary(d)

	got, err := e.Translate(context.Background(), "  注意事項")
	if err != nil {
		t.Fatalf("Translate() error = %v", err)
	}
	if got != "  Precautions" {
		t.Errorf("Translate() = %q, want %q", got, "  Precautions")
	}
	if backend.calls != 0 {
		t.Errorf("backend called %d times, want 0", backend.calls)
	}
}

func TestTranslateDictionaryShortCircuit(t *testing.T) {
	backend := &fakeBackend{}
	e := newTestEngine(backend)

	d := terms.NewDictionary()
	d.Add(terms.Term{English: "pressure gauge", Traditional: "壓力錶"})
	e.SetDictionary(d)

	got, err := e.Translate(context.Background(), "壓力錶")
	if err != nil {
		t.Fatalf("Translate() error = %v", err)
	}
	if got != "pressure gauge" {
		t.Errorf("Translate() = %q, want %q", got, "pressure gauge")
	}
	if backend.calls != 0 {
		t.Errorf("backend called %d times, want 0", backend.calls)
	}
}

func TestTranslatePreservesIndent(t *testing.T) {
	backend := &fakeBackend{replies: []string{"Check the valve"}}
	e := newTestEngine(backend)

	got, err := e.Translate(context.Background(), "    檢查閥門")
	if err != nil {
		t.Fatalf("Translate() error = %v", err)
	}
	if got != "    Check the valve" {
		t.Errorf("Translate() = %q, want indent preserved", got)
	}
	if !strings.Contains(backend.lastUser, "檢查閥門") {
		t.Errorf("user prompt %q does not carry the source text", backend.lastUser)
	}
	if backend.lastSystem == "" {
		t.Error("system prompt was empty")
	}
}

func TestTranslatePromptCarriesTermReference(t *testing.T) {
	backend := &fakeBackend{replies: []string{"Install the check valve"}}
	e := newTestEngine(backend)

	d := terms.NewDictionary()
	d.Add(terms.Term{English: "check valve", Traditional: "止回閥，逆止閥"})
	d.Add(terms.Term{English: "flow meter", Traditional: "流量計"})
	e.SetDictionary(d)

	if _, err := e.Translate(context.Background(), "安裝逆止閥並固定"); err != nil {
		t.Fatalf("Translate() error = %v", err)
	}
	if !strings.Contains(backend.lastUser, "逆止閥 → check valve") {
		t.Errorf("user prompt missing matched term reference:\n%s", backend.lastUser)
	}
	if strings.Contains(backend.lastUser, "flow meter") {
		t.Errorf("user prompt carries unmatched term:\n%s", backend.lastUser)
	}
}

func TestTranslateRetriesThenSucceeds(t *testing.T) {
	backend := &fakeBackend{
		errs:    []error{errors.New("temporarily unavailable"), nil},
		replies: []string{"", "Inspect the board"},
	}
	e := newTestEngine(backend)

	got, err := e.Translate(context.Background(), "檢查電路板")
	if err != nil {
		t.Fatalf("Translate() error = %v", err)
	}
	if got != "Inspect the board" {
		t.Errorf("Translate() = %q, want %q", got, "Inspect the board")
	}
	if backend.calls != 2 {
		t.Errorf("backend calls = %d, want 2", backend.calls)
	}
	if e.BackendFailures() != 0 {
		t.Errorf("BackendFailures() = %d, want 0", e.BackendFailures())
	}
}

func TestTranslateExhaustsRetries(t *testing.T) {
	boom := errors.New("boom")
	backend := &fakeBackend{errs: []error{boom, boom, boom}}
	e := newTestEngine(backend)

	got, err := e.Translate(context.Background(), "檢查電路板")
	if err == nil {
		t.Fatal("Translate() expected error after exhausted retries")
	}
	if got != "檢查電路板" {
		t.Errorf("Translate() = %q, want original text back", got)
	}
	if backend.calls != MaxRetries {
		t.Errorf("backend calls = %d, want %d", backend.calls, MaxRetries)
	}
	if e.BackendFailures() != 1 {
		t.Errorf("BackendFailures() = %d, want 1", e.BackendFailures())
	}
}

func TestCheckConnection(t *testing.T) {
	tests := []struct {
		name    string
		backend *fakeBackend
		wantErr bool
	}{
		{"model replies ok", &fakeBackend{replies: []string{"Ok."}}, false},
		{"model replies garbage", &fakeBackend{replies: []string{"I am a language model"}}, true},
		{"backend unreachable", &fakeBackend{errs: []error{errors.New("dial tcp: timeout")}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEngine(tt.backend)
			err := e.CheckConnection(context.Background())
			if (err != nil) != tt.wantErr {
				t.Errorf("CheckConnection() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
