package resume

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/CMPUT-401-Hackathon-2026/job-application-organizer/internal/ats"
	"github.com/CMPUT-401-Hackathon-2026/job-application-organizer/internal/config"
	"github.com/CMPUT-401-Hackathon-2026/job-application-organizer/internal/contract"
	"github.com/CMPUT-401-Hackathon-2026/job-application-organizer/internal/latex"
	"github.com/CMPUT-401-Hackathon-2026/job-application-organizer/internal/llm"
	"github.com/CMPUT-401-Hackathon-2026/job-application-organizer/internal/store"
	"github.com/CMPUT-401-Hackathon-2026/job-application-organizer/pkg/models"
)

type scriptedGenerator struct {
	mu      sync.Mutex
	replies []string
	err     error
	prompts []string
	block   chan struct{}
	entered chan struct{}
}

func (g *scriptedGenerator) Generate(ctx context.Context, prompt string, opts llm.GenerateOptions) (string, error) {
	if g.entered != nil {
		g.entered <- struct{}{}
	}
	if g.block != nil {
		<-g.block
	}
	g.mu.Lock()
	defer g.mu.Unlock()

	g.prompts = append(g.prompts, prompt)
	if g.err != nil {
		return "", g.err
	}
	reply := g.replies[0]
	if len(g.replies) > 1 {
		g.replies = g.replies[1:]
	}
	return reply, nil
}

func (g *scriptedGenerator) GetProviderName() string { return "scripted" }
func (g *scriptedGenerator) GetModelName() string    { return "scripted-1" }

func (g *scriptedGenerator) calls() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.prompts)
}

type stubCompiler struct {
	source string
	err    error
}

func (c *stubCompiler) Compile(ctx context.Context, source string) ([]byte, error) {
	c.source = source
	if c.err != nil {
		return nil, c.err
	}
	return []byte("%PDF-1.4"), nil
}

const acmeReply = "```json\n" + `{
  "header": "Ada Lovelace",
  "summary": "Backend engineer focused on Go microservices.",
  "education": [{"id": 9, "school": "U of A", "degree": "BSc", "field": "CS", "startDate": "2019", "endDate": "2023"}],
  "experience": [{"id": "x", "company": "Acme Corp", "position": "Backend Engineer", "startDate": "2023", "endDate": "Present",
    "description": ["Built Go microservices", "Built Go microservices", "  "]}],
  "projects": [],
  "programmingLanguages": ["Go", "Python"]
}` + "\n```"

type fixture struct {
	svc     *Service
	store   *store.MemoryStore
	gen     *scriptedGenerator
	history *MemoryGenerationLog
	jobID   int64
}

func newFixture(t *testing.T, description string, replies ...string) *fixture {
	t.Helper()
	ctx := context.Background()

	st := store.NewMemoryStore()
	st.PutProfile(ctx, &models.Profile{
		UserID:               "local",
		Name:                 "Ada Lovelace",
		Email:                "ada@example.com",
		ProgrammingLanguages: []string{"Python", "Go"},
		Experience: []models.Experience{
			{Company: "Acme Corp", Position: "Backend Engineer", StartDate: "2023", Description: models.Bullets{"Built Go microservices"}},
		},
	})
	job := &models.Job{UserID: "local", Company: "Acme Corp", Title: "Backend Engineer", Description: description}
	st.CreateJob(ctx, job)

	if len(replies) == 0 {
		replies = []string{acmeReply}
	}
	gen := &scriptedGenerator{replies: replies}
	history := NewMemoryGenerationLog(0)
	cfg := config.Default()

	svc := NewService(Options{
		Store:     st,
		Generator: gen,
		Scorer:    ats.NewScorer(cfg, gen, history),
		Compiler:  &stubCompiler{},
		History:   history,
	})
	return &fixture{svc: svc, store: st, gen: gen, history: history, jobID: job.ID}
}

func TestBuildEndToEnd(t *testing.T) {
	f := newFixture(t, "We need Go microservices experience.")

	stored, err := f.svc.Build(context.Background(), f.jobID, "local")
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	p := f.gen.prompts[0]
	for _, literal := range []string{"Python", "Go", "Acme Corp", "Backend Engineer", "We need Go microservices experience."} {
		if !strings.Contains(p, literal) {
			t.Errorf("Expected prompt to contain %q", literal)
		}
	}

	r := stored.Data
	if len(r.ProgrammingLanguages) == 0 {
		t.Error("Expected non-empty programmingLanguages")
	}
	if r.Experience[0].Company != "Acme Corp" {
		t.Errorf("Expected experience[0].company 'Acme Corp', got '%s'", r.Experience[0].Company)
	}
	if r.Experience[0].ID != "exp-1" || r.Education[0].ID != "edu-1" {
		t.Errorf("Expected positional ids, got '%s' and '%s'", r.Experience[0].ID, r.Education[0].ID)
	}
	if len(r.Experience[0].Description) != 1 {
		t.Errorf("Expected duplicate and blank bullets removed, got %q", r.Experience[0].Description)
	}
	if r.TechStack == nil || r.Projects == nil {
		t.Error("Expected missing lists to default to empty")
	}

	got, err := f.svc.Get(context.Background(), f.jobID, "local")
	if err != nil || got.ID != stored.ID {
		t.Errorf("Expected stored resume to be readable, got %+v (%v)", got, err)
	}

	history, _ := f.svc.Generations(context.Background(), f.jobID, "local")
	if len(history) != 1 || history[0].Outcome != models.GenerationOutcomeOK || history[0].Kind != models.GenerationKindResume {
		t.Errorf("Expected one ok resume generation record, got %+v", history)
	}
}

func TestBuildEmptyDescription(t *testing.T) {
	f := newFixture(t, "   ")

	_, err := f.svc.Build(context.Background(), f.jobID, "local")

	var inputErr *InputError
	if !errors.As(err, &inputErr) {
		t.Fatalf("Expected InputError, got %v", err)
	}
	if f.gen.calls() != 0 {
		t.Errorf("Expected zero generator calls, got %d", f.gen.calls())
	}
}

func TestBuildNotFound(t *testing.T) {
	f := newFixture(t, "jd")
	var notFound *NotFoundError

	if _, err := f.svc.Build(context.Background(), 999, "local"); !errors.As(err, &notFound) || notFound.Resource != "job" {
		t.Errorf("Expected job NotFoundError, got %v", err)
	}
	if _, err := f.svc.Build(context.Background(), f.jobID, "someone-else"); !errors.As(err, &notFound) {
		t.Errorf("Expected another user's job to be hidden, got %v", err)
	}

	f.store.CreateJob(context.Background(), &models.Job{UserID: "noprofile", Title: "x", Description: "jd"})
	if _, err := f.svc.Build(context.Background(), f.jobID+1, "noprofile"); !errors.As(err, &notFound) || notFound.Resource != "profile" {
		t.Errorf("Expected profile NotFoundError, got %v", err)
	}
	if f.gen.calls() != 0 {
		t.Errorf("Expected zero generator calls, got %d", f.gen.calls())
	}
}

func TestBuildFailuresAreSurfaced(t *testing.T) {
	f := newFixture(t, "jd", "{not json")

	_, err := f.svc.Build(context.Background(), f.jobID, "local")

	var schemaErr *contract.SchemaError
	if !errors.As(err, &schemaErr) || schemaErr.Kind != contract.InvalidJSON {
		t.Fatalf("Expected InvalidJSON SchemaError, got %v", err)
	}
	if schemaErr.Raw != "{not json" {
		t.Errorf("Expected raw payload in error, got %q", schemaErr.Raw)
	}
	if _, err := f.store.GetResume(context.Background(), f.jobID); !errors.Is(err, store.ErrNotFound) {
		t.Error("Expected nothing to be stored after a failed build")
	}

	history, _ := f.history.GetGenerationHistory(context.Background(), f.jobID)
	if len(history) != 1 || history[0].Outcome != models.GenerationOutcomeSchemaError || history[0].Raw != "{not json" {
		t.Errorf("Expected schema_error record with raw payload, got %+v", history)
	}

	f.gen.err = &llm.UpstreamError{Kind: "timeout", Provider: "scripted"}
	if _, err := f.svc.Build(context.Background(), f.jobID, "local"); !errors.Is(err, llm.ErrUpstreamTimeout) {
		t.Errorf("Expected ErrUpstreamTimeout, got %v", err)
	}
}

func TestBuildLockRejectsConcurrentBuild(t *testing.T) {
	f := newFixture(t, "jd")
	f.svc.locker = NewLocalLocker()
	f.gen.block = make(chan struct{})
	f.gen.entered = make(chan struct{}, 1)

	done := make(chan error, 1)
	go func() {
		_, err := f.svc.Build(context.Background(), f.jobID, "local")
		done <- err
	}()

	// the first build holds the lock once it reaches the generator
	<-f.gen.entered

	if _, err := f.svc.Build(context.Background(), f.jobID, "local"); !errors.Is(err, ErrBuildInProgress) {
		t.Errorf("Expected ErrBuildInProgress, got %v", err)
	}

	close(f.gen.block)
	if err := <-done; err != nil {
		t.Fatalf("First build failed: %v", err)
	}
	if _, err := f.svc.Build(context.Background(), f.jobID, "local"); err != nil {
		t.Errorf("Expected lock to be released, got %v", err)
	}
}

func TestUpdate(t *testing.T) {
	f := newFixture(t, "jd")
	ctx := context.Background()

	stored, err := f.svc.Update(ctx, f.jobID, "local", map[string]interface{}{
		"summary": "Hand edited",
		"experience": []interface{}{
			map[string]interface{}{"company": "Initech", "position": "TA", "description": []interface{}{"a", "a", "b"}},
		},
	})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if stored.Data.Summary != "Hand edited" || stored.Data.Experience[0].ID != "exp-1" {
		t.Errorf("Expected merged and normalized resume, got %+v", stored.Data)
	}
	if len(stored.Data.Experience[0].Description) != 2 {
		t.Errorf("Expected bullets de-duplicated, got %q", stored.Data.Experience[0].Description)
	}

	stored, err = f.svc.Update(ctx, f.jobID, "local", map[string]interface{}{"header": "Ada"})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if stored.Data.Summary != "Hand edited" || stored.Data.Header != "Ada" {
		t.Errorf("Expected untouched keys to be kept, got %+v", stored.Data)
	}

	tests := []struct {
		name  string
		patch map[string]interface{}
	}{
		{"empty", map[string]interface{}{}},
		{"unknown field", map[string]interface{}{"hobbies": []interface{}{"chess"}}},
		{"wrong type", map[string]interface{}{"experience": "not a list"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var inputErr *InputError
			if _, err := f.svc.Update(ctx, f.jobID, "local", tt.patch); !errors.As(err, &inputErr) {
				t.Errorf("Expected InputError, got %v", err)
			}
		})
	}
}

func TestScan(t *testing.T) {
	f := newFixture(t, "Go microservices", acmeReply, `{"score": 71, "matched_keywords": ["Go"]}`)
	ctx := context.Background()

	var notFound *NotFoundError
	if _, err := f.svc.Scan(ctx, f.jobID, "local"); !errors.As(err, &notFound) {
		t.Fatalf("Expected NotFoundError before build, got %v", err)
	}

	if _, err := f.svc.Build(ctx, f.jobID, "local"); err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	result, err := f.svc.Scan(ctx, f.jobID, "local")
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	if result.Score != 71 || len(result.MatchedKeywords) != 1 {
		t.Errorf("Expected scan result, got %+v", result)
	}

	history, _ := f.svc.Generations(ctx, f.jobID, "local")
	if len(history) != 2 || history[0].Kind != models.GenerationKindATS {
		t.Errorf("Expected newest-first history with the ATS record on top, got %+v", history)
	}
}

func TestRender(t *testing.T) {
	f := newFixture(t, "jd")
	ctx := context.Background()

	if _, _, err := f.svc.RenderSource(ctx, f.jobID, "local", ""); err == nil {
		t.Fatal("Expected error before build")
	}
	if _, err := f.svc.Build(ctx, f.jobID, "local"); err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	name, src, err := f.svc.RenderSource(ctx, f.jobID, "local", "")
	if err != nil {
		t.Fatalf("RenderSource failed: %v", err)
	}
	if name != "resume_1.tex" || !strings.Contains(src, `\textit{Acme Corp}`) {
		t.Errorf("Expected resume_1.tex with rendered content, got '%s'", name)
	}

	name, pdf, err := f.svc.RenderPDF(ctx, f.jobID, "local", latex.CompactTheme)
	if err != nil {
		t.Fatalf("RenderPDF failed: %v", err)
	}
	if name != "resume_1.pdf" || string(pdf) != "%PDF-1.4" {
		t.Errorf("Expected resume_1.pdf, got '%s'", name)
	}

	var inputErr *InputError
	if _, _, err := f.svc.RenderSource(ctx, f.jobID, "local", "neon"); !errors.As(err, &inputErr) {
		t.Errorf("Expected InputError for unknown theme, got %v", err)
	}

	f.svc.compiler = &stubCompiler{err: &latex.CompileError{Pass: 1, ExitCode: 1, Log: "! Undefined control sequence."}}
	if _, pdf, err := f.svc.RenderPDF(ctx, f.jobID, "local", ""); !errors.Is(err, latex.ErrCompile) || pdf != nil {
		t.Errorf("Expected CompileError and no PDF, got %v", err)
	}
}

func TestNewBuildLocker(t *testing.T) {
	for _, mode := range []string{"", "none", "local"} {
		if _, err := NewBuildLocker(mode, nil, 0); err != nil {
			t.Errorf("NewBuildLocker(%q) failed: %v", mode, err)
		}
	}
	if _, err := NewBuildLocker("redis", nil, 0); err == nil {
		t.Error("Expected redis mode without a client to fail")
	}
	if _, err := NewBuildLocker("zookeeper", nil, 0); err == nil {
		t.Error("Expected unknown mode to fail")
	}
}
