package jobs

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/CMPUT-401-Hackathon-2026/job-application-organizer/internal/store"
	"github.com/CMPUT-401-Hackathon-2026/job-application-organizer/pkg/models"
)

func TestHTMLToText(t *testing.T) {
	html := `<html><head><title>Jobs</title><script>track()</script></head>
	<body><nav>Home | Careers</nav>
	<div class="job-description">
	  <h2>Backend Engineer</h2>
	  <p>Build   Go microservices<br>at scale.</p>
	  <ul><li>Go</li><li>PostgreSQL</li></ul>
	</div>
	<footer>© Acme</footer></body></html>`

	text, err := HTMLToText(html)
	if err != nil {
		t.Fatalf("HTMLToText failed: %v", err)
	}

	for _, want := range []string{"Backend Engineer", "Build Go microservices\nat scale.", "• Go", "• PostgreSQL"} {
		if !strings.Contains(text, want) {
			t.Errorf("Expected text to contain %q, got:\n%s", want, text)
		}
	}
	for _, unwanted := range []string{"track()", "Home | Careers", "© Acme", "Jobs"} {
		if strings.Contains(text, unwanted) {
			t.Errorf("Expected %q to be stripped, got:\n%s", unwanted, text)
		}
	}
	if strings.Contains(text, "\n\n\n") {
		t.Error("Expected at most one blank line between paragraphs")
	}
}

func TestNormalizeJobURL(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr error
	}{
		{"https://jobs.example.com/posting/12", "https://jobs.example.com/posting/12", nil},
		{"https://www.linkedin.com/jobs/view/4012/", "https://www.linkedin.com/jobs/view/4012", nil},
		{"https://linkedin.com/jobs/collections/recommended/?currentJobId=77", "https://www.linkedin.com/jobs/view/77", nil},
		{"https://www.linkedin.com/in/someone", "", ErrNotJobPosting},
		{"https://www.linkedin.com/jobs/collections/recommended/", "", ErrNotJobPosting},
	}

	for _, tt := range tests {
		got, err := NormalizeJobURL(tt.in)
		if tt.wantErr != nil {
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("NormalizeJobURL(%s): expected %v, got %v", tt.in, tt.wantErr, err)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("NormalizeJobURL(%s): expected '%s', got '%s' (%v)", tt.in, tt.want, got, err)
		}
	}

	for _, bad := range []string{"", "ftp://example.com/x", "/relative/path"} {
		if _, err := NormalizeJobURL(bad); err == nil {
			t.Errorf("Expected error for %q", bad)
		}
	}
}

type fakeFetcher struct {
	page *Page
	err  error
	url  string
}

func (f *fakeFetcher) Fetch(ctx context.Context, url string) (*Page, error) {
	f.url = url
	return f.page, f.err
}

func TestServiceCreateConvertsHTML(t *testing.T) {
	svc := NewService(store.NewMemoryStore(), nil)

	job, err := svc.Create(context.Background(), "local", models.CreateJobRequest{
		Company:         "Acme Corp",
		Title:           "Backend Engineer",
		Description:     "ignored",
		DescriptionHTML: "<p>Go microservices</p>",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if job.Description != "Go microservices" {
		t.Errorf("Expected converted description, got %q", job.Description)
	}
	if job.TechStack == nil {
		t.Error("Expected empty tech stack list, got nil")
	}
}

func TestServiceImport(t *testing.T) {
	fetcher := &fakeFetcher{page: &Page{HTML: "<main><p>We need a Go developer to build microservices for our platform team.</p></main>"}}
	svc := NewService(store.NewMemoryStore(), fetcher)

	job, err := svc.Import(context.Background(), "local", models.ImportJobRequest{
		URL:     "https://www.linkedin.com/jobs/collections/recommended/?currentJobId=9",
		Company: "Acme Corp",
		Title:   "Backend Engineer",
	})
	if err != nil {
		t.Fatalf("Import failed: %v", err)
	}

	if fetcher.url != "https://www.linkedin.com/jobs/view/9" {
		t.Errorf("Expected normalized URL to be fetched, got '%s'", fetcher.url)
	}
	if job.Link != fetcher.url || !strings.Contains(job.Description, "Go developer") {
		t.Errorf("Expected imported job with fetched description, got %+v", job)
	}

	list, _ := svc.List(context.Background(), "local")
	if len(list) != 1 {
		t.Errorf("Expected imported job to be stored, got %d jobs", len(list))
	}
}

func TestServiceImportErrors(t *testing.T) {
	if _, err := NewService(store.NewMemoryStore(), nil).Import(context.Background(), "local", models.ImportJobRequest{URL: "https://x.io/1"}); !errors.Is(err, ErrImportUnavailable) {
		t.Errorf("Expected ErrImportUnavailable, got %v", err)
	}

	empty := NewService(store.NewMemoryStore(), &fakeFetcher{page: &Page{}})
	if _, err := empty.Import(context.Background(), "local", models.ImportJobRequest{URL: "https://x.io/1"}); !errors.Is(err, ErrFetch) {
		t.Errorf("Expected ErrFetch for empty page, got %v", err)
	}

	failing := NewService(store.NewMemoryStore(), &fakeFetcher{err: errors.New("502 from upstream")})
	if _, err := failing.Import(context.Background(), "local", models.ImportJobRequest{URL: "https://x.io/1"}); !errors.Is(err, ErrFetch) {
		t.Errorf("Expected ErrFetch, got %v", err)
	}
}

func TestPageTextPrefersMarkdown(t *testing.T) {
	text, err := PageText(&Page{Markdown: "# Role\n\nGo", HTML: "<p>html</p>"})
	if err != nil || text != "# Role\n\nGo" {
		t.Errorf("Expected markdown to win, got %q (%v)", text, err)
	}
}
