package fetcher

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
)

const postingHTML = `<!DOCTYPE html>
<html>
<head><title>Acme Careers</title><style>body{color:red}</style></head>
<body>
<nav><a href="/">Home</a></nav>
<main>
  <h1>Senior Backend Engineer</h1>
  <p>We are looking for a backend engineer with Go experience.</p>
  <h2>Requirements</h2>
  <ul>
    <li>5+ years of experience</li>
    <li>PostgreSQL   and
       Redis</li>
  </ul>
  <script>trackPageView()</script>
</main>
<footer>© Acme</footer>
</body>
</html>`

func TestExtractPosting(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(postingHTML))
	if err != nil {
		t.Fatal(err)
	}

	res, err := ExtractPosting(doc, "https://acme.example/jobs/1")
	if err != nil {
		t.Fatal(err)
	}
	if res.Title != "Senior Backend Engineer" {
		t.Errorf("title = %q, want %q", res.Title, "Senior Backend Engineer")
	}
	if !strings.Contains(res.Content, "backend engineer with Go experience") {
		t.Errorf("content missing description text: %q", res.Content)
	}
	if !strings.Contains(res.Content, "PostgreSQL and Redis") {
		t.Errorf("whitespace not collapsed: %q", res.Content)
	}
	if strings.Contains(res.Content, "trackPageView") {
		t.Error("script text leaked into content")
	}
	if strings.Contains(res.Content, "Home") {
		t.Error("navigation text leaked into content")
	}
}

func TestExtractPosting_TitleFallback(t *testing.T) {
	html := `<html><head><title>Fallback Role</title></head><body><main><p>Some description text.</p></main></body></html>`
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		t.Fatal(err)
	}

	res, err := ExtractPosting(doc, "https://acme.example/jobs/2")
	if err != nil {
		t.Fatal(err)
	}
	if res.Title != "Fallback Role" {
		t.Errorf("title = %q, want %q", res.Title, "Fallback Role")
	}
}

func TestExtractPosting_NoContent(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(`<html><body><main></main></body></html>`))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := ExtractPosting(doc, "https://acme.example/jobs/3"); err == nil {
		t.Fatal("expected error for a page with no readable content")
	}
}

func TestFetch(t *testing.T) {
	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		_, _ = w.Write([]byte(postingHTML))
	}))
	defer srv.Close()

	res, err := NewFetcher().Fetch(context.Background(), srv.URL, "interview-prep/1.0")
	if err != nil {
		t.Fatal(err)
	}
	if res.Title != "Senior Backend Engineer" {
		t.Errorf("title = %q, want %q", res.Title, "Senior Backend Engineer")
	}
	if res.URL != srv.URL {
		t.Errorf("url = %q, want %q", res.URL, srv.URL)
	}
	if gotUA != "interview-prep/1.0" {
		t.Errorf("user agent = %q, want %q", gotUA, "interview-prep/1.0")
	}
}

func TestFetch_BadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	if _, err := NewFetcher().Fetch(context.Background(), srv.URL, "ua"); err == nil {
		t.Fatal("expected error on 404")
	}
}

func TestFetch_RejectsNonHTTPSchemes(t *testing.T) {
	if _, err := NewFetcher().Fetch(context.Background(), "ftp://acme.example/jobs", "ua"); err == nil {
		t.Fatal("expected error for non-http scheme")
	}
}
