package portfolio

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/talentforge/forge/internal/cache"
)

const samplePage = `<!DOCTYPE html>
<html><body>
<h1>Alice Nguyen</h1>
<p>Frontend engineer building commerce experiences.</p>
<h2>Checkout redesign</h2>
<p>Rebuilt the checkout flow for a mid-size retailer.</p>
<p>This second paragraph should be ignored.</p>
Built with <code>React</code>, <code>TypeScript</code> and <em>react</em>.
<a href="https://shop.example.com">Live demo</a>
<a href="/writeup">Read the case study</a>
<h2>Design system</h2>
<p>Component library used across three products.</p>
Made with <strong>Storybook</strong>.
<blockquote>Alice shipped our redesign two weeks early.</blockquote>
<blockquote>A joy to work with.</blockquote>
</body></html>`

func TestParse(t *testing.T) {
	data, err := Parse(samplePage, "https://alice.dev")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if data.URL != "https://alice.dev" {
		t.Errorf("url = %q", data.URL)
	}
	if len(data.Projects) != 3 {
		t.Fatalf("projects = %d, want 3 (%+v)", len(data.Projects), data.Projects)
	}

	checkout := data.Projects[1]
	if checkout.Title != "Checkout redesign" {
		t.Errorf("title = %q", checkout.Title)
	}
	if checkout.Description != "Rebuilt the checkout flow for a mid-size retailer." {
		t.Errorf("description = %q", checkout.Description)
	}
	if !checkout.LiveDemo || !checkout.CaseStudy {
		t.Errorf("checkout verifiability = demo:%v case:%v, want both", checkout.LiveDemo, checkout.CaseStudy)
	}
	// "react" duplicates "React" case-insensitively.
	if len(checkout.Skills) != 2 {
		t.Errorf("skills = %v, want [React TypeScript]", checkout.Skills)
	}

	design := data.Projects[2]
	if design.LiveDemo || design.CaseStudy {
		t.Errorf("design system should not be verifiable: %+v", design)
	}

	if data.Testimonials != 2 {
		t.Errorf("testimonials = %d, want 2", data.Testimonials)
	}

	// 1 of 3 projects verifiable, with testimonials.
	want := 0.4 + 0.4/3.0 + 0.1
	if diff := data.Reliability - want; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("reliability = %g, want %g", data.Reliability, want)
	}
}

func TestParse_Unstructured(t *testing.T) {
	data, err := Parse("<html><body>just some text, no headings</body></html>", "https://x.dev")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(data.Projects) != 0 {
		t.Errorf("projects = %v, want none", data.Projects)
	}
	if data.Reliability != 0.2 {
		t.Errorf("reliability = %g, want the no-structure floor 0.2", data.Reliability)
	}
}

func TestExtract_RobotsDisallowed(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/robots.txt", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("User-agent: *\nDisallow: /\n"))
	})
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(samplePage))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	e := NewExtractor(Options{UserAgent: "forge-test", Timeout: 2 * time.Second})
	if _, err := e.Extract(context.Background(), srv.URL+"/portfolio"); err != ErrDisallowed {
		t.Errorf("err = %v, want ErrDisallowed", err)
	}
}

func TestExtract_FetchesAndCaches(t *testing.T) {
	var pageHits int
	mux := http.NewServeMux()
	mux.HandleFunc("/robots.txt", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("User-agent: *\nAllow: /\n"))
	})
	mux.HandleFunc("/portfolio", func(w http.ResponseWriter, r *http.Request) {
		pageHits++
		w.Write([]byte(samplePage))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	e := NewExtractor(Options{
		UserAgent: "forge-test",
		Timeout:   2 * time.Second,
		Cache:     cache.NewMemory(time.Minute, 0),
		CacheTTL:  time.Minute,
	})

	for i := 0; i < 2; i++ {
		data, err := e.Extract(context.Background(), srv.URL+"/portfolio")
		if err != nil {
			t.Fatalf("extract %d: %v", i, err)
		}
		if len(data.Projects) != 3 {
			t.Fatalf("extract %d: projects = %d", i, len(data.Projects))
		}
	}
	if pageHits != 1 {
		t.Errorf("page fetched %d times, want 1 (second hit cached)", pageHits)
	}
}
