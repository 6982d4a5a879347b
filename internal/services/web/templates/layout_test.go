package templates

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/a-h/templ"
	"github.com/azure-flow/AI-Guide/internal/platform/branding"
)

func renderComponent(t *testing.T, component templ.Component) string {
	t.Helper()
	var b strings.Builder
	if err := component.Render(context.Background(), &b); err != nil {
		t.Fatalf("Render() = %v", err)
	}
	return b.String()
}

func TestComposePageTitleAddsBrandNameSuffix(t *testing.T) {
	got := ComposePageTitle("Tools")
	want := "Tools | " + branding.AppName
	if got != want {
		t.Fatalf("ComposePageTitle = %q, want %q", got, want)
	}
}

func TestComposePageTitleSkipsWhenAlreadyUsingPipeBrandSuffix(t *testing.T) {
	got := ComposePageTitle("Tools | " + branding.AppName)
	want := "Tools | " + branding.AppName
	if got != want {
		t.Fatalf("ComposePageTitle = %q, want %q", got, want)
	}
}

func TestComposePageTitleNormalizesHyphenBrandSuffix(t *testing.T) {
	got := ComposePageTitle("Tools - " + branding.AppName)
	want := "Tools | " + branding.AppName
	if got != want {
		t.Fatalf("ComposePageTitle = %q, want %q", got, want)
	}
}

func TestComposePageTitleEmptyTitleFallsBackToBrand(t *testing.T) {
	if got := ComposePageTitle("  "); got != branding.AppName {
		t.Fatalf("ComposePageTitle = %q, want %q", got, branding.AppName)
	}
}

func TestLayoutRendersDocumentShellAroundChildren(t *testing.T) {
	fragment := templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := io.WriteString(w, `<p id="fragment-marker">hello</p>`)
		return err
	})

	var b strings.Builder
	ctx := templ.WithChildren(context.Background(), fragment)
	err := Layout(LayoutOptions{
		Title:           "Tools",
		MetaDescription: "Browse AI tools",
		Lang:            "en-US",
		CurrentPath:     "/tools",
	}).Render(ctx, &b)
	if err != nil {
		t.Fatalf("Layout() = %v", err)
	}

	got := b.String()
	if !strings.Contains(got, `<html lang="en-US">`) {
		t.Fatalf("expected lang attribute, got %q", got)
	}
	if !strings.Contains(got, "<title>Tools | "+branding.AppName+"</title>") {
		t.Fatalf("expected composed title, got %q", got)
	}
	if !strings.Contains(got, `<meta name="description" content="Browse AI tools">`) {
		t.Fatalf("expected meta description, got %q", got)
	}
	if !strings.Contains(got, `id="fragment-marker"`) {
		t.Fatalf("expected fragment children in output, got %q", got)
	}
	if !strings.Contains(got, `<a class="active" href="/tools">Tools</a>`) {
		t.Fatalf("expected active nav item, got %q", got)
	}
}

func TestLayoutDefaultsLangAndMetaDescription(t *testing.T) {
	got := renderComponent(t, Layout(LayoutOptions{Title: "Home"}))
	if !strings.Contains(got, `<html lang="en-US">`) {
		t.Fatalf("expected default lang, got %q", got)
	}
	if !strings.Contains(got, branding.Tagline) {
		t.Fatalf("expected tagline fallback meta description, got %q", got)
	}
}

func TestLayoutEscapesTitle(t *testing.T) {
	got := renderComponent(t, Layout(LayoutOptions{Title: `<script>"x"</script>`}))
	if strings.Contains(got, "<script>\"x\"</script>") {
		t.Fatalf("expected escaped title, got %q", got)
	}
}
