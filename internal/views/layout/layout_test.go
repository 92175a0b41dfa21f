package layout

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/a-h/templ"
)

func TestLinkState(t *testing.T) {
	if got := linkState("products", "products"); got != "active" {
		t.Fatalf("expected active state when sections match, got %q", got)
	}
	if got := linkState("recipes", "products"); got != "inactive" {
		t.Fatalf("expected inactive state when sections differ, got %q", got)
	}
}

func TestSectionsReturnsCopy(t *testing.T) {
	first := Sections()
	first[0].Label = "changed"
	if Sections()[0].Label == "changed" {
		t.Fatal("expected Sections to return an independent slice")
	}
}

func TestLayoutRendersProvidedContent(t *testing.T) {
	content := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := w.Write([]byte("<table>content</table>"))
		return err
	})

	var buf bytes.Buffer
	if err := Layout("Products", "products", "Product saved.", content).Render(context.Background(), &buf); err != nil {
		t.Fatalf("render layout: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "<title>Products</title>") {
		t.Fatalf("expected document title to be rendered: %s", out)
	}
	if !strings.Contains(out, "<table>content</table>") {
		t.Fatalf("expected unescaped content in output: %s", out)
	}
	if !strings.Contains(out, "Product saved.") {
		t.Fatalf("expected flash message in output: %s", out)
	}
	if !strings.Contains(out, `<li class="active"><a href="/products">`) {
		t.Fatalf("expected products link to be active: %s", out)
	}
}

func TestLayoutOmitsEmptyFlash(t *testing.T) {
	var buf bytes.Buffer
	if err := Layout("Recipes", "recipes", "", templ.NopComponent).Render(context.Background(), &buf); err != nil {
		t.Fatalf("render layout: %v", err)
	}
	if strings.Contains(buf.String(), `class="flash"`) {
		t.Fatalf("expected no flash banner: %s", buf.String())
	}
}

func TestLayoutPropagatesContentError(t *testing.T) {
	boom := errors.New("boom")
	content := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error { return boom })
	err := Layout("Broken", "", "", content).Render(context.Background(), io.Discard)
	if !errors.Is(err, boom) {
		t.Fatalf("expected content error, got %v", err)
	}
}
