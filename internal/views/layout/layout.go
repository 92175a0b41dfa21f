package layout

import (
	"context"
	"embed"
	"html/template"
	"io"

	"github.com/a-h/templ"
)

//go:embed templates/layout.html
var templateFS embed.FS

var page = template.Must(template.ParseFS(templateFS, "templates/layout.html")).Lookup("layout")

// Section is an entry of the navigation bar.
type Section struct {
	ID    string
	Label string
	Href  string
}

var sections = []Section{
	{ID: "products", Label: "Products", Href: "/products"},
	{ID: "recipes", Label: "Recipes", Href: "/recipes"},
	{ID: "ingredients", Label: "Ingredients", Href: "/ingredients"},
	{ID: "suppliers", Label: "Suppliers", Href: "/suppliers"},
}

// Sections returns the navigation entries in display order.
func Sections() []Section {
	out := make([]Section, len(sections))
	copy(out, sections)
	return out
}

type navItem struct {
	Section
	State string
}

func linkState(section, active string) string {
	if section == active {
		return "active"
	}
	return "inactive"
}

// Layout wraps content in the document shell. active names the highlighted
// section and flash, when set, is shown above the content.
func Layout(title, active, flash string, content templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		body, err := templ.ToGoHTML(ctx, content)
		if err != nil {
			return err
		}
		items := make([]navItem, 0, len(sections))
		for _, s := range sections {
			items = append(items, navItem{Section: s, State: linkState(s.ID, active)})
		}
		return page.Execute(w, struct {
			Title    string
			Flash    string
			Sections []navItem
			Content  template.HTML
		}{title, flash, items, body})
	})
}
