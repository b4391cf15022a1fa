package views

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"

	ginrender "github.com/gin-gonic/gin/render"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// Page template names accepted by Renderer.
const (
	PageLogin         = "login"
	PageRegister      = "register"
	PageDashboard     = "dashboard"
	PageAnalytics     = "analytics"
	PageInvoices      = "invoices"
	PageCreateInvoice = "create_invoice"
)

var pageNames = []string{PageLogin, PageRegister, PageDashboard, PageAnalytics, PageInvoices, PageCreateInvoice}

// Renderer implements gin's render.HTMLRender with one template set per
// page, each sharing the layout and partials.
type Renderer struct {
	templates map[string]*template.Template
}

// NewRenderer parses the embedded templates.
func NewRenderer() (*Renderer, error) {
	r := &Renderer{templates: make(map[string]*template.Template, len(pageNames))}
	for _, name := range pageNames {
		tmpl, err := template.New(name).Funcs(funcs()).ParseFS(templateFS,
			"templates/layout.html",
			"templates/partials.html",
			"templates/"+name+".html",
		)
		if err != nil {
			return nil, fmt.Errorf("parse %s template: %w", name, err)
		}
		r.templates[name] = tmpl
	}
	return r, nil
}

// Instance implements render.HTMLRender.
func (r *Renderer) Instance(name string, data any) ginrender.Render {
	tmpl, ok := r.templates[name]
	if !ok {
		tmpl = template.Must(template.New(name).Parse(`unknown page`))
		return ginrender.HTML{Template: tmpl, Data: data}
	}
	return ginrender.HTML{Template: tmpl, Name: "layout", Data: data}
}

// Static serves the embedded stylesheet and scripts.
func Static() http.FileSystem {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return http.FS(sub)
}
