package dashboard

import (
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/JaimeStill/estimator/internal/orders"
	"github.com/JaimeStill/estimator/pkg/handlers"
	"github.com/JaimeStill/estimator/pkg/routes"
	"github.com/JaimeStill/estimator/pkg/web"
)

//go:embed views/*.html
var viewFS embed.FS

const (
	layout   = "layout"
	xlsxType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

var (
	summaryView = web.ViewDef{Template: "summary.html", Title: "Dashboard Summary"}
	ordersView  = web.ViewDef{Template: "orders.html", Title: "Orders"}
	statsView   = web.ViewDef{Template: "stats.html", Title: "Stats"}
)

var funcs = template.FuncMap{
	"money": func(v float64) string { return fmt.Sprintf("$%.2f", v) },
	"price": func(v *float64) string {
		if v == nil {
			return "-"
		}
		return fmt.Sprintf("$%.2f", *v)
	},
	"text": func(v *string) string {
		if v == nil {
			return ""
		}
		return *v
	},
	"number": func(v *int) string {
		if v == nil {
			return ""
		}
		return strconv.Itoa(*v)
	},
}

// Handler serves dashboard projections as JSON, HTML or XLSX.
type Handler struct {
	source Source
	views  *web.TemplateSet
	logger *slog.Logger
}

// NewHandler parses the dashboard views. basePath prefixes navigation links.
func NewHandler(source Source, basePath string, logger *slog.Logger) (*Handler, error) {
	views, err := web.NewTemplateSet(
		viewFS, "views/layout.html", "views", basePath, funcs,
		[]web.ViewDef{summaryView, ordersView, statsView},
	)
	if err != nil {
		return nil, fmt.Errorf("parse dashboard views: %w", err)
	}

	return &Handler{
		source: source,
		views:  views,
		logger: logger.With("handler", "dashboard"),
	}, nil
}

// Routes returns the dashboard route group.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/dashboard",
		Tags:   []string{"Dashboard"},
		Routes: []routes.Route{
			{Method: "GET", Pattern: "/summary", Handler: h.Summary, OpenAPI: Spec.Summary},
			{Method: "GET", Pattern: "/orders", Handler: h.Orders, OpenAPI: Spec.Orders},
			{Method: "GET", Pattern: "/orders/export", Handler: h.Export, OpenAPI: Spec.Export},
			{Method: "GET", Pattern: "/stats", Handler: h.Stats, OpenAPI: Spec.Stats},
		},
	}
}

// Summary returns order totals.
func (h *Handler) Summary(w http.ResponseWriter, r *http.Request) {
	all, ok := h.load(w, r)
	if !ok {
		return
	}
	h.respond(w, r, summaryView, Summarize(all))
}

// Orders returns every order as a table row in id order.
func (h *Handler) Orders(w http.ResponseWriter, r *http.Request) {
	all, ok := h.load(w, r)
	if !ok {
		return
	}
	h.respond(w, r, ordersView, Rows(all))
}

// Stats returns order counts per status.
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	all, ok := h.load(w, r)
	if !ok {
		return
	}
	h.respond(w, r, statsView, CountByStatus(all))
}

// Export returns the order table as an XLSX attachment.
func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	all, ok := h.load(w, r)
	if !ok {
		return
	}

	data, err := Workbook(Rows(all))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	filename := fmt.Sprintf("orders_%s.xlsx", time.Now().UTC().Format("20060102"))
	w.Header().Set("Content-Type", xlsxType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

func (h *Handler) load(w http.ResponseWriter, r *http.Request) ([]orders.Order, bool) {
	all, err := h.source.All(r.Context())
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return nil, false
	}
	return all, true
}

func (h *Handler) respond(w http.ResponseWriter, r *http.Request, view web.ViewDef, data any) {
	if !web.WantsHTML(r) {
		handlers.RespondJSON(w, http.StatusOK, data)
		return
	}
	if err := h.views.Render(w, layout, view, data); err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
	}
}
