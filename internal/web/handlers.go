package web

import (
	"net/http"
	"net/url"
	"strconv"

	"go.uber.org/zap"

	"github.com/hpungsan/habits/internal/config"
	"github.com/hpungsan/habits/internal/errors"
	"github.com/hpungsan/habits/internal/habit"
	"github.com/hpungsan/habits/internal/ops"
)

// Handlers contains HTTP route handlers for the dashboard.
type Handlers struct {
	tracker  *ops.Tracker
	cfg      *config.Config
	renderer *Renderer
	log      *zap.Logger
	metrics  *Metrics
}

// HandleList handles GET /habits: summary cards, the habit list and the add form.
func (h *Handlers) HandleList(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")
	h.renderList(w, r, http.StatusOK, category, CreateForm{Category: string(habit.DefaultCategory)})
}

func (h *Handlers) renderList(w http.ResponseWriter, r *http.Request, status int, category string, form CreateForm) {
	result, err := h.tracker.List(r.Context(), ops.ListInput{Category: category})
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	if wantsJSON(r) {
		renderJSON(w, status, result)
		return
	}

	h.renderer.renderPageStatus(w, r, status, "list", ListPageData{
		PageData: PageData{
			Title:   "Habits",
			Version: h.renderer.version,
			Nav:     "habits",
		},
		Items:      result.Items,
		Summary:    result.Summary,
		Today:      h.tracker.Today().String(),
		Category:   category,
		Categories: categoryNames(),
		Form:       form,
	})
}

// HandleCreate handles POST /habits: create a habit from form fields.
func (h *Handlers) HandleCreate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderer.renderError(w, r, errors.NewInvalidRequest("invalid form data"))
		return
	}

	input := ops.CreateInput{
		Name:     r.FormValue("name"),
		Category: r.FormValue("category"),
	}

	created, err := h.tracker.Create(r.Context(), input)
	if err != nil {
		// A full-page submit gets the dashboard back with the form filled in.
		if errors.Is(err, errors.ErrInvalidRequest) && !isHTMX(r) && !wantsJSON(r) {
			h.renderList(w, r, http.StatusBadRequest, "", CreateForm{
				Name:     input.Name,
				Category: input.Category,
				Error:    errors.As(err).Message,
			})
			return
		}
		h.renderer.renderError(w, r, err)
		return
	}

	if wantsJSON(r) {
		renderJSON(w, http.StatusCreated, created)
		return
	}
	h.redirect(w, r, "/habits")
}

// HandleDetail handles GET /habits/{id}: one habit with its completion grid.
func (h *Handlers) HandleDetail(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	days := parseIntParam(r, "days", h.reportDays())

	result, err := h.tracker.Fetch(r.Context(), ops.FetchInput{ID: id, HistoryDays: days})
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	if wantsJSON(r) {
		renderJSON(w, http.StatusOK, result)
		return
	}

	// History ends at result.Today, not at the current day.
	cells := make([]HistoryCell, len(result.History))
	for i, done := range result.History {
		cells[i] = HistoryCell{Day: result.Today.AddDays(i - len(result.History) + 1), Done: done}
	}

	h.renderer.renderPage(w, r, "detail", DetailPageData{
		PageData: PageData{
			Title:   result.Name,
			Version: h.renderer.version,
			Nav:     "habits",
		},
		Habit:   result,
		History: cells,
	})
}

// HandleToggle handles POST /habits/{id}/toggle: flip today, or the day
// given in the "day" form field.
func (h *Handlers) HandleToggle(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderer.renderError(w, r, errors.NewInvalidRequest("invalid form data"))
		return
	}

	input := ops.ToggleInput{ID: r.PathValue("id")}
	if s := r.FormValue("day"); s != "" {
		d, err := habit.ParseDay(s)
		if err != nil {
			h.renderer.renderError(w, r, errors.NewInvalidField("day", err.Error()))
			return
		}
		input.Day = &d
	}

	result, err := h.tracker.Toggle(r.Context(), input)
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}
	h.metrics.RecordToggle(result.Completed)

	if wantsJSON(r) {
		renderJSON(w, http.StatusOK, result)
		return
	}
	h.redirect(w, r, returnPath(r, "/habits"))
}

// HandleDelete handles DELETE /habits/{id} and POST /habits/{id}/delete.
func (h *Handlers) HandleDelete(w http.ResponseWriter, r *http.Request) {
	result, err := h.tracker.Delete(r.Context(), ops.DeleteInput{ID: r.PathValue("id")})
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	if wantsJSON(r) {
		renderJSON(w, http.StatusOK, result)
		return
	}
	h.redirect(w, r, "/habits")
}

// HandleReport handles GET /report: the Markdown report rendered to HTML.
func (h *Handlers) HandleReport(w http.ResponseWriter, r *http.Request) {
	days := parseIntParam(r, "days", h.reportDays())

	result, err := h.tracker.Report(r.Context(), ops.ReportInput{Days: days})
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	if wantsJSON(r) {
		renderJSON(w, http.StatusOK, result)
		return
	}

	h.renderer.renderPage(w, r, "report", ReportPageData{
		PageData: PageData{
			Title:   "Report",
			Version: h.renderer.version,
			Nav:     "report",
		},
		Days:         result.Days,
		RenderedHTML: renderMarkdown(result.Markdown),
	})
}

// redirect sends HTMX clients an HX-Redirect header and browsers a 303.
func (h *Handlers) redirect(w http.ResponseWriter, r *http.Request, to string) {
	if isHTMX(r) {
		w.Header().Set("HX-Redirect", to)
		w.WriteHeader(http.StatusOK)
		return
	}
	http.Redirect(w, r, to, http.StatusSeeOther)
}

func (h *Handlers) reportDays() int {
	if h.cfg != nil && h.cfg.ReportDays > 0 {
		return h.cfg.ReportDays
	}
	return ops.DefaultReportDays
}

// returnPath reads the "return" form field, accepting only local paths.
func returnPath(r *http.Request, fallback string) string {
	s := r.FormValue("return")
	if s == "" {
		return fallback
	}
	u, err := url.Parse(s)
	if err != nil || u.IsAbs() || u.Host != "" || len(u.Path) == 0 || u.Path[0] != '/' {
		return fallback
	}
	if len(u.Path) > 1 && u.Path[1] == '/' {
		return fallback
	}
	return u.RequestURI()
}

// parseIntParam parses an integer query parameter with a default value.
func parseIntParam(r *http.Request, name string, defaultVal int) int {
	s := r.URL.Query().Get(name)
	if s == "" {
		return defaultVal
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return defaultVal
	}
	return v
}

func categoryNames() []string {
	out := make([]string, len(habit.Categories))
	for i, c := range habit.Categories {
		out[i] = string(c)
	}
	return out
}
