package progress

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"hash/fnv"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/2beens/fitprogress/internal/telemetry/tracing"
	"github.com/2beens/fitprogress/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=progress_test

type entriesService interface {
	Save(ctx context.Context, entry Entry) (_ *Entry, created bool, err error)
	Get(ctx context.Context, date time.Time) (*Entry, error)
	Delete(ctx context.Context, date time.Time) error
	List(ctx context.Context, params EntryParams, search string) ([]Entry, error)
	Dashboard(ctx context.Context) (*Summary, error)
	Export(ctx context.Context, w io.Writer) error
	Clear(ctx context.Context) (int64, error)
}

type chartRenderer interface {
	RenderChart(ctx context.Context, name string, entries []Entry) ([]byte, error)
}

type chartCache interface {
	Get(key string) ([]byte, bool)
	Set(key string, png []byte)
}

// ChartNames lists the charts served under /charts/{name}.png.
var ChartNames = []string{"progress", "nutrition", "phases"}

type ClearResponse struct {
	Deleted int64 `json:"deleted"`
}

type Handler struct {
	service    entriesService
	renderer   chartRenderer
	chartCache chartCache
}

func NewHandler(service entriesService, renderer chartRenderer, chartCache chartCache) *Handler {
	return &Handler{
		service:    service,
		renderer:   renderer,
		chartCache: chartCache,
	}
}

func (h *Handler) SetupRoutes(r *mux.Router) {
	r.HandleFunc("/entries", h.HandleSave).Methods("POST", "OPTIONS").Name("save-entry")
	r.HandleFunc("/entries", h.HandleList).Methods("GET", "OPTIONS").Name("list-entries")
	r.HandleFunc("/entries", h.HandleClear).Methods("DELETE", "OPTIONS").Name("clear-entries")
	r.HandleFunc("/entries/{date}", h.HandleGet).Methods("GET", "OPTIONS").Name("get-entry")
	r.HandleFunc("/entries/{date}", h.HandleDelete).Methods("DELETE", "OPTIONS").Name("delete-entry")
	r.HandleFunc("/dashboard", h.HandleDashboard).Methods("GET", "OPTIONS").Name("dashboard")
	r.HandleFunc("/export", h.HandleExport).Methods("GET", "OPTIONS").Name("export")
	r.HandleFunc("/charts/{name}.png", h.HandleChart).Methods("GET", "OPTIONS").Name("chart")
}

func (h *Handler) HandleSave(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.progress.save")
	defer span.End()

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var entry Entry
	if err := json.NewDecoder(r.Body).Decode(&entry); err != nil {
		log.Tracef("save entry, unmarshal json: %s", err)
		http.Error(w, "save entry failed", http.StatusBadRequest)
		return
	}

	phase, err := ParsePhase(string(entry.Phase))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	entry.Phase = phase

	if err := entry.Validate(); err != nil {
		http.Error(w, fmt.Sprintf("error, %s", err), http.StatusBadRequest)
		return
	}

	saved, created, err := h.service.Save(ctx, entry)
	if err != nil {
		log.Errorf("failed to save entry [%s]: %s", entry.DateKey(), err)
		http.Error(w, "error, failed to save entry", http.StatusInternalServerError)
		return
	}

	savedJson, err := json.Marshal(saved)
	if err != nil {
		log.Errorf("failed to marshal saved entry: %s", err)
		http.Error(w, "error, failed to save entry", http.StatusInternalServerError)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	log.Debugf("entry saved (created: %t): %s", created, savedJson)
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, savedJson, status)
}

func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.progress.get")
	defer span.End()

	date, err := ParseDate(mux.Vars(r)["date"])
	if err != nil {
		http.Error(w, "invalid date", http.StatusBadRequest)
		return
	}

	entry, err := h.service.Get(ctx, date)
	if err != nil {
		if IsNotFound(err) {
			http.Error(w, "entry not found", http.StatusNotFound)
			return
		}
		log.Errorf("get entry [%s]: %s", date.Format(DateLayout), err)
		http.Error(w, "error, failed to get entry", http.StatusInternalServerError)
		return
	}

	entryJson, err := json.Marshal(entry)
	if err != nil {
		log.Errorf("marshal entry: %s", err)
		http.Error(w, "error, failed to get entry", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, entryJson, http.StatusOK)
}

func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.progress.delete")
	defer span.End()

	date, err := ParseDate(mux.Vars(r)["date"])
	if err != nil {
		http.Error(w, "invalid date", http.StatusBadRequest)
		return
	}

	if err := h.service.Delete(ctx, date); err != nil {
		if IsNotFound(err) {
			http.Error(w, "entry not found", http.StatusNotFound)
			return
		}
		log.Errorf("delete entry [%s]: %s", date.Format(DateLayout), err)
		http.Error(w, "error, failed to delete entry", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.progress.list")
	defer span.End()

	query := r.URL.Query()
	phase, err := ParsePhase(query.Get("phase"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	params := EntryParams{Phase: phase}
	if from := query.Get("from"); from != "" {
		fromDate, err := ParseDate(from)
		if err != nil {
			http.Error(w, "invalid from date", http.StatusBadRequest)
			return
		}
		params.From = &fromDate
	}
	if to := query.Get("to"); to != "" {
		toDate, err := ParseDate(to)
		if err != nil {
			http.Error(w, "invalid to date", http.StatusBadRequest)
			return
		}
		params.To = &toDate
	}

	entries, err := h.service.List(ctx, params, query.Get("q"))
	if err != nil {
		log.Errorf("list entries: %s", err)
		http.Error(w, "error, failed to list entries", http.StatusInternalServerError)
		return
	}
	span.SetAttributes(attribute.Int("count", len(entries)))

	entriesJson, err := json.Marshal(entries)
	if err != nil {
		log.Errorf("marshal entries: %s", err)
		http.Error(w, "error, failed to list entries", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, entriesJson, http.StatusOK)
}

func (h *Handler) HandleClear(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.progress.clear")
	defer span.End()

	deleted, err := h.service.Clear(ctx)
	if err != nil {
		log.Errorf("clear entries: %s", err)
		http.Error(w, "error, failed to clear entries", http.StatusInternalServerError)
		return
	}

	respJson, err := json.Marshal(ClearResponse{Deleted: deleted})
	if err != nil {
		log.Errorf("marshal clear response: %s", err)
		http.Error(w, "error, failed to clear entries", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, respJson, http.StatusOK)
}

func (h *Handler) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.progress.dashboard")
	defer span.End()

	summary, err := h.service.Dashboard(ctx)
	if err != nil {
		log.Errorf("dashboard: %s", err)
		http.Error(w, "error, failed to get dashboard", http.StatusInternalServerError)
		return
	}

	summaryJson, err := json.Marshal(summary)
	if err != nil {
		log.Errorf("marshal dashboard: %s", err)
		http.Error(w, "error, failed to get dashboard", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, summaryJson, http.StatusOK)
}

func (h *Handler) HandleExport(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.progress.export")
	defer span.End()

	w.Header().Set("Content-Type", pkg.ContentType.JSON)
	w.Header().Set(
		"Content-Disposition",
		fmt.Sprintf(`attachment; filename="fitness-tracker-backup-%s.json"`, time.Now().UTC().Format(DateLayout)),
	)
	if err := h.service.Export(ctx, w); err != nil {
		// headers may be out already, nothing else to do
		log.Errorf("export entries: %s", err)
	}
}

func (h *Handler) HandleChart(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.progress.chart")
	defer span.End()

	name := mux.Vars(r)["name"]
	if !isChartName(name) {
		http.Error(w, "unknown chart", http.StatusNotFound)
		return
	}
	span.SetAttributes(attribute.String("chart", name))

	entries, err := h.service.List(ctx, EntryParams{}, "")
	if err != nil {
		log.Errorf("chart [%s], list entries: %s", name, err)
		http.Error(w, "error, failed to render chart", http.StatusInternalServerError)
		return
	}

	key := ChartCacheKey(name, entries)
	if png, ok := h.chartCache.Get(key); ok {
		span.SetAttributes(attribute.Bool("cached", true))
		pkg.WriteResponseBytes(w, pkg.ContentType.PNG, png, http.StatusOK)
		return
	}

	png, err := h.renderer.RenderChart(ctx, name, entries)
	if err != nil {
		if errors.Is(err, ErrNotEnoughData) {
			http.Error(w, "not enough data for chart", http.StatusNotFound)
			return
		}
		log.Errorf("render chart [%s]: %s", name, err)
		http.Error(w, "error, failed to render chart", http.StatusInternalServerError)
		return
	}
	h.chartCache.Set(key, png)

	pkg.WriteResponseBytes(w, pkg.ContentType.PNG, png, http.StatusOK)
}

func isChartName(name string) bool {
	for _, n := range ChartNames {
		if n == name {
			return true
		}
	}
	return false
}

// ChartCacheKey identifies a chart rendered from exactly this set of entries.
func ChartCacheKey(name string, entries []Entry) string {
	h := fnv.New64a()
	for _, e := range entries {
		_, _ = h.Write([]byte(strconv.Itoa(e.ID)))
		_, _ = h.Write([]byte(e.DateKey()))
		_, _ = h.Write([]byte(strconv.FormatInt(e.UpdatedAt.UnixNano(), 10)))
	}
	return fmt.Sprintf("chart:%s:%d:%x", name, len(entries), h.Sum64())
}
