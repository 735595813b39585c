package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/openschools-au/schoolsearch-cli/internal/export"
	"github.com/openschools-au/schoolsearch-cli/internal/model"
	"github.com/openschools-au/schoolsearch-cli/internal/search"
	"github.com/openschools-au/schoolsearch-cli/internal/store"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the radius-search HTTP API",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		env, err := initSearchEnv(ctx)
		if err != nil {
			return err
		}
		defer env.Close()

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		srv := &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: buildRouter(env.Session, env.Store, cfg.Search.DefaultRadiusKm),
		}

		// Graceful shutdown
		go func() {
			<-ctx.Done()
			zap.L().Info("shutting down server")
			srv.Shutdown(ctx)
		}()

		zap.L().Info("starting server", zap.Int("port", port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return eris.Wrap(err, "server listen")
		}

		return nil
	},
}

// searchResponse is the /api/search payload.
type searchResponse struct {
	Query            string           `json:"query"`
	ResolvedLocation string           `json:"resolved_location"`
	Center           model.Coordinate `json:"center"`
	RadiusKm         float64          `json:"radius_km"`
	Sector           string           `json:"sector"`
	Count            int              `json:"count"`
	Summary          string           `json:"summary"`
	HasAnyEmail      bool             `json:"has_any_email"`
	Note             string           `json:"note,omitempty"`
	Results          []model.Row      `json:"results"`
}

// buildRouter assembles the HTTP API over a shared search session.
func buildRouter(sess *search.Session, st store.Store, defaultRadiusKm float64) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
	}))

	r.Get("/health", func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Get("/api/search", func(w http.ResponseWriter, req *http.Request) {
		result, emailsOnly, ok := runAPISearch(w, req, sess, st, defaultRadiusKm)
		if !ok {
			return
		}

		view := search.ApplyFilter(result.State, emailsOnly)
		writeJSON(w, http.StatusOK, searchResponse{
			Query:            req.URL.Query().Get("location"),
			ResolvedLocation: result.State.Center.Label,
			Center:           model.Coordinate{Lat: result.State.Center.Lat, Lon: result.State.Center.Lon},
			RadiusKm:         result.State.RadiusKm,
			Sector:           result.State.Sector,
			Count:            len(view.Rows),
			Summary:          view.Summary,
			HasAnyEmail:      view.HasAnyEmail,
			Note:             result.Note,
			Results:          view.Rows,
		})
	})

	r.Get("/api/search.csv", func(w http.ResponseWriter, req *http.Request) {
		result, emailsOnly, ok := runAPISearch(w, req, sess, st, defaultRadiusKm)
		if !ok {
			return
		}

		view := search.ApplyFilter(result.State, emailsOnly)
		name := export.Filename(sess.Tables().RegionCode, result.State.Center.Label, result.State.RadiusKm, "csv")

		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(export.CSV(view.Rows)))
	})

	return r
}

// runAPISearch parses query parameters, executes the search, and logs it.
// On failure it writes the error response and returns ok=false.
func runAPISearch(w http.ResponseWriter, req *http.Request, sess *search.Session, st store.Store, defaultRadiusKm float64) (*search.Result, bool, bool) {
	q := req.URL.Query()

	radiusKm := defaultRadiusKm
	if raw := q.Get("radius_km"); raw != "" {
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": fmt.Sprintf("radius_km %q is not a number", raw)})
			return nil, false, false
		}
		radiusKm = parsed
	}

	emailsOnly := false
	if raw := q.Get("emails_only"); raw != "" {
		emailsOnly = raw == "1" || strings.EqualFold(raw, "true")
	}

	result, err := sess.Search(search.Query{
		Location: q.Get("location"),
		RadiusKm: radiusKm,
		Sector:   q.Get("sector"),
	})
	if err != nil {
		if search.IsUserInputError(err) {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		} else {
			zap.L().Error("search failed", zap.Error(err))
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
		}
		return nil, false, false
	}

	if st != nil {
		if _, err := st.LogSearch(req.Context(), store.Search{
			Query:         q.Get("location"),
			ResolvedLabel: result.State.Center.Label,
			RadiusKm:      result.State.RadiusKm,
			Sector:        result.State.Sector,
			ResultCount:   len(result.State.Rows),
		}); err != nil {
			zap.L().Warn("search log write failed", zap.Error(err))
		}
	}

	return result, emailsOnly, true
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}
