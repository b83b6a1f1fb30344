package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/decision-cli/internal/analysis"
	"github.com/sells-group/decision-cli/internal/model"
	"github.com/sells-group/decision-cli/internal/store"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the decision API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close()

		analyzer, err := initAnalyzer()
		if err != nil {
			return err
		}

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		srv := &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: newRouter(st, analyzer),
		}

		go func() {
			<-ctx.Done()
			zap.L().Info("shutting down server")
			srv.Shutdown(context.WithoutCancel(ctx))
		}()

		zap.L().Info("starting server", zap.Int("port", port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return eris.Wrap(err, "server listen")
		}

		return nil
	},
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}

// decisionAnalyzer is the slice of the analyzer the server needs.
type decisionAnalyzer interface {
	Analyze(ctx context.Context, form model.DecisionFormData, onProgress analysis.ProgressFunc) (*model.AnalysisResult, error)
}

func newRouter(st store.Store, analyzer decisionAnalyzer) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/decisions", func(r chi.Router) {
		r.Get("/", handleListDecisions(st))
		r.Post("/", handleCreateDecision(st))
		r.Get("/{id}", handleGetDecision(st))
		r.Put("/{id}", handleUpdateDecision(st))
		r.Delete("/{id}", handleDeleteDecision(st))
		r.Post("/{id}/analyze", handleAnalyzeDecision(st, analyzer))
		r.Post("/{id}/whatif", handleWhatIf(st))
	})

	r.Get("/templates", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, model.Templates())
	})

	return r
}

func handleListDecisions(st store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
		decisions, err := st.ListDecisions(r.Context(), store.DecisionFilter{
			Status: model.DecisionStatus(r.URL.Query().Get("status")),
			Limit:  limit,
		})
		if err != nil {
			writeStoreError(w, err)
			return
		}
		if decisions == nil {
			decisions = []model.Decision{}
		}
		writeJSON(w, http.StatusOK, decisions)
	}
}

func handleCreateDecision(st store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var form model.DecisionFormData
		if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		d, err := st.CreateDecision(r.Context(), form)
		if err != nil {
			writeStoreError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, d)
	}
}

func handleGetDecision(st store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		d, err := st.GetDecision(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			writeStoreError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, d)
	}
}

func handleUpdateDecision(st store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var form model.DecisionFormData
		if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		id := chi.URLParam(r, "id")
		if err := st.UpdateDecision(r.Context(), id, form); err != nil {
			writeStoreError(w, err)
			return
		}
		d, err := st.GetDecision(r.Context(), id)
		if err != nil {
			writeStoreError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, d)
	}
}

func handleDeleteDecision(st store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := st.DeleteDecision(r.Context(), chi.URLParam(r, "id")); err != nil {
			writeStoreError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// handleAnalyzeDecision validates and kicks off analysis in the
// background, responding 202. The status flag gates concurrent runs for
// the same decision.
func handleAnalyzeDecision(st store.Store, analyzer decisionAnalyzer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		d, err := st.GetDecision(r.Context(), id)
		if err != nil {
			writeStoreError(w, err)
			return
		}
		if d.Status == model.StatusAnalyzing {
			writeError(w, http.StatusConflict, "analysis already in progress")
			return
		}
		if v := analysis.Validate(d.DecisionFormData); !v.Valid {
			writeJSON(w, http.StatusUnprocessableEntity, v)
			return
		}

		if err := st.UpdateStatus(r.Context(), id, model.StatusAnalyzing); err != nil {
			writeStoreError(w, err)
			return
		}

		ctx := context.WithoutCancel(r.Context())
		go func() {
			result, err := analyzer.Analyze(ctx, d.DecisionFormData, nil)
			if err != nil {
				zap.L().Error("analysis failed", zap.String("decision", id), zap.Error(err))
				if revertErr := st.UpdateStatus(ctx, id, model.StatusDraft); revertErr != nil {
					zap.L().Warn("failed to revert decision status", zap.String("decision", id), zap.Error(revertErr))
				}
				return
			}
			if err := st.SaveResult(ctx, id, result); err != nil {
				zap.L().Error("failed to save result", zap.String("decision", id), zap.Error(err))
				return
			}
			zap.L().Info("analysis complete",
				zap.String("decision", id),
				zap.String("recommended", result.Recommendation.OptionLabel))
		}()

		writeJSON(w, http.StatusAccepted, map[string]string{"status": "analyzing", "id": id})
	}
}

// handleWhatIf recomputes rankings for edited criterion weights. Nothing
// is persisted; the stored result stays untouched.
func handleWhatIf(st store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Criteria []model.Criterion `json:"criteria"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		d, err := st.GetDecision(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			writeStoreError(w, err)
			return
		}
		if d.Result == nil {
			writeError(w, http.StatusConflict, "decision has no analysis result")
			return
		}

		rescored := analysis.Rescore(d.Result.Scores, d.Criteria, req.Criteria)
		writeJSON(w, http.StatusOK, analysis.Rank(rescored, d.Result.Scores))
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func writeStoreError(w http.ResponseWriter, err error) {
	if eris.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "decision not found")
		return
	}
	zap.L().Error("store error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, "internal error")
}
