package retentionhandler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"hrpay/internal/domain/audit"
	"hrpay/internal/domain/auth"
	"hrpay/internal/domain/retention"
	"hrpay/internal/platform/jobs"
	"hrpay/internal/transport/http/api"
	"hrpay/internal/transport/http/middleware"
	"hrpay/internal/transport/http/shared"
)

type Handler struct {
	Service *retention.Service
	Perms   middleware.PermissionStore
	Jobs    *jobs.Service
	Audit   *audit.Service
}

func NewHandler(service *retention.Service, perms middleware.PermissionStore, jobsSvc *jobs.Service, auditSvc *audit.Service) *Handler {
	return &Handler{Service: service, Perms: perms, Jobs: jobsSvc, Audit: auditSvc}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/retention", func(r chi.Router) {
		r.Use(middleware.Require(auth.CapSystemMetrics, h.Perms))
		r.Get("/policies", h.handlePolicies)
		r.Post("/run", h.handleRun)
	})
}

func (h *Handler) handlePolicies(w http.ResponseWriter, r *http.Request) {
	policies := h.Service.Policies
	if policies == nil {
		policies = []retention.Policy{}
	}
	api.Success(w, policies, middleware.GetRequestID(r.Context()))
}

// handleRun purges immediately. ?category= limits the run to one category.
func (h *Handler) handleRun(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())
	category := strings.TrimSpace(r.URL.Query().Get("category"))

	out, err := h.Jobs.RunNow(r.Context(), jobs.JobRetention, func(ctx context.Context) (any, error) {
		return h.Service.Run(ctx, category)
	})
	if err != nil {
		if errors.Is(err, retention.ErrUnknownCategory) {
			shared.FailValidation(w, reqID, []shared.ValidationIssue{{Field: "category", Reason: "is not a retention category"}})
			return
		}
		slog.Error("retention run failed", "err", err)
		api.Fail(w, http.StatusInternalServerError, "retention_failed", "retention run failed", reqID)
		return
	}

	if err := h.Audit.Record(r.Context(), user.UserID, "retention.run", "retention", category, reqID, shared.ClientIP(r), nil, out); err != nil {
		slog.Warn("audit retention.run failed", "err", err)
	}
	api.Success(w, out, reqID)
}
