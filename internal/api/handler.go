package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/sima8766/iran-transitional-leader-email-app/internal/metrics"
	"github.com/sima8766/iran-transitional-leader-email-app/internal/session"
)

const SessionCookie = "draft_session"

const maxBodyBytes = 1 << 20

type GenerateRequest struct {
	Name string `json:"name" validate:"required,max=200"`
}

type Handler struct {
	Sessions *session.Store
	Limiter  *rate.Limiter
	Validate *validator.Validate
	Log      *zap.Logger
}

// Routes registers the draft endpoints on mux.
func (h *Handler) Routes(mux *http.ServeMux) {
	mux.HandleFunc("POST /draft", h.GenerateDraft)
	mux.HandleFunc("GET /draft/open", h.OpenDraft)
}

// GenerateDraft picks a new template for the caller's session and returns
// the draft with its mailto link.
func (h *Handler) GenerateDraft(w http.ResponseWriter, r *http.Request) {
	if !h.Limiter.Allow() {
		metrics.DraftFailures.WithLabelValues("rate_limited").Inc()
		writeError(w, http.StatusTooManyRequests, "too many requests")
		return
	}

	var req GenerateRequest
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		metrics.DraftFailures.WithLabelValues("bad_request").Inc()
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "request body too large")
			return
		}
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	if err := h.Validate.Struct(req); err != nil {
		metrics.DraftFailures.WithLabelValues("invalid_name").Inc()
		writeError(w, http.StatusBadRequest, nameMessage(err))
		return
	}

	sess, err := h.session(w, r)
	if err != nil {
		// loader errors are fatal for the session and shown as is
		h.Log.Error("failed to load recipients", zap.Error(err))
		metrics.DraftFailures.WithLabelValues("recipients").Inc()
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	draft, err := sess.Generate(req.Name)
	if err != nil {
		metrics.DraftFailures.WithLabelValues("invalid_name").Inc()
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.Log.Info("draft generated",
		zap.Int("template_index", draft.TemplateIndex),
		zap.Int("recipients", draft.RecipientCount),
	)
	metrics.DraftsGenerated.Inc()

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(draft)
}

// OpenDraft redirects to the mailto link of the session's last draft.
func (h *Handler) OpenDraft(w http.ResponseWriter, r *http.Request) {
	c, err := r.Cookie(SessionCookie)
	if err != nil {
		writeError(w, http.StatusNotFound, "no draft generated yet")
		return
	}
	sess, ok := h.Sessions.Get(c.Value)
	h.observeSessions()
	if !ok {
		writeError(w, http.StatusNotFound, "no draft generated yet")
		return
	}
	draft, ok := sess.Last()
	if !ok {
		writeError(w, http.StatusNotFound, "no draft generated yet")
		return
	}

	http.Redirect(w, r, draft.Link, http.StatusFound)
}

// session returns the caller's session, creating one and setting the cookie
// when there is none.
func (h *Handler) session(w http.ResponseWriter, r *http.Request) (*session.Session, error) {
	if c, err := r.Cookie(SessionCookie); err == nil {
		sess, ok := h.Sessions.Get(c.Value)
		h.observeSessions()
		if ok {
			return sess, nil
		}
	}

	id, sess, err := h.Sessions.Create()
	if err != nil {
		return nil, err
	}
	h.observeSessions()

	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return sess, nil
}

// observeSessions publishes the live session count. Store.Get and
// Store.Create both drop idle sessions, so it runs after either.
func (h *Handler) observeSessions() {
	metrics.ActiveSessions.Set(float64(h.Sessions.Len()))
}

func nameMessage(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 && verrs[0].Tag() == "max" {
		return "name is too long"
	}
	return session.ErrNameRequired.Error()
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
