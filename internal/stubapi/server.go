// Package stubapi is a small in-memory rendition of the GiveHub backend,
// used by tests and for local development of the terminal client. It speaks
// the same wire protocol as production deployments, including their
// divergent response envelopes, so client-side normalization can be
// exercised against every shape. It is tooling, not the product backend.
package stubapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/avezina/givehub/internal/logging"
)

// Envelope selects how responses are wrapped, mirroring the deployments in
// the wild.
type Envelope string

const (
	// EnvelopeFlat returns payloads as bare objects.
	EnvelopeFlat Envelope = "flat"
	// EnvelopeData wraps every payload in {"data": ...}.
	EnvelopeData Envelope = "data"
	// EnvelopeNested returns auth payloads as {"token": ..., "user": {...}}.
	EnvelopeNested Envelope = "nested"
)

type user struct {
	ID       string
	Name     string
	Email    string
	Password string
	Role     string
}

type donation struct {
	ID          string    `json:"id"`
	CampaignID  string    `json:"campaignId"`
	AmountCents int64     `json:"amountCents"`
	Method      string    `json:"method"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
}

type campaign struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	OwnerID     string `json:"ownerId"`
	GoalCents   int64  `json:"goalCents"`
	RaisedCents int64  `json:"raisedCents"`
}

type receipt struct {
	DonationID string `json:"donationId"`
	Status     string `json:"status"`
	Reference  string `json:"reference"`
}

// Server holds the in-memory state and the router.
type Server struct {
	mu        sync.Mutex
	users     map[string]*user // keyed by email
	usersByID map[string]*user
	donations map[string][]donation // keyed by user id
	idem      map[string]receipt    // keyed by Idempotency-Key
	campaigns []campaign

	envelope Envelope
	secret   []byte
	log      logging.Logger
	router   chi.Router
}

type Option func(*Server)

// WithEnvelope selects the response envelope style. Default is flat.
func WithEnvelope(e Envelope) Option {
	return func(s *Server) { s.envelope = e }
}

// WithJWTSecret overrides the HS256 signing secret.
func WithJWTSecret(secret []byte) Option {
	return func(s *Server) { s.secret = secret }
}

func WithLogger(l logging.Logger) Option {
	return func(s *Server) { s.log = l.With("component", "stubapi") }
}

func New(opts ...Option) *Server {
	s := &Server{
		users:     make(map[string]*user),
		usersByID: make(map[string]*user),
		donations: make(map[string][]donation),
		idem:      make(map[string]receipt),
		envelope:  EnvelopeFlat,
		secret:    []byte("stubapi-dev-secret"),
		log:       logging.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.campaigns = []campaign{
		{ID: "c1", Title: "Clean Water for Kandy", Description: "Wells for three villages", OwnerID: "seed-1", GoalCents: 500_000, RaisedCents: 120_000},
		{ID: "c2", Title: "School Meals Fund", Description: "A warm lunch every day", OwnerID: "seed-2", GoalCents: 1_000_000, RaisedCents: 830_000},
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Post("/auth/login", s.handleLogin)
	r.Post("/auth/signup", s.handleSignup)
	r.Get("/health", s.handleHealth)
	r.Get("/campaigns", s.handleCampaigns)

	r.Group(func(r chi.Router) {
		r.Use(s.requireAuth)
		r.Get("/donations", s.handleDonations)
		r.Post("/donations", s.handleCreateDonation)
	})

	s.router = r
	return s
}

// Router returns the http.Handler to mount or serve.
func (s *Server) Router() http.Handler { return s.router }

// SeedUser registers an account directly, bypassing the signup endpoint.
// Returns the generated user id.
func (s *Server) SeedUser(name, email, password, role string) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	u := &user{ID: uuid.NewString(), Name: name, Email: email, Password: password, Role: role}
	s.users[email] = u
	s.usersByID[u.ID] = u
	return u.ID
}

// ---- handlers ----

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	s.mu.Lock()
	u, ok := s.users[req.Email]
	s.mu.Unlock()

	if !ok {
		s.writeError(w, http.StatusUnauthorized, "unknown email")
		return
	}
	if u.Password != req.Password {
		s.writeError(w, http.StatusUnauthorized, "invalid password")
		return
	}

	s.writeAuth(w, http.StatusOK, u)
}

func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
		UserType string `json:"userType"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Email == "" || req.Password == "" {
		s.writeError(w, http.StatusBadRequest, "email and password are required")
		return
	}
	if req.UserType == "" {
		req.UserType = "user"
	}

	s.mu.Lock()
	if _, exists := s.users[req.Email]; exists {
		s.mu.Unlock()
		s.writeError(w, http.StatusConflict, "email already registered")
		return
	}
	u := &user{ID: uuid.NewString(), Name: req.Name, Email: req.Email, Password: req.Password, Role: req.UserType}
	s.users[req.Email] = u
	s.usersByID[u.ID] = u
	s.mu.Unlock()

	s.log.Info(r.Context(), "user registered", "userId", u.ID, "role", u.Role)
	s.writeAuth(w, http.StatusCreated, u)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleCampaigns(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	list := append([]campaign(nil), s.campaigns...)
	s.mu.Unlock()

	s.writeJSON(w, http.StatusOK, list)
}

func (s *Server) handleDonations(w http.ResponseWriter, r *http.Request) {
	u := r.Context().Value(userKey{}).(*user)

	s.mu.Lock()
	list := append([]donation(nil), s.donations[u.ID]...)
	s.mu.Unlock()

	if list == nil {
		list = []donation{}
	}
	s.writeJSON(w, http.StatusOK, list)
}

func (s *Server) handleCreateDonation(w http.ResponseWriter, r *http.Request) {
	u := r.Context().Value(userKey{}).(*user)

	var req struct {
		CampaignID  string `json:"campaignId"`
		AmountCents int64  `json:"amountCents"`
		Method      string `json:"method"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.AmountCents <= 0 {
		s.writeError(w, http.StatusBadRequest, "amount must be positive")
		return
	}

	key := r.Header.Get("Idempotency-Key")

	s.mu.Lock()
	if key != "" {
		if prev, seen := s.idem[key]; seen {
			s.mu.Unlock()
			s.writeJSON(w, http.StatusOK, prev)
			return
		}
	}

	d := donation{
		ID:          uuid.NewString(),
		CampaignID:  req.CampaignID,
		AmountCents: req.AmountCents,
		Method:      req.Method,
		Status:      "recorded",
		CreatedAt:   time.Now().UTC(),
	}
	s.donations[u.ID] = append(s.donations[u.ID], d)

	rc := receipt{DonationID: d.ID, Status: d.Status, Reference: fmt.Sprintf("GH-%s", d.ID[:8])}
	if key != "" {
		s.idem[key] = rc
	}
	s.mu.Unlock()

	s.log.Info(r.Context(), "donation recorded", "userId", u.ID, "amountCents", req.AmountCents)
	s.writeJSON(w, http.StatusCreated, rc)
}

// ---- auth ----

type userKey struct{}

func contextWithUser(ctx context.Context, u *user) context.Context {
	return context.WithValue(ctx, userKey{}, u)
}

func (s *Server) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authz := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(authz, "Bearer ")
		if !ok || token == "" {
			s.writeError(w, http.StatusUnauthorized, "missing bearer token")
			return
		}

		parsed, err := jwt.Parse(token, func(*jwt.Token) (any, error) {
			return s.secret, nil
		}, jwt.WithValidMethods([]string{"HS256"}))
		if err != nil || !parsed.Valid {
			s.writeError(w, http.StatusUnauthorized, "invalid or expired token")
			return
		}

		sub, err := parsed.Claims.GetSubject()
		if err != nil {
			s.writeError(w, http.StatusUnauthorized, "invalid token subject")
			return
		}

		s.mu.Lock()
		u, found := s.usersByID[sub]
		s.mu.Unlock()
		if !found {
			s.writeError(w, http.StatusUnauthorized, "unknown user")
			return
		}

		ctx := contextWithUser(r.Context(), u)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (s *Server) issueToken(u *user) string {
	claims := jwt.MapClaims{
		"sub":  u.ID,
		"name": u.Name,
		"role": u.Role,
		"iat":  time.Now().Unix(),
		"exp":  time.Now().Add(24 * time.Hour).Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		// HS256 signing of a map claim cannot fail with a valid secret.
		panic(err)
	}
	return signed
}

// ---- response shaping ----

func (s *Server) writeAuth(w http.ResponseWriter, status int, u *user) {
	token := s.issueToken(u)

	var payload any
	switch s.envelope {
	case EnvelopeNested:
		payload = map[string]any{
			"token": token,
			"user": map[string]any{
				"id":       u.ID,
				"name":     u.Name,
				"email":    u.Email,
				"userType": u.Role,
			},
		}
	default:
		payload = map[string]any{
			"token":    token,
			"userId":   u.ID,
			"name":     u.Name,
			"email":    u.Email,
			"userType": u.Role,
		}
	}
	s.writeJSON(w, status, payload)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload any) {
	if s.envelope == EnvelopeData {
		payload = map[string]any{"data": payload}
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"message": msg})
}
