// internal/app/features/login/handler.go
package login

import (
	"context"
	"net/http"

	userstore "github.com/dalemusser/hackhub/internal/app/store/users"
	"github.com/dalemusser/hackhub/internal/app/system/apierr"
	"github.com/dalemusser/hackhub/internal/app/system/auth"
	"github.com/dalemusser/hackhub/internal/app/system/authutil"
	"github.com/dalemusser/hackhub/internal/app/system/authz"
	"github.com/dalemusser/hackhub/internal/app/system/httpjson"
	"github.com/dalemusser/hackhub/internal/app/system/inputval"
	"github.com/dalemusser/hackhub/internal/app/system/normalize"
	"github.com/dalemusser/hackhub/internal/app/system/ratelimit"
	"github.com/dalemusser/hackhub/internal/app/system/timeouts"
	"github.com/dalemusser/hackhub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler serves password login and participant signup.
type Handler struct {
	Users  *userstore.Store
	Limits *ratelimit.LoginLimiter
	Log    *zap.Logger
}

// NewHandler creates a login Handler. The limiter is built by the
// caller from configured budgets and shared across login and signup.
func NewHandler(db *mongo.Database, limits *ratelimit.LoginLimiter, logger *zap.Logger) *Handler {
	return &Handler{
		Users:  userstore.New(db),
		Limits: limits,
		Log:    logger,
	}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type signupRequest struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type userResponse struct {
	ID       string `json:"id"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

// HandleLogin processes POST /api/login. Wrong email and wrong password
// produce the same answer; the response never says which part failed.
func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, err)
		return
	}
	if req.Email == "" || req.Password == "" {
		httpjson.Error(w, apierr.Validationf("email and password are required"))
		return
	}

	if allowed, reason := h.Limits.Check(r, req.Email); !allowed {
		httpjson.Write(w, http.StatusTooManyRequests, map[string]string{"error": reason})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	u, err := h.Users.GetByEmail(ctx, req.Email)
	if err != nil {
		h.Log.Error("login: user lookup failed", zap.Error(err))
		httpjson.Error(w, err)
		return
	}
	if u == nil || !authutil.CheckPassword(req.Password, u.PasswordHash) {
		httpjson.Error(w, apierr.ErrUnauthorized)
		return
	}

	h.Limits.ResetEmail(req.Email)

	if err := auth.SignIn(w, r, auth.SessionUser{
		ID:    u.ID.Hex(),
		Name:  u.FullName,
		Email: u.Email,
		Role:  u.Role,
	}); err != nil {
		h.Log.Error("login: session save failed", zap.Error(err), zap.String("user_id", u.ID.Hex()))
		httpjson.Error(w, err)
		return
	}

	h.Log.Info("user logged in", zap.String("user_id", u.ID.Hex()), zap.String("role", u.Role))
	httpjson.Write(w, http.StatusOK, userResponse{
		ID:       u.ID.Hex(),
		FullName: u.FullName,
		Email:    u.Email,
		Role:     u.Role,
	})
}

// HandleSignup processes POST /api/signup. Self-service signup only
// creates participant accounts; organizer and judge accounts are
// provisioned out of band.
func (h *Handler) HandleSignup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, err)
		return
	}

	req.FullName = normalize.Name(req.FullName)
	req.Email = normalize.Email(req.Email)
	if req.FullName == "" {
		httpjson.Error(w, apierr.Validationf("full_name is required"))
		return
	}
	if !inputval.IsValidEmail(req.Email) {
		httpjson.Error(w, apierr.Validationf("invalid email address"))
		return
	}
	if err := authutil.ValidatePassword(req.Password); err != nil {
		httpjson.Error(w, apierr.Validationf("%s", err.Error()))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	existing, err := h.Users.GetByEmail(ctx, req.Email)
	if err != nil {
		httpjson.Error(w, err)
		return
	}
	if existing != nil {
		httpjson.Error(w, apierr.Validationf("an account with that email already exists"))
		return
	}

	hash, err := authutil.HashPassword(req.Password)
	if err != nil {
		h.Log.Error("signup: hash password failed", zap.Error(err))
		httpjson.Error(w, err)
		return
	}

	u, err := h.Users.Create(ctx, models.User{
		FullName:     req.FullName,
		FullNameCI:   text.Fold(req.FullName),
		Email:        req.Email,
		PasswordHash: hash,
		Role:         string(authz.RoleParticipant),
	})
	if err != nil {
		h.Log.Error("signup: create user failed", zap.Error(err))
		httpjson.Error(w, err)
		return
	}

	if err := auth.SignIn(w, r, auth.SessionUser{
		ID:    u.ID.Hex(),
		Name:  u.FullName,
		Email: u.Email,
		Role:  u.Role,
	}); err != nil {
		h.Log.Error("signup: session save failed", zap.Error(err), zap.String("user_id", u.ID.Hex()))
		httpjson.Error(w, err)
		return
	}

	h.Log.Info("participant signed up", zap.String("user_id", u.ID.Hex()))
	httpjson.Write(w, http.StatusCreated, userResponse{
		ID:       u.ID.Hex(),
		FullName: u.FullName,
		Email:    u.Email,
		Role:     u.Role,
	})
}
