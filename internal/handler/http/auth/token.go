package auth

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"helpcenter/internal/handler/http/requestid"
	authservice "helpcenter/internal/service/auth"
)

// TokenTTL is the lifetime of issued tokens.
const TokenTTL = time.Hour

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// TokenHandler authenticates an editor and returns a signed HS256 token.
func TokenHandler(authService *authservice.AuthService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		logger := slog.With(slog.String("request_id", requestid.FromContext(r.Context())))

		fail := func(reason string, code int, msg string) {
			logger.Warn("authentication failed",
				slog.String("reason", reason),
				slog.Int64("duration_ms", time.Since(start).Milliseconds()))
			recordTokenRejected(reason, start)
			http.Error(w, msg, code)
		}

		var req loginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			fail(reasonBadRequest, http.StatusBadRequest, "invalid request")
			return
		}

		role, err := authService.Authenticate(r.Context(), authservice.Credentials{
			Username: req.Email,
			Password: req.Password,
		})
		if err != nil {
			fail(reasonBadLogin, http.StatusUnauthorized, "unauthorized")
			return
		}

		secret := []byte(os.Getenv("JWT_SECRET"))
		if len(secret) == 0 {
			logger.Error("token generation failed: JWT_SECRET is empty")
			recordTokenRejected(reasonSigningFail, start)
			http.Error(w, "token generation failed", http.StatusInternalServerError)
			return
		}

		expiresAt := time.Now().Add(TokenTTL)
		signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"sub":  req.Email,
			"role": role,
			"exp":  expiresAt.Unix(),
		}).SignedString(secret)
		if err != nil {
			logger.Error("token generation failed", slog.String("error", err.Error()))
			recordTokenRejected(reasonSigningFail, start)
			http.Error(w, "token generation failed", http.StatusInternalServerError)
			return
		}

		logger.Info("authentication successful",
			slog.String("user_email", req.Email),
			slog.String("role", role),
			slog.Int64("duration_ms", time.Since(start).Milliseconds()))
		recordTokenIssued(start)

		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Cache-Control", "no-store")
		if err := json.NewEncoder(w).Encode(tokenResponse{Token: signed, ExpiresAt: expiresAt.UTC()}); err != nil {
			logger.Error("failed to encode token response", slog.String("error", err.Error()))
		}
	}
}
