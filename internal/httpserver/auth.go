package httpserver

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// gameClaims binds a token to one game. Daily carries the date key for
// daily games so the log entry can be tagged when the game ends.
type gameClaims struct {
	GameID string `json:"gid"`
	Daily  string `json:"daily,omitempty"`
	jwt.RegisteredClaims
}

// ctxClaimsKey is the context key type for storing gameClaims.
type ctxClaimsKey struct{}

// signGameToken creates an HS256 JWT for gameID.
func (s *Server) signGameToken(gameID, daily string) (string, time.Time, error) {
	now := s.now()
	exp := now.Add(s.opts.TokenTTL)
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, gameClaims{
		GameID: gameID,
		Daily:  daily,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   gameID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	})
	ss, err := t.SignedString([]byte(s.opts.JWTSecret))
	return ss, exp, err
}

// parseGameToken verifies tok and returns its claims.
func (s *Server) parseGameToken(tok string) (*gameClaims, error) {
	claims := &gameClaims{}
	_, err := jwt.ParseWithClaims(tok, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(s.opts.JWTSecret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(s.now))
	if err != nil {
		return nil, err
	}
	if claims.GameID == "" {
		return nil, jwt.ErrTokenInvalidClaims
	}
	return claims, nil
}

// bearerToken extracts a bearer token from the Authorization header.
func bearerToken(r *http.Request) string {
	// Authorization: Bearer <token>
	if a := r.Header.Get("Authorization"); strings.HasPrefix(strings.ToLower(a), "bearer ") {
		return strings.TrimSpace(a[7:])
	}
	return ""
}

// requireGameToken enforces a valid game token and injects its claims into
// the request context. Handlers still check the claimed ID against the game
// they were asked for.
func (s *Server) requireGameToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tok := bearerToken(r)
		if tok == "" {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		claims, err := s.parseGameToken(tok)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "invalid_token")
			return
		}
		ctx := context.WithValue(r.Context(), ctxClaimsKey{}, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// claimsFor returns the request's claims if they grant access to gameID.
func claimsFor(r *http.Request, gameID string) (*gameClaims, bool) {
	c, _ := r.Context().Value(ctxClaimsKey{}).(*gameClaims)
	if c == nil || c.GameID != gameID {
		return nil, false
	}
	return c, true
}
