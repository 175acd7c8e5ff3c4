package api

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"strings"
	"time"

	"github.com/MicahParks/keyfunc"
	"github.com/golang-jwt/jwt/v4"
)

var (
	errMissingAuthorization = errors.New("missing authorization header")
	errBadAuthorization     = errors.New("bad auth header")
)

const defaultSessionTTL = 12 * time.Hour

// AuthConfig configures the single-superuser gate.
type AuthConfig struct {
	// SuperuserSubject is the only subject allowed past the gate.
	SuperuserSubject string
	// SessionSecret signs and verifies locally issued HS256 session tokens.
	SessionSecret []byte
	// PasswordSHA256 is the hex SHA-256 digest of the superuser password.
	PasswordSHA256 string
	// SessionTTL bounds locally issued sessions.
	SessionTTL time.Duration

	// JWKS switches token verification to an external IdP (RS256). Audience
	// and Issuer are enforced when set. Local session issuance is disabled
	// in this mode.
	JWKS     *keyfunc.JWKS
	Audience string
	Issuer   string
}

// Auth validates incoming bearer tokens and issues superuser sessions.
type Auth struct {
	cfg    AuthConfig
	parser *jwt.Parser
}

// NewAuth creates a new Auth instance.
func NewAuth(cfg AuthConfig) *Auth {
	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = defaultSessionTTL
	}
	method := "HS256"
	if cfg.JWKS != nil {
		method = "RS256"
	}
	return &Auth{
		cfg:    cfg,
		parser: jwt.NewParser(jwt.WithValidMethods([]string{method})),
	}
}

// Superuser returns the configured superuser subject.
func (a *Auth) Superuser() string { return a.cfg.SuperuserSubject }

// VerifyPassword compares the presented password against the configured
// digest in constant time.
func (a *Auth) VerifyPassword(password string) bool {
	if a.cfg.PasswordSHA256 == "" {
		return false
	}
	sum := sha256.Sum256([]byte(password))
	digest := hex.EncodeToString(sum[:])
	expected := strings.ToLower(strings.TrimSpace(a.cfg.PasswordSHA256))
	return subtle.ConstantTimeCompare([]byte(digest), []byte(expected)) == 1
}

// IssueSession mints an HS256 session token for the superuser.
func (a *Auth) IssueSession(now time.Time) (token string, expiresAt time.Time, err error) {
	if a.cfg.JWKS != nil {
		return "", time.Time{}, errors.New("local sessions disabled when an external IdP is configured")
	}
	if len(a.cfg.SessionSecret) == 0 {
		return "", time.Time{}, errors.New("session secret not configured")
	}
	expiresAt = now.Add(a.cfg.SessionTTL)
	claims := jwt.RegisteredClaims{
		Subject:   a.cfg.SuperuserSubject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}
	token, err = jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.cfg.SessionSecret)
	if err != nil {
		return "", time.Time{}, err
	}
	return token, expiresAt, nil
}

// SubjectFromAuthHeader extracts the authenticated subject from the
// Authorization header.
func (a *Auth) SubjectFromAuthHeader(h string) (string, error) {
	token, err := bearerToken(h)
	if err != nil {
		return "", err
	}

	var parsed *jwt.Token
	if a.cfg.JWKS != nil {
		parsed, err = a.parser.Parse(token, a.keyForToken)
	} else {
		parsed, err = a.parser.Parse(token, func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.New("invalid signing method")
			}
			return a.cfg.SessionSecret, nil
		})
	}
	if err != nil {
		return "", err
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return "", errors.New("invalid claims")
	}

	// One minute of leeway covers clock drift between issuer and verifier.
	now := time.Now().Add(time.Minute).Unix()
	if !claims.VerifyExpiresAt(now, true) {
		return "", errors.New("token expired")
	}
	if !claims.VerifyNotBefore(now, false) {
		return "", errors.New("token not valid yet")
	}
	if !claims.VerifyIssuedAt(now, false) {
		return "", errors.New("token used before issued")
	}
	if a.cfg.Audience != "" && !claims.VerifyAudience(a.cfg.Audience, false) {
		return "", errors.New("invalid audience")
	}
	if a.cfg.Issuer != "" && !claims.VerifyIssuer(a.cfg.Issuer, false) {
		return "", errors.New("invalid issuer")
	}

	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return "", errors.New("missing sub")
	}
	return sub, nil
}

func (a *Auth) keyForToken(token *jwt.Token) (any, error) {
	if a.cfg.JWKS == nil {
		return nil, errors.New("jwks not configured")
	}
	return a.cfg.JWKS.Keyfunc(token)
}

func bearerToken(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", errMissingAuthorization
	}
	const prefix = "Bearer "
	if len(raw) <= len(prefix) || !strings.EqualFold(raw[:len(prefix)], prefix) {
		return "", errBadAuthorization
	}
	token := strings.TrimSpace(raw[len(prefix):])
	if strings.Count(token, ".") != 2 {
		return "", errBadAuthorization
	}
	return token, nil
}
