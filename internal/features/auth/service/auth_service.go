package service

import (
	"time"

	"cargoconnect/internal/features/auth/domain"

	"github.com/golang-jwt/jwt/v5"
)

// tokenTTL is the session token lifetime from issuance.
const tokenTTL = 12 * time.Hour

// AuthService verifies admin credentials and issues/validates session
// tokens. Tokens are stateless HS256 JWTs; validity is determined purely
// by signature and expiry at each use, there is no session store.
type AuthService struct {
	admin  *domain.Admin
	secret []byte
	now    func() time.Time
}

// NewAuthService creates an AuthService for the configured admin identity.
func NewAuthService(admin *domain.Admin, secret string) *AuthService {
	return &AuthService{
		admin:  admin,
		secret: []byte(secret),
		now:    time.Now,
	}
}

// Login checks the submitted identity and secret against the configured
// admin. On success it returns a signed token with the admin email as
// subject and its absolute expiry. On any mismatch it returns
// domain.ErrInvalidCredentials without distinguishing the cause.
func (s *AuthService) Login(email, password string) (string, time.Time, error) {
	if email != s.admin.Email || !s.admin.VerifyPassword(password) {
		return "", time.Time{}, domain.ErrInvalidCredentials
	}

	exp := s.now().UTC().Add(tokenTTL)
	claims := jwt.MapClaims{
		"sub": s.admin.Email,
		"exp": exp.Unix(),
		"iat": s.now().UTC().Unix(),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, err
	}

	return signed, exp, nil
}

// Authenticate validates a presented token and returns the admin email it
// asserts. It returns domain.ErrUnauthenticated if the token is malformed,
// the signature is invalid, the expiry has passed, or the subject is not
// the configured admin.
func (s *AuthService) Authenticate(token string) (string, error) {
	tok, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, domain.ErrUnauthenticated
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.now), jwt.WithExpirationRequired())
	if err != nil || !tok.Valid {
		return "", domain.ErrUnauthenticated
	}

	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return "", domain.ErrUnauthenticated
	}

	sub, err := claims.GetSubject()
	if err != nil || sub != s.admin.Email {
		return "", domain.ErrUnauthenticated
	}

	return sub, nil
}
