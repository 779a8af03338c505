package service

import (
	"context"
	"strconv"

	"github.com/golang-jwt/jwt/v5"

	"github.com/deppfellow/carmarket/internal/errs"
	"github.com/deppfellow/carmarket/internal/lib/upstream"
	"github.com/deppfellow/carmarket/internal/model"
)

//go:generate mockgen -destination=../mocks/mock_account_store.go -package=mocks -mock_names=AccountStore=AccountStore . AccountStore

// AccountStore is the upstream registration endpoint.
type AccountStore interface {
	Register(ctx context.Context, req model.SignupRequest) (*upstream.Response, error)
}

// AuthService relays signups and reads caller identity from the access token.
// It never verifies tokens: the upstream does that on every call.
type AuthService struct {
	accounts AccountStore
	parser   *jwt.Parser
}

func NewAuthService(accounts AccountStore) *AuthService {
	return &AuthService{
		accounts: accounts,
		parser:   jwt.NewParser(),
	}
}

func (s *AuthService) Signup(ctx context.Context, req model.SignupRequest) (*upstream.Response, error) {
	return s.accounts.Register(ctx, req)
}

// Me decodes the token's claims without checking the signature. seller_id
// comes from the "seller_id" claim, falling back to "sub".
func (s *AuthService) Me(token string) (*model.Me, error) {
	claims := jwt.MapClaims{}
	if _, _, err := s.parser.ParseUnverified(token, claims); err != nil {
		return nil, errs.NewUnauthorizedError("Unauthorized", false)
	}

	sellerID := stringClaim(claims, "seller_id")
	if sellerID == "" {
		sellerID, _ = claims.GetSubject()
	}
	if sellerID == "" {
		return nil, errs.NewUnauthorizedError("Unauthorized", false)
	}

	return &model.Me{
		SellerID: sellerID,
		Username: stringClaim(claims, "username"),
		Email:    stringClaim(claims, "email"),
	}, nil
}

func stringClaim(claims jwt.MapClaims, name string) string {
	switch v := claims[name].(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return ""
	}
}
