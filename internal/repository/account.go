package repository

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/pkg/errors"

	"github.com/deppfellow/carmarket/internal/lib/upstream"
	"github.com/deppfellow/carmarket/internal/model"
)

const accountResource = "accounts"

const (
	MsgSignupFailed    = "Signup failed"
	DetailSignupFailed = "Error creating account"
)

// AccountRepository covers the one account operation the upstream exposes.
type AccountRepository struct {
	client *upstream.Client
}

func NewAccountRepository(client *upstream.Client) *AccountRepository {
	return &AccountRepository{client: client}
}

// Register forwards the four signup fields to POST /register. No token is sent.
func (r *AccountRepository) Register(ctx context.Context, req model.SignupRequest) (*upstream.Response, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode signup request")
	}

	res, err := r.client.Do(ctx, upstream.Request{
		Method: http.MethodPost,
		Path:   "/register",
		Body:   payload,
	})
	if err != nil {
		return nil, err
	}

	if !res.OK() {
		upErr := res.AsError(accountResource, MsgSignupFailed)
		if upErr.Detail == "" {
			upErr.Detail = DetailSignupFailed
		}
		return nil, upErr
	}

	return res, nil
}
