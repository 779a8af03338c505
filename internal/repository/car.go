package repository

import (
	"context"
	"net/http"
	"net/url"

	"github.com/deppfellow/carmarket/internal/lib/upstream"
)

const carResource = "cars"

// Fallback messages used when the upstream error body carries none.
const (
	MsgFetchCarsFailed = "Failed to fetch cars"
	MsgFetchCarFailed  = "Failed to fetch car"
	MsgCreateFailed    = "Failed to create car"
	MsgUpdateFailed    = "Failed to update car"
	MsgDeleteFailed    = "Failed to delete car"
)

type CarRepository struct {
	client *upstream.Client
}

func NewCarRepository(client *upstream.Client) *CarRepository {
	return &CarRepository{client: client}
}

func carPath(id string) string {
	return "/cars/" + url.PathEscape(id)
}

func (r *CarRepository) List(ctx context.Context, token string) (*upstream.Response, error) {
	return r.do(ctx, upstream.Request{
		Method: http.MethodGet,
		Path:   "/cars",
		Token:  token,
	}, MsgFetchCarsFailed)
}

func (r *CarRepository) Get(ctx context.Context, token, id string) (*upstream.Response, error) {
	return r.do(ctx, upstream.Request{
		Method: http.MethodGet,
		Path:   carPath(id),
		Token:  token,
	}, MsgFetchCarFailed)
}

func (r *CarRepository) Create(ctx context.Context, token string, payload []byte) (*upstream.Response, error) {
	return r.do(ctx, upstream.Request{
		Method: http.MethodPost,
		Path:   "/cars",
		Token:  token,
		Body:   payload,
	}, MsgCreateFailed)
}

func (r *CarRepository) Update(ctx context.Context, token, id string, payload []byte) (*upstream.Response, error) {
	return r.do(ctx, upstream.Request{
		Method: http.MethodPut,
		Path:   carPath(id),
		Token:  token,
		Body:   payload,
	}, MsgUpdateFailed)
}

func (r *CarRepository) Delete(ctx context.Context, token, id string) (*upstream.Response, error) {
	return r.do(ctx, upstream.Request{
		Method: http.MethodDelete,
		Path:   carPath(id),
		Token:  token,
	}, MsgDeleteFailed)
}

func (r *CarRepository) do(ctx context.Context, req upstream.Request, fallback string) (*upstream.Response, error) {
	res, err := r.client.Do(ctx, req)
	if err != nil {
		return nil, err
	}

	if !res.OK() {
		return nil, res.AsError(carResource, fallback)
	}

	return res, nil
}
