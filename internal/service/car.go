package service

import (
	"bytes"
	"context"
	"encoding/json"

	"github.com/pkg/errors"

	"github.com/deppfellow/carmarket/internal/errs"
	"github.com/deppfellow/carmarket/internal/lib/upstream"
	"github.com/deppfellow/carmarket/internal/model"
)

//go:generate mockgen -destination=../mocks/mock_car_store.go -package=mocks -mock_names=CarStore=CarStore . CarStore

// CarStore is the upstream car resource. *repository.CarRepository implements it.
type CarStore interface {
	List(ctx context.Context, token string) (*upstream.Response, error)
	Get(ctx context.Context, token, id string) (*upstream.Response, error)
	Create(ctx context.Context, token string, payload []byte) (*upstream.Response, error)
	Update(ctx context.Context, token, id string, payload []byte) (*upstream.Response, error)
	Delete(ctx context.Context, token, id string) (*upstream.Response, error)
}

// MsgUnexpectedFormat is reported when GET /cars does not answer with an array.
const MsgUnexpectedFormat = "Unexpected data format: Expected an array of cars"

type CarService struct {
	store CarStore
}

func NewCarService(store CarStore) *CarService {
	return &CarService{store: store}
}

// Relay operations hand the upstream answer back untouched.

func (s *CarService) RelayList(ctx context.Context, token string) (*upstream.Response, error) {
	return s.store.List(ctx, token)
}

func (s *CarService) RelayGet(ctx context.Context, token, id string) (*upstream.Response, error) {
	return s.store.Get(ctx, token, id)
}

func (s *CarService) RelayCreate(ctx context.Context, token string, payload []byte) (*upstream.Response, error) {
	return s.store.Create(ctx, token, payload)
}

func (s *CarService) RelayUpdate(ctx context.Context, token, id string, payload []byte) (*upstream.Response, error) {
	return s.store.Update(ctx, token, id, payload)
}

func (s *CarService) RelayDelete(ctx context.Context, token, id string) (*upstream.Response, error) {
	return s.store.Delete(ctx, token, id)
}

// ListCars returns every listing. The upstream must answer with a JSON array.
func (s *CarService) ListCars(ctx context.Context, token string) ([]model.Car, error) {
	res, err := s.store.List(ctx, token)
	if err != nil {
		return nil, err
	}

	if !bytes.HasPrefix(bytes.TrimSpace(res.Body), []byte("[")) {
		return nil, errs.NewBadGatewayError(MsgUnexpectedFormat)
	}

	var cars []model.Car
	if err := res.Decode(&cars); err != nil {
		return nil, errs.NewBadGatewayError(MsgUnexpectedFormat)
	}

	return cars, nil
}

func (s *CarService) GetCar(ctx context.Context, token, id string) (*model.Car, error) {
	res, err := s.store.Get(ctx, token, id)
	if err != nil {
		return nil, err
	}

	var car model.Car
	if err := res.Decode(&car); err != nil {
		return nil, errors.Wrap(err, "failed to decode car")
	}

	return &car, nil
}

// CreateCar posts a new listing. The upstream may answer with {"car": {...}},
// a bare car, or nothing at all; in the last case the returned car is nil.
func (s *CarService) CreateCar(ctx context.Context, token string, in model.CarInput) (*model.Car, error) {
	payload, err := json.Marshal(in)
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode car")
	}

	res, err := s.store.Create(ctx, token, payload)
	if err != nil {
		return nil, err
	}

	if res.Empty() {
		return nil, nil
	}

	car, err := model.DecodeCreated(res.Body)
	if err != nil {
		return nil, errors.Wrap(err, "failed to decode created car")
	}

	return car, nil
}

// UpdateCar fetches the current record, applies the edit and PUTs the whole
// editable record back so fields absent from the edit form are preserved.
func (s *CarService) UpdateCar(ctx context.Context, token, id string, edit model.CarEdit) (*model.Car, error) {
	current, err := s.GetCar(ctx, token, id)
	if err != nil {
		return nil, err
	}

	payload, err := json.Marshal(edit.Apply(current))
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode car")
	}

	res, err := s.store.Update(ctx, token, id, payload)
	if err != nil {
		return nil, err
	}

	if res.Empty() {
		merged := *current
		merged.Make, merged.Model, merged.Year, merged.Color = edit.Make, edit.Model, edit.Year, edit.Color
		return &merged, nil
	}

	var updated model.Car
	if err := res.Decode(&updated); err != nil {
		return nil, errors.Wrap(err, "failed to decode updated car")
	}

	return &updated, nil
}

func (s *CarService) DeleteCar(ctx context.Context, token, id string) error {
	_, err := s.store.Delete(ctx, token, id)
	return err
}

// CanDelete reports whether me owns car. An unknown seller on either side
// means no.
func (s *CarService) CanDelete(car *model.Car, me *model.Me) bool {
	if car == nil || me == nil || me.SellerID == "" {
		return false
	}
	return car.Seller() == me.SellerID
}
