package service_test

import (
	"context"
	"net/http"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/pkg/errors"
	"go.uber.org/mock/gomock"

	"github.com/deppfellow/carmarket/internal/errs"
	"github.com/deppfellow/carmarket/internal/lib/upstream"
	"github.com/deppfellow/carmarket/internal/mocks"
	"github.com/deppfellow/carmarket/internal/model"
	"github.com/deppfellow/carmarket/internal/service"
)

func jsonResponse(status int, body string) *upstream.Response {
	return &upstream.Response{Status: status, Header: http.Header{}, Body: []byte(body)}
}

func strPtr(s string) *string { return &s }

var _ = Describe("CarService", func() {
	var (
		ctrl  *gomock.Controller
		store *mocks.CarStore
		svc   *service.CarService
		ctx   context.Context
	)

	BeforeEach(func() {
		ctrl = gomock.NewController(GinkgoT())
		store = mocks.NewCarStore(ctrl)
		svc = service.NewCarService(store)
		ctx = context.Background()
	})

	Context("relay", func() {
		It("returns the upstream response untouched", func() {
			res := jsonResponse(http.StatusCreated, `{"id":"1"}`)
			store.EXPECT().Create(ctx, "tok", []byte(`{"make":"Kia"}`)).Return(res, nil)

			got, err := svc.RelayCreate(ctx, "tok", []byte(`{"make":"Kia"}`))
			Expect(err).NotTo(HaveOccurred())
			Expect(got).To(BeIdenticalTo(res))
		})

		It("propagates upstream errors", func() {
			upErr := &upstream.Error{Status: http.StatusNotFound, Resource: "cars", Message: "Car not found"}
			store.EXPECT().Get(ctx, "tok", "9").Return(nil, upErr)

			_, err := svc.RelayGet(ctx, "tok", "9")
			Expect(err).To(MatchError(upErr))
		})
	})

	Context("ListCars", func() {
		It("decodes an array", func() {
			store.EXPECT().List(ctx, "tok").Return(jsonResponse(http.StatusOK, `[{"id":"1","make":"Honda","year":2020,"price":15000.5}]`), nil)

			cars, err := svc.ListCars(ctx, "tok")
			Expect(err).NotTo(HaveOccurred())
			Expect(cars).To(HaveLen(1))
			Expect(cars[0].Make).To(Equal("Honda"))
			Expect(cars[0].Price).To(Equal(15000.5))
		})

		It("rejects anything that is not an array", func() {
			store.EXPECT().List(ctx, "tok").Return(jsonResponse(http.StatusOK, `{"cars":[]}`), nil)

			_, err := svc.ListCars(ctx, "tok")
			var httpErr *errs.HTTPError
			Expect(errors.As(err, &httpErr)).To(BeTrue())
			Expect(httpErr.Message).To(Equal(service.MsgUnexpectedFormat))
			Expect(httpErr.Status).To(Equal(http.StatusBadGateway))
		})
	})

	Context("CreateCar", func() {
		in := model.CarInput{Make: "Ford", Model: "Focus", Year: 2019, Color: "Blue"}

		It("unwraps a car envelope", func() {
			store.EXPECT().Create(ctx, "tok", gomock.Any()).Return(jsonResponse(http.StatusCreated, `{"car":{"id":"5","make":"Ford"}}`), nil)

			car, err := svc.CreateCar(ctx, "tok", in)
			Expect(err).NotTo(HaveOccurred())
			Expect(car.ID).To(Equal("5"))
		})

		It("accepts a bare car", func() {
			store.EXPECT().Create(ctx, "tok", gomock.Any()).Return(jsonResponse(http.StatusCreated, `{"id":"6","make":"Ford"}`), nil)

			car, err := svc.CreateCar(ctx, "tok", in)
			Expect(err).NotTo(HaveOccurred())
			Expect(car.ID).To(Equal("6"))
		})
	})

	Context("UpdateCar", func() {
		It("merges the edit into the fetched record", func() {
			store.EXPECT().Get(ctx, "tok", "3").Return(jsonResponse(http.StatusOK,
				`{"id":"3","make":"Mazda","model":"3","year":2015,"price":9000,"mileage":80000,"description":"clean","color":"Red","fuel_type":"petrol","transmission":"manual","image":"x.png"}`), nil)
			store.EXPECT().Update(ctx, "tok", "3", gomock.Any()).DoAndReturn(
				func(_ context.Context, _, _ string, payload []byte) (*upstream.Response, error) {
					Expect(payload).To(MatchJSON(`{"make":"Mazda","model":"CX-5","year":2018,"price":9000,"mileage":80000,"description":"clean","color":"White","fuel_type":"petrol","transmission":"manual","image":"x.png"}`))
					return jsonResponse(http.StatusOK, `{"id":"3","model":"CX-5"}`), nil
				})

			car, err := svc.UpdateCar(ctx, "tok", "3", model.CarEdit{Make: "Mazda", Model: "CX-5", Year: 2018, Color: "White"})
			Expect(err).NotTo(HaveOccurred())
			Expect(car.Model).To(Equal("CX-5"))
		})

		It("stops when the car cannot be fetched", func() {
			store.EXPECT().Get(ctx, "tok", "3").Return(nil, &upstream.Error{Status: http.StatusNotFound, Resource: "cars"})

			_, err := svc.UpdateCar(ctx, "tok", "3", model.CarEdit{})
			Expect(err).To(HaveOccurred())
		})
	})

	Context("CanDelete", func() {
		car := &model.Car{ID: "1", SellerID: strPtr("s-1")}

		It("allows the owner", func() {
			Expect(svc.CanDelete(car, &model.Me{SellerID: "s-1"})).To(BeTrue())
		})

		It("refuses anyone else", func() {
			Expect(svc.CanDelete(car, &model.Me{SellerID: "s-2"})).To(BeFalse())
			Expect(svc.CanDelete(car, &model.Me{})).To(BeFalse())
			Expect(svc.CanDelete(car, nil)).To(BeFalse())
			Expect(svc.CanDelete(&model.Car{ID: "2"}, &model.Me{SellerID: "s-1"})).To(BeFalse())
		})
	})
})
