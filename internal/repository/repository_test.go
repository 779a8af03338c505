package repository_test

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/jarcoal/httpmock"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/deppfellow/carmarket/internal/config"
	"github.com/deppfellow/carmarket/internal/lib/upstream"
	"github.com/deppfellow/carmarket/internal/model"
	"github.com/deppfellow/carmarket/internal/repository"
)

const baseURL = "https://cars.example.com"

func newClient(transport http.RoundTripper) *upstream.Client {
	logger := zerolog.Nop()
	client := upstream.NewClient(config.UpstreamConfig{
		BaseURL:   baseURL,
		Timeout:   time.Second,
		UserAgent: "carmarket-test",
	}, 0, &logger)
	client.HTTP.Transport = transport
	return client
}

var _ = Describe("CarRepository", func() {
	var (
		transport *httpmock.MockTransport
		cars      *repository.CarRepository
		ctx       = context.Background()
	)

	BeforeEach(func() {
		transport = httpmock.NewMockTransport()
		cars = repository.NewCarRepository(newClient(transport))
	})

	It("lists cars with the bearer token", func() {
		transport.RegisterResponder(http.MethodGet, baseURL+"/cars", func(req *http.Request) (*http.Response, error) {
			Expect(req.Header.Get("Authorization")).To(Equal("Bearer t0k"))
			return httpmock.NewStringResponse(http.StatusOK, `[{"id":"1"}]`), nil
		})

		res, err := cars.List(ctx, "t0k")
		Expect(err).NotTo(HaveOccurred())
		Expect(string(res.Body)).To(Equal(`[{"id":"1"}]`))
	})

	It("escapes the id", func() {
		var escaped string
		transport.RegisterResponder(http.MethodGet, `=~^https://cars\.example\.com/cars/`, func(req *http.Request) (*http.Response, error) {
			escaped = req.URL.EscapedPath()
			return httpmock.NewStringResponse(http.StatusOK, `{"id":"a/b"}`), nil
		})

		_, err := cars.Get(ctx, "t", "a/b")
		Expect(err).NotTo(HaveOccurred())
		Expect(escaped).To(Equal("/cars/a%2Fb"))
	})

	It("sends the payload on update", func() {
		transport.RegisterResponder(http.MethodPut, baseURL+"/cars/7", func(req *http.Request) (*http.Response, error) {
			body, _ := io.ReadAll(req.Body)
			Expect(body).To(MatchJSON(`{"make":"Toyota"}`))
			return httpmock.NewStringResponse(http.StatusOK, `{"id":"7","make":"Toyota"}`), nil
		})

		res, err := cars.Update(ctx, "t", "7", []byte(`{"make":"Toyota"}`))
		Expect(err).NotTo(HaveOccurred())
		Expect(res.Status).To(Equal(http.StatusOK))
	})

	DescribeTable("non-2xx answers",
		func(method, path string, call func() error, body, wantMessage string) {
			transport.RegisterResponder(method, baseURL+path, httpmock.NewStringResponder(http.StatusForbidden, body))

			err := call()
			var upErr *upstream.Error
			Expect(errors.As(err, &upErr)).To(BeTrue())
			Expect(upErr.Status).To(Equal(http.StatusForbidden))
			Expect(upErr.Resource).To(Equal("cars"))
			Expect(upErr.Message).To(Equal(wantMessage))
		},
		Entry("list falls back", http.MethodGet, "/cars",
			func() error { _, err := cars.List(ctx, "t"); return err }, `{}`, repository.MsgFetchCarsFailed),
		Entry("get falls back", http.MethodGet, "/cars/1",
			func() error { _, err := cars.Get(ctx, "t", "1"); return err }, ``, repository.MsgFetchCarFailed),
		Entry("create falls back", http.MethodPost, "/cars",
			func() error { _, err := cars.Create(ctx, "t", []byte(`{}`)); return err }, `{}`, repository.MsgCreateFailed),
		Entry("update keeps upstream message", http.MethodPut, "/cars/1",
			func() error { _, err := cars.Update(ctx, "t", "1", []byte(`{}`)); return err }, `{"message":"Not your car"}`, "Not your car"),
		Entry("delete falls back", http.MethodDelete, "/cars/1",
			func() error { _, err := cars.Delete(ctx, "t", "1"); return err }, `{}`, repository.MsgDeleteFailed),
	)
})

var _ = Describe("AccountRepository", func() {
	var (
		transport *httpmock.MockTransport
		accounts  *repository.AccountRepository
		req       = model.SignupRequest{
			Username:          "ana",
			Email:             "ana@example.com",
			Password:          "secret",
			ConfirmedPassword: "secret",
		}
	)

	BeforeEach(func() {
		transport = httpmock.NewMockTransport()
		accounts = repository.NewAccountRepository(newClient(transport))
	})

	It("forwards exactly the four signup fields without a token", func() {
		transport.RegisterResponder(http.MethodPost, baseURL+"/register", func(r *http.Request) (*http.Response, error) {
			Expect(r.Header.Values("Authorization")).To(BeEmpty())
			body, _ := io.ReadAll(r.Body)
			Expect(body).To(MatchJSON(`{"username":"ana","email":"ana@example.com","password":"secret","confirmed_password":"secret"}`))
			return httpmock.NewStringResponse(http.StatusCreated, `{"message":"Registered"}`), nil
		})

		res, err := accounts.Register(context.Background(), req)
		Expect(err).NotTo(HaveOccurred())
		Expect(res.Status).To(Equal(http.StatusCreated))
	})

	It("fills in the signup defaults", func() {
		transport.RegisterResponder(http.MethodPost, baseURL+"/register", httpmock.NewStringResponder(http.StatusBadRequest, `{}`))

		_, err := accounts.Register(context.Background(), req)
		var upErr *upstream.Error
		Expect(errors.As(err, &upErr)).To(BeTrue())
		Expect(upErr.Message).To(Equal(repository.MsgSignupFailed))
		Expect(upErr.Detail).To(Equal(repository.DetailSignupFailed))
	})

	It("keeps the upstream message and error", func() {
		transport.RegisterResponder(http.MethodPost, baseURL+"/register",
			httpmock.NewStringResponder(http.StatusConflict, `{"message":"Username taken","error":"duplicate key"}`))

		_, err := accounts.Register(context.Background(), req)
		var upErr *upstream.Error
		Expect(errors.As(err, &upErr)).To(BeTrue())
		Expect(upErr.Message).To(Equal("Username taken"))
		Expect(upErr.Detail).To(Equal("duplicate key"))
	})
})
