package router_test

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jarcoal/httpmock"
	"github.com/labstack/echo/v4"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/rs/zerolog"

	"github.com/deppfellow/carmarket/internal/config"
	"github.com/deppfellow/carmarket/internal/handler"
	"github.com/deppfellow/carmarket/internal/repository"
	"github.com/deppfellow/carmarket/internal/router"
	"github.com/deppfellow/carmarket/internal/server"
	"github.com/deppfellow/carmarket/internal/service"
)

const baseURL = "https://cars.example.com"

func tokenFor(sellerID string) string {
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"seller_id": sellerID,
		"username":  "alice",
	}).SignedString([]byte("test-secret"))
	Expect(err).NotTo(HaveOccurred())
	return token
}

var _ = Describe("Router", func() {
	var (
		transport *httpmock.MockTransport
		e         *echo.Echo
		token     string
	)

	BeforeEach(func() {
		cfg := config.DefaultConfig()
		cfg.Upstream.BaseURL = baseURL

		logger := zerolog.Nop()
		srv, err := server.New(cfg, &logger, nil)
		Expect(err).NotTo(HaveOccurred())

		transport = httpmock.NewMockTransport()
		srv.Upstream.HTTP.Transport = transport

		services, err := service.NewServices(srv, repository.NewRepositories(srv))
		Expect(err).NotTo(HaveOccurred())

		e, err = router.NewRouter(srv, handler.NewHandlers(srv, services))
		Expect(err).NotTo(HaveOccurred())

		token = tokenFor("seller-1")
	})

	serve := func(method, target string, body io.Reader, withCookie bool) *httptest.ResponseRecorder {
		req := httptest.NewRequest(method, target, body)
		if body != nil {
			req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		}
		if withCookie {
			req.AddCookie(&http.Cookie{Name: "access_token", Value: token})
		}
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		return rec
	}

	postForm := func(target string, form url.Values) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
		req.AddCookie(&http.Cookie{Name: "access_token", Value: token})
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		return rec
	}

	calls := func(method, target string) int {
		return transport.GetCallCountInfo()[method+" "+target]
	}

	decode := func(rec *httptest.ResponseRecorder) map[string]interface{} {
		var out map[string]interface{}
		Expect(json.Unmarshal(rec.Body.Bytes(), &out)).To(Succeed())
		return out
	}

	Describe("/api proxy routes", func() {
		It("rejects calls without the access token cookie", func() {
			rec := serve(http.MethodGet, "/api/cars", nil, false)

			Expect(rec.Code).To(Equal(http.StatusUnauthorized))
			Expect(decode(rec)["message"]).To(Equal("Unauthorized"))
			Expect(transport.GetTotalCallCount()).To(BeZero())
		})

		It("relays the car list with the cookie as bearer token", func() {
			transport.RegisterResponder(http.MethodGet, baseURL+"/cars", func(req *http.Request) (*http.Response, error) {
				Expect(req.Header.Get("Authorization")).To(Equal("Bearer " + token))
				Expect(req.Header.Get("X-Request-ID")).NotTo(BeEmpty())
				return httpmock.NewStringResponse(http.StatusOK, `[{"id":"1","make":"Toyota"}]`), nil
			})

			rec := serve(http.MethodGet, "/api/cars", nil, true)

			Expect(rec.Code).To(Equal(http.StatusOK))
			Expect(rec.Header().Get(echo.HeaderContentType)).To(HavePrefix(echo.MIMEApplicationJSON))
			Expect(rec.Body.String()).To(MatchJSON(`[{"id":"1","make":"Toyota"}]`))
		})

		It("keeps the upstream status and message on failure", func() {
			transport.RegisterResponder(http.MethodGet, baseURL+"/cars/42",
				httpmock.NewStringResponder(http.StatusNotFound, `{"message":"Car not found"}`))

			rec := serve(http.MethodGet, "/api/cars/42", nil, true)

			Expect(rec.Code).To(Equal(http.StatusNotFound))
			body := decode(rec)
			Expect(body["message"]).To(Equal("Car not found"))
			Expect(body["code"]).To(Equal("CAR_NOT_FOUND"))
		})

		It("falls back to the operation message when the upstream sends none", func() {
			transport.RegisterResponder(http.MethodPost, baseURL+"/cars",
				httpmock.NewStringResponder(http.StatusInternalServerError, `{}`))

			rec := serve(http.MethodPost, "/api/cars", strings.NewReader(`{"make":"Toyota"}`), true)

			Expect(rec.Code).To(Equal(http.StatusInternalServerError))
			Expect(decode(rec)["message"]).To(Equal(repository.MsgCreateFailed))
		})

		It("rejects a body that is not a JSON object", func() {
			rec := serve(http.MethodPut, "/api/cars/1", strings.NewReader(`[1,2]`), true)

			Expect(rec.Code).To(Equal(http.StatusBadRequest))
			Expect(transport.GetTotalCallCount()).To(BeZero())
		})

		It("turns an empty delete answer into a body-less response", func() {
			transport.RegisterResponder(http.MethodDelete, baseURL+"/cars/1",
				httpmock.NewStringResponder(http.StatusNoContent, ""))

			rec := serve(http.MethodDelete, "/api/cars/1", nil, true)

			Expect(rec.Code).To(Equal(http.StatusNoContent))
			Expect(rec.Body.Len()).To(BeZero())
		})

		It("maps a non-JSON upstream body to 502", func() {
			transport.RegisterResponder(http.MethodGet, baseURL+"/cars",
				httpmock.NewStringResponder(http.StatusOK, "<html>oops</html>"))

			rec := serve(http.MethodGet, "/api/cars", nil, true)

			Expect(rec.Code).To(Equal(http.StatusBadGateway))
			Expect(decode(rec)["message"]).To(Equal("Received non-JSON response: <html>oops</html>"))
		})

		It("maps a connection failure to 502", func() {
			transport.RegisterResponder(http.MethodGet, baseURL+"/cars",
				httpmock.NewErrorResponder(errors.New("connection refused")))

			rec := serve(http.MethodGet, "/api/cars", nil, true)

			Expect(rec.Code).To(Equal(http.StatusBadGateway))
		})

		It("relays signup without a cookie and reports the upstream error", func() {
			transport.RegisterResponder(http.MethodPost, baseURL+"/register", func(req *http.Request) (*http.Response, error) {
				Expect(req.Header.Get("Authorization")).To(BeEmpty())
				return httpmock.NewStringResponse(http.StatusConflict, `{"message":"Signup failed","error":"Username taken"}`), nil
			})

			rec := serve(http.MethodPost, "/api/signup", strings.NewReader(
				`{"username":"alice","email":"a@example.com","password":"pw","confirmed_password":"pw"}`), false)

			Expect(rec.Code).To(Equal(http.StatusConflict))
			body := decode(rec)
			Expect(body["message"]).To(Equal("Signup failed"))
			Expect(body["error"]).To(Equal("Username taken"))
		})

		It("relays every call in a burst to the upstream", func() {
			transport.RegisterResponder(http.MethodGet, baseURL+"/cars",
				httpmock.NewStringResponder(http.StatusOK, `[]`))

			for i := 0; i < 30; i++ {
				Expect(serve(http.MethodGet, "/api/cars", nil, true).Code).To(Equal(http.StatusOK))
			}
			Expect(calls(http.MethodGet, baseURL+"/cars")).To(Equal(30))
		})

		It("rejects oversized bodies without calling the upstream", func() {
			big := `{"description":"` + strings.Repeat("x", 2<<20) + `"}`

			rec := serve(http.MethodPost, "/api/cars", strings.NewReader(big), true)

			Expect(rec.Code).To(Equal(http.StatusRequestEntityTooLarge))
			Expect(transport.GetTotalCallCount()).To(BeZero())
		})

		It("answers /api/me from the token claims", func() {
			rec := serve(http.MethodGet, "/api/me", nil, true)

			Expect(rec.Code).To(Equal(http.StatusOK))
			body := decode(rec)
			Expect(body["seller_id"]).To(Equal("seller-1"))
			Expect(body["username"]).To(Equal("alice"))
		})
	})

	Describe("pages", func() {
		It("shows the empty state", func() {
			transport.RegisterResponder(http.MethodGet, baseURL+"/cars",
				httpmock.NewStringResponder(http.StatusOK, `[]`))

			rec := serve(http.MethodGet, "/cars", nil, true)

			Expect(rec.Code).To(Equal(http.StatusOK))
			Expect(rec.Body.String()).To(ContainSubstring("No cars available."))
			Expect(rec.Body.String()).To(ContainSubstring("Add a New Car"))
		})

		It("redirects after creating a car", func() {
			transport.RegisterResponder(http.MethodPost, baseURL+"/cars",
				httpmock.NewStringResponder(http.StatusCreated, `{"car":{"id":"9"}}`))

			form := url.Values{
				"make":         {"Toyota"},
				"model":        {"Corolla"},
				"year":         {"2020"},
				"color":        {"Red"},
				"fuel_type":    {"Petrol"},
				"transmission": {"Manual"},
				"image":        {"https://img.example.com/1.png"},
			}
			req := httptest.NewRequest(http.MethodPost, "/cars", strings.NewReader(form.Encode()))
			req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
			req.AddCookie(&http.Cookie{Name: "access_token", Value: token})
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)

			Expect(rec.Code).To(Equal(http.StatusSeeOther))
			Expect(rec.Header().Get(echo.HeaderLocation)).To(Equal("/cars?notice=created"))
		})

		It("re-renders the create form with its values when the upstream refuses", func() {
			transport.RegisterResponder(http.MethodGet, baseURL+"/cars",
				httpmock.NewStringResponder(http.StatusOK, `[]`))
			transport.RegisterResponder(http.MethodPost, baseURL+"/cars",
				httpmock.NewStringResponder(http.StatusUnprocessableEntity, `{"message":"Invalid year"}`))

			rec := postForm("/cars", url.Values{
				"make":         {"Toyota"},
				"model":        {"Corolla"},
				"year":         {"1800"},
				"color":        {"Red"},
				"fuel_type":    {"Petrol"},
				"transmission": {"Manual"},
				"image":        {"https://img.example.com/1.png"},
			})

			Expect(rec.Code).To(Equal(http.StatusUnprocessableEntity))
			Expect(rec.Body.String()).To(ContainSubstring("Invalid year"))
			Expect(rec.Body.String()).To(ContainSubstring(`value="Corolla"`))
			Expect(rec.Body.String()).To(ContainSubstring(`value="1800"`))
		})

		Context("edit", func() {
			It("shows the lookup form without an id", func() {
				rec := serve(http.MethodGet, "/cars/edit", nil, true)

				Expect(rec.Code).To(Equal(http.StatusOK))
				Expect(rec.Body.String()).To(ContainSubstring("Enter Car ID"))
				Expect(transport.GetTotalCallCount()).To(BeZero())
			})

			It("reports an unknown car", func() {
				transport.RegisterResponder(http.MethodGet, baseURL+"/cars/42",
					httpmock.NewStringResponder(http.StatusNotFound, `{"message":"Not found"}`))

				rec := serve(http.MethodGet, "/cars/edit?id=42", nil, true)

				Expect(rec.Body.String()).To(ContainSubstring(handler.MsgCarNotFound))
				Expect(rec.Body.String()).To(ContainSubstring("Enter Car ID"))
			})

			It("shows the edit form for a found car", func() {
				transport.RegisterResponder(http.MethodGet, baseURL+"/cars/1",
					httpmock.NewStringResponder(http.StatusOK, `{"id":"1","make":"Toyota","model":"Corolla","year":2020,"color":"Red"}`))

				rec := serve(http.MethodGet, "/cars/edit?id=1", nil, true)

				Expect(rec.Code).To(Equal(http.StatusOK))
				Expect(rec.Body.String()).To(ContainSubstring(`action="/cars/1/edit"`))
				Expect(rec.Body.String()).To(ContainSubstring(`value="Toyota"`))
				Expect(rec.Body.String()).To(ContainSubstring("Update Car"))
			})

			It("merges the edit into the stored record and redirects", func() {
				transport.RegisterResponder(http.MethodGet, baseURL+"/cars/1",
					httpmock.NewStringResponder(http.StatusOK, `{"id":"1","make":"Toyota","model":"Corolla","year":2020,"color":"Red","price":9000}`))
				transport.RegisterResponder(http.MethodPut, baseURL+"/cars/1", func(req *http.Request) (*http.Response, error) {
					var body map[string]interface{}
					Expect(json.NewDecoder(req.Body).Decode(&body)).To(Succeed())
					Expect(body["color"]).To(Equal("Blue"))
					Expect(body["price"]).To(BeNumerically("==", 9000))
					return httpmock.NewStringResponse(http.StatusOK, `{"id":"1"}`), nil
				})

				rec := postForm("/cars/1/edit", url.Values{
					"make":  {"Toyota"},
					"model": {"Corolla"},
					"year":  {"2020"},
					"color": {"Blue"},
				})

				Expect(rec.Code).To(Equal(http.StatusSeeOther))
				Expect(rec.Header().Get(echo.HeaderLocation)).To(Equal("/cars?notice=updated"))
			})

			It("shows the reason when the update fails", func() {
				transport.RegisterResponder(http.MethodGet, baseURL+"/cars/1",
					httpmock.NewStringResponder(http.StatusOK, `{"id":"1","make":"Toyota","model":"Corolla","year":2020,"color":"Red"}`))
				transport.RegisterResponder(http.MethodPut, baseURL+"/cars/1",
					httpmock.NewStringResponder(http.StatusBadRequest, `{"message":"Year out of range"}`))

				rec := postForm("/cars/1/edit", url.Values{
					"make":  {"Toyota"},
					"model": {"Corolla"},
					"year":  {"3000"},
					"color": {"Red"},
				})

				Expect(rec.Code).To(Equal(http.StatusBadRequest))
				Expect(rec.Body.String()).To(ContainSubstring(handler.MsgUpdateFailed + " Year out of range"))
			})
		})

		It("only offers deletion to the seller", func() {
			transport.RegisterResponder(http.MethodGet, baseURL+"/cars/1",
				httpmock.NewStringResponder(http.StatusOK, `{"id":"1","make":"Toyota","model":"Corolla","year":2020,"seller_id":"seller-2"}`))

			rec := serve(http.MethodGet, "/cars/1/delete", nil, true)

			Expect(rec.Code).To(Equal(http.StatusForbidden))
			Expect(rec.Body.String()).To(ContainSubstring(handler.MsgNotAuthorized))
		})

		It("asks for confirmation before deleting an owned car", func() {
			transport.RegisterResponder(http.MethodGet, baseURL+"/cars/1",
				httpmock.NewStringResponder(http.StatusOK, `{"id":"1","make":"Toyota","model":"Corolla","year":2020,"seller_id":"seller-1"}`))

			rec := serve(http.MethodGet, "/cars/1/delete", nil, true)

			Expect(rec.Code).To(Equal(http.StatusOK))
			Expect(rec.Body.String()).To(ContainSubstring("Are you sure you want to delete Toyota Corolla (2020)?"))
		})
	})

	Describe("deleting from the pages", func() {
		It("deletes by the route id and redirects", func() {
			transport.RegisterResponder(http.MethodGet, baseURL+"/cars/abc",
				httpmock.NewStringResponder(http.StatusOK, `{"make":"Toyota","model":"Corolla","year":2020,"seller_id":"seller-1"}`))
			transport.RegisterResponder(http.MethodDelete, baseURL+"/cars/abc",
				httpmock.NewStringResponder(http.StatusOK, ""))

			rec := postForm("/cars/abc/delete", url.Values{})

			Expect(rec.Code).To(Equal(http.StatusSeeOther))
			Expect(rec.Header().Get(echo.HeaderLocation)).To(Equal("/cars?notice=deleted"))
			Expect(calls(http.MethodDelete, baseURL+"/cars/abc")).To(Equal(1))
			Expect(transport.GetTotalCallCount()).To(Equal(2))
		})

		It("re-checks ownership before deleting", func() {
			transport.RegisterResponder(http.MethodGet, baseURL+"/cars/1",
				httpmock.NewStringResponder(http.StatusOK, `{"id":"1","make":"Toyota","model":"Corolla","year":2020,"seller_id":"seller-2"}`))

			rec := postForm("/cars/1/delete", url.Values{})

			Expect(rec.Code).To(Equal(http.StatusForbidden))
			Expect(rec.Body.String()).To(ContainSubstring(handler.MsgNotAuthorized))
			Expect(transport.GetTotalCallCount()).To(Equal(1))
		})

		It("posts the confirmation back to the route id", func() {
			transport.RegisterResponder(http.MethodGet, baseURL+"/cars/abc",
				httpmock.NewStringResponder(http.StatusOK, `{"make":"Toyota","model":"Corolla","year":2020,"seller_id":"seller-1"}`))

			rec := serve(http.MethodGet, "/cars/abc/delete", nil, true)

			Expect(rec.Code).To(Equal(http.StatusOK))
			Expect(rec.Body.String()).To(ContainSubstring(`action="/cars/abc/delete"`))
		})
	})

	Describe("signup page", func() {
		signupForm := url.Values{
			"username":           {"alice"},
			"email":              {"a@example.com"},
			"password":           {"pw"},
			"confirmed_password": {"pw"},
		}

		It("shows the form", func() {
			rec := serve(http.MethodGet, "/signup", nil, false)

			Expect(rec.Code).To(Equal(http.StatusOK))
			Expect(rec.Body.String()).To(ContainSubstring("Create Account"))
		})

		It("confirms a successful signup", func() {
			transport.RegisterResponder(http.MethodPost, baseURL+"/register",
				httpmock.NewStringResponder(http.StatusCreated, `{"message":"ok"}`))

			rec := postForm("/signup", signupForm)

			Expect(rec.Code).To(Equal(http.StatusOK))
			Expect(rec.Body.String()).To(ContainSubstring(handler.MsgSignupSucceeded))
		})

		It("shows the upstream message and error on failure", func() {
			transport.RegisterResponder(http.MethodPost, baseURL+"/register",
				httpmock.NewStringResponder(http.StatusConflict, `{"message":"Signup failed","error":"Username taken"}`))

			rec := postForm("/signup", signupForm)

			Expect(rec.Code).To(Equal(http.StatusConflict))
			Expect(rec.Body.String()).To(ContainSubstring("Signup failed: Username taken"))
			Expect(rec.Body.String()).To(ContainSubstring(`value="alice"`))
		})
	})

	Describe("/status", func() {
		It("is healthy when the upstream answers", func() {
			transport.RegisterResponder(http.MethodGet, baseURL+"/",
				httpmock.NewStringResponder(http.StatusNotFound, "not here"))

			rec := serve(http.MethodGet, "/status", nil, false)

			Expect(rec.Code).To(Equal(http.StatusOK))
			Expect(decode(rec)["status"]).To(Equal("healthy"))
		})

		It("is unavailable when the upstream cannot be reached", func() {
			transport.RegisterResponder(http.MethodGet, baseURL+"/",
				httpmock.NewErrorResponder(errors.New("dial tcp: refused")))

			rec := serve(http.MethodGet, "/status", nil, false)

			Expect(rec.Code).To(Equal(http.StatusServiceUnavailable))
		})
	})
})
