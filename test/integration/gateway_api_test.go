package integration

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	ginhandler "farm-gateway/internal/adapter/gin/handler"
	ginrouter "farm-gateway/internal/adapter/gin/router"
	"farm-gateway/internal/adapter/upstream"
	"farm-gateway/internal/config"
	"farm-gateway/internal/usecase/predict"
	"farm-gateway/internal/usecase/user"
	"farm-gateway/internal/usecase/weather"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap/zaptest"
)

// identityStub is an in-memory stand-in for the external user store.
type identityStub struct {
	mu    sync.Mutex
	users map[string]string // email -> name
}

func (s *identityStub) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /users", func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		defer s.mu.Unlock()
		email := r.URL.Query().Get("email")
		name, ok := s.users[email]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		json.NewEncoder(w).Encode(map[string]string{"email": email, "name": name})
	})
	mux.HandleFunc("POST /users", func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		defer s.mu.Unlock()
		var body map[string]string
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		if _, exists := s.users[body["email"]]; exists {
			w.WriteHeader(http.StatusConflict)
			return
		}
		s.users[body["email"]] = body["name"]
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(body)
	})
	return mux
}

// GatewayAPISuite exercises the full request path: router, middleware,
// handlers, usecases and HTTP clients against stub backing services.
type GatewayAPISuite struct {
	suite.Suite

	router       *gin.Engine
	identity     *identityStub
	weatherCalls int
}

func (s *GatewayAPISuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	log := zaptest.NewLogger(s.T())

	s.identity = &identityStub{users: map[string]string{}}
	identitySrv := httptest.NewServer(s.identity.handler())
	s.T().Cleanup(identitySrv.Close)

	s.weatherCalls = 0
	weatherSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.weatherCalls++
		w.Write([]byte(`{"temp": 18, "condition": "cloudy"}`))
	}))
	s.T().Cleanup(weatherSrv.Close)

	inferenceSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"label": "apple_scab", "confidence": 0.91}`))
	}))
	s.T().Cleanup(inferenceSrv.Close)

	cfg := &config.Config{}
	cfg.App.Port = "0"
	cfg.CORS.Origins = []string{"http://localhost:5173"}
	cfg.Upstream.TimeoutSeconds = 2
	cfg.Predict.MaxImageBytes = 1 << 20

	timeout := 2 * time.Second

	identityClient := upstream.NewIdentityClient(identitySrv.URL, timeout, log)
	weatherClient := upstream.NewWeatherClient(weatherSrv.URL, "", timeout, log)
	inferenceClient := upstream.NewInferenceClient(inferenceSrv.URL, timeout, log)

	handlers := ginrouter.Handlers{
		User:    ginhandler.NewUserHandler(user.New(identityClient, log), log),
		Predict: ginhandler.NewPredictHandler(predict.New(inferenceClient, cfg.Predict.MaxImageBytes, log), cfg.Predict.MaxImageBytes, log),
		Weather: ginhandler.NewWeatherHandler(weather.New(weatherClient, nil, log), log),
	}

	s.router = ginrouter.SetupRouter(cfg, handlers, nil, log)
}

func (s *GatewayAPISuite) TestLiveness() {
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, httptest.NewRequest("GET", "/", nil))

	s.Equal(http.StatusOK, w.Code)
	s.NotEmpty(w.Body.String())
}

func (s *GatewayAPISuite) TestCreateUserTwiceYieldsConflict() {
	body := []byte(`{"email":"a@b.com","name":"A"}`)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/user", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	s.router.ServeHTTP(w, req)
	s.Equal(http.StatusCreated, w.Code)

	w = httptest.NewRecorder()
	req = httptest.NewRequest("POST", "/user", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	s.router.ServeHTTP(w, req)
	s.Equal(http.StatusConflict, w.Code)
	s.Contains(w.Body.String(), "conflict")
}

func (s *GatewayAPISuite) TestLookupAfterCreate() {
	body := []byte(`{"email":"grower@orchard.io","name":"Grower"}`)
	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/user", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	s.router.ServeHTTP(w, req)
	require.Equal(s.T(), http.StatusCreated, w.Code)

	w = httptest.NewRecorder()
	s.router.ServeHTTP(w, httptest.NewRequest("GET", "/user?email=grower@orchard.io", nil))
	s.Equal(http.StatusOK, w.Code)
	s.Contains(w.Body.String(), "Grower")

	w = httptest.NewRecorder()
	s.router.ServeHTTP(w, httptest.NewRequest("GET", "/user?email=unknown@orchard.io", nil))
	s.Equal(http.StatusNotFound, w.Code)
	s.Contains(w.Body.String(), "not_found")
}

func (s *GatewayAPISuite) TestWeatherScenario() {
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, httptest.NewRequest("GET", "/weather?lat=51.5&lon=-0.09", nil))

	s.Equal(http.StatusOK, w.Code)
	s.JSONEq(`{"temperature":18,"condition":"cloudy"}`, w.Body.String())
	s.Equal(1, s.weatherCalls)
}

func (s *GatewayAPISuite) TestWeatherOutOfRangeSkipsProvider() {
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, httptest.NewRequest("GET", "/weather?lat=200&lon=0", nil))

	s.Equal(http.StatusBadRequest, w.Code)
	s.Equal(0, s.weatherCalls)
}

func (s *GatewayAPISuite) TestPredictRoundTrip() {
	image := append([]byte{0xff, 0xd8, 0xff, 0xe0}, bytes.Repeat([]byte{0x01}, 64)...)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/predict", bytes.NewReader(image))
	req.Header.Set("Content-Type", "image/jpeg")
	s.router.ServeHTTP(w, req)

	s.Equal(http.StatusOK, w.Code)
	s.Contains(w.Body.String(), "apple_scab")
}

func (s *GatewayAPISuite) TestCORSEnforcement() {
	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/weather?lat=51.5&lon=-0.09", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	s.router.ServeHTTP(w, req)
	s.Equal(http.StatusForbidden, w.Code)
	s.Equal(0, s.weatherCalls)

	w = httptest.NewRecorder()
	req = httptest.NewRequest("GET", "/weather?lat=51.5&lon=-0.09", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	s.router.ServeHTTP(w, req)
	s.Equal(http.StatusOK, w.Code)
	assert.Equal(s.T(), "http://localhost:5173", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestGatewayAPISuite(t *testing.T) {
	suite.Run(t, new(GatewayAPISuite))
}
