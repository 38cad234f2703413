package handler

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"authd/internal/delivery/http/middleware"
	"authd/internal/delivery/http/response"
	httpvalidator "authd/internal/delivery/http/validator"
	domainerrors "authd/internal/domain/errors"
	"authd/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubAuthUsecase returns canned results so handler tests only exercise
// binding, validation and response shaping.
type stubAuthUsecase struct {
	output *usecase.AuthOutput
	err    error

	lastRegister *usecase.RegisterInput
	lastLogin    *usecase.LoginInput
	lastVerify   *usecase.VerifyTokenInput
}

func (s *stubAuthUsecase) Register(_ context.Context, input *usecase.RegisterInput) (*usecase.AuthOutput, error) {
	s.lastRegister = input

	return s.output, s.err
}

func (s *stubAuthUsecase) Login(_ context.Context, input *usecase.LoginInput) (*usecase.AuthOutput, error) {
	s.lastLogin = input

	return s.output, s.err
}

func (s *stubAuthUsecase) VerifyToken(_ context.Context, input *usecase.VerifyTokenInput) (*usecase.AuthOutput, error) {
	s.lastVerify = input

	return s.output, s.err
}

func newTestServer(uc usecase.AuthUsecase) *echo.Echo {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	e := echo.New()
	e.Validator = httpvalidator.New()
	e.HTTPErrorHandler = middleware.NewErrorMiddleware(logger).HandleHTTPError

	h := NewAuthHandler(uc, logger)
	auth := e.Group("/auth")
	auth.POST("/register", h.Register)
	auth.POST("/login", h.Login)
	auth.POST("/verify", h.VerifyToken)
	e.GET("/health", HealthCheck)

	return e
}

func doJSON(e *echo.Echo, method, path, body string, header map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	for k, v := range header {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	return rec
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) response.Response {
	t.Helper()

	var envelope response.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))

	return envelope
}

func sampleOutput() *usecase.AuthOutput {
	return &usecase.AuthOutput{
		User: usecase.UserView{
			ID:    uuid.New(),
			Name:  "Alice",
			Email: "alice@x.com",
		},
		Token: "signed.token.value",
	}
}

func TestAuthHandler_Register_Created(t *testing.T) {
	stub := &stubAuthUsecase{output: sampleOutput()}
	e := newTestServer(stub)

	rec := doJSON(e, http.MethodPost, "/auth/register",
		`{"name":"Alice","email":"alice@x.com","password":"pw123"}`, nil)

	assert.Equal(t, http.StatusCreated, rec.Code)

	envelope := decodeEnvelope(t, rec)
	assert.True(t, envelope.Success)
	assert.Nil(t, envelope.Error)

	require.NotNil(t, stub.lastRegister)
	assert.Equal(t, "alice@x.com", stub.lastRegister.Email)
}

func TestAuthHandler_Register_InvalidPayload(t *testing.T) {
	stub := &stubAuthUsecase{output: sampleOutput()}
	e := newTestServer(stub)

	cases := map[string]string{
		"malformed json": `{"name":`,
		"missing fields": `{"name":"Alice"}`,
		"bad email":      `{"name":"Alice","email":"not-an-email","password":"pw123"}`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			rec := doJSON(e, http.MethodPost, "/auth/register", body, nil)

			assert.Equal(t, http.StatusBadRequest, rec.Code)

			envelope := decodeEnvelope(t, rec)
			assert.False(t, envelope.Success)
			require.NotNil(t, envelope.Error)
			assert.Equal(t, "VALIDATION_FAILED", envelope.Error.Code)
		})
	}
	assert.Nil(t, stub.lastRegister)
}

func TestAuthHandler_Register_Conflict(t *testing.T) {
	stub := &stubAuthUsecase{err: domainerrors.ErrUserAlreadyExists.WrapMessage("user registration failed")}
	e := newTestServer(stub)

	rec := doJSON(e, http.MethodPost, "/auth/register",
		`{"name":"Bob","email":"alice@x.com","password":"pw456"}`, nil)

	assert.Equal(t, http.StatusConflict, rec.Code)

	envelope := decodeEnvelope(t, rec)
	assert.False(t, envelope.Success)
	require.NotNil(t, envelope.Error)
	assert.Equal(t, "ALREADY_EXISTS", envelope.Error.Code)
}

func TestAuthHandler_Login_OK(t *testing.T) {
	stub := &stubAuthUsecase{output: sampleOutput()}
	e := newTestServer(stub)

	rec := doJSON(e, http.MethodPost, "/auth/login",
		`{"email":"alice@x.com","password":"pw123"}`, nil)

	assert.Equal(t, http.StatusOK, rec.Code)

	envelope := decodeEnvelope(t, rec)
	assert.True(t, envelope.Success)

	// The token rides inside the data payload.
	data, err := json.Marshal(envelope.Data)
	require.NoError(t, err)
	assert.Contains(t, string(data), "signed.token.value")
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	stub := &stubAuthUsecase{err: domainerrors.ErrInvalidCredentials.WrapMessage("login failed: password mismatch")}
	e := newTestServer(stub)

	rec := doJSON(e, http.MethodPost, "/auth/login",
		`{"email":"alice@x.com","password":"wrong"}`, nil)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	envelope := decodeEnvelope(t, rec)
	require.NotNil(t, envelope.Error)
	assert.Equal(t, "INVALID_CREDENTIALS", envelope.Error.Code)

	// The wrap message stays server-side; the caller only sees the
	// generic credentials failure.
	assert.NotContains(t, rec.Body.String(), "password mismatch")
}

func TestAuthHandler_Verify_BearerHeader(t *testing.T) {
	stub := &stubAuthUsecase{output: sampleOutput()}
	e := newTestServer(stub)

	rec := doJSON(e, http.MethodPost, "/auth/verify", "", map[string]string{
		"Authorization": "Bearer some.jwt.token",
	})

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, stub.lastVerify)
	assert.Equal(t, "some.jwt.token", stub.lastVerify.Token)
}

func TestAuthHandler_Verify_BodyFallback(t *testing.T) {
	stub := &stubAuthUsecase{output: sampleOutput()}
	e := newTestServer(stub)

	rec := doJSON(e, http.MethodPost, "/auth/verify", `{"token":"some.jwt.token"}`, nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, stub.lastVerify)
	assert.Equal(t, "some.jwt.token", stub.lastVerify.Token)
}

func TestAuthHandler_Verify_MissingToken(t *testing.T) {
	stub := &stubAuthUsecase{output: sampleOutput()}
	e := newTestServer(stub)

	cases := map[string]map[string]string{
		"no header":        nil,
		"wrong scheme":     {"Authorization": "Basic dXNlcjpwdw=="},
		"bare bearer word": {"Authorization": "some.jwt.token"},
	}
	for name, header := range cases {
		t.Run(name, func(t *testing.T) {
			rec := doJSON(e, http.MethodPost, "/auth/verify", "", header)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)

			envelope := decodeEnvelope(t, rec)
			require.NotNil(t, envelope.Error)
			assert.Equal(t, "INVALID_TOKEN", envelope.Error.Code)
		})
	}
	assert.Nil(t, stub.lastVerify)
}

func TestAuthHandler_Verify_InvalidToken(t *testing.T) {
	stub := &stubAuthUsecase{err: domainerrors.ErrInvalidToken.WrapMessage("token verification failed")}
	e := newTestServer(stub)

	rec := doJSON(e, http.MethodPost, "/auth/verify", "", map[string]string{
		"Authorization": "Bearer expired.jwt.token",
	})

	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	envelope := decodeEnvelope(t, rec)
	require.NotNil(t, envelope.Error)
	assert.Equal(t, "INVALID_TOKEN", envelope.Error.Code)
}

func TestAuthHandler_UnexpectedErrorIsOpaque(t *testing.T) {
	stub := &stubAuthUsecase{err: assert.AnError}
	e := newTestServer(stub)

	rec := doJSON(e, http.MethodPost, "/auth/login",
		`{"email":"alice@x.com","password":"pw123"}`, nil)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	envelope := decodeEnvelope(t, rec)
	require.NotNil(t, envelope.Error)
	assert.Equal(t, "INTERNAL_ERROR", envelope.Error.Code)
	assert.NotContains(t, rec.Body.String(), assert.AnError.Error())
}

func TestHealthCheck(t *testing.T) {
	e := newTestServer(&stubAuthUsecase{})

	rec := doJSON(e, http.MethodGet, "/health", "", nil)

	assert.Equal(t, http.StatusOK, rec.Code)

	envelope := decodeEnvelope(t, rec)
	assert.True(t, envelope.Success)
}
