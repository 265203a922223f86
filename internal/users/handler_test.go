package users

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func newUsersRouter(t *testing.T) (*gin.Engine, *Service) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	svc := newTestService(t)
	handler := NewHandler(svc)

	router := gin.New()
	api := router.Group("/api/v1")
	handler.RegisterPublicRoutes(api)
	private := api.Group("")
	private.Use(func(c *gin.Context) {
		c.Set("userId", c.GetHeader("X-Test-User"))
		c.Next()
	})
	handler.RegisterRoutes(private)
	return router, svc
}

func postJSON(router *gin.Engine, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func TestRegisterAndLoginFlow(t *testing.T) {
	router, _ := newUsersRouter(t)

	resp := postJSON(router, "/api/v1/auth/register", `{"username":"alice","password":"s3cret!"}`)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", resp.Code, resp.Body.String())
	}
	if strings.Contains(resp.Body.String(), "password") {
		t.Fatalf("register response leaked password material: %s", resp.Body.String())
	}

	resp = postJSON(router, "/api/v1/auth/login", `{"username":"alice","password":"s3cret!"}`)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
	var session Session
	if err := json.Unmarshal(resp.Body.Bytes(), &session); err != nil {
		t.Fatalf("decode session: %v", err)
	}
	if session.Token == "" || session.User.Username != "alice" {
		t.Fatalf("unexpected session %+v", session)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/me", nil)
	req.Header.Set("X-Test-User", session.User.ID)
	meResp := httptest.NewRecorder()
	router.ServeHTTP(meResp, req)
	if meResp.Code != http.StatusOK {
		t.Fatalf("expected 200 from /me, got %d", meResp.Code)
	}
}

func TestRegisterErrors(t *testing.T) {
	router, _ := newUsersRouter(t)
	postJSON(router, "/api/v1/auth/register", `{"username":"alice","password":"s3cret!"}`)

	cases := []struct {
		name string
		body string
		want int
		code string
	}{
		{name: "malformed", body: `{`, want: http.StatusBadRequest, code: "validation_error"},
		{name: "short username", body: `{"username":"al","password":"s3cret!"}`, want: http.StatusBadRequest, code: "validation_error"},
		{name: "weak password", body: `{"username":"bob","password":"1"}`, want: http.StatusBadRequest, code: "validation_error"},
		{name: "taken", body: `{"username":"Alice","password":"s3cret!"}`, want: http.StatusConflict, code: "username_taken"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp := postJSON(router, "/api/v1/auth/register", tc.body)
			if resp.Code != tc.want {
				t.Fatalf("expected %d, got %d", tc.want, resp.Code)
			}
			if !strings.Contains(resp.Body.String(), `"code":"`+tc.code+`"`) {
				t.Fatalf("expected code %s, got %s", tc.code, resp.Body.String())
			}
		})
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	router, _ := newUsersRouter(t)
	postJSON(router, "/api/v1/auth/register", `{"username":"alice","password":"s3cret!"}`)

	resp := postJSON(router, "/api/v1/auth/login", `{"username":"alice","password":"wrong-pass"}`)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.Code)
	}
}

func TestMeUnknownUser(t *testing.T) {
	router, _ := newUsersRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/me", nil)
	req.Header.Set("X-Test-User", "ghost")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.Code)
	}
}
