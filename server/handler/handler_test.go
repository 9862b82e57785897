package handler_test

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/plateful/plateful/auth"
	"github.com/plateful/plateful/provider"
	"github.com/plateful/plateful/server"
	"github.com/plateful/plateful/server/handler"
	"github.com/plateful/plateful/utils"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// stubMeal mirrors TheMealDB's flat meal shape, positional ingredient fields
// included.
const stubMeal = `{
	"idMeal": "52772",
	"strMeal": "Teriyaki Chicken Casserole",
	"strCategory": "Chicken",
	"strArea": "Japanese",
	"strMealThumb": "https://example.com/teriyaki.jpg",
	"strInstructions": "Preheat oven.",
	"strTags": "Meat,Casserole",
	"strIngredient1": "soy sauce",
	"strMeasure1": "3/4 cup",
	"strIngredient2": "water",
	"strMeasure2": "1/2 cup",
	"strIngredient3": "",
	"strMeasure3": ""
}`

type testEnv struct {
	router    *gin.Engine
	db        *gorm.DB
	tokens    *auth.TokenManager
	uploadDir string
}

// defaultMealDBStub serves the stub meal for id 52772 and an empty result for
// everything else.
func defaultMealDBStub(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("i") == "52772" {
		w.Write([]byte(`{"meals":[` + stubMeal + `]}`))
		return
	}
	w.Write([]byte(`{"meals":null}`))
}

func newTestEnv(t *testing.T, mealdbStub, spoonStub http.HandlerFunc) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	if mealdbStub == nil {
		mealdbStub = defaultMealDBStub
	}
	if spoonStub == nil {
		spoonStub = func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"results":[]}`))
		}
	}
	mealdbServer := httptest.NewServer(mealdbStub)
	t.Cleanup(mealdbServer.Close)
	spoonServer := httptest.NewServer(spoonStub)
	t.Cleanup(spoonServer.Close)

	db := utils.CreateTempDB(t)
	tokens := auth.NewTokenManager("test-secret")
	uploadDir := t.TempDir()

	h := handler.New(
		db,
		tokens,
		auth.NewPasswordHasher(),
		provider.NewSpoonacular(spoonServer.Client(), spoonServer.URL, "test-key"),
		provider.NewMealDB(mealdbServer.Client(), mealdbServer.URL),
		uploadDir,
	)

	return &testEnv{
		router:    server.NewRouter(h, tokens, "http://localhost:3000"),
		db:        db,
		tokens:    tokens,
		uploadDir: uploadDir,
	}
}

// do performs a request against the in-process router. A non-empty token is
// attached as a bearer credential.
func (e *testEnv) do(t *testing.T, method, path, token string, body io.Reader, contentType string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func (e *testEnv) doJSON(t *testing.T, method, path, token string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(payload)
	require.NoError(t, err)
	return e.do(t, method, path, token, bytes.NewReader(raw), "application/json")
}

// signup registers a user and returns its token and id.
func (e *testEnv) signup(t *testing.T, email, password, displayName string) (token, userID string) {
	t.Helper()
	w := e.doJSON(t, http.MethodPost, "/api/auth/signup", "", gin.H{
		"email":       email,
		"password":    password,
		"displayName": displayName,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		Token string `json:"token"`
		User  struct {
			Id string `json:"id"`
		} `json:"user"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	require.NotEmpty(t, resp.User.Id)
	return resp.Token, resp.User.Id
}

func decodeJSON(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), out))
}

// multipartBody builds a multipart form with the given fields and an optional
// file part.
func multipartBody(t *testing.T, fields map[string]string, fileField, fileName string, fileContent []byte) (io.Reader, string) {
	t.Helper()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for key, value := range fields {
		require.NoError(t, writer.WriteField(key, value))
	}
	if fileField != "" {
		part, err := writer.CreateFormFile(fileField, fileName)
		require.NoError(t, err)
		_, err = part.Write(fileContent)
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())
	return &buf, writer.FormDataContentType()
}
