package graph

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	schema, _ := newTestSchema(t)
	r := gin.New()
	r.POST("/graphql", NewHandler(schema).Serve)
	return r
}

func postGraphQL(r *gin.Engine, body []byte) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/graphql", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

type envelope struct {
	Data   json.RawMessage `json:"data"`
	Errors []struct {
		Message    string                 `json:"message"`
		Extensions map[string]interface{} `json:"extensions"`
	} `json:"errors"`
}

func TestHandler_Query(t *testing.T) {
	r := newTestRouter(t)

	body, _ := json.Marshal(Request{Query: `{ hello }`})
	w := postGraphQL(r, body)
	require.Equal(t, http.StatusOK, w.Code)

	var resp envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Empty(t, resp.Errors)
	assert.JSONEq(t, `{"hello":"Hi!"}`, string(resp.Data))
}

func TestHandler_MutationWithVariables(t *testing.T) {
	r := newTestRouter(t)

	body, _ := json.Marshal(Request{
		Query:         createWithNewMutation,
		OperationName: "createBookWithNewAuthor",
		Variables: map[string]interface{}{
			"title": "Clean Code", "firstName": "Robert", "lastName": "Martin",
		},
	})
	w := postGraphQL(r, body)
	require.Equal(t, http.StatusOK, w.Code)

	var resp envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Empty(t, resp.Errors)

	w = postGraphQL(r, []byte(`{"query": "{ allBooks { title author { lastName } } }"}`))
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.JSONEq(t, `{"allBooks":[{"title":"Clean Code","author":{"lastName":"Martin"}}]}`, string(resp.Data))
}

func TestHandler_ResolverErrorKeepsStatus200(t *testing.T) {
	r := newTestRouter(t)

	body, _ := json.Marshal(Request{
		Query:     createWithExistingMutation,
		Variables: map[string]interface{}{"title": "X", "firstName": "No", "lastName": "One"},
	})
	w := postGraphQL(r, body)
	require.Equal(t, http.StatusOK, w.Code)

	var resp envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Errors, 1)
	assert.Equal(t, "AUTHOR_NOT_FOUND", resp.Errors[0].Extensions["code"])
}

func TestHandler_BadRequest(t *testing.T) {
	r := newTestRouter(t)

	tests := []struct {
		name string
		body string
	}{
		{"not json", `query { hello }`},
		{"missing query", `{"variables": {}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := postGraphQL(r, []byte(tt.body))
			assert.Equal(t, http.StatusBadRequest, w.Code)

			var resp envelope
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.NotEmpty(t, resp.Errors)
		})
	}
}
