package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lucasefe/erd/parser"
)

func init() {
	gin.SetMode(gin.TestMode)
}

const validSource = "ENTITIES:\r\nPerson(__id__, name)\r\nRELATIONSHIPS:\r\nPerson(1),Car,Owns\r\n"

func do(t *testing.T, s *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "text/plain")
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) APIResponse {
	t.Helper()
	var resp APIResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestRender(t *testing.T) {
	s := New()

	tests := []struct {
		format      string
		contentType string
		prefix      string
	}{
		{"dot", "text/vnd.graphviz; charset=utf-8", "digraph {"},
		{"mermaid", "text/vnd.mermaid; charset=utf-8", "flowchart LR"},
		{"erd", "text/plain; charset=utf-8", "ENTITIES:\nPerson(__id__, name)\n"},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			rec := do(t, s, http.MethodPost, "/v1/render/"+tt.format, validSource)
			require.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, tt.contentType, rec.Header().Get("Content-Type"))
			assert.True(t, strings.HasPrefix(rec.Body.String(), tt.prefix), rec.Body.String())
		})
	}
}

func TestRenderUnknownFormat(t *testing.T) {
	rec := do(t, New(), http.MethodPost, "/v1/render/png", validSource)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	resp := decode(t, rec)
	assert.Equal(t, "error", resp.Status)
	assert.Len(t, resp.Errors, 1)
}

func TestRenderDiagnostics(t *testing.T) {
	src := "ENTITIES:\nA(x y)\nB(p q)\nRELATIONSHIPS:\n"

	rec := do(t, New(), http.MethodPost, "/v1/render/dot", src)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	resp := decode(t, rec)
	assert.Equal(t, "error", resp.Status)
	assert.Equal(t, "Invalid ER notation", resp.Message)
	require.Greater(t, len(resp.Errors), 1)
	assert.Equal(t, "[Line 2] Expect token ), got IDENT.", resp.Errors[0])
}

func TestRenderFirstErrorPolicy(t *testing.T) {
	src := "ENTITIES:\nA(x y)\nB(p q)\nRELATIONSHIPS:\n"

	rec := do(t, New(WithErrorPolicy(parser.FirstError)), http.MethodPost, "/v1/render/dot", src)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, []string{"[Line 2] Expect token ), got IDENT."}, decode(t, rec).Errors)
}

func TestRenderLexicalErrors(t *testing.T) {
	rec := do(t, New(), http.MethodPost, "/v1/render/mermaid", "ENTITIES:\nA(#)\nRELATIONSHIPS:\n$\n")
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, []string{
		"[Line 2] Invalid character: #.",
		"[Line 4] Invalid character: $.",
	}, decode(t, rec).Errors)
}

func TestRenderBodyTooLarge(t *testing.T) {
	rec := do(t, New(WithMaxBodyBytes(16)), http.MethodPost, "/v1/render/dot", validSource)
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}

func TestModel(t *testing.T) {
	rec := do(t, New(), http.MethodPost, "/v1/model", validSource)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Status string `json:"status"`
		Data   struct {
			Entities []struct {
				Name string `json:"name"`
			} `json:"entities"`
			Relationships []struct {
				Name         string `json:"name"`
				Participants []struct {
					Entity      string `json:"entity"`
					Cardinality string `json:"cardinality"`
				} `json:"participants"`
			} `json:"relationships"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	assert.Equal(t, "success", resp.Status)
	require.Len(t, resp.Data.Entities, 1)
	assert.Equal(t, "Person", resp.Data.Entities[0].Name)
	require.Len(t, resp.Data.Relationships, 1)
	assert.Equal(t, "Owns", resp.Data.Relationships[0].Name)
	assert.Equal(t, "1", resp.Data.Relationships[0].Participants[0].Cardinality)
	assert.Equal(t, "*", resp.Data.Relationships[0].Participants[1].Cardinality)
}

func TestHealthAndFormats(t *testing.T) {
	s := New()

	rec := do(t, s, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())

	rec = do(t, s, http.MethodGet, "/v1/formats", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"success","data":["dot","mermaid","erd"]}`, rec.Body.String())
}

func TestCORS(t *testing.T) {
	s := New(WithAllowedOrigins("https://editor.example.com"))

	req := httptest.NewRequest(http.MethodOptions, "/v1/render/dot", nil)
	req.Header.Set("Origin", "https://editor.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	assert.Equal(t, "https://editor.example.com", rec.Header().Get("Access-Control-Allow-Origin"))
}
