package server

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lucasefe/erd/generator"
	"github.com/lucasefe/erd/parser"
	"github.com/lucasefe/erd/schema"
)

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) formats(c *gin.Context) {
	success(c, http.StatusOK, generator.Formats, "")
}

// render handles POST /v1/render/:format
func (s *Server) render(c *gin.Context) {
	format, err := generator.ParseFormat(c.Param("format"))
	if err != nil {
		fail(c, http.StatusBadRequest, "Unsupported format", err)
		return
	}

	m, ok := s.parseBody(c)
	if !ok {
		return
	}

	out, err := generator.Generate(m, format)
	if err != nil {
		fail(c, http.StatusInternalServerError, "Failed to render diagram", err)
		return
	}
	c.Data(http.StatusOK, format.ContentType(), out)
}

// model handles POST /v1/model
func (s *Server) model(c *gin.Context) {
	m, ok := s.parseBody(c)
	if !ok {
		return
	}
	success(c, http.StatusOK, m, "")
}

// parseBody reads and parses the request body. On failure it writes the
// error response and returns false.
func (s *Server) parseBody(c *gin.Context) (*schema.Model, bool) {
	body, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, s.maxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			fail(c, http.StatusRequestEntityTooLarge, fmt.Sprintf("Request body exceeds %d bytes", tooLarge.Limit))
			return nil, false
		}
		fail(c, http.StatusBadRequest, "Failed to read request body", err)
		return nil, false
	}

	src := parser.NormalizeNewlines(string(body))
	m, err := parser.ParseString(src, parser.WithErrorPolicy(s.errorPolicy))
	if err != nil {
		var diags parser.ErrorList
		if errors.As(err, &diags) {
			log().Debugf("rejected source with %d diagnostics", len(diags))
			fail(c, http.StatusUnprocessableEntity, "Invalid ER notation", diags...)
			return nil, false
		}
		fail(c, http.StatusUnprocessableEntity, "Invalid ER notation", err)
		return nil, false
	}
	return m, true
}
