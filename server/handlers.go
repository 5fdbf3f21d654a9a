package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/etnz/stacker"
	"github.com/etnz/stacker/quote"
	"github.com/etnz/stacker/renderer"
	"github.com/gin-gonic/gin"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

const mimeMarkdown = "text/markdown"

// fail aborts the request with a JSON error, and records err for the logs.
func fail(c *gin.Context, status int, msg string, err error) {
	if err != nil {
		c.Error(err)
	}
	c.AbortWithStatusJSON(status, gin.H{"error": msg})
}

// load reads the document of the :email path parameter.
func (s *Server) load(c *gin.Context) (string, stacker.Document, bool) {
	email := c.Param("email")
	if email == "" {
		fail(c, http.StatusBadRequest, "Missing email", nil)
		return "", stacker.Document{}, false
	}
	if !s.authorized(c, email) {
		return "", stacker.Document{}, false
	}
	doc, err := s.store.Load(c.Request.Context(), email)
	if err != nil {
		fail(c, http.StatusInternalServerError, "Failed to read stack", err)
		return "", stacker.Document{}, false
	}
	return email, doc, true
}

// fetchQuotes returns the quotes of the metals of doc. Metals that cannot be
// quoted are left out.
func (s *Server) fetchQuotes(c *gin.Context, doc stacker.Document) stacker.Quotes {
	metals := stacker.NewStack(doc.Stack...).Metals()
	quotes, err := quote.FetchAll(c.Request.Context(), s.quotes, metals)
	if err != nil {
		s.log.WithError(err).Warn("incomplete quotes")
	}
	return quotes
}

func (s *Server) getStack(c *gin.Context) {
	_, doc, ok := s.load(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, doc)
}

type postStackRequest struct {
	Email   string          `json:"email"`
	Payload json.RawMessage `json:"payload"`
}

func (s *Server) postStack(c *gin.Context) {
	var req postStackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	payload := bytes.TrimSpace(req.Payload)
	if req.Email == "" || len(payload) == 0 || bytes.Equal(payload, []byte("null")) {
		fail(c, http.StatusBadRequest, "Missing email or payload data", nil)
		return
	}
	if !s.authorized(c, req.Email) {
		return
	}
	var doc stacker.Document
	if err := json.Unmarshal(payload, &doc); err != nil {
		fail(c, http.StatusBadRequest, "Invalid payload", err)
		return
	}
	if err := s.store.Save(c.Request.Context(), req.Email, doc); err != nil {
		fail(c, http.StatusInternalServerError, "Failed to write stack", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (s *Server) getMetrics(c *gin.Context) {
	metal, err := stacker.ParseMetal(c.Query("metal"))
	if err != nil {
		fail(c, http.StatusBadRequest, err.Error(), nil)
		return
	}
	var spot stacker.Quote
	if v := c.Query("spot"); v != "" {
		price, err := strconv.ParseFloat(v, 64)
		if err != nil || price <= 0 {
			fail(c, http.StatusBadRequest, fmt.Sprintf("Invalid spot price %q", v), nil)
			return
		}
		spot = stacker.Quote{Price: price, Currency: stacker.DefaultCurrency}
	}

	_, doc, ok := s.load(c)
	if !ok {
		return
	}
	if spot.Price == 0 {
		spot, err = s.quotes.Quote(c.Request.Context(), metal)
		if err != nil {
			fail(c, http.StatusServiceUnavailable, fmt.Sprintf("No %s price available", metal), err)
			return
		}
	}
	c.JSON(http.StatusOK, stacker.Aggregate(stacker.HoldingsOf(doc.Stack, metal), spot.Spot()))
}

func (s *Server) getDistribution(c *gin.Context) {
	key, ok := stacker.KeyFuncOf(c.Query("by"))
	if !ok {
		fail(c, http.StatusBadRequest, fmt.Sprintf("Invalid grouping %q, want category or type", c.Query("by")), nil)
		return
	}
	_, doc, ok := s.load(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, stacker.Distribution(doc.Stack, key))
}

func (s *Server) getSummary(c *gin.Context) {
	key, ok := stacker.KeyFuncOf(c.Query("by"))
	if !ok {
		fail(c, http.StatusBadRequest, fmt.Sprintf("Invalid grouping %q, want category or type", c.Query("by")), nil)
		return
	}
	email, doc, ok := s.load(c)
	if !ok {
		return
	}
	sum := stacker.NewSummary(email, doc, s.fetchQuotes(c, doc), key, s.now())

	switch c.NegotiateFormat(mimeMarkdown, gin.MIMEHTML, gin.MIMEJSON) {
	case gin.MIMEJSON:
		c.JSON(http.StatusOK, sum)
	case gin.MIMEHTML:
		var buf bytes.Buffer
		buf.WriteString("<!DOCTYPE html>\n<html><head><meta charset=\"utf-8\"><title>Stack</title></head><body>\n")
		md := goldmark.New(goldmark.WithExtensions(extension.GFM))
		if err := md.Convert([]byte(renderer.SummaryMarkdown(sum)), &buf); err != nil {
			fail(c, http.StatusInternalServerError, "Failed to render summary", err)
			return
		}
		buf.WriteString("</body></html>\n")
		c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
	default:
		c.Data(http.StatusOK, mimeMarkdown+"; charset=utf-8", []byte(renderer.SummaryMarkdown(sum)))
	}
}

func (s *Server) getExport(c *gin.Context) {
	email, doc, ok := s.load(c)
	if !ok {
		return
	}
	e := stacker.NewExport(email, stacker.NewStack(doc.Stack...), s.fetchQuotes(c, doc), s.now())
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", e.Filename()))
	c.JSON(http.StatusOK, e)
}
