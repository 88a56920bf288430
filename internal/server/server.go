// Package server exposes a read-mostly HTTP API over the prompt store
// for editor integrations and scripts.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"promptctl/internal/engine"
	"promptctl/internal/prompt"
	"promptctl/internal/store"
	"promptctl/internal/system"
	appver "promptctl/internal/version"
)

type Server struct {
	Addr  string
	Store *store.Store
	Files engine.FileAccess
}

// Start serves until ctx is canceled.
func (s *Server) Start(ctx context.Context) error {
	srv := &http.Server{Addr: s.Addr, Handler: s.router(), ReadHeaderTimeout: 5 * time.Second}
	go func() {
		<-ctx.Done()
		_ = srv.Shutdown(context.Background())
	}()
	system.Logger.Info("api server listening", "addr", s.Addr)
	return srv.ListenAndServe()
}

func (s *Server) router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())

	api := r.Group("/api")
	api.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	api.GET("/version", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"version": appver.AppVersion})
	})
	api.GET("/schema", s.schema)
	api.GET("/prompts", s.listPrompts)
	api.POST("/prompts", s.createPrompt)
	api.GET("/prompts/:name", s.getPrompt)
	api.GET("/prompts/:name/resolved", s.resolvedPrompt)
	return r
}

func (s *Server) schema(c *gin.Context) {
	data, err := prompt.SchemaJSON()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Data(http.StatusOK, "application/json", data)
}

func (s *Server) listPrompts(c *gin.Context) {
	var prompts []prompt.Prompt
	switch {
	case c.Query("q") != "":
		prompts = s.Store.Search(c.Query("q"))
	case c.Query("tag") != "":
		prompts = s.Store.FilterByTag(c.Query("tag"))
	default:
		prompts = s.Store.List()
	}
	if prompts == nil {
		prompts = []prompt.Prompt{}
	}
	c.JSON(http.StatusOK, prompts)
}

func (s *Server) createPrompt(c *gin.Context) {
	var req struct {
		Content string `json:"content"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	p, err := s.Store.Create(req.Content)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, p)
}

func (s *Server) getPrompt(c *gin.Context) {
	p, ok := s.Store.Get(c.Param("name"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "prompt not found"})
		return
	}
	c.JSON(http.StatusOK, p)
}

// resolvedPrompt expands references and file inclusions. Command tokens
// are deliberately left literal: shell execution never happens on
// behalf of an HTTP caller.
func (s *Server) resolvedPrompt(c *gin.Context) {
	name := c.Param("name")
	p, ok := s.Store.Get(name)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "prompt not found"})
		return
	}
	resolved, diags := engine.Resolve(p.Content, s.Store, s.Files, engine.NewContext(name))
	c.JSON(http.StatusOK, gin.H{
		"name":     name,
		"resolved": resolved,
		"warnings": len(diags),
	})
}
