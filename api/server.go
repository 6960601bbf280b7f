package api

import (
	"context"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mattn/go-isatty"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"flashcat.cloud/nfsmon/config"
)

type Server struct {
	engine *gin.Engine
	srv    *http.Server
}

func NewServer(conf *config.HTTP) *Server {
	if conf.RunMode != "" {
		gin.SetMode(conf.RunMode)
	}

	if strings.ToLower(conf.RunMode) == gin.ReleaseMode || !isatty.IsTerminal(os.Stdout.Fd()) {
		gin.DisableConsoleColor()
	}

	r := gin.New()
	r.Use(gin.Recovery())
	if conf.PrintAccess {
		r.Use(gin.Logger())
	}

	configRoutes(r)

	return &Server{
		engine: r,
		srv: &http.Server{
			Addr:         conf.Address,
			Handler:      r,
			ReadTimeout:  time.Duration(conf.ReadTimeout) * time.Second,
			WriteTimeout: time.Duration(conf.WriteTimeout) * time.Second,
			IdleTimeout:  time.Duration(conf.IdleTimeout) * time.Second,
		},
	}
}

func configRoutes(r *gin.Engine) {
	r.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})

	r.GET("/version", func(c *gin.Context) {
		c.String(http.StatusOK, config.Version)
	})

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

func (s *Server) Start() {
	log.Println("I! http server listening on:", s.srv.Addr)
	go func() {
		if err := s.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Println("E! http server stopped:", err)
		}
	}()
}

func (s *Server) Stop(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}
