package handler

import (
	"log"
	"net/http"

	"github.com/arnavshah/shift-lookup-go/internal/bootstrap"
	"github.com/arnavshah/shift-lookup-go/internal/config"
	"github.com/arnavshah/shift-lookup-go/internal/logging"
	"github.com/arnavshah/shift-lookup-go/pkg/handlers"
	"github.com/gin-gonic/gin"
)

var r *gin.Engine

func init() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("could not load config: %v", err)
	}
	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		log.Fatalf("could not create logger: %v", err)
	}

	gin.SetMode(gin.ReleaseMode)
	h, err := bootstrap.NewHandler(cfg, logger)
	if err != nil {
		log.Fatalf("could not load dataset: %v", err)
	}
	r = handlers.NewRouter(h)
}

// Handler is the entry point for Vercel Go Runtime
func Handler(w http.ResponseWriter, r_req *http.Request) {
	r.ServeHTTP(w, r_req)
}
