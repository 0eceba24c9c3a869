package handler

import (
	"net/http"
	"parking/config"
	"parking/di"
	"parking/shared/logger"
	"sync"
)

var (
	app     *di.App
	appOnce sync.Once
)

// Handler serves the API as a single serverless function. The app is built on the first invocation and reused.
func Handler(w http.ResponseWriter, r *http.Request) {
	appOnce.Do(func() {
		cfg := config.Get()

		logger.InitLogger()
		logger.UseEnvironmentOutput(cfg)
		logger.SetLogLevel(cfg)

		app = di.InitializeService()
	})

	r.RequestURI = r.URL.String()
	app.HTTP.ServeHTTP(w, r)
}
