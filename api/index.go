package handler

import (
	"net/http"
	"sync"

	"homestay/config"
	"homestay/di"
	"homestay/shared/logger"
)

var (
	mux  http.Handler
	once sync.Once
)

// Handler is the serverless entry point. The dependency graph is built on the first request
// and reused by warm invocations.
func Handler(w http.ResponseWriter, r *http.Request) {
	once.Do(func() {
		logger.InitLogger()

		logger.Configure(config.Get())

		mux = di.InitializeService().Handler()
	})

	r.RequestURI = r.URL.String()

	mux.ServeHTTP(w, r)
}
