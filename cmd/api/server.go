package main

import (
	"net/http"
	"time"
)

func (app *application) serve() error {
	server := &http.Server{
		Addr:         app.Config.GetServerAddr(),
		Handler:      app.routes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		// answer submission can hold a 30s model call
		WriteTimeout: 45 * time.Second,
	}

	app.Logger.Sugar().Infow("starting server", "addr", server.Addr)

	return server.ListenAndServe()
}
