package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/vk/dashgrid/internal/ctxlog"
	"github.com/vk/dashgrid/internal/ws"
)

// Run executes the dashboard. In aggregate mode the full ordered result
// list is printed once; in streaming mode (or when serving) each panel is
// printed, and published to the hub, as it is produced.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	var hub *ws.Hub
	if a.config.ServePort > 0 {
		hub = ws.New(a.logger)
		srv := &http.Server{
			Addr:    fmt.Sprintf(":%d", a.config.ServePort),
			Handler: hub,
		}
		go func() {
			a.logger.Info("WebSocket result stream listening.", "port", a.config.ServePort)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				a.logger.Error("WebSocket server failed.", "error", err)
			}
		}()
		defer func() {
			hub.Close()
			srv.Shutdown(context.Background())
		}()
	}

	enc := json.NewEncoder(a.outW)
	a.logger.Info("🚀 Starting dashboard execution.",
		"panels", len(a.dashboard.Panels),
		"concurrency", a.config.Concurrency,
		"streaming", a.config.Streaming || hub != nil,
	)

	if a.config.Streaming || hub != nil {
		stream := a.engine.Stream(a.dashboard)
		for stream.Next(ctx) {
			res := stream.Panel()
			if hub != nil {
				hub.Publish(res)
			}
			if err := enc.Encode(res); err != nil {
				return fmt.Errorf("writing panel result: %w", err)
			}
		}
		if err := stream.Err(); err != nil {
			return fmt.Errorf("execution failed: %w", err)
		}
	} else {
		results, err := a.engine.Execute(ctx, a.dashboard)
		if err != nil {
			return fmt.Errorf("execution failed: %w", err)
		}
		if err := enc.Encode(results); err != nil {
			return fmt.Errorf("writing results: %w", err)
		}
	}

	a.logger.Info("🏁 Execution finished.")
	return nil
}
