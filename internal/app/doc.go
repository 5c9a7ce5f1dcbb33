// Package app wires the application together: it configures the logger,
// loads and substitutes the dashboard definition, builds the engine with
// its default capabilities, and drives execution in aggregate or streaming
// mode, optionally publishing results to a WebSocket hub.
package app
