// Package sl holds small slog attribute helpers shared across the project.
package sl

import "log/slog"

// Err wraps an error as a standard "error" attribute.
func Err(err error) slog.Attr {
	return slog.String("error", err.Error())
}

// Module tags log records with the emitting component.
func Module(name string) slog.Attr {
	return slog.String("module", name)
}

// Secret logs only whether a sensitive value is set, never its content.
func Secret(key, value string) slog.Attr {
	if value == "" {
		return slog.String(key, "<empty>")
	}
	return slog.String(key, "<set>")
}
