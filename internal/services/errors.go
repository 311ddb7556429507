// Package services holds the application services that sit between the HTTP
// layer and the repository. This file centralizes service-level error values
// so they can be consistently returned by service methods and checked by
// callers with errors.Is; translation into HTTP status codes happens at the
// handler layer.
package services

import "errors"

// ErrAnalysisBusy is returned when an analysis is already in flight. The
// collaborator allows a single concurrent request; a second trigger is
// rejected, not queued.
var ErrAnalysisBusy = errors.New("analysis already in progress")
