// Package dashboard defines the post-purchase home registry: a policy
// overview followed by a self-service menu that can hand off into the
// servicing flows.
package dashboard

import (
	"coverbot/journey"
)

const Module journey.Module = "dashboard"

// Step IDs
const (
	StepOverview journey.StepID = "dash_overview"
	StepMenu     journey.StepID = "dash_menu"
	StepRenew    journey.StepID = "dash_renew"
	StepDownload journey.StepID = "dash_download"
	StepHandoff  journey.StepID = "dash_handoff"
	StepExit     journey.StepID = "dash_exit"
)

// Answer keys
const (
	KeyRenewed = "renewed"
)

// NewRegistry builds the dashboard registry.
func NewRegistry() *journey.Registry {
	return journey.NewRegistry(Module, StepOverview, steps()...)
}
