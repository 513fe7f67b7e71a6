package retort

import "github.com/zoobzio/capitan"

// Signals for hook events.
const (
	RequestStarted   = capitan.Signal("retort.request.started")
	RequestCompleted = capitan.Signal("retort.request.completed")
	RequestFailed    = capitan.Signal("retort.request.failed")
	RequestPaced     = capitan.Signal("retort.request.paced")
	JobSubmitted     = capitan.Signal("retort.job.submitted")
	JobPolled        = capitan.Signal("retort.job.polled")
)

// Keys for hook event fields.
var (
	// Request identification.
	RequestIDKey = capitan.NewStringKey("retort.request.id")
	MethodKey    = capitan.NewStringKey("retort.request.method")
	PathKey      = capitan.NewStringKey("retort.request.path")

	// Job identification.
	FamilyKey    = capitan.NewStringKey("retort.job.family")
	JobIDKey     = capitan.NewStringKey("retort.job.id")
	JobStatusKey = capitan.NewStringKey("retort.job.status")
	ProjectKey   = capitan.NewStringKey("retort.project.id")

	// HTTP metadata.
	StatusCodeKey = capitan.NewIntKey("retort.http.status.code")
	DurationMsKey = capitan.NewIntKey("retort.duration.ms")

	// Pacing.
	WaitMsKey = capitan.NewIntKey("retort.pace.wait.ms")

	// Error information.
	ErrorKey     = capitan.NewStringKey("retort.error")
	ErrorKindKey = capitan.NewStringKey("retort.error.kind")
)
