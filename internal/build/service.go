package build

import (
	"context"
	"time"
)

// Status of a finished build.
type Status string

// StatusSuccess is the only status a returned Result carries; failures are errors.
const StatusSuccess Status = "SUCCESS"

// SuccessMessage is the message of a successful build.
const SuccessMessage = "Site built successfully"

// Stage names used for logging and metrics.
const (
	StageResolve = "resolve"
	StageClean   = "clean"
	StageCopy    = "copy"
	StageDeploy  = "deploy"
)

// Builder is implemented by Service; the server and scheduler depend on it.
type Builder interface {
	Build(ctx context.Context, siteName string) (*Result, error)
}

// Result summarizes a build call.
type Result struct {
	SiteName    string `json:"siteName"`
	BuildPath   string `json:"buildPath"`
	Status      Status `json:"status"`
	Message     string `json:"message"`
	BuildTimeMs int64  `json:"buildTimeMs"`
	FileCount   int    `json:"fileCount"`
}

// Duration returns the build time as a time.Duration.
func (r *Result) Duration() time.Duration {
	return time.Duration(r.BuildTimeMs) * time.Millisecond
}
