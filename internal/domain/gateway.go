package domain

import "context"

// GenerationRequest carries the inputs for one remote generation job.
type GenerationRequest struct {
	ImageURL string
	Prompt   string
	Model    string
	Duration int
}

// GenerationStatus is the provider's view of a submitted job. VideoURL is
// set only for completed jobs, Error only for failed ones.
type GenerationStatus struct {
	Status   JobStatus
	VideoURL string
	Error    string
}

// GenerationGateway is the boundary to the remote video-generation provider.
type GenerationGateway interface {
	// Submit starts an asynchronous generation job and returns the
	// provider-issued job id.
	Submit(ctx context.Context, req GenerationRequest) (string, error)
	// FetchStatus reports the current state of a previously submitted job.
	FetchStatus(ctx context.Context, jobID string) (*GenerationStatus, error)
}
