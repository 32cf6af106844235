package api

import (
	"mailrelay/internal/relay"

	"github.com/go-logr/logr"
)

// Server is the HTTP surface in front of the relay pipeline. Requests
// arriving here are gateway requests: the body and query string are wrapped
// into the envelope the pipeline authenticates.
type Server struct {
	pipeline *relay.Pipeline
	logger   logr.Logger
}

func NewServer(pipeline *relay.Pipeline, logger logr.Logger) *Server {
	return &Server{
		pipeline: pipeline,
		logger:   logger,
	}
}
