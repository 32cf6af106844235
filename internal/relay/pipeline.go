package relay

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"mailrelay/internal/auth"
	"mailrelay/internal/model"
	"mailrelay/internal/providers"

	"github.com/go-logr/logr"
	"golang.org/x/sync/errgroup"
)

// GatewayRequest is the envelope an HTTP gateway wraps around a provider
// payload. Presence of the body field is what distinguishes a gateway
// invocation from a direct one.
type GatewayRequest struct {
	Body                  string            `json:"body"`
	QueryStringParameters map[string]string `json:"queryStringParameters,omitempty"`
}

// Response is the invocation result returned to the hosting runtime.
type Response struct {
	StatusCode      int    `json:"statusCode"`
	Body            string `json:"body"`
	IsBase64Encoded bool   `json:"isBase64Encoded"`
}

func unauthorized() Response {
	return Response{StatusCode: 401, Body: "Unauthorized"}
}

func internalError() Response {
	return Response{StatusCode: 500, Body: "Internal Server Error"}
}

// Pipeline runs one invocation end to end: optional gateway auth, payload
// normalization, provider marshalling and concurrent dispatch.
type Pipeline struct {
	auth       *auth.Authenticator
	marshaller providers.Marshaller
	dispatcher *Dispatcher
	logger     logr.Logger
}

func NewPipeline(authenticator *auth.Authenticator, marshaller providers.Marshaller, dispatcher *Dispatcher, logger logr.Logger) *Pipeline {
	return &Pipeline{
		auth:       authenticator,
		marshaller: marshaller,
		dispatcher: dispatcher,
		logger:     logger,
	}
}

// Handle accepts either a raw provider payload (object or array) or a
// gateway envelope carrying one as a JSON-encoded string. Gateway requests
// are authenticated before the body is even parsed. Any dispatch failure in
// the batch, an unparseable body, or a fault escaping a stage degrades the
// whole invocation to a 500; successful pushes issued before the failure
// stand, and the caller's retry may deliver duplicates.
func (p *Pipeline) Handle(ctx context.Context, raw json.RawMessage) (resp Response) {
	defer func() {
		if r := recover(); r != nil {
			p.logger.Error(fmt.Errorf("%v", r), "pipeline fault")
			resp = internalError()
		}
	}()

	payload, authorized := p.unwrap(raw)
	if !authorized {
		return unauthorized()
	}

	batch, ok := splitBatch(payload)
	if !ok {
		return internalError()
	}

	events := make([]*model.Event, 0, len(batch))
	for _, item := range batch {
		if ev := p.marshaller.Marshall(item); ev != nil {
			events = append(events, ev)
		}
	}

	var g errgroup.Group
	for _, ev := range events {
		ev := ev
		g.Go(func() error {
			return p.dispatcher.Dispatch(ctx, ev)
		})
	}
	if err := g.Wait(); err != nil {
		return internalError()
	}

	return Response{
		StatusCode: 200,
		Body:       fmt.Sprintf("Processed %d events", len(events)),
	}
}

// unwrap detects the gateway envelope and applies the auth gate. The second
// return is false only when a gateway request fails authentication.
func (p *Pipeline) unwrap(raw json.RawMessage) ([]byte, bool) {
	var env struct {
		Body                  *string           `json:"body"`
		QueryStringParameters map[string]string `json:"queryStringParameters"`
	}
	// Arrays and non-envelope objects fall through to the direct path.
	if err := json.Unmarshal(raw, &env); err != nil || env.Body == nil {
		return raw, true
	}
	if env.QueryStringParameters == nil || !p.auth.Authenticate(env.QueryStringParameters["auth"]) {
		return nil, false
	}
	return []byte(*env.Body), true
}

// splitBatch normalizes the payload into a sequence of raw events: arrays
// pass through, a single object becomes a one-element batch. Unparseable
// payloads report failure rather than an empty batch.
func splitBatch(payload []byte) ([]json.RawMessage, bool) {
	trimmed := bytes.TrimSpace(payload)
	if len(trimmed) == 0 {
		return nil, false
	}
	if trimmed[0] == '[' {
		var batch []json.RawMessage
		if err := json.Unmarshal(trimmed, &batch); err != nil {
			return nil, false
		}
		return batch, true
	}
	if !json.Valid(trimmed) {
		return nil, false
	}
	return []json.RawMessage{json.RawMessage(trimmed)}, true
}
