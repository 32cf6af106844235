package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"mailrelay/internal/api"
	"mailrelay/internal/auth"
	"mailrelay/internal/config"
	"mailrelay/internal/observability"
	"mailrelay/internal/providers"
	"mailrelay/internal/queue"
	"mailrelay/internal/relay"

	"github.com/go-logr/logr"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Runtime struct {
	Handler http.Handler
	Routes  relay.Routes
	Cleanup func()
}

// NewRuntime wires config into the full pipeline: authenticator, provider
// marshaller, queue transport, dispatcher and HTTP surface. Any failure here
// is a startup failure; the process must not serve requests.
func NewRuntime(ctx context.Context, cfg config.Config, logger logr.Logger) (*Runtime, error) {
	authenticator, err := auth.New(cfg.AuthSecret)
	if err != nil {
		return nil, err
	}

	marshaller, err := providers.ForName(cfg.Provider)
	if err != nil {
		return nil, err
	}

	transport, cleanup, err := buildTransport(ctx, cfg)
	if err != nil {
		return nil, err
	}

	routes := relay.NewRoutes(cfg.Queue.Suffix)
	dispatcher := relay.NewDispatcher(routes, transport, logger.WithName("dispatcher"), observability.NewDispatchMetrics())
	pipeline := relay.NewPipeline(authenticator, marshaller, dispatcher, logger.WithName("pipeline"))
	server := api.NewServer(pipeline, logger.WithName("api"))

	metrics := observability.NewHTTPMetrics()
	rootMux := http.NewServeMux()
	rootMux.Handle("/metrics", promhttp.Handler())
	rootMux.Handle("/", metrics.Wrap(server.Routes()))

	return &Runtime{
		Handler: rootMux,
		Routes:  routes,
		Cleanup: cleanup,
	}, nil
}

func buildTransport(ctx context.Context, cfg config.Config) (queue.Transport, func(), error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Queue.Backend)) {
	case "sqs":
		transport, err := queue.NewSQS(ctx, queue.SQSConfig{
			AccessKey: cfg.Queue.SQS.AccessKey,
			SecretKey: cfg.Queue.SQS.SecretKey,
			Region:    cfg.Queue.SQS.Region,
			Endpoint:  cfg.Queue.SQS.Endpoint,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("sqs transport: %w", err)
		}
		return transport, func() {}, nil
	case "redis":
		transport, err := queue.NewRedis(ctx, queue.RedisConfig{
			Addr:     cfg.Queue.Redis.Addr,
			Password: cfg.Queue.Redis.Password,
			DB:       cfg.Queue.Redis.DB,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("redis transport: %w", err)
		}
		return transport, func() { _ = transport.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("unsupported queue backend: %s", cfg.Queue.Backend)
	}
}
