package queue

import (
	"context"
	"fmt"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
)

type SQSConfig struct {
	AccessKey string
	SecretKey string
	Region    string
	// Endpoint overrides the service endpoint, for local SQS-compatible
	// stacks. Empty means the real service.
	Endpoint string
}

// SQSTransport pushes payloads to named SQS queues. Queue URLs are resolved
// on first use and cached for the life of the process; queue names never
// change after startup.
type SQSTransport struct {
	client *sqs.Client

	mu   sync.Mutex
	urls map[string]string
}

func NewSQS(ctx context.Context, cfg SQSConfig) (*SQSTransport, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	client := sqs.NewFromConfig(awsCfg, func(o *sqs.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	})
	return &SQSTransport{
		client: client,
		urls:   make(map[string]string),
	}, nil
}

func (t *SQSTransport) Push(ctx context.Context, queue string, payload []byte) error {
	url, err := t.queueURL(ctx, queue)
	if err != nil {
		return err
	}
	_, err = t.client.SendMessage(ctx, &sqs.SendMessageInput{
		QueueUrl:    aws.String(url),
		MessageBody: aws.String(string(payload)),
	})
	if err != nil {
		return fmt.Errorf("send message to %s: %w", queue, err)
	}
	return nil
}

func (t *SQSTransport) queueURL(ctx context.Context, queue string) (string, error) {
	t.mu.Lock()
	url, ok := t.urls[queue]
	t.mu.Unlock()
	if ok {
		return url, nil
	}

	out, err := t.client.GetQueueUrl(ctx, &sqs.GetQueueUrlInput{
		QueueName: aws.String(queue),
	})
	if err != nil {
		return "", fmt.Errorf("resolve queue url for %s: %w", queue, err)
	}
	url = aws.ToString(out.QueueUrl)

	t.mu.Lock()
	t.urls[queue] = url
	t.mu.Unlock()
	return url, nil
}
