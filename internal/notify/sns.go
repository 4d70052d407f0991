// Package notify announces completed accommodation deletions on SNS.
package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	snstypes "github.com/aws/aws-sdk-go-v2/service/sns/types"
)

const eventAccommodationDeleted = "AccommodationDeleted"

type SNSAPI interface {
	Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

// Deletion is the message body published after an accommodation is removed.
type Deletion struct {
	ID        string   `json:"id"`
	OwnerID   string   `json:"ownerId"`
	Images    []string `json:"images"`
	DeletedAt string   `json:"deletedAt"`
}

// Publisher sends deletion events to a topic. With no topic configured it
// does nothing.
type Publisher struct {
	client   SNSAPI
	topicARN string
	now      func() time.Time
}

func NewPublisher(client SNSAPI, topicARN string) *Publisher {
	return &Publisher{
		client:   client,
		topicARN: strings.TrimSpace(topicARN),
		now:      time.Now,
	}
}

func (p *Publisher) Enabled() bool {
	return p != nil && p.client != nil && p.topicARN != ""
}

// AccommodationDeleted publishes d and returns the SNS message id.
func (p *Publisher) AccommodationDeleted(ctx context.Context, d Deletion) (string, error) {
	if !p.Enabled() {
		return "", nil
	}
	if d.DeletedAt == "" {
		d.DeletedAt = p.now().UTC().Format(time.RFC3339)
	}
	if d.Images == nil {
		d.Images = []string{}
	}

	b, err := json.Marshal(d)
	if err != nil {
		return "", err
	}

	out, err := p.client.Publish(ctx, &sns.PublishInput{
		TopicArn: aws.String(p.topicARN),
		Subject:  aws.String(fmt.Sprintf("Accommodation %s deleted", d.ID)),
		Message:  aws.String(string(b)),
		MessageAttributes: map[string]snstypes.MessageAttributeValue{
			"event_type": {
				DataType:    aws.String("String"),
				StringValue: aws.String(eventAccommodationDeleted),
			},
		},
	})
	if err != nil {
		return "", fmt.Errorf("sns Publish: %w", err)
	}
	return aws.ToString(out.MessageId), nil
}
