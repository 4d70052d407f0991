// Package config loads function settings from the environment, resolving
// "ssm:" references against Parameter Store.
package config

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/caarlos0/env/v11"
)

const ssmPrefix = "ssm:"

type Config struct {
	AccommodationTable string `env:"ACCOMMODATION_TABLE" envDefault:"Accommodation"`
	MediaBucket        string `env:"ACCOMMODATION_MEDIA_BUCKET" envDefault:"accommodation"`
	DeletedTopicARN    string `env:"ACCOMMODATION_DELETED_TOPIC_ARN"`
	LogLevel           string `env:"LOG_LEVEL" envDefault:"info"`
	AppEnv             string `env:"APP_ENV" envDefault:"production"`
}

type SSMAPI interface {
	GetParameter(ctx context.Context, params *ssm.GetParameterInput, optFns ...func(*ssm.Options)) (*ssm.GetParameterOutput, error)
}

// Load parses the process environment.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// ResolveParameters replaces every "ssm:<name>" value with the parameter's
// decrypted value. client may be nil when no value uses the prefix.
func (c *Config) ResolveParameters(ctx context.Context, client SSMAPI) error {
	fields := []*string{
		&c.AccommodationTable,
		&c.MediaBucket,
		&c.DeletedTopicARN,
	}
	for _, f := range fields {
		name, ok := strings.CutPrefix(strings.TrimSpace(*f), ssmPrefix)
		if !ok {
			continue
		}
		if client == nil {
			return fmt.Errorf("parameter %s referenced but no ssm client", name)
		}
		out, err := client.GetParameter(ctx, &ssm.GetParameterInput{
			Name:           aws.String(name),
			WithDecryption: aws.Bool(true),
		})
		if err != nil {
			return fmt.Errorf("ssm GetParameter %s: %w", name, err)
		}
		if out.Parameter == nil {
			return fmt.Errorf("ssm parameter %s has no value", name)
		}
		*f = strings.TrimSpace(aws.ToString(out.Parameter.Value))
	}
	return nil
}

func (c Config) NeedsSSM() bool {
	for _, v := range []string{c.AccommodationTable, c.MediaBucket, c.DeletedTopicARN} {
		if strings.HasPrefix(strings.TrimSpace(v), ssmPrefix) {
			return true
		}
	}
	return false
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.AccommodationTable) == "" {
		return fmt.Errorf("ACCOMMODATION_TABLE is not set")
	}
	if strings.TrimSpace(c.MediaBucket) == "" {
		return fmt.Errorf("ACCOMMODATION_MEDIA_BUCKET is not set")
	}
	return nil
}
