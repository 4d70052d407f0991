package main

import (
	"context"
	"log"
	"os"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/aws/aws-sdk-go-v2/service/ssm"

	"accommodations/internal/accommodation"
	appconfig "accommodations/internal/config"
	"accommodations/internal/db"
	"accommodations/internal/handlers"
	"accommodations/internal/identity"
	"accommodations/internal/logging"
	"accommodations/internal/media"
	"accommodations/internal/notify"
)

func main() {
	ctx := context.Background()

	cfg, err := appconfig.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	awsCfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		log.Fatalf("load aws config: %v", err)
	}

	if cfg.NeedsSSM() {
		if err := cfg.ResolveParameters(ctx, ssm.NewFromConfig(awsCfg)); err != nil {
			log.Fatalf("resolve parameters: %v", err)
		}
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	logger := logging.New(os.Stdout, cfg.AppEnv, cfg.LogLevel)

	// Clients are created once per cold start and reused by every invocation.
	h := handlers.NewDeleteAccommodationHandler(
		accommodation.Collaborators{
			Records:  db.NewAccommodationStore(db.NewDynamoClient(awsCfg), cfg.AccommodationTable),
			Identity: identity.NewCognitoResolver(cognitoidentityprovider.NewFromConfig(awsCfg)),
			Media:    media.NewS3Store(s3.NewFromConfig(awsCfg), cfg.MediaBucket),
		},
		notify.NewPublisher(sns.NewFromConfig(awsCfg), cfg.DeletedTopicARN),
		logger,
	)

	lambda.Start(h.Handle)
}
