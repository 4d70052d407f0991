package handlers

import (
	"context"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
)

const serviceName = "accommodation-backend"

type HealthResponse struct {
	OK      bool   `json:"ok"`
	Service string `json:"service"`
}

func Health(ctx context.Context, req events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error) {
	return jsonResp(http.StatusOK, HealthResponse{
		OK:      true,
		Service: serviceName,
	})
}
