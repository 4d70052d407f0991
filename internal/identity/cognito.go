// Package identity resolves API callers from Cognito access tokens.
package identity

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"accommodations/internal/accommodation"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider"
)

type CognitoAPI interface {
	GetUser(ctx context.Context, params *cognitoidentityprovider.GetUserInput, optFns ...func(*cognitoidentityprovider.Options)) (*cognitoidentityprovider.GetUserOutput, error)
}

var ErrMissingToken = errors.New("missing access token")

// CognitoResolver asks the user pool who owns an access token.
type CognitoResolver struct {
	client CognitoAPI
}

var _ accommodation.IdentityResolver = (*CognitoResolver)(nil)

func NewCognitoResolver(client CognitoAPI) *CognitoResolver {
	return &CognitoResolver{client: client}
}

func (r *CognitoResolver) ResolveCaller(ctx context.Context, accessToken string) (accommodation.Identity, error) {
	accessToken = strings.TrimSpace(accessToken)
	if accessToken == "" {
		return accommodation.Identity{}, ErrMissingToken
	}

	out, err := r.client.GetUser(ctx, &cognitoidentityprovider.GetUserInput{
		AccessToken: aws.String(accessToken),
	})
	if err != nil {
		return accommodation.Identity{}, fmt.Errorf("cognito GetUser: %w", err)
	}

	username := strings.TrimSpace(aws.ToString(out.Username))
	if username == "" {
		return accommodation.Identity{}, errors.New("cognito GetUser: empty username")
	}
	return accommodation.Identity{Username: username}, nil
}

// BearerToken extracts the token from an Authorization header value.
// Both "Bearer <token>" and a bare token are accepted.
func BearerToken(header string) string {
	header = strings.TrimSpace(header)
	if len(header) > 7 && strings.EqualFold(header[:7], "bearer ") {
		return strings.TrimSpace(header[7:])
	}
	return header
}
