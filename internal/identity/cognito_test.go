package identity

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockCognito struct {
	GetUserFunc func(context.Context, *cognitoidentityprovider.GetUserInput, ...func(*cognitoidentityprovider.Options)) (*cognitoidentityprovider.GetUserOutput, error)
	calls       int
}

func (m *mockCognito) GetUser(ctx context.Context, params *cognitoidentityprovider.GetUserInput, optFns ...func(*cognitoidentityprovider.Options)) (*cognitoidentityprovider.GetUserOutput, error) {
	m.calls++
	if m.GetUserFunc != nil {
		return m.GetUserFunc(ctx, params, optFns...)
	}
	return &cognitoidentityprovider.GetUserOutput{}, nil
}

func TestCognitoResolver_ResolveCaller(t *testing.T) {
	client := &mockCognito{
		GetUserFunc: func(ctx context.Context, in *cognitoidentityprovider.GetUserInput, _ ...func(*cognitoidentityprovider.Options)) (*cognitoidentityprovider.GetUserOutput, error) {
			assert.Equal(t, "token-1", aws.ToString(in.AccessToken))
			return &cognitoidentityprovider.GetUserOutput{Username: aws.String("1")}, nil
		},
	}

	caller, err := NewCognitoResolver(client).ResolveCaller(context.Background(), " token-1 ")
	require.NoError(t, err)
	assert.Equal(t, "1", caller.Username)
}

func TestCognitoResolver_Errors(t *testing.T) {
	tests := []struct {
		name        string
		token       string
		getUser     func(context.Context, *cognitoidentityprovider.GetUserInput, ...func(*cognitoidentityprovider.Options)) (*cognitoidentityprovider.GetUserOutput, error)
		wantCalls   int
		errContains string
	}{
		{
			name:        "empty token",
			token:       "  ",
			wantCalls:   0,
			errContains: "missing access token",
		},
		{
			name:  "revoked token",
			token: "t",
			getUser: func(context.Context, *cognitoidentityprovider.GetUserInput, ...func(*cognitoidentityprovider.Options)) (*cognitoidentityprovider.GetUserOutput, error) {
				return nil, &types.NotAuthorizedException{Message: aws.String("Access Token has been revoked")}
			},
			wantCalls:   1,
			errContains: "Access Token has been revoked",
		},
		{
			name:  "no username",
			token: "t",
			getUser: func(context.Context, *cognitoidentityprovider.GetUserInput, ...func(*cognitoidentityprovider.Options)) (*cognitoidentityprovider.GetUserOutput, error) {
				return &cognitoidentityprovider.GetUserOutput{}, nil
			},
			wantCalls:   1,
			errContains: "empty username",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &mockCognito{GetUserFunc: tt.getUser}
			_, err := NewCognitoResolver(client).ResolveCaller(context.Background(), tt.token)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errContains)
			assert.Equal(t, tt.wantCalls, client.calls)
		})
	}
}

func TestCognitoResolver_WrapsSDKError(t *testing.T) {
	client := &mockCognito{
		GetUserFunc: func(context.Context, *cognitoidentityprovider.GetUserInput, ...func(*cognitoidentityprovider.Options)) (*cognitoidentityprovider.GetUserOutput, error) {
			return nil, &types.NotAuthorizedException{Message: aws.String("Invalid Access Token")}
		},
	}

	_, err := NewCognitoResolver(client).ResolveCaller(context.Background(), "t")
	var nae *types.NotAuthorizedException
	assert.True(t, errors.As(err, &nae))
}

func TestBearerToken(t *testing.T) {
	assert.Equal(t, "abc", BearerToken("Bearer abc"))
	assert.Equal(t, "abc", BearerToken("bearer  abc "))
	assert.Equal(t, "abc", BearerToken("abc"))
	assert.Equal(t, "", BearerToken(""))
	assert.Equal(t, "Bearer", BearerToken("Bearer"))
}
