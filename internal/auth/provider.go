package auth

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/api/idtoken"
	"google.golang.org/api/option"
)

// Identity is a signed-in user as reported by the identity provider.
type Identity struct {
	Subject string `json:"subject"`
	Email   string `json:"email"`
	Name    string `json:"name,omitempty"`
}

// Provider is the external identity provider.
type Provider interface {
	// SignIn exchanges a provider credential for an identity.
	SignIn(ctx context.Context, credential string) (Identity, error)
	// SignOut ends the identity's provider session.
	SignOut(ctx context.Context, id Identity) error
}

var (
	ErrInvalidCredential = errors.New("invalid credential")
	ErrUnverifiedEmail   = errors.New("email address is not verified")
)

// GoogleProvider accepts Google Identity Services popup credentials (ID
// tokens) issued for ClientID.
type GoogleProvider struct {
	ClientID  string
	validator *idtoken.Validator
}

func NewGoogleProvider(ctx context.Context, clientID string) (*GoogleProvider, error) {
	v, err := idtoken.NewValidator(ctx, option.WithoutAuthentication())
	if err != nil {
		return nil, fmt.Errorf("create id token validator: %w", err)
	}
	return &GoogleProvider{ClientID: clientID, validator: v}, nil
}

func (p *GoogleProvider) SignIn(ctx context.Context, credential string) (Identity, error) {
	if credential == "" {
		return Identity{}, ErrInvalidCredential
	}
	payload, err := p.validator.Validate(ctx, credential, p.ClientID)
	if err != nil {
		return Identity{}, fmt.Errorf("%w: %v", ErrInvalidCredential, err)
	}

	email, _ := payload.Claims["email"].(string)
	if email == "" {
		return Identity{}, fmt.Errorf("%w: token has no email", ErrInvalidCredential)
	}
	if verified, _ := payload.Claims["email_verified"].(bool); !verified {
		return Identity{}, ErrUnverifiedEmail
	}
	name, _ := payload.Claims["name"].(string)

	return Identity{Subject: payload.Subject, Email: email, Name: name}, nil
}

// SignOut is a no-op: ID tokens are single use here and no provider session
// is held server side. The client drops its Google session on a 403.
func (p *GoogleProvider) SignOut(ctx context.Context, id Identity) error {
	return nil
}
