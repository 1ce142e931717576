package google

import (
	"context"
	"fmt"

	"golang.org/x/oauth2"
	googleoauth2 "google.golang.org/api/oauth2/v2"
	"google.golang.org/api/option"

	"github.com/Surya-Mathivanan/pathway-cli/internal/core/domain"
)

// UserinfoFetcher reads the profile from Google's userinfo endpoint.
type UserinfoFetcher struct {
	// Endpoint overrides the API root. Empty uses Google's.
	Endpoint string
}

// Fetch returns the profile of the token's owner.
func (f *UserinfoFetcher) Fetch(ctx context.Context, ts oauth2.TokenSource) (*domain.Identity, error) {
	opts := []option.ClientOption{option.WithTokenSource(ts)}
	if f.Endpoint != "" {
		opts = append(opts, option.WithEndpoint(f.Endpoint))
	}
	svc, err := googleoauth2.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create userinfo client: %w", err)
	}
	info, err := svc.Userinfo.Get().Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("get userinfo: %w", err)
	}
	return &domain.Identity{Subject: info.Id, Email: info.Email, Name: info.Name}, nil
}
