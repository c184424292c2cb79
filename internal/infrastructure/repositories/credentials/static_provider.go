package credentials

import (
	"context"

	"github.com/rios0rios0/gitshell/internal/domain/entities"
)

// StaticProvider always returns the same credential, e.g. a token supplied
// on the command line.
type StaticProvider struct {
	credential entities.Credential
}

// NewStaticProvider creates a provider wrapping a fixed credential.
func NewStaticProvider(credential entities.Credential) *StaticProvider {
	return &StaticProvider{credential: credential}
}

// Credential returns the fixed credential regardless of the remote.
func (p *StaticProvider) Credential(_ context.Context, _ string) (entities.Credential, error) {
	return p.credential, nil
}
