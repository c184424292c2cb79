package repositorydoubles

import (
	"context"
	"sync"

	"github.com/rios0rios0/gitshell/internal/domain/entities"
)

// StubCredentialsProvider implements repositories.CredentialsProvider with a
// fixed response, recording the remote URLs it was asked about.
type StubCredentialsProvider struct {
	mu sync.Mutex

	Cred entities.Credential
	Err  error

	requestedURLs []string
}

func (p *StubCredentialsProvider) Credential(_ context.Context, remoteURL string) (entities.Credential, error) {
	p.mu.Lock()
	p.requestedURLs = append(p.requestedURLs, remoteURL)
	p.mu.Unlock()
	return p.Cred, p.Err
}

// RequestedURLs returns the remote URLs credentials were requested for.
func (p *StubCredentialsProvider) RequestedURLs() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.requestedURLs...)
}
