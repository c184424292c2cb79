package repositories

import (
	"context"

	"github.com/rios0rios0/gitshell/internal/domain/entities"
)

// CredentialsProvider supplies authentication material for remote
// operations. It is consulted once per operation during setup; the
// repository never caches or validates what it returns.
type CredentialsProvider interface {
	Credential(ctx context.Context, remoteURL string) (entities.Credential, error)
}
