package credentials

import (
	"context"
	"net/url"
	"os"
	"strings"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/gitshell/internal/domain/entities"
)

// EnvProvider resolves authentication tokens from environment variables
// based on the remote host. Unknown hosts fall back to GIT_TOKEN. A missing
// token yields an anonymous credential, never an error.
type EnvProvider struct{}

// NewEnvProvider creates an environment-based credentials provider.
func NewEnvProvider() *EnvProvider {
	return &EnvProvider{}
}

// Credential resolves a token for the remote's host.
func (p *EnvProvider) Credential(_ context.Context, remoteURL string) (entities.Credential, error) {
	host := remoteHost(remoteURL)

	var token string
	switch {
	case strings.Contains(host, "github.com"):
		token = firstEnv("GITHUB_TOKEN", "GH_TOKEN")
	case strings.Contains(host, "gitlab.com"):
		token = firstEnv("GITLAB_TOKEN", "GL_TOKEN")
	case strings.Contains(host, "dev.azure.com"):
		token = firstEnv("AZURE_DEVOPS_EXT_PAT", "SYSTEM_ACCESSTOKEN")
	default:
		token = os.Getenv("GIT_TOKEN")
	}

	if token == "" {
		logger.Debugf("no token found for host %q, proceeding anonymously", host)
		return entities.Credential{}, nil
	}
	return entities.Credential{Token: token}, nil
}

func firstEnv(names ...string) string {
	for _, name := range names {
		if val := os.Getenv(name); val != "" {
			return val
		}
	}
	return ""
}

// remoteHost extracts the host part of an HTTPS or SCP-style remote URL.
func remoteHost(remoteURL string) string {
	if strings.HasPrefix(remoteURL, "git@") {
		hostPath := strings.TrimPrefix(remoteURL, "git@")
		host, _, _ := strings.Cut(hostPath, ":")
		return host
	}
	parsed, err := url.Parse(remoteURL)
	if err != nil {
		return remoteURL
	}
	return parsed.Host
}
