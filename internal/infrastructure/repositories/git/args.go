package git

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/rios0rios0/gitshell/internal/domain/entities"
)

// cloneArgs builds the argument list for a clone invocation. The remote URL
// carries embedded credentials when the remote is HTTPS and a token was
// resolved; redactArgs strips them again before the list reaches logs or the
// event delegate.
func cloneArgs(remoteURL, targetPath string, options entities.CloneOptions, cred entities.Credential) []string {
	args := []string{"clone", "--progress"}

	if options.Branch != "" {
		args = append(args, "--branch", options.Branch)
	}
	if options.Depth > 0 {
		args = append(args, "--depth", strconv.Itoa(options.Depth))
	}
	if options.SingleBranch {
		args = append(args, "--single-branch")
	}
	if options.Mirror {
		args = append(args, "--mirror")
	}

	return append(args, authenticatedURL(remoteURL, cred), targetPath)
}

// fetchReferencesArgs builds the argument list for listing the references of
// a working copy. No sorting flags: the tool's native order is preserved.
func fetchReferencesArgs() []string {
	return []string{"for-each-ref", "--format=%(objectname) %(refname)"}
}

// authenticatedURL embeds the credential into an HTTPS remote URL. Other
// schemes (ssh, file) are returned unchanged; their auth is handled by the
// tool itself.
func authenticatedURL(remoteURL string, cred entities.Credential) string {
	if cred.IsZero() || !strings.HasPrefix(remoteURL, "https://") {
		return remoteURL
	}

	parsed, err := url.Parse(remoteURL)
	if err != nil {
		return remoteURL
	}

	if cred.Username != "" {
		parsed.User = url.UserPassword(cred.Username, cred.Token)
	} else {
		parsed.User = url.User(cred.Token)
	}
	return parsed.String()
}

// redactArgs returns a copy of args with embedded URL credentials removed.
func redactArgs(args []string) []string {
	out := make([]string, len(args))
	for i, arg := range args {
		out[i] = redactURL(arg)
	}
	return out
}

func redactURL(arg string) string {
	if !strings.HasPrefix(arg, "https://") || !strings.Contains(arg, "@") {
		return arg
	}
	parsed, err := url.Parse(arg)
	if err != nil || parsed.User == nil {
		return arg
	}
	parsed.User = nil
	return parsed.String()
}
