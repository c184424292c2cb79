package entities

import "strings"

// ReferenceKind classifies a reference by its namespace prefix.
type ReferenceKind string

const (
	ReferenceKindBranch ReferenceKind = "branch"
	ReferenceKindTag    ReferenceKind = "tag"
	ReferenceKindRemote ReferenceKind = "remote"
	ReferenceKindOther  ReferenceKind = "other"
)

// Reference is a named pointer into a repository's ref namespace, e.g.
// "refs/heads/main" pointing at a commit hash. It is produced by reference
// listing and never mutated afterwards.
type Reference struct {
	Name string // fully qualified, e.g. "refs/heads/main"
	Hash string // object ID the reference points at
}

// Kind returns the namespace classification of the reference.
func (r Reference) Kind() ReferenceKind {
	switch {
	case strings.HasPrefix(r.Name, "refs/heads/"):
		return ReferenceKindBranch
	case strings.HasPrefix(r.Name, "refs/tags/"):
		return ReferenceKindTag
	case strings.HasPrefix(r.Name, "refs/remotes/"):
		return ReferenceKindRemote
	default:
		return ReferenceKindOther
	}
}

// ShortName strips the namespace prefix, e.g. "refs/heads/main" -> "main".
func (r Reference) ShortName() string {
	for _, prefix := range []string{"refs/heads/", "refs/tags/", "refs/remotes/"} {
		if strings.HasPrefix(r.Name, prefix) {
			return strings.TrimPrefix(r.Name, prefix)
		}
	}
	return r.Name
}
