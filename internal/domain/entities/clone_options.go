package entities

// CloneOptions influences how a repository is cloned. The zero value means a
// plain full clone of the remote's default branch.
type CloneOptions struct {
	// Branch checks out the given branch instead of the remote default.
	Branch string

	// Depth creates a shallow clone truncated to the given number of
	// commits (0 = full history).
	Depth int

	// SingleBranch limits the clone to a single branch.
	SingleBranch bool

	// Mirror sets up a mirror of the source repository.
	Mirror bool
}
