package entities

// Credential is the authentication material handed to the external tool for
// a remote operation. An empty credential means anonymous access.
type Credential struct {
	Username string
	Token    string
}

// IsZero reports whether no authentication material is present.
func (c Credential) IsZero() bool {
	return c.Username == "" && c.Token == ""
}
