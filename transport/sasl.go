package transport

import (
	"bytes"
	"fmt"
)

// PlainCredentials is the decoded form of a SASL PLAIN response, laid out as
// authzid \0 authcid \0 password (spec.md 4.3, step 2). The broker accepts
// any well-formed triple; SASL beyond PLAIN is out of scope (spec.md 1).
type PlainCredentials struct {
	AuthzID  string
	AuthcID  string
	Password string
}

func ParsePlainResponse(response []byte) (*PlainCredentials, error) {
	parts := bytes.SplitN(response, []byte{0}, 3)
	if len(parts) != 3 {
		return nil, fmt.Errorf("malformed SASL PLAIN response: expected authzid\\0authcid\\0password, got %d field(s)", len(parts))
	}
	return &PlainCredentials{
		AuthzID:  string(parts[0]),
		AuthcID:  string(parts[1]),
		Password: string(parts[2]),
	}, nil
}
