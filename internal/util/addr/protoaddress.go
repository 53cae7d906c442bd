package addr

import (
	"strings"

	"github.com/pkg/errors"
)

// ProtoAddress is a listening address split into its scheme and host part, e.g. `http://127.0.0.1:8080`.
type ProtoAddress struct {
	Scheme string
	Host   string
}

// String will combine the scheme with the host in format <scheme>://<host>
func (p ProtoAddress) String() string {
	return p.Scheme + "://" + p.Host
}

// Secure reports whether the address asks for TLS.
func (p ProtoAddress) Secure() bool {
	return p.Scheme == "https" || strings.HasSuffix(p.Scheme, "+tls")
}

// ParseAddress does the reverse of ProtoAddress.String -- it will take a string and convert it
// an address. An address without a scheme is taken as plain `http`.
func ParseAddress(a string) (ProtoAddress, error) {
	a = strings.TrimSpace(a)
	if a == "" {
		return ProtoAddress{}, errors.Errorf("Empty address")
	}

	parts := strings.SplitN(a, "://", 2)
	if len(parts) == 1 {
		return ProtoAddress{Scheme: "http", Host: parts[0]}, nil
	}
	if parts[0] == "" || parts[1] == "" {
		return ProtoAddress{}, errors.Errorf("Invalid address format: %v", a)
	}

	return ProtoAddress{
		Scheme: strings.ToLower(parts[0]), Host: parts[1],
	}, nil
}

func (p *ProtoAddress) UnmarshalText(text []byte) error {
	res, err := ParseAddress(string(text))
	if err != nil {
		return err
	}
	*p = res
	return nil
}

func (p ProtoAddress) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}
