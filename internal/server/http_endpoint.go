package server

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"

	"github.com/bokysan/basecodec/internal/util/enc"
)

// HttpEndpoint mounts the codec API under a path prefix, optionally restricted to a subset of the
// registered encodings.
type HttpEndpoint struct {
	Endpoint          string   `json:"endpoint"`
	Encodings         []string `json:"encodings"`
	EnableCompression bool     `json:"enableCompression"`
}

func (ep *HttpEndpoint) String() string {
	if len(ep.Encodings) == 0 {
		return fmt.Sprintf("%s:*", ep.path())
	}
	return fmt.Sprintf("%s:%s", ep.path(), ep.Encodings)
}

func (ep *HttpEndpoint) path() string {
	p := strings.TrimRight(ep.Endpoint, "/")
	if p != "" && !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return p
}

// Filter returns the encodings this endpoint serves. An empty list serves all of them.
func (ep *HttpEndpoint) Filter() ([]enc.Encoding, error) {
	if len(ep.Encodings) == 0 {
		return enc.All(), nil
	}

	res := make([]enc.Encoding, 0, len(ep.Encodings))
	for _, name := range ep.Encodings {
		e, ok := enc.Lookup(name)
		if !ok {
			available := make([]string, 0)
			for _, a := range enc.All() {
				available = append(available, a.Name())
			}
			return nil, errors.Errorf("Could not find encoding with name: '%s' among: %v", name, available)
		}
		res = append(res, e)
	}
	return res, nil
}

// ------ // ------ // ------ // ------ // ------ // ------ // ------ //

type HttpEndpointList []HttpEndpoint

func (epl HttpEndpointList) String() string {
	s := ""
	for _, ep := range epl {
		if s != "" {
			s = s + ","
		}
		s = s + ep.String()
	}

	return s
}
