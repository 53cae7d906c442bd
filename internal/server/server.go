package server

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/pkg/errors"

	"github.com/bokysan/basecodec/internal/util/addr"
)

type Servers []Server

// Server is one listener of the codec service.
type Server interface {
	fmt.Stringer

	Startup() error
	Shutdown() error
}

// UnmarshalFlag accepts either a plain address (`http://127.0.0.1:8080`) or a JSON list of server
// definitions. Repeating the flag adds servers.
func (se *Servers) UnmarshalFlag(value string) error {
	value = strings.TrimSpace(value)
	if strings.HasPrefix(value, "[") || strings.HasPrefix(value, "{") {
		if strings.HasPrefix(value, "{") {
			value = "[" + value + "]"
		}
		var res Servers
		if err := res.UnmarshalJSON([]byte(value)); err != nil {
			return err
		}
		*se = append(*se, res...)
		return nil
	}

	server, err := unmarshalServer(map[string]interface{}{
		"address": value,
	})
	if err != nil {
		return err
	}
	*se = append(*se, server)
	return nil
}

func (se *Servers) UnmarshalYAML(unmarshal func(interface{}) error) error {
	stuff := make([]interface{}, 0)
	if err := unmarshal(&stuff); err != nil {
		return errors.WithStack(err)
	}
	return se.unmarshalList(stuff)
}

func (se *Servers) UnmarshalJSON(b []byte) error {
	stuff := make([]interface{}, 0)
	if err := json.Unmarshal(b, &stuff); err != nil {
		return errors.WithStack(err)
	}
	return se.unmarshalList(stuff)
}

func (se *Servers) unmarshalList(stuff []interface{}) error {
	res := make(Servers, 0, len(stuff))
	for _, s := range stuff {
		server, err := unmarshalServer(s)
		if err != nil {
			return errors.WithStack(err)
		}
		res = append(res, server)
	}

	*se = res
	return nil
}

func unmarshalServer(s interface{}) (Server, error) {
	stuff, ok := stringKeys(s)
	if !ok {
		return nil, errors.Errorf("Invalid type. Expected a map, got: %+v", s)
	}

	val, ok := stuff["address"]
	if !ok {
		return nil, errors.Errorf("Missing server address!")
	}
	a, ok := val.(string)
	if !ok {
		return nil, errors.Errorf("'address' is not a string: %+v", val)
	}
	address, err := addr.ParseAddress(a)
	if err != nil {
		return nil, errors.Wrapf(err, "Failed parsing address '%v'", a)
	}

	var server Server
	switch address.Scheme {
	case "http", "https", "ws", "wss", "http+tls", "ws+tls":
		server = NewHttpServer()
	default:
		return nil, errors.Errorf("Unknown network type: %s", address.Scheme)
	}

	data, err := json.Marshal(stuff)
	if err != nil {
		return nil, errors.Errorf("Failed marshalling data: %v", s)
	}

	if err = json.Unmarshal(data, server); err != nil {
		return nil, errors.Wrapf(err, "Failed unmarshalling data: %v", string(data))
	}

	return server, nil
}

// stringKeys normalizes the maps produced by the YAML decoder, which may have non-string keys.
func stringKeys(s interface{}) (map[string]interface{}, bool) {
	switch m := s.(type) {
	case map[string]interface{}:
		for k, v := range m {
			m[k] = normalize(v)
		}
		return m, true
	case map[interface{}]interface{}:
		res := make(map[string]interface{}, len(m))
		for k, v := range m {
			res[fmt.Sprintf("%v", k)] = normalize(v)
		}
		return res, true
	}
	return nil, false
}

func normalize(v interface{}) interface{} {
	switch t := v.(type) {
	case []interface{}:
		for i := range t {
			t[i] = normalize(t[i])
		}
		return t
	default:
		if m, ok := stringKeys(v); ok {
			return m
		}
		return v
	}
}
