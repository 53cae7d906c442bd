package serve

import (
	"net/http"
	"os"
	"os/signal"
	"reflect"
	"sync"
	"syscall"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/bokysan/basecodec/internal/logging"
	"github.com/bokysan/basecodec/internal/server"
)

type Command struct {
	Servers server.Servers `yaml:"servers"  short:"s" long:"server"  env:"SERVER" env-delim:" " description:"Listening server: an address such as 'http://127.0.0.1:8080' or a JSON server definition. May be repeated."`
	Address string         `yaml:"address"  short:"a" long:"address" env:"ADDRESS"               description:"Address to listen on when no server is defined" default:"127.0.0.1:8080"`
	MaxBody int64          `yaml:"max-body"           long:"max-body" env:"MAX_BODY"             description:"Maximum request body size in bytes for servers defined by --address" default:"10485760"`
	// WsCompression enables permessage-deflate on the websocket endpoints of servers defined by --address.
	WsCompression bool `yaml:"ws-compression" long:"ws-compression" env:"WS_COMPRESSION" description:"Enable websocket compression"`
}

func NewCommand() *Command {
	return &Command{
		Servers: make(server.Servers, 0),
	}
}

// servers returns the configured servers or a single server listening on Address.
func (s *Command) servers() (server.Servers, error) {
	if len(s.Servers) > 0 {
		return s.Servers, nil
	}

	var res server.Servers
	if err := res.UnmarshalFlag(s.Address); err != nil {
		return nil, err
	}
	if srv, ok := res[0].(*server.HttpServer); ok {
		srv.MaxBody = s.MaxBody
		srv.Endpoints = server.HttpEndpointList{{Endpoint: "/", EnableCompression: s.WsCompression}}
	}
	return res, nil
}

func (s *Command) Startup(interrupted <-chan os.Signal) error {
	servers, err := s.servers()
	if err != nil {
		return err
	}
	s.Servers = servers

	var errs error
	m := &sync.Mutex{}
	wg := &sync.WaitGroup{}
	wg.Add(len(s.Servers))

	for _, srv := range s.Servers {
		go func(srv server.Server) {
			defer wg.Done()
			select {
			case <-interrupted:
			default:
				if err := srv.Startup(); err != nil && err != http.ErrServerClosed {
					m.Lock()
					errs = multierror.Append(errs, errors.Wrapf(err, "Could not start %v", srv))
					m.Unlock()
				}
			}
		}(srv)
	}
	wg.Wait()

	return errs
}

func (s *Command) Shutdown() error {
	var errs error

	log.Infof("Graceful server shutdown...")
	for _, srv := range s.Servers {
		srvType := reflect.TypeOf(reflect.Indirect(reflect.ValueOf(srv)).Interface())
		log.Debugf("[Server] Shutting down %v: %v", srvType, srv.String())
		if err := srv.Shutdown(); err != nil {
			errs = multierror.Append(errs, errors.Wrapf(err, "Could not shutdown %v: %v", srvType, srv))
		}
	}

	return errs
}

func (s *Command) Execute(args []string) error {
	if err := logging.SetupLogging(); err != nil {
		return err
	}

	interrupted := make(chan os.Signal, 1)
	signal.Notify(interrupted, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(interrupted)

	if err := s.Startup(interrupted); err != nil {
		return multierror.Append(err, s.Shutdown())
	}

	<-interrupted
	return s.Shutdown()
}
