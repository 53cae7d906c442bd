package server

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/bokysan/basecodec/internal/util/addr"
	"github.com/bokysan/basecodec/internal/util/cert"
	"github.com/bokysan/basecodec/internal/version"
)

// DefaultMaxBody limits the request body of the REST endpoints.
const DefaultMaxBody = 10 << 20

type HttpServer struct {
	cert.ServerConfig

	Address   addr.ProtoAddress `json:"address"`
	Endpoints HttpEndpointList  `json:"endpoints"`
	MaxBody   int64             `json:"maxBody"`

	secure   bool
	server   *http.Server
	listener net.Listener
	m        sync.Mutex
}

func NewHttpServer() *HttpServer {
	return &HttpServer{
		MaxBody: DefaultMaxBody,
	}
}

func (ws *HttpServer) String() string {
	return ws.Address.String()
}

// Addr returns the address the server is listening on, or nil before Startup.
func (ws *HttpServer) Addr() net.Addr {
	ws.m.Lock()
	defer ws.m.Unlock()
	if ws.listener == nil {
		return nil
	}
	return ws.listener.Addr()
}

// NewRouter builds the request router of the codec service. Every endpoint is mounted under its
// own prefix with its own set of encodings.
func NewRouter(address *net.TCPAddr, endpoints HttpEndpointList, maxBody int64) (http.Handler, error) {
	var errs error

	router := chi.NewRouter()
	router.Use(
		middleware.RequestID, // Set Request Id on all requests
		middleware.RealIP,    // Extract actual IP if running behind reverse proxy
		GetRequestLogger(address),
		ServerHeader(version.UserAgent()),
		middleware.RedirectSlashes, // Redirect slashes to no slash URLs
		middleware.Recoverer,       // Recover from panics without crashing the server
	)

	if len(endpoints) == 0 {
		endpoints = HttpEndpointList{{Endpoint: "/"}}
	}

	for i := range endpoints {
		endpoint := &endpoints[i]
		encodings, err := endpoint.Filter()
		if err != nil {
			errs = multierror.Append(errs, errors.WithStack(err))
			continue
		}

		h := newCodecHandler(encodings, maxBody, endpoint.EnableCompression)
		if p := endpoint.path(); p == "" {
			h.routes(router)
		} else {
			router.Route(p, h.routes)
		}
	}

	if errs != nil {
		return nil, errs
	}
	return router, nil
}

// Startup starts listening and serves requests in the background.
func (ws *HttpServer) Startup() error {
	address, err := addr.ResolveHostAddress(ws.Address.Host)
	if err != nil {
		return errors.WithStack(err)
	}

	if log.IsLevelEnabled(log.DebugLevel) {
		log.Debugf("Endpoints of %v: %s", ws, spew.Sdump(ws.Endpoints))
	}

	router, err := NewRouter(address, ws.Endpoints, ws.MaxBody)
	if err != nil {
		return err
	}

	server := &http.Server{
		Addr:    ws.Address.Host,
		Handler: router,
	}

	ws.secure = ws.Address.Secure() || ws.Address.Scheme == "wss"
	if ws.secure {
		if server.TLSConfig, err = ws.ServerConfig.GetTlsConfig(); err != nil {
			return errors.Wrapf(err, "Could not configure TLS")
		}
	}

	ln, err := net.Listen("tcp", server.Addr)
	if err != nil {
		return errors.Wrapf(err, "Could not listen on %v", server.Addr)
	}

	ws.m.Lock()
	ws.server = server
	ws.listener = ln
	ws.m.Unlock()

	go func() {
		var err error
		if ws.secure {
			log.Infof("Starting HTTPS server at %v", ln.Addr())
			err = server.ServeTLS(ln, "", "")
		} else {
			log.Infof("Starting HTTP server at %v", ln.Addr())
			err = server.Serve(ln)
		}
		if err != http.ErrServerClosed {
			err = errors.WithStack(err)
			log.WithError(err).Errorf("Could not start the server %v", err)
		}
	}()

	return nil
}

func (ws *HttpServer) Shutdown() error {
	ws.m.Lock()
	server := ws.server
	ws.m.Unlock()
	if server == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		return errors.Wrapf(err, "Could not shut down %v", fmt.Sprint(ws))
	}
	return nil
}
