package modules

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/Luismorlan/newsdash/engine"
	Logger "github.com/Luismorlan/newsdash/utils/log"
)

const apiServerShutdownTimeout = 10 * time.Second

type ApiServerConfig struct {
	Name string
	// Address to listen on, e.g. ":8080".
	Addr string
}

// ApiServer serves an http handler until its context is cancelled.
type ApiServer struct {
	engine.Module

	Config ApiServerConfig

	handler http.Handler
	// listening is closed once the listener is bound, Addr is valid then.
	listening chan struct{}
	addr      net.Addr
}

func NewApiServer(config ApiServerConfig, handler http.Handler) *ApiServer {
	return &ApiServer{
		Config:    config,
		handler:   handler,
		listening: make(chan struct{}),
	}
}

func (s *ApiServer) RunModule(ctx context.Context) error {
	listener, err := net.Listen("tcp", s.Config.Addr)
	if err != nil {
		return err
	}
	s.addr = listener.Addr()
	select {
	case <-s.listening:
	default:
		close(s.listening)
	}

	server := &http.Server{Handler: s.handler}
	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), apiServerShutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			Logger.Log.Errorln("fail to shut down api server: ", err)
		}
	}()

	Logger.Log.Infof("api server listening on %s", s.addr)
	err = server.Serve(listener)
	if errors.Is(err, http.ErrServerClosed) {
		<-stopped
		return nil
	}
	return err
}

// Addr blocks until the server listens and returns the bound address.
func (s *ApiServer) Addr() net.Addr {
	<-s.listening
	return s.addr
}

func (s *ApiServer) Name() string {
	return s.Config.Name
}

func (s *ApiServer) Shutdown() {}
