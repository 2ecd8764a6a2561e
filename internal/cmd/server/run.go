package serverrun

import (
	"context"
	"errors"
	"net"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	cfgpkg "github.com/lyle8341/flake/internal/config"
	"github.com/lyle8341/flake/internal/runtime"
	grpcserver "github.com/lyle8341/flake/internal/server/grpc"
	httpserver "github.com/lyle8341/flake/internal/server/http"
	logpkg "github.com/lyle8341/flake/pkg/log"
)

// Options for Run. Non-empty addresses override Config.Server; an address
// left empty in both places disables that server.
type Options struct {
	GRPCAddr string
	HTTPAddr string
	Config   cfgpkg.Config

	// Listening, if set, is called once every enabled server is bound.
	// Disabled servers are reported as nil.
	Listening func(grpcAddr, httpAddr net.Addr)
}

// Run starts the gRPC and HTTP servers and blocks until ctx is cancelled, a
// termination signal arrives, or one of the servers fails.
func Run(ctx context.Context, opts Options) error {
	sctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := opts.Config
	if opts.GRPCAddr != "" {
		cfg.Server.GRPCAddr = opts.GRPCAddr
	}
	if opts.HTTPAddr != "" {
		cfg.Server.HTTPAddr = opts.HTTPAddr
	}
	if cfg.Server.GRPCAddr == "" && cfg.Server.HTTPAddr == "" {
		return errors.New("no gRPC or HTTP address configured")
	}

	procLogger, err := logpkg.ApplyConfig(&cfg.Log)
	if err != nil {
		lvl := logpkg.InfoLevel
		if l, e := logpkg.ParseLevel(cfg.Log.Level); e == nil {
			lvl = l
		}
		procLogger = logpkg.NewLogger(logpkg.WithLevel(lvl), logpkg.WithFormatter(&logpkg.TextFormatter{}))
		procLogger.Warn("invalid log config, using defaults", logpkg.Err(err))
	}
	logpkg.RedirectStdLog(procLogger)

	rt, err := runtime.Open(runtime.Options{Config: cfg, Logger: procLogger})
	if err != nil {
		return err
	}
	defer rt.Close()

	var grpcLis, httpLis net.Listener
	if cfg.Server.GRPCAddr != "" {
		if grpcLis, err = net.Listen("tcp", cfg.Server.GRPCAddr); err != nil {
			return err
		}
	}
	if cfg.Server.HTTPAddr != "" {
		if httpLis, err = net.Listen("tcp", cfg.Server.HTTPAddr); err != nil {
			if grpcLis != nil {
				_ = grpcLis.Close()
			}
			return err
		}
	}

	procLogger.Info("Starting flake server",
		logpkg.Str("grpc", addrString(grpcLis)),
		logpkg.Str("http", addrString(httpLis)),
		logpkg.Int64("worker_id", cfg.Generator.WorkerID),
		logpkg.Int64("datacenter_id", cfg.Generator.DatacenterID),
		logpkg.Str("level", cfg.Log.Level),
		logpkg.Str("format", cfg.Log.Format),
	)
	if opts.Listening != nil {
		opts.Listening(listenerAddr(grpcLis), listenerAddr(httpLis))
	}

	g, gctx := errgroup.WithContext(sctx)
	if grpcLis != nil {
		gsrv := grpcserver.New(rt)
		g.Go(func() error {
			if err := gsrv.Serve(gctx, grpcLis); err != nil {
				procLogger.Error("grpc server failed", logpkg.Err(err))
				return err
			}
			return nil
		})
	}
	if httpLis != nil {
		hsrv := httpserver.New(rt, procLogger)
		g.Go(func() error {
			if err := hsrv.Serve(gctx, httpLis); err != nil {
				procLogger.Error("http server failed", logpkg.Err(err))
				return err
			}
			return nil
		})
	}
	err = g.Wait()
	procLogger.Info("flake server stopped")
	return err
}

func listenerAddr(l net.Listener) net.Addr {
	if l == nil {
		return nil
	}
	return l.Addr()
}

func addrString(l net.Listener) string {
	if l == nil {
		return "disabled"
	}
	return l.Addr().String()
}
