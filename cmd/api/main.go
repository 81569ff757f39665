package main

import (
	"context"
	"errors"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"

	"civictrack.org/internal/auth"
	"civictrack.org/internal/complaint"
	"civictrack.org/internal/config"
	"civictrack.org/internal/httpapi"
	"civictrack.org/internal/obs"
	"civictrack.org/internal/poll"
	"civictrack.org/internal/ratelimit"
	pgstore "civictrack.org/internal/store/pg"
)

var (
	version = "0.1.0"
	commit  = "dev"
)

type stores struct {
	kind       string
	users      auth.UserStore
	complaints complaint.Store
	ping       httpapi.Pinger
	close      func()
}

func openStores(dsn string) (stores, error) {
	if dsn == "" {
		obs.Warn("DATABASE_URL not set, using in-memory stores", nil)
		return stores{
			kind:       "memory",
			users:      auth.NewInMemoryUsers(),
			complaints: complaint.NewInMemory(),
			close:      func() {},
		}, nil
	}
	st, err := pgstore.Open(dsn)
	if err != nil {
		return stores{}, err
	}
	return stores{
		kind:       "postgres",
		users:      st,
		complaints: st,
		ping:       st,
		close:      func() { _ = st.Close() },
	}, nil
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	obs.Init()

	st, err := openStores(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("open store: %v", err)
	}
	defer st.close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	hasher := auth.NewHasher(cfg.BcryptCost)
	if cfg.BootstrapAdminEmail != "" {
		_, created, err := auth.EnsureAdmin(ctx, st.users, hasher, auth.AdminInput{
			Name:     cfg.BootstrapAdminName,
			Email:    cfg.BootstrapAdminEmail,
			Password: cfg.BootstrapAdminPassword,
		})
		if err != nil {
			log.Fatalf("bootstrap admin: %v", err)
		}
		if created {
			obs.Info("bootstrap admin created", map[string]any{"email": cfg.BootstrapAdminEmail})
		}
	}

	codec, err := auth.NewCodec(cfg.SessionSecret)
	if err != nil {
		log.Fatalf("session codec: %v", err)
	}
	authSvc, err := auth.NewService(st.users, hasher, codec)
	if err != nil {
		log.Fatalf("auth service: %v", err)
	}

	policy, err := complaint.PolicyByName(cfg.TransitionPolicy)
	if err != nil {
		log.Fatalf("transition policy: %v", err)
	}
	complaints := complaint.NewService(st.complaints, complaint.WithPolicy(policy))
	obs.PublishBuild(obs.Build{
		Version:          version,
		Commit:           commit,
		Store:            st.kind,
		TransitionPolicy: cfg.TransitionPolicy,
	})

	var limiter ratelimit.Limiter = ratelimit.NewTokenBucket(cfg.LoginRateLimit, time.Minute)
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		defer rdb.Close()
		limiter = ratelimit.NewRedis(rdb, cfg.LoginRateLimit, time.Minute)
	}

	proxies, err := cfg.ProxyPrefixes()
	if err != nil {
		log.Fatalf("trusted proxies: %v", err)
	}

	storeReady := httpapi.StoreReadiness{Store: st.ping}
	api, err := httpapi.New(httpapi.Options{
		Auth:           authSvc,
		Complaints:     complaints,
		Ready:          storeReady,
		Version:        version,
		SecureCookies:  cfg.Production(),
		LoginLimiter:   limiter,
		MaxBodyBytes:   cfg.MaxBodyBytes,
		TrustedProxies: proxies,
	})
	if err != nil {
		log.Fatalf("http api: %v", err)
	}

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           api.Handler(),
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	health := httpapi.NewHealthServer(storeReady)
	grpcSrv := grpc.NewServer()
	health.Register(grpcSrv)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		obs.Info("http listening", map[string]any{"addr": srv.Addr, "version": version})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	if cfg.GRPCAddr != "" {
		g.Go(func() error {
			lis, err := net.Listen("tcp", cfg.GRPCAddr)
			if err != nil {
				return err
			}
			obs.Info("grpc health listening", map[string]any{"addr": cfg.GRPCAddr})
			if err := grpcSrv.Serve(lis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
				return err
			}
			return nil
		})
	}

	readiness := poll.New(poll.DefaultInterval, health.Refresh,
		poll.WithTimeout(2*time.Second),
		poll.WithErrorHandler(func(err error) {
			obs.Warn("readiness check failed", map[string]any{"error": err.Error()})
		}),
	)
	g.Go(func() error { return readiness.Run(gctx) })

	g.Go(func() error {
		<-gctx.Done()
		obs.Info("shutting down", nil)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		health.Shutdown()
		grpcSrv.GracefulStop()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Fatalf("server: %v", err)
	}
	obs.Info("stopped", nil)
}
