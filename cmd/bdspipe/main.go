package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"bds-pipeline/internal/bds"
	"bds-pipeline/internal/census"
	"bds-pipeline/internal/config"
	"bds-pipeline/internal/events"
	"bds-pipeline/internal/httpapi"
	"bds-pipeline/internal/pipeline"
	"bds-pipeline/internal/scheduler"
	"bds-pipeline/internal/secrets"
	"bds-pipeline/internal/store"
)

const version = "1.0.0"

func main() {
	var (
		serve       = flag.Bool("serve", false, "keep running: serve the read API and refresh on a schedule")
		addr        = flag.String("addr", "", "listen address for -serve (overrides config)")
		dataDir     = flag.String("data", "", "data directory (overrides BDSPIPE_DATA_DIR)")
		check       = flag.Bool("check", false, "verify the measure set against the API variable catalog and exit")
		setKey      = flag.String("set-key", "", "read a Census API key from stdin, store it in the keyring under this account, and exit")
		showVersion = flag.Bool("version", false, "print version and exit")
	)
	flag.Parse()

	if *showVersion {
		fmt.Println("bdspipe " + version)
		return
	}

	if *setKey != "" {
		if err := storeAPIKey(*setKey); err != nil {
			log.Fatalf("set-key failed: %v", err)
		}
		log.Printf("[secrets] api key stored for account %q", *setKey)
		return
	}

	dir := *dataDir
	if dir == "" {
		dir = os.Getenv("BDSPIPE_DATA_DIR")
	}
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		log.Fatal(err)
	}

	defaultCfgPath := filepath.Join("config", "config.yml")
	userCfgPath, err := config.EnsureUserConfig(dir, defaultCfgPath)
	if err != nil {
		log.Fatalf("config bootstrap failed: %v", err)
	}

	cfg, err := config.Load(userCfgPath)
	if err != nil {
		log.Fatalf("config load failed (%s): %v", userCfgPath, err)
	}
	cfg, res := config.NormalizeAndValidate(cfg)
	for _, wmsg := range res.Warnings {
		log.Printf("[config] warning: %s", wmsg)
	}
	if !res.OK() {
		log.Fatalf("config invalid (%s):\n- %s", userCfgPath, strings.Join(res.Errors, "\n- "))
	}

	policy, err := bds.PolicyFromString(cfg.Clean.OnMalformed)
	if err != nil {
		log.Fatalf("config invalid: %v", err)
	}

	limiter := census.NewHostLimiter(cfg.Census.RatePerSec, cfg.Census.Burst)
	client := census.New(census.Config{
		BaseURL: cfg.Census.BaseURL,
		APIKey:  secrets.GetAPIKey(cfg.Census.APIKeyAccount),
		Timeout: time.Duration(cfg.Census.TimeoutSeconds) * time.Second,
	}, limiter)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if *check {
		if err := client.CheckVariables(ctx, census.Measures); err != nil {
			log.Fatalf("[check] %v", err)
		}
		log.Printf("[check] all %d measures present in the catalog", len(census.Measures))
		return
	}

	dbPath := filepath.Join(dir, "bds.db")
	db, err := store.Open(dbPath)
	if err != nil {
		log.Fatalf("open %s: %v", dbPath, err)
	}
	defer db.Close()

	if err := store.Migrate(db.Pool); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	hub := events.NewHub()
	runner := &pipeline.Runner{
		DB:      db.Pool,
		Client:  client,
		Policy:  policy,
		DataDir: dir,
		Hub:     hub,
	}

	if !*serve {
		counts, err := runner.RunOnce(ctx)
		if err != nil {
			log.Fatalf("[pipeline] run failed: %v", err)
		}
		log.Printf("[pipeline] complete national=%d firm_age=%d state=%d db=%s",
			counts.National, counts.FirmAge, counts.State, dbPath)
		return
	}

	listen := *addr
	if listen == "" {
		listen = cfg.App.Addr
	}

	mux := httpapi.NewMux(httpapi.Deps{
		DB:          db.Pool,
		Hub:         hub,
		RunStatus:   runner.Status,
		RunPipeline: runner.RunOnce,
	})
	handler := httpapi.Chain(mux, httpapi.RequestID, httpapi.Recover, httpapi.AccessLog, httpapi.Cors)

	srv := &http.Server{
		Addr:              listen,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		interval := time.Duration(cfg.Refresh.IntervalHours) * time.Hour
		scheduler.Every(ctx, interval, "refresh", func(ctx context.Context) error {
			_, err := runner.RunOnce(ctx)
			if errors.Is(err, pipeline.ErrRunInProgress) {
				return nil
			}
			return err
		})
		return nil
	})

	g.Go(func() error {
		log.Printf("api listening on http://%s (db=%s)", listen, dbPath)
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		shutCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutCtx)
	})

	if err := g.Wait(); err != nil {
		log.Fatal(err)
	}
}

func storeAPIKey(account string) error {
	fmt.Fprint(os.Stderr, "Census API key: ")
	sc := bufio.NewScanner(os.Stdin)
	if !sc.Scan() {
		if err := sc.Err(); err != nil {
			return err
		}
		return errors.New("no key provided")
	}
	return secrets.SetAPIKey(account, strings.TrimSpace(sc.Text()))
}
