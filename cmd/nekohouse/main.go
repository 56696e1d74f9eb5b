// Command nekohouse runs the visitor-registration bot's HTTP server, or, when
// invoked with an "issue" subcommand, issues one password from the command
// line for an operator who wants a code without going through the chat bot.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/iuu6/NekoHouseV3-Visitor-Registration/internal/adminapi"
	"github.com/iuu6/NekoHouseV3-Visitor-Registration/internal/bot"
	"github.com/iuu6/NekoHouseV3-Visitor-Registration/internal/clock"
	"github.com/iuu6/NekoHouseV3-Visitor-Registration/internal/config"
	"github.com/iuu6/NekoHouseV3-Visitor-Registration/internal/model"
	"github.com/iuu6/NekoHouseV3-Visitor-Registration/internal/operators"
	"github.com/iuu6/NekoHouseV3-Visitor-Registration/internal/password"
	"github.com/iuu6/NekoHouseV3-Visitor-Registration/internal/store"
	"github.com/iuu6/NekoHouseV3-Visitor-Registration/internal/store/memory"
	"github.com/iuu6/NekoHouseV3-Visitor-Registration/internal/store/postgres"
)

func main() {
	if len(os.Args) > 1 && os.Args[1] == "issue" {
		runIssue(os.Args[2:])
		return
	}
	runServer()
}

func runServer() {
	cfg := config.Load()
	if cfg.AdminKey == "" {
		log.Fatalf("NEKOHOUSE_ADMIN_KEY is required")
	}

	rootCtx, cancelRoot := context.WithCancel(context.Background())
	defer cancelRoot()

	var st store.Store
	var closer func()

	if cfg.DatabaseURL != "" {
		pg, err := postgres.NewStore(cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("failed to init postgres store: %v", err)
		}
		st = pg
		closer = pg.Close
		log.Printf("using postgres store")
	} else {
		st = memory.NewStore()
		log.Printf("using memory store")
	}

	if closer != nil {
		defer closer()
	}

	clk := clock.System{}

	if cfg.RecordRetentionHours > 0 {
		go runRetentionLoop(rootCtx, st, cfg.RecordRetentionHours)
	}

	srv := bot.NewServer(cfg, st, clk)

	httpServer := &http.Server{
		Addr:              cfg.ListenAddr(),
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("nekohouse listening on %s", cfg.ListenAddr())
		errCh <- httpServer.ListenAndServe()
	}()

	var adminServer *http.Server
	if cfg.AdminAPIPort > 0 {
		roster, err := operators.Load(cfg.OperatorsFile)
		if err != nil {
			log.Fatalf("failed to load operators file: %v", err)
		}
		adminSrv := adminapi.NewServer(st, roster, cfg.AdminJWTSecret)
		adminServer = &http.Server{
			Addr:              cfg.AdminAPIListenAddr(),
			Handler:           adminSrv.Handler(),
			ReadHeaderTimeout: 5 * time.Second,
		}
		go func() {
			log.Printf("admin API listening on %s", cfg.AdminAPIListenAddr())
			errCh <- adminServer.ListenAndServe()
		}()
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-stop:
		log.Printf("shutdown requested")
	case err := <-errCh:
		log.Printf("server error: %v", err)
	}

	cancelRoot()

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()
	_ = httpServer.Shutdown(ctxShutdown)
	if adminServer != nil {
		_ = adminServer.Shutdown(ctxShutdown)
	}
}

func runRetentionLoop(ctx context.Context, st store.Store, retentionHours int) {
	retention := time.Duration(retentionHours) * time.Hour

	runOnce := func() {
		cutoff := time.Now().UTC().Add(-retention)
		ctxPurge, cancel := context.WithTimeout(ctx, 30*time.Second)
		defer cancel()

		n, err := st.PurgeExpiredBefore(ctxPurge, cutoff)
		if err != nil {
			log.Printf("retention purge failed: %v", err)
			return
		}
		if n > 0 {
			log.Printf("retention purged %d records (< %s)", n, cutoff.Format(time.RFC3339))
		}
	}

	runOnce()

	t := time.NewTicker(time.Hour)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			runOnce()
		}
	}
}

// runIssue implements "nekohouse issue <variant> [args...]" for an operator
// who wants a code printed to stdout without going through the chat bot.
func runIssue(args []string) {
	fs := flag.NewFlagSet("issue", flag.ExitOnError)
	fs.Parse(args)
	rest := fs.Args()

	cfg := config.Load()
	if cfg.AdminKey == "" {
		log.Fatalf("NEKOHOUSE_ADMIN_KEY is required")
	}
	if len(rest) == 0 {
		log.Fatalf("usage: nekohouse issue <temporary|times|limited|period> [args...]")
	}

	var req model.Request
	switch rest[0] {
	case "temporary":
		req = model.Temporary{}
	case "times":
		if len(rest) != 2 {
			log.Fatalf("usage: nekohouse issue times N")
		}
		var n int
		if _, err := fmt.Sscanf(rest[1], "%d", &n); err != nil {
			log.Fatalf("invalid N: %v", err)
		}
		req = model.Times{N: n}
	case "limited":
		if len(rest) != 3 {
			log.Fatalf("usage: nekohouse issue limited HOURS MINUTES")
		}
		var h, m int
		if _, err := fmt.Sscanf(rest[1], "%d", &h); err != nil {
			log.Fatalf("invalid hours: %v", err)
		}
		if _, err := fmt.Sscanf(rest[2], "%d", &m); err != nil {
			log.Fatalf("invalid minutes: %v", err)
		}
		req = model.Limited{Hours: h, Minutes: m}
	case "period":
		if len(rest) != 3 {
			log.Fatalf("usage: nekohouse issue period YYYY-MM-DD HH:MM")
		}
		year, month, day, hour, err := parsePeriodArgs(rest[1], rest[2])
		if err != nil {
			log.Fatalf("invalid deadline: %v", err)
		}
		req = model.Period{Year: year, Month: month, Day: day, Hour: hour}
	default:
		log.Fatalf("unknown variant %q", rest[0])
	}

	rec, err := password.Generate(cfg.AdminKey, req, clock.System{})
	if err != nil {
		log.Fatalf("could not issue password: %v", err)
	}

	fmt.Println(rec.Text)
	fmt.Println(rec.Message)
}

func parsePeriodArgs(date, timeOfDay string) (year, month, day, hour int, err error) {
	var minute int
	_, err = fmt.Sscanf(date+" "+timeOfDay, "%d-%d-%d %d:%d", &year, &month, &day, &hour, &minute)
	return
}
