// webreg-collector is the collector's process supervisor.
//
// Startup sequence:
//  1. Load configuration from a JSON file.
//  2. Open the Key Store, if --keys was given.
//  3. Construct the Wrapper State.
//  4. Start the Tracker Loop in the background.
//  5. Bind the HTTP Gateway to the configured address.
//  6. Block until OS signals SIGINT or SIGTERM, then perform a clean
//     shutdown: request the Tracker Loop to stop and wait for it to drain,
//     then shut down the gateway.
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/campusdata/webreg-collector/internal/config"
	"github.com/campusdata/webreg-collector/internal/corestate"
	"github.com/campusdata/webreg-collector/internal/gateway"
	"github.com/campusdata/webreg-collector/internal/keystore"
	"github.com/campusdata/webreg-collector/internal/logging"
	"github.com/campusdata/webreg-collector/internal/portal"
	"github.com/campusdata/webreg-collector/internal/tracker"
)

func main() {
	configFile := flag.String("config", "", "Path to JSON config file (required)")
	keysFile := flag.String("keys", "", "Path to the Key Store sqlite database (optional; enables API-key auth on forwarded routes)")
	verbose := flag.Bool("verbose", false, "Enable debug-level logging")
	flag.Parse()

	level := logging.LevelInfo
	if *verbose {
		level = logging.LevelDebug
	}
	log := logging.New(level)
	log.Info("webreg-collector starting up")

	if *configFile == "" {
		log.Error("-config is required")
		os.Exit(1)
	}

	cfg, err := config.LoadConfig(*configFile)
	if err != nil {
		log.Errorf("failed to load config from %q: %v", *configFile, err)
		os.Exit(1)
	}
	log.Infof("configuration %q loaded from %q", cfg.ConfigName, *configFile)
	if cfg.Verbose {
		log.SetLevel(logging.LevelDebug)
	}

	var ks *keystore.Store
	if *keysFile != "" {
		ks, err = keystore.Open(*keysFile)
		if err != nil {
			log.Errorf("failed to open key store %q: %v", *keysFile, err)
			os.Exit(1)
		}
		defer ks.Close()
		log.Infof("key store opened from %q; API-key auth enabled", *keysFile)
	} else {
		log.Info("no -keys given; forwarded routes run without API-key auth")
	}

	// The portal wrapper itself is an external collaborator this repo does
	// not implement (see internal/portal); wiring a real one in is an
	// operator/deployment concern outside this binary. NewUnwired keeps the
	// rest of the supervisor — config, state, the Tracker Loop's shape, the
	// Gateway's routing — exercisable on its own.
	shared := portal.NewUnwired()
	forwarded := portal.NewUnwired()

	state, err := corestate.New(cfg, shared, forwarded, ks, log)
	if err != nil {
		log.Errorf("failed to construct wrapper state: %v", err)
		os.Exit(1)
	}
	log.Infof("tracking %d configured term(s): %v", len(state.Terms.Codes()), state.Terms.Codes())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		tracker.Run(ctx, state, log)
		log.Info("tracker loop exited")
	}()

	srv := &http.Server{
		Addr:    cfg.APIBaseEndpoint.String(),
		Handler: gateway.New(state, ks != nil),
	}
	go func() {
		log.Infof("HTTP gateway listening on %s", cfg.APIBaseEndpoint)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Errorf("gateway server error: %v", err)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh
	fmt.Println()
	log.Infof("received signal %s; shutting down", sig)

	state.RequestStop()
	cancel()
	for state.IsRunning() {
		time.Sleep(1 * time.Second)
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorf("gateway shutdown error: %v", err)
	}

	log.Info("webreg-collector shut down cleanly")
}
