// cmd/preflight/main.go
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/hamed0406/webmon/internal/config"
	"github.com/hamed0406/webmon/internal/logging"
)

func main() {
	path := flag.String("f", "config.yml", "path to the YAML config file")
	flag.Parse()

	fail := func(msg string) {
		fmt.Fprintln(os.Stderr, "✖", msg)
		os.Exit(1)
	}
	warn := func(msg string) { fmt.Fprintln(os.Stderr, "⚠", msg) }
	ok := func(msg string) { fmt.Println("✔", msg) }

	cfg, err := config.Load(*path)
	if err != nil {
		fail(err.Error())
	}
	ok("loaded " + *path)

	eps, dropped := cfg.Collect()
	for _, err := range dropped {
		warn(err.Error())
	}
	if len(eps) == 0 {
		fail(config.ErrNoValidTargets.Error())
	}
	for _, ep := range eps {
		ok(fmt.Sprintf("%s %s %s every %s, timeout %s", ep.Name, ep.Method, ep.URL, ep.Interval, ep.Timeout))
	}

	m, err := cfg.BuildNotifier(zap.NewNop())
	if err != nil {
		fail(err.Error())
	}
	if len(m) == 1 {
		warn("no notifiers configured; transitions only go to the log")
	} else {
		ok(fmt.Sprintf("%d notifier(s) configured", len(m)-1))
	}

	if _, err := logging.NewLogger(logging.Options{Dir: cfg.Log.Dir, Level: cfg.Log.Level}); err != nil {
		var pe *os.PathError
		if errors.As(err, &pe) {
			fail("log dir not writable: " + err.Error())
		}
		fail(err.Error())
	}
	ok("LOG_DIR=" + cfg.Log.Dir + " LOG_LEVEL=" + cfg.Log.Level)

	if cfg.API.Addr == "" {
		warn("api.addr is empty; the status API will not be served.")
	} else {
		ok("API_ADDR=" + cfg.API.Addr)
	}

	ok("preflight passed")
}
