package config

import (
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/hamed0406/webmon/internal/domain"
	"github.com/hamed0406/webmon/internal/notify"
)

// Collect turns every website into an Endpoint, in name order. Websites that
// fail validation are returned as *domain.ConfigError in dropped.
func (c *Config) Collect() (eps []domain.Endpoint, dropped []error) {
	names := make([]string, 0, len(c.Websites))
	for name := range c.Websites {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		w := c.Websites[name]
		interval := time.Duration(c.Global.DefaultInterval) * time.Second
		if w.Interval != nil {
			interval = time.Duration(*w.Interval) * time.Second
		}
		timeout := time.Duration(c.Global.DefaultTimeout) * time.Millisecond
		if w.Timeout != nil {
			timeout = time.Duration(*w.Timeout) * time.Millisecond
		}

		ep, err := domain.NewEndpoint(name, w.URL, w.Method, interval, timeout, w.Request)
		if err != nil {
			dropped = append(dropped, err)
			continue
		}
		eps = append(eps, ep)
	}
	return eps, dropped
}

// Endpoints is Collect with every dropped website logged at Warn. It fails
// only when nothing valid is left.
func (c *Config) Endpoints(log *zap.Logger) ([]domain.Endpoint, error) {
	eps, dropped := c.Collect()
	for _, err := range dropped {
		log.Warn("target_dropped", zap.Error(err))
	}
	if len(eps) == 0 {
		return nil, ErrNoValidTargets
	}
	return eps, nil
}

// BuildNotifier assembles every configured transport behind one fan-out. The
// process log is always part of it.
func (c *Config) BuildNotifier(log *zap.Logger) (notify.Multi, error) {
	names := make([]string, 0, len(c.Notifiers))
	for name := range c.Notifiers {
		names = append(names, name)
	}
	sort.Strings(names)

	m := notify.Multi{notify.Log{Logger: log}}
	for _, name := range names {
		nc := c.Notifiers[name]
		switch {
		case nc.Command != nil:
			if nc.Command.Cmd == "" {
				return nil, fmt.Errorf("notifier %q: command.cmd is empty", name)
			}
			m = append(m, notify.Command{Cmd: nc.Command.Cmd, Args: nc.Command.Args})
		case nc.Telegram != nil:
			tg := notify.NewTelegram(nc.Telegram.Token, nc.Telegram.Chat)
			if tg == nil {
				return nil, fmt.Errorf("notifier %q: telegram needs token and chat", name)
			}
			m = append(m, tg)
		case nc.Slack != nil:
			s := notify.NewSlack(nc.Slack.Webhook)
			if s == nil {
				return nil, fmt.Errorf("notifier %q: slack.webhook is empty", name)
			}
			m = append(m, s)
		default:
			return nil, fmt.Errorf("notifier %q: no transport configured", name)
		}
		log.Info("notifier_enabled", zap.String("name", name))
	}
	return m, nil
}
