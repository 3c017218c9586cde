package notify

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/hamed0406/webmon/internal/domain"
)

// Command runs an external program for every event. The placeholders
// {name}, {url} and {state} are substituted in Args, and the same values are
// exported as WEBMON_NAME, WEBMON_URL and WEBMON_STATE.
type Command struct {
	Cmd  string
	Args []string
}

func (c Command) Notify(ctx context.Context, ev domain.Event) error {
	r := strings.NewReplacer(
		"{name}", ev.Target,
		"{url}", ev.URL,
		"{state}", ev.State.String(),
	)
	args := make([]string, len(c.Args))
	for i, a := range c.Args {
		args[i] = r.Replace(a)
	}

	cmd := exec.CommandContext(ctx, c.Cmd, args...)
	cmd.Env = append(os.Environ(),
		"WEBMON_NAME="+ev.Target,
		"WEBMON_URL="+ev.URL,
		"WEBMON_STATE="+ev.State.Kind.String(),
	)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("command %s: %w: %s", c.Cmd, err, strings.TrimSpace(string(out)))
	}
	return nil
}
