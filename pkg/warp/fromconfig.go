package warp

import (
	"fmt"
	"time"

	"github.com/jholhewres/warp/pkg/warp/config"
	"github.com/jholhewres/warp/pkg/warp/job"
	"github.com/jholhewres/warp/pkg/warp/trigger"
)

// LoadJobsFromConfig registers every enabled job declared in cfg.Jobs,
// looking up each job's function by name in funcs. This is the bridge
// between the declarative config.JobSpec format (YAML, for the CLI
// inspector and config-driven deployments) and the Scheduler's builder API.
func (s *Scheduler) LoadJobsFromConfig(cfg *config.Config, funcs map[string]job.Func) error {
	for _, spec := range cfg.Jobs {
		if !spec.Enabled {
			continue
		}
		fn, ok := funcs[spec.Name]
		if !ok {
			return fmt.Errorf("%w: %q", ErrMissingJobFunc, spec.Name)
		}
		trig, err := TriggerFromSpec(spec, s.zone, s.clock.Now())
		if err != nil {
			return fmt.Errorf("job %q: %w", spec.Name, err)
		}
		if _, err := s.Do(spec.Name, trig, fn, spec.Once); err != nil {
			return fmt.Errorf("job %q: %w", spec.Name, err)
		}
	}
	return nil
}

// TriggerFromSpec builds the Trigger a declarative config.JobSpec
// describes. now is used as the anchor for interval specs, which don't
// carry their own anchor in YAML.
func TriggerFromSpec(spec config.JobSpec, zone *time.Location, now time.Time) (trigger.Trigger, error) {
	switch spec.Kind {
	case "cron":
		return trigger.ParseCron(spec.Cron, zone)
	case "descriptor":
		return trigger.ParseDescriptor(spec.Descriptor, zone)
	case "date":
		at, err := time.ParseInLocation(time.RFC3339, spec.At, zone)
		if err != nil {
			return nil, err
		}
		return trigger.NewDate(at, zone), nil
	case "interval":
		ev := spec.Every
		return trigger.NewInterval(ev.Years, ev.Months, ev.Weeks, ev.Days, ev.Hours, ev.Minutes, ev.Seconds, now, zone), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownJobKind, spec.Kind)
	}
}
