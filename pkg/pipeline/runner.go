package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/depindex/pkg/deps/python"
	"github.com/matzehuels/depindex/pkg/errors"
	"github.com/matzehuels/depindex/pkg/observability"
	"github.com/matzehuels/depindex/pkg/zoekt"
)

// Resolver maps a distribution name to site-packages directories.
// *sitepackages.Resolver implements it.
type Resolver interface {
	Resolve(dist string) ([]string, error)
}

// Indexer indexes one site-packages directory.
// *zoekt.Indexer implements it.
type Indexer interface {
	Index(ctx context.Context, dir string) zoekt.Result
}

// EventKind identifies a progress event.
type EventKind int

const (
	// EventNames reports the collected names (Count, Source, Path).
	EventNames EventKind = iota
	// EventUnresolved reports a name that resolved to nothing (Name, Detail).
	EventUnresolved
	// EventPlan reports the deduplicated work list size (Count).
	EventPlan
	// EventIndexStart is sent before the indexer runs (Target).
	EventIndexStart
	// EventIndexed reports a successful run (Target, Result).
	EventIndexed
	// EventSkipped reports a directory that vanished before indexing (Target, Result).
	EventSkipped
	// EventFailed reports a failed indexer run (Target, Result).
	EventFailed
)

// Event is a progress notification sent to Runner.OnEvent.
type Event struct {
	Kind   EventKind
	Name   string       // distribution name
	Detail string       // reason for EventUnresolved
	Count  int          // EventNames, EventPlan
	Source Source       // EventNames
	Path   string       // EventNames
	Target Target       // index events
	Result zoekt.Result // EventIndexed, EventSkipped, EventFailed
}

// Result summarizes a run.
type Result struct {
	Names      *NameList      // collected names
	Targets    []Target       // deduplicated work list
	Unresolved []string       // names that resolved to nothing
	Results    []zoekt.Result // one per indexed target, in order
	Indexed    int            // successful indexer runs
	Failed     int            // failed or skipped targets
	Duration   time.Duration  // wall time of the run
}

// Runner executes runs. It holds no state between runs.
type Runner struct {
	Resolver Resolver
	Indexer  Indexer
	Logger   *log.Logger

	// OnEvent, if set, receives progress events synchronously.
	OnEvent func(Event)
}

// NewRunner creates a runner. If logger is nil, log.Default() is used.
func NewRunner(res Resolver, ix Indexer, logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Resolver: res, Indexer: ix, Logger: logger}
}

// Execute collects names, resolves them and indexes every distinct
// directory, strictly one at a time. It returns an error only for fatal
// conditions: an invalid project name, no names, a store that cannot be
// listed, or cancellation of ctx (in which case the partial result is also
// returned).
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := errors.ValidateRepoName(opts.Project); err != nil {
		return nil, err
	}

	start := time.Now()
	names, err := CollectNames(opts)
	if err != nil {
		return nil, err
	}
	r.emit(Event{Kind: EventNames, Count: len(names.Names), Source: names.Source, Path: names.Path})

	result := &Result{Names: names}
	resolved, err := r.resolveAll(ctx, names.Names, result)
	if err != nil {
		return nil, err
	}

	result.Targets = Plan(opts.Project, resolved)
	r.emit(Event{Kind: EventPlan, Count: len(result.Targets)})
	r.Logger.Debug("planned targets", "names", len(names.Names), "targets", len(result.Targets), "unresolved", len(result.Unresolved))

	if opts.DryRun {
		result.Duration = time.Since(start)
		return result, nil
	}

	for _, t := range result.Targets {
		if err := ctx.Err(); err != nil {
			result.Duration = time.Since(start)
			return result, err
		}
		r.index(ctx, t, result)
	}

	result.Duration = time.Since(start)
	r.Logger.Info("indexing finished",
		"indexed", result.Indexed,
		"failed", result.Failed,
		"duration", result.Duration.Round(time.Millisecond))
	return result, nil
}

// resolveAll resolves each name in order. Unresolvable and invalid names
// are recorded on result and reported; they are not errors.
func (r *Runner) resolveAll(ctx context.Context, names []string, result *Result) ([][]string, error) {
	hooks := observability.Index()
	declared := make(map[string]string, len(names))
	resolved := make([][]string, 0, len(names))

	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		key := python.Normalize(name)
		if prev, ok := declared[key]; ok {
			r.Logger.Debug("duplicate dependency", "name", name, "first", prev)
		} else {
			declared[key] = name
		}

		if err := errors.ValidatePackageName(name); err != nil {
			result.Unresolved = append(result.Unresolved, name)
			r.emit(Event{Kind: EventUnresolved, Name: name, Detail: errors.UserMessage(err)})
			continue
		}

		t := time.Now()
		dirs, err := r.Resolver.Resolve(name)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "resolve %s", name)
		}
		hooks.OnResolve(ctx, name, dirs, time.Since(t))

		if len(dirs) == 0 {
			result.Unresolved = append(result.Unresolved, name)
			r.emit(Event{Kind: EventUnresolved, Name: name, Detail: "not found in site-packages"})
			continue
		}
		r.Logger.Debug("resolved", "name", name, "dirs", dirs)
		resolved = append(resolved, dirs)
	}
	return resolved, nil
}

// index runs the indexer for one target and tallies the outcome.
func (r *Runner) index(ctx context.Context, t Target, result *Result) {
	r.emit(Event{Kind: EventIndexStart, Target: t})
	res := r.Indexer.Index(ctx, t.Dir)
	result.Results = append(result.Results, res)

	ev := Event{Target: t, Result: res}
	switch res.Status {
	case zoekt.Indexed:
		result.Indexed++
		ev.Kind = EventIndexed
	case zoekt.Skipped:
		result.Failed++
		ev.Kind = EventSkipped
	default:
		result.Failed++
		ev.Kind = EventFailed
	}
	r.emit(ev)
}

func (r *Runner) emit(ev Event) {
	if r.OnEvent != nil {
		r.OnEvent(ev)
	}
}

// Summary returns the final tally line of a run.
func (res *Result) Summary() string {
	return fmt.Sprintf("Done: %d indexed, %d failed", res.Indexed, res.Failed)
}
