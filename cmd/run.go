package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/cristianoliveira/toasts/internal/config"
	"github.com/cristianoliveira/toasts/internal/logging"
	"github.com/cristianoliveira/toasts/internal/schedule"
	"github.com/cristianoliveira/toasts/internal/toast"
	"github.com/spf13/cobra"
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Drive toasts headlessly and print their lifecycle",
	Long: `Drive toasts headlessly and print their lifecycle.

USAGE:
    toasts run [OPTIONS]

OPTIONS:
    --temporary <title:ttl>     Create a temporary toast (repeatable, ttl in seconds)
    --permanent <title:content> Create a permanent toast (repeatable)
    --close <n>                 Close the first n permanent toasts after creation
    --no-seed                   Skip the sample toasts
    --simulate                  Use a simulated clock instead of waiting
    --verbose                   Log manager activity to stderr
    -h, --help                  Show this help

The command exits once no temporary toast is left.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return Run(ctx, RunOptions{
			Temporary: runTemporary,
			Permanent: runPermanent,
			Close:     runClose,
			NoSeed:    runNoSeed,
			Simulate:  runSimulate,
			Verbose:   runVerbose,
			Out:       cmd.OutOrStdout(),
			ErrOut:    cmd.ErrOrStderr(),
		})
	},
}

var (
	runTemporary []string
	runPermanent []string
	runClose     int
	runNoSeed    bool
	runSimulate  bool
	runVerbose   bool
)

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().StringArrayVar(&runTemporary, "temporary", nil, "temporary toast as title:ttl")
	runCmd.Flags().StringArrayVar(&runPermanent, "permanent", nil, "permanent toast as title:content")
	runCmd.Flags().IntVar(&runClose, "close", 0, "close the first n permanent toasts")
	runCmd.Flags().BoolVar(&runNoSeed, "no-seed", false, "skip the sample toasts")
	runCmd.Flags().BoolVar(&runSimulate, "simulate", false, "use a simulated clock")
	runCmd.Flags().BoolVar(&runVerbose, "verbose", false, "log manager activity to stderr")
}

// RunOptions configures a headless run.
type RunOptions struct {
	Temporary []string
	Permanent []string
	Close     int
	NoSeed    bool
	Simulate  bool
	Verbose   bool
	Out       io.Writer
	ErrOut    io.Writer
}

// simulationStart is replaced in tests.
var simulationStart = time.Now

// Run creates the requested toasts, waits for every temporary one to
// expire and prints each lifecycle event on the way.
func Run(ctx context.Context, opts RunOptions) error {
	if opts.Close < 0 {
		return fmt.Errorf("--close must not be negative: %d", opts.Close)
	}
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	if opts.ErrOut == nil {
		opts.ErrOut = os.Stderr
	}
	requests, err := parseRequests(opts.Temporary, opts.Permanent)
	if err != nil {
		return err
	}

	sessOpts := sessionOptions{}
	var manual *schedule.Manual
	if opts.Simulate {
		manual = schedule.NewManual(simulationStart())
		sessOpts.scheduler = manual
		sessOpts.clock = manual
	} else {
		sessOpts.clock = schedule.SystemClock{}
	}
	if opts.Verbose {
		cfg := logging.FromGlobalConfig()
		cfg.Level = "debug"
		sessOpts.logger = logging.NewWriter(opts.ErrOut, cfg)
	}

	printer := newEventPrinter(opts.Out, sessOpts.clock)
	changed := make(chan struct{}, 1)
	sessOpts.observers = []toast.Observer{
		printer.print,
		func(toast.Event) {
			select {
			case changed <- struct{}{}:
			default:
			}
		},
	}

	s, err := openSession(sessOpts)
	if err != nil {
		return err
	}
	defer s.close()

	s.start(!opts.NoSeed && config.GetBool("seed_enabled", true))

	for _, req := range requests {
		if _, err := s.manager.Create(req); err != nil {
			printer.rejected(req, err)
		}
	}
	closePermanent(s.manager, opts.Close)

	if manual != nil {
		drain(ctx, s.manager, manual)
	} else if err := wait(ctx, s.manager, changed); err != nil {
		printer.summary(s.manager.List())
		return err
	}
	printer.summary(s.manager.List())
	return nil
}

// parseRequests turns the flag values into manager requests. A temporary
// ttl is clamped like the interactive form does.
func parseRequests(temporary, permanent []string) ([]toast.Request, error) {
	minTTL := config.GetInt("min_ttl", toast.MinTTLSeconds)
	maxTTL := config.GetInt("max_ttl", toast.MaxTTLSeconds)
	defaultTTL := config.GetInt("default_ttl", 5)

	var requests []toast.Request
	for _, raw := range temporary {
		req, err := parseTemporary(raw, defaultTTL, minTTL, maxTTL)
		if err != nil {
			return nil, err
		}
		requests = append(requests, req)
	}
	for _, raw := range permanent {
		requests = append(requests, parsePermanent(raw))
	}
	return requests, nil
}

// parseTemporary reads "title:ttl". The title may itself contain colons, so
// the ttl follows the last one. A missing ttl uses the default.
func parseTemporary(raw string, defaultTTL, minTTL, maxTTL int) (toast.Request, error) {
	title, ttlText := raw, ""
	if i := strings.LastIndex(raw, ":"); i >= 0 {
		title, ttlText = raw[:i], strings.TrimSpace(raw[i+1:])
	}
	ttl := defaultTTL
	if ttlText != "" {
		n, err := strconv.Atoi(ttlText)
		if err != nil {
			return toast.Request{}, fmt.Errorf("invalid ttl in --temporary %q: must be a whole number of seconds", raw)
		}
		ttl = n
	}
	return toast.Request{
		Kind:       toast.KindTemporary,
		Title:      title,
		TTLSeconds: toast.ClampTTL(ttl, minTTL, maxTTL),
	}, nil
}

// parsePermanent reads "title:content". Without a colon the whole value is
// the content. Blank content is left for the manager to reject.
func parsePermanent(raw string) toast.Request {
	title, content, ok := strings.Cut(raw, ":")
	if !ok {
		title, content = "", raw
	}
	return toast.Request{Kind: toast.KindPermanent, Title: title, Content: content}
}

func closePermanent(m *toast.Manager, n int) {
	if n <= 0 {
		return
	}
	for _, item := range m.List() {
		if n == 0 {
			return
		}
		if item.IsPermanent() {
			m.Remove(item.ID)
			n--
		}
	}
}

// drain fires simulated timers until no temporary toast is left.
func drain(ctx context.Context, m *toast.Manager, clock *schedule.Manual) {
	for m.HasTemporary() && ctx.Err() == nil {
		due, ok := clock.NextDue()
		if !ok {
			return
		}
		clock.Advance(due.Sub(clock.Now()))
	}
}

func wait(ctx context.Context, m *toast.Manager, changed <-chan struct{}) error {
	for m.HasTemporary() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-changed:
		}
	}
	return nil
}

// eventPrinter writes one line per lifecycle event. Timer callbacks may run
// on other goroutines, so writes are serialized.
type eventPrinter struct {
	mu    sync.Mutex
	out   io.Writer
	clock schedule.Clock
	start time.Time
}

func newEventPrinter(out io.Writer, clock schedule.Clock) *eventPrinter {
	return &eventPrinter{out: out, clock: clock, start: clock.Now()}
}

func (p *eventPrinter) print(ev toast.Event) {
	n := ev.Notification
	var line string
	switch ev.Type {
	case toast.EventAdded:
		line = fmt.Sprintf("+ %d %s %s", n.ID, n.Kind, describeNotification(n))
	case toast.EventRemoved:
		line = fmt.Sprintf("- %d %s %q (%s)", n.ID, n.Kind, n.Title, ev.Reason)
	default:
		return
	}
	p.writeLine(line)
}

func (p *eventPrinter) rejected(req toast.Request, err error) {
	p.writeLine(fmt.Sprintf("! %s %q rejected: %v", req.Kind, req.Title, err))
}

func (p *eventPrinter) summary(active []toast.Notification) {
	p.writeLine(fmt.Sprintf("= %d active", len(active)))
	for _, n := range active {
		p.writeLine(fmt.Sprintf("  %d %s %s", n.ID, n.Kind, describeNotification(n)))
	}
}

func (p *eventPrinter) writeLine(line string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	elapsed := p.clock.Now().Sub(p.start)
	fmt.Fprintf(p.out, "[%7.3fs] %s\n", elapsed.Seconds(), line)
}

func describeNotification(n toast.Notification) string {
	if n.IsTemporary() {
		return fmt.Sprintf("%q ttl=%s", n.Title, n.TTL)
	}
	return fmt.Sprintf("%q content=%q", n.Title, n.Content)
}
