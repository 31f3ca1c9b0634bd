// portal is the terminal client of HireLink. It signs in against the API,
// keeps the tokens in the user config directory and shows the dashboard of
// the signed-in role.
package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/pflag"

	"hirelink/internal/access"
	"hirelink/internal/apiclient"
	"hirelink/internal/authstate"
	"hirelink/internal/loading"
)

const defaultServer = "http://localhost:8080"

type app struct {
	server  string
	client  *apiclient.Client
	store   *authstate.Store
	loading *loading.Indicator
	stdout  io.Writer
	stderr  io.Writer
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	flagSet := pflag.NewFlagSet("portal", pflag.ContinueOnError)
	flagSet.SetInterspersed(false)
	server := flagSet.String("server", envOr("HIRELINK_URL", defaultServer), "API base URL")
	tokenFile := flagSet.String("token-file", "", "token cache file (default: user config dir)")
	verbose := flagSet.BoolP("verbose", "v", false, "log requests to stderr")
	flagSet.Usage = func() { printUsage(stderr, flagSet) }

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}
	if flagSet.NArg() == 0 {
		printUsage(stderr, flagSet)
		return errors.New("missing command")
	}

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	var cache authstate.TokenCache
	if *tokenFile != "" {
		cache = &authstate.FileTokenCache{Path: *tokenFile}
	} else if fc, err := authstate.DefaultTokenCache(); err == nil {
		cache = fc
	} else {
		logger.Warn("token cache unavailable, sessions will not persist", slog.Any("error", err))
	}

	a := &app{server: strings.TrimRight(*server, "/"), stdout: stdout, stderr: stderr}
	a.client = apiclient.New(a.server,
		apiclient.WithLogger(logger),
		apiclient.WithAlert(func(msg string) { fmt.Fprintln(stderr, msg) }),
	)
	a.store = authstate.New(a.client, cache, logger)
	defer a.store.Close()
	a.client.SetTokenSource(a.store)

	a.loading = loading.New()
	a.loading.OnChange(func(active bool) {
		if active {
			fmt.Fprintln(stderr, "Checking session...")
		}
	})

	cmd, rest := flagSet.Arg(0), flagSet.Args()[1:]
	switch cmd {
	case "login":
		return a.login(ctx, rest)
	case "logout":
		return a.logout(ctx)
	case "dashboard", "whoami":
		return a.dashboard(ctx)
	case "extract":
		return a.extract(ctx, rest)
	case "bio":
		return a.bio(ctx, rest)
	case "embed":
		return a.embed(ctx, rest)
	default:
		printUsage(stderr, flagSet)
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func (a *app) login(ctx context.Context, args []string) error {
	fs := pflag.NewFlagSet("login", pflag.ContinueOnError)
	email := fs.String("email", "", "account email")
	password := fs.String("password", os.Getenv("HIRELINK_PASSWORD"), "account password (or HIRELINK_PASSWORD)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *email == "" || *password == "" {
		return errors.New("login requires --email and --password")
	}

	return a.render(ctx, func(ctx context.Context) error {
		return a.store.SignIn(ctx, *email, *password)
	})
}

func (a *app) logout(ctx context.Context) error {
	if err := a.store.Init(ctx); err != nil {
		return err
	}
	if !a.store.State().IsAuthenticated {
		fmt.Fprintln(a.stdout, "Not signed in.")
		return nil
	}
	if err := a.store.SignOut(ctx); err != nil {
		fmt.Fprintf(a.stderr, "server sign out failed, local session cleared: %v\n", err)
	}
	fmt.Fprintln(a.stdout, "Signed out.")
	return nil
}

func (a *app) dashboard(ctx context.Context) error {
	return a.render(ctx, a.store.Init)
}

// render binds the dashboard to the store, runs resolve and prints the view
// of the state resolve settled on. The loading indicator runs while the
// state is resolving.
func (a *app) render(ctx context.Context, resolve func(context.Context) error) error {
	d := newDashboard(a.store, a.loading, a.server)

	var (
		view      bytes.Buffer
		renderErr error
	)
	unsubscribe := d.signedIn.Bind(a.store, func(decision access.Decision) {
		if decision.Outcome == access.Resolving {
			return
		}
		view.Reset()
		renderErr = d.Render(ctx, &view)
	})
	defer unsubscribe()

	if err := resolve(ctx); err != nil {
		return err
	}
	if renderErr != nil {
		return renderErr
	}
	_, err := view.WriteTo(a.stdout)
	return err
}

// requireSession restores the cached session for commands that call the API.
func (a *app) requireSession(ctx context.Context) error {
	if err := a.store.Init(ctx); err != nil {
		return err
	}
	if !a.store.State().IsAuthenticated {
		return errors.New("not signed in, run `portal login` first")
	}
	return nil
}

func (a *app) extract(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.New("usage: portal extract <file>")
	}
	if err := a.requireSession(ctx); err != nil {
		return err
	}

	f, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer f.Close()

	text, err := a.client.ExtractResume(ctx, args[0], f)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.stdout, text)
	return nil
}

func (a *app) bio(ctx context.Context, args []string) error {
	fs := pflag.NewFlagSet("bio", pflag.ContinueOnError)
	resumeFile := fs.String("resume-file", "", "plain text resume")
	workStyle := fs.String("work-style", "", "work style preference")
	industry := fs.String("industry", "", "industry preference")
	location := fs.String("location", "", "location preference")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *resumeFile == "" {
		return errors.New("bio requires --resume-file")
	}
	resume, err := os.ReadFile(*resumeFile)
	if err != nil {
		return err
	}
	if err := a.requireSession(ctx); err != nil {
		return err
	}

	result, err := a.client.GenerateBio(ctx, apiclient.BioRequest{
		ResumeText:          string(resume),
		WorkStylePreference: *workStyle,
		IndustryPreference:  *industry,
		LocationPreference:  *location,
	})
	if err != nil {
		return err
	}
	if !result.Success {
		return fmt.Errorf("bio generation failed: %s", result.Error)
	}
	fmt.Fprintln(a.stdout, result.Bio)
	return nil
}

func (a *app) embed(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errors.New("usage: portal embed <text>")
	}
	if err := a.requireSession(ctx); err != nil {
		return err
	}

	vec, err := a.client.GetEmbedding(ctx, strings.Join(args, " "))
	if err != nil {
		return err
	}
	fmt.Fprintf(a.stdout, "%d dimensions\n", len(vec))
	for i, v := range vec {
		if i == 8 {
			fmt.Fprintln(a.stdout, "...")
			break
		}
		fmt.Fprintf(a.stdout, "%.6f\n", v)
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func printUsage(w io.Writer, fs *pflag.FlagSet) {
	fmt.Fprintf(w, `HireLink terminal client.

Usage: portal [flags] <command> [args]

Commands:
  login --email E --password P   sign in and show your dashboard
  logout                         sign out and forget the cached session
  dashboard                      show the dashboard of your role
  extract <file>                 print the text of a resume file
  bio --resume-file F            draft a bio from a plain text resume
  embed <text>                   print the embedding of text

Flags:
%s`, fs.FlagUsages())
}
