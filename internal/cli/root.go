// Package cli is the placementctl command tree. Every command signs in with the given
// credentials, then works through the portal package exactly like the web client does.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/yigit/placementhub/internal/pkg/logger"
	"github.com/yigit/placementhub/internal/portal"
)

// Environment variables read for defaults.
const (
	EnvServer   = "PLACEMENTCTL_SERVER"
	EnvEmail    = "PLACEMENTCTL_EMAIL"
	EnvPassword = "PLACEMENTCTL_PASSWORD"
	EnvPolicy   = "PLACEMENTCTL_MISMATCH_POLICY"

	defaultServer = "http://localhost:3003"
)

// ErrNoCredentials is returned when a command needs a session but no credentials were given.
var ErrNoCredentials = errors.New("email and password are required (flags or " + EnvEmail + " / " + EnvPassword + ")")

type options struct {
	server   string
	email    string
	password string
	policy   string
	verbose  bool
}

// app is the per-invocation wiring shared by all commands.
type app struct {
	opts   *options
	out    io.Writer
	logger zerolog.Logger

	client   *portal.Client
	sessions *portal.SessionStore
	guard    *portal.Guard
}

func (a *app) init() error {
	if a.client != nil {
		return nil
	}

	level := logger.WarnLevel
	if a.opts.verbose {
		level = logger.DebugLevel
	}
	a.logger = logger.Configure(logger.Config{Level: level, Pretty: true, Output: os.Stderr}).
		With().Str("component", "placementctl").Logger()

	client, err := portal.NewClient(a.opts.server, portal.WithLogger(a.logger))
	if err != nil {
		return err
	}
	policy, err := portal.ParseMismatchPolicy(a.opts.policy)
	if err != nil {
		return err
	}

	a.client = client
	a.sessions = portal.NewSessionStore(client, a.logger)
	a.guard = portal.NewGuard(a.sessions, policy)
	return nil
}

// signIn logs in with the configured credentials and records the session.
func (a *app) signIn(ctx context.Context) (portal.Session, error) {
	if err := a.init(); err != nil {
		return portal.Session{}, err
	}
	if a.opts.email == "" || a.opts.password == "" {
		return portal.Session{}, ErrNoCredentials
	}

	resp, err := a.client.Login(ctx, a.opts.email, a.opts.password)
	if err != nil {
		return portal.Session{}, fmt.Errorf("login failed: %s", portal.ErrorMessage(err))
	}
	a.sessions.Login(resp.User)
	a.logger.Debug().Str("email", resp.User.Email).Str("role", string(resp.Role)).Msg("Signed in")
	return resp.User, nil
}

func (a *app) printf(format string, args ...interface{}) {
	fmt.Fprintf(a.out, format, args...)
}

// NewRootCommand builds the placementctl command tree.
func NewRootCommand() *cobra.Command {
	opts := &options{}
	a := &app{opts: opts}

	root := &cobra.Command{
		Use:           "placementctl",
		Short:         "Command line client for the PlacementHub portal",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			a.out = cmd.OutOrStdout()
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&opts.server, "server", envOr(EnvServer, defaultServer), "PlacementHub server URL")
	flags.StringVar(&opts.email, "email", os.Getenv(EnvEmail), "account email")
	flags.StringVar(&opts.password, "password", os.Getenv(EnvPassword), "account password")
	flags.StringVar(&opts.policy, "mismatch-policy", envOr(EnvPolicy, string(portal.MismatchHome)), "where a wrong-role user is sent: home or login")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "log API calls")

	root.AddCommand(
		newLoginCommand(a),
		newWhoAmICommand(a),
		newRouteCommand(a),
		newStatsCommand(a),
		newDrivesCommand(a),
		newExamsCommand(a),
		newResourcesCommand(a),
		newStudentsCommand(a),
	)
	return root
}

// Execute runs placementctl and returns the process exit code.
func Execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	root := NewRootCommand()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(stderr, "Error:", err)
		return 1
	}
	return 0
}

func envOr(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}
