package cli

import (
	"github.com/spf13/cobra"

	"github.com/yigit/placementhub/internal/portal"
)

func newLoginCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "login",
		Short: "Sign in and print where the portal would take you",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			session, err := a.signIn(cmd.Context())
			if err != nil {
				return err
			}
			a.printf("Signed in as %s (%s)\n", session.Email, session.Role)
			a.printf("Redirect: %s\n", portal.LoginRedirect(session))
			return nil
		},
	}
}

func newWhoAmICommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the identity the server attaches to the session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if _, err := a.signIn(cmd.Context()); err != nil {
				return err
			}
			a.sessions.CheckAuthStatus(cmd.Context())
			session, ok := a.sessions.Current()
			if !ok {
				a.printf("Not signed in\n")
				return nil
			}
			a.printf("Email:   %s\nName:    %s\nRole:    %s\nProfile: %s\n",
				session.Email, session.Name, session.Role, completion(session.ProfileCompleted))
			return nil
		},
	}
}

func newRouteCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "route <path>",
		Short: "Resolve a portal path for the signed-in user (or anonymously without credentials)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.init(); err != nil {
				return err
			}
			if a.opts.email != "" || a.opts.password != "" {
				if _, err := a.signIn(cmd.Context()); err != nil {
					return err
				}
			}
			// populated from the cookie if sign-in happened, empty otherwise
			a.sessions.CheckAuthStatus(cmd.Context())

			decision := portal.NewNavigator(a.guard).Resolve(args[0])
			if decision.Target != "" {
				a.printf("%s %s\n", decision.Outcome, decision.Target)
			} else {
				a.printf("%s\n", decision.Outcome)
			}
			return nil
		},
	}
}

func completion(done bool) string {
	if done {
		return "complete"
	}
	return "incomplete"
}
