package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/todolist/todo-client/internal/app"
	"github.com/todolist/todo-client/internal/domain"
	"github.com/todolist/todo-client/internal/infra/tokeninfo"
	"github.com/todolist/todo-client/internal/tasklist"
)

// prompter reads answers for fields not given as flags.
type prompter struct {
	r   *bufio.Reader
	out io.Writer
}

func newPrompter(cmd *cobra.Command) *prompter {
	return &prompter{r: bufio.NewReader(cmd.InOrStdin()), out: cmd.ErrOrStderr()}
}

// fill asks for *v when it is empty.
func (p *prompter) fill(label string, v *string) error {
	if *v != "" {
		return nil
	}
	_, _ = fmt.Fprintf(p.out, "%s: ", label)
	line, err := p.r.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("read %s: %w", strings.ToLower(label), err)
	}
	*v = strings.TrimSpace(line)
	return nil
}

// reportAuthError shows the session error once, then clears it.
func reportAuthError(c *app.Container) error {
	if msg := c.Session.State().Error; msg != "" {
		c.Notifier.Notify(msg, domain.ToastError)
		c.Session.ResetError()
	}
	return ErrReported
}

func newLoginCommand(d *deps) *cobra.Command {
	var opts struct {
		Username string
		Password string
	}

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and store the access token",
		Long: `Sign in with username and password.

Missing values are read from stdin. The token and username are stored in
~/.config/todo/credentials.toml (mode 0600) until 'todo logout' or until the
server rejects the token.

Examples:
  todo login -u alice
  printf 'alice\nsecret\n' | todo login`,
		Args: cobra.NoArgs,
		RunE: d.run(func(cmd *cobra.Command, _ []string, c *app.Container) error {
			p := newPrompter(cmd)
			if err := p.fill("Username", &opts.Username); err != nil {
				return err
			}
			if err := p.fill("Password", &opts.Password); err != nil {
				return err
			}
			if opts.Username == "" || opts.Password == "" {
				c.Notifier.Notify(tasklist.MsgFillInAllFields, domain.ToastWarning)
				return ErrReported
			}

			if err := c.Auth.Login(cmd.Context(), opts.Username, opts.Password); err != nil {
				return reportAuthError(c)
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s\n", opts.Username)
			return nil
		}),
	}

	cmd.Flags().StringVarP(&opts.Username, "username", "u", "", "Username")
	cmd.Flags().StringVarP(&opts.Password, "password", "p", "", "Password (prompted when omitted)")

	return cmd
}

func newRegisterCommand(d *deps) *cobra.Command {
	var opts struct {
		Username string
		Email    string
		Password string
	}

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account and sign in",
		Long: `Create an account, then sign in with the same credentials.

Missing values are read from stdin.`,
		Args: cobra.NoArgs,
		RunE: d.run(func(cmd *cobra.Command, _ []string, c *app.Container) error {
			p := newPrompter(cmd)
			for _, f := range []struct {
				label string
				v     *string
			}{
				{"Username", &opts.Username},
				{"Email", &opts.Email},
				{"Password", &opts.Password},
			} {
				if err := p.fill(f.label, f.v); err != nil {
					return err
				}
			}
			if opts.Username == "" || opts.Email == "" || opts.Password == "" {
				c.Notifier.Notify(tasklist.MsgFillInAllFields, domain.ToastWarning)
				return ErrReported
			}

			if err := c.Auth.Register(cmd.Context(), opts.Username, opts.Password, opts.Email); err != nil {
				return reportAuthError(c)
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Registered and logged in as %s\n", opts.Username)
			return nil
		}),
	}

	cmd.Flags().StringVarP(&opts.Username, "username", "u", "", "Username")
	cmd.Flags().StringVarP(&opts.Email, "email", "e", "", "Email address")
	cmd.Flags().StringVarP(&opts.Password, "password", "p", "", "Password (prompted when omitted)")

	return cmd
}

func newLogoutCommand(d *deps) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored access token",
		Args:  cobra.NoArgs,
		RunE: d.run(func(cmd *cobra.Command, _ []string, c *app.Container) error {
			c.Session.Logout()
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Logged out")
			return nil
		}),
	}
}

func newStatusCommand(d *deps) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show who is signed in",
		Long: `Show the stored session and the API it talks to.

The session is read from disk only; the server is not contacted, so an
expired token is reported as signed in until the next request is refused.`,
		Args: cobra.NoArgs,
		RunE: d.run(func(cmd *cobra.Command, _ []string, c *app.Container) error {
			w := cmd.OutOrStdout()
			state := c.Session.State()

			_, _ = fmt.Fprintf(w, "API:     %s\n", c.API.BaseURL())
			if !state.IsAuthenticated() {
				_, _ = fmt.Fprintln(w, "Session: not logged in")
				return nil
			}
			_, _ = fmt.Fprintf(w, "Session: logged in as %s\n", state.Username())

			creds, err := c.Credentials.Load()
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(w, "Token:   %s\n", describeToken(creds.Token, c.Clock.Now()))
			return nil
		}),
	}
}

func describeToken(token string, now time.Time) string {
	info, err := tokeninfo.Inspect(token)
	if err != nil {
		return "opaque (expiry unknown)"
	}
	if info.ExpiresAt.IsZero() {
		return "no expiry"
	}
	if info.Expired(now) {
		return fmt.Sprintf("expired at %s", info.ExpiresAt.Local().Format("2006-01-02 15:04"))
	}
	return fmt.Sprintf("expires %s (in %s)",
		info.ExpiresAt.Local().Format("2006-01-02 15:04"),
		info.Remaining(now).Round(time.Minute))
}
