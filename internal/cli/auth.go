// auth.go implements the login, register, logout, and whoami commands.
package cli

import (
	"fmt"
	"os"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/liftlog-dev/liftlog/internal/apperr"
	"github.com/liftlog-dev/liftlog/internal/session"
)

var loginEmail string

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in to the liftlog server",
	Long: `Sign in with your e-mail and password. The password is read from
the terminal without echo. On success the session is persisted and
reused by later commands until you log out.`,
	RunE: runLogin,
}

func runLogin(cmd *cobra.Command, args []string) error {
	appCtx, err := newAppContext()
	if err != nil {
		return err
	}
	defer appCtx.Close()

	email := loginEmail
	if email == "" {
		fmt.Print("E-mail: ")
		if _, err := fmt.Scanln(&email); err != nil {
			return fmt.Errorf("reading e-mail: %w", err)
		}
	}

	password, err := readPassword("Password: ")
	if err != nil {
		return err
	}

	if err := appCtx.manager.SignIn(cmd.Context(), email, password); err != nil {
		return fmt.Errorf("%s", apperr.Display(err, "Could not sign in. Is the server reachable?"))
	}

	fmt.Printf("Signed in as %s\n", appCtx.manager.Current().Name)
	return nil
}

var registerName string
var registerEmail string

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create an account and sign in",
	RunE:  runRegister,
}

func runRegister(cmd *cobra.Command, args []string) error {
	appCtx, err := newAppContext()
	if err != nil {
		return err
	}
	defer appCtx.Close()

	name := registerName
	if name == "" {
		fmt.Print("Name: ")
		if _, err := fmt.Scanln(&name); err != nil {
			return fmt.Errorf("reading name: %w", err)
		}
	}
	email := registerEmail
	if email == "" {
		fmt.Print("E-mail: ")
		if _, err := fmt.Scanln(&email); err != nil {
			return fmt.Errorf("reading e-mail: %w", err)
		}
	}

	password, err := readPassword("Password: ")
	if err != nil {
		return err
	}
	confirm, err := readPassword("Confirm password: ")
	if err != nil {
		return err
	}

	if err := appCtx.manager.SignUp(cmd.Context(), name, email, password, confirm); err != nil {
		return fmt.Errorf("%s", apperr.Display(err, "Could not create the account. Is the server reachable?"))
	}

	fmt.Printf("Account created. Signed in as %s\n", appCtx.manager.Current().Name)
	return nil
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out and clear the persisted session",
	RunE: func(cmd *cobra.Command, args []string) error {
		appCtx, err := newAppContext()
		if err != nil {
			return err
		}
		defer appCtx.Close()

		appCtx.manager.SignOut()
		fmt.Println("Signed out.")
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the signed-in user",
	RunE: func(cmd *cobra.Command, args []string) error {
		appCtx, err := newAppContext()
		if err != nil {
			return err
		}
		defer appCtx.Close()

		if appCtx.manager.State() != session.Authenticated {
			return fmt.Errorf("not signed in; run: liftlog login")
		}

		user := appCtx.manager.Current()
		fmt.Printf("%s <%s>\n", user.Name, user.Email)
		if user.Avatar != "" {
			fmt.Printf("Avatar: %s\n", user.Avatar)
		}
		return nil
	},
}

// readPassword reads a password from the terminal without echo, falling
// back to a plain line read when stdin is not a terminal (piped input).
func readPassword(prompt string) (string, error) {
	fmt.Print(prompt)
	if term.IsTerminal(int(syscall.Stdin)) {
		raw, err := term.ReadPassword(int(syscall.Stdin))
		fmt.Println()
		if err != nil {
			return "", fmt.Errorf("reading password: %w", err)
		}
		return string(raw), nil
	}

	var line string
	if _, err := fmt.Fscanln(os.Stdin, &line); err != nil {
		return "", fmt.Errorf("reading password: %w", err)
	}
	return line, nil
}

func init() {
	loginCmd.Flags().StringVar(&loginEmail, "email", "", "E-mail to sign in with (prompted when omitted)")
	registerCmd.Flags().StringVar(&registerName, "name", "", "Account holder name (prompted when omitted)")
	registerCmd.Flags().StringVar(&registerEmail, "email", "", "E-mail for the new account (prompted when omitted)")
}
