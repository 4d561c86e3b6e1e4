package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/target/mmk-mobile-client/config"
	"github.com/target/mmk-mobile-client/internal/bootstrap"
	"github.com/target/mmk-mobile-client/internal/service"
)

type commandFn func(ctx *commandContext, args []string) error

type command struct {
	name        string
	description string
	run         commandFn
}

type commandContext struct {
	Ctx    context.Context
	Logger *slog.Logger
	Config config.AppConfig
}

func main() {
	logger := bootstrap.InitLogger()

	if len(os.Args) < 2 {
		if err := printUsage(); err != nil {
			logger.Error("print usage failed", "error", err)
		}
		os.Exit(2) //nolint:forbidigo // CLI must exit with failure status when no command is provided
	}

	cmdName := os.Args[1]
	cmd, ok := commands()[cmdName]
	if !ok {
		if err := writef(os.Stderr, "unknown command %q\n\n", cmdName); err != nil {
			logger.Error("print unknown command message failed", "error", err)
		}
		if err := printUsage(); err != nil {
			logger.Error("print usage failed", "error", err)
		}
		os.Exit(2) //nolint:forbidigo // CLI must exit with failure status when command is unknown
	}

	cfg, err := bootstrap.LoadConfig()
	if err != nil {
		logger.ErrorContext(context.Background(), "load config", "error", err)
		os.Exit(1) //nolint:forbidigo // CLI must signal configuration load failure to shell scripts
	}

	cmdCtx := &commandContext{
		Ctx:    context.Background(),
		Logger: logger,
		Config: cfg,
	}
	if runErr := cmd.run(cmdCtx, os.Args[2:]); runErr != nil {
		logger.ErrorContext(cmdCtx.Ctx, "command failed", "command", cmdName, "error", runErr)
		os.Exit(1) //nolint:forbidigo // CLI must propagate command execution failure to callers
	}
}

func commands() map[string]command {
	return map[string]command{
		"login": {
			name:        "login",
			description: "Log in to the account service and persist the session",
			run:         runLogin,
		},
		"register": {
			name:        "register",
			description: "Create a new account and persist the profile",
			run:         runRegister,
		},
		"logout": {
			name:        "logout",
			description: "Clear the session and remove stored credentials",
			run:         runLogout,
		},
		"whoami": {
			name:        "whoami",
			description: "Print the stored session, if any",
			run:         runWhoami,
		},
	}
}

// consoleNavigator receives the post-login navigation signal. A terminal has
// no home screen, so it just acknowledges where the app would go.
type consoleNavigator struct{}

func (consoleNavigator) Home() {
	_ = writef(os.Stdout, "→ Trang chủ\n")
}

func buildServices(ctx *commandContext) (*bootstrap.Services, error) {
	return bootstrap.NewServices(&bootstrap.ServiceDeps{
		Config:    &ctx.Config,
		Logger:    ctx.Logger,
		Navigator: consoleNavigator{},
	})
}

func runLogin(ctx *commandContext, args []string) error {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *email == "" || *password == "" {
		return fmt.Errorf("both -email and -password are required")
	}

	services, err := buildServices(ctx)
	if err != nil {
		return err
	}
	defer closeServices(ctx, services)

	if err := services.Auth.Hydrate(ctx.Ctx); err != nil {
		ctx.Logger.WarnContext(ctx.Ctx, "hydration failed", "error", err)
	}

	outcome := services.Auth.Login(ctx.Ctx, service.LoginInput{
		Email:    *email,
		Password: *password,
	})
	return reportOutcome(outcome)
}

func runRegister(ctx *commandContext, args []string) error {
	fs := flag.NewFlagSet("register", flag.ExitOnError)
	firstName := fs.String("first-name", "", "first name")
	lastName := fs.String("last-name", "", "last name")
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password")
	confirm := fs.String("confirm-password", "", "repeat the password")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *firstName == "" || *lastName == "" || *email == "" || *password == "" {
		return fmt.Errorf("-first-name, -last-name, -email, and -password are required")
	}
	// local field validation; the confirmation never reaches the service
	if *confirm != *password {
		return fmt.Errorf("password confirmation does not match")
	}

	services, err := buildServices(ctx)
	if err != nil {
		return err
	}
	defer closeServices(ctx, services)

	if err := services.Auth.Hydrate(ctx.Ctx); err != nil {
		ctx.Logger.WarnContext(ctx.Ctx, "hydration failed", "error", err)
	}

	outcome := services.Auth.Register(ctx.Ctx, service.RegisterInput{
		FirstName:       *firstName,
		LastName:        *lastName,
		Email:           *email,
		Password:        *password,
		ConfirmPassword: *confirm,
	})
	return reportOutcome(outcome)
}

func runLogout(ctx *commandContext, args []string) error {
	fs := flag.NewFlagSet("logout", flag.ExitOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}

	services, err := buildServices(ctx)
	if err != nil {
		return err
	}
	defer closeServices(ctx, services)

	if err := services.Auth.Hydrate(ctx.Ctx); err != nil {
		ctx.Logger.WarnContext(ctx.Ctx, "hydration failed", "error", err)
	}

	services.Auth.Logout(ctx.Ctx)
	return writef(os.Stdout, "Đã đăng xuất\n")
}

func runWhoami(ctx *commandContext, args []string) error {
	fs := flag.NewFlagSet("whoami", flag.ExitOnError)
	asJSON := fs.Bool("json", false, "print the profile as JSON")
	if err := fs.Parse(args); err != nil {
		return err
	}

	services, err := buildServices(ctx)
	if err != nil {
		return err
	}
	defer closeServices(ctx, services)

	if err := services.Auth.Hydrate(ctx.Ctx); err != nil {
		return err
	}

	sess := services.State.Read()
	if !sess.Present() {
		return writef(os.Stdout, "not logged in\n")
	}

	if *asJSON {
		encoded, err := json.MarshalIndent(sess.Profile, "", "  ")
		if err != nil {
			return fmt.Errorf("encode profile: %w", err)
		}
		return writef(os.Stdout, "%s\n", encoded)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "id\t%s\n", sess.Profile.ID)
	fmt.Fprintf(w, "email\t%s\n", sess.Profile.Email)
	fmt.Fprintf(w, "verified\t%t\n", sess.Profile.EmailVerified)
	fmt.Fprintf(w, "role\t%s\n", sess.Profile.Role)
	return w.Flush()
}

func reportOutcome(outcome service.Outcome) error {
	if outcome.Succeeded() {
		return writef(os.Stdout, "%s\n", outcome.Message)
	}
	if err := writef(os.Stderr, "%s\n", outcome.Message); err != nil {
		return err
	}
	if outcome.Err != nil {
		return outcome.Err
	}
	return fmt.Errorf("%s", outcome.Message)
}

func closeServices(ctx *commandContext, services *bootstrap.Services) {
	if err := services.Close(); err != nil {
		ctx.Logger.WarnContext(ctx.Ctx, "close services failed", "error", err)
	}
}

func printUsage() error {
	if err := writef(os.Stderr, "usage: accountctl <command> [flags]\n\ncommands:\n"); err != nil {
		return err
	}

	cmds := commands()
	names := make([]string, 0, len(cmds))
	for name := range cmds {
		names = append(names, name)
	}
	sort.Strings(names)

	w := tabwriter.NewWriter(os.Stderr, 0, 4, 2, ' ', 0)
	for _, name := range names {
		fmt.Fprintf(w, "  %s\t%s\n", name, cmds[name].description)
	}
	return w.Flush()
}

func writef(w io.Writer, format string, args ...any) error {
	_, err := fmt.Fprintf(w, format, args...)
	return err
}
