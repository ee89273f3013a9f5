// Command adminctl bootstraps back-office accounts.
//
//	adminctl hash -password 's3cret!'
//	adminctl create -username maison -password 's3cret!'
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/MikeMC777/boutique-ecom/internal/admin"
	"github.com/MikeMC777/boutique-ecom/internal/config"
	"github.com/MikeMC777/boutique-ecom/internal/db"
	"github.com/MikeMC777/boutique-ecom/internal/logging"
)

const usage = `usage:
  adminctl hash   -password <pw> [-username <name>]
  adminctl create -username <name> -password <pw>
`

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "adminctl:", err)
		os.Exit(1)
	}
}

func run(args []string, out io.Writer) error {
	if len(args) == 0 {
		return errors.New(strings.TrimSpace(usage))
	}
	switch args[0] {
	case "hash":
		return runHash(args[1:], out)
	case "create":
		return runCreate(args[1:], out)
	default:
		return fmt.Errorf("unknown command %q\n%s", args[0], usage)
	}
}

// runHash prints a bcrypt hash and the matching insert, for databases the
// tool cannot reach.
func runHash(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("hash", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	pw := fs.String("password", "", "password to hash")
	user := fs.String("username", "admin", "username for the generated insert")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *pw == "" {
		return errors.New("-password is required")
	}
	hash, err := admin.HashPassword(*pw)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, hash)
	fmt.Fprintf(out, "INSERT INTO admins (id, username, password_hash) VALUES (gen_random_uuid(), '%s', '%s');\n",
		strings.ReplaceAll(*user, "'", "''"), hash)
	return nil
}

func runCreate(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("create", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	user := fs.String("username", "", "admin username")
	pw := fs.String("password", "", "admin password")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *user == "" || *pw == "" {
		return errors.New("-username and -password are required")
	}

	log := logging.New("warn", false)
	cfg, err := config.Load(log)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := db.Connect(ctx, cfg.PostgresDSN)
	if err != nil {
		return err
	}
	defer pool.Close()

	svc := admin.NewService(admin.NewPGRepo(pool), admin.NewTokens(cfg.SessionSecret), log)
	a, err := svc.Create(ctx, *user, *pw)
	if err != nil {
		if errors.Is(err, admin.ErrAlreadyExist) {
			return fmt.Errorf("admin %q already exists", *user)
		}
		return err
	}
	fmt.Fprintf(out, "created admin %s (%s)\n", a.Username, a.ID)
	return nil
}
