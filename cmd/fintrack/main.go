package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"sort"
	"time"

	"fintrack/internal/auth"
	"fintrack/internal/backend"
	"fintrack/internal/cli"
	"fintrack/internal/core"
	"fintrack/internal/export"
	"fintrack/internal/log"
	"fintrack/internal/services"
	"fintrack/internal/transactions"
)

const usage = `Usage: fintrack <command> [flags]

Account:
  signup      Register a new account and sign in
  login       Sign in with email and password
  logout      Clear the active session
  whoami      Show the signed-in user

Transactions:
  add         Record a transaction
  list        Print all transactions, newest first
  update      Replace the fields of a transaction
  remove      Delete a transaction
  categories  List the known categories

Reports:
  stats       Monthly overview with category breakdowns
  export      Write the transaction list to a CSV file
  check       Verify stored data consistency
`

// app bundles what every subcommand needs.
type app struct {
	logger  *log.Logger
	backend backend.Backend
	auth    *auth.Service
	tx      *transactions.Service

	exportDir string
}

func main() {
	cli.LoadEnvFile()

	logger := cli.SetupLogger("info")
	cfg := cli.LoadAndValidateConfig(logger)
	if cfg.LogLevel != "info" {
		logger = cli.SetupLogger(cfg.LogLevel)
	}

	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	ctx := context.Background()
	result := cli.OpenBackend(ctx, logger, cfg)
	defer func() {
		if result.Cleanup != nil {
			if err := result.Cleanup(); err != nil {
				logger.Error("Backend cleanup failed", log.FieldError, err)
			}
		}
	}()

	a := &app{
		logger:    logger,
		backend:   result.Backend,
		auth:      auth.NewService(result.Backend),
		tx:        transactions.NewService(result.Backend),
		exportDir: cfg.ExportDir,
	}

	if err := a.run(ctx, os.Args[1], os.Args[2:]); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func (a *app) run(ctx context.Context, command string, args []string) error {
	switch command {
	case "signup":
		return a.signup(ctx, args)
	case "login":
		return a.login(ctx, args)
	case "logout":
		return a.auth.Logout(ctx)
	case "whoami":
		return a.whoami(ctx)
	case "add":
		return a.add(ctx, args)
	case "list":
		return a.list(ctx)
	case "update":
		return a.update(ctx, args)
	case "remove":
		return a.remove(ctx, args)
	case "categories":
		return a.categories(args)
	case "stats":
		return a.stats(ctx, args)
	case "export":
		return a.exportCSV(ctx)
	case "check":
		return a.check(ctx)
	default:
		fmt.Fprint(os.Stderr, usage)
		return fmt.Errorf("unknown command %q", command)
	}
}

// requireSession guards the commands that mutate or read personal data.
func (a *app) requireSession(ctx context.Context) (core.User, error) {
	user, ok, err := a.auth.CurrentSession(ctx)
	if err != nil {
		return core.User{}, err
	}
	if !ok {
		return core.User{}, errors.New("not signed in: run 'fintrack login' first")
	}
	return user, nil
}

func (a *app) signup(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("signup", flag.ExitOnError)
	email := fs.String("email", "", "account email")
	name := fs.String("name", "", "display name")
	if err := fs.Parse(args); err != nil {
		return err
	}

	password, err := cli.ReadPassword("Password: ")
	if err != nil {
		return err
	}

	user, err := a.auth.Signup(ctx, *email, password, *name)
	if err != nil {
		return err
	}
	fmt.Printf("Signed up as %s <%s>\n", user.Name, user.Email)
	return nil
}

func (a *app) login(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	email := fs.String("email", "", "account email")
	if err := fs.Parse(args); err != nil {
		return err
	}

	password, err := cli.ReadPassword("Password: ")
	if err != nil {
		return err
	}

	user, err := a.auth.Login(ctx, *email, password)
	if err != nil {
		return err
	}
	fmt.Printf("Signed in as %s <%s>\n", user.Name, user.Email)
	return nil
}

func (a *app) whoami(ctx context.Context) error {
	user, ok, err := a.auth.CurrentSession(ctx)
	if err != nil {
		return err
	}
	if !ok {
		fmt.Println("Not signed in")
		return nil
	}
	fmt.Printf("%s <%s>\n", user.Name, user.Email)
	return nil
}

// parseFields reads the shared transaction flags. The date defaults to
// today.
func parseFields(fs *flag.FlagSet, args []string) (core.TransactionFields, error) {
	typ := fs.String("type", "expense", "income or expense")
	amount := fs.String("amount", "", "decimal amount, e.g. 12.34")
	category := fs.String("category", "", "category name")
	description := fs.String("description", "", "free-form description")
	date := fs.String("date", "", "date as YYYY-MM-DD (default today)")
	if err := fs.Parse(args); err != nil {
		return core.TransactionFields{}, err
	}

	cents, err := core.ParseDecimalToCents(*amount)
	if err != nil {
		return core.TransactionFields{}, fmt.Errorf("invalid amount %q: %w", *amount, err)
	}

	when := core.DateOf(time.Now())
	if *date != "" {
		parsed, err := time.Parse("2006-01-02", *date)
		if err != nil {
			return core.TransactionFields{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", *date)
		}
		when = core.DateOf(parsed)
	}

	return core.TransactionFields{
		Type:        core.TransactionType(*typ),
		Amount:      core.Money{Cents: cents},
		Category:    *category,
		Description: *description,
		Date:        when,
	}, nil
}

func (a *app) add(ctx context.Context, args []string) error {
	if _, err := a.requireSession(ctx); err != nil {
		return err
	}

	fields, err := parseFields(flag.NewFlagSet("add", flag.ExitOnError), args)
	if err != nil {
		return err
	}

	t, err := a.tx.Add(ctx, fields)
	if err != nil {
		return err
	}
	fmt.Printf("Added %s %s %s (%s)\n", t.Date, t.Type, t.Amount.DisplayString(), t.ID)
	return nil
}

func (a *app) list(ctx context.Context) error {
	if _, err := a.requireSession(ctx); err != nil {
		return err
	}

	list, err := a.tx.List(ctx)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		fmt.Println("No transactions")
		return nil
	}
	for _, t := range list {
		fmt.Printf("%s  %s  %-7s %10s  %-20s %s\n",
			t.ID, t.Date, t.Type, t.Amount.DisplayString(), t.Category, t.Description)
	}
	return nil
}

func (a *app) update(ctx context.Context, args []string) error {
	if _, err := a.requireSession(ctx); err != nil {
		return err
	}

	fs := flag.NewFlagSet("update", flag.ExitOnError)
	id := fs.String("id", "", "transaction id")
	fields, err := parseFields(fs, args)
	if err != nil {
		return err
	}
	if *id == "" {
		return errors.New("missing -id")
	}

	if err := a.tx.Update(ctx, *id, fields); err != nil {
		return err
	}
	fmt.Println("Updated", *id)
	return nil
}

func (a *app) remove(ctx context.Context, args []string) error {
	if _, err := a.requireSession(ctx); err != nil {
		return err
	}

	fs := flag.NewFlagSet("remove", flag.ExitOnError)
	id := fs.String("id", "", "transaction id")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *id == "" {
		return errors.New("missing -id")
	}

	if err := a.tx.Remove(ctx, *id); err != nil {
		return err
	}
	fmt.Println("Removed", *id)
	return nil
}

func (a *app) categories(args []string) error {
	fs := flag.NewFlagSet("categories", flag.ExitOnError)
	typ := fs.String("type", "", "filter by income or expense")
	if err := fs.Parse(args); err != nil {
		return err
	}

	list := core.DefaultCategories
	if *typ != "" {
		list = core.CategoriesForType(core.TransactionType(*typ))
	}
	for _, c := range list {
		fmt.Printf("%-7s %s\n", c.Type, c.Name)
	}
	return nil
}

func (a *app) stats(ctx context.Context, args []string) error {
	if _, err := a.requireSession(ctx); err != nil {
		return err
	}

	fs := flag.NewFlagSet("stats", flag.ExitOnError)
	year := fs.Int("year", 0, "report year (default current)")
	month := fs.Int("month", 0, "report month 1-12 (default current)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	at := time.Now()
	if *year != 0 || *month != 0 {
		y, m := at.Year(), at.Month()
		if *year != 0 {
			y = *year
		}
		if *month != 0 {
			if *month < 1 || *month > 12 {
				return fmt.Errorf("invalid month %d", *month)
			}
			m = time.Month(*month)
		}
		at = time.Date(y, m, 1, 0, 0, 0, 0, time.UTC)
	}

	d, err := services.NewDashboardService(a.backend).Build(ctx, at)
	if err != nil {
		return err
	}

	fmt.Printf("%s %d\n", d.Month, d.Year)
	fmt.Printf("  Income:       %s\n", d.Income.DisplayString())
	fmt.Printf("  Expenses:     %s\n", d.Expenses.DisplayString())
	fmt.Printf("  Net:          %s\n", d.Net.DisplayString())
	fmt.Printf("  Savings rate: %.1f%%\n", d.SavingsRate)

	printBreakdown("Expenses by category", d.ExpensesByCategory)
	printBreakdown("Income by category", d.IncomeByCategory)

	if len(d.Recent) > 0 {
		fmt.Println("Recent:")
		for _, t := range d.Recent {
			fmt.Printf("  %s  %-7s %10s  %s\n", t.Date, t.Type, t.Amount.DisplayString(), t.Description)
		}
	}
	return nil
}

func printBreakdown(title string, sums map[string]core.Money) {
	if len(sums) == 0 {
		return
	}
	names := make([]string, 0, len(sums))
	for name := range sums {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Println(title + ":")
	for _, name := range names {
		fmt.Printf("  %-20s %10s\n", name, sums[name].DisplayString())
	}
}

func (a *app) exportCSV(ctx context.Context) error {
	if _, err := a.requireSession(ctx); err != nil {
		return err
	}

	list, err := a.tx.List(ctx)
	if err != nil {
		return err
	}
	path, err := export.WriteFile(a.exportDir, time.Now(), list)
	if err != nil {
		return err
	}
	a.logger.InfoContext(ctx, "Exported transactions", log.FieldPath, path, log.FieldCount, len(list))
	fmt.Println("Wrote", path)
	return nil
}

func (a *app) check(ctx context.Context) error {
	report, err := services.NewIntegrityService(a.backend).Check(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("%d users, %d credentials, %d transactions\n",
		report.Users, report.Credentials, report.Transactions)
	if report.OK() {
		fmt.Println("OK")
		return nil
	}
	for _, finding := range report.Findings {
		fmt.Println("-", finding)
	}
	return fmt.Errorf("%d integrity findings", len(report.Findings))
}
