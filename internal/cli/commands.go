package cli

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"tally/internal/config"
	"tally/internal/core"
	"tally/internal/services"
	"tally/internal/storage"
)

const (
	exitOK      = 0
	exitFailure = 1
	exitUsage   = 2
)

// Run dispatches a single command invocation and returns the process exit
// code. Argument validation happens before any store access.
func Run(args []string) int {
	if len(args) == 0 {
		printUsage(os.Stderr)
		return exitUsage
	}

	cmd, rest := args[0], args[1:]
	if cmd == "help" || cmd == "-h" || cmd == "--help" {
		printUsage(os.Stdout)
		return exitOK
	}

	cfg := LoadConfig()
	ctx := context.Background()

	switch cmd {
	case "init":
		return runInit(cfg)
	case "add-user":
		return runAddUser(ctx, cfg, rest)
	case "set-budget":
		return runSetBudget(ctx, cfg, rest)
	case "add-expense":
		return runAddExpense(ctx, cfg, rest)
	case "report-total":
		return runReportTotal(ctx, cfg, rest)
	case "report-by-category":
		return runReportByCategory(ctx, cfg, rest)
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n", cmd)
		printUsage(os.Stderr)
		return exitUsage
	}
}

func runInit(cfg *config.Config) int {
	return withRepo(cfg, func(*storage.SQLiteRepository) error {
		fmt.Printf("Initialized database %q (tables: users, budgets, expenses).\n", cfg.DBPath)
		return nil
	})
}

func runAddUser(ctx context.Context, cfg *config.Config, args []string) int {
	fs := flag.NewFlagSet("add-user", flag.ContinueOnError)
	name := fs.String("name", "", "display name (required)")
	email := fs.String("email", "", "email address")
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}
	if *name == "" {
		return usageError(fs, "-name is required")
	}

	return withRepo(cfg, func(repo *storage.SQLiteRepository) error {
		u, err := repo.CreateUser(ctx, *name, optString(*email))
		if err != nil {
			return err
		}
		if u.Email != nil {
			fmt.Printf("Created user id=%d, name=%s, email=%s\n", u.ID, u.Name, *u.Email)
		} else {
			fmt.Printf("Created user id=%d, name=%s\n", u.ID, u.Name)
		}
		return nil
	})
}

func runSetBudget(ctx context.Context, cfg *config.Config, args []string) int {
	fs := flag.NewFlagSet("set-budget", flag.ContinueOnError)
	user := fs.Int64("user", 0, "user id (required)")
	category := fs.String("category", "", "category label (required)")
	year := fs.Int("year", 0, "calendar year (required)")
	month := fs.Int("month", 0, "calendar month 1-12 (required)")
	amountArg := fs.String("amount", "", "budget amount, e.g. 200 or 199.99 (required)")
	alertArg := fs.String("alert-pct", "", "alert threshold in percent remaining (default 10)")
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}

	if *user < 1 {
		return usageError(fs, "-user must be a positive id")
	}
	if *category == "" {
		return usageError(fs, "-category is required")
	}
	if err := core.ValidatePeriod(*year, *month); err != nil {
		return usageError(fs, err.Error())
	}
	amount, err := core.ParseBudgetAmount(*amountArg)
	if err != nil {
		return usageError(fs, fmt.Sprintf("-amount %q: %v", *amountArg, err))
	}
	var alertPct *float64
	if *alertArg != "" {
		pct, err := strconv.ParseFloat(*alertArg, 64)
		if err != nil || pct < 0 || pct > 100 {
			return usageError(fs, fmt.Sprintf("-alert-pct %q: must be a percentage between 0 and 100", *alertArg))
		}
		alertPct = &pct
	}

	return withRepo(cfg, func(repo *storage.SQLiteRepository) error {
		b, err := repo.UpsertBudget(ctx, core.Budget{
			UserID:   *user,
			Category: *category,
			Year:     *year,
			Month:    *month,
			Amount:   amount,
			AlertPct: alertPct,
		})
		if err != nil {
			return err
		}
		fmt.Printf("Saved budget id=%d: user=%d category=%s period=%04d-%02d amount=%s\n",
			b.ID, b.UserID, b.Category, b.Year, b.Month, b.Amount)
		return nil
	})
}

func runAddExpense(ctx context.Context, cfg *config.Config, args []string) int {
	fs := flag.NewFlagSet("add-expense", flag.ContinueOnError)
	user := fs.Int64("user", 0, "user id (required)")
	category := fs.String("category", "", "category label (required)")
	amountArg := fs.String("amount", "", "expense amount (required)")
	note := fs.String("note", "", "free-text note")
	dateArg := fs.String("date", "", "calendar day YYYY-MM-DD (default: today)")
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}

	if *user < 1 {
		return usageError(fs, "-user must be a positive id")
	}
	if *category == "" {
		return usageError(fs, "-category is required")
	}
	amount, err := core.ParseMoney(*amountArg)
	if err != nil {
		return usageError(fs, fmt.Sprintf("-amount %q: %v", *amountArg, err))
	}
	day := core.Today()
	if *dateArg != "" {
		day, err = core.ParseDate(*dateArg)
		if err != nil {
			return usageError(fs, err.Error())
		}
	}

	return withRepo(cfg, func(repo *storage.SQLiteRepository) error {
		svc := services.NewExpenseService(repo)
		saved, sig, err := svc.AddExpense(ctx, core.Expense{
			UserID:   *user,
			Category: *category,
			Amount:   amount,
			Note:     optString(*note),
			Date:     day,
		})
		if err != nil {
			return err
		}
		fmt.Printf("Added expense id=%d: user=%d category=%s amount=%s date=%s\n",
			saved.ID, saved.UserID, saved.Category, saved.Amount, saved.Date.ISO())
		printSignal(sig)
		return nil
	})
}

func runReportTotal(ctx context.Context, cfg *config.Config, args []string) int {
	fs := flag.NewFlagSet("report-total", flag.ContinueOnError)
	user := fs.Int64("user", 0, "user id (required)")
	year := fs.Int("year", 0, "calendar year (required)")
	month := fs.Int("month", 0, "calendar month 1-12 (required)")
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}
	if *user < 1 {
		return usageError(fs, "-user must be a positive id")
	}
	if err := core.ValidatePeriod(*year, *month); err != nil {
		return usageError(fs, err.Error())
	}

	return withRepo(cfg, func(repo *storage.SQLiteRepository) error {
		total, err := services.NewReportService(repo).MonthTotal(ctx, *user, *year, *month)
		if err != nil {
			return err
		}
		fmt.Printf("Total spending for user %d in %04d-%02d: %s\n", *user, *year, *month, total)
		return nil
	})
}

func runReportByCategory(ctx context.Context, cfg *config.Config, args []string) int {
	fs := flag.NewFlagSet("report-by-category", flag.ContinueOnError)
	user := fs.Int64("user", 0, "user id (required)")
	year := fs.Int("year", 0, "calendar year (required)")
	month := fs.Int("month", 0, "calendar month 1-12 (required)")
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}
	if *user < 1 {
		return usageError(fs, "-user must be a positive id")
	}
	if err := core.ValidatePeriod(*year, *month); err != nil {
		return usageError(fs, err.Error())
	}

	return withRepo(cfg, func(repo *storage.SQLiteRepository) error {
		report, err := services.NewReportService(repo).MonthByCategory(ctx, *user, *year, *month)
		if err != nil {
			return err
		}
		fmt.Printf("Spending by category for user %d in %04d-%02d:\n", *user, report.Year, report.Month)
		for _, line := range report.Lines {
			if line.Budget != nil {
				fmt.Printf("  %s: spent %s, budget %s\n", line.Category, line.Spent, *line.Budget)
			} else {
				fmt.Printf("  %s: spent %s\n", line.Category, line.Spent)
			}
		}
		return nil
	})
}

func printSignal(sig core.BudgetSignal) {
	switch sig.Kind {
	case core.SignalExceeded:
		fmt.Printf("WARNING: budget exceeded for %s: spent %s, budget %s\n",
			sig.Category, sig.Spent, sig.Budget)
	case core.SignalLowRemaining:
		fmt.Printf("ALERT: low budget remaining for %s: remaining %s (%.1f%% left)\n",
			sig.Category, sig.Remaining, sig.RemainingPct)
	case core.SignalNoBudget:
		fmt.Println("No budget set for this category/month (no alerts).")
	}
}

// withRepo opens the store, runs fn, and always closes the store again.
func withRepo(cfg *config.Config, fn func(repo *storage.SQLiteRepository) error) int {
	repo, err := openRepository(cfg)
	if err != nil {
		slog.Error("Failed to open database", "error", err, "path", cfg.DBPath)
		return exitFailure
	}
	defer repo.Close()

	if err := fn(repo); err != nil {
		slog.Error("Command failed", "error", err)
		return exitFailure
	}
	return exitOK
}

func usageError(fs *flag.FlagSet, msg string) int {
	fmt.Fprintf(os.Stderr, "%s: %s\n", fs.Name(), msg)
	fs.Usage()
	return exitUsage
}

func optString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func printUsage(w *os.File) {
	fmt.Fprint(w, `Usage: tally <command> [flags]

Commands:
  init                create the database tables if absent
  add-user            -name <name> [-email <email>]
  set-budget          -user <id> -category <label> -year <y> -month <1-12> -amount <n> [-alert-pct <0-100>]
  add-expense         -user <id> -category <label> -amount <n> [-note <text>] [-date <YYYY-MM-DD>]
  report-total        -user <id> -year <y> -month <1-12>
  report-by-category  -user <id> -year <y> -month <1-12>
`)
}
