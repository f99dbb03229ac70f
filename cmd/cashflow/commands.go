package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/kwadhq/cashflow-commander/internal/config"
	"github.com/kwadhq/cashflow-commander/internal/domain"
	"github.com/kwadhq/cashflow-commander/internal/export"
	"github.com/kwadhq/cashflow-commander/internal/service"
	"github.com/kwadhq/cashflow-commander/internal/util"
	"github.com/shopspring/decimal"
)

const dateLayout = "2006-01-02"

// app is the local interactive client. It is presentation glue only: it
// authenticates once per invocation, holds the resulting session and
// dispatches to the core services with the session's owner scope.
type app struct {
	cfg          *config.Config
	transactions *service.TransactionService
	categories   *service.CategoryService
	reports      *service.ReportService
	auth         *service.AuthService
	stdin        *bufio.Reader
	stdout       io.Writer
}

func (a *app) run(args []string) error {
	if len(args) == 0 {
		a.usage()
		return nil
	}

	cmd, rest := args[0], args[1:]

	// signup is the only command available without credentials
	if cmd == "signup" {
		return a.cmdSignup(rest)
	}
	if cmd == "help" {
		a.usage()
		return nil
	}

	session, err := a.login()
	if err != nil {
		return err
	}

	switch cmd {
	case "add":
		return a.cmdAdd(session, rest)
	case "edit":
		return a.cmdEdit(session, rest)
	case "delete":
		return a.cmdDelete(session, rest)
	case "list":
		return a.cmdList(session, rest)
	case "categories":
		return a.cmdCategories(rest)
	case "dashboard":
		return a.cmdDashboard(session, rest)
	case "balance":
		return a.cmdBalance(session)
	case "report":
		return a.cmdReport(session, rest)
	case "export":
		return a.cmdExport(session, rest)
	case "reset":
		return a.cmdReset(session, rest)
	case "passwd":
		return a.cmdPasswd(session, rest)
	case "useradd":
		return a.cmdUserAdd(session, rest)
	case "users":
		return a.cmdUsers(session)
	case "logins":
		return a.cmdLogins(session)
	default:
		a.usage()
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func (a *app) usage() {
	fmt.Fprintln(a.stdout, `cashflow - personal finance ledger

Usage: cashflow <command> [flags]

Commands:
  signup       create an account
  add          add a transaction
  edit         edit a transaction by id
  delete       delete a transaction by id
  list         list transactions
  categories   list registered categories
  dashboard    monthly income/expenses/net and overall balance
  balance      cumulative balance series
  report       monthly per-category pivot
  export       write transactions or the monthly pivot as CSV
  reset        delete all of your transactions
  passwd       change a password
  useradd      add a user (admin)
  users        list users (admin)
  logins       show the login log (admin)

Credentials are read from CASHFLOW_USER / CASHFLOW_PASSWORD or prompted.`)
}

// login authenticates from env or interactive prompts and returns the session.
func (a *app) login() (*domain.Session, error) {
	username := os.Getenv("CASHFLOW_USER")
	if username == "" {
		var err error
		username, err = a.prompt("Username: ")
		if err != nil {
			return nil, err
		}
	}
	password := os.Getenv("CASHFLOW_PASSWORD")
	if password == "" {
		var err error
		password, err = a.prompt("Password: ")
		if err != nil {
			return nil, err
		}
	}
	return a.auth.Login(username, password)
}

func (a *app) prompt(label string) (string, error) {
	fmt.Fprint(os.Stderr, label)
	line, err := a.stdin.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func (a *app) cmdSignup(args []string) error {
	fs := flag.NewFlagSet("signup", flag.ContinueOnError)
	user := fs.String("user", "", "username")
	if err := fs.Parse(args); err != nil {
		return err
	}

	username := *user
	if username == "" {
		var err error
		username, err = a.prompt("New username: ")
		if err != nil {
			return err
		}
	}
	password, err := a.prompt("New password: ")
	if err != nil {
		return err
	}
	confirm, err := a.prompt("Confirm password: ")
	if err != nil {
		return err
	}
	if password != confirm {
		return fmt.Errorf("passwords do not match")
	}

	if _, err := a.auth.AddUser(username, password, domain.RoleUser); err != nil {
		return err
	}
	fmt.Fprintln(a.stdout, "Account created. Please login.")
	return nil
}

func (a *app) parseInput(fs *flag.FlagSet, args []string) (*service.TransactionInput, error) {
	date := fs.String("date", time.Now().Format(dateLayout), "transaction date (YYYY-MM-DD)")
	kind := fs.String("type", "", "Income or Expense")
	category := fs.String("category", "", "category name")
	amount := fs.String("amount", "", "positive amount")
	memo := fs.String("memo", "", "optional memo")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	parsedDate, err := time.Parse(dateLayout, *date)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", *date)
	}
	parsedAmount, err := decimal.NewFromString(*amount)
	if err != nil {
		return nil, fmt.Errorf("invalid amount %q", *amount)
	}

	return &service.TransactionInput{
		Date:     parsedDate,
		Kind:     domain.Kind(*kind),
		Category: *category,
		Amount:   parsedAmount,
		Memo:     *memo,
	}, nil
}

func (a *app) cmdAdd(session *domain.Session, args []string) error {
	fs := flag.NewFlagSet("add", flag.ContinueOnError)
	input, err := a.parseInput(fs, args)
	if err != nil {
		return err
	}

	tx, err := a.transactions.Add(session.Username, *input)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.stdout, "Saved transaction %d\n", tx.ID)
	return nil
}

func (a *app) cmdEdit(session *domain.Session, args []string) error {
	fs := flag.NewFlagSet("edit", flag.ContinueOnError)
	id := fs.Int64("id", 0, "transaction id")
	input, err := a.parseInput(fs, args)
	if err != nil {
		return err
	}
	if *id == 0 {
		return fmt.Errorf("-id is required")
	}

	tx, err := a.transactions.Update(session.Username, *id, *input)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.stdout, "Updated transaction %d\n", tx.ID)
	return nil
}

func (a *app) cmdDelete(session *domain.Session, args []string) error {
	fs := flag.NewFlagSet("delete", flag.ContinueOnError)
	id := fs.Int64("id", 0, "transaction id")
	yes := fs.Bool("yes", false, "confirm deletion")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *id == 0 {
		return fmt.Errorf("-id is required")
	}
	if !*yes {
		return fmt.Errorf("pass -yes to confirm deletion")
	}

	if err := a.transactions.Delete(session.Username, *id); err != nil {
		return err
	}
	fmt.Fprintln(a.stdout, "Deleted.")
	return nil
}

func (a *app) cmdList(session *domain.Session, args []string) error {
	fs := flag.NewFlagSet("list", flag.ContinueOnError)
	kind := fs.String("type", "", "filter by Income or Expense")
	category := fs.String("category", "", "filter by category")
	from := fs.String("from", "", "start date (YYYY-MM-DD)")
	to := fs.String("to", "", "end date (YYYY-MM-DD)")
	asc := fs.Bool("asc", false, "oldest first")
	if err := fs.Parse(args); err != nil {
		return err
	}

	filters := &domain.TransactionFilters{SortAscending: *asc}
	if *kind != "" {
		k := domain.Kind(*kind)
		filters.Kind = &k
	}
	if *category != "" {
		filters.Category = category
	}
	if *from != "" {
		t, err := time.Parse(dateLayout, *from)
		if err != nil {
			return fmt.Errorf("invalid -from date %q", *from)
		}
		filters.StartDate = &t
	}
	if *to != "" {
		t, err := time.Parse(dateLayout, *to)
		if err != nil {
			return fmt.Errorf("invalid -to date %q", *to)
		}
		filters.EndDate = &t
	}

	transactions, err := a.transactions.List(session.Username, filters)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(a.stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tDATE\tTYPE\tCATEGORY\tAMOUNT\tMEMO")
	for _, tx := range transactions {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n",
			tx.ID, tx.Date.Format(dateLayout), tx.Kind, tx.Category,
			formatAmount(tx.Amount, a.cfg.Currency), tx.Memo)
	}
	return w.Flush()
}

func (a *app) cmdCategories(args []string) error {
	fs := flag.NewFlagSet("categories", flag.ContinueOnError)
	kind := fs.String("type", "", "filter by Income or Expense")
	if err := fs.Parse(args); err != nil {
		return err
	}

	var kindFilter *domain.Kind
	if *kind != "" {
		k := domain.Kind(*kind)
		kindFilter = &k
	}

	categories, err := a.categories.List(kindFilter)
	if err != nil {
		return err
	}
	for _, c := range categories {
		fmt.Fprintf(a.stdout, "%s (%s)\n", c.Name, c.Kind)
	}
	return nil
}

// parseMonth reads -year/-month flags, defaulting to the current month, with
// -prev stepping one month back.
func (a *app) parseMonth(fs *flag.FlagSet, args []string) (int, int, error) {
	now := time.Now()
	year := fs.Int("year", now.Year(), "report year")
	month := fs.Int("month", int(now.Month()), "report month (1-12)")
	prev := fs.Bool("prev", false, "use the previous month")
	if err := fs.Parse(args); err != nil {
		return 0, 0, err
	}
	y, m := *year, *month
	if *prev {
		y, m = util.PreviousMonth(y, m)
	}
	return y, m, nil
}

func (a *app) cmdDashboard(session *domain.Session, args []string) error {
	fs := flag.NewFlagSet("dashboard", flag.ContinueOnError)
	year, month, err := a.parseMonth(fs, args)
	if err != nil {
		return err
	}

	metrics, err := a.reports.DashboardMetrics(session.Username, year, month)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.stdout, "%s %d\n", time.Month(month), year)
	fmt.Fprintf(a.stdout, "  Income:    %s\n", formatAmount(metrics.Income, a.cfg.Currency))
	fmt.Fprintf(a.stdout, "  Expenses:  %s\n", formatAmount(metrics.Expenses, a.cfg.Currency))
	fmt.Fprintf(a.stdout, "  Net flow:  %s\n", formatAmount(metrics.Net, a.cfg.Currency))
	fmt.Fprintf(a.stdout, "  Balance:   %s\n", formatAmount(metrics.Balance, a.cfg.Currency))
	return nil
}

func (a *app) cmdBalance(session *domain.Session) error {
	series, err := a.reports.CumulativeBalance(session.Username)
	if err != nil {
		return err
	}
	if len(series) == 0 {
		fmt.Fprintln(a.stdout, "No transactions yet.")
		return nil
	}

	w := tabwriter.NewWriter(a.stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "DATE\tBALANCE")
	for _, point := range series {
		fmt.Fprintf(w, "%s\t%s\n", point.Date.Format(dateLayout), formatAmount(point.Balance, a.cfg.Currency))
	}
	return w.Flush()
}

func (a *app) cmdReport(session *domain.Session, args []string) error {
	fs := flag.NewFlagSet("report", flag.ContinueOnError)
	year, month, err := a.parseMonth(fs, args)
	if err != nil {
		return err
	}

	rows, err := a.reports.CategoryNet(session.Username, year, month)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		fmt.Fprintf(a.stdout, "No transactions for %s %d.\n", time.Month(month), year)
		return nil
	}

	w := tabwriter.NewWriter(a.stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "CATEGORY\tINCOME\tEXPENSE\tNET")
	for _, row := range rows {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", row.Category,
			formatAmount(row.Income, a.cfg.Currency),
			formatAmount(row.Expense, a.cfg.Currency),
			formatAmount(row.Net, a.cfg.Currency))
	}
	return w.Flush()
}

func (a *app) cmdExport(session *domain.Session, args []string) error {
	fs := flag.NewFlagSet("export", flag.ContinueOnError)
	scope := fs.String("scope", "transactions", "transactions or summary")
	out := fs.String("out", "", "output file (default stdout)")
	year, month, err := a.parseMonth(fs, args)
	if err != nil {
		return err
	}

	w := a.stdout
	if *out != "" {
		f, err := os.Create(*out)
		if err != nil {
			return fmt.Errorf("create output file: %w", err)
		}
		defer f.Close()
		w = f
	}

	switch *scope {
	case "transactions":
		transactions, err := a.transactions.List(session.Username, nil)
		if err != nil {
			return err
		}
		return export.Transactions(w, transactions)
	case "summary":
		rows, err := a.reports.CategoryNet(session.Username, year, month)
		if err != nil {
			return err
		}
		return export.MonthlyPivot(w, rows)
	default:
		return fmt.Errorf("unknown scope %q", *scope)
	}
}

func (a *app) cmdReset(session *domain.Session, args []string) error {
	fs := flag.NewFlagSet("reset", flag.ContinueOnError)
	yes := fs.Bool("yes", false, "confirm wiping all your transactions")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if !*yes {
		return fmt.Errorf("pass -yes to confirm; this deletes every transaction you own")
	}

	if err := a.transactions.DeleteAll(session.Username); err != nil {
		return err
	}
	fmt.Fprintln(a.stdout, "All transactions deleted.")
	return nil
}

func (a *app) cmdPasswd(session *domain.Session, args []string) error {
	fs := flag.NewFlagSet("passwd", flag.ContinueOnError)
	user := fs.String("user", "", "target username (admin only, defaults to yourself)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	target := *user
	if target == "" {
		target = session.Username
	}
	if target != session.Username && !session.IsAdmin() {
		return domain.ErrForbidden
	}

	password, err := a.prompt("New password: ")
	if err != nil {
		return err
	}
	confirm, err := a.prompt("Confirm password: ")
	if err != nil {
		return err
	}
	if password != confirm {
		return fmt.Errorf("passwords do not match")
	}

	if err := a.auth.UpdatePassword(target, password); err != nil {
		return err
	}
	fmt.Fprintf(a.stdout, "Password for %s updated.\n", target)
	return nil
}

func (a *app) cmdUserAdd(session *domain.Session, args []string) error {
	if !session.IsAdmin() {
		return domain.ErrForbidden
	}

	fs := flag.NewFlagSet("useradd", flag.ContinueOnError)
	user := fs.String("user", "", "username")
	role := fs.String("role", "user", "user or admin")
	if err := fs.Parse(args); err != nil {
		return err
	}

	password, err := a.prompt("Password: ")
	if err != nil {
		return err
	}

	created, err := a.auth.AddUser(*user, password, domain.Role(*role))
	if err != nil {
		return err
	}
	fmt.Fprintf(a.stdout, "User %s (%s) created.\n", created.Username, created.Role)
	return nil
}

func (a *app) cmdUsers(session *domain.Session) error {
	users, err := a.auth.ListUsers(session)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(a.stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "USERNAME\tROLE\tCREATED")
	for _, u := range users {
		fmt.Fprintf(w, "%s\t%s\t%s\n", u.Username, u.Role, u.CreatedAt.Format(time.RFC3339))
	}
	return w.Flush()
}

func (a *app) cmdLogins(session *domain.Session) error {
	entries, err := a.auth.ListLoginLogs(session)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(a.stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "TIME\tUSERNAME\tSTATUS")
	for _, e := range entries {
		fmt.Fprintf(w, "%s\t%s\t%s\n", e.LoginTime.Format(time.RFC3339), e.Username, e.Status)
	}
	return w.Flush()
}
