package main

import (
	stdcontext "context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/devshahid/moneymind/pkg/domain"
)

type loginCmd struct {
	Email    string `required:"" help:"Account email."`
	Password string `required:"" help:"Account password."`
}

func (l *loginCmd) Run(ctx *context) error {
	cl, err := ctx.client()
	if err != nil {
		return err
	}

	tkn, err := cl.Login(stdcontext.Background(), l.Email, l.Password)
	if err != nil {
		return err
	}

	if err := ctx.tokens().Save(tkn); err != nil {
		return err
	}
	fmt.Println("logged in")
	return nil
}

type registerCmd struct {
	Name     string `required:"" help:"Display name."`
	Email    string `required:"" help:"Account email."`
	Password string `required:"" help:"Account password."`
}

func (r *registerCmd) Run(ctx *context) error {
	cl, err := ctx.client()
	if err != nil {
		return err
	}

	if err := cl.Register(stdcontext.Background(), r.Name, r.Email, r.Password); err != nil {
		return err
	}
	fmt.Println("registered, now log in")
	return nil
}

type logoutCmd struct{}

func (l *logoutCmd) Run(ctx *context) error {
	cl, err := ctx.client()
	if err != nil {
		return err
	}

	// tell the server, but drop the token either way
	if err := cl.Logout(stdcontext.Background()); err != nil {
		ctx.log.WithError(err).Warn("server logout failed")
	}
	return ctx.tokens().Clear()
}

type listCmd struct {
	Page  int `default:"1" help:"Page number."`
	Limit int `default:"20" help:"Page size."`

	From     string   `help:"Start date (YYYY-MM-DD)."`
	To       string   `help:"End date (YYYY-MM-DD)."`
	Bank     string   `help:"Filter by bank name."`
	Type     string   `help:"credit or debit."`
	Label    []string `help:"Filter by label."`
	Category []string `help:"Filter by category."`
	Keyword  string   `help:"Free text search."`

	Out string `help:"Also export the merged list [jsonfile:/path/file.json es8:http://myelasticsearch:9200]"`
}

func (l *listCmd) Run(ctx *context) error {
	container, edits, err := ctx.container()
	if err != nil {
		return err
	}
	defer container.Close()
	defer edits.Close()

	filter := domain.ListFilter{
		Page:       l.Page,
		Limit:      l.Limit,
		StartDate:  l.From,
		EndDate:    l.To,
		BankName:   l.Bank,
		Type:       l.Type,
		Labels:     l.Label,
		Categories: l.Category,
		Keyword:    l.Keyword,
	}

	if err := container.ListTransactions(stdcontext.Background(), filter); err != nil {
		return err
	}

	st := container.Snapshot()
	if err := printJSON(st.Transactions); err != nil {
		return err
	}
	fmt.Printf("page %d, %d total", st.Page, st.TotalCount)
	if st.HasLocalEdits {
		fmt.Print(" (includes unsynced local edits, run `moneymind sync`)")
	}
	fmt.Println()

	if l.Out == "" {
		return nil
	}

	sink, err := getSink(ctx.log, l.Out)
	if err != nil {
		return err
	}
	return sink.Write(st.Transactions)
}

type editCmd struct {
	ID string `required:"" help:"Transaction id to edit."`

	Notes    *string  `help:"New note."`
	Category *string  `help:"New category."`
	Label    []string `help:"Replace the label list."`
}

func (e *editCmd) Run(ctx *context) error {
	container, edits, err := ctx.container()
	if err != nil {
		return err
	}
	defer container.Close()
	defer edits.Close()

	// staging replaces any earlier patch for this id wholesale, so start
	// from the pending one to carry its fields forward
	patch := &domain.TransactionPatch{ID: e.ID}
	pending, err := edits.AllTransactionEdits()
	if err != nil {
		return err
	}
	for _, p := range pending {
		if p.ID == e.ID {
			patch = p
			break
		}
	}

	if e.Notes != nil {
		patch.Notes = e.Notes
	}
	if e.Category != nil {
		patch.Category = e.Category
	}
	if e.Label != nil {
		patch.Labels = e.Label
	}

	if err := container.StageLocalEdit(patch); err != nil {
		return err
	}
	fmt.Println("edit staged locally, run `moneymind sync` to push it")
	return nil
}

type updateCmd struct {
	ID string `required:"" help:"Transaction id to update."`

	Notes    *string  `help:"New note."`
	Category *string  `help:"New category."`
	Label    []string `help:"Replace the label list."`
}

func (u *updateCmd) Run(ctx *context) error {
	container, edits, err := ctx.container()
	if err != nil {
		return err
	}
	defer container.Close()
	defer edits.Close()

	patch := &domain.TransactionPatch{
		ID:       u.ID,
		Notes:    u.Notes,
		Category: u.Category,
		Labels:   u.Label,
	}
	return container.UpdateTransaction(stdcontext.Background(), patch)
}

type syncCmd struct {
	Page  int `default:"1" help:"Page to fetch back after the sync."`
	Limit int `default:"20" help:"Page size."`
}

func (s *syncCmd) Run(ctx *context) error {
	container, edits, err := ctx.container()
	if err != nil {
		return err
	}
	defer container.Close()
	defer edits.Close()

	has, err := edits.HasTransactionEdits()
	if err != nil {
		return err
	}
	if !has {
		fmt.Println("nothing to sync")
		return nil
	}

	if err := container.SyncTransactions(stdcontext.Background(), s.Page, s.Limit); err != nil {
		return fmt.Errorf("sync failed (local edits kept for retry): %w", err)
	}

	st := container.Snapshot()
	fmt.Printf("synced, %d transactions on server\n", st.TotalCount)
	return nil
}

type labelsCmd struct {
	List labelListCmd `cmd:"" default:"1" help:"List labels (server + this device)."`
	Add  labelAddCmd  `cmd:"" help:"Register a label on this device."`
}

type labelListCmd struct{}

func (l *labelListCmd) Run(ctx *context) error {
	container, edits, err := ctx.container()
	if err != nil {
		return err
	}
	defer container.Close()
	defer edits.Close()

	if err := container.ListLabels(stdcontext.Background()); err != nil {
		return err
	}
	return printJSON(container.Snapshot().Labels)
}

type labelAddCmd struct {
	Name []string `arg:"" required:"" help:"Label name(s) to register."`
}

func (l *labelAddCmd) Run(ctx *context) error {
	edits, err := ctx.editStore()
	if err != nil {
		return err
	}
	defer edits.Close()

	return edits.RegisterLabels(l.Name)
}

type cashCmd struct {
	Add cashAddCmd `cmd:"" help:"Record a cash transaction."`
}

type cashAddCmd struct {
	Amount    float64  `required:"" help:"Amount."`
	Narration string   `required:"" help:"What the money was for."`
	Date      string   `help:"Date (YYYY-MM-DD), defaults to today."`
	Credit    bool     `help:"Money received rather than spent."`
	Category  string   `help:"Category."`
	Label     []string `help:"Labels."`
}

func (c *cashAddCmd) Run(ctx *context) error {
	container, edits, err := ctx.container()
	if err != nil {
		return err
	}
	defer container.Close()
	defer edits.Close()

	date := c.Date
	if date == "" {
		date = time.Now().Format(domain.DateLayout)
	}

	isCash := true
	memo := &domain.TransactionPatch{
		Date:      &date,
		Narration: &c.Narration,
		Amount:    &c.Amount,
		IsCredit:  &c.Credit,
		IsCash:    &isCash,
		Labels:    c.Label,
	}
	if c.Category != "" {
		memo.Category = &c.Category
	}

	return container.AddCashTransaction(stdcontext.Background(), memo)
}

type purgeCmd struct {
	Yes bool `help:"Really delete every transaction on the server."`
}

func (p *purgeCmd) Run(ctx *context) error {
	if !p.Yes {
		return fmt.Errorf("refusing to delete all transactions without --yes")
	}

	cl, err := ctx.client()
	if err != nil {
		return err
	}
	return cl.DeleteAllTransactions(stdcontext.Background())
}

type uploadCmd struct {
	File string `arg:"" required:"" help:"JSON file of pre-parsed spreadsheet rows."`
}

func (u *uploadCmd) Run(ctx *context) error {
	data, err := os.ReadFile(u.File)
	if err != nil {
		return err
	}

	rows := []domain.RowData{}
	if err := json.Unmarshal(data, &rows); err != nil {
		return fmt.Errorf("%s is not a JSON array of rows: %w", u.File, err)
	}

	cl, err := ctx.client()
	if err != nil {
		return err
	}

	if err := cl.UploadRows(stdcontext.Background(), rows); err != nil {
		return err
	}
	fmt.Printf("uploaded %d rows\n", len(rows))
	return nil
}

type debtsCmd struct{}

func (d *debtsCmd) Run(ctx *context) error {
	cl, err := ctx.client()
	if err != nil {
		return err
	}

	debts, err := cl.ListDebts(stdcontext.Background())
	if err != nil {
		return err
	}
	return printJSON(debts)
}

func printJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}
