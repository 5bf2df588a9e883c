// Command catalog-admin maintains catalog records from the terminal. It
// drives the same form models and submission pipeline as the web edit pages,
// so terminal edits obey the same validation and relation handling.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"syscall"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
	"github.com/spf13/cast"
	"go.uber.org/zap"

	catalog "github.com/goliatone/go-catalog"
	"github.com/goliatone/go-catalog/pkg/forms"
	"github.com/goliatone/go-catalog/pkg/model"
	"github.com/goliatone/go-catalog/pkg/record"
	"github.com/goliatone/go-catalog/pkg/relation"
	"github.com/goliatone/go-catalog/pkg/render"
	"github.com/goliatone/go-catalog/pkg/renderers/tui"
)

func main() {
	dbPath := flag.String("db", envOr("CATALOG_DB", "catalog.db"), "path to the SQLite database")
	debug := flag.Bool("debug", cast.ToBool(os.Getenv("CATALOG_DEBUG")), "enable development logging")
	flag.Parse()

	logger := zap.NewNop()
	if *debug {
		var err error
		logger, err = zap.NewDevelopment()
		if err != nil {
			fmt.Fprintf(os.Stderr, "logger: %v\n", err)
			os.Exit(1)
		}
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	c, err := catalog.Open(ctx, catalog.Options{DatabasePath: *dbPath, Logger: logger})
	if err != nil {
		fmt.Fprintf(os.Stderr, "open catalog: %v\n", err)
		os.Exit(1)
	}

	editor, err := tui.New()
	if err != nil {
		fmt.Fprintf(os.Stderr, "editor: %v\n", err)
		os.Exit(1)
	}

	app := &admin{
		catalog:  c,
		editor:   editor,
		pipeline: forms.NewPipeline(c.Store, c.Store, c.Thesaurus, logger),
	}
	if err := app.run(ctx); err != nil && !errors.Is(err, tui.ErrAborted) {
		fmt.Fprintf(os.Stderr, "catalog-admin: %v\n", err)
		os.Exit(1)
	}
}

type admin struct {
	catalog  *catalog.Catalog
	editor   *tui.Editor
	pipeline *forms.Pipeline
}

func (a *admin) run(ctx context.Context) error {
	for {
		action, err := pick("What would you like to do?", []string{
			"List records",
			"Add a record",
			"Edit a record",
			"Delete a record",
			"Quit",
		})
		if err != nil {
			return err
		}

		switch action {
		case "List records":
			err = a.list(ctx)
		case "Add a record":
			err = a.add(ctx)
		case "Edit a record":
			err = a.edit(ctx)
		case "Delete a record":
			err = a.delete(ctx)
		default:
			return nil
		}
		if err != nil {
			if errors.Is(err, tui.ErrAborted) || errors.Is(err, terminal.InterruptErr) {
				return nil
			}
			return err
		}
	}
}

func (a *admin) list(ctx context.Context) error {
	series, err := pickSeries()
	if err != nil {
		return err
	}
	records, err := a.catalog.Store.All(ctx, series)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		fmt.Printf("No %s records yet.\n", series.Name())
		return nil
	}
	for _, rec := range records {
		fmt.Printf("%-12s %s\n", rec.ID(), rec.Name())
	}
	return nil
}

func (a *admin) add(ctx context.Context) error {
	series, err := pickSeries()
	if err != nil {
		return err
	}
	return a.editRecord(ctx, record.New(series))
}

func (a *admin) edit(ctx context.Context) error {
	rec, err := a.pickRecord(ctx)
	if err != nil {
		return err
	}
	return a.editRecord(ctx, rec)
}

func (a *admin) delete(ctx context.Context) error {
	rec, err := a.pickRecord(ctx)
	if err != nil {
		return err
	}
	var confirmed bool
	prompt := &survey.Confirm{
		Message: fmt.Sprintf("Delete %s (%s) and its relations?", rec.ID(), rec.Name()),
	}
	if err := survey.AskOne(prompt, &confirmed); err != nil {
		return err
	}
	if !confirmed {
		return nil
	}
	if err := a.catalog.Store.Delete(ctx, rec.Series, rec.DocID); err != nil {
		return err
	}
	if err := a.catalog.Store.Disconnect(ctx, rec.ID().String()); err != nil {
		return err
	}
	fmt.Printf("Deleted %s.\n", rec.ID())
	return nil
}

func (a *admin) editRecord(ctx context.Context, rec record.Record) error {
	form, ok := a.catalog.Forms[rec.Series]
	if !ok {
		return fmt.Errorf("no edit form for series %q", rec.Series)
	}

	values := make(map[string]any, len(rec.Fields))
	for key, value := range rec.Fields {
		values[key] = value
	}
	if a.catalog.Thesaurus != nil && len(rec.Keywords()) > 0 {
		labels := make([]string, 0, len(rec.Keywords()))
		for _, uri := range rec.Keywords() {
			if label := a.catalog.Thesaurus.Label(uri); label != "" {
				labels = append(labels, label)
				continue
			}
			labels = append(labels, uri)
		}
		values["keywords"] = labels
	}

	choices, err := a.choices(ctx, form, rec)
	if err != nil {
		return err
	}

	submission, err := a.editor.EditRecord(ctx, form, values, choices)
	if err != nil {
		return err
	}

	old, err := forms.OldRelationsValue(ctx, a.catalog.Store, rec.ID(), rec.Series)
	if err != nil {
		return err
	}
	submission.Set("old_relations", old)

	result, errs, err := a.pipeline.Process(ctx, form, rec.Series, rec.DocID, submission)
	if err != nil {
		return err
	}
	if !errs.Empty() {
		paths := make([]string, 0, len(errs))
		for path := range errs {
			paths = append(paths, path)
		}
		sort.Strings(paths)
		fmt.Println("The record was not saved:")
		for _, path := range paths {
			for _, message := range errs[path] {
				fmt.Printf("  %s: %s\n", path, message)
			}
		}
		return nil
	}
	fmt.Printf("Saved %s.\n", result.ID)
	return nil
}

// choices builds candidate options for relation selectors and the data-type
// picker, mirroring what the web edit pages offer.
func (a *admin) choices(ctx context.Context, form model.FormModel, rec record.Record) (map[string][]render.Choice, error) {
	out := make(map[string][]render.Choice)
	for _, field := range form.Fields {
		var target record.Series
		var current []string
		if binding, ok := relation.BindingFor(rec.Series, field.Name); ok {
			target = binding.Target
			if rec.Exists() {
				ids, err := relation.Related(ctx, a.catalog.Store, rec.ID(), binding)
				if err != nil {
					return nil, err
				}
				current = ids
			}
		} else if field.Name == "dataTypes" {
			target = record.SeriesDatatype
			current = rec.DataTypes()
		} else {
			continue
		}

		candidates, err := a.catalog.Store.All(ctx, target)
		if err != nil {
			return nil, err
		}
		selected := make(map[string]bool, len(current))
		for _, id := range current {
			selected[id] = true
		}
		options := make([]render.Choice, 0, len(candidates))
		for _, candidate := range candidates {
			if candidate.Series == rec.Series && candidate.DocID == rec.DocID {
				continue
			}
			mscid := candidate.ID().String()
			options = append(options, render.Choice{
				Value:    mscid,
				Label:    candidate.Name(),
				Selected: selected[mscid],
			})
		}
		out[field.Name] = options
	}
	return out, nil
}

func (a *admin) pickRecord(ctx context.Context) (record.Record, error) {
	series, err := pickSeries()
	if err != nil {
		return record.Record{}, err
	}
	records, err := a.catalog.Store.All(ctx, series)
	if err != nil {
		return record.Record{}, err
	}
	if len(records) == 0 {
		return record.Record{}, fmt.Errorf("no %s records to choose from", series.Name())
	}
	labels := make([]string, len(records))
	for i, rec := range records {
		labels[i] = fmt.Sprintf("%s  %s", rec.ID(), rec.Name())
	}
	choice, err := pick("Which record?", labels)
	if err != nil {
		return record.Record{}, err
	}
	for i, label := range labels {
		if label == choice {
			return records[i], nil
		}
	}
	return record.Record{}, fmt.Errorf("unknown selection %q", choice)
}

func pickSeries() (record.Series, error) {
	all := record.AllSeries()
	labels := make([]string, len(all))
	for i, series := range all {
		labels[i] = series.Name()
	}
	choice, err := pick("Which kind of record?", labels)
	if err != nil {
		return "", err
	}
	for i, label := range labels {
		if label == choice {
			return all[i], nil
		}
	}
	return "", fmt.Errorf("unknown series %q", choice)
}

func pick(message string, options []string) (string, error) {
	var out string
	prompt := &survey.Select{Message: message, Options: options, PageSize: 10}
	if err := survey.AskOne(prompt, &out); err != nil {
		if errors.Is(err, terminal.InterruptErr) {
			return "", tui.ErrAborted
		}
		return "", err
	}
	return out, nil
}

func envOr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
