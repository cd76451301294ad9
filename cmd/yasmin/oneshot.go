package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/yasmin-chat/yasmin"
	yasminjson "github.com/yasmin-chat/yasmin/json"
)

// oneShotSend sends a single message and prints the reply, for
// scripting. Offline canned replies go to stdout too, with a warning on
// stderr so pipelines can tell them apart.
func oneShotSend(ctx context.Context, ctl *yasmin.Controller, text string) error {
	res, err := ctl.Send(ctx, text)
	if err != nil {
		if errors.Is(err, yasmin.ErrEmptyMessage) {
			return nil
		}
		return err
	}
	if res.Offline {
		fmt.Fprintln(os.Stderr, "yasmin: offline reply")
	}
	fmt.Println(res.Reply.Content)
	return nil
}

func oneShotList(ctx context.Context, ctl *yasmin.Controller) error {
	list, err := ctl.Refresh(ctx)
	if err != nil {
		return err
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	for _, s := range list {
		updated := ""
		if !s.UpdatedAt.IsZero() {
			updated = s.UpdatedAt.Format("2006-01-02 15:04")
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", s.ID, s.Title, updated)
	}
	return w.Flush()
}

func oneShotModels(ctx context.Context, ctl *yasmin.Controller) error {
	models, err := ctl.Models(ctx)
	if err != nil {
		return err
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	for _, m := range models {
		fmt.Fprintf(w, "%s\t%s\n", m.ID, m.Name)
	}
	return w.Flush()
}

func oneShotExport(ctx context.Context, ctl *yasmin.Controller, id, out string) error {
	conv, err := ctl.Load(ctx, id)
	if err != nil {
		return err
	}
	if out == "" {
		out = id + ".json"
	}
	if err := yasminjson.Save(out, conv); err != nil {
		return err
	}
	fmt.Println(out)
	return nil
}
