package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

type pinger interface {
	Ping(ctx context.Context) error
}

type checkResult struct {
	Name    string `json:"name"`
	OK      bool   `json:"ok"`
	Detail  string `json:"detail"`
	Latency string `json:"latency,omitempty"`
}

func statusCmd(getApp appFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Check the API, the token store and the session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := getApp()
			if err != nil {
				return err
			}
			ctx := cmd.Context()

			var (
				results []checkResult
				failed  []error
			)
			record := func(name string, start time.Time, detail string, err error) {
				r := checkResult{Name: name, OK: err == nil, Detail: detail}
				if !start.IsZero() {
					r.Latency = time.Since(start).Round(time.Millisecond).String()
				}
				if err != nil {
					r.Detail = err.Error()
					failed = append(failed, fmt.Errorf("%s: %w", name, err))
				}
				results = append(results, r)
			}

			c, err := a.catalog()
			if err != nil {
				return err
			}
			start := time.Now()
			_, err = c.Categories(ctx)
			record("api", start, a.cfg.API.BaseURL, err)

			store, err := a.tokenStore(ctx)
			if err != nil {
				record("store", time.Time{}, "", err)
			} else if p, ok := store.(pinger); ok {
				start = time.Now()
				record("store", start, a.cfg.Session.Store, p.Ping(ctx))
			} else {
				record("store", time.Time{}, a.cfg.Session.Store, nil)
			}

			if store != nil {
				sess, err := a.session(ctx)
				if err != nil {
					record("session", time.Time{}, "", err)
				} else if user, ok := sess.User(); ok {
					record("session", time.Time{}, "signed in as "+user.Username, nil)
				} else {
					record("session", time.Time{}, string(sess.Status()), nil)
				}
			}

			if a.out.json {
				if err := a.out.JSON(results); err != nil {
					return err
				}
			} else {
				for _, r := range results {
					mark := color.GreenString("✓")
					if !r.OK {
						mark = color.RedString("✗")
					}
					fmt.Fprintf(a.out.w, "%s %-8s %s", mark, r.Name, r.Detail)
					if r.Latency != "" {
						fmt.Fprintf(a.out.w, " %s", color.HiBlackString("(%s)", r.Latency))
					}
					fmt.Fprintln(a.out.w)
				}
			}
			return errors.Join(failed...)
		},
	}
}
