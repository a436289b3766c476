package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/dmitrymomot/storefront/pkg/apiclient"
	"github.com/dmitrymomot/storefront/pkg/catalog"
	"github.com/dmitrymomot/storefront/pkg/forms"
	"github.com/dmitrymomot/storefront/pkg/session"
)

// printer writes command results either as colored text or as JSON.
type printer struct {
	w    io.Writer
	json bool
	fmt  *catalog.Formatter
}

func newPrinter(w io.Writer, jsonOut bool, f *catalog.Formatter) *printer {
	return &printer{w: w, json: jsonOut, fmt: f}
}

func (p *printer) JSON(v any) error {
	enc := json.NewEncoder(p.w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (p *printer) Success(msg string) {
	if p.json {
		_ = p.JSON(map[string]string{"message": msg})
		return
	}
	fmt.Fprintf(p.w, "%s %s\n", color.GreenString("✓"), msg)
}

func (p *printer) User(u session.User) error {
	if p.json {
		return p.JSON(u)
	}
	name := color.CyanString(u.Username)
	if u.HasRole(session.RoleAdmin) {
		name += " " + color.YellowString("admin")
	}
	fmt.Fprintf(p.w, "%s %s\n", name, color.HiBlackString("#%d", u.ID))
	if u.Email != "" {
		fmt.Fprintf(p.w, "  email: %s\n", u.Email)
	}
	if len(u.Roles) > 0 {
		fmt.Fprintf(p.w, "  roles: %s\n", strings.Join(u.Roles, ", "))
	}
	return nil
}

func (p *printer) Profile(pr session.Profile) error {
	if p.json {
		return p.JSON(pr)
	}
	if err := p.User(pr.User); err != nil {
		return err
	}
	status := color.GreenString("enabled")
	if !pr.Enabled {
		status = color.RedString("disabled")
	}
	fmt.Fprintf(p.w, "  status: %s\n", status)
	fmt.Fprintf(p.w, "  created: %s\n", p.fmt.Date(pr.CreatedAt.Time))
	fmt.Fprintf(p.w, "  last login: %s\n", p.fmt.Date(pr.LastLogin.Time))
	return nil
}

func (p *printer) Products(page catalog.Page[catalog.Product]) error {
	if p.json {
		return p.JSON(page)
	}
	if len(page.Content) == 0 {
		fmt.Fprintln(p.w, "No products found")
		return nil
	}
	for _, pr := range page.Content {
		p.productLine(pr)
	}
	if page.TotalPages > 0 {
		fmt.Fprintln(p.w, color.HiBlackString("page %d of %d", page.Number+1, page.TotalPages))
	}
	return nil
}

func (p *printer) productLine(pr catalog.Product) {
	stock := color.GreenString("in stock")
	if !pr.InStock() {
		stock = color.RedString("sold out")
	}
	fmt.Fprintf(p.w, "%s %-28s %12s  %s  %s\n",
		color.HiBlackString("%4d", pr.ID), pr.Name, p.fmt.Price(pr.Price), color.CyanString(pr.Category), stock)
}

func (p *printer) Product(pr catalog.Product) error {
	if p.json {
		return p.JSON(pr)
	}
	fmt.Fprintf(p.w, "%s %s\n", color.CyanString(pr.Name), color.HiBlackString("#%d", pr.ID))
	fmt.Fprintf(p.w, "  price: %s\n", p.fmt.Price(pr.Price))
	fmt.Fprintf(p.w, "  category: %s\n", pr.Category)
	fmt.Fprintf(p.w, "  stock: %d\n", pr.StockQuantity)
	if pr.Description != "" {
		fmt.Fprintf(p.w, "\n%s\n", pr.Description)
	}
	if cover := pr.Cover(); cover != "" {
		fmt.Fprintf(p.w, "  image: %s\n", cover)
	}
	return nil
}

func (p *printer) Categories(cats []string) error {
	if p.json {
		return p.JSON(cats)
	}
	for _, c := range cats {
		fmt.Fprintf(p.w, "- %s\n", c)
	}
	return nil
}

// Error prints err with the field messages of validation failures.
func (p *printer) Error(w io.Writer, err error) {
	e, ok := apiclient.AsError(err)
	if !ok {
		fmt.Fprintf(w, "%s %v\n", color.RedString("Error:"), err)
		return
	}
	fmt.Fprintf(w, "%s %s\n", color.RedString("Error:"), e.Message)
	for _, field := range forms.Errors(e.Fields).Fields() {
		fmt.Fprintf(w, "  %s: %s\n", color.YellowString(field), e.Fields[field])
	}
}
