package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/dmitrijs2005/shopkeeper/internal/client/models"
)

// renderCreateProduct runs the two-step creation wizard: step 1 collects
// the identity fields, step 2 the inventory fields. Each step validates
// its own fields and re-prompts until they pass; problems the server
// reports afterwards are printed next to the field they belong to.
func (a *App) renderCreateProduct(ctx context.Context) {
	var params models.CreateProductParams

	fmt.Fprintln(a.out, "-- Create product (step 1/2) --")
	for {
		name, err := getSimpleText(a.reader, "Product name", a.out)
		if err != nil {
			return
		}
		category, err := getSimpleText(a.reader, "Category", a.out)
		if err != nil {
			return
		}
		description, err := getSimpleText(a.reader, "Description", a.out)
		if err != nil {
			return
		}

		params.Name, params.Category, params.Description = name, category, description
		if ok := a.reportStepErrors(params, "name", "category", "description"); ok {
			break
		}
	}

	fmt.Fprintln(a.out, "-- Create product (step 2/2) --")
	for {
		priceText, err := getSimpleText(a.reader, "Price", a.out)
		if err != nil {
			return
		}
		price, perr := strconv.ParseFloat(priceText, 64)
		if perr != nil {
			fmt.Fprintln(a.out, "  price: must be a number")
			continue
		}

		stockText, err := getSimpleText(a.reader, "Stock", a.out)
		if err != nil {
			return
		}
		stock, serr := strconv.Atoi(stockText)
		if serr != nil {
			fmt.Fprintln(a.out, "  stock: must be an integer")
			continue
		}

		params.Price, params.Stock = price, stock
		if ok := a.reportStepErrors(params, "price", "stock"); ok {
			break
		}
	}

	created, err := a.products.Create(ctx, params)
	if err != nil {
		var fe models.FieldErrors
		if errors.As(err, &fe) {
			for _, e := range fe {
				fmt.Fprintf(a.out, "  %s: %s\n", e.Field, e.Message)
			}
		} else {
			fmt.Fprintf(a.out, "Failed to create product: %s\n", err.Error())
		}
		return
	}

	fmt.Fprintf(a.out, "Created #%d %s\n", created.ID, created.Name)
}

// reportStepErrors validates the whole payload but prints only the
// problems belonging to the given fields. Returns true when those fields
// are clean.
func (a *App) reportStepErrors(params models.CreateProductParams, fields ...string) bool {
	err := params.Validate()
	if err == nil {
		return true
	}

	var fe models.FieldErrors
	if !errors.As(err, &fe) {
		fmt.Fprintln(a.out, err.Error())
		return false
	}

	clean := true
	for _, field := range fields {
		if msg, ok := fe.For(field); ok {
			fmt.Fprintf(a.out, "  %s: %s\n", field, msg)
			clean = false
		}
	}
	return clean
}
