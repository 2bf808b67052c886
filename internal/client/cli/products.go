package cli

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"

	"github.com/dmitrijs2005/shopkeeper/internal/client/api"
	"github.com/dmitrijs2005/shopkeeper/internal/client/models"
	"github.com/dmitrijs2005/shopkeeper/internal/client/services"
)

// renderProducts shows the catalog filtered by the query carried in the
// current route. The server does the filtering; the view renders whatever
// matches the address it was opened with.
func (a *App) renderProducts(ctx context.Context) {
	filter := models.FilterFromQuery(a.route.Query())

	items, err := a.products.List(ctx, filter)
	if err != nil {
		if errors.Is(err, services.ErrStaleResponse) {
			return
		}
		if errors.Is(err, api.ErrSessionExpired) {
			fmt.Fprintln(a.out, "Session expired, please log in again")
			a.Open(ctx, RouteLogin)
			return
		}
		fmt.Fprintln(a.out, "Unable to load products")
		return
	}

	fmt.Fprintln(a.out, "-- Products --")
	if !filter.IsZero() {
		fmt.Fprintf(a.out, "Filter: search=%q category=%q\n", filter.Search, filter.Category)
	}
	if len(items) == 0 {
		fmt.Fprintln(a.out, "No products found")
	}
	for _, p := range items {
		fmt.Fprintf(a.out, "#%d %s (%s) — %.2f, stock %d\n    %s\n",
			p.ID, p.Name, p.Category, p.Price, p.Stock, p.Description)
	}
	fmt.Fprintln(a.out, "Commands: search <text>, category <name>, clear, show <id>, seed, refresh")
}

// setFilter rewrites the /products route query and re-renders, so the
// active filter always lives in the navigable address.
func (a *App) setFilter(ctx context.Context, filter models.Filter) {
	u := url.URL{Path: RouteProducts, RawQuery: filter.Encode()}
	a.Open(ctx, u.String())
}

func (a *App) currentFilter() models.Filter {
	if a.route.Path != RouteProducts {
		return models.Filter{}
	}
	return models.FilterFromQuery(a.route.Query())
}

func (a *App) showProduct(ctx context.Context, idArg string) {
	id, err := strconv.ParseInt(idArg, 10, 64)
	if err != nil {
		fmt.Fprintln(a.out, "Usage: show <id>")
		return
	}

	p, err := a.products.Get(ctx, id)
	if err != nil {
		if errors.Is(err, api.ErrNotFound) {
			fmt.Fprintf(a.out, "Product %d not found\n", id)
		} else {
			fmt.Fprintln(a.out, "Unable to load product")
		}
		return
	}

	fmt.Fprintf(a.out, "#%d %s\nCategory: %s\nPrice: %.2f\nStock: %d\nDescription: %s\n",
		p.ID, p.Name, p.Category, p.Price, p.Stock, p.Description)
}

// seed posts a couple of sample products, handy against an empty backend.
func (a *App) seed(ctx context.Context) {
	samples := []models.CreateProductParams{
		{Name: "Laptop", Price: 85000, Category: "electronics", Stock: 10, Description: "Gaming laptop"},
		{Name: "Mobile Phone", Price: 30000, Category: "electronics", Stock: 25, Description: "Android smartphone"},
	}

	for _, s := range samples {
		created, err := a.products.Create(ctx, s)
		if err != nil {
			fmt.Fprintf(a.out, "Failed to create %q: %s\n", s.Name, err.Error())
			continue
		}
		fmt.Fprintf(a.out, "Created #%d %s\n", created.ID, created.Name)
	}
}
