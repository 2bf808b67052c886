package cli

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"

	"github.com/dmitrijs2005/shopkeeper/internal/client/api"
	"github.com/dmitrijs2005/shopkeeper/internal/client/models"
	"github.com/dmitrijs2005/shopkeeper/internal/client/services"
)

// renderManage shows the management panel: the unfiltered catalog with
// selection marks, inline edit and single/bulk delete.
func (a *App) renderManage(ctx context.Context) {
	items, err := a.products.List(ctx, models.Filter{})
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

	a.listed = items
	a.pruneSelection()

	fmt.Fprintln(a.out, "-- Manage products --")
	if len(items) == 0 {
		fmt.Fprintln(a.out, "No products found")
	}
	for _, p := range items {
		mark := " "
		if _, ok := a.selection[p.ID]; ok {
			mark = "*"
		}
		fmt.Fprintf(a.out, "[%s] #%d %s (%s) — %.2f, stock %d\n",
			mark, p.ID, p.Name, p.Category, p.Price, p.Stock)
	}
	fmt.Fprintf(a.out, "Selected: %d\n", len(a.selection))
	fmt.Fprintln(a.out, "Commands: select <id>, edit <id>, delete <id>, bulk, refresh")
}

// pruneSelection keeps the selection consistent with the listed products:
// an id that left the list cannot stay selected.
func (a *App) pruneSelection() {
	present := make(map[int64]struct{}, len(a.listed))
	for _, p := range a.listed {
		present[p.ID] = struct{}{}
	}
	for id := range a.selection {
		if _, ok := present[id]; !ok {
			delete(a.selection, id)
		}
	}
}

// toggleSelect flips the selection state of one listed product. Toggling
// twice restores the previous state; ids not present in the list are
// rejected.
func (a *App) toggleSelect(idArg string) {
	id, err := strconv.ParseInt(idArg, 10, 64)
	if err != nil {
		fmt.Fprintln(a.out, "Usage: select <id>")
		return
	}

	listed := false
	for _, p := range a.listed {
		if p.ID == id {
			listed = true
			break
		}
	}
	if !listed {
		fmt.Fprintf(a.out, "Product %d is not in the current list\n", id)
		return
	}

	if _, ok := a.selection[id]; ok {
		delete(a.selection, id)
	} else {
		a.selection[id] = struct{}{}
	}
	fmt.Fprintf(a.out, "Selected: %d\n", len(a.selection))
}

// editProduct runs the inline edit form: every field shows its current
// value and an empty answer keeps it, so the resulting patch carries only
// what actually changed.
func (a *App) editProduct(ctx context.Context, idArg string) {
	id, err := strconv.ParseInt(idArg, 10, 64)
	if err != nil {
		fmt.Fprintln(a.out, "Usage: edit <id>")
		return
	}

	current, err := a.products.Get(ctx, id)
	if err != nil {
		if errors.Is(err, api.ErrNotFound) {
			fmt.Fprintf(a.out, "Product %d not found\n", id)
		} else {
			fmt.Fprintln(a.out, "Unable to load product")
		}
		return
	}

	var patch models.ProductPatch

	if v, changed, err := GetWithDefault(a.reader, "Name", current.Name, a.out); err != nil {
		return
	} else if changed {
		patch.Name = &v
	}
	if v, changed, err := GetWithDefault(a.reader, "Category", current.Category, a.out); err != nil {
		return
	} else if changed {
		patch.Category = &v
	}
	if v, changed, err := GetWithDefault(a.reader, "Description", current.Description, a.out); err != nil {
		return
	} else if changed {
		patch.Description = &v
	}
	if v, changed, err := GetWithDefault(a.reader, "Price", strconv.FormatFloat(current.Price, 'f', -1, 64), a.out); err != nil {
		return
	} else if changed {
		price, perr := strconv.ParseFloat(v, 64)
		if perr != nil || price < models.MinPrice {
			fmt.Fprintln(a.out, "  price: must be a number of at least 0.01")
			return
		}
		patch.Price = &price
	}
	if v, changed, err := GetWithDefault(a.reader, "Stock", strconv.Itoa(current.Stock), a.out); err != nil {
		return
	} else if changed {
		stock, serr := strconv.Atoi(v)
		if serr != nil || stock < 0 {
			fmt.Fprintln(a.out, "  stock: must be a non-negative integer")
			return
		}
		patch.Stock = &stock
	}

	if patch.IsZero() {
		fmt.Fprintln(a.out, "Nothing to change")
		return
	}

	if err := a.products.Update(ctx, id, patch); err != nil {
		var fe models.FieldErrors
		if errors.As(err, &fe) {
			for _, e := range fe {
				fmt.Fprintf(a.out, "  %s: %s\n", e.Field, e.Message)
			}
		} else {
			fmt.Fprintf(a.out, "Update failed: %s\n", err.Error())
		}
		return
	}

	fmt.Fprintf(a.out, "Updated #%d\n", id)
	a.renderManage(ctx)
}

// deleteProduct removes one product optimistically; a failed call rolls
// the list back before the panel is re-rendered.
func (a *App) deleteProduct(ctx context.Context, idArg string) {
	id, err := strconv.ParseInt(idArg, 10, 64)
	if err != nil {
		fmt.Fprintln(a.out, "Usage: delete <id>")
		return
	}

	if err := a.products.Delete(ctx, models.Filter{}, id); err != nil {
		fmt.Fprintf(a.out, "Delete failed, change rolled back: %s\n", err.Error())
	} else {
		fmt.Fprintf(a.out, "Deleted #%d\n", id)
	}
	a.renderManage(ctx)
}

// bulkDelete deletes every selected product concurrently. The selection is
// cleared only when the whole operation succeeded; after the refresh it is
// pruned anyway, so successfully deleted ids drop out either way.
func (a *App) bulkDelete(ctx context.Context) {
	if len(a.selection) == 0 {
		fmt.Fprintln(a.out, "Nothing selected")
		return
	}

	ids := make([]int64, 0, len(a.selection))
	for id := range a.selection {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	result, err := a.products.BulkDelete(ctx, models.Filter{}, ids)
	if err != nil {
		fmt.Fprintf(a.out, "Bulk delete failed: %d of %d items not deleted\n", result.Failed, len(ids))
	} else {
		fmt.Fprintf(a.out, "Deleted %d products\n", len(result.Deleted))
		a.selection = make(map[int64]struct{})
	}

	a.renderManage(ctx)
}
