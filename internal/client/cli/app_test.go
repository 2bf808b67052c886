package cli

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/url"
	"strings"
	"testing"

	"github.com/dmitrijs2005/shopkeeper/internal/client/models"
	"github.com/dmitrijs2005/shopkeeper/internal/client/services"
	"github.com/dmitrijs2005/shopkeeper/internal/client/state"
	"github.com/dmitrijs2005/shopkeeper/internal/logging"
)

// memRepo is an in-memory state.Repository for tests.
type memRepo struct {
	items map[string][]byte
}

func newMemRepo() *memRepo { return &memRepo{items: make(map[string][]byte)} }

func (r *memRepo) Get(_ context.Context, key string) ([]byte, error)   { return r.items[key], nil }
func (r *memRepo) Set(_ context.Context, key string, v []byte) error   { r.items[key] = v; return nil }
func (r *memRepo) Delete(_ context.Context, key string) error          { delete(r.items, key); return nil }
func (r *memRepo) Clear(_ context.Context) error                       { r.items = map[string][]byte{}; return nil }

// fakeAuth implements services.AuthService.
type fakeAuth struct {
	has        bool
	registerFn func(email, username string, password []byte) error
	loginFn    func(username string, password []byte) error
	profile    models.Profile
	profileErr error
	loggedOut  bool
}

func (f *fakeAuth) Register(_ context.Context, email, username string, password []byte) error {
	if f.registerFn != nil {
		return f.registerFn(email, username, password)
	}
	return nil
}

func (f *fakeAuth) Login(_ context.Context, username string, password []byte) error {
	if f.loginFn != nil {
		return f.loginFn(username, password)
	}
	f.has = true
	return nil
}

func (f *fakeAuth) Profile(_ context.Context) (models.Profile, error) {
	if f.profileErr != nil {
		f.has = false
		return models.Profile{}, f.profileErr
	}
	return f.profile, nil
}

func (f *fakeAuth) Logout(_ context.Context) error {
	f.has = false
	f.loggedOut = true
	return nil
}

func (f *fakeAuth) HasSession(_ context.Context) bool { return f.has }

// fakeProducts implements services.ProductService.
type fakeProducts struct {
	items      []models.Product
	listErr    error
	lastFilter models.Filter
	deleted    []int64
	deleteErr  error
	bulkResult services.BulkDeleteResult
	bulkErr    error
	bulkIDs    []int64
}

func (f *fakeProducts) List(_ context.Context, filter models.Filter) ([]models.Product, error) {
	f.lastFilter = filter
	return f.items, f.listErr
}

func (f *fakeProducts) Refresh(ctx context.Context, filter models.Filter) ([]models.Product, error) {
	return f.List(ctx, filter)
}

func (f *fakeProducts) Get(_ context.Context, id int64) (models.Product, error) {
	for _, p := range f.items {
		if p.ID == id {
			return p, nil
		}
	}
	return models.Product{}, f.listErr
}

func (f *fakeProducts) Create(_ context.Context, params models.CreateProductParams) (models.Product, error) {
	p := models.Product{ID: int64(len(f.items) + 1), Name: params.Name, Category: params.Category,
		Description: params.Description, Price: params.Price, Stock: params.Stock}
	f.items = append(f.items, p)
	return p, nil
}

func (f *fakeProducts) Update(_ context.Context, id int64, patch models.ProductPatch) error {
	return nil
}

func (f *fakeProducts) Delete(_ context.Context, _ models.Filter, id int64) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeProducts) BulkDelete(_ context.Context, _ models.Filter, ids []int64) (services.BulkDeleteResult, error) {
	f.bulkIDs = ids
	return f.bulkResult, f.bulkErr
}

// newTestApp wires an App around fakes, with output captured in a buffer.
func newTestApp(t *testing.T, auth *fakeAuth, products *fakeProducts) (*App, *memRepo, *bytes.Buffer) {
	t.Helper()

	repo := newMemRepo()
	var out bytes.Buffer

	a := &App{
		logger:    logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
		states:    repo,
		auth:      auth,
		products:  products,
		reader:    bufio.NewReader(strings.NewReader("")),
		out:       &out,
		route:     &url.URL{Path: RouteRegister},
		selection: make(map[int64]struct{}),
	}
	return a, repo, &out
}

func lastRoute(t *testing.T, repo *memRepo) string {
	t.Helper()
	v, err := repo.Get(context.Background(), state.KeyLastRoute)
	if err != nil {
		t.Fatal(err)
	}
	return string(v)
}
