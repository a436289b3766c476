package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/dmitrymomot/storefront/pkg/catalog"
	"github.com/dmitrymomot/storefront/pkg/fakeapi"
	"github.com/dmitrymomot/storefront/pkg/session"
)

type harness struct {
	t       *testing.T
	envFile string
	token   string
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	srv := httptest.NewServer(fakeapi.New(fakeapi.WithBcryptCost(bcrypt.MinCost)))
	t.Cleanup(srv.Close)

	dir := t.TempDir()
	h := &harness{
		t:       t,
		envFile: filepath.Join(dir, ".env"),
		token:   filepath.Join(dir, "token.json"),
	}
	env := "STOREFRONT_API_BASE_URL=" + srv.URL + "\n" +
		"STOREFRONT_SESSION_TOKEN_FILE=" + h.token + "\n" +
		"STOREFRONT_LANGUAGE=en\n"
	require.NoError(t, os.WriteFile(h.envFile, []byte(env), 0o600))
	return h
}

func (h *harness) run(args ...string) (code int, stdout, stderr string) {
	h.t.Helper()
	var out, errOut bytes.Buffer
	args = append([]string{"--env-file", h.envFile, "--json"}, args...)
	code = run(context.Background(), args, &out, &errOut)
	return code, out.String(), errOut.String()
}

func TestRun_Products(t *testing.T) {
	h := newHarness(t)

	code, out, stderr := h.run("products", "--category", "tea", "--sort", "price")
	require.Equal(t, 0, code, stderr)

	var page catalog.Page[catalog.Product]
	require.NoError(t, json.Unmarshal([]byte(out), &page))
	assert.EqualValues(t, 7, page.TotalElements)
	require.NotEmpty(t, page.Content)
	for _, p := range page.Content {
		assert.Equal(t, "tea", p.Category)
	}
	for i := 1; i < len(page.Content); i++ {
		assert.LessOrEqual(t, page.Content[i-1].Price, page.Content[i].Price)
	}
}

func TestRun_ProductsQueryAndPage(t *testing.T) {
	h := newHarness(t)

	code, out, stderr := h.run("products", "--query", "category=tea", "--page", "1")
	require.Equal(t, 0, code, stderr)

	var page catalog.Page[catalog.Product]
	require.NoError(t, json.Unmarshal([]byte(out), &page))
	assert.Equal(t, 0, page.Number)
	assert.EqualValues(t, 7, page.TotalElements)
}

func TestRun_ProductsFilterFlagWithPage(t *testing.T) {
	h := newHarness(t)

	code, out, stderr := h.run("products", "--query", "page=4", "--category", "tea", "--page", "2")
	require.Equal(t, 0, code, stderr)

	var page catalog.Page[catalog.Product]
	require.NoError(t, json.Unmarshal([]byte(out), &page))
	assert.Equal(t, 1, page.Number, "explicit page must survive a filter change in the same call")
	assert.EqualValues(t, 7, page.TotalElements)
}

func TestRun_ProductsInvalidPriceRange(t *testing.T) {
	h := newHarness(t)

	code, _, stderr := h.run("products", "--min-price", "50", "--max-price", "10")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "Minimum price must not exceed maximum price")
}

func TestRun_Product(t *testing.T) {
	h := newHarness(t)

	code, out, stderr := h.run("product", "3")
	require.Equal(t, 0, code, stderr)

	var p catalog.Product
	require.NoError(t, json.Unmarshal([]byte(out), &p))
	assert.EqualValues(t, 3, p.ID)

	code, _, stderr = h.run("product", "999")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "Product not found")

	code, _, _ = h.run("product", "abc")
	assert.Equal(t, 1, code)
}

func TestRun_Categories(t *testing.T) {
	h := newHarness(t)

	code, out, stderr := h.run("categories")
	require.Equal(t, 0, code, stderr)

	var cats []string
	require.NoError(t, json.Unmarshal([]byte(out), &cats))
	assert.Equal(t, fakeapi.DefaultCategories(), cats)
}

func TestRun_Home(t *testing.T) {
	h := newHarness(t)

	code, out, stderr := h.run("home")
	require.Equal(t, 0, code, stderr)

	var home struct {
		Featured   []catalog.Product `json:"featured"`
		Categories []string          `json:"categories"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &home))
	assert.Len(t, home.Featured, catalog.FeaturedSize)
	assert.Equal(t, fakeapi.DefaultCategories(), home.Categories)
}

func TestRun_SessionLifecycle(t *testing.T) {
	h := newHarness(t)

	code, _, _ := h.run("whoami")
	assert.Equal(t, 2, code)

	code, out, stderr := h.run("login", "-u", "Alice", "-p", "11111")
	require.Equal(t, 0, code, stderr)
	var user session.User
	require.NoError(t, json.Unmarshal([]byte(out), &user))
	assert.Equal(t, "Alice", user.Username)
	assert.FileExists(t, h.token)

	code, out, stderr = h.run("whoami")
	require.Equal(t, 0, code, stderr)
	assert.Contains(t, out, "Alice")

	code, _, stderr = h.run("logout")
	require.Equal(t, 0, code, stderr)

	code, _, _ = h.run("whoami")
	assert.Equal(t, 2, code)
}

func TestRun_LoginValidation(t *testing.T) {
	h := newHarness(t)

	code, _, stderr := h.run("login", "-u", "Alice", "-p", "wrong-password")
	assert.NotEqual(t, 0, code)
	assert.NotEmpty(t, stderr)
}

func TestRun_UnknownStore(t *testing.T) {
	h := newHarness(t)

	code, _, stderr := h.run("--store", "sqlite", "whoami")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "unknown session store")
}

func TestRun_Status(t *testing.T) {
	h := newHarness(t)

	code, out, stderr := h.run("status")
	require.Equal(t, 0, code, stderr)

	var results []checkResult
	require.NoError(t, json.Unmarshal([]byte(out), &results))
	require.Len(t, results, 3)
	for _, r := range results {
		assert.True(t, r.OK, r.Name)
	}
	assert.Equal(t, "unauthenticated", results[2].Detail)
}

func TestRun_StatusAPIDown(t *testing.T) {
	h := newHarness(t)

	code, _, stderr := h.run("--api", "http://127.0.0.1:1", "status")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "Error:")
}
