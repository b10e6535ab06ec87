package webserver

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/frostkeep/frostkeep/internal/domain"
)

type productFixture struct {
	*freezerFixture
	ptype   *domain.ProductType
	product *domain.Product
}

func newProductFixture(t *testing.T) *productFixture {
	t.Helper()
	ctx := context.Background()
	f := &productFixture{freezerFixture: newFreezerFixture(t)}
	f.ptype = &domain.ProductType{Name: "meat"}
	require.NoError(t, f.stores.ProductTypes.Create(ctx, f.ptype))
	f.product = &domain.Product{
		Name:          "steak",
		FreezerID:     f.freezer.ID,
		UserID:        f.owner.ID,
		ProductTypeID: f.ptype.ID,
		Quantity:      2,
		AddingDate:    time.Now(),
	}
	require.NoError(t, f.stores.Products.Create(ctx, f.product))
	return f
}

func (f *productFixture) createPayload() map[string]interface{} {
	return map[string]interface{}{
		"name":            "Chicken Wings",
		"freezer_id":      strconv.FormatInt(f.freezer.ID, 10),
		"product_type_id": strconv.FormatInt(f.ptype.ID, 10),
		"quantity":        4,
		"adding_date":     "2026-08-15",
	}
}

func TestCreateProduct(t *testing.T) {
	f := newProductFixture(t)

	rec := f.do(t, http.MethodPut, "/products", f.tokenFor(t, f.owner), f.createPayload())
	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "Product created", body["message"])
	data := body["data"].(map[string]interface{})
	assert.Equal(t, "chicken wings", data["name"])
	assert.Equal(t, float64(4), data["quantity"])
	assert.Equal(t, strconv.FormatInt(f.owner.ID, 10), data["user_id"])
}

func TestCreateProductValidation(t *testing.T) {
	f := newProductFixture(t)
	token := f.tokenFor(t, f.owner)

	payload := f.createPayload()
	delete(payload, "quantity")
	rec := f.do(t, http.MethodPut, "/products", token, payload)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	payload = f.createPayload()
	payload["quantity"] = -1
	rec = f.do(t, http.MethodPut, "/products", token, payload)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Quantity must not be negative", decodeBody(t, rec)["message"])

	payload = f.createPayload()
	payload["adding_date"] = "not a date"
	rec = f.do(t, http.MethodPut, "/products", token, payload)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid adding date", decodeBody(t, rec)["message"])

	payload = f.createPayload()
	payload["freezer_id"] = "999999"
	rec = f.do(t, http.MethodPut, "/products", token, payload)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Unknown freezer", decodeBody(t, rec)["message"])

	payload = f.createPayload()
	payload["product_type_id"] = "999999"
	rec = f.do(t, http.MethodPut, "/products", token, payload)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Unknown product type", decodeBody(t, rec)["message"])
}

func TestGetProductOwnership(t *testing.T) {
	f := newProductFixture(t)
	path := fmt.Sprintf("/products/%d", f.product.ID)

	rec := f.do(t, http.MethodGet, path, f.tokenFor(t, f.owner), nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = f.do(t, http.MethodGet, path, f.tokenFor(t, f.stranger), nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = f.do(t, http.MethodGet, path, f.tokenFor(t, f.admin), nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestUpdateProductSparseMerge(t *testing.T) {
	f := newProductFixture(t)
	path := fmt.Sprintf("/products/%d", f.product.ID)

	rec := f.do(t, http.MethodPut, path, f.tokenFor(t, f.owner), map[string]interface{}{"quantity": 7})
	require.Equal(t, http.StatusOK, rec.Code)
	data := decodeBody(t, rec)["data"].(map[string]interface{})
	assert.Equal(t, float64(7), data["quantity"])
	assert.Equal(t, "steak", data["name"])

	rec = f.do(t, http.MethodPut, path, f.tokenFor(t, f.owner), map[string]interface{}{"adding_date": "2026-08-15T10:00:00Z"})
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = f.do(t, http.MethodPut, path, f.tokenFor(t, f.stranger), map[string]interface{}{"quantity": 0})
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestProductTrashUntrashCycle(t *testing.T) {
	f := newProductFixture(t)
	token := f.tokenFor(t, f.owner)
	path := fmt.Sprintf("/products/%d", f.product.ID)

	rec := f.do(t, http.MethodDelete, fmt.Sprintf("/products/trash/%d", f.product.ID), token, nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = f.do(t, http.MethodGet, path, token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = f.do(t, http.MethodPost, fmt.Sprintf("/products/untrash/%d", f.product.ID), token, nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = f.do(t, http.MethodGet, path, token, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = f.do(t, http.MethodDelete, path, token, nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = f.do(t, http.MethodPost, fmt.Sprintf("/products/untrash/%d", f.product.ID), token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListProductsScoped(t *testing.T) {
	f := newProductFixture(t)
	other := &domain.Product{
		Name: "peas", FreezerID: f.freezer.ID, UserID: f.stranger.ID,
		ProductTypeID: f.ptype.ID, Quantity: 1, AddingDate: time.Now(),
	}
	require.NoError(t, f.stores.Products.Create(context.Background(), other))

	rec := f.do(t, http.MethodGet, "/products", f.tokenFor(t, f.owner), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decodeBody(t, rec)["data"], 1)

	rec = f.do(t, http.MethodGet, "/products", f.tokenFor(t, f.admin), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decodeBody(t, rec)["data"], 2)

	// the per-freezer listing keeps the same owner scope
	byFreezer := fmt.Sprintf("/products/freezer/%d", f.freezer.ID)
	rec = f.do(t, http.MethodGet, byFreezer, f.tokenFor(t, f.owner), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decodeBody(t, rec)["data"], 1)

	rec = f.do(t, http.MethodGet, byFreezer, f.tokenFor(t, f.admin), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decodeBody(t, rec)["data"], 2)
}

func TestListProductsByUser(t *testing.T) {
	f := newProductFixture(t)
	path := fmt.Sprintf("/products/user/%d", f.owner.ID)

	rec := f.do(t, http.MethodGet, path, f.tokenFor(t, f.owner), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decodeBody(t, rec)["data"], 1)

	rec = f.do(t, http.MethodGet, path, f.tokenFor(t, f.stranger), nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestSearchProductsScoped(t *testing.T) {
	f := newProductFixture(t)
	other := &domain.Product{
		Name: "steak haché", FreezerID: f.freezer.ID, UserID: f.stranger.ID,
		ProductTypeID: f.ptype.ID, Quantity: 1, AddingDate: time.Now(),
	}
	require.NoError(t, f.stores.Products.Create(context.Background(), other))

	rec := f.do(t, http.MethodPost, "/products/search", f.tokenFor(t, f.owner), map[string]string{"search": "Steak"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decodeBody(t, rec)["data"], 1)

	rec = f.do(t, http.MethodPost, "/products/search", f.tokenFor(t, f.admin), map[string]string{"search": "steak"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decodeBody(t, rec)["data"], 2)

	rec = f.do(t, http.MethodPost, "/products/search", f.tokenFor(t, f.owner), map[string]string{"search": ""})
	assert.Equal(t, http.StatusNoContent, rec.Code)
}
