package cartControllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/harishwar07/ecommerce-api/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Product{},
		&models.CartItem{},
	))
	return db
}

func newCartRouter(db *gorm.DB, userID uint) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	authStub := func(c *gin.Context) {
		c.Set("user_id", userID)
		c.Next()
	}
	cart := r.Group("/api/cart", authStub)
	cart.GET("", GetCart(db))
	cart.POST("/add", AddToCart(db))
	cart.PUT("/update/:id", UpdateCartItem(db))
	cart.DELETE("/remove/:id", RemoveCartItem(db))
	cart.DELETE("/clear", ClearCart(db))
	return r
}

func seedUser(t *testing.T, db *gorm.DB, email string) models.User {
	t.Helper()
	user := models.User{Email: email, Password: "x", FirstName: "Test", LastName: "User"}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func seedProduct(t *testing.T, db *gorm.DB, name string, price float64, stock int) models.Product {
	t.Helper()
	p := models.Product{Name: name, Price: price, StockQuantity: stock}
	require.NoError(t, db.Create(&p).Error)
	return p
}

func postAdd(t *testing.T, r *gin.Engine, productID uint, qty int) *httptest.ResponseRecorder {
	t.Helper()
	body, _ := json.Marshal(AddToCartRequest{ProductID: productID, Quantity: qty})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/cart/add", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestAddToCartMergesDuplicateProduct(t *testing.T) {
	db := setupDB(t)
	user := seedUser(t, db, "buyer@example.com")
	product := seedProduct(t, db, "Widget", 10.00, 10)
	r := newCartRouter(db, user.ID)

	w := postAdd(t, r, product.ID, 2)
	require.Equal(t, http.StatusCreated, w.Code)

	w = postAdd(t, r, product.ID, 3)
	require.Equal(t, http.StatusOK, w.Code)

	// One row, summed quantity.
	var items []models.CartItem
	require.NoError(t, db.Where("user_id = ?", user.ID).Find(&items).Error)
	require.Len(t, items, 1)
	assert.Equal(t, 5, items[0].Quantity)
}

func TestAddToCartEnforcesStockCeiling(t *testing.T) {
	db := setupDB(t)
	user := seedUser(t, db, "buyer@example.com")
	product := seedProduct(t, db, "Widget", 10.00, 5)
	r := newCartRouter(db, user.ID)

	w := postAdd(t, r, product.ID, 6)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Only 5 items available")

	// Existing 4 in cart, asking for 2 more against stock 5.
	w = postAdd(t, r, product.ID, 4)
	require.Equal(t, http.StatusCreated, w.Code)
	w = postAdd(t, r, product.ID, 2)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Only 1 more available")

	var item models.CartItem
	require.NoError(t, db.Where("user_id = ?", user.ID).First(&item).Error)
	assert.Equal(t, 4, item.Quantity)
}

func TestAddToCartUnknownProduct(t *testing.T) {
	db := setupDB(t)
	user := seedUser(t, db, "buyer@example.com")
	r := newCartRouter(db, user.ID)

	w := postAdd(t, r, 999, 1)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetCartComputesLiveTotal(t *testing.T) {
	db := setupDB(t)
	user := seedUser(t, db, "buyer@example.com")
	productA := seedProduct(t, db, "Widget", 10.00, 10)
	productB := seedProduct(t, db, "Gadget", 2.50, 10)
	r := newCartRouter(db, user.ID)

	require.Equal(t, http.StatusCreated, postAdd(t, r, productA.ID, 2).Code)
	require.Equal(t, http.StatusCreated, postAdd(t, r, productB.ID, 4).Code)

	// A price edit is visible in the cart total immediately: the cart always
	// prices against the live product row.
	require.NoError(t, db.Model(&models.Product{}).Where("id = ?", productA.ID).Update("price", 12.00).Error)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/cart", nil)
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Total     float64 `json:"total"`
		ItemCount int     `json:"item_count"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 34.00, resp.Total) // 2*12.00 + 4*2.50
	assert.Equal(t, 2, resp.ItemCount)
}

func TestUpdateCartItemChecksOwnership(t *testing.T) {
	db := setupDB(t)
	owner := seedUser(t, db, "owner@example.com")
	intruder := seedUser(t, db, "intruder@example.com")
	product := seedProduct(t, db, "Widget", 10.00, 10)

	item := models.CartItem{UserID: owner.ID, ProductID: product.ID, Quantity: 1}
	require.NoError(t, db.Create(&item).Error)

	r := newCartRouter(db, intruder.ID)
	body, _ := json.Marshal(UpdateCartRequest{Quantity: 3})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/api/cart/update/"+strconv.Itoa(int(item.ID)), bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)

	var reloaded models.CartItem
	require.NoError(t, db.First(&reloaded, item.ID).Error)
	assert.Equal(t, 1, reloaded.Quantity)
}

func TestUpdateCartItemEnforcesStock(t *testing.T) {
	db := setupDB(t)
	user := seedUser(t, db, "buyer@example.com")
	product := seedProduct(t, db, "Widget", 10.00, 3)

	item := models.CartItem{UserID: user.ID, ProductID: product.ID, Quantity: 1}
	require.NoError(t, db.Create(&item).Error)

	r := newCartRouter(db, user.ID)
	body, _ := json.Marshal(UpdateCartRequest{Quantity: 4})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/api/cart/update/"+strconv.Itoa(int(item.ID)), bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Only 3 items available")
}

func TestRemoveCartItem(t *testing.T) {
	db := setupDB(t)
	user := seedUser(t, db, "buyer@example.com")
	product := seedProduct(t, db, "Widget", 10.00, 10)

	item := models.CartItem{UserID: user.ID, ProductID: product.ID, Quantity: 1}
	require.NoError(t, db.Create(&item).Error)

	r := newCartRouter(db, user.ID)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/api/cart/remove/"+strconv.Itoa(int(item.ID)), nil)
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	// Removing again is a 404, not a silent success.
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodDelete, "/api/cart/remove/"+strconv.Itoa(int(item.ID)), nil)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestClearCartIsIdempotent(t *testing.T) {
	db := setupDB(t)
	user := seedUser(t, db, "buyer@example.com")
	product := seedProduct(t, db, "Widget", 10.00, 10)
	require.NoError(t, db.Create(&models.CartItem{UserID: user.ID, ProductID: product.ID, Quantity: 2}).Error)

	r := newCartRouter(db, user.ID)
	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodDelete, "/api/cart/clear", nil)
		r.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code)
	}

	var count int64
	db.Model(&models.CartItem{}).Where("user_id = ?", user.ID).Count(&count)
	assert.Zero(t, count)
}
