package productcontroller

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
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
	require.NoError(t, db.AutoMigrate(&models.Category{}, &models.Product{}))
	return db
}

func newProductRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/api/products", GetProducts(db))
	r.GET("/api/products/featured", GetFeaturedProducts(db))
	r.GET("/api/products/search", SearchProducts(db))
	r.GET("/api/products/categories", GetAllCategories(db))
	r.GET("/api/products/:id", GetProductByID(db))
	return r
}

type listResponse struct {
	Products   []ProductView `json:"products"`
	Pagination struct {
		Page  int   `json:"page"`
		Limit int   `json:"limit"`
		Total int64 `json:"total"`
		Pages int   `json:"pages"`
	} `json:"pagination"`
}

func getList(t *testing.T, r *gin.Engine, query string) listResponse {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/products"+query, nil)
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var resp listResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func seedCatalog(t *testing.T, db *gorm.DB) {
	t.Helper()
	electronics := models.Category{Name: "Electronics"}
	books := models.Category{Name: "Books"}
	require.NoError(t, db.Create(&electronics).Error)
	require.NoError(t, db.Create(&books).Error)

	products := []models.Product{
		{Name: "Laptop", Description: "Portable computer", Price: 999.99, CategoryID: electronics.ID, StockQuantity: 5, Rating: 4.5, IsFeatured: true},
		{Name: "Headphones", Description: "Noise cancelling", Price: 149.99, CategoryID: electronics.ID, StockQuantity: 20, Rating: 4.0},
		{Name: "Novel", Description: "A laptop-free adventure", Price: 12.50, CategoryID: books.ID, StockQuantity: 50, Rating: 3.5, IsFeatured: true},
	}
	require.NoError(t, db.Create(&products).Error)
}

func TestGetProductsSortAllowList(t *testing.T) {
	db := setupDB(t)
	seedCatalog(t, db)
	r := newProductRouter(db)

	resp := getList(t, r, "?sortBy=price&sortOrder=asc")
	require.Len(t, resp.Products, 3)
	assert.Equal(t, "Novel", resp.Products[0].Name)
	assert.Equal(t, "Laptop", resp.Products[2].Name)

	// A field outside the allow-list silently falls back to created_at; the
	// request still succeeds.
	resp = getList(t, r, "?sortBy=password;DROP%20TABLE%20products")
	assert.Len(t, resp.Products, 3)
}

func TestGetProductsSearchIsCaseInsensitive(t *testing.T) {
	db := setupDB(t)
	seedCatalog(t, db)
	r := newProductRouter(db)

	// Matches "Laptop" by name and "Novel" by description substring.
	resp := getList(t, r, "?search=LAPTOP")
	require.Len(t, resp.Products, 2)
}

func TestSearchProducts(t *testing.T) {
	db := setupDB(t)
	seedCatalog(t, db)
	r := newProductRouter(db)

	// A missing query is a client error, not an empty result set.
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/products/search", nil)
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/products/search?q=%20%20", nil)
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/products/search?q=LAPTOP", nil)
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Products []ProductView `json:"products"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Products, 2)
	assert.Equal(t, "Laptop", resp.Products[0].Name)
}

func TestGetProductsCategoryAndPriceFilters(t *testing.T) {
	db := setupDB(t)
	seedCatalog(t, db)
	r := newProductRouter(db)

	resp := getList(t, r, "?category=Electronics")
	require.Len(t, resp.Products, 2)
	for _, p := range resp.Products {
		assert.Equal(t, "Electronics", p.CategoryName)
	}

	resp = getList(t, r, "?minPrice=100&maxPrice=500")
	require.Len(t, resp.Products, 1)
	assert.Equal(t, "Headphones", resp.Products[0].Name)
}

func TestGetProductsPagination(t *testing.T) {
	db := setupDB(t)
	seedCatalog(t, db)
	r := newProductRouter(db)

	resp := getList(t, r, "?page=2&limit=2&sortBy=name&sortOrder=asc")
	assert.Equal(t, 2, resp.Pagination.Page)
	assert.Equal(t, int64(3), resp.Pagination.Total)
	assert.Equal(t, 2, resp.Pagination.Pages)
	require.Len(t, resp.Products, 1)
}

func TestGetFeaturedProducts(t *testing.T) {
	db := setupDB(t)
	seedCatalog(t, db)
	r := newProductRouter(db)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/products/featured", nil)
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Products []ProductView `json:"products"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Products, 2)
	// Ordered by rating, best first.
	assert.Equal(t, "Laptop", resp.Products[0].Name)
}

func TestGetAllCategoriesWithCounts(t *testing.T) {
	db := setupDB(t)
	seedCatalog(t, db)
	r := newProductRouter(db)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/products/categories", nil)
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Categories []CategoryView `json:"categories"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Categories, 2)
	// Alphabetical: Books first.
	assert.Equal(t, "Books", resp.Categories[0].Name)
	assert.Equal(t, int64(1), resp.Categories[0].ProductCount)
	assert.Equal(t, int64(2), resp.Categories[1].ProductCount)
}

func TestGetProductByID(t *testing.T) {
	db := setupDB(t)
	seedCatalog(t, db)
	r := newProductRouter(db)

	var laptop models.Product
	require.NoError(t, db.Where("name = ?", "Laptop").First(&laptop).Error)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/products/1", nil)
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/products/9999", nil)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/products/abc", nil)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
