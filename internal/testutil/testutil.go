package testutil

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/stitchpoint/orderdesk/internal/middleware"
	"github.com/stitchpoint/orderdesk/internal/model/entity"
)

const (
	TestSchema = "test_orderdesk"
	JWTSecret  = "orderdesk-test-jwt-secret"
)

// TestEnv holds test environment resources
type TestEnv struct {
	DB     *gorm.DB
	Router *gin.Engine
	T      *testing.T
}

// projectRoot returns the project root directory by looking for go.mod
func projectRoot() string {
	_, filename, _, _ := runtime.Caller(0)
	dir := filepath.Dir(filename)
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return ""
}

func loadEnv() {
	root := projectRoot()
	if root != "" {
		godotenv.Load(filepath.Join(root, ".env"))
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// SetupTestDB creates a test database connection using a dedicated schema.
// Each test gets an isolated schema that is dropped on cleanup.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	loadEnv()

	host := getEnv("DB_HOST", "127.0.0.1")
	port := getEnv("DB_PORT", "5432")
	user := getEnv("DB_USER", "orderdesk")
	password := getEnv("DB_PASSWORD", "orderdesk123")
	dbname := getEnv("DB_NAME", "orderdesk")

	baseDSN := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		host, port, user, password, dbname)

	schemaName := fmt.Sprintf("%s_%d", TestSchema, time.Now().UnixNano()%1000000)

	setupDB, err := gorm.Open(postgres.Open(baseDSN), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("Failed to connect to database for schema setup: %v", err)
	}
	setupDB.Exec(fmt.Sprintf("CREATE SCHEMA IF NOT EXISTS %s", schemaName))
	sqlSetup, _ := setupDB.DB()
	sqlSetup.Close()

	// search_path in the DSN so all pooled connections use the test schema
	testDSN := fmt.Sprintf("%s search_path=%s", baseDSN, schemaName)
	db, err := gorm.Open(postgres.Open(testDSN), &gorm.Config{
		Logger:                                   logger.Default.LogMode(logger.Silent),
		DisableForeignKeyConstraintWhenMigrating: true,
		TranslateError:                           true,
	})
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}

	err = db.AutoMigrate(
		&entity.SalesCoordinator{},
		&entity.ProductCategory{},
		&entity.ProductName{},
		&entity.Color{},
		&entity.Order{},
	)
	if err != nil {
		t.Fatalf("Failed to migrate test tables: %v", err)
	}

	t.Cleanup(func() {
		sqlDB, _ := db.DB()
		if sqlDB != nil {
			sqlDB.Close()
		}
		cleanDB, cleanErr := gorm.Open(postgres.Open(baseDSN), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		if cleanErr == nil {
			cleanDB.Exec(fmt.Sprintf("DROP SCHEMA IF EXISTS %s CASCADE", schemaName))
			sqlClean, _ := cleanDB.DB()
			if sqlClean != nil {
				sqlClean.Close()
			}
		}
	})

	return db
}

// SetupRouter creates a gin test router.
func SetupRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(gin.Recovery())
	return r
}

// AuthGroup creates an API group with JWT auth for testing.
func AuthGroup(r *gin.Engine, path string) *gin.RouterGroup {
	return r.Group(path, middleware.JWTAuth(JWTSecret))
}

// GenerateTestToken creates a valid JWT token for testing.
func GenerateTestToken(userID, name, email string) string {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   userID,
		"uid":   userID,
		"name":  name,
		"email": email,
		"iss":   "orderdesk",
		"iat":   now.Unix(),
		"exp":   now.Add(24 * time.Hour).Unix(),
		"jti":   fmt.Sprintf("test-jti-%d", now.UnixNano()),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, _ := token.SignedString([]byte(JWTSecret))
	return tokenString
}

// DefaultTestToken returns a token for the default test user.
func DefaultTestToken() string {
	return GenerateTestToken("test-user-001", "Test Admin", "admin@test.com")
}

// DoRequest executes an HTTP request against the test router.
func DoRequest(r *gin.Engine, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	var reqBody *bytes.Buffer
	if body != nil {
		jsonBytes, _ := json.Marshal(body)
		reqBody = bytes.NewBuffer(jsonBytes)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req, _ := http.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// ParseResponse parses the JSON response body into a map.
func ParseResponse(w *httptest.ResponseRecorder) map[string]interface{} {
	var result map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &result)
	return result
}

// SeedCoordinator creates a sales coordinator row.
func SeedCoordinator(t *testing.T, db *gorm.DB, id, name string) *entity.SalesCoordinator {
	t.Helper()
	coord := &entity.SalesCoordinator{
		ID:        id,
		Name:      name,
		Email:     name + "@test.com",
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if err := db.Create(coord).Error; err != nil {
		t.Fatalf("Failed to seed coordinator: %v", err)
	}
	return coord
}

// SeedCatalog creates one category, one product in it and one color.
func SeedCatalog(t *testing.T, db *gorm.DB) (*entity.ProductCategory, *entity.ProductName, *entity.Color) {
	t.Helper()
	category := &entity.ProductCategory{ID: "cat-001", Name: "T-Shirts", CreatedAt: time.Now(), UpdatedAt: time.Now()}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("Failed to seed category: %v", err)
	}
	product := &entity.ProductName{ID: "prod-001", Name: "Round Neck Tee", CategoryID: category.ID, CreatedAt: time.Now(), UpdatedAt: time.Now()}
	if err := db.Create(product).Error; err != nil {
		t.Fatalf("Failed to seed product: %v", err)
	}
	color := &entity.Color{ID: "color-001", Name: "Black", HexCode: "#000000", CreatedAt: time.Now(), UpdatedAt: time.Now()}
	if err := db.Create(color).Error; err != nil {
		t.Fatalf("Failed to seed color: %v", err)
	}
	return category, product, color
}

// SeedOrder creates a minimal valid order row.
func SeedOrder(t *testing.T, db *gorm.DB, id, code, customer, coordinatorID string) *entity.Order {
	t.Helper()
	now := time.Now()
	order := &entity.Order{
		ID:                 id,
		OrderCode:          code,
		CustomerName:       customer,
		OrderDate:          now,
		DeliveryDate:       now.AddDate(0, 0, 7),
		ProductCategoryID:  "cat-001",
		ProductNameID:      "prod-001",
		ColorID:            "color-001",
		SalesCoordinatorID: coordinatorID,
		Sizes:              entity.SizeBreakdown{M: 10},
		TotalQty:           10,
		CostPerPc:          5,
		TotalAmount:        50,
		OrderType:          entity.OrderTypeNew,
		Priority:           "medium",
		BrandingMethod:     entity.BrandingScreenPrint,
		Status:             entity.StatusPendingApproval,
		Description:        "test order",
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if err := db.Create(order).Error; err != nil {
		t.Fatalf("Failed to seed order: %v", err)
	}
	return order
}
