// Package steps implements the Godog step definitions for the analytics API
// feature tests. The steps start a real HTTP server once per test binary,
// wired against a shared in-memory database and an in-process Redis.
package steps

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"reflect"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/cucumber/godog"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fintrack/analytics-backend/internal/application/usecase/analytics"
	"github.com/fintrack/analytics-backend/internal/infra/server/router"
	"github.com/fintrack/analytics-backend/internal/integration/adapters"
	"github.com/fintrack/analytics-backend/internal/integration/cache"
	"github.com/fintrack/analytics-backend/internal/integration/entrypoint/controller"
	"github.com/fintrack/analytics-backend/internal/integration/entrypoint/middleware"
	"github.com/fintrack/analytics-backend/internal/integration/persistence"
	"github.com/fintrack/analytics-backend/internal/integration/persistence/model"
	"github.com/fintrack/analytics-backend/test/integration/mock"
)

const testJWTSecret = "test-jwt-secret-key-for-testing-purposes"

type testContext struct {
	uri             string
	headers         map[string]string
	client          *http.Client
	response        *response
	db              *mock.Db
	serverPort      int
	accessToken     string
	currentUserID   uuid.UUID
	currentWalletID uuid.UUID
}

type response struct {
	status int
	body   any
}

var serverInit sync.Once
var testDB *mock.Db
var testServerPort int
var portInit sync.Once

func initializePort() {
	portInit.Do(func() {
		testServerPort = findAvailablePort()
		_ = os.Setenv("SERVER_PORT", strconv.Itoa(testServerPort))
		_ = os.Setenv("ENV", "test")
	})
}

// InitializeTestSuite prepares suite-wide state before any scenario runs.
func InitializeTestSuite(ctx *godog.TestSuiteContext) {
	ctx.BeforeSuite(initializePort)
}

// InitializeScenario registers the step definitions for a scenario.
func InitializeScenario(ctx *godog.ScenarioContext) {
	initializePort()

	test := &testContext{
		uri:        fmt.Sprintf("http://localhost:%d", testServerPort),
		client:     &http.Client{Timeout: 10 * time.Second},
		serverPort: testServerPort,
		db: mock.NewDb("fintrack_analytics", map[string]any{
			"movements": &model.MovementModel{},
		}),
	}

	testDB = test.db

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		return ctx, test.before()
	})

	// Background steps
	ctx.Given(`^the API server is running$`, test.theAPIServerIsRunning)

	// User setup steps
	ctx.Given(`^a user exists$`, test.aUserExists)
	ctx.Given(`^the user is authenticated$`, test.theUserIsAuthenticated)
	ctx.Given(`^the header is empty$`, test.theHeaderIsEmpty)
	ctx.Given(`^the header contains an invalid bearer token$`, test.theHeaderContainsAnInvalidBearerToken)

	// Movement setup steps
	ctx.Given(`^the user has the following movements:$`, test.theUserHasTheFollowingMovements)
	ctx.Given(`^another user has an expense of "([^"]*)" on "([^"]*)"$`, test.anotherUserHasAnExpenseOfOn)

	// Request steps
	ctx.When(`^I send a "([^"]*)" request to "([^"]*)"$`, test.iSendARequestTo)

	// Response assertion steps
	ctx.Then(`^the response status should be (\d+)$`, test.theResponseStatusShouldBe)
	ctx.Then(`^the response should be JSON$`, test.theResponseShouldBeJSON)
	ctx.Then(`^the response field "([^"]*)" should be "([^"]*)"$`, test.theResponseFieldShouldBe)
	ctx.Then(`^the response field "([^"]*)" should exist$`, test.theResponseFieldShouldExist)
	ctx.Then(`^the response field "([^"]*)" should have (\d+) elements$`, test.theResponseFieldShouldHaveElements)

	// Database assertion steps
	ctx.Then(`^the db should contain (\d+) objects in the "([^"]*)" table$`, test.theDbShouldContainObjectsInTheTable)
}

func findAvailablePort() int {
	listener, err := net.Listen("tcp", ":0")
	if err != nil {
		panic(err)
	}
	defer listener.Close()
	return listener.Addr().(*net.TCPAddr).Port
}

func (t *testContext) before() error {
	t.headers = make(map[string]string)
	t.accessToken = ""
	t.response = nil
	t.currentUserID = uuid.Nil
	t.currentWalletID = uuid.New()

	if t.db != nil {
		if err := t.db.ClearDB(); err != nil {
			return err
		}
	}

	return mock.ClearRedis(mock.NewRedis())
}

func (t *testContext) startServer() {
	serverInit.Do(func() {
		go func() {
			gin.SetMode(gin.TestMode)

			// Create repositories
			movementRepo := persistence.NewMovementRepository(testDB.DbConn)

			// Create the result cache on the in-process Redis
			resultCache := cache.NewRedisCache(mock.NewRedis(), 5*time.Minute)

			// Create adapters/services
			tokenService := adapters.NewTokenService(testJWTSecret)

			// Create analytics use cases
			getSummaryUseCase := analytics.NewGetSummaryUseCase(movementRepo, resultCache)
			getBreakdownUseCase := analytics.NewGetBreakdownUseCase(movementRepo, resultCache)
			getTrendUseCase := analytics.NewGetTrendUseCase(movementRepo, resultCache)
			getDailyComparisonUseCase := analytics.NewGetDailyComparisonUseCase(movementRepo, resultCache)
			getInsightsUseCase := analytics.NewGetInsightsUseCase(movementRepo, resultCache)
			getDataRangeUseCase := analytics.NewGetDataRangeUseCase(movementRepo)
			invalidateCacheUseCase := analytics.NewInvalidateCacheUseCase(resultCache)

			// Create controllers
			healthController := controller.NewHealthController(func() bool {
				return testDB != nil && testDB.DbConn != nil
			})

			analyticsController := controller.NewAnalyticsController(
				getSummaryUseCase,
				getBreakdownUseCase,
				getTrendUseCase,
				getDailyComparisonUseCase,
				getInsightsUseCase,
				getDataRangeUseCase,
				invalidateCacheUseCase,
				controller.AnalyticsDefaults{
					TrendPeriods:      12,
					ComparisonPeriods: 6,
					InsightPeriods:    7,
				},
			)

			// Create middleware
			rateLimiter := middleware.NewRateLimiterWithConfig(10000, 1*time.Minute)
			authMiddleware := middleware.NewAuthMiddleware(tokenService)

			r := router.NewRouter(healthController, analyticsController, rateLimiter, authMiddleware)
			engine := r.Setup("test")

			server := &http.Server{
				Addr:    fmt.Sprintf(":%d", testServerPort),
				Handler: engine,
			}

			_ = server.ListenAndServe()
		}()
	})

	// Wait for server to be ready
	for i := 0; i < 50; i++ {
		resp, err := http.Get(t.uri + "/health")
		if err == nil && resp.StatusCode == http.StatusOK {
			resp.Body.Close()
			return
		}
		time.Sleep(100 * time.Millisecond)
	}
}

func (t *testContext) theAPIServerIsRunning() error {
	t.startServer()
	return nil
}

func (t *testContext) aUserExists() error {
	t.currentUserID = uuid.New()
	return nil
}

// theUserIsAuthenticated signs a real access token for the current user, the
// same shape the auth service issues.
func (t *testContext) theUserIsAuthenticated() error {
	if t.currentUserID == uuid.Nil {
		t.currentUserID = uuid.New()
	}

	now := time.Now().UTC()
	claims := jwt.MapClaims{
		"user_id":    t.currentUserID.String(),
		"email":      "analytics@example.com",
		"token_type": "access",
		"exp":        jwt.NewNumericDate(now.Add(15 * time.Minute)),
		"iat":        jwt.NewNumericDate(now),
		"nbf":        jwt.NewNumericDate(now),
		"iss":        "fintrack-auth",
		"sub":        t.currentUserID.String(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(testJWTSecret))
	if err != nil {
		return fmt.Errorf("failed to generate access token: %w", err)
	}

	t.accessToken = signed
	return nil
}

func (t *testContext) theHeaderIsEmpty() error {
	t.headers = make(map[string]string)
	t.accessToken = ""
	return nil
}

func (t *testContext) theHeaderContainsAnInvalidBearerToken() error {
	t.accessToken = ""
	t.headers["Authorization"] = "Bearer not-a-valid-token"
	return nil
}

func (t *testContext) theUserHasTheFollowingMovements(table *godog.Table) error {
	if len(table.Rows) < 2 {
		return errors.New("movement table needs a header row and at least one data row")
	}

	cols := make(map[string]int, len(table.Rows[0].Cells))
	for i, cell := range table.Rows[0].Cells {
		cols[cell.Value] = i
	}

	for _, row := range table.Rows[1:] {
		get := func(name string) string {
			idx, ok := cols[name]
			if !ok || idx >= len(row.Cells) {
				return ""
			}
			return row.Cells[idx].Value
		}

		amount, err := decimal.NewFromString(get("amount"))
		if err != nil {
			return fmt.Errorf("invalid amount %q: %w", get("amount"), err)
		}
		date, err := time.Parse("2006-01-02", get("date"))
		if err != nil {
			return fmt.Errorf("invalid date %q: %w", get("date"), err)
		}

		now := time.Now().UTC()
		movement := &model.MovementModel{
			ID:        uuid.New(),
			UserID:    t.currentUserID,
			WalletID:  t.currentWalletID,
			Kind:      get("kind"),
			Amount:    amount,
			Date:      date,
			Category:  get("category"),
			CreatedAt: now,
			UpdatedAt: now,
		}
		if sub := get("subcategory"); sub != "" {
			movement.Subcategory = &sub
		}

		if err := t.db.DbConn.Create(movement).Error; err != nil {
			return err
		}
	}

	return nil
}

func (t *testContext) anotherUserHasAnExpenseOfOn(amountStr, dateStr string) error {
	amount, err := decimal.NewFromString(amountStr)
	if err != nil {
		return fmt.Errorf("invalid amount %q: %w", amountStr, err)
	}
	date, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		return fmt.Errorf("invalid date %q: %w", dateStr, err)
	}

	now := time.Now().UTC()
	movement := &model.MovementModel{
		ID:        uuid.New(),
		UserID:    uuid.New(),
		WalletID:  uuid.New(),
		Kind:      "expense",
		Amount:    amount,
		Date:      date,
		Category:  "Other",
		CreatedAt: now,
		UpdatedAt: now,
	}

	return t.db.DbConn.Create(movement).Error
}

func (t *testContext) iSendARequestTo(method, path string) error {
	req, err := http.NewRequest(method, t.uri+path, nil)
	if err != nil {
		return err
	}

	req.Header.Set("Content-Type", "application/json")
	if t.accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+t.accessToken)
	}
	for key, value := range t.headers {
		req.Header.Set(key, value)
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	t.response = &response{status: resp.StatusCode}

	var responseBody map[string]any
	if err := json.Unmarshal(bodyBytes, &responseBody); err != nil {
		t.response.body = string(bodyBytes)
	} else {
		t.response.body = responseBody
	}

	return nil
}

func (t *testContext) theResponseStatusShouldBe(expectedStatus int) error {
	if t.response == nil {
		return errors.New("no response received")
	}
	if t.response.status != expectedStatus {
		return fmt.Errorf("expected status %d, got %d (body: %v)", expectedStatus, t.response.status, t.response.body)
	}
	return nil
}

func (t *testContext) theResponseShouldBeJSON() error {
	if t.response == nil {
		return errors.New("no response received")
	}
	if _, ok := t.response.body.(map[string]any); !ok {
		return fmt.Errorf("response is not JSON: %v", t.response.body)
	}
	return nil
}

func (t *testContext) theResponseFieldShouldBe(field, expectedValue string) error {
	value, err := t.responseField(field)
	if err != nil {
		return err
	}

	actualValue := fmt.Sprintf("%v", value)
	if actualValue != expectedValue {
		return fmt.Errorf("field '%s' expected '%s', got '%s'", field, expectedValue, actualValue)
	}
	return nil
}

func (t *testContext) theResponseFieldShouldExist(field string) error {
	_, err := t.responseField(field)
	return err
}

func (t *testContext) theResponseFieldShouldHaveElements(field string, count int) error {
	value, err := t.responseField(field)
	if err != nil {
		return err
	}

	arr, ok := value.([]any)
	if !ok {
		return fmt.Errorf("field '%s' is not an array: %v", field, value)
	}
	if len(arr) != count {
		return fmt.Errorf("field '%s' expected %d elements, got %d", field, count, len(arr))
	}
	return nil
}

func (t *testContext) responseField(field string) (any, error) {
	if t.response == nil {
		return nil, errors.New("no response received")
	}

	body, ok := t.response.body.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("response is not a JSON object: %v", t.response.body)
	}

	value := getFieldValue(body, field)
	if value == nil {
		return nil, fmt.Errorf("field '%s' not found in response: %v", field, body)
	}
	return value, nil
}

func (t *testContext) theDbShouldContainObjectsInTheTable(quantity int, table string) error {
	entity, ok := t.db.GetModel(table)
	if !ok {
		return fmt.Errorf("table '%s' not found in models", table)
	}

	entityType := reflect.TypeOf(entity).Elem()
	entitySlice := reflect.MakeSlice(reflect.SliceOf(entityType), 0, 0)
	entitySlicePtr := reflect.New(entitySlice.Type())
	entitySlicePtr.Elem().Set(entitySlice)

	result := t.db.DbConn.Unscoped().Find(entitySlicePtr.Interface())
	if result.Error != nil {
		return result.Error
	}

	count := entitySlicePtr.Elem().Len()
	if count != quantity {
		return fmt.Errorf("expected %d objects in '%s', got %d", quantity, table, count)
	}
	return nil
}

func getFieldValue(object any, dotSeparatedField string) any {
	if object == nil {
		return nil
	}

	objectMap, ok := object.(map[string]any)
	if !ok {
		return nil
	}

	fields := strings.Split(dotSeparatedField, ".")
	var field any = objectMap

	for _, currentField := range fields {
		if field == nil {
			return nil
		}

		if i, err := strconv.Atoi(currentField); err == nil {
			if arr, ok := field.([]any); ok && i < len(arr) {
				field = arr[i]
			} else {
				return nil
			}
		} else {
			if m, ok := field.(map[string]any); ok {
				field = m[currentField]
			} else {
				return nil
			}
		}
	}

	return field
}
