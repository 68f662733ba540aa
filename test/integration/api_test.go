// Package integration provides end-to-end integration tests for the
// membership API. Tests run the full HTTP stack against both PostgreSQL and
// MySQL databases.
package integration

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/socioclub/membership/internal/app"
	"github.com/socioclub/membership/internal/config"
	identityDomain "github.com/socioclub/membership/internal/identity/domain"
	identityDTO "github.com/socioclub/membership/internal/identity/http/dto"
	profileDTO "github.com/socioclub/membership/internal/profile/http/dto"
	"github.com/socioclub/membership/internal/testutil"
)

// integrationTestContext holds all dependencies and state for integration testing.
type integrationTestContext struct {
	container *app.Container
	db        *sql.DB
	server    *httptest.Server
	dbDriver  string
}

// makeRequest performs an HTTP request with an optional JSON body and returns
// the response and body.
func (ctx *integrationTestContext) makeRequest(
	t *testing.T,
	method, path string,
	body interface{},
) (*http.Response, []byte) {
	t.Helper()

	var bodyReader io.Reader
	if body != nil {
		bodyBytes, err := json.Marshal(body)
		require.NoError(t, err, "failed to marshal request body")
		bodyReader = bytes.NewReader(bodyBytes)
	}

	req, err := http.NewRequest(method, ctx.server.URL+path, bodyReader)
	require.NoError(t, err, "failed to create request")

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Do(req)
	require.NoError(t, err, "failed to perform request")

	respBody, err := io.ReadAll(resp.Body)
	require.NoError(t, err, "failed to read response body")
	if closeErr := resp.Body.Close(); closeErr != nil {
		t.Logf("Warning: failed to close response body: %v", closeErr)
	}

	return resp, respBody
}

// makeMultipartRequest performs a multipart upload with a single "photo" file
// field and returns the response and body.
func (ctx *integrationTestContext) makeMultipartRequest(
	t *testing.T,
	method, path, filename, contentType string,
	data []byte,
) (*http.Response, []byte) {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="photo"; filename="%s"`, filename))
	header.Set("Content-Type", contentType)

	part, err := writer.CreatePart(header)
	require.NoError(t, err, "failed to create multipart part")
	_, err = part.Write(data)
	require.NoError(t, err, "failed to write multipart data")
	require.NoError(t, writer.Close())

	req, err := http.NewRequest(method, ctx.server.URL+path, &buf)
	require.NoError(t, err, "failed to create request")
	req.Header.Set("Content-Type", writer.FormDataContentType())

	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Do(req)
	require.NoError(t, err, "failed to perform request")

	respBody, err := io.ReadAll(resp.Body)
	require.NoError(t, err, "failed to read response body")
	if closeErr := resp.Body.Close(); closeErr != nil {
		t.Logf("Warning: failed to close response body: %v", closeErr)
	}

	return resp, respBody
}

// setupIntegrationTest initializes the database, seeds the roles, and starts
// an HTTP test server backed by a real container.
func setupIntegrationTest(t *testing.T, dbDriver string) *integrationTestContext {
	t.Helper()

	gin.SetMode(gin.TestMode)

	var db *sql.DB
	var dsn string
	if dbDriver == "postgres" {
		db = testutil.SetupPostgresDB(t)
		dsn = testutil.GetPostgresTestDSN()
	} else {
		db = testutil.SetupMySQLDB(t)
		dsn = testutil.GetMySQLTestDSN()
	}

	// Registration assigns the default role, so the roles must exist.
	testutil.CreateTestRole(t, db, dbDriver, identityDomain.RoleNameAdmin)
	testutil.CreateTestRole(t, db, dbDriver, identityDomain.RoleNameUser)

	cfg := &config.Config{
		ServerHost:           "localhost",
		ServerPort:           8080,
		DBDriver:             dbDriver,
		DBConnectionString:   dsn,
		DBMaxOpenConnections: 10,
		DBMaxIdleConnections: 5,
		DBConnMaxLifetime:    time.Hour,
		LogLevel:             "error",
		PasswordHasher:       "bcrypt",
		MediaBucketURL:       "mem://",
	}

	container := app.NewContainer(cfg)

	httpSrv, err := container.HTTPServer(context.Background())
	require.NoError(t, err, "failed to get HTTP server")

	testServer := httptest.NewServer(httpSrv.SetupRouter(context.Background()))

	return &integrationTestContext{
		container: container,
		db:        db,
		server:    testServer,
		dbDriver:  dbDriver,
	}
}

// teardownIntegrationTest cleans up all resources.
func teardownIntegrationTest(t *testing.T, ctx *integrationTestContext) {
	t.Helper()

	if ctx.server != nil {
		ctx.server.Close()
	}

	if ctx.container != nil {
		if err := ctx.container.Shutdown(context.Background()); err != nil {
			t.Logf("Warning: container shutdown error: %v", err)
		}
	}

	if ctx.db != nil {
		testutil.TeardownDB(t, ctx.db)
	}
}

func registerRequest(email, dni string) identityDTO.RegisterUserRequest {
	return identityDTO.RegisterUserRequest{
		Email:     email,
		Password:  "Password1",
		SexID:     1,
		DNI:       dni,
		FirstName: "Ana",
		LastName:  "García",
		BirthDate: "1990-03-14",
	}
}

// TestIntegration_Health_BasicChecks validates the health and readiness
// endpoints against both PostgreSQL and MySQL.
func TestIntegration_Health_BasicChecks(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	testCases := []struct {
		name     string
		dbDriver string
	}{
		{"PostgreSQL", "postgres"},
		{"MySQL", "mysql"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctx := setupIntegrationTest(t, tc.dbDriver)
			defer teardownIntegrationTest(t, ctx)

			t.Run("01_HealthCheck", func(t *testing.T) {
				resp, body := ctx.makeRequest(t, http.MethodGet, "/health", nil)
				assert.Equal(t, http.StatusOK, resp.StatusCode)

				var response map[string]string
				err := json.Unmarshal(body, &response)
				require.NoError(t, err)
				assert.Equal(t, "healthy", response["status"])
			})

			t.Run("02_ReadinessCheck", func(t *testing.T) {
				resp, body := ctx.makeRequest(t, http.MethodGet, "/ready", nil)
				assert.Equal(t, http.StatusOK, resp.StatusCode)

				var response map[string]string
				err := json.Unmarshal(body, &response)
				require.NoError(t, err)
				assert.Equal(t, "ready", response["status"])
			})
		})
	}
}

// TestIntegration_Identity_CompleteFlow tests the account lifecycle: register,
// duplicate detection, login, email verification, and user retrieval.
func TestIntegration_Identity_CompleteFlow(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	testCases := []struct {
		name     string
		dbDriver string
	}{
		{"PostgreSQL", "postgres"},
		{"MySQL", "mysql"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctx := setupIntegrationTest(t, tc.dbDriver)
			defer teardownIntegrationTest(t, ctx)

			var userID uuid.UUID

			// [1/9] POST /v1/users - Register a new member
			t.Run("01_Register", func(t *testing.T) {
				resp, body := ctx.makeRequest(t, http.MethodPost, "/v1/users", registerRequest("ana@example.com", "30123456"))
				assert.Equal(t, http.StatusCreated, resp.StatusCode)

				var response identityDTO.RegisterUserResponse
				err := json.Unmarshal(body, &response)
				require.NoError(t, err)
				assert.NotEqual(t, uuid.Nil, response.User.ID)
				assert.Equal(t, "ana@example.com", response.User.Email)
				assert.False(t, response.User.EmailVerified, "fresh accounts start unverified")
				assert.Equal(t, "30123456", response.Profile.DNI)
				assert.Equal(t, "1990-03-14", response.Profile.BirthDate)

				userID = response.User.ID
			})

			// [2/9] POST /v1/users - Duplicate email is rejected
			t.Run("02_Register_DuplicateEmail", func(t *testing.T) {
				resp, body := ctx.makeRequest(t, http.MethodPost, "/v1/users", registerRequest("ana@example.com", "30999999"))
				assert.Equal(t, http.StatusConflict, resp.StatusCode)

				var response map[string]string
				err := json.Unmarshal(body, &response)
				require.NoError(t, err)
				assert.Equal(t, "USUARIO_DUPLICADO", response["code"])
			})

			// [3/9] POST /v1/users - Duplicate DNI is rejected
			t.Run("03_Register_DuplicateDNI", func(t *testing.T) {
				resp, body := ctx.makeRequest(t, http.MethodPost, "/v1/users", registerRequest("otra@example.com", "30123456"))
				assert.Equal(t, http.StatusConflict, resp.StatusCode)

				var response map[string]string
				err := json.Unmarshal(body, &response)
				require.NoError(t, err)
				assert.Equal(t, "DNI_DUPLICADO", response["code"])
			})

			// [4/9] POST /v1/login - Successful login records the timestamp
			t.Run("04_Login", func(t *testing.T) {
				requestBody := identityDTO.LoginRequest{Email: "ana@example.com", Password: "Password1"}

				resp, body := ctx.makeRequest(t, http.MethodPost, "/v1/login", requestBody)
				assert.Equal(t, http.StatusOK, resp.StatusCode)

				var response identityDTO.UserResponse
				err := json.Unmarshal(body, &response)
				require.NoError(t, err)
				assert.Equal(t, userID, response.ID)
				assert.NotNil(t, response.LastLoginAt, "login should record last_login_at")

				// A second login right away lands within the same timestamp
				// second, making the last_login_at write a no-op. It must
				// still succeed.
				resp, _ = ctx.makeRequest(t, http.MethodPost, "/v1/login", requestBody)
				assert.Equal(t, http.StatusOK, resp.StatusCode, "repeated login must not read as a missing user")
			})

			// [5/9] POST /v1/login - Wrong password does not reveal which part failed
			t.Run("05_Login_WrongPassword", func(t *testing.T) {
				requestBody := identityDTO.LoginRequest{Email: "ana@example.com", Password: "WrongPass1"}

				resp, body := ctx.makeRequest(t, http.MethodPost, "/v1/login", requestBody)
				assert.Equal(t, http.StatusNotFound, resp.StatusCode)

				var response map[string]string
				err := json.Unmarshal(body, &response)
				require.NoError(t, err)
				assert.Equal(t, "ENTIDAD_NO_ENCONTRADA", response["code"])
			})

			// [6/9] POST /v1/users/:id/verify-email - Mark the email verified
			t.Run("06_VerifyEmail", func(t *testing.T) {
				resp, body := ctx.makeRequest(t, http.MethodPost, "/v1/users/"+userID.String()+"/verify-email", nil)
				assert.Equal(t, http.StatusOK, resp.StatusCode)

				var response identityDTO.UserResponse
				err := json.Unmarshal(body, &response)
				require.NoError(t, err)
				assert.True(t, response.EmailVerified)
			})

			// [7/9] GET /v1/users/:id - Retrieve the user
			t.Run("07_GetUser", func(t *testing.T) {
				resp, body := ctx.makeRequest(t, http.MethodGet, "/v1/users/"+userID.String(), nil)
				assert.Equal(t, http.StatusOK, resp.StatusCode)

				var response identityDTO.UserResponse
				err := json.Unmarshal(body, &response)
				require.NoError(t, err)
				assert.Equal(t, userID, response.ID)
				assert.True(t, response.EmailVerified, "verification should persist")
			})

			// [8/9] GET /v1/users - List users
			t.Run("08_ListUsers", func(t *testing.T) {
				resp, body := ctx.makeRequest(t, http.MethodGet, "/v1/users", nil)
				assert.Equal(t, http.StatusOK, resp.StatusCode)

				var response identityDTO.ListUsersResponse
				err := json.Unmarshal(body, &response)
				require.NoError(t, err)
				assert.Len(t, response.Users, 1)
			})

			// [9/9] GET /v1/users/:id/profile - Profile created with registration
			t.Run("09_GetProfileByUser", func(t *testing.T) {
				resp, body := ctx.makeRequest(t, http.MethodGet, "/v1/users/"+userID.String()+"/profile", nil)
				assert.Equal(t, http.StatusOK, resp.StatusCode)

				var response profileDTO.ProfileResponse
				err := json.Unmarshal(body, &response)
				require.NoError(t, err)
				assert.Equal(t, userID, response.UserID)
				assert.Equal(t, "30123456", response.DNI)
				assert.Equal(t, "Ana García", response.FullName)
			})
		})
	}
}

// TestIntegration_Profile_CompleteFlow tests the profile lifecycle for a user
// created without one: create, duplicate detection, update, and photo upload.
func TestIntegration_Profile_CompleteFlow(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	testCases := []struct {
		name     string
		dbDriver string
	}{
		{"PostgreSQL", "postgres"},
		{"MySQL", "mysql"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctx := setupIntegrationTest(t, tc.dbDriver)
			defer teardownIntegrationTest(t, ctx)

			// A user without a profile; legacy accounts predate the combined
			// registration flow.
			roleID := testutil.CreateTestRole(t, ctx.db, tc.dbDriver, "Socio")
			userID := testutil.CreateTestUser(t, ctx.db, tc.dbDriver, "luis@example.com", roleID)

			var profileID uuid.UUID

			// [1/6] POST /v1/profiles - Create the profile
			t.Run("01_CreateProfile", func(t *testing.T) {
				requestBody := profileDTO.CreateProfileRequest{
					UserID:       userID,
					SexID:        1,
					DNI:          "28765432",
					FirstName:    "Luis",
					LastName:     "Pérez",
					BirthDate:    "1985-07-02",
					ContactEmail: "luis@example.com",
				}

				resp, body := ctx.makeRequest(t, http.MethodPost, "/v1/profiles", requestBody)
				assert.Equal(t, http.StatusCreated, resp.StatusCode)

				var response profileDTO.ProfileResponse
				err := json.Unmarshal(body, &response)
				require.NoError(t, err)
				assert.NotEqual(t, uuid.Nil, response.ID)
				assert.Equal(t, userID, response.UserID)
				assert.Equal(t, "Luis Pérez", response.FullName)
				assert.False(t, response.Complete, "unverified profiles are incomplete")

				profileID = response.ID
			})

			// [2/6] POST /v1/profiles - A second profile for the same user is rejected
			t.Run("02_CreateProfile_Duplicate", func(t *testing.T) {
				requestBody := profileDTO.CreateProfileRequest{
					UserID:       userID,
					SexID:        1,
					DNI:          "29111222",
					FirstName:    "Luis",
					LastName:     "Pérez",
					BirthDate:    "1985-07-02",
					ContactEmail: "luis@example.com",
				}

				resp, body := ctx.makeRequest(t, http.MethodPost, "/v1/profiles", requestBody)
				assert.Equal(t, http.StatusConflict, resp.StatusCode)

				var response map[string]string
				err := json.Unmarshal(body, &response)
				require.NoError(t, err)
				assert.Equal(t, "PERFIL_DUPLICADO", response["code"])
			})

			// [3/6] GET /v1/profiles/:id - Retrieve the profile
			t.Run("03_GetProfile", func(t *testing.T) {
				resp, body := ctx.makeRequest(t, http.MethodGet, "/v1/profiles/"+profileID.String(), nil)
				assert.Equal(t, http.StatusOK, resp.StatusCode)

				var response profileDTO.ProfileResponse
				err := json.Unmarshal(body, &response)
				require.NoError(t, err)
				assert.Equal(t, profileID, response.ID)
				assert.Equal(t, "28765432", response.DNI)
			})

			// [4/6] PUT /v1/profiles/:id - Update mutable fields including the DNI
			t.Run("04_UpdateProfile", func(t *testing.T) {
				phone := "+34911222333"
				requestBody := profileDTO.UpdateProfileRequest{
					SexID:        1,
					DNI:          "29888777",
					FirstName:    "Luis",
					LastName:     "Pérez Gómez",
					ContactEmail: "luis@example.com",
					Phone:        &phone,
				}

				resp, body := ctx.makeRequest(t, http.MethodPut, "/v1/profiles/"+profileID.String(), requestBody)
				assert.Equal(t, http.StatusOK, resp.StatusCode)

				var response profileDTO.ProfileResponse
				err := json.Unmarshal(body, &response)
				require.NoError(t, err)
				assert.Equal(t, "29888777", response.DNI)
				assert.Equal(t, "Luis Pérez Gómez", response.FullName)
				require.NotNil(t, response.Phone)
				assert.Equal(t, phone, *response.Phone)

				// Resubmitting the unchanged payload writes identical values.
				// The no-op update must not surface as a missing profile.
				resp, _ = ctx.makeRequest(t, http.MethodPut, "/v1/profiles/"+profileID.String(), requestBody)
				assert.Equal(t, http.StatusOK, resp.StatusCode, "unchanged resubmission must succeed")
			})

			// [5/6] PUT /v1/profiles/:id/photo - Upload a profile photo, then
			// replace it
			t.Run("05_AttachPhoto", func(t *testing.T) {
				resp, body := ctx.makeMultipartRequest(
					t,
					http.MethodPut,
					"/v1/profiles/"+profileID.String()+"/photo",
					"avatar.jpg",
					"image/jpeg",
					[]byte("fake-jpeg-bytes"),
				)
				assert.Equal(t, http.StatusOK, resp.StatusCode)

				var response profileDTO.ProfileResponse
				err := json.Unmarshal(body, &response)
				require.NoError(t, err)
				require.NotNil(t, response.PhotoID)
				firstPhotoID := *response.PhotoID

				resp, body = ctx.makeMultipartRequest(
					t,
					http.MethodPut,
					"/v1/profiles/"+profileID.String()+"/photo",
					"avatar2.jpg",
					"image/jpeg",
					[]byte("newer-jpeg-bytes"),
				)
				assert.Equal(t, http.StatusOK, resp.StatusCode)

				err = json.Unmarshal(body, &response)
				require.NoError(t, err)
				require.NotNil(t, response.PhotoID)
				assert.NotEqual(t, firstPhotoID, *response.PhotoID)

				// The superseded record is removed with the replacement.
				var count int
				err = ctx.db.QueryRow("SELECT COUNT(*) FROM profile_photos").Scan(&count)
				require.NoError(t, err)
				assert.Equal(t, 1, count, "replaced photos must not accumulate")
			})

			// [6/6] GET /v1/profiles/:id - Photo link persists across reads
			t.Run("06_PhotoPersisted", func(t *testing.T) {
				resp, body := ctx.makeRequest(t, http.MethodGet, "/v1/profiles/"+profileID.String(), nil)
				assert.Equal(t, http.StatusOK, resp.StatusCode)

				var response profileDTO.ProfileResponse
				err := json.Unmarshal(body, &response)
				require.NoError(t, err)
				assert.NotNil(t, response.PhotoID)
				assert.False(t, response.Complete, "verification is a back-office action")
			})
		})
	}
}
