package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"hbs/src/boot"
	"hbs/src/db"
	"hbs/src/middlewares"
	"hbs/src/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"github.com/tidwall/gjson"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type TestSuite struct {
	suite.Suite
	DB         *gorm.DB
	Token      *string
	StaffToken *string
	DeluxeID   uint
	ClassicID  uint
}

const testPassword = "correct horse battery staple"

func (s *TestSuite) SetupSuite() {
	registerValidators()

	dsn := filepath.Join(s.T().TempDir(), "hbs.db") + "?_busy_timeout=5000&_journal_mode=WAL"
	d, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("An error '%s' was not expected when opening test database", err)
	}
	boot.Migrate(d)
	boot.SeedRoomTypes(d)
	db.NewDB(d)
	s.DB = d

	var deluxe, classic models.RoomType
	if err := d.Where(&models.RoomType{Type: "Deluxe"}).First(&deluxe).Error; err != nil {
		log.Fatalf("Could not resolve seeded room type: %s\n", err.Error())
	}
	if err := d.Where(&models.RoomType{Type: "Classic"}).First(&classic).Error; err != nil {
		log.Fatalf("Could not resolve seeded room type: %s\n", err.Error())
	}
	s.DeluxeID = deluxe.ID
	s.ClassicID = classic.ID

	for _, n := range []string{"101", "102"} {
		if err := d.Create(&models.Room{RoomNumber: n, RoomTypeID: deluxe.ID, Price: deluxe.BasePrice}).Error; err != nil {
			log.Fatalf("Could not create room: %s\n", err.Error())
		}
	}
	if err := d.Create(&models.Room{RoomNumber: "201", RoomTypeID: classic.ID, Price: classic.BasePrice}).Error; err != nil {
		log.Fatalf("Could not create room: %s\n", err.Error())
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Error hashing password: %s\n", err.Error())
	}
	user := models.User{
		Name:         "Test Admin",
		Email:        "admin@example.com",
		Role:         "admin",
		PasswordHash: string(hash),
	}
	if err := d.Create(&user).Error; err != nil {
		log.Fatalf("Could not create user due to error: %s\n", err.Error())
	}
	token, err := generateJWT(&user)
	if err != nil {
		log.Fatalf("Error generating JWT token: %s\n", err.Error())
	}
	s.Token = &token

	staff := models.User{
		Name:         "Test Staff",
		Email:        "staff@example.com",
		Role:         "staff",
		PasswordHash: string(hash),
	}
	if err := d.Create(&staff).Error; err != nil {
		log.Fatalf("Could not create user due to error: %s\n", err.Error())
	}
	staffToken, err := generateJWT(&staff)
	if err != nil {
		log.Fatalf("Error generating JWT token: %s\n", err.Error())
	}
	s.StaffToken = &staffToken
}

func (s *TestSuite) newRouter() *gin.Engine {
	router := setupRouter()
	publicRoutes(router)
	authorized := router.Group(apiPrefix)
	authorized.Use(middlewares.AuthMiddleware)
	{
		authorized = bookingHandlers(authorized)
		authorized = availabilityHandlers(authorized)
		authorized = archiveHandlers(authorized)
		authorized = contactHandlers(authorized)
	}
	admin := router.Group(apiPrefix)
	admin.Use(middlewares.AuthMiddleware, middlewares.RequireRole("admin"))
	{
		roomHandlers(admin)
	}
	return router
}

func (s *TestSuite) do(router *gin.Engine, method, url string, body any, authorized bool) *httptest.ResponseRecorder {
	token := ""
	if authorized {
		token = *s.Token
	}
	return s.doAs(router, method, url, body, token)
}

func (s *TestSuite) doAs(router *gin.Engine, method, url string, body any, token string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		assert.Nil(s.T(), err)
		reader = strings.NewReader(string(b))
	}
	req, err := http.NewRequest(method, url, reader)
	assert.Nil(s.T(), err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", token))
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func bookingBody(roomTypeID uint, rooms int, checkIn, checkOut string, amount float64) map[string]any {
	return map[string]any{
		"guest": map[string]any{
			"first_name": "Ada",
			"last_name":  "Lovelace",
			"email":      "ada@example.com",
			"phone":      "555-0101",
		},
		"availability": map[string]any{
			"checkIn":  checkIn,
			"checkOut": checkOut,
			"adults":   2,
			"rooms":    rooms,
		},
		"payment": map[string]any{
			"paymentMode":   "card",
			"paymentMethod": "visa",
			"amount":        amount,
		},
		"roomTypeId": roomTypeID,
	}
}

func (s *TestSuite) TestPingRoute() {
	router := setupRouter()

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/", nil)
	router.ServeHTTP(w, req)

	assert.Equal(s.T(), 200, w.Code)
}

func (s *TestSuite) TestMaintenanceMode() {
	os.Setenv("MAINTENANCE_MODE", "true")
	defer os.Unsetenv("MAINTENANCE_MODE")

	router := setupRouter()
	router = maintenanceModeMiddleware(router)
	publicRoutes(router)

	w := s.do(router, "GET", "/api/rooms", nil, false)
	assert.Equal(s.T(), 503, w.Code)
}

func (s *TestSuite) TestLoginRoute() {
	router := s.newRouter()

	w := s.do(router, "POST", "/api/auth/login", map[string]any{
		"email":    "admin@example.com",
		"password": testPassword,
	}, false)
	assert.Equal(s.T(), 200, w.Code)
	body, _ := io.ReadAll(w.Body)
	assert.NotEmpty(s.T(), gjson.GetBytes(body, "token").String())

	w = s.do(router, "POST", "/api/auth/login", map[string]any{
		"email":    "admin@example.com",
		"password": "wrong",
	}, false)
	assert.Equal(s.T(), 401, w.Code)
}

func (s *TestSuite) TestAuthRequired() {
	router := s.newRouter()

	w := s.do(router, "GET", "/api/bookings", nil, false)
	assert.Equal(s.T(), 401, w.Code)

	req, _ := http.NewRequest("GET", "/api/bookings", nil)
	req.Header.Set("Authorization", "Bearer")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(s.T(), 401, w.Code)

	w = s.do(router, "GET", "/api/bookings", nil, true)
	assert.Equal(s.T(), 200, w.Code)
}

func (s *TestSuite) TestRoleGate() {
	router := s.newRouter()

	w := s.doAs(router, "POST", "/api/rooms", map[string]any{
		"roomNumber": "401",
		"roomTypeId": s.ClassicID,
	}, *s.StaffToken)
	assert.Equal(s.T(), 403, w.Code)

	w = s.doAs(router, "GET", "/api/bookings", nil, *s.StaffToken)
	assert.Equal(s.T(), 200, w.Code)
}

func (s *TestSuite) TestCreateBookingRoutes() {
	router := s.newRouter()

	s.Run("Should create a booking with 201 status", func() {
		w := s.do(router, "POST", "/api/bookings", bookingBody(s.DeluxeID, 1, "2030-01-10", "2030-01-15", 30.00), false)
		assert.Equal(s.T(), 201, w.Code)
		body, _ := io.ReadAll(w.Body)
		assert.EqualValues(s.T(), 1, gjson.GetBytes(body, "count").Int())
		assert.Equal(s.T(), "reserved", gjson.GetBytes(body, "data.0.status").String())
	})

	s.Run("Should reject a zero-length stay with 400 status", func() {
		w := s.do(router, "POST", "/api/bookings", bookingBody(s.DeluxeID, 1, "2030-01-10", "2030-01-10", 30.00), false)
		assert.Equal(s.T(), 400, w.Code)
	})

	s.Run("Should reject an underpaid reservation with 400 status", func() {
		w := s.do(router, "POST", "/api/bookings", bookingBody(s.DeluxeID, 1, "2030-02-10", "2030-02-15", 29.99), false)
		assert.Equal(s.T(), 400, w.Code)
		body, _ := io.ReadAll(w.Body)
		assert.Contains(s.T(), gjson.GetBytes(body, "error").String(), "30.00")
	})

	s.Run("Should report shortfall with 409 status when inventory runs out", func() {
		w := s.do(router, "POST", "/api/bookings", bookingBody(s.DeluxeID, 3, "2030-03-10", "2030-03-15", 90.00), false)
		assert.Equal(s.T(), 409, w.Code)
		body, _ := io.ReadAll(w.Body)
		assert.EqualValues(s.T(), 1, gjson.GetBytes(body, "shortfall").Int())
	})
}

func (s *TestSuite) TestAvailabilityRoutes() {
	router := s.newRouter()

	s.Run("Should list available rooms", func() {
		w := s.do(router, "GET", fmt.Sprintf("/api/room-availability?checkIn=2031-01-10&checkOut=2031-01-15&roomTypeId=%d", s.DeluxeID), nil, false)
		assert.Equal(s.T(), 200, w.Code)
		body, _ := io.ReadAll(w.Body)
		assert.EqualValues(s.T(), 2, gjson.GetBytes(body, "count").Int())
	})

	s.Run("Should reject missing dates with 400 status", func() {
		w := s.do(router, "GET", "/api/room-availability?checkIn=2031-01-10", nil, false)
		assert.Equal(s.T(), 400, w.Code)
	})

	s.Run("Should serve the occupancy calendar", func() {
		w := s.do(router, "GET", "/api/room-availability/calendar?start=2031-01-01&end=2031-02-01", nil, false)
		assert.Equal(s.T(), 200, w.Code)
		body, _ := io.ReadAll(w.Body)
		assert.EqualValues(s.T(), 3, gjson.GetBytes(body, "count").Int())
	})
}

func (s *TestSuite) TestBookingLifecycleRoutes() {
	router := s.newRouter()

	w := s.do(router, "POST", "/api/bookings", bookingBody(s.ClassicID, 1, "2032-01-10", "2032-01-15", 12.00), false)
	assert.Equal(s.T(), 201, w.Code)
	body, _ := io.ReadAll(w.Body)
	id := gjson.GetBytes(body, "data.0.id").Int()
	assert.Greater(s.T(), id, int64(0))

	s.Run("Should check in a reserved booking", func() {
		w := s.do(router, "PUT", fmt.Sprintf("/api/bookings/%d/checkin", id), nil, true)
		assert.Equal(s.T(), 200, w.Code)
		body, _ := io.ReadAll(w.Body)
		assert.Equal(s.T(), "checked_in", gjson.GetBytes(body, "data.status").String())
	})

	s.Run("Should reject a repeated check in with 409 status", func() {
		w := s.do(router, "PUT", fmt.Sprintf("/api/bookings/%d/checkin", id), nil, true)
		assert.Equal(s.T(), 409, w.Code)
	})

	s.Run("Should extend the stay", func() {
		w := s.do(router, "PUT", fmt.Sprintf("/api/bookings/%d/extend", id), map[string]any{
			"newCheckOut": "2032-01-18",
		}, true)
		assert.Equal(s.T(), 200, w.Code)
	})

	s.Run("Should check out and archive the booking", func() {
		w := s.do(router, "PUT", fmt.Sprintf("/api/bookings/%d/checkout", id), nil, true)
		assert.Equal(s.T(), 200, w.Code)

		w = s.do(router, "DELETE", fmt.Sprintf("/api/bookings/%d", id), nil, true)
		assert.Equal(s.T(), 204, w.Code)

		w = s.do(router, "GET", fmt.Sprintf("/api/archives/%d", id), nil, true)
		assert.Equal(s.T(), 200, w.Code)
		body, _ := io.ReadAll(w.Body)
		assert.EqualValues(s.T(), id, gjson.GetBytes(body, "data.booking_id").Int())

		w = s.do(router, "GET", fmt.Sprintf("/api/bookings/%d", id), nil, true)
		assert.Equal(s.T(), 404, w.Code)
	})
}

func (s *TestSuite) TestContactMessageRoutes() {
	router := s.newRouter()

	w := s.do(router, "POST", "/api/contact-messages", map[string]any{
		"name":    "Ada Lovelace",
		"email":   "ada@example.com",
		"subject": "Late arrival",
		"message": "We will arrive close to midnight.",
	}, false)
	assert.Equal(s.T(), 201, w.Code)

	w = s.do(router, "GET", "/api/contact-messages", nil, true)
	assert.Equal(s.T(), 200, w.Code)
	body, _ := io.ReadAll(w.Body)
	assert.GreaterOrEqual(s.T(), gjson.GetBytes(body, "count").Int(), int64(1))
}

func (s *TestSuite) TestRoomAdminRoutes() {
	router := s.newRouter()

	s.Run("Should list rooms and types publicly", func() {
		w := s.do(router, "GET", "/api/rooms", nil, false)
		assert.Equal(s.T(), 200, w.Code)

		w = s.do(router, "GET", "/api/rooms/types", nil, false)
		assert.Equal(s.T(), 200, w.Code)
		body, _ := io.ReadAll(w.Body)
		assert.EqualValues(s.T(), 4, gjson.GetBytes(body, "count").Int())
	})

	s.Run("Should create, update and delete a room", func() {
		w := s.do(router, "POST", "/api/rooms", map[string]any{
			"roomNumber": "301",
			"roomTypeId": s.ClassicID,
		}, true)
		assert.Equal(s.T(), 201, w.Code)
		body, _ := io.ReadAll(w.Body)
		roomId := gjson.GetBytes(body, "data.id").Int()

		w = s.do(router, "PUT", fmt.Sprintf("/api/rooms/%d", roomId), map[string]any{
			"price": 135.555,
		}, true)
		assert.Equal(s.T(), 200, w.Code)
		body, _ = io.ReadAll(w.Body)
		assert.InDelta(s.T(), 135.56, gjson.GetBytes(body, "data.price").Float(), 1e-9)

		w = s.do(router, "DELETE", fmt.Sprintf("/api/rooms/%d", roomId), nil, true)
		assert.Equal(s.T(), 204, w.Code)
	})

	s.Run("Should update a room type rate", func() {
		w := s.do(router, "PUT", fmt.Sprintf("/api/rooms/types/%d", s.ClassicID), map[string]any{
			"rate": 130.00,
		}, true)
		assert.Equal(s.T(), 200, w.Code)
		body, _ := io.ReadAll(w.Body)
		assert.InDelta(s.T(), 130.00, gjson.GetBytes(body, "data.basePrice").Float(), 1e-9)
	})

	s.Run("Should serve ledger-derived stats", func() {
		w := s.do(router, "GET", "/api/rooms/stats", nil, true)
		assert.Equal(s.T(), 200, w.Code)
		body, _ := io.ReadAll(w.Body)
		assert.Greater(s.T(), gjson.GetBytes(body, "data.totalRooms").Int(), int64(0))
	})
}

func TestRunner(t *testing.T) {
	suite.Run(t, new(TestSuite))
}
