package controllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/ju699/FlexFood/models"
	"github.com/ju699/FlexFood/utils"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	utils.InitLogger()
	os.Exit(m.Run())
}

func newTestDB(name string) *gorm.DB {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		panic("failed to connect database")
	}
	err = db.AutoMigrate(
		&models.Owner{},
		&models.Restaurant{},
		&models.Category{},
		&models.Product{},
		&models.Order{},
		&models.OrderItem{},
	)
	if err != nil {
		panic(err)
	}
	return db
}

// seedRestaurant creates an owner and their restaurant for scoping tests.
func seedRestaurant(db *gorm.DB, ownerID uint, name, slug string) models.Restaurant {
	owner := models.Owner{
		ID:       ownerID,
		Name:     "Owner",
		Email:    fmt.Sprintf("owner%d@example.com", ownerID),
		Password: "hashed",
	}
	db.Create(&owner)

	whatsapp := "+2250708091011"
	restaurant := models.Restaurant{
		OwnerID:  ownerID,
		Name:     name,
		Slug:     slug,
		Whatsapp: &whatsapp,
	}
	db.Create(&restaurant)
	return restaurant
}

// authAs stands in for the auth middleware in handler tests.
func authAs(ownerID uint) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("owner_id", ownerID)
		c.Next()
	}
}

func jsonRequest(method, url string, payload interface{}) *http.Request {
	body, _ := json.Marshal(payload)
	req, _ := http.NewRequest(method, url, bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func multipartRequest(method, url string, fields map[string]string, fileField, fileName string, fileData []byte) *http.Request {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		mw.WriteField(k, v)
	}
	if fileField != "" {
		fw, _ := mw.CreateFormFile(fileField, fileName)
		fw.Write(fileData)
	}
	mw.Close()

	req, _ := http.NewRequest(method, url, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func envelope(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var resp map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid JSON response: %v (%s)", err, w.Body.String())
	}
	return resp
}

func envelopeData(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	data, _ := envelope(t, w)["data"].(map[string]interface{})
	return data
}

func testPNG(w, h int) []byte {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x += 8 {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: 180, G: 60, B: 30, A: 255})
		}
	}
	var buf bytes.Buffer
	png.Encode(&buf, img)
	return buf.Bytes()
}
