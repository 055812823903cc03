package server

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"labelcheck/internal/config"
	"labelcheck/pkg/verify"
)

type fakeEngine struct {
	text string
	err  error
}

func (f fakeEngine) Extract(_ context.Context, _ image.Image) (string, error) {
	return f.text, f.err
}

func newTestServer(t *testing.T, eng fakeEngine) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{}
	cfg.Server.MaxUploadMB = 16
	cfg.Auth.JWTSecret = "test-secret"
	return &Server{
		cfg:      cfg,
		verifier: verify.New(eng, zerolog.Nop()),
		secret:   []byte(cfg.Auth.JWTSecret),
		log:      zerolog.Nop(),
	}
}

func testToken(t *testing.T, secret []byte) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"username": "tester",
		"exp":      time.Now().Add(time.Hour).Unix(),
	})
	s, err := tok.SignedString(secret)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return s
}

func labelPNG(t *testing.T) []byte {
	t.Helper()
	img := image.NewGray(image.Rect(0, 0, 8, 8))
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

type multipartBody struct {
	buf *bytes.Buffer
	w   *multipart.Writer
}

func newMultipartBody() *multipartBody {
	buf := &bytes.Buffer{}
	return &multipartBody{buf: buf, w: multipart.NewWriter(buf)}
}

func (m *multipartBody) field(name, value string) *multipartBody {
	m.w.WriteField(name, value)
	return m
}

func (m *multipartBody) file(t *testing.T, name, filename string, data []byte) *multipartBody {
	t.Helper()
	fw, err := m.w.CreateFormFile(name, filename)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	fw.Write(data)
	return m
}

func performVerify(t *testing.T, s *Server, m *multipartBody, token string) *httptest.ResponseRecorder {
	t.Helper()
	m.w.Close()
	req := httptest.NewRequest(http.MethodPost, "/verify", m.buf)
	req.Header.Set("Content-Type", m.w.FormDataContentType())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	return rec
}

func TestVerifyRequiresAuth(t *testing.T) {
	s := newTestServer(t, fakeEngine{text: "OLD TOM"})
	m := newMultipartBody().field("brand_name", "Old Tom")
	rec := performVerify(t, s, m, "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}

func TestVerifyMissingRequiredFields(t *testing.T) {
	s := newTestServer(t, fakeEngine{text: "whatever"})
	token := testToken(t, s.secret)
	m := newMultipartBody().
		field("brand_name", "Old Tom").
		file(t, "image", "label.png", labelPNG(t))
	rec := performVerify(t, s, m, token)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
	var resp struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	want := "missing required fields: product_type, abv"
	if resp.Error != want {
		t.Fatalf("error = %q, want %q", resp.Error, want)
	}
}

func TestVerifyRejectsBadExtension(t *testing.T) {
	s := newTestServer(t, fakeEngine{text: "whatever"})
	token := testToken(t, s.secret)
	m := newMultipartBody().
		field("brand_name", "Old Tom").
		field("product_type", "Gin").
		field("abv", "40%").
		file(t, "image", "label.pdf", []byte("%PDF-1.4"))
	rec := performVerify(t, s, m, token)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestVerifyUndecodableImage(t *testing.T) {
	s := newTestServer(t, fakeEngine{text: "whatever"})
	token := testToken(t, s.secret)
	m := newMultipartBody().
		field("brand_name", "Old Tom").
		field("product_type", "Gin").
		field("abv", "40%").
		file(t, "image", "label.png", []byte("not an image"))
	rec := performVerify(t, s, m, token)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
	var resp struct {
		Error string `json:"error"`
	}
	json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp.Error != "could not read the uploaded image" {
		t.Fatalf("error = %q", resp.Error)
	}
}

func TestVerifySuccess(t *testing.T) {
	s := newTestServer(t, fakeEngine{text: "OLD TOM\nLondon Dry Gin\nALC. 40% BY VOL.\n750 ml"})
	token := testToken(t, s.secret)
	m := newMultipartBody().
		field("brand_name", "Old Tom").
		field("product_type", "London Dry Gin").
		field("abv", "40%").
		field("net_contents", "750 ml").
		file(t, "image", "label.png", labelPNG(t))
	rec := performVerify(t, s, m, token)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d: %s", rec.Code, http.StatusOK, rec.Body.String())
	}
	var resp struct {
		Success      bool            `json:"success"`
		OverallMatch bool            `json:"overall_match"`
		Details      json.RawMessage `json:"details"`
		OCRText      string          `json:"ocr_text"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !resp.Success || !resp.OverallMatch {
		t.Fatalf("success=%v overall_match=%v, want both true", resp.Success, resp.OverallMatch)
	}
	if resp.OCRText == "" {
		t.Fatal("ocr_text missing from response")
	}
	var details map[string]struct {
		Match bool `json:"match"`
	}
	if err := json.Unmarshal(resp.Details, &details); err != nil {
		t.Fatalf("unmarshal details: %v", err)
	}
	for _, f := range []string{"brand_name", "product_type", "abv", "net_contents"} {
		if !details[f].Match {
			t.Errorf("details[%s].match = false, want true", f)
		}
	}
}

func TestVerifyMismatchStillOK(t *testing.T) {
	s := newTestServer(t, fakeEngine{text: "SOME OTHER LABEL"})
	token := testToken(t, s.secret)
	m := newMultipartBody().
		field("brand_name", "Old Tom").
		field("product_type", "Gin").
		field("abv", "40%").
		file(t, "image", "label.png", labelPNG(t))
	rec := performVerify(t, s, m, token)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	var resp struct {
		OverallMatch bool `json:"overall_match"`
	}
	json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp.OverallMatch {
		t.Fatal("overall_match = true, want false")
	}
}

func TestHealth(t *testing.T) {
	s := newTestServer(t, fakeEngine{})
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
}
