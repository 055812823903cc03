package server

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"labelcheck/pkg/ocr"
	"labelcheck/pkg/verify"
)

var allowedImageExt = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
}

// verifyHandler accepts a multipart form with the submitted field values and
// the label image, runs the pipeline and returns the report. Field-level
// problems come back inside the report; only an undecodable image or a
// faulting OCR engine produce an error response.
func (s *Server) verifyHandler(c *gin.Context) {
	req := verify.Request{
		BrandName:   strings.TrimSpace(c.PostForm("brand_name")),
		ProductType: strings.TrimSpace(c.PostForm("product_type")),
		ABV:         strings.TrimSpace(c.PostForm("abv")),
		NetContents: strings.TrimSpace(c.PostForm("net_contents")),
	}
	var missing []string
	for _, f := range []struct{ name, val string }{
		{"brand_name", req.BrandName},
		{"product_type", req.ProductType},
		{"abv", req.ABV},
	} {
		if f.val == "" {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "missing required fields: " + strings.Join(missing, ", ")})
		return
	}

	file, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "no image file provided; upload an image of the label"})
		return
	}
	if file.Size > s.cfg.Server.MaxUploadMB<<20 {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"success": false, "error": fmt.Sprintf("file too large (max %d MB)", s.cfg.Server.MaxUploadMB)})
		return
	}
	if ext := strings.ToLower(filepath.Ext(file.Filename)); !allowedImageExt[ext] {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid file type; allowed: png, jpg, jpeg, gif"})
		return
	}
	src, err := file.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "failed to read upload"})
		return
	}
	defer src.Close()
	req.Image, err = io.ReadAll(src)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "failed to read upload"})
		return
	}

	rep, err := s.verifier.Verify(c.Request.Context(), req)
	if err != nil {
		s.log.Error().Err(err).Str("file", file.Filename).Msg("verification failed")
		switch {
		case errors.Is(err, ocr.ErrDecode):
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "could not read the uploaded image"})
		case errors.Is(err, ocr.ErrEngine):
			c.JSON(http.StatusServiceUnavailable, gin.H{"success": false, "error": "text recognition is unavailable"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "verification failed"})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"overall_match": rep.OverallMatch,
		"details":       rep.Details,
		"ocr_text":      rep.OCRText,
	})
}
