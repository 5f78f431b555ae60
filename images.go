package folio

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/image/draw"

	"github.com/ibaslogic/folio/slug"
)

const (
	maxImageWidth = 800
	thumbWidth    = 160
	jpegQuality   = 80
	maxUploadSize = 10 << 20 // 10MB
	uploadsSubdir = "uploads"
)

// processedImage is an upload decoded and re-encoded for the web.
type processedImage struct {
	Image
	data  []byte
	thumb []byte
}

// processImage decodes an image from src, shrinks it to maxImageWidth and
// thumbWidth, and encodes both as JPEG.
func processImage(src io.Reader, originalName string, now time.Time) (processedImage, error) {
	img, _, err := image.Decode(src)
	if err != nil {
		return processedImage{}, fmt.Errorf("decode image: %w", err)
	}

	full := scaleToWidth(img, maxImageWidth, draw.CatmullRom)
	data, err := encodeJPEG(full)
	if err != nil {
		return processedImage{}, err
	}
	thumb, err := encodeJPEG(scaleToWidth(full, thumbWidth, draw.ApproxBiLinear))
	if err != nil {
		return processedImage{}, err
	}

	base := imageBaseName(originalName)
	return processedImage{
		Image: Image{
			Filename:      base + ".jpg",
			ThumbFilename: base + "-thumb.jpg",
			OriginalName:  originalName,
			Width:         full.Bounds().Dx(),
			Height:        full.Bounds().Dy(),
			Size:          len(data),
			UploadedAt:    now.UTC().Format(time.RFC3339),
		},
		data:  data,
		thumb: thumb,
	}, nil
}

func scaleToWidth(img image.Image, width int, s draw.Scaler) image.Image {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w <= width {
		return img
	}
	newH := h * width / w
	if newH < 1 {
		newH = 1
	}
	dst := image.NewRGBA(image.Rect(0, 0, width, newH))
	s.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
	return dst
}

func encodeJPEG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, fmt.Errorf("encode jpeg: %w", err)
	}
	return buf.Bytes(), nil
}

// imageBaseName converts an upload's file name (without extension) to a slug.
func imageBaseName(name string) string {
	base := slug.Make(strings.TrimSuffix(filepath.Base(name), filepath.Ext(name)))
	if base == "" {
		return "image"
	}
	return base
}

// uniqueImageNames appends a counter until neither the file nor a stored
// record uses the name.
func (a *App) uniqueImageNames(img *Image) error {
	existing, err := a.Store.ListImages()
	if err != nil {
		return err
	}
	taken := make(map[string]bool, len(existing))
	for _, ex := range existing {
		taken[ex.Filename] = true
	}
	dir := filepath.Join(a.staticDir, uploadsSubdir)
	base := strings.TrimSuffix(img.Filename, ".jpg")
	candidate := base
	for counter := 2; ; counter++ {
		_, statErr := os.Stat(filepath.Join(dir, candidate+".jpg"))
		if !taken[candidate+".jpg"] && errors.Is(statErr, os.ErrNotExist) {
			break
		}
		candidate = fmt.Sprintf("%s-%d", base, counter)
	}
	img.Filename = candidate + ".jpg"
	img.ThumbFilename = candidate + "-thumb.jpg"
	return nil
}

// ImageURL returns the public path of an uploaded file.
func ImageURL(filename string) string {
	return "/public/" + uploadsSubdir + "/" + filename
}

func (a *App) handleImageUpload(c echo.Context) error {
	if !IsAdmin(c) {
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}

	file, err := c.FormFile("image")
	if err != nil {
		return c.String(http.StatusBadRequest, "No image file provided")
	}
	if file.Size > maxUploadSize {
		return c.String(http.StatusBadRequest, "File too large (max 10MB)")
	}

	src, err := file.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	img, err := processImage(io.LimitReader(src, maxUploadSize), file.Filename, a.now())
	if err != nil {
		return c.String(http.StatusBadRequest, "Invalid image: "+err.Error())
	}
	if err := a.uniqueImageNames(&img.Image); err != nil {
		return err
	}

	dir := filepath.Join(a.staticDir, uploadsSubdir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create uploads dir: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, img.Filename), img.data, 0o644); err != nil {
		return fmt.Errorf("write image: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, img.ThumbFilename), img.thumb, 0o644); err != nil {
		return fmt.Errorf("write thumbnail: %w", err)
	}
	if err := a.Store.SaveImage(img.Image); err != nil {
		return err
	}
	c.Logger().Infof("uploaded image %s (%dx%d)", img.Filename, img.Width, img.Height)
	return a.renderImageList(c)
}

func (a *App) handleImageDelete(c echo.Context) error {
	if !IsAdmin(c) {
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}

	img, err := a.Store.GetImage(c.Param("filename"))
	if errors.Is(err, ErrNotFound) {
		return c.NoContent(http.StatusNotFound)
	}
	if err != nil {
		return err
	}

	// Files may already be gone; the record is the source of truth.
	dir := filepath.Join(a.staticDir, uploadsSubdir)
	_ = os.Remove(filepath.Join(dir, img.Filename))
	_ = os.Remove(filepath.Join(dir, img.ThumbFilename))

	if err := a.Store.DeleteImage(img.Filename); err != nil {
		return err
	}
	return a.renderImageList(c)
}

func (a *App) handleImageList(c echo.Context) error {
	if !IsAdmin(c) {
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	return a.renderImageList(c)
}

func (a *App) renderImageList(c echo.Context) error {
	images, err := a.Store.ListImages()
	if err != nil {
		return err
	}
	p, err := a.page(PageMeta{Title: "Images | " + a.Config.Name}, "")
	if err != nil {
		return err
	}
	return Render(c, a.Views.AdminImages(p, images, CsrfToken(c)))
}
