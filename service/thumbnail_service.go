package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"github.com/disintegration/imaging"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"

	"inventory-admin/models"
)

const (
	SizeThumb  = "thumb"
	SizeMedium = "medium"

	qualityThumb  = 60
	qualityMedium = 75

	maxSizeThumb  = 300
	maxSizeMedium = 800

	defaultBuildTimeout = 30 * time.Second
)

var (
	// ErrProductNotFound is returned when no product has the requested id
	ErrProductNotFound = errors.New("product not found")
	// ErrNoImage is returned when the product has no image URL
	ErrNoImage = errors.New("product has no image")
)

var unsafeCacheChars = regexp.MustCompile(`[^A-Za-z0-9_-]`)

// ThumbnailService produces resized JPEG previews of product images and
// keeps them in a disk cache
type ThumbnailService struct {
	api      InventoryAPI
	images   ImageFetcher
	cacheDir string
	sfg      singleflight.Group // one download per cache entry

	buildTimeout time.Duration
}

// NewThumbnailService creates a ThumbnailService caching under cacheDir
func NewThumbnailService(api InventoryAPI, images ImageFetcher, cacheDir string) *ThumbnailService {
	return &ThumbnailService{api: api, images: images, cacheDir: cacheDir, buildTimeout: defaultBuildTimeout}
}

// Ensure ThumbnailService implements ThumbnailServiceInterface
var _ ThumbnailServiceInterface = (*ThumbnailService)(nil)

// Thumbnail returns the optimized image of a product. size is "thumb" or
// "medium"; anything else is served as medium.
func (s *ThumbnailService) Thumbnail(ctx context.Context, sess models.Session, productID, size string) ([]byte, error) {
	if size != SizeThumb {
		size = SizeMedium
	}

	cachePath := s.cachePath(productID, size)
	if data, err := os.ReadFile(cachePath); err == nil {
		log.Debug().Str("path", cachePath).Msg("Thumbnail: cache hit")
		return data, nil
	}

	// The build is shared by every caller waiting on cachePath, so it must not
	// stop when the first of them goes away.
	ch := s.sfg.DoChan(cachePath, func() (interface{}, error) {
		buildCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.buildTimeout)
		defer cancel()
		return s.build(buildCtx, sess, productID, size, cachePath)
	})
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.([]byte), nil
	}
}

func (s *ThumbnailService) build(ctx context.Context, sess models.Session, productID, size, cachePath string) ([]byte, error) {
	products, err := s.api.ListProducts(ctx, sess.Token)
	if err != nil {
		return nil, err
	}
	var product *models.Product
	for i := range products {
		if products[i].ID == productID {
			product = &products[i]
			break
		}
	}
	if product == nil {
		return nil, fmt.Errorf("%w: %s", ErrProductNotFound, productID)
	}
	if product.ImageURL == "" {
		return nil, ErrNoImage
	}

	raw, err := s.images.FetchImage(ctx, product.ImageURL)
	if err != nil {
		return nil, err
	}
	optimized, err := OptimizeImage(raw, size)
	if err != nil {
		return nil, err
	}

	if err := s.saveToCache(cachePath, optimized); err != nil {
		// serve the image anyway
		log.Warn().Err(err).Str("path", cachePath).Msg("⚠️  Thumbnail: could not cache image")
	}
	return optimized, nil
}

func (s *ThumbnailService) cachePath(productID, size string) string {
	name := fmt.Sprintf("product_%s_%s.jpg", unsafeCacheChars.ReplaceAllString(productID, "_"), size)
	return filepath.Join(s.cacheDir, name)
}

func (s *ThumbnailService) saveToCache(cachePath string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(cachePath), 0o755); err != nil {
		return fmt.Errorf("failed to create cache directory: %w", err)
	}
	if err := os.WriteFile(cachePath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write to cache: %w", err)
	}
	log.Info().Str("path", cachePath).Msg("✓ Image cached")
	return nil
}

// OptimizeImage decodes imageData, fits it inside the box for size keeping the
// aspect ratio, and re-encodes it as JPEG
func OptimizeImage(imageData []byte, size string) ([]byte, error) {
	img, format, err := image.Decode(bytes.NewReader(imageData))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	maxDim, quality := maxSizeMedium, qualityMedium
	if size == SizeThumb {
		maxDim, quality = maxSizeThumb, qualityThumb
	}

	bounds := img.Bounds()
	if bounds.Dx() > maxDim || bounds.Dy() > maxDim {
		log.Debug().Str("format", format).Int("width", bounds.Dx()).Int("height", bounds.Dy()).Int("max", maxDim).Msg("🔄 Resizing image")
		img = imaging.Fit(img, maxDim, maxDim, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality}); err != nil {
		return nil, fmt.Errorf("failed to encode to JPEG: %w", err)
	}
	return buf.Bytes(), nil
}
