package helper

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
	"github.com/google/uuid"
)

const (
	proofMaxW = 1280
	proofMaxH = 1280

	proofMaxUploadBytes = 5 << 20 // 5MB mentah sebelum kompresi
)

// NormalizeProofImage membaca bukti pembayaran (jpeg/png/webp), downscale,
// lalu encode ulang ke WebP supaya ukuran simpan terkendali.
func NormalizeProofImage(fileHeader *multipart.FileHeader) ([]byte, error) {
	if fileHeader.Size > proofMaxUploadBytes {
		return nil, fmt.Errorf("ukuran bukti melebihi %dMB", proofMaxUploadBytes>>20)
	}

	src, err := fileHeader.Open()
	if err != nil {
		return nil, fmt.Errorf("gagal membuka file bukti: %w", err)
	}
	defer src.Close()

	buf := new(bytes.Buffer)
	if _, err := buf.ReadFrom(src); err != nil {
		return nil, fmt.Errorf("gagal membaca file bukti: %w", err)
	}
	all := buf.Bytes()
	if len(all) == 0 {
		return nil, fmt.Errorf("empty file")
	}

	img, err := decodeImage(all, fileHeader.Filename)
	if err != nil {
		return nil, err
	}

	// Downscale (keep aspect), lalu encode WebP lossy
	img = imaging.Fit(img, proofMaxW, proofMaxH, imaging.CatmullRom)

	out := new(bytes.Buffer)
	if err := webp.Encode(out, img, &webp.Options{Lossless: false, Quality: 80}); err != nil {
		return nil, fmt.Errorf("gagal encode webp: %w", err)
	}
	return out.Bytes(), nil
}

func decodeImage(all []byte, filename string) (image.Image, error) {
	head := all
	if len(head) > 512 {
		head = head[:512]
	}
	ct := http.DetectContentType(head)

	switch {
	case strings.Contains(ct, "jpeg"):
		return jpeg.Decode(bytes.NewReader(all))
	case strings.Contains(ct, "png"):
		return png.Decode(bytes.NewReader(all))
	case strings.Contains(ct, "webp"):
		return webp.Decode(bytes.NewReader(all))
	default:
		// fallback by extension
		ext := strings.ToLower(filepath.Ext(filename))
		switch ext {
		case ".jpg", ".jpeg":
			return jpeg.Decode(bytes.NewReader(all))
		case ".png":
			return png.Decode(bytes.NewReader(all))
		case ".webp":
			return webp.Decode(bytes.NewReader(all))
		default:
			return nil, fmt.Errorf("format tidak didukung: %s / %s", ct, ext)
		}
	}
}

var unsafeFilenameChars = regexp.MustCompile(`[^a-zA-Z0-9.\-_]+`)

// SaveProofImage menyimpan hasil NormalizeProofImage ke folder uploads lokal
// dan mengembalikan (publicURL, storedFilename).
func SaveProofImage(data []byte, originalName string) (string, string, error) {
	dir := envOr("UPLOAD_DIR", "uploads/proofs")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", "", fmt.Errorf("gagal menyiapkan folder upload: %w", err)
	}

	base := unsafeFilenameChars.ReplaceAllString(strings.TrimSuffix(filepath.Base(originalName), filepath.Ext(originalName)), "-")
	if base == "" || base == "-" {
		base = "bukti"
	}
	filename := fmt.Sprintf("%s-%d-%s.webp", base, time.Now().Unix(), uuid.NewString()[:8])

	full := filepath.Join(dir, filename)
	if err := os.WriteFile(full, data, 0o644); err != nil {
		return "", "", fmt.Errorf("gagal menyimpan bukti: %w", err)
	}

	publicURL := strings.TrimRight(envOr("PUBLIC_BASE_URL", ""), "/") + "/uploads/proofs/" + filename
	return publicURL, filename, nil
}

// RemoveProofImage menghapus bukti yang sudah tersimpan — dipakai saat
// registrasi gagal setelah upload supaya folder upload tidak menimbun file
// yatim. File yang sudah hilang bukan error.
func RemoveProofImage(filename string) error {
	if filename == "" || filename != filepath.Base(filename) {
		return nil
	}
	dir := envOr("UPLOAD_DIR", "uploads/proofs")
	if err := os.Remove(filepath.Join(dir, filename)); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func envOr(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
