// file: internals/features/files/file/service/file_service.go
package service

import (
	"bytes"
	"crypto/md5"
	"encoding/hex"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	_ "golang.org/x/image/bmp"
	"gorm.io/gorm"

	"prestasiku_backend/internals/configs"
	fileModel "prestasiku_backend/internals/features/files/file/model"
)

var ErrUnsupportedFormat = errors.New("unsupported image format")

// maxImageEdge caps the longest side of stored certificates so uploads
// from phone cameras don't blow up the vision payload.
const maxImageEdge = 2000

var allowedExt = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true,
	".bmp": true, ".gif": true, ".webp": true,
}

func IsAllowedExt(filename string) bool {
	return allowedExt[strings.ToLower(filepath.Ext(filename))]
}

func MD5Hex(data []byte) string {
	sum := md5.Sum(data)
	return hex.EncodeToString(sum[:])
}

var unsafeChars = regexp.MustCompile(`[^a-zA-Z0-9.\-_]+`)

func sanitizeSegment(s string) string {
	return unsafeChars.ReplaceAllString(s, "_")
}

// UserFolder builds the per-owner directory name under the upload root.
func UserFolder(accountID, name string) string {
	return sanitizeSegment(accountID + "_" + name)
}

func decodeImage(data []byte, filename string) (image.Image, error) {
	if img, _, err := image.Decode(bytes.NewReader(data)); err == nil {
		return img, nil
	}
	// image.Decode only sees registered formats; retry by extension for webp
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".webp":
		return webp.Decode(bytes.NewReader(data))
	case ".jpg", ".jpeg":
		return jpeg.Decode(bytes.NewReader(data))
	case ".png":
		return png.Decode(bytes.NewReader(data))
	}
	return nil, ErrUnsupportedFormat
}

// NormalizeToJPEG re-encodes any accepted upload as a JPEG no larger
// than maxImageEdge on its longest side.
func NormalizeToJPEG(data []byte, filename string) ([]byte, error) {
	img, err := decodeImage(data, filename)
	if err != nil {
		return nil, err
	}
	b := img.Bounds()
	if b.Dx() > maxImageEdge || b.Dy() > maxImageEdge {
		img = imaging.Fit(img, maxImageEdge, maxImageEdge, imaging.Lanczos)
	}
	buf := new(bytes.Buffer)
	if err := imaging.Encode(buf, img, imaging.JPEG, imaging.JPEGQuality(90)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func ReadUpload(fh *multipart.FileHeader) ([]byte, error) {
	src, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()
	return io.ReadAll(src)
}

type SavedFile struct {
	Record  *fileModel.FileModel
	AbsPath string
}

// SaveCertificate normalizes the upload to JPEG, writes it under the
// owner's folder and records a files row. The stored path is kept
// relative to the upload root so the root can move between deploys.
func SaveCertificate(db *gorm.DB, ownerID uuid.UUID, accountID, ownerName string, data []byte, originalName string) (*SavedFile, error) {
	normalized, err := NormalizeToJPEG(data, originalName)
	if err != nil {
		return nil, err
	}

	folder := UserFolder(accountID, ownerName)
	name := fmt.Sprintf("%d_cert.jpg", time.Now().UnixNano())
	relPath := filepath.Join(folder, name)
	absDir := filepath.Join(configs.UploadDir, folder)
	if err := os.MkdirAll(absDir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	absPath := filepath.Join(absDir, name)
	if err := os.WriteFile(absPath, normalized, 0o644); err != nil {
		return nil, fmt.Errorf("write upload: %w", err)
	}

	rec := &fileModel.FileModel{
		FileUserID: ownerID,
		FileName:   name,
		FilePath:   relPath,
		FileType:   "image/jpeg",
		FileSize:   int64(len(normalized)),
		FileMD5:    MD5Hex(normalized),
	}
	if err := db.Create(rec).Error; err != nil {
		_ = os.Remove(absPath)
		return nil, err
	}
	return &SavedFile{Record: rec, AbsPath: absPath}, nil
}

// ResolvePath maps a stored relative path back to disk, rejecting
// anything that escapes the upload root.
func ResolvePath(relPath string) (string, error) {
	clean := filepath.Clean(relPath)
	if clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) || filepath.IsAbs(clean) {
		return "", errors.New("invalid file path")
	}
	return filepath.Join(configs.UploadDir, clean), nil
}

// ExistsOnDisk reports whether the stored file is still present.
func ExistsOnDisk(relPath string) bool {
	abs, err := ResolvePath(relPath)
	if err != nil {
		return false
	}
	info, err := os.Stat(abs)
	return err == nil && !info.IsDir()
}
