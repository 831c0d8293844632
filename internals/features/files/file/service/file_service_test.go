// file: internals/features/files/file/service/file_service_test.go
package service

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"

	"prestasiku_backend/internals/configs"
)

func testImage(w, h int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 128, A: 255})
		}
	}
	return img
}

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	buf := new(bytes.Buffer)
	if err := png.Encode(buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

func TestIsAllowedExt(t *testing.T) {
	for _, name := range []string{"a.jpg", "b.JPEG", "c.png", "d.webp", "e.bmp", "f.gif"} {
		if !IsAllowedExt(name) {
			t.Fatalf("%s must be allowed", name)
		}
	}
	for _, name := range []string{"a.pdf", "b.exe", "noext", "c.jpg.sh"} {
		if IsAllowedExt(name) {
			t.Fatalf("%s must be rejected", name)
		}
	}
}

func TestMD5Hex(t *testing.T) {
	if got := MD5Hex([]byte("hello")); got != "5d41402abc4b2a76b9719d911017c592" {
		t.Fatalf("MD5Hex = %s", got)
	}
}

func TestNormalizeToJPEG(t *testing.T) {
	data := encodePNG(t, testImage(64, 48))
	out, err := NormalizeToJPEG(data, "certificate.png")
	if err != nil {
		t.Fatalf("NormalizeToJPEG: %v", err)
	}
	img, err := jpeg.Decode(bytes.NewReader(out))
	if err != nil {
		t.Fatalf("output is not a JPEG: %v", err)
	}
	if img.Bounds().Dx() != 64 || img.Bounds().Dy() != 48 {
		t.Fatalf("small image must keep its size, got %v", img.Bounds())
	}
}

func TestNormalizeToJPEGDownscalesLargeImages(t *testing.T) {
	data := encodePNG(t, testImage(maxImageEdge+500, 100))
	out, err := NormalizeToJPEG(data, "wide.png")
	if err != nil {
		t.Fatalf("NormalizeToJPEG: %v", err)
	}
	img, err := jpeg.Decode(bytes.NewReader(out))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if img.Bounds().Dx() > maxImageEdge || img.Bounds().Dy() > maxImageEdge {
		t.Fatalf("image not downscaled: %v", img.Bounds())
	}
}

func TestNormalizeToJPEGRejectsGarbage(t *testing.T) {
	if _, err := NormalizeToJPEG([]byte("definitely not an image"), "x.jpg"); err == nil {
		t.Fatal("garbage bytes must not normalize")
	}
}

func TestUserFolderSanitized(t *testing.T) {
	got := UserFolder("20210001", "张三/../etc")
	for _, c := range got {
		if c == '/' || c == '\\' {
			t.Fatalf("folder %q contains a path separator", got)
		}
	}
}

func TestResolvePathRejectsTraversal(t *testing.T) {
	configs.UploadDir = t.TempDir()

	if _, err := ResolvePath("owner/cert.jpg"); err != nil {
		t.Fatalf("plain relative path rejected: %v", err)
	}
	for _, bad := range []string{"../secrets", "..", "a/../../b", "/etc/passwd"} {
		if _, err := ResolvePath(bad); err == nil {
			t.Fatalf("ResolvePath(%q) must fail", bad)
		}
	}
}
