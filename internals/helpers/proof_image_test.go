package helper

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSaveThenRemoveProofImage(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("UPLOAD_DIR", dir)

	_, filename, err := SaveProofImage([]byte("webp-bytes"), "Bukti Bayar!.jpg")
	if err != nil {
		t.Fatalf("save gagal: %v", err)
	}
	full := filepath.Join(dir, filename)
	if _, err := os.Stat(full); err != nil {
		t.Fatalf("file bukti harus ada setelah save: %v", err)
	}

	if err := RemoveProofImage(filename); err != nil {
		t.Fatalf("remove gagal: %v", err)
	}
	if _, err := os.Stat(full); !os.IsNotExist(err) {
		t.Fatal("file bukti harus hilang setelah remove")
	}
}

func TestRemoveProofImageMissingFile(t *testing.T) {
	t.Setenv("UPLOAD_DIR", t.TempDir())
	if err := RemoveProofImage("tidak-ada.webp"); err != nil {
		t.Fatalf("file yang sudah hilang bukan error: %v", err)
	}
}

func TestRemoveProofImageRejectsPath(t *testing.T) {
	// nama dengan path separator di-no-op — jangan pernah keluar folder upload
	if err := RemoveProofImage("../rahasia.txt"); err != nil {
		t.Fatalf("nama ber-path harus diabaikan tanpa error: %v", err)
	}
	if err := RemoveProofImage(""); err != nil {
		t.Fatalf("nama kosong harus diabaikan: %v", err)
	}
}
