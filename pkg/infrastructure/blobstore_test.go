package infrastructure

import (
	"bytes"
	"context"
	"net/url"
	"strconv"
	"strings"
	"testing"
	"time"
)

func newTestStore(t *testing.T) *DiskBlobStore {
	t.Helper()
	return NewDiskBlobStore(t.TempDir(), "http://localhost:3000/", "blob-secret")
}

func TestPutAndOpen(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	path, err := store.Put(ctx, "jane_doe_example_com_1700000000000.pdf", "application/pdf", []byte("%PDF-1.4"))
	if err != nil {
		t.Fatalf("put: %v", err)
	}
	data, err := store.Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if !bytes.Equal(data, []byte("%PDF-1.4")) {
		t.Errorf("stored bytes differ: %q", data)
	}
}

func TestPut_RejectsExistingName(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if _, err := store.Put(ctx, "cv.pdf", "application/pdf", []byte("one")); err != nil {
		t.Fatalf("first put: %v", err)
	}
	if _, err := store.Put(ctx, "cv.pdf", "application/pdf", []byte("two")); err == nil {
		t.Error("second put with the same name should fail")
	}
	data, err := store.Open("cv.pdf")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if string(data) != "one" {
		t.Errorf("original content was replaced: %q", data)
	}
}

func TestPut_RejectsUnsafeNames(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	for _, name := range []string{"", ".", "../escape.pdf", "a/b.pdf", "/etc/passwd"} {
		if _, err := store.Put(ctx, name, "application/pdf", []byte("x")); err == nil {
			t.Errorf("put(%q) should fail", name)
		}
	}
	if _, err := store.Open("../escape.pdf"); err == nil {
		t.Error("open with a traversal reference should fail")
	}
}

func TestSignedURL_RoundTrip(t *testing.T) {
	store := newTestStore(t)

	raw, err := store.SignedURL("cv.pdf", 15*time.Minute)
	if err != nil {
		t.Fatalf("signed url: %v", err)
	}
	u, err := url.Parse(raw)
	if err != nil {
		t.Fatalf("parse url: %v", err)
	}
	if !strings.HasPrefix(u.Path, "/files/") {
		t.Errorf("path = %q, want /files/ prefix", u.Path)
	}
	exp, err := strconv.ParseInt(u.Query().Get("exp"), 10, 64)
	if err != nil {
		t.Fatalf("exp query: %v", err)
	}
	if !store.VerifySignature("cv.pdf", exp, u.Query().Get("sig")) {
		t.Error("freshly issued signature did not verify")
	}
	if store.VerifySignature("other.pdf", exp, u.Query().Get("sig")) {
		t.Error("signature verified for a different path")
	}
	if store.VerifySignature("cv.pdf", exp+1, u.Query().Get("sig")) {
		t.Error("signature verified with an altered expiry")
	}
}

func TestVerifySignature_Expired(t *testing.T) {
	store := newTestStore(t)
	issued := time.Now()
	store.now = func() time.Time { return issued }

	raw, err := store.SignedURL("cv.pdf", time.Minute)
	if err != nil {
		t.Fatalf("signed url: %v", err)
	}
	u, _ := url.Parse(raw)
	exp, _ := strconv.ParseInt(u.Query().Get("exp"), 10, 64)
	sig := u.Query().Get("sig")

	if !store.VerifySignature("cv.pdf", exp, sig) {
		t.Fatal("signature should verify before expiry")
	}
	store.now = func() time.Time { return issued.Add(2 * time.Minute) }
	if store.VerifySignature("cv.pdf", exp, sig) {
		t.Error("signature should not verify after expiry")
	}
}
