package infrastructure

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// DiskBlobStore stores named binary objects on the local filesystem and
// issues time-limited HMAC-signed retrieval URLs redeemed through the
// server's /files route.
type DiskBlobStore struct {
	dir     string
	baseURL string
	secret  []byte
	now     func() time.Time
}

func NewDiskBlobStore(dir, baseURL, secret string) *DiskBlobStore {
	return &DiskBlobStore{dir: dir, baseURL: strings.TrimRight(baseURL, "/"), secret: []byte(secret), now: time.Now}
}

// Put writes the object and returns its stable reference. Names are
// derived by the caller from a normalized email and a timestamp, so an
// existing file is never silently replaced.
func (s *DiskBlobStore) Put(ctx context.Context, name, contentType string, data []byte) (string, error) {
	if filepath.Base(name) != name || name == "." || name == "" {
		return "", fmt.Errorf("invalid blob name %q", name)
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", err
	}
	target := filepath.Join(s.dir, name)
	if _, err := os.Stat(target); err == nil {
		return "", fmt.Errorf("blob %q already exists", name)
	}
	if err := os.WriteFile(target, data, 0o644); err != nil {
		return "", err
	}
	return name, nil
}

// Open returns the stored bytes for a reference previously returned by Put.
func (s *DiskBlobStore) Open(path string) ([]byte, error) {
	if filepath.Base(path) != path {
		return nil, fmt.Errorf("invalid blob reference %q", path)
	}
	return os.ReadFile(filepath.Join(s.dir, path))
}

// SignedURL produces a retrieval URL that expires after ttl.
func (s *DiskBlobStore) SignedURL(path string, ttl time.Duration) (string, error) {
	exp := s.now().Add(ttl).Unix()
	sig := s.sign(path, exp)
	q := url.Values{}
	q.Set("exp", strconv.FormatInt(exp, 10))
	q.Set("sig", sig)
	return fmt.Sprintf("%s/files/%s?%s", s.baseURL, url.PathEscape(path), q.Encode()), nil
}

// VerifySignature checks the signature and expiry of a redemption request.
func (s *DiskBlobStore) VerifySignature(path string, exp int64, sig string) bool {
	if s.now().Unix() > exp {
		return false
	}
	expected := s.sign(path, exp)
	return hmac.Equal([]byte(sig), []byte(expected))
}

func (s *DiskBlobStore) sign(path string, exp int64) string {
	h := hmac.New(sha256.New, s.secret)
	fmt.Fprintf(h, "%s\n%d", path, exp)
	return base64.RawURLEncoding.EncodeToString(h.Sum(nil))
}
