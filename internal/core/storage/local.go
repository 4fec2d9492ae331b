package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"nemukerja/internal/domain"
)

// Store is the blob store for uploaded CVs. Store returns an opaque
// reference; Open streams it back; Remove undoes a Store whose
// surrounding operation failed. References never contain path separators,
// so they are safe to echo into URLs.
type Store interface {
	Store(originalName string, r io.Reader, size int64) (string, error)
	Open(ref string) (io.ReadCloser, error)
	Remove(ref string) error
}

// Policy is the upload admission rule. Zero MaxBytes means unlimited,
// empty AllowedExt means any extension.
type Policy struct {
	MaxBytes   int64
	AllowedExt []string
}

func (p Policy) check(name string, size int64) error {
	if p.MaxBytes > 0 && size > p.MaxBytes {
		return fmt.Errorf("%w: file exceeds %d bytes", domain.ErrUploadRejected, p.MaxBytes)
	}
	if len(p.AllowedExt) == 0 {
		return nil
	}
	ext := strings.ToLower(filepath.Ext(name))
	for _, a := range p.AllowedExt {
		if ext == strings.ToLower(a) {
			return nil
		}
	}
	return fmt.Errorf("%w: extension %q not allowed", domain.ErrUploadRejected, ext)
}

type Local struct {
	dir    string
	policy Policy
}

func NewLocal(dir string, policy Policy) (*Local, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Local{dir: dir, policy: policy}, nil
}

func (l *Local) Store(originalName string, r io.Reader, size int64) (string, error) {
	if err := l.policy.check(originalName, size); err != nil {
		return "", err
	}
	ref := strings.ReplaceAll(uuid.NewString(), "-", "") + strings.ToLower(filepath.Ext(originalName))
	f, err := os.Create(filepath.Join(l.dir, ref))
	if err != nil {
		return "", err
	}
	defer f.Close()

	// 即使对方谎报 size，落盘时也按策略截断
	src := r
	if l.policy.MaxBytes > 0 {
		src = io.LimitReader(r, l.policy.MaxBytes+1)
	}
	n, err := io.Copy(f, src)
	if err != nil {
		_ = os.Remove(f.Name())
		return "", err
	}
	if l.policy.MaxBytes > 0 && n > l.policy.MaxBytes {
		_ = os.Remove(f.Name())
		return "", fmt.Errorf("%w: file exceeds %d bytes", domain.ErrUploadRejected, l.policy.MaxBytes)
	}
	return ref, nil
}

func (l *Local) Open(ref string) (io.ReadCloser, error) {
	if ref == "" || ref != filepath.Base(ref) {
		return nil, domain.ErrNotFound
	}
	f, err := os.Open(filepath.Join(l.dir, ref))
	if os.IsNotExist(err) {
		return nil, domain.ErrNotFound
	}
	return f, err
}

func (l *Local) Remove(ref string) error {
	if ref == "" || ref != filepath.Base(ref) {
		return domain.ErrNotFound
	}
	return os.Remove(filepath.Join(l.dir, ref))
}
