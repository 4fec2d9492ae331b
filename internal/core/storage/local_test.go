package storage

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nemukerja/internal/domain"
)

func newTestStore(t *testing.T) *Local {
	t.Helper()
	s, err := NewLocal(t.TempDir(), Policy{
		MaxBytes:   64,
		AllowedExt: []string{".pdf", ".docx"},
	})
	require.NoError(t, err)
	return s
}

func TestStoreAndOpen(t *testing.T) {
	s := newTestStore(t)

	ref, err := s.Store("My Resume.PDF", strings.NewReader("hello"), 5)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(ref, ".pdf"))
	assert.NotContains(t, ref, "/")

	rc, err := s.Open(ref)
	require.NoError(t, err)
	defer rc.Close()
	b, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(b))
}

func TestPolicy(t *testing.T) {
	s := newTestStore(t)

	t.Run("extension not allowed", func(t *testing.T) {
		_, err := s.Store("payload.exe", strings.NewReader("x"), 1)
		assert.ErrorIs(t, err, domain.ErrUploadRejected)
	})

	t.Run("declared size too large", func(t *testing.T) {
		_, err := s.Store("big.pdf", strings.NewReader("x"), 1000)
		assert.ErrorIs(t, err, domain.ErrUploadRejected)
	})

	t.Run("understated size is caught on write", func(t *testing.T) {
		body := strings.Repeat("a", 100)
		_, err := s.Store("liar.pdf", strings.NewReader(body), 10)
		assert.ErrorIs(t, err, domain.ErrUploadRejected)
	})
}

func TestRemove(t *testing.T) {
	s := newTestStore(t)

	ref, err := s.Store("resume.pdf", strings.NewReader("hello"), 5)
	require.NoError(t, err)

	require.NoError(t, s.Remove(ref))
	_, err = s.Open(ref)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// same traversal rules as Open
	for _, bad := range []string{"", "../secret.pdf", "a/b.pdf"} {
		assert.ErrorIs(t, s.Remove(bad), domain.ErrNotFound, "ref %q", bad)
	}
}

func TestOpenRejectsTraversal(t *testing.T) {
	s := newTestStore(t)

	for _, ref := range []string{"", "../secret.pdf", "a/b.pdf"} {
		_, err := s.Open(ref)
		assert.ErrorIs(t, err, domain.ErrNotFound, "ref %q", ref)
	}

	_, err := s.Open("missing.pdf")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
