package mimetype_test

import (
	"archive/zip"
	"bytes"
	"hash/crc32"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fwojciec/filechat"
	"github.com/fwojciec/filechat/mimetype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const pdfBody = "%PDF-1.4\n1 0 obj\n<< /Type /Catalog >>\nendobj\ntrailer\n<< /Root 1 0 R >>\n%%EOF\n"

// writeFile creates path (and its parents) under root with the given content.
func writeFile(t *testing.T, root, path string, content []byte) string {
	t.Helper()

	full := filepath.Join(root, filepath.FromSlash(path))
	require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
	require.NoError(t, os.WriteFile(full, content, 0o644))
	return full
}

// ooxml builds a minimal Office Open XML package whose second entry lives
// under dir (e.g. "word/" or "ppt/").
func ooxml(t *testing.T, dir string) []byte {
	t.Helper()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	entries := []struct{ name, body string }{
		{"[Content_Types].xml", `<?xml version="1.0" encoding="UTF-8"?><Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types"></Types>`},
		{dir + "document.xml", `<?xml version="1.0" encoding="UTF-8"?><document/>`},
	}
	for _, e := range entries {
		data := []byte(e.body)
		w, err := zw.CreateRaw(&zip.FileHeader{
			Name:               e.name,
			Method:             zip.Store,
			CRC32:              crc32.ChecksumIEEE(data),
			CompressedSize64:   uint64(len(data)),
			UncompressedSize64: uint64(len(data)),
		})
		require.NoError(t, err)
		_, err = w.Write(data)
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func relPaths(t *testing.T, root string, result *filechat.DiscoveryResult) []string {
	t.Helper()

	paths := make([]string, 0, len(result.Files))
	for _, f := range result.Files {
		rel, err := filepath.Rel(root, f.Path)
		require.NoError(t, err)
		paths = append(paths, filepath.ToSlash(rel))
	}
	return paths
}

func TestDiscoverer_Discover(t *testing.T) {
	t.Parallel()

	t.Run("returns matching files in traversal order with total size", func(t *testing.T) {
		t.Parallel()

		root := t.TempDir()
		writeFile(t, root, "a.pdf", []byte(pdfBody))
		writeFile(t, root, "b/c.pdf", []byte(pdfBody))
		writeFile(t, root, "d.pdf", []byte(pdfBody))
		writeFile(t, root, "notes.txt", []byte("plain text"))

		result, err := mimetype.NewDiscoverer().Discover([]string{root}, filechat.DiscoveryOptions{})

		require.NoError(t, err)
		assert.Equal(t, []string{"a.pdf", "b/c.pdf", "d.pdf"}, relPaths(t, root, result))
		assert.Equal(t, int64(3*len(pdfBody)), result.TotalSize)
		for _, f := range result.Files {
			assert.True(t, filepath.IsAbs(f.Path))
		}
	})

	t.Run("skips ignored directories at every depth", func(t *testing.T) {
		t.Parallel()

		root := t.TempDir()
		writeFile(t, root, "keep.pdf", []byte(pdfBody))
		writeFile(t, root, "node_modules/x.pdf", []byte(pdfBody))
		writeFile(t, root, "a/b/.git/y.pdf", []byte(pdfBody))
		writeFile(t, root, "a/b/c/build/z.pdf", []byte(pdfBody))
		writeFile(t, root, "a/b/c/deep.pdf", []byte(pdfBody))
		writeFile(t, root, "docs/dist/w.pdf", []byte(pdfBody))

		result, err := mimetype.NewDiscoverer().Discover([]string{root}, filechat.DiscoveryOptions{})

		require.NoError(t, err)
		paths := relPaths(t, root, result)
		assert.Equal(t, []string{"a/b/c/deep.pdf", "keep.pdf"}, paths)
		for _, p := range paths {
			for _, segment := range strings.Split(p, "/") {
				assert.False(t, filechat.IsIgnored(segment), "path %q contains ignored segment %q", p, segment)
			}
		}
	})

	t.Run("rejects empty and oversized files", func(t *testing.T) {
		t.Parallel()

		root := t.TempDir()
		writeFile(t, root, "empty.pdf", nil)
		big := append([]byte(pdfBody), bytes.Repeat([]byte{' '}, filechat.MaxFileSize)...)
		writeFile(t, root, "big.pdf", big)
		exact := append([]byte(pdfBody), bytes.Repeat([]byte{' '}, filechat.MaxFileSize-len(pdfBody))...)
		writeFile(t, root, "exact.pdf", exact)
		writeFile(t, root, "ok.pdf", []byte(pdfBody))

		result, err := mimetype.NewDiscoverer().Discover([]string{root}, filechat.DiscoveryOptions{})

		require.NoError(t, err)
		assert.Equal(t, []string{"ok.pdf"}, relPaths(t, root, result))
	})

	t.Run("rejects files whose content does not match their extension", func(t *testing.T) {
		t.Parallel()

		root := t.TempDir()
		writeFile(t, root, "fake.pdf", []byte("just some text pretending to be a pdf"))
		writeFile(t, root, "pdf-as.docx", []byte(pdfBody))
		writeFile(t, root, "real.pdf", []byte(pdfBody))

		result, err := mimetype.NewDiscoverer().Discover([]string{root}, filechat.DiscoveryOptions{})

		require.NoError(t, err)
		assert.Equal(t, []string{"real.pdf"}, relPaths(t, root, result))
	})

	t.Run("accepts office documents", func(t *testing.T) {
		t.Parallel()

		root := t.TempDir()
		writeFile(t, root, "report.docx", ooxml(t, "word/"))

		result, err := mimetype.NewDiscoverer().Discover([]string{root}, filechat.DiscoveryOptions{})

		require.NoError(t, err)
		assert.Equal(t, []string{"report.docx"}, relPaths(t, root, result))
	})

	t.Run("respects extension allow-list", func(t *testing.T) {
		t.Parallel()

		root := t.TempDir()
		writeFile(t, root, "report.docx", ooxml(t, "word/"))
		writeFile(t, root, "paper.pdf", []byte(pdfBody))

		result, err := mimetype.NewDiscoverer().Discover([]string{root}, filechat.DiscoveryOptions{Extensions: []string{".pdf"}})

		require.NoError(t, err)
		assert.Equal(t, []string{"paper.pdf"}, relPaths(t, root, result))
	})

	t.Run("allow-list entries may omit the leading dot", func(t *testing.T) {
		t.Parallel()

		root := t.TempDir()
		writeFile(t, root, "report.docx", ooxml(t, "word/"))
		writeFile(t, root, "paper.pdf", []byte(pdfBody))

		result, err := mimetype.NewDiscoverer().Discover([]string{root}, filechat.DiscoveryOptions{Extensions: []string{"pdf"}})

		require.NoError(t, err)
		assert.Equal(t, []string{"paper.pdf"}, relPaths(t, root, result))
	})

	t.Run("missing root contributes nothing", func(t *testing.T) {
		t.Parallel()

		root := t.TempDir()
		writeFile(t, root, "a.pdf", []byte(pdfBody))
		missing := filepath.Join(root, "does-not-exist")

		result, err := mimetype.NewDiscoverer().Discover([]string{missing, root}, filechat.DiscoveryOptions{})

		require.NoError(t, err)
		assert.Equal(t, []string{"a.pdf"}, relPaths(t, root, result))
	})

	t.Run("ignored root contributes nothing", func(t *testing.T) {
		t.Parallel()

		root := t.TempDir()
		writeFile(t, root, "node_modules/a.pdf", []byte(pdfBody))

		result, err := mimetype.NewDiscoverer().Discover([]string{filepath.Join(root, "node_modules")}, filechat.DiscoveryOptions{})

		require.NoError(t, err)
		assert.Empty(t, result.Files)
		assert.Zero(t, result.TotalSize)
	})

	t.Run("concatenates results across roots", func(t *testing.T) {
		t.Parallel()

		first := t.TempDir()
		second := t.TempDir()
		writeFile(t, first, "one.pdf", []byte(pdfBody))
		writeFile(t, second, "two.pdf", []byte(pdfBody))

		result, err := mimetype.NewDiscoverer().Discover([]string{second, first}, filechat.DiscoveryOptions{})

		require.NoError(t, err)
		require.Len(t, result.Files, 2)
		assert.Equal(t, "two.pdf", result.Files[0].Name())
		assert.Equal(t, "one.pdf", result.Files[1].Name())
	})

	t.Run("returns invalid error without roots", func(t *testing.T) {
		t.Parallel()

		_, err := mimetype.NewDiscoverer().Discover(nil, filechat.DiscoveryOptions{})

		require.Error(t, err)
		assert.Equal(t, filechat.EINVALID, filechat.ErrorCode(err))
	})

	t.Run("returns invalid error for empty root", func(t *testing.T) {
		t.Parallel()

		_, err := mimetype.NewDiscoverer().Discover([]string{t.TempDir(), ""}, filechat.DiscoveryOptions{})

		require.Error(t, err)
		assert.Equal(t, filechat.EINVALID, filechat.ErrorCode(err))
	})
}
