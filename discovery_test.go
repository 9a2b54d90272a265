package filechat_test

import (
	"testing"

	"github.com/fwojciec/filechat"
	"github.com/stretchr/testify/assert"
)

func TestIsIgnored(t *testing.T) {
	t.Parallel()

	for _, name := range []string{".git", "node_modules", "tmp", "dist", ".DS_Store"} {
		assert.True(t, filechat.IsIgnored(name), name)
	}
	for _, name := range []string{"docs", "src", "gitignore", "Build"} {
		assert.False(t, filechat.IsIgnored(name), name)
	}
}

func TestIsSupportedMIME(t *testing.T) {
	t.Parallel()

	assert.True(t, filechat.IsSupportedMIME("application/pdf"))
	assert.False(t, filechat.IsSupportedMIME("text/plain"))
}

func TestDiscoveryOptions_AllowsExtension(t *testing.T) {
	t.Parallel()

	t.Run("defaults to supported types", func(t *testing.T) {
		t.Parallel()

		opts := filechat.DiscoveryOptions{}

		assert.True(t, opts.AllowsExtension(".pdf"))
		assert.True(t, opts.AllowsExtension(".PDF"))
		assert.False(t, opts.AllowsExtension(".txt"))
	})

	t.Run("respects explicit allow-list", func(t *testing.T) {
		t.Parallel()

		opts := filechat.DiscoveryOptions{Extensions: []string{".pdf"}}

		assert.True(t, opts.AllowsExtension(".pdf"))
		assert.False(t, opts.AllowsExtension(".docx"))
	})

	t.Run("accepts entries without a leading dot", func(t *testing.T) {
		t.Parallel()

		opts := filechat.DiscoveryOptions{Extensions: []string{"pdf", " DOCX "}}

		assert.True(t, opts.AllowsExtension(".pdf"))
		assert.True(t, opts.AllowsExtension(".docx"))
		assert.True(t, opts.AllowsExtension("PDF"))
		assert.False(t, opts.AllowsExtension(".pptx"))
		assert.False(t, opts.AllowsExtension(""))
	})
}

func TestDiscoveryResult_Add(t *testing.T) {
	t.Parallel()

	var r filechat.DiscoveryResult
	r.Add(filechat.FileRecord{Path: "/a/x.pdf", Size: 1024 * 1024})
	r.Add(filechat.FileRecord{Path: "/a/y.pdf", Size: 1024 * 1024})

	assert.Len(t, r.Files, 2)
	assert.Equal(t, int64(2*1024*1024), r.TotalSize)
	assert.InDelta(t, 2.0, r.TotalMB(), 0.0001)
	assert.Equal(t, "x.pdf", r.Files[0].Name())
}

func TestParseRoots(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want []string
	}{
		{name: "single", in: "/docs", want: []string{"/docs"}},
		{name: "trims whitespace", in: " /docs , /notes ", want: []string{"/docs", "/notes"}},
		{name: "drops empty entries", in: "/docs,,", want: []string{"/docs"}},
		{name: "empty", in: "", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, filechat.ParseRoots(tt.in))
		})
	}
}
