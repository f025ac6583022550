package fs_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/archlint/internal/adapters/fs"
)

func TestResolver_Resolve(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	from := mustCreateFile(t, root, "src/app/main.ts")
	mustCreateFile(t, root, "src/app/util.ts")
	mustCreateFile(t, root, "src/app/util.tsx")
	mustCreateFile(t, root, "src/app/view.jsx")
	mustCreateFile(t, root, "src/app/style.css")
	mustCreateFile(t, root, "src/shared/index.tsx")
	mustCreateFile(t, root, "src/shared/index.js")
	mustCreateFile(t, root, "src/lib/index.js")
	mustCreateFile(t, root, "src/legacy.mjs")
	mustCreateFile(t, root, "node_modules/pkg/index.ts")
	outside := t.TempDir()
	mustCreateFile(t, outside, "ext.ts")

	tests := []struct {
		name      string
		specifier string
		want      string
	}{
		{name: "ts wins over tsx", specifier: "./util", want: "src/app/util.ts"},
		{name: "literal file", specifier: "./style.css", want: "src/app/style.css"},
		{name: "jsx extension", specifier: "./view", want: "src/app/view.jsx"},
		{name: "parent directory", specifier: "../legacy", want: "src/legacy.mjs"},
		{name: "index tsx before js", specifier: "../shared", want: "src/shared/index.tsx"},
		{name: "index js", specifier: "../lib", want: "src/lib/index.js"},
		{name: "bare package", specifier: "react", want: ""},
		{name: "scoped package", specifier: "@nestjs/common", want: ""},
		{name: "path alias", specifier: "@/shared", want: ""},
		{name: "node_modules prefix", specifier: "node_modules/pkg", want: ""},
		{name: "missing file", specifier: "./nope", want: ""},
		{name: "escapes root", specifier: "../../../../outside", want: ""},
		{name: "into node_modules", specifier: "../../node_modules/pkg", want: ""},
		{name: "absolute inside root", specifier: filepath.ToSlash(filepath.Join(root, "src", "app", "util")), want: "src/app/util.ts"},
		{name: "absolute directory", specifier: filepath.ToSlash(filepath.Join(root, "src", "lib")), want: "src/lib/index.js"},
		{name: "absolute outside root", specifier: filepath.ToSlash(filepath.Join(outside, "ext")), want: ""},
	}

	resolver := fs.NewResolver()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, ok := resolver.Resolve(root, from, tt.specifier)
			if tt.want == "" {
				assert.False(t, ok, "got %s", got)
				return
			}
			require.True(t, ok)
			assert.Equal(t, filepath.Join(root, filepath.FromSlash(tt.want)), got)
		})
	}
}
