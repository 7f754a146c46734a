package fonts

import (
	"io/fs"
	"os"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fontDir = fstest.MapFS{
	"Inter/Inter-Bold.ttf":               {},
	"Inter/Inter-Regular.ttf":            {},
	"Google_Sans_Code/GoogleSans.otf":    {},
	"Google_Sans_Code/OFL.txt":           {},
	"Roboto/static/Roboto-Italic.TTF":    {},
	"Roboto/static/Roboto-Condensed.ttf": {},
}

func TestScan(t *testing.T) {
	list, err := Scan(fontDir)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{
		"Inter/Inter-Bold.ttf",
		"Inter/Inter-Regular.ttf",
		"Google_Sans_Code/GoogleSans.otf",
		"Roboto/static/Roboto-Italic.TTF",
		"Roboto/static/Roboto-Condensed.ttf",
	}, list)
}

func TestScanMissingDir(t *testing.T) {
	list, err := Scan(os.DirFS(t.TempDir() + "/nope"))
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestFind(t *testing.T) {
	tests := []struct {
		family string
		want   string
	}{
		{"Inter", "Inter/Inter-Regular.ttf"},
		{"google sans", "Google_Sans_Code/GoogleSans.otf"},
		{"roboto-italic", "Roboto/static/Roboto-Italic.TTF"},
	}
	for _, tc := range tests {
		t.Run(tc.family, func(t *testing.T) {
			got, err := Find(fontDir, tc.family)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}

	_, err := Find(fontDir, "Comic")
	assert.ErrorIs(t, err, fs.ErrNotExist)
	_, err = Find(fontDir, " ")
	assert.ErrorIs(t, err, fs.ErrNotExist)
}
