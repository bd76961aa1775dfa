package shared

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func render(t *testing.T, ctx context.Context, c templ.Component) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, c.Render(ctx, &buf))
	return buf.String()
}

func TestClasses_LaterUtilitiesWin(t *testing.T) {
	got := Classes("px-2 py-1 bg-gray-200", "bg-blue-600")
	assert.Contains(t, got, "bg-blue-600")
	assert.NotContains(t, got, "bg-gray-200")
	assert.Contains(t, got, "px-2")
}

func TestFormatPounds(t *testing.T) {
	assert.Equal(t, "£240", FormatPounds(240))
	assert.Equal(t, "£1,190", FormatPounds(1190))
	assert.Equal(t, "£0", FormatPounds(0))
}

func TestIcon(t *testing.T) {
	out := render(t, context.Background(), Icon("truck", "w-5 h-5"))
	assert.Equal(t, `<i data-lucide="truck" class="w-5 h-5" aria-hidden="true"></i>`, out)
}

func TestIcon_EscapesName(t *testing.T) {
	out := render(t, context.Background(), Icon(`"><script>`, "w-4"))
	assert.NotContains(t, out, "<script>")
	assert.Contains(t, out, `data-lucide="&#34;&gt;&lt;script&gt;"`)
}

func TestLayout_WrapsChildren(t *testing.T) {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, "<main>hello</main>")
		return err
	})

	out := render(t, templ.WithChildren(context.Background(), body), Layout("Skips & More"))

	assert.True(t, strings.HasPrefix(out, "<!doctype html>"))
	assert.Contains(t, out, "<title>Skips &amp; More</title>")
	assert.Contains(t, out, "<body class=\"antialiased text-gray-900\"><main>hello</main></body>")
	assert.Contains(t, out, `src="`+HtmxSrc+`"`)
	assert.Contains(t, out, `src="`+IconsSrc+`" defer`)
}

func TestLayout_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var buf bytes.Buffer
	err := Layout("x").Render(ctx, &buf)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, buf.String())
}
