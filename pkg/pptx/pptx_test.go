package pptx

import (
	"archive/zip"
	"bytes"
	"encoding/base64"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func buildArchive(t *testing.T, entries map[string][]byte) string {
	t.Helper()

	var buf bytes.Buffer
	writer := zip.NewWriter(&buf)
	for name, content := range entries {
		f, err := writer.Create(name)
		require.NoError(t, err)
		_, err = f.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())

	return base64.StdEncoding.EncodeToString(buf.Bytes())
}

// A 1x1 transparent PNG.
var pngPixel = []byte{
	0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a, 0x1a, 0x0a, 0x00, 0x00, 0x00, 0x0d,
	0x49, 0x48, 0x44, 0x52, 0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x01,
	0x08, 0x06, 0x00, 0x00, 0x00, 0x1f, 0x15, 0xc4, 0x89, 0x00, 0x00, 0x00,
	0x0a, 0x49, 0x44, 0x41, 0x54, 0x78, 0x9c, 0x63, 0x00, 0x01, 0x00, 0x00,
	0x05, 0x00, 0x01, 0x0d, 0x0a, 0x2d, 0xb4, 0x00, 0x00, 0x00, 0x00, 0x49,
	0x45, 0x4e, 0x44, 0xae, 0x42, 0x60, 0x82,
}

func TestExtractSlidesInDeckOrder(t *testing.T) {
	payload := buildArchive(t, map[string][]byte{
		"ppt/slides/slide10.xml": []byte(`<p:sld><a:t>Last slide</a:t></p:sld>`),
		"ppt/slides/slide2.xml":  []byte(`<p:sld><a:t>Second</a:t></p:sld>`),
		"ppt/slides/slide1.xml":  []byte(`<p:sld><a:t>Welcome</a:t><a:t>to ground school</a:t></p:sld>`),
	})

	slides, err := Extract(payload)
	require.NoError(t, err)
	require.Len(t, slides, 3)

	require.Equal(t, 1, slides[0].Number)
	require.Equal(t, "Welcome\nto ground school", slides[0].Content)
	require.Equal(t, "Second", slides[1].Content)

	// slide10 sorts numerically after slide2, not lexically before it.
	require.Equal(t, 3, slides[2].Number)
	require.Equal(t, "Last slide", slides[2].Content)
}

func TestExtractResolvesImagesThroughRels(t *testing.T) {
	payload := buildArchive(t, map[string][]byte{
		"ppt/slides/slide1.xml": []byte(`<p:sld><a:t>Diagram</a:t><a:blip r:embed="rId2"/></p:sld>`),
		"ppt/slides/_rels/slide1.xml.rels": []byte(
			`<Relationships><Relationship Id="rId2" Target="../media/image1.png"/></Relationships>`),
		"ppt/media/image1.png": pngPixel,
	})

	slides, err := Extract(payload)
	require.NoError(t, err)
	require.Len(t, slides, 1)
	require.Len(t, slides[0].Images, 1)
	require.True(t, strings.HasPrefix(slides[0].Images[0], "data:image/png;base64,"))

	decoded, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(slides[0].Images[0], "data:image/png;base64,"))
	require.NoError(t, err)
	require.Equal(t, pngPixel, decoded)
}

func TestExtractSkipsUnresolvedEmbeds(t *testing.T) {
	payload := buildArchive(t, map[string][]byte{
		"ppt/slides/slide1.xml": []byte(`<p:sld><a:blip r:embed="rId9"/></p:sld>`),
		"ppt/slides/_rels/slide1.xml.rels": []byte(
			`<Relationships><Relationship Id="rId1" Target="../media/other.png"/></Relationships>`),
	})

	slides, err := Extract(payload)
	require.NoError(t, err)
	require.Len(t, slides, 1)
	require.Empty(t, slides[0].Images)
	require.Empty(t, slides[0].Content)
}

func TestExtractAcceptsDataURIPrefix(t *testing.T) {
	encoded := buildArchive(t, map[string][]byte{
		"ppt/slides/slide1.xml": []byte(`<a:t>Hello</a:t>`),
	})
	payload := "data:application/vnd.openxmlformats-officedocument.presentationml.presentation;base64," + encoded

	slides, err := Extract(payload)
	require.NoError(t, err)
	require.Len(t, slides, 1)
	require.Equal(t, "Hello", slides[0].Content)
}

func TestExtractRejectsBadPayloads(t *testing.T) {
	_, err := Extract("")
	require.Error(t, err)

	_, err = Extract("not-base64!!!")
	require.Error(t, err)

	_, err = Extract(base64.StdEncoding.EncodeToString([]byte("plain text, not a zip")))
	require.ErrorContains(t, err, "not a presentation archive")
}
