package converter_test

import (
	"errors"
	"testing"

	"github.com/rahulkamble366/iso/pkg/converter"

	"github.com/stretchr/testify/require"
)

func TestDetectFormat(t *testing.T) {
	tests := map[string]converter.Format{
		"a.pdf":         converter.FormatPDF,
		"A.PDF":         converter.FormatPDF,
		"b.docx":        converter.FormatOffice,
		"c.PPTX":        converter.FormatOffice,
		"d.xlsx":        converter.FormatOffice,
		"e.html":        converter.FormatHTML,
		"f.png":         converter.FormatImage,
		"g.JPG":         converter.FormatImage,
		"h.jpeg":        converter.FormatImage,
		"i.txt":         converter.FormatText,
		"j.md":          converter.FormatMarkdown,
		"dir.v2/k.html": converter.FormatHTML,
	}

	for path, expected := range tests {
		format, err := converter.DetectFormat(path)

		require.NoError(t, err, path)
		require.Equal(t, expected, format, path)
	}
}

func TestDetectFormatUnsupported(t *testing.T) {
	for _, path := range []string{"x.xyz", "noext", "archive.tar.gz"} {
		_, err := converter.DetectFormat(path)

		var unsupported *converter.UnsupportedFormatError
		require.True(t, errors.As(err, &unsupported), path)
		require.ErrorIs(t, err, converter.ErrUnsupported)
	}
}

func TestOutputPath(t *testing.T) {
	require.Equal(t, "/tmp/work/report.pdf", converter.OutputPath("/home/user/report.docx", "/tmp/work"))
	require.Equal(t, "/tmp/work/a.b.pdf", converter.OutputPath("a.b.png", "/tmp/work"))
}

func TestConversionError(t *testing.T) {
	cause := errors.New("exit status 1")

	err := &converter.ConversionError{
		Format: converter.FormatOffice,
		Path:   "a.docx",

		Err: cause,
	}

	require.ErrorIs(t, err, cause)
	require.Equal(t, "convert office a.docx: exit status 1", err.Error())
}
