package transform

import (
	"archive/zip"
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/h2non/filetype"
	xunicode "golang.org/x/text/encoding/unicode"
	"golang.org/x/text/encoding/unicode/utf32"
	xtransform "golang.org/x/text/transform"
)

type srcEncoding int

const (
	encUnknown srcEncoding = iota
	encUTF8
	encUTF16BigEndian
	encUTF16LittleEndian
	encUTF32BigEndian
	encUTF32LittleEndian
)

// typeGraphQL is registered with the filetype matchers so query documents
// could be detected by content rather than by extension alone.
var typeGraphQL = filetype.NewType("graphql", "application/graphql")

func init() {
	filetype.AddMatcher(typeGraphQL, graphqlMatcher)
}

// graphqlMatcher reports if buffer looks like the beginning of a GraphQL
// document. Leading whitespace and comment lines are ignored, then the text
// must open with an operation keyword, a fragment definition or a shorthand
// selection set.
func graphqlMatcher(buf []byte) bool {
	s := string(buf)
	for {
		s = strings.TrimLeftFunc(s, unicode.IsSpace)
		if !strings.HasPrefix(s, "#") {
			break
		}
		i := strings.IndexByte(s, '\n')
		if i < 0 {
			return false
		}
		s = s[i+1:]
	}
	if strings.HasPrefix(s, "{") {
		return true
	}
	for _, kw := range []string{"query", "mutation", "subscription", "fragment"} {
		if strings.HasPrefix(s, kw) {
			return true
		}
	}
	return false
}

// readHead returns up to first 512 bytes of the reader, enough for both BOM
// and content detection.
func readHead(r io.Reader) ([]byte, error) {
	head := make([]byte, 512)
	n, err := io.ReadFull(r, head)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return nil, err
	}
	return head[:n], nil
}

func isQueryExt(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".graphql", ".gql":
		return true
	}
	return false
}

// isArchiveFile checks if file is a zip archive, looking at the content
// rather than trusting the extension.
func isArchiveFile(path string) (bool, error) {
	if !strings.EqualFold(filepath.Ext(path), ".zip") {
		return false, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return false, err
	}
	defer f.Close()

	head, err := readHead(f)
	if err != nil {
		return false, err
	}
	return filetype.Is(head, "zip"), nil
}

// isQueryFile checks if file is a GraphQL query document and detects its
// unicode encoding from the BOM when present.
func isQueryFile(path string) (bool, srcEncoding, error) {
	if !isQueryExt(path) {
		return false, encUnknown, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return false, encUnknown, err
	}
	defer f.Close()

	head, err := readHead(f)
	if err != nil {
		return false, encUnknown, err
	}

	enc := detectUTF(head)
	if !matchQueryHead(head, enc) {
		return false, encUnknown, nil
	}
	return true, enc, nil
}

// isQueryInArchive is isQueryFile for zip archive entries.
func isQueryInArchive(f *zip.File) (bool, srcEncoding, error) {
	if !isQueryExt(f.FileHeader.Name) {
		return false, encUnknown, nil
	}

	r, err := f.Open()
	if err != nil {
		return false, encUnknown, err
	}
	defer r.Close()

	head, err := readHead(r)
	if err != nil {
		return false, encUnknown, err
	}

	enc := detectUTF(head)
	if !matchQueryHead(head, enc) {
		return false, encUnknown, nil
	}
	return true, enc, nil
}

// matchQueryHead decodes sampled head to UTF-8 and runs content detection on
// it. The sample may end mid code unit, so it is truncated to the encoding
// unit size first.
func matchQueryHead(head []byte, enc srcEncoding) bool {
	switch enc {
	case encUTF16BigEndian, encUTF16LittleEndian:
		head = head[:len(head)&^1]
	case encUTF32BigEndian, encUTF32LittleEndian:
		head = head[:len(head)&^3]
	}

	decoded, err := io.ReadAll(selectReader(bytes.NewReader(head), enc))
	if err != nil {
		return false
	}
	return filetype.IsType(decoded, typeGraphQL)
}

func isUTF8BOM3(buf []byte) bool {
	return len(buf) >= 3 && buf[0] == 0xEF && buf[1] == 0xBB && buf[2] == 0xBF
}

func isUTF16BigEndianBOM2(buf []byte) bool {
	return len(buf) >= 2 && buf[0] == 0xFE && buf[1] == 0xFF
}

func isUTF16LittleEndianBOM2(buf []byte) bool {
	return len(buf) >= 2 && buf[0] == 0xFF && buf[1] == 0xFE
}

func isUTF32BigEndianBOM4(buf []byte) bool {
	return len(buf) >= 4 && buf[0] == 0x00 && buf[1] == 0x00 && buf[2] == 0xFE && buf[3] == 0xFF
}

func isUTF32LittleEndianBOM4(buf []byte) bool {
	return len(buf) >= 4 && buf[0] == 0xFF && buf[1] == 0xFE && buf[2] == 0x00 && buf[3] == 0x00
}

// detectUTF detects unicode encoding by BOM. UTF-32 LE shares its first two
// bytes with UTF-16 LE so longer signatures are checked first.
func detectUTF(buf []byte) srcEncoding {
	if isUTF32BigEndianBOM4(buf) {
		return encUTF32BigEndian
	}
	if isUTF32LittleEndianBOM4(buf) {
		return encUTF32LittleEndian
	}
	if isUTF8BOM3(buf) {
		return encUTF8
	}
	if isUTF16BigEndianBOM2(buf) {
		return encUTF16BigEndian
	}
	if isUTF16LittleEndianBOM2(buf) {
		return encUTF16LittleEndian
	}
	return encUnknown
}

// selectReader wraps the reader with a decoder matching detected encoding,
// stripping the BOM on the way.
func selectReader(r io.Reader, enc srcEncoding) io.Reader {
	switch enc {
	case encUnknown:
		return r
	case encUTF8:
		return xtransform.NewReader(r, xunicode.UTF8BOM.NewDecoder())
	case encUTF16BigEndian:
		return xtransform.NewReader(r, xunicode.UTF16(xunicode.BigEndian, xunicode.UseBOM).NewDecoder())
	case encUTF16LittleEndian:
		return xtransform.NewReader(r, xunicode.UTF16(xunicode.LittleEndian, xunicode.UseBOM).NewDecoder())
	case encUTF32BigEndian:
		return xtransform.NewReader(r, utf32.UTF32(utf32.BigEndian, utf32.UseBOM).NewDecoder())
	case encUTF32LittleEndian:
		return xtransform.NewReader(r, utf32.UTF32(utf32.LittleEndian, utf32.UseBOM).NewDecoder())
	default:
		panic("unsupported source encoding")
	}
}
