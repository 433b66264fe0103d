package content

import (
	"bytes"
	"io"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// PDFText returns the text shown on every page of a PDF, pages separated by
// newlines. Any failure yields "".
func (e *Extractor) PDFText(data []byte) string {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed

	ctx, err := api.ReadValidateAndOptimize(bytes.NewReader(data), conf)
	if err != nil {
		e.logger.Warn("pdf read failed", "error", err)
		return ""
	}

	var pages []string
	for nr := 1; nr <= ctx.PageCount; nr++ {
		r, err := pdfcpu.ExtractPageContent(ctx, nr)
		if err != nil {
			e.logger.Warn("pdf page content failed", "page", nr, "error", err)
			continue
		}
		if r == nil {
			continue
		}
		stream, err := io.ReadAll(r)
		if err != nil {
			continue
		}
		if text := strings.TrimSpace(ShownText(stream)); text != "" {
			pages = append(pages, text)
		}
	}

	e.logger.Debug("pdf text extracted", "pages", ctx.PageCount, "text_pages", len(pages))
	return strings.Join(pages, "\n")
}

// ShownText returns the string operands of the text-showing operators (Tj, TJ,
// ' and ") in a decoded content stream. Line-moving operators and the end of a
// text object start a new line.
func ShownText(stream []byte) string {
	var (
		out     strings.Builder
		pending []string
		inArray bool
	)

	newline := func() {
		if out.Len() > 0 && !strings.HasSuffix(out.String(), "\n") {
			out.WriteByte('\n')
		}
	}

	for i := 0; i < len(stream); {
		c := stream[i]
		switch {
		case c == '(':
			s, n := literalString(stream[i:])
			pending = append(pending, s)
			i += n
		case c == '<' && i+1 < len(stream) && stream[i+1] != '<':
			s, n := hexString(stream[i:])
			pending = append(pending, s)
			i += n
		case c == '[':
			inArray = true
			i++
		case c == ']':
			inArray = false
			i++
		case c == '%':
			for i < len(stream) && stream[i] != '\n' && stream[i] != '\r' {
				i++
			}
		case isOperatorByte(c):
			start := i
			for i < len(stream) && isOperatorByte(stream[i]) {
				i++
			}
			if inArray {
				continue
			}
			switch string(stream[start:i]) {
			case "Tj", "TJ":
				out.WriteString(strings.Join(pending, ""))
			case "'", "\"":
				newline()
				out.WriteString(strings.Join(pending, ""))
			case "T*", "Td", "TD", "ET":
				newline()
			}
			pending = pending[:0]
		default:
			i++
		}
	}

	return out.String()
}

func isOperatorByte(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c == '*' || c == '\'' || c == '"'
}

// literalString decodes a parenthesized string starting at b[0] and returns
// it with the number of bytes consumed.
func literalString(b []byte) (string, int) {
	var s strings.Builder
	depth := 0
	i := 0
	for i < len(b) {
		c := b[i]
		switch c {
		case '\\':
			if i+1 >= len(b) {
				return s.String(), len(b)
			}
			i++
			switch e := b[i]; e {
			case 'n':
				s.WriteByte('\n')
			case 'r':
				s.WriteByte('\r')
			case 't':
				s.WriteByte('\t')
			case 'b', 'f':
			case '\r', '\n':
			default:
				if e >= '0' && e <= '7' {
					v, n := 0, 0
					for n < 3 && i < len(b) && b[i] >= '0' && b[i] <= '7' {
						v = v*8 + int(b[i]-'0')
						i++
						n++
					}
					s.WriteByte(byte(v))
					continue
				}
				s.WriteByte(e)
			}
			i++
		case '(':
			if depth > 0 {
				s.WriteByte(c)
			}
			depth++
			i++
		case ')':
			depth--
			i++
			if depth == 0 {
				return s.String(), i
			}
			s.WriteByte(c)
		default:
			s.WriteByte(c)
			i++
		}
	}
	return s.String(), i
}

// hexString decodes a <...> string starting at b[0].
func hexString(b []byte) (string, int) {
	end := bytes.IndexByte(b, '>')
	if end < 0 {
		return "", len(b)
	}

	var digits []byte
	for _, c := range b[1:end] {
		if unhex(c) >= 0 {
			digits = append(digits, c)
		}
	}
	if len(digits)%2 == 1 {
		digits = append(digits, '0')
	}

	out := make([]byte, 0, len(digits)/2)
	for i := 0; i < len(digits); i += 2 {
		out = append(out, byte(unhex(digits[i])<<4|unhex(digits[i+1])))
	}
	return string(out), end + 1
}

func unhex(c byte) int {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0')
	case c >= 'a' && c <= 'f':
		return int(c-'a') + 10
	case c >= 'A' && c <= 'F':
		return int(c-'A') + 10
	}
	return -1
}
