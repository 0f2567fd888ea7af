package formats

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/Faultbox/gridmesh/pkg/grid"
	"github.com/Faultbox/gridmesh/pkg/math"
)

// HeaderLines is the number of leading lines of a DT document that belong to
// the header. Everything after them is the array body.
const HeaderLines = 5

// Array delimiters of the DT body.
const (
	arrayOpen  = "[{"
	arrayClose = "}]"
)

// DT format errors.
var (
	ErrShortHeader    = errors.New("DT document has fewer header lines than required")
	ErrMissingArray   = errors.New("DT body is missing an array")
	ErrMalformedArray = errors.New("malformed DT array")
)

// DTDocument is a model data text file split into its preserved header and
// replaceable body.
type DTDocument struct {
	// Header holds the first HeaderLines lines, each with its line terminator.
	Header []string
	// Body is everything after the header.
	Body []byte
}

// ParseDT splits data into header and body. The header content is opaque and
// kept byte for byte.
func ParseDT(data []byte) (*DTDocument, error) {
	doc := &DTDocument{Header: make([]string, 0, HeaderLines)}

	rest := data
	for len(doc.Header) < HeaderLines {
		if len(rest) == 0 {
			return nil, fmt.Errorf("%w: got %d, want %d", ErrShortHeader, len(doc.Header), HeaderLines)
		}
		n := bytes.IndexByte(rest, '\n')
		if n < 0 {
			n = len(rest) - 1
		}
		doc.Header = append(doc.Header, string(rest[:n+1]))
		rest = rest[n+1:]
	}

	doc.Body = rest
	return doc, nil
}

// SetArrays replaces the body with the serialized vertex array followed by
// the serialized index array.
func (d *DTDocument) SetArrays(vertices []math.Vec3, triangles []grid.Triangle) {
	body := make([]byte, 0, len(vertices)*12+len(triangles)*12+8)
	body = AppendVertices(body, vertices)
	body = AppendTriangles(body, triangles)
	d.Body = body
}

// Bytes returns the header followed by the body. A final header line without
// a terminator gets one so the body starts on its own line.
func (d *DTDocument) Bytes() []byte {
	var buf bytes.Buffer
	for _, line := range d.Header {
		buf.WriteString(line)
	}
	if n := len(d.Header); n > 0 && !strings.HasSuffix(d.Header[n-1], "\n") {
		buf.WriteByte('\n')
	}
	buf.Write(d.Body)
	return buf.Bytes()
}

// Arrays parses the vertex and index arrays from the body.
func (d *DTDocument) Arrays() ([]math.Vec3, []grid.Triangle, error) {
	lines := nonEmptyLines(d.Body)
	if len(lines) < 2 {
		return nil, nil, fmt.Errorf("%w: found %d of 2 arrays", ErrMissingArray, len(lines))
	}

	vertices, err := ParseVertices(lines[0])
	if err != nil {
		return nil, nil, fmt.Errorf("vertex array: %w", err)
	}
	triangles, err := ParseTriangles(lines[1])
	if err != nil {
		return nil, nil, fmt.Errorf("index array: %w", err)
	}
	return vertices, triangles, nil
}

// AppendVertices appends "[{{x,y,z},...}]\n" to dst.
func AppendVertices(dst []byte, vertices []math.Vec3) []byte {
	dst = append(dst, arrayOpen...)
	for i, v := range vertices {
		if i > 0 {
			dst = append(dst, ',')
		}
		dst = append(dst, '{')
		dst = appendFloat(dst, v.X)
		dst = append(dst, ',')
		dst = appendFloat(dst, v.Y)
		dst = append(dst, ',')
		dst = appendFloat(dst, v.Z)
		dst = append(dst, '}')
	}
	dst = append(dst, arrayClose...)
	return append(dst, '\n')
}

// AppendTriangles appends "[{a,b,c,...}]\n" to dst. Triples are not braced.
func AppendTriangles(dst []byte, triangles []grid.Triangle) []byte {
	dst = append(dst, arrayOpen...)
	for i, t := range triangles {
		if i > 0 {
			dst = append(dst, ',')
		}
		dst = strconv.AppendUint(dst, uint64(t[0]), 10)
		dst = append(dst, ',')
		dst = strconv.AppendUint(dst, uint64(t[1]), 10)
		dst = append(dst, ',')
		dst = strconv.AppendUint(dst, uint64(t[2]), 10)
	}
	dst = append(dst, arrayClose...)
	return append(dst, '\n')
}

// appendFloat writes the shortest plain decimal that round-trips to v, so
// whole coordinates render as "0", "1", "1000000" and never in exponent form.
func appendFloat(dst []byte, v float32) []byte {
	return strconv.AppendFloat(dst, float64(v), 'f', -1, 32)
}

// ParseVertices parses a vertex array line.
func ParseVertices(line string) ([]math.Vec3, error) {
	inner, err := arrayContent(line)
	if err != nil {
		return nil, err
	}
	if inner == "" {
		return nil, nil
	}
	if !strings.HasPrefix(inner, "{") || !strings.HasSuffix(inner, "}") {
		return nil, fmt.Errorf("%w: vertex entries must be braced", ErrMalformedArray)
	}

	entries := strings.Split(inner[1:len(inner)-1], "},{")
	vertices := make([]math.Vec3, 0, len(entries))
	for i, entry := range entries {
		parts := strings.Split(entry, ",")
		if len(parts) != 3 {
			return nil, fmt.Errorf("%w: vertex %d has %d components", ErrMalformedArray, i, len(parts))
		}
		var c [3]float32
		for n, p := range parts {
			f, err := strconv.ParseFloat(strings.TrimSpace(p), 32)
			if err != nil {
				return nil, fmt.Errorf("%w: vertex %d: %v", ErrMalformedArray, i, err)
			}
			c[n] = float32(f)
		}
		vertices = append(vertices, math.Vec3{X: c[0], Y: c[1], Z: c[2]})
	}
	return vertices, nil
}

// ParseTriangles parses an index array line.
func ParseTriangles(line string) ([]grid.Triangle, error) {
	inner, err := arrayContent(line)
	if err != nil {
		return nil, err
	}
	if inner == "" {
		return nil, nil
	}

	parts := strings.Split(inner, ",")
	if len(parts)%3 != 0 {
		return nil, fmt.Errorf("%w: %d indices is not a multiple of 3", ErrMalformedArray, len(parts))
	}

	triangles := make([]grid.Triangle, len(parts)/3)
	for i, p := range parts {
		v, err := strconv.ParseUint(strings.TrimSpace(p), 10, 32)
		if err != nil {
			return nil, fmt.Errorf("%w: index %d: %v", ErrMalformedArray, i, err)
		}
		triangles[i/3][i%3] = uint32(v)
	}
	return triangles, nil
}

// arrayContent strips the "[{" and "}]" delimiters from line.
func arrayContent(line string) (string, error) {
	s := strings.TrimSpace(line)
	if !strings.HasPrefix(s, arrayOpen) || !strings.HasSuffix(s, arrayClose) || len(s) < len(arrayOpen)+len(arrayClose) {
		return "", fmt.Errorf("%w: expected %s...%s", ErrMalformedArray, arrayOpen, arrayClose)
	}
	return s[len(arrayOpen) : len(s)-len(arrayClose)], nil
}

func nonEmptyLines(body []byte) []string {
	var lines []string
	for _, line := range strings.Split(string(body), "\n") {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
