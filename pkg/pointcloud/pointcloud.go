// Package pointcloud reads plain-text point clouds: whitespace-separated
// "x y z" records with no header, count or attributes.
package pointcloud

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"

	"github.com/Faultbox/minigis/pkg/geom"
)

// ErrMalformed reports a record that is not three numbers. Points read
// before the bad record are still returned alongside it.
var ErrMalformed = errors.New("malformed point record")

// maxTokenSize bounds a single token (scanner buffer). Lines may be any
// length.
const maxTokenSize = 64 * 1024

// Read parses coordinates three at a time. Like a stream extractor it stops
// at the first token that is not a number; a trailing incomplete triple is
// dropped. A token starting with '#' comments out the rest of its line.
func Read(r io.Reader) ([]geom.Point3, error) {
	var points []geom.Point3
	var coords [3]float64
	n := 0

	tok := &tokenizer{line: 1}
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 4096), maxTokenSize)
	scanner.Split(tok.split)

	for scanner.Scan() {
		text := scanner.Text()
		v, err := strconv.ParseFloat(text, 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return points, fmt.Errorf("%w: line %d: token %q", ErrMalformed, tok.line, text)
		}
		coords[n] = v
		n++
		if n == 3 {
			points = append(points, geom.Point3{X: coords[0], Y: coords[1], Z: coords[2]})
			n = 0
		}
	}
	if err := scanner.Err(); err != nil {
		return points, fmt.Errorf("reading points: line %d: %w", tok.line, err)
	}
	if n != 0 {
		return points, fmt.Errorf("%w: line %d: incomplete record (%d of 3 coordinates)", ErrMalformed, tok.line, n)
	}

	return points, nil
}

// tokenizer is a bufio.SplitFunc source yielding whitespace-separated
// tokens with comments removed. line is the line of the last token.
type tokenizer struct {
	line    int
	comment bool
}

func (t *tokenizer) split(data []byte, atEOF bool) (int, []byte, error) {
	i := 0
	for i < len(data) {
		if t.comment {
			nl := bytes.IndexByte(data[i:], '\n')
			if nl < 0 {
				return len(data), nil, nil
			}
			t.comment = false
			i += nl
			continue
		}

		switch c := data[i]; {
		case c == '\n':
			t.line++
			i++
		case isSpace(c):
			i++
		case c == '#':
			t.comment = true
			i++
		default:
			j := i
			for j < len(data) && !isSpace(data[j]) {
				j++
			}
			if j == len(data) && !atEOF {
				return i, nil, nil
			}
			return j, data[i:j], nil
		}
	}
	return i, nil, nil
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	}
	return false
}

// Load reads the point cloud at path. An empty path means the user made no
// choice and yields no points and no error.
func Load(path string) ([]geom.Point3, error) {
	if path == "" {
		return nil, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening point cloud: %w", err)
	}
	defer f.Close()

	return Read(f)
}

// Extent summarizes a point set for logging.
type Extent struct {
	Count    int
	Min, Max geom.Point3
}

// Stats returns the count and the raw axis-aligned extent of points.
// Min and Max are zero for an empty set.
func Stats(points []geom.Point3) Extent {
	e := Extent{Count: len(points)}
	if len(points) == 0 {
		return e
	}

	e.Min, e.Max = points[0], points[0]
	for _, p := range points[1:] {
		e.Min.X = math.Min(e.Min.X, p.X)
		e.Min.Y = math.Min(e.Min.Y, p.Y)
		e.Min.Z = math.Min(e.Min.Z, p.Z)
		e.Max.X = math.Max(e.Max.X, p.X)
		e.Max.Y = math.Max(e.Max.Y, p.Y)
		e.Max.Z = math.Max(e.Max.Z, p.Z)
	}
	return e
}
