package problemfile

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ezpz"
	"ezpz/constraint"
)

const twoPointsFourApart = `# constraints
point p
point q
p.x = 0
p.y = 0
distance(p, q, 4)
# guesses
p roughly (0, 0)
q roughly (-0.02, 4.39)
`

func TestParseTwoPointsFourApart(t *testing.T) {
	doc, err := Parse(strings.NewReader(twoPointsFourApart), 1e-2)
	require.NoError(t, err)
	require.Len(t, doc.Requests, 3) // p.x, p.y, distance(p,q,4)
	require.Equal(t, 4, doc.NCols())

	guess := map[int]float64{}
	for id, v := range doc.Guesses {
		guess[int(id)] = v
	}
	assert.Equal(t, -0.02, guess[2])
	assert.Equal(t, 4.39, guess[3])
}

func TestParseOnArcAllocatesFixedRadius(t *testing.T) {
	src := `# constraints
point p
point c
on_arc(p, c, 1, 0, 1.5707963267948966, ccw)
# guesses
p roughly (0.5, 0.6)
c roughly (0, 0)
`
	doc, err := Parse(strings.NewReader(src), 1e-2)
	require.NoError(t, err)
	// two points (4 ids) + one implicit radius scalar
	require.Equal(t, 5, doc.NCols())
	require.Len(t, doc.Requests, 2) // implicit Fixed(radius) + on_arc

	var arc constraint.PointOnArc
	for _, req := range doc.Requests {
		if a, ok := req.Constraint.(constraint.PointOnArc); ok {
			arc = a
		}
	}
	assert.Equal(t, 1e-2, arc.DeadbandArc)
}

func TestParseRejectsUndeclaredPoint(t *testing.T) {
	src := `# constraints
horizontal(a, b)
# guesses
`
	_, err := Parse(strings.NewReader(src), 1e-2)
	require.Error(t, err)
	var pe *ezpz.ParseError
	require.ErrorAs(t, err, &pe)
}

func TestRoundTripSimpleDocument(t *testing.T) {
	doc, err := Parse(strings.NewReader(twoPointsFourApart), 1e-2)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, doc))

	reparsed, err := Parse(strings.NewReader(buf.String()), 1e-2)
	require.NoError(t, err)
	assert.Equal(t, doc.NCols(), reparsed.NCols())
	assert.Equal(t, len(doc.Requests), len(reparsed.Requests))
}

func TestParseUnknownSectionHeading(t *testing.T) {
	_, err := Parse(strings.NewReader("# bogus\n"), 1e-2)
	require.Error(t, err)
}
