package kml

import (
	"errors"
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleDoc = `<?xml version="1.0" encoding="UTF-8"?>
<kml xmlns="http://www.opengis.net/kml/2.2">
<Document>
  <Placemark>
    <name>Crossgate ATM</name>
    <description>Withdrawal at 7:15 am, camera confirmed.</description>
    <styleUrl>#greenIcon</styleUrl>
    <Point><coordinates>-86.4987,39.1968,248</coordinates></Point>
  </Placemark>
  <Placemark>
    <name>Ridge Trail North</name>
    <LineString>
      <coordinates>
        -86.4893,39.1921 -86.4881,39.1917 -86.4812,39.1885
      </coordinates>
    </LineString>
  </Placemark>
  <Placemark>
    <name>Search Grid B</name>
    <Polygon>
      <outerBoundaryIs><LinearRing>
        <coordinates>-86.47,39.18 -86.46,39.18 -86.46,39.19 -86.47,39.18</coordinates>
      </LinearRing></outerBoundaryIs>
    </Polygon>
  </Placemark>
  <Placemark>
    <description>no name on this one</description>
    <Point><coordinates>-86.4700,39.1800</coordinates></Point>
  </Placemark>
</Document>
</kml>`

func TestParseProducesOneRecordPerGeometryInOrder(t *testing.T) {
	records, err := Parse([]byte(sampleDoc))
	require.NoError(t, err)
	require.Len(t, records, 4)

	assert.Equal(t, "Crossgate ATM", records[0].Name)
	assert.IsType(t, orb.Point{}, records[0].Geometry)
	assert.Equal(t, "#greenIcon", records[0].StyleTag)
	assert.InDelta(t, 248.0, records[0].Altitude, 1e-9)

	assert.Equal(t, "Ridge Trail North", records[1].Name)
	line, ok := records[1].Geometry.(orb.LineString)
	require.True(t, ok)
	assert.Len(t, line, 3)
	assert.Equal(t, orb.Point{-86.4893, 39.1921}, line[0])

	assert.Equal(t, "Search Grid B", records[2].Name)
	poly, ok := records[2].Geometry.(orb.Polygon)
	require.True(t, ok)
	require.Len(t, poly, 1)
	assert.Len(t, poly[0], 4)

	assert.Equal(t, "Unknown", records[3].Name, "missing name defaults")
	assert.Equal(t, "no name on this one", records[3].Description)
}

func TestParsePointTimestampOnlyOnPoints(t *testing.T) {
	records, err := Parse([]byte(sampleDoc))
	require.NoError(t, err)

	require.NotNil(t, records[0].Timestamp, "point with time text gets a timestamp")
	assert.Equal(t, 7, records[0].Timestamp.Hour())
	assert.Equal(t, 15, records[0].Timestamp.Minute())

	assert.Nil(t, records[1].Timestamp, "lines never carry a timestamp")
	assert.Nil(t, records[2].Timestamp, "polygons never carry a timestamp")
	assert.Nil(t, records[3].Timestamp, "no pattern match means absent")
}

func TestParseMultiGeometrySharesNameAndStyle(t *testing.T) {
	doc := `<kml><Document><Placemark>
		<name>Fire Road</name>
		<styleUrl>#road</styleUrl>
		<MultiGeometry>
			<LineString><coordinates>0,0 1,1</coordinates></LineString>
			<LineString><coordinates>1,1 2,2</coordinates></LineString>
		</MultiGeometry>
	</Placemark></Document></kml>`

	records, err := Parse([]byte(doc))
	require.NoError(t, err)
	require.Len(t, records, 2)
	for _, rec := range records {
		assert.Equal(t, "Fire Road", rec.Name)
		assert.Equal(t, "#road", rec.StyleTag)
	}
}

// A MultiGeometry mixing kinds emits grouped records: points, then lines,
// then polygons. The markup's element order is not preserved within one
// placemark; only the across-placemark document order is.
func TestParseMixedMultiGeometryGroupsByKind(t *testing.T) {
	doc := `<kml><Document><Placemark>
		<name>Staging Area</name>
		<MultiGeometry>
			<LineString><coordinates>0,0 1,1</coordinates></LineString>
			<Point><coordinates>5,5</coordinates></Point>
			<Polygon><outerBoundaryIs><LinearRing><coordinates>0,0 1,0 1,1 0,0</coordinates></LinearRing></outerBoundaryIs></Polygon>
		</MultiGeometry>
	</Placemark></Document></kml>`

	records, err := Parse([]byte(doc))
	require.NoError(t, err)
	require.Len(t, records, 3)

	_, isPoint := records[0].Geometry.(orb.Point)
	_, isLine := records[1].Geometry.(orb.LineString)
	_, isPolygon := records[2].Geometry.(orb.Polygon)
	assert.True(t, isPoint)
	assert.True(t, isLine)
	assert.True(t, isPolygon)
}

func TestParseMalformedDocument(t *testing.T) {
	_, err := Parse([]byte("<kml><Document><Placemark></kml>"))
	require.Error(t, err)

	var perr *ParseError
	assert.True(t, errors.As(err, &perr))
}

func TestParseSkipsBrokenTuples(t *testing.T) {
	doc := `<kml><Placemark><name>t</name>
		<LineString><coordinates>0,0 garbage 1,notanumber 2,2</coordinates></LineString>
	</Placemark></kml>`

	records, err := Parse([]byte(doc))
	require.NoError(t, err)
	require.Len(t, records, 1)
	line := records[0].Geometry.(orb.LineString)
	assert.Equal(t, orb.LineString{{0, 0}, {2, 2}}, line)
}

func TestTrailFromRecordsConcatenatesInDocumentOrder(t *testing.T) {
	records, err := Parse([]byte(`<kml><Document>
		<Placemark><name>Ridge Trail North</name>
			<LineString><coordinates>0,0 1,1</coordinates></LineString></Placemark>
		<Placemark><name>Creek Path</name>
			<LineString><coordinates>9,9 8,8</coordinates></LineString></Placemark>
		<Placemark><name>Ridge Trail South</name>
			<LineString><coordinates>1,1 2,2</coordinates></LineString></Placemark>
	</Document></kml>`))
	require.NoError(t, err)

	trail := TrailFromRecords(records, "trail")

	// Segments concatenate as encountered; the shared 1,1 vertex is kept
	// twice, no dedup.
	assert.Equal(t, orb.LineString{{0, 0}, {1, 1}, {1, 1}, {2, 2}}, trail)
}

func TestTrailFromRecordsIgnoresPointsAndPolygons(t *testing.T) {
	records, err := Parse([]byte(`<kml><Document>
		<Placemark><name>trail head</name><Point><coordinates>5,5</coordinates></Point></Placemark>
		<Placemark><name>main trail</name>
			<LineString><coordinates>0,0 1,1</coordinates></LineString></Placemark>
	</Document></kml>`))
	require.NoError(t, err)

	trail := TrailFromRecords(records, "trail")
	assert.Len(t, trail, 2)
}
