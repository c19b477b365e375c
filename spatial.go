package sqldata

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// A Point is a two-dimensional coordinate pair. For geodetic data X is
// the longitude and Y the latitude. An SRID of zero means the column
// default.
type Point struct {
	X, Y float64
	SRID int
}

// NewPoint returns the point (x, y) with no SRID.
func NewPoint(x, y float64) Point {
	return Point{X: x, Y: y}
}

// WKT returns the point in well-known text form, e.g. "POINT(30 10)".
func (p Point) WKT() string {
	return fmt.Sprintf("POINT(%s %s)",
		strconv.FormatFloat(p.X, 'f', -1, 64),
		strconv.FormatFloat(p.Y, 'f', -1, 64))
}

// String returns the extended well-known text form, with an SRID
// prefix when set: "SRID=4326;POINT(30 10)".
func (p Point) String() string {
	if p.SRID != 0 {
		return fmt.Sprintf("SRID=%d;%s", p.SRID, p.WKT())
	}
	return p.WKT()
}

// ParsePoint parses the (extended) well-known text form of a point.
func ParsePoint(s string) (Point, error) {
	srid, wkt, err := splitEWKT(s)
	if err != nil {
		return Point{}, newParseError(TypeGeometry, s, err)
	}
	body, err := wktBody(wkt, "POINT")
	if err != nil {
		return Point{}, newParseError(TypeGeometry, s, err)
	}
	points, err := parseCoords(body)
	if err != nil {
		return Point{}, newParseError(TypeGeometry, s, err)
	}
	if len(points) != 1 {
		return Point{}, newParseError(TypeGeometry, s, fmt.Errorf("expected 1 coordinate pair, got %d", len(points)))
	}
	return Point{X: points[0].X, Y: points[0].Y, SRID: srid}, nil
}

// Value implements the driver.Valuer interface.
func (p Point) Value() (driver.Value, error) {
	return p.String(), nil
}

// Scan implements the sql.Scanner interface. The source must be the
// (extended) well-known text form; select spatial columns through
// ST_AsEWKT or ST_AsText.
func (p *Point) Scan(src any) error {
	var s string
	switch src := src.(type) {
	case nil:
		*p = Point{}
		return nil
	case string:
		s = src
	case []byte:
		s = string(src)
	default:
		return newParseError(TypeGeometry, fmt.Sprint(src), expectedError(src, "string", "[]byte"))
	}
	v, err := ParsePoint(s)
	if err != nil {
		return err
	}
	*p = v
	return nil
}

// geoJSONPoint is the GeoJSON wire form of a point.
type geoJSONPoint struct {
	Type        string     `json:"type"`
	Coordinates [2]float64 `json:"coordinates"`
}

// MarshalJSON implements the json.Marshaler interface using the
// GeoJSON point encoding.
func (p Point) MarshalJSON() ([]byte, error) {
	return json.Marshal(geoJSONPoint{Type: "Point", Coordinates: [2]float64{p.X, p.Y}})
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (p *Point) UnmarshalJSON(b []byte) error {
	var g geoJSONPoint
	if err := json.Unmarshal(b, &g); err != nil {
		return err
	}
	if !strings.EqualFold(g.Type, "Point") {
		return fmt.Errorf("sqldata: expected GeoJSON type %q, got %q", "Point", g.Type)
	}
	p.X, p.Y = g.Coordinates[0], g.Coordinates[1]
	return nil
}

// A Geometry carries an arbitrary geometry in well-known text form.
// It does not interpret the shape beyond its kind, leaving geometry
// processing to the server.
type Geometry struct {
	SRID int
	WKT  string
}

// NewGeometry returns a geometry from its well-known text form.
func NewGeometry(wkt string) Geometry {
	return Geometry{WKT: wkt}
}

// ParseGeometry parses the (extended) well-known text form.
func ParseGeometry(s string) (Geometry, error) {
	srid, wkt, err := splitEWKT(s)
	if err != nil {
		return Geometry{}, newParseError(TypeGeometry, s, err)
	}
	g := Geometry{SRID: srid, WKT: wkt}
	if g.Kind() == "" {
		return Geometry{}, newParseError(TypeGeometry, s, errors.New("missing geometry tag"))
	}
	return g, nil
}

// Kind returns the upper-cased geometry tag, e.g. "POINT" or
// "LINESTRING", or "" if the text is malformed.
func (g Geometry) Kind() string {
	i := strings.IndexAny(g.WKT, "( \t")
	if i < 0 {
		i = len(g.WKT)
	}
	kind := strings.ToUpper(strings.TrimSpace(g.WKT[:i]))
	switch kind {
	case "POINT", "LINESTRING", "POLYGON", "MULTIPOINT", "MULTILINESTRING", "MULTIPOLYGON", "GEOMETRYCOLLECTION":
		return kind
	}
	return ""
}

// IsZero reports if the geometry is unset.
func (g Geometry) IsZero() bool { return g.WKT == "" }

// String returns the extended well-known text form.
func (g Geometry) String() string {
	if g.SRID != 0 {
		return fmt.Sprintf("SRID=%d;%s", g.SRID, g.WKT)
	}
	return g.WKT
}

// Value implements the driver.Valuer interface.
func (g Geometry) Value() (driver.Value, error) {
	if g.IsZero() {
		return nil, nil
	}
	if g.Kind() == "" {
		return nil, &ConversionError{Type: TypeGeometry, Err: fmt.Errorf("malformed geometry text %q", g.WKT)}
	}
	return g.String(), nil
}

// Scan implements the sql.Scanner interface.
func (g *Geometry) Scan(src any) error {
	var s string
	switch src := src.(type) {
	case nil:
		*g = Geometry{}
		return nil
	case string:
		s = src
	case []byte:
		s = string(src)
	default:
		return newParseError(TypeGeometry, fmt.Sprint(src), expectedError(src, "string", "[]byte"))
	}
	v, err := ParseGeometry(s)
	if err != nil {
		return err
	}
	*g = v
	return nil
}

// A LineString is an ordered path of two or more points. Element
// SRIDs are ignored; the shape's SRID applies to all coordinates.
type LineString struct {
	Points []Point
	SRID   int
}

// NewLineString returns the path through the given points, with no SRID.
func NewLineString(points ...Point) LineString {
	return LineString{Points: points}
}

// IsZero reports if the line has no points.
func (l LineString) IsZero() bool { return len(l.Points) == 0 }

// WKT returns the line in well-known text form,
// e.g. "LINESTRING(30 10, 10 30, 40 40)".
func (l LineString) WKT() string {
	return "LINESTRING(" + wktCoords(l.Points) + ")"
}

// String returns the extended well-known text form.
func (l LineString) String() string {
	if l.SRID != 0 {
		return fmt.Sprintf("SRID=%d;%s", l.SRID, l.WKT())
	}
	return l.WKT()
}

// ParseLineString parses the (extended) well-known text form of a line.
func ParseLineString(s string) (LineString, error) {
	srid, wkt, err := splitEWKT(s)
	if err != nil {
		return LineString{}, newParseError(TypeGeometry, s, err)
	}
	body, err := wktBody(wkt, "LINESTRING")
	if err != nil {
		return LineString{}, newParseError(TypeGeometry, s, err)
	}
	points, err := parseCoords(body)
	if err != nil {
		return LineString{}, newParseError(TypeGeometry, s, err)
	}
	if len(points) < 2 {
		return LineString{}, newParseError(TypeGeometry, s, errors.New("a line needs at least 2 points"))
	}
	return LineString{Points: points, SRID: srid}, nil
}

// Value implements the driver.Valuer interface.
func (l LineString) Value() (driver.Value, error) {
	if l.IsZero() {
		return nil, nil
	}
	if len(l.Points) < 2 {
		return nil, &ConversionError{Type: TypeGeometry, Err: errors.New("a line needs at least 2 points")}
	}
	return l.String(), nil
}

// Scan implements the sql.Scanner interface.
func (l *LineString) Scan(src any) error {
	var s string
	switch src := src.(type) {
	case nil:
		*l = LineString{}
		return nil
	case string:
		s = src
	case []byte:
		s = string(src)
	default:
		return newParseError(TypeGeometry, fmt.Sprint(src), expectedError(src, "string", "[]byte"))
	}
	v, err := ParseLineString(s)
	if err != nil {
		return err
	}
	*l = v
	return nil
}

// A Polygon is a shell ring optionally followed by hole rings. Every
// ring must close on its first point and hold at least 4 points.
type Polygon struct {
	Rings [][]Point
	SRID  int
}

// NewPolygon returns a polygon from its shell and optional holes,
// with no SRID.
func NewPolygon(shell []Point, holes ...[]Point) Polygon {
	return Polygon{Rings: append([][]Point{shell}, holes...)}
}

// IsZero reports if the polygon has no rings.
func (p Polygon) IsZero() bool { return len(p.Rings) == 0 }

// WKT returns the polygon in well-known text form,
// e.g. "POLYGON((35 10, 45 45, 15 40, 35 10))".
func (p Polygon) WKT() string {
	var sb strings.Builder
	sb.WriteString("POLYGON(")
	for i, ring := range p.Rings {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteByte('(')
		sb.WriteString(wktCoords(ring))
		sb.WriteByte(')')
	}
	sb.WriteByte(')')
	return sb.String()
}

// String returns the extended well-known text form.
func (p Polygon) String() string {
	if p.SRID != 0 {
		return fmt.Sprintf("SRID=%d;%s", p.SRID, p.WKT())
	}
	return p.WKT()
}

// ParsePolygon parses the (extended) well-known text form of a polygon.
func ParsePolygon(s string) (Polygon, error) {
	srid, wkt, err := splitEWKT(s)
	if err != nil {
		return Polygon{}, newParseError(TypeGeometry, s, err)
	}
	body, err := wktBody(wkt, "POLYGON")
	if err != nil {
		return Polygon{}, newParseError(TypeGeometry, s, err)
	}
	texts, err := splitRings(body)
	if err != nil {
		return Polygon{}, newParseError(TypeGeometry, s, err)
	}
	rings := make([][]Point, 0, len(texts))
	for _, text := range texts {
		ring, err := parseCoords(text)
		if err != nil {
			return Polygon{}, newParseError(TypeGeometry, s, err)
		}
		if err := validRing(ring); err != nil {
			return Polygon{}, newParseError(TypeGeometry, s, err)
		}
		rings = append(rings, ring)
	}
	return Polygon{Rings: rings, SRID: srid}, nil
}

// Value implements the driver.Valuer interface.
func (p Polygon) Value() (driver.Value, error) {
	if p.IsZero() {
		return nil, nil
	}
	for _, ring := range p.Rings {
		if err := validRing(ring); err != nil {
			return nil, &ConversionError{Type: TypeGeometry, Err: err}
		}
	}
	return p.String(), nil
}

// Scan implements the sql.Scanner interface.
func (p *Polygon) Scan(src any) error {
	var s string
	switch src := src.(type) {
	case nil:
		*p = Polygon{}
		return nil
	case string:
		s = src
	case []byte:
		s = string(src)
	default:
		return newParseError(TypeGeometry, fmt.Sprint(src), expectedError(src, "string", "[]byte"))
	}
	v, err := ParsePolygon(s)
	if err != nil {
		return err
	}
	*p = v
	return nil
}

// A Geography is a geometry interpreted on a geodetic coordinate
// system, matching the PostGIS geography type. An SRID of zero means
// the column default (4326 on PostGIS).
type Geography struct {
	Geometry
}

// NewGeography returns a geography from its well-known text form.
func NewGeography(wkt string) Geography {
	return Geography{NewGeometry(wkt)}
}

// ParseGeography parses the (extended) well-known text form.
func ParseGeography(s string) (Geography, error) {
	g, err := ParseGeometry(s)
	if err != nil {
		return Geography{}, err
	}
	return Geography{g}, nil
}

// validRing checks that a polygon ring closes on its first point.
func validRing(ring []Point) error {
	if len(ring) < 4 {
		return fmt.Errorf("a ring needs at least 4 points, got %d", len(ring))
	}
	if ring[0] != ring[len(ring)-1] {
		return errors.New("ring is not closed")
	}
	return nil
}

// wktCoords renders points as a comma-separated coordinate list.
func wktCoords(points []Point) string {
	var sb strings.Builder
	for i, p := range points {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(strconv.FormatFloat(p.X, 'f', -1, 64))
		sb.WriteByte(' ')
		sb.WriteString(strconv.FormatFloat(p.Y, 'f', -1, 64))
	}
	return sb.String()
}

// parseCoords parses a comma-separated coordinate list.
func parseCoords(s string) ([]Point, error) {
	parts := strings.Split(s, ",")
	points := make([]Point, 0, len(parts))
	for _, part := range parts {
		fields := strings.Fields(part)
		if len(fields) != 2 {
			return nil, fmt.Errorf("expected 2 coordinates, got %d", len(fields))
		}
		x, err := strconv.ParseFloat(fields[0], 64)
		if err != nil {
			return nil, err
		}
		y, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return nil, err
		}
		points = append(points, Point{X: x, Y: y})
	}
	return points, nil
}

// wktBody strips the geometry tag and the outer parentheses.
func wktBody(wkt, tag string) (string, error) {
	if !strings.HasPrefix(strings.ToUpper(wkt), tag) {
		return "", fmt.Errorf("not a %s geometry", tag)
	}
	body := strings.TrimSpace(wkt[len(tag):])
	if len(body) < 2 || body[0] != '(' || body[len(body)-1] != ')' {
		return "", errors.New("malformed coordinate list")
	}
	return body[1 : len(body)-1], nil
}

// splitRings splits the body of a POLYGON into its ring texts.
func splitRings(body string) ([]string, error) {
	var (
		rings []string
		depth int
		start int
	)
	for i, r := range body {
		switch r {
		case '(':
			if depth == 0 {
				start = i + 1
			}
			depth++
		case ')':
			depth--
			if depth < 0 {
				return nil, errors.New("unbalanced parentheses")
			}
			if depth == 0 {
				rings = append(rings, body[start:i])
			}
		case ',', ' ', '\t':
		default:
			if depth == 0 {
				return nil, errors.New("malformed ring list")
			}
		}
	}
	if depth != 0 {
		return nil, errors.New("unbalanced parentheses")
	}
	if len(rings) == 0 {
		return nil, errors.New("empty ring list")
	}
	return rings, nil
}

// splitEWKT splits an optional "SRID=n;" prefix from the text form.
func splitEWKT(s string) (srid int, wkt string, err error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(strings.ToUpper(s), "SRID=") {
		return 0, s, nil
	}
	sep := strings.IndexByte(s, ';')
	if sep < 0 {
		return 0, "", errors.New(`missing ";" after SRID`)
	}
	srid, err = strconv.Atoi(s[len("SRID="):sep])
	if err != nil {
		return 0, "", fmt.Errorf("malformed SRID: %w", err)
	}
	return srid, strings.TrimSpace(s[sep+1:]), nil
}
