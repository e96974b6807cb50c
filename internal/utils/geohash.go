package utils

import (
	"math"

	"github.com/mmcloughlin/geohash"
	"github.com/piresc/hopon/internal/pkg/models"
)

// earthRadiusKm is the mean Earth radius
const earthRadiusKm = 6371.0

// cellSizesKm holds the approximate {width, height} of a geohash cell at
// the equator for precisions 1..6
var cellSizesKm = [][2]float64{
	{5000, 5000},
	{1250, 625},
	{156, 156},
	{39.1, 19.5},
	{4.89, 4.89},
	{1.22, 0.61},
}

// GeoPoint represents a geographical point with latitude and longitude
type GeoPoint struct {
	Latitude  float64
	Longitude float64
}

// GeoPointFromPlace converts a Place to a GeoPoint
func GeoPointFromPlace(p models.Place) GeoPoint {
	return GeoPoint{Latitude: p.Lat, Longitude: p.Lng}
}

// EncodePlace converts a place to a geohash string
func EncodePlace(p models.Place, precision uint) string {
	return geohash.EncodeWithPrecision(p.Lat, p.Lng, precision)
}

// CalculateDistance calculates the distance between two points in kilometers using the Haversine formula
func CalculateDistance(point1, point2 GeoPoint) float64 {
	lat1 := point1.Latitude * math.Pi / 180.0
	lon1 := point1.Longitude * math.Pi / 180.0
	lat2 := point2.Latitude * math.Pi / 180.0
	lon2 := point2.Longitude * math.Pi / 180.0

	dLat := lat2 - lat1
	dLon := lon2 - lon1
	a := math.Sin(dLat/2)*math.Sin(dLat/2) + math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKm * c
}

// PrecisionForRadius returns the finest geohash precision whose cells
// around latitude lat are at least radiusKm on each side, so that a cell
// and its neighbours cover the circle. It returns 0 when no precision does.
func PrecisionForRadius(lat, radiusKm float64) uint {
	shrink := math.Cos(lat * math.Pi / 180.0)

	var precision uint
	for i, size := range cellSizesKm {
		if size[0]*shrink >= radiusKm && size[1] >= radiusKm {
			precision = uint(i + 1)
		}
	}
	return precision
}

// ProximityFilter matches places within a radius of a center. Candidates
// are first checked against the center's geohash cell and its neighbours,
// then by great circle distance.
type ProximityFilter struct {
	center    models.Place
	radiusKm  float64
	precision uint
	cells     map[string]struct{}
}

// NewProximityFilter prepares the geohash cells around center
func NewProximityFilter(center models.Place, radiusKm float64) *ProximityFilter {
	f := &ProximityFilter{
		center:    center,
		radiusKm:  radiusKm,
		precision: PrecisionForRadius(center.Lat, radiusKm),
	}

	if f.precision > 0 {
		hash := EncodePlace(center, f.precision)
		f.cells = map[string]struct{}{hash: {}}
		for _, n := range geohash.Neighbors(hash) {
			f.cells[n] = struct{}{}
		}
	}

	return f
}

// Match reports whether p lies within the filter radius
func (f *ProximityFilter) Match(p models.Place) bool {
	if f.cells != nil {
		if _, ok := f.cells[EncodePlace(p, f.precision)]; !ok {
			return false
		}
	}
	return CalculateDistance(GeoPointFromPlace(f.center), GeoPointFromPlace(p)) <= f.radiusKm
}
