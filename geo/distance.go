// Package geo provides pure geographic math for proximity scoring.
package geo

import "math"

// earthRadiusMeters is the mean Earth radius of the spherical approximation.
const earthRadiusMeters = 6371000.0

// DistanceMeters computes the great-circle distance between two coordinates
// using the haversine formula on a spherical Earth.
//
// The function is total and symmetric: DistanceMeters(a, b) == DistanceMeters(b, a),
// and identical coordinates yield exactly 0.
func DistanceMeters(lat1, lng1, lat2, lng2 float64) float64 {
	const degToRad = math.Pi / 180.0

	phi1 := lat1 * degToRad
	phi2 := lat2 * degToRad
	dPhi := (lat2 - lat1) * degToRad
	dLambda := (lng2 - lng1) * degToRad

	sinPhi := math.Sin(dPhi / 2)
	sinLambda := math.Sin(dLambda / 2)

	a := sinPhi*sinPhi + math.Cos(phi1)*math.Cos(phi2)*sinLambda*sinLambda
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusMeters * c
}
