package geo

import "math"

// WGS-84 ellipsoid.
const (
	semiMajorM = 6378137.0
	flattening = 1 / 298.257223563
	semiMinorM = semiMajorM * (1 - flattening)
)

const degToRad = math.Pi / 180

// DistanceKm returns the geodesic distance between two points in kilometers
// on the WGS-84 ellipsoid, using Vincenty's inverse formula. Results agree
// with standard geodesic references to well under a meter at city scale.
// Spherical great-circle distance is only used as a fallback for the rare
// nearly-antipodal pairs where Vincenty does not converge.
func DistanceKm(p, q Coordinate) float64 {
	if p.Lat == q.Lat && p.Lon == q.Lon {
		return 0
	}

	u1 := math.Atan((1 - flattening) * math.Tan(p.Lat*degToRad))
	u2 := math.Atan((1 - flattening) * math.Tan(q.Lat*degToRad))
	l := (q.Lon - p.Lon) * degToRad

	sinU1, cosU1 := math.Sincos(u1)
	sinU2, cosU2 := math.Sincos(u2)

	lambda := l
	var sinSigma, cosSigma, sigma, cos2Alpha, cos2SigmaM float64
	converged := false
	for i := 0; i < 200; i++ {
		sinLambda, cosLambda := math.Sincos(lambda)
		sinSigma = math.Hypot(cosU2*sinLambda, cosU1*sinU2-sinU1*cosU2*cosLambda)
		if sinSigma == 0 {
			return 0 // coincident points
		}
		cosSigma = sinU1*sinU2 + cosU1*cosU2*cosLambda
		sigma = math.Atan2(sinSigma, cosSigma)

		sinAlpha := cosU1 * cosU2 * sinLambda / sinSigma
		cos2Alpha = 1 - sinAlpha*sinAlpha
		if cos2Alpha == 0 {
			cos2SigmaM = 0 // equatorial line
		} else {
			cos2SigmaM = cosSigma - 2*sinU1*sinU2/cos2Alpha
		}

		c := flattening / 16 * cos2Alpha * (4 + flattening*(4-3*cos2Alpha))
		prev := lambda
		lambda = l + (1-c)*flattening*sinAlpha*
			(sigma+c*sinSigma*(cos2SigmaM+c*cosSigma*(-1+2*cos2SigmaM*cos2SigmaM)))
		if math.Abs(lambda-prev) < 1e-12 {
			converged = true
			break
		}
	}
	if !converged {
		return greatCircleKm(p, q)
	}

	uSq := cos2Alpha * (semiMajorM*semiMajorM - semiMinorM*semiMinorM) / (semiMinorM * semiMinorM)
	a := 1 + uSq/16384*(4096+uSq*(-768+uSq*(320-175*uSq)))
	b := uSq / 1024 * (256 + uSq*(-128+uSq*(74-47*uSq)))
	deltaSigma := b * sinSigma * (cos2SigmaM + b/4*
		(cosSigma*(-1+2*cos2SigmaM*cos2SigmaM)-
			b/6*cos2SigmaM*(-3+4*sinSigma*sinSigma)*(-3+4*cos2SigmaM*cos2SigmaM)))

	return semiMinorM * a * (sigma - deltaSigma) / 1000
}

// greatCircleKm is the spherical haversine distance in kilometers, mean Earth
// radius 6371 km.
func greatCircleKm(p, q Coordinate) float64 {
	const earthRadiusKm = 6371
	dLat := (q.Lat - p.Lat) * degToRad
	dLon := (q.Lon - p.Lon) * degToRad
	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(p.Lat*degToRad)*math.Cos(q.Lat*degToRad)*
			math.Sin(dLon/2)*math.Sin(dLon/2)
	return earthRadiusKm * 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}
