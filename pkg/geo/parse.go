// Copyright 2024 The SpatialKit Authors.
//
// Use of this software is governed by the Apache License, Version 2.0,
// included in the file licenses/APL.txt.

package geo

import (
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spatialkit/wellknown/pkg/geo/geoengine"
	"github.com/spatialkit/wellknown/pkg/geo/geopb"
	"github.com/twpayne/go-geom/encoding/ewkb"
	"github.com/twpayne/go-geom/encoding/ewkbhex"
)

// ParseGeometry parses a Geometry from a number of different formats
// available in the geospatial world, using the first character as a
// heuristic: EWKB hex, raw EWKB bytes, or (E)WKT. This matches the
// PostGIS direct cast from a string to GEOMETRY.
func ParseGeometry(str string) (Geometry, error) {
	if len(str) == 0 {
		return Geometry{}, errors.New("geo: parsing empty string to geo type")
	}

	// Parse as EWKB hex.
	if str[0] == '0' {
		return ParseGeometryFromEWKBHex(str)
	}

	// Parse as EWKB if it's a byte order mark.
	if str[0] == 0x00 || str[0] == 0x01 {
		return ParseGeometryFromEWKB(geopb.EWKB(str))
	}

	return ParseGeometryFromEWKT(geopb.EWKT(str), geopb.UnknownSRID)
}

// ParseGeometryFromEWKB parses a Geometry from raw EWKB (or plain WKB)
// bytes of either byte order.
func ParseGeometryFromEWKB(b geopb.EWKB) (Geometry, error) {
	t, err := ewkb.Unmarshal(b)
	if err != nil {
		return Geometry{}, errors.Wrap(err, "error parsing EWKB")
	}
	return MakeGeometryFromGeomT(t)
}

// ParseGeometryFromEWKBHex parses a Geometry from hex-encoded EWKB.
func ParseGeometryFromEWKBHex(str string) (Geometry, error) {
	t, err := ewkbhex.Decode(str)
	if err != nil {
		return Geometry{}, errors.Wrap(err, "error parsing EWKB hex")
	}
	return MakeGeometryFromGeomT(t)
}

// ParseGeometryFromEWKT parses a Geometry from an EWKT string. The
// defaultSRID applies only when the text carries no SRID= declaration.
func ParseGeometryFromEWKT(str geopb.EWKT, defaultSRID geopb.SRID) (Geometry, error) {
	b, err := decodeEWKT(string(str), defaultSRID)
	if err != nil {
		return Geometry{}, err
	}
	return ParseGeometryFromEWKB(b)
}

const sridPrefix = "SRID="
const sridPrefixLen = len(sridPrefix)

// decodeEWKT decodes a WKT string, stripping the optional SRID= prefix.
func decodeEWKT(str string, defaultSRID geopb.SRID) (geopb.EWKB, error) {
	srid := defaultSRID
	if strings.HasPrefix(str, sridPrefix) {
		end := strings.Index(str[sridPrefixLen:], ";")
		if end == -1 {
			return nil, errors.Newf(
				"geo: failed to find ; character with SRID declaration during EWKT decode: %q",
				str,
			)
		}
		sridInt64, err := strconv.ParseInt(str[sridPrefixLen:sridPrefixLen+end], 10, 32)
		if err != nil {
			return nil, err
		}
		// Only override the SRID if the SRID is not zero. This is in
		// line with observed PostGIS behavior.
		if sridInt64 != 0 {
			srid = geopb.SRID(sridInt64)
		}
		str = str[sridPrefixLen+end+1:]
	}

	return geoengine.WKTToEWKB(geopb.WKT(str), srid)
}
