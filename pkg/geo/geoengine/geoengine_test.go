// Copyright 2024 The SpatialKit Authors.
//
// Use of this software is governed by the Apache License, Version 2.0,
// included in the file licenses/APL.txt.

package geoengine

import (
	"encoding/hex"
	"testing"

	"github.com/spatialkit/wellknown/pkg/geo/geopb"
	"github.com/stretchr/testify/require"
	"github.com/twpayne/go-geom/encoding/ewkb"
)

func hex2bin(t *testing.T, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(s)
	require.NoError(t, err)
	return b
}

func TestEnsureInit(t *testing.T) {
	caps := EnsureInit()
	require.NotEmpty(t, caps.Version)
	// The probe is cached; repeated calls agree.
	require.Equal(t, caps, EnsureInit())
	require.Equal(t, caps.EmptyPointNaN, EmptyPointNaNSupported())
}

func TestWKTToEWKB(t *testing.T) {
	testCases := []struct {
		wkt  geopb.WKT
		srid geopb.SRID
	}{
		{"POINT (1.2 3.4)", 0},
		{"POINT (1.2 3.4)", 4326},
		{"LINESTRING (1 2, 3 4)", 27700},
		{"GEOMETRYCOLLECTION (POINT (1 2))", 4326},
	}

	for _, tc := range testCases {
		t.Run(string(tc.wkt), func(t *testing.T) {
			b, err := WKTToEWKB(tc.wkt, tc.srid)
			require.NoError(t, err)
			// Canonical form is little-endian.
			require.Equal(t, byte(1), b[0])

			g, err := ewkb.Unmarshal(b)
			require.NoError(t, err)
			require.Equal(t, int(tc.srid), g.SRID())
		})
	}
}

func TestEmptyPointCapability(t *testing.T) {
	if !EmptyPointNaNSupported() {
		t.Skip("geometry engine cannot round trip empty points")
	}

	// The capability means POINT EMPTY survives the WKT reader and the
	// WKB codec, encoded as NaN ordinates.
	b, err := WKTToEWKB("POINT EMPTY", 0)
	require.NoError(t, err)
	require.Equal(t, hex2bin(t, "0101000000000000000000F87F000000000000F87F"), []byte(b))

	g, err := ewkb.Unmarshal(b)
	require.NoError(t, err)
	require.Empty(t, g.FlatCoords())
}

func TestWKTToEWKBInvalid(t *testing.T) {
	_, err := WKTToEWKB("POINT (1.2)", 0)
	require.Error(t, err)

	_, err = WKTToEWKB("NOT A SHAPE", 0)
	require.Error(t, err)
}
