// Copyright 2024 The SpatialKit Authors.
//
// Use of this software is governed by the Apache License, Version 2.0,
// included in the file licenses/APL.txt.

package geo

import (
	"encoding/hex"
	"testing"

	"github.com/spatialkit/wellknown/pkg/geo/geopb"
	"github.com/stretchr/testify/require"
)

func TestParseGeometry(t *testing.T) {
	ewkbBytes, err := hex.DecodeString("0101000020E6100000333333333333F33F3333333333330B40")
	require.NoError(t, err)

	testCases := []struct {
		desc      string
		str       string
		shapeType geopb.ShapeType
		srid      geopb.SRID
	}{
		{
			"EWKB hex with SRID",
			"0101000020E6100000333333333333F33F3333333333330B40",
			geopb.ShapeType_Point,
			4326,
		},
		{
			"WKB hex without SRID",
			"0101000000333333333333F33F3333333333330B40",
			geopb.ShapeType_Point,
			0,
		},
		{
			"big-endian WKB hex",
			"00000000013FF3333333333333400B333333333333",
			geopb.ShapeType_Point,
			0,
		},
		{
			"raw EWKB bytes",
			string(ewkbBytes),
			geopb.ShapeType_Point,
			4326,
		},
		{
			"WKT",
			"POINT (1.2 3.4)",
			geopb.ShapeType_Point,
			0,
		},
		{
			"EWKT with SRID",
			"SRID=4326;POINT (1.2 3.4)",
			geopb.ShapeType_Point,
			4326,
		},
		{
			"EWKT linestring",
			"SRID=27700;LINESTRING (1 2, 3 4)",
			geopb.ShapeType_LineString,
			27700,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			g, err := ParseGeometry(tc.str)
			require.NoError(t, err)
			require.Equal(t, tc.shapeType, g.ShapeType())
			require.Equal(t, tc.srid, g.SRID())
		})
	}
}

func TestParseGeometryErrors(t *testing.T) {
	testCases := []struct {
		desc string
		str  string
	}{
		{"empty string", ""},
		{"invalid hex", "01ZZ"},
		{"invalid WKT", "NOT A GEOMETRY"},
		{"SRID prefix without semicolon", "SRID=4326 POINT (1 2)"},
		{"non-numeric SRID", "SRID=foo;POINT (1 2)"},
	}

	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			_, err := ParseGeometry(tc.str)
			require.Error(t, err)
		})
	}
}

func TestParseGeometryFromEWKT(t *testing.T) {
	t.Run("default SRID applies when absent", func(t *testing.T) {
		g, err := ParseGeometryFromEWKT("POINT (1 2)", 4326)
		require.NoError(t, err)
		require.Equal(t, geopb.SRID(4326), g.SRID())
	})

	t.Run("declared SRID wins over default", func(t *testing.T) {
		g, err := ParseGeometryFromEWKT("SRID=27700;POINT (1 2)", 4326)
		require.NoError(t, err)
		require.Equal(t, geopb.SRID(27700), g.SRID())
	})

	t.Run("zero SRID declaration keeps default", func(t *testing.T) {
		g, err := ParseGeometryFromEWKT("SRID=0;POINT (1 2)", 4326)
		require.NoError(t, err)
		require.Equal(t, geopb.SRID(4326), g.SRID())
	})
}

func TestParseGeometryFromEWKBHex(t *testing.T) {
	g, err := ParseGeometryFromEWKBHex("0101000020346C0000333333333333F33F3333333333330B40")
	require.NoError(t, err)
	require.Equal(t, geopb.SRID(27700), g.SRID())

	// Lowercase hex decodes too.
	g, err = ParseGeometryFromEWKBHex("0101000020346c0000333333333333f33f3333333333330b40")
	require.NoError(t, err)
	require.Equal(t, geopb.SRID(27700), g.SRID())
}
