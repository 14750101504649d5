// Copyright 2024 The SpatialKit Authors.
//
// Use of this software is governed by the Apache License, Version 2.0,
// included in the file licenses/APL.txt.

package geo

import (
	"testing"

	"github.com/spatialkit/wellknown/pkg/geo/geopb"
	"github.com/stretchr/testify/require"
	"github.com/twpayne/go-geom"
)

func TestMakeGeometryFromPointCoords(t *testing.T) {
	g, err := MakeGeometryFromPointCoords(1.2, 3.4)
	require.NoError(t, err)
	require.Equal(t, geopb.ShapeType_Point, g.ShapeType())
	require.Equal(t, geopb.UnknownSRID, g.SRID())
	require.False(t, g.Empty())
	require.Equal(t, &geopb.BoundingBox{MinX: 1.2, MaxX: 1.2, MinY: 3.4, MaxY: 3.4}, g.BoundingBox())
}

func TestMakeGeometryFromGeomT(t *testing.T) {
	testCases := []struct {
		desc      string
		t         geom.T
		shapeType geopb.ShapeType
		srid      geopb.SRID
		empty     bool
	}{
		{
			"point",
			geom.NewPointFlat(geom.XY, []float64{1, 2}),
			geopb.ShapeType_Point,
			0,
			false,
		},
		{
			"point with SRID",
			geom.NewPointFlat(geom.XY, []float64{1, 2}).SetSRID(4326),
			geopb.ShapeType_Point,
			4326,
			false,
		},
		{
			"empty point",
			geom.NewPointEmpty(geom.XY),
			geopb.ShapeType_Point,
			0,
			true,
		},
		{
			"linestring",
			geom.NewLineStringFlat(geom.XY, []float64{1, 2, 3, 4}),
			geopb.ShapeType_LineString,
			0,
			false,
		},
		{
			"polygon",
			geom.NewPolygonFlat(geom.XY, []float64{0, 0, 1, 0, 1, 1, 0, 0}, []int{8}),
			geopb.ShapeType_Polygon,
			0,
			false,
		},
		{
			"multipoint",
			geom.NewMultiPointFlat(geom.XY, []float64{1, 2, 3, 4}),
			geopb.ShapeType_MultiPoint,
			0,
			false,
		},
		{
			"empty collection",
			geom.NewGeometryCollection(),
			geopb.ShapeType_GeometryCollection,
			0,
			true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			g, err := MakeGeometryFromGeomT(tc.t)
			require.NoError(t, err)
			require.Equal(t, tc.shapeType, g.ShapeType())
			require.Equal(t, tc.srid, g.SRID())
			require.Equal(t, tc.empty, g.Empty())
		})
	}
}

func TestGeometryEqual(t *testing.T) {
	a, err := MakeGeometryFromPointCoords(1.2, 3.4)
	require.NoError(t, err)
	b, err := MakeGeometryFromPointCoords(1.2, 3.4)
	require.NoError(t, err)
	c, err := MakeGeometryFromPointCoords(1.2, 3.5)
	require.NoError(t, err)

	require.True(t, a.Equal(b))
	require.False(t, a.Equal(c))

	// Equality is SRID sensitive.
	withSRID, err := a.CloneWithSRID(4326)
	require.NoError(t, err)
	require.False(t, a.Equal(withSRID))
	require.Equal(t, geopb.SRID(4326), withSRID.SRID())
}

func TestCloneWithSRID(t *testing.T) {
	g, err := MakeGeometryFromPointCoords(1.2, 3.4)
	require.NoError(t, err)

	clone, err := g.CloneWithSRID(27700)
	require.NoError(t, err)
	require.Equal(t, geopb.SRID(27700), clone.SRID())
	// The original is unchanged.
	require.Equal(t, geopb.UnknownSRID, g.SRID())

	gt, err := clone.AsGeomT()
	require.NoError(t, err)
	require.Equal(t, []float64{1.2, 3.4}, gt.FlatCoords())
}

func TestMakeGeometrySRIDBounds(t *testing.T) {
	_, err := MakeGeometry(geopb.SpatialObject{SRID: geopb.MaxSRID + 1})
	require.Error(t, err)
}

func TestBoundingBoxFromGeomT(t *testing.T) {
	testCases := []struct {
		desc     string
		t        geom.T
		expected *geopb.BoundingBox
	}{
		{
			"empty point",
			geom.NewPointEmpty(geom.XY),
			nil,
		},
		{
			"linestring",
			geom.NewLineStringFlat(geom.XY, []float64{-1, -2, 3, 4}),
			&geopb.BoundingBox{MinX: -1, MaxX: 3, MinY: -2, MaxY: 4},
		},
		{
			"collection",
			geom.NewGeometryCollection().MustPush(
				geom.NewPointFlat(geom.XY, []float64{5, 5}),
				geom.NewPointFlat(geom.XY, []float64{-5, 0}),
			),
			&geopb.BoundingBox{MinX: -5, MaxX: 5, MinY: 0, MaxY: 5},
		},
		{
			"3D point ignores Z for the bounding box",
			geom.NewPointFlat(geom.XYZ, []float64{1, 2, 100}),
			&geopb.BoundingBox{MinX: 1, MaxX: 1, MinY: 2, MaxY: 2},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			require.Equal(t, tc.expected, boundingBoxFromGeomT(tc.t))
		})
	}
}
