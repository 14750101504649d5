// Copyright 2024 The SpatialKit Authors.
//
// Use of this software is governed by the Apache License, Version 2.0,
// included in the file licenses/APL.txt.

package geopb

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBoundingBoxUpdate(t *testing.T) {
	bbox := NewBoundingBox()
	bbox.Update(1, 2)
	require.Equal(t, &BoundingBox{MinX: 1, MaxX: 1, MinY: 2, MaxY: 2}, bbox)

	bbox.Update(-3, 5)
	require.Equal(t, &BoundingBox{MinX: -3, MaxX: 1, MinY: 2, MaxY: 5}, bbox)

	// Interior points do not move the box.
	bbox.Update(0, 3)
	require.Equal(t, &BoundingBox{MinX: -3, MaxX: 1, MinY: 2, MaxY: 5}, bbox)
}

func TestBoundingBoxCovers(t *testing.T) {
	outer := &BoundingBox{MinX: 0, MaxX: 10, MinY: 0, MaxY: 10}
	inner := &BoundingBox{MinX: 2, MaxX: 8, MinY: 2, MaxY: 8}
	crossing := &BoundingBox{MinX: 5, MaxX: 15, MinY: 5, MaxY: 15}

	require.True(t, outer.Covers(inner))
	require.True(t, outer.Covers(outer))
	require.False(t, inner.Covers(outer))
	require.False(t, outer.Covers(crossing))
}

func TestBoundingBoxString(t *testing.T) {
	bbox := &BoundingBox{MinX: -1.5, MaxX: 2.5, MinY: 0, MaxY: 4}
	require.Equal(t, "BOX(-1.5 0,2.5 4)", bbox.String())
}
