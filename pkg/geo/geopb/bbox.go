// Copyright 2024 The SpatialKit Authors.
//
// Use of this software is governed by the Apache License, Version 2.0,
// included in the file licenses/APL.txt.

package geopb

import (
	"fmt"
	"math"
)

// BoundingBox is the XY extent of a spatial object.
type BoundingBox struct {
	MinX float64
	MaxX float64
	MinY float64
	MaxY float64
}

// NewBoundingBox returns a properly initialized bounding box.
func NewBoundingBox() *BoundingBox {
	return &BoundingBox{
		MinX: math.MaxFloat64,
		MaxX: -math.MaxFloat64,
		MinY: math.MaxFloat64,
		MaxY: -math.MaxFloat64,
	}
}

// Update expands the BoundingBox to include the given coordinate.
func (b *BoundingBox) Update(x, y float64) {
	b.MinX = math.Min(b.MinX, x)
	b.MaxX = math.Max(b.MaxX, x)
	b.MinY = math.Min(b.MinY, y)
	b.MaxY = math.Max(b.MaxY, y)
}

// Covers returns whether b covers the other bounding box.
func (b *BoundingBox) Covers(o *BoundingBox) bool {
	return b.MinX <= o.MinX && o.MaxX <= b.MaxX &&
		b.MinY <= o.MinY && o.MaxY <= b.MaxY
}

func (b *BoundingBox) String() string {
	return fmt.Sprintf("BOX(%g %g,%g %g)", b.MinX, b.MinY, b.MaxX, b.MaxY)
}
