// Copyright 2024 The SpatialKit Authors.
//
// Use of this software is governed by the Apache License, Version 2.0,
// included in the file licenses/APL.txt.

// Package geopb contains the scalar types shared by the geo packages.
package geopb

// SRID is a Spatial Reference Identifier. All geometries are maintained
// with this SRID; 0 means no SRID is attached.
type SRID int32

// UnknownSRID is the default SRID for a geometry with no reference
// system attached.
const UnknownSRID = SRID(0)

// MaxSRID is the maximum SRID value accepted when parsing.
const MaxSRID = 999999

// WKT is the Well-Known Text form of a spatial object.
type WKT string

// EWKT is the Well-Known Text form of a spatial object, optionally
// prefixed with an SRID=<srid>; declaration.
type EWKT string

// WKB is the Well-Known Binary form of a spatial object.
type WKB []byte

// EWKB is the Well-Known Binary form of a spatial object, using the
// PostGIS extension that can embed an SRID in the type word.
type EWKB []byte

// ShapeType describes the type tag of a spatial object.
type ShapeType int32

// The supported shape types. Values match the WKB type codes.
const (
	ShapeType_Unset              ShapeType = 0
	ShapeType_Point              ShapeType = 1
	ShapeType_LineString         ShapeType = 2
	ShapeType_Polygon            ShapeType = 3
	ShapeType_MultiPoint         ShapeType = 4
	ShapeType_MultiLineString    ShapeType = 5
	ShapeType_MultiPolygon       ShapeType = 6
	ShapeType_GeometryCollection ShapeType = 7
)

var shapeTypeNames = map[ShapeType]string{
	ShapeType_Unset:              "Unset",
	ShapeType_Point:              "Point",
	ShapeType_LineString:         "LineString",
	ShapeType_Polygon:            "Polygon",
	ShapeType_MultiPoint:         "MultiPoint",
	ShapeType_MultiLineString:    "MultiLineString",
	ShapeType_MultiPolygon:       "MultiPolygon",
	ShapeType_GeometryCollection: "GeometryCollection",
}

func (s ShapeType) String() string {
	if name, ok := shapeTypeNames[s]; ok {
		return name
	}
	return "Unknown"
}

// SpatialObject is the fully parsed form of a geometry. The EWKB field
// is the canonical representation; the remaining fields are derived from
// it at construction time.
type SpatialObject struct {
	// EWKB is the canonical little-endian EWKB encoding of the object.
	EWKB EWKB
	// SRID is the denormalized SRID from the EWKB.
	SRID SRID
	// ShapeType is the denormalized shape type from the EWKB.
	ShapeType ShapeType
	// BoundingBox is the XY bounding box of the object. It is nil for
	// empty geometries.
	BoundingBox *BoundingBox
}
