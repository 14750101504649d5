// Copyright 2024 The SpatialKit Authors.
//
// Use of this software is governed by the Apache License, Version 2.0,
// included in the file licenses/APL.txt.

// Package geo contains the planar Geometry type and conversions between
// its Well-Known Binary and Well-Known Text representations.
//
// Subpackages are available for specific concerns:
//   - geo/wkbio implements the WKB serialization surface, with explicit
//     byte order, SRID and hex handling, plus stream helpers.
//   - geo/geoengine wraps the underlying geometry engine and exposes its
//     capabilities.
package geo

import (
	"bytes"
	"encoding/binary"

	"github.com/cockroachdb/errors"
	"github.com/spatialkit/wellknown/pkg/geo/geoengine"
	"github.com/spatialkit/wellknown/pkg/geo/geopb"
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/ewkb"
	"github.com/twpayne/go-geom/encoding/wkbcommon"
)

// DefaultEncodingFormat is the byte order used for WKB output when the
// caller does not request one. It matches the byte order of the host, so
// that locally produced buffers are cheap to reinterpret.
var DefaultEncodingFormat = nativeByteOrder()

// ewkbEncodingFormat is the byte order of the canonical internal EWKB
// form. Little-endian matches what PostGIS emits.
var ewkbEncodingFormat binary.ByteOrder = binary.LittleEndian

func nativeByteOrder() binary.ByteOrder {
	var buf [2]byte
	binary.NativeEndian.PutUint16(buf[:], 0x0102)
	if buf[0] == 0x01 {
		return binary.BigEndian
	}
	return binary.LittleEndian
}

// EmptyPointHandling is the wkbcommon option applied to the plain WKB
// encoders, which otherwise reject empty points: they are represented
// by NaN coordinate sentinels instead. The ewkb codec handles the
// sentinel natively and takes no options.
func EmptyPointHandling() wkbcommon.WKBOption {
	return wkbcommon.WKBOptionEmptyPointHandling(wkbcommon.EmptyPointHandlingNaN)
}

// Geometry is a planar spatial object. It is immutable; all mutating
// operations return a new Geometry.
type Geometry struct {
	spatialObject geopb.SpatialObject
}

// MakeGeometry returns a Geometry from a validated SpatialObject.
func MakeGeometry(spatialObject geopb.SpatialObject) (Geometry, error) {
	if spatialObject.SRID < 0 || spatialObject.SRID > geopb.MaxSRID {
		return Geometry{}, errors.Newf("SRID %d out of range", spatialObject.SRID)
	}
	return Geometry{spatialObject: spatialObject}, nil
}

// MakeGeometryUnsafe creates a Geometry without validation. Only for use
// where the SpatialObject is known to have been validated already.
func MakeGeometryUnsafe(spatialObject geopb.SpatialObject) Geometry {
	return Geometry{spatialObject: spatialObject}
}

// MakeGeometryFromGeomT creates a new Geometry from a geom.T object.
func MakeGeometryFromGeomT(t geom.T) (Geometry, error) {
	spatialObject, err := makeSpatialObject(t)
	if err != nil {
		return Geometry{}, err
	}
	return MakeGeometry(spatialObject)
}

// MakeGeometryFromPointCoords creates a 2D point Geometry.
func MakeGeometryFromPointCoords(x, y float64) (Geometry, error) {
	return MakeGeometryFromGeomT(geom.NewPointFlat(geom.XY, []float64{x, y}))
}

// AsGeomT returns the Geometry as a geom.T object.
func (g Geometry) AsGeomT() (geom.T, error) {
	return ewkb.Unmarshal(g.spatialObject.EWKB)
}

// SpatialObject returns the SpatialObject form of the Geometry.
func (g Geometry) SpatialObject() geopb.SpatialObject {
	return g.spatialObject
}

// EWKB returns the canonical EWKB representation of the Geometry.
func (g Geometry) EWKB() geopb.EWKB {
	return g.spatialObject.EWKB
}

// SRID returns the SRID of the Geometry, 0 if none is attached.
func (g Geometry) SRID() geopb.SRID {
	return g.spatialObject.SRID
}

// ShapeType returns the shape type of the Geometry.
func (g Geometry) ShapeType() geopb.ShapeType {
	return g.spatialObject.ShapeType
}

// BoundingBox returns the bounding box of the Geometry, nil if the
// Geometry is empty.
func (g Geometry) BoundingBox() *geopb.BoundingBox {
	return g.spatialObject.BoundingBox
}

// Empty returns whether the Geometry has no coordinate data.
func (g Geometry) Empty() bool {
	t, err := g.AsGeomT()
	if err != nil {
		return false
	}
	return isEmpty(t)
}

// Equal returns whether two Geometries encode the same spatial object,
// including the SRID. Coordinates are compared bit for bit through the
// canonical EWKB form.
func (g Geometry) Equal(o Geometry) bool {
	return bytes.Equal(g.spatialObject.EWKB, o.spatialObject.EWKB)
}

func (g Geometry) String() string {
	ewkt, err := SpatialObjectToEWKT(g.spatialObject, defaultWKTDecimalDigits)
	if err != nil {
		return "error rendering geometry"
	}
	return string(ewkt)
}

// CloneWithSRID returns the same Geometry carrying the given SRID.
func (g Geometry) CloneWithSRID(srid geopb.SRID) (Geometry, error) {
	t, err := g.AsGeomT()
	if err != nil {
		return Geometry{}, err
	}
	if err := geoengine.SetSRID(t, srid); err != nil {
		return Geometry{}, err
	}
	return MakeGeometryFromGeomT(t)
}

// makeSpatialObject builds the canonical SpatialObject of a geom.T.
func makeSpatialObject(t geom.T) (geopb.SpatialObject, error) {
	ret, err := ewkb.Marshal(t, ewkbEncodingFormat)
	if err != nil {
		return geopb.SpatialObject{}, err
	}
	shapeType, err := shapeTypeFromGeomT(t)
	if err != nil {
		return geopb.SpatialObject{}, err
	}
	return geopb.SpatialObject{
		EWKB:        geopb.EWKB(ret),
		SRID:        geopb.SRID(t.SRID()),
		ShapeType:   shapeType,
		BoundingBox: boundingBoxFromGeomT(t),
	}, nil
}

func shapeTypeFromGeomT(t geom.T) (geopb.ShapeType, error) {
	switch t := t.(type) {
	case *geom.Point:
		return geopb.ShapeType_Point, nil
	case *geom.LineString:
		return geopb.ShapeType_LineString, nil
	case *geom.Polygon:
		return geopb.ShapeType_Polygon, nil
	case *geom.MultiPoint:
		return geopb.ShapeType_MultiPoint, nil
	case *geom.MultiLineString:
		return geopb.ShapeType_MultiLineString, nil
	case *geom.MultiPolygon:
		return geopb.ShapeType_MultiPolygon, nil
	case *geom.GeometryCollection:
		return geopb.ShapeType_GeometryCollection, nil
	default:
		return geopb.ShapeType_Unset, errors.Newf("unknown shape: %T", t)
	}
}

// isEmpty reports whether t carries no coordinate data.
func isEmpty(t geom.T) bool {
	if gc, ok := t.(*geom.GeometryCollection); ok {
		for _, sub := range gc.Geoms() {
			if !isEmpty(sub) {
				return false
			}
		}
		return true
	}
	return len(t.FlatCoords()) == 0
}

// boundingBoxFromGeomT returns the XY bounding box of a geom.T, nil if
// the object is empty.
func boundingBoxFromGeomT(t geom.T) *geopb.BoundingBox {
	if isEmpty(t) {
		return nil
	}
	bbox := geopb.NewBoundingBox()
	updateBoundingBox(bbox, t)
	return bbox
}

func updateBoundingBox(bbox *geopb.BoundingBox, t geom.T) {
	if gc, ok := t.(*geom.GeometryCollection); ok {
		for _, sub := range gc.Geoms() {
			updateBoundingBox(bbox, sub)
		}
		return
	}
	flatCoords := t.FlatCoords()
	stride := t.Layout().Stride()
	for i := 0; i < len(flatCoords); i += stride {
		bbox.Update(flatCoords[i], flatCoords[i+1])
	}
}
