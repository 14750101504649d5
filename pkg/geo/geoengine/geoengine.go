// Copyright 2024 The SpatialKit Authors.
//
// Use of this software is governed by the Apache License, Version 2.0,
// included in the file licenses/APL.txt.

// Package geoengine is the facade over the underlying geometry engine.
// All functionality that is delegated wholesale to the engine (WKT
// reading, empty point handling) goes through this package, so that
// callers can probe what the linked engine version supports instead of
// hardcoding version gates.
package geoengine

import (
	"encoding/binary"
	"runtime/debug"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/spatialkit/wellknown/pkg/geo/geopb"
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/ewkb"
	"github.com/twpayne/go-geom/encoding/wkt"
)

const enginePath = "github.com/twpayne/go-geom"

// Capabilities describes what the linked geometry engine supports.
type Capabilities struct {
	// Version is the engine module version, or "(devel)" when built
	// outside a module context.
	Version string
	// EmptyPointNaN is set when the engine can encode and decode empty
	// points using the NaN coordinate sentinel.
	EmptyPointNaN bool
}

var (
	initOnce sync.Once
	caps     Capabilities
)

// EnsureInit probes the engine once and returns its capabilities.
func EnsureInit() Capabilities {
	initOnce.Do(func() {
		caps = Capabilities{
			Version:       engineVersion(),
			EmptyPointNaN: probeEmptyPointNaN(),
		}
	})
	return caps
}

// EmptyPointNaNSupported returns whether the engine round trips empty
// points through the NaN coordinate sentinel.
func EmptyPointNaNSupported() bool {
	return EnsureInit().EmptyPointNaN
}

// Version returns the engine version string.
func Version() string {
	return EnsureInit().Version
}

func engineVersion() string {
	if bi, ok := debug.ReadBuildInfo(); ok {
		for _, dep := range bi.Deps {
			if dep.Path == enginePath {
				return dep.Version
			}
		}
	}
	return "(devel)"
}

// probeEmptyPointNaN round trips POINT EMPTY through the engine's WKT
// reader and WKB codec and checks it decodes back to an empty point.
func probeEmptyPointNaN() bool {
	g, err := wkt.Unmarshal("POINT EMPTY")
	if err != nil {
		return false
	}
	b, err := ewkb.Marshal(g, binary.LittleEndian)
	if err != nil {
		return false
	}
	t, err := ewkb.Unmarshal(b)
	if err != nil {
		return false
	}
	point, ok := t.(*geom.Point)
	return ok && len(point.FlatCoords()) == 0
}

// WKTToEWKB parses the given WKT using the engine's reader and returns
// little-endian EWKB carrying the given SRID.
func WKTToEWKB(t geopb.WKT, srid geopb.SRID) (geopb.EWKB, error) {
	g, err := wkt.Unmarshal(string(t))
	if err != nil {
		return nil, errors.Wrap(err, "error parsing WKT")
	}
	if srid != 0 {
		if err := SetSRID(g, srid); err != nil {
			return nil, err
		}
	}
	ret, err := ewkb.Marshal(g, binary.LittleEndian)
	if err != nil {
		return nil, err
	}
	return geopb.EWKB(ret), nil
}

// SetSRID sets the SRID of a given geom.T.
// Ideally SetSRID is an interface of geom.T, but that is not the case.
func SetSRID(t geom.T, srid geopb.SRID) error {
	switch t := t.(type) {
	case *geom.Point:
		t.SetSRID(int(srid))
	case *geom.LineString:
		t.SetSRID(int(srid))
	case *geom.Polygon:
		t.SetSRID(int(srid))
	case *geom.MultiPoint:
		t.SetSRID(int(srid))
	case *geom.MultiLineString:
		t.SetSRID(int(srid))
	case *geom.MultiPolygon:
		t.SetSRID(int(srid))
	case *geom.GeometryCollection:
		t.SetSRID(int(srid))
	default:
		return errors.AssertionFailedf("unknown geom type: %T", t)
	}
	return nil
}
