// Copyright 2024 The SpatialKit Authors.
//
// Use of this software is governed by the Apache License, Version 2.0,
// included in the file licenses/APL.txt.

// Package wkbio is the Well-Known Binary serialization surface for
// Geometry values. It controls the three per-call encoding choices the
// format leaves open: byte order, SRID emission, and hex versus raw
// binary representation, and provides stream helpers over caller-owned
// readers and writers.
package wkbio

import (
	"encoding/binary"
	"encoding/hex"
	"io"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spatialkit/wellknown/pkg/geo"
	"github.com/spatialkit/wellknown/pkg/geo/geoengine"
	"github.com/spatialkit/wellknown/pkg/geo/geopb"
	"github.com/twpayne/go-geom/encoding/ewkb"
)

// ErrEncoding marks errors returned when a geometry cannot be encoded.
var ErrEncoding = errors.New("error encoding geometry to WKB")

// ErrWKBReading marks errors returned when WKB input cannot be decoded:
// truncated buffers, unknown type codes, invalid byte order flags, and
// non-hex input on the hex path.
var ErrWKBReading = errors.New("error reading WKB")

type marshalConfig struct {
	byteOrder   binary.ByteOrder
	srid        geopb.SRID
	setSRID     bool
	includeSRID bool
}

// MarshalOption configures a single encode call.
type MarshalOption func(*marshalConfig)

// WithByteOrder sets the byte order of the encoded buffer. Only
// binary.BigEndian and binary.LittleEndian are valid. The default is the
// host native order.
func WithByteOrder(byteOrder binary.ByteOrder) MarshalOption {
	return func(cfg *marshalConfig) {
		cfg.byteOrder = byteOrder
	}
}

// WithSRID sets the SRID of the geometry before encoding, replacing any
// existing one, and emits it in the buffer.
func WithSRID(srid geopb.SRID) MarshalOption {
	return func(cfg *marshalConfig) {
		cfg.srid = srid
		cfg.setSRID = true
	}
}

// WithSRIDIncluded emits the SRID the geometry already carries, without
// changing its value. It is a no-op for geometries with no SRID.
func WithSRIDIncluded() MarshalOption {
	return func(cfg *marshalConfig) {
		cfg.includeSRID = true
	}
}

func makeMarshalConfig(opts []MarshalOption) marshalConfig {
	cfg := marshalConfig{byteOrder: geo.DefaultEncodingFormat}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// Marshal encodes a Geometry as WKB. The SRID is omitted unless
// WithSRID or WithSRIDIncluded requests it, in which case the extended
// SRID-flag layout is used. Geometries with Z or M ordinates carry the
// flag-style dimensionality bits in the type word, matching what
// Unmarshal accepts.
func Marshal(g geo.Geometry, opts ...MarshalOption) ([]byte, error) {
	cfg := makeMarshalConfig(opts)
	t, err := g.AsGeomT()
	if err != nil {
		return nil, markEncodingError(err)
	}
	if cfg.setSRID {
		if err := geoengine.SetSRID(t, cfg.srid); err != nil {
			return nil, markEncodingError(err)
		}
	}
	emitSRID := cfg.setSRID || (cfg.includeSRID && t.SRID() != 0)
	if !emitSRID && t.SRID() != 0 {
		if err := geoengine.SetSRID(t, 0); err != nil {
			return nil, markEncodingError(err)
		}
	}
	ret, err := ewkb.Marshal(t, cfg.byteOrder)
	if err != nil {
		return nil, markEncodingError(err)
	}
	return ret, nil
}

// MarshalHex encodes a Geometry as WKB expressed as uppercase
// hexadecimal digit pairs, two characters per byte, no separators.
func MarshalHex(g geo.Geometry, opts ...MarshalOption) (string, error) {
	ret, err := Marshal(g, opts...)
	if err != nil {
		return "", err
	}
	return strings.ToUpper(hex.EncodeToString(ret)), nil
}

// Unmarshal decodes a Geometry from WKB or EWKB bytes of either byte
// order, honoring the byte order flag of the buffer. An embedded SRID is
// attached to the result.
func Unmarshal(b []byte) (geo.Geometry, error) {
	g, err := geo.ParseGeometryFromEWKB(geopb.EWKB(b))
	if err != nil {
		return geo.Geometry{}, markReadingError(err)
	}
	return g, nil
}

// UnmarshalHex decodes a Geometry from hex-encoded WKB or EWKB. Raw
// binary input fails hex decoding rather than being misinterpreted.
func UnmarshalHex(str string) (geo.Geometry, error) {
	g, err := geo.ParseGeometryFromEWKBHex(str)
	if err != nil {
		return geo.Geometry{}, markReadingError(err)
	}
	return g, nil
}

// Write encodes a Geometry to the given writer as raw WKB bytes. The
// writer is owned by the caller; it is neither opened nor closed here.
func Write(w io.Writer, g geo.Geometry, opts ...MarshalOption) error {
	ret, err := Marshal(g, opts...)
	if err != nil {
		return err
	}
	_, err = w.Write(ret)
	return err
}

// WriteHex encodes a Geometry to the given writer as uppercase WKB hex.
func WriteHex(w io.Writer, g geo.Geometry, opts ...MarshalOption) error {
	ret, err := MarshalHex(g, opts...)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, ret)
	return err
}

// Read decodes a Geometry from the raw WKB contents of the given
// reader. The reader is owned by the caller.
func Read(r io.Reader) (geo.Geometry, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return geo.Geometry{}, markReadingError(err)
	}
	return Unmarshal(b)
}

// ReadHex decodes a Geometry from the hex contents of the given reader.
// A single trailing newline is tolerated.
func ReadHex(r io.Reader) (geo.Geometry, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return geo.Geometry{}, markReadingError(err)
	}
	return UnmarshalHex(strings.TrimSuffix(string(b), "\n"))
}

func markEncodingError(err error) error {
	return errors.Mark(err, ErrEncoding)
}

func markReadingError(err error) error {
	return errors.Mark(err, ErrWKBReading)
}
