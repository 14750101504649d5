// Copyright 2024 The SpatialKit Authors.
//
// Use of this software is governed by the Apache License, Version 2.0,
// included in the file licenses/APL.txt.

// geoconv converts geometries between WKB, WKB hex, WKT, EWKT, GeoJSON
// and KML. It reads from a file or stdin and writes to a file or stdout.
package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spatialkit/wellknown/pkg/geo"
	"github.com/spatialkit/wellknown/pkg/geo/geopb"
	"github.com/spatialkit/wellknown/pkg/geo/wkbio"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

type optsT struct {
	from        string
	to          string
	srid        int32
	includeSRID bool
	byteOrder   string
}

var opts optsT

func registerFlags(fs *pflag.FlagSet) {
	fs.StringVar(&opts.from, "from", "auto", "Input format: auto|wkb|wkbhex|wkt|ewkt")
	fs.StringVar(&opts.to, "to", "wkbhex", "Output format: wkb|wkbhex|wkt|ewkt|geojson|kml|geohash")
	fs.Int32Var(&opts.srid, "srid", 0, "Set the SRID of the geometry before encoding and emit it")
	fs.BoolVar(&opts.includeSRID, "include-srid", false, "Emit the SRID the geometry already carries")
	fs.StringVar(&opts.byteOrder, "byte-order", "", "Byte order of WKB output: ndr|xdr (default host order)")
}

func init() {
	registerFlags(rootCmd.Flags())
}

var rootCmd = &cobra.Command{
	Use:           "geoconv [input] [output]",
	Short:         "convert geometries between WKB, WKB hex, WKT, EWKT, GeoJSON and KML",
	Args:          cobra.MaximumNArgs(2),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		in := io.Reader(os.Stdin)
		if len(args) >= 1 && args[0] != "-" {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()
			in = f
		}
		out := io.Writer(os.Stdout)
		if len(args) == 2 {
			f, err := os.Create(args[1])
			if err != nil {
				return err
			}
			defer f.Close()
			out = f
		}
		g, err := readGeometry(in, opts.from)
		if err != nil {
			return err
		}
		return writeGeometry(out, g, cmd.Flags().Changed("srid"))
	},
	Example: `  geoconv --from wkt --to wkbhex --srid 4326 point.wkt
  geoconv --from wkbhex --to geojson < point.hex`,
}

func readGeometry(r io.Reader, format string) (geo.Geometry, error) {
	switch format {
	case "wkb":
		return wkbio.Read(r)
	case "wkbhex":
		return wkbio.ReadHex(r)
	case "wkt", "ewkt":
		b, err := io.ReadAll(r)
		if err != nil {
			return geo.Geometry{}, err
		}
		return geo.ParseGeometryFromEWKT(geopb.EWKT(strings.TrimSpace(string(b))), geopb.UnknownSRID)
	case "auto":
		b, err := io.ReadAll(r)
		if err != nil {
			return geo.Geometry{}, err
		}
		return geo.ParseGeometry(strings.TrimSpace(string(b)))
	default:
		return geo.Geometry{}, errors.Newf("unknown input format: %q", format)
	}
}

func marshalOpts(sridChanged bool) []wkbio.MarshalOption {
	var ret []wkbio.MarshalOption
	if sridChanged {
		ret = append(ret, wkbio.WithSRID(geopb.SRID(opts.srid)))
	}
	if opts.includeSRID {
		ret = append(ret, wkbio.WithSRIDIncluded())
	}
	if opts.byteOrder != "" {
		ret = append(ret, wkbio.WithByteOrder(geo.StringToByteOrder(opts.byteOrder)))
	}
	return ret
}

func writeGeometry(w io.Writer, g geo.Geometry, sridChanged bool) error {
	switch opts.to {
	case "wkb":
		return wkbio.Write(w, g, marshalOpts(sridChanged)...)
	case "wkbhex":
		if err := wkbio.WriteHex(w, g, marshalOpts(sridChanged)...); err != nil {
			return err
		}
		_, err := fmt.Fprintln(w)
		return err
	case "wkt":
		wkt, err := geo.SpatialObjectToWKT(g.SpatialObject(), -1)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, wkt)
		return err
	case "ewkt":
		ewkt, err := geo.SpatialObjectToEWKT(g.SpatialObject(), -1)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, ewkt)
		return err
	case "geojson":
		json, err := geo.SpatialObjectToGeoJSON(
			g.SpatialObject(),
			geo.DefaultGeoJSONDecimalDigits,
			geo.SpatialObjectToGeoJSONFlagShortCRSIfNot4326,
		)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(json))
		return err
	case "kml":
		kml, err := geo.SpatialObjectToKML(g.SpatialObject())
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, kml)
		return err
	case "geohash":
		gh, err := geo.SpatialObjectToGeoHash(g.SpatialObject(), geo.GeoHashAutoPrecision)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, gh)
		return err
	default:
		return errors.Newf("unknown output format: %q", opts.to)
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
