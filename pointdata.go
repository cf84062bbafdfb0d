package noctilucence

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
)

// LoadPointData reads 2D measurement points from CSV, one "x,y" record per
// line, in mm. Flatness traces and surface profiles are exchanged in this
// format.
func LoadPointData(r io.Reader) ([]Vec2, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = 2
	cr.TrimLeadingSpace = true

	var points []Vec2
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("point data: %w", err)
		}
		x, err := strconv.ParseFloat(rec[0], 64)
		if err != nil {
			return nil, fmt.Errorf("point data record %d: %w", len(points)+1, err)
		}
		y, err := strconv.ParseFloat(rec[1], 64)
		if err != nil {
			return nil, fmt.Errorf("point data record %d: %w", len(points)+1, err)
		}
		points = append(points, Vec2{x, y})
	}
	return points, nil
}

// WritePointData writes points in the format LoadPointData reads.
func WritePointData(w io.Writer, points []Vec2) error {
	cw := csv.NewWriter(w)
	for _, p := range points {
		rec := []string{
			strconv.FormatFloat(p.X, 'g', -1, 64),
			strconv.FormatFloat(p.Y, 'g', -1, 64),
		}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("point data: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}
