package ingest

import (
	"encoding/csv"
	"io"
	"strconv"
	"strings"

	"github.com/YuminosukeSato/pricekit/core/frame"
	"github.com/YuminosukeSato/pricekit/pkg/errors"
)

// missingTokens are cell values read as the missing marker.
var missingTokens = map[string]struct{}{
	"":     {},
	"NA":   {},
	"N/A":  {},
	"NaN":  {},
	"nan":  {},
	"null": {},
	"NULL": {},
}

// IsMissingToken reports whether s is read as a missing cell.
func IsMissingToken(s string) bool {
	_, ok := missingTokens[strings.TrimSpace(s)]
	return ok
}

// ReadCSV はヘッダ付き CSV を読み込み、列ごとに型を推定します。
// 欠損でない値がすべて整数なら Int、すべて数値なら Float、それ以外は Text です。
// すべて欠損の列は Float になります。
func ReadCSV(r io.Reader) (*frame.Dataset, error) {
	reader := csv.NewReader(r)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, errors.Wrap(err, "parse csv")
	}
	if len(records) == 0 {
		return nil, errors.Wrap(errors.ErrEmptyData, "csv has no header")
	}
	header, rows := records[0], records[1:]

	cols := make([]*frame.Column, len(header))
	for j, name := range header {
		name = strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))
		kind := inferKind(rows, j)
		b := frame.NewBuilder(name, kind, len(rows))
		for _, rec := range rows {
			cell := rec[j]
			if IsMissingToken(cell) {
				b.AppendMissing()
				continue
			}
			if kind != frame.KindText {
				cell = strings.TrimSpace(cell)
			}
			b.AppendText(cell)
		}
		cols[j] = b.Build()
	}
	if len(cols) == 0 {
		return nil, errors.Wrap(errors.ErrEmptyData, "csv has no columns")
	}
	return frame.New(cols...)
}

func inferKind(rows [][]string, j int) frame.Kind {
	isInt, isFloat := true, true
	for _, rec := range rows {
		cell := rec[j]
		if IsMissingToken(cell) {
			continue
		}
		cell = strings.TrimSpace(cell)
		if isInt {
			if _, err := strconv.ParseInt(cell, 10, 64); err != nil {
				isInt = false
			}
		}
		if !isInt {
			if _, err := strconv.ParseFloat(cell, 64); err != nil {
				isFloat = false
				break
			}
		}
	}
	switch {
	case isInt && isFloat && hasPresent(rows, j):
		return frame.KindInt
	case isFloat:
		return frame.KindFloat
	default:
		return frame.KindText
	}
}

func hasPresent(rows [][]string, j int) bool {
	for _, rec := range rows {
		if !IsMissingToken(rec[j]) {
			return true
		}
	}
	return false
}
