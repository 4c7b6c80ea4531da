// Package ingest は生データを読み込み frame.Dataset に変換します。
//
// 対応する入力は CSV ファイル1つを含む zip アーカイブと、CSV ファイルそのものです。
package ingest

import (
	"archive/zip"
	"os"
	"path/filepath"
	"strings"

	"github.com/YuminosukeSato/pricekit/core/frame"
	"github.com/YuminosukeSato/pricekit/pkg/errors"
	"github.com/YuminosukeSato/pricekit/pkg/log"
)

var (
	// ErrNoCSV is returned when an archive holds no CSV file.
	ErrNoCSV = errors.New("no CSV file found in the archive")
	// ErrMultipleCSV is returned when an archive holds more than one CSV file.
	ErrMultipleCSV = errors.New("multiple CSV files found in the archive")
	// ErrUnsupportedExtension is returned by ForExtension for unknown file types.
	ErrUnsupportedExtension = errors.New("no ingestor for file extension")
)

// Ingestor loads a dataset from a path.
type Ingestor interface {
	Ingest(path string) (*frame.Dataset, error)
}

// ForExtension returns the ingestor for a file extension such as ".zip".
func ForExtension(ext string) (Ingestor, error) {
	switch strings.ToLower(ext) {
	case ".zip":
		return ZipIngestor{}, nil
	case ".csv":
		return CSVIngestor{}, nil
	default:
		return nil, errors.Wrapf(ErrUnsupportedExtension, "%q", ext)
	}
}

// ForPath returns the ingestor matching the extension of path.
func ForPath(path string) (Ingestor, error) {
	return ForExtension(filepath.Ext(path))
}

// ZipIngestor は CSV ファイルを1つだけ含む zip アーカイブを読み込みます。
// アーカイブは展開せずメモリ上で読みます。
type ZipIngestor struct{}

// Ingest implements Ingestor.
func (ZipIngestor) Ingest(path string) (*frame.Dataset, error) {
	if !strings.EqualFold(filepath.Ext(path), ".zip") {
		return nil, errors.NewInvalidParameterError("path", "expected a .zip file", path)
	}
	r, err := zip.OpenReader(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open archive %s", path)
	}
	defer r.Close()

	var csvFiles []*zip.File
	for _, f := range r.File {
		if f.FileInfo().IsDir() || strings.HasPrefix(f.Name, "__MACOSX/") {
			continue
		}
		if strings.EqualFold(filepath.Ext(f.Name), ".csv") {
			csvFiles = append(csvFiles, f)
		}
	}
	switch len(csvFiles) {
	case 0:
		return nil, errors.Wrapf(ErrNoCSV, "%s", path)
	case 1:
	default:
		names := make([]string, len(csvFiles))
		for i, f := range csvFiles {
			names[i] = f.Name
		}
		return nil, errors.Wrapf(ErrMultipleCSV, "%s: %s", path, strings.Join(names, ", "))
	}

	rc, err := csvFiles[0].Open()
	if err != nil {
		return nil, errors.Wrapf(err, "open %s in %s", csvFiles[0].Name, path)
	}
	defer rc.Close()

	ds, err := ReadCSV(rc)
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", csvFiles[0].Name)
	}
	logIngested(path, csvFiles[0].Name, ds)
	return ds, nil
}

// CSVIngestor reads a plain CSV file.
type CSVIngestor struct{}

// Ingest implements Ingestor.
func (CSVIngestor) Ingest(path string) (*frame.Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", path)
	}
	defer f.Close()

	ds, err := ReadCSV(f)
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", path)
	}
	logIngested(path, filepath.Base(path), ds)
	return ds, nil
}

func logIngested(path, member string, ds *frame.Dataset) {
	log.GetLoggerWithName("ingest").Info("Ingested dataset",
		log.StageKey, log.StageIngest,
		"path", path,
		"file", member,
		log.RowsKey, ds.NRows(),
		log.ColumnsKey, ds.NCols(),
	)
}
