// Package pricekit prepares a used-car listing dataset for price regression.
//
// Every preparation step is a swappable strategy that takes a dataset and
// returns a new one. Inputs are never modified. Row identity is kept through
// stable index labels, so a split can always be joined back to its source.
//
// # Quick Start
//
//	package main
//
//	import (
//	    "log"
//
//	    "github.com/YuminosukeSato/pricekit/impute"
//	    "github.com/YuminosukeSato/pricekit/ingest"
//	    "github.com/YuminosukeSato/pricekit/model_selection"
//	    "github.com/YuminosukeSato/pricekit/outlier"
//	    "github.com/YuminosukeSato/pricekit/preprocessing"
//	)
//
//	func main() {
//	    ds, err := ingest.ZipIngestor{}.Ingest("data/archive.zip")
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    if ds, err = impute.NewHandler(impute.DropMissing{}).Handle(ds); err != nil {
//	        log.Fatal(err)
//	    }
//
//	    registry, _ := preprocessing.DefaultRegistry(2025)
//	    if ds, err = registry.Apply(ds, []string{"extract_brand", "age", "drop_year"}); err != nil {
//	        log.Fatal(err)
//	    }
//
//	    detector := outlier.NewDetector(outlier.ZScore{Threshold: 3})
//	    if ds, err = detector.Filter(ds, "selling_price", outlier.MethodRemove); err != nil {
//	        log.Fatal(err)
//	    }
//
//	    split, err := model_selection.TrainTestSplit(ds, "selling_price", 0.2, 42)
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    log.Println(split.XTrain.NRows(), split.XTest.NRows())
//	}
//
// # Packages
//
//   - core/frame: immutable columnar dataset with a missing marker and index labels
//   - core/model: strategy context and stage observers
//   - core/parallel: per-column fan-out
//   - preprocessing: column transforms, the transform registry and scalers
//   - impute: missing-value strategies
//   - outlier: z-score, robust z-score and IQR detection, removal and capping
//   - model_selection: train/test, stratified and k-fold splits
//   - ingest: zip archive and CSV ingestion
//   - pkg/errors, pkg/log: typed errors, warnings and structured logging
//
// The pricekit command (cmd/pricekit) runs a whole preparation from a YAML
// pipeline file.
package pricekit
