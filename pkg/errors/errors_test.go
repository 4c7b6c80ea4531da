package errors

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestStructuredErrors(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		wantMsg string
		as      func(error) bool
	}{
		{
			name:    "missing column",
			err:     NewMissingColumnError("SplitExtract", "name"),
			wantMsg: "pricekit: SplitExtract: missing column 'name'",
			as: func(err error) bool {
				var target *MissingColumnError
				return As(err, &target) && target.Column == "name"
			},
		},
		{
			name:    "type mismatch",
			err:     NewTypeMismatchError("DifferenceFromConstant", "year", "numeric", "text"),
			wantMsg: "pricekit: DifferenceFromConstant: column 'year' has type text, expected numeric",
			as: func(err error) bool {
				var target *TypeMismatchError
				return As(err, &target) && target.Expected == "numeric"
			},
		},
		{
			name:    "unsupported cast",
			err:     NewUnsupportedCastError("seats", "complex128"),
			wantMsg: "pricekit: cannot cast column 'seats' to unsupported type 'complex128'",
			as: func(err error) bool {
				var target *UnsupportedCastError
				return As(err, &target) && target.Type == "complex128"
			},
		},
		{
			name:    "domain",
			err:     NewDomainError("LogTransform", "age", -3, "[-1, +Inf)"),
			wantMsg: "pricekit: LogTransform: column 'age' contains -3 outside domain [-1, +Inf)",
			as: func(err error) bool {
				var target *DomainError
				return As(err, &target) && target.Value == -3
			},
		},
		{
			name:    "index mismatch",
			err:     NewIndexMismatchError("JoinByIndex", 7),
			wantMsg: "pricekit: JoinByIndex: row with index 7 has no counterpart",
			as: func(err error) bool {
				var target *IndexMismatchError
				return As(err, &target) && target.Label == 7
			},
		},
		{
			name:    "invalid parameter",
			err:     NewInvalidParameterError("test_fraction", "must lie in (0, 1)", 1.5),
			wantMsg: "pricekit: invalid parameter 'test_fraction': must lie in (0, 1) (got: 1.5)",
			as: func(err error) bool {
				var target *InvalidParameterError
				return As(err, &target) && target.ParamName == "test_fraction"
			},
		},
		{
			name:    "stratification",
			err:     NewStratificationError("fuel", "class 'LPG' has 1 member"),
			wantMsg: "pricekit: cannot stratify on column 'fuel': class 'LPG' has 1 member",
			as: func(err error) bool {
				var target *StratificationError
				return As(err, &target)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Error() != tt.wantMsg {
				t.Errorf("Error() = %v, want %v", tt.err.Error(), tt.wantMsg)
			}
			if !tt.as(tt.err) {
				t.Error("error should be castable to its structured type")
			}
			formatted := fmt.Sprintf("%+v", tt.err)
			if !strings.Contains(formatted, "errors_test.go") {
				t.Error("Expected stack trace to contain test file name")
			}
		})
	}
}

func TestTransformErrorUnwrap(t *testing.T) {
	cause := NewMissingColumnError("MapValues", "owner")
	err := NewTransformError("map_owner", cause)

	if !strings.Contains(err.Error(), "transform 'map_owner' failed") {
		t.Errorf("unexpected message %q", err.Error())
	}

	var te *TransformError
	if !As(err, &te) || te.Key != "map_owner" {
		t.Fatal("expected *TransformError with key map_owner")
	}

	var mc *MissingColumnError
	if !As(err, &mc) || mc.Column != "owner" {
		t.Error("cause should stay reachable through the TransformError")
	}
}

func TestWrapAndIs(t *testing.T) {
	wrapped := Wrapf(ErrEmptyData, "in %s: expected %d rows, got %d", "Fit", 10, 0)

	if !Is(wrapped, ErrEmptyData) {
		t.Error("Expected Is(wrapped, ErrEmptyData) to be true")
	}
	if !strings.Contains(wrapped.Error(), "in Fit: expected 10 rows, got 0") {
		t.Error("Expected wrapped error to contain wrapping message")
	}
	if !Is(Wrap(wrapped, "outer"), ErrEmptyData) {
		t.Error("double wrapping should keep the sentinel")
	}
}

func TestWarnRouting(t *testing.T) {
	var got []error
	SetWarningHandler(func(w error) { got = append(got, w) })
	defer SetWarningHandler(func(w error) {})

	Warn(NewUnknownStrategyWarning("outlier.Detector", "winsorize", "remove", "cap"))
	if len(got) != 1 {
		t.Fatalf("handler called %d times, want 1", len(got))
	}
	if !strings.Contains(got[0].Error(), "unknown method 'winsorize'") {
		t.Errorf("unexpected warning text %q", got[0].Error())
	}

	var buf bytes.Buffer
	zl := zerolog.New(&buf)
	SetZerologWarnFunc(func(w error) {
		if m, ok := w.(zerolog.LogObjectMarshaler); ok {
			zl.Warn().EmbedObject(m).Msg(w.Error())
			return
		}
		zl.Warn().Msg(w.Error())
	})
	defer SetZerologWarnFunc(nil)

	Warn(NewUndefinedStatisticWarning("seats", "mode", "all values missing"))
	if len(got) != 1 {
		t.Error("zerolog func should take precedence over the plain handler")
	}
	out := buf.String()
	if !strings.Contains(out, `"statistic":"mode"`) || !strings.Contains(out, `"type":"UndefinedStatisticWarning"`) {
		t.Errorf("zerolog output missing structured fields: %s", out)
	}
}

func TestDataConversionWarning(t *testing.T) {
	w := NewDataConversionWarning("mileage", "text", "float", 3, "unparsable after unit stripping")
	want := "column 'mileage': 3 value(s) converted from text to float. Reason: unparsable after unit stripping"
	if w.Error() != want {
		t.Errorf("Error() = %v, want %v", w.Error(), want)
	}
}

func TestNumericalHelpers(t *testing.T) {
	if got := ClipValue(5, 0, 3); got != 3 {
		t.Errorf("ClipValue upper = %v", got)
	}
	if got := ClipValue(-1, 0, 3); got != 0 {
		t.Errorf("ClipValue lower = %v", got)
	}
	if _, ok := SafeDivide(1, 0); ok {
		t.Error("SafeDivide by zero should report !ok")
	}
	if q, ok := SafeDivide(6, 3); !ok || q != 2 {
		t.Errorf("SafeDivide(6,3) = %v, %v", q, ok)
	}
}
