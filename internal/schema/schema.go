// Package schema decodes dataset files into typed records.
//
// The accepted shape of every file is declared once, as struct tags on the
// document types below, and enforced by a shared validator instance. Decoding
// is strict: unknown fields, wrongly typed values and trailing data are all
// schema violations.
package schema

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/mrled/randname/internal/model"
)

// ErrSchema marks every error produced by this package
var ErrSchema = errors.New("schema violation")

// infoDocument is the on-disk form of info.json
type infoDocument struct {
	Country    *string  `json:"country" validate:"required"`
	FirstNames []string `json:"first_names" validate:"required,min=1,dive,required"`
	LastNames  []string `json:"last_names" validate:"required,min=1,dive,required"`
}

// bucketDocument is the on-disk form of a {year}_{sex} bucket file
type bucketDocument struct {
	Names  []string  `json:"Names" validate:"required,min=1"`
	Totals []float64 `json:"Totals" validate:"required,min=1"`
}

var validate = sync.OnceValue(func() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		return name
	})
	v.RegisterStructValidation(validateBucket, bucketDocument{})
	return v
})

// validateBucket enforces the rules that span both bucket fields
func validateBucket(sl validator.StructLevel) {
	doc := sl.Current().Interface().(bucketDocument)
	if len(doc.Names) != len(doc.Totals) {
		sl.ReportError(doc.Totals, "Totals", "Totals", "eqlen_names", "")
		return
	}
	for i := 1; i < len(doc.Totals); i++ {
		if doc.Totals[i] < doc.Totals[i-1] {
			sl.ReportError(doc.Totals, "Totals", "Totals", "nondecreasing", "")
			return
		}
	}
}

// DecodeInfo reads and validates an info.json document
func DecodeInfo(r io.Reader) (*model.DatasetInfo, error) {
	var doc infoDocument
	if err := decode(r, &doc); err != nil {
		return nil, err
	}

	info := &model.DatasetInfo{
		Country:    *doc.Country,
		FirstNames: toSexes(doc.FirstNames),
		LastNames:  toSexes(doc.LastNames),
	}
	return info, nil
}

// DecodeBucket reads and validates a bucket file
func DecodeBucket(r io.Reader) (*model.BucketFile, error) {
	var doc bucketDocument
	if err := decode(r, &doc); err != nil {
		return nil, err
	}
	return &model.BucketFile{Names: doc.Names, Totals: doc.Totals}, nil
}

// EncodeBucket writes a bucket file in the layout DecodeBucket accepts
func EncodeBucket(w io.Writer, b *model.BucketFile) error {
	doc := bucketDocument{Names: b.Names, Totals: b.Totals}
	if err := validate().Struct(doc); err != nil {
		return fmt.Errorf("%w: %s", ErrSchema, describe(err))
	}
	return json.NewEncoder(w).Encode(doc)
}

func decode(r io.Reader, doc any) error {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(doc); err != nil {
		return fmt.Errorf("%w: %v", ErrSchema, err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: unexpected data after top-level object", ErrSchema)
	}
	if err := validate().Struct(doc); err != nil {
		return fmt.Errorf("%w: %s", ErrSchema, describe(err))
	}
	return nil
}

// describe flattens validator errors into "field: rule" pairs
func describe(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}

	var buf bytes.Buffer
	for i, fe := range verrs {
		if i > 0 {
			buf.WriteString("; ")
		}
		fmt.Fprintf(&buf, "%s: %s", fe.Field(), rule(fe))
	}
	return buf.String()
}

func rule(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return "must have at least " + fe.Param() + " item(s)"
	case "eqlen_names":
		return "must have the same length as Names"
	case "nondecreasing":
		return "must be non-decreasing"
	default:
		return "failed " + fe.Tag()
	}
}

func toSexes(codes []string) model.Sexes {
	out := make(model.Sexes, len(codes))
	for i, c := range codes {
		out[i] = model.Sex(c)
	}
	return out
}
