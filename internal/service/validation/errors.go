package validation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mrled/randname/internal/model"
)

// ErrInvalidDataset matches every aggregate validation failure
var ErrInvalidDataset = errors.New("invalid dataset")

// MissingRootError is returned when the dataset root is absent or not a directory
type MissingRootError struct {
	Path string
	Err  error
}

func (e *MissingRootError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("dataset root %s does not exist: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("dataset root %s is not a directory", e.Path)
}

func (e *MissingRootError) Unwrap() error {
	return e.Err
}

// MissingInfoFileError reports a country directory without info.json
type MissingInfoFileError struct {
	Path string
}

func (e *MissingInfoFileError) Error() string {
	return fmt.Sprintf("%s: missing info file", e.Path)
}

// MissingCategoryDirectoryError reports a country without first_names/ or last_names/
type MissingCategoryDirectoryError struct {
	Path string
}

func (e *MissingCategoryDirectoryError) Error() string {
	return fmt.Sprintf("%s: missing category directory", e.Path)
}

// SchemaError reports a file whose content does not match its schema
type SchemaError struct {
	Path string
	Err  error
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e *SchemaError) Unwrap() error {
	return e.Err
}

// GenderMismatchError reports a difference between the sex codes declared in
// info.json and the ones found in bucket file names
type GenderMismatchError struct {
	Path     string
	Category model.Category
	Declared []string
	Found    []string
}

func (e *GenderMismatchError) Error() string {
	return fmt.Sprintf("%s: info file declares [%s] for %s, but directory holds [%s]",
		e.Path, strings.Join(e.Declared, ", "), e.Category.Dir(), strings.Join(e.Found, ", "))
}

// FileNamePatternError reports a bucket file whose name is not {year}_{declared sex}
type FileNamePatternError struct {
	Path    string
	Pattern string
}

func (e *FileNamePatternError) Error() string {
	return fmt.Sprintf("%s: file name does not match %s", e.Path, e.Pattern)
}

// Error aggregates every problem found in one validation pass
type Error struct {
	Root     string
	Problems []error
}

func (e *Error) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "dataset %s is invalid: %d problem(s)", e.Root, len(e.Problems))
	for _, p := range e.Problems {
		b.WriteString("\n  - ")
		b.WriteString(p.Error())
	}
	return b.String()
}

func (e *Error) Unwrap() []error {
	return e.Problems
}

func (e *Error) Is(target error) bool {
	return target == ErrInvalidDataset
}
