package dataset

import "errors"

var (
	// ErrInvalidInput reports an argument that is not a usable table (nil, or a frame carrying an error).
	ErrInvalidInput = errors.New("invalid input: not a tabular dataset")
	// ErrEmptyInput reports a dataset with zero rows or zero columns.
	ErrEmptyInput = errors.New("empty input: dataset has no rows or columns")
	// ErrInvalidThreshold reports a threshold outside its accepted range.
	ErrInvalidThreshold = errors.New("invalid threshold")
	// ErrUnknownColumn reports a column name that is not part of the dataset.
	ErrUnknownColumn = errors.New("unknown column")
	// ErrNotBinary reports a column passed to binary encoding that does not hold exactly two values.
	ErrNotBinary = errors.New("column is not binary")
	// ErrDuplicateColumn reports an encoded indicator whose name is already taken by another column.
	ErrDuplicateColumn = errors.New("duplicate column name")
	// ErrNoColumnsLeft reports a drop that would remove every column.
	ErrNoColumnsLeft = errors.New("cannot drop every column")
)
