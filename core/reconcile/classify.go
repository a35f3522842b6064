package reconcile

import (
	"errors"

	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
)

// FailureKind classifies a failed explicit-key write.
type FailureKind int

const (
	FailureNone FailureKind = iota
	FailureDuplicateKey
	FailureOutOfRange
	FailureDataTooLong
	FailureOther
)

// MySQL server error numbers that qualify for the auto-assign fallback.
const (
	mysqlErrDupEntry       = 1062
	mysqlErrWarnOutOfRange = 1264
	mysqlErrDataTooLong    = 1406
	mysqlErrDataOutOfRange = 1690
)

func (k FailureKind) String() string {
	switch k {
	case FailureNone:
		return "none"
	case FailureDuplicateKey:
		return "duplicate_key"
	case FailureOutOfRange:
		return "out_of_range"
	case FailureDataTooLong:
		return "data_too_long"
	default:
		return "other"
	}
}

// Recoverable reports whether the record is retried with an assigned key.
func (k FailureKind) Recoverable() bool {
	switch k {
	case FailureDuplicateKey, FailureOutOfRange, FailureDataTooLong:
		return true
	default:
		return false
	}
}

// Classifier maps a write error to its kind.
type Classifier func(err error) FailureKind

// Classify is the default Classifier. It recognizes GORM's translated duplicate
// key error and the MySQL server error numbers for duplicate entry, out of range
// values and data too long.
func Classify(err error) FailureKind {
	if err == nil {
		return FailureNone
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return FailureDuplicateKey
	}
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		switch myErr.Number {
		case mysqlErrDupEntry:
			return FailureDuplicateKey
		case mysqlErrWarnOutOfRange, mysqlErrDataOutOfRange:
			return FailureOutOfRange
		case mysqlErrDataTooLong:
			return FailureDataTooLong
		}
	}
	return FailureOther
}
