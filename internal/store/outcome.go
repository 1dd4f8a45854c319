package store

// Outcome is the classification of a storage error.
type Outcome int

const (
	// OutcomeOther is any failure the store cannot explain.
	OutcomeOther Outcome = iota
	// OutcomeRowNotFound means a single-row read matched nothing.
	OutcomeRowNotFound
	// OutcomeConstraintViolation means an integrity constraint, usually a
	// foreign key, rejected the write.
	OutcomeConstraintViolation
	// OutcomeInvalidValue means the store rejected a value's type or range.
	OutcomeInvalidValue
)

func (o Outcome) String() string {
	switch o {
	case OutcomeRowNotFound:
		return "row_not_found"
	case OutcomeConstraintViolation:
		return "constraint_violation"
	case OutcomeInvalidValue:
		return "invalid_value"
	default:
		return "other"
	}
}
