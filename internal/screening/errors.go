package screening

import "errors"

// ErrNoAssessments is returned when a score is requested before any data exists.
var ErrNoAssessments = errors.New("no assessments recorded")
