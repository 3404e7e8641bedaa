package cluster

import (
	"errors"
	"fmt"
)

// Collection errors
var (
	ErrNotFound    = errors.New("cluster not found")
	ErrDuplicateID = errors.New("cluster id already exists")
)

// ClusterError provides structured error information for collection operations.
type ClusterError struct {
	Op        string // Operation that failed (e.g., "AddCluster", "GetCluster")
	ClusterID string // Cluster id (if applicable)
	Protein   string // Protein name (if applicable)
	Sequence  string // Peptide sequence (lookups by sequence)
	Cause     error  // Underlying error
}

// Error implements the error interface.
func (e *ClusterError) Error() string {
	switch {
	case e.ClusterID != "":
		return fmt.Sprintf("%s cluster %s: %v", e.Op, e.ClusterID, e.Cause)
	case e.Sequence != "":
		return fmt.Sprintf("%s peptide %s (protein %s): %v", e.Op, e.Sequence, e.Protein, e.Cause)
	case e.Protein != "":
		return fmt.Sprintf("%s protein %s: %v", e.Op, e.Protein, e.Cause)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Cause)
}

// Unwrap returns the underlying cause for error chain support.
func (e *ClusterError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target error matches this error's cause.
func (e *ClusterError) Is(target error) bool {
	if target == nil {
		return false
	}
	return errors.Is(e.Cause, target)
}
