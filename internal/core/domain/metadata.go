package domain

import "sort"

// InvalidLockfileReason identifies one way a lockfile can disagree with the
// current resolve configuration. A validation run reports every applicable
// reason, not just the first.
type InvalidLockfileReason string

const (
	// InterpreterConstraintsMismatch means the user's interpreter constraints
	// admit versions the lockfile was not generated for.
	InterpreterConstraintsMismatch InvalidLockfileReason = "INTERPRETER_CONSTRAINTS_MISMATCH"
	// RequirementsMismatch means the requirement sets disagree.
	RequirementsMismatch InvalidLockfileReason = "REQUIREMENTS_MISMATCH"
	// ManylinuxMismatch means the manylinux platform setting changed.
	ManylinuxMismatch InvalidLockfileReason = "MANYLINUX_MISMATCH"
	// ConstraintsFileMismatch means the requirement constraints changed.
	ConstraintsFileMismatch InvalidLockfileReason = "CONSTRAINTS_FILE_MISMATCH"
	// OnlyBinaryMismatch means the only-binary policy changed.
	OnlyBinaryMismatch InvalidLockfileReason = "ONLY_BINARY_MISMATCH"
	// NoBinaryMismatch means the no-binary policy changed.
	NoBinaryMismatch InvalidLockfileReason = "NO_BINARY_MISMATCH"
)

// Description returns a user-facing explanation for the mismatch.
func (r InvalidLockfileReason) Description() string {
	switch r {
	case InterpreterConstraintsMismatch:
		return "the interpreter constraints have changed since the lockfile was generated"
	case RequirementsMismatch:
		return "the requirements have changed since the lockfile was generated"
	case ManylinuxMismatch:
		return "the manylinux setting has changed since the lockfile was generated"
	case ConstraintsFileMismatch:
		return "the requirement constraints have changed since the lockfile was generated"
	case OnlyBinaryMismatch:
		return "the only-binary setting has changed since the lockfile was generated"
	case NoBinaryMismatch:
		return "the no-binary setting has changed since the lockfile was generated"
	default:
		return "the lockfile no longer matches the current configuration"
	}
}

// ValidationResult is the outcome of checking a lockfile's metadata against
// the current resolve configuration. An empty reason set means valid.
type ValidationResult struct {
	failureReasons map[InvalidLockfileReason]struct{}
}

func newValidationResult(reasons ...InvalidLockfileReason) ValidationResult {
	set := make(map[InvalidLockfileReason]struct{}, len(reasons))
	for _, r := range reasons {
		set[r] = struct{}{}
	}
	return ValidationResult{failureReasons: set}
}

// Valid reports whether no mismatches were found.
func (r ValidationResult) Valid() bool {
	return len(r.failureReasons) == 0
}

// Has reports whether the given reason was recorded.
func (r ValidationResult) Has(reason InvalidLockfileReason) bool {
	_, ok := r.failureReasons[reason]
	return ok
}

// Reasons returns all recorded mismatch reasons in stable order.
func (r ValidationResult) Reasons() []InvalidLockfileReason {
	out := make([]InvalidLockfileReason, 0, len(r.failureReasons))
	for reason := range r.failureReasons {
		out = append(out, reason)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// ValidationRequest carries the caller's live resolve configuration for a
// validation run. ExpectedInvalidationDigest must be precomputed from the
// current requirements: metadata v1 stored only a digest, so the comparison
// happens on digests rather than requirement sets.
type ValidationRequest struct {
	IsTool                     bool
	ExpectedInvalidationDigest string
	UserInterpreterConstraints InterpreterConstraints
	InterpreterUniverse        []string
	UserRequirements           RequirementSet
	Manylinux                  *string
	RequirementConstraints     RequirementSet
	OnlyBinary                 RequirementSet
	NoBinary                   RequirementSet
}

// Metadata is the resolve metadata embedded in a lockfile header. It is a
// closed union over the three header generations; the version tag selects
// which fields exist and which validation algorithm applies. Records are
// immutable after construction.
type Metadata interface {
	// Version returns the metadata generation tag.
	Version() int

	// IsValidFor compares the stored resolve conditions against the caller's
	// current configuration and reports every mismatch. The error return is
	// reserved for unparseable constraint expressions or universe entries;
	// ordinary mismatches are reported through the result.
	IsValidFor(req ValidationRequest) (ValidationResult, error)
}

// NewMetadata constructs a metadata record of the newest generation from the
// live resolve configuration.
func NewMetadata(
	validForInterpreterConstraints InterpreterConstraints,
	requirements RequirementSet,
	manylinux *string,
	requirementConstraints RequirementSet,
	onlyBinary RequirementSet,
	noBinary RequirementSet,
) *MetadataV3 {
	return &MetadataV3{
		MetadataV2: MetadataV2{
			ValidForInterpreterConstraints: validForInterpreterConstraints,
			GeneratedWithRequirements:      requirements,
		},
		Manylinux:              manylinux,
		RequirementConstraints: requirementConstraints,
		OnlyBinary:             onlyBinary,
		NoBinary:               noBinary,
	}
}

// MetadataV1 is the first header generation. It stores only a digest of the
// requirements, so requirement drift is detected by digest comparison.
type MetadataV1 struct {
	ValidForInterpreterConstraints InterpreterConstraints
	RequirementsDigest             string
}

// Version implements Metadata.
func (m *MetadataV1) Version() int { return 1 }

// IsValidFor implements Metadata.
func (m *MetadataV1) IsValidFor(req ValidationRequest) (ValidationResult, error) {
	var reasons []InvalidLockfileReason

	if m.RequirementsDigest != req.ExpectedInvalidationDigest {
		reasons = append(reasons, RequirementsMismatch)
	}

	ok, err := m.ValidForInterpreterConstraints.Contains(req.UserInterpreterConstraints, req.InterpreterUniverse)
	if err != nil {
		return ValidationResult{}, err
	}
	if !ok {
		reasons = append(reasons, InterpreterConstraintsMismatch)
	}

	return newValidationResult(reasons...), nil
}

// MetadataV2 is the second header generation. It stores the requirement set
// itself, which allows tool lockfiles (exact match) and user lockfiles
// (superset) to be validated differently.
type MetadataV2 struct {
	ValidForInterpreterConstraints InterpreterConstraints
	GeneratedWithRequirements      RequirementSet
}

// Version implements Metadata.
func (m *MetadataV2) Version() int { return 2 }

// IsValidFor implements Metadata.
func (m *MetadataV2) IsValidFor(req ValidationRequest) (ValidationResult, error) {
	reasons, err := m.validate(req)
	if err != nil {
		return ValidationResult{}, err
	}
	return newValidationResult(reasons...), nil
}

func (m *MetadataV2) validate(req ValidationRequest) ([]InvalidLockfileReason, error) {
	var reasons []InvalidLockfileReason

	// Tool lockfiles are never hand-maintained, so their requirements must
	// match exactly. User lockfiles may legitimately cover a superset of the
	// currently requested requirements.
	if req.IsTool {
		if !m.GeneratedWithRequirements.Equal(req.UserRequirements) {
			reasons = append(reasons, RequirementsMismatch)
		}
	} else if !req.UserRequirements.SubsetOf(m.GeneratedWithRequirements) {
		reasons = append(reasons, RequirementsMismatch)
	}

	ok, err := m.ValidForInterpreterConstraints.Contains(req.UserInterpreterConstraints, req.InterpreterUniverse)
	if err != nil {
		return nil, err
	}
	if !ok {
		reasons = append(reasons, InterpreterConstraintsMismatch)
	}

	return reasons, nil
}

// MetadataV3 is the third header generation. It adds the platform and binary
// policy fields; each one is compared for exact equality and contributes its
// own mismatch reason.
type MetadataV3 struct {
	MetadataV2
	Manylinux              *string
	RequirementConstraints RequirementSet
	OnlyBinary             RequirementSet
	NoBinary               RequirementSet
}

// Version implements Metadata.
func (m *MetadataV3) Version() int { return 3 }

// IsValidFor implements Metadata.
func (m *MetadataV3) IsValidFor(req ValidationRequest) (ValidationResult, error) {
	reasons, err := m.validate(req)
	if err != nil {
		return ValidationResult{}, err
	}

	if !manylinuxEqual(m.Manylinux, req.Manylinux) {
		reasons = append(reasons, ManylinuxMismatch)
	}
	if !m.RequirementConstraints.Equal(req.RequirementConstraints) {
		reasons = append(reasons, ConstraintsFileMismatch)
	}
	if !m.OnlyBinary.Equal(req.OnlyBinary) {
		reasons = append(reasons, OnlyBinaryMismatch)
	}
	if !m.NoBinary.Equal(req.NoBinary) {
		reasons = append(reasons, NoBinaryMismatch)
	}

	return newValidationResult(reasons...), nil
}

func manylinuxEqual(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
