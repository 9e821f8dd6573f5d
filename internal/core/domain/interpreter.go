package domain

import (
	"strconv"
	"strings"

	"go.trai.ch/zerr"
)

// DefaultInterpreterUniverse is the set of Python major.minor releases
// considered when reasoning about interpreter constraint compatibility.
var DefaultInterpreterUniverse = []string{
	"2.7", "3.5", "3.6", "3.7", "3.8", "3.9", "3.10", "3.11", "3.12", "3.13",
}

// maxPatchVersion bounds the patch releases enumerated per universe entry.
// No CPython minor release has shipped more patch versions than this.
const maxPatchVersion = 30

// InterpreterConstraints is an ordered sequence of interpreter constraint
// expressions, e.g. ["CPython>=3.8,<3.11", "PyPy==3.9.*"]. The sequence is a
// union: an interpreter satisfies the constraints when it satisfies any one
// expression. Within a single expression, comma-separated clauses all have to
// hold. An empty sequence places no constraint at all.
type InterpreterConstraints []string

// NewInterpreterConstraints builds InterpreterConstraints from raw expression
// strings, preserving their order.
func NewInterpreterConstraints(exprs ...string) InterpreterConstraints {
	ics := make(InterpreterConstraints, 0, len(exprs))
	for _, e := range exprs {
		ics = append(ics, strings.TrimSpace(e))
	}
	return ics
}

// Specifiers returns the raw expressions as a plain string slice.
// The result is never nil, so empty constraints serialize as [] rather than null.
func (ics InterpreterConstraints) Specifiers() []string {
	out := make([]string, 0, len(ics))
	out = append(out, ics...)
	return out
}

// Contains reports whether every interpreter version in the universe that
// satisfies other also satisfies ics. The universe lists major.minor versions;
// each entry is expanded to its patch releases before checking, so expressions
// like ">=3.8.5" resolve exactly.
func (ics InterpreterConstraints) Contains(other InterpreterConstraints, universe []string) (bool, error) {
	if len(universe) == 0 {
		return false, ErrEmptyInterpreterUniverse
	}

	ours, err := ics.enumerate(universe)
	if err != nil {
		return false, err
	}
	theirs, err := other.enumerate(universe)
	if err != nil {
		return false, err
	}

	for v := range theirs {
		if _, ok := ours[v]; !ok {
			return false, nil
		}
	}
	return true, nil
}

// pythonVersion is one concrete interpreter release.
type pythonVersion struct {
	major, minor, patch int
}

// enumerate expands the universe into concrete patch releases and filters them
// through the constraint expressions. An empty constraint set admits the
// entire universe.
func (ics InterpreterConstraints) enumerate(universe []string) (map[pythonVersion]struct{}, error) {
	exprs := make([]constraintExpression, 0, len(ics))
	for _, raw := range ics {
		expr, err := parseConstraintExpression(raw)
		if err != nil {
			return nil, err
		}
		exprs = append(exprs, expr)
	}

	versions := make(map[pythonVersion]struct{})
	for _, entry := range universe {
		major, minor, err := parseUniverseEntry(entry)
		if err != nil {
			return nil, err
		}
		for patch := 0; patch <= maxPatchVersion; patch++ {
			v := pythonVersion{major: major, minor: minor, patch: patch}
			if len(exprs) == 0 {
				versions[v] = struct{}{}
				continue
			}
			for _, expr := range exprs {
				if expr.matches(v) {
					versions[v] = struct{}{}
					break
				}
			}
		}
	}
	return versions, nil
}

func parseUniverseEntry(entry string) (major, minor int, err error) {
	parts := strings.Split(strings.TrimSpace(entry), ".")
	if len(parts) != 2 {
		return 0, 0, zerr.With(ErrInvalidUniverseVersion, "version", entry)
	}
	major, err = strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, zerr.With(ErrInvalidUniverseVersion, "version", entry)
	}
	minor, err = strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, zerr.With(ErrInvalidUniverseVersion, "version", entry)
	}
	return major, minor, nil
}

// constraintExpression is one parsed expression: a conjunction of clauses,
// optionally prefixed by an implementation name ("CPython>=3.8,<3.11").
// An expression with no clauses ("PyPy") matches every version.
type constraintExpression struct {
	clauses []versionClause
}

func (e constraintExpression) matches(v pythonVersion) bool {
	for _, c := range e.clauses {
		if !c.matches(v) {
			return false
		}
	}
	return true
}

// versionClause is a single operator applied to a (possibly partial) release
// number, e.g. ">=3.8" or "!=3.7.*".
type versionClause struct {
	op       string
	release  []int
	wildcard bool
}

var clauseOperators = []string{"==", "!=", "<=", ">=", "~=", "<", ">"}

func parseConstraintExpression(raw string) (constraintExpression, error) {
	s := strings.TrimSpace(raw)

	// Skip the implementation name prefix; version arithmetic applies to the
	// release number only.
	i := 0
	for i < len(s) && (isLetter(s[i]) || s[i] == ' ') {
		i++
	}
	s = strings.TrimSpace(s[i:])

	if s == "" {
		// Bare implementation name, no version bounds.
		return constraintExpression{}, nil
	}

	parts := strings.Split(s, ",")
	expr := constraintExpression{clauses: make([]versionClause, 0, len(parts))}
	for _, part := range parts {
		clause, err := parseVersionClause(strings.TrimSpace(part), raw)
		if err != nil {
			return constraintExpression{}, err
		}
		expr.clauses = append(expr.clauses, clause)
	}
	return expr, nil
}

func parseVersionClause(s, raw string) (versionClause, error) {
	var op string
	for _, candidate := range clauseOperators {
		if strings.HasPrefix(s, candidate) {
			op = candidate
			break
		}
	}
	if op == "" {
		return versionClause{}, zerr.With(ErrInvalidConstraintExpression, "expression", raw)
	}

	version := strings.TrimSpace(strings.TrimPrefix(s, op))
	clause := versionClause{op: op}

	components := strings.Split(version, ".")
	for idx, comp := range components {
		if comp == "*" && idx == len(components)-1 {
			clause.wildcard = true
			break
		}
		n, err := strconv.Atoi(comp)
		if err != nil {
			return versionClause{}, zerr.With(ErrInvalidConstraintExpression, "expression", raw)
		}
		clause.release = append(clause.release, n)
	}

	if len(clause.release) == 0 {
		return versionClause{}, zerr.With(ErrInvalidConstraintExpression, "expression", raw)
	}
	if clause.wildcard && op != "==" && op != "!=" {
		return versionClause{}, zerr.With(ErrInvalidConstraintExpression, "expression", raw)
	}
	return clause, nil
}

func (c versionClause) matches(v pythonVersion) bool {
	switch c.op {
	case "==":
		if c.wildcard {
			return c.prefixMatches(v)
		}
		return compareRelease(v, c.release) == 0
	case "!=":
		if c.wildcard {
			return !c.prefixMatches(v)
		}
		return compareRelease(v, c.release) != 0
	case "<":
		return compareRelease(v, c.release) < 0
	case "<=":
		return compareRelease(v, c.release) <= 0
	case ">":
		return compareRelease(v, c.release) > 0
	case ">=":
		return compareRelease(v, c.release) >= 0
	case "~=":
		// Compatible release: at least the given version, within the same
		// release series one level up ("~=3.8.2" means ">=3.8.2, ==3.8.*").
		if compareRelease(v, c.release) < 0 {
			return false
		}
		prefix := versionClause{release: c.release[:len(c.release)-1]}
		return prefix.prefixMatches(v)
	default:
		return false
	}
}

// prefixMatches reports whether v agrees with the clause's release number on
// every component the clause specifies.
func (c versionClause) prefixMatches(v pythonVersion) bool {
	components := [3]int{v.major, v.minor, v.patch}
	for i, want := range c.release {
		if i >= len(components) {
			break
		}
		if components[i] != want {
			return false
		}
	}
	return true
}

// compareRelease orders v against a (possibly partial) release number, with
// missing components treated as zero.
func compareRelease(v pythonVersion, release []int) int {
	components := [3]int{v.major, v.minor, v.patch}
	for i := range components {
		want := 0
		if i < len(release) {
			want = release[i]
		}
		if components[i] != want {
			if components[i] < want {
				return -1
			}
			return 1
		}
	}
	return 0
}

func isLetter(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}
