package domain_test

import (
	"testing"

	"github.com/DLukeNelson/pants/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveSet_Lookup(t *testing.T) {
	set := domain.NewResolveSet(nil)
	set.Add(&domain.ResolveConfig{Name: "default"})
	set.Add(&domain.ResolveConfig{Name: "flake8", IsTool: true})

	cfg, err := set.Resolve("flake8")
	require.NoError(t, err)
	assert.True(t, cfg.IsTool)

	_, err = set.Resolve("missing")
	assert.ErrorIs(t, err, domain.ErrResolveNotFound)

	// Empty name is ambiguous with more than one resolve configured.
	_, err = set.Resolve("")
	assert.ErrorIs(t, err, domain.ErrResolveNotFound)

	assert.Equal(t, []string{"default", "flake8"}, set.Names())
}

func TestResolveSet_SoleResolveByEmptyName(t *testing.T) {
	set := domain.NewResolveSet([]string{"3.9", "3.10"})
	set.Add(&domain.ResolveConfig{Name: "default"})

	cfg, err := set.Resolve("")
	require.NoError(t, err)
	assert.Equal(t, "default", cfg.Name)
	assert.Equal(t, []string{"3.9", "3.10"}, set.InterpreterUniverse())
}

func TestResolveSet_DefaultUniverse(t *testing.T) {
	set := domain.NewResolveSet(nil)
	assert.Equal(t, domain.DefaultInterpreterUniverse, set.InterpreterUniverse())
}

func TestResolveConfig_ValidationRequest(t *testing.T) {
	manylinux := "manylinux2014"
	cfg := &domain.ResolveConfig{
		Name:                   "default",
		IsTool:                 true,
		InterpreterConstraints: domain.NewInterpreterConstraints(">=3.8"),
		Requirements:           domain.NewRequirementSet("ansicolors==0.1.0"),
		Manylinux:              &manylinux,
		RequirementConstraints: domain.NewRequirementSet("constraint"),
		OnlyBinary:             domain.NewRequirementSet("bdist"),
		NoBinary:               domain.NewRequirementSet("sdist"),
	}

	req := cfg.ValidationRequest([]string{"3.8", "3.9"})
	assert.True(t, req.IsTool)
	assert.Equal(t,
		domain.CalculateInvalidationDigest([]string{"ansicolors==0.1.0"}),
		req.ExpectedInvalidationDigest)
	assert.Equal(t, []string{"3.8", "3.9"}, req.InterpreterUniverse)
	assert.Equal(t, cfg.Requirements, req.UserRequirements)
	assert.Equal(t, &manylinux, req.Manylinux)
}
