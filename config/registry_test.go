package config

import (
	"errors"
	"testing"
)

func TestRegistry(t *testing.T) {
	t.Parallel()

	if err := Register(&Option{
		Name:            "name",
		Key:             "registry/key",
		Description:     "description",
		ReleaseLevel:    ReleaseLevelStable,
		ExpertiseLevel:  ExpertiseLevelUser,
		OptType:         OptTypeString,
		DefaultValue:    "water",
		ValidationRegex: "^(banana|water)$",
	}); err != nil {
		t.Error(err)
	}

	if _, err := GetOption("registry/key"); err != nil {
		t.Error(err)
	}
	if _, err := GetOption("registry/missing"); !errors.Is(err, ErrUnknownOption) {
		t.Errorf("expected unknown option error, got %v", err)
	}

	if err := Register(&Option{
		Name:            "name",
		Key:             "registry/no-type",
		Description:     "description",
		ReleaseLevel:    ReleaseLevelStable,
		ExpertiseLevel:  ExpertiseLevelUser,
		OptType:         0,
		DefaultValue:    "default",
		ValidationRegex: "^[A-Z][a-z]+$",
	}); err == nil {
		t.Error("should fail")
	}

	if err := Register(&Option{
		Name:            "name",
		Key:             "registry/bad-regex",
		Description:     "description",
		ReleaseLevel:    ReleaseLevelStable,
		ExpertiseLevel:  ExpertiseLevelUser,
		OptType:         OptTypeString,
		DefaultValue:    "default",
		ValidationRegex: "[",
	}); err == nil {
		t.Error("should fail")
	}

	if err := Register(&Option{
		Name:            "name",
		Key:             "registry/bad-default",
		Description:     "description",
		ReleaseLevel:    ReleaseLevelStable,
		ExpertiseLevel:  ExpertiseLevelUser,
		OptType:         OptTypeString,
		DefaultValue:    "default",
		ValidationRegex: "^(aes|serpent)$",
	}); err == nil {
		t.Error("should fail")
	}
}
