package task

import (
	"strings"

	dperrors "github.com/avelis/dayplan/internal/errors"
)

// statusAliases maps user-facing and legacy status names to canonical values.
var statusAliases = map[string]Status{
	"action":     StatusTask,
	"tasks":      StatusTask,
	"todo":       StatusTask,
	"projects":   StatusProject,
	"ideas":      StatusIdea,
	"not now":    StatusNotNow,
	"waiting on": StatusWaiting,
	"won't do":   StatusWontDo,
	"wont do":    StatusWontDo,
}

// typeAliases maps legacy type names to canonical values.
var typeAliases = map[string]Type{
	"compounds": TypeCompound,
}

// tagAliases maps bracket tags emitted by the capture processor to types.
var tagAliases = map[string]Type{
	"[DO IT]":                TypeDoItNow,
	"[KEYSTONE]":             TypeUnblocks,
	"[UNBLOCKS]":             TypeUnblocks,
	"[COMPOUNDS]":            TypeCompound,
	"[IDENTITY]":             TypeIdentity,
	"[IMPORTANT NOT URGENT]": TypeImportantNotUrgent,
	"[NEVER MISS 2X]":        TypeNeverMissTwice,
}

// ResolveStatus resolves a raw status string to a canonical Status.
// Accepts canonical names, aliases, and case-insensitive variants.
func ResolveStatus(raw string) (Status, error) {
	s := Status(strings.ToLower(strings.TrimSpace(raw)))
	if IsValidStatus(s) {
		return s, nil
	}
	if alias, ok := statusAliases[string(s)]; ok {
		return alias, nil
	}
	return "", dperrors.UnknownStatusError{Value: raw}
}

// ResolveType resolves a raw type string to a canonical Type. Bracket tags
// like "[KEYSTONE]" are accepted alongside canonical and legacy names.
func ResolveType(raw string) (Type, error) {
	trimmed := strings.TrimSpace(raw)
	if tag, ok := tagAliases[strings.ToUpper(trimmed)]; ok {
		return tag, nil
	}
	t := Type(strings.ToLower(trimmed))
	if IsValidType(t) {
		return t, nil
	}
	if alias, ok := typeAliases[string(t)]; ok {
		return alias, nil
	}
	return "", dperrors.UnknownTypeError{Value: raw}
}

// ResolveEnergy resolves a raw energy string, case-insensitively.
func ResolveEnergy(raw string) (Energy, error) {
	e := Energy(strings.ToLower(strings.TrimSpace(raw)))
	if IsValidEnergy(e) {
		return e, nil
	}
	return "", dperrors.ValidationError{Field: "energy", Reason: "unknown value " + raw}
}
