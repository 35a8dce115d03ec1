package query

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/trackfolio/trackfolio-be/internal/models"
	"github.com/trackfolio/trackfolio-be/internal/shared"
)

// Sortable fields accepted by the engine.
const (
	SortByName      = "name"
	SortByType      = "type"
	SortByValue     = "value"
	SortByCreatedAt = "createdAt"
)

// Spec is a validated bundle of optional filter predicates and a single sort
// directive. The zero value matches everything and sorts by update time,
// newest first.
type Spec struct {
	Search   string
	Type     models.AssetType
	MinValue *float64
	MaxValue *float64
	SortBy   string
	SortDesc bool
}

// ParseSpec builds a Spec from raw query parameters, rejecting unknown enum
// values and non-numeric bounds so the filter engine never sees unvalidated
// input.
func ParseSpec(values url.Values) (Spec, error) {
	spec := Spec{
		Search: strings.TrimSpace(values.Get("search")),
	}

	if raw := values.Get("type"); raw != "" {
		t := models.AssetType(raw)
		if !t.IsValid() {
			return Spec{}, shared.NewInvalidInput("type", "unknown asset type")
		}
		spec.Type = t
	}

	if raw := values.Get("minValue"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return Spec{}, shared.NewInvalidInput("minValue", "must be a number")
		}
		spec.MinValue = &v
	}

	if raw := values.Get("maxValue"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return Spec{}, shared.NewInvalidInput("maxValue", "must be a number")
		}
		spec.MaxValue = &v
	}

	if raw := values.Get("sortBy"); raw != "" {
		switch raw {
		case SortByName, SortByType, SortByValue, SortByCreatedAt:
			spec.SortBy = raw
		default:
			return Spec{}, shared.NewInvalidInput("sortBy", "must be one of name, type, value, createdAt")
		}
	}

	if raw := values.Get("sortOrder"); raw != "" {
		switch raw {
		case "asc":
		case "desc":
			spec.SortDesc = true
		default:
			return Spec{}, shared.NewInvalidInput("sortOrder", "must be asc or desc")
		}
	}

	return spec, nil
}
