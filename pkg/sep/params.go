package sep

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// DataProductParameters is the full create/update payload for a data product.
// Updates are full replacements, not patches: omitted fields are not
// preserved from the prior version, so callers must round-trip existing
// values they wish to keep (see NewDataProductParameters).
//
// Only writable fields appear here; server-assigned fields such as id and
// createdAt are never sent.
type DataProductParameters struct {
	Name              string                       `json:"name" validate:"required"`
	CatalogName       string                       `json:"catalogName" validate:"required"`
	SchemaName        string                       `json:"schemaName" validate:"required"`
	DataDomainID      string                       `json:"dataDomainId" validate:"required"`
	Summary           string                       `json:"summary" validate:"required"`
	Description       *string                      `json:"description,omitempty"`
	Views             []ViewParameters             `json:"views"`
	MaterializedViews []MaterializedViewParameters `json:"materializedViews"`
	Owners            []Owner                      `json:"owners"`
	RelevantLinks     []RelevantLink               `json:"relevantLinks"`
}

// ViewParameters is the writable shape of a view inside a data product
// payload.
type ViewParameters struct {
	Name              string   `json:"name" validate:"required"`
	Description       *string  `json:"description,omitempty"`
	DefinitionQuery   string   `json:"definitionQuery" validate:"required"`
	Columns           []Column `json:"columns"`
	MarkedForDeletion bool     `json:"markedForDeletion"`
}

// MaterializedViewParameters is the writable shape of a materialized view
// inside a data product payload.
type MaterializedViewParameters struct {
	ViewParameters
	DefinitionProperties MaterializedViewProperties `json:"definitionProperties"`
}

// Validate checks that all required parameter fields are set.
func (p DataProductParameters) Validate() error {
	if err := validate.Struct(p); err != nil {
		return ErrValidation.MsgErr("invalid data product parameters: "+err.Error(), err)
	}
	return nil
}

// NewDataProductParameters builds a full-replacement payload from a loaded
// data product, round-tripping its views, materialized views, owners and
// links so an update preserves them.
func NewDataProductParameters(dp DataProduct) DataProductParameters {
	p := DataProductParameters{
		Name:          dp.Name,
		CatalogName:   dp.CatalogName,
		SchemaName:    dp.SchemaName,
		DataDomainID:  dp.DataDomainID,
		Summary:       dp.Summary,
		Description:   dp.Description,
		Owners:        dp.Owners,
		RelevantLinks: dp.RelevantLinks,
	}
	for _, v := range dp.Views {
		p.Views = append(p.Views, viewParametersOf(v))
	}
	for _, mv := range dp.MaterializedViews {
		p.MaterializedViews = append(p.MaterializedViews, MaterializedViewParameters{
			ViewParameters:       viewParametersOf(mv.View),
			DefinitionProperties: mv.DefinitionProperties,
		})
	}
	return p
}

func viewParametersOf(v View) ViewParameters {
	return ViewParameters{
		Name:              v.Name,
		Description:       v.Description,
		DefinitionQuery:   v.DefinitionQuery,
		Columns:           v.Columns,
		MarkedForDeletion: v.MarkedForDeletion,
	}
}

// NormalizeViewParameters accepts the shapes callers conventionally hold for
// a view definition, either a typed record (View, ViewParameters or pointers
// to them) or a loosely-keyed mapping with the same wire field names, and
// produces the one canonical writable shape. Keys a view cannot accept on
// write, such as id or createdAt, are dropped.
func NormalizeViewParameters(v any) (ViewParameters, error) {
	switch view := v.(type) {
	case ViewParameters:
		return view, nil
	case *ViewParameters:
		return *view, nil
	case View:
		return viewParametersOf(view), nil
	case *View:
		return viewParametersOf(*view), nil
	case map[string]any:
		raw, err := json.Marshal(view)
		if err != nil {
			return ViewParameters{}, ErrValidation.MsgErr("invalid view mapping: "+err.Error(), err)
		}
		var p ViewParameters
		if err := json.Unmarshal(raw, &p); err != nil {
			return ViewParameters{}, ErrValidation.MsgErr("invalid view mapping: "+err.Error(), err)
		}
		return p, nil
	default:
		return ViewParameters{}, ErrValidation.Msg(fmt.Sprintf("unsupported view representation %T", v))
	}
}

// NormalizeMaterializedViewParameters is NormalizeViewParameters for
// materialized views, additionally carrying definitionProperties through.
func NormalizeMaterializedViewParameters(v any) (MaterializedViewParameters, error) {
	switch view := v.(type) {
	case MaterializedViewParameters:
		return view, nil
	case *MaterializedViewParameters:
		return *view, nil
	case MaterializedView:
		return MaterializedViewParameters{
			ViewParameters:       viewParametersOf(view.View),
			DefinitionProperties: view.DefinitionProperties,
		}, nil
	case *MaterializedView:
		return NormalizeMaterializedViewParameters(*view)
	case map[string]any:
		raw, err := json.Marshal(view)
		if err != nil {
			return MaterializedViewParameters{}, ErrValidation.MsgErr("invalid materialized view mapping: "+err.Error(), err)
		}
		var p MaterializedViewParameters
		if err := json.Unmarshal(raw, &p); err != nil {
			return MaterializedViewParameters{}, ErrValidation.MsgErr("invalid materialized view mapping: "+err.Error(), err)
		}
		return p, nil
	default:
		return MaterializedViewParameters{}, ErrValidation.Msg(fmt.Sprintf("unsupported materialized view representation %T", v))
	}
}

// DomainParameters is the create payload for a domain.
type DomainParameters struct {
	Name           string  `json:"name" validate:"required"`
	Description    *string `json:"description"`
	SchemaLocation *string `json:"schemaLocation"`
}

// DomainUpdate is the update payload for a domain. The name is not
// updatable.
type DomainUpdate struct {
	Description    *string `json:"description"`
	SchemaLocation *string `json:"schemaLocation"`
}

// CloneOptions names the target of a data product clone.
type CloneOptions struct {
	CatalogName   string  `json:"catalogName" validate:"required"`
	NewSchemaName string  `json:"newSchemaName" validate:"required"`
	NewName       string  `json:"newName" validate:"required"`
	DataDomainID  *string `json:"dataDomainId,omitempty"`
}
