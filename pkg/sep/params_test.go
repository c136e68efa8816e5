package sep

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

func TestParametersWireShapeOmitsServerFields(t *testing.T) {
	desc := "order headers"
	p := DataProductParameters{
		Name:         "dp1",
		CatalogName:  "hive",
		SchemaName:   "dp1",
		DataDomainID: "d1",
		Summary:      "s",
		Views: []ViewParameters{{
			Name:            "orders",
			Description:     &desc,
			DefinitionQuery: "SELECT 1",
			Columns:         []Column{{Name: "order_id", Type: "bigint"}},
		}},
		Owners: []Owner{{Name: "Alice", Email: "alice@example.com"}},
	}

	wire, err := json.Marshal(p)
	require.NoError(t, err)
	parsed := gjson.ParseBytes(wire)

	assert.False(t, parsed.Get("id").Exists(), "server-assigned id must not be sent")
	assert.False(t, parsed.Get("createdAt").Exists())
	assert.False(t, parsed.Get("status").Exists())
	assert.False(t, parsed.Get("views.0.createdAt").Exists())
	assert.Equal(t, "orders", parsed.Get("views.0.name").String())
	assert.Equal(t, "order headers", parsed.Get("views.0.description").String())
}

func TestNewDataProductParametersRoundTrip(t *testing.T) {
	dp, err := decodeEntity[DataProduct]([]byte(fullDataProductDoc))
	require.NoError(t, err)

	p := NewDataProductParameters(*dp)
	require.NoError(t, p.Validate())

	wire, err := json.Marshal(p)
	require.NoError(t, err)
	var echoed DataProductParameters
	require.NoError(t, json.Unmarshal(wire, &echoed))

	require.Len(t, echoed.Views, 1)
	require.Len(t, echoed.Views[0].Columns, 2)
	for i, col := range dp.Views[0].Columns {
		assert.Equal(t, col.Name, echoed.Views[0].Columns[i].Name)
		assert.Equal(t, col.Type, echoed.Views[0].Columns[i].Type)
		assert.Equal(t, col.Description, echoed.Views[0].Columns[i].Description)
	}
	require.Len(t, echoed.MaterializedViews, 1)
	assert.Equal(t, "30m", echoed.MaterializedViews[0].DefinitionProperties.RefreshInterval)
	require.Len(t, echoed.Owners, 1)
	assert.Equal(t, dp.Owners[0].Name, echoed.Owners[0].Name)
	assert.Equal(t, dp.Owners[0].Email, echoed.Owners[0].Email)
}

func TestParametersValidate(t *testing.T) {
	p := DataProductParameters{Name: "dp1"}
	err := p.Validate()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrValidation))
	assert.True(t, errors.Is(err, ErrConfiguration))
}

func TestNormalizeViewParameters(t *testing.T) {
	typed := View{
		Name:            "orders",
		DefinitionQuery: "SELECT 1",
		Columns:         []Column{{Name: "order_id", Type: "bigint"}},
		Status:          "PUBLISHED",
	}
	fromTyped, err := NormalizeViewParameters(typed)
	require.NoError(t, err)
	assert.Equal(t, "orders", fromTyped.Name)
	assert.Equal(t, "SELECT 1", fromTyped.DefinitionQuery)

	loose := map[string]any{
		"name":            "orders",
		"definitionQuery": "SELECT 1",
		"columns":         []any{map[string]any{"name": "order_id", "type": "bigint"}},
		"createdAt":       "2023-05-01T10:30:00Z",
		"id":              "should-be-dropped",
	}
	fromMap, err := NormalizeViewParameters(loose)
	require.NoError(t, err)
	assert.Equal(t, fromTyped, fromMap, "typed and loose inputs must normalize identically")

	_, err = NormalizeViewParameters(42)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrValidation))
}

func TestNormalizeMaterializedViewParameters(t *testing.T) {
	grace := "10m"
	mv := MaterializedView{
		View: View{Name: "daily_totals", DefinitionQuery: "SELECT 2"},
		DefinitionProperties: MaterializedViewProperties{
			RefreshInterval: "30m",
			GracePeriod:     &grace,
		},
	}
	fromTyped, err := NormalizeMaterializedViewParameters(mv)
	require.NoError(t, err)
	assert.Equal(t, "30m", fromTyped.DefinitionProperties.RefreshInterval)

	loose := map[string]any{
		"name":                 "daily_totals",
		"definitionQuery":      "SELECT 2",
		"definitionProperties": map[string]any{"refresh_interval": "30m", "grace_period": "10m"},
	}
	fromMap, err := NormalizeMaterializedViewParameters(loose)
	require.NoError(t, err)
	assert.Equal(t, fromTyped, fromMap)
}
