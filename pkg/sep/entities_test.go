package sep

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fullDataProductDoc = `{
	"id": "9f6a4f9e-8f13-4a59-bb1c-0d2f4c6e8b01",
	"name": "sales_mart",
	"catalogName": "hive",
	"schemaName": "sales_mart",
	"dataDomainId": "2a1b3c4d-0000-1111-2222-333344445555",
	"summary": "Curated sales views",
	"description": "All sales reporting views",
	"status": "PUBLISHED",
	"views": [
		{
			"name": "orders",
			"description": "Order headers",
			"definitionQuery": "SELECT * FROM raw.orders",
			"status": "PUBLISHED",
			"columns": [
				{"name": "order_id", "type": "bigint"},
				{"name": "total", "type": "decimal(15,2)", "description": "order total"}
			],
			"markedForDeletion": false,
			"createdAt": "2023-05-01T10:30:00Z",
			"createdBy": "alice",
			"updatedAt": "2023-05-02T08:00:00Z",
			"updatedBy": "alice",
			"publishedAt": "2023-05-02T09:00:00Z",
			"publishedBy": "alice",
			"matchesTrinoDefinition": true
		}
	],
	"materializedViews": [
		{
			"name": "daily_totals",
			"definitionQuery": "SELECT order_date, sum(total) FROM orders GROUP BY 1",
			"definitionProperties": {"refresh_interval": "30m", "grace_period": "10m"},
			"status": "PUBLISHED",
			"columns": [{"name": "order_date", "type": "date"}],
			"markedForDeletion": false,
			"createdAt": "2023-05-01T10:30:00Z",
			"createdBy": "alice",
			"updatedAt": "2023-05-02T08:00:00Z",
			"updatedBy": "alice"
		}
	],
	"owners": [{"name": "Alice", "email": "alice@example.com"}],
	"relevantLinks": [{"label": "runbook", "url": "https://wiki/runbook"}],
	"createdAt": "2023-05-01T10:30:00Z",
	"createdBy": "alice",
	"updatedAt": "2023-05-02T08:00:00Z",
	"updatedBy": "alice",
	"publishedAt": "2023-05-02T09:00:00+02:00",
	"publishedBy": "alice",
	"accessMetadata": {"lastQueriedAt": "2023-05-03T12:00:00Z", "lastQueriedBy": "bob"},
	"ratingsCount": 4,
	"bookmarkCount": 2,
	"userData": {"rating": 5, "bookmarked": true},
	"matchesTrinoDefinition": true
}`

func TestDataProductLoadFull(t *testing.T) {
	dp, err := decodeEntity[DataProduct]([]byte(fullDataProductDoc))
	require.NoError(t, err)

	assert.Equal(t, "sales_mart", dp.Name)
	assert.Equal(t, StatusPublished, dp.Status)
	require.NotNil(t, dp.Description)
	assert.Equal(t, "All sales reporting views", *dp.Description)

	require.Len(t, dp.Views, 1)
	view := dp.Views[0]
	require.Len(t, view.Columns, 2)
	assert.Equal(t, "decimal(15,2)", view.Columns[1].Type)
	require.NotNil(t, view.Columns[1].Description)
	assert.Equal(t, "order total", *view.Columns[1].Description)
	assert.Nil(t, view.Columns[0].Description)
	require.NotNil(t, view.MatchesTrinoDefinition)
	assert.True(t, *view.MatchesTrinoDefinition)

	require.Len(t, dp.MaterializedViews, 1)
	mv := dp.MaterializedViews[0]
	assert.Equal(t, "30m", mv.DefinitionProperties.RefreshInterval)
	require.NotNil(t, mv.DefinitionProperties.GracePeriod)
	assert.Equal(t, "10m", *mv.DefinitionProperties.GracePeriod)
	assert.Nil(t, mv.PublishedAt)

	require.NotNil(t, dp.PublishedAt)
	_, offset := dp.PublishedAt.Zone()
	assert.Equal(t, 2*60*60, offset, "zone offset must be preserved")

	require.NotNil(t, dp.AccessMetadata)
	require.NotNil(t, dp.AccessMetadata.LastQueriedBy)
	assert.Equal(t, "bob", *dp.AccessMetadata.LastQueriedBy)

	require.NotNil(t, dp.UserData)
	assert.True(t, dp.UserData.Bookmarked)
}

func TestDataProductLoadMinimal(t *testing.T) {
	// Every optional field omitted: the decode must succeed and expose the
	// fields as absent.
	doc := `{
		"id": "x",
		"name": "dp1",
		"catalogName": "hive",
		"schemaName": "dp1",
		"dataDomainId": "d1",
		"summary": "s",
		"status": "DRAFT",
		"views": [],
		"materializedViews": [],
		"owners": [],
		"relevantLinks": [],
		"createdAt": "2023-05-01T10:30:00Z",
		"createdBy": "alice",
		"updatedAt": "2023-05-01T10:30:00Z",
		"updatedBy": "alice",
		"ratingsCount": 0,
		"bookmarkCount": 0
	}`
	dp, err := decodeEntity[DataProduct]([]byte(doc))
	require.NoError(t, err)

	assert.Nil(t, dp.Description)
	assert.Nil(t, dp.PublishedAt)
	assert.Nil(t, dp.PublishedBy)
	assert.Nil(t, dp.AccessMetadata)
	assert.Nil(t, dp.UserData)
	assert.Nil(t, dp.MatchesTrinoDefinition)
	assert.Nil(t, dp.ProductOwners)
	assert.Equal(t, StatusDraft, dp.Status)
}

func TestDecodeErrorNamesField(t *testing.T) {
	doc := `{"id": "x", "ratingsCount": "not-a-number"}`
	_, err := decodeEntity[DataProduct]([]byte(doc))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDecode))
	assert.Contains(t, err.Error(), "ratingsCount")
}

func TestDecodeRejectsMalformedJSON(t *testing.T) {
	_, err := decodeEntity[Domain]([]byte(`{"name": `))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDecode))

	_, err = decodeList[Tag]([]byte(`[{`))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDecode))
}

func TestDomainLoad(t *testing.T) {
	doc := `{
		"id": "d1",
		"name": "domain_1",
		"createdAt": "2023-05-01T10:30:00Z",
		"createdBy": "alice",
		"assignedDataProducts": [{"id": "p1", "name": "sales_mart"}]
	}`
	d, err := decodeEntity[Domain]([]byte(doc))
	require.NoError(t, err)
	assert.Equal(t, "domain_1", d.Name)
	assert.Nil(t, d.Description)
	assert.Nil(t, d.UpdatedAt)
	require.Len(t, d.AssignedDataProducts, 1)
	assert.Equal(t, "sales_mart", d.AssignedDataProducts[0].Name)
}

func TestWorkflowStatusLoad(t *testing.T) {
	doc := `{
		"workflowType": "PUBLISH",
		"status": "FAILED",
		"errors": [
			{"entityType": "VIEW", "entityName": "orders", "message": "table not found"},
			{"entityType": "MATERIALIZED_VIEW", "entityName": "daily_totals", "message": "refresh failed"}
		],
		"isFinalStatus": true
	}`
	ws, err := decodeEntity[WorkflowStatus]([]byte(doc))
	require.NoError(t, err)
	assert.Equal(t, WorkflowTypePublish, ws.WorkflowType)
	assert.True(t, ws.IsFinalStatus)
	require.Len(t, ws.Errors, 2, "the full error list must be preserved")
	assert.Equal(t, "daily_totals", ws.Errors[1].EntityName)
}
