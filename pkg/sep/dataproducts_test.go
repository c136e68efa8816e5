package sep_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andyetzel/starburst-data-products-client/internal/septest"
	"github.com/andyetzel/starburst-data-products-client/pkg/sep"
)

func testProductParams(name, domainID string) sep.DataProductParameters {
	return sep.DataProductParameters{
		Name:         name,
		CatalogName:  "hive",
		SchemaName:   name,
		DataDomainID: domainID,
		Summary:      "test product",
		Views: []sep.ViewParameters{
			{Name: "v1", DefinitionQuery: "SELECT 1", Columns: []sep.Column{{Name: "c1", Type: "bigint"}}},
			{Name: "v2", DefinitionQuery: "SELECT 2"},
		},
	}
}

func createTestProduct(t *testing.T, client *sep.Client, name string) *sep.DataProduct {
	t.Helper()
	ctx := context.Background()
	domain, err := client.CreateDomain(ctx, sep.DomainParameters{Name: "domain_" + name})
	require.NoError(t, err)
	dp, err := client.CreateDataProduct(ctx, testProductParams(name, domain.ID))
	require.NoError(t, err)
	return dp
}

func TestCreateDataProduct(t *testing.T) {
	s := septest.New()
	defer s.Close()
	client := newTestClient(t, s)

	dp := createTestProduct(t, client, "dp1")
	assert.NotEmpty(t, dp.ID)
	assert.Equal(t, sep.StatusDraft, dp.Status)
	assert.Equal(t, "dp1", dp.SchemaName)
	require.Len(t, dp.Views, 2)
	assert.Equal(t, "SELECT 1", dp.Views[0].DefinitionQuery)
}

func TestUpdateDataProductIsFullReplace(t *testing.T) {
	s := septest.New()
	defer s.Close()
	client := newTestClient(t, s)
	ctx := context.Background()

	dp := createTestProduct(t, client, "dp1")

	// Round-trip the existing product and drop one view: the omitted view
	// must not survive the update.
	params := sep.NewDataProductParameters(*dp)
	params.Views = params.Views[:1]
	params.Summary = "updated summary"

	updated, err := client.UpdateDataProduct(ctx, dp.ID, params)
	require.NoError(t, err)
	assert.Equal(t, "updated summary", updated.Summary)
	require.Len(t, updated.Views, 1)
	assert.Equal(t, "v1", updated.Views[0].Name)
	assert.Equal(t, dp.ID, updated.ID)
}

func TestCloneDataProduct(t *testing.T) {
	s := septest.New()
	defer s.Close()
	client := newTestClient(t, s)
	ctx := context.Background()

	dp := createTestProduct(t, client, "dp1")

	clone, err := client.CloneDataProduct(ctx, dp.ID, sep.CloneOptions{
		CatalogName:   "iceberg",
		NewSchemaName: "dp1_copy",
		NewName:       "dp1_copy",
	})
	require.NoError(t, err)
	assert.NotEqual(t, dp.ID, clone.ID)
	assert.Equal(t, "dp1_copy", clone.Name)
	assert.Equal(t, "iceberg", clone.CatalogName)
	assert.Equal(t, sep.StatusDraft, clone.Status)
}

func TestSearchDataProducts(t *testing.T) {
	s := septest.New()
	defer s.Close()
	client := newTestClient(t, s)
	ctx := context.Background()

	createTestProduct(t, client, "sales_mart")
	createTestProduct(t, client, "inventory_mart")

	all, err := client.SearchDataProducts(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	sales, err := client.SearchDataProducts(ctx, "sales")
	require.NoError(t, err)
	require.Len(t, sales, 1)
	assert.Equal(t, "sales_mart", sales[0].Name)
}

func TestGetDataProductStatistics(t *testing.T) {
	s := septest.New()
	defer s.Close()
	client := newTestClient(t, s)

	dp := createTestProduct(t, client, "dp1")
	stats, err := client.GetDataProductStatistics(context.Background(), dp.ID)
	require.NoError(t, err)
	assert.Equal(t, dp.ID, stats.DataProductID)
	assert.Greater(t, stats.ThirtyDayQueryCount, stats.SevenDayQueryCount)
}

func TestSampleQueries(t *testing.T) {
	s := septest.New()
	defer s.Close()
	client := newTestClient(t, s)
	ctx := context.Background()

	dp := createTestProduct(t, client, "dp1")

	queries := []sep.SampleQuery{
		{Name: "top customers", Description: "best customers", Query: "SELECT * FROM v1 LIMIT 10"},
	}
	require.NoError(t, client.UpdateSampleQueries(ctx, dp.ID, queries))

	listed, err := client.ListSampleQueries(ctx, dp.ID)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, "top customers", listed[0].Name)
}

func TestRefreshMetadataNeverRefreshed(t *testing.T) {
	s := septest.New()
	defer s.Close()
	client := newTestClient(t, s)

	dp := createTestProduct(t, client, "dp1")

	// The server answers null for a view that never refreshed; the client
	// must yield a record with every field absent, not fail.
	md, err := client.GetMaterializedViewRefreshMetadata(context.Background(), dp.ID, "daily_totals")
	require.NoError(t, err)
	require.NotNil(t, md)
	assert.Nil(t, md.LastImport)
	assert.Nil(t, md.IncrementalColumn)
	assert.Nil(t, md.RefreshInterval)
	assert.Nil(t, md.StorageSchema)
	assert.Nil(t, md.EstimatedNextRefreshTime)
}

func TestRefreshMetadataPopulated(t *testing.T) {
	s := septest.New()
	defer s.Close()
	client := newTestClient(t, s)

	dp := createTestProduct(t, client, "dp1")
	s.RefreshMetadata[dp.ID+"/daily_totals"] = `{
		"lastImport": "2023-05-01T10:30:00Z",
		"incrementalColumn": "order_date",
		"refreshInterval": "30m",
		"storageSchema": "dp1_storage",
		"estimatedNextRefreshTime": "2023-05-01T11:00:00Z"
	}`

	md, err := client.GetMaterializedViewRefreshMetadata(context.Background(), dp.ID, "daily_totals")
	require.NoError(t, err)
	require.NotNil(t, md.LastImport)
	require.NotNil(t, md.IncrementalColumn)
	assert.Equal(t, "order_date", *md.IncrementalColumn)
}
