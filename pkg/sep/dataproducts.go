package sep

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// SearchDataProducts searches data products. The server matches the term,
// bookended by '%', against all product attributes; results are re-checked
// client-side with a substring match on the name. An empty term returns all
// products.
func (c *Client) SearchDataProducts(ctx context.Context, searchString string) ([]DataProductSearchResult, error) {
	var query url.Values
	if searchString != "" {
		opts, err := sjson.Set("", "searchString", searchString)
		if err != nil {
			return nil, ErrValidation.MsgErr("unable to encode search options: "+err.Error(), err)
		}
		query = url.Values{"searchOptions": []string{opts}}
	}
	body, err := c.doRequest(ctx, http.MethodGet, dataProductPath, query, nil)
	if err != nil {
		return nil, err
	}
	results, err := decodeList[DataProductSearchResult](body)
	if err != nil {
		return nil, err
	}
	if searchString == "" {
		return results, nil
	}
	filtered := make([]DataProductSearchResult, 0, len(results))
	for _, r := range results {
		if strings.Contains(r.Name, searchString) {
			filtered = append(filtered, r)
		}
	}
	return filtered, nil
}

// CreateDataProduct creates a data product. The schema name is derived by
// the server from the product name at creation time and cannot be renamed
// afterwards.
func (c *Client) CreateDataProduct(ctx context.Context, params DataProductParameters) (*DataProduct, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	body, err := c.doRequest(ctx, http.MethodPost, dataProductPath, nil, params)
	if err != nil {
		return nil, err
	}
	return decodeEntity[DataProduct](body)
}

// GetDataProduct retrieves one data product by id.
func (c *Client) GetDataProduct(ctx context.Context, dpID string) (*DataProduct, error) {
	body, err := c.doRequest(ctx, http.MethodGet, dataProductPath+"/"+dpID, nil, nil)
	if err != nil {
		return nil, err
	}
	return decodeEntity[DataProduct](body)
}

// UpdateDataProduct replaces a data product. This is a full replacement, not
// a patch: fields omitted from params are not preserved from the prior
// version.
func (c *Client) UpdateDataProduct(ctx context.Context, dpID string, params DataProductParameters) (*DataProduct, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	body, err := c.doRequest(ctx, http.MethodPut, dataProductPath+"/"+dpID, nil, params)
	if err != nil {
		return nil, err
	}
	return decodeEntity[DataProduct](body)
}

// CloneDataProduct clones an existing data product into a new catalog, schema
// and name, optionally reassigning its domain.
func (c *Client) CloneDataProduct(ctx context.Context, dpID string, opts CloneOptions) (*DataProduct, error) {
	if err := validate.Struct(opts); err != nil {
		return nil, ErrValidation.MsgErr("invalid clone options: "+err.Error(), err)
	}
	body, err := c.doRequest(ctx, http.MethodPost, dataProductPath+"/"+dpID+"/clone", nil, opts)
	if err != nil {
		return nil, err
	}
	return decodeEntity[DataProduct](body)
}

// GetDataProductStatistics retrieves usage telemetry for a data product.
func (c *Client) GetDataProductStatistics(ctx context.Context, dpID string) (*DataProductStatistics, error) {
	body, err := c.doRequest(ctx, http.MethodGet, dataProductPath+"/"+dpID+"/statistics", nil, nil)
	if err != nil {
		return nil, err
	}
	return decodeEntity[DataProductStatistics](body)
}

// UpdateSampleQueries replaces the full sample query set of a data product.
func (c *Client) UpdateSampleQueries(ctx context.Context, dpID string, queries []SampleQuery) error {
	_, err := c.doRequest(ctx, http.MethodPut, dataProductPath+"/"+dpID+"/sampleQueries", nil, queries)
	return err
}

// ListSampleQueries retrieves the sample queries of a data product.
func (c *Client) ListSampleQueries(ctx context.Context, dpID string) ([]SampleQuery, error) {
	body, err := c.doRequest(ctx, http.MethodGet, dataProductPath+"/"+dpID+"/sampleQueries", nil, nil)
	if err != nil {
		return nil, err
	}
	return decodeList[SampleQuery](body)
}

// GetMaterializedViewRefreshMetadata retrieves the refresh state of a
// materialized view. The server returns a null body for a view that has
// never refreshed; that maps to a record with every field absent.
func (c *Client) GetMaterializedViewRefreshMetadata(ctx context.Context, dpID, viewName string) (*MaterializedViewRefreshMetadata, error) {
	body, err := c.doRequest(ctx, http.MethodGet,
		dataProductPath+"/"+dpID+"/materializedViews/"+viewName+"/refreshMetadata", nil, nil)
	if err != nil {
		return nil, err
	}
	if len(body) == 0 || gjson.ParseBytes(body).Type == gjson.Null {
		return &MaterializedViewRefreshMetadata{}, nil
	}
	return decodeEntity[MaterializedViewRefreshMetadata](body)
}
