package sep

import (
	"context"
	"net/http"
)

type tagValue struct {
	Value string `json:"value"`
}

// UpdateTags replaces the full tag set of a data product and returns the new
// tags with their server-assigned ids.
func (c *Client) UpdateTags(ctx context.Context, dpID string, values []string) ([]Tag, error) {
	payload := make([]tagValue, 0, len(values))
	for _, v := range values {
		payload = append(payload, tagValue{Value: v})
	}
	body, err := c.doRequest(ctx, http.MethodPut, dataProductTagsPath+"/products/"+dpID, nil, payload)
	if err != nil {
		return nil, err
	}
	return decodeList[Tag](body)
}

// GetTags retrieves the tags of a data product.
func (c *Client) GetTags(ctx context.Context, dpID string) ([]Tag, error) {
	body, err := c.doRequest(ctx, http.MethodGet, dataProductTagsPath+"/products/"+dpID, nil, nil)
	if err != nil {
		return nil, err
	}
	return decodeList[Tag](body)
}

// DeleteTag removes one tag instance, identified by its server-assigned id,
// from a data product.
func (c *Client) DeleteTag(ctx context.Context, tagID, dpID string) error {
	_, err := c.doRequest(ctx, http.MethodDelete, dataProductTagsPath+"/"+tagID+"/products/"+dpID, nil, nil)
	return err
}
