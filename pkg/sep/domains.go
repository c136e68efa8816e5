package sep

import (
	"context"
	"net/http"
)

// CreateDomain creates a domain. The id is assigned by the server; the name
// must be unique within the service, which the server enforces.
func (c *Client) CreateDomain(ctx context.Context, params DomainParameters) (*Domain, error) {
	if err := validate.Struct(params); err != nil {
		return nil, ErrValidation.MsgErr("invalid domain parameters: "+err.Error(), err)
	}
	body, err := c.doRequest(ctx, http.MethodPost, domainPath, nil, params)
	if err != nil {
		return nil, err
	}
	return decodeEntity[Domain](body)
}

// GetDomain retrieves one domain by id.
func (c *Client) GetDomain(ctx context.Context, domainID string) (*Domain, error) {
	body, err := c.doRequest(ctx, http.MethodGet, domainPath+"/"+domainID, nil, nil)
	if err != nil {
		return nil, err
	}
	return decodeEntity[Domain](body)
}

// ListDomains retrieves all domains.
func (c *Client) ListDomains(ctx context.Context) ([]Domain, error) {
	body, err := c.doRequest(ctx, http.MethodGet, domainPath, nil, nil)
	if err != nil {
		return nil, err
	}
	return decodeList[Domain](body)
}

// UpdateDomain replaces a domain's description and schema location. The name
// is not updatable.
func (c *Client) UpdateDomain(ctx context.Context, domainID string, update DomainUpdate) (*Domain, error) {
	body, err := c.doRequest(ctx, http.MethodPut, domainPath+"/"+domainID, nil, update)
	if err != nil {
		return nil, err
	}
	return decodeEntity[Domain](body)
}

// DeleteDomain removes a domain. Unlike data products, domain deletion is
// synchronous.
func (c *Client) DeleteDomain(ctx context.Context, domainID string) error {
	_, err := c.doRequest(ctx, http.MethodDelete, domainPath+"/"+domainID, nil, nil)
	return err
}
