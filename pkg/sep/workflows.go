package sep

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// PublishDataProduct initiates the asynchronous publish workflow. With force
// set, the underlying catalog objects are fully recreated. Progress is
// observed via GetPublishStatus or AwaitPublish.
func (c *Client) PublishDataProduct(ctx context.Context, dpID string, force bool) error {
	query := url.Values{"force": []string{strconv.FormatBool(force)}}
	_, err := c.doRequest(ctx, http.MethodPost, dataProductPath+"/"+dpID+"/workflows/publish", query, nil)
	return err
}

// GetPublishStatus reads the current publish workflow status. A 404 maps to
// ErrWorkflowNotFound so callers can detect that no workflow is active.
func (c *Client) GetPublishStatus(ctx context.Context, dpID string) (*WorkflowStatus, error) {
	return c.getWorkflowStatus(ctx, dataProductPath+"/"+dpID+"/workflows/publish")
}

// DeleteDataProduct initiates the asynchronous delete workflow. Deletion is
// itself a tracked workflow because it may drop the underlying catalog
// objects; skipObjectsDelete leaves those objects in place.
func (c *Client) DeleteDataProduct(ctx context.Context, dpID string, skipObjectsDelete bool) error {
	query := url.Values{"skipTrinoDelete": []string{strconv.FormatBool(skipObjectsDelete)}}
	_, err := c.doRequest(ctx, http.MethodPost, dataProductPath+"/"+dpID+"/workflows/delete", query, nil)
	return err
}

// GetDeleteStatus reads the current delete workflow status. A 404 maps to
// ErrWorkflowNotFound so callers can detect that no workflow is active.
func (c *Client) GetDeleteStatus(ctx context.Context, dpID string) (*WorkflowStatus, error) {
	return c.getWorkflowStatus(ctx, dataProductPath+"/"+dpID+"/workflows/delete")
}

func (c *Client) getWorkflowStatus(ctx context.Context, p string) (*WorkflowStatus, error) {
	body, err := c.doRequest(ctx, http.MethodGet, p, nil, nil)
	if err != nil {
		if errors.Is(err, ErrRequest) && StatusCode(err) == http.StatusNotFound {
			return nil, ErrWorkflowNotFound.MsgErr(err.Error(), err)
		}
		return nil, err
	}
	return decodeEntity[WorkflowStatus](body)
}

// AwaitPublish polls the publish workflow at the given interval until the
// server reports a terminal status or ctx is done. The loop terminates on
// IsFinalStatus, never on specific status strings, because the set of
// non-terminal statuses is not exhaustively known to the client.
//
// A terminal FAILED status is returned as a successfully decoded
// WorkflowStatus, not an error; inspect Status and Errors.
func (c *Client) AwaitPublish(ctx context.Context, dpID string, interval time.Duration) (*WorkflowStatus, error) {
	return c.awaitWorkflow(ctx, dpID, interval, c.GetPublishStatus)
}

// AwaitDelete polls the delete workflow at the given interval until the
// server reports a terminal status or ctx is done.
func (c *Client) AwaitDelete(ctx context.Context, dpID string, interval time.Duration) (*WorkflowStatus, error) {
	return c.awaitWorkflow(ctx, dpID, interval, c.GetDeleteStatus)
}

func (c *Client) awaitWorkflow(ctx context.Context, dpID string, interval time.Duration,
	read func(context.Context, string) (*WorkflowStatus, error)) (*WorkflowStatus, error) {
	if interval <= 0 {
		interval = time.Second
	}
	for {
		status, err := read(ctx, dpID)
		if err != nil {
			return nil, err
		}
		if status.IsFinalStatus {
			return status, nil
		}
		c.logger.Debug().
			Str("dataProductId", dpID).
			Str("workflowType", status.WorkflowType).
			Str("status", status.Status).
			Msg("workflow not terminal yet")
		select {
		case <-ctx.Done():
			return nil, ErrTransport.MsgErr("workflow polling canceled: "+ctx.Err().Error(), ctx.Err())
		case <-time.After(interval):
		}
	}
}
