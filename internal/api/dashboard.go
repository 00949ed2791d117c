package api

import (
	"context"
	"net/url"
	"strconv"

	"github.com/hdops/turnos-admin/internal/model"
)

// DashboardClient exposes the /dashboard aggregate endpoints.
type DashboardClient struct {
	c *Client
}

// NewDashboardClient wraps the core client.
func NewDashboardClient(c *Client) *DashboardClient {
	return &DashboardClient{c: c}
}

// OnlineCount returns the live online/offline agent counters.
func (d *DashboardClient) OnlineCount(ctx context.Context) (*model.OnlineAgentsCount, error) {
	var count model.OnlineAgentsCount
	if err := d.c.Get(ctx, "/dashboard/agents/online/count", nil, &count); err != nil {
		return nil, err
	}
	return &count, nil
}

// StatusHistory returns a page of ONLINE/OFFLINE transitions.
func (d *DashboardClient) StatusHistory(ctx context.Context, filter model.StatusHistoryFilter) (*Page[model.AgentStatusHistoryItem], error) {
	query := url.Values{}
	query.Set("page", strconv.Itoa(filter.Page))
	size := filter.Size
	if size == 0 {
		size = 10
	}
	query.Set("size", strconv.Itoa(size))
	if filter.Status != "" {
		query.Set("status", string(filter.Status))
	}
	if filter.AgentID != nil {
		query.Set("agentId", strconv.Itoa(*filter.AgentID))
	}
	if filter.StartDate != "" {
		query.Set("startDate", filter.StartDate)
	}
	if filter.EndDate != "" {
		query.Set("endDate", filter.EndDate)
	}

	var page Page[model.AgentStatusHistoryItem]
	if err := d.c.Get(ctx, "/dashboard/agents/status/history", query, &page); err != nil {
		return nil, err
	}
	return &page, nil
}
