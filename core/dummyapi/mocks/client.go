package mocks

import (
	"context"

	"dummy-importer/core/dummyapi"

	"github.com/stretchr/testify/mock"
)

// Client is a mock implementation of dummyapi.Client
type Client struct {
	mock.Mock
}

func (m *Client) Fetch(ctx context.Context, resource string, limit, skip int) dummyapi.Payload {
	args := m.Called(ctx, resource, limit, skip)
	if p, ok := args.Get(0).(dummyapi.Payload); ok {
		return p
	}
	return dummyapi.Payload{}
}
