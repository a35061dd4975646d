package mocks

import (
	"context"

	"github.com/blog-publishing-api/internal/service"
	"github.com/blog-publishing-api/internal/session"
)

// MockAuthFlowService is a mock implementation of AuthFlowService
type MockAuthFlowService struct {
	RegisterFunc func(ctx context.Context, username, password string) error
	LoginFunc    func(ctx context.Context, username, password string) (session.Identity, error)
	LogoutFunc   func(ctx context.Context) error
	LogoutCalls  int
}

// Verify interface compliance
var _ service.AuthFlowService = (*MockAuthFlowService)(nil)

func NewMockAuthFlowService() *MockAuthFlowService {
	return &MockAuthFlowService{}
}

func (m *MockAuthFlowService) HandleRegister(ctx context.Context, username, password string) error {
	if m.RegisterFunc != nil {
		return m.RegisterFunc(ctx, username, password)
	}
	return nil
}

func (m *MockAuthFlowService) HandleLogin(ctx context.Context, username, password string) (session.Identity, error) {
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, username, password)
	}
	return session.Identity{UserID: "test-user-id", Username: username}, nil
}

func (m *MockAuthFlowService) HandleLogout(ctx context.Context) error {
	m.LogoutCalls++
	if m.LogoutFunc != nil {
		return m.LogoutFunc(ctx)
	}
	return nil
}

// MockHealthChecker reports a fixed health result
type MockHealthChecker struct {
	Err error
}

func (m *MockHealthChecker) HealthCheck(ctx context.Context) error {
	return m.Err
}
