package cmd

import (
	"context"
	"errors"
	"testing"

	"github.com/bridgectl/bridgectl/internal/api"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockSessionLoader is a manual mock for SessionLoaderInterface.
type mockSessionLoader struct {
	listFunc func() ([]string, error)
	loadFunc func(name string) (*api.Session, error)
}

func (m *mockSessionLoader) ListSessions() ([]string, error) {
	if m.listFunc != nil {
		return m.listFunc()
	}
	return nil, errors.New("not implemented")
}

func (m *mockSessionLoader) LoadSession(name string) (*api.Session, error) {
	if m.loadFunc != nil {
		return m.loadFunc(name)
	}
	return nil, errors.New("not implemented")
}

func TestSessionService_RunSession(t *testing.T) {
	t.Run("executes the session as a batch", func(t *testing.T) {
		var sent api.BatchRequest
		mock := &mockClientInterface{
			executeBatchFunc: func(_ context.Context, req api.BatchRequest) (*api.BatchResult, error) {
				sent = req
				return &api.BatchResult{OK: true, SuccessCount: 2}, nil
			},
		}
		loader := &mockSessionLoader{
			loadFunc: func(name string) (*api.Session, error) {
				assert.Equal(t, "crash-repro", name)
				return &api.Session{
					Description: "Breakpoints around the crash site",
					StopOnError: true,
					Commands:    []api.Command{api.ClearBreakpoints(), api.Start()},
				}, nil
			},
		}
		out := newMockOutput()
		service := NewSessionService(mock, loader, out)

		require.NoError(t, service.RunSession(context.Background(), "crash-repro"))
		assert.Len(t, sent.Commands, 2)
		assert.True(t, sent.StopOnError)
		assert.True(t, out.contains("completed: 2 commands"))
	})

	t.Run("missing session surfaces the loader error", func(t *testing.T) {
		loader := &mockSessionLoader{
			loadFunc: func(string) (*api.Session, error) {
				return nil, errors.New("session not found: nope")
			},
		}
		service := NewSessionService(&mockClientInterface{}, loader, newMockOutput())

		err := service.RunSession(context.Background(), "nope")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "session not found")
	})

	t.Run("partial failure is reported", func(t *testing.T) {
		mock := &mockClientInterface{
			executeBatchFunc: func(_ context.Context, _ api.BatchRequest) (*api.BatchResult, error) {
				return &api.BatchResult{SuccessCount: 1, FailureCount: 1}, nil
			},
		}
		loader := &mockSessionLoader{
			loadFunc: func(string) (*api.Session, error) {
				return &api.Session{Commands: []api.Command{api.Start(), {Action: "bogus"}}}, nil
			},
		}
		out := newMockOutput()
		service := NewSessionService(mock, loader, out)

		require.NoError(t, service.RunSession(context.Background(), "broken"))
		assert.True(t, out.contains("1 succeeded, 1 failed"))
	})
}

func TestSessionService_ShowSession(t *testing.T) {
	t.Run("prints metadata and the command table", func(t *testing.T) {
		loader := &mockSessionLoader{
			loadFunc: func(name string) (*api.Session, error) {
				assert.Equal(t, "crash-repro", name)
				return &api.Session{
					Description: "Breakpoints around the crash site",
					StopOnError: true,
					Commands: []api.Command{
						api.ClearBreakpoints(),
						api.SetBreakpoint(`C:\Code\Program.cs`, 42),
						api.Start(),
					},
				}, nil
			},
		}
		out := newMockOutput()
		service := NewSessionService(nil, loader, out)

		require.NoError(t, service.ShowSession("crash-repro"))
		assert.True(t, out.contains("Description: Breakpoints around the crash site"))
		assert.True(t, out.contains("Stop on error: true"))
		assert.True(t, out.contains("Commands: 3"))
		require.Len(t, out.tables, 1)
		require.Len(t, out.tables[0], 3)
		assert.Equal(t, []string{"2", "setBreakpoint", `C:\Code\Program.cs:42`}, out.tables[0][1])
		assert.Equal(t, []string{"3", "start", ""}, out.tables[0][2])
	})

	t.Run("missing session surfaces the loader error", func(t *testing.T) {
		loader := &mockSessionLoader{
			loadFunc: func(string) (*api.Session, error) {
				return nil, errors.New("session not found: nope")
			},
		}
		service := NewSessionService(nil, loader, newMockOutput())

		err := service.ShowSession("nope")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "session not found")
	})
}

func TestSessionService_ListSessions(t *testing.T) {
	t.Run("empty directory", func(t *testing.T) {
		loader := &mockSessionLoader{
			listFunc: func() ([]string, error) { return nil, nil },
		}
		out := newMockOutput()
		service := NewSessionService(nil, loader, out)

		require.NoError(t, service.ListSessions())
		assert.True(t, out.contains("No sessions found"))
	})

	t.Run("lists sessions with command counts", func(t *testing.T) {
		loader := &mockSessionLoader{
			listFunc: func() ([]string, error) { return []string{"crash-repro"}, nil },
			loadFunc: func(string) (*api.Session, error) {
				return &api.Session{
					Description: "Breakpoints around the crash site",
					Commands:    []api.Command{api.Start()},
				}, nil
			},
		}
		out := newMockOutput()
		service := NewSessionService(nil, loader, out)

		require.NoError(t, service.ListSessions())
		require.Len(t, out.tables, 1)
		assert.Equal(t, []string{"crash-repro", "1", "Breakpoints around the crash site"}, out.tables[0][0])
	})
}
