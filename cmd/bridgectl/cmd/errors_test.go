package cmd

import (
	"context"
	"errors"
	"testing"

	"github.com/bridgectl/bridgectl/internal/api"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorsService_ListErrors(t *testing.T) {
	t.Run("no errors", func(t *testing.T) {
		mock := &mockClientInterface{
			getErrorsFunc: func(_ context.Context) ([]api.ErrorItem, error) {
				return nil, nil
			},
		}
		out := newMockOutput()
		service := NewErrorsService(mock, out)

		require.NoError(t, service.ListErrors(context.Background(), false))
		assert.True(t, out.contains("No build errors"))
	})

	t.Run("errors are tabulated", func(t *testing.T) {
		mock := &mockClientInterface{
			getErrorsFunc: func(_ context.Context) ([]api.ErrorItem, error) {
				return []api.ErrorItem{
					{File: "a.cs", Line: 10, Description: "X is not defined"},
					{File: "b.cs", Line: 20, Description: "Cannot convert 'string' to 'int'"},
				}, nil
			},
		}
		out := newMockOutput()
		service := NewErrorsService(mock, out)

		require.NoError(t, service.ListErrors(context.Background(), false))
		assert.True(t, out.contains("2 errors found"))
		require.Len(t, out.tables, 1)
		assert.Equal(t, []string{"a.cs:10", "X is not defined"}, out.tables[0][0])
		// Without --analyze no suggestions appear.
		assert.False(t, out.contains("Missing import"))
	})

	t.Run("analyze adds suggestions", func(t *testing.T) {
		mock := &mockClientInterface{
			getErrorsFunc: func(_ context.Context) ([]api.ErrorItem, error) {
				return []api.ErrorItem{
					{File: "a.cs", Line: 10, Description: "X is not defined"},
				}, nil
			},
		}
		out := newMockOutput()
		service := NewErrorsService(mock, out)

		require.NoError(t, service.ListErrors(context.Background(), true))
		assert.True(t, out.contains("Missing import or undefined variable"))
		assert.True(t, out.contains("Check imports at a.cs"))
	})

	t.Run("transport error is wrapped", func(t *testing.T) {
		mock := &mockClientInterface{
			getErrorsFunc: func(_ context.Context) ([]api.ErrorItem, error) {
				return nil, errors.New("boom")
			},
		}
		service := NewErrorsService(mock, newMockOutput())

		err := service.ListErrors(context.Background(), false)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to get errors")
	})
}
