package persist_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rfcoelho/medidas/internal/domain"
	"github.com/rfcoelho/medidas/internal/persist"
)

// mockAdapter is a hand-written test double for persist.Adapter.
type mockAdapter struct {
	load func(ctx context.Context) (domain.Document, error)
	save func(ctx context.Context, doc domain.Document) error

	saves int
}

func (m *mockAdapter) Load(ctx context.Context) (domain.Document, error) {
	return m.load(ctx)
}

func (m *mockAdapter) Save(ctx context.Context, doc domain.Document) error {
	m.saves++
	if m.save != nil {
		return m.save(ctx, doc)
	}
	return nil
}

// compile-time check: mockAdapter must satisfy persist.Adapter.
var _ persist.Adapter = (*mockAdapter)(nil)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestStack_Load_PrefersRemote(t *testing.T) {
	remoteDoc := sampleDocument()
	local := &mockAdapter{load: func(context.Context) (domain.Document, error) {
		t.Fatal("local must not be consulted when remote succeeds")
		return domain.Document{}, nil
	}}
	remote := &mockAdapter{load: func(context.Context) (domain.Document, error) {
		return remoteDoc, nil
	}}

	doc, err := persist.NewStack(local, remote, discardLogger()).Load(context.Background())

	require.NoError(t, err)
	assert.Equal(t, remoteDoc.Measurements[0].ID, doc.Measurements[0].ID)
}

func TestStack_Load_FallsBackToLocal(t *testing.T) {
	localDoc := sampleDocument()
	local := &mockAdapter{load: func(context.Context) (domain.Document, error) {
		return localDoc, nil
	}}
	remote := &mockAdapter{load: func(context.Context) (domain.Document, error) {
		return domain.Document{}, domain.ErrPersist
	}}

	doc, err := persist.NewStack(local, remote, discardLogger()).Load(context.Background())

	require.NoError(t, err)
	assert.Equal(t, localDoc.Measurements[0].ID, doc.Measurements[0].ID)
}

func TestStack_Save_WritesBothBackends(t *testing.T) {
	local := &mockAdapter{}
	remote := &mockAdapter{}

	err := persist.NewStack(local, remote, discardLogger()).Save(context.Background(), sampleDocument())

	require.NoError(t, err)
	assert.Equal(t, 1, local.saves)
	assert.Equal(t, 1, remote.saves)
}

func TestStack_Save_RemoteFailureIsReportedNotRolledBack(t *testing.T) {
	local := &mockAdapter{}
	remote := &mockAdapter{save: func(context.Context, domain.Document) error {
		return domain.ErrPersist
	}}

	err := persist.NewStack(local, remote, discardLogger()).Save(context.Background(), sampleDocument())

	require.ErrorIs(t, err, domain.ErrPersist)
	assert.ErrorContains(t, err, "saved locally")
	assert.Equal(t, 1, local.saves, "local write must have happened")
}

func TestStack_Save_LocalFailureStillAttemptsRemote(t *testing.T) {
	localErr := errors.New("disk full")
	local := &mockAdapter{save: func(context.Context, domain.Document) error {
		return localErr
	}}
	remote := &mockAdapter{}

	err := persist.NewStack(local, remote, discardLogger()).Save(context.Background(), sampleDocument())

	require.ErrorIs(t, err, localErr)
	assert.Equal(t, 1, remote.saves)
}
