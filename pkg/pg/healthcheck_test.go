package pg_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/zkcargopass/cargopass/pkg/pg"
)

type stubPinger struct{ err error }

func (p stubPinger) Ping(context.Context) error { return p.err }

func TestHealthcheck(t *testing.T) {
	t.Parallel()
	assert.NoError(t, pg.Healthcheck(stubPinger{})(context.Background()))

	err := pg.Healthcheck(stubPinger{err: errors.New("down")})(context.Background())
	assert.ErrorIs(t, err, pg.ErrHealthcheckFailed)
}
