package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric/noop"
)

func TestFilterAttributes(t *testing.T) {
	filtered := FilterAttributes(
		attribute.String("jurisdiction", "INTRASTATE"),
		attribute.String("customer_id", "123"),
		attribute.String("mode", "CASH"),
	)

	require.Len(t, filtered, 2)
	assert.Equal(t, attribute.Key("jurisdiction"), filtered[0].Key)
	assert.Equal(t, attribute.Key("mode"), filtered[1].Key)
}

func TestNewBuildsInstruments(t *testing.T) {
	m, err := New(Config{ServiceName: "saral"}, noop.NewMeterProvider())
	require.NoError(t, err)
	require.NotNil(t, m)

	// nil receiver must be safe for optional wiring
	var none *Metrics
	none.RecordInvoiceCreated(t.Context(), "INTRASTATE")
}
