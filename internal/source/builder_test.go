package source

import (
	"context"
	"log/slog"
	"testing"

	"github.com/leapstack-labs/dbtgen/internal/adapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeAdapter serves canned metadata and records lifecycle calls, standing in
// for a live database in builder tests.
type fakeAdapter struct {
	tables    map[string]*adapter.TableMetadata
	connected bool
	closed    bool
	calls     []string
}

func (f *fakeAdapter) Connect(_ context.Context, _ adapter.Config) error {
	f.connected = true
	return nil
}

func (f *fakeAdapter) Close() error {
	f.closed = true
	return nil
}

func (f *fakeAdapter) TableMetadata(_ context.Context, schema, table string) (*adapter.TableMetadata, error) {
	f.calls = append(f.calls, schema+"."+table)
	meta, ok := f.tables[schema+"."+table]
	if !ok {
		return nil, &adapter.TableNotFoundError{Schema: schema, Table: table}
	}
	return meta, nil
}

func (f *fakeAdapter) DialectName() string { return "fake" }

var current *fakeAdapter

func init() {
	adapter.Register("fake", func(_ *slog.Logger) adapter.Adapter { return current })
}

func newFake(tables map[string]*adapter.TableMetadata) *fakeAdapter {
	current = &fakeAdapter{tables: tables}
	return current
}

func customersMeta() *adapter.TableMetadata {
	return &adapter.TableMetadata{
		Schema: "app",
		Name:   "customers",
		Columns: []adapter.Column{
			{Name: "id", Type: "integer", PrimaryKey: true, Position: 1},
			{Name: "email", Type: "text", Nullable: true, Position: 2},
		},
	}
}

func ordersMeta() *adapter.TableMetadata {
	return &adapter.TableMetadata{
		Schema: "app",
		Name:   "orders",
		Columns: []adapter.Column{
			{Name: "id", Type: "bigint", PrimaryKey: true, Position: 1},
			{Name: "customer_id", Type: "bigint", Position: 2},
		},
	}
}

func TestBuildDerivesPrimaryKeyTests(t *testing.T) {
	fake := newFake(map[string]*adapter.TableMetadata{"app.customers": customersMeta()})

	m, err := Build(context.Background(), adapter.Config{Type: "fake"}, []SourceConfig{
		{Name: "app", Schema: "app", Tables: []TableConfig{{Name: "customers"}}},
	}, nil)
	require.NoError(t, err)
	require.Len(t, m.Sources, 1)
	require.Len(t, m.Sources[0].Tables, 1)

	cols := m.Sources[0].Tables[0].Columns
	require.Len(t, cols, 2)
	assert.Equal(t, "id", cols[0].Name)
	assert.Equal(t, []string{"unique", "not_null"}, cols[0].Tests)
	assert.Equal(t, "email", cols[1].Name)
	assert.Empty(t, cols[1].Tests)

	assert.True(t, fake.closed, "connection should be released after the build")
}

func TestBuildDefaultFreshness(t *testing.T) {
	newFake(map[string]*adapter.TableMetadata{"app.customers": customersMeta()})

	m, err := Build(context.Background(), adapter.Config{Type: "fake"}, []SourceConfig{
		{Name: "app", Schema: "app", Tables: []TableConfig{{Name: "customers"}}},
	}, nil)
	require.NoError(t, err)

	fresh := m.Sources[0].Tables[0].Freshness
	require.NotNil(t, fresh, "every table must carry a freshness policy")
	assert.Equal(t, FreshnessRule{Count: 24, Period: "hour"}, fresh.WarnAfter)
	assert.Equal(t, FreshnessRule{Count: 48, Period: "hour"}, fresh.ErrorAfter)
}

func TestBuildFreshnessOverrideWins(t *testing.T) {
	newFake(map[string]*adapter.TableMetadata{"app.customers": customersMeta()})

	override := &Freshness{
		WarnAfter:  FreshnessRule{Count: 6, Period: "hour"},
		ErrorAfter: FreshnessRule{Count: 12, Period: "hour"},
	}

	m, err := Build(context.Background(), adapter.Config{Type: "fake"}, []SourceConfig{
		{Name: "app", Schema: "app", Tables: []TableConfig{
			{Name: "customers", Freshness: override, LoadedAtField: "_loaded_at", Description: "app customers"},
		}},
	}, nil)
	require.NoError(t, err)

	tbl := m.Sources[0].Tables[0]
	assert.Equal(t, override, tbl.Freshness)
	assert.Equal(t, "_loaded_at", tbl.LoadedAtField)
	assert.Equal(t, "app customers", tbl.Description)
}

func TestBuildPreservesDeclarationOrder(t *testing.T) {
	newFake(map[string]*adapter.TableMetadata{
		"app.customers": customersMeta(),
		"app.orders":    ordersMeta(),
	})

	m, err := Build(context.Background(), adapter.Config{Type: "fake"}, []SourceConfig{
		{Name: "orders_source", Schema: "app", Tables: []TableConfig{{Name: "orders"}}},
		{Name: "customers_source", Schema: "app", Tables: []TableConfig{{Name: "customers"}}},
	}, nil)
	require.NoError(t, err)

	require.Len(t, m.Sources, 2)
	assert.Equal(t, "orders_source", m.Sources[0].Name)
	assert.Equal(t, "customers_source", m.Sources[1].Name)
}

func TestBuildAbortsOnMissingTable(t *testing.T) {
	fake := newFake(map[string]*adapter.TableMetadata{"app.customers": customersMeta()})

	m, err := Build(context.Background(), adapter.Config{Type: "fake"}, []SourceConfig{
		{Name: "app", Schema: "app", Tables: []TableConfig{
			{Name: "missing"},
			{Name: "customers"},
		}},
	}, nil)
	require.Error(t, err)
	assert.Nil(t, m, "no partial manifest on failure")

	var notFound *adapter.TableNotFoundError
	assert.ErrorAs(t, err, &notFound)
	assert.Contains(t, err.Error(), `table "missing"`)

	// The failing table aborts the loop and the connection is still released.
	assert.Equal(t, []string{"app.missing"}, fake.calls)
	assert.True(t, fake.closed)
}

func TestBuildRejectsInvalidFreshnessPeriod(t *testing.T) {
	newFake(nil)

	_, err := Build(context.Background(), adapter.Config{Type: "fake"}, []SourceConfig{
		{Name: "app", Schema: "app", Tables: []TableConfig{
			{Name: "customers", Freshness: &Freshness{
				WarnAfter:  FreshnessRule{Count: 1, Period: "week"},
				ErrorAfter: FreshnessRule{Count: 2, Period: "hour"},
			}},
		}},
	}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid freshness period")
}

func TestBuildSourceNameDefaultsToSchema(t *testing.T) {
	newFake(map[string]*adapter.TableMetadata{"app.customers": customersMeta()})

	m, err := Build(context.Background(), adapter.Config{Type: "fake"}, []SourceConfig{
		{Schema: "app", Tables: []TableConfig{{Name: "customers"}}},
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, "app", m.Sources[0].Name)
}
