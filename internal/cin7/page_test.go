package cin7

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodePage(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		wantIDs  []float64
		wantKind PageKind
	}{
		{
			name:     "bare list",
			raw:      `[{"Id":1},{"Id":2}]`,
			wantKind: PageList,
			wantIDs:  []float64{1, 2},
		},
		{
			name:     "lowercase data wrapper",
			raw:      `{"data":[{"Id":3}],"total":1}`,
			wantKind: PageWrapped,
			wantIDs:  []float64{3},
		},
		{
			name:     "uppercase data wrapper",
			raw:      `{"Data":[{"Id":4},{"Id":5}]}`,
			wantKind: PageWrapped,
			wantIDs:  []float64{4, 5},
		},
		{
			name:     "lowercase wrapper wins",
			raw:      `{"data":[{"Id":6}],"Data":[{"Id":7}]}`,
			wantKind: PageWrapped,
			wantIDs:  []float64{6},
		},
		{
			name:     "single record",
			raw:      `{"Id":8,"Reference":"SO-8"}`,
			wantKind: PageSingle,
			wantIDs:  []float64{8},
		},
		{
			name:     "object without id",
			raw:      `{"message":"nothing here"}`,
			wantKind: PageEmptyObject,
		},
		{
			name:     "null id",
			raw:      `{"Id":null}`,
			wantKind: PageEmptyObject,
		},
		{
			name:     "non-list wrapper falls back to single record",
			raw:      `{"data":"oops","Id":9}`,
			wantKind: PageSingle,
			wantIDs:  []float64{9},
		},
		{
			name:     "empty list",
			raw:      `[]`,
			wantKind: PageList,
		},
		{
			name:     "scalar",
			raw:      `42`,
			wantKind: PageUnrecognized,
		},
		{
			name:     "empty body",
			raw:      ``,
			wantKind: PageUnrecognized,
		},
		{
			name:     "non-object elements are skipped",
			raw:      `[{"Id":10},"junk",null,7]`,
			wantKind: PageList,
			wantIDs:  []float64{10},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page := DecodePage(json.RawMessage(tt.raw))
			assert.Equal(t, tt.wantKind, page.Kind, "kind %s", page.Kind)

			ids := make([]float64, 0, len(page.Records))
			for _, rec := range page.Records {
				id, ok := rec["Id"].(float64)
				require.True(t, ok)
				ids = append(ids, id)
			}
			if len(tt.wantIDs) == 0 {
				assert.Empty(t, ids)
			} else {
				assert.Equal(t, tt.wantIDs, ids)
			}
		})
	}
}

func TestListQuery_Values(t *testing.T) {
	q := ListQuery{
		Fields: []string{"Id", "Stage"},
		Order:  "EstimatedDeliveryDate ASC, CreatedDate ASC",
		Where:  "Stage<>'Dispatched'",
		Page:   2,
		Rows:   250,
	}

	v := q.Values()
	assert.Equal(t, "Id,Stage", v.Get("fields"))
	assert.Equal(t, "EstimatedDeliveryDate ASC, CreatedDate ASC", v.Get("order"))
	assert.Equal(t, "Stage<>'Dispatched'", v.Get("where"))
	assert.Equal(t, "2", v.Get("page"))
	assert.Equal(t, "250", v.Get("rows"))

	bare := ListQuery{Page: 1, Rows: 10}.Values()
	assert.False(t, bare.Has("fields"))
	assert.False(t, bare.Has("where"))
	assert.False(t, bare.Has("order"))
}

func TestExcludeStages(t *testing.T) {
	assert.Equal(t, "", ExcludeStages(nil))
	assert.Equal(t, "Stage<>'Dispatched'", ExcludeStages([]string{"Dispatched"}))
	assert.Equal(t,
		"Stage<>'New' AND Stage<>'Customer''s Hold'",
		ExcludeStages([]string{"New", "Customer's Hold"}))
}

func TestPageKind_String(t *testing.T) {
	assert.Equal(t, "list", PageList.String())
	assert.Equal(t, "wrapped", PageWrapped.String())
	assert.Equal(t, "single", PageSingle.String())
	assert.Equal(t, "empty-object", PageEmptyObject.String())
	assert.Equal(t, "unrecognized", PageUnrecognized.String())
}
