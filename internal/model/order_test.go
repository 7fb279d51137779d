package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStage(t *testing.T) {
	for _, s := range Stages() {
		assert.True(t, s.IsKnown(), s)
		assert.True(t, s.InNamespace(), s)
	}

	archived := Stage("Kickplate - Archived")
	assert.False(t, archived.IsKnown())
	assert.True(t, archived.InNamespace())

	assert.False(t, Stage("Dispatched").InNamespace())
	assert.Equal(t, "Job Complete", StageJobComplete.Short())
}

func TestParseStage(t *testing.T) {
	tests := []struct {
		input string
		want  Stage
		ok    bool
	}{
		{"Kickplate - Processing", StageProcessing, true},
		{"job complete", StageJobComplete, true},
		{" To Collect ", StageToCollect, true},
		{"NEW", StageNew, true},
		{"Kickplate - Archived", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := ParseStage(tt.input)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDueStatus_String(t *testing.T) {
	assert.Equal(t, "overdue", StatusOverdue.String())
	assert.Equal(t, "due-soon", StatusDueSoon.String())
	assert.Equal(t, "on-track", StatusOnTrack.String())
	assert.Equal(t, "no-date", StatusNoDate.String())
}

func TestOrder_MarshalJSON(t *testing.T) {
	created := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)
	etd := time.Date(2024, 3, 20, 0, 0, 0, 0, time.UTC)

	t.Run("full card", func(t *testing.T) {
		order := Order{
			ID:                    1234,
			HasID:                 true,
			Reference:             "SO-1234",
			ProjectName:           "Hospital &amp; Clinic",
			FirstName:             "Aroha",
			Stage:                 StageProcessing,
			CreatedDate:           &created,
			EstimatedDeliveryDate: &etd,
			QuantityTotal:         12,
			Status:                StatusOverdue,
			DaysOverdue:           3,
			ExternalURL:           "https://example.test/order?OrderId=1234",
		}

		data, err := json.Marshal(order)
		require.NoError(t, err)

		var got map[string]any
		require.NoError(t, json.Unmarshal(data, &got))
		assert.InDelta(t, 1234, got["id"], 0)
		assert.Equal(t, "05 Mar 2024", got["createdDate"])
		assert.Equal(t, "20 Mar 2024", got["etd"])
		assert.Equal(t, true, got["isOverdue"])
		assert.Equal(t, false, got["isDueSoon"])
		assert.Equal(t, false, got["isOnTrack"])
		assert.InDelta(t, 3, got["daysOverdue"], 0)
		assert.Equal(t, "Kickplate - Processing", got["stage"])
	})

	t.Run("missing id and dates", func(t *testing.T) {
		data, err := json.Marshal(Order{Reference: "No Ref", ExternalURL: "#"})
		require.NoError(t, err)

		var got map[string]any
		require.NoError(t, json.Unmarshal(data, &got))
		assert.Nil(t, got["id"])
		assert.Equal(t, "", got["etd"])
		assert.Equal(t, "#", got["cin7Url"])
	})
}
