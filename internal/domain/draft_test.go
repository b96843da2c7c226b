package domain_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/Gunvolt24/storage_portal/internal/domain"
	"github.com/stretchr/testify/require"
)

func TestDraftClone(t *testing.T) {
	t.Run("nil photos stay nil", func(t *testing.T) {
		d := domain.Draft{Quantity: 2}
		c := d.Clone()
		require.Nil(t, c.PhotoRefs)
		require.Equal(t, d, c)
	})

	t.Run("copies are independent", func(t *testing.T) {
		d := domain.NewDraft("sess-1", domain.Address{City: "Berlin"})
		d.PhotoRefs = append(d.PhotoRefs, "p-1")
		d.Slot = &domain.SlotSelection{SlotID: "slot-1", Available: true}

		c := d.Clone()
		require.Equal(t, d, c)

		c.PhotoRefs[0] = "p-2"
		c.Slot.Available = false
		require.Equal(t, "p-1", d.PhotoRefs[0])
		require.True(t, d.Slot.Available)
	})

	t.Run("empty photos stay empty", func(t *testing.T) {
		d := domain.NewDraft("sess-1", domain.Address{})
		c := d.Clone()
		require.NotNil(t, c.PhotoRefs)
		require.Empty(t, c.PhotoRefs)
	})
}

func TestCreateOrderRequest_WireNames(t *testing.T) {
	start := time.Date(2030, 1, 2, 9, 0, 0, 0, time.UTC)
	d := domain.NewDraft("sess-1", domain.Address{City: "Berlin"})
	d.ServiceType = domain.ServiceSelfPacked
	d.Quantity = 3
	d.PhotoRefs = []string{"p-1"}
	d.Slot = &domain.SlotSelection{SlotID: "slot-1", Start: start, End: start.Add(time.Hour), Available: true}

	raw, err := json.Marshal(domain.NewCreateOrderRequest(&d))
	require.NoError(t, err)

	var body map[string]any
	require.NoError(t, json.Unmarshal(raw, &body))
	require.Equal(t, []any{"p-1"}, body["photo_refs"])
	require.NotContains(t, body, "photoRefs")
	require.Equal(t, "sess-1", body["session_id"])
	require.Equal(t, "slot-1", body["slot_id"])
	require.EqualValues(t, 3, body["quantity"])
}
